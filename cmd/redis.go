package cmd

import (
	"fmt"
	"log"

	"MoodSync/config"
	"MoodSync/db"

	"github.com/spf13/cobra"
)

var redisCmd = &cobra.Command{
	Use:   "redis",
	Short: "Redis connectivity check",
	Long:  `Check that the configured Redis instance is reachable and supports basic read/write operations.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		fmt.Printf("Redis target: %s:%s, DB: %d\n", cfg.RedisHost, cfg.RedisPort, cfg.RedisDB)

		if err := db.ConnectRedis(cfg); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		fmt.Println("Redis connection OK.")

		if err := db.TestRedis(); err != nil {
			log.Fatalf("Redis read/write check failed: %v", err)
		}
		fmt.Println("Redis read/write check OK.")

		if err := db.CloseRedis(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(redisCmd)
}
