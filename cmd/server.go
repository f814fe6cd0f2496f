package cmd

import (
	"MoodSync/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the MoodSync HTTP server",
	Long:  `Start the MoodSync HTTP server, exposing the REST API and the emotion websocket stream.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
