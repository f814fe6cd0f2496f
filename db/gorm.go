package db

import (
	"fmt"
	"time"

	"MoodSync/config"
	applog "MoodSync/logger"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormDB is the shared GORM database handle.
var GormDB *gorm.DB

const (
	connectAttempts = 3
	connectDelay    = time.Second
)

// ConnectGormDB establishes the GORM database connection. The initial
// connection is retried up to connectAttempts times with a fixed delay;
// exhausting the retries is a startup failure for the caller to treat as
// fatal.
func ConnectGormDB(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		GormDB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err == nil {
			break
		}
		applog.Warn("Database connection attempt failed",
			applog.Int("attempt", attempt),
			applog.ErrorField(err),
		)
		if attempt < connectAttempts {
			time.Sleep(connectDelay)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to connect database after %d attempts: %w", connectAttempts, err)
	}

	sqlDB, err := GormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	applog.Info("Successfully connected to the database")
	return nil
}

// CloseGormDB closes the GORM database connection.
func CloseGormDB() error {
	if GormDB == nil {
		return nil
	}

	sqlDB, err := GormDB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// AutoMigrateModels migrates the given models.
func AutoMigrateModels(models ...interface{}) error {
	if GormDB == nil {
		return fmt.Errorf("GORM database not initialized")
	}

	if err := GormDB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}

	applog.Info("Models migrated successfully")
	return nil
}
