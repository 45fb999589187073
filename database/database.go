package database

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"CRMBackend/configuration"
	"CRMBackend/logger"
	"CRMBackend/models"
)

var DB *gorm.DB

func Connect() error {
	logger.Log.Info("Connecting to database...")
	cfg := configuration.Get()

	dbVar := cfg.Database.Var
	if dbVar == "" {
		dbVar = "?parseTime=true"
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s%s",
		cfg.Database.User, cfg.Database.Password,
		cfg.Database.Host, cfg.Database.Port,
		cfg.Database.Name, dbVar)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = db

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := RunMigrations(); err != nil {
		return err
	}

	go monitorDatabaseHealth()

	return nil
}

func RunMigrations() error {
	logger.Log.Info("Running migrations")

	if err := DB.AutoMigrate(&models.Customer{}, &models.Product{}, &models.Order{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database models: %w", err)
	}

	return nil
}

func monitorDatabaseHealth() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		sqlDB, err := DB.DB()
		if err != nil {
			logger.Log.WithError(err).Error("Failed to get database instance for health check")
			continue
		}

		if err := sqlDB.Ping(); err != nil {
			logger.Log.WithError(err).Error("Database health check failed")
			continue
		}

		stats := sqlDB.Stats()
		logger.Log.Debugf("DB Stats - Open connections: %d, In use: %d, Idle: %d",
			stats.OpenConnections, stats.InUse, stats.Idle)
	}
}

func GetDB() *gorm.DB {
	return DB
}
