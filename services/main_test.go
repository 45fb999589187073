package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"CRMBackend/configuration"
	"CRMBackend/database"
	"CRMBackend/models"
)

// setupTest points the package globals at a throwaway SQLite database and
// job log paths under t.TempDir.
func setupTest(t *testing.T) {
	t.Helper()

	dir := t.TempDir()

	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "crm_test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.Product{}, &models.Order{}); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	database.DB = db

	configuration.AppConfig = configuration.Config{}
	configuration.AppConfig.Jobs.InactivePeriod = 365 * 24 * time.Hour
	configuration.AppConfig.Jobs.ReminderWindow = 7 * 24 * time.Hour
	configuration.AppConfig.Jobs.CleanupLogPath = filepath.Join(dir, "customer_cleanup_crontab.txt")
	configuration.AppConfig.Jobs.HeartbeatLogPath = filepath.Join(dir, "crm_heartbeat_log.txt")
	configuration.AppConfig.Jobs.ReminderLogPath = filepath.Join(dir, "order_reminders_log.txt")
}

func mustCreate(t *testing.T, value interface{}) {
	t.Helper()
	if err := database.DB.Create(value).Error; err != nil {
		t.Fatalf("create fixture %T: %v", value, err)
	}
}

func daysAgo(n int) time.Time {
	return time.Now().AddDate(0, 0, -n)
}
