package services

import (
	"fmt"
	"time"

	"CRMBackend/configuration"
	"CRMBackend/database"
	"CRMBackend/logger"
	"CRMBackend/metrics"
	"CRMBackend/models"
)

const auditTimestampLayout = "2006-01-02 15:04:05"

// CleanupInactiveCustomers deletes every customer without an order inside
// the activity window (default 365 days) and appends one audit line:
//
//	YYYY-MM-DD HH:MM:SS - Deleted <N> inactive customers
//
// A customer with no orders at all is inactive. The deletion is a single
// bulk conditional delete and is irreversible. If the store errors out, no
// audit line is written; cron must never see a false count. Overlapping
// runs are not guarded against.
func CleanupInactiveCustomers() (int64, error) {
	cfg := configuration.Get()
	cutoff := time.Now().Add(-cfg.Jobs.InactivePeriod)

	activeCustomers := database.DB.Model(&models.Order{}).
		Select("customer_id").
		Where("order_date >= ?", cutoff)

	result := database.DB.Where("id NOT IN (?)", activeCustomers).Delete(&models.Customer{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete inactive customers: %w", result.Error)
	}
	deleted := result.RowsAffected

	line := fmt.Sprintf("%s - Deleted %d inactive customers",
		time.Now().Format(auditTimestampLayout), deleted)
	if err := appendLogLine(cfg.Jobs.CleanupLogPath, line); err != nil {
		return deleted, err
	}

	metrics.CustomersDeleted.Add(float64(deleted))
	logger.Log.Infof("Customer cleanup finished, deleted %d inactive customers", deleted)

	return deleted, nil
}
