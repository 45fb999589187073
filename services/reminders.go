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

type orderReminder struct {
	OrderID uint
	Email   string
}

// SendOrderReminders writes one reminder line per order placed inside the
// reminder window (default 7 days):
//
//	YYYY-MM-DD HH:MM:SS - Reminder: Order <id> for <email>
//
// Failures are recorded in the same log file so cron runs can be debugged
// after the fact, and the error is still returned to the caller.
func SendOrderReminders() (int, error) {
	cfg := configuration.Get()
	since := time.Now().Add(-cfg.Jobs.ReminderWindow)

	var reminders []orderReminder
	err := database.DB.Model(&models.Order{}).
		Select("orders.id AS order_id, customers.email AS email").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Where("orders.order_date >= ?", since).
		Order("orders.id").
		Scan(&reminders).Error
	if err != nil {
		failure := fmt.Sprintf("%s - ERROR: Failed to process order reminders - %v",
			time.Now().Format(auditTimestampLayout), err)
		if logErr := appendLogLine(cfg.Jobs.ReminderLogPath, failure); logErr != nil {
			logger.Log.WithError(logErr).Error("Failed to record reminder failure")
		}
		return 0, fmt.Errorf("failed to query orders for reminders: %w", err)
	}

	for _, r := range reminders {
		line := fmt.Sprintf("%s - Reminder: Order %d for %s",
			time.Now().Format(auditTimestampLayout), r.OrderID, r.Email)
		if err := appendLogLine(cfg.Jobs.ReminderLogPath, line); err != nil {
			return 0, err
		}
		metrics.RemindersLogged.Inc()
	}

	logger.Log.Infof("Order reminders processed, %d reminders written", len(reminders))
	return len(reminders), nil
}
