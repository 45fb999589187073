package services

import (
	"time"

	"CRMBackend/configuration"
	"CRMBackend/logger"
	"CRMBackend/metrics"
)

// StartScheduledJobs launches the ticker loops for the three cron-style
// jobs. Jobs also remain invocable one-shot from the CLI for operators who
// prefer real cron; the loops here are the in-process equivalent.
func StartScheduledJobs() {
	cfg := configuration.Get()

	go runEvery("customer_cleanup", cfg.Jobs.CleanupInterval, func() error {
		_, err := CleanupInactiveCustomers()
		return err
	})
	go runEvery("heartbeat", cfg.Jobs.HeartbeatInterval, LogHeartbeat)
	go runEvery("order_reminders", cfg.Jobs.ReminderInterval, func() error {
		_, err := SendOrderReminders()
		return err
	})

	logger.Log.Info("Scheduled jobs started")
}

func runEvery(name string, interval time.Duration, job func() error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		if err := job(); err != nil {
			logger.Log.WithError(err).Errorf("Scheduled job %s failed", name)
			metrics.JobRuns.WithLabelValues(name, "failure").Inc()
			continue
		}
		metrics.JobRuns.WithLabelValues(name, "success").Inc()
	}
}
