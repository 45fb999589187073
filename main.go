package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/joho/godotenv"

	"CRMBackend/configuration"
	"CRMBackend/database"
	"CRMBackend/logger"
	"CRMBackend/services"
	"CRMBackend/webserver"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Errorf("Recovered from panic: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	if err := run(); err != nil {
		logger.Log.WithError(err).Error("CRM backend encountered an error and is shutting down")
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		logger.Log.Info("No .env file found, relying on process environment")
	}

	if err := configuration.Load(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Log.Info("Configuration loaded successfully")

	if err := database.Connect(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Log.Info("Database connection established successfully")

	// One-shot job mode for external schedulers: a failed job exits
	// non-zero and leaves no audit line behind.
	if len(os.Args) > 1 {
		return runJob(os.Args[1])
	}

	services.StartScheduledJobs()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Log.Info("CRM backend is running")
	return webserver.StartWebServer(ctx)
}

func runJob(name string) error {
	switch name {
	case "cleanup":
		deleted, err := services.CleanupInactiveCustomers()
		if err != nil {
			return err
		}
		logger.Log.Infof("Deleted %d inactive customers", deleted)
		return nil
	case "heartbeat":
		return services.LogHeartbeat()
	case "reminders":
		count, err := services.SendOrderReminders()
		if err != nil {
			return err
		}
		logger.Log.Infof("Wrote %d order reminders", count)
		return nil
	default:
		return fmt.Errorf("unknown job %q (want cleanup, heartbeat or reminders)", name)
	}
}
