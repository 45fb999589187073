package configuration

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"CRMBackend/logger"
)

type Config struct {
	// Environment
	Environment string
	LogDir      string

	// Database Settings
	Database struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
		Var      string
	}

	// HTTP Server Settings
	Server struct {
		Port      string
		HealthURL string
	}

	// Rate Limits
	RateLimits struct {
		RequestsPerSecond float64
		Burst             int
	}

	// Scheduled Job Settings
	Jobs struct {
		InactivePeriod    time.Duration
		ReminderWindow    time.Duration
		CleanupInterval   time.Duration
		HeartbeatInterval time.Duration
		ReminderInterval  time.Duration

		CleanupLogPath   string
		HeartbeatLogPath string
		ReminderLogPath  string
	}
}

var AppConfig Config

func Load() error {
	logger.Log.Info("Loading configuration...")

	viper.AutomaticEnv()

	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_DIR", "logs")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("INACTIVE_PERIOD", "8760h") // 365 days
	viper.SetDefault("REMINDER_WINDOW", "168h")  // 7 days
	viper.SetDefault("CLEANUP_INTERVAL", "24h")
	viper.SetDefault("HEARTBEAT_INTERVAL", "5m")
	viper.SetDefault("REMINDER_INTERVAL", "24h")
	viper.SetDefault("CLEANUP_LOG_PATH", "/tmp/customer_cleanup_crontab.txt")
	viper.SetDefault("HEARTBEAT_LOG_PATH", "/tmp/crm_heartbeat_log.txt")
	viper.SetDefault("REMINDER_LOG_PATH", "/tmp/order_reminders_log.txt")

	AppConfig.Environment = viper.GetString("ENVIRONMENT")
	AppConfig.LogDir = viper.GetString("LOG_DIR")

	AppConfig.Database.User = viper.GetString("DB_USER")
	AppConfig.Database.Password = viper.GetString("DB_PASSWORD")
	AppConfig.Database.Name = viper.GetString("DB_NAME")
	AppConfig.Database.Host = viper.GetString("DB_HOST")
	AppConfig.Database.Port = viper.GetString("DB_PORT")
	AppConfig.Database.Var = viper.GetString("DB_VAR")

	AppConfig.Server.Port = viper.GetString("SERVER_PORT")
	viper.SetDefault("HEALTH_URL", fmt.Sprintf("http://localhost:%s/health", AppConfig.Server.Port))
	AppConfig.Server.HealthURL = viper.GetString("HEALTH_URL")

	AppConfig.RateLimits.RequestsPerSecond = viper.GetFloat64("RATE_LIMIT_RPS")
	AppConfig.RateLimits.Burst = viper.GetInt("RATE_LIMIT_BURST")

	AppConfig.Jobs.InactivePeriod = viper.GetDuration("INACTIVE_PERIOD")
	AppConfig.Jobs.ReminderWindow = viper.GetDuration("REMINDER_WINDOW")
	AppConfig.Jobs.CleanupInterval = viper.GetDuration("CLEANUP_INTERVAL")
	AppConfig.Jobs.HeartbeatInterval = viper.GetDuration("HEARTBEAT_INTERVAL")
	AppConfig.Jobs.ReminderInterval = viper.GetDuration("REMINDER_INTERVAL")
	AppConfig.Jobs.CleanupLogPath = viper.GetString("CLEANUP_LOG_PATH")
	AppConfig.Jobs.HeartbeatLogPath = viper.GetString("HEARTBEAT_LOG_PATH")
	AppConfig.Jobs.ReminderLogPath = viper.GetString("REMINDER_LOG_PATH")

	if err := validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	logger.Log.Infof("Loaded job intervals: CLEANUP_INTERVAL=%s, HEARTBEAT_INTERVAL=%s, REMINDER_INTERVAL=%s, INACTIVE_PERIOD=%s",
		AppConfig.Jobs.CleanupInterval, AppConfig.Jobs.HeartbeatInterval,
		AppConfig.Jobs.ReminderInterval, AppConfig.Jobs.InactivePeriod)

	return nil
}

func validate() error {
	var missingVars []string

	requiredVars := map[string]string{
		"DB_USER":     AppConfig.Database.User,
		"DB_PASSWORD": AppConfig.Database.Password,
		"DB_NAME":     AppConfig.Database.Name,
		"DB_HOST":     AppConfig.Database.Host,
		"DB_PORT":     AppConfig.Database.Port,
	}

	for key, value := range requiredVars {
		if value == "" {
			missingVars = append(missingVars, key)
		}
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	if AppConfig.Jobs.InactivePeriod <= 0 {
		return fmt.Errorf("INACTIVE_PERIOD must be positive")
	}
	if AppConfig.Jobs.ReminderWindow <= 0 {
		return fmt.Errorf("REMINDER_WINDOW must be positive")
	}

	return nil
}

func Get() *Config {
	return &AppConfig
}
