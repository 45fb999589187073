package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	Log          *logrus.Logger
	logFile      *os.File
	lastRotation time.Time
	rotationMu   sync.Mutex
)

func init() {
	Log = logrus.New()
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		Log.WithError(err).Fatal("Failed to create log directory")
	}

	rotateLog(logDir)

	go watchRotation(logDir)
}

func rotateLog(logDir string) {
	rotationMu.Lock()
	defer rotationMu.Unlock()

	if logFile != nil {
		logFile.Close()
	}

	name := filepath.Join(logDir, time.Now().Format("2006-01-02")+".log")
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		Log.WithError(err).Fatal("Failed to open log file")
	}

	logFile = f
	Log.SetOutput(io.MultiWriter(os.Stdout, logFile))
	lastRotation = time.Now()
}

// watchRotation rolls the service log over at the first check after midnight.
// Job audit logs (cleanup, heartbeat, reminders) are separate append-only
// files and are never rotated or truncated here.
func watchRotation(logDir string) {
	for {
		time.Sleep(1 * time.Hour)

		if time.Now().YearDay() != lastRotation.YearDay() {
			rotateLog(logDir)
			Log.Info("Log file rotated")
		}
	}
}
