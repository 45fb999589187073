package services

import (
	"net/http"
	"time"

	"CRMBackend/configuration"
)

const heartbeatTimestampLayout = "02/01/2006-15:04:05"

// LogHeartbeat appends "DD/MM/YYYY-HH:MM:SS CRM is alive" to the heartbeat
// log, with the API probe result tacked on. The line is written even when
// the probe fails; a missing line means the scheduler itself is dead.
func LogHeartbeat() error {
	cfg := configuration.Get()

	line := time.Now().Format(heartbeatTimestampLayout) + " CRM is alive"
	if checkAPIHealth(cfg.Server.HealthURL) {
		line += " (API OK)"
	} else {
		line += " (API DOWN)"
	}

	return appendLogLine(cfg.Jobs.HeartbeatLogPath, line)
}

func checkAPIHealth(url string) bool {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
