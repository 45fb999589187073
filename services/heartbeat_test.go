package services

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"CRMBackend/configuration"
)

var heartbeatLineRe = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}-\d{2}:\d{2}:\d{2} CRM is alive \(API (OK|DOWN)\)$`)

func TestLogHeartbeatAPIUp(t *testing.T) {
	setupTest(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	configuration.AppConfig.Server.HealthURL = srv.URL

	if err := LogHeartbeat(); err != nil {
		t.Fatalf("heartbeat: %v", err)
	}

	lines := readLogLines(t, configuration.AppConfig.Jobs.HeartbeatLogPath)
	if len(lines) != 1 {
		t.Fatalf("expected 1 heartbeat line, got %d", len(lines))
	}
	if !heartbeatLineRe.MatchString(lines[0]) {
		t.Fatalf("heartbeat line %q does not match expected format", lines[0])
	}
	if !strings.HasSuffix(lines[0], "(API OK)") {
		t.Fatalf("expected API OK in %q", lines[0])
	}
}

func TestLogHeartbeatAPIDown(t *testing.T) {
	setupTest(t)

	// Nothing is listening on the probe URL.
	configuration.AppConfig.Server.HealthURL = "http://127.0.0.1:1/health"

	if err := LogHeartbeat(); err != nil {
		t.Fatalf("heartbeat must still be written when the probe fails: %v", err)
	}

	lines := readLogLines(t, configuration.AppConfig.Jobs.HeartbeatLogPath)
	if len(lines) != 1 || !strings.HasSuffix(lines[0], "(API DOWN)") {
		t.Fatalf("expected a single API DOWN line, got %v", lines)
	}
}

func TestHeartbeatLogIsAppendOnly(t *testing.T) {
	setupTest(t)
	configuration.AppConfig.Server.HealthURL = "http://127.0.0.1:1/health"

	for i := 0; i < 3; i++ {
		if err := LogHeartbeat(); err != nil {
			t.Fatalf("heartbeat %d: %v", i, err)
		}
	}

	lines := readLogLines(t, configuration.AppConfig.Jobs.HeartbeatLogPath)
	if len(lines) != 3 {
		t.Fatalf("expected 3 accumulated lines, got %d", len(lines))
	}
}
