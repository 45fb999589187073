package services

import (
	"fmt"
	"os"
)

// appendLogLine appends one line to a job audit file. These files are the
// contract with cron operators: append-only, never truncated, one line per
// event.
func appendLogLine(path string, line string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open job log %s: %w", path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, line); err != nil {
		return fmt.Errorf("failed to write job log %s: %w", path, err)
	}
	return nil
}
