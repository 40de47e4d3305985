package worker

import (
	"fmt"
	"os"
	"sync"
)

// LogSink is an append-only file sink for background-job results. Jobs
// never truncate or rewrite history; every run appends.
type LogSink struct {
	mu   sync.Mutex
	path string
}

// NewLogSink creates a sink appending to the given file path.
func NewLogSink(path string) *LogSink {
	return &LogSink{path: path}
}

// Append writes one entry, creating the file on first use. A trailing
// newline is added when missing.
func (s *LogSink) Append(entry string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log sink: %w", err)
	}
	defer f.Close()

	if len(entry) == 0 || entry[len(entry)-1] != '\n' {
		entry += "\n"
	}

	if _, err := f.WriteString(entry); err != nil {
		return fmt.Errorf("failed to append to log sink: %w", err)
	}

	return nil
}
