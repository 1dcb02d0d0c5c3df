package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger creates a test logger that captures JSON output
type TestLogger struct {
	*zerolog.Logger
	buf *syncBuffer
}

// Entry is one decoded log line.
type Entry map[string]any

// Level returns the entry's level field.
func (e Entry) Level() string {
	s, _ := e[zerolog.LevelFieldName].(string)
	return s
}

// Message returns the entry's message field.
func (e Entry) Message() string {
	s, _ := e[zerolog.MessageFieldName].(string)
	return s
}

// NewTestLogger creates a new test logger that captures output
func NewTestLogger(t testing.TB) *TestLogger {
	t.Helper()

	buf := &syncBuffer{}
	oldLevel := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	logger := zerolog.New(buf).
		Level(zerolog.TraceLevel).
		With().
		Timestamp().
		Logger()

	t.Cleanup(func() {
		zerolog.SetGlobalLevel(oldLevel)
	})

	return &TestLogger{Logger: &logger, buf: buf}
}

// Output returns the captured log output as a string
func (tl *TestLogger) Output() string {
	return tl.buf.String()
}

// Entries decodes every captured line. Lines that are not JSON are skipped.
func (tl *TestLogger) Entries() []Entry {
	var entries []Entry
	for _, line := range strings.Split(strings.TrimSpace(tl.Output()), "\n") {
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

// AtLevel returns the captured entries with the given level.
func (tl *TestLogger) AtLevel(level zerolog.Level) []Entry {
	var out []Entry
	for _, e := range tl.Entries() {
		if e.Level() == level.String() {
			out = append(out, e)
		}
	}
	return out
}

// Contains checks if the log output contains the given string
func (tl *TestLogger) Contains(substr string) bool {
	return strings.Contains(tl.Output(), substr)
}

// Clear clears the captured log output
func (tl *TestLogger) Clear() {
	tl.buf.Reset()
}

// NewNopLogger creates a logger that discards all output
func NewNopLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

// CaptureLoggingForTest swaps the default logger for a capturing one until the test ends.
func CaptureLoggingForTest(t testing.TB) *TestLogger {
	t.Helper()

	original := *Default()
	testLogger := NewTestLogger(t)
	SetDefault(*testLogger.Logger)

	t.Cleanup(func() {
		SetDefault(original)
	})

	return testLogger
}

// syncBuffer guards a bytes.Buffer; handlers log from server goroutines.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func (s *syncBuffer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.b.Reset()
}
