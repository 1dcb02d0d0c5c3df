package logging

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestContextLogger(t *testing.T) {
	tl := NewTestLogger(t)

	ctx := WithLogger(context.Background(), tl.Logger)
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithEntryType(ctx, "structures")

	FromContext(ctx).Info().Msg("hello")

	entries := tl.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-1", entries[0]["request_id"])
	assert.Equal(t, "structures", entries[0]["entry_type"])
	assert.Equal(t, "req-1", RequestID(ctx))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, Default(), FromContext(context.Background()))
}

func TestTestLoggerLevels(t *testing.T) {
	tl := NewTestLogger(t)
	tl.Debug().Msg("one")
	tl.Warn().Msg("two")
	tl.Warn().Msg("three")

	warns := tl.AtLevel(zerolog.WarnLevel)
	require.Len(t, warns, 2)
	assert.Equal(t, "two", warns[0].Message())

	tl.Clear()
	assert.Empty(t, tl.Entries())
}

func TestCaptureLoggingForTest(t *testing.T) {
	tl := CaptureLoggingForTest(t)
	Default().Warn().Msg("captured")
	assert.True(t, tl.Contains("captured"))
}

func TestNewLoggerFromConfig(t *testing.T) {
	logger := NewLoggerFromConfig(&Config{Level: "warn", Format: FormatJSON, Output: "discard"})
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	logger = NewLoggerFromConfig(&Config{Level: "debug", Format: FormatConsole, Output: "discard"})
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestEnvConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "")
	cfg := EnvConfig()
	assert.Equal(t, "error", cfg.Level)
	assert.Equal(t, FormatAuto, cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
}
