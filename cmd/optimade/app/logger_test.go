package app

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{"default level when no flags set", &Config{}, "info"},
		{"verbose flag sets debug", &Config{Verbose: true}, "debug"},
		{"quiet flag sets warn", &Config{Quiet: true}, "warn"},
		{"explicit log-level overrides verbose", &Config{LogLevel: "error", Verbose: true}, "error"},
		{"explicit log-level overrides quiet", &Config{LogLevel: "trace", Quiet: true}, "trace"},
		{"both verbose and quiet prefers quiet", &Config{Verbose: true, Quiet: true}, "warn"},
		{"invalid log level falls back to info", &Config{LogLevel: "loud"}, "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, determineLogLevel(tt.config))
		})
	}
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error"} {
		assert.Equal(t, level, validateLogLevel(level))
	}
	for _, level := range []string{"", "DEBUG", "Debug", "verbose"} {
		assert.Equal(t, "info", validateLogLevel(level), level)
	}
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(&Config{LogFormat: "json", LogOutput: "discard", Quiet: true})
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	logger = NewLogger(&Config{LogFormat: "console", LogOutput: "discard", Verbose: true})
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}
