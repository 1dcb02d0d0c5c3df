package serve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimade/optimade-go/cmd/application"
	"github.com/optimade/optimade-go/internal/server"
)

func TestApplyFlags(t *testing.T) {
	defaults := server.DefaultConfig()
	defaults.RootPath = "/from-config"
	defaults.Port = 6000

	cmd := NewCommand(&application.Mock{}, func() server.Config { return defaults })
	require.NoError(t, cmd.ParseFlags([]string{
		"--base-url", "https://example.org/optimade",
		"--rate-limit", "0",
		"--cache-ttl", "1m",
		"--cors-origins", "https://a.example.org,https://b.example.org",
	}))

	cfg := applyFlags(cmd, defaults)
	assert.Equal(t, "/from-config", cfg.RootPath)
	assert.Equal(t, 6000, cfg.Port)
	assert.Equal(t, "https://example.org/optimade", cfg.BaseURL)
	assert.Equal(t, 0, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, []string{"https://a.example.org", "https://b.example.org"}, cfg.CORSOrigins)
}

func TestApplyFlagsEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "7001")
	t.Setenv("HTTP_HOST", "0.0.0.0")

	cmd := NewCommand(&application.Mock{}, server.DefaultConfig)
	require.NoError(t, cmd.ParseFlags(nil))

	cfg := applyFlags(cmd, server.DefaultConfig())
	assert.Equal(t, 7001, cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
}

func TestParsePort(t *testing.T) {
	p, err := parsePort("8080")
	require.NoError(t, err)
	assert.Equal(t, 8080, p)

	_, err = parsePort("http")
	assert.Error(t, err)
	_, err = parsePort("70000")
	assert.Error(t, err)
}
