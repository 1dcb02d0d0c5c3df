package server

import (
	"time"

	"github.com/optimade/optimade-go/internal/server/response"
	"github.com/optimade/optimade-go/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// API settings
	RootPath     string // mount point of the API, "" for the server root
	BaseURL      string // public API root; derived per request when empty
	PageLimitMax int
	Provider     response.Provider

	// CORS settings
	CORSEnabled bool
	CORSOrigins []string

	// Performance settings
	RateLimit int // Requests per minute per IP (0 to disable)
	CacheTTL  time.Duration

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Features
	MetricsEnabled bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         5000,
		RootPath:     constants.DefaultRootPath,
		PageLimitMax: constants.MaxPageLimit,
		Provider: response.Provider{
			Name:        "Example provider",
			Description: "Provider used for examples, not to be assigned to a real database",
			Prefix:      constants.DefaultProviderPrefix,
			Homepage:    "https://example.com",
		},
		CORSEnabled:    true,
		CORSOrigins:    []string{},
		RateLimit:      constants.DefaultRateLimit,
		CacheTTL:       constants.ResponseCacheTTL,
		ReadTimeout:    constants.ReadTimeout,
		WriteTimeout:   constants.WriteTimeout,
		IdleTimeout:    constants.IdleTimeout,
		MetricsEnabled: true,
	}
}
