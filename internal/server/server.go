// Package server provides the HTTP server implementation for the optimade API.
package server

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/optimade/optimade-go/cmd/application"
	"github.com/optimade/optimade-go/internal/server/cache"
	"github.com/optimade/optimade-go/pkg/constants"
	"github.com/optimade/optimade-go/pkg/errors"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	app    application.Application
	cache  *cache.Cache
	logger *zerolog.Logger
	config Config
}

// New creates a new server instance with the given configuration.
func New(app application.Application, cfg Config) (*Server, error) {
	logger := app.Logger()

	logger.Debug().Msg("Creating new server instance")

	// Set defaults
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = constants.ResponseCacheTTL
	}
	if cfg.PageLimitMax <= 0 {
		cfg.PageLimitMax = constants.MaxPageLimit
	}

	// Fail fast on unusable fixtures instead of on the first request
	if _, err := app.Registry(); err != nil {
		return nil, errors.WrapResource("create", "server", "", err)
	}

	server := &Server{
		app:    app,
		cache:  cache.New(cfg.CacheTTL, constants.CacheCleanupInterval),
		logger: logger,
		config: cfg,
	}

	logger.Debug().
		Str("root_path", cfg.RootPath).
		Str("base_url", cfg.BaseURL).
		Msg("Server instance created successfully")
	return server, nil
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Shutdown drops cached responses. The HTTP listener itself is shut down by the caller.
func (s *Server) Shutdown(_ context.Context) error {
	s.logger.Info().Int("cached_items", s.cache.ItemCount()).Msg("Shutting down server")
	s.cache.Clear()
	return nil
}

// Cache returns the server's cache instance.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}
