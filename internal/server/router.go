package server

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/optimade/optimade-go/internal/server/handlers"
	"github.com/optimade/optimade-go/internal/server/middleware"
	"github.com/optimade/optimade-go/internal/server/response"
	"github.com/optimade/optimade-go/pkg/constants"
	"github.com/optimade/optimade-go/pkg/entries"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(s.app, s.cache, s.logger, handlers.Config{
		BaseURL:      s.config.BaseURL,
		RootPath:     s.config.RootPath,
		PageLimitMax: s.config.PageLimitMax,
		Provider:     s.config.Provider,
	})

	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes. The API is served at the root
// path and under every versioned prefix below it.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	root := rootPath(s.config.RootPath)

	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET /ready", h.HandleReady)
	mux.HandleFunc("GET "+root+"/versions", h.HandleVersions)

	prefixes := append([]string{""}, constants.VersionPrefixes()...)
	for _, prefix := range prefixes {
		base := root + prefix
		mux.HandleFunc("GET "+base+"/info", h.HandleInfo)
		mux.HandleFunc("GET "+base+"/links", h.HandleLinks)
		for _, entryType := range []string{entries.TypeReferences, entries.TypeStructures, entries.TypeTrajectories} {
			mux.HandleFunc("GET "+base+"/"+entryType, h.HandleListEntries(entryType))
			mux.HandleFunc("GET "+base+"/"+entryType+"/{id}", h.HandleGetEntry(entryType))
		}
	}

	if s.config.MetricsEnabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			response.MethodNotAllowed(w, r)
			return
		}
		response.NotFound(w, r, "No endpoint at "+r.URL.Path)
	})
}

// applyMiddleware wraps handler with middleware chain. Recovery is outermost;
// Metrics wraps the mux directly so it can read the matched pattern.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	if cfg.MetricsEnabled {
		handler = middleware.Metrics()(handler)
	}

	// Rate limiting (if enabled)
	if cfg.RateLimit > 0 {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, s.logger)
		handler = middleware.RateLimit(rateLimiter)(handler)
	}

	// CORS (if enabled)
	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
			corsConfig.AllowAll = false
		} else {
			corsConfig.AllowAll = true
		}
		handler = middleware.CORS(corsConfig)(handler)
	}

	// Logging and recovery (always enabled)
	handler = middleware.Logger(s.logger)(handler)
	handler = middleware.Recovery(s.logger)(handler)

	return handler
}

// rootPath normalizes the configured root to "" or "/segment" without a trailing slash.
func rootPath(p string) string {
	p = strings.TrimRight(strings.TrimSpace(p), "/")
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
