// Package serve provides the HTTP server command for the optimade CLI.
package serve

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/optimade/optimade-go/cmd/application"
	"github.com/optimade/optimade-go/internal/cmd/emoji"
	"github.com/optimade/optimade-go/internal/server"
	"github.com/optimade/optimade-go/pkg/constants"
)

// NewCommand creates the serve command. defaults supplies the server
// configuration built from the config file and environment; flags that are
// set explicitly override it.
func NewCommand(app application.Application, defaults func() server.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "core",
		Short:   "Start the OPTIMADE API server",
		Long: `Start the OPTIMADE API server.

Endpoints are served at the root path and under each version prefix
(/v1, /v1.1, /v1.1.0):
  - /info, /links, /references, /structures, /trajectories
  - /{entry}/{id} for single entries
  - /versions, /health, /ready and /metrics

The links endpoint merges the public provider list, fetched from the
configured provider_list_urls and cached in memory.`,
		Example: `  # Start on the default port
  optimade serve

  # Mount the API below /optimade and advertise a public base URL
  optimade serve --root-path /optimade --base-url https://example.org/optimade

  # Disable rate limiting
  optimade serve --rate-limit 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd, args, app, defaults())
		},
	}

	cmd.Flags().Int("port", 5000, "Server port")
	cmd.Flags().String("host", "localhost", "Bind address")
	cmd.Flags().String("root-path", "", "Path the API is mounted at")
	cmd.Flags().String("base-url", "", "Public base URL used in links (derived from requests when empty)")
	cmd.Flags().Int("page-limit-max", constants.MaxPageLimit, "Largest page_limit a client may request")

	cmd.Flags().Bool("cors", true, "Enable CORS")
	cmd.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins (comma-separated, default all)")

	cmd.Flags().Int("rate-limit", constants.DefaultRateLimit, "Requests per minute per IP (0 to disable)")
	cmd.Flags().Duration("cache-ttl", constants.ResponseCacheTTL, "Listing response cache TTL")

	cmd.Flags().Duration("read-timeout", constants.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", constants.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", constants.IdleTimeout, "HTTP idle timeout")

	cmd.Flags().Bool("metrics", true, "Enable the /metrics endpoint")

	return cmd
}

// runServer starts the API server.
func runServer(cmd *cobra.Command, _ []string, app application.Application, cfg server.Config) error {
	cfg = applyFlags(cmd, cfg)
	logger := app.Logger()

	logger.Info().
		Int("port", cfg.Port).
		Str("host", cfg.Host).
		Str("root_path", cfg.RootPath).
		Str("base_url", cfg.BaseURL).
		Bool("cors", cfg.CORSEnabled).
		Int("rate_limit", cfg.RateLimit).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Starting API server")

	srv, err := server.New(app, cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return startWithGracefulShutdown(cmd.Context(), cmd, httpServer, srv, logger)
}

// applyFlags overrides cfg with every flag the user set, then with HTTP_HOST
// and HTTP_PORT from the environment.
func applyFlags(cmd *cobra.Command, cfg server.Config) server.Config {
	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port = mustGetInt(cmd, "port")
	}
	if flags.Changed("host") {
		cfg.Host = mustGetString(cmd, "host")
	}
	if flags.Changed("root-path") {
		cfg.RootPath = mustGetString(cmd, "root-path")
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = mustGetString(cmd, "base-url")
	}
	if flags.Changed("page-limit-max") {
		cfg.PageLimitMax = mustGetInt(cmd, "page-limit-max")
	}
	if flags.Changed("cors") {
		cfg.CORSEnabled = mustGetBool(cmd, "cors")
	}
	if flags.Changed("cors-origins") {
		cfg.CORSOrigins = mustGetStringSlice(cmd, "cors-origins")
	}
	if flags.Changed("rate-limit") {
		cfg.RateLimit = mustGetInt(cmd, "rate-limit")
	}
	if flags.Changed("cache-ttl") {
		cfg.CacheTTL = mustGetDuration(cmd, "cache-ttl")
	}
	if flags.Changed("read-timeout") {
		cfg.ReadTimeout = mustGetDuration(cmd, "read-timeout")
	}
	if flags.Changed("write-timeout") {
		cfg.WriteTimeout = mustGetDuration(cmd, "write-timeout")
	}
	if flags.Changed("idle-timeout") {
		cfg.IdleTimeout = mustGetDuration(cmd, "idle-timeout")
	}
	if flags.Changed("metrics") {
		cfg.MetricsEnabled = mustGetBool(cmd, "metrics")
	}

	if envPort := os.Getenv("HTTP_PORT"); envPort != "" {
		if p, err := parsePort(envPort); err == nil {
			cfg.Port = p
		}
	}
	if envHost := os.Getenv("HTTP_HOST"); envHost != "" {
		cfg.Host = envHost
	}
	return cfg
}

// parsePort safely parses a port string to integer.
func parsePort(portStr string) (int, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid port number: %s", portStr)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port out of range: %d", port)
	}
	return port, nil
}

// startWithGracefulShutdown runs the HTTP server until ctx is cancelled, then
// drains connections.
func startWithGracefulShutdown(ctx context.Context, cmd *cobra.Command, httpServer *http.Server, srv *server.Server, logger *zerolog.Logger) error {
	serverErr := make(chan error, 1)

	go func() {
		logger.Info().
			Str("addr", httpServer.Addr).
			Msg("HTTP server listening")

		cmd.Printf("OPTIMADE API listening on %s\n", httpServer.Addr)
		cmd.Println("   Press Ctrl+C to stop")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received via context")
		cmd.Printf("\n%s Shutting down API server...\n", emoji.Stop)

		// The parent context is already cancelled
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("Server cleanup had issues")
		}

		logger.Info().Msg("Server stopped gracefully")
		cmd.Printf("%s API server stopped gracefully\n", emoji.Success)
		return nil
	}
}

func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

func mustGetStringSlice(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

func mustGetDuration(cmd *cobra.Command, name string) time.Duration {
	val, err := cmd.Flags().GetDuration(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}
