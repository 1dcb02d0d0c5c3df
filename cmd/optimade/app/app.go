// Package app provides the application context and dependency management
// for the optimade CLI. It centralizes configuration, logging and the lazily
// built registry, resolver and parser shared by every command.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/optimade/optimade-go/cmd/application"
	"github.com/optimade/optimade-go/internal/embedded"
	"github.com/optimade/optimade-go/internal/transport"
	"github.com/optimade/optimade-go/pkg/constants"
	"github.com/optimade/optimade-go/pkg/entries"
	"github.com/optimade/optimade-go/pkg/errors"
	"github.com/optimade/optimade-go/pkg/logging"
	"github.com/optimade/optimade-go/pkg/params"
	"github.com/optimade/optimade-go/pkg/providers"
)

// App represents the optimade application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Lazily initialized, one instance each
	mu       sync.RWMutex
	registry *entries.Registry
	resolver *providers.Resolver
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
// Configuration is loaded from the environment and config file and can be
// replaced using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	logging.SetDefault(logger)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Parser returns a query parameter parser built from the configuration.
func (a *App) Parser() *params.Parser {
	return params.NewParser(params.Options{
		PageLimit:      a.config.PageLimit,
		Strict:         a.config.ValidateQueryParameters,
		ProviderPrefix: a.config.ProviderPrefix,
	})
}

// Registry returns the resource registry, loading the embedded fixtures on
// first use.
func (a *App) Registry() (*entries.Registry, error) {
	a.mu.RLock()
	if a.registry != nil {
		reg := a.registry
		a.mu.RUnlock()
		return reg, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.registry != nil {
		return a.registry, nil
	}

	fixtures, err := entries.LoadFixtures(embedded.Fixtures())
	if err != nil {
		return nil, errors.WrapResource("load", "fixtures", "", err)
	}
	reg, err := fixtures.Registry()
	if err != nil {
		return nil, errors.WrapResource("create", "registry", "", err)
	}

	a.logger.Debug().Strs("collections", reg.Names()).Msg("Resource registry loaded")
	a.registry = reg
	return reg, nil
}

// Resolver returns the provider list resolver, creating it on first use.
func (a *App) Resolver() (*providers.Resolver, error) {
	a.mu.RLock()
	if a.resolver != nil {
		r := a.resolver
		a.mu.RUnlock()
		return r, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.resolver != nil {
		return a.resolver, nil
	}

	r, err := a.buildResolver()
	if err != nil {
		return nil, err
	}
	a.resolver = r
	return r, nil
}

// buildResolver constructs the resolver from the app configuration.
func (a *App) buildResolver() (*providers.Resolver, error) {
	client := transport.New(
		transport.WithTimeout(a.config.ProviderFetchTimeout),
		transport.WithBreaker(constants.BreakerFailureThreshold, constants.BreakerOpenTimeout),
		transport.WithUserAgent(transport.DefaultUserAgent+"/"+a.version),
	)

	var opts []providers.Option
	if len(a.config.ProviderListURLs) > 0 {
		opts = append(opts, providers.WithURLs(a.config.ProviderListURLs...))
	}
	if a.config.UseBundledProviders {
		doc, err := embedded.Providers()
		if err != nil {
			return nil, errors.WrapResource("load", "bundled providers", embedded.ProvidersFile, err)
		}
		opts = append(opts, providers.WithBundled(doc))
	}

	cache := providers.NewCache(a.config.ProviderCacheTTL, providers.SystemClock)
	r, err := providers.NewResolver(client, cache, opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "resolver", "", err)
	}
	return r, nil
}

// Shutdown releases cached state. It is safe to call more than once.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.RLock()
	r := a.resolver
	a.mu.RUnlock()

	if r != nil {
		r.Cache().Invalidate()
	}
	a.logger.Debug().Msg("Application shut down")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if err := config.Validate(); err != nil {
			return err
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithRegistry sets a prebuilt registry (useful for testing).
func WithRegistry(reg *entries.Registry) Option {
	return func(a *App) error {
		a.registry = reg
		return nil
	}
}

// WithResolver sets a prebuilt resolver (useful for testing).
func WithResolver(r *providers.Resolver) Option {
	return func(a *App) error {
		a.resolver = r
		return nil
	}
}
