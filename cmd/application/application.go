// Package application provides the application interface for optimade commands
// and the HTTP server.
//
// Commands and handlers accept this interface rather than the concrete App type,
// so tests can inject a Mock:
//
//	mock := &application.Mock{
//	    RegistryFunc: func() (*entries.Registry, error) {
//	        return testRegistry, nil
//	    },
//	}
//	cmd := NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/optimade/optimade-go/pkg/entries"
	"github.com/optimade/optimade-go/pkg/params"
	"github.com/optimade/optimade-go/pkg/providers"
)

// Application provides what commands and handlers need.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Registry returns the resource registry, loading the fixtures on first use.
	Registry() (*entries.Registry, error)

	// Resolver returns the provider list resolver.
	Resolver() (*providers.Resolver, error)

	// Parser returns the query parameter parser built from configuration.
	Parser() *params.Parser

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
