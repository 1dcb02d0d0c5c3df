package application

import (
	"github.com/rs/zerolog"

	"github.com/optimade/optimade-go/pkg/entries"
	"github.com/optimade/optimade-go/pkg/logging"
	"github.com/optimade/optimade-go/pkg/params"
	"github.com/optimade/optimade-go/pkg/providers"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	RegistryFunc     func() (*entries.Registry, error)
	ResolverFunc     func() (*providers.Resolver, error)
	ParserFunc       func() *params.Parser
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Registry returns a registry using the mock function or an empty registry.
func (m *Mock) Registry() (*entries.Registry, error) {
	if m.RegistryFunc != nil {
		return m.RegistryFunc()
	}
	return entries.NewRegistry(), nil
}

// Resolver returns a resolver using the mock function or nil.
func (m *Mock) Resolver() (*providers.Resolver, error) {
	if m.ResolverFunc != nil {
		return m.ResolverFunc()
	}
	return nil, nil
}

// Parser returns a parser using the mock function or one with default options.
func (m *Mock) Parser() *params.Parser {
	if m.ParserFunc != nil {
		return m.ParserFunc()
	}
	return params.NewParser(params.DefaultOptions())
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	return logging.NewNopLogger()
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
