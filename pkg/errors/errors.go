// Package errors provides custom error types for the optimade server.
// These errors let handlers map failures onto HTTP status codes and let the
// provider resolver tell recoverable source failures apart from malformed data.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the optimade server
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden indicates a request the server refuses to serve, e.g. an oversized page
	ErrForbidden = errors.New("forbidden")

	// ErrProviderUnavailable indicates that a remote source could not be reached
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrUnexpectedResponse indicates that a remote source answered with data of the wrong shape
	ErrUnexpectedResponse = errors.New("unexpected response")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrNotImplemented indicates that a feature is not yet implemented
	ErrNotImplemented = errors.New("not implemented")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a client-caused validation failure.
// Field names the offending query parameter, Constraint the rule it broke.
type ValidationError struct {
	Field      string
	Value      any
	Constraint string
	Message    string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "violates constraint " + e.Constraint
	}
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, msg)
	}
	return fmt.Sprintf("validation failed: %s", msg)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, constraint, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Constraint: constraint, Message: message}
}

// ForbiddenError is returned for well-formed requests the server will not serve.
type ForbiddenError struct {
	Message string
}

// Error implements the error interface
func (e *ForbiddenError) Error() string {
	return e.Message
}

// Is implements errors.Is support
func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}

// APIError represents a non-success HTTP status from a remote source
type APIError struct {
	Source     string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Source, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Source, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	return target == ErrProviderUnavailable
}

// NewAPIError creates a new APIError
func NewAPIError(source string, statusCode int, message string) *APIError {
	return &APIError{
		Source:     source,
		StatusCode: statusCode,
		Message:    message,
	}
}

// ConnectionError is a connection-level failure talking to a remote source:
// dial errors, resets, timeouts and open circuit breakers.
type ConnectionError struct {
	URL string
	Err error
}

// Error implements the error interface
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %s failed: %v", e.URL, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConnectionError) Is(target error) bool {
	return target == ErrProviderUnavailable
}

// NewConnectionError creates a new ConnectionError
func NewConnectionError(url string, err error) *ConnectionError {
	return &ConnectionError{URL: url, Err: err}
}

// ParseError represents an error when decoding data that arrived intact
// but has the wrong format or shape.
type ParseError struct {
	Format  string // "json", "yaml"
	Source  string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("parse error in %s from %s: %s", e.Format, e.Source, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrUnexpectedResponse
}

// NewParseError creates a new ParseError
func NewParseError(format, source, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		Source:  source,
		Message: message,
		Err:     err,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "create", "load", "find"
	Resource  string // "collection", "request", "fixture"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// AllSourcesFailedError lists every source tried before giving up.
type AllSourcesFailedError struct {
	URLs []string
	Errs []error
}

// Error implements the error interface
func (e *AllSourcesFailedError) Error() string {
	return fmt.Sprintf("all %d sources failed: %s", len(e.URLs), strings.Join(e.URLs, ", "))
}

// Unwrap returns the per-source errors.
func (e *AllSourcesFailedError) Unwrap() []error {
	return e.Errs
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsForbidden checks if an error is a forbidden error
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsProviderUnavailable checks if an error indicates source unavailability
func IsProviderUnavailable(err error) bool {
	return errors.Is(err, ErrProviderUnavailable)
}

// IsUnexpectedResponse checks if an error indicates a malformed remote response
func IsUnexpectedResponse(err error) bool {
	return errors.Is(err, ErrUnexpectedResponse)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsNotImplemented checks if an error marks an unimplemented feature
func IsNotImplemented(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}

// Helper wrapping functions for common patterns

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, source, err.Error(), err)
}

// As is a convenience re-export of errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is is a convenience re-export of errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
