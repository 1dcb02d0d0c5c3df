// Package constants provides shared constants used throughout the optimade server.
// This includes timeouts, limits, file permissions, and the protocol values that
// must stay consistent between the server, the resolver and the CLI.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// ProviderFetchTimeout bounds a single GET against one provider-list source
	ProviderFetchTimeout = 10 * time.Second

	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// ShutdownTimeout is how long the server waits for in-flight requests on shutdown
	ShutdownTimeout = 30 * time.Second

	// ReadTimeout is the HTTP server read timeout
	ReadTimeout = 10 * time.Second

	// WriteTimeout is the HTTP server write timeout
	WriteTimeout = 10 * time.Second

	// IdleTimeout is the HTTP server keep-alive idle timeout
	IdleTimeout = 120 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Paging constants
const (
	// DefaultPageLimit is the page_limit used when a request omits it
	DefaultPageLimit = 20

	// MaxPageLimit is the largest page_limit the server will serve
	MaxPageLimit = 500
)

// Rate limiting constants
const (
	// DefaultRateLimit is the default requests per minute per client
	DefaultRateLimit = 600
)

// Cache constants
const (
	// ResponseCacheTTL is the default time-to-live for cached listing responses
	ResponseCacheTTL = 5 * time.Minute

	// CacheCleanupInterval is how often to clean expired cache entries
	CacheCleanupInterval = 10 * time.Minute

	// ProviderCacheTTL is the default lifetime of a resolved provider list.
	// Zero keeps the list until it is invalidated.
	ProviderCacheTTL time.Duration = 0
)

// Circuit breaker constants for remote provider-list sources
const (
	// BreakerFailureThreshold is the number of consecutive failures that opens a breaker
	BreakerFailureThreshold = 3

	// BreakerOpenTimeout is how long an open breaker rejects calls before probing
	BreakerOpenTimeout = 60 * time.Second
)

// Protocol constants
const (
	// APIVersion is the full version of the protocol served
	APIVersion = "1.1.0"

	// MediaType is the JSON:API media type used for every response
	MediaType = "application/vnd.api+json"

	// DefaultRootPath is the path prefix the API is mounted under
	DefaultRootPath = ""

	// DefaultProviderPrefix is the prefix for provider-specific query parameters and fields
	DefaultProviderPrefix = "exmpl"

	// ExampleProviderID is the placeholder provider removed from every resolved list
	ExampleProviderID = "exmpl"
)

// ProviderListURLs returns the default remote sources of the provider list, in fallback order.
func ProviderListURLs() []string {
	return []string{
		"https://providers.optimade.org/v1/links",
		"https://raw.githubusercontent.com/Materials-Consortia/providers/master/src/links/v1/providers.json",
	}
}

// VersionPrefixes returns the versioned URL prefixes the API answers under.
func VersionPrefixes() []string {
	major, minor := "v1", "v1.1"
	return []string{"/" + major, "/" + minor, "/v" + APIVersion}
}

// Format constants
const (
	// TimeFormatISO8601 is the ISO 8601 time format
	TimeFormatISO8601 = time.RFC3339
)
