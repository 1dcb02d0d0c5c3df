// Package metrics defines the Prometheus instruments exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optimade_http_requests_total",
			Help: "Total number of HTTP requests by route pattern and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "optimade_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Response cache metrics
	ResponseCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "optimade_response_cache_hits_total",
			Help: "Total number of listing responses served from cache",
		},
	)

	ResponseCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "optimade_response_cache_misses_total",
			Help: "Total number of listing responses computed",
		},
	)

	// Provider list metrics
	ProviderResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optimade_provider_resolutions_total",
			Help: "Provider list resolutions by outcome",
		},
		[]string{"outcome"}, // "cache", "remote", "failed", "error"
	)

	ProviderSourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optimade_provider_source_failures_total",
			Help: "Failed fetches per provider list source",
		},
		[]string{"url"},
	)

	ProvidersResolved = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "optimade_providers_resolved",
			Help: "Number of providers in the most recently resolved list",
		},
	)
)

// Provider resolution outcomes.
const (
	OutcomeCache  = "cache"
	OutcomeRemote = "remote"
	OutcomeFailed = "failed"
	OutcomeError  = "error"
)
