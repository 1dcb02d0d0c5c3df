// Package providers resolves the list of known OPTIMADE providers.
//
// A Resolver answers from its Cache when it can. Otherwise it walks the
// configured source URLs in order and takes the first one that answers.
// Connection-level failures move on to the next source; a source that answers
// with malformed data is an error. When every source fails the resolver logs a
// single warning and returns an empty list, which is not cached.
//
//	r, err := providers.NewResolver(transport.New(), providers.NewCache(0, nil))
//	records, err := r.Resolve(ctx)
package providers

import (
	"context"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/optimade/optimade-go/internal/metrics"
	"github.com/optimade/optimade-go/pkg/constants"
	"github.com/optimade/optimade-go/pkg/errors"
	"github.com/optimade/optimade-go/pkg/logging"
)

// Fetcher retrieves the body of a remote document.
// Failures that should fall through to the next source must satisfy
// errors.IsProviderUnavailable.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Resolver resolves the provider list.
type Resolver struct {
	fetcher Fetcher
	cache   *Cache
	urls    []string
	bundled []byte
	group   singleflight.Group
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithURLs replaces the source URLs, tried in the given order.
func WithURLs(urls ...string) Option {
	return func(r *Resolver) { r.urls = append([]string(nil), urls...) }
}

// WithBundled primes the cache from a bundled provider list document.
func WithBundled(doc []byte) Option {
	return func(r *Resolver) { r.bundled = doc }
}

// NewResolver creates a resolver. A nil cache gets a private one with the default TTL.
func NewResolver(fetcher Fetcher, cache *Cache, opts ...Option) (*Resolver, error) {
	if cache == nil {
		cache = NewCache(constants.ProviderCacheTTL, nil)
	}
	r := &Resolver{
		fetcher: fetcher,
		cache:   cache,
		urls:    constants.ProviderListURLs(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.bundled != nil {
		records, err := Normalize(r.bundled, "bundled")
		if err != nil {
			return nil, errors.NewConfigError("providers", "invalid bundled provider list", err)
		}
		r.cache.Set(records)
	}
	return r, nil
}

// URLs returns the source URLs in the order they are tried.
func (r *Resolver) URLs() []string {
	return append([]string(nil), r.urls...)
}

// Cache returns the resolver's cache.
func (r *Resolver) Cache() *Cache {
	return r.cache
}

// Resolve returns the provider list. An empty list with a nil error means no
// source could be reached, not that there are no providers.
func (r *Resolver) Resolve(ctx context.Context) ([]Record, error) {
	if records, ok := r.cache.Get(); ok {
		metrics.ProviderResolutions.WithLabelValues(metrics.OutcomeCache).Inc()
		return records, nil
	}

	// The shared fetch outlives any one caller; each caller still stops
	// waiting when its own context ends.
	shared := context.WithoutCancel(ctx)
	ch := r.group.DoChan(cacheKey, func() (any, error) {
		if records, ok := r.cache.Get(); ok {
			return records, nil
		}
		return r.resolveRemote(shared)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			metrics.ProviderResolutions.WithLabelValues(metrics.OutcomeError).Inc()
			return nil, res.Err
		}
		return res.Val.([]Record), nil
	}
}

func (r *Resolver) resolveRemote(ctx context.Context) ([]Record, error) {
	failed := &errors.AllSourcesFailedError{}

	for _, url := range r.urls {
		logger := logging.FromContext(logging.WithSourceURL(ctx, url))
		body, err := r.fetcher.Fetch(ctx, url)
		if err != nil {
			if !errors.IsProviderUnavailable(err) {
				return nil, err
			}
			metrics.ProviderSourceFailures.WithLabelValues(url).Inc()
			logger.Debug().Err(err).Msg("Provider list source unavailable")
			failed.URLs = append(failed.URLs, url)
			failed.Errs = append(failed.Errs, err)
			continue
		}

		records, err := Normalize(body, url)
		if err != nil {
			return nil, err
		}

		r.cache.Set(records)
		metrics.ProviderResolutions.WithLabelValues(metrics.OutcomeRemote).Inc()
		metrics.ProvidersResolved.Set(float64(len(records)))
		logger.Debug().Int("count", len(records)).Msg("Resolved provider list")
		return records, nil
	}

	metrics.ProviderResolutions.WithLabelValues(metrics.OutcomeFailed).Inc()
	logging.FromContext(ctx).Warn().Err(failed).Msg(FailureMessage(r.urls))
	return []Record{}, nil
}

// FailureMessage is the warning logged when no source could be reached.
func FailureMessage(urls []string) string {
	var b strings.Builder
	b.WriteString("Could not retrieve a list of providers!\n\n    Tried the following resources:\n\n")
	for _, u := range urls {
		b.WriteString("    * " + u + "\n")
	}
	b.WriteString("\n    The list of providers will not be included in the `/links`-endpoint.\n")
	return b.String()
}
