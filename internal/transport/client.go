// Package transport fetches JSON documents from remote sources. Every host gets
// its own circuit breaker so a dead mirror is skipped quickly on later calls.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/optimade/optimade-go/pkg/constants"
	"github.com/optimade/optimade-go/pkg/errors"
	"github.com/optimade/optimade-go/pkg/logging"
)

// DefaultUserAgent is sent with every request.
const DefaultUserAgent = "optimade-go"

// Client provides HTTP GETs with a per-call timeout and per-host circuit breakers.
type Client struct {
	http      *http.Client
	timeout   time.Duration
	userAgent string

	failureThreshold uint32
	openTimeout      time.Duration

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[[]byte]
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithBreaker sets how many consecutive failures open a host's breaker and how
// long it stays open.
func WithBreaker(failures uint32, open time.Duration) Option {
	return func(c *Client) {
		c.failureThreshold = failures
		c.openTimeout = open
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a new transport client.
func New(opts ...Option) *Client {
	c := &Client{
		http:             &http.Client{},
		timeout:          constants.ProviderFetchTimeout,
		userAgent:        DefaultUserAgent,
		failureThreshold: constants.BreakerFailureThreshold,
		openTimeout:      constants.BreakerOpenTimeout,
		breakers:         make(map[string]*gobreaker.CircuitBreaker[[]byte]),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request with common headers set.
func (c *Client) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+rawURL, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	return c.http.Do(req)
}

// Fetch GETs rawURL and returns the body of a 2xx response.
//
// Dial errors, timeouts, open breakers and non-2xx statuses are all reported
// as errors satisfying errors.IsProviderUnavailable.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := c.breaker(rawURL).Execute(func() ([]byte, error) {
		return c.fetch(ctx, rawURL)
	})
	if err == nil {
		return body, nil
	}

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return nil, errors.NewConnectionError(rawURL, err)
	case errors.IsProviderUnavailable(err):
		return nil, err
	default:
		return nil, errors.NewConnectionError(rawURL, err)
	}
}

func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := c.Get(ctx, rawURL)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("%w: %w", errors.ErrTimeout, err)
		}
		return nil, errors.NewConnectionError(rawURL, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logging.FromContext(ctx).Debug().Err(cerr).Str("url", rawURL).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewConnectionError(rawURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errors.APIError{
			Source:     rawURL,
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}
	}
	return body, nil
}

// breaker returns the circuit breaker for the URL's host, creating it on first use.
func (c *Client) breaker(rawURL string) *gobreaker.CircuitBreaker[[]byte] {
	key := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		key = u.Host
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if cb, ok := c.breakers[key]; ok {
		return cb
	}

	threshold := c.failureThreshold
	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    key,
		Timeout: c.openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return threshold > 0 && counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Debug().
				Str("host", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
	})
	c.breakers[key] = cb
	return cb
}

// BreakerState reports the breaker state for the URL's host.
func (c *Client) BreakerState(rawURL string) gobreaker.State {
	return c.breaker(rawURL).State()
}
