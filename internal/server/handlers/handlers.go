package handlers

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/optimade/optimade-go/cmd/application"
	"github.com/optimade/optimade-go/internal/server/cache"
	"github.com/optimade/optimade-go/internal/server/response"
	"github.com/optimade/optimade-go/pkg/baseurl"
	"github.com/optimade/optimade-go/pkg/constants"
	"github.com/optimade/optimade-go/pkg/errors"
	"github.com/optimade/optimade-go/pkg/params"
)

// Config holds the handler settings taken from the server configuration.
type Config struct {
	BaseURL      string
	RootPath     string
	PageLimitMax int
	Provider     response.Provider
}

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	app       application.Application
	cache     *cache.Cache
	logger    *zerolog.Logger
	config    Config
	startTime time.Time
}

// New creates a new Handlers instance.
func New(app application.Application, cache *cache.Cache, logger *zerolog.Logger, cfg Config) *Handlers {
	if cfg.PageLimitMax <= 0 {
		cfg.PageLimitMax = constants.MaxPageLimit
	}
	return &Handlers{
		app:       app,
		cache:     cache,
		logger:    logger,
		config:    cfg,
		startTime: time.Now(),
	}
}

// baseURL derives the public API root for r.
func (h *Handlers) baseURL(r *http.Request) (string, error) {
	return baseurl.Derive(requestURL(r), baseurl.Config{
		BaseURL:  h.config.BaseURL,
		RootPath: h.config.RootPath,
	})
}

// requestURL reconstructs the absolute URL a client used, honouring
// X-Forwarded-Proto and X-Forwarded-Host from a reverse proxy.
func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p != "" {
		scheme = p
	}
	host := r.Host
	if fh := r.Header.Get("X-Forwarded-Host"); fh != "" {
		host = fh
	}
	return scheme + "://" + host + r.URL.RequestURI()
}

// meta builds the meta object and attaches the provider and any warnings.
func (h *Handlers) meta(r *http.Request, returned int, available *int, more bool, warnings []response.Warning) response.Meta {
	m := response.NewMeta(r, returned, available, more)
	if h.config.Provider.Prefix != "" {
		p := h.config.Provider
		m.Provider = &p
	}
	m.Warnings = warnings
	return m
}

// checkFormat rejects response formats other than JSON.
func checkFormat(p *params.SingleParams) error {
	if p.ResponseFormat != "json" {
		return errors.NewValidationError(params.FieldResponseFormat, p.ResponseFormat, "oneof=json",
			"response format "+p.ResponseFormat+" is not supported")
	}
	return nil
}

// checkListing validates what the parser cannot: the output format and the
// configured page size ceiling.
func (h *Handlers) checkListing(p *params.ListingParams) error {
	if err := checkFormat(&p.SingleParams); err != nil {
		return err
	}
	if p.PageLimit > h.config.PageLimitMax {
		return &errors.ForbiddenError{Message: fmt.Sprintf("page_limit %d exceeds the maximum of %d",
			p.PageLimit, h.config.PageLimitMax)}
	}
	if p.PageOffset == 0 && p.PageLimit > 0 && p.PageNumber-1 > math.MaxInt/p.PageLimit {
		return errors.NewValidationError(params.FieldPageNumber, p.PageNumber, "offset-range",
			"page_number times page_limit is out of range")
	}
	return nil
}

// offset returns the number of entries to skip. page_offset wins over page_number.
func offset(p *params.ListingParams) int {
	if p.PageOffset > 0 {
		return p.PageOffset
	}
	if p.PageNumber > 0 {
		return (p.PageNumber - 1) * p.PageLimit
	}
	return 0
}

// unrecognizedWarnings turns ignored query keys into meta warnings. Keys in a
// provider namespace (leading underscore) are silently ignored.
func unrecognizedWarnings(keys []string) []response.Warning {
	var out []response.Warning
	for _, k := range keys {
		if len(k) > 0 && k[0] == '_' {
			continue
		}
		out = append(out, response.Warning{
			Type:   "warning",
			Title:  "Unrecognised query parameter",
			Detail: "The query parameter " + k + " is not known to this implementation and was ignored.",
		})
	}
	return out
}
