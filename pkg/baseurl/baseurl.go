// Package baseurl derives the externally visible API root of a request.
package baseurl

import (
	"net/url"
	"strings"

	"github.com/optimade/optimade-go/pkg/errors"
)

// Config holds the settings that shape the derived URL.
type Config struct {
	// BaseURL, when set, is returned as is (minus trailing slashes).
	BaseURL string

	// RootPath is appended to scheme://host of the request otherwise.
	RootPath string
}

// Derive returns the API root for requestURL: the configured base URL if
// there is one, else the request's scheme and host followed by the root path.
func Derive(requestURL string, cfg Config) (string, error) {
	if cfg.BaseURL != "" {
		return strings.TrimRight(cfg.BaseURL, "/"), nil
	}

	u, err := url.Parse(requestURL)
	if err != nil {
		return "", errors.NewValidationError("url", requestURL, "url", err.Error())
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.NewValidationError("url", requestURL, "absolute", "must be an absolute URL")
	}

	root := strings.TrimRight(cfg.RootPath, "/")
	if root != "" && !strings.HasPrefix(root, "/") {
		root = "/" + root
	}
	return u.Scheme + "://" + u.Host + root, nil
}
