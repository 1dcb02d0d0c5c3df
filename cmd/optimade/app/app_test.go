package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimade/optimade-go/pkg/constants"
	"github.com/optimade/optimade-go/pkg/entries"
	"github.com/optimade/optimade-go/pkg/providers"
)

func testConfig() *Config {
	return &Config{
		PageLimit:            constants.DefaultPageLimit,
		PageLimitMax:         constants.MaxPageLimit,
		ProviderPrefix:       constants.DefaultProviderPrefix,
		ProviderFetchTimeout: constants.ProviderFetchTimeout,
		LogFormat:            "json",
		LogOutput:            "discard",
	}
}

func newTestApp(t *testing.T, config *Config) *App {
	t.Helper()
	logger := zerolog.Nop()
	app, err := New("1.0.0", "abc123", "2026-01-01", "test", WithConfig(config), WithLogger(&logger))
	require.NoError(t, err)
	return app
}

func TestNew(t *testing.T) {
	app := newTestApp(t, testConfig())

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2026-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
}

func TestWithConfigRejectsInvalid(t *testing.T) {
	config := testConfig()
	config.PageLimit = -1
	_, err := New("1.0.0", "", "", "", WithConfig(config))
	assert.Error(t, err)
}

func TestRegistrySingleton(t *testing.T) {
	app := newTestApp(t, testConfig())

	const goroutines = 20
	var wg sync.WaitGroup
	results := make([]*entries.Registry, goroutines)
	for i := range goroutines {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			reg, err := app.Registry()
			assert.NoError(t, err)
			results[idx] = reg
		}(i)
	}
	wg.Wait()

	for _, reg := range results[1:] {
		assert.Same(t, results[0], reg)
	}
	assert.Equal(t, entries.Types(), results[0].Names())
}

func TestParserFromConfig(t *testing.T) {
	config := testConfig()
	config.PageLimit = 7
	config.ValidateQueryParameters = true
	app := newTestApp(t, config)

	p, err := app.Parser().ParseListing(map[string][]string{})
	require.NoError(t, err)
	assert.Equal(t, 7, p.PageLimit)

	_, err = app.Parser().ParseListing(map[string][]string{"colour": {"blue"}})
	assert.Error(t, err)
}

func TestResolverUsesConfiguredSources(t *testing.T) {
	var calls int
	var mu sync.Mutex
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		_, _ = w.Write([]byte(`{"data": [{"id": "mp", "type": "links", "attributes": {"name": "Materials Project"}}]}`))
	}))
	defer ts.Close()

	config := testConfig()
	config.ProviderListURLs = []string{ts.URL}
	app := newTestApp(t, config)

	r1, err := app.Resolver()
	require.NoError(t, err)
	r2, err := app.Resolver()
	require.NoError(t, err)
	assert.Same(t, r1, r2)
	assert.Equal(t, []string{ts.URL}, r1.URLs())

	records, err := r1.Resolve(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "mp", records[0].ID())
	assert.Equal(t, 1, calls)

	require.NoError(t, app.Shutdown(context.Background()))
	_, cached := r1.Cache().Get()
	assert.False(t, cached)
}

func TestResolverBundled(t *testing.T) {
	config := testConfig()
	config.ProviderListURLs = []string{"http://127.0.0.1:1/unreachable"}
	config.UseBundledProviders = true
	app := newTestApp(t, config)

	r, err := app.Resolver()
	require.NoError(t, err)

	records, err := r.Resolve(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, records)
	for _, rec := range records {
		assert.NotEqual(t, "exmpl", rec.ID())
	}
}

func TestWithResolver(t *testing.T) {
	r, err := providers.NewResolver(nil, nil, providers.WithURLs())
	require.NoError(t, err)

	logger := zerolog.Nop()
	app, err := New("1.0.0", "", "", "", WithConfig(testConfig()), WithLogger(&logger), WithResolver(r))
	require.NoError(t, err)

	got, err := app.Resolver()
	require.NoError(t, err)
	assert.Same(t, r, got)
}

func TestExecuteVersion(t *testing.T) {
	app := newTestApp(t, testConfig())

	var out bytes.Buffer
	root := app.createRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"version", "--log-level", "error"})
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Equal(t, "optimade 1.0.0\n", out.String())
}

func TestExecuteParamsCheck(t *testing.T) {
	app := newTestApp(t, testConfig())

	var out, errOut bytes.Buffer
	root := app.createRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"params", "check", "-o", "json", "page_limit=-1"})
	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, errOut.String(), "page_limit")
}

func TestServerConfig(t *testing.T) {
	config := testConfig()
	config.RootPath = "/optimade"
	config.BaseURL = "https://example.org/optimade"
	config.PageLimitMax = 100
	config.ProviderPrefix = "mydb"
	app := newTestApp(t, config)

	cfg := app.serverConfig()
	assert.Equal(t, "/optimade", cfg.RootPath)
	assert.Equal(t, "https://example.org/optimade", cfg.BaseURL)
	assert.Equal(t, 100, cfg.PageLimitMax)
	assert.Equal(t, "mydb", cfg.Provider.Prefix)
}
