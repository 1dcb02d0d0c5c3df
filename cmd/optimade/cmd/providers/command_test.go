package providers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimade/optimade-go/cmd/application"
	"github.com/optimade/optimade-go/internal/transport"
	pkgproviders "github.com/optimade/optimade-go/pkg/providers"
)

const list = `{"data": [
	{"id": "exmpl", "type": "links", "attributes": {"name": "Example"}},
	{"id": "cod", "type": "links", "attributes": {"name": "Crystallography Open Database", "base_url": "https://www.crystallography.net/cod/optimade"}}
]}`

func newApp(t *testing.T, format string) (*application.Mock, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(list))
	}))
	t.Cleanup(ts.Close)

	r, err := pkgproviders.NewResolver(transport.New(), nil, pkgproviders.WithURLs(ts.URL))
	require.NoError(t, err)

	return &application.Mock{
		ResolverFunc:     func() (*pkgproviders.Resolver, error) { return r, nil },
		OutputFormatFunc: func() string { return format },
	}, &hits
}

func execute(t *testing.T, app application.Application, args ...string) string {
	t.Helper()
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestListJSON(t *testing.T) {
	app, _ := newApp(t, "json")

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(execute(t, app, "list")), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "cod", records[0]["id"])
	assert.Equal(t, map[string]any{"$oid": pkgproviders.MongoID("cod", "links")}, records[0]["_id"])
}

func TestListTable(t *testing.T) {
	app, _ := newApp(t, "table")
	out := execute(t, app, "ls")
	assert.Contains(t, out, "Crystallography Open Database")
	assert.NotContains(t, out, "Example")
}

func TestListRefresh(t *testing.T) {
	app, hits := newApp(t, "yaml")

	execute(t, app, "list")
	execute(t, app, "list")
	assert.Equal(t, int32(1), hits.Load())

	out := execute(t, app, "list", "--refresh")
	assert.Equal(t, int32(2), hits.Load())
	assert.Contains(t, out, "id: cod")
}
