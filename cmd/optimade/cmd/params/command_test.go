package params

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimade/optimade-go/cmd/application"
	"github.com/optimade/optimade-go/pkg/errors"
)

func run(t *testing.T, format string, args ...string) (string, string, error) {
	t.Helper()
	app := &application.Mock{OutputFormatFunc: func() string { return format }}
	cmd := NewCommand(app)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"check"}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCheckListing(t *testing.T) {
	out, errOut, err := run(t, "json", "?page_limit=5&sort=nelements&colour=blue")
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "listing", report.Endpoint)
	assert.Equal(t, "5", report.Params["page_limit"])
	assert.Equal(t, "nelements", report.Params["sort"])
	assert.Equal(t, "-", report.Params["last_frame"])
	assert.Equal(t, []string{"references"}, report.Include)
	assert.Equal(t, []string{"colour"}, report.Unrecognized)
	assert.Contains(t, errOut, "colour")
}

func TestCheckSingle(t *testing.T) {
	out, _, err := run(t, "json", "--single", "include=&last_frame=3")
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "single", report.Endpoint)
	assert.NotContains(t, report.Params, "page_limit")
	assert.Equal(t, "3", report.Params["last_frame"])
	assert.Empty(t, report.Include)
}

func TestCheckTable(t *testing.T) {
	out, _, err := run(t, "table", "page_offset=2")
	require.NoError(t, err)
	assert.Contains(t, out, "page_offset")
	assert.Contains(t, out, "response_format")
}

func TestCheckRejects(t *testing.T) {
	_, errOut, err := run(t, "json", "page_limit=-1")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, errOut, "page_limit")

	_, _, err = run(t, "json", "--single", "page_limit=5&api_hint=v1.x")
	require.Error(t, err)
}

func TestReportTableOrder(t *testing.T) {
	r := Report{Endpoint: "single", Params: map[string]string{"api_hint": "v1", "response_format": "json"}}
	data := r.TableData(false)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "response_format", data.Rows[0][0])
	assert.Equal(t, "api_hint", data.Rows[1][0])
}
