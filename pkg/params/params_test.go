package params

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimade/optimade-go/pkg/errors"
)

func query(t *testing.T, raw string) url.Values {
	t.Helper()
	q, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return q
}

func TestParseListingDefaults(t *testing.T) {
	p, err := ParseListing(url.Values{})
	require.NoError(t, err)

	assert.Equal(t, "", p.Filter)
	assert.Equal(t, "json", p.ResponseFormat)
	assert.Equal(t, "", p.EmailAddress)
	assert.Equal(t, "", p.ResponseFields)
	assert.Equal(t, "", p.Sort)
	assert.Equal(t, 20, p.PageLimit)
	assert.Zero(t, p.PageOffset)
	assert.Zero(t, p.PageNumber)
	assert.Zero(t, p.PageCursor)
	assert.Zero(t, p.PageAbove)
	assert.Zero(t, p.PageBelow)
	assert.Equal(t, "references", p.Include)
	assert.Zero(t, p.FirstFrame)
	assert.Nil(t, p.LastFrame)
	assert.Nil(t, p.FrameStep)
	assert.Equal(t, "", p.APIHint)
	assert.Nil(t, p.ContinueFromFrame)
	assert.Empty(t, p.Unrecognized())
}

func TestParseListingValues(t *testing.T) {
	q := query(t, "filter=nelements%3D2&sort=nsites,last_modified&page_limit=5&page_offset=10"+
		"&response_fields=id,chemical_formula_reduced&email_address=user@example.com&api_hint=v1.1"+
		"&first_frame=2&last_frame=8&frame_step=3&continue_from_frame=5")

	p, err := ParseListing(q)
	require.NoError(t, err)

	assert.Equal(t, "nelements=2", p.Filter)
	assert.Equal(t, []string{"nsites", "last_modified"}, p.SortFields())
	assert.Equal(t, []string{"id", "chemical_formula_reduced"}, p.Fields())
	assert.Equal(t, 5, p.PageLimit)
	assert.Equal(t, 10, p.PageOffset)
	assert.Equal(t, "user@example.com", p.EmailAddress)
	assert.Equal(t, "v1.1", p.APIHint)
	assert.Equal(t, 2, p.FirstFrame)
	require.NotNil(t, p.LastFrame)
	assert.Equal(t, 8, *p.LastFrame)
	require.NotNil(t, p.FrameStep)
	assert.Equal(t, 3, *p.FrameStep)
	require.NotNil(t, p.ContinueFromFrame)
	assert.Equal(t, 5, *p.ContinueFromFrame)
}

func TestParseListingRejects(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		field      string
		constraint string
	}{
		{"uppercase response field", "response_fields=ID", FieldResponseFields, "fieldlist"},
		{"trailing comma", "response_fields=id,", FieldResponseFields, "fieldlist"},
		{"leading digit", "response_fields=1abc", FieldResponseFields, "fieldlist"},
		{"descending sort", "sort=-nsites", FieldSort, "fieldlist"},
		{"space in sort", "sort=a,%20b", FieldSort, "fieldlist"},
		{"negative page_limit", "page_limit=-1", FieldPageLimit, "min=0"},
		{"negative page_offset", "page_offset=-3", FieldPageOffset, "min=0"},
		{"negative page_below", "page_below=-1", FieldPageBelow, "min=0"},
		{"non-integer page_number", "page_number=two", FieldPageNumber, "integer"},
		{"bad email", "email_address=not-an-email", FieldEmailAddress, "email"},
		{"negative first_frame", "first_frame=-1", FieldFirstFrame, "min=0"},
		{"negative last_frame", "last_frame=-1", FieldLastFrame, "min=0"},
		{"zero frame_step", "frame_step=0", FieldFrameStep, "min=1"},
		{"last before first", "first_frame=4&last_frame=2", FieldLastFrame, "gtefield=first_frame"},
		{"api_hint without v", "api_hint=1.0", FieldAPIHint, "apihint"},
		{"api_hint with patch", "api_hint=v1.0.1", FieldAPIHint, "apihint"},
		{"non-integer continue", "continue_from_frame=x", FieldContinueFromFrame, "integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseListing(query(t, tt.raw))
			require.Error(t, err)
			assert.Nil(t, p)
			assert.True(t, errors.IsValidationError(err))

			var verr *errors.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.constraint, verr.Constraint)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestIncludeOmittedVersusEmpty(t *testing.T) {
	omitted, err := ParseListing(url.Values{})
	require.NoError(t, err)
	paths, explicit := omitted.IncludeSet()
	assert.Equal(t, []string{"references"}, paths)
	assert.False(t, explicit)

	empty, err := ParseListing(query(t, "include="))
	require.NoError(t, err)
	paths, explicit = empty.IncludeSet()
	assert.Empty(t, paths)
	assert.True(t, explicit)

	several, err := ParseSingle(query(t, "include=references,structures"))
	require.NoError(t, err)
	paths, explicit = several.IncludeSet()
	assert.Equal(t, []string{"references", "structures"}, paths)
	assert.True(t, explicit)
}

func TestParseSingleIgnoresListingFields(t *testing.T) {
	p, err := ParseSingle(query(t, "page_limit=-5&sort=BAD&response_fields=id"))
	require.NoError(t, err)
	assert.Equal(t, "id", p.ResponseFields)
	assert.Equal(t, []string{"page_limit", "sort"}, p.Unrecognized())
}

func TestParseSingleValidatesSharedFields(t *testing.T) {
	_, err := ParseSingle(query(t, "response_fields=Bad"))
	require.Error(t, err)

	var verr *errors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, FieldResponseFields, verr.Field)
}

func TestUnrecognizedKeys(t *testing.T) {
	q := query(t, "zeta=1&alpha=2&_exmpl_custom=3")

	lenient, err := ParseListing(q)
	require.NoError(t, err)
	assert.Equal(t, []string{"_exmpl_custom", "alpha", "zeta"}, lenient.Unrecognized())

	strict := NewParser(Options{PageLimit: 20, Strict: true, ProviderPrefix: "exmpl"})
	_, err = strict.ParseListing(q)
	require.Error(t, err)
	var verr *errors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "recognized", verr.Constraint)

	p, err := strict.ParseListing(query(t, "_exmpl_custom=3"))
	require.NoError(t, err)
	assert.Equal(t, []string{"_exmpl_custom"}, p.Unrecognized())
}

func TestConfiguredPageLimit(t *testing.T) {
	p, err := NewParser(Options{PageLimit: 7}).ParseListing(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, 7, p.PageLimit)
}

func TestFieldTableSubsets(t *testing.T) {
	listing := Names(Listing)
	single := Names(Single)

	assert.Len(t, listing, len(table))
	for _, name := range []string{FieldFilter, FieldSort, FieldPageLimit, FieldPageOffset,
		FieldPageNumber, FieldPageCursor, FieldPageAbove, FieldPageBelow} {
		assert.Contains(t, listing, name)
		assert.NotContains(t, single, name)
	}
	for _, name := range single {
		assert.Contains(t, listing, name)
	}
}
