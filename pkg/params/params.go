// Package params validates the query string of listing and single-entry endpoints.
//
// Both Endpoint kinds are driven by one field table; a single-entry request
// recognizes every row except the listing-only ones (filter, sort, paging).
// Parsing is pure: a request either yields a complete parameter set or a
// *errors.ValidationError naming the offending field.
//
//	p, err := params.ParseListing(r.URL.Query())
//	if err != nil {
//		// 400 Bad Request
//	}
package params

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/optimade/optimade-go/pkg/constants"
	"github.com/optimade/optimade-go/pkg/errors"
)

// Options configures a Parser.
type Options struct {
	// PageLimit is the page_limit used when a request omits it.
	PageLimit int

	// Strict rejects unrecognized query keys instead of ignoring them.
	Strict bool

	// ProviderPrefix names the provider-specific key namespace (_<prefix>_...).
	// Keys in it are never rejected.
	ProviderPrefix string
}

// DefaultOptions returns lenient options with the default page limit.
func DefaultOptions() Options {
	return Options{
		PageLimit:      constants.DefaultPageLimit,
		ProviderPrefix: constants.DefaultProviderPrefix,
	}
}

// Parser validates query strings against the field table.
type Parser struct {
	opts Options
}

// NewParser creates a parser with the given options.
func NewParser(opts Options) *Parser {
	return &Parser{opts: opts}
}

// SingleParams are the validated parameters of a single-entry request.
type SingleParams struct {
	ResponseFormat    string
	EmailAddress      string
	ResponseFields    string
	Include           string
	FirstFrame        int
	LastFrame         *int
	FrameStep         *int
	APIHint           string
	ContinueFromFrame *int

	includeGiven bool
	unrecognized []string
}

// ListingParams are the validated parameters of an entry-listing request.
type ListingParams struct {
	SingleParams

	Filter     string
	Sort       string
	PageLimit  int
	PageOffset int
	PageNumber int
	PageCursor int
	PageAbove  int
	PageBelow  int
}

// IncludeSet returns the requested relationship paths and whether include was
// given explicitly. An omitted include yields ["references"]; an explicitly
// empty one yields no paths.
func (p *SingleParams) IncludeSet() (paths []string, explicit bool) {
	return splitList(p.Include), p.includeGiven
}

// Fields returns response_fields as a list.
func (p *SingleParams) Fields() []string {
	return splitList(p.ResponseFields)
}

// Unrecognized returns the query keys that were ignored, sorted.
func (p *SingleParams) Unrecognized() []string {
	return slices.Clone(p.unrecognized)
}

// SortFields returns sort as a list of field names.
func (p *ListingParams) SortFields() []string {
	return splitList(p.Sort)
}

// ParseListing validates a listing query with DefaultOptions.
func ParseListing(query url.Values) (*ListingParams, error) {
	return NewParser(DefaultOptions()).ParseListing(query)
}

// ParseSingle validates a single-entry query with DefaultOptions.
func ParseSingle(query url.Values) (*SingleParams, error) {
	return NewParser(DefaultOptions()).ParseSingle(query)
}

// ParseListing validates the query of an entry-listing request.
func (p *Parser) ParseListing(query url.Values) (*ListingParams, error) {
	out := &ListingParams{PageLimit: p.opts.PageLimit}
	if err := p.parse(query, Listing, &out.SingleParams, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseSingle validates the query of a single-entry request.
func (p *Parser) ParseSingle(query url.Values) (*SingleParams, error) {
	out := &SingleParams{}
	if err := p.parse(query, Single, out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Parser) parse(query url.Values, e Endpoint, single *SingleParams, listing *ListingParams) error {
	fields := fieldsFor(e)

	for _, f := range fields {
		raw, given := lookup(query, f.name)
		if !given {
			if f.kind == kindString {
				setString(f.name, f.def, single, listing)
			}
			continue
		}

		switch f.kind {
		case kindString:
			if err := check(f, raw, raw); err != nil {
				return err
			}
			setString(f.name, raw, single, listing)
			if f.name == FieldInclude {
				single.includeGiven = true
			}
		case kindInt, kindOptionalInt:
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return errors.NewValidationError(f.name, raw, "integer", "must be an integer")
			}
			if err := check(f, n, raw); err != nil {
				return err
			}
			setInt(f.name, n, single, listing)
		}
	}

	if single.LastFrame != nil && *single.LastFrame < single.FirstFrame {
		return errors.NewValidationError(FieldLastFrame, *single.LastFrame, "gtefield=first_frame",
			"must be greater than or equal to first_frame")
	}

	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f.name] = true
	}
	for key := range query {
		if known[key] {
			continue
		}
		if p.opts.Strict && !p.providerSpecific(key) {
			return errors.NewValidationError(key, query.Get(key), "recognized",
				"is not a recognized query parameter")
		}
		single.unrecognized = append(single.unrecognized, key)
	}
	slices.Sort(single.unrecognized)
	return nil
}

func (p *Parser) providerSpecific(key string) bool {
	return p.opts.ProviderPrefix != "" && strings.HasPrefix(key, "_"+p.opts.ProviderPrefix+"_")
}

// check runs the field's validator tag against value.
func check(f field, value any, raw string) error {
	if f.tag == "" {
		return nil
	}
	err := getValidator().Var(value, f.tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		constraint := fe.Tag()
		if fe.Param() != "" {
			constraint += "=" + fe.Param()
		}
		return errors.NewValidationError(f.name, raw, constraint, describe(fe.Tag(), fe.Param()))
	}
	return errors.NewValidationError(f.name, raw, f.tag, err.Error())
}

// lookup returns the first value for key and whether the key was present at all.
func lookup(query url.Values, key string) (string, bool) {
	vs, ok := query[key]
	if !ok || len(vs) == 0 {
		return "", ok
	}
	return vs[0], true
}

func setString(name, v string, s *SingleParams, l *ListingParams) {
	switch name {
	case FieldResponseFormat:
		s.ResponseFormat = v
	case FieldEmailAddress:
		s.EmailAddress = v
	case FieldResponseFields:
		s.ResponseFields = v
	case FieldInclude:
		s.Include = v
	case FieldAPIHint:
		s.APIHint = v
	case FieldFilter:
		l.Filter = v
	case FieldSort:
		l.Sort = v
	}
}

func setInt(name string, n int, s *SingleParams, l *ListingParams) {
	switch name {
	case FieldFirstFrame:
		s.FirstFrame = n
	case FieldLastFrame:
		s.LastFrame = &n
	case FieldFrameStep:
		s.FrameStep = &n
	case FieldContinueFromFrame:
		s.ContinueFromFrame = &n
	case FieldPageLimit:
		l.PageLimit = n
	case FieldPageOffset:
		l.PageOffset = n
	case FieldPageNumber:
		l.PageNumber = n
	case FieldPageCursor:
		l.PageCursor = n
	case FieldPageAbove:
		l.PageAbove = n
	case FieldPageBelow:
		l.PageBelow = n
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
