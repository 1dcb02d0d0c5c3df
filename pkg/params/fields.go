package params

// kind is the Go shape a query value is decoded into.
type kind int

const (
	kindString kind = iota
	kindInt
	kindOptionalInt
)

// Endpoint selects which rows of the field table apply.
type Endpoint int

const (
	// Listing is an entry-listing endpoint such as /structures.
	Listing Endpoint = iota
	// Single is a single-entry endpoint such as /structures/{id}.
	Single
)

// field is one row of the query parameter table.
type field struct {
	name    string
	kind    kind
	listing bool   // only recognized on listing endpoints
	tag     string // go-playground/validator tag, empty for free-form values
	def     string // default for string fields
}

// Field names recognized on the query string.
const (
	FieldFilter            = "filter"
	FieldResponseFormat    = "response_format"
	FieldEmailAddress      = "email_address"
	FieldResponseFields    = "response_fields"
	FieldSort              = "sort"
	FieldPageLimit         = "page_limit"
	FieldPageOffset        = "page_offset"
	FieldPageNumber        = "page_number"
	FieldPageCursor        = "page_cursor"
	FieldPageAbove         = "page_above"
	FieldPageBelow         = "page_below"
	FieldInclude           = "include"
	FieldFirstFrame        = "first_frame"
	FieldLastFrame         = "last_frame"
	FieldFrameStep         = "frame_step"
	FieldAPIHint           = "api_hint"
	FieldContinueFromFrame = "continue_from_frame"
)

// table is the single source of truth for both endpoint kinds.
var table = []field{
	{name: FieldFilter, kind: kindString, listing: true},
	{name: FieldResponseFormat, kind: kindString, def: "json"},
	{name: FieldEmailAddress, kind: kindString, tag: "omitempty,email"},
	{name: FieldResponseFields, kind: kindString, tag: "fieldlist"},
	{name: FieldSort, kind: kindString, listing: true, tag: "fieldlist"},
	{name: FieldPageLimit, kind: kindInt, listing: true, tag: "min=0"},
	{name: FieldPageOffset, kind: kindInt, listing: true, tag: "min=0"},
	{name: FieldPageNumber, kind: kindInt, listing: true, tag: "min=0"},
	{name: FieldPageCursor, kind: kindInt, listing: true, tag: "min=0"},
	{name: FieldPageAbove, kind: kindInt, listing: true, tag: "min=0"},
	{name: FieldPageBelow, kind: kindInt, listing: true, tag: "min=0"},
	{name: FieldInclude, kind: kindString, def: "references"},
	{name: FieldFirstFrame, kind: kindInt, tag: "min=0"},
	{name: FieldLastFrame, kind: kindOptionalInt, tag: "min=0"},
	{name: FieldFrameStep, kind: kindOptionalInt, tag: "min=1"},
	{name: FieldAPIHint, kind: kindString, tag: "apihint"},
	{name: FieldContinueFromFrame, kind: kindOptionalInt},
}

// fieldsFor returns the rows recognized by the given endpoint kind, in table order.
func fieldsFor(e Endpoint) []field {
	out := make([]field, 0, len(table))
	for _, f := range table {
		if f.listing && e != Listing {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Names returns the query keys recognized by the given endpoint kind.
func Names(e Endpoint) []string {
	fields := fieldsFor(e)
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	return names
}
