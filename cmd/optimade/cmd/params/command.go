// Package params provides the params command, which validates OPTIMADE query
// strings offline.
package params

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/optimade/optimade-go/cmd/application"
	"github.com/optimade/optimade-go/internal/cmd/emoji"
	"github.com/optimade/optimade-go/internal/cmd/output"
	"github.com/optimade/optimade-go/pkg/errors"
	"github.com/optimade/optimade-go/pkg/params"
)

// NewCommand creates the params command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "params",
		GroupID: "core",
		Short:   "Work with query parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newCheckCommand(app))
	return cmd
}

func newCheckCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <query>",
		Short: "Validate a query string",
		Long: `Validate a query string the way the server does and print the
resulting parameters, defaults included.`,
		Example: `  optimade params check 'page_limit=5&sort=nelements'
  optimade params check --single '?response_fields=elements&include='`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			single, err := cmd.Flags().GetBool("single")
			if err != nil {
				return err
			}
			return runCheck(cmd, app, args[0], single)
		},
	}
	cmd.Flags().Bool("single", false, "Validate for a single-entry endpoint instead of a listing")
	return cmd
}

func runCheck(cmd *cobra.Command, app application.Application, raw string, single bool) error {
	query, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return errors.NewValidationError("query", raw, "urlencoded", err.Error())
	}

	var report Report
	if single {
		p, err := app.Parser().ParseSingle(query)
		if err != nil {
			cmd.PrintErrf("%s %v\n", emoji.Error, err)
			return err
		}
		report = singleReport(p)
	} else {
		p, err := app.Parser().ParseListing(query)
		if err != nil {
			cmd.PrintErrf("%s %v\n", emoji.Error, err)
			return err
		}
		report = listingReport(p)
	}

	for _, key := range report.Unrecognized {
		cmd.PrintErrf("%s ignoring unrecognized parameter %s\n", emoji.Warning, key)
	}
	return output.Write(cmd.OutOrStdout(), app.OutputFormat(), report)
}

// Report is the printable result of a successful check.
type Report struct {
	Endpoint     string            `json:"endpoint" yaml:"endpoint"`
	Params       map[string]string `json:"params" yaml:"params"`
	Include      []string          `json:"include" yaml:"include"`
	Unrecognized []string          `json:"unrecognized,omitempty" yaml:"unrecognized,omitempty"`
}

// TableData implements output.Tabler.
func (r Report) TableData(bool) output.Data {
	rows := make([][]string, 0, len(r.Params))
	for _, name := range params.Names(endpointOf(r.Endpoint)) {
		if v, ok := r.Params[name]; ok {
			rows = append(rows, []string{name, v})
		}
	}
	return output.Data{Headers: []string{"Parameter", "Value"}, Rows: rows}
}

func endpointOf(name string) params.Endpoint {
	if name == "single" {
		return params.Single
	}
	return params.Listing
}

func singleReport(p *params.SingleParams) Report {
	include, _ := p.IncludeSet()
	return Report{
		Endpoint:     "single",
		Params:       singleValues(p),
		Include:      include,
		Unrecognized: p.Unrecognized(),
	}
}

func listingReport(p *params.ListingParams) Report {
	values := singleValues(&p.SingleParams)
	values[params.FieldFilter] = p.Filter
	values[params.FieldSort] = p.Sort
	values[params.FieldPageLimit] = strconv.Itoa(p.PageLimit)
	values[params.FieldPageOffset] = strconv.Itoa(p.PageOffset)
	values[params.FieldPageNumber] = strconv.Itoa(p.PageNumber)
	values[params.FieldPageCursor] = strconv.Itoa(p.PageCursor)
	values[params.FieldPageAbove] = strconv.Itoa(p.PageAbove)
	values[params.FieldPageBelow] = strconv.Itoa(p.PageBelow)

	include, _ := p.IncludeSet()
	return Report{
		Endpoint:     "listing",
		Params:       values,
		Include:      include,
		Unrecognized: p.Unrecognized(),
	}
}

func singleValues(p *params.SingleParams) map[string]string {
	return map[string]string{
		params.FieldResponseFormat:    p.ResponseFormat,
		params.FieldEmailAddress:      p.EmailAddress,
		params.FieldResponseFields:    p.ResponseFields,
		params.FieldInclude:           p.Include,
		params.FieldFirstFrame:        strconv.Itoa(p.FirstFrame),
		params.FieldLastFrame:         optional(p.LastFrame),
		params.FieldFrameStep:         optional(p.FrameStep),
		params.FieldAPIHint:           p.APIHint,
		params.FieldContinueFromFrame: optional(p.ContinueFromFrame),
	}
}

func optional(n *int) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprint(*n)
}
