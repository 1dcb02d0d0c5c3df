// Package providers provides the providers command for the optimade CLI.
package providers

import (
	"github.com/spf13/cobra"

	"github.com/optimade/optimade-go/cmd/application"
	"github.com/optimade/optimade-go/internal/cmd/output"
	"github.com/optimade/optimade-go/pkg/errors"
)

// NewCommand creates the providers command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "providers",
		GroupID: "core",
		Short:   "Inspect the OPTIMADE provider list",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newListCommand(app))
	return cmd
}

func newListCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Resolve and print the provider list",
		Long: `Resolve the provider list the way the links endpoint does: try each
configured source in order and keep the first list that loads. The example
provider is left out. When no source answers, a warning is logged and the
list is empty.`,
		Example: `  optimade providers list
  optimade providers list -o yaml
  optimade providers list --refresh -o wide`,
		RunE: func(cmd *cobra.Command, args []string) error {
			refresh, err := cmd.Flags().GetBool("refresh")
			if err != nil {
				return err
			}
			return runList(cmd, app, refresh)
		},
	}
	cmd.Flags().Bool("refresh", false, "Ignore cached and bundled lists and fetch again")
	return cmd
}

func runList(cmd *cobra.Command, app application.Application, refresh bool) error {
	resolver, err := app.Resolver()
	if err != nil {
		return err
	}
	if resolver == nil {
		return errors.NewConfigError("providers", "no provider resolver configured", nil)
	}
	if refresh {
		resolver.Cache().Invalidate()
	}

	records, err := resolver.Resolve(cmd.Context())
	if err != nil {
		return err
	}

	app.Logger().Debug().Int("count", len(records)).Msg("Providers resolved")
	return output.Write(cmd.OutOrStdout(), app.OutputFormat(), output.ProviderList(records))
}
