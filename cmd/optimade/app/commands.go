package app

import (
	"github.com/spf13/cobra"

	"github.com/optimade/optimade-go/cmd/optimade/cmd/params"
	"github.com/optimade/optimade-go/cmd/optimade/cmd/providers"
	"github.com/optimade/optimade-go/cmd/optimade/cmd/serve"
	"github.com/optimade/optimade-go/internal/server"
	"github.com/optimade/optimade-go/internal/server/response"
)

// CreateServeCommand creates the serve command with app dependencies.
func (a *App) CreateServeCommand() *cobra.Command {
	return serve.NewCommand(a, a.serverConfig)
}

// serverConfig maps the application configuration onto the server defaults.
func (a *App) serverConfig() server.Config {
	cfg := server.DefaultConfig()
	cfg.Host = a.config.Host
	cfg.Port = a.config.Port
	cfg.BaseURL = a.config.BaseURL
	cfg.RootPath = a.config.RootPath
	cfg.PageLimitMax = a.config.PageLimitMax
	cfg.RateLimit = a.config.RateLimit
	if len(a.config.CORSOrigins) > 0 {
		cfg.CORSOrigins = a.config.CORSOrigins
	}
	if a.config.ProviderPrefix != cfg.Provider.Prefix {
		cfg.Provider = response.Provider{
			Name:   a.config.ProviderPrefix,
			Prefix: a.config.ProviderPrefix,
		}
	}
	return cfg
}

// CreateProvidersCommand creates the providers command with app dependencies.
func (a *App) CreateProvidersCommand() *cobra.Command {
	return providers.NewCommand(a)
}

// CreateParamsCommand creates the params command with app dependencies.
func (a *App) CreateParamsCommand() *cobra.Command {
	return params.NewCommand(a)
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("optimade %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
