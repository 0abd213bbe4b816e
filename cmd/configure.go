package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Nikolay-Chillev/ghrepo/errs"
	"github.com/Nikolay-Chillev/ghrepo/settings"
)

// newConfigureCommand persists the currently resolved token and host to the
// config file, so later invocations no longer need --token or GITHUB_TOKEN.
func newConfigureCommand(config *settings.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Persist the resolved token and host to the config file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if config.Token == "" {
				return errs.Validationf("GitHub token is required. Pass --token or set GITHUB_TOKEN.")
			}
			if err := config.WriteToDisk(); err != nil {
				return err
			}
			cmd.Printf("Configuration written to %s\n", config.FileUsed)
			return nil
		},
		Example: `ghrepo configure --token <token>`,
	}
}
