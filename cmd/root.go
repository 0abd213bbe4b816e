package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Nikolay-Chillev/ghrepo/api/header"
	"github.com/Nikolay-Chillev/ghrepo/cmd/repo"
	"github.com/Nikolay-Chillev/ghrepo/cmd/validator"
	"github.com/Nikolay-Chillev/ghrepo/errs"
	"github.com/Nikolay-Chillev/ghrepo/logger"
	"github.com/Nikolay-Chillev/ghrepo/settings"
)

// Logger is exposed here so we can access it from subcommands.
// This allows us to print to the log at anytime from within the `cmd` package.
var Logger *logger.Logger

// Execute adds all child commands to rootCmd and sets flags appropriately.
// This function is called by main.main().
func Execute() error {
	config := &settings.Config{}
	if err := config.Load(); err != nil {
		logger.NewLogger(false).Error("Failed to load configuration: ", err)
		return err
	}

	rootCmd := MakeCommands(config)
	return rootCmd.Execute()
}

// MakeCommands builds the root `ghrepo` command with all subcommands attached.
func MakeCommands(config *settings.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ghrepo",
		Short: "Manage GitHub repositories from the command line.",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			Logger = logger.NewLogger(config.Debug)
			header.SetCommandStr(commandStr(cmd))
			Logger.Debug("using host %s", config.Host)
		},
		SilenceUsage: true,
	}

	bindRootFlags(rootCmd.PersistentFlags(), config)

	rootCmd.AddCommand(repo.NewRepoCommand(config, tokenValidator(config)))
	rootCmd.AddCommand(newConfigureCommand(config))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func bindRootFlags(flags *pflag.FlagSet, config *settings.Config) {
	flags.StringVar(&config.Token, "token", config.Token, "your token for using the GitHub API")
	flags.StringVar(&config.Host, "host", config.Host, "the host of the GitHub API")
	flags.BoolVar(&config.Debug, "debug", config.Debug, "Enable debug logging.")
}

// tokenValidator rejects commands early when no token could be resolved,
// before any request leaves the process.
func tokenValidator(config *settings.Config) validator.Validator {
	return func(_ *cobra.Command, _ []string) error {
		if config.Token == "" {
			return errs.Validationf("GitHub token is required. Set GITHUB_TOKEN environment variable or pass --token.")
		}
		return nil
	}
}

// commandStr returns the subcommand path without the binary name, e.g.
// `repo create`, for the request header.
func commandStr(cmd *cobra.Command) string {
	return strings.TrimSpace(strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()))
}
