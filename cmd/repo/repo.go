package repo

import (
	"encoding/json"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	reposapi "github.com/Nikolay-Chillev/ghrepo/api/repos"
	"github.com/Nikolay-Chillev/ghrepo/cmd/validator"
	"github.com/Nikolay-Chillev/ghrepo/settings"
)

// repoOpts repo command options
type repoOpts struct {
	cfg *settings.Config
	// newClient is swapped out in tests
	newClient func(config settings.Config) (reposapi.RepoClient, error)
}

// NewRepoCommand repository management cobra command creation
func NewRepoCommand(config *settings.Config, preRunE validator.Validator) *cobra.Command {
	return newRepoCommand(config, preRunE, func(config settings.Config) (reposapi.RepoClient, error) {
		return reposapi.NewRepoClient(config)
	})
}

func newRepoCommand(config *settings.Config, preRunE validator.Validator, newClient func(settings.Config) (reposapi.RepoClient, error)) *cobra.Command {
	opts := &repoOpts{
		cfg:       config,
		newClient: newClient,
	}

	jsonFormat := false

	command := &cobra.Command{
		Use:   "repo",
		Short: "Operate on repositories of the authenticated user",
	}
	command.PersistentFlags().BoolVar(&jsonFormat, "json", false,
		"Return output back in JSON format")

	command.AddCommand(newCreateCommand(opts, preRunE))
	command.AddCommand(newGetCommand(opts, preRunE))
	command.AddCommand(newUpdateCommand(opts, preRunE))
	command.AddCommand(newDeleteCommand(opts, preRunE))

	return command
}

func newCreateCommand(opts *repoOpts, preRunE validator.Validator) *cobra.Command {
	var description string
	var private bool

	command := &cobra.Command{
		Use:     "create <name>",
		Short:   "Create a repository for the authenticated user",
		Long:    `Create a repository for the authenticated user. The repository starts empty.`,
		PreRunE: preRunE,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient(*opts.cfg)
			if err != nil {
				return err
			}
			repository, err := client.CreateRepo(args[0], description, private)
			if err != nil {
				return err
			}
			return printRepo(cmd, repository)
		},
		Args:    cobra.ExactArgs(1),
		Example: `ghrepo repo create my-project --description "A new project" --private`,
	}
	command.Flags().StringVarP(&description, "description", "d", "", "Description of the repository")
	command.Flags().BoolVar(&private, "private", false, "Make the repository private")
	return command
}

func newGetCommand(opts *repoOpts, preRunE validator.Validator) *cobra.Command {
	return &cobra.Command{
		Use:     "get <name>",
		Short:   "Show a repository of the authenticated user",
		PreRunE: preRunE,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient(*opts.cfg)
			if err != nil {
				return err
			}
			repository, err := client.GetRepo(args[0])
			if err != nil {
				return err
			}
			return printRepo(cmd, repository)
		},
		Args:    cobra.ExactArgs(1),
		Example: `ghrepo repo get my-project`,
	}
}

func newUpdateCommand(opts *repoOpts, preRunE validator.Validator) *cobra.Command {
	return &cobra.Command{
		Use:     "update <name> <description>",
		Short:   "Update the description of a repository",
		PreRunE: preRunE,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient(*opts.cfg)
			if err != nil {
				return err
			}
			repository, err := client.UpdateRepo(args[0], args[1])
			if err != nil {
				return err
			}
			return printRepo(cmd, repository)
		},
		Args:    cobra.ExactArgs(2),
		Example: `ghrepo repo update my-project "A better description"`,
	}
}

func newDeleteCommand(opts *repoOpts, preRunE validator.Validator) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>",
		Short:   "Delete a repository of the authenticated user",
		PreRunE: preRunE,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient(*opts.cfg)
			if err != nil {
				return err
			}
			if err := client.DeleteRepo(args[0]); err != nil {
				return err
			}
			cmd.Printf("Deleted repository '%s/%s'\n", client.Login(), args[0])
			return nil
		},
		Args:    cobra.ExactArgs(1),
		Example: `ghrepo repo delete my-project`,
	}
}

// printRepo renders a repository either as JSON or as a table, depending on
// the persistent --json flag.
func printRepo(cmd *cobra.Command, repository *reposapi.Repository) error {
	jsonVal, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	if jsonVal {
		jsonResp, err := json.Marshal(repository)
		if err != nil {
			return err
		}
		jsonWriter := cmd.OutOrStdout()
		if _, err := jsonWriter.Write(jsonResp); err != nil {
			return err
		}
		return nil
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Name", "Full Name", "Private", "Default Branch", "Description"})
	table.Append([]string{
		repository.Name,
		repository.FullName,
		strconv.FormatBool(repository.Private),
		repository.DefaultBranch,
		repository.Description,
	})
	table.Render()

	return nil
}
