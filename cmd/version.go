package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Nikolay-Chillev/ghrepo/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(version.Full())
		},
	}
}
