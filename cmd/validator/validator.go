package validator

import "github.com/spf13/cobra"

// Validator is a PreRunE-compatible check shared by commands that need a
// resolved token before running.
type Validator func(cmd *cobra.Command, args []string) error
