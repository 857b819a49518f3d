package cmd

import (
	"github.com/spf13/cobra"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <test-binary>",
		Short: "List the tests compiled into a test binary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			binary, _ := parseBinaryArgs(args)

			return activeWorkflow(cmd).List(cmd.Context(), binary)
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
