package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	m "gooze.dev/pkg/forkest/internal/model"
)

// showCmd represents the show command.
var showCmd = newShowCmd()

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [report-file]",
		Short: "Render a saved run report",
		Long:  "Render a saved run report; with no argument the latest report in the output directory is shown.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var report m.Path
			if len(args) == 1 {
				report = m.Path(args[0])
			} else {
				latest, err := reportStore.LatestRun(m.Path(viper.GetString(outputFlagName)))
				if err != nil {
					return err
				}

				report = latest
			}

			return activeWorkflow(cmd).Show(cmd.Context(), report)
		},
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
}
