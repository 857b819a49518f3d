package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gooze.dev/pkg/forkest/internal/domain"
	m "gooze.dev/pkg/forkest/internal/model"
)

var runParallelFlag int
var runTimeoutFlag time.Duration

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <test-binary> [tests...]",
		Short: "Run each test of a test binary in its own process",
		Long: `Run tests from a compiled Go test binary, one child process per test.
When no test names are given, every test compiled into the binary runs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			binary, tests := parseBinaryArgs(args)

			return activeWorkflow(cmd).Run(cmd.Context(), domain.RunArgs{
				Binary:  binary,
				Tests:   tests,
				Exclude: viper.GetStringSlice(excludeConfigKey),
				Threads: viper.GetInt(parallelConfigKey),
				Timeout: viper.GetDuration(timeoutConfigKey),
				Reports: m.Path(viper.GetString(outputFlagName)),
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&runParallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of tests run concurrently")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)

	cmd.Flags().DurationVarP(&runTimeoutFlag, timeoutFlagName, "t", viper.GetDuration(timeoutConfigKey), "per-test wall-clock timeout (0 disables)")
	bindFlagToConfig(cmd.Flags().Lookup(timeoutFlagName), timeoutConfigKey)
}
