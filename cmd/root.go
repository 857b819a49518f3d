// Package cmd provides the root command and CLI setup for forkest.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gooze.dev/pkg/forkest/internal/adapter"
	"gooze.dev/pkg/forkest/internal/controller"
	"gooze.dev/pkg/forkest/internal/domain"
	m "gooze.dev/pkg/forkest/internal/model"
)

var binaryAdapter adapter.BinaryAdapter
var reportStore adapter.ReportStore
var orchestrator domain.Orchestrator

// workflow is resolved lazily by activeWorkflow so the UI choice can
// honor the parsed flags; tests inject a fake here.
var workflow domain.Workflow

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// excludePatterns is a root-level flag that filters tests for applicable commands.
var excludePatterns []string

// plainFlag forces the non-interactive UI even on terminals.
var plainFlag bool

// verboseFlag raises the log level to debug.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	binaryAdapter = adapter.NewLocalBinaryAdapter()
	reportStore = adapter.NewReportStore()
	orchestrator = domain.NewOrchestrator(binaryAdapter)
}

const rootLongDescription = `Forkest runs every test of a compiled Go test binary in its own child
process, so a crash, abort, or hang in one test cannot take down the
others or the harness. Verdicts are derived from each child's actual
termination behavior, with an optional per-test timeout.

Build the test binary first, e.g.:
  go test -c ./pkg/thing -o thing.test
  forkest run thing.test`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forkest",
		Short: "Run Go tests in isolated child processes",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for run reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude tests matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVar(&plainFlag, plainFlagName, viper.GetBool(plainConfigKey), "plain output even on a terminal")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(plainFlagName), plainConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "debug logging")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// activeWorkflow returns the injected workflow, or builds the real one
// with a UI matching the current terminal and flags.
func activeWorkflow(cmd *cobra.Command) domain.Workflow {
	if workflow != nil {
		return workflow
	}

	interactive := controller.IsTTY(os.Stdout) && !viper.GetBool(plainConfigKey)
	ui := controller.NewUI(cmd, interactive)

	return domain.NewWorkflow(binaryAdapter, reportStore, ui, orchestrator)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parseBinaryArgs(args []string) (binary m.Path, tests []string) {
	if len(args) == 0 {
		return "", nil
	}

	return m.Path(args[0]), args[1:]
}
