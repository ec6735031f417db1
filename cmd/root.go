// Package cmd implements the command-line interface for depsync.
// It provides the check command for reconciling manifest dependencies
// against the registry, plus version information.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ajxudir/depsync/pkg/errors"
	"github.com/ajxudir/depsync/pkg/verbose"
)

var exitFunc = os.Exit
var verboseFlag bool
var versionFlag bool

var rootCmd = &cobra.Command{
	Use:   "depsync",
	Short: "npm dependency version reconciler",
	Long:  `Compare the dependencies declared in a package.json against the latest registry versions, and optionally apply the updates.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			verbose.Enable()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if versionFlag {
			printVersionOutput()
			return
		}
		_ = cmd.Help()
	},
}

// Execute runs the root command and exits with appropriate code:
//   - 0: Success (per-package fetch warnings do not change this)
//   - 1: Updates available, only with --fail-on-outdated
//   - 2: Unexpected failure
//   - 3: Configuration or manifest error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		code := errors.GetExitCode(err)
		verbose.Infof("Exit code %d: %v", code, err)
		exitFunc(code)
	}
}

// ExecuteTest runs the root command for testing (returns error instead of exiting).
//
// Unlike Execute(), this function returns the error directly without calling
// os.Exit, making it suitable for use in test suites.
//
// Returns:
//   - error: Command execution error, or nil on success
func ExecuteTest() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable verbose debug output")

	// -v/--version is a LOCAL flag so it only works on the root command
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "v", false, "Show version information")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(checkCmd)
}
