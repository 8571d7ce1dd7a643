package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"trainmatrix/internal/matrix"
)

// Exit codes for CLI commands.
// These follow common conventions so CI wrappers can react semantically.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeInvalidConfig indicates a bunch file or parameter source that
	// failed structural validation.
	ExitCodeInvalidConfig = 2
)

// rootCmd represents the base command for the trainmatrix application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "trainmatrix",
	Short: "Expand declarative test bunches into concrete training test matrices",
	Long: `trainmatrix expands declarative "test bunch" files (model/dataset/usecase
parameter groups) into the full concrete test matrix used by multi-stage
training integration suites: one record per model × dataset × stage, each with
a stable human-readable test id.

The same engine backs the suites at runtime, deciding when an expensive
multi-stage test case object can be reused across stages and when it must be
rebuilt.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It initializes and executes the root command, which in turn handles subcommands and flags.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "trainmatrix version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	var confErr *matrix.ConfigurationError
	if errors.As(err, &confErr) {
		return ExitCodeInvalidConfig
	}
	return ExitCodeError
}
