package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"trainmatrix/internal/matrix"
	"trainmatrix/internal/matrix/mock"
)

var (
	validateConfigPath string
	validateVerbose    bool
	validateDebug      bool
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate bunch files without running anything",
	Long: `The validate command loads declarative test bunch files, constructs the
matrix engine for each one and performs a dry expansion, reporting every
structural problem it finds: missing required id-naming keys, malformed
bunches, empty model or dataset lists.

This is the same validation the suites perform at collection time, so a clean
validate run means collection will not fail on configuration.

Example usage:
  trainmatrix validate --config bunches/
  trainmatrix validate --config detection.yaml --verbose`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateConfigPath, "config", "", "Path to a bunch file or a directory of bunch files")
	validateCmd.Flags().BoolVar(&validateVerbose, "verbose", false, "Enable verbose output")
	validateCmd.Flags().BoolVar(&validateDebug, "debug", false, "Enable debug logging")

	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger := matrix.NewStdoutLogger(validateVerbose, validateDebug)

	loader := matrix.NewBunchLoaderWithLogger(validateDebug, logger)
	files, err := loader.Load(validateConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load bunch files: %w", err)
	}

	if len(files) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "⚠️  No bunch files found in %s\n", validateConfigPath)
		return nil
	}

	failed := 0
	for _, file := range files {
		if err := validateBunchFile(file, logger); err != nil {
			failed++
			fmt.Fprintf(cmd.OutOrStdout(), "❌ %s: %v\n", file.Name, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ %s\n", file.Name)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d bunch files failed validation", failed, len(files))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n✅ All %d bunch files passed validation\n", len(files))
	return nil
}

// validateBunchFile runs engine construction plus a dry expansion, the exact
// checks a suite performs at collection time.
func validateBunchFile(file *matrix.BunchFile, logger matrix.Logger) error {
	factory := mock.NewCaseFactory(file.StageList()...)
	helper, err := matrix.NewHelperWithLogger(file, factory, logger)
	if err != nil {
		return err
	}

	_, values, _, err := helper.ExpandMatrix("")
	if err != nil {
		return err
	}

	logger.Info("  • %s expands to %d records\n", file.Name, len(values))
	return nil
}
