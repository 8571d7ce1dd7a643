package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"trainmatrix/internal/formatting"
	"trainmatrix/internal/matrix"
	"trainmatrix/internal/matrix/mock"
)

var (
	listConfigPath string
	listUsecase    string
	listOutput     string
	listVerbose    bool
	listDebug      bool
	listWatch      bool
)

// completeOutputFlag provides shell completion for the output flag
func completeOutputFlag(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"table", "json"}, cobra.ShellCompDirectiveDefault
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Expand bunch files and list the concrete test matrix",
	Long: `The list command loads declarative test bunch files and prints the fully
expanded test matrix: one record per model × dataset × stage combination,
each with its generated test id.

The expansion is exactly the one the test suites see at collection time, so
the output can be used to review what a usecase (e.g. precommit, nightly)
will run before it runs.

Example usage:
  trainmatrix list --config bunches/                 # Expand all bunch files
  trainmatrix list --config bunches/ --usecase precommit
  trainmatrix list --config detection.yaml --output json
  trainmatrix list --config bunches/ --watch         # Re-render on file change`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listConfigPath, "config", "", "Path to a bunch file or a directory of bunch files")
	listCmd.Flags().StringVar(&listUsecase, "usecase", "", "Only expand bunches with this usecase tag")
	listCmd.Flags().StringVar(&listOutput, "output", "table", "Output format (table, json)")
	listCmd.Flags().BoolVar(&listVerbose, "verbose", false, "Enable verbose output")
	listCmd.Flags().BoolVar(&listDebug, "debug", false, "Enable debug logging")
	listCmd.Flags().BoolVar(&listWatch, "watch", false, "Watch the config path and re-render on changes")

	_ = listCmd.MarkFlagRequired("config")
	_ = listCmd.RegisterFlagCompletionFunc("output", completeOutputFlag)

	listCmd.MarkFlagsMutuallyExclusive("watch", "output")

	listCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if listOutput != "table" && listOutput != "json" {
			return fmt.Errorf("invalid output format %q, must be 'table' or 'json'", listOutput)
		}
		return nil
	}
}

// matrixRecord is one expanded record in JSON output.
type matrixRecord struct {
	Suite      string                `json:"suite"`
	TestID     string                `json:"test_id"`
	Parameters matrix.TestParameters `json:"parameters"`
}

// expandBunchFiles loads the bunch files under configPath and expands each
// into its concrete matrix, returning per-file record/id lists in file order.
func expandBunchFiles(configPath, usecase string, logger matrix.Logger) ([]*matrix.BunchFile, [][]matrix.TestParameters, [][]string, error) {
	loader := matrix.NewBunchLoaderWithLogger(listDebug, logger)
	files, err := loader.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load bunch files: %w", err)
	}
	files = matrix.FilterByUsecase(files, usecase)

	var allValues [][]matrix.TestParameters
	var allIDs [][]string
	for _, file := range files {
		factory := mock.NewCaseFactory(file.StageList()...)
		helper, err := matrix.NewHelperWithLogger(file, factory, logger)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("bunch file %q: %w", file.Name, err)
		}

		_, values, ids, err := helper.ExpandMatrix(usecase)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("bunch file %q: %w", file.Name, err)
		}
		allValues = append(allValues, values)
		allIDs = append(allIDs, ids)
	}

	return files, allValues, allIDs, nil
}

func runList(cmd *cobra.Command, args []string) error {
	// JSON output must stay machine-readable, so all status logging is
	// suppressed in that mode.
	var logger matrix.Logger
	if listOutput == "json" {
		logger = matrix.NewSilentLogger(listVerbose, listDebug)
	} else {
		logger = matrix.NewStdoutLogger(listVerbose, listDebug)
	}

	render := func() error {
		files, allValues, allIDs, err := expandBunchFiles(listConfigPath, listUsecase, logger)
		if err != nil {
			return err
		}

		if listOutput == "json" {
			var records []matrixRecord
			for i, file := range files {
				for j, params := range allValues[i] {
					records = append(records, matrixRecord{
						Suite:      file.Name,
						TestID:     allIDs[i][j],
						Parameters: params,
					})
				}
			}
			data, err := json.MarshalIndent(records, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal matrix to JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		formatter := formatting.NewMatrixFormatter(cmd.OutOrStdout())
		total := 0
		for i, file := range files {
			formatter.FormatMatrix(file.Name, allValues[i], allIDs[i])
			total += len(allValues[i])
		}
		formatter.FormatSummary(len(files), total)
		return nil
	}

	if !listWatch {
		return render()
	}

	return watchAndRender(cmd, logger, render)
}

// watchAndRender renders once, then re-renders whenever the config path
// changes, until interrupted.
func watchAndRender(cmd *cobra.Command, logger matrix.Logger, render func() error) error {
	if err := render(); err != nil {
		// In watch mode a broken file is not fatal; the next save may fix it.
		logger.Error("⚠️  %v\n", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(listConfigPath); err != nil {
		return fmt.Errorf("failed to watch %s: %w", listConfigPath, err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	logger.Info("👀 Watching %s for changes (Ctrl+C to stop)...\n", listConfigPath)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("🔄 Change detected: %s\n", event)
			if err := render(); err != nil {
				logger.Error("⚠️  %v\n", err)
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("⚠️  watch error: %v\n", watchErr)
		case <-sigChan:
			fmt.Fprintln(cmd.OutOrStdout(), "\nStopping watch.")
			return nil
		case <-cmd.Context().Done():
			return nil
		}
	}
}
