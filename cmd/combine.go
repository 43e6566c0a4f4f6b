package cmd

import (
	"fmt"
	"os"

	"codecollector/pkg/combine"
	"codecollector/pkg/ignore"
	"codecollector/pkg/logging"
	"codecollector/pkg/version"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// setupLogger configures the global logger for this run.
func setupLogger(debug bool) error {
	if err := logging.Setup(debug, "codecollector", version.Get().Version); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// runCollect builds the arguments from flags and environment, runs the
// collection and reports the result on stdout.
func runCollect(cmd *cobra.Command, args []string, v *viper.Viper) error {
	logger := logging.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	engine, err := ignore.ParseEngine(v.GetString(flagIgnoreEngine))
	if err != nil {
		return err
	}

	collectArgs := &combine.Arguments{
		Root:          ".",
		Output:        v.GetString(flagOutput),
		Extensions:    listValue(v, flagExtensions),
		ExcludeDirs:   listValue(v, flagExclude),
		Tree:          !v.GetBool(flagNoTree),
		UseGitignore:  !v.GetBool(flagNoIgnore),
		IgnoreEngine:  engine,
		MaxFileSizeKB: v.GetInt(flagMaxSize),
		Capture:       v.GetBool(flagClipboard),
	}
	if len(args) > 0 {
		collectArgs.Root = args[0]
	}

	summary, err := combine.Run(collectArgs, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if summary.Files == 0 {
		fmt.Fprintln(out, "No files found with the specified extensions.")
	} else {
		fmt.Fprintf(out, "Consolidated %d files into '%s', excluding import statements.\n", summary.Files, summary.Output)
	}
	if summary.Placeholders > 0 {
		fmt.Fprintf(out, "%d files could not be included and were replaced by a placeholder.\n", summary.Placeholders)
	}
	if summary.TreeIncluded {
		fmt.Fprintln(out, "A folder structure (ASCII tree) is included at the top of the output file.")
	}

	if collectArgs.Capture {
		if err := clipboard.WriteAll(summary.Artifact); err != nil {
			logger.Warn("Failed to copy output to clipboard", zap.Error(err))
			fmt.Fprintf(os.Stderr, "Error writing to clipboard: %v\n", err)
		} else {
			fmt.Fprintln(out, "Output copied to clipboard.")
		}
	}
	return nil
}
