// Package combine collects source files under a root directory and writes
// them, filtered, into a single consolidated artifact.
package combine

import (
	"fmt"
	"path/filepath"
	"time"

	"codecollector/pkg/ignore"

	"go.uber.org/zap"
)

// Run orchestrates one collection: it loads ignore rules, collects files,
// renders the tree and writes the artifact. Only failures to set up the run
// or to write the artifact are returned as errors.
func Run(args *Arguments, logger *zap.Logger) (*Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := time.Now()

	if err := args.Normalize(); err != nil {
		return nil, err
	}
	logger.Info("Starting combination process", zap.String("directory", args.Root))

	excludeDirs := args.ExcludeSet()

	var matcher ignore.Matcher
	if args.UseGitignore {
		set := ignore.Load(args.Root, excludeDirs, args.IgnoreEngine, logger)
		logger.Debug("Loaded ignore patterns", zap.Int("totalPatterns", set.Len()))
		matcher = set
	}

	collected, err := CollectFiles(args.Root, NewExtensionSet(args.Extensions), excludeDirs, matcher, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to collect files: %w", err)
	}
	collected = withoutPath(collected, args.Output)

	var treeContent string
	if args.Tree {
		treeContent, err = RenderTree(args.Root, excludeDirs, matcher, logger)
		if err != nil {
			logger.Warn("Failed to generate tree structure", zap.Error(err))
			treeContent = ""
		}
	}

	summary, err := executeProcess(args, treeContent, collected, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("Combination process completed",
		zap.String("outputFile", args.Output),
		zap.Int("totalFiles", summary.Files),
		zap.Duration("elapsed", time.Since(startTime)))
	return summary, nil
}

// withoutPath drops the artifact itself from the collected files, in case
// it lives under the root with an allowed extension.
func withoutPath(files []CollectedFile, output string) []CollectedFile {
	absOutput, err := filepath.Abs(output)
	if err != nil {
		return files
	}
	kept := files[:0]
	for _, file := range files {
		if filepath.Clean(file.Path) != absOutput {
			kept = append(kept, file)
		}
	}
	return kept
}
