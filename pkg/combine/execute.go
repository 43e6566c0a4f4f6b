// File: pkg/combine/execute.go
package combine

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// executeProcess creates the artifact and fills it. The file is flushed and
// closed on every path.
func executeProcess(args *Arguments, treeContent string, collected []CollectedFile, logger *zap.Logger) (summary *Summary, err error) {
	if err := ensureDirectory(filepath.Dir(args.Output), logger); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	outFile, err := os.Create(args.Output)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", args.Output), zap.Error(err))
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil {
			logger.Error("Failed to close output file", zap.String("file", args.Output), zap.Error(closeErr))
			if err == nil {
				err = fmt.Errorf("failed to close output file: %w", closeErr)
			}
		}
	}()

	writer := bufio.NewWriter(outFile)
	var captured strings.Builder
	var dest io.Writer = writer
	if args.Capture {
		dest = io.MultiWriter(writer, &captured)
	}

	contents := make([]FileContent, 0, len(collected))
	placeholders := 0
	for _, file := range collected {
		content := ProcessSingleFile(file, args.MaxFileSizeKB, logger)
		if content.Placeholder {
			placeholders++
		}
		contents = append(contents, content)
	}

	writeErr := WriteCombinedFile(dest, treeContent, contents, logger)
	if flushErr := writer.Flush(); flushErr != nil && writeErr == nil {
		logger.Error("Failed to flush output file", zap.String("file", args.Output), zap.Error(flushErr))
		writeErr = fmt.Errorf("failed to flush output: %w", flushErr)
	}
	if writeErr != nil {
		return nil, writeErr
	}

	if len(collected) == 0 {
		logger.Warn("No files to process after filtering.")
	}

	return &Summary{
		Output:       args.Output,
		Files:        len(collected),
		Placeholders: placeholders,
		TreeIncluded: treeContent != "",
		Artifact:     captured.String(),
	}, nil
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Ensured directory exists", zap.String("path", path))
	return nil
}
