package combine

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"codecollector/pkg/strip"

	"go.uber.org/zap"
)

// Placeholder comments written in place of a file body.
const (
	unreadablePlaceholder = "<!-- Could not read file: %v -->\n"
	binaryPlaceholder     = "<!-- Skipped binary file -->\n"
	oversizePlaceholder   = "<!-- Skipped file larger than %d KB -->\n"
)

// ProcessSingleFile reads a collected file and filters its lines. Read
// failures, binary content and oversized files produce a placeholder body
// instead of an error so the caller can keep going.
func ProcessSingleFile(file CollectedFile, maxFileSizeKB int, logger *zap.Logger) FileContent {
	logger.Debug("Processing file", zap.String("filePath", file.Path))

	placeholder := func(format string, args ...any) FileContent {
		return FileContent{Path: file.RelPath, Content: fmt.Sprintf(format, args...), Placeholder: true}
	}

	if maxFileSizeKB > 0 {
		info, err := os.Stat(file.Path)
		if err != nil {
			logger.Warn("Failed to stat file", zap.String("filePath", file.Path), zap.Error(err))
			return placeholder(unreadablePlaceholder, err)
		}
		if info.Size() > int64(maxFileSizeKB)*1024 {
			logger.Info("Skipping file due to size limit",
				zap.String("filePath", file.Path),
				zap.Int64("sizeBytes", info.Size()),
				zap.Int("maxSizeKB", maxFileSizeKB))
			return placeholder(oversizePlaceholder, maxFileSizeKB)
		}
	}

	fileBytes, err := os.ReadFile(file.Path)
	if err != nil {
		logger.Warn("Failed to read file", zap.String("filePath", file.Path), zap.Error(err))
		return placeholder(unreadablePlaceholder, err)
	}
	if isBinaryContent(fileBytes) {
		logger.Info("Skipping binary file", zap.String("filePath", file.Path))
		return placeholder(binaryPlaceholder)
	}

	var body strings.Builder
	lines, err := strip.Filter(bytes.NewReader(fileBytes), &body, file.Ext)
	if err != nil {
		logger.Warn("Failed to filter file", zap.String("filePath", file.Path), zap.Error(err))
		return placeholder(unreadablePlaceholder, err)
	}

	logger.Debug("Filtered file content",
		zap.String("filePath", file.Path),
		zap.Int("contentSizeBytes", len(fileBytes)),
		zap.Int("linesKept", lines))

	return FileContent{Path: file.RelPath, Content: body.String()}
}
