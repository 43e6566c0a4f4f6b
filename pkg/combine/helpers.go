// File: pkg/combine/helpers.go
package combine

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// WriteCombinedFile writes the optional tree and then every file content to w.
// An empty treeContent omits the tree section.
func WriteCombinedFile(w io.Writer, treeContent string, contents []FileContent, logger *zap.Logger) error {
	if treeContent != "" {
		if _, err := fmt.Fprintf(w, "%s\n%s\n", TreeHeading, treeContent); err != nil {
			logger.Error("Failed to write tree content to combined file", zap.Error(err))
			return fmt.Errorf("failed to write tree content: %w", err)
		}
	}

	if len(contents) == 0 {
		if _, err := fmt.Fprintf(w, "%s\n", NoFilesNotice); err != nil {
			return fmt.Errorf("failed to write notice: %w", err)
		}
		return nil
	}

	if _, err := fmt.Fprintf(w, "%s\n\n", FilesHeading); err != nil {
		return fmt.Errorf("failed to write heading: %w", err)
	}
	for _, content := range contents {
		if err := writeFileSection(w, content); err != nil {
			logger.Error("Failed to write content to combined file",
				zap.String("contentPath", content.Path),
				zap.Error(err))
			return fmt.Errorf("failed to write content: %w", err)
		}
	}
	return nil
}

// writeFileSection writes the header line, the body and a blank separator.
func writeFileSection(w io.Writer, content FileContent) error {
	body := content.Content
	if body != "" && !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	_, err := fmt.Fprintf(w, "%s%s\n\n%s\n", FileHeaderText, content.Path, body)
	return err
}
