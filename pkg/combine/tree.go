// File: pkg/combine/tree.go
package combine

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"codecollector/pkg/ignore"

	"go.uber.org/zap"
)

// Tree connectors.
const (
	branchConnector = "├── "
	cornerConnector = "└── "
	branchExtension = "│   "
	cornerExtension = "    "
)

// RenderTree returns an ASCII tree of root. Excluded directory names and
// paths the matcher ignores are left out. Directories are listed before
// files, each group sorted case-insensitively. The result ends with a newline.
func RenderTree(root string, excludeDirs map[string]struct{}, matcher ignore.Matcher, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var treeBuilder strings.Builder
	treeBuilder.WriteString(filepath.Base(root) + "/\n")

	lines, err := generateTreeRecursively(root, root, excludeDirs, matcher, "", logger)
	if err != nil {
		return "", err
	}
	for _, line := range lines {
		treeBuilder.WriteString(line)
		treeBuilder.WriteString("\n")
	}
	return treeBuilder.String(), nil
}

// generateTreeRecursively builds the tree lines below directory.
func generateTreeRecursively(directory, root string, excludeDirs map[string]struct{}, matcher ignore.Matcher, prefix string, logger *zap.Logger) ([]string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		logger.Warn("Failed to read directory for tree structure", zap.String("directory", directory), zap.Error(err))
		return nil, fmt.Errorf("failed to read directory '%s': %w", directory, err)
	}

	visible := entries[:0]
	for _, entry := range entries {
		if isHiddenFromTree(entry, directory, root, excludeDirs, matcher) {
			logger.Debug("Skipping entry in tree", zap.String("path", filepath.Join(directory, entry.Name())))
			continue
		}
		visible = append(visible, entry)
	}

	// Sort entries: directories first, then files, alphabetically
	sort.SliceStable(visible, func(i, j int) bool {
		if visible[i].IsDir() != visible[j].IsDir() {
			return visible[i].IsDir()
		}
		return strings.ToLower(visible[i].Name()) < strings.ToLower(visible[j].Name())
	})

	var output []string
	for i, entry := range visible {
		connector, extension := branchConnector, branchExtension
		if i == len(visible)-1 {
			connector, extension = cornerConnector, cornerExtension
		}

		if !entry.IsDir() {
			output = append(output, prefix+connector+entry.Name())
			continue
		}

		// Append '/' to directory names
		output = append(output, prefix+connector+entry.Name()+"/")
		entryPath := filepath.Join(directory, entry.Name())
		subtree, err := generateTreeRecursively(entryPath, root, excludeDirs, matcher, prefix+extension, logger)
		if err != nil {
			continue
		}
		output = append(output, subtree...)
	}
	return output, nil
}

// isHiddenFromTree applies the collection exclusion rules to one entry.
func isHiddenFromTree(entry os.DirEntry, directory, root string, excludeDirs map[string]struct{}, matcher ignore.Matcher) bool {
	if entry.IsDir() {
		if _, excluded := excludeDirs[entry.Name()]; excluded {
			return true
		}
	}
	if matcher == nil {
		return false
	}
	relPath, err := filepath.Rel(root, filepath.Join(directory, entry.Name()))
	if err != nil {
		return false
	}
	return matcher.Matches(filepath.ToSlash(relPath), entry.IsDir())
}
