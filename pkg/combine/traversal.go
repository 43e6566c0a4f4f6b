// File: pkg/combine/traversal.go
package combine

import (
	"io/fs"
	"path/filepath"
	"strings"

	"codecollector/pkg/ignore"

	"go.uber.org/zap"
)

// CollectFiles walks root and returns the files with an allowed extension,
// in walk order. Directories whose name is in excludeDirs or which the
// matcher ignores are pruned before they are entered. A nil matcher ignores
// nothing.
func CollectFiles(root string, exts ExtensionSet, excludeDirs map[string]struct{}, matcher ignore.Matcher, logger *zap.Logger) ([]CollectedFile, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var collected []CollectedFile
	logger.Debug("Starting file traversal and collection",
		zap.String("root", root),
		zap.Strings("extensions", exts.Sorted()))

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil // Skip paths that cause errors
		}
		if path == root {
			return nil
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			logger.Warn("Unable to determine relative path, skipping", zap.String("path", path), zap.Error(relErr))
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if _, excluded := excludeDirs[d.Name()]; excluded {
				logger.Debug("Skipping excluded directory during traversal", zap.String("directory", path))
				return filepath.SkipDir
			}
			if matcher != nil && matcher.Matches(relPath, true) {
				logger.Debug("Skipping ignored directory during traversal", zap.String("directory", path))
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if matcher != nil && matcher.Matches(relPath, false) {
			logger.Debug("Skipping ignored file during traversal", zap.String("filePath", path))
			return nil
		}
		if !exts.Contains(d.Name()) {
			return nil
		}

		collected = append(collected, CollectedFile{
			Path:    path,
			RelPath: relPath,
			Ext:     strings.ToLower(filepath.Ext(d.Name())),
		})
		logger.Debug("Added file to processing list during traversal", zap.String("filePath", path))
		return nil
	})
	if err != nil {
		logger.Error("Error during file traversal", zap.Error(err))
		return collected, err
	}

	logger.Debug("Completed file traversal and collection", zap.Int("files", len(collected)))
	return collected, nil
}
