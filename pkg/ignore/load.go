package ignore

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// FileName is the name of the ignore files discovered under the root.
const FileName = ".gitignore"

// Load walks root and compiles every .gitignore it reaches into one Set.
// Directories named in excludeDirs, and directories already ignored by the
// rules of their ancestors, are not descended into, so ignore files inside
// them are never read. Unreadable ignore files are skipped with a warning.
func Load(root string, excludeDirs map[string]struct{}, engine Engine, logger *zap.Logger) *Set {
	if logger == nil {
		logger = zap.NewNop()
	}
	set := NewSet(engine, logger)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Error accessing path while loading ignore files", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		if path != root {
			if _, excluded := excludeDirs[d.Name()]; excluded {
				return filepath.SkipDir
			}
			relPath, relErr := filepath.Rel(root, path)
			if relErr == nil && set.Matches(relPath, true) {
				logger.Debug("Skipping ignored directory while loading ignore files", zap.String("directory", path))
				return filepath.SkipDir
			}
		}

		ignorePath := filepath.Join(path, FileName)
		info, statErr := os.Stat(ignorePath)
		if statErr != nil || info.IsDir() {
			return nil
		}
		set.compileFile(root, ignorePath)
		return nil
	})
	if err != nil {
		logger.Warn("Failed to walk directory for ignore files", zap.String("root", root), zap.Error(err))
	}

	logger.Debug("Finished loading ignore files", zap.Int("totalPatterns", set.Len()))
	return set
}

// compileFile reads one .gitignore and appends its rules rebased to the
// file's directory.
func (s *Set) compileFile(root, ignorePath string) {
	rel, ok := rebaseDir(root, filepath.Dir(ignorePath))
	if !ok {
		s.logger.Warn("Ignore file is outside the traversal root, skipping",
			zap.String("filePath", ignorePath),
			zap.String("root", root))
		return
	}

	content, err := os.ReadFile(ignorePath)
	if err != nil {
		s.logger.Warn("Failed to read ignore file, skipping", zap.String("filePath", ignorePath), zap.Error(err))
		return
	}

	lines := strings.Split(string(content), "\n")
	count := s.AddLines(rel, ignorePath, lines...)
	s.logger.Debug("Compiled ignore patterns from file",
		zap.String("filePath", ignorePath),
		zap.String("base", rel),
		zap.Int("patternCount", count))
}

// rebaseDir expresses dir relative to root in slash form. It fails when dir
// is not inside root.
func rebaseDir(root, dir string) (string, bool) {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	if rel == "." {
		return "", true
	}
	return rel, true
}
