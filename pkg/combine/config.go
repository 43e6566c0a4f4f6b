// File: pkg/combine/config.go
package combine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"codecollector/pkg/ignore"
)

// Default values for the command-line flags.
var (
	DefaultExtensions  = []string{".kt", ".kts", ".java", ".svelte", ".js", ".ts", ".html", ".css", ".py"}
	DefaultExcludeDirs = []string{"build", "venv", ".git", "node_modules"}
)

// DefaultOutput is the artifact written when no output path is given.
const DefaultOutput = "codebase.prompt"

// Arguments holds the configuration options for one collection run.
type Arguments struct {
	Root          string        // Traversal root; resolved to an absolute path by Normalize.
	Output        string        // Destination path for the consolidated artifact.
	Extensions    []string      // Allowed file extensions.
	ExcludeDirs   []string      // Directory names pruned anywhere in the tree.
	Tree          bool          // If true, the artifact starts with an ASCII tree.
	UseGitignore  bool          // If true, .gitignore files under Root are honored.
	IgnoreEngine  ignore.Engine // Engine evaluating .gitignore rules.
	MaxFileSizeKB int           // Files larger than this are replaced by a placeholder; 0 disables.
	Capture       bool          // If true, Summary.Artifact holds a copy of the artifact.
}

// Normalize resolves the root, validates it and fills defaults.
func (a *Arguments) Normalize() error {
	if a.Root == "" {
		a.Root = "."
	}
	absRoot, err := filepath.Abs(a.Root)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for %q: %w", a.Root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return fmt.Errorf("cannot access start directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("start directory %q is not a directory", absRoot)
	}
	a.Root = absRoot

	if a.Output == "" {
		a.Output = DefaultOutput
	}
	if a.IgnoreEngine == "" {
		a.IgnoreEngine = ignore.EngineGit
	}
	if a.MaxFileSizeKB < 0 {
		return errors.New("max file size must not be negative")
	}
	return nil
}

// ExcludeSet returns the excluded directory names as a set.
func (a *Arguments) ExcludeSet() map[string]struct{} {
	set := make(map[string]struct{}, len(a.ExcludeDirs))
	for _, name := range a.ExcludeDirs {
		name = strings.Trim(strings.TrimSpace(name), `/\`)
		if name != "" {
			set[name] = struct{}{}
		}
	}
	return set
}

// ExtensionSet is a set of lowercase, dot-prefixed file extensions.
type ExtensionSet map[string]struct{}

// NewExtensionSet normalizes extensions such as "go", ".GO" or "*.go" to ".go".
func NewExtensionSet(extensions []string) ExtensionSet {
	set := make(ExtensionSet, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		ext = strings.TrimPrefix(ext, "*")
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}

// Contains reports whether name ends with an allowed extension. The
// comparison is case-insensitive and multi-dot entries such as ".d.ts" work.
func (s ExtensionSet) Contains(name string) bool {
	lower := strings.ToLower(name)
	for ext := range s {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Sorted returns the extensions in lexical order.
func (s ExtensionSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for ext := range s {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
