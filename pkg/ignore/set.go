// Package ignore translates nested .gitignore files into a single rule set
// anchored at one traversal root.
package ignore

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Matcher reports whether a slash-separated path relative to the traversal
// root is ignored.
type Matcher interface {
	Matches(relPath string, isDir bool) bool
}

// Engine selects the implementation used to evaluate rules.
type Engine string

const (
	// EngineGit evaluates rules with go-git's gitignore matcher.
	EngineGit Engine = "gitignore"
	// EngineRegexp evaluates rules as translated regular expressions.
	EngineRegexp Engine = "regexp"
)

// ParseEngine validates an engine name from the command line.
func ParseEngine(name string) (Engine, error) {
	switch Engine(strings.ToLower(strings.TrimSpace(name))) {
	case "", EngineGit:
		return EngineGit, nil
	case EngineRegexp:
		return EngineRegexp, nil
	default:
		return "", fmt.Errorf("unknown ignore engine %q (want %q or %q)", name, EngineGit, EngineRegexp)
	}
}

// Set is an ordered list of rebased rules. Later rules override earlier ones.
type Set struct {
	rules   []Rule
	engine  Engine
	matcher Matcher
	logger  *zap.Logger
}

// NewSet initializes an empty Set evaluated by the given engine.
func NewSet(engine Engine, logger *zap.Logger) *Set {
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == "" {
		engine = EngineGit
	}
	s := &Set{engine: engine, logger: logger}
	s.compile()
	return s
}

// Add appends rules and recompiles the matcher.
func (s *Set) Add(rules ...Rule) {
	if len(rules) == 0 {
		return
	}
	s.rules = append(s.rules, rules...)
	s.compile()
}

// AddLines rebases raw .gitignore lines under rel and appends them.
func (s *Set) AddLines(rel, source string, lines ...string) int {
	var rules []Rule
	for i, line := range lines {
		rule, ok := Rebase(rel, line)
		if !ok {
			continue
		}
		rule.Source = source
		rule.LineNo = i + 1
		rules = append(rules, rule)
		s.logger.Debug("Compiled ignore pattern",
			zap.String("source", source),
			zap.Int("lineNo", rule.LineNo),
			zap.String("pattern", rule.String()),
			zap.Bool("negate", rule.Negate))
	}
	s.Add(rules...)
	return len(rules)
}

// Rules returns a copy of the rules in evaluation order.
func (s *Set) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Len returns the number of rules.
func (s *Set) Len() int {
	return len(s.rules)
}

// Matches reports whether relPath is ignored. The last matching rule wins;
// an unmatched path is not ignored.
func (s *Set) Matches(relPath string, isDir bool) bool {
	if s == nil || len(s.rules) == 0 {
		return false
	}
	normalized := normalizePath(relPath)
	if normalized == "" {
		return false
	}
	matched := s.matcher.Matches(normalized, isDir)
	if matched {
		s.logger.Debug("Path is ignored", zap.String("path", normalized), zap.Bool("isDir", isDir))
	}
	return matched
}

func (s *Set) compile() {
	switch s.engine {
	case EngineRegexp:
		s.matcher = newRegexpMatcher(s.rules, s.logger)
	default:
		s.matcher = newGitMatcher(s.rules)
	}
}

// normalizePath converts OS-specific separators to forward slashes and
// drops leading "./" and trailing "/".
func normalizePath(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	p = strings.Trim(p, "/")
	if p == "." {
		return ""
	}
	return p
}
