package ignore

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// gitMatcher delegates to go-git's gitignore implementation.
type gitMatcher struct {
	matcher gitignore.Matcher
}

func newGitMatcher(rules []Rule) *gitMatcher {
	patterns := make([]gitignore.Pattern, 0, len(rules))
	for _, rule := range rules {
		patterns = append(patterns, gitignore.ParsePattern(gitPatternText(rule), nil))
	}
	return &gitMatcher{matcher: gitignore.NewMatcher(patterns)}
}

func (m *gitMatcher) Matches(relPath string, isDir bool) bool {
	return m.matcher.Match(strings.Split(relPath, "/"), isDir)
}

// gitPatternText renders a rule for gitignore.ParsePattern. Single-segment
// anchored rules get their leading slash back so go-git treats them as
// root-relative instead of matching at any depth.
func gitPatternText(rule Rule) string {
	var b strings.Builder
	if rule.Negate {
		b.WriteString("!")
	}
	switch {
	case rule.Anchored && !strings.Contains(rule.Pattern, "/"):
		b.WriteString("/")
	case strings.HasPrefix(rule.Pattern, "!") || strings.HasPrefix(rule.Pattern, "#"):
		// Literal leading '!' or '#', escaped for filepath.Match.
		b.WriteString(`\`)
	}
	b.WriteString(rule.Pattern)
	if rule.DirOnly {
		b.WriteString("/")
	}
	return b.String()
}
