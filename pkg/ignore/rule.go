package ignore

import (
	"strings"
)

// Rule is one ignore pattern taken from a .gitignore line and rebased into
// the path space of the traversal root.
type Rule struct {
	Pattern  string // Rebased pattern body, without the '!' prefix or trailing '/'.
	Negate   bool   // The line started with '!'.
	DirOnly  bool   // The line ended with '/'.
	Anchored bool   // The pattern only matches relative to the root, not at any depth.
	Source   string // Path of the .gitignore the rule came from.
	LineNo   int    // Line number in the source (1-based).
	Line     string // Original pattern line.
}

// String renders the rule back in .gitignore syntax.
func (r Rule) String() string {
	var b strings.Builder
	if r.Negate {
		b.WriteString("!")
	}
	b.WriteString(r.Pattern)
	if r.DirOnly {
		b.WriteString("/")
	}
	return b.String()
}

// Rebase parses a raw .gitignore line and rebases it under rel, the
// slash-separated directory of the .gitignore relative to the traversal
// root ("" for the root itself). It returns false for blank lines, comments
// and lines with no pattern body.
func Rebase(rel, line string) (Rule, bool) {
	trimmed := trimTrailingSpace(line)
	trimmed = strings.TrimLeft(trimmed, " \t")

	// Ignore empty lines and comments.
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Rule{}, false
	}

	rule := Rule{Line: line}

	if strings.HasPrefix(trimmed, "!") {
		rule.Negate = true
		trimmed = trimmed[1:]
	}

	// Handle escaped characters for `#` and `!`.
	if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}

	if strings.HasSuffix(trimmed, "/") {
		rule.DirOnly = true
		trimmed = strings.TrimRight(trimmed, "/")
	}

	if strings.HasPrefix(trimmed, "/") {
		rule.Anchored = true
		trimmed = trimmed[1:]
	}
	if trimmed == "" {
		return Rule{}, false
	}
	if strings.Contains(trimmed, "/") {
		rule.Anchored = true
	}

	rel = strings.Trim(rel, "/")
	if rel == "" || rel == "." {
		rule.Pattern = trimmed
		return rule, true
	}

	rule.Pattern = rel + "/" + trimmed
	rule.Anchored = true
	return rule, true
}

// trimTrailingSpace drops trailing whitespace unless the last space is
// escaped with a backslash.
func trimTrailingSpace(line string) string {
	line = strings.TrimRight(line, "\r\n")
	for len(line) > 0 {
		last := line[len(line)-1]
		if last != ' ' && last != '\t' {
			break
		}
		if last == ' ' && len(line) > 1 && line[len(line)-2] == '\\' {
			return line[:len(line)-2] + " "
		}
		line = line[:len(line)-1]
	}
	return line
}
