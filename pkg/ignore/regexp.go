package ignore

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// regexpRule pairs a rule with its compiled expression.
type regexpRule struct {
	rule    Rule
	pattern *regexp.Regexp
}

// regexpMatcher evaluates rules as regular expressions over the
// slash-separated path. Directory queries carry a trailing slash.
type regexpMatcher struct {
	rules []regexpRule
}

func newRegexpMatcher(rules []Rule, logger *zap.Logger) *regexpMatcher {
	m := &regexpMatcher{}
	for _, rule := range rules {
		compiled, err := regexp.Compile(translatePattern(rule))
		if err != nil {
			logger.Warn("Invalid ignore pattern",
				zap.String("pattern", rule.String()),
				zap.String("source", rule.Source),
				zap.Int("lineNo", rule.LineNo),
				zap.Error(err))
			continue
		}
		m.rules = append(m.rules, regexpRule{rule: rule, pattern: compiled})
	}
	return m
}

func (m *regexpMatcher) Matches(relPath string, isDir bool) bool {
	query := relPath
	if isDir {
		query += "/"
	}

	matched := false
	for _, r := range m.rules {
		if r.pattern.MatchString(query) {
			matched = !r.rule.Negate
		}
	}
	return matched
}

// translatePattern converts a rule into an anchored regular expression.
// Unanchored rules may match at any depth; every rule also matches the
// contents of a matched directory.
func translatePattern(rule Rule) string {
	prefix := "^(?:.*/)?"
	if rule.Anchored {
		prefix = "^"
	}
	suffix := "(?:/.*)?$"
	if rule.DirOnly {
		suffix = "/.*$"
	}
	return prefix + handleDoubleStarPatterns(rule.Pattern) + suffix
}

// handleDoubleStarPatterns translates a pattern segment by segment, turning
// '**' segments into "any number of directories".
func handleDoubleStarPatterns(pattern string) string {
	segments := strings.Split(pattern, "/")

	var b strings.Builder
	for i, segment := range segments {
		last := i == len(segments)-1
		if segment == "**" {
			if last {
				b.WriteString(".+")
			} else {
				b.WriteString("(?:.*/)?")
			}
			continue
		}
		b.WriteString(wildcardToRegex(segment))
		if !last {
			b.WriteString("/")
		}
	}
	return b.String()
}

// wildcardToRegex converts '*', '?' and bracket classes within one path
// segment and escapes everything else.
func wildcardToRegex(segment string) string {
	var b strings.Builder
	for i := 0; i < len(segment); i++ {
		c := segment[i]
		switch c {
		case '*':
			b.WriteString("[^/]*")
		case '?':
			b.WriteString("[^/]")
		case '\\':
			if i+1 < len(segment) {
				i++
				b.WriteString(regexp.QuoteMeta(string(segment[i])))
			} else {
				b.WriteString(`\\`)
			}
		case '[':
			end := strings.IndexByte(segment[i+1:], ']')
			if end < 0 {
				b.WriteString(`\[`)
				continue
			}
			class := segment[i+1 : i+1+end]
			if strings.HasPrefix(class, "!") {
				class = "^" + class[1:]
			}
			b.WriteString("[" + class + "]")
			i += end + 1
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	return b.String()
}
