package strip

import (
	"strings"
)

// Scanner carries comment state across the lines of a single file.
// A new Scanner must be used for every file.
type Scanner struct {
	profile *Profile
	inBlock bool
	closing string // Close marker of the open block comment.
}

// NewScanner returns a Scanner in the code state. A nil profile passes
// every line through unchanged.
func NewScanner(profile *Profile) *Scanner {
	return &Scanner{profile: profile}
}

// InBlockComment reports whether the previous line left a block comment open.
func (s *Scanner) InBlockComment() bool {
	return s.inBlock
}

// Line filters one line, which may end with "\n" or "\r\n". It returns the
// line to write, terminator included, and false when the line is dropped.
func (s *Scanner) Line(line string) (string, bool) {
	if s.profile == nil {
		return line, true
	}

	body, terminator := splitTerminator(line)
	code, removed := s.stripComments(body)
	if removed {
		code = strings.TrimRight(code, " \t")
	}
	if strings.TrimSpace(code) == "" {
		return "", false
	}
	if s.profile.Import != nil && s.profile.Import.MatchString(code) {
		return "", false
	}
	if s.profile.Package != nil && s.profile.Package.MatchString(code) {
		return "", false
	}
	return code + terminator, true
}

// stripComments removes comment spans from body, updating the block state.
// It reports whether anything was removed. After a block comment is excised
// the text on both sides is rescanned across the join, so markers formed by
// the removal are stripped in the same pass.
func (s *Scanner) stripComments(body string) (string, bool) {
	text := body
	removed := false

	if s.inBlock {
		removed = true
		end := strings.Index(text, s.closing)
		if end < 0 {
			return "", removed
		}
		text = text[end+len(s.closing):]
		s.inBlock = false
		s.closing = ""
	}

	pos := 0
	for {
		tok, found := s.nextToken(text[pos:])
		if !found {
			return text, removed
		}

		removed = true
		start := pos + tok.index
		if tok.block == nil {
			return text[:start], removed
		}

		after := text[start+len(tok.block.Open):]
		end := strings.Index(after, tok.block.Close)
		if end < 0 {
			s.inBlock = true
			s.closing = tok.block.Close
			return text[:start], removed
		}
		text = text[:start] + after[end+len(tok.block.Close):]

		// Nothing starts before start; only markers spanning the join are new.
		pos = start - (s.profile.longestMarker() - 1)
		if pos < 0 {
			pos = 0
		}
	}
}

// token is the earliest comment marker found on a line.
type token struct {
	index int
	block *BlockDelimiter // nil for a line comment
}

// nextToken finds the earliest comment marker in text. Block openers are
// probed before line markers, so they win ties.
func (s *Scanner) nextToken(text string) (token, bool) {
	best := token{index: -1}
	for i := range s.profile.BlockComments {
		block := &s.profile.BlockComments[i]
		idx := strings.Index(text, block.Open)
		if idx >= 0 && (best.index < 0 || idx < best.index) {
			best = token{index: idx, block: block}
		}
	}
	for _, marker := range s.profile.LineComments {
		idx := strings.Index(text, marker)
		if idx >= 0 && (best.index < 0 || idx < best.index) {
			best = token{index: idx}
		}
	}
	return best, best.index >= 0
}

// splitTerminator separates a trailing "\n" or "\r\n" from line.
func splitTerminator(line string) (string, string) {
	if strings.HasSuffix(line, "\r\n") {
		return line[:len(line)-2], "\r\n"
	}
	if strings.HasSuffix(line, "\n") {
		return line[:len(line)-1], "\n"
	}
	return line, ""
}
