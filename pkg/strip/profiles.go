// Package strip removes comments, import statements and package
// declarations from source lines, one file at a time.
package strip

import (
	"regexp"
	"strings"
)

// BlockDelimiter is an open/close pair for a multi-line comment.
type BlockDelimiter struct {
	Open  string
	Close string
}

// Profile holds the comment and import rules for one file extension.
type Profile struct {
	Name          string
	LineComments  []string         // Markers that comment out the rest of a line.
	BlockComments []BlockDelimiter // Probed before LineComments on ties.
	Import        *regexp.Regexp   // Lines matching this are dropped; nil disables.
	Package       *regexp.Regexp   // Lines matching this are dropped; nil disables.
}

// longestMarker returns the length of the longest comment opener.
func (p *Profile) longestMarker() int {
	n := 1
	for _, marker := range p.LineComments {
		n = max(n, len(marker))
	}
	for _, block := range p.BlockComments {
		n = max(n, len(block.Open))
	}
	return n
}

var (
	cBlock    = []BlockDelimiter{{Open: "/*", Close: "*/"}}
	htmlBlock = []BlockDelimiter{{Open: "<!--", Close: "-->"}}
	slashes   = []string{"//"}
	hash      = []string{"#"}
)

var (
	javaProfile = &Profile{
		Name:          "java",
		LineComments:  slashes,
		BlockComments: cBlock,
		Import:        regexp.MustCompile(`^\s*import\s+(static\s+)?[\w.]+(\.\*)?\s*;`),
		Package:       regexp.MustCompile(`^\s*package\s+[\w.]+\s*;`),
	}
	kotlinProfile = &Profile{
		Name:          "kotlin",
		LineComments:  slashes,
		BlockComments: cBlock,
		Import:        regexp.MustCompile(`^\s*import\s+[\w.` + "`" + `]+(\.\*)?(\s+as\s+\w+)?\s*;?\s*$`),
		Package:       regexp.MustCompile(`^\s*package\s+[\w.` + "`" + `]+\s*;?\s*$`),
	}
	scalaProfile = &Profile{
		Name:          "scala",
		LineComments:  slashes,
		BlockComments: cBlock,
		Import:        regexp.MustCompile(`^\s*import\s+[\w.{}, _*=>]+\s*$`),
		Package:       regexp.MustCompile(`^\s*package\s+[\w.]+\s*$`),
	}
	goProfile = &Profile{
		Name:          "go",
		LineComments:  slashes,
		BlockComments: cBlock,
		Import:        regexp.MustCompile(`^\s*import\s+([\w.]+\s+)?"[^"]*"\s*$`),
		Package:       regexp.MustCompile(`^\s*package\s+\w+\s*$`),
	}
	scriptProfile = &Profile{
		Name:          "javascript",
		LineComments:  slashes,
		BlockComments: cBlock,
		Import:        regexp.MustCompile(`^\s*import\s+(.*\s+from\s+.*|['"][^'"]*['"]\s*;?\s*)$`),
	}
	cProfile = &Profile{
		Name:          "c",
		LineComments:  slashes,
		BlockComments: cBlock,
		Import:        regexp.MustCompile(`^\s*#\s*include\b`),
	}
	csharpProfile = &Profile{
		Name:          "csharp",
		LineComments:  slashes,
		BlockComments: cBlock,
		Import:        regexp.MustCompile(`^\s*(global\s+)?using\s+(static\s+)?[\w.]+(\s*=\s*[\w.<>]+)?\s*;`),
		Package:       regexp.MustCompile(`^\s*namespace\s+[\w.]+\s*;`),
	}
	rustProfile = &Profile{
		Name:          "rust",
		LineComments:  slashes,
		BlockComments: cBlock,
		Import:        regexp.MustCompile(`^\s*(pub(\([\w:]+\))?\s+)?use\s+[^;]+;`),
	}
	swiftProfile = &Profile{
		Name:          "swift",
		LineComments:  slashes,
		BlockComments: cBlock,
		Import:        regexp.MustCompile(`^\s*(@\w+\s+)?import\s+[\w.]+\s*$`),
	}
	cssProfile = &Profile{
		Name:          "css",
		BlockComments: cBlock,
		Import:        regexp.MustCompile(`^\s*@import\s+[^;]+;`),
	}
	sassProfile = &Profile{
		Name:          "scss",
		LineComments:  slashes,
		BlockComments: cBlock,
		Import:        regexp.MustCompile(`^\s*@(import|use|forward)\s+[^;]+;`),
	}
	componentProfile = &Profile{
		Name:          "component",
		BlockComments: htmlBlock,
		Import:        regexp.MustCompile(`^\s*(<script[^>]*>\s*)?import\s+.*\s+from\s+.*;?\s*(</script>\s*)?$`),
	}
	markupProfile = &Profile{
		Name:          "markup",
		BlockComments: htmlBlock,
	}
	pythonProfile = &Profile{
		Name:         "python",
		LineComments: hash,
		Import:       regexp.MustCompile(`^\s*(import\s+[\w.]+|from\s+[\w.]+\s+import\s+)`),
	}
	shellProfile = &Profile{
		Name:         "shell",
		LineComments: hash,
	}
	sqlProfile = &Profile{
		Name:          "sql",
		LineComments:  []string{"--"},
		BlockComments: cBlock,
	}
)

// profiles maps lowercase, dot-prefixed extensions to their profile.
// It is built once and never modified.
var profiles = map[string]*Profile{
	".java":   javaProfile,
	".kt":     kotlinProfile,
	".kts":    kotlinProfile,
	".scala":  scalaProfile,
	".go":     goProfile,
	".js":     scriptProfile,
	".jsx":    scriptProfile,
	".mjs":    scriptProfile,
	".cjs":    scriptProfile,
	".ts":     scriptProfile,
	".tsx":    scriptProfile,
	".c":      cProfile,
	".h":      cProfile,
	".cc":     cProfile,
	".cpp":    cProfile,
	".hpp":    cProfile,
	".cs":     csharpProfile,
	".rs":     rustProfile,
	".swift":  swiftProfile,
	".css":    cssProfile,
	".scss":   sassProfile,
	".less":   sassProfile,
	".svelte": componentProfile,
	".vue":    componentProfile,
	".html":   markupProfile,
	".htm":    markupProfile,
	".xml":    markupProfile,
	".py":     pythonProfile,
	".sh":     shellProfile,
	".bash":   shellProfile,
	".zsh":    shellProfile,
	".rb":     shellProfile,
	".yaml":   shellProfile,
	".yml":    shellProfile,
	".toml":   shellProfile,
	".sql":    sqlProfile,
}

// Lookup returns the profile for ext. The extension is matched
// case-insensitively and may be given with or without its leading dot.
func Lookup(ext string) (*Profile, bool) {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	p, ok := profiles[ext]
	return p, ok
}
