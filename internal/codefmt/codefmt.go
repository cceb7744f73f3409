// Package codefmt normalises code snippets before they are highlighted or
// typed out.
package codefmt

import (
	"path/filepath"
	"strings"
)

// Format removes the indentation shared by every non-blank line, drops
// leading and trailing blank lines and normalises line endings. Everything
// between the first and last non-blank line is otherwise left alone.
// Languages whose leading whitespace is syntax, such as Makefile recipes and
// diffs, keep their indentation. Format is idempotent.
func Format(code string, language string) string {
	code = strings.ReplaceAll(code, "\r\n", "\n")
	code = strings.ReplaceAll(code, "\r", "\n")
	lines := strings.Split(code, "\n")

	first, last := -1, -1
	for i, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		return ""
	}
	lines = lines[first : last+1]
	if keepsIndent[strings.ToLower(strings.TrimSpace(language))] {
		return strings.Join(lines, "\n")
	}

	prefix := commonIndent(lines)
	for i, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = strings.TrimPrefix(ln, prefix)
	}
	return strings.Join(lines, "\n")
}

var keepsIndent = map[string]bool{
	"make":     true,
	"makefile": true,
	"mk":       true,
	"diff":     true,
	"patch":    true,
	"udiff":    true,
}

// Dedent is Format without a language hint.
func Dedent(code string) string { return Format(code, "") }

// commonIndent returns the longest whitespace prefix shared byte-for-byte by
// all non-blank lines. Tabs and spaces are never treated as equivalent.
func commonIndent(lines []string) string {
	var prefix string
	set := false
	for _, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		ind := ln[:len(ln)-len(strings.TrimLeft(ln, " \t"))]
		if !set {
			prefix, set = ind, true
			continue
		}
		n := 0
		for n < len(prefix) && n < len(ind) && prefix[n] == ind[n] {
			n++
		}
		prefix = prefix[:n]
		if prefix == "" {
			break
		}
	}
	return prefix
}

// filenames maps a language key to the filename shown in a code block title
// bar when no title is configured.
var filenames = map[string]string{
	"javascript": "index.js",
	"js":         "index.js",
	"jsx":        "App.jsx",
	"typescript": "index.ts",
	"ts":         "index.ts",
	"tsx":        "App.tsx",
	"go":         "main.go",
	"golang":     "main.go",
	"python":     "main.py",
	"py":         "main.py",
	"rust":       "main.rs",
	"java":       "Main.java",
	"ruby":       "main.rb",
	"php":        "index.php",
	"bash":       "script.sh",
	"sh":         "script.sh",
	"shell":      "script.sh",
	"zsh":        "script.sh",
	"json":       "data.json",
	"yaml":       "config.yaml",
	"yml":        "config.yaml",
	"toml":       "config.toml",
	"html":       "index.html",
	"css":        "styles.css",
	"sql":        "query.sql",
	"dockerfile": "Dockerfile",
	"markdown":   "README.md",
	"md":         "README.md",
}

// DefaultFilename returns the title-bar filename for language.
func DefaultFilename(language string) string {
	if f, ok := filenames[strings.ToLower(strings.TrimSpace(language))]; ok {
		return f
	}
	return "snippet.txt"
}

var extensions = map[string]string{
	"js": "javascript", "mjs": "javascript", "cjs": "javascript", "jsx": "jsx",
	"ts": "typescript", "tsx": "tsx", "go": "go", "py": "python", "rs": "rust",
	"java": "java", "rb": "ruby", "php": "php", "sh": "bash", "bash": "bash",
	"zsh": "bash", "json": "json", "yaml": "yaml", "yml": "yaml", "toml": "toml",
	"html": "html", "css": "css", "sql": "sql", "md": "markdown",
}

// LanguageFromFilename guesses a language key from a file name's extension.
// Unknown extensions yield "".
func LanguageFromFilename(name string) string {
	base := strings.ToLower(filepath.Base(name))
	if base == "dockerfile" {
		return "dockerfile"
	}
	return extensions[strings.TrimPrefix(filepath.Ext(base), ".")]
}
