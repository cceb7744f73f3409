package highlight

import (
	"sort"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// DefaultLanguage is used when a language key is unknown.
const DefaultLanguage = "javascript"

// lexerIndex maps lowercased keys to registry lexers. It is built once;
// lexers.Get and lexers.Match walk every filename glob on each call.
type lexerIndex struct {
	byName map[string]chroma.Lexer
	byExt  map[string]chroma.Lexer
	byFile map[string]chroma.Lexer
}

var (
	indexOnce sync.Once
	index     lexerIndex

	// coalesced lexers keyed by canonical name, so the map never holds
	// more entries than the registry has lexers
	lexerCache   = make(map[string]chroma.Lexer)
	lexerCacheMu sync.RWMutex
)

func buildIndex() {
	index = lexerIndex{
		byName: map[string]chroma.Lexer{},
		byExt:  map[string]chroma.Lexer{},
		byFile: map[string]chroma.Lexer{},
	}
	primary := map[string]chroma.PrioritisedLexers{}
	alias := map[string]chroma.PrioritisedLexers{}
	files := map[string]chroma.PrioritisedLexers{}
	for _, l := range lexers.GlobalLexerRegistry.Lexers {
		cfg := l.Config()
		index.byName[strings.ToLower(cfg.Name)] = l
		for _, a := range cfg.Aliases {
			index.byName[strings.ToLower(a)] = l
		}
		for _, g := range cfg.Filenames {
			addGlob(primary, files, g, l)
		}
		for _, g := range cfg.AliasFilenames {
			addGlob(alias, files, g, l)
		}
	}
	pick := func(dst map[string]chroma.Lexer, src map[string]chroma.PrioritisedLexers) {
		for k, ls := range src {
			if _, ok := dst[k]; ok {
				continue
			}
			sort.Sort(ls)
			dst[k] = ls[0]
		}
	}
	// primary filename globs win over alias globs, as in lexers.Match
	pick(index.byExt, primary)
	pick(index.byExt, alias)
	pick(index.byFile, files)
}

// addGlob records "*.ext" globs by extension and literal names by file.
// Globs with one plain character class, like "*.[ch]", are expanded.
func addGlob(exts, files map[string]chroma.PrioritisedLexers, glob string, l chroma.Lexer) {
	glob = strings.ToLower(glob)
	if !strings.ContainsAny(glob, "*?[") {
		files[glob] = append(files[glob], l)
		return
	}
	ext, ok := strings.CutPrefix(glob, "*.")
	if !ok {
		return
	}
	for _, e := range expandClass(ext) {
		exts[e] = append(exts[e], l)
	}
}

func expandClass(s string) []string {
	if !strings.ContainsAny(s, "*?[") {
		return []string{s}
	}
	open := strings.IndexByte(s, '[')
	end := strings.IndexByte(s, ']')
	if open < 0 || end < open+2 {
		return nil
	}
	pre, class, post := s[:open], s[open+1:end], s[end+1:]
	if strings.ContainsAny(pre+post, "*?[") || strings.ContainsAny(class, "!^-\\") {
		return nil
	}
	out := make([]string, 0, len(class))
	for _, c := range class {
		out = append(out, pre+string(c)+post)
	}
	return out
}

// lookup finds the registry lexer for key by name or alias, extension,
// then literal file name. It returns nil for unknown keys.
func lookup(key string) chroma.Lexer {
	if key == "" {
		return nil
	}
	indexOnce.Do(buildIndex)
	if l := index.byName[key]; l != nil {
		return l
	}
	if l := index.byExt[key]; l != nil {
		return l
	}
	return index.byFile[key]
}

// Lexer resolves a language key to a coalesced chroma lexer. Resolution
// order: lexer name or alias, file extension, file name, the default
// language, and finally chroma's fallback lexer. It never returns nil.
func Lexer(language string) chroma.Lexer {
	l := lookup(strings.ToLower(strings.TrimSpace(language)))
	if l == nil {
		l = lookup(DefaultLanguage)
	}
	if l == nil {
		l = lexers.Fallback
	}
	name := l.Config().Name

	lexerCacheMu.RLock()
	c := lexerCache[name]
	lexerCacheMu.RUnlock()
	if c != nil {
		return c
	}

	c = chroma.Coalesce(l)
	lexerCacheMu.Lock()
	if prev := lexerCache[name]; prev != nil {
		c = prev
	} else {
		lexerCache[name] = c
	}
	lexerCacheMu.Unlock()
	return c
}

// Known reports whether language has a dedicated lexer.
func Known(language string) bool {
	return lookup(strings.ToLower(strings.TrimSpace(language))) != nil
}
