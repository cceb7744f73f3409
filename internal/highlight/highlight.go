// Package highlight turns code into styled markup. It never fails: if a
// grammar is missing or the tokenizer errors, the input comes back as is.
package highlight

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"typedterm/internal/cache"
	"typedterm/internal/system"
	"typedterm/internal/theme"
)

// Format selects the markup produced.
type Format string

const (
	// FormatANSI renders lipgloss-styled terminal output.
	FormatANSI Format = "ansi"
	// FormatHTML renders inline-styled HTML.
	FormatHTML Format = "html"
	// FormatMarkdown renders a fenced block through glamour.
	FormatMarkdown Format = "markdown"
	// FormatPlain returns the input unchanged.
	FormatPlain Format = "plain"
)

// ParseFormat maps a name to a Format, defaulting to ANSI.
func ParseFormat(s string) Format {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatHTML:
		return FormatHTML
	case FormatMarkdown, "md", "glamour":
		return FormatMarkdown
	case FormatPlain, "text", "none":
		return FormatPlain
	}
	return FormatANSI
}

// Highlighter renders code. It is stateless apart from its memo cache and
// safe for concurrent use.
type Highlighter struct {
	renderer *lipgloss.Renderer
	store    cache.Store
	wrap     int
	tokens   tokenStyles
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithRenderer sets the lipgloss renderer used for ANSI output.
func WithRenderer(r *lipgloss.Renderer) Option { return func(h *Highlighter) { h.renderer = r } }

// WithCache memoises output in s.
func WithCache(s cache.Store) Option { return func(h *Highlighter) { h.store = s } }

// WithWordWrap sets the glamour wrap width for FormatMarkdown.
func WithWordWrap(n int) Option { return func(h *Highlighter) { h.wrap = n } }

// New returns a Highlighter. By default it memoises in a bounded in-memory
// cache and renders with lipgloss's default renderer.
func New(opts ...Option) *Highlighter {
	h := &Highlighter{renderer: lipgloss.DefaultRenderer(), store: cache.NewMemory(0), wrap: 100}
	for _, o := range opts {
		o(h)
	}
	if h.store == nil {
		h.store = cache.Nop{}
	}
	h.tokens = newTokenStyles(h.renderer)
	return h
}

var std = New()

// Highlight renders text as ANSI using the default highlighter.
func Highlight(text, language string) string { return std.Highlight(text, language) }

// Highlight renders text as ANSI.
func (h *Highlighter) Highlight(text, language string) string {
	return h.Render(context.Background(), text, language, FormatANSI)
}

// Render renders text in format f. Output is memoised per (format,
// language, text).
func (h *Highlighter) Render(ctx context.Context, text, language string, f Format) string {
	if text == "" || f == FormatPlain {
		return text
	}
	key := cache.Key(string(f), strings.ToLower(language), text)
	if v, ok := h.store.Get(ctx, key); ok {
		return v
	}
	out, err := h.render(text, language, f)
	if err != nil {
		system.Logger.Debug("highlight fallback to plain text", "lang", language, "format", f, "err", err)
		return text
	}
	h.store.Set(ctx, key, out)
	return out
}

// render converts panics from the underlying libraries into errors.
func (h *Highlighter) render(text, language string, f Format) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("highlighter panic: %v", r)
		}
	}()
	switch f {
	case FormatHTML:
		return h.renderHTML(text, language)
	case FormatMarkdown:
		return h.renderMarkdown(text, language)
	default:
		return h.renderANSI(text, language)
	}
}

func (h *Highlighter) tokenise(text, language string) ([]chroma.Token, error) {
	it, err := Lexer(language).Tokenise(nil, text)
	if err != nil {
		return nil, err
	}
	return it.Tokens(), nil
}

func (h *Highlighter) renderANSI(text, language string) (string, error) {
	lines, err := h.lines(text, language)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// Lines renders text as ANSI, one self-contained string per source line, so
// callers can decorate lines independently. On failure the plain lines are
// returned.
func (h *Highlighter) Lines(text, language string) []string {
	var (
		lines []string
		err   error
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("highlighter panic: %v", r)
			}
		}()
		lines, err = h.lines(text, language)
	}()
	if err != nil {
		system.Logger.Debug("highlight fallback to plain lines", "lang", language, "err", err)
		return strings.Split(text, "\n")
	}
	return lines
}

func (h *Highlighter) lines(text, language string) ([]string, error) {
	toks, err := h.tokenise(text, language)
	if err != nil {
		return nil, err
	}
	lines := []string{}
	var cur strings.Builder
	for _, tok := range toks {
		st := h.tokens.get(tok.Type)
		parts := strings.Split(tok.Value, "\n")
		for i, p := range parts {
			if i > 0 {
				lines = append(lines, cur.String())
				cur.Reset()
			}
			if p != "" {
				cur.WriteString(st.Render(p))
			}
		}
	}
	lines = append(lines, cur.String())
	// lexers may add a trailing newline the source did not have
	if n := strings.Count(text, "\n") + 1; len(lines) > n {
		lines = lines[:n]
	}
	return lines, nil
}

func (h *Highlighter) renderHTML(text, language string) (string, error) {
	it, err := Lexer(language).Tokenise(nil, text)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	f := html.New(html.WithClasses(false), html.TabWidth(4))
	if err := f.Format(&buf, theme.ChromaStyle(), it); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (h *Highlighter) renderMarkdown(text, language string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(theme.GlamourStyle()),
		glamour.WithWordWrap(h.wrap),
	)
	if err != nil {
		return "", err
	}
	fence := "```"
	for strings.Contains(text, fence) {
		fence += "`"
	}
	lang := strings.ToLower(strings.TrimSpace(language))
	if !Known(lang) {
		lang = DefaultLanguage
	}
	return r.Render(fence + lang + "\n" + text + "\n" + fence + "\n")
}

// WriteTo renders text into w; convenience for CLI commands.
func (h *Highlighter) WriteTo(ctx context.Context, w io.Writer, text, language string, f Format) error {
	out := h.Render(ctx, text, language, f)
	if f == FormatANSI && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err := io.WriteString(w, out)
	return err
}
