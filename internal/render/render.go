// Package render picks how much terminal capability the views may use.
// A Provider is chosen once, at start-up, and every view renders through
// it, so no caller has to handle a failed highlighter or a dumb terminal.
package render

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"typedterm/internal/highlight"
	"typedterm/internal/segment"
	"typedterm/internal/system"
	"typedterm/internal/theme"
)

// Role names a piece of view chrome.
type Role int

const (
	RoleText Role = iota
	RoleMuted
	RoleTitle
	RoleBadge
	RoleGutter
	RoleMarker
	RolePrompt
	RoleCursor
	RoleOutput
	RoleError
	RoleBorder
)

// Border holds the glyphs used to draw frames.
type Border struct {
	TopLeft, TopRight, BottomLeft, BottomRight string
	Horizontal, Vertical                       string
	// Marker flags highlighted code lines in the gutter.
	Marker string
	// Cursor is drawn after the typing buffer.
	Cursor string
}

var (
	roundedBorder = Border{"╭", "╮", "╰", "╯", "─", "│", "▌", "█"}
	asciiBorder   = Border{"+", "+", "+", "+", "-", "|", ">", "_"}
)

// Provider renders code, commands and chrome.
type Provider interface {
	Name() string
	// Lines returns code split into lines, highlighted when supported.
	Lines(code, language string) []string
	// Command renders a shell command, coloured by segment kind when supported.
	Command(text string) string
	// Paint styles s for role.
	Paint(role Role, s string) string
	Border() Border
}

// Rich renders with colours, highlighting and rounded frames.
type Rich struct {
	r      *lipgloss.Renderer
	hl     *highlight.Highlighter
	styles map[Role]lipgloss.Style
}

// NewRich returns a Rich provider. A nil renderer means lipgloss's default;
// a nil highlighter gets one built on r.
func NewRich(r *lipgloss.Renderer, hl *highlight.Highlighter) *Rich {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	if hl == nil {
		hl = highlight.New(highlight.WithRenderer(r))
	}
	v := theme.Vitesse
	st := func() lipgloss.Style { return r.NewStyle() }
	return &Rich{
		r:  r,
		hl: hl,
		styles: map[Role]lipgloss.Style{
			RoleText:   st().Foreground(v.Text),
			RoleMuted:  st().Foreground(v.Muted),
			RoleTitle:  st().Foreground(v.Secondary).Bold(true),
			RoleBadge:  st().Foreground(v.OnAccent).Background(v.Primary).Padding(0, 1),
			RoleGutter: st().Foreground(v.Muted),
			RoleMarker: st().Foreground(v.Yellow),
			RolePrompt: st().Foreground(v.Primary).Bold(true),
			RoleCursor: st().Foreground(v.Primary).Blink(true),
			RoleOutput: st().Foreground(v.Secondary),
			RoleError:  st().Foreground(v.Red),
			RoleBorder: st().Foreground(v.Border),
		},
	}
}

func (p *Rich) Name() string { return "rich" }

func (p *Rich) Lines(code, language string) []string { return p.hl.Lines(code, language) }

func (p *Rich) Command(text string) string {
	var b strings.Builder
	for _, seg := range segment.Tokenize(text) {
		if seg.Kind == segment.KindPlain {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString(theme.SegmentStyle(p.r, seg.Kind).Render(seg.Text))
	}
	return b.String()
}

func (p *Rich) Paint(role Role, s string) string {
	if s == "" {
		return s
	}
	st, ok := p.styles[role]
	if !ok {
		return s
	}
	return st.Render(s)
}

func (p *Rich) Border() Border { return roundedBorder }

// Simplified renders plain text inside ASCII frames.
type Simplified struct{}

func (Simplified) Name() string { return "simplified" }

func (Simplified) Lines(code, _ string) []string { return strings.Split(code, "\n") }

func (Simplified) Command(text string) string { return text }

func (Simplified) Paint(role Role, s string) string {
	if role == RoleBadge && s != "" {
		return "[" + s + "]"
	}
	return s
}

func (Simplified) Border() Border { return asciiBorder }

// Capabilities is what Probe inspects.
type Capabilities struct {
	Profile   termenv.Profile
	NoColor   bool
	Highlight bool
}

// Choose returns Rich when caps allow colour and highlighting, else
// Simplified.
func Choose(caps Capabilities, r *lipgloss.Renderer, hl *highlight.Highlighter) Provider {
	if caps.NoColor || caps.Profile == termenv.Ascii || !caps.Highlight {
		return Simplified{}
	}
	return NewRich(r, hl)
}

// Detect reads the capabilities of the terminal behind r.
func Detect(r *lipgloss.Renderer) Capabilities {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	_, noColor := os.LookupEnv("NO_COLOR")
	return Capabilities{
		Profile:   r.ColorProfile(),
		NoColor:   noColor,
		Highlight: lexerLoads(),
	}
}

// Probe detects capabilities and picks a provider. It is meant to run once
// at start-up.
func Probe(r *lipgloss.Renderer) Provider {
	caps := Detect(r)
	p := Choose(caps, r, nil)
	system.Logger.Debug("render provider", "name", p.Name(), "profile", caps.Profile, "no_color", caps.NoColor)
	return p
}

func lexerLoads() (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return highlight.Known("go") && highlight.Lexer("go") != nil
}
