package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"typedterm/internal/render"
	"typedterm/internal/terminal"
	"typedterm/internal/theme"
)

const prompt = "$ "

// renderTerminal draws history followed by the line being typed.
func renderTerminal(p render.Provider, snap terminal.Snapshot, showCursor bool) string {
	var b strings.Builder
	for _, e := range snap.History {
		switch e.Kind {
		case terminal.EntryCommand:
			b.WriteString(p.Paint(render.RolePrompt, prompt))
			b.WriteString(p.Command(e.Content))
		case terminal.EntryError:
			b.WriteString(p.Paint(render.RoleError, e.Content))
		default:
			b.WriteString(p.Paint(render.RoleOutput, e.Content))
		}
		b.WriteString("\n")
	}
	b.WriteString(p.Paint(render.RolePrompt, prompt))
	b.WriteString(p.Command(snap.Buffer))
	if showCursor {
		b.WriteString(p.Paint(render.RoleCursor, p.Border().Cursor))
	}
	return b.String()
}

// renderStatusBar draws a single-line status bar at the given width
// with left/right-aligned content.
func renderStatusBar(width int, left, right string) string {
	w := width
	if w <= 0 {
		w = 100
	}
	lw := xansi.StringWidth(left)
	rw := xansi.StringWidth(right)
	if lw+rw+1 > w {
		left = xansi.Truncate(left, maxInt(w-rw-1, 0), "…")
		lw = xansi.StringWidth(left)
	}
	pad := maxInt(w-lw-rw, 0)
	return theme.StatusBarBase().Render(left + strings.Repeat(" ", pad) + right)
}

// renderPalette draws the scenario picker.
func renderPalette(width int, input string, items []string, sel int) string {
	inner := maxInt(width-2, 20)
	border := theme.BorderStyle()
	hl := lipgloss.NewStyle().Bold(true).Foreground(theme.Vitesse.Primary).Render
	fit := func(s string) string {
		if xansi.StringWidth(s) > inner {
			s = xansi.Truncate(s, inner, "")
		}
		return s + strings.Repeat(" ", inner-xansi.StringWidth(s))
	}

	var b strings.Builder
	b.WriteString(border.Render("╭"+strings.Repeat("─", inner)+"╮") + "\n")
	b.WriteString(border.Render("│") + fit(input) + border.Render("│") + "\n")
	const maxItems = 8
	if len(items) > maxItems {
		items = items[:maxItems]
	}
	if len(items) == 0 {
		b.WriteString(border.Render("│") + fit("  no matches") + border.Render("│") + "\n")
	}
	for i, it := range items {
		line := "  " + it
		if i == sel {
			line = hl("› " + it)
		}
		b.WriteString(border.Render("│") + fit(line) + border.Render("│") + "\n")
	}
	b.WriteString(border.Render("╰"+strings.Repeat("─", inner)+"╯") + "\n")
	b.WriteString(theme.Dim().Render("  ↑/↓ select · Enter play · Esc close") + "\n")
	return b.String()
}
