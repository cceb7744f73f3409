// Package theme centralises the colour palette shared by the TUI, the
// highlighter and the code block renderer.
//
// Palette is based on Vitesse Dark Soft:
// https://github.com/antfu/vscode-theme-vitesse/blob/main/themes/vitesse-dark-soft.json
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"typedterm/internal/segment"
)

type designTheme struct {
	// Core brand/semantic colors
	Primary lipgloss.Color // #4d9375
	Blue    lipgloss.Color // #6394bf
	Yellow  lipgloss.Color // #e6cc77
	Magenta lipgloss.Color // #d9739f
	Cyan    lipgloss.Color // #5eaab5
	Red     lipgloss.Color // #cb7676
	Orange  lipgloss.Color // #d4976c

	// Text colors
	Text      lipgloss.Color // #dbd7caee
	Secondary lipgloss.Color // #bfbaaa
	Muted     lipgloss.Color // #dedcd590

	// Surfaces
	Bg     lipgloss.Color // #181818
	BgSoft lipgloss.Color // #292929
	Border lipgloss.Color // #3a3a3a

	// Text on accent backgrounds (e.g., buttons/chips)
	OnAccent lipgloss.Color // #222

	// Status bar colors
	BarFG lipgloss.AdaptiveColor
	BarBG lipgloss.AdaptiveColor
}

// Vitesse is the palette used everywhere.
var Vitesse = designTheme{
	Primary: lipgloss.Color("#4d9375"),
	Blue:    lipgloss.Color("#6394bf"),
	Yellow:  lipgloss.Color("#e6cc77"),
	Magenta: lipgloss.Color("#d9739f"),
	Cyan:    lipgloss.Color("#5eaab5"),
	Red:     lipgloss.Color("#cb7676"),
	Orange:  lipgloss.Color("#d4976c"),

	Text:      lipgloss.Color("#dbd7caee"),
	Secondary: lipgloss.Color("#bfbaaa"),
	Muted:     lipgloss.Color("#dedcd590"),

	Bg:     lipgloss.Color("#181818"),
	BgSoft: lipgloss.Color("#292929"),
	Border: lipgloss.Color("#3a3a3a"),

	OnAccent: lipgloss.Color("#222"),

	BarFG: lipgloss.AdaptiveColor{Light: "#343433", Dark: "#bfbaaa"},
	BarBG: lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#222"},
}

// Hex drops the alpha channel of #RRGGBBAA colours; other values pass through.
func Hex(c lipgloss.Color) string {
	s := string(c)
	if strings.HasPrefix(s, "#") && len(s) == 9 {
		return s[:7]
	}
	return s
}

// BorderStyle returns a style with the standard border color.
func BorderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.Border)
}

// AccentBold returns a bold style using the primary accent color.
func AccentBold() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(Vitesse.Primary)
}

// Dim renders secondary text.
func Dim() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.Muted)
}

// ChipStyle returns a style for colored nuggets (badges, status chips).
func ChipStyle(bg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.OnAccent).Background(bg).Padding(0, 1)
}

// StatusBarBase returns the base style for the status bar background/foreground.
func StatusBarBase() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.BarFG).Background(Vitesse.BarBG)
}

// Button renders a small accent button label with consistent styling.
func Button(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(Vitesse.OnAccent).Background(Vitesse.Primary).Padding(0, 1).Render(s)
}

// SegmentColor maps a command segment kind to its colour.
func SegmentColor(k segment.Kind) lipgloss.Color {
	switch k {
	case segment.KindCommand:
		return Vitesse.Primary
	case segment.KindOption:
		return Vitesse.Cyan
	case segment.KindPath:
		return Vitesse.Blue
	case segment.KindURL:
		return Vitesse.Blue
	case segment.KindString:
		return Vitesse.Yellow
	case segment.KindNumber:
		return Vitesse.Magenta
	case segment.KindOperator:
		return Vitesse.Red
	case segment.KindEnv:
		return Vitesse.Orange
	}
	return Vitesse.Text
}

// SegmentStyle returns the style for a segment kind. Commands are bold and
// URLs underlined.
func SegmentStyle(r *lipgloss.Renderer, k segment.Kind) lipgloss.Style {
	st := r.NewStyle().Foreground(SegmentColor(k))
	switch k {
	case segment.KindCommand:
		st = st.Bold(true)
	case segment.KindURL:
		st = st.Underline(true)
	}
	return st
}
