// Package codeblock draws a code snippet in a titled frame with an optional
// line-number gutter, and can reveal it with a typing effect.
package codeblock

import (
	"strconv"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"typedterm/internal/codefmt"
	"typedterm/internal/render"
)

const minWidth = 20

// Render formats code and draws the complete block. A width of zero or less
// sizes the frame to its content.
func Render(code string, cfg Config, p render.Provider, width int) string {
	code = codefmt.Format(code, cfg.Language)
	return draw(p.Lines(code, cfg.Language), cfg, p, width, -1)
}

// title is the label on the frame: the configured title or a filename
// derived from the language.
func title(cfg Config) string {
	if t := strings.TrimSpace(cfg.Title); t != "" {
		return t
	}
	return codefmt.DefaultFilename(cfg.Language)
}

func language(cfg Config) string {
	if l := strings.TrimSpace(cfg.Language); l != "" {
		return strings.ToLower(l)
	}
	return "text"
}

// draw frames pre-rendered lines. cursorLine, when >= 0, gets the typing
// cursor appended.
func draw(lines []string, cfg Config, p render.Provider, width, cursorLine int) string {
	bd := p.Border()
	gutterW := 0
	if cfg.ShowLineNumbers {
		gutterW = len(strconv.Itoa(max(len(lines), 1)))
	}
	markW := 0
	if len(cfg.HighlightLines) > 0 {
		markW = runewidth.StringWidth(bd.Marker)
	}

	body := make([]string, len(lines))
	for i, ln := range lines {
		var b strings.Builder
		if markW > 0 {
			if cfg.HighlightLines[i+1] {
				b.WriteString(p.Paint(render.RoleMarker, bd.Marker))
			} else {
				b.WriteString(strings.Repeat(" ", markW))
			}
		}
		if gutterW > 0 {
			num := strconv.Itoa(i + 1)
			b.WriteString(p.Paint(render.RoleGutter, strings.Repeat(" ", gutterW-len(num))+num))
			b.WriteString(" ")
			b.WriteString(p.Paint(render.RoleBorder, bd.Vertical))
			b.WriteString(" ")
		}
		b.WriteString(ln)
		if i == cursorLine {
			b.WriteString(p.Paint(render.RoleCursor, bd.Cursor))
		}
		body[i] = b.String()
	}

	name := title(cfg)
	badge := p.Paint(render.RoleBadge, language(cfg))
	headW := runewidth.StringWidth(name) + 1 + xansi.StringWidth(badge)

	inner := headW
	for _, ln := range body {
		if w := xansi.StringWidth(ln); w > inner {
			inner = w
		}
	}
	if width > 0 {
		inner = max(width-4, minWidth-4)
	}

	if headW > inner {
		name = runewidth.Truncate(name, max(inner-1-xansi.StringWidth(badge), 1), "…")
		headW = runewidth.StringWidth(name) + 1 + xansi.StringWidth(badge)
	}
	head := p.Paint(render.RoleTitle, name) + strings.Repeat(" ", max(inner-headW, 0)+1) + badge

	edge := func(s string) string { return p.Paint(render.RoleBorder, s) }
	var sb strings.Builder
	sb.WriteString(edge(bd.TopLeft + strings.Repeat(bd.Horizontal, inner+2) + bd.TopRight))
	sb.WriteString("\n")
	row := func(content string) {
		w := xansi.StringWidth(content)
		if w > inner {
			content = xansi.Truncate(content, inner, "…")
			w = xansi.StringWidth(content)
		}
		sb.WriteString(edge(bd.Vertical))
		sb.WriteString(" ")
		sb.WriteString(content)
		sb.WriteString(strings.Repeat(" ", inner-w))
		sb.WriteString(" ")
		sb.WriteString(edge(bd.Vertical))
		sb.WriteString("\n")
	}
	row(head)
	sb.WriteString(edge(bd.Vertical + strings.Repeat(bd.Horizontal, inner+2) + bd.Vertical))
	sb.WriteString("\n")
	for _, ln := range body {
		row(ln)
	}
	sb.WriteString(edge(bd.BottomLeft + strings.Repeat(bd.Horizontal, inner+2) + bd.BottomRight))
	return sb.String()
}
