package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/lipgloss"

	"typedterm/internal/theme"
)

// tokenStyles maps chroma token types to lipgloss styles. Lookups fall back
// from the exact type to its sub-category and category, then plain text.
type tokenStyles struct {
	plain lipgloss.Style
	byTyp map[chroma.TokenType]lipgloss.Style
}

func newTokenStyles(r *lipgloss.Renderer) tokenStyles {
	// tabs must survive rendering so stripped output matches the source
	fg := func(c lipgloss.Color) lipgloss.Style {
		return r.NewStyle().Foreground(c).TabWidth(lipgloss.NoTabConversion)
	}
	v := theme.Vitesse
	return tokenStyles{
		plain: fg(v.Text),
		byTyp: map[chroma.TokenType]lipgloss.Style{
			chroma.Comment:           fg(v.Muted).Italic(true),
			chroma.Keyword:           fg(v.Primary).Bold(true),
			chroma.KeywordType:       fg(v.Cyan),
			chroma.NameFunction:      fg(v.Blue),
			chroma.NameBuiltin:       fg(v.Magenta),
			chroma.NameAttribute:     fg(v.Blue),
			chroma.NameTag:           fg(v.Primary),
			chroma.NameClass:         fg(v.Orange),
			chroma.NameVariable:      fg(v.Orange),
			chroma.LiteralString:     fg(v.Yellow),
			chroma.LiteralNumber:     fg(v.Magenta),
			chroma.Operator:          fg(v.Secondary),
			chroma.Punctuation:       fg(v.Secondary),
			chroma.GenericDeleted:    fg(v.Red),
			chroma.GenericInserted:   fg(v.Primary),
			chroma.GenericHeading:    fg(v.Blue).Bold(true),
			chroma.GenericSubheading: fg(v.Secondary),
			chroma.GenericPrompt:     fg(v.Muted),
			chroma.Error:             fg(v.Red),
		},
	}
}

func (t tokenStyles) get(tt chroma.TokenType) lipgloss.Style {
	if st, ok := t.byTyp[tt]; ok {
		return st
	}
	if st, ok := t.byTyp[tt.SubCategory()]; ok {
		return st
	}
	if st, ok := t.byTyp[tt.Category()]; ok {
		return st
	}
	return t.plain
}
