package theme

import (
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

var (
	chromaOnce  sync.Once
	chromaStyle *chroma.Style
)

// ChromaStyle returns the Vitesse palette as a chroma style, used for HTML
// output. It falls back to chroma's default style if the entries fail to
// parse.
func ChromaStyle() *chroma.Style {
	chromaOnce.Do(func() {
		st, err := chroma.NewStyle("vitesse", chroma.StyleEntries{
			chroma.Background:        "bg:" + Hex(Vitesse.Bg) + " " + Hex(Vitesse.Text),
			chroma.Text:              Hex(Vitesse.Text),
			chroma.Comment:           "italic " + Hex(Vitesse.Muted),
			chroma.Keyword:           "bold " + Hex(Vitesse.Primary),
			chroma.NameFunction:      Hex(Vitesse.Blue),
			chroma.NameBuiltin:       Hex(Vitesse.Magenta),
			chroma.NameAttribute:     Hex(Vitesse.Blue),
			chroma.NameTag:           Hex(Vitesse.Primary),
			chroma.LiteralString:     Hex(Vitesse.Yellow),
			chroma.LiteralNumber:     Hex(Vitesse.Magenta),
			chroma.Operator:          Hex(Vitesse.Secondary),
			chroma.Punctuation:       Hex(Vitesse.Secondary),
			chroma.GenericDeleted:    Hex(Vitesse.Red),
			chroma.GenericInserted:   Hex(Vitesse.Primary),
			chroma.GenericSubheading: Hex(Vitesse.Secondary),
		})
		if err != nil {
			st = styles.Fallback
		}
		chromaStyle = st
	})
	return chromaStyle
}
