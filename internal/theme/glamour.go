package theme

import ansi "github.com/charmbracelet/glamour/ansi"

// GlamourStyle returns a glamour ANSI style config adapted to the Vitesse
// palette, used when code is rendered as a markdown document.
func GlamourStyle() ansi.StyleConfig {
	sp := func(s string) *string { return &s }
	bp := func(b bool) *bool { return &b }
	up := func(u uint) *uint { return &u }

	text := Hex(Vitesse.Text)
	secondary := Hex(Vitesse.Secondary)
	muted := Hex(Vitesse.Muted)
	primary := Hex(Vitesse.Primary)
	blue := Hex(Vitesse.Blue)
	yellow := Hex(Vitesse.Yellow)
	magenta := Hex(Vitesse.Magenta)
	red := Hex(Vitesse.Red)
	bgSoft := Hex(Vitesse.BgSoft)

	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: sp(text)},
		},
		Paragraph: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: sp(text)},
		},
		Heading: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Color: sp(blue), Bold: bp(true)}},
		Text:    ansi.StylePrimitive{Color: sp(text)},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: sp(yellow), BackgroundColor: sp(bgSoft)},
		},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{Color: sp(text)},
				Margin:         up(0),
			},
			Chroma: &ansi.Chroma{
				Text:              ansi.StylePrimitive{Color: sp(text)},
				Comment:           ansi.StylePrimitive{Color: sp(muted), Italic: bp(true)},
				Keyword:           ansi.StylePrimitive{Color: sp(primary), Bold: bp(true)},
				NameFunction:      ansi.StylePrimitive{Color: sp(blue)},
				NameBuiltin:       ansi.StylePrimitive{Color: sp(magenta)},
				LiteralString:     ansi.StylePrimitive{Color: sp(yellow)},
				LiteralNumber:     ansi.StylePrimitive{Color: sp(magenta)},
				NameAttribute:     ansi.StylePrimitive{Color: sp(blue)},
				Operator:          ansi.StylePrimitive{Color: sp(secondary)},
				Punctuation:       ansi.StylePrimitive{Color: sp(secondary)},
				GenericDeleted:    ansi.StylePrimitive{Color: sp(red)},
				GenericInserted:   ansi.StylePrimitive{Color: sp(primary)},
				GenericStrong:     ansi.StylePrimitive{Bold: bp(true)},
				GenericSubheading: ansi.StylePrimitive{Color: sp(secondary)},
				Background:        ansi.StylePrimitive{BackgroundColor: sp(bgSoft)},
			},
		},
	}
}
