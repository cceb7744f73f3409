package codeblock

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"typedterm/internal/render"
)

func TestParseLines(t *testing.T) {
	set, err := ParseLines("2, 4-6,9")
	require.NoError(t, err)
	require.Equal(t, LineSet{2: true, 4: true, 5: true, 6: true, 9: true}, set)
	require.Equal(t, "2,4-6,9", set.String())

	empty, err := ParseLines("")
	require.NoError(t, err)
	require.Empty(t, empty)

	for _, bad := range []string{"x", "0", "5-3", "2-", "-1"} {
		_, err := ParseLines(bad)
		require.Error(t, err, bad)
	}
}

func TestRenderSimplifiedFrame(t *testing.T) {
	out := Render("\n    a := 1\n    b := 2\n", Config{Language: "go"}, render.Simplified{}, 0)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)
	require.True(t, strings.HasPrefix(lines[0], "+-"))
	require.Contains(t, lines[1], "main.go")
	require.Contains(t, lines[1], "[go]")
	require.Equal(t, "| a := 1", strings.TrimRight(lines[3], " |"))
	require.Equal(t, "| b := 2", strings.TrimRight(lines[4], " |"))
	w := xansi.StringWidth(lines[0])
	for _, ln := range lines {
		require.Equal(t, w, xansi.StringWidth(ln), "ragged frame line %q", ln)
	}
}

func TestRenderLineNumbersAndMarkers(t *testing.T) {
	code := strings.Repeat("x\n", 9) + "y"
	cfg := Config{Language: "text", ShowLineNumbers: true, HighlightLines: LineSet{10: true}}
	out := Render(code, cfg, render.Simplified{}, 0)
	lines := strings.Split(out, "\n")
	require.Contains(t, lines[3], "  1 | x")
	require.Contains(t, lines[12], ">10 | y")
}

func TestRenderFixedWidth(t *testing.T) {
	cfg := Config{Language: "js", Title: strings.Repeat("long-title-", 10)}
	out := Render("console.log('a very long line that will not fit in the frame at all')", cfg, render.Simplified{}, 40)
	for _, ln := range strings.Split(out, "\n") {
		require.Equal(t, 40, xansi.StringWidth(ln), "line %q", ln)
	}
}

func TestRenderRichKeepsWidths(t *testing.T) {
	out := Render("fmt.Println(\"hi\")", Config{Language: "go", ShowLineNumbers: true}, render.NewRich(nil, nil), 0)
	lines := strings.Split(out, "\n")
	w := xansi.StringWidth(lines[0])
	for _, ln := range lines {
		require.Equal(t, w, xansi.StringWidth(ln))
	}
	require.Contains(t, xansi.Strip(out), "fmt.Println(\"hi\")")
}

func TestPlayerReveal(t *testing.T) {
	cfg := Config{Language: "text", TypingEffect: true}
	pl := NewPlayer("ab\ncd", cfg, render.Simplified{})

	n, partial := pl.Revealed()
	require.Equal(t, 0, n)
	require.Empty(t, partial)

	pl.Step()
	n, partial = pl.Revealed()
	require.Equal(t, 0, n)
	require.Equal(t, "a", partial)
	require.Contains(t, pl.View(0), "a_")

	pl.Step() // "ab"
	pl.Step() // commit line 1
	n, partial = pl.Revealed()
	require.Equal(t, 1, n)
	require.Empty(t, partial)
	view := pl.View(0)
	require.Contains(t, view, "| ab")
	require.NotContains(t, view, "cd")

	steps := 0
	for !pl.Done() {
		pl.Step()
		steps++
	}
	require.Equal(t, 3, steps)
	require.Contains(t, pl.View(0), "cd")
	require.NotContains(t, pl.View(0), "_")

	pl.Reset()
	require.False(t, pl.Done())
	n, _ = pl.Revealed()
	require.Zero(t, n)
	pl.Skip()
	require.True(t, pl.Done())
}

func TestPlayerDelays(t *testing.T) {
	pl := NewPlayer("a", Config{TypingEffect: true}, render.Simplified{})
	require.Equal(t, DefaultTypingSpeed, pl.FirstDelay())
	d, more := pl.Step()
	require.True(t, more)
	require.Equal(t, DefaultTypingSpeed, d)
	_, more = pl.Step()
	require.False(t, more)
}
