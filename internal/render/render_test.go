package render

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func trueColor() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	return r
}

func TestChoose(t *testing.T) {
	r := trueColor()
	cases := []struct {
		name string
		caps Capabilities
		want string
	}{
		{"colour", Capabilities{Profile: termenv.TrueColor, Highlight: true}, "rich"},
		{"ansi256", Capabilities{Profile: termenv.ANSI256, Highlight: true}, "rich"},
		{"no colour env", Capabilities{Profile: termenv.TrueColor, NoColor: true, Highlight: true}, "simplified"},
		{"ascii", Capabilities{Profile: termenv.Ascii, Highlight: true}, "simplified"},
		{"no lexers", Capabilities{Profile: termenv.TrueColor}, "simplified"},
	}
	for _, c := range cases {
		if got := Choose(c.caps, r, nil).Name(); got != c.want {
			t.Fatalf("%s: got %s want %s", c.name, got, c.want)
		}
	}
}

func TestDetectNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	caps := Detect(trueColor())
	if !caps.NoColor {
		t.Fatalf("NO_COLOR not detected")
	}
	if !caps.Highlight {
		t.Fatalf("built-in lexers should load")
	}
	if Probe(trueColor()).Name() != "simplified" {
		t.Fatalf("NO_COLOR must select the simplified provider")
	}
}

func TestRichCommandKeepsText(t *testing.T) {
	p := NewRich(trueColor(), nil)
	cmd := "npm install --save react && echo \"ok\" > /tmp/log"
	out := p.Command(cmd)
	if ansi.Strip(out) != cmd {
		t.Fatalf("stripped command mismatch: %q", ansi.Strip(out))
	}
	if !strings.Contains(out, "\x1b[") {
		t.Fatalf("rich command should be coloured")
	}
}

func TestRichLines(t *testing.T) {
	p := NewRich(trueColor(), nil)
	lines := p.Lines("a := 1\nb := 2", "go")
	if len(lines) != 2 || ansi.Strip(lines[1]) != "b := 2" {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestSimplified(t *testing.T) {
	var p Provider = Simplified{}
	if got := p.Command("ls -la"); got != "ls -la" {
		t.Fatalf("got %q", got)
	}
	if got := p.Paint(RoleError, "boom"); got != "boom" {
		t.Fatalf("got %q", got)
	}
	if got := p.Paint(RoleBadge, "go"); got != "[go]" {
		t.Fatalf("badge got %q", got)
	}
	if b := p.Border(); b.TopLeft != "+" || b.Vertical != "|" {
		t.Fatalf("simplified border should be ascii: %+v", b)
	}
	if lines := p.Lines("a\nb", "go"); len(lines) != 2 {
		t.Fatalf("lines %q", lines)
	}
}
