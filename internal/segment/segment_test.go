package segment

import (
	"reflect"
	"testing"
)

func TestTokenize_NpmInstall(t *testing.T) {
	got := Tokenize("npm install --save react")
	want := []Segment{
		{"npm", KindCommand},
		{" ", KindPlain},
		{"install", KindPlain},
		{" ", KindPlain},
		{"--save", KindOption},
		{" ", KindPlain},
		{"react", KindPlain},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected segments:\n got: %#v\nwant: %#v", got, want)
	}
}

func TestTokenize_Empty(t *testing.T) {
	got := Tokenize("")
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestTokenize_Kinds(t *testing.T) {
	cases := []struct {
		in   string
		text string
		kind Kind
	}{
		{"echo $HOME", "$HOME", KindEnv},
		{"echo ${PATH}", "${PATH}", KindEnv},
		{"echo $?", "$?", KindEnv},
		{"echo 'hello world'", "'hello world'", KindString},
		{`echo "a \"b\" c"`, `"a \"b\" c"`, KindString},
		{"curl https://example.com/api?x=1", "https://example.com/api?x=1", KindURL},
		{"cat ./src/main.go", "./src/main.go", KindPath},
		{"cd ~", "~", KindPath},
		{"ls -la", "-la", KindOption},
		{"git log --oneline", "--oneline", KindOption},
		{"docker run --volume=/data app", "--volume=/data", KindOption},
		{"head -n 20 file", "20", KindNumber},
		{"sleep 0.5", "0.5", KindNumber},
		{"ls | wc", "|", KindOperator},
		{"make && make install", "&&", KindOperator},
		{"run 2>&1", "2>&1", KindOperator},
		{"echo hi >> log", ">>", KindOperator},
	}
	for _, tc := range cases {
		segs := Tokenize(tc.in)
		found := false
		for _, s := range segs {
			if s.Text == tc.text {
				found = true
				if s.Kind != tc.kind {
					t.Fatalf("%q: segment %q kind = %s, want %s", tc.in, tc.text, s.Kind, tc.kind)
				}
			}
		}
		if !found {
			t.Fatalf("%q: segment %q not found in %#v", tc.in, tc.text, segs)
		}
	}
}

func TestTokenize_CommandAfterSeparators(t *testing.T) {
	segs := Tokenize("cat log.txt | grep error && echo done; ls")
	var cmds []string
	for _, s := range segs {
		if s.Kind == KindCommand {
			cmds = append(cmds, s.Text)
		}
	}
	want := []string{"cat", "grep", "echo", "ls"}
	if !reflect.DeepEqual(cmds, want) {
		t.Fatalf("commands = %v, want %v", cmds, want)
	}
}

func TestTokenize_AssignmentAndPrefix(t *testing.T) {
	segs := Tokenize(`NODE_ENV="production" sudo npm start`)
	kinds := map[string]Kind{}
	for _, s := range segs {
		kinds[s.Text] = s.Kind
	}
	if kinds["NODE_ENV="] != KindEnv {
		t.Fatalf("assignment kind = %s", kinds["NODE_ENV="])
	}
	if kinds[`"production"`] != KindString {
		t.Fatalf("value kind = %s", kinds[`"production"`])
	}
	if kinds["sudo"] != KindCommand || kinds["npm"] != KindCommand {
		t.Fatalf("expected sudo and npm as commands, got %#v", segs)
	}
	if kinds["start"] != KindPlain {
		t.Fatalf("start kind = %s", kinds["start"])
	}
}

func TestTokenize_UnterminatedQuote(t *testing.T) {
	segs := Tokenize(`echo "unterminated rest of line`)
	last := segs[len(segs)-1]
	if last.Kind != KindString || last.Text != `"unterminated rest of line` {
		t.Fatalf("unexpected last segment %#v", last)
	}
}

func TestTokenize_QuotedPathIsString(t *testing.T) {
	segs := Tokenize(`cat "/etc/hosts"`)
	if segs[len(segs)-1].Kind != KindString {
		t.Fatalf("quoted path should be a string, got %#v", segs)
	}
}

func TestTokenize_NoEmptySegments(t *testing.T) {
	for _, in := range []string{"$", "a$", "${", "$ {x}", "'", "  ", ">", "x=1"} {
		for _, s := range Tokenize(in) {
			if s.Text == "" {
				t.Fatalf("%q produced empty segment: %#v", in, Tokenize(in))
			}
		}
		if got := Join(Tokenize(in)); got != in {
			t.Fatalf("Join(Tokenize(%q)) = %q", in, got)
		}
	}
}

func FuzzTokenizeLossless(f *testing.F) {
	for _, s := range []string{
		"", " ", "npm install --save react", "ls -la", "pwd",
		`echo "a b" 'c d' $HOME ${X} 2>&1 | tee out.log`,
		"FOO=bar ./run.sh --port=8080 https://x.io/a 3.14",
		"π '漢字' \"🐱\"", "\"unterminated", "${unterminated",
	} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		segs := Tokenize(s)
		if got := Join(segs); got != s {
			t.Fatalf("lossless violation: got %q want %q", got, s)
		}
		for _, seg := range segs {
			if seg.Text == "" {
				t.Fatalf("empty segment for input %q", s)
			}
		}
	})
}
