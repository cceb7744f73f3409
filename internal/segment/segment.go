package segment

import "strings"

// Kind classifies a span of a shell-like command for colourised rendering.
type Kind string

const (
	KindCommand  Kind = "command"
	KindOption   Kind = "option"
	KindPath     Kind = "path"
	KindURL      Kind = "url"
	KindString   Kind = "string"
	KindNumber   Kind = "number"
	KindOperator Kind = "operator"
	KindEnv      Kind = "env"
	KindPlain    Kind = "plain"
)

// Kinds lists every segment kind in display order.
var Kinds = []Kind{KindCommand, KindOption, KindPath, KindURL, KindString, KindNumber, KindOperator, KindEnv, KindPlain}

// Segment is a classified, contiguous substring of a command.
type Segment struct {
	Text string `json:"text"`
	Kind Kind   `json:"type"`
}

// operators are matched longest first.
var operators = []string{
	"2>&1", "&>>", "2>>", "1>>", "&>", "2>", "1>", ">>", "<<", ">&", "||", "&&",
	"|", "&", ";", ">", "<", "(", ")",
}

// separators start a new command, so the next bare word is a command again.
var separators = map[string]bool{"|": true, "||": true, "&&": true, ";": true, "&": true, "(": true}

// prefixes run another command; the word that follows them is a command too.
var prefixes = map[string]bool{"sudo": true, "env": true, "time": true, "nohup": true, "exec": true, "xargs": true, "watch": true}

// Tokenize splits command into classified segments. Every byte of the input
// belongs to exactly one segment, so Join(Tokenize(s)) == s. It never fails:
// anything it does not recognise is plain.
func Tokenize(command string) []Segment {
	if command == "" {
		return []Segment{}
	}
	t := tokenizer{src: command, expectCommand: true}
	t.run()
	return t.out
}

// Join concatenates segment texts in order.
func Join(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

type tokenizer struct {
	src           string
	pos           int
	out           []Segment
	expectCommand bool
}

func (t *tokenizer) emit(end int, k Kind) {
	t.out = append(t.out, Segment{Text: t.src[t.pos:end], Kind: k})
	t.pos = end
}

func (t *tokenizer) run() {
	s := t.src
	for t.pos < len(s) {
		c := s[t.pos]
		switch {
		case isSpace(c):
			j := t.pos
			for j < len(s) && isSpace(s[j]) {
				if s[j] == '\n' {
					t.expectCommand = true
				}
				j++
			}
			t.emit(j, KindPlain)
			continue
		case c == '$':
			if j := scanEnv(s, t.pos); j > t.pos {
				t.emit(j, KindEnv)
				t.expectCommand = false
				continue
			}
			t.emit(t.pos+1, KindPlain)
			continue
		case c == '\'' || c == '"':
			// VAR="value" keeps the command slot open.
			if !t.afterAssignment() {
				t.expectCommand = false
			}
			t.emit(scanQuoted(s, t.pos), KindString)
			continue
		}
		if op := matchOperator(s, t.pos); op != "" {
			t.emit(t.pos+len(op), KindOperator)
			if separators[op] {
				t.expectCommand = true
			}
			continue
		}
		j := scanWord(s, t.pos)
		if j == t.pos {
			t.emit(t.pos+1, KindPlain)
			continue
		}
		t.word(j)
	}
}

func (t *tokenizer) word(end int) {
	w := t.src[t.pos:end]
	switch {
	case t.expectCommand && isAssignment(w):
		t.emit(end, KindEnv)
	case hasScheme(w):
		t.emit(end, KindURL)
		t.expectCommand = false
	case isPath(w):
		t.emit(end, KindPath)
		t.expectCommand = false
	case isOption(w):
		t.emit(end, KindOption)
		t.expectCommand = false
	case isNumber(w):
		t.emit(end, KindNumber)
		t.expectCommand = false
	case t.expectCommand:
		t.emit(end, KindCommand)
		t.expectCommand = prefixes[w]
	default:
		t.emit(end, KindPlain)
	}
}

func (t *tokenizer) afterAssignment() bool {
	if len(t.out) == 0 {
		return false
	}
	last := t.out[len(t.out)-1]
	return last.Kind == KindEnv && strings.HasSuffix(last.Text, "=")
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func isOperatorByte(c byte) bool {
	switch c {
	case '|', '&', ';', '<', '>', '(', ')':
		return true
	}
	return false
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdent(c byte) bool { return isIdentStart(c) || (c >= '0' && c <= '9') }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// scanEnv returns the end of an environment reference starting at i, or i
// when s[i:] is not one. An unterminated ${ runs to the next space.
func scanEnv(s string, i int) int {
	if i+1 >= len(s) {
		return i
	}
	c := s[i+1]
	switch {
	case c == '{':
		j := i + 2
		for j < len(s) && s[j] != '}' && !isSpace(s[j]) {
			j++
		}
		if j < len(s) && s[j] == '}' {
			return j + 1
		}
		return j
	case isIdentStart(c):
		j := i + 2
		for j < len(s) && isIdent(s[j]) {
			j++
		}
		return j
	case isDigit(c) || strings.IndexByte("?!$#@*-", c) >= 0:
		return i + 2
	}
	return i
}

// scanQuoted returns the end of the quoted string opening at i, including the
// closing quote. An unterminated quote swallows the rest of the input.
func scanQuoted(s string, i int) int {
	q := s[i]
	for j := i + 1; j < len(s); j++ {
		if q == '"' && s[j] == '\\' && j+1 < len(s) {
			j++
			continue
		}
		if s[j] == q {
			return j + 1
		}
	}
	return len(s)
}

func matchOperator(s string, i int) string {
	for _, op := range operators {
		if strings.HasPrefix(s[i:], op) {
			return op
		}
	}
	return ""
}

func scanWord(s string, i int) int {
	j := i
	for j < len(s) {
		c := s[j]
		if isSpace(c) || isOperatorByte(c) || c == '\'' || c == '"' || c == '$' {
			break
		}
		j++
	}
	return j
}

func isAssignment(w string) bool {
	eq := strings.IndexByte(w, '=')
	if eq <= 0 || !isIdentStart(w[0]) {
		return false
	}
	for i := 1; i < eq; i++ {
		if !isIdent(w[i]) {
			return false
		}
	}
	return true
}

func hasScheme(w string) bool {
	k := strings.Index(w, "://")
	if k <= 0 || k+3 >= len(w) {
		return false
	}
	if !isIdentStart(w[0]) || w[0] == '_' {
		return false
	}
	for i := 1; i < k; i++ {
		c := w[i]
		if !(isIdent(c) || c == '+' || c == '.' || c == '-') || c == '_' {
			return false
		}
	}
	return true
}

func isPath(w string) bool {
	if strings.HasPrefix(w, "--") {
		return false
	}
	return w == "~" || w == "." || w == ".." || strings.HasPrefix(w, "~") || strings.Contains(w, "/")
}

func isOption(w string) bool {
	return len(w) > 1 && w[0] == '-'
}

func isNumber(w string) bool {
	dot := false
	for i := 0; i < len(w); i++ {
		switch c := w[i]; {
		case isDigit(c):
		case c == '.' && !dot && i > 0 && i < len(w)-1:
			dot = true
		default:
			return false
		}
	}
	return w != ""
}
