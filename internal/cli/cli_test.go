package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"typedterm/internal/config"
	"typedterm/internal/render"
	"typedterm/internal/scenario"
	"typedterm/internal/segment"
	"typedterm/internal/testutil"
	"typedterm/internal/typing"
)

// run executes the root command with a throwaway config path.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	testutil.WithEnv(t, config.EnvPath, filepath.Join(t.TempDir(), "config.yaml"))
	flagConfig, flagDebug, tokenizeJSON = "", false, false
	formatLang, highlightLang, highlightFormat = "", "", "ansi"
	configInit, configWizard = false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	require.NotEmpty(t, strings.TrimSpace(out))
}

func TestTokenizeJSON(t *testing.T) {
	out, err := run(t, "", "tokenize", "--json", "npm install --save react")
	require.NoError(t, err)
	var segs []segment.Segment
	require.NoError(t, json.Unmarshal([]byte(out), &segs))
	require.Equal(t, segment.Tokenize("npm install --save react"), segs)
}

func TestTokenizeText(t *testing.T) {
	out, err := run(t, "", "tokenize", "ls", "-la")
	require.NoError(t, err)
	require.Contains(t, out, `"ls"`)
	require.Contains(t, out, `"-la"`)
	require.Contains(t, out, "option")
}

func TestFormatStdin(t *testing.T) {
	out, err := run(t, "\n\n    if x:\n        y()\n\n", "format", "--lang", "python")
	require.NoError(t, err)
	require.Equal(t, "if x:\n    y()\n", out)
}

func TestFormatFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(p, []byte("\t\tfunc main() {}\n"), 0o644))
	out, err := run(t, "", "format", p)
	require.NoError(t, err)
	require.Equal(t, "func main() {}\n", out)

	_, err = run(t, "", "format", filepath.Join(t.TempDir(), "missing.go"))
	require.Error(t, err)
}

func TestHighlightHTML(t *testing.T) {
	out, err := run(t, "const a = 1;", "highlight", "--lang", "javascript", "--format", "html")
	require.NoError(t, err)
	require.Contains(t, out, "<pre")
}

func TestHighlightPlainKeepsText(t *testing.T) {
	out, err := run(t, "x := 1", "highlight", "-l", "go", "-f", "plain")
	require.NoError(t, err)
	require.Equal(t, "x := 1", out)
}

func TestSchemaCommand(t *testing.T) {
	out, err := run(t, "", "schema")
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	require.Contains(t, out, "char_delay")
}

func TestScenariosCommand(t *testing.T) {
	out, err := run(t, "", "scenarios")
	require.NoError(t, err)
	for _, s := range scenario.Builtins() {
		require.Contains(t, out, s.Name)
	}
	require.Contains(t, out, "* "+scenario.Default)
}

func TestConfigInitAndShow(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cfg", "config.yaml")
	out, err := run(t, "", "config", "--init", "--config", p)
	require.NoError(t, err)
	require.Contains(t, out, "created")
	_, err = os.Stat(p)
	require.NoError(t, err)

	out, err = run(t, "", "config", "--config", p)
	require.NoError(t, err)
	require.Contains(t, out, "char_delay: 50ms")
}

func TestBadConfigFails(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("log_level: loud\n"), 0o644))
	_, err := run(t, "", "version", "--config", p)
	require.Error(t, err)
}

func TestPickScenario(t *testing.T) {
	list := scenario.Builtins()
	sc, err := pickScenario(list, "", []string{"Deploy"}, scenario.Default)
	require.NoError(t, err)
	require.Equal(t, "deploy", sc.Name)

	sc, err = pickScenario(list, "", []string{"ls -la", "pwd"}, scenario.Default)
	require.NoError(t, err)
	require.Equal(t, []string{"ls -la", "pwd"}, typing.Texts(sc.Commands))

	sc, err = pickScenario(list, "dock", nil, scenario.Default)
	require.NoError(t, err)
	require.Equal(t, "docker", sc.Name)

	sc, err = pickScenario(list, "", nil, "nothing-like-this")
	require.NoError(t, err)
	require.Equal(t, list[0].Name, sc.Name)

	_, err = pickScenario(list, "zzzz", nil, scenario.Default)
	require.Error(t, err)
}

func TestPlayFlagsOverlay(t *testing.T) {
	f := playFlags{speed: 5 * time.Millisecond, loop: true, keepHistory: true}
	opts := f.typingOptions(typing.DefaultOptions())
	require.Equal(t, 5*time.Millisecond, opts.CharDelay)
	require.Equal(t, typing.DefaultLinePause, opts.LinePause)
	require.True(t, opts.Loop)
	require.True(t, opts.KeepHistory)
}

func TestPlayPlain(t *testing.T) {
	clock := testutil.NewFakeClock()
	sc := scenario.Scenario{Name: "t", Commands: []typing.Command{
		{Text: "ls", Output: []string{"a.txt"}},
		{Text: "cat x", Output: []string{"missing"}, Error: true},
	}}
	var out bytes.Buffer
	errCh := make(chan error, 1)
	go func() {
		errCh <- playPlain(context.Background(), &out, render.Simplified{}, sc, typing.Options{CharDelay: 10 * time.Millisecond, LinePause: 1}, typing.NewScheduler(clock))
	}()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case err := <-errCh:
			require.NoError(t, err)
			require.Equal(t, "$ ls\na.txt\n$ cat x\nmissing\n", out.String())
			return
		case <-deadline:
			t.Fatalf("playPlain did not finish; output so far %q", out.String())
		default:
			clock.Advance(10 * time.Millisecond)
			time.Sleep(time.Millisecond)
		}
	}
}

func TestPlayPlainCancel(t *testing.T) {
	clock := testutil.NewFakeClock()
	ctx, cancel := context.WithCancel(context.Background())
	sc := scenario.Adhoc("sleep 100")
	var out bytes.Buffer
	errCh := make(chan error, 1)
	go func() {
		errCh <- playPlain(ctx, &out, render.Simplified{}, sc, typing.Options{Loop: true}, typing.NewScheduler(clock))
	}()
	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatalf("playPlain ignored cancellation")
	}
}
