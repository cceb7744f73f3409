package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"typedterm/internal/testutil"
	"typedterm/internal/typing"
)

func TestPathHonoursEnv(t *testing.T) {
	home := t.TempDir()
	testutil.WithEnv(t, "HOME", home)
	testutil.WithEnv(t, EnvPath, "")
	p, err := Path()
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if want := filepath.Join(home, ".typedterm", "config.yaml"); p != want {
		t.Fatalf("got %s want %s", p, want)
	}
	custom := filepath.Join(t.TempDir(), "tt.yaml")
	testutil.WithEnv(t, EnvPath, custom)
	if p, _ := Path(); p != custom {
		t.Fatalf("env override ignored: %s", p)
	}
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	testutil.WithEnv(t, EnvPath, filepath.Join(t.TempDir(), "none.yaml"))
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Terminal.LinePause != typing.DefaultLinePause || time.Duration(cfg.Terminal.CharDelay) != typing.DefaultCharDelay {
		t.Fatalf("unexpected defaults %+v", cfg.Terminal)
	}
	if !cfg.Terminal.ClearOnLoop {
		t.Fatalf("clear_on_loop should default to true")
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	data := `
terminal:
  char_delay: 20ms
  loop: true
code:
  typing_speed: 15
scenarios:
  - name: hello
    commands:
      - text: echo hello
        output: [hello]
`
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if time.Duration(cfg.Terminal.CharDelay) != 20*time.Millisecond || !cfg.Terminal.Loop {
		t.Fatalf("terminal section not applied: %+v", cfg.Terminal)
	}
	if cfg.Terminal.LinePause != typing.DefaultLinePause {
		t.Fatalf("line_pause lost its default: %d", cfg.Terminal.LinePause)
	}
	if time.Duration(cfg.Code.TypingSpeed) != 15*time.Millisecond {
		t.Fatalf("bare integer should be milliseconds, got %v", time.Duration(cfg.Code.TypingSpeed))
	}
	if cfg.WebUI.Addr == "" {
		t.Fatalf("webui.addr lost its default")
	}
	opts := cfg.TypingOptions()
	if !opts.Loop || opts.KeepHistory || opts.CharDelay != 20*time.Millisecond {
		t.Fatalf("unexpected typing options %+v", opts)
	}
	var found bool
	for _, s := range cfg.AllScenarios() {
		if s.Name == "hello" && s.Commands[0].Output[0] == "hello" {
			found = true
		}
	}
	if !found {
		t.Fatalf("configured scenario missing")
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"yaml":     "terminal: [",
		"duration": "terminal:\n  char_delay: soon\n",
		"level":    "log_level: loud\n",
		"negative": "cache:\n  size: -1\n",
	}
	for name, data := range cases {
		p := filepath.Join(dir, name+".yaml")
		if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg, err := LoadFile(p)
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if cfg.Terminal.LinePause != typing.DefaultLinePause {
			t.Fatalf("%s: invalid file should still return defaults", name)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "config.yaml")
	testutil.WithEnv(t, EnvPath, p)
	cfg := Default()
	cfg.LogLevel = "debug"
	cfg.Terminal.LoopDelay = Duration(3 * time.Second)
	cfg.Cache.RedisAddr = "localhost:6379"
	got, err := Save(cfg)
	if err != nil || got != p {
		t.Fatalf("Save: %v %s", err, got)
	}
	b, _ := os.ReadFile(p)
	if !strings.Contains(string(b), "loop_delay: 3s") {
		t.Fatalf("durations should be written as strings:\n%s", b)
	}
	back, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.LogLevel != "debug" || back.Terminal.LoopDelay != cfg.Terminal.LoopDelay || back.Cache.RedisAddr != "localhost:6379" {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestCodeBlockConfig(t *testing.T) {
	cb := Default().CodeBlock("go")
	if cb.Language != "go" || !cb.ShowLineNumbers || !cb.TypingEffect || cb.TypingSpeed <= 0 {
		t.Fatalf("unexpected code block config %+v", cb)
	}
}

func TestSchema(t *testing.T) {
	b, err := MarshalSchema(Schema())
	if err != nil {
		t.Fatalf("MarshalSchema: %v", err)
	}
	s := string(b)
	for _, want := range []string{`"terminal"`, `"char_delay"`, `"scenarios"`, `"redis_addr"`, `"pattern"`} {
		if !strings.Contains(s, want) {
			t.Fatalf("schema missing %s", want)
		}
	}
}

func TestWatch(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte("log_level: info\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := Watch(p)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(filepath.Dir(p), "other.yaml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("log_level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Changes():
	case <-time.After(3 * time.Second):
		t.Fatalf("no change notification")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	_ = w.Close()
}
