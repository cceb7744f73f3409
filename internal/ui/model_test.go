package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"typedterm/internal/codeblock"
	"typedterm/internal/config"
	"typedterm/internal/render"
	"typedterm/internal/scenario"
	"typedterm/internal/terminal"
	"typedterm/internal/typing"
)

func fixedNow() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) }

func terminalModel(cmds ...typing.Command) model {
	return newModel(Options{
		Mode:     ModeTerminal,
		Scenario: scenario.Scenario{Name: "t", Commands: cmds},
		Typing:   typing.Options{CharDelay: time.Millisecond, LinePause: 1},
		Provider: render.Simplified{},
		Now:      fixedNow,
	})
}

// drain feeds ticks of the current generation until the run stops.
func drain(t *testing.T, m model) model {
	t.Helper()
	for i := 0; i < 10000 && m.pending; i++ {
		next, _ := m.Update(typeTickMsg{gen: m.gen})
		m = next.(model)
	}
	require.False(t, m.pending, "animation did not finish")
	return m
}

func TestTerminalRunsToCompletion(t *testing.T) {
	m := terminalModel(
		typing.Command{Text: "ls", Output: []string{"a.txt"}},
		typing.Command{Text: "cat b", Output: []string{"no such file"}, Error: true},
	)
	cmd := m.Init()
	require.NotNil(t, cmd)
	require.True(t, m.pending)

	m = drain(t, m)
	hist := m.machine.History()
	require.Equal(t, []terminal.EntryKind{
		terminal.EntryCommand, terminal.EntryOutput,
		terminal.EntryCommand, terminal.EntryError,
	}, kinds(hist))
	require.Equal(t, terminal.StateIdle, m.machine.State())

	view := m.View()
	require.Contains(t, view, "$ ls")
	require.Contains(t, view, "a.txt")
	require.Contains(t, view, "no such file")
	require.Contains(t, view, "idle")
}

func kinds(es []terminal.Entry) []terminal.EntryKind {
	out := make([]terminal.EntryKind, len(es))
	for i, e := range es {
		out[i] = e.Kind
	}
	return out
}

func TestStaleTicksIgnored(t *testing.T) {
	m := terminalModel(typing.Command{Text: "echo hi"})
	m.Init()
	old := m.gen
	next, _ := m.Update(typeTickMsg{gen: old})
	m = next.(model)
	require.Equal(t, "e", m.machine.Buffer())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = next.(model)
	require.NotNil(t, cmd)
	require.Greater(t, m.gen, old)
	require.Empty(t, m.machine.Buffer())

	next, cmd = m.Update(typeTickMsg{gen: old})
	m = next.(model)
	require.Nil(t, cmd)
	require.Empty(t, m.machine.Buffer(), "tick from the previous run must not type")
}

func TestPauseResume(t *testing.T) {
	m := terminalModel(typing.Command{Text: "pwd"})
	m.Init()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = next.(model)
	require.True(t, m.paused)

	next, cmd := m.Update(typeTickMsg{gen: m.gen})
	m = next.(model)
	require.Nil(t, cmd)
	require.Empty(t, m.machine.Buffer())
	require.Contains(t, m.View(), "paused")

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = next.(model)
	require.False(t, m.paused)
	require.NotNil(t, cmd)
	m = drain(t, m)
	require.Len(t, m.machine.History(), 1)
}

func TestSkipCommitsCurrentCommand(t *testing.T) {
	m := terminalModel(typing.Command{Text: "one"}, typing.Command{Text: "two"})
	m.Init()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	m = next.(model)
	hist := m.machine.History()
	require.Len(t, hist, 1)
	require.Equal(t, "one", hist[0].Content)
	require.False(t, m.seq.Done())
}

func TestPaletteSelectsScenario(t *testing.T) {
	m := terminalModel(typing.Command{Text: "x"})
	m.opts.Scenarios = scenario.Builtins()
	m.Init()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	m = next.(model)
	require.True(t, m.paletteOpen)
	require.Len(t, m.paletteItems, len(scenario.Builtins()))

	for _, r := range "dock" {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(model)
	}
	require.NotEmpty(t, m.paletteItems)
	require.Equal(t, "docker", m.paletteItems[0].Name)
	require.Contains(t, m.View(), "docker")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	require.NotNil(t, cmd)
	require.False(t, m.paletteOpen)
	require.Equal(t, "docker", m.opts.Scenario.Name)
	require.Equal(t, "docker", m.title())
}

func TestPaletteEscape(t *testing.T) {
	m := terminalModel(typing.Command{Text: "x"})
	m.openPalette()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(model)
	require.False(t, m.paletteOpen)
	require.Equal(t, "t", m.opts.Scenario.Name)
}

func TestConfigReloadAppliesOnRestart(t *testing.T) {
	m := terminalModel(typing.Command{Text: "x"})
	cfg := config.Default()
	cfg.Terminal.CharDelay = config.Duration(7 * time.Millisecond)
	next, _ := m.Update(configLoadedMsg{cfg: cfg})
	m = next.(model)
	require.Equal(t, 7*time.Millisecond, m.opts.Typing.CharDelay)
	require.Contains(t, m.notice, "reloaded")

	m.restart()
	require.Equal(t, 7*time.Millisecond, m.seq.Options().CharDelay)
}

func TestCodeModeReveal(t *testing.T) {
	m := newModel(Options{
		Mode:      ModeCode,
		Code:      "    a := 1\n    b := 2",
		CodeBlock: codeblock.Config{Language: "go", TypingEffect: true, TypingSpeed: time.Millisecond},
		Provider:  render.Simplified{},
		Now:       fixedNow,
	})
	m.Init()
	require.True(t, m.pending)
	m = drain(t, m)
	view := m.View()
	require.Contains(t, view, "a := 1")
	require.Contains(t, view, "b := 2")
	require.Contains(t, view, "main.go")
}

func TestCodeModeWithoutTyping(t *testing.T) {
	m := newModel(Options{
		Mode:      ModeCode,
		Code:      "x",
		CodeBlock: codeblock.Config{Language: "go"},
		Provider:  render.Simplified{},
	})
	require.True(t, m.player.Done())
	require.False(t, m.pending)
	require.Nil(t, m.tickCmd())
}

func TestQuit(t *testing.T) {
	m := terminalModel(typing.Command{Text: "x"})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	require.True(t, strings.HasPrefix(next.View(), "Goodbye"))
}
