package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"typedterm/internal/codeblock"
	"typedterm/internal/config"
	"typedterm/internal/render"
	"typedterm/internal/scenario"
	"typedterm/internal/terminal"
	"typedterm/internal/typing"
)

// Mode selects what the TUI animates.
type Mode int

const (
	// ModeTerminal types a scenario into a fake terminal.
	ModeTerminal Mode = iota
	// ModeCode reveals a code block.
	ModeCode
)

// Options configures the TUI.
type Options struct {
	Mode Mode

	// Terminal mode
	Scenario  scenario.Scenario
	Scenarios []scenario.Scenario
	Typing    typing.Options

	// Code mode
	Code      string
	CodeBlock codeblock.Config

	Provider render.Provider
	// ConfigPath, when set, is watched and reloaded on change.
	ConfigPath string
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Model for TUI
type model struct {
	opts     Options
	provider render.Provider
	keys     keyMap
	help     help.Model
	vp       viewport.Model
	zones    *zone.Manager

	// animation; gen tags the current run so ticks of a previous run are
	// ignored after a restart
	gen     int
	paused  bool
	pending bool
	seq     *typing.Sequencer
	machine *terminal.Machine
	player  *codeblock.Player

	// scenario palette
	paletteOpen  bool
	palette      textinput.Model
	paletteItems []scenario.Scenario
	paletteIndex int

	watcher *config.Watcher

	width    int
	height   int
	now      time.Time
	notice   string
	quitting bool
}

func newModel(opts Options) model {
	if opts.Provider == nil {
		opts.Provider = render.Simplified{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if len(opts.Scenarios) == 0 {
		opts.Scenarios = scenario.Builtins()
	}
	opts.Typing = opts.Typing.Normalize()

	ti := textinput.New()
	ti.Prompt = " › "
	ti.Placeholder = "scenario"
	ti.CharLimit = 64

	m := model{
		opts:     opts,
		provider: opts.Provider,
		keys:     defaultKeys(),
		help:     help.New(),
		vp:       viewport.New(80, 20),
		zones:    zone.New(),
		palette:  ti,
		now:      opts.Now(),
	}
	m.load()
	m.arm()
	return m
}

// InitialModel builds the TUI model.
func InitialModel(opts Options) tea.Model { return newModel(opts) }

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tickCmd(), clockCmd()}
	if m.opts.ConfigPath != "" {
		cmds = append(cmds, startWatchCmd(m.opts.ConfigPath))
	}
	return tea.Batch(cmds...)
}

// load builds the sequencer (or player) for the current options.
func (m *model) load() {
	switch m.opts.Mode {
	case ModeCode:
		m.player = codeblock.NewPlayer(m.opts.Code, m.opts.CodeBlock, m.provider)
		if !m.opts.CodeBlock.TypingEffect {
			m.player.Skip()
		}
	default:
		m.seq = typing.NewSequencer(m.opts.Scenario.Commands, m.opts.Typing)
		if m.machine == nil {
			m.machine = terminal.NewMachine(m.opts.Now)
		}
		m.machine.Reset()
	}
	m.refreshViewport()
}

// arm starts a new run: it bumps the generation so ticks of the previous
// run are ignored.
func (m *model) arm() {
	m.gen++
	m.paused = false
	if m.opts.Mode == ModeTerminal {
		m.machine.Begin(len(m.opts.Scenario.Commands))
	}
	m.pending = !m.done()
}

// tickCmd schedules the first tick of the current run.
func (m model) tickCmd() tea.Cmd {
	if !m.pending {
		return nil
	}
	d := m.opts.Typing.CharDelay
	if m.opts.Mode == ModeCode {
		d = m.player.FirstDelay()
	}
	return typeTickCmd(m.gen, d)
}

// restart rewinds the animation. History is cleared.
func (m *model) restart() tea.Cmd {
	m.load()
	m.arm()
	return m.tickCmd()
}

// step advances one tick and returns the delay before the next one.
func (m *model) step() (time.Duration, bool) {
	if m.opts.Mode == ModeCode {
		return m.player.Step()
	}
	if m.seq.Done() {
		return 0, false
	}
	ev, d, more := m.seq.Step()
	m.machine.Apply(ev)
	return d, more
}

// skip jumps to the end of the current command, or of the code block.
func (m *model) skip() {
	if m.opts.Mode == ModeCode {
		m.player.Skip()
		return
	}
	for !m.seq.Done() {
		ev, _, _ := m.seq.Step()
		m.machine.Apply(ev)
		if ev.Kind == typing.EventCommit {
			return
		}
	}
}

func (m model) done() bool {
	if m.opts.Mode == ModeCode {
		return m.player.Done()
	}
	return m.seq.Done()
}

func (m model) title() string {
	if m.opts.Mode == ModeCode {
		if m.opts.CodeBlock.Title != "" {
			return m.opts.CodeBlock.Title
		}
		return m.opts.CodeBlock.Language
	}
	return m.opts.Scenario.Label()
}
