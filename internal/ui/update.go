package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"typedterm/internal/scenario"
	"typedterm/internal/system"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case typeTickMsg:
		if msg.gen != m.gen || m.paused {
			return m, nil
		}
		d, more := m.step()
		m.pending = more
		m.refreshViewport()
		if !more {
			return m, nil
		}
		return m, typeTickCmd(m.gen, d)

	case clockMsg:
		m.now = time.Time(msg)
		return m, clockCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.vp.Width = maxInt(msg.Width, 20)
		m.vp.Height = maxInt(msg.Height-4, 3)
		m.refreshViewport()
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			if m.zones.Get("btn.restart").InBounds(msg) {
				return m, m.restart()
			}
			if m.zones.Get("btn.pause").InBounds(msg) {
				return m, m.togglePause()
			}
			if m.zones.Get("btn.scenarios").InBounds(msg) && m.opts.Mode == ModeTerminal {
				m.openPalette()
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd

	case watchStartedMsg:
		m.watcher = msg.w
		return m, watchSubscribeCmd(msg.w)

	case configChangedMsg:
		return m, tea.Batch(loadConfigCmd(m.opts.ConfigPath), watchSubscribeCmd(m.watcher))

	case configLoadedMsg:
		if msg.err != nil {
			system.Logger.Warn("config reload failed", "err", msg.err)
			m.notice = "config error: " + msg.err.Error()
			return m, nil
		}
		// new speeds apply from the next restart
		m.opts.Typing = msg.cfg.TypingOptions()
		m.opts.Scenarios = msg.cfg.AllScenarios()
		tb := msg.cfg.CodeBlock(m.opts.CodeBlock.Language)
		m.opts.CodeBlock.TypingEffect = tb.TypingEffect
		m.opts.CodeBlock.TypingSpeed = tb.TypingSpeed
		m.opts.CodeBlock.ShowLineNumbers = tb.ShowLineNumbers
		m.notice = "config reloaded · press r to apply"
		return m, nil

	case noticeMsg:
		m.notice = string(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.paletteOpen {
			return m.updatePalette(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.Restart):
			m.notice = ""
			return m, m.restart()
		case key.Matches(msg, m.keys.Pause):
			return m, m.togglePause()
		case key.Matches(msg, m.keys.Skip):
			m.skip()
			m.refreshViewport()
			return m, nil
		case key.Matches(msg, m.keys.Palette):
			if m.opts.Mode == ModeTerminal {
				m.openPalette()
			}
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.gen++
	if m.watcher != nil {
		_ = m.watcher.Close()
	}
	return m, tea.Quit
}

// togglePause stops or resumes the animation. Pausing bumps the generation
// so the tick already in flight is dropped.
func (m *model) togglePause() tea.Cmd {
	if m.paused {
		m.paused = false
		m.gen++
		if m.done() {
			return nil
		}
		m.pending = true
		return m.tickCmd()
	}
	m.paused = true
	m.pending = false
	m.gen++
	return nil
}

func (m *model) openPalette() {
	m.paletteOpen = true
	m.palette.SetValue("")
	m.palette.Focus()
	m.filterPalette()
}

func (m *model) closePalette() {
	m.paletteOpen = false
	m.palette.Blur()
}

type scenarioNames []scenario.Scenario

func (s scenarioNames) String(i int) string { return s[i].Name }
func (s scenarioNames) Len() int            { return len(s) }

func (m *model) filterPalette() {
	q := m.palette.Value()
	if q == "" {
		m.paletteItems = append([]scenario.Scenario(nil), m.opts.Scenarios...)
	} else {
		matches := fuzzy.FindFrom(q, scenarioNames(m.opts.Scenarios))
		m.paletteItems = m.paletteItems[:0]
		for _, mt := range matches {
			m.paletteItems = append(m.paletteItems, m.opts.Scenarios[mt.Index])
		}
	}
	if m.paletteIndex >= len(m.paletteItems) {
		m.paletteIndex = 0
	}
}

func (m model) updatePalette(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closePalette()
		return m, nil
	case key.Matches(msg, m.keys.Select):
		if len(m.paletteItems) == 0 {
			return m, nil
		}
		m.opts.Scenario = m.paletteItems[m.paletteIndex]
		m.closePalette()
		m.notice = ""
		return m, m.restart()
	case key.Matches(msg, m.keys.PrevItem):
		if n := len(m.paletteItems); n > 0 {
			m.paletteIndex = (m.paletteIndex - 1 + n) % n
		}
		return m, nil
	case key.Matches(msg, m.keys.NextItem):
		if n := len(m.paletteItems); n > 0 {
			m.paletteIndex = (m.paletteIndex + 1) % n
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.palette, cmd = m.palette.Update(msg)
	m.filterPalette()
	return m, cmd
}

// helper used locally for layout
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
