package ui

import (
	"fmt"
	"strings"

	"typedterm/internal/theme"
	appver "typedterm/internal/version"
)

func (m model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	b := &strings.Builder{}
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if m.paletteOpen {
		names := make([]string, len(m.paletteItems))
		for i, s := range m.paletteItems {
			names[i] = s.Name
			if s.Description != "" {
				names[i] += theme.Dim().Render("  " + s.Description)
			}
		}
		b.WriteString(renderPalette(m.width, m.palette.View(), names, m.paletteIndex))
	} else {
		b.WriteString(m.vp.View())
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatusBarLine())
	b.WriteString(m.help.View(m.keys))
	return m.zones.Scan(b.String())
}

func (m model) renderHeader() string {
	icon := IconTerminal()
	if m.opts.Mode == ModeCode {
		icon = IconCode()
	}
	title := theme.AccentBold().Render(icon+" typedterm") + theme.Dim().Render(" · "+m.title())
	pause := IconPause() + " pause"
	if m.paused {
		pause = IconPlay() + " resume"
	}
	buttons := []string{
		m.zones.Mark("btn.restart", theme.Button(IconRestart()+" restart")),
		m.zones.Mark("btn.pause", theme.Button(pause)),
	}
	if m.opts.Mode == ModeTerminal {
		buttons = append(buttons, m.zones.Mark("btn.scenarios", theme.Button("scenarios")))
	}
	return title + "  " + strings.Join(buttons, " ")
}

// refreshViewport re-renders the animation into the viewport and keeps the
// newest line in view.
func (m *model) refreshViewport() {
	var content string
	if m.opts.Mode == ModeCode {
		content = m.player.View(m.vp.Width)
	} else {
		snap := m.machine.Snapshot()
		content = renderTerminal(m.provider, snap, !m.seq.Done() || snap.Typing)
	}
	m.vp.SetContent(content)
	m.vp.GotoBottom()
}

// renderStatusBarLine builds the status bar string (one line plus a newline).
func (m model) renderStatusBarLine() string {
	state := "idle"
	switch {
	case m.paused:
		state = "paused"
	case m.opts.Mode == ModeCode && !m.player.Done():
		state = "typing"
	case m.opts.Mode == ModeTerminal:
		state = m.machine.State().String()
	}
	left := []string{state}
	if m.opts.Mode == ModeTerminal {
		p := m.seq.Progress()
		total := len(m.opts.Scenario.Commands)
		left = append(left, fmt.Sprintf("%d/%d", minInt(p.CommandIndex+1, total), total))
	} else {
		n, _ := m.player.Revealed()
		left = append(left, fmt.Sprintf("line %d", n))
	}
	if m.notice != "" {
		left = append(left, m.notice)
	} else {
		left = append(left, m.now.Format("15:04:05"))
	}
	right := IconVersion() + " " + appver.AppVersion + " · " + m.provider.Name()
	return renderStatusBar(m.width, " "+strings.Join(left, " · "), right+" ") + "\n"
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
