package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"typedterm/internal/config"
)

// Commands

func typeTickCmd(gen int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return typeTickMsg{gen: gen} })
}

func clockCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return clockMsg(t) })
}

func startWatchCmd(path string) tea.Cmd {
	return func() tea.Msg {
		w, err := config.Watch(path)
		if err != nil {
			return noticeMsg("config watch unavailable: " + err.Error())
		}
		return watchStartedMsg{w: w}
	}
}

// watchSubscribeCmd waits for the next change, debounced so an editor's
// write-then-rename lands as one reload.
func watchSubscribeCmd(w *config.Watcher) tea.Cmd {
	return func() tea.Msg {
		if w == nil {
			return nil
		}
		if _, ok := <-w.Changes(); !ok {
			return nil
		}
		time.Sleep(120 * time.Millisecond)
		return configChangedMsg{}
	}
}

func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.LoadFile(path)
		return configLoadedMsg{cfg: cfg, err: err}
	}
}
