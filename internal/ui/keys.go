package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Restart  key.Binding
	Pause    key.Binding
	Skip     key.Binding
	Palette  key.Binding
	Up       key.Binding
	Down     key.Binding
	Help     key.Binding
	Quit     key.Binding
	Select   key.Binding
	Cancel   key.Binding
	PrevItem key.Binding
	NextItem key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Restart:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Pause:    key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause")),
		Skip:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
		Palette:  key.NewBinding(key.WithKeys("ctrl+p", "/"), key.WithHelp("/", "scenarios")),
		Up:       key.NewBinding(key.WithKeys("up", "k", "pgup"), key.WithHelp("↑/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j", "pgdown"), key.WithHelp("↓/j", "scroll down")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Select:   key.NewBinding(key.WithKeys("enter")),
		Cancel:   key.NewBinding(key.WithKeys("esc")),
		PrevItem: key.NewBinding(key.WithKeys("up", "ctrl+k")),
		NextItem: key.NewBinding(key.WithKeys("down", "ctrl+j")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Restart, k.Pause, k.Skip, k.Palette, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Restart, k.Pause, k.Skip},
		{k.Palette, k.Up, k.Down},
		{k.Help, k.Quit},
	}
}
