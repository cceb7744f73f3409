package app

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"typedterm/internal/render"
	"typedterm/internal/system"
	"typedterm/internal/ui"
)

// Start runs the TUI program and returns any error.
func Start(opts ui.Options) error {
	if opts.Provider == nil {
		opts.Provider = render.Probe(lipgloss.DefaultRenderer())
	}
	// log lines would tear the alt screen; send them to a file meanwhile
	restore, err := redirectLogs()
	if err != nil {
		return err
	}
	defer restore()
	if _, err := tea.NewProgram(ui.InitialModel(opts), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		return err
	}
	return nil
}

// redirectLogs points the logger at $TYPEDTERM_LOG while the TUI owns the
// terminal, or silences it when that is unset.
func redirectLogs() (func(), error) {
	path := os.Getenv("TYPEDTERM_LOG")
	if path == "" {
		return system.Redirect(io.Discard), nil
	}
	f, err := tea.LogToFile(path, "typedterm")
	if err != nil {
		return nil, err
	}
	undo := system.Redirect(f)
	return func() {
		undo()
		_ = f.Close()
	}, nil
}
