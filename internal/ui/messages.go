package ui

import (
	"time"

	"typedterm/internal/config"
)

// Bubble Tea messages

// typeTickMsg advances the animation. gen tags the run that scheduled it;
// ticks from an earlier run are dropped.
type typeTickMsg struct{ gen int }

// periodic tick for status bar time
type clockMsg time.Time

// config file watching
type watchStartedMsg struct{ w *config.Watcher }
type configChangedMsg struct{}
type configLoadedMsg struct {
	cfg config.Config
	err error
}

// generic notifications
type noticeMsg string
