// Package terminal holds the render state of an animated terminal: the
// committed history, the line being typed and the current state.
package terminal

import (
	"time"

	"typedterm/internal/typing"
)

// EntryKind is the kind of a history line.
type EntryKind string

const (
	EntryCommand EntryKind = "command"
	EntryOutput  EntryKind = "output"
	EntryError   EntryKind = "error"
)

// Entry is one committed history line. Entries are never modified once
// appended.
type Entry struct {
	Kind      EntryKind `json:"type"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// State of the render machine.
type State int

const (
	StateIdle State = iota
	StateTyping
	StateCommitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTyping:
		return "typing"
	case StateCommitting:
		return "committing"
	}
	return "unknown"
}

// Snapshot is a copy of the machine state, safe to hand to renderers.
type Snapshot struct {
	State    State           `json:"state"`
	History  []Entry         `json:"history"`
	Buffer   string          `json:"buffer"`
	Progress typing.Progress `json:"progress"`
	Typing   bool            `json:"typing"`
}

// Machine applies typing events to terminal state. It owns no timers; a
// Session or the TUI feeds it events.
type Machine struct {
	now      func() time.Time
	total    int
	state    State
	history  []Entry
	buffer   string
	progress typing.Progress
}

// NewMachine returns an idle machine. now stamps history entries and
// defaults to time.Now.
func NewMachine(now func() time.Time) *Machine {
	if now == nil {
		now = time.Now
	}
	return &Machine{now: now}
}

// Begin enters Typing at the first of total commands. History is kept.
func (m *Machine) Begin(total int) {
	m.total = total
	m.buffer = ""
	m.progress = typing.Progress{}
	if total == 0 {
		m.state = StateIdle
		return
	}
	m.state = StateTyping
}

// Halt drops the in-progress line and goes idle. History is kept.
func (m *Machine) Halt() {
	m.state = StateIdle
	m.buffer = ""
	m.progress = typing.Progress{}
}

// Reset clears history and goes idle.
func (m *Machine) Reset() {
	m.Halt()
	m.history = nil
}

// Apply performs the transition for ev.
func (m *Machine) Apply(ev typing.Event) {
	switch ev.Kind {
	case typing.EventChar:
		m.state = StateTyping
		m.buffer = ev.Buffer
		m.progress = ev.Progress
	case typing.EventCommit:
		m.state = StateCommitting
		m.commit(ev.Command)
		m.buffer = ""
		m.progress = ev.Progress
		if ev.Final || ev.Progress.CommandIndex >= m.total {
			m.state = StateIdle
		}
	case typing.EventRestart:
		if ev.ClearHistory {
			m.history = nil
		}
		m.buffer = ""
		m.progress = typing.Progress{}
		m.state = StateTyping
	}
}

func (m *Machine) commit(c typing.Command) {
	ts := m.now()
	m.history = append(m.history, Entry{Kind: EntryCommand, Content: c.Text, Timestamp: ts})
	kind := EntryOutput
	if c.Error {
		kind = EntryError
	}
	for _, ln := range c.Output {
		m.history = append(m.history, Entry{Kind: kind, Content: ln, Timestamp: ts})
	}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Buffer returns the line being typed.
func (m *Machine) Buffer() string { return m.buffer }

// Typing reports whether the cursor should blink on an active line.
func (m *Machine) Typing() bool { return m.state != StateIdle }

// History returns a copy of the committed entries.
func (m *Machine) History() []Entry { return append([]Entry(nil), m.history...) }

// Snapshot copies the full state.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		State:    m.state,
		History:  m.History(),
		Buffer:   m.buffer,
		Progress: m.progress,
		Typing:   m.Typing(),
	}
}
