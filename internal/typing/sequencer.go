package typing

import (
	"time"

	"github.com/rivo/uniseg"
)

// EventKind identifies what a tick did.
type EventKind int

const (
	// EventChar appended one character to the buffer.
	EventChar EventKind = iota
	// EventCommit finished the current command and cleared the buffer.
	EventCommit
	// EventRestart looped back to the first command.
	EventRestart
)

func (k EventKind) String() string {
	switch k {
	case EventChar:
		return "char"
	case EventCommit:
		return "commit"
	case EventRestart:
		return "restart"
	}
	return "unknown"
}

// Progress is the typing cursor within the queue.
type Progress struct {
	CommandIndex int `json:"commandIndex"`
	CharIndex    int `json:"charIndex"`
}

// Event is emitted once per tick.
type Event struct {
	Kind EventKind
	// Progress after the tick.
	Progress Progress
	// Buffer is the partially typed command after the tick.
	Buffer string
	// Command is set on EventCommit.
	Command Command
	// Index is the queue index the event refers to.
	Index int
	// Final is set on the last commit of a run that does not loop.
	Final bool
	// ClearHistory is set on EventRestart when history should be dropped.
	ClearHistory bool
}

// Sequencer is the pure step function behind every typing animation. It
// holds no timers: each Step returns the delay the driver must wait before
// calling Step again.
type Sequencer struct {
	queue     []Command
	graphemes [][]string
	opts      Options
	progress  Progress
	buffer    string
	done      bool
}

// NewSequencer prepares a reveal of queue. Options are normalised.
func NewSequencer(queue []Command, opts Options) *Sequencer {
	s := &Sequencer{
		queue:     append([]Command(nil), queue...),
		graphemes: make([][]string, len(queue)),
		opts:      opts.Normalize(),
	}
	for i, c := range s.queue {
		s.graphemes[i] = splitGraphemes(c.Text)
	}
	s.done = len(s.queue) == 0
	return s
}

func splitGraphemes(text string) []string {
	out := make([]string, 0, len(text))
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Options returns the normalised options.
func (s *Sequencer) Options() Options { return s.opts }

// Queue returns a copy of the queued commands.
func (s *Sequencer) Queue() []Command { return append([]Command(nil), s.queue...) }

// Progress returns the current cursor.
func (s *Sequencer) Progress() Progress { return s.progress }

// Buffer returns the partially typed current command.
func (s *Sequencer) Buffer() string { return s.buffer }

// Done reports whether the sequence has nothing left to reveal.
func (s *Sequencer) Done() bool { return s.done }

// Len returns the length, in characters, of the command at index i.
func (s *Sequencer) Len(i int) int {
	if i < 0 || i >= len(s.graphemes) {
		return 0
	}
	return len(s.graphemes[i])
}

// FirstDelay is the delay before the first Step.
func (s *Sequencer) FirstDelay() time.Duration { return s.opts.CharDelay }

// Reset rewinds to the first command and clears the buffer.
func (s *Sequencer) Reset() {
	s.progress = Progress{}
	s.buffer = ""
	s.done = len(s.queue) == 0
}

// Step advances by one tick. It returns the event, the delay before the
// next Step, and whether another Step is due. Calling Step after it has
// returned false yields a zero Event and false.
func (s *Sequencer) Step() (Event, time.Duration, bool) {
	if s.done {
		return Event{}, 0, false
	}
	ci := s.progress.CommandIndex
	if ci >= len(s.queue) {
		// only reachable when looping
		s.progress = Progress{}
		s.buffer = ""
		ev := Event{Kind: EventRestart, Progress: s.progress, ClearHistory: !s.opts.KeepHistory}
		return ev, s.opts.CharDelay, true
	}
	g := s.graphemes[ci]
	if s.progress.CharIndex < len(g) {
		s.buffer += g[s.progress.CharIndex]
		s.progress.CharIndex++
		ev := Event{Kind: EventChar, Progress: s.progress, Buffer: s.buffer, Index: ci}
		if s.progress.CharIndex < len(g) {
			return ev, s.opts.CharDelay, true
		}
		return ev, s.opts.Pause(), true
	}

	ev := Event{Kind: EventCommit, Command: s.queue[ci], Index: ci}
	s.progress = Progress{CommandIndex: ci + 1}
	s.buffer = ""
	ev.Progress = s.progress
	switch {
	case ci+1 < len(s.queue):
		return ev, s.opts.CharDelay, true
	case s.opts.Loop:
		return ev, s.opts.LoopDelay, true
	}
	s.done = true
	ev.Final = true
	return ev, 0, false
}
