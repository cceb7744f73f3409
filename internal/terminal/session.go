package terminal

import (
	"sync"

	"typedterm/internal/typing"
)

// Session is one animated terminal instance: a Machine driven by its own
// scheduler handle. Sessions share nothing, so several can animate at once.
//
// Lifecycle: Mount starts typing, Unmount disposes every pending timer.
// Events from a handle that has been replaced or stopped are dropped.
type Session struct {
	mu      sync.Mutex
	sched   *typing.Scheduler
	machine *Machine
	queue   []typing.Command
	opts    typing.Options
	handle  *typing.Handle
	gen     uint64
	mounted bool
	subs    map[int]func(Snapshot)
	nextSub int
}

// NewSession prepares a session; nothing runs until Mount.
func NewSession(queue []typing.Command, opts typing.Options, sched *typing.Scheduler) *Session {
	if sched == nil {
		sched = typing.NewScheduler(nil)
	}
	return &Session{
		sched:   sched,
		machine: NewMachine(sched.Clock().Now),
		queue:   append([]typing.Command(nil), queue...),
		opts:    opts.Normalize(),
		subs:    map[int]func(Snapshot){},
	}
}

// Mount marks the session live and starts typing from the first command.
func (s *Session) Mount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mounted {
		return
	}
	s.mounted = true
	s.startLocked()
}

// Unmount stops typing and clears every pending timer. It is safe to call
// more than once.
func (s *Session) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mounted = false
	s.stopLocked()
	s.machine.Halt()
}

// Mounted reports whether the session is live.
func (s *Session) Mounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mounted
}

// Start begins typing from the first command unless a run is already in
// progress. History is kept.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mounted || s.runningLocked() {
		return
	}
	s.startLocked()
}

// Restart goes idle immediately, clears timers and history, then types
// from the first command again.
func (s *Session) Restart() {
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return
	}
	s.stopLocked()
	s.machine.Reset()
	s.startLocked()
	snap, subs := s.machine.Snapshot(), s.subscribersLocked()
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}

// SetQueue replaces the command queue; it takes effect on the next Restart.
func (s *Session) SetQueue(queue []typing.Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append([]typing.Command(nil), queue...)
}

// SetOptions replaces the typing options; they take effect on the next
// Restart.
func (s *Session) SetOptions(opts typing.Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = opts.Normalize()
}

// Subscribe registers fn to receive a snapshot after every transition. The
// returned func removes it.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// History returns a copy of the committed entries.
func (s *Session) History() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.History()
}

// Buffer returns the line being typed.
func (s *Session) Buffer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Buffer()
}

// IsTyping gates the cursor blink.
func (s *Session) IsTyping() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Typing()
}

// Progress returns the typing cursor.
func (s *Session) Progress() typing.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Snapshot().Progress
}

// State returns the machine state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.State()
}

// Snapshot copies the full state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Snapshot()
}

// Done is closed when the current run finishes or is stopped. It returns
// nil before the first Mount.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle == nil {
		return nil
	}
	return s.handle.Done()
}

func (s *Session) runningLocked() bool {
	if s.handle == nil {
		return false
	}
	select {
	case <-s.handle.Done():
		return false
	default:
		return true
	}
}

func (s *Session) startLocked() {
	s.gen++
	gen := s.gen
	s.machine.Begin(len(s.queue))
	s.handle = s.sched.Start(s.queue, s.opts, func(ev typing.Event) { s.onEvent(gen, ev) })
}

func (s *Session) stopLocked() {
	s.gen++
	if s.handle != nil {
		s.handle.Stop()
	}
}

func (s *Session) subscribersLocked() []func(Snapshot) {
	out := make([]func(Snapshot), 0, len(s.subs))
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.subs[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func (s *Session) onEvent(gen uint64, ev typing.Event) {
	s.mu.Lock()
	if gen != s.gen || !s.mounted {
		s.mu.Unlock()
		return
	}
	s.machine.Apply(ev)
	snap, subs := s.machine.Snapshot(), s.subscribersLocked()
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}
