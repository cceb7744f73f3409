package typing

import (
	"sync"
	"time"
)

// Handler receives every tick of a running reveal.
type Handler func(Event)

// Scheduler starts timer-driven reveals. A Scheduler holds no per-run state;
// each Start returns an independent Handle owning its own timer.
type Scheduler struct {
	clock Clock
}

// NewScheduler returns a scheduler using clock, or the real clock when nil.
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = RealClock()
	}
	return &Scheduler{clock: clock}
}

// Clock returns the scheduler's clock.
func (s *Scheduler) Clock() Clock { return s.clock }

// Start begins revealing queue and calls h on every tick. An empty queue
// yields a handle that is already done.
func (s *Scheduler) Start(queue []Command, opts Options, h Handler) *Handle {
	hd := &Handle{
		seq:     NewSequencer(queue, opts),
		clock:   s.clock,
		handler: h,
		done:    make(chan struct{}),
	}
	hd.mu.Lock()
	defer hd.mu.Unlock()
	if hd.seq.Done() {
		hd.finishLocked()
		return hd
	}
	hd.armLocked(hd.seq.FirstDelay())
	return hd
}

// Handle is one running reveal. At most one timer is pending at any time.
type Handle struct {
	mu      sync.Mutex
	seq     *Sequencer
	clock   Clock
	handler Handler
	timer   Timer
	gen     uint64
	stopped bool
	done    chan struct{}
	once    sync.Once
}

func (h *Handle) armLocked(d time.Duration) {
	gen := h.gen
	h.timer = h.clock.AfterFunc(d, func() { h.fire(gen) })
}

func (h *Handle) finishLocked() {
	h.timer = nil
	h.once.Do(func() { close(h.done) })
}

func (h *Handle) fire(gen uint64) {
	h.mu.Lock()
	if h.stopped || gen != h.gen {
		h.mu.Unlock()
		return
	}
	h.timer = nil
	ev, next, more := h.seq.Step()
	h.mu.Unlock()

	if h.handler != nil {
		h.handler(ev)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped || gen != h.gen {
		return
	}
	if !more {
		h.finishLocked()
		return
	}
	h.armLocked(next)
}

// Stop cancels the pending timer. No tick starts after Stop returns, but a
// tick already in progress on another goroutine may still deliver its event.
// Callers that need a hard cutoff drop late events themselves, as Session
// does with its generation. It is safe to call more than once and from
// inside the handler.
func (h *Handle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}
	h.stopped = true
	h.gen++
	if h.timer != nil {
		h.timer.Stop()
	}
	h.finishLocked()
}

// Stopped reports whether Stop was called.
func (h *Handle) Stopped() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}

// Done is closed when the reveal completes or is stopped.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Pending reports whether a timer is armed.
func (h *Handle) Pending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.timer != nil
}

// Progress returns the current typing cursor.
func (h *Handle) Progress() Progress {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.seq.Progress()
}

// Buffer returns the partially typed current command.
func (h *Handle) Buffer() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.seq.Buffer()
}
