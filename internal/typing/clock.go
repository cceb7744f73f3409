package typing

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. Tests swap in a virtual clock.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// clockworkClock adapts a clockwork clock; only the return type of
// AfterFunc differs.
type clockworkClock struct {
	c clockwork.Clock
}

func (c clockworkClock) Now() time.Time { return c.c.Now() }

func (c clockworkClock) AfterFunc(d time.Duration, f func()) Timer { return c.c.AfterFunc(d, f) }

// FromClockwork wraps a clockwork clock. Its fake clock runs AfterFunc
// callbacks on their own goroutine, so a single Advance fires at most one
// tick of a run.
func FromClockwork(c clockwork.Clock) Clock { return clockworkClock{c: c} }

// RealClock returns the wall clock.
func RealClock() Clock { return FromClockwork(clockwork.NewRealClock()) }
