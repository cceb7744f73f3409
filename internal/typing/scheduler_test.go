package typing_test

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"typedterm/internal/testutil"
	"typedterm/internal/typing"
)

func TestScheduler_RunsToCompletion(t *testing.T) {
	clk := testutil.NewFakeClock()
	sch := typing.NewScheduler(clk)
	var commits []string
	h := sch.Start(typing.Commands("ls -la", "pwd"), typing.Options{CharDelay: 10 * time.Millisecond}, func(ev typing.Event) {
		if ev.Kind == typing.EventCommit {
			commits = append(commits, ev.Command.Text)
		}
	})

	clk.Advance(time.Minute)

	require.Equal(t, []string{"ls -la", "pwd"}, commits)
	require.Equal(t, "", h.Buffer())
	require.False(t, h.Pending())
	select {
	case <-h.Done():
	default:
		t.Fatalf("handle should be done")
	}
	require.Equal(t, 0, clk.Pending())
}

func TestScheduler_TimingMatchesOptions(t *testing.T) {
	clk := testutil.NewFakeClock()
	var n int
	sch := typing.NewScheduler(clk)
	sch.Start(typing.Commands("abc"), typing.Options{CharDelay: 10 * time.Millisecond}, func(ev typing.Event) { n++ })

	clk.Advance(9 * time.Millisecond)
	require.Equal(t, 0, n)
	clk.Advance(1 * time.Millisecond)
	require.Equal(t, 1, n)
	clk.Advance(20 * time.Millisecond)
	require.Equal(t, 3, n)
	// line pause: 10 * 10ms before the commit
	clk.Advance(99 * time.Millisecond)
	require.Equal(t, 3, n)
	clk.Advance(1 * time.Millisecond)
	require.Equal(t, 4, n)
}

func TestScheduler_StopMidSequence(t *testing.T) {
	clk := testutil.NewFakeClock()
	sch := typing.NewScheduler(clk)
	var n int
	h := sch.Start(typing.Commands("hello world"), typing.Options{CharDelay: 10 * time.Millisecond}, func(typing.Event) { n++ })

	clk.Advance(35 * time.Millisecond)
	require.Equal(t, 3, n)
	h.Stop()
	before := h.Progress()
	clk.Advance(time.Hour)

	require.Equal(t, 3, n, "no tick may fire after Stop")
	require.Equal(t, before, h.Progress())
	require.Equal(t, 0, clk.Pending())
	require.True(t, h.Stopped())
	h.Stop() // idempotent
}

func TestScheduler_StopFromHandler(t *testing.T) {
	clk := testutil.NewFakeClock()
	sch := typing.NewScheduler(clk)
	var h *typing.Handle
	var n int
	h = sch.Start(typing.Commands("abcdef"), typing.Options{CharDelay: time.Millisecond}, func(ev typing.Event) {
		n++
		if ev.Progress.CharIndex == 2 {
			h.Stop()
		}
	})
	clk.Advance(time.Second)
	require.Equal(t, 2, n)
}

func TestScheduler_LoopKeepsGoing(t *testing.T) {
	clk := testutil.NewFakeClock()
	sch := typing.NewScheduler(clk)
	restarts := 0
	h := sch.Start(typing.Commands("x"), typing.Options{CharDelay: 10 * time.Millisecond, Loop: true, LoopDelay: time.Second}, func(ev typing.Event) {
		if ev.Kind == typing.EventRestart {
			restarts++
		}
	})
	clk.Advance(5 * time.Second)
	require.GreaterOrEqual(t, restarts, 3)
	require.True(t, h.Pending())
	h.Stop()
	require.Equal(t, 0, clk.Pending())
}

func TestScheduler_IndependentInstances(t *testing.T) {
	clk := testutil.NewFakeClock()
	sch := typing.NewScheduler(clk)
	var a, b []string
	ha := sch.Start(typing.Commands("one"), typing.Options{CharDelay: time.Millisecond}, func(ev typing.Event) {
		if ev.Kind == typing.EventCommit {
			a = append(a, ev.Command.Text)
		}
	})
	sch.Start(typing.Commands("two", "three"), typing.Options{CharDelay: time.Millisecond}, func(ev typing.Event) {
		if ev.Kind == typing.EventCommit {
			b = append(b, ev.Command.Text)
		}
	})
	ha.Stop()
	clk.Advance(time.Second)
	require.Empty(t, a)
	require.Equal(t, []string{"two", "three"}, b)
}

func TestScheduler_EmptyQueueIsDone(t *testing.T) {
	h := typing.NewScheduler(testutil.NewFakeClock()).Start(nil, typing.Options{}, nil)
	select {
	case <-h.Done():
	default:
		t.Fatalf("empty queue should complete immediately")
	}
}

func TestScheduler_RealClock(t *testing.T) {
	done := make(chan struct{})
	var got []string
	h := typing.NewScheduler(nil).Start(typing.Commands("ok"), typing.Options{CharDelay: time.Millisecond, LinePause: 1}, func(ev typing.Event) {
		if ev.Kind == typing.EventCommit {
			got = append(got, ev.Command.Text)
			if ev.Final {
				close(done)
			}
		}
	})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("real clock reveal did not finish")
	}
	<-h.Done()
	require.Equal(t, []string{"ok"}, got)
}

func TestScheduler_StopDuringTickDeliversOnlyThatTick(t *testing.T) {
	clk := testutil.NewFakeClock()
	entered := make(chan struct{})
	release := make(chan struct{})
	var n int
	h := typing.NewScheduler(clk).Start(typing.Commands("abcdef"), typing.Options{CharDelay: 10 * time.Millisecond}, func(typing.Event) {
		n++
		if n == 1 {
			close(entered)
			<-release
		}
	})

	advanced := make(chan struct{})
	go func() {
		clk.Advance(10 * time.Millisecond)
		close(advanced)
	}()
	<-entered
	h.Stop()
	close(release)
	<-advanced

	clk.Advance(time.Hour)
	require.Equal(t, 1, n)
	require.False(t, h.Pending())
	require.Equal(t, 0, clk.Pending())
}

func TestScheduler_ClockworkFakeClock(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	fc := clockwork.NewFakeClock()
	events := make(chan typing.Event, 16)
	// every delay is 10ms: LinePause 1 makes the pause one character long
	h := typing.NewScheduler(typing.FromClockwork(fc)).Start(typing.Commands("ab"), typing.Options{CharDelay: 10 * time.Millisecond, LinePause: 1}, func(ev typing.Event) {
		events <- ev
	})

	var kinds []typing.EventKind
	for {
		// callbacks run on their own goroutine, so each tick is driven alone
		require.NoError(t, fc.BlockUntilContext(ctx, 1))
		fc.Advance(10 * time.Millisecond)
		var ev typing.Event
		select {
		case ev = <-events:
		case <-ctx.Done():
			t.Fatalf("tick not delivered")
		}
		kinds = append(kinds, ev.Kind)
		if ev.Final {
			break
		}
	}
	<-h.Done()
	require.Equal(t, []typing.EventKind{typing.EventChar, typing.EventChar, typing.EventCommit}, kinds)
}
