package server

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"typedterm/internal/scenario"
	"typedterm/internal/segment"
	"typedterm/internal/system"
	"typedterm/internal/terminal"
	"typedterm/internal/typing"
)

// frame is one Server-Sent Event.
type frame struct {
	name string
	data streamData
}

type streamData struct {
	Index        int               `json:"index"`
	Buffer       string            `json:"buffer"`
	Segments     []segment.Segment `json:"segments,omitempty"`
	Progress     typing.Progress   `json:"progress"`
	State        string            `json:"state"`
	Entries      []terminal.Entry  `json:"entries,omitempty"`
	ClearHistory bool              `json:"clearHistory,omitempty"`
}

// streamOptions applies ?speed=, ?pause= and ?loop= to the defaults.
// speed accepts a Go duration or a number of milliseconds.
func streamOptions(c *gin.Context, base typing.Options) typing.Options {
	opts := base
	if v := c.Query("speed"); v != "" {
		if d, ok := parseDelay(v); ok {
			opts.CharDelay = d
		}
	}
	if v := c.Query("pause"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts.LinePause = n
		}
	}
	if v := c.Query("loop"); v != "" {
		opts.Loop, _ = strconv.ParseBool(v)
	}
	if v := c.Query("loopDelay"); v != "" {
		if d, ok := parseDelay(v); ok {
			opts.LoopDelay = d
		}
	}
	return opts.Normalize()
}

func parseDelay(v string) (time.Duration, bool) {
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d, true
	}
	if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond, true
	}
	return 0, false
}

// streamHandler plays a scenario as Server-Sent Events: char, commit and
// restart per tick, then done. The timer is stopped as soon as the client
// goes away.
func (s *Server) streamHandler(c *gin.Context) {
	name := strings.TrimSpace(c.Query("scenario"))
	if name == "" {
		name = scenario.Default
	}
	sc, ok := scenario.Find(s.Scenarios, name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown scenario " + strconv.Quote(name)})
		return
	}
	opts := streamOptions(c, s.Typing)
	ctx := c.Request.Context()

	s.streams.Add(1)
	defer s.streams.Add(-1)

	machine := terminal.NewMachine(nil)
	machine.Begin(len(sc.Commands))
	events := make(chan frame, 64)
	seen := 0
	// the scheduler serialises handler calls, so machine and seen need no lock
	h := s.sched.Start(sc.Commands, opts, func(ev typing.Event) {
		machine.Apply(ev)
		snap := machine.Snapshot()
		if ev.Kind == typing.EventRestart && ev.ClearHistory {
			seen = 0
		}
		d := streamData{
			Index:        ev.Index,
			Buffer:       snap.Buffer,
			Progress:     snap.Progress,
			State:        snap.State.String(),
			ClearHistory: ev.ClearHistory,
		}
		if ev.Kind == typing.EventChar {
			d.Segments = segment.Tokenize(snap.Buffer)
		}
		if len(snap.History) > seen {
			d.Entries = snap.History[seen:]
			seen = len(snap.History)
		}
		select {
		case events <- frame{name: ev.Kind.String(), data: d}:
		case <-ctx.Done():
		}
	})
	defer h.Stop()

	system.Logger.Debug("stream started", "scenario", sc.Name, "loop", opts.Loop)
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("start", gin.H{"scenario": sc.Name, "commands": len(sc.Commands)})

	finished := false
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case f := <-events:
			c.SSEvent(f.name, f.data)
			return true
		case <-h.Done():
			drain(c, events)
			finished = true
			c.SSEvent("done", gin.H{"history": machine.History()})
			return false
		}
	})
	system.Logger.Debug("stream closed", "scenario", sc.Name, "finished", finished)
}

// drain writes frames queued before the run finished.
func drain(c *gin.Context, events <-chan frame) {
	for {
		select {
		case f := <-events:
			c.SSEvent(f.name, f.data)
		default:
			return
		}
	}
}
