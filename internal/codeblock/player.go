package codeblock

import (
	"time"

	"typedterm/internal/codefmt"
	"typedterm/internal/render"
	"typedterm/internal/typing"
)

// Player reveals a code block line by line. The whole snippet is
// highlighted once; finished lines are taken from that result and the line
// being typed is drawn plain, so partial tokens never flicker between
// colours.
//
// Player holds no timers. The caller calls Step and waits the returned
// delay, the same contract as typing.Sequencer.
type Player struct {
	cfg      Config
	code     string
	seq      *typing.Sequencer
	complete int
	partial  string
	typing   bool

	provider render.Provider
	lines    []string
}

// NewPlayer prepares a reveal of code.
func NewPlayer(code string, cfg Config, p render.Provider) *Player {
	code = codefmt.Format(code, cfg.Language)
	speed := cfg.TypingSpeed
	if speed <= 0 {
		speed = DefaultTypingSpeed
	}
	return &Player{
		cfg:      cfg,
		code:     code,
		seq:      typing.NewSequencer(typing.Lines(code), typing.Options{CharDelay: speed, LinePause: 1}),
		provider: p,
		lines:    p.Lines(code, cfg.Language),
	}
}

// Code returns the formatted snippet.
func (pl *Player) Code() string { return pl.code }

// FirstDelay is the wait before the first Step.
func (pl *Player) FirstDelay() time.Duration { return pl.seq.FirstDelay() }

// Step reveals one more character, or finishes the current line. It
// returns the delay before the next Step and whether one is due.
func (pl *Player) Step() (time.Duration, bool) {
	ev, d, more := pl.seq.Step()
	switch ev.Kind {
	case typing.EventChar:
		pl.partial = ev.Buffer
		pl.typing = true
	case typing.EventCommit:
		pl.complete = ev.Index + 1
		pl.partial = ""
		pl.typing = false
	}
	return d, more
}

// Done reports whether every line is revealed.
func (pl *Player) Done() bool { return pl.seq.Done() }

// Reset starts the reveal over.
func (pl *Player) Reset() {
	pl.seq.Reset()
	pl.complete, pl.partial, pl.typing = 0, "", false
}

// Skip reveals everything at once.
func (pl *Player) Skip() {
	for !pl.seq.Done() {
		pl.Step()
	}
}

// Revealed returns the number of finished lines and the text typed so far
// on the next one.
func (pl *Player) Revealed() (int, string) { return pl.complete, pl.partial }

// View draws the block as revealed so far.
func (pl *Player) View(width int) string {
	if !pl.cfg.TypingEffect || pl.seq.Done() {
		return draw(pl.lines, pl.cfg, pl.provider, width, -1)
	}
	n := min(pl.complete, len(pl.lines))
	shown := make([]string, n, n+1)
	copy(shown, pl.lines[:n])
	cursor := -1
	if pl.typing || n < len(pl.lines) {
		shown = append(shown, pl.partial)
		cursor = len(shown) - 1
	}
	return draw(shown, pl.cfg, pl.provider, width, cursor)
}
