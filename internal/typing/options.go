package typing

import "time"

const (
	DefaultCharDelay = 50 * time.Millisecond
	DefaultLinePause = 10
	DefaultLoopDelay = 2 * time.Second
)

// Options controls reveal speed and looping.
type Options struct {
	// CharDelay is the time between two revealed characters.
	CharDelay time.Duration `yaml:"char_delay" json:"charDelay"`
	// LinePause multiplies CharDelay for the pause after a command is fully typed.
	LinePause int `yaml:"line_pause" json:"linePause"`
	// Loop restarts from the first command after LoopDelay.
	Loop      bool          `yaml:"loop" json:"loop"`
	LoopDelay time.Duration `yaml:"loop_delay" json:"loopDelay"`
	// KeepHistory keeps committed entries across loop restarts.
	KeepHistory bool `yaml:"keep_history" json:"keepHistory"`
}

// DefaultOptions returns the stock typing options.
func DefaultOptions() Options {
	return Options{CharDelay: DefaultCharDelay, LinePause: DefaultLinePause, LoopDelay: DefaultLoopDelay}
}

// Normalize replaces zero or negative values with defaults.
func (o Options) Normalize() Options {
	if o.CharDelay <= 0 {
		o.CharDelay = DefaultCharDelay
	}
	if o.LinePause <= 0 {
		o.LinePause = DefaultLinePause
	}
	if o.LoopDelay <= 0 {
		o.LoopDelay = DefaultLoopDelay
	}
	return o
}

// Pause is the delay between the last character of a command and its commit.
func (o Options) Pause() time.Duration {
	return o.CharDelay * time.Duration(o.LinePause)
}
