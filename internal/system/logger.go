package system

import (
	"io"
	"os"
	"strings"

	clog "github.com/charmbracelet/log"
)

// Logger is the shared application logger. It prints to stderr with
// timestamps; the TUI redirects it so log lines do not tear the screen.
var Logger = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: true,
	Prefix:          "typedterm",
})

// SetLevel parses a level name (debug, info, warn, error). Unknown names
// leave the level unchanged and return false.
func SetLevel(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	lvl, err := clog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return false
	}
	Logger.SetLevel(lvl)
	return true
}

// Redirect sends log output to w, returning a func that restores stderr.
func Redirect(w io.Writer) func() {
	Logger.SetOutput(w)
	return func() { Logger.SetOutput(os.Stderr) }
}
