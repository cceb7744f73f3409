package ui

import "os"

// nfEnabled returns true when Nerd Font icons should be rendered.
// Default to enabled; allow disabling via NERDFONT=0
func nfEnabled() bool {
	return os.Getenv("NERDFONT") != "0"
}

func nf(icon, fallback string) string {
	if nfEnabled() {
		return icon
	}
	return fallback
}

// Status bar icons
func IconTerminal() string { return nf("", "$") }
func IconCode() string     { return nf("", "</>") }
func IconVersion() string  { return nf("", "v") }
func IconPlay() string     { return nf("", ">") }
func IconPause() string    { return nf("", "||") }
func IconRestart() string  { return nf("", "R") }
