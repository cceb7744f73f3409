package typing

import "strings"

// Command is one queued entry: the text that gets typed, and the lines it
// prints once committed.
type Command struct {
	Text   string   `yaml:"text" json:"text"`
	Output []string `yaml:"output,omitempty" json:"output,omitempty"`
	// Error marks Output as error output.
	Error bool `yaml:"error,omitempty" json:"error,omitempty"`
}

// Commands wraps plain strings into commands without output.
func Commands(texts ...string) []Command {
	out := make([]Command, 0, len(texts))
	for _, t := range texts {
		out = append(out, Command{Text: t})
	}
	return out
}

// Lines splits text into one command per line, used to type a code block
// line by line.
func Lines(text string) []Command {
	if text == "" {
		return []Command{}
	}
	return Commands(strings.Split(text, "\n")...)
}

// Texts returns the typed text of each command.
func Texts(cmds []Command) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.Text
	}
	return out
}
