package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// readInput returns the contents of the file named by args[0], or stdin
// when there is no argument or it is "-".
func readInput(stdin io.Reader, args []string) (text, name string, err error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), "", nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(b), args[0], nil
}

// ensureNewline terminates s with a newline for terminal output.
func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
