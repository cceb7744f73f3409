package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"typedterm/internal/render"
	"typedterm/internal/segment"
	"typedterm/internal/theme"
)

var tokenizeJSON bool

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	tokenizeCmd.Flags().BoolVar(&tokenizeJSON, "json", false, "print segments as JSON")
	// "tokenize ls -la": everything after the first argument is the command
	tokenizeCmd.Flags().SetInterspersed(false)
}

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <command...>",
	Short: "Split a shell command into coloured segments",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		segs := segment.Tokenize(strings.Join(args, " "))
		out := cmd.OutOrStdout()
		if tokenizeJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(segs)
		}
		p := render.Probe(lipgloss.DefaultRenderer())
		fmt.Fprintln(out, p.Command(segment.Join(segs)))
		for _, s := range segs {
			if s.Kind == segment.KindPlain && strings.TrimSpace(s.Text) == "" {
				continue
			}
			label := lipgloss.NewStyle().Foreground(theme.SegmentColor(s.Kind)).Width(9).Render(string(s.Kind))
			if p.Name() != "rich" {
				label = fmt.Sprintf("%-9s", s.Kind)
			}
			fmt.Fprintf(out, "  %s %q\n", label, s.Text)
		}
		return nil
	},
}
