package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"typedterm/internal/app"
	"typedterm/internal/codeblock"
	"typedterm/internal/codefmt"
	"typedterm/internal/render"
	"typedterm/internal/ui"
)

var codeFlags struct {
	lang        string
	title       string
	typing      bool
	noTyping    bool
	speed       time.Duration
	lineNumbers bool
	noNumbers   bool
	highlight   string
	width       int
	plain       bool
}

func init() {
	rootCmd.AddCommand(codeCmd)
	f := codeCmd.Flags()
	f.StringVarP(&codeFlags.lang, "lang", "l", "", "language (default: from the file extension)")
	f.StringVarP(&codeFlags.title, "title", "t", "", "frame title (default: a filename for the language)")
	f.BoolVar(&codeFlags.typing, "typing", false, "reveal the code with a typing effect")
	f.BoolVar(&codeFlags.noTyping, "no-typing", false, "show the code at once")
	f.DurationVar(&codeFlags.speed, "speed", 0, "typing delay per character")
	f.BoolVarP(&codeFlags.lineNumbers, "line-numbers", "n", false, "show line numbers")
	f.BoolVar(&codeFlags.noNumbers, "no-line-numbers", false, "hide line numbers")
	f.StringVar(&codeFlags.highlight, "highlight", "", "lines to mark, e.g. 2,4-6")
	f.IntVarP(&codeFlags.width, "width", "w", 0, "frame width for --plain (default: fit content)")
	f.BoolVar(&codeFlags.plain, "plain", false, "print the block to stdout instead of opening the TUI")
}

var codeCmd = &cobra.Command{
	Use:   "code [file|-]",
	Short: "Show a code snippet in a highlighted, optionally typed, frame",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, name, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		lang := codeFlags.lang
		if lang == "" && name != "" {
			lang = codefmt.LanguageFromFilename(filepath.Base(name))
		}
		cfg := appCfg.CodeBlock(lang)
		cfg.Title = codeFlags.title
		if cfg.Title == "" && name != "" {
			cfg.Title = filepath.Base(name)
		}
		switch {
		case codeFlags.typing:
			cfg.TypingEffect = true
		case codeFlags.noTyping:
			cfg.TypingEffect = false
		}
		switch {
		case codeFlags.lineNumbers:
			cfg.ShowLineNumbers = true
		case codeFlags.noNumbers:
			cfg.ShowLineNumbers = false
		}
		if codeFlags.speed > 0 {
			cfg.TypingSpeed = codeFlags.speed
		}
		if codeFlags.highlight != "" {
			lines, err := codeblock.ParseLines(codeFlags.highlight)
			if err != nil {
				return fmt.Errorf("--highlight: %w", err)
			}
			cfg.HighlightLines = lines
		}

		p := render.Probe(lipgloss.DefaultRenderer())
		if codeFlags.plain || !isatty.IsTerminal(os.Stdout.Fd()) {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), codeblock.Render(text, cfg, p, codeFlags.width))
			return err
		}
		return app.Start(ui.Options{
			Mode:       ui.ModeCode,
			Code:       text,
			CodeBlock:  cfg,
			Provider:   p,
			ConfigPath: appCfgPath,
		})
	},
}
