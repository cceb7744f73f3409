package cli

import (
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"typedterm/internal/cache"
	"typedterm/internal/codefmt"
	"typedterm/internal/highlight"
	"typedterm/internal/render"
)

var (
	highlightLang   string
	highlightFormat string
)

func init() {
	rootCmd.AddCommand(highlightCmd)
	highlightCmd.Flags().StringVarP(&highlightLang, "lang", "l", "", "language (default: from the file extension)")
	highlightCmd.Flags().StringVarP(&highlightFormat, "format", "f", "ansi", "output format: ansi, html, markdown or plain")
}

var highlightCmd = &cobra.Command{
	Use:   "highlight [file|-]",
	Short: "Syntax-highlight a code snippet",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, name, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		lang := highlightLang
		if lang == "" && name != "" {
			lang = codefmt.LanguageFromFilename(filepath.Base(name))
		}
		f := highlight.ParseFormat(highlightFormat)
		if f == highlight.FormatANSI && render.Probe(lipgloss.DefaultRenderer()).Name() != "rich" {
			f = highlight.FormatPlain
		}
		hl := highlight.New(highlight.WithCache(cache.Nop{}))
		return hl.WriteTo(cmd.Context(), cmd.OutOrStdout(), codefmt.Format(text, lang), lang, f)
	},
}
