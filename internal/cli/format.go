package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"typedterm/internal/codefmt"
)

var formatLang string

func init() {
	rootCmd.AddCommand(formatCmd)
	formatCmd.Flags().StringVarP(&formatLang, "lang", "l", "", "language (default: from the file extension)")
}

var formatCmd = &cobra.Command{
	Use:   "format [file|-]",
	Short: "Dedent and trim a code snippet",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, name, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		lang := formatLang
		if lang == "" && name != "" {
			lang = codefmt.LanguageFromFilename(filepath.Base(name))
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), ensureNewline(codefmt.Format(text, lang)))
		return err
	},
}
