package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"typedterm/internal/render"
)

func init() { rootCmd.AddCommand(scenariosCmd) }

var scenariosCmd = &cobra.Command{
	Use:     "scenarios",
	Aliases: []string{"ls"},
	Short:   "List built-in and configured scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := render.Probe(lipgloss.DefaultRenderer())
		out := cmd.OutOrStdout()
		for _, s := range appCfg.AllScenarios() {
			marker := " "
			if strings.EqualFold(s.Name, appCfg.Terminal.Scenario) {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %s %s\n", marker, p.Paint(render.RoleTitle, fmt.Sprintf("%-10s", s.Name)), p.Paint(render.RoleMuted, s.Description))
			for _, c := range s.Commands {
				fmt.Fprintf(out, "    %s%s\n", p.Paint(render.RolePrompt, "$ "), p.Command(c.Text))
			}
		}
		return nil
	},
}
