package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"typedterm/internal/config"
	"typedterm/internal/settings"
)

var (
	configWizard bool
	configInit   bool
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVarP(&configWizard, "wizard", "w", false, "edit the config interactively")
	configCmd.Flags().BoolVar(&configInit, "init", false, "write the current config (defaults when missing) to the config path")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show, initialise or edit the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if configWizard {
			return settings.Run()
		}
		out := cmd.OutOrStdout()
		if configInit {
			existed := fileExists(appCfgPath)
			if err := config.SaveFile(appCfgPath, appCfg); err != nil {
				return err
			}
			if existed {
				fmt.Fprintf(out, "• normalised %s\n", appCfgPath)
			} else {
				fmt.Fprintf(out, "✓ created %s\n", appCfgPath)
			}
			return nil
		}
		b, err := yaml.Marshal(appCfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "# %s\n%s", appCfgPath, b)
		return nil
	},
}

func fileExists(path string) bool {
	if st, err := os.Stat(path); err == nil && !st.IsDir() {
		return true
	}
	return false
}
