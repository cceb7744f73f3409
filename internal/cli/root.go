package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"typedterm/internal/config"
	"typedterm/internal/system"
)

var (
	flagConfig string
	flagDebug  bool

	// appCfg is loaded before every command runs.
	appCfg     = config.Default()
	appCfgPath string
)

var rootCmd = &cobra.Command{
	Use:   "typedterm",
	Short: "typedterm – animated terminals and code blocks",
	Long:  "typedterm types shell commands and code snippets into a terminal, with syntax colouring, as a TUI, a CLI or a small web server.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default action: play the configured scenario
		return runPlay(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.typedterm/config.yaml, or $TYPEDTERM_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "debug logging")
	addPlayFlags(rootCmd)
}

func loadConfig() error {
	var err error
	if flagConfig != "" {
		appCfgPath = flagConfig
	} else if appCfgPath, err = config.Path(); err != nil {
		return err
	}
	cfg, err := config.LoadFile(appCfgPath)
	if err != nil {
		return err
	}
	appCfg = cfg
	system.SetLevel(cfg.LogLevel)
	if flagDebug {
		system.SetLevel("debug")
	}
	return nil
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
