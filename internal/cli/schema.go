package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"typedterm/internal/config"
)

func init() { rootCmd.AddCommand(schemaCmd) }

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := config.MarshalSchema(config.Schema())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	},
}
