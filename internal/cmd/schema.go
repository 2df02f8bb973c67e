package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"parley/internal/config"
)

var schemaCmd = &cobra.Command{
	Use:    "schema",
	Short:  "Print the JSON schema of the configuration file",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		schema := config.Schema()
		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}
