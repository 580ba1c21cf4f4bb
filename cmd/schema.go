package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/grovetools/repl/config"
)

// NewSchemaCmd creates the `schema` command, which emits a JSON schema
// for the definitions file so editors can validate and complete it.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema for repls.yml",
		RunE: func(cmd *cobra.Command, args []string) error {
			reflector := &jsonschema.Reflector{
				ExpandedStruct: true,
				DoNotReference: true,
			}

			schema := reflector.Reflect(&config.File{})
			schema.Title = "grove-repl definitions file"

			data, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				return err
			}

			fmt.Println(string(data))
			return nil
		},
	}
}
