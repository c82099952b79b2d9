package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <set-name> name=type:value ...",
	Short: "Store a named parameter set",
	Long: `Builds a parameter set from string-form arguments and persists it,
replacing any existing set with the same name.

Types: int, uint, llong, ullong, double, boolean, string.

Example:
  paramkeeper set host-caps cpu.count=int:8 numa.enabled=boolean:true`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().String("schema", "", "schema file (name:type lines) to validate against before storing")
}

func runSet(cmd *cobra.Command, args []string) error {
	set, err := buildSetFromArgs(args[1:])
	if err != nil {
		return err
	}

	if schemaPath, _ := cmd.Flags().GetString("schema"); schemaPath != "" {
		schema, err := loadSchemaFile(schemaPath)
		if err != nil {
			return err
		}
		if err := set.Validate(schema); err != nil {
			return fmt.Errorf("schema validation failed: %w", err)
		}
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	id, err := st.SaveSet(context.Background(), args[0], set)
	if err != nil {
		return err
	}

	fmt.Printf("stored set %q (%d parameters) as %s\n", args[0], set.Len(), id)
	return nil
}
