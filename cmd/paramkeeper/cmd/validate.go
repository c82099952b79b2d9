package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solatis/paramkeeper/internal/params"
)

var validateCmd = &cobra.Command{
	Use:   "validate <set-name> --schema <file>",
	Short: "Validate a stored parameter set against a schema",
	Long: `Loads a stored set and checks every parameter against the schema.

A type mismatch is reported but does not stop the scan; an undeclared
parameter name or a duplicate aborts validation.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("schema", "", "schema file (name:type lines)")
	validateCmd.MarkFlagRequired("schema")
}

func runValidate(cmd *cobra.Command, args []string) error {
	schemaPath, _ := cmd.Flags().GetString("schema")
	schema, err := loadSchemaFile(schemaPath)
	if err != nil {
		return err
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	set, err := st.LoadSet(context.Background(), args[0])
	if err != nil {
		return err
	}

	if err := set.Validate(schema); err != nil {
		return fmt.Errorf("set %q: %w", args[0], err)
	}

	// Mismatches are reported through the recorder, not the error
	// return.
	if last, ok := set.Recorder().(*params.LastError); ok {
		if err := last.Last(); err != nil {
			return fmt.Errorf("set %q: %w", args[0], err)
		}
	}

	fmt.Printf("set %q valid (%d parameters, %d schema fields)\n", args[0], set.Len(), len(schema))
	return nil
}
