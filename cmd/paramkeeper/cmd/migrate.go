package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solatis/paramkeeper/internal/core/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run pending database migrations",
	RunE:  runMigrate,
}

var migrateStatusCmd = &cobra.Command{
	Use:   "migrate-status",
	Short: "Show status of database migrations",
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateStatusCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	url, err := resolveDBURL()
	if err != nil {
		return err
	}

	database, err := db.Open(url)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if err := db.MigrateUp(database); err != nil {
		return err
	}

	fmt.Println("migrations applied")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	url, err := resolveDBURL()
	if err != nil {
		return err
	}

	database, err := db.Open(url)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	statuses, err := db.MigrateStatus(database)
	if err != nil {
		return err
	}

	for _, s := range statuses {
		state := "pending"
		if s.Applied {
			state = fmt.Sprintf("applied %s (%dms)", s.AppliedAt.Format("2006-01-02 15:04:05"), s.ExecutionMs)
		}
		fmt.Printf("%-40s %s\n", s.ID, state)
	}
	return nil
}
