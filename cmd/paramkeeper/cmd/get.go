package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <set-name>",
	Short: "Print a stored parameter set",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored parameter sets",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(listCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	set, err := st.LoadSet(context.Background(), args[0])
	if err != nil {
		return err
	}

	printSet(set)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	infos, err := st.ListSets(context.Background())
	if err != nil {
		return err
	}

	for _, info := range infos {
		fmt.Printf("%-36s %s %s\n", info.ID, info.CreatedAt.Format("2006-01-02 15:04:05"), info.Name)
	}
	return nil
}
