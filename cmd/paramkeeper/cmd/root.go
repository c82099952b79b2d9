package cmd

import (
	"github.com/spf13/cobra"
)

var (
	configFile string
	dbURL      string
)

var rootCmd = &cobra.Command{
	Use:   "paramkeeper",
	Short: "Typed parameter set store",
	Long:  `Paramkeeper stores named sets of typed parameters and serves them over gRPC.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "database connection URL (sqlite://path or postgres://...)")
}

func Execute() error {
	return rootCmd.Execute()
}
