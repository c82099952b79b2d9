package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/solatis/paramkeeper/internal/core/api"
	"github.com/solatis/paramkeeper/internal/core/config"
	"github.com/solatis/paramkeeper/internal/core/db"
	"github.com/solatis/paramkeeper/internal/core/server"
	"github.com/solatis/paramkeeper/internal/core/store"
)

const Version = "0.1.0"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gRPC parameter store service",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("host", "0.0.0.0", "gRPC server host")
	serveCmd.Flags().Int("port", 50061, "gRPC server port")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("host") {
		host, _ := cmd.Flags().GetString("host")
		cfg.Host = host
	}
	if cmd.Flags().Changed("port") {
		port, _ := cmd.Flags().GetInt("port")
		cfg.Port = port
	}
	if dbURL != "" {
		cfg.DatabaseURL = dbURL
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if err := db.MigrateUp(database); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	queries, err := db.LoadQueries(database)
	if err != nil {
		return fmt.Errorf("failed to load queries: %w", err)
	}

	service, err := api.NewParamStoreService(store.New(queries), cfg)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	grpcServer, err := server.NewGRPCServer(cfg, service)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	log.Printf("Starting paramkeeper v%s on %s:%d", Version, cfg.Host, cfg.Port)
	errChan := make(chan error, 1)
	go func() {
		errChan <- grpcServer.Start(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-sigChan:
		log.Println("Shutting down gracefully...")
		return grpcServer.Shutdown(ctx)
	}
}
