package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func LoadConfig(configPath string) (*ServiceConfig, error) {
	v := viper.New()

	// Set defaults matching DefaultServiceConfig
	v.SetDefault("param_store.host", "0.0.0.0")
	v.SetDefault("param_store.port", 50061)
	v.SetDefault("param_store.max_connections", 1000)
	v.SetDefault("param_store.request_timeout", "30s")
	v.SetDefault("param_store.max_set_params", 2048)
	v.SetDefault("param_store.database_url", "sqlite://./paramkeeper.db")

	// Bind environment variables with PK_ prefix
	v.SetEnvPrefix("PK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &ServiceConfig{
		Host:           v.GetString("param_store.host"),
		Port:           v.GetInt("param_store.port"),
		MaxConnections: v.GetInt("param_store.max_connections"),
		RequestTimeout: v.GetDuration("param_store.request_timeout"),
		MaxSetParams:   v.GetInt("param_store.max_set_params"),
		DatabaseURL:    v.GetString("param_store.database_url"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig checks port range and positive values for
// connections, timeout, and the per-set parameter cap.
func validateConfig(cfg *ServiceConfig) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.MaxConnections <= 0 {
		return fmt.Errorf("max_connections must be positive, got %d", cfg.MaxConnections)
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %v", cfg.RequestTimeout)
	}
	if cfg.MaxSetParams <= 0 {
		return fmt.Errorf("max_set_params must be positive, got %d", cfg.MaxSetParams)
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database_url must not be empty")
	}
	return nil
}
