// Package config provides configuration management for the parameter
// store service.
package config

import (
	"time"
)

// ServiceConfig holds configuration for the gRPC parameter store
// service.
type ServiceConfig struct {
	Host           string
	Port           int
	MaxConnections int
	RequestTimeout time.Duration
	MaxSetParams   int
	DatabaseURL    string
}

// DefaultServiceConfig returns configuration with default values.
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		Host:           "0.0.0.0",
		Port:           50061,
		MaxConnections: 1000,
		RequestTimeout: 30 * time.Second,
		MaxSetParams:   2048,
		DatabaseURL:    "sqlite://./paramkeeper.db",
	}
}
