// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	applog "github.com/janisto/hello-docker/internal/platform/logging"
)

const (
	defaultPort     = "8080"
	defaultLogLevel = "info"
)

// Config holds the settings needed to bind and run the service.
type Config struct {
	// Port is the HTTP listen port.
	Port string
	// GRPCPort is the gRPC health listen port; empty disables the gRPC server.
	GRPCPort string
	// LogLevel is the minimum level written by the process logger.
	LogLevel zapcore.Level
	// ProjectID enables Cloud Trace correlation in request logs when set.
	ProjectID string
}

// HTTPAddr returns the HTTP listen address.
func (c Config) HTTPAddr() string {
	return ":" + c.Port
}

// GRPCAddr returns the gRPC listen address, or "" when gRPC is disabled.
func (c Config) GRPCAddr() string {
	if c.GRPCPort == "" {
		return ""
	}
	return ":" + c.GRPCPort
}

// Load reads an optional .env file from the working directory, then the process environment.
// Variables already present in the environment take precedence over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:      firstNonEmpty(getenv("PORT"), defaultPort),
		GRPCPort:  getenv("GRPC_PORT"),
		ProjectID: firstNonEmpty(getenv("GOOGLE_CLOUD_PROJECT"), getenv("GCP_PROJECT"), getenv("PROJECT_ID")),
	}

	if err := validatePort("PORT", cfg.Port); err != nil {
		return Config{}, err
	}
	if cfg.GRPCPort != "" {
		if err := validatePort("GRPC_PORT", cfg.GRPCPort); err != nil {
			return Config{}, err
		}
		if cfg.GRPCPort == cfg.Port {
			return Config{}, fmt.Errorf("GRPC_PORT %s must differ from PORT", cfg.GRPCPort)
		}
	}

	level, err := applog.ParseLevel(firstNonEmpty(getenv("LOG_LEVEL"), defaultLogLevel))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	return cfg, nil
}

func validatePort(name, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("%s must be a port number between 1 and 65535, got %q", name, value)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
