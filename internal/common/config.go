package common

import (
	"fmt"
	"os"
	"strconv"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the minimcp servers.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
}

// ServerConfig holds settings shared by every tool server variant.
type ServerConfig struct {
	Version        string `toml:"version"`          // Overrides the variant's advertised version
	WorkerPoolSize int    `toml:"worker_pool_size"` // Concurrent tool calls on the stdio transport
	QueueSize      int    `toml:"queue_size"`       // Pending tool calls before the reader blocks
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			WorkerPoolSize: 5,
			QueueSize:      100,
		},
		Logging: LoggingConfig{
			Level:      DefaultLogLevel,
			Outputs:    []string{"console"},
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if level := os.Getenv("MINIMCP_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if file := os.Getenv("MCP_SERVER_LOG_FILE"); file != "" {
		config.Logging.FilePath = file
	}

	if v := os.Getenv("MINIMCP_SERVER_VERSION"); v != "" {
		config.Server.Version = v
	}

	if n := os.Getenv("MINIMCP_WORKER_POOL_SIZE"); n != "" {
		if p, err := strconv.Atoi(n); err == nil && p > 0 {
			config.Server.WorkerPoolSize = p
		}
	}
}
