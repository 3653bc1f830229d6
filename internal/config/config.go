// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/n1rna/paramschema/internal/logger"
)

const (
	// EnvHome overrides the storage directory
	EnvHome = "PSCHEMA_HOME"
	// EnvSchemaDir points at a directory of extra schema definitions
	EnvSchemaDir = "PSCHEMA_SCHEMA_DIR"
	// EnvLogLevel sets the log level (debug, info, warn, error)
	EnvLogLevel = "PSCHEMA_LOG_LEVEL"
)

// Config holds global configuration settings
type Config struct {
	// BaseDir is the root directory for pschema storage
	BaseDir string
	// SchemaDir holds user schema definitions; defaults to BaseDir/schemas
	SchemaDir string
	// LogLevel is the minimum level written to stderr
	LogLevel logger.LogLevel
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseDir:  getDefaultBaseDir(),
		LogLevel: logger.WARN,
	}
}

// getDefaultBaseDir returns the default base directory path
func getDefaultBaseDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// If we can't get the home directory, use current directory
		return ".pschema"
	}
	return filepath.Join(homeDir, ".pschema")
}

// LoadConfig loads configuration from a local .env file and the environment,
// then validates it
func LoadConfig() (*Config, error) {
	// A missing .env is the normal case
	_ = godotenv.Load(".env")

	cfg := DefaultConfig()

	if envDir := os.Getenv(EnvHome); envDir != "" {
		cfg.BaseDir = envDir
	}
	if schemaDir := os.Getenv(EnvSchemaDir); schemaDir != "" {
		cfg.SchemaDir = schemaDir
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		parsed, err := logger.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		cfg.LogLevel = parsed
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseDir == "" {
		return fmt.Errorf("base directory cannot be empty")
	}

	absPath, err := filepath.Abs(c.BaseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	c.BaseDir = absPath

	if c.SchemaDir == "" {
		c.SchemaDir = filepath.Join(c.BaseDir, "schemas")
	}
	schemaDir, err := filepath.Abs(c.SchemaDir)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	c.SchemaDir = schemaDir

	return nil
}

// ProfilesDir returns the directory profiles are stored under
func (c *Config) ProfilesDir() string {
	return filepath.Join(c.BaseDir, "profiles")
}

// EnsureDirectories creates necessary directories if they don't exist
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.BaseDir,
		c.SchemaDir,
		c.ProfilesDir(),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
