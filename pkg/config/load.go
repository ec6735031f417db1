package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ajxudir/depsync/pkg/verbose"
)

// configFileName is the conventional config filename looked up next to the
// working directory.
const configFileName = ".depsync.yml"

// LoadConfig loads configuration from the specified path or defaults.
//
// If configPath is provided, it loads that specific config file and fails if
// it cannot be read. Otherwise, it looks for .depsync.yml in the working
// directory and falls back to built-in defaults when absent. Values missing
// from a loaded file are filled with the defaults.
//
// Parameters:
//   - configPath: path to the config file, or empty to use discovery
//   - workDir: working directory for config discovery
//
// Returns:
//   - *Config: the loaded configuration with defaults applied
//   - error: any error encountered during loading or validation
func LoadConfig(configPath, workDir string) (*Config, error) {
	if configPath != "" {
		verbose.Infof("Loading config from: %s", configPath)
		cfg, err := loadConfigFile(configPath)
		if err != nil {
			return nil, err
		}
		verbose.ConfigLoaded(configPath)
		return cfg, nil
	}

	localConfig := filepath.Join(workDir, configFileName)
	if _, err := os.Stat(localConfig); err == nil {
		cfg, err := loadConfigFile(localConfig)
		if err != nil {
			return nil, err
		}
		verbose.ConfigLoaded(localConfig)
		return cfg, nil
	}

	verbose.ConfigLoaded("defaults")
	return defaultConfig(), nil
}

// loadConfigFile reads, parses, and validates a single YAML config file.
//
// Parameters:
//   - path: path to the config file
//
// Returns:
//   - *Config: the parsed configuration with defaults applied
//   - error: read, parse, or validation error
func loadConfigFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// defaultConfig returns the built-in default configuration.
//
// Returns:
//   - *Config: a fresh config with all defaults set
func defaultConfig() *Config {
	return &Config{
		Registry:       DefaultRegistry,
		TimeoutSeconds: DefaultTimeoutSeconds,
		Manifest:       DefaultManifest,
	}
}

// validate rejects configurations that cannot produce a working client.
//
// Returns:
//   - error: description of the first invalid field; nil when valid
func (c *Config) validate() error {
	if c.Registry == "" {
		return fmt.Errorf("registry must not be empty")
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	return nil
}
