// Package config handles configuration loading for depsync. It supports an
// optional YAML configuration file (.depsync.yml) with built-in defaults;
// CLI flags override anything loaded here.
package config

import "time"

// Default configuration values, matching the public npm registry and a
// low single-digit-second lookup timeout.
const (
	// DefaultRegistry is the registry queried when none is configured.
	DefaultRegistry = "https://registry.npmjs.org"

	// DefaultTimeoutSeconds bounds each individual registry request.
	DefaultTimeoutSeconds = 2

	// DefaultManifest is the manifest filename resolved relative to the
	// working directory when no path argument is given.
	DefaultManifest = "package.json"
)

// Config is the root configuration structure.
//
// Fields:
//   - Registry: Base URL of the npm-compatible registry to query
//   - TimeoutSeconds: Per-request lookup timeout in seconds
//   - Concurrency: Maximum simultaneous lookups; 0 means unbounded
//   - Manifest: Default manifest path when none is passed on the command line
type Config struct {
	Registry       string `yaml:"registry,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
	Concurrency    int    `yaml:"concurrency,omitempty"`
	Manifest       string `yaml:"manifest,omitempty"`
}

// Timeout returns the per-request timeout as a duration.
//
// Returns:
//   - time.Duration: TimeoutSeconds converted to a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
