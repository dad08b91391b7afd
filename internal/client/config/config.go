// Package config handles configuration for the client component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the OceanChat terminal client.
//
// Fields:
//   - ServerBaseURL: base URL prefixed onto all API calls. Lets users point
//     the client at a self-hosted server instead of the default one.
//   - PollInterval: how often the chat transcript is refetched.
//   - DatabasePath: sqlite file backing the local message cache and the
//     session snapshot.
//
// Units: PollInterval is a time.Duration (e.g., 3*time.Second).
type Config struct {
	ServerBaseURL string
	PollInterval  time.Duration
	DatabasePath  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.PollInterval = 3 * time.Second
	c.DatabasePath = "oceanchat.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
