// Package config holds runtime settings for the Passdoo desktop client.
package config

import "time"

// Config holds runtime settings for the CLI.
//
// Fields:
//   - BaseURL: the portal host, scheme included.
//   - DeviceName: the human-readable name registered with each device code.
//   - DatabasePath: the local SQLite file holding session and install id.
//   - PollInterval / PollMaxAttempts: device-code poll cadence. The default
//     pair (3s × 60) gives the 5-minute authentication ceiling.
type Config struct {
	BaseURL         string
	DeviceName      string
	DatabasePath    string
	PollInterval    time.Duration
	PollMaxAttempts int
}

// LoadDefaults populates c with the production defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://portal.novacs.net"
	c.DeviceName = "Passdoo Desktop"
	c.DatabasePath = "passdoo.db"
	c.PollInterval = 3 * time.Second
	c.PollMaxAttempts = 60
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file is given) and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
