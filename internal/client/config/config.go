package config

import "time"

// Config holds runtime settings for the MicroLearn CLI.
//
// Fields:
//   - APIURL: base URL of the MicroLearn backend.
//   - DatabasePath: sqlite file holding the session token.
//   - LogLevel: debug, info, warn or error.
//   - RequestTimeout: per-request timeout; zero leaves the transport default.
//   - Ephemeral: keep the session in memory only.
type Config struct {
	APIURL         string
	DatabasePath   string
	LogLevel       string
	RequestTimeout time.Duration
	Ephemeral      bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://localhost:5005"
	c.DatabasePath = "microlearn.db"
	c.LogLevel = "info"
	c.RequestTimeout = 0
	c.Ephemeral = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
