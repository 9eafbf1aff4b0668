package config

import "time"

// Config holds runtime settings for the FitSupply CLI.
//
// Fields:
//   - APIBaseURL: root of the backend REST API, e.g. http://localhost:8000/api.
//   - SessionDBPath: path of the local sqlite database holding tokens and the
//     profile snapshot.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	APIBaseURL     string
	SessionDBPath  string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api"
	c.SessionDBPath = "fitsupply.db"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including an optional .env file), a JSON file (if
// given), and command-line flags. Later sources take precedence over
// earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
