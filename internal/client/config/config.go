package config

import "time"

// Config holds runtime settings for the MinuteKeeper CLI.
//
// Fields:
//   - DatabaseFile: path to the local SQLite database.
//   - RelayAddr: base URL of the relay service.
//   - RelayToken: static bearer token presented to the relay.
//   - HTTPTimeout: per-request timeout of the relay HTTP client.
//   - S3AccessKey / S3SecretKey: credentials for the backup bucket.
//   - S3Bucket / S3Region / S3Endpoint: object storage settings.
type Config struct {
	DatabaseFile string
	RelayAddr    string
	RelayToken   string
	HTTPTimeout  time.Duration
	S3AccessKey  string
	S3SecretKey  string
	S3Bucket     string
	S3Region     string
	S3Endpoint   string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.DatabaseFile = "minutekeeper.db"
	c.RelayAddr = "http://127.0.0.1:8090"
	c.RelayToken = "devtoken"
	c.HTTPTimeout = 30 * time.Second
	c.S3AccessKey = "admin"
	c.S3SecretKey = "secretpassword"
	c.S3Bucket = "backups"
	c.S3Region = "us-east-1"
	c.S3Endpoint = "http://127.0.0.1:9000/"
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
