package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/vkuznecovs/minutekeeper/internal/flagx"
	"github.com/vkuznecovs/minutekeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the shutdown timeout either as a string
// like "10s" or as integer nanoseconds. After parsing, values are copied into
// the runtime Config (which uses time.Duration).
type JsonConfig struct {
	EndpointAddr    string         `json:"endpoint_addr"`
	DatabaseDSN     string         `json:"database_dsn"`
	AuthToken       string         `json:"auth_token"`
	CORSOrigin      string         `json:"cors_origin"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The lookup order for the JSON file path:
//
//	The -c or -config command-line flags.
//	If it is not set, no JSON file is loaded.
//
// If the file cannot be read or contains invalid JSON, the function panics.
// The caller is expected to merge these values with defaults and command-line
// flags as part of the full configuration process.
func parseJson(config *Config) {
	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.AuthToken = c.AuthToken
	config.CORSOrigin = c.CORSOrigin
	config.ShutdownTimeout = time.Duration(c.ShutdownTimeout.Duration)
}
