package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/vkuznecovs/minutekeeper/internal/flagx"
	"github.com/vkuznecovs/minutekeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the HTTP timeout either as
// a string like "30s" or as integer nanoseconds. After parsing, values are
// copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	DatabaseFile string         `json:"database_file"`
	RelayAddr    string         `json:"relay_addr"`
	RelayToken   string         `json:"relay_token"`
	HTTPTimeout  timex.Duration `json:"http_timeout"`
	S3AccessKey  string         `json:"s3_access_key"`
	S3SecretKey  string         `json:"s3_secret_key"`
	S3Bucket     string         `json:"s3_bucket"`
	S3Region     string         `json:"s3_region"`
	S3Endpoint   string         `json:"s3_endpoint"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies known fields into the provided Config.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.DatabaseFile = jc.DatabaseFile
	cfg.RelayAddr = jc.RelayAddr
	cfg.RelayToken = jc.RelayToken
	cfg.HTTPTimeout = time.Duration(jc.HTTPTimeout.Duration)
	cfg.S3AccessKey = jc.S3AccessKey
	cfg.S3SecretKey = jc.S3SecretKey
	cfg.S3Bucket = jc.S3Bucket
	cfg.S3Region = jc.S3Region
	cfg.S3Endpoint = jc.S3Endpoint
}
