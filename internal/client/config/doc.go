// Package config loads runtime configuration for the MinuteKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-f string   path to the local SQLite database file
//	-a string   base URL of the relay service
//	-t string   relay bearer token
//	-i int      relay HTTP timeout (seconds)
//	-u, -p, -b, -g, -e   S3 access key, secret key, bucket, region, endpoint
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "30s" or integer nanoseconds:
//
//	{
//	  "database_file": "minutekeeper.db",
//	  "relay_addr": "http://127.0.0.1:8090",
//	  "relay_token": "devtoken",
//	  "http_timeout": "30s"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
