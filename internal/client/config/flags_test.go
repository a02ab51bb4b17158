package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd", "-f", "notes.db", "-a", "http://relay:8090", "-t", "tok", "-i", "10"}, expectPanic: false,
			expected: &Config{DatabaseFile: "notes.db", RelayAddr: "http://relay:8090", RelayToken: "tok", HTTPTimeout: 10 * time.Second}},
		{name: "Test2 S3 settings", args: []string{"cmd", "-u", "key", "-p", "secret", "-b", "bkt", "-g", "eu-west-1", "-e", "http://minio:9000/"}, expectPanic: false,
			expected: &Config{S3AccessKey: "key", S3SecretKey: "secret", S3Bucket: "bkt", S3Region: "eu-west-1", S3Endpoint: "http://minio:9000/"}},
		{name: "Test3 incorrect timeout", args: []string{"cmd", "-i", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {

				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
