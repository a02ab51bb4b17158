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
		{name: "Test1 OK", args: []string{"cmd", "-a", ":9999", "-d", "postgres://localhost/relay", "-t", "tok", "-o", "https://app.example.com", "-s", "5"}, expectPanic: false,
			expected: &Config{EndpointAddr: ":9999", DatabaseDSN: "postgres://localhost/relay", AuthToken: "tok", CORSOrigin: "https://app.example.com", ShutdownTimeout: 5 * time.Second}},
		{name: "Test2 incorrect shutdown timeout", args: []string{"cmd", "-s", "abc"}, expectPanic: true, expected: &Config{}},
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
