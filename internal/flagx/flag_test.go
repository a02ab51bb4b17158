package flagx

import (
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-f", "notes.db", "-a", "http://relay:8090"},
			allowedFlags: []string{"-f"},
			want:         []string{"-f", "notes.db"},
		},
		{
			name:         "equals form",
			args:         []string{"--config=relay.json", "-t", "tok"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=relay.json"},
		},
		{
			name:         "unknown flags and positionals dropped",
			args:         []string{"-x", "1", "--y=2", "sync"},
			allowedFlags: []string{"-f", "-a"},
			want:         []string{},
		},
		{
			name:         "next flag is not consumed as a value",
			args:         []string{"-t", "-a"},
			allowedFlags: []string{"-t", "-a"},
			want:         []string{"-t", "-a"},
		},
		{
			name:         "trailing flag without value kept as-is",
			args:         []string{"-t"},
			allowedFlags: []string{"-t"},
			want:         []string{"-t"},
		},
		{
			name:         "several allowed flags keep their order",
			args:         []string{"-a", ":8090", "-d", "postgres://x", "-o", "*"},
			allowedFlags: []string{"-a", "-d", "-t", "-o", "-s"},
			want:         []string{"-a", ":8090", "-d", "postgres://x", "-o", "*"},
		},
		{
			name:         "repeated flag preserved",
			args:         []string{"-c", "one.json", "-c", "two.json"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c", func(t *testing.T) {
		os.Args = []string{"minutekeeper", "-c", "/etc/minutekeeper.json"}
		assert.Equal(t, "/etc/minutekeeper.json", JsonConfigFlags())
	})

	t.Run("long -config", func(t *testing.T) {
		os.Args = []string{"minutekeeper", "-config", "/etc/relay.json"}
		assert.Equal(t, "/etc/relay.json", JsonConfigFlags())
	})

	t.Run("absent", func(t *testing.T) {
		os.Args = []string{"minutekeeper", "-a", ":8090"}
		assert.Empty(t, JsonConfigFlags())
	})

	t.Run("last occurrence wins", func(t *testing.T) {
		os.Args = []string{"minutekeeper", "-c", "/one.json", "-config", "/two.json"}
		assert.Equal(t, "/two.json", JsonConfigFlags())
	})
}
