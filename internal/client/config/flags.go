package config

import (
	"flag"
	"os"
	"time"

	"github.com/vkuznecovs/minutekeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-f string   path to the local SQLite database file
//	-a string   base URL of the relay service
//	-t string   bearer token for the relay
//	-i int      relay HTTP timeout in seconds
//	-u string   S3 access key
//	-p string   S3 secret key
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 endpoint (e.g., "http://127.0.0.1:9000/")
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-f", "-a", "-t", "-i", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseFile, "f", cfg.DatabaseFile, "path to local database file")
	fs.StringVar(&cfg.RelayAddr, "a", cfg.RelayAddr, "base URL of the relay service")
	fs.StringVar(&cfg.RelayToken, "t", cfg.RelayToken, "relay bearer token")
	httpTimeout := fs.Int("i", int(cfg.HTTPTimeout.Seconds()), "relay HTTP timeout (in seconds)")

	fs.StringVar(&cfg.S3AccessKey, "u", cfg.S3AccessKey, "S3 access key")
	fs.StringVar(&cfg.S3SecretKey, "p", cfg.S3SecretKey, "S3 secret key")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3Endpoint, "e", cfg.S3Endpoint, "S3 endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.HTTPTimeout = time.Duration(*httpTimeout) * time.Second
}
