package config

import (
	"flag"
	"os"
	"time"

	"github.com/vkuznecovs/minutekeeper/internal/flagx"
)

// parseFlags populates selected relay Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8090")
//	-d string   PostgreSQL DSN
//	-t string   bearer token clients must present
//	-o string   CORS allowed origin
//	-s int      shutdown timeout, seconds
//
// Note: The function first filters os.Args to only the flags it recognizes
// using flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-o", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run relay")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.AuthToken, "t", config.AuthToken, "bearer token")
	fs.StringVar(&config.CORSOrigin, "o", config.CORSOrigin, "CORS allowed origin")
	shutdownTimeout := fs.Int("s", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
}
