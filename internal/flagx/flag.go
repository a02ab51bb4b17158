// Package flagx helps each component parse only the command-line flags it
// owns, so the client and relay binaries can share a single argument vector.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the flags listed in allowedFlags, with their values.
// Both "-f value" and "--flag=value" spellings are recognized; everything
// else is dropped so a later flag.Parse never trips over another component's
// flags.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, name := range allowedFlags {
		allowed[name] = struct{}{}
	}

	kept := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// "--flag=value" form
		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				kept = append(kept, arg)
			}
			continue
		}

		// "-f value" form; the value is only consumed when the next
		// argument does not look like a flag itself
		if _, ok := allowed[arg]; ok {
			kept = append(kept, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				kept = append(kept, args[i+1])
				i++
			}
		}
	}

	return kept
}

// JsonConfigFlags returns the config file path given via -c or -config, or
// an empty string when neither flag is present. Only these two flags are
// looked at.
func JsonConfigFlags() string {
	var path string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "Path to config file")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return path
}
