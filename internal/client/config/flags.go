package config

import (
	"flag"
	"os"
	"time"

	"github.com/passdoo/desktop-cli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   portal base URL (default from Config)
//	-b string   local database path
//	-i int      poll interval in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-b", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "u", cfg.BaseURL, "portal base URL")
	fs.StringVar(&cfg.DatabasePath, "b", cfg.DatabasePath, "local database path")
	pollInterval := fs.Int("i", int(cfg.PollInterval.Seconds()), "device-code poll interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.PollInterval = time.Duration(*pollInterval) * time.Second
}
