package config

import (
	"flag"
	"os"
	"time"

	"github.com/polyprep/polynotes/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-b string   backend API base URL
//	-idp string identity-provider base URL
//	-d string   data directory (session DB + shared snapshot)
//	-f int      snapshot flush interval in seconds
//	-t int      request timeout in seconds
//
// The function filters os.Args to only the flags it knows about, using
// flagx.FilterArgs, to avoid interference with other config stages.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-idp", "-d", "-f", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendBaseURL, "b", cfg.BackendBaseURL, "backend API base URL")
	fs.StringVar(&cfg.IdentityBaseURL, "idp", cfg.IdentityBaseURL, "identity provider base URL")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	flushInterval := fs.Int("f", int(cfg.FlushInterval.Seconds()), "snapshot flush interval (in seconds)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.FlushInterval = time.Duration(*flushInterval) * time.Second
	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
