package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Clairebear8888/Microlearning/internal/flagx"
)

// usageOutput and exitFn are swapped in tests.
var (
	usageOutput io.Writer = os.Stderr
	exitFn                = os.Exit
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   backend base URL
//	-d string   local database path
//	-l string   log level
//	-t int      request timeout in seconds (0 = none)
//	-e          ephemeral session (nothing written to disk)
//	-h          print flags and environment variables, then exit
//
// os.Args is filtered with flagx.FilterArgs so that -c/-config and unknown
// arguments do not break parsing. A flag that is not given leaves the value
// from earlier sources untouched.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-l", "-t", "-e", "-h", "-help"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(usageOutput)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage of microlearn:")
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), EnvUsage())
	}

	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "backend base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.BoolVar(&cfg.Ephemeral, "e", cfg.Ephemeral, "keep the session in memory only")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			exitFn(0)
			return
		}
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
