// Package cmd wires up the CLI flags and dispatches to the session runner.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"dmclient/config"
	"dmclient/internal/core"
	"dmclient/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X dmclient/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args, loads the settings file and runs one session.
func Execute(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("dmclient", flag.ContinueOnError)

	// ── settings ─────────────────────────────────────────────────
	var settingsPath string
	fs.StringVarP(&settingsPath, "config", "c", config.DefaultSettingsFile, "Settings file")

	// ── output ───────────────────────────────────────────────────
	var verbose int
	var quiet bool
	fs.CountVarP(&verbose, "verbose", "v", "Increase verbosity (repeatable)")
	fs.BoolVarP(&quiet, "quiet", "q", false, "Only print errors and server output")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("dmclient %s\n", version)
		return nil
	}
	if rest := fs.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %s (use --help for usage)", strings.Join(rest, " "))
	}

	// ── build components ─────────────────────────────────────────
	logger := util.NewLogger(verbosity(verbose, quiet))

	out, err := config.Load(settingsPath, logger)
	if err != nil {
		return err
	}
	return core.Build(out, logger).Run(ctx)
}

// ── helpers ──────────────────────────────────────────────────────────

// verbosity maps -q and repeated -v onto a logger level.
func verbosity(verbose int, quiet bool) int {
	if quiet {
		return int(util.LogQuiet)
	}
	return int(util.LogNormal) + verbose
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `dmclient – DMconnect client v%s

Connects to a DMconnect server, logs in, joins a server, sends the
scripted messages and prints whatever the server replied.

Usage:
  dmclient [options]

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  dmclient                                    Use ./settings.ini
  dmclient -c /etc/dmclient/lobby.ini -v      Custom settings, verbose
`)
}
