// Command mash-timefmt encodes and decodes the temporal tokens written by
// the mash-text serializer.
//
// Usage:
//
//	mash-timefmt <command> [flags] <value>
//
// Commands:
//
//	duration     Encode a Go duration literal, or decode a token with --decode
//	timestamp    Encode an RFC 3339 time (or "now"), or decode a token with --decode
//	record       Print a sample record as a JSON or CBOR document
//	interactive  Start an interactive session
//
// Examples:
//
//	# ISO-8601 duration
//	mash-timefmt duration 87648h
//
//	# Clock-style duration
//	mash-timefmt duration --duration-mode standard 70s
//
//	# BCL-compatible timestamp
//	mash-timefmt timestamp --timestamp-mode bcl 2012-06-27T11:26:04.524+07:00
//
//	# Decode either form
//	mash-timefmt timestamp --decode '/Date(1340771164524+0700)/'
//
//	# Modes from a configuration file
//	mash-timefmt record --config formats.yaml --timespan 70s
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

const usage = `mash-timefmt - temporal token encoder/decoder

Usage:
  mash-timefmt <command> [flags] <value>

Commands:
  duration     Encode a Go duration literal, or decode a token with --decode
  timestamp    Encode an RFC 3339 time (or "now"), or decode a token with --decode
  record       Print a sample record as a JSON or CBOR document
  interactive  Start an interactive session

Use "mash-timefmt <command> --help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "duration":
		err = runDuration(args, os.Stdout)
	case "timestamp":
		err = runTimestamp(args, os.Stdout)
	case "record":
		err = runRecord(args, os.Stdout)
	case "interactive", "i":
		err = runInteractive(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "mash-timefmt %s: %v\n", cmd, err)
		os.Exit(1)
	}
}
