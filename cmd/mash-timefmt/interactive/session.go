// Package interactive provides the interactive command-line interface
// for mash-timefmt.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/mash-protocol/mash-text/pkg/formatctx"
	"github.com/mash-protocol/mash-text/pkg/temporal"
)

// errQuit ends the command loop.
var errQuit = errors.New("quit")

// Session holds the formatting modes of an interactive session. Mode
// changes derive a new context from the current one, so the modes the
// session was started with stay untouched in the parent.
type Session struct {
	ctx context.Context
	out io.Writer
	rl  *readline.Instance
}

// New creates a readline-backed session starting from the modes in ctx.
func New(ctx context.Context) (*Session, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "timefmt> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := NewSession(ctx, rl.Stdout())
	s.rl = rl
	return s, nil
}

// NewSession creates a session without a terminal. Output goes to w.
func NewSession(ctx context.Context, w io.Writer) *Session {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Session{ctx: ctx, out: w}
}

// Options returns the modes currently in effect.
func (s *Session) Options() formatctx.Options {
	return formatctx.OptionsFrom(s.ctx)
}

// Run starts the interactive command loop.
func (s *Session) Run() error {
	if s.rl == nil {
		return errors.New("session has no terminal")
	}
	defer s.rl.Close()

	s.printHelp()

	for {
		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}

		if !s.Exec(line) {
			return nil
		}
	}
}

// Exec runs one command line and reports whether the session continues.
// Command errors are printed, not returned.
func (s *Session) Exec(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		s.printHelp()

	case "mode", "m":
		err = s.cmdMode(args)

	case "duration", "d":
		err = s.cmdDuration(args)

	case "timestamp", "t":
		err = s.cmdTimestamp(args)

	case "decode", "x":
		err = s.cmdDecode(args)

	case "quit", "exit", "q":
		err = errQuit

	default:
		err = fmt.Errorf("unknown command %q (type 'help')", cmd)
	}

	if errors.Is(err, errQuit) {
		fmt.Fprintln(s.out, "Exiting...")
		return false
	}
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	return true
}

func (s *Session) printHelp() {
	fmt.Fprint(s.out, `Commands:
  mode [duration|timestamp <mode>]  Show or change the active modes
  duration <go-duration>            Encode a duration (e.g. 1h30m, -70s)
  timestamp <rfc3339|now>           Encode a timestamp
  decode <token>                    Decode a duration or timestamp token
  help                              Show this help
  quit                              Leave the session
`)
}

func (s *Session) cmdMode(args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(s.out, s.Options().String())
		return nil
	}
	if len(args) != 2 {
		return errors.New("usage: mode duration|timestamp <mode>")
	}

	var opt formatctx.Option
	switch strings.ToLower(args[0]) {
	case "duration", "d":
		m, err := formatctx.ParseDurationMode(args[1])
		if err != nil {
			return err
		}
		opt = formatctx.WithDurationMode(m)
	case "timestamp", "t":
		m, err := formatctx.ParseTimestampMode(args[1])
		if err != nil {
			return err
		}
		opt = formatctx.WithTimestampMode(m)
	default:
		return fmt.Errorf("unknown mode kind %q", args[0])
	}

	ctx, err := formatctx.With(s.ctx, opt)
	if err != nil {
		return err
	}
	s.ctx = ctx
	fmt.Fprintln(s.out, s.Options().String())
	return nil
}

func (s *Session) cmdDuration(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: duration <go-duration>")
	}
	d, err := time.ParseDuration(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, temporal.FormatDuration(s.ctx, d))
	return nil
}

func (s *Session) cmdTimestamp(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: timestamp <rfc3339|now>")
	}
	t := time.Now()
	if args[0] != "now" {
		var err error
		if t, err = time.Parse(time.RFC3339Nano, args[0]); err != nil {
			return err
		}
	}
	fmt.Fprintln(s.out, temporal.FormatOffsetTime(s.ctx, t))
	return nil
}

// cmdDecode tries the duration grammar first, then the timestamp forms.
func (s *Session) cmdDecode(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: decode <token>")
	}
	token := args[0]

	if d, err := temporal.ParseDuration(token); err == nil {
		fmt.Fprintf(s.out, "duration  %s (%d ns)\n", d, int64(d))
		return nil
	}
	t, err := temporal.ParseOffsetTime(token)
	if err != nil {
		return fmt.Errorf("%q is neither a duration nor a timestamp", token)
	}
	fmt.Fprintf(s.out, "timestamp %s\n", t.Format(time.RFC3339Nano))
	return nil
}
