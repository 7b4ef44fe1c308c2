package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/mash-protocol/mash-text/pkg/codec"
	"github.com/mash-protocol/mash-text/pkg/formatctx"
)

// commonFlags are shared by every command.
type commonFlags struct {
	DurationMode  string
	TimestampMode string
	ConfigFile    string
	LogLevel      string
}

func newFlagSet(name string, cf *commonFlags) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringVar(&cf.DurationMode, "duration-mode", "", "Duration mode: iso8601, standard (default from config, else iso8601)")
	fs.StringVar(&cf.TimestampMode, "timestamp-mode", "", "Timestamp mode: native, bcl (default from config, else native)")
	fs.StringVarP(&cf.ConfigFile, "config", "c", "", "Format configuration file (.yaml, .yml, .json, .jsonc)")
	fs.StringVar(&cf.LogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	return fs
}

// context returns a context carrying the configured modes. Flags take
// precedence over the configuration file.
func (cf *commonFlags) context() (context.Context, error) {
	if err := setupLogging(cf.LogLevel); err != nil {
		return nil, err
	}

	ctx := context.Background()
	if cf.ConfigFile != "" {
		cfg, err := formatctx.LoadConfig(cf.ConfigFile)
		if err != nil {
			return nil, err
		}
		opts, err := cfg.Options()
		if err != nil {
			return nil, err
		}
		if ctx, err = formatctx.With(ctx, opts...); err != nil {
			return nil, err
		}
		slog.Debug("loaded format config", "path", cf.ConfigFile, "options", formatctx.OptionsFrom(ctx).String())
	}

	var opts []formatctx.Option
	if cf.DurationMode != "" {
		m, err := formatctx.ParseDurationMode(cf.DurationMode)
		if err != nil {
			return nil, err
		}
		opts = append(opts, formatctx.WithDurationMode(m))
	}
	if cf.TimestampMode != "" {
		m, err := formatctx.ParseTimestampMode(cf.TimestampMode)
		if err != nil {
			return nil, err
		}
		opts = append(opts, formatctx.WithTimestampMode(m))
	}
	return formatctx.With(ctx, opts...)
}

func setupLogging(level string) error {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn", "":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q", level)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	codec.SetLogger(logger)
	return nil
}
