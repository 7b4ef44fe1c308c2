package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/mash-protocol/mash-text/pkg/codec"
	"github.com/mash-protocol/mash-text/pkg/temporal"
)

var errOneValue = errors.New("expected exactly one value")

func parseOne(fs *pflag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%w (use -- before negative values)", errOneValue)
	}
	return fs.Arg(0), nil
}

func runDuration(args []string, w io.Writer) error {
	var cf commonFlags
	fs := newFlagSet("duration", &cf)
	decode := fs.BoolP("decode", "d", false, "Decode a duration token instead of encoding")

	value, err := parseOne(fs, args)
	if err != nil {
		return err
	}
	ctx, err := cf.context()
	if err != nil {
		return err
	}

	if *decode {
		d, err := temporal.ParseDuration(value)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\t(%d ns)\n", d, int64(d))
		return err
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, temporal.FormatDuration(ctx, d))
	return err
}

func parseInputTime(value string) (time.Time, error) {
	if value == "now" {
		return time.Now(), nil
	}
	return time.Parse(time.RFC3339Nano, value)
}

func runTimestamp(args []string, w io.Writer) error {
	var cf commonFlags
	fs := newFlagSet("timestamp", &cf)
	decode := fs.BoolP("decode", "d", false, "Decode a timestamp token instead of encoding")

	value, err := parseOne(fs, args)
	if err != nil {
		return err
	}
	ctx, err := cf.context()
	if err != nil {
		return err
	}

	if *decode {
		t, err := temporal.ParseOffsetTime(value)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, t.Format(time.RFC3339Nano))
		return err
	}

	t, err := parseInputTime(value)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, temporal.FormatOffsetTime(ctx, t))
	return err
}

// sampleRecord mirrors the record shape the serializer is exercised with.
type sampleRecord struct {
	ID       uuid.UUID      `json:"Id"`
	Date     time.Time      `json:"Date"`
	TimeSpan *time.Duration `json:"TimeSpan"`
}

func runRecord(args []string, w io.Writer) error {
	var cf commonFlags
	fs := newFlagSet("record", &cf)
	id := fs.String("id", "", "Record id (random UUID if empty)")
	date := fs.String("date", "now", "Record date, RFC 3339 or \"now\"")
	span := fs.String("timespan", "", "Record time span as a Go duration literal (absent if empty)")
	format := fs.String("format", "json", "Output format: json, cbor (hex)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	ctx, err := cf.context()
	if err != nil {
		return err
	}

	rec := sampleRecord{ID: uuid.New()}
	if *id != "" {
		if rec.ID, err = uuid.Parse(*id); err != nil {
			return err
		}
	}
	if rec.Date, err = parseInputTime(*date); err != nil {
		return err
	}
	if *span != "" {
		d, err := time.ParseDuration(*span)
		if err != nil {
			return err
		}
		rec.TimeSpan = &d
	}

	switch *format {
	case "json":
		data, err := codec.Marshal(ctx, rec)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "cbor":
		data, err := codec.MarshalCBOR(ctx, rec)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, hex.EncodeToString(data))
		return err
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}
