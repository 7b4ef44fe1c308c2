package temporal

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/mash-protocol/mash-text/pkg/formatctx"
)

const testDay = 24 * time.Hour

var standardCtx = formatctx.MustWith(context.Background(), formatctx.WithDurationMode(formatctx.DurationStandard))

func TestFormatISO8601Duration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "PT0S"},
		{"ten years of days", 3652 * testDay, "P3652D"},
		{"seventy seconds", 70 * time.Second, "PT1M10S"},
		{"all components", testDay + 2*time.Hour + 3*time.Minute + 4500*time.Millisecond, "P1DT2H3M4.5S"},
		{"day and a half", 36 * time.Hour, "P1DT12H"},
		{"negative", -90 * time.Minute, "-PT1H30M"},
		{"fraction only", 150 * time.Millisecond, "PT0.15S"},
		{"one nanosecond", time.Nanosecond, "PT0.000000001S"},
		{"max", math.MaxInt64, "P106751DT23H47M16.854775807S"},
		{"min", math.MinInt64, "-P106751DT23H47M16.854775808S"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatISO8601Duration(tt.d); got != tt.want {
				t.Errorf("FormatISO8601Duration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestFormatStandardDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "00:00:00"},
		{"seventy seconds", 70 * time.Second, "00:01:10"},
		{"ten years of days", 3652 * testDay, "3652.00:00:00"},
		{"all components", testDay + 2*time.Hour + 3*time.Minute + 4500*time.Millisecond, "1.02:03:04.5000000"},
		{"negative", -90 * time.Minute, "-01:30:00"},
		{"tick aligned fraction", 1500 * time.Microsecond, "00:00:00.0015000"},
		{"sub-tick fraction", 1234567 * time.Nanosecond, "00:00:00.001234567"},
		{"max", math.MaxInt64, "106751.23:47:16.854775807"},
		{"min", math.MinInt64, "-106751.23:47:16.854775808"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatStandardDuration(tt.d); got != tt.want {
				t.Errorf("FormatStandardDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestFormatDurationFollowsContext(t *testing.T) {
	d := 70 * time.Second

	if got := FormatDuration(context.Background(), d); got != "PT1M10S" {
		t.Errorf("default mode: got %q, want %q", got, "PT1M10S")
	}
	if got := FormatDuration(standardCtx, d); got != "00:01:10" {
		t.Errorf("standard mode: got %q, want %q", got, "00:01:10")
	}
	if got := FormatDuration(context.Background(), 0); got != "PT0S" {
		t.Errorf("zero in default mode: got %q, want %q", got, "PT0S")
	}
}

func TestFormatDurationPtr(t *testing.T) {
	if s, ok := FormatDurationPtr(standardCtx, nil); ok || s != "" {
		t.Errorf("FormatDurationPtr(nil) = %q, %v; want \"\", false", s, ok)
	}
	d := 70 * time.Second
	if s, ok := FormatDurationPtr(standardCtx, &d); !ok || s != "00:01:10" {
		t.Errorf("FormatDurationPtr(&70s) = %q, %v; want \"00:01:10\", true", s, ok)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		// ISO-8601
		{"PT0S", 0},
		{"P3652D", 3652 * testDay},
		{"PT1M10S", 70 * time.Second},
		{"P1DT2H3M4.5S", testDay + 2*time.Hour + 3*time.Minute + 4500*time.Millisecond},
		{"-PT1H30M", -90 * time.Minute},
		{"PT0,5S", 500 * time.Millisecond},
		{"P1W", 7 * testDay},
		{"P1Y", 365 * testDay},
		{"P1M", 30 * testDay},
		{"PT1M", time.Minute},
		{"P1Y2M3W4DT5H6M7S", (365+60+21+4)*testDay + 5*time.Hour + 6*time.Minute + 7*time.Second},
		{"PT0.0000000019S", time.Nanosecond},
		{"P106751DT23H47M16.854775807S", math.MaxInt64},
		{"-P106751DT23H47M16.854775808S", math.MinInt64},

		// Standard
		{"00:01:10", 70 * time.Second},
		{"00:00:00", 0},
		{"3652.00:00:00", 3652 * testDay},
		{"1.02:03:04.5000000", testDay + 2*time.Hour + 3*time.Minute + 4500*time.Millisecond},
		{"-01:30:00", -90 * time.Minute},
		{"01:30", 90 * time.Minute},
		{"1.02:03", testDay + 2*time.Hour + 3*time.Minute},
		{"5", 5 * testDay},
		{"-5", -5 * testDay},
		{"0:1:2.5", time.Minute + 2500*time.Millisecond},
		{"00:00:00.001234567", 1234567 * time.Nanosecond},
		{"106751.23:47:16.854775807", math.MaxInt64},
		{"-106751.23:47:16.854775808", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if err != nil {
				t.Fatalf("ParseDuration(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDurationErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", ErrUnrecognizedDuration},
		{"-", ErrUnrecognizedDuration},
		{"P", ErrUnrecognizedDuration},
		{"PT", ErrUnrecognizedDuration},
		{"P1DT", ErrUnrecognizedDuration},
		{"P1H", ErrUnrecognizedDuration},
		{"PT1D", ErrUnrecognizedDuration},
		{"P1D2Y", ErrUnrecognizedDuration},
		{"PT1S1M", ErrUnrecognizedDuration},
		{"PT1.5M", ErrUnrecognizedDuration},
		{"PT.5S", ErrUnrecognizedDuration},
		{"P-1D", ErrUnrecognizedDuration},
		{"pt1s", ErrUnrecognizedDuration},
		{"1h30m", ErrUnrecognizedDuration},
		{"24:00:00", ErrUnrecognizedDuration},
		{"00:60:00", ErrUnrecognizedDuration},
		{"00:00:60", ErrUnrecognizedDuration},
		{"1:2:3:4", ErrUnrecognizedDuration},
		{"1.:00:00", ErrUnrecognizedDuration},
		{"x.01:00:00", ErrUnrecognizedDuration},
		{"00:00:00.", ErrUnrecognizedDuration},
		{"00:00:00.1234567890", ErrUnrecognizedDuration},
		{"001:00:00", ErrUnrecognizedDuration},
		{" 00:01:10", ErrUnrecognizedDuration},
		{"P106752D", ErrDurationRange},
		{"PT9223372036.854775808S", ErrDurationRange},
		{"-PT9223372036.854775809S", ErrDurationRange},
		{"106752", ErrDurationRange},
		{"P99999999999999999999D", ErrDurationRange},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("ParseDuration(%q) error = %v, want %v", tt.in, err, tt.want)
			}
			if got != 0 {
				t.Errorf("ParseDuration(%q) returned partial value %v", tt.in, got)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("error %v is not a *FormatError", err)
			}
			if fe.Kind != KindDuration || fe.Input != tt.in {
				t.Errorf("FormatError = {%q %q}, want {%q %q}", fe.Kind, fe.Input, KindDuration, tt.in)
			}
		})
	}
}

func TestParseDurationPtr(t *testing.T) {
	d, err := ParseDurationPtr("00:01:10")
	if err != nil {
		t.Fatalf("ParseDurationPtr failed: %v", err)
	}
	if d == nil || *d != 70*time.Second {
		t.Errorf("ParseDurationPtr = %v, want 70s", d)
	}
	if d, err := ParseDurationPtr("nope"); err == nil || d != nil {
		t.Errorf("ParseDurationPtr(nope) = %v, %v; want nil, error", d, err)
	}
}

func TestDurationRoundTrip(t *testing.T) {
	values := []time.Duration{
		0, 1, -1, time.Microsecond, 100, 101,
		70 * time.Second, -70 * time.Second,
		3652 * testDay, testDay - 1, -testDay,
		math.MaxInt64, math.MinInt64, math.MinInt64 + 1,
	}
	rng := rand.New(rand.NewPCG(1, 2))
	for range 500 {
		values = append(values, time.Duration(rng.Int64()), -time.Duration(rng.Int64N(int64(1000*testDay))))
	}

	for _, ctx := range []context.Context{context.Background(), standardCtx} {
		mode := formatctx.DurationModeFrom(ctx)
		for _, d := range values {
			s := FormatDuration(ctx, d)
			got, err := ParseDuration(s)
			if err != nil {
				t.Fatalf("%s: ParseDuration(%q) failed: %v", mode, s, err)
			}
			if got != d {
				t.Fatalf("%s: round trip of %d via %q = %d", mode, int64(d), s, int64(got))
			}
		}
	}
}

func TestDurationModesDifferForDaysAndFractions(t *testing.T) {
	for _, d := range []time.Duration{
		3652 * testDay,
		1500 * time.Millisecond,
		-(2*testDay + 250*time.Millisecond),
	} {
		iso := FormatDuration(context.Background(), d)
		std := FormatDuration(standardCtx, d)
		if iso == std {
			t.Errorf("%v encoded identically in both modes: %q", d, iso)
		}

		fromISO, err := ParseDuration(iso)
		if err != nil {
			t.Fatalf("ParseDuration(%q) failed: %v", iso, err)
		}
		fromStd, err := ParseDuration(std)
		if err != nil {
			t.Fatalf("ParseDuration(%q) failed: %v", std, err)
		}
		if fromISO != fromStd {
			t.Errorf("%q and %q decode to %v and %v", iso, std, fromISO, fromStd)
		}
	}
}
