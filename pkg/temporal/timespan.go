package temporal

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/mash-protocol/mash-text/pkg/formatctx"
)

const (
	nanosPerTick = 100
	day          = uint64(24 * time.Hour)

	// maxMagnitude is the magnitude of math.MinInt64 nanoseconds.
	maxMagnitude = uint64(1) << 63
)

// FormatDuration encodes d in the duration mode active in ctx.
func FormatDuration(ctx context.Context, d time.Duration) string {
	if formatctx.DurationModeFrom(ctx) == formatctx.DurationStandard {
		return FormatStandardDuration(d)
	}
	return FormatISO8601Duration(d)
}

// FormatDurationPtr encodes *d like FormatDuration. It reports false for a
// nil d, in which case the member must be left out of the output.
func FormatDurationPtr(ctx context.Context, d *time.Duration) (string, bool) {
	if d == nil {
		return "", false
	}
	return FormatDuration(ctx, *d), true
}

// span is a duration split into calendar-free components.
type span struct {
	neg     bool
	days    uint64
	hours   uint64
	minutes uint64
	seconds uint64
	nanos   uint64
}

func splitDuration(d time.Duration) span {
	s := span{neg: d < 0}
	mag := uint64(d)
	if s.neg {
		// Two's complement negation also covers math.MinInt64.
		mag = -mag
	}
	s.days = mag / day
	mag %= day
	s.hours = mag / uint64(time.Hour)
	mag %= uint64(time.Hour)
	s.minutes = mag / uint64(time.Minute)
	mag %= uint64(time.Minute)
	s.seconds = mag / uint64(time.Second)
	s.nanos = mag % uint64(time.Second)
	return s
}

// FormatISO8601Duration encodes d as an ISO-8601 duration. Zero is "PT0S";
// zero components are left out and the fraction of a second is written
// without trailing zeros.
func FormatISO8601Duration(d time.Duration) string {
	if d == 0 {
		return "PT0S"
	}
	s := splitDuration(d)

	b := make([]byte, 0, 32)
	if s.neg {
		b = append(b, '-')
	}
	b = append(b, 'P')
	if s.days > 0 {
		b = strconv.AppendUint(b, s.days, 10)
		b = append(b, 'D')
	}
	if s.hours|s.minutes|s.seconds|s.nanos == 0 {
		return string(b)
	}

	b = append(b, 'T')
	if s.hours > 0 {
		b = strconv.AppendUint(b, s.hours, 10)
		b = append(b, 'H')
	}
	if s.minutes > 0 {
		b = strconv.AppendUint(b, s.minutes, 10)
		b = append(b, 'M')
	}
	if s.seconds > 0 || s.nanos > 0 {
		b = strconv.AppendUint(b, s.seconds, 10)
		if s.nanos > 0 {
			b = append(b, '.')
			b = appendFraction(b, s.nanos, 9, true)
		}
		b = append(b, 'S')
	}
	return string(b)
}

// FormatStandardDuration encodes d as "[-][D.]HH:MM:SS[.fffffff]". The
// fraction has seven digits when d is a whole number of 100ns ticks and
// nine otherwise.
func FormatStandardDuration(d time.Duration) string {
	s := splitDuration(d)

	b := make([]byte, 0, 32)
	if s.neg {
		b = append(b, '-')
	}
	if s.days > 0 {
		b = strconv.AppendUint(b, s.days, 10)
		b = append(b, '.')
	}
	b = appendTwoDigits(b, s.hours)
	b = append(b, ':')
	b = appendTwoDigits(b, s.minutes)
	b = append(b, ':')
	b = appendTwoDigits(b, s.seconds)
	if s.nanos > 0 {
		b = append(b, '.')
		if s.nanos%nanosPerTick == 0 {
			b = appendFraction(b, s.nanos/nanosPerTick, 7, false)
		} else {
			b = appendFraction(b, s.nanos, 9, false)
		}
	}
	return string(b)
}

// ParseDuration decodes an ISO-8601 or standard duration token. The active
// duration mode is irrelevant: both forms are always accepted.
//
// ISO-8601 input may use Y (365 days), M (30 days), W and D in the date
// part and H, M and S in the time part; only seconds may carry a fraction.
// Standard input is "[-]D", "[-][D.]H:M" or "[-][D.]H:M:S[.f]".
func ParseDuration(s string) (time.Duration, error) {
	body := s
	neg := strings.HasPrefix(body, "-")
	if neg {
		body = body[1:]
	}

	var mag uint64
	var err error
	if strings.HasPrefix(body, "P") {
		mag, err = parseISO8601Magnitude(body[1:])
	} else {
		mag, err = parseStandardMagnitude(body)
	}
	if err != nil {
		return 0, &FormatError{Kind: KindDuration, Input: s, Err: err}
	}

	if neg {
		// -int64(1<<63) wraps to math.MinInt64, which is the intended value.
		return time.Duration(-int64(mag)), nil
	}
	if mag > maxMagnitude-1 {
		return 0, &FormatError{Kind: KindDuration, Input: s, Err: ErrDurationRange}
	}
	return time.Duration(mag), nil
}

// ParseDurationPtr decodes s like ParseDuration and returns a pointer to
// the result.
func ParseDurationPtr(s string) (*time.Duration, error) {
	d, err := ParseDuration(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

type unit struct {
	designator byte
	nanos      uint64
}

var (
	isoDateUnits = []unit{
		{'Y', 365 * day},
		{'M', 30 * day},
		{'W', 7 * day},
		{'D', day},
	}
	isoTimeUnits = []unit{
		{'H', uint64(time.Hour)},
		{'M', uint64(time.Minute)},
		{'S', uint64(time.Second)},
	}
)

// findUnit returns the index of c in units at or after from, or -1.
// Starting after the previous match enforces designator order.
func findUnit(units []unit, from int, c byte) int {
	for i := from; i < len(units); i++ {
		if units[i].designator == c {
			return i
		}
	}
	return -1
}

func parseISO8601Magnitude(s string) (uint64, error) {
	var total uint64
	components := 0

	next := 0
	for s != "" && s[0] != 'T' {
		digits, rest := leadingDigits(s)
		if digits == "" || rest == "" {
			return 0, ErrUnrecognizedDuration
		}
		i := findUnit(isoDateUnits, next, rest[0])
		if i < 0 {
			return 0, ErrUnrecognizedDuration
		}
		var err error
		if total, err = accumulate(total, digits, isoDateUnits[i].nanos); err != nil {
			return 0, err
		}
		next = i + 1
		s = rest[1:]
		components++
	}

	if s != "" {
		s = s[1:]
		if s == "" {
			return 0, ErrUnrecognizedDuration
		}
		next = 0
		for s != "" {
			digits, rest := leadingDigits(s)
			if digits == "" {
				return 0, ErrUnrecognizedDuration
			}
			var frac string
			if rest != "" && (rest[0] == '.' || rest[0] == ',') {
				frac, rest = leadingDigits(rest[1:])
				if frac == "" {
					return 0, ErrUnrecognizedDuration
				}
			}
			if rest == "" {
				return 0, ErrUnrecognizedDuration
			}
			i := findUnit(isoTimeUnits, next, rest[0])
			if i < 0 || (frac != "" && isoTimeUnits[i].designator != 'S') {
				return 0, ErrUnrecognizedDuration
			}
			var err error
			if total, err = accumulate(total, digits, isoTimeUnits[i].nanos); err != nil {
				return 0, err
			}
			if frac != "" {
				if total, err = addMagnitude(total, fractionNanos(frac)); err != nil {
					return 0, err
				}
			}
			next = i + 1
			s = rest[1:]
			components++
		}
	}

	if components == 0 {
		return 0, ErrUnrecognizedDuration
	}
	return total, nil
}

func parseStandardMagnitude(s string) (uint64, error) {
	if s == "" {
		return 0, ErrUnrecognizedDuration
	}
	if digits, rest := leadingDigits(s); rest == "" {
		return accumulate(0, digits, day)
	}

	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		return 0, ErrUnrecognizedDuration
	}

	var total uint64
	clock := s
	if dot := strings.IndexByte(s[:colon], '.'); dot >= 0 {
		days := s[:dot]
		if !isDigits(days) {
			return 0, ErrUnrecognizedDuration
		}
		var err error
		if total, err = accumulate(0, days, day); err != nil {
			return 0, err
		}
		clock = s[dot+1:]
	}

	fields := strings.Split(clock, ":")
	if len(fields) < 2 || len(fields) > 3 {
		return 0, ErrUnrecognizedDuration
	}

	var frac string
	if len(fields) == 3 {
		if sec, f, ok := strings.Cut(fields[2], "."); ok {
			if !isDigits(f) || len(f) > 9 {
				return 0, ErrUnrecognizedDuration
			}
			fields[2], frac = sec, f
		}
	}

	limits := []uint64{23, 59, 59}
	scales := []uint64{uint64(time.Hour), uint64(time.Minute), uint64(time.Second)}
	var clockNanos uint64
	for i, f := range fields {
		if len(f) == 0 || len(f) > 2 || !isDigits(f) {
			return 0, ErrUnrecognizedDuration
		}
		v, _ := strconv.ParseUint(f, 10, 8)
		if v > limits[i] {
			return 0, ErrUnrecognizedDuration
		}
		clockNanos += v * scales[i]
	}
	if frac != "" {
		clockNanos += fractionNanos(frac)
	}
	return addMagnitude(total, clockNanos)
}

// accumulate adds digits*scale to total, failing once the sum exceeds the
// magnitude of math.MinInt64.
func accumulate(total uint64, digits string, scale uint64) (uint64, error) {
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, ErrDurationRange
	}
	if n > (maxMagnitude-total)/scale {
		return 0, ErrDurationRange
	}
	return total + n*scale, nil
}

func addMagnitude(total, n uint64) (uint64, error) {
	if n > maxMagnitude-total {
		return 0, ErrDurationRange
	}
	return total + n, nil
}

// fractionNanos converts the digits after a decimal point to nanoseconds.
// Digits past the ninth are dropped.
func fractionNanos(frac string) uint64 {
	if len(frac) > 9 {
		frac = frac[:9]
	}
	n, _ := strconv.ParseUint(frac, 10, 64)
	for i := len(frac); i < 9; i++ {
		n *= 10
	}
	return n
}

func leadingDigits(s string) (digits, rest string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i], s[i:]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	digits, rest := leadingDigits(s)
	return digits != "" && rest == ""
}

func appendTwoDigits(b []byte, v uint64) []byte {
	if v < 10 {
		b = append(b, '0')
	}
	return strconv.AppendUint(b, v, 10)
}

// appendFraction writes v zero-padded to width digits, optionally without
// trailing zeros.
func appendFraction(b []byte, v uint64, width int, trim bool) []byte {
	digits := strconv.FormatUint(v, 10)
	for i := len(digits); i < width; i++ {
		b = append(b, '0')
	}
	if trim {
		digits = strings.TrimRight(digits, "0")
	}
	return append(b, digits...)
}
