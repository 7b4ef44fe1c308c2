package temporal

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/mash-protocol/mash-text/pkg/formatctx"
)

// maxOffsetSeconds bounds the UTC offsets accepted when decoding.
const maxOffsetSeconds = 24*60*60 - 1

// FormatOffsetTime encodes t in the timestamp mode active in ctx.
func FormatOffsetTime(ctx context.Context, t time.Time) string {
	if formatctx.TimestampModeFrom(ctx) == formatctx.TimestampBCL {
		return FormatBCLOffsetTime(t)
	}
	return FormatNativeOffsetTime(t)
}

// FormatOffsetTimePtr encodes *t like FormatOffsetTime. It reports false
// for a nil t, in which case the member must be left out of the output.
func FormatOffsetTimePtr(ctx context.Context, t *time.Time) (string, bool) {
	if t == nil {
		return "", false
	}
	return FormatOffsetTime(ctx, *t), true
}

// FormatNativeOffsetTime encodes t as "<unix>[.<fraction>]<sign><minutes>[:<seconds>]".
// The Unix time is a signed decimal number of seconds whose fraction is
// exact to the nanosecond; the offset is in minutes, with a seconds part
// only when the zone has one.
func FormatNativeOffsetTime(t time.Time) string {
	_, offset := t.Zone()
	sec := t.Unix()
	nsec := uint64(t.Nanosecond())

	b := make([]byte, 0, 32)
	if sec < 0 && nsec > 0 {
		// -3.25 is stored as sec=-4, nsec=0.75e9.
		b = append(b, '-')
		b = strconv.AppendInt(b, -(sec + 1), 10)
		nsec = uint64(time.Second) - nsec
	} else {
		b = strconv.AppendInt(b, sec, 10)
	}
	if nsec > 0 {
		b = append(b, '.')
		b = appendFraction(b, nsec, 9, true)
	}

	if offset < 0 {
		b = append(b, '-')
		offset = -offset
	} else {
		b = append(b, '+')
	}
	b = strconv.AppendInt(b, int64(offset/60), 10)
	if rem := offset % 60; rem != 0 {
		b = append(b, ':')
		b = appendTwoDigits(b, uint64(rem))
	}
	return string(b)
}

// FormatBCLOffsetTime encodes t as "/Date(<ms><sign>HHMM)/", the form the
// .NET data-contract JSON serializer writes. Milliseconds are counted from
// the Unix epoch in UTC and rounded toward negative infinity; offset seconds
// are dropped.
func FormatBCLOffsetTime(t time.Time) string {
	_, offset := t.Zone()

	b := make([]byte, 0, 32)
	b = append(b, "/Date("...)
	b = strconv.AppendInt(b, t.UnixMilli(), 10)
	if offset < 0 {
		b = append(b, '-')
		offset = -offset
	} else {
		b = append(b, '+')
	}
	minutes := uint64(offset / 60)
	b = appendTwoDigits(b, minutes/60)
	b = appendTwoDigits(b, minutes%60)
	b = append(b, ")/"...)
	return string(b)
}

// ParseOffsetTime decodes a timestamp token. The active timestamp mode is
// irrelevant; accepted forms are:
//
//	1340771164.524+420              native
//	/Date(1340771164524+0700)/      BCL (also with JSON-escaped solidus, or no offset for UTC)
//	2012-06-27T11:26:04.524+07:00   RFC 3339
//
// The result carries a fixed zone with the decoded offset (time.UTC for a
// zero offset); zone names are not preserved.
func ParseOffsetTime(s string) (time.Time, error) {
	var t time.Time
	var err error
	switch {
	case strings.Contains(s, "Date("):
		t, err = parseBCL(s)
	case strings.ContainsAny(s, "Tt"):
		t, err = parseRFC3339(s)
	default:
		t, err = parseNative(s)
	}
	if err != nil {
		return time.Time{}, &FormatError{Kind: KindTimestamp, Input: s, Err: err}
	}
	return t, nil
}

// ParseOffsetTimePtr decodes s like ParseOffsetTime and returns a pointer
// to the result.
func ParseOffsetTimePtr(s string) (*time.Time, error) {
	t, err := ParseOffsetTime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// BCLEqual reports whether a and b are equal once both are reduced to
// the precision of the BCL form: the same millisecond and the same offset
// in whole minutes.
func BCLEqual(a, b time.Time) bool {
	_, offA := a.Zone()
	_, offB := b.Zone()
	return a.UnixMilli() == b.UnixMilli() && offA/60 == offB/60
}

func fixedZone(offset int) *time.Location {
	if offset == 0 {
		return time.UTC
	}
	return time.FixedZone("", offset)
}

func parseNative(s string) (time.Time, error) {
	body := s
	neg := strings.HasPrefix(body, "-")
	if neg {
		body = body[1:]
	}

	secDigits, rest := leadingDigits(body)
	if secDigits == "" {
		return time.Time{}, ErrUnrecognizedTimestamp
	}
	var frac string
	if strings.HasPrefix(rest, ".") {
		frac, rest = leadingDigits(rest[1:])
		if frac == "" || len(frac) > 9 {
			return time.Time{}, ErrUnrecognizedTimestamp
		}
	}
	if rest == "" || (rest[0] != '+' && rest[0] != '-') {
		return time.Time{}, ErrUnrecognizedTimestamp
	}
	offsetNeg := rest[0] == '-'
	minDigits, rest := leadingDigits(rest[1:])
	if minDigits == "" || len(minDigits) > 4 {
		return time.Time{}, ErrUnrecognizedTimestamp
	}
	offset, _ := strconv.Atoi(minDigits)
	offset *= 60
	if rest != "" {
		if rest[0] != ':' || len(rest) != 3 || !isDigits(rest[1:]) {
			return time.Time{}, ErrUnrecognizedTimestamp
		}
		secs, _ := strconv.Atoi(rest[1:])
		if secs > 59 {
			return time.Time{}, ErrUnrecognizedTimestamp
		}
		offset += secs
	}
	if offset > maxOffsetSeconds {
		return time.Time{}, ErrTimestampRange
	}
	if offsetNeg {
		offset = -offset
	}

	mag, err := strconv.ParseUint(secDigits, 10, 64)
	if err != nil {
		return time.Time{}, ErrTimestampRange
	}
	nsec := int64(fractionNanos(frac))

	var sec int64
	switch {
	case !neg:
		if mag > maxMagnitude-1 {
			return time.Time{}, ErrTimestampRange
		}
		sec = int64(mag)
	case nsec > 0:
		// Borrow a second so the nanoseconds stay positive.
		if mag > maxMagnitude-1 {
			return time.Time{}, ErrTimestampRange
		}
		sec = -int64(mag) - 1
		nsec = int64(time.Second) - nsec
	default:
		if mag > maxMagnitude {
			return time.Time{}, ErrTimestampRange
		}
		sec = -int64(mag)
	}
	return time.Unix(sec, nsec).In(fixedZone(offset)), nil
}

func parseBCL(s string) (time.Time, error) {
	body, ok := trimBCLEnvelope(s)
	if !ok {
		return time.Time{}, ErrUnrecognizedTimestamp
	}

	msPart := body
	offset := 0
	// The offset sign is searched after the first byte so a negative
	// millisecond count is not mistaken for it.
	if i := strings.IndexAny(body[min(1, len(body)):], "+-"); i >= 0 {
		i++
		msPart = body[:i]
		hhmm := body[i+1:]
		if len(hhmm) != 4 || !isDigits(hhmm) {
			return time.Time{}, ErrUnrecognizedTimestamp
		}
		hours, _ := strconv.Atoi(hhmm[:2])
		minutes, _ := strconv.Atoi(hhmm[2:])
		if hours > 23 || minutes > 59 {
			return time.Time{}, ErrUnrecognizedTimestamp
		}
		offset = hours*3600 + minutes*60
		if body[i] == '-' {
			offset = -offset
		}
	}

	digits := strings.TrimPrefix(msPart, "-")
	if !isDigits(digits) {
		return time.Time{}, ErrUnrecognizedTimestamp
	}
	ms, err := strconv.ParseInt(msPart, 10, 64)
	if err != nil {
		return time.Time{}, ErrTimestampRange
	}
	return time.UnixMilli(ms).In(fixedZone(offset)), nil
}

// trimBCLEnvelope strips "/Date(" and ")/", in plain or JSON-escaped form.
func trimBCLEnvelope(s string) (string, bool) {
	for _, env := range [][2]string{{"/Date(", ")/"}, {`\/Date(`, `)\/`}} {
		if strings.HasPrefix(s, env[0]) && strings.HasSuffix(s, env[1]) && len(s) >= len(env[0])+len(env[1]) {
			return s[len(env[0]) : len(s)-len(env[1])], true
		}
	}
	return "", false
}

func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, ErrUnrecognizedTimestamp
	}
	_, offset := t.Zone()
	return t.In(fixedZone(offset)), nil
}
