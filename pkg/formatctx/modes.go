package formatctx

import "strings"

// DurationMode selects the textual form used when encoding durations.
// The zero value means "not set" and is never active.
type DurationMode uint8

const (
	// DurationISO8601 encodes durations as ISO-8601 durations ("P3652D", "PT1M10S").
	DurationISO8601 DurationMode = 1

	// DurationStandard encodes durations in clock style ("1.02:03:04.5000000").
	DurationStandard DurationMode = 2
)

// String returns the mode name as used in configuration files.
func (m DurationMode) String() string {
	switch m {
	case DurationISO8601:
		return "iso8601"
	case DurationStandard:
		return "standard"
	default:
		return "unknown"
	}
}

// Valid reports whether m is a known duration mode.
func (m DurationMode) Valid() bool {
	return m == DurationISO8601 || m == DurationStandard
}

// MarshalText implements encoding.TextMarshaler.
func (m DurationMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, &ConfigError{Option: optDuration, Value: m.String(), Err: ErrInvalidMode}
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *DurationMode) UnmarshalText(text []byte) error {
	parsed, err := ParseDurationMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseDurationMode parses a duration mode name. Matching is
// case-insensitive; "iso" and "iso-8601" are accepted for DurationISO8601.
func ParseDurationMode(s string) (DurationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "iso8601", "iso-8601", "iso":
		return DurationISO8601, nil
	case "standard", "std":
		return DurationStandard, nil
	}
	return 0, &ConfigError{Option: optDuration, Value: s, Err: ErrInvalidMode}
}

// TimestampMode selects the textual form used when encoding offset
// timestamps. The zero value means "not set" and is never active.
type TimestampMode uint8

const (
	// TimestampNative encodes timestamps in the engine's compact numeric
	// form ("1340771164.524+420").
	TimestampNative TimestampMode = 1

	// TimestampBCL encodes timestamps the way the .NET data-contract JSON
	// serializer does ("/Date(1340771164524+0700)/").
	TimestampBCL TimestampMode = 2
)

// String returns the mode name as used in configuration files.
func (m TimestampMode) String() string {
	switch m {
	case TimestampNative:
		return "native"
	case TimestampBCL:
		return "bcl"
	default:
		return "unknown"
	}
}

// Valid reports whether m is a known timestamp mode.
func (m TimestampMode) Valid() bool {
	return m == TimestampNative || m == TimestampBCL
}

// MarshalText implements encoding.TextMarshaler.
func (m TimestampMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, &ConfigError{Option: optTimestamp, Value: m.String(), Err: ErrInvalidMode}
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *TimestampMode) UnmarshalText(text []byte) error {
	parsed, err := ParseTimestampMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseTimestampMode parses a timestamp mode name. Matching is
// case-insensitive; "bcl-compatible" is accepted for TimestampBCL.
func ParseTimestampMode(s string) (TimestampMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "native":
		return TimestampNative, nil
	case "bcl", "bcl-compatible", "bclcompatible":
		return TimestampBCL, nil
	}
	return 0, &ConfigError{Option: optTimestamp, Value: s, Err: ErrInvalidMode}
}
