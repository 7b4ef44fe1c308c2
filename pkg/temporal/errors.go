package temporal

import (
	"errors"
	"fmt"
)

// Decode errors.
var (
	ErrUnrecognizedDuration  = errors.New("unrecognized duration format")
	ErrDurationRange         = errors.New("duration out of range")
	ErrUnrecognizedTimestamp = errors.New("unrecognized timestamp format")
	ErrTimestampRange        = errors.New("timestamp out of range")
)

// Kinds reported in FormatError.Kind.
const (
	KindDuration  = "duration"
	KindTimestamp = "timestamp"
)

// FormatError reports a token that could not be decoded.
type FormatError struct {
	Kind  string
	Input string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("temporal: cannot parse %q as %s: %v", e.Input, e.Kind, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
