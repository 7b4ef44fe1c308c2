package formatctx

import (
	"errors"
	"fmt"
)

// Configuration errors.
var (
	ErrInvalidMode         = errors.New("invalid mode")
	ErrConflictingOptions  = errors.New("conflicting options")
	ErrUnknownConfigFormat = errors.New("unknown config format")
)

const (
	optDuration  = "duration"
	optTimestamp = "timestamp"
)

// ConfigError reports an option that could not be applied.
type ConfigError struct {
	// Option names the offending option ("duration", "timestamp", or a file path).
	Option string

	// Value is the rejected value in its textual form.
	Value string

	Err error
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("formatctx: %s: %v", e.Option, e.Err)
	}
	return fmt.Sprintf("formatctx: %s %q: %v", e.Option, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
