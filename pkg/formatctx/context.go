package formatctx

import (
	"context"
	"fmt"
)

// Options is a complete selection of formatting modes.
type Options struct {
	Duration  DurationMode
	Timestamp TimestampMode
}

// Defaults returns the modes active when no scope has been entered.
func Defaults() Options {
	return Options{
		Duration:  DurationISO8601,
		Timestamp: TimestampNative,
	}
}

// String returns a compact description such as "duration=iso8601 timestamp=native".
func (o Options) String() string {
	return fmt.Sprintf("duration=%s timestamp=%s", o.Duration, o.Timestamp)
}

// Option overrides one mode when entering a scope.
type Option func(*overrides) error

type overrides struct {
	duration  DurationMode
	timestamp TimestampMode
}

// WithDurationMode selects the duration encoding inside the scope.
func WithDurationMode(m DurationMode) Option {
	return func(o *overrides) error {
		if !m.Valid() {
			return &ConfigError{Option: optDuration, Value: fmt.Sprint(uint8(m)), Err: ErrInvalidMode}
		}
		if o.duration != 0 && o.duration != m {
			return &ConfigError{Option: optDuration, Value: m.String(), Err: ErrConflictingOptions}
		}
		o.duration = m
		return nil
	}
}

// WithTimestampMode selects the timestamp encoding inside the scope.
func WithTimestampMode(m TimestampMode) Option {
	return func(o *overrides) error {
		if !m.Valid() {
			return &ConfigError{Option: optTimestamp, Value: fmt.Sprint(uint8(m)), Err: ErrInvalidMode}
		}
		if o.timestamp != 0 && o.timestamp != m {
			return &ConfigError{Option: optTimestamp, Value: m.String(), Err: ErrConflictingOptions}
		}
		o.timestamp = m
		return nil
	}
}

// WithOptions selects every mode set in opts. Zero fields are left to
// inherit.
func WithOptions(opts Options) Option {
	return func(o *overrides) error {
		if opts.Duration != 0 {
			if err := WithDurationMode(opts.Duration)(o); err != nil {
				return err
			}
		}
		if opts.Timestamp != 0 {
			if err := WithTimestampMode(opts.Timestamp)(o); err != nil {
				return err
			}
		}
		return nil
	}
}

type optionsKey struct{}

// With returns a child of ctx in which the given options are active.
// Options that are not given inherit the modes active in ctx. ctx itself is
// not changed, so dropping the returned context ends the scope.
func With(ctx context.Context, opts ...Option) (context.Context, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var o overrides
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&o); err != nil {
			return ctx, err
		}
	}

	active := OptionsFrom(ctx)
	if o.duration != 0 {
		active.Duration = o.duration
	}
	if o.timestamp != 0 {
		active.Timestamp = o.timestamp
	}
	return context.WithValue(ctx, optionsKey{}, active), nil
}

// MustWith is like With but panics on an invalid option.
func MustWith(ctx context.Context, opts ...Option) context.Context {
	ctx, err := With(ctx, opts...)
	if err != nil {
		panic(err)
	}
	return ctx
}

// Scope runs fn with a context in which the given options are active and
// returns fn's error. Configuration errors are returned without calling fn.
func Scope(ctx context.Context, fn func(ctx context.Context) error, opts ...Option) error {
	scoped, err := With(ctx, opts...)
	if err != nil {
		return err
	}
	return fn(scoped)
}

// OptionsFrom returns the modes active in ctx.
func OptionsFrom(ctx context.Context) Options {
	if ctx != nil {
		if v, ok := ctx.Value(optionsKey{}).(Options); ok {
			return v
		}
	}
	return Defaults()
}

// DurationModeFrom returns the duration mode active in ctx.
func DurationModeFrom(ctx context.Context) DurationMode {
	return OptionsFrom(ctx).Duration
}

// TimestampModeFrom returns the timestamp mode active in ctx.
func TimestampModeFrom(ctx context.Context) TimestampMode {
	return OptionsFrom(ctx).Timestamp
}
