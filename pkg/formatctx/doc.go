// Package formatctx carries the active temporal formatting modes through
// context.Context.
//
// Formatters in pkg/temporal read the duration mode and the timestamp mode
// from the context they are given. Callers select other modes for a bounded
// region by deriving a child context:
//
//	ctx, err := formatctx.With(ctx, formatctx.WithDurationMode(formatctx.DurationStandard))
//
// or with a scoped block:
//
//	err := formatctx.Scope(ctx, func(ctx context.Context) error {
//	    return encode(ctx, v)
//	}, formatctx.WithTimestampMode(formatctx.TimestampBCL))
//
// # Scoping
//
// Options not given to With inherit the value active in the parent
// context. The parent is never modified, so leaving a scope (by return,
// error or panic) restores exactly the previous modes. Each goroutine passes
// its own context, which keeps concurrent scopes isolated.
//
// # Defaults
//
// Without any scope the duration mode is DurationISO8601 and the timestamp
// mode is TimestampNative.
package formatctx
