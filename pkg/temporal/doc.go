// Package temporal converts durations and offset timestamps to and from
// string tokens.
//
// Encoding depends on the modes active in the context (see pkg/formatctx).
// Decoding does not: ParseDuration and ParseOffsetTime accept every form
// that either mode produces, so values written under an older setting stay
// readable.
//
// # Durations
//
// ISO-8601 mode:
//
//	0                  PT0S
//	3652 days          P3652D
//	1d 2h 3m 4.5s      P1DT2H3M4.5S
//
// Standard mode:
//
//	70s                00:01:10
//	1d 2h 3m 4.5s      1.02:03:04.5000000
//	-90m               -01:30:00
//
// # Offset timestamps
//
// Native mode writes Unix seconds with an exact fraction and the UTC offset
// in minutes: "1340771164.524+420". BCL mode writes the form of the .NET
// data-contract JSON serializer, "/Date(1340771164524+0700)/", which keeps
// milliseconds and whole offset minutes only; compare such values with
// BCLEqual.
package temporal
