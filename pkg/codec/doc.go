// Package codec writes and reads struct values as JSON or CBOR documents,
// routing temporal members through pkg/temporal.
//
// It is a small member walker, not a general serializer. A struct's
// exported fields become members named by their `json` tag (or the field
// name); `json:"-"` skips a field and `omitempty` drops empty values.
//
// Members of type time.Duration and time.Time are written as string tokens
// in the modes active in the context (see pkg/formatctx). Members of type
// *time.Duration and *time.Time are nullable: a nil pointer is absent and
// its key is left out of the document entirely, never written as null.
// All other members are handed to the JSON or CBOR backend unchanged, so
// encoding.TextMarshaler values such as uuid.UUID come out as strings.
//
//	type Sample struct {
//	    ID       int            `json:"Id"`
//	    Date     time.Time      `json:"Date"`
//	    TimeSpan *time.Duration `json:"TimeSpan"`
//	}
//
//	data, err := codec.Marshal(ctx, Sample{ID: 1, Date: now})
//	// {"Id":1,"Date":"1340771164.524+420"}
package codec
