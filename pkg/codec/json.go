package codec

import (
	"bytes"
	"context"
	"fmt"
	"reflect"

	gojson "github.com/goccy/go-json"
)

// Marshal encodes the struct v (or *v) as a JSON object. Keys follow
// declaration order; absent members are left out.
func Marshal(ctx context.Context, v any) ([]byte, error) {
	members, err := Members(ctx, v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, m := range members {
		if m.Absent {
			continue
		}
		key, err := gojson.Marshal(m.Name)
		if err != nil {
			return nil, &MemberError{Member: m.Name, Err: err}
		}
		val, err := gojson.Marshal(m.Value)
		if err != nil {
			return nil, &MemberError{Member: m.Name, Err: err}
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Unmarshal decodes a JSON object into the struct pointed to by v.
// Members without a key keep their current value; a null nullable
// temporal member is set to nil. Unknown keys are ignored. A member that
// has a key is replaced, not merged, so maps and nested structs hold only
// what the document carries. v is only written once every member has
// decoded.
func Unmarshal(ctx context.Context, data []byte, v any) error {
	rv, err := targetValue(v)
	if err != nil {
		return err
	}

	var raw map[string]gojson.RawMessage
	if err := gojson.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding json object: %w", err)
	}

	t := rv.Type()
	out := reflect.New(t).Elem()
	out.Set(rv)
	for _, f := range fieldsOf(t) {
		msg, ok := lookup(raw, f.name)
		if !ok {
			continue
		}
		fv := out.Field(f.index)

		if !f.kind.temporal() {
			// A fresh value keeps maps and pointers shared with v untouched
			// until every member has decoded.
			nv := reflect.New(fv.Type())
			if err := gojson.Unmarshal(msg, nv.Interface()); err != nil {
				return memberFailed(ctx, t, f.name, err)
			}
			fv.Set(nv.Elem())
			continue
		}

		if isJSONNull(msg) {
			if f.kind.nullable() {
				fv.Set(reflect.Zero(fv.Type()))
			}
			continue
		}
		var token string
		if err := gojson.Unmarshal(msg, &token); err != nil {
			return memberFailed(ctx, t, f.name, fmt.Errorf("%w: %s", ErrNotString, msg))
		}
		if err := decodeTemporal(fv, f.kind, token); err != nil {
			return memberFailed(ctx, t, f.name, err)
		}
	}
	rv.Set(out)
	return nil
}

func isJSONNull(msg []byte) bool {
	return bytes.Equal(bytes.TrimSpace(msg), []byte("null"))
}
