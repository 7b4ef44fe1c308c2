package codec

import (
	"context"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode writes documents with Core Deterministic Encoding (RFC 8949
// §4.2), so the same members always produce identical bytes.
var encMode cbor.EncMode

// decMode is lenient for forward compatibility.
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.CoreDetEncOptions()
	encOpts.TextMarshaler = cbor.TextMarshalerTextString
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:       cbor.DupMapKeyQuiet, // Last wins
		IndefLength:     cbor.IndefLengthAllowed,
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// MarshalCBOR encodes the struct v (or *v) as a CBOR map with text keys.
// Temporal members are CBOR text strings holding the same tokens Marshal
// writes; absent members are left out.
func MarshalCBOR(ctx context.Context, v any) ([]byte, error) {
	members, err := Members(ctx, v)
	if err != nil {
		return nil, err
	}

	doc := make(map[string]any, len(members))
	for _, m := range members {
		if m.Absent {
			continue
		}
		doc[m.Name] = m.Value
	}
	return encMode.Marshal(doc)
}

// UnmarshalCBOR decodes a CBOR map into the struct pointed to by v with
// the same rules as Unmarshal.
func UnmarshalCBOR(ctx context.Context, data []byte, v any) error {
	rv, err := targetValue(v)
	if err != nil {
		return err
	}

	var raw map[string]cbor.RawMessage
	if err := decMode.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding cbor map: %w", err)
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
			if err := decMode.Unmarshal(msg, nv.Interface()); err != nil {
				return memberFailed(ctx, t, f.name, err)
			}
			fv.Set(nv.Elem())
			continue
		}

		if isCBORNull(msg) {
			if f.kind.nullable() {
				fv.Set(reflect.Zero(fv.Type()))
			}
			continue
		}
		var token string
		if err := decMode.Unmarshal(msg, &token); err != nil {
			return memberFailed(ctx, t, f.name, fmt.Errorf("%w: %v", ErrNotString, err))
		}
		if err := decodeTemporal(fv, f.kind, token); err != nil {
			return memberFailed(ctx, t, f.name, err)
		}
	}
	rv.Set(out)
	return nil
}

// isCBORNull reports whether msg is the simple value null (0xf6) or
// undefined (0xf7).
func isCBORNull(msg cbor.RawMessage) bool {
	return len(msg) == 1 && (msg[0] == 0xf6 || msg[0] == 0xf7)
}
