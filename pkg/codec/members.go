package codec

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mash-protocol/mash-text/pkg/temporal"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	SetLogger(nil)
}

// SetLogger sets the logger used for debug records about suppressed and
// undecodable members. Nil discards them.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger.Store(l)
}

// memberKind classifies how a field is encoded.
type memberKind uint8

const (
	kindValue memberKind = iota
	kindDuration
	kindDurationPtr
	kindTime
	kindTimePtr
)

var (
	durationType = reflect.TypeFor[time.Duration]()
	timeType     = reflect.TypeFor[time.Time]()
)

func kindOf(t reflect.Type) memberKind {
	switch t {
	case durationType:
		return kindDuration
	case timeType:
		return kindTime
	case reflect.PointerTo(durationType):
		return kindDurationPtr
	case reflect.PointerTo(timeType):
		return kindTimePtr
	default:
		return kindValue
	}
}

func (k memberKind) temporal() bool {
	return k != kindValue
}

func (k memberKind) nullable() bool {
	return k == kindDurationPtr || k == kindTimePtr
}

type fieldInfo struct {
	name      string
	index     int
	kind      memberKind
	omitEmpty bool
}

// typeCache maps a struct reflect.Type to its []fieldInfo.
var typeCache sync.Map

func fieldsOf(t reflect.Type) []fieldInfo {
	if cached, ok := typeCache.Load(t); ok {
		return cached.([]fieldInfo)
	}

	fields := make([]fieldInfo, 0, t.NumField())
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = sf.Name
		}
		fields = append(fields, fieldInfo{
			name:      name,
			index:     i,
			kind:      kindOf(sf.Type),
			omitEmpty: hasOption(opts, "omitempty"),
		})
	}

	cached, _ := typeCache.LoadOrStore(t, fields)
	return cached.([]fieldInfo)
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == want {
			return true
		}
	}
	return false
}

// Member is one struct member as handed to a document writer.
type Member struct {
	Name string

	// Value is the string token for temporal members and the field value
	// otherwise. It is nil when Absent is set.
	Value any

	// Absent is set for nil nullable temporal members and for empty
	// members tagged omitempty. Absent members have no key in the output.
	Absent bool
}

// Members lists the members of the struct v (or *v) in declaration order,
// with temporal members already formatted in the modes active in ctx.
func Members(ctx context.Context, v any) ([]Member, error) {
	rv, err := structValue(v)
	if err != nil {
		return nil, err
	}

	fields := fieldsOf(rv.Type())
	members := make([]Member, 0, len(fields))
	for _, f := range fields {
		fv := rv.Field(f.index)
		m := Member{Name: f.name}

		switch f.kind {
		case kindDuration:
			m.Value = temporal.FormatDuration(ctx, time.Duration(fv.Int()))
			m.Absent = f.omitEmpty && fv.Int() == 0
		case kindTime:
			m.Value = temporal.FormatOffsetTime(ctx, fv.Interface().(time.Time))
		case kindDurationPtr:
			m.Value, m.Absent = formatPresent(temporal.FormatDurationPtr(ctx, fv.Interface().(*time.Duration)))
		case kindTimePtr:
			m.Value, m.Absent = formatPresent(temporal.FormatOffsetTimePtr(ctx, fv.Interface().(*time.Time)))
		default:
			m.Value = fv.Interface()
			m.Absent = f.omitEmpty && isEmptyValue(fv)
		}

		if m.Absent {
			m.Value = nil
			if f.kind.nullable() {
				logger.Load().LogAttrs(ctx, slog.LevelDebug, "omitting absent member",
					slog.String("type", rv.Type().String()),
					slog.String("member", f.name),
				)
			}
		}
		members = append(members, m)
	}
	return members, nil
}

func formatPresent(token string, ok bool) (any, bool) {
	if !ok {
		return nil, true
	}
	return token, false
}

func structValue(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, ErrNilPointer
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: %T", ErrNotStruct, v)
	}
	return rv, nil
}

// targetValue returns the addressable struct behind the pointer v.
func targetValue(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return reflect.Value{}, fmt.Errorf("%w: decode target %T is not a pointer", ErrNotStruct, v)
	}
	if rv.IsNil() {
		return reflect.Value{}, ErrNilPointer
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: %T", ErrNotStruct, v)
	}
	return rv, nil
}

// decodeTemporal parses token into the temporal field fv.
func decodeTemporal(fv reflect.Value, kind memberKind, token string) error {
	switch kind {
	case kindDuration, kindDurationPtr:
		d, err := temporal.ParseDuration(token)
		if err != nil {
			return err
		}
		if kind == kindDurationPtr {
			fv.Set(reflect.ValueOf(&d))
		} else {
			fv.SetInt(int64(d))
		}
	case kindTime, kindTimePtr:
		t, err := temporal.ParseOffsetTime(token)
		if err != nil {
			return err
		}
		if kind == kindTimePtr {
			fv.Set(reflect.ValueOf(&t))
		} else {
			fv.Set(reflect.ValueOf(t))
		}
	}
	return nil
}

// lookup finds the raw value for name, preferring an exact key match and
// falling back to a case-insensitive one. Among several case-insensitive
// matches the key that sorts first wins.
func lookup[R any](raw map[string]R, name string) (R, bool) {
	if r, ok := raw[name]; ok {
		return r, true
	}
	var (
		best  string
		found bool
	)
	for k := range raw {
		if strings.EqualFold(k, name) && (!found || k < best) {
			best, found = k, true
		}
	}
	if !found {
		var zero R
		return zero, false
	}
	return raw[best], true
}

func memberFailed(ctx context.Context, t reflect.Type, name string, err error) error {
	logger.Load().LogAttrs(ctx, slog.LevelDebug, "member decode failed",
		slog.String("type", t.String()),
		slog.String("member", name),
		slog.String("error", err.Error()),
	)
	return &MemberError{Member: name, Err: err}
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
