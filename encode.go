package convex

import (
	"encoding/base64"
	"fmt"
	"reflect"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/get-convex/convex-go/internal/wire"
)

// ToJSON converts a host value to a JSON-serializable tree (nil, bool,
// float64, string, []any, map[string]any), coercing host types without an
// exact canonical representation where an unambiguous mapping exists.
func ToJSON(v any) (any, error) { return ToJSONWith(v, EncodeOpt{Coerce: true}) }

// ToJSONStrict converts a value that must already be canonical; anything
// outside the round-trip tier fails with unsupported_type. Use it to
// validate rather than coerce.
func ToJSONStrict(v any) (any, error) { return ToJSONWith(v, EncodeOpt{}) }

// ToJSONWith converts with explicit options.
func ToJSONWith(v any, opt EncodeOpt) (any, error) {
	e := &encoder{opt: opt, max: opt.maxDepth()}
	return e.encode(v, "", 0)
}

// Marshal encodes a host value to canonical JSON bytes, coercing.
func Marshal(v any) ([]byte, error) { return MarshalWith(v, EncodeOpt{Coerce: true}) }

// MarshalStrict encodes an already-canonical value to JSON bytes.
func MarshalStrict(v any) ([]byte, error) { return MarshalWith(v, EncodeOpt{}) }

// MarshalWith encodes with explicit options.
func MarshalWith(v any, opt EncodeOpt) ([]byte, error) {
	j, err := ToJSONWith(v, opt)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: "marshal failed", Cause: err}}
	}
	return b, nil
}

// Coerce maps an arbitrary host value onto a canonical Value. Coercing an
// already-coerced value is a no-op on its canonical form.
func Coerce(v any) (Value, error) { return CoerceWith(v, EncodeOpt{Coerce: true}) }

// CoerceWith coerces with explicit options.
func CoerceWith(v any, opt EncodeOpt) (Value, error) {
	j, err := ToJSONWith(v, opt)
	if err != nil {
		return nil, err
	}
	return FromJSONWith(j, DecodeOpt{FieldNames: opt.FieldNames, MaxDepth: opt.MaxDepth})
}

// IsValue reports whether v is already canonical (round-trips unchanged).
func IsValue(v any) bool {
	_, err := ToJSONStrict(v)
	return err == nil
}

// IsCoercible reports whether v has any canonical representation.
func IsCoercible(v any) bool {
	_, err := ToJSON(v)
	return err == nil
}

type encoder struct {
	opt EncodeOpt
	max int
}

// encode dispatches in cascading tiers; the first matching tier wins.
func (e *encoder) encode(v any, path string, depth int) (any, error) {
	if depth > e.max {
		return nil, Issues{{Path: rootPath(path), Code: CodeMaxDepth,
			Message: fmt.Sprintf("value nests deeper than %d levels", e.max)}}
	}

	// 1. values which round-trip
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return t, nil
	case float64:
		return floatJSON(t), nil
	case string:
		return t, nil
	case []byte:
		return bytesJSON(t), nil
	case map[string]any:
		return e.object(reflect.ValueOf(t), path, depth)
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			j, err := e.encode(el, arrayPath(path, i), depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = j
		}
		return out, nil
	case Null:
		return nil, nil
	case Bool:
		return bool(t), nil
	case Float64:
		return floatJSON(float64(t)), nil
	case String:
		return string(t), nil
	case Bytes:
		return bytesJSON(t), nil
	case Int64:
		return map[string]any{wire.TagInteger: wire.PackInt64(int64(t))}, nil
	case ID:
		if iss := validateID(t, path); iss != nil {
			return nil, Issues{*iss}
		}
		return map[string]any{wire.TagID: t.wireString()}, nil
	case Array:
		out := make([]any, len(t))
		for i, el := range t {
			j, err := e.encode(el, arrayPath(path, i), depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = j
		}
		return out, nil
	case Object:
		return e.object(reflect.ValueOf(map[string]Value(t)), path, depth)
	case *Set:
		if t == nil {
			return nil, nil
		}
		// The wire form uses canonical order so encoding is a fixed point of
		// decode-then-encode; insertion order is a host-side view only.
		items := t.sortedItems()
		out := make([]any, len(items))
		for i, el := range items {
			j, err := e.encode(el, arrayPath(path, i), depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = j
		}
		return map[string]any{wire.TagSet: out}, nil
	case *Map:
		if t == nil {
			return nil, nil
		}
		entries := t.sortedEntries()
		out := make([]any, len(entries))
		for i, en := range entries {
			k, err := e.encode(en.Key, arrayPath(path, i), depth+1)
			if err != nil {
				return nil, err
			}
			val, err := e.encode(en.Value, arrayPath(path, i), depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = []any{k, val}
		}
		return map[string]any{wire.TagMap: out}, nil
	}

	if !e.opt.Coerce {
		return nil, e.unsupported(v, path)
	}

	// 2. common types that don't round-trip but have clear representations
	switch t := v.(type) {
	case int:
		return e.intFloat(int64(t), path)
	case int8:
		return e.intFloat(int64(t), path)
	case int16:
		return e.intFloat(int64(t), path)
	case int32:
		return e.intFloat(int64(t), path)
	case int64:
		return e.intFloat(t, path)
	case uint:
		return e.uintFloat(uint64(t), path)
	case uint8:
		return e.uintFloat(uint64(t), path)
	case uint16:
		return e.uintFloat(uint64(t), path)
	case uint32:
		return e.uintFloat(uint64(t), path)
	case uint64:
		return e.uintFloat(t, path)
	case float32:
		return floatJSON(float64(t)), nil
	case json.Number:
		return e.number(t, path)
	}

	// 3.+4. subclasses of the round-trip types, then structural capabilities
	// (buffer-like, mapping-like, sequence-like), resolved via reflection.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, nil
		}
		return e.encode(rv.Elem().Interface(), path, depth)
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Float32, reflect.Float64:
		return floatJSON(rv.Float()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return e.intFloat(rv.Int(), path)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return e.uintFloat(rv.Uint(), path)
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return bytesJSON(rv.Bytes()), nil
		}
		return e.sequence(rv, path, depth)
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			for i := range b {
				b[i] = byte(rv.Index(i).Uint())
			}
			return bytesJSON(b), nil
		}
		return e.sequence(rv, path, depth)
	case reflect.Map:
		return e.object(rv, path, depth)
	case reflect.Struct:
		return e.record(rv, path, depth)
	}

	return nil, e.unsupported(v, path)
}

func (e *encoder) unsupported(v any, path string) Issues {
	return Issues{{
		Path:    rootPath(path),
		Code:    CodeUnsupportedType,
		Message: fmt.Sprintf("%v of type %T is not a supported Convex type", v, v),
		Hint:    "see https://docs.convex.dev/using/types",
		Params:  map[string]any{"type": fmt.Sprintf("%T", v)},
	}}
}

func (e *encoder) intFloat(i int64, path string) (any, error) {
	if i < MinSafeInteger || i > MaxSafeInteger {
		return nil, Issues{{
			Path: rootPath(path),
			Code: CodeOutOfRange,
			Message: fmt.Sprintf(
				"integer %d is outside the range of a Convex Float64 (-2^53 to 2^53)", i),
			Hint:   "use a convex.Int64, which corresponds to a BigInt in JavaScript Convex functions",
			Params: map[string]any{"got": i},
		}}
	}
	return float64(i), nil
}

func (e *encoder) uintFloat(u uint64, path string) (any, error) {
	if u > MaxSafeInteger {
		return nil, Issues{{
			Path: rootPath(path),
			Code: CodeOutOfRange,
			Message: fmt.Sprintf(
				"integer %d is outside the range of a Convex Float64 (-2^53 to 2^53)", u),
			Hint:   "use a convex.Int64, which corresponds to a BigInt in JavaScript Convex functions",
			Params: map[string]any{"got": u},
		}}
	}
	return float64(u), nil
}

func (e *encoder) number(n json.Number, path string) (any, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		i, err := n.Int64()
		if err != nil {
			// Integral text that does not fit an int64 cannot fit a Float64
			// safely either.
			return nil, Issues{{Path: rootPath(path), Code: CodeOutOfRange,
				Message: fmt.Sprintf("integer %s is outside the range of a Convex Float64 (-2^53 to 2^53)", s),
				Params:  map[string]any{"got": s}}}
		}
		return e.intFloat(i, path)
	}
	f, err := n.Float64()
	if err != nil {
		return nil, Issues{{Path: rootPath(path), Code: CodeParseError,
			Message: fmt.Sprintf("invalid number %q", s), Cause: err}}
	}
	return floatJSON(f), nil
}

// object encodes any mapping with string-kind keys; non-string keys fail.
// Keys are visited in sorted order so issue paths are deterministic.
func (e *encoder) object(rv reflect.Value, path string, depth int) (any, error) {
	if rv.Type().Key().Kind() != reflect.String {
		mk := rv.MapKeys()
		var sample any
		if len(mk) > 0 {
			sample = mk[0].Interface()
		}
		return nil, Issues{{
			Path:    rootPath(path),
			Code:    CodeInvalidKey,
			Message: fmt.Sprintf("convex object keys must be strings, found %v", sample),
			Params:  map[string]any{"key": fmt.Sprintf("%v", sample)},
		}}
	}
	keys := make([]string, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		keys = append(keys, iter.Key().String())
	}
	sort.Strings(keys)
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if iss := validateField(k, e.opt.FieldNames, path); iss != nil {
			return nil, Issues{*iss}
		}
		el := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface()
		j, err := e.encode(el, fieldPath(path, k), depth+1)
		if err != nil {
			return nil, err
		}
		out[k] = j
	}
	return out, nil
}

// sequence encodes any non-byte slice or array.
func (e *encoder) sequence(rv reflect.Value, path string, depth int) (any, error) {
	// Convex arrays can have 8192 items maximum.
	// Let the server check this for now.
	out := make([]any, rv.Len())
	for i := range out {
		j, err := e.encode(rv.Index(i).Interface(), arrayPath(path, i), depth+1)
		if err != nil {
			return nil, err
		}
		out[i] = j
	}
	return out, nil
}

// record encodes a struct as an object using its exported fields.
func (e *encoder) record(rv reflect.Value, path string, depth int) (any, error) {
	rt := rv.Type()
	out := make(map[string]any, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := resolveStructKey(sf)
		if name == "-" {
			continue
		}
		if iss := validateField(name, e.opt.FieldNames, path); iss != nil {
			return nil, Issues{*iss}
		}
		j, err := e.encode(rv.Field(i).Interface(), fieldPath(path, name), depth+1)
		if err != nil {
			return nil, err
		}
		out[name] = j
	}
	return out, nil
}

func floatJSON(f float64) any {
	if wire.IsSpecialFloat(f) {
		return map[string]any{wire.TagFloat: wire.PackFloat64(f)}
	}
	return f
}

func bytesJSON(b []byte) any {
	return map[string]any{wire.TagBytes: encodeBase64(b)}
}

func encodeBase64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }
