package convex

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/get-convex/convex-go/internal/wire"
)

// Unmarshal parses JSON bytes and decodes them into a canonical Value.
func Unmarshal(data []byte) (Value, error) {
	return UnmarshalWith(data, DecodeOpt{})
}

// UnmarshalWith parses and decodes with explicit options.
func UnmarshalWith(data []byte, opt DecodeOpt) (Value, error) {
	j, err := parseJSONDocument(data)
	if err != nil {
		return nil, err
	}
	return FromJSONWith(j, opt)
}

// FromJSON decodes a JSON-shaped tree (as produced by a generic JSON
// parser) into a canonical Value. It is the strict inverse of ToJSON:
// scalars pass through, arrays and objects recurse, and single-key objects
// whose key starts with '$' dispatch to the matching special decoder. An
// unrecognized '$'-prefixed key is a hard error; the tag namespace is
// closed.
func FromJSON(j any) (Value, error) { return FromJSONWith(j, DecodeOpt{}) }

// FromJSONWith decodes with explicit options.
func FromJSONWith(j any, opt DecodeOpt) (Value, error) {
	d := &decoder{opt: opt, max: opt.maxDepth()}
	return d.decode(j, "", 0)
}

type decoder struct {
	opt DecodeOpt
	max int
}

func (d *decoder) decode(j any, path string, depth int) (Value, error) {
	if depth > d.max {
		return nil, Issues{{Path: rootPath(path), Code: CodeMaxDepth,
			Message: fmt.Sprintf("document nests deeper than %d levels", d.max)}}
	}

	switch t := j.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(t), nil
	case float64:
		return Float64(t), nil
	case string:
		return String(t), nil
	case json.Number:
		s := t.String()
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, Issues{{Path: rootPath(path), Code: CodeParseError,
				Message: fmt.Sprintf("invalid number %q", s), Cause: err}}
		}
		// The backend serializes exact large doubles as bare integer tokens,
		// so integral text beyond ±2^53 is legal as long as no precision is
		// lost. A token that does not survive the round through float64 is
		// rejected rather than silently rounded.
		if !strings.ContainsAny(s, ".eE") && strconv.FormatFloat(f, 'f', -1, 64) != s {
			return nil, d.bareIntRange(s, path)
		}
		return Float64(f), nil
	case int:
		// YAML sources surface integral scalars as ints.
		return d.bareInt(int64(t), path)
	case int64:
		return d.bareInt(t, path)
	case uint64:
		if t > MaxSafeInteger {
			return nil, d.bareIntRange(fmt.Sprintf("%d", t), path)
		}
		return Float64(t), nil
	case []any:
		out := make(Array, len(t))
		for i, el := range t {
			v, err := d.decode(el, arrayPath(path, i), depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case map[string]any:
		if len(t) == 1 {
			for k, payload := range t {
				if len(k) > 0 && k[0] == '$' {
					return d.tagged(k, payload, path, depth)
				}
			}
		}
		out := make(Object, len(t))
		for k, el := range t {
			// Field names were presumably valid when encoded; re-check anyway
			// to reject a non-conforming sender.
			if iss := validateField(k, d.opt.FieldNames, path); iss != nil {
				return nil, Issues{*iss}
			}
			v, err := d.decode(el, fieldPath(path, k), depth+1)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	default:
		return nil, Issues{{Path: rootPath(path), Code: CodeMalformedWire,
			Message: fmt.Sprintf("bad JSON value %v of type %T", j, j),
			Params:  map[string]any{"type": fmt.Sprintf("%T", j)}}}
	}
}

func (d *decoder) bareInt(i int64, path string) (Value, error) {
	if i < MinSafeInteger || i > MaxSafeInteger {
		return nil, d.bareIntRange(fmt.Sprintf("%d", i), path)
	}
	return Float64(i), nil
}

func (d *decoder) bareIntRange(got, path string) error {
	return Issues{{Path: rootPath(path), Code: CodeOutOfRange,
		Message: fmt.Sprintf("integer %s is outside the range of a Convex Float64 (-2^53 to 2^53)", got),
		Params:  map[string]any{"got": got}}}
}

// tagged decodes a single-key {"$tag": payload} object.
func (d *decoder) tagged(tag string, payload any, path string, depth int) (Value, error) {
	switch tag {
	case wire.TagBytes:
		s, ok := payload.(string)
		if !ok {
			return nil, d.malformed(tag, path, "payload must be a base64 string", nil)
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, d.malformed(tag, path, "invalid base64 payload", err)
		}
		return Bytes(b), nil
	case wire.TagInteger:
		s, ok := payload.(string)
		if !ok {
			return nil, d.malformed(tag, path, "payload must be a base64 string", nil)
		}
		i, err := wire.UnpackInt64(s)
		if err != nil {
			return nil, d.malformed(tag, path, "payload must be 8 little-endian bytes", err)
		}
		return Int64(i), nil
	case wire.TagFloat:
		s, ok := payload.(string)
		if !ok {
			return nil, d.malformed(tag, path, "payload must be a base64 string", nil)
		}
		f, err := wire.UnpackFloat64(s)
		if err != nil {
			return nil, d.malformed(tag, path, "payload must be 8 little-endian bytes", err)
		}
		// The wrapper is reserved for values JSON cannot carry natively; a
		// bare-representable double arriving wrapped indicates a corrupted or
		// malicious payload.
		if !wire.IsSpecialFloat(f) {
			return nil, d.malformed(tag, path, fmt.Sprintf("not a special float: %v", f), nil)
		}
		return Float64(f), nil
	case wire.TagID:
		s, ok := payload.(string)
		if !ok {
			return nil, d.malformed(tag, path, "payload must be a string", nil)
		}
		id, ok := parseIDPayload(s)
		if !ok {
			return nil, d.malformed(tag, path,
				fmt.Sprintf("reference %q must contain exactly one %q separator", s, wire.IDSeparator), nil)
		}
		return id, nil
	case wire.TagSet:
		arr, ok := payload.([]any)
		if !ok {
			return nil, d.malformed(tag, path, "payload must be an array", nil)
		}
		items := make([]Value, len(arr))
		for i, el := range arr {
			v, err := d.decode(el, arrayPath(path, i), depth+1)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		s, err := NewSet(items...)
		if err != nil {
			return nil, prefixIssues(err, path)
		}
		// Re-sort by dedup key for canonical, sender-independent iteration.
		s.sortKeyOrder()
		return s, nil
	case wire.TagMap:
		arr, ok := payload.([]any)
		if !ok {
			return nil, d.malformed(tag, path, "payload must be an array of [key, value] pairs", nil)
		}
		entries := make([]MapEntry, len(arr))
		for i, el := range arr {
			pair, ok := el.([]any)
			if !ok || len(pair) != 2 {
				return nil, d.malformed(tag, arrayPath(path, i), "entry must be a [key, value] pair", nil)
			}
			k, err := d.decode(pair[0], arrayPath(arrayPath(path, i), 0), depth+1)
			if err != nil {
				return nil, err
			}
			v, err := d.decode(pair[1], arrayPath(arrayPath(path, i), 1), depth+1)
			if err != nil {
				return nil, err
			}
			entries[i] = MapEntry{Key: k, Value: v}
		}
		m, err := NewMap(entries...)
		if err != nil {
			return nil, prefixIssues(err, path)
		}
		m.sortKeyOrder()
		return m, nil
	default:
		return nil, Issues{{
			Path:    rootPath(path),
			Code:    CodeUnknownTag,
			Message: fmt.Sprintf("unknown wire tag %q", tag),
			Params:  map[string]any{"tag": tag},
		}}
	}
}

func (d *decoder) malformed(tag, path, msg string, cause error) Issues {
	return Issues{{
		Path:    rootPath(path),
		Code:    CodeMalformedWire,
		Message: fmt.Sprintf("%s: %s", tag, msg),
		Cause:   cause,
		Params:  map[string]any{"tag": tag},
	}}
}

// prefixIssues rebases issue paths produced by a nested constructor onto the
// decoder's current location.
func prefixIssues(err error, path string) error {
	if path == "" {
		return err
	}
	iss, ok := AsIssues(err)
	if !ok {
		return err
	}
	out := make(Issues, len(iss))
	for i, it := range iss {
		p := it.Path
		if p == "/" {
			p = ""
		}
		it.Path = path + p
		out[i] = it
	}
	return out
}

// parseJSONDocument parses bytes into a JSON-shaped tree, preserving
// numeric text as json.Number until the model interprets it.
func parseJSONDocument(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: "invalid JSON document", Cause: err}}
	}
	return out, nil
}
