package convex

import (
	"encoding/hex"
	"fmt"
	"sort"

	json "github.com/goccy/go-json"
	"github.com/zeebo/blake3"

	"github.com/get-convex/convex-go/internal/wire"
)

// Canonicalization gives every Value a deterministic text form used for
// structural equality and for set/map deduplication. It matches the wire
// encoding except that set items and map entries are ordered by their own
// dedup keys, which makes the text insensitive to iteration order.

// canonicalText returns the canonical JSON text of v.
func canonicalText(v Value) (string, error) {
	j, err := canonicalJSON(v)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(j)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// dedupKey returns the hex BLAKE3 digest of the canonical text of v. The
// digest, not the text, is what containers index and sort by.
func dedupKey(v Value) (string, error) {
	t, err := canonicalText(v)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256([]byte(t))
	return hex.EncodeToString(sum[:]), nil
}

func canonicalJSON(v Value) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, fmt.Errorf("nil Value")
	case Null:
		return nil, nil
	case Bool:
		return bool(t), nil
	case Float64:
		if wire.IsSpecialFloat(float64(t)) {
			return map[string]any{wire.TagFloat: wire.PackFloat64(float64(t))}, nil
		}
		return float64(t), nil
	case String:
		return string(t), nil
	case Bytes:
		return map[string]any{wire.TagBytes: encodeBase64(t)}, nil
	case Int64:
		return map[string]any{wire.TagInteger: wire.PackInt64(int64(t))}, nil
	case ID:
		return map[string]any{wire.TagID: t.wireString()}, nil
	case Array:
		out := make([]any, len(t))
		for i, e := range t {
			j, err := canonicalJSON(e)
			if err != nil {
				return nil, err
			}
			out[i] = j
		}
		return out, nil
	case Object:
		out := make(map[string]any, len(t))
		for k, e := range t {
			j, err := canonicalJSON(e)
			if err != nil {
				return nil, err
			}
			out[k] = j
		}
		return out, nil
	case *Set:
		items := t.sortedItems()
		out := make([]any, len(items))
		for i, e := range items {
			j, err := canonicalJSON(e)
			if err != nil {
				return nil, err
			}
			out[i] = j
		}
		return map[string]any{wire.TagSet: out}, nil
	case *Map:
		entries := t.sortedEntries()
		out := make([]any, len(entries))
		for i, e := range entries {
			k, err := canonicalJSON(e.Key)
			if err != nil {
				return nil, err
			}
			val, err := canonicalJSON(e.Value)
			if err != nil {
				return nil, err
			}
			out[i] = []any{k, val}
		}
		return map[string]any{wire.TagMap: out}, nil
	default:
		return nil, fmt.Errorf("unknown Value variant %T", v)
	}
}

// sortByKey orders parallel key/payload slices by key. Shared by Set, Map
// and the wire decoder.
func sortByKey[T any](keys []string, payload []T) {
	idx := make([]int, len(keys))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return keys[idx[a]] < keys[idx[b]] })
	sortedKeys := make([]string, len(keys))
	sortedPayload := make([]T, len(payload))
	for i, j := range idx {
		sortedKeys[i] = keys[j]
		sortedPayload[i] = payload[j]
	}
	copy(keys, sortedKeys)
	copy(payload, sortedPayload)
}
