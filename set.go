package convex

import (
	"github.com/get-convex/convex-go/i18n"
)

// Set is an immutable, deduplicated collection. Membership is defined by
// structural equality of the canonical encoding of items, not host identity.
// Host-side construction preserves insertion order for iteration; sets
// decoded from the wire iterate in dedup-key order instead, so two equal
// sets serialized by different senders decode to the same iteration order.
type Set struct {
	items []Value
	keys  []string
	index map[string]int
}

// NewSet builds a Set from items, snapshotting each one. Construction fails
// with duplicate_item if two items canonicalize identically.
func NewSet(items ...Value) (*Set, error) {
	s := &Set{
		items: make([]Value, 0, len(items)),
		keys:  make([]string, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for i, it := range items {
		it = cloneValue(it)
		key, err := dedupKey(it)
		if err != nil {
			return nil, Issues{{Path: arrayPath("", i), Code: CodeUnsupportedType, Message: i18n.T(CodeUnsupportedType, nil), Cause: err}}
		}
		if prev, ok := s.index[key]; ok {
			return nil, Issues{{
				Path:    arrayPath("", i),
				Code:    CodeDuplicateItem,
				Message: i18n.T(CodeDuplicateItem, nil),
				Params:  map[string]any{"index": i, "first": prev},
			}}
		}
		s.index[key] = len(s.items)
		s.items = append(s.items, it)
		s.keys = append(s.keys, key)
	}
	return s, nil
}

func (*Set) Kind() Kind { return KindSet }
func (*Set) isValue()   {}

// Len returns the number of items.
func (s *Set) Len() int { return len(s.items) }

// Values returns the items in iteration order. The result is a deep copy;
// mutating it cannot affect the set.
func (s *Set) Values() []Value {
	out := make([]Value, len(s.items))
	for i, it := range s.items {
		out[i] = cloneValue(it)
	}
	return out
}

// Contains reports whether an item with the same canonical encoding as v is
// in the set.
func (s *Set) Contains(v Value) bool {
	key, err := dedupKey(v)
	if err != nil {
		return false
	}
	_, ok := s.index[key]
	return ok
}

// sortedItems returns the items ordered by dedup key, for canonicalization.
func (s *Set) sortedItems() []Value {
	keys := append([]string(nil), s.keys...)
	items := append([]Value(nil), s.items...)
	sortByKey(keys, items)
	return items
}

// sortKeyOrder reorders the set in place into dedup-key order. Only the
// decoder calls this, before the set is published.
func (s *Set) sortKeyOrder() {
	sortByKey(s.keys, s.items)
	for i, k := range s.keys {
		s.index[k] = i
	}
}

// MapEntry is one key/value pair of a Map.
type MapEntry struct {
	Key   Value
	Value Value
}

// Map is an immutable association with arbitrary canonical values as keys.
// Key identity follows the same canonical-encoding rule as Set membership.
// Iteration order mirrors Set: insertion order for host-built maps,
// dedup-key order for maps decoded from the wire.
type Map struct {
	entries []MapEntry
	keys    []string
	index   map[string]int
}

// NewMap builds a Map from entries, snapshotting keys and values.
// Construction fails with duplicate_key if two keys canonicalize
// identically.
func NewMap(entries ...MapEntry) (*Map, error) {
	m := &Map{
		entries: make([]MapEntry, 0, len(entries)),
		keys:    make([]string, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		e = MapEntry{Key: cloneValue(e.Key), Value: cloneValue(e.Value)}
		key, err := dedupKey(e.Key)
		if err != nil {
			return nil, Issues{{Path: arrayPath("", i), Code: CodeUnsupportedType, Message: i18n.T(CodeUnsupportedType, nil), Cause: err}}
		}
		if prev, ok := m.index[key]; ok {
			return nil, Issues{{
				Path:    arrayPath("", i),
				Code:    CodeDuplicateKey,
				Message: i18n.T(CodeDuplicateKey, nil),
				Params:  map[string]any{"index": i, "first": prev},
			}}
		}
		m.index[key] = len(m.entries)
		m.entries = append(m.entries, e)
		m.keys = append(m.keys, key)
	}
	return m, nil
}

func (*Map) Kind() Kind { return KindMap }
func (*Map) isValue()   {}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.entries) }

// Entries returns the entries in iteration order as a deep copy.
func (m *Map) Entries() []MapEntry {
	out := make([]MapEntry, len(m.entries))
	for i, e := range m.entries {
		out[i] = MapEntry{Key: cloneValue(e.Key), Value: cloneValue(e.Value)}
	}
	return out
}

// Get looks up the value stored under a key with the same canonical
// encoding as key.
func (m *Map) Get(key Value) (Value, bool) {
	k, err := dedupKey(key)
	if err != nil {
		return nil, false
	}
	i, ok := m.index[k]
	if !ok {
		return nil, false
	}
	return cloneValue(m.entries[i].Value), true
}

// sortedEntries returns the entries ordered by key dedup key.
func (m *Map) sortedEntries() []MapEntry {
	keys := append([]string(nil), m.keys...)
	entries := append([]MapEntry(nil), m.entries...)
	sortByKey(keys, entries)
	return entries
}

// sortKeyOrder reorders the map in place into dedup-key order.
func (m *Map) sortKeyOrder() {
	sortByKey(m.keys, m.entries)
	for i, k := range m.keys {
		m.index[k] = i
	}
}
