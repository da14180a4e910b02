package convex

// Kind identifies the variant of a canonical Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindFloat64
	KindString
	KindBytes
	KindArray
	KindObject
	KindInt64
	KindID
	KindSet
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindInt64:
		return "int64"
	case KindID:
		return "id"
	case KindSet:
		return "set"
	case KindMap:
		return "map"
	default:
		return "invalid"
	}
}

// Value is the closed set of types the backend accepts and returns.
// The variants are Null, Bool, Float64, String, Bytes, Array, Object,
// Int64, ID, *Set and *Map; no other implementations exist.
type Value interface {
	Kind() Kind
	isValue()
}

// Null is the canonical null value.
type Null struct{}

// Bool is a canonical boolean.
type Bool bool

// Float64 is a canonical IEEE-754 double. NaN, the infinities and negative
// zero are legal values; the wire codec gives them a tagged encoding.
type Float64 float64

// String is a canonical UTF-8 string.
type String string

// Bytes is a canonical byte string.
type Bytes []byte

// Array is a canonical ordered sequence.
type Array []Value

// Object is a canonical string-keyed record. Keys are validated against the
// active FieldNameRule when the object is encoded or decoded.
type Object map[string]Value

// Int64 is a canonical 64-bit signed integer. Unlike host integers, which
// coerce to Float64, an Int64 round-trips through the wire as a BigInt.
type Int64 int64

func (Null) Kind() Kind    { return KindNull }
func (Bool) Kind() Kind    { return KindBool }
func (Float64) Kind() Kind { return KindFloat64 }
func (String) Kind() Kind  { return KindString }
func (Bytes) Kind() Kind   { return KindBytes }
func (Array) Kind() Kind   { return KindArray }
func (Object) Kind() Kind  { return KindObject }
func (Int64) Kind() Kind   { return KindInt64 }

func (Null) isValue()    {}
func (Bool) isValue()    {}
func (Float64) isValue() {}
func (String) isValue()  {}
func (Bytes) isValue()   {}
func (Array) isValue()   {}
func (Object) isValue()  {}
func (Int64) isValue()   {}

// Equal reports whether two canonical values are structurally equal, i.e.
// their canonical encodings are identical. Set and Map comparison is
// insensitive to iteration order. Values that cannot be canonicalized
// compare unequal.
func Equal(a, b Value) bool {
	ka, err := canonicalText(a)
	if err != nil {
		return false
	}
	kb, err := canonicalText(b)
	if err != nil {
		return false
	}
	return ka == kb
}

// cloneValue deep-copies mutable variants so containers can snapshot their
// members at construction time. Sets and maps are immutable already and are
// shared as-is.
func cloneValue(v Value) Value {
	switch t := v.(type) {
	case Bytes:
		out := make(Bytes, len(t))
		copy(out, t)
		return out
	case Array:
		out := make(Array, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case Object:
		out := make(Object, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
