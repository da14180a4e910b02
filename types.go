package convex

// FieldNameRule selects which object field-name grammar is enforced.
// The backend has used two revisions; pick explicitly rather than merging.
type FieldNameRule int

const (
	// FieldNameASCII allows any non-empty printable ASCII name (code points
	// 32..126) up to 1024 bytes, not starting with '$'.
	FieldNameASCII FieldNameRule = iota
	// FieldNameIdentifier additionally requires an identifier shape
	// ([A-Za-z_][A-Za-z0-9_]{0,63}), at most 64 bytes and not all underscores.
	FieldNameIdentifier
)

// Numeric bounds of the value model.
const (
	MinInt64 = -1 << 63
	MaxInt64 = 1<<63 - 1

	// Integers promoted to Float64 must be exactly representable in an IEEE-754
	// double. `Number.MIN_SAFE_INTEGER` and `Number.MAX_SAFE_INTEGER` in
	// JavaScript are one closer to zero, but these 2 extra values can be safely
	// serialized.
	MinSafeInteger = -(1 << 53)
	MaxSafeInteger = 1 << 53
)

// Field-name length ceilings per grammar revision.
const (
	MaxFieldNameLenASCII      = 1024
	MaxFieldNameLenIdentifier = 64
)

// Advertised collection ceilings. Enforcement is delegated to the server;
// they are exported so callers can pre-check before a request.
const (
	MaxArrayLen     = 8192
	MaxObjectFields = 1024
)

// DefaultMaxDepth bounds recursion over nested documents. Zero in an option
// struct means "use this default"; negative disables the check.
const DefaultMaxDepth = 64

// EncodeOpt bundles encoding options.
type EncodeOpt struct {
	// Coerce enables the non-round-trip tiers (host integers, typed slices,
	// reflection-based structural conversion). When false only values already
	// in the canonical set are accepted.
	Coerce     bool
	FieldNames FieldNameRule
	MaxDepth   int
}

// DecodeOpt bundles wire-decoding options.
type DecodeOpt struct {
	FieldNames FieldNameRule
	MaxDepth   int
}

func (o EncodeOpt) maxDepth() int { return normalizeDepth(o.MaxDepth) }
func (o DecodeOpt) maxDepth() int { return normalizeDepth(o.MaxDepth) }

func normalizeDepth(d int) int {
	switch {
	case d == 0:
		return DefaultMaxDepth
	case d < 0:
		return int(^uint(0) >> 1)
	default:
		return d
	}
}
