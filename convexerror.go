package convex

// ConvexError is an application-level error thrown by a Convex function,
// carrying a canonical Value as structured data.
type ConvexError struct {
	Data Value
}

// NewConvexError wraps data in a ConvexError.
func NewConvexError(data Value) *ConvexError { return &ConvexError{Data: data} }

// Error renders string data directly and everything else as canonical JSON.
func (e *ConvexError) Error() string {
	if s, ok := e.Data.(String); ok {
		return string(s)
	}
	b, err := MarshalStrict(e.Data)
	if err != nil {
		return "convex error"
	}
	return string(b)
}
