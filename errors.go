package convex

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeUnsupportedType = "unsupported_type"
	CodeOutOfRange      = "out_of_range"
	CodeDuplicateItem   = "duplicate_item"
	CodeDuplicateKey    = "duplicate_key"
	// Field-name rule violations (ordered: first failing rule wins).
	CodeEmptyField     = "empty_field"
	CodeTooLong        = "too_long"
	CodeReservedPrefix = "reserved_prefix"
	CodeInvalidFormat  = "invalid_format"
	CodeInvalidChar    = "invalid_char"
	CodeInvalidKey     = "invalid_key"
	// Wire decoding violations ($-tag namespace misuse).
	CodeUnknownTag    = "unknown_tag"
	CodeMalformedWire = "malformed_wire"
	// Traversal limits and reader failures.
	CodeMaxDepth   = "max_depth"
	CodeParseError = "parse_error"
)

// Issue represents a single encoding or decoding failure.
type Issue struct {
	Path    string // JSON Pointer into the offending document (for example: /items/2).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"max":64, "got":"$a"})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of value-model errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. unsupported_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// IssueAt creates an Issue at the given JSON-pointer path with provided code,
// message and params map. Convenience for call sites with many parameters.
func IssueAt(path, code, msg string, params map[string]any) Issue {
	return Issue{Path: path, Code: code, Message: msg, Params: params}
}
