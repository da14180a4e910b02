package convex

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/get-convex/convex-go/i18n"
)

var identifierRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

// validateField checks an object field name against the active grammar.
// Rules apply in order; the first failing rule determines the issue code.
// Both the encoder and the decoder call this, so a non-conforming sender
// cannot smuggle a reserved or malformed name past the model.
func validateField(key string, rule FieldNameRule, path string) *Issue {
	if key == "" {
		return fieldIssue(path, CodeEmptyField, "empty field names are disallowed", key)
	}
	maxLen := MaxFieldNameLenASCII
	if rule == FieldNameIdentifier {
		maxLen = MaxFieldNameLenIdentifier
	}
	if len(key) > maxLen {
		iss := fieldIssue(path, CodeTooLong,
			fmt.Sprintf("field name %q exceeds maximum field name length %d", key, maxLen), key)
		iss.Params["max"] = maxLen
		return iss
	}
	if strings.HasPrefix(key, "$") {
		return fieldIssue(path, CodeReservedPrefix,
			fmt.Sprintf("field name %q starts with a '$', which is reserved", key), key)
	}
	if rule == FieldNameIdentifier {
		if strings.Trim(key, "_") == "" {
			return fieldIssue(path, CodeInvalidFormat,
				fmt.Sprintf("field name %q must not be all underscores", key), key)
		}
		if !identifierRE.MatchString(key) {
			return fieldIssue(path, CodeInvalidFormat,
				fmt.Sprintf("field name %q must match an identifier", key), key)
		}
		return nil
	}
	for _, c := range key {
		// Non-control ASCII characters
		if c < 32 || c >= 127 {
			iss := fieldIssue(path, CodeInvalidChar,
				fmt.Sprintf("field name %q has invalid character %q: field names can only contain non-control ASCII characters", key, c), key)
			iss.Params["char"] = string(c)
			return iss
		}
	}
	return nil
}

func fieldIssue(path, code, msg, key string) *Issue {
	if msg == "" {
		msg = i18n.T(code, nil)
	}
	return &Issue{
		Path:    rootPath(path),
		Code:    code,
		Message: msg,
		Params:  map[string]any{"field": key},
	}
}
