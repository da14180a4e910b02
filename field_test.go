package convex_test

import (
	"strings"
	"testing"

	convex "github.com/get-convex/convex-go"
)

func encodeObjectKey(key string, rule convex.FieldNameRule) error {
	_, err := convex.ToJSONWith(map[string]any{key: 1.0}, convex.EncodeOpt{Coerce: true, FieldNames: rule})
	return err
}

func expectFieldCode(t *testing.T, err error, code string) {
	t.Helper()
	if code == "" {
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected code %s, got nil", code)
	}
	iss, ok := convex.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %T", err)
	}
	if iss[0].Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, iss[0].Code, err)
	}
}

func TestFieldNamesASCII(t *testing.T) {
	cases := []struct {
		key  string
		code string
	}{
		{"a", ""},
		{"_creationTime", ""},
		{"with space", ""}, // printable ASCII is fine in the loose grammar
		{"a~b/c", ""},
		{"", convex.CodeEmptyField},
		{strings.Repeat("x", 1025), convex.CodeTooLong},
		{strings.Repeat("x", 1024), ""},
		{"$a", convex.CodeReservedPrefix},
		{"héllo", convex.CodeInvalidChar},
		{"tab\tchar", convex.CodeInvalidChar},
	}
	for _, tc := range cases {
		expectFieldCode(t, encodeObjectKey(tc.key, convex.FieldNameASCII), tc.code)
	}
}

func TestFieldNamesIdentifier(t *testing.T) {
	cases := []struct {
		key  string
		code string
	}{
		{"a", ""},
		{"_creationTime", ""},
		{"abc_123", ""},
		{strings.Repeat("x", 64), ""},
		{"", convex.CodeEmptyField},
		{strings.Repeat("x", 65), convex.CodeTooLong},
		{"$a", convex.CodeReservedPrefix},
		{"9lives", convex.CodeInvalidFormat},
		{"with space", convex.CodeInvalidFormat},
		{"_", convex.CodeInvalidFormat},
		{"____", convex.CodeInvalidFormat},
	}
	for _, tc := range cases {
		expectFieldCode(t, encodeObjectKey(tc.key, convex.FieldNameIdentifier), tc.code)
	}
}

func TestRuleOrderingFirstFailureWins(t *testing.T) {
	// an over-long name that also starts with '$' reports too_long
	key := "$" + strings.Repeat("x", 2000)
	expectFieldCode(t, encodeObjectKey(key, convex.FieldNameASCII), convex.CodeTooLong)
}

func TestDecodeHonorsFieldNameRule(t *testing.T) {
	data := []byte(`{"with space": 1.0}`)
	if _, err := convex.Unmarshal(data); err != nil {
		t.Fatalf("loose grammar should accept: %v", err)
	}
	_, err := convex.UnmarshalWith(data, convex.DecodeOpt{FieldNames: convex.FieldNameIdentifier})
	expectFieldCode(t, err, convex.CodeInvalidFormat)
}
