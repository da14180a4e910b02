package convex_test

import (
	"math"
	"strings"
	"testing"

	convex "github.com/get-convex/convex-go"
	"github.com/get-convex/convex-go/internal/wire"
)

func expectDecodeError(t *testing.T, data, code string) {
	t.Helper()
	_, err := convex.Unmarshal([]byte(data))
	if err == nil {
		t.Fatalf("Unmarshal(%s): expected error", data)
	}
	iss, ok := convex.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %T", err)
	}
	if iss[0].Code != code {
		t.Fatalf("Unmarshal(%s): expected code %s, got %s (%v)", data, code, iss[0].Code, err)
	}
}

func TestSpecialFloatWrapping(t *testing.T) {
	b := mustMarshalStrict(t, convex.Float64(math.NaN()))
	if !strings.Contains(string(b), `"$float"`) {
		t.Fatalf("NaN must be wrapped, got %s", b)
	}
	b = mustMarshalStrict(t, convex.Float64(1.5))
	if string(b) != "1.5" {
		t.Fatalf("ordinary floats must be bare, got %s", b)
	}
}

func TestWrappedOrdinaryFloatRejected(t *testing.T) {
	// 1.5 is representable as a bare JSON number; wrapping it is a contract
	// violation by the sender.
	data := `{"$float": "` + wire.PackFloat64(1.5) + `"}`
	expectDecodeError(t, data, convex.CodeMalformedWire)
}

func TestUnknownTagRejected(t *testing.T) {
	expectDecodeError(t, `{"$bogus": 1}`, convex.CodeUnknownTag)
	expectDecodeError(t, `{"$a": 1}`, convex.CodeUnknownTag)
}

func TestMultiKeyDollarObjectIsNotATag(t *testing.T) {
	// Tags are always single-key; a multi-key object is a plain Object and
	// its field names are validated as such.
	expectDecodeError(t, `{"$float": "x", "$integer": "y"}`, convex.CodeReservedPrefix)
}

func TestMalformedTagShapes(t *testing.T) {
	expectDecodeError(t, `{"$bytes": 5}`, convex.CodeMalformedWire)
	expectDecodeError(t, `{"$bytes": "not base64!!"}`, convex.CodeMalformedWire)
	expectDecodeError(t, `{"$integer": "AAAA"}`, convex.CodeMalformedWire) // 3 bytes
	expectDecodeError(t, `{"$integer": ["x"]}`, convex.CodeMalformedWire)
	expectDecodeError(t, `{"$float": "AAAA"}`, convex.CodeMalformedWire)
	expectDecodeError(t, `{"$set": "abc"}`, convex.CodeMalformedWire)
	expectDecodeError(t, `{"$map": [[1.0]]}`, convex.CodeMalformedWire)
	expectDecodeError(t, `{"$map": [["k", 1.0, 2.0]]}`, convex.CodeMalformedWire)
}

func TestDecodedFieldNamesRevalidated(t *testing.T) {
	expectDecodeError(t, "{\"ok\": {\"bad\\u0001name\": 1.0}}", convex.CodeInvalidChar)
	expectDecodeError(t, `{"": 1.0}`, convex.CodeEmptyField)
}

func TestDecodeDepthLimit(t *testing.T) {
	deep := strings.Repeat("[", 100) + strings.Repeat("]", 100)
	expectDecodeError(t, deep, convex.CodeMaxDepth)

	shallow := strings.Repeat("[", 10) + strings.Repeat("]", 10)
	if _, err := convex.Unmarshal([]byte(shallow)); err != nil {
		t.Fatalf("10 levels should decode: %v", err)
	}

	// a negative MaxDepth disables the check
	_, err := convex.UnmarshalWith([]byte(deep), convex.DecodeOpt{MaxDepth: -1})
	if err != nil {
		t.Fatalf("disabled depth check should decode: %v", err)
	}
}

func TestEncodeDepthLimit(t *testing.T) {
	var v any = 1.5
	for i := 0; i < 100; i++ {
		v = []any{v}
	}
	_, err := convex.ToJSON(v)
	if err == nil {
		t.Fatalf("expected max_depth")
	}
	iss, _ := convex.AsIssues(err)
	if iss[0].Code != convex.CodeMaxDepth {
		t.Fatalf("expected max_depth, got %v", err)
	}
}

func TestDecodeScalars(t *testing.T) {
	cases := []struct {
		data string
		kind convex.Kind
	}{
		{`null`, convex.KindNull},
		{`true`, convex.KindBool},
		{`1.25`, convex.KindFloat64},
		{`17`, convex.KindFloat64},
		{`"hi"`, convex.KindString},
		{`[1.0, 2.0]`, convex.KindArray},
		{`{"a": 1.0}`, convex.KindObject},
		{`{"$bytes": "YWJj"}`, convex.KindBytes},
		{`{"$id": "messages|abc123"}`, convex.KindID},
	}
	for _, tc := range cases {
		v, err := convex.Unmarshal([]byte(tc.data))
		if err != nil {
			t.Fatalf("Unmarshal(%s): %v", tc.data, err)
		}
		if v.Kind() != tc.kind {
			t.Fatalf("Unmarshal(%s): kind %v, want %v", tc.data, v.Kind(), tc.kind)
		}
	}
}

func TestBareIntegerTokensMustBeExact(t *testing.T) {
	// 2^53 is the last contiguous integer; 2^53+1 rounds and must fail the
	// same way an integral YAML scalar does.
	v, err := convex.Unmarshal([]byte(`9007199254740992`))
	if err != nil {
		t.Fatalf("exact boundary integer should decode: %v", err)
	}
	if float64(v.(convex.Float64)) != 9007199254740992 {
		t.Fatalf("got %v", v)
	}
	expectDecodeError(t, `9007199254740993`, convex.CodeOutOfRange)

	// large doubles serialized as integer tokens stay legal when exact
	v, err = convex.Unmarshal([]byte(`100000000000000000000`))
	if err != nil {
		t.Fatalf("exact large integer token should decode: %v", err)
	}
	if float64(v.(convex.Float64)) != 1e20 {
		t.Fatalf("got %v", v)
	}
}

func TestDecodeInvalidJSON(t *testing.T) {
	expectDecodeError(t, `{`, convex.CodeParseError)
}

func TestIssuePathsPointAtOffendingValue(t *testing.T) {
	_, err := convex.Unmarshal([]byte(`{"a": [1.0, {"$nope": 1}]}`))
	iss, ok := convex.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %v", err)
	}
	if iss[0].Path != "/a/1" {
		t.Fatalf("expected path /a/1, got %q", iss[0].Path)
	}
}
