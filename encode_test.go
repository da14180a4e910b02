package convex_test

import (
	"math"
	"strings"
	"testing"

	convex "github.com/get-convex/convex-go"
)

func TestStrictModeRejectsCoercibleTypes(t *testing.T) {
	// ints coerce, but only when coercion is on
	if _, err := convex.ToJSON(17); err != nil {
		t.Fatalf("coercing mode should accept int: %v", err)
	}
	_, err := convex.ToJSONStrict(17)
	if err == nil {
		t.Fatalf("strict mode must reject int")
	}
	iss, _ := convex.AsIssues(err)
	if iss[0].Code != convex.CodeUnsupportedType {
		t.Fatalf("expected unsupported_type, got %v", err)
	}

	if _, err := convex.ToJSONStrict([]int{1}); err == nil {
		t.Fatalf("strict mode must reject typed slices")
	}
	if _, err := convex.ToJSONStrict(convex.Int64(17)); err != nil {
		t.Fatalf("strict mode must accept Int64: %v", err)
	}
}

func TestStrictModeAcceptsNativeJSONShapes(t *testing.T) {
	v := map[string]any{
		"null":  nil,
		"bool":  true,
		"num":   1.5,
		"str":   "x",
		"arr":   []any{1.5, "y"},
		"bytes": []byte("abc"),
	}
	if _, err := convex.ToJSONStrict(v); err != nil {
		t.Fatalf("ToJSONStrict: %v", err)
	}
	// an int hiding inside still fails
	v["arr"] = []any{1}
	if _, err := convex.ToJSONStrict(v); err == nil {
		t.Fatalf("nested int must fail strict mode")
	}
}

func TestUnsupportedTypeNamesTheOffender(t *testing.T) {
	_, err := convex.ToJSON(make(chan int))
	iss, ok := convex.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %T", err)
	}
	if !strings.Contains(iss[0].Message, "chan int") {
		t.Fatalf("message should name the type: %q", iss[0].Message)
	}
}

func TestPointerDeref(t *testing.T) {
	f := 1.5
	j, err := convex.ToJSON(&f)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if j != 1.5 {
		t.Fatalf("got %v", j)
	}
	var nilPtr *float64
	j, err = convex.ToJSON(nilPtr)
	if err != nil || j != nil {
		t.Fatalf("nil pointer should encode as null: %v, %v", j, err)
	}
}

func TestStructCoercion(t *testing.T) {
	type inner struct {
		Hidden string `json:"-"`
		Named  string `json:"renamed"`
	}
	type outer struct {
		In    inner `json:"in"`
		Count int   `convex:"name=total"`
	}
	v, err := convex.Coerce(outer{In: inner{Hidden: "x", Named: "y"}, Count: 3})
	if err != nil {
		t.Fatalf("Coerce: %v", err)
	}
	want := convex.Object{
		"in":    convex.Object{"renamed": convex.String("y")},
		"total": convex.Float64(3),
	}
	if !convex.Equal(v, want) {
		t.Fatalf("got %#v, want %#v", v, want)
	}
}

func TestMarshalCanonicalKeyOrder(t *testing.T) {
	b, err := convex.Marshal(map[string]any{"b": 2.0, "a": 1.0})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"a":1,"b":2}` {
		t.Fatalf("expected sorted keys, got %s", b)
	}
}

func TestNamedFloatSpecialValuesStillWrapped(t *testing.T) {
	type myFloat float64
	j, err := convex.ToJSON(myFloat(math.Inf(1)))
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	m, ok := j.(map[string]any)
	if !ok {
		t.Fatalf("expected wrapper, got %#v", j)
	}
	if _, ok := m["$float"]; !ok {
		t.Fatalf("expected $float wrapper, got %#v", j)
	}
}

func TestNumberStringsCoerced(t *testing.T) {
	// json.Number flows in when callers re-encode parsed documents
	doc, err := convex.DecodeFrom(convex.JSONBytes([]byte(`{"n": 17}`)))
	if err != nil {
		t.Fatalf("DecodeFrom: %v", err)
	}
	b, err := convex.MarshalStrict(doc)
	if err != nil {
		t.Fatalf("MarshalStrict: %v", err)
	}
	if string(b) != `{"n":17}` {
		t.Fatalf("got %s", b)
	}
}
