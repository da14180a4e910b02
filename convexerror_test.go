package convex_test

import (
	"testing"

	convex "github.com/get-convex/convex-go"
)

func TestConvexErrorStringData(t *testing.T) {
	err := convex.NewConvexError(convex.String("boom"))
	if err.Error() != "boom" {
		t.Fatalf("got %q", err.Error())
	}
}

func TestConvexErrorStructuredData(t *testing.T) {
	err := convex.NewConvexError(convex.Object{"code": convex.Float64(42)})
	if err.Error() != `{"code":42}` {
		t.Fatalf("got %q", err.Error())
	}
	if !convex.Equal(err.Data, convex.Object{"code": convex.Float64(42)}) {
		t.Fatalf("data not preserved")
	}
}
