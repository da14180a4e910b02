package convex

import (
	"reflect"
	"strings"
)

// resolveStructKey applies the repository-wide rule to resolve a struct
// field's object key when a record coerces to an Object.
// Priority: convex:"name=..." > json tag name > field name; "-" disables the
// field.
func resolveStructKey(sf reflect.StructField) string {
	if ct := sf.Tag.Get("convex"); ct != "" {
		for _, p := range strings.Split(ct, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}
