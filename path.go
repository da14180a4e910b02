package convex

import (
	"strconv"
	"strings"
)

// JSON Pointer (RFC 6901) path building for Issue locations.

func fieldPath(base, name string) string {
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return base + "/" + esc
}

func arrayPath(base string, i int) string {
	return base + "/" + strconv.Itoa(i)
}

func rootPath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
