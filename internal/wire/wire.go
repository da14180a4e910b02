// Package wire holds the byte-level details of the tagged JSON encoding:
// the closed tag namespace and the base64 little-endian packing used for
// int64 and special float64 payloads.
package wire

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
)

// The closed tag namespace. A conforming decoder rejects any other
// single-key object whose key starts with '$'.
const (
	TagBytes   = "$bytes"
	TagInteger = "$integer"
	TagFloat   = "$float"
	TagID      = "$id"
	TagSet     = "$set"
	TagMap     = "$map"
)

// IDSeparator joins the table name and the document key in the $id payload.
const IDSeparator = "|"

// IsSpecialFloat reports whether v cannot be carried as a bare JSON number:
// NaN, an infinity, or negative zero.
func IsSpecialFloat(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0) || (v == 0 && math.Signbit(v))
}

// PackInt64 returns the base64 encoding of the 8 little-endian bytes of the
// two's-complement i64.
func PackInt64(v int64) string {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	return base64.StdEncoding.EncodeToString(b[:])
}

// UnpackInt64 is the inverse of PackInt64.
func UnpackInt64(s string) (int64, error) {
	b, err := unpack8(s)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

// PackFloat64 returns the base64 encoding of the 8 little-endian bytes of the
// IEEE-754 double.
func PackFloat64(v float64) string {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	return base64.StdEncoding.EncodeToString(b[:])
}

// UnpackFloat64 is the inverse of PackFloat64. It does not check that the
// result is special; the decoder enforces that contract.
func UnpackFloat64(s string) (float64, error) {
	b, err := unpack8(s)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

func unpack8(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(b) != 8 {
		return nil, fmt.Errorf("expected 8 bytes, got %d", len(b))
	}
	return b, nil
}
