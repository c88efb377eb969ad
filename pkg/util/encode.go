package util

import (
	"encoding/base64"
	"strings"
)

// EncodeURLSafe converts bytes to a URL-embeddable base64 string: the
// standard alphabet's '+' and '/' become '-' and '_', and trailing padding
// is stripped so the value can live in a URL path segment.
func EncodeURLSafe(b []byte) string {
	s := base64.StdEncoding.EncodeToString(b)
	s = strings.ReplaceAll(s, "+", "-")
	s = strings.ReplaceAll(s, "/", "_")
	return strings.TrimRight(s, "=")
}

// DecodeURLSafe is the exact inverse of EncodeURLSafe: it restores padding
// to a multiple-of-4 length, reverses the alphabet substitution, and decodes.
func DecodeURLSafe(s string) ([]byte, error) {
	t := strings.ReplaceAll(s, "-", "+")
	t = strings.ReplaceAll(t, "_", "/")
	if m := len(t) % 4; m != 0 {
		t += strings.Repeat("=", 4-m)
	}
	return base64.StdEncoding.DecodeString(t)
}
