// Package util provides small string and path helpers shared across the
// importer.
package util

import (
	"path/filepath"
	"strings"
	"unicode"
)

// StripDigits removes every decimal digit from a string. Joint and marker
// names carry a numeric import suffix; stripping digits recovers the base
// name regardless of the counter value.
func StripDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return -1
		}
		return r
	}, s)
}

// ReplaceExt swaps the extension of a path, keeping the directory and stem.
// newExt must include the leading dot.
func ReplaceExt(path, newExt string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + newExt
}
