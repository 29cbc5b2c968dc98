package textutil

import "unicode/utf8"

// Truncate shortens s to at most max runes, appending an ellipsis when text
// was removed. Limits too small for an ellipsis return the bare prefix.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
