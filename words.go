package germinal

import (
	"strings"
	"unicode"
)

// IsWordChar reports whether r belongs to a word for double-click
// selection: letters, digits and the configured exceptions.
func IsWordChar(r rune, exceptions string) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(exceptions, r)
}

// WordBounds returns the half-open column range [start, end) of the word
// containing col. ok is false when col is outside the line or not on a
// word character.
func WordBounds(line []rune, col int, exceptions string) (start, end int, ok bool) {
	if col < 0 || col >= len(line) || !IsWordChar(line[col], exceptions) {
		return 0, 0, false
	}
	start, end = col, col+1
	for start > 0 && IsWordChar(line[start-1], exceptions) {
		start--
	}
	for end < len(line) && IsWordChar(line[end], exceptions) {
		end++
	}
	return start, end, true
}
