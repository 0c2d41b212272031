// Package unicode provides scalar-aware string helpers used by the
// condition matcher, which operates on Unicode scalar values rather than
// raw bytes.
package unicode

import "unicode/utf8"

// Scalars decodes s into its sequence of runes. Invalid byte sequences
// decode as utf8.RuneError, one byte consumed at a time, matching
// utf8.DecodeRuneInString's own recovery behavior rather than failing the
// whole string: a stem with a stray invalid byte should still be usable by
// rules that don't touch that byte.
func Scalars(s string) []rune {
	out := make([]rune, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		out = append(out, r)
		i += size
	}
	return out
}

// Tail returns the last k scalars of s, and false if s has fewer than k.
func Tail(s string, k int) ([]rune, bool) {
	scalars := Scalars(s)
	if len(scalars) < k {
		return nil, false
	}
	return scalars[len(scalars)-k:], true
}

// Head returns the first k scalars of s, and false if s has fewer than k.
func Head(s string, k int) ([]rune, bool) {
	scalars := Scalars(s)
	if len(scalars) < k {
		return nil, false
	}
	return scalars[:k], true
}

// Len returns the scalar count of s (as opposed to len(s), the byte count).
func Len(s string) int {
	return utf8.RuneCountInString(s)
}
