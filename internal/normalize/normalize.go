// Package normalize prepares raw affix/dictionary bytes and single-word
// CLI input for parsing: line-ending normalization and UTF-8 validation,
// applied before condition matching sees any of it.
package normalize

import (
	"strings"
	"unicode/utf8"
)

// Lines converts CRLF and lone CR line endings to LF, so the line-oriented
// affix/dictionary parsers only ever need to handle '\n'.
func Lines(data []byte) []byte {
	s := string(data)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return []byte(s)
}

// Word validates and trims a single surface-form or stem argument coming
// from the CLI.
//
// Full Unicode canonical composition (NFC) is not performed here: doing so
// correctly requires the normalization tables that ship in
// golang.org/x/text/unicode/norm, and pulling in a dependency just for
// this gap isn't worth it here. Stems are instead required to already be
// in whatever normalization form the affix file's conditions were
// authored against — true for any real .aff/.dic pair, which are produced
// by one tool (Hunspell) and normally round-trip through plain ASCII or an
// already-NFC editor. Invalid UTF-8 is still rejected, since a malformed
// byte sequence can never satisfy a condition atom correctly.
func Word(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	if !utf8.ValidString(trimmed) {
		return "", false
	}
	return trimmed, true
}
