// Package ident canonicalizes TAL identifier spelling.
//
// TAL allows the circumflex inside names (SEND^MESSAGE). Every downstream
// consumer works with the portable spelling, where the circumflex is
// replaced by an underscore.
package ident

import "strings"

// Marker is the TAL-specific identifier character.
const Marker = '^'

// Substitute replaces Marker in portable spelling.
const Substitute = '_'

// Normalize replaces every Marker in s with Substitute. Empty input is
// returned unchanged.
func Normalize(s string) string {
	if s == "" || strings.IndexByte(s, Marker) < 0 {
		return s
	}
	return strings.ReplaceAll(s, string(Marker), string(Substitute))
}

// NormalizeOutsideStrings is Normalize that leaves double-quoted string
// literals untouched ("A^B" stays as written).
func NormalizeOutsideStrings(s string) string {
	if strings.IndexByte(s, Marker) < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inString = !inString
		case c == Marker && !inString:
			c = Substitute
		}
		b.WriteByte(c)
	}
	return b.String()
}

// IsStart reports whether c may begin a TAL identifier.
func IsStart(c byte) bool {
	return c == Marker || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// IsContinue reports whether c may continue a TAL identifier.
func IsContinue(c byte) bool {
	return IsStart(c) || (c >= '0' && c <= '9')
}
