package fallback

import (
	"strings"

	"talfront/internal/ident"
)

// IdentPattern matches a TAL identifier in recognizer regexes.
const IdentPattern = `[A-Za-z^_][A-Za-z0-9^_]*`

// PointerPattern matches an optional indirection in front of a declared
// name: ".", ".EXT " or ".SG ". It adds two groups, the dot and the marker.
// ".ext" with no name after it is a plain pointer named ext.
const PointerPattern = `(?:(\.)(?:((?i:EXT|SG))\s+)?)?\s*`

// StripComment removes TAL comments from a line: "!" up to the next "!"
// or the end of line, and "--" up to the end of line. Double-quoted string
// literals are left alone. The result is trimmed.
func StripComment(line string) string {
	var b strings.Builder
	inString, inComment := false, false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inComment:
			if c == '!' {
				inComment = false
			}
			continue
		case inString:
			if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '!':
			inComment = true
			continue
		case c == '-' && i+1 < len(line) && line[i+1] == '-':
			return strings.TrimSpace(b.String())
		}
		b.WriteByte(c)
	}
	return strings.TrimSpace(b.String())
}

// SplitTopLevel splits s on sep outside parentheses, brackets and string
// literals. Parts are trimmed; empty parts are kept so positional
// parameters stay aligned.
func SplitTopLevel(s string, sep byte) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var parts []string
	depth, start := 0, 0
	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inString:
			if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			if depth > 0 {
				depth--
			}
		case c == sep && depth == 0:
			parts = append(parts, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}

// IndexOutsideStrings returns the index of the first sub outside string
// literals, or -1.
func IndexOutsideStrings(s, sub string) int {
	inString := false
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			inString = !inString
			continue
		}
		if !inString && strings.HasPrefix(s[i:], sub) {
			return i
		}
	}
	return -1
}

// Clean normalizes identifiers outside strings and drops a trailing ';'.
func Clean(expr string) string {
	expr = strings.TrimSpace(expr)
	expr = strings.TrimSpace(strings.TrimSuffix(expr, ";"))
	return ident.NormalizeOutsideStrings(expr)
}
