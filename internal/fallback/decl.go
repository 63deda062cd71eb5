package fallback

import (
	"regexp"
	"strings"

	"talfront/internal/ast"
	"talfront/internal/ident"
)

var (
	reDeclaration = regexp.MustCompile(`(?i)^(INT|STRING|FIXED|REAL|UNSIGNED)(\s*\([^)]*\))?\s+(.+?)\s*;?$`)
	reDeclarator  = regexp.MustCompile(`^` + PointerPattern + `(` + IdentPattern + `)\s*(\[[^\]]*\])?\s*(?::=\s*(.+))?$`)
	reLiteral     = regexp.MustCompile(`(?i)^LITERAL\s+(.+?)\s*;?$`)
	reProcAhead   = regexp.MustCompile(`(?i)^(SUB)?PROC\b`)
)

// Declaration recognizes "INT(32) a, .b[0:9] := [1, 2];". Procedure
// headers with a return type are not declarations.
func Declaration(code string) (ast.VarDeclAttrs, bool) {
	m := reDeclaration.FindStringSubmatch(code)
	if m == nil || reProcAhead.MatchString(m[3]) {
		return ast.VarDeclAttrs{}, false
	}
	attrs := ast.VarDeclAttrs{Type: strings.ToLower(m[1] + strings.Join(strings.Fields(m[2]), ""))}
	for _, part := range SplitTopLevel(m[3], ',') {
		d := reDeclarator.FindStringSubmatch(part)
		if d == nil {
			return ast.VarDeclAttrs{}, false
		}
		attrs.Variables = append(attrs.Variables, ast.Variable{
			Name:            ident.Normalize(d[3]),
			Indirection:     d[1] == ".",
			IndirectionKind: strings.ToUpper(d[2]),
			ArraySpec:       d[4],
			InitValue:       strings.TrimSpace(d[5]),
		})
	}
	return attrs, len(attrs.Variables) > 0
}

// Literals recognizes "LITERAL a = 1, b = (2 + 3);". Items without '='
// are skipped.
func Literals(code string) ([]ast.LiteralItem, bool) {
	m := reLiteral.FindStringSubmatch(code)
	if m == nil {
		return nil, false
	}
	var items []ast.LiteralItem
	for _, part := range SplitTopLevel(m[1], ',') {
		name, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		items = append(items, ast.LiteralItem{
			Name:  ident.Normalize(strings.TrimSpace(name)),
			Value: strings.TrimSpace(value),
		})
	}
	return items, true
}
