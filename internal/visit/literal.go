package visit

import (
	"strconv"
	"strings"

	"talfront/internal/ast"
	"talfront/internal/cst"
	"talfront/internal/token"
)

func (v *visitor) visitLiteral(n *cst.Node) Result {
	t := n.FirstTerminal()
	if t == nil {
		return v.missing(n, "literal token")
	}
	text := t.Text()
	switch t.Tok.Kind {
	case token.IntLit:
		var value any = text
		if i, parsed := IntValue(text); parsed {
			value = i
		}
		return ok(v.newNode(ast.KindIntLiteral, n, text).With(ast.LiteralAttrs{Value: value}))
	case token.FixedLit:
		return ok(v.newNode(ast.KindFixedLiteral, n, text).With(ast.LiteralAttrs{Value: text}))
	case token.RealLit:
		var value any = text
		if f, err := strconv.ParseFloat(strings.NewReplacer("L", "E", "l", "e").Replace(text), 64); err == nil {
			value = f
		}
		return ok(v.newNode(ast.KindRealLiteral, n, text).With(ast.LiteralAttrs{Value: value}))
	case token.StringLit:
		return ok(v.newNode(ast.KindStringLiteral, n, text).With(ast.LiteralAttrs{Value: StringValue(text)}))
	}
	return fail(FaultUnexpectedShape, "unknown literal "+t.Tok.Kind.String(), text, v.lineOf(n))
}

// IntValue decodes a TAL integer literal: 123, 123D, %17 (octal),
// %B101, %H1F.
func IntValue(text string) (int64, bool) {
	base := 10
	s := text
	if strings.HasPrefix(s, "%") {
		s = s[1:]
		switch {
		case strings.HasPrefix(s, "H"), strings.HasPrefix(s, "h"):
			// в шестнадцатеричном D — это цифра, суффикс не отрезаем
			v, err := strconv.ParseInt(s[1:], 16, 64)
			return v, err == nil
		case strings.HasPrefix(s, "B"), strings.HasPrefix(s, "b"):
			base, s = 2, s[1:]
		default:
			base = 8
		}
	}
	s = strings.TrimRight(s, "Dd")
	v, err := strconv.ParseInt(s, base, 64)
	return v, err == nil
}

// StringValue strips the quotes and collapses doubled quotes.
func StringValue(text string) string {
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	return strings.ReplaceAll(text, `""`, `"`)
}
