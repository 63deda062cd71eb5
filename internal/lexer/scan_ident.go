package lexer

import (
	"talfront/internal/diag"
	"talfront/internal/ident"
	"talfront/internal/token"
)

// scanIdentOrKeyword сканирует идентификатор (буквы, цифры, '^', '_') и
// проверяет ключевые слова без учёта регистра. Token.Text — исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for ident.IsContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanBuiltin: '$' letter (ident-continue)*, например $LEN, $OCCURS.
func (lx *Lexer) scanBuiltin() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '$'
	if !isLetter(lx.cursor.Peek()) {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "'$' must start a standard function name")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	for ident.IsContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Builtin, Span: sp, Text: lx.text(sp)}
}
