package lexer

import (
	"talfront/internal/diag"
	"talfront/internal/token"
)

// unsignedOps перечислены от длинных к коротким: жадное сопоставление.
var unsignedOps = []struct {
	lit  string
	kind token.Kind
}{
	{"'<>'", token.UNotEq},
	{"'<='", token.ULtEq},
	{"'>='", token.UGtEq},
	{"'<<'", token.UShl},
	{"'>>'", token.UShr},
	{"'='", token.UEq},
	{"'<'", token.ULt},
	{"'>'", token.UGt},
	{"'+'", token.UPlus},
	{"'-'", token.UMinus},
	{"'*'", token.UStar},
	{"'/'", token.USlash},
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()
	kind := token.Invalid

	switch b {
	case ':':
		kind = token.Colon
		if lx.cursor.Eat('=') {
			kind = token.Assign
		}
	case ';':
		kind = token.Semicolon
	case ',':
		kind = token.Comma
	case '.':
		kind = token.Dot
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case '+':
		kind = token.Plus
	case '-':
		kind = token.Minus
		if lx.cursor.Eat('>') {
			kind = token.Arrow
		}
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '=':
		kind = token.Eq
	case '<':
		kind = token.Lt
		switch {
		case lx.cursor.Eat('>'):
			kind = token.NotEq
		case lx.cursor.Eat('='):
			kind = token.LtEq
		case lx.cursor.Eat('<'):
			kind = token.Shl
		}
	case '>':
		kind = token.Gt
		switch {
		case lx.cursor.Eat('='):
			kind = token.GtEq
		case lx.cursor.Eat('>'):
			kind = token.Shr
		}
	case '@':
		kind = token.At
	case '?':
		kind = token.Question
	case '\'':
		lx.cursor.Reset(start)
		if k, ok := lx.scanUnsignedOp(); ok {
			kind = k
		} else {
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	if kind == token.Invalid {
		lx.errLex(diag.LexUnknownChar, sp, "unknown character")
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) scanUnsignedOp() (token.Kind, bool) {
	rest := lx.file.Content[lx.cursor.Off:]
	for _, op := range unsignedOps {
		if len(rest) >= len(op.lit) && string(rest[:len(op.lit)]) == op.lit {
			for range len(op.lit) {
				lx.cursor.Bump()
			}
			return op.kind, true
		}
	}
	return token.Invalid, false
}
