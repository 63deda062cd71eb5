package lexer

import (
	"talfront/internal/diag"
	"talfront/internal/token"
)

// isBasedNumber: текущий '%' начинает число (%17, %B101, %H1F)?
func (lx *Lexer) isBasedNumber() bool {
	b1 := lx.cursor.PeekAt(1)
	switch {
	case b1 >= '0' && b1 <= '7':
		return true
	case b1 == 'b' || b1 == 'B':
		b2 := lx.cursor.PeekAt(2)
		return b2 == '0' || b2 == '1'
	case b1 == 'h' || b1 == 'H':
		return isHex(lx.cursor.PeekAt(2))
	}
	return false
}

// scanNumber:
//
//	decimal  : [0-9]+ ('.' [0-9]+)? ([EL] [+-]? [0-9]+)? [DdFf]?
//	octal    : '%' [0-7]+ [Dd]?
//	binary   : '%' [Bb] [01]+ [Dd]?
//	hex      : '%' [Hh] [0-9A-Fa-f]+ [Dd]?
//
// Дробная часть или экспонента дают RealLit, суффикс F даёт FixedLit.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Eat('%') {
		switch lx.cursor.Peek() {
		case 'b', 'B':
			lx.cursor.Bump()
			for c := lx.cursor.Peek(); c == '0' || c == '1'; c = lx.cursor.Peek() {
				lx.cursor.Bump()
			}
		case 'h', 'H':
			lx.cursor.Bump()
			for isHex(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		default:
			for c := lx.cursor.Peek(); c >= '0' && c <= '7'; c = lx.cursor.Peek() {
				lx.cursor.Bump()
			}
		}
		if c := lx.cursor.Peek(); c == 'd' || c == 'D' {
			lx.cursor.Bump()
		}
		return lx.finishNumber(start, kind)
	}

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	// дробная часть: '.' только если дальше цифра ("a[1].b" не число)
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		kind = token.RealLit
	}

	// экспонента: E или L (REAL(64))
	if c := lx.cursor.Peek(); c == 'e' || c == 'E' || c == 'l' || c == 'L' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			if kind == token.RealLit {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "expected digit after exponent")
				return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
			}
			// "10ELSE" и подобное: экспоненты нет
			lx.cursor.Reset(mark)
		} else {
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			kind = token.RealLit
		}
	}

	switch lx.cursor.Peek() {
	case 'f', 'F':
		lx.cursor.Bump()
		kind = token.FixedLit
	case 'd', 'D':
		if kind == token.IntLit {
			lx.cursor.Bump()
		}
	}
	return lx.finishNumber(start, kind)
}

// finishNumber проверяет, что за числом не прилип идентификатор (12AB).
func (lx *Lexer) finishNumber(start Mark, kind token.Kind) token.Token {
	if c := lx.cursor.Peek(); isLetter(c) || c == '^' || c == '_' {
		for c := lx.cursor.Peek(); isLetter(c) || isDec(c) || c == '^' || c == '_'; c = lx.cursor.Peek() {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "malformed number")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
