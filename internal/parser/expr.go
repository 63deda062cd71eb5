package parser

import (
	"talfront/internal/cst"
	"talfront/internal/diag"
	"talfront/internal/token"
)

// startsExpression — FIRST(expression)
func (p *Parser) startsExpression() bool {
	p.identAt(0)
	switch p.peek().Kind {
	case token.Ident, token.Builtin,
		token.IntLit, token.FixedLit, token.RealLit, token.StringLit,
		token.LParen, token.At, token.Dot, token.Minus, token.Plus, token.KwNot:
		return true
	}
	return false
}

var (
	additiveOps = []token.Kind{
		token.Plus, token.Minus, token.UPlus, token.UMinus,
		token.KwLor, token.KwLand, token.KwXor,
	}
	multiplicativeOps = []token.Kind{
		token.Star, token.Slash, token.UStar, token.USlash,
		token.Shl, token.Shr, token.UShl, token.UShr,
	}
)

// expression := logicalOr
//
// Каждый уровень порождает свой узел, даже с одним операндом;
// схлопывание одиночных уровней делает визитор.
func (p *Parser) parseExpression() *cst.Node {
	n := p.node(cst.RuleExpression)
	n.Add(p.parseLogicalOr())
	return n
}

// logicalOr := logicalAnd (OR logicalAnd)*
func (p *Parser) parseLogicalOr() *cst.Node {
	n := p.node(cst.RuleLogicalOr)
	n.Add(p.parseLogicalAnd())
	for !p.failed && p.optional(n, token.KwOr) {
		n.Add(p.parseLogicalAnd())
	}
	return n
}

// logicalAnd := logicalNot (AND logicalNot)*
func (p *Parser) parseLogicalAnd() *cst.Node {
	n := p.node(cst.RuleLogicalAnd)
	n.Add(p.parseLogicalNot())
	for !p.failed && p.optional(n, token.KwAnd) {
		n.Add(p.parseLogicalNot())
	}
	return n
}

// logicalNot := NOT logicalNot | relational
func (p *Parser) parseLogicalNot() *cst.Node {
	n := p.node(cst.RuleLogicalNot)
	if p.optional(n, token.KwNot) {
		n.Add(p.parseLogicalNot())
		return n
	}
	n.Add(p.parseRelational())
	return n
}

// relational := additive (relop additive)?
func (p *Parser) parseRelational() *cst.Node {
	n := p.node(cst.RuleRelational)
	n.Add(p.parseAdditive())
	if !p.failed && p.peek().Kind.IsRelational() {
		p.term(n)
		n.Add(p.parseAdditive())
	}
	return n
}

// additive := multiplicative (addop multiplicative)*
func (p *Parser) parseAdditive() *cst.Node {
	n := p.node(cst.RuleAdditive)
	n.Add(p.parseMultiplicative())
	for !p.failed && p.atAny(additiveOps...) {
		p.term(n)
		n.Add(p.parseMultiplicative())
	}
	return n
}

// multiplicative := unary (mulop unary)*
func (p *Parser) parseMultiplicative() *cst.Node {
	n := p.node(cst.RuleMultiplicative)
	n.Add(p.parseUnary())
	for !p.failed && p.atAny(multiplicativeOps...) {
		p.term(n)
		n.Add(p.parseUnary())
	}
	return n
}

// unary := ('+' | '-') unary | primary
func (p *Parser) parseUnary() *cst.Node {
	n := p.node(cst.RuleUnary)
	if p.atAny(token.Plus, token.Minus) {
		p.term(n)
		n.Add(p.parseUnary())
		return n
	}
	n.Add(p.parsePrimary())
	return n
}

// primary := literal | '(' expression ')' | functionCall | '@' primary | qualifiedName
func (p *Parser) parsePrimary() *cst.Node {
	n := p.node(cst.RulePrimary)
	p.identAt(0)
	tok := p.peek()
	switch {
	case tok.IsLiteral():
		lit := p.node(cst.RuleLiteral)
		p.term(lit)
		n.Add(lit)
	case tok.Kind == token.LParen:
		p.term(n)
		n.Add(p.parseExpression())
		p.expect(n, token.RParen, diag.SynUnexpectedToken)
	case tok.Kind == token.Builtin:
		n.Add(p.parseFunctionCall())
	case tok.Kind == token.At:
		p.term(n)
		n.Add(p.parsePrimary())
	case tok.Kind == token.Ident && p.peekN(1).Kind == token.LParen:
		n.Add(p.parseFunctionCall())
	case tok.Kind == token.Ident || tok.Kind == token.Dot:
		n.Add(p.parseQualifiedName())
	default:
		p.errAt(diag.SynExpectExpression, "mismatched input "+p.describe(tok)+" expecting expression")
	}
	return n
}

// functionCall := (IDENT | BUILTIN) actualParameterList?
// Для IDENT список обязателен: его наличие и отличает вызов от имени.
func (p *Parser) parseFunctionCall() *cst.Node {
	n := p.node(cst.RuleFunctionCall)
	p.term(n)
	if p.at(token.LParen) {
		n.Add(p.parseActualParameterList())
	}
	return n
}

// qualifiedName := indirectionSpecifier? IDENT index? (('.' IDENT index?) | bitField)*
// bitField := '.' '<' additive (':' additive)? '>'
func (p *Parser) parseQualifiedName() *cst.Node {
	n := p.node(cst.RuleQualifiedName)
	if p.at(token.Dot) {
		ind := p.node(cst.RuleIndirection)
		p.term(ind)
		n.Add(ind)
	}
	if !p.expect(n, token.Ident, diag.SynExpectIdentifier) {
		return n
	}
	p.parseIndexOpt(n)
	for !p.failed && p.at(token.Dot) {
		p.identAt(1)
		switch p.peekN(1).Kind {
		case token.Ident:
			p.term(n)
			p.term(n)
			p.parseIndexOpt(n)
		case token.Lt:
			bf := p.node(cst.RuleBitField)
			p.term(bf)
			p.term(bf)
			bf.Add(p.parseAdditive())
			if p.optional(bf, token.Colon) {
				bf.Add(p.parseAdditive())
			}
			p.expect(bf, token.Gt, diag.SynUnexpectedToken)
			n.Add(bf)
		default:
			return n
		}
	}
	return n
}

// index := '[' expression ']'
func (p *Parser) parseIndexOpt(n *cst.Node) {
	if !p.at(token.LBracket) {
		return
	}
	idx := p.node(cst.RuleIndex)
	p.term(idx)
	idx.Add(p.parseExpression())
	p.expect(idx, token.RBracket, diag.SynUnexpectedToken)
	n.Add(idx)
}
