package parser

import (
	"fmt"
	"strings"

	"talfront/internal/cst"
	"talfront/internal/diag"
	"talfront/internal/token"
)

// topLevelDeclaration := literalDeclaration | variableDeclaration
//
//	| structDeclaration | nameDeclaration | blockDeclaration
//
// ts — уже разобранный typeSpecifier (для variableDeclaration), иначе nil.
func (p *Parser) parseTopLevelDeclaration(ts *cst.Node) *cst.Node {
	top := p.node(cst.RuleTopLevelDeclaration)
	switch {
	case ts != nil:
		top.Add(p.parseVariableDeclaration(ts))
	case p.at(token.KwLiteral):
		top.Add(p.parseLiteralDeclaration())
	case p.at(token.KwStruct):
		top.Add(p.parseStructDeclaration())
	case p.at(token.KwName):
		n := p.node(cst.RuleNameDeclaration)
		p.term(n)
		p.expect(n, token.Ident, diag.SynExpectIdentifier)
		p.optional(n, token.Semicolon)
		top.Add(n)
	case p.at(token.KwBlock):
		n := p.node(cst.RuleBlockDeclaration)
		p.term(n)
		p.expect(n, token.Ident, diag.SynExpectIdentifier)
		p.optional(n, token.Semicolon)
		top.Add(n)
	}
	return top
}

// literalDeclaration := LITERAL literalItem (',' literalItem)* ';'?
// literalItem := IDENT '=' expression
func (p *Parser) parseLiteralDeclaration() *cst.Node {
	n := p.node(cst.RuleLiteralDeclaration)
	p.term(n)
	for {
		item := p.node(cst.RuleLiteralItem)
		p.expect(item, token.Ident, diag.SynExpectIdentifier)
		if p.expect(item, token.Eq, diag.SynUnexpectedToken) {
			item.Add(p.parseExpression())
		}
		n.Add(item)
		if p.failed || !p.optional(n, token.Comma) {
			break
		}
	}
	p.optional(n, token.Semicolon)
	return n
}

// typeSpecifier := (INT | STRING | FIXED | REAL | UNSIGNED) ('(' ('*' | expression) ')')?
func (p *Parser) parseTypeSpecifier() *cst.Node {
	n := p.node(cst.RuleTypeSpecifier)
	p.term(n)
	if p.at(token.LParen) {
		p.term(n)
		if !p.optional(n, token.Star) {
			n.Add(p.parseExpression())
		}
		p.expect(n, token.RParen, diag.SynUnexpectedToken)
	}
	return n
}

// variableDeclaration := typeSpecifier variableDeclarator (',' variableDeclarator)* ';'?
func (p *Parser) parseVariableDeclaration(ts *cst.Node) *cst.Node {
	n := p.node(cst.RuleVariableDeclaration)
	n.Add(ts)
	for {
		n.Add(p.parseVariableDeclarator())
		if p.failed || !p.optional(n, token.Comma) {
			break
		}
	}
	p.optional(n, token.Semicolon)
	return n
}

// indirectionSpecifier := '.' ('EXT' | 'SG')?
// EXT и SG не зарезервированы: маркер только если за ним идёт имя.
func (p *Parser) parseIndirection() *cst.Node {
	ind := p.node(cst.RuleIndirection)
	p.term(ind)
	if tok := p.peek(); tok.Kind == token.Ident && isPointerMarker(tok.Text) && p.identAt(1) {
		p.term(ind)
	}
	return ind
}

func isPointerMarker(text string) bool {
	return strings.EqualFold(text, "EXT") || strings.EqualFold(text, "SG")
}

// variableDeclarator := indirectionSpecifier? IDENT arraySpecifier? (':=' initializer)?
func (p *Parser) parseVariableDeclarator() *cst.Node {
	n := p.node(cst.RuleVariableDeclarator)
	if p.at(token.Dot) {
		n.Add(p.parseIndirection())
	}
	if !p.expect(n, token.Ident, diag.SynExpectIdentifier) {
		return n
	}
	if p.at(token.LBracket) {
		n.Add(p.parseArraySpecifier())
	}
	if p.optional(n, token.Assign) {
		n.Add(p.parseInitializer())
	}
	return n
}

// arraySpecifier := '[' expression ':' expression ']'
func (p *Parser) parseArraySpecifier() *cst.Node {
	n := p.node(cst.RuleArraySpecifier)
	p.term(n)
	n.Add(p.parseExpression())
	if p.expect(n, token.Colon, diag.SynUnexpectedToken) {
		n.Add(p.parseExpression())
	}
	p.expect(n, token.RBracket, diag.SynUnexpectedToken)
	return n
}

// initializer := '[' expression (',' expression)* ']' | expression
func (p *Parser) parseInitializer() *cst.Node {
	n := p.node(cst.RuleInitializer)
	if !p.at(token.LBracket) {
		n.Add(p.parseExpression())
		return n
	}
	p.term(n)
	for {
		n.Add(p.parseExpression())
		if p.failed || !p.optional(n, token.Comma) {
			break
		}
	}
	p.expect(n, token.RBracket, diag.SynUnexpectedToken)
	return n
}

// structDeclaration := STRUCT indirectionSpecifier? IDENT ('(' ('*' | IDENT) ')')? arraySpecifier? ';'?
func (p *Parser) parseStructDeclaration() *cst.Node {
	n := p.node(cst.RuleStructDeclaration)
	p.term(n)
	if p.at(token.Dot) {
		n.Add(p.parseIndirection())
	}
	if !p.expect(n, token.Ident, diag.SynExpectIdentifier) {
		return n
	}
	if p.optional(n, token.LParen) {
		if !p.optional(n, token.Star) {
			p.expect(n, token.Ident, diag.SynExpectIdentifier)
		}
		p.expect(n, token.RParen, diag.SynUnexpectedToken)
	}
	if p.at(token.LBracket) {
		n.Add(p.parseArraySpecifier())
	}
	p.optional(n, token.Semicolon)
	return n
}

var procAttributeKinds = []token.Kind{
	token.KwMain, token.KwInterrupt, token.KwResident, token.KwCallable,
	token.KwPriv, token.KwVariable, token.KwExtensible,
}

// procedureDefinition := typeSpecifier? (PROC | SUBPROC) IDENT formalParameterList?
//
//	procedureAttribute (',' procedureAttribute)* ';'? (FORWARD | EXTERNAL)? ';'?
func (p *Parser) parseProcedureDefinition(ts *cst.Node) *cst.Node {
	n := p.node(cst.RuleProcedureDefinition)
	n.Add(ts)
	p.term(n) // PROC | SUBPROC
	if !p.expect(n, token.Ident, diag.SynExpectIdentifier) {
		return n
	}
	if p.at(token.LParen) {
		n.Add(p.parseFormalParameterList())
	}
	for p.atAny(procAttributeKinds...) {
		attr := p.node(cst.RuleProcedureAttribute)
		p.term(attr)
		if p.optional(attr, token.LParen) {
			p.expect(attr, token.IntLit, diag.SynUnexpectedToken)
			p.expect(attr, token.RParen, diag.SynUnexpectedToken)
		}
		n.Add(attr)
		if !p.optional(n, token.Comma) {
			break
		}
	}
	p.optional(n, token.Semicolon)
	if p.atAny(token.KwForward, token.KwExternal) {
		p.term(n)
		p.optional(n, token.Semicolon)
	}
	return n
}

// formalParameterList := '(' (formalParameter (',' formalParameter)*)? ')'
// formalParameter := IDENT (':' INT_LITERAL)?
func (p *Parser) parseFormalParameterList() *cst.Node {
	n := p.node(cst.RuleFormalParameterList)
	p.term(n)
	if p.optional(n, token.RParen) {
		return n
	}
	for {
		param := p.node(cst.RuleFormalParameter)
		if p.expect(param, token.Ident, diag.SynExpectIdentifier) && p.optional(param, token.Colon) {
			p.expect(param, token.IntLit, diag.SynUnexpectedToken)
		}
		n.Add(param)
		if p.failed || !p.optional(n, token.Comma) {
			break
		}
	}
	p.expect(n, token.RParen, diag.SynUnexpectedToken)
	return n
}

// directiveLine := '?' directiveElement (',' directiveElement)*
// directiveElement := WORD anything-up-to-top-level-comma
func (p *Parser) parseDirectiveLine() *cst.Node {
	n := p.node(cst.RuleDirectiveLine)
	p.term(n)
	for {
		el := p.node(cst.RuleDirectiveElement)
		tok := p.peek()
		if tok.Kind != token.Ident && tok.Kind != token.Builtin && !tok.Kind.IsKeyword() {
			p.errAt(diag.SynExpectIdentifier, fmt.Sprintf("mismatched input %s expecting directive name", p.describe(tok)))
			return n
		}
		p.term(el)
		depth := 0
		for !p.at(token.EOF) {
			k := p.peek().Kind
			if k == token.Comma && depth == 0 {
				break
			}
			switch k {
			case token.LParen, token.LBracket:
				depth++
			case token.RParen, token.RBracket:
				if depth > 0 {
					depth--
				}
			}
			p.term(el)
		}
		n.Add(el)
		if !p.optional(n, token.Comma) {
			return n
		}
	}
}
