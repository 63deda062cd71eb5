package parser

import (
	"fmt"

	"talfront/internal/cst"
	"talfront/internal/diag"
	"talfront/internal/token"
)

// startsStatement — может ли текущий токен открыть оператор внутри
// IF/WHILE/FOR/CASE (пустой оператор ';' здесь не считается)
func (p *Parser) startsStatement() bool {
	switch p.peek().Kind {
	case token.KwIf, token.KwWhile, token.KwFor, token.KwCall, token.KwReturn, token.KwBegin,
		token.KwAssert, token.KwCase, token.KwDrop, token.KwGoto, token.KwScan, token.KwRscan,
		token.KwStore, token.KwUse, token.Question:
		return true
	}
	return p.startsExpression()
}

// statement := assignmentStatement | ifStatement | whileStatement | forStatement
//
//	| callStatement | returnStatement | blockStatement | directiveLine
//	| emptyStatement | expression ';'? | assertStatement | caseStatement
//	| dropStatement | gotoStatement | rscanStatement | scanStatement
//	| storeStatement | useStatement
func (p *Parser) parseStatement() *cst.Node {
	st := p.node(cst.RuleStatement)
	switch p.peek().Kind {
	case token.KwIf:
		st.Add(p.parseIfStatement())
	case token.KwWhile:
		st.Add(p.parseWhileStatement())
	case token.KwFor:
		st.Add(p.parseForStatement())
	case token.KwCall:
		st.Add(p.parseCallStatement())
	case token.KwReturn:
		st.Add(p.parseReturnStatement())
	case token.KwBegin:
		st.Add(p.parseBlockStatement())
	case token.Question:
		st.Add(p.parseDirectiveLine())
	case token.Semicolon:
		e := p.node(cst.RuleEmptyStatement)
		p.term(e)
		st.Add(e)
	case token.KwAssert:
		st.Add(p.parseAssertStatement())
	case token.KwCase:
		st.Add(p.parseCaseStatement())
	case token.KwDrop:
		st.Add(p.parseKeywordIdent(cst.RuleDropStatement))
	case token.KwGoto:
		st.Add(p.parseKeywordIdent(cst.RuleGotoStatement))
	case token.KwUse:
		st.Add(p.parseKeywordIdent(cst.RuleUseStatement))
	case token.KwScan:
		st.Add(p.parseScanStatement(cst.RuleScanStatement))
	case token.KwRscan:
		st.Add(p.parseScanStatement(cst.RuleRscanStatement))
	case token.KwStore:
		st.Add(p.parseStoreStatement())
	default:
		if !p.startsExpression() {
			p.errAt(diag.SynUnexpectedToken, fmt.Sprintf("no viable alternative at input %s", p.describe(p.peek())))
			return st
		}
		expr := p.parseExpression()
		if p.at(token.Assign) {
			st.Add(p.parseAssignmentRest(expr))
			return st
		}
		st.Add(expr)
		p.optional(st, token.Semicolon)
	}
	return st
}

// assignmentStatement := lvalue ':=' (assignmentStatement | expression) ';'?
func (p *Parser) parseAssignmentRest(target *cst.Node) *cst.Node {
	n := p.node(cst.RuleAssignmentStatement)
	lv := p.node(cst.RuleLvalue)
	lv.Add(target)
	n.Add(lv)
	p.term(n) // ':='
	rhs := p.parseExpression()
	if p.at(token.Assign) {
		// многократное присваивание: a := b := 0
		n.Add(p.parseAssignmentRest(rhs))
		return n
	}
	n.Add(rhs)
	p.optional(n, token.Semicolon)
	return n
}

// ifStatement := IF expression THEN statement? (ELSE statement?)? ENDIF? ';'?
func (p *Parser) parseIfStatement() *cst.Node {
	n := p.node(cst.RuleIfStatement)
	p.term(n)
	n.Add(p.parseExpression())
	if !p.expect(n, token.KwThen, diag.SynUnexpectedToken) {
		return n
	}
	if p.startsStatement() {
		n.Add(p.parseStatement())
	}
	if p.optional(n, token.KwElse) && p.startsStatement() {
		n.Add(p.parseStatement())
	}
	p.optional(n, token.KwEndIf)
	p.optional(n, token.Semicolon)
	return n
}

// whileStatement := WHILE expression DO statement? ENDWHILE? ';'?
func (p *Parser) parseWhileStatement() *cst.Node {
	n := p.node(cst.RuleWhileStatement)
	p.term(n)
	n.Add(p.parseExpression())
	if !p.expect(n, token.KwDo, diag.SynUnexpectedToken) {
		return n
	}
	if p.startsStatement() {
		n.Add(p.parseStatement())
	}
	p.optional(n, token.KwEndWhile)
	p.optional(n, token.Semicolon)
	return n
}

// forStatement := FOR lvalue ':=' expression (TO | DOWNTO) expression (BY expression)? DO statement? ';'?
func (p *Parser) parseForStatement() *cst.Node {
	n := p.node(cst.RuleForStatement)
	p.term(n)
	lv := p.node(cst.RuleLvalue)
	lv.Add(p.parseExpression())
	n.Add(lv)
	if !p.expect(n, token.Assign, diag.SynUnexpectedToken) {
		return n
	}
	n.Add(p.parseExpression())
	if !p.atAny(token.KwTo, token.KwDownto) {
		p.errAt(diag.SynUnexpectedToken, fmt.Sprintf("mismatched input %s expecting {'TO', 'DOWNTO'}", p.describe(p.peek())))
		return n
	}
	p.term(n)
	n.Add(p.parseExpression())
	if p.optional(n, token.KwBy) {
		n.Add(p.parseExpression())
	}
	if !p.expect(n, token.KwDo, diag.SynUnexpectedToken) {
		return n
	}
	if p.startsStatement() {
		n.Add(p.parseStatement())
	}
	p.optional(n, token.Semicolon)
	return n
}

// callStatement := CALL (IDENT | BUILTIN) actualParameterList? ';'?
func (p *Parser) parseCallStatement() *cst.Node {
	n := p.node(cst.RuleCallStatement)
	p.term(n)
	if !p.identAt(0) && !p.at(token.Builtin) {
		p.errAt(diag.SynExpectIdentifier, fmt.Sprintf("mismatched input %s expecting IDENTIFIER", p.describe(p.peek())))
		return n
	}
	p.term(n)
	if p.at(token.LParen) {
		n.Add(p.parseActualParameterList())
	}
	p.optional(n, token.Semicolon)
	return n
}

// actualParameterList := '(' (expression? (',' expression?)*)? ')'
// Пропущенные параметры (f(a,,c)) допустимы.
func (p *Parser) parseActualParameterList() *cst.Node {
	n := p.node(cst.RuleActualParameterList)
	p.term(n)
	if p.optional(n, token.RParen) {
		return n
	}
	for {
		if !p.atAny(token.Comma, token.RParen) {
			n.Add(p.parseExpression())
		}
		if p.failed || !p.optional(n, token.Comma) {
			break
		}
	}
	p.expect(n, token.RParen, diag.SynUnexpectedToken)
	return n
}

// returnStatement := RETURN (expression (',' expression)?)? ';'?
func (p *Parser) parseReturnStatement() *cst.Node {
	n := p.node(cst.RuleReturnStatement)
	p.term(n)
	if p.startsExpression() {
		n.Add(p.parseExpression())
		if p.optional(n, token.Comma) {
			n.Add(p.parseExpression())
		}
	}
	p.optional(n, token.Semicolon)
	return n
}

// blockStatement := BEGIN statement* END ';'?
func (p *Parser) parseBlockStatement() *cst.Node {
	n := p.node(cst.RuleBlockStatement)
	p.term(n)
	for !p.atAny(token.KwEnd, token.EOF) && !p.failed {
		n.Add(p.parseStatement())
	}
	if p.expect(n, token.KwEnd, diag.SynUnexpectedToken) {
		p.optional(n, token.Semicolon)
	}
	return n
}

// assertStatement := ASSERT expression (':' expression)? ';'?
func (p *Parser) parseAssertStatement() *cst.Node {
	n := p.node(cst.RuleAssertStatement)
	p.term(n)
	n.Add(p.parseExpression())
	if p.optional(n, token.Colon) {
		n.Add(p.parseExpression())
	}
	p.optional(n, token.Semicolon)
	return n
}

// caseStatement := CASE expression OF (BEGIN caseArm* END)? ';'?
// caseArm := OTHERWISE '->'? statement? ';'?
//
//	| expression (',' expression)* '->' statement? ';'?
//	| statement
func (p *Parser) parseCaseStatement() *cst.Node {
	n := p.node(cst.RuleCaseStatement)
	p.term(n)
	n.Add(p.parseExpression())
	if !p.expect(n, token.KwOf, diag.SynUnexpectedToken) {
		return n
	}
	if !p.optional(n, token.KwBegin) {
		p.optional(n, token.Semicolon)
		return n
	}
	for !p.atAny(token.KwEnd, token.EOF) && !p.failed {
		if p.optional(n, token.Semicolon) {
			continue
		}
		label := p.node(cst.RuleCaseLabel)
		switch {
		case p.at(token.KwOtherwise):
			p.term(label)
			p.optional(label, token.Arrow)
			if p.startsStatement() {
				label.Add(p.parseStatement())
			}
		case p.labelAhead():
			for {
				label.Add(p.parseExpression())
				if p.failed || !p.optional(label, token.Comma) {
					break
				}
			}
			if p.expect(label, token.Arrow, diag.SynUnexpectedToken) && p.startsStatement() {
				label.Add(p.parseStatement())
			}
		default:
			label.Add(p.parseStatement())
		}
		n.Add(label)
	}
	if p.expect(n, token.KwEnd, diag.SynUnexpectedToken) {
		p.optional(n, token.Semicolon)
	}
	return n
}

// labelAhead — начинается ли плечо CASE с меток "1, 2 ->".
// Смотрит вперёд до ';' или END на нулевой глубине скобок.
func (p *Parser) labelAhead() bool {
	if !p.startsExpression() {
		return false
	}
	depth := 0
	for i := p.pos; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case token.LParen, token.LBracket:
			depth++
		case token.RParen, token.RBracket:
			depth--
		case token.Arrow:
			if depth == 0 {
				return true
			}
		case token.Semicolon, token.KwEnd, token.EOF, token.Assign,
			token.KwScan, token.KwRscan, token.KwCall:
			if depth <= 0 {
				return false
			}
		}
	}
	return false
}

// dropStatement | gotoStatement | useStatement := KEYWORD IDENT ';'?
func (p *Parser) parseKeywordIdent(rule cst.Rule) *cst.Node {
	n := p.node(rule)
	p.term(n)
	if p.expect(n, token.Ident, diag.SynExpectIdentifier) {
		p.optional(n, token.Semicolon)
	}
	return n
}

// scanStatement | rscanStatement := (SCAN | RSCAN) expression (WHILE | UNTIL) expression ('->' expression)? ';'?
func (p *Parser) parseScanStatement(rule cst.Rule) *cst.Node {
	n := p.node(rule)
	p.term(n)
	n.Add(p.parseExpression())
	if !p.atAny(token.KwWhile, token.KwUntil) {
		p.errAt(diag.SynUnexpectedToken, fmt.Sprintf("mismatched input %s expecting {'WHILE', 'UNTIL'}", p.describe(p.peek())))
		return n
	}
	p.term(n)
	n.Add(p.parseExpression())
	if p.optional(n, token.Arrow) {
		n.Add(p.parseExpression())
	}
	p.optional(n, token.Semicolon)
	return n
}

// storeStatement := STORE lvalue (',' expression)* ';'?
func (p *Parser) parseStoreStatement() *cst.Node {
	n := p.node(cst.RuleStoreStatement)
	p.term(n)
	lv := p.node(cst.RuleLvalue)
	lv.Add(p.parseExpression())
	n.Add(lv)
	for !p.failed && p.optional(n, token.Comma) {
		n.Add(p.parseExpression())
	}
	p.optional(n, token.Semicolon)
	return n
}
