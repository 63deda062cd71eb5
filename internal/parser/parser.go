// Package parser implements the TAL line grammar: a recursive-descent parser
// over one unit (a source line or a preprocessor span) that builds a cst tree.
//
// The grammar is line-scoped. Constructs that need several lines (a bare
// BEGIN, a lone END, ELSE on its own line) are rejected here and picked up by
// the fallback recognizers.
package parser

import (
	"fmt"
	"slices"

	"talfront/internal/cst"
	"talfront/internal/diag"
	"talfront/internal/lexer"
	"talfront/internal/source"
	"talfront/internal/token"
)

type Options struct {
	Reporter diag.Reporter
}

// Parser — состояние парсера на один юнит
type Parser struct {
	file     *source.File
	toks     []token.Token // юнит маленький: лексим целиком, это даёт дешёвый lookahead
	pos      int
	opts     Options
	failed   bool        // после первой синтаксической ошибки дальше не репортим
	lastSpan source.Span // span последнего съеденного токена для диагностики на EOF
}

// ParseUnit lexes and parses one unit as a programElement.
// The returned tree is never nil; it covers the whole unit.
func ParseUnit(file *source.File, opts Options) *cst.Node {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	p := &Parser{file: file, toks: lx.All(), opts: opts}
	return p.parseProgramElement()
}

// Failed reports whether the parser saw a syntax error.
func (p *Parser) Failed() bool { return p.failed }

func (p *Parser) node(rule cst.Rule) *cst.Node {
	return cst.NewNode(rule, p.file.Content)
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// advance — съедает текущий токен; EOF не съедается никогда
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// term переносит текущий токен в n как терминал
func (p *Parser) term(n *cst.Node) token.Token {
	tok := p.advance()
	n.Add(&cst.Terminal{Tok: tok})
	return tok
}

// optional съедает токен k, если он есть
func (p *Parser) optional(n *cst.Node, k token.Kind) bool {
	if p.at(k) {
		p.term(n)
		return true
	}
	return false
}

// identAt — токен на позиции pos+n годится как имя. Атрибуты процедур
// (MAIN, RESIDENT, ...) не зарезервированы: там, где ждём имя, они
// переписываются в IDENT.
func (p *Parser) identAt(n int) bool {
	i := min(p.pos+n, len(p.toks)-1)
	if p.toks[i].Kind.IsContextual() {
		p.toks[i].Kind = token.Ident
	}
	return p.toks[i].Kind == token.Ident
}

// expect — ожидаем конкретный токен; если нет — репортим и возвращаем false
func (p *Parser) expect(n *cst.Node, k token.Kind, code diag.Code) bool {
	if k == token.Ident {
		p.identAt(0)
	}
	if p.at(k) {
		p.term(n)
		return true
	}
	p.errAt(code, fmt.Sprintf("mismatched input %s expecting '%s'", p.describe(p.peek()), k))
	return false
}

func (p *Parser) describe(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "'<EOF>'"
	}
	return "'" + tok.Text + "'"
}

// diagSpan — на EOF указываем на позицию после последнего токена
func (p *Parser) diagSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return tok.Span
}

// errAt репортит первую ошибку юнита; последующие подавляются
func (p *Parser) errAt(code diag.Code, msg string) {
	if p.failed {
		return
	}
	p.failed = true
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, p.diagSpan(), msg)
	}
}

// parseProgramElement — вход: директива, объявление, процедура или оператор.
func (p *Parser) parseProgramElement() *cst.Node {
	root := p.node(cst.RuleProgramElement)
	k := p.peek().Kind
	switch {
	case k == token.EOF:
		p.errAt(diag.SynUnexpectedToken, "mismatched input '<EOF>' expecting programElement")
	case k == token.Question:
		root.Add(p.parseDirectiveLine())
	case k == token.KwLiteral, k == token.KwStruct, k == token.KwName, k == token.KwBlock:
		root.Add(p.parseTopLevelDeclaration(nil))
	case k == token.KwProc, k == token.KwSubproc:
		root.Add(p.parseProcedureDefinition(nil))
	case k.IsTypeKeyword():
		ts := p.parseTypeSpecifier()
		if p.atAny(token.KwProc, token.KwSubproc) {
			root.Add(p.parseProcedureDefinition(ts))
		} else {
			root.Add(p.parseTopLevelDeclaration(ts))
		}
	default:
		root.Add(p.parseStatement())
	}
	p.finish(root)
	return root
}

// finish — всё, что осталось до EOF, становится ErrorTerm
func (p *Parser) finish(root *cst.Node) {
	if p.at(token.EOF) {
		return
	}
	p.errAt(diag.SynExtraInput, fmt.Sprintf("extraneous input %s expecting '<EOF>'", p.describe(p.peek())))
	for !p.at(token.EOF) {
		root.Add(&cst.ErrorTerm{Tok: p.advance()})
	}
}
