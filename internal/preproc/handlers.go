package preproc

import (
	"regexp"
	"strings"

	"talfront/internal/ast"
	"talfront/internal/fallback"
	"talfront/internal/ident"
)

// Handler names usable in pattern files.
const (
	HandlerJoinStatement = "handle_multiline_statement"
	HandlerCaseBlock     = "handle_case_block"
	HandlerStructBlock   = "handle_struct_block"
	HandlerIfBlock       = "handle_if_block"
)

// maxJoin bounds how far a statement may run on without a ';'.
const maxJoin = 32

var handlers = map[string]Handler{
	HandlerJoinStatement: joinStatement,
	HandlerCaseBlock:     caseBlock,
	HandlerStructBlock:   structBlock,
	HandlerIfBlock:       ifBlock,
}

// HandlerNames lists the registered handlers.
func HandlerNames() []string {
	return []string{HandlerJoinStatement, HandlerCaseBlock, HandlerStructBlock, HandlerIfBlock}
}

var builtinPatterns = []Pattern{
	{ID: "builtin_struct_block", Type: TypeMultiLine, StartRegex: `STRUCT\s+\.?\s*` + fallback.IdentPattern + `\s*(\(\s*\*\s*\))?\s*;`, Handler: HandlerStructBlock},
	{ID: "builtin_case_block", Type: TypeMultiLine, StartRegex: `CASE\s+.+\s+OF\b`, Handler: HandlerCaseBlock},
	{ID: "builtin_if_block", Type: TypeMultiLine, StartRegex: `IF\s+.+\s+THEN\b`, Handler: HandlerIfBlock},
	{ID: "builtin_multiline_statement", Type: TypeMultiLine, StartRegex: `(CALL|LITERAL|INT|STRING|FIXED|REAL|UNSIGNED)\b`, Handler: HandlerJoinStatement},
}

// Builtin returns the patterns compiled into the binary.
func Builtin() *Table {
	t, _ := Compile(builtinPatterns, nil)
	return t
}

// words returns the identifier-like words of code outside string literals,
// upper-cased.
func words(code string) []string {
	var b strings.Builder
	inString := false
	for i := 0; i < len(code); i++ {
		c := code[i]
		if c == '"' {
			inString = !inString
			b.WriteByte(' ')
			continue
		}
		if inString || !ident.IsContinue(c) {
			b.WriteByte(' ')
			continue
		}
		b.WriteByte(c)
	}
	return strings.Fields(strings.ToUpper(b.String()))
}

// depthDelta counts BEGIN minus END on one line.
func depthDelta(code string) int {
	d := 0
	for _, w := range words(code) {
		switch w {
		case "BEGIN":
			d++
		case "END":
			d--
		}
	}
	return d
}

func firstWord(code string) string {
	if w := words(code); len(w) > 0 {
		return w[0]
	}
	return ""
}

// nextCode returns the index of the first line at or after i with code.
func (c *Context) nextCode(i int) int {
	for ; i < len(c.Lines); i++ {
		if c.Code(i) != "" {
			return i
		}
	}
	return -1
}

// openBlock finds the BEGIN that opens the body of the header at index i,
// either on the header line itself or on the next line with code. It
// returns the index of the BEGIN line.
func (c *Context) openBlock(i int) (int, bool) {
	if depthDelta(c.Code(i)) > 0 {
		return i, true
	}
	next := c.nextCode(i + 1)
	if next < 0 || !hasKeyword(c.Code(next), "BEGIN") {
		return 0, false
	}
	return next, true
}

// closeBlock returns the index of the END matching the BEGIN on line open.
func (c *Context) closeBlock(open int) (int, bool) {
	depth := 0
	for i := open; i < len(c.Lines); i++ {
		depth += depthDelta(c.Code(i))
		if depth <= 0 {
			// блок в одну строку оставляем грамматике
			return i, i > open
		}
	}
	return 0, false
}

type stmt struct {
	text string
	line int
}

// statements groups the code lines in [from, to) into statements; a line
// opening a BEGIN block is joined with the lines up to its END.
func (c *Context) statements(from, to int) []stmt {
	var out []stmt
	for i := from; i < to; i++ {
		code := c.Code(i)
		if code == "" {
			continue
		}
		s := stmt{text: code, line: c.LineNo(i)}
		depth := depthDelta(code)
		for depth > 0 && i+1 < to {
			i++
			more := c.Code(i)
			if more == "" {
				continue
			}
			s.text += " " + more
			depth += depthDelta(more)
		}
		out = append(out, s)
	}
	return out
}

func (c *Context) node(s stmt) *ast.Node {
	if n := c.parse(s.text, s.line); n != nil {
		return n
	}
	return ast.New(ast.KindStatement, ident.NormalizeOutsideStrings(s.text), s.line)
}

// joinStatement joins a statement broken over several lines, up to the line
// ending in ';', and parses the joined text.
func joinStatement(c *Context) (*ast.Node, int) {
	if strings.HasSuffix(c.Code(c.Index), ";") {
		return nil, 0
	}
	var parts []string
	for i := c.Index; i < len(c.Lines) && i-c.Index < maxJoin; i++ {
		code := c.Code(i)
		if code != "" {
			parts = append(parts, code)
		}
		if !strings.HasSuffix(code, ";") {
			continue
		}
		n := c.parse(strings.Join(parts, " "), c.LineNo(c.Index))
		if n == nil || n.Kind.IsFailure() {
			return nil, 0
		}
		return n, i - c.Index + 1
	}
	return nil, 0
}

var (
	reCaseHead   = regexp.MustCompile(`(?i)^CASE\s+(.+?)\s+OF\b`)
	reIfHead     = regexp.MustCompile(`(?i)^IF\s+(.+?)\s+THEN\b`)
	reStructHead = regexp.MustCompile(`(?i)^STRUCT\s+` + fallback.PointerPattern + `(` + fallback.IdentPattern + `)\s*(\(\s*\*\s*\))?`)
	reMember     = regexp.MustCompile(`(?i)^(INT\s*\(\s*\d+\s*\)|INT|STRING\s*\[\s*\d+\s*\]|STRING|FIXED\s*\(\s*-?\d+\s*\)|FIXED|REAL\s*\(\s*\d+\s*\)|REAL|UNSIGNED\s*\(\s*\d+\s*\))\s+(.+?)\s*;?$`)
	reMemberName = regexp.MustCompile(`^\.?\s*(` + fallback.IdentPattern + `)`)
)

// caseBlock: "CASE sel OF" BEGIN arms END;
func caseBlock(c *Context) (*ast.Node, int) {
	m := reCaseHead.FindStringSubmatch(c.Code(c.Index))
	if m == nil {
		return nil, 0
	}
	open, ok := c.openBlock(c.Index)
	if !ok {
		return nil, 0
	}
	end, ok := c.closeBlock(open)
	if !ok {
		return nil, 0
	}
	node := ast.New(ast.KindCaseStatement, "CASE "+m[1]+" OF...", c.LineNo(c.Index))
	node.With(ast.CaseAttrs{Selector: fallback.Clean(m[1]), Multiline: true})
	for _, s := range c.statements(open+1, end) {
		node.Add(c.caseLabel(s))
	}
	node.Add(ast.New(ast.KindEndCaseMarker, "END", c.LineNo(end)))
	return node, end - c.Index + 1
}

func (c *Context) caseLabel(s stmt) *ast.Node {
	var attrs ast.CaseLabelAttrs
	body := s.text
	if i := fallback.IndexOutsideStrings(s.text, "->"); i >= 0 {
		body = strings.TrimSpace(s.text[i+2:])
		if value := fallback.Clean(s.text[:i]); strings.EqualFold(value, "OTHERWISE") {
			attrs.Otherwise = true
		} else {
			attrs.Value = value
		}
	} else if hasKeyword(s.text, "OTHERWISE") {
		attrs.Otherwise = true
		body = strings.TrimSpace(s.text[len("OTHERWISE"):])
	}
	label := ast.New(ast.KindCaseLabel, s.text, s.line).With(attrs)
	if body != "" && body != ";" {
		label.Add(c.node(stmt{text: body, line: s.line}))
	}
	return label
}

// hasKeyword reports whether code starts with the keyword kw.
func hasKeyword(code, kw string) bool {
	return len(code) >= len(kw) && strings.EqualFold(code[:len(kw)], kw) && firstWord(code) == kw
}

// structBlock: "STRUCT name(*);" BEGIN members END;
func structBlock(c *Context) (*ast.Node, int) {
	head := c.Code(c.Index)
	m := reStructHead.FindStringSubmatch(head)
	if m == nil {
		return nil, 0
	}
	open, ok := c.openBlock(c.Index)
	if !ok {
		return nil, 0
	}
	end, ok := c.closeBlock(open)
	if !ok {
		return nil, 0
	}
	attrs := ast.StructAttrs{
		Name:            ident.Normalize(m[3]),
		Indirection:     m[1] == ".",
		IndirectionKind: strings.ToUpper(m[2]),
		Template:        m[4] != "",
	}
	node := ast.New(ast.KindStructDeclaration, head, c.LineNo(c.Index))
	for i := open + 1; i < end; i++ {
		mm := reMember.FindStringSubmatch(c.Code(i))
		if mm == nil {
			continue
		}
		typ := strings.ToLower(strings.Join(strings.Fields(mm[1]), ""))
		for _, decl := range fallback.SplitTopLevel(mm[2], ',') {
			nm := reMemberName.FindStringSubmatch(decl)
			if nm == nil {
				continue
			}
			member := ast.StructMember{Type: typ, Name: ident.Normalize(nm[1])}
			attrs.Members = append(attrs.Members, member)
			node.Add(ast.New(ast.KindStructMember, c.Code(i), c.LineNo(i)).With(ast.IdentAttrs{Identifier: member.Name}))
		}
	}
	return node.With(attrs), end - c.Index + 1
}

// ifBlock: "IF c THEN" BEGIN ... END [ELSE BEGIN ... END | ELSE stmt];
func ifBlock(c *Context) (*ast.Node, int) {
	m := reIfHead.FindStringSubmatch(c.Code(c.Index))
	if m == nil {
		return nil, 0
	}
	open, ok := c.openBlock(c.Index)
	if !ok {
		return nil, 0
	}
	end, ok := c.closeBlock(open)
	if !ok {
		return nil, 0
	}
	node := ast.New(ast.KindIfStatement, "IF "+m[1]+" THEN...", c.LineNo(c.Index))
	node.With(ast.CondAttrs{Condition: fallback.Clean(m[1])})

	then := ast.New(ast.KindThenBody, "THEN", c.LineNo(open))
	for _, s := range c.statements(open+1, end) {
		then.Add(c.node(s))
	}
	node.Add(then)

	last := end
	if next := c.nextCode(end + 1); next >= 0 && hasKeyword(c.Code(next), "ELSE") {
		elseBody := ast.New(ast.KindElseBody, "ELSE", c.LineNo(next))
		if eopen, ok := c.openBlock(next); ok {
			eend, ok := c.closeBlock(eopen)
			if !ok {
				return nil, 0
			}
			for _, s := range c.statements(eopen+1, eend) {
				elseBody.Add(c.node(s))
			}
			last = eend
		} else {
			rest := strings.TrimSpace(c.Code(next)[len("ELSE"):])
			if rest != "" {
				elseBody.Add(c.node(stmt{text: rest, line: c.LineNo(next)}))
			}
			last = next
		}
		node.Add(elseBody)
	}
	node.Add(ast.New(ast.KindEndIfMarker, "END", c.LineNo(last)))
	return node, last - c.Index + 1
}
