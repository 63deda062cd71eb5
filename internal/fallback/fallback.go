// Package fallback recognizes single TAL statements with anchored regular
// expressions. It runs only for units the grammar could not handle and
// produces the same node shapes and attributes the visitor does.
//
// Recognizers are tried in a fixed order against the line's leading
// keyword. The first recognizer whose keyword matches owns the line: if its
// pattern then fails, the line is not recognized at all. Any line with ':='
// outside a string that no earlier keyword owns is an assignment, FOR
// headers included.
package fallback

import (
	"regexp"
	"strings"

	"talfront/internal/ast"
	"talfront/internal/ident"
)

type recognizer struct {
	name  string
	start *regexp.Regexp
	parse func(code string, line int) *ast.Node
}

var table []recognizer

func init() {
	table = []recognizer{
		{"call", kw(`CALL`), parseCall},
		{"literal", kw(`LITERAL`), parseLiteral},
		{"declaration", kw(`INT|STRING|FIXED|REAL|UNSIGNED`), parseDeclaration},
		{"directive", regexp.MustCompile(`^\?`), parseDirective},
		{"return", kw(`RETURN`), parseReturn},
		{"begin", kw(`BEGIN`), parseBegin},
		{"end", kw(`END|ENDIF|ENDWHILE|ENDFOR|ENDCASE|ENDSTRUCT|ENDBLOCK`), parseEnd},
		{"else", kw(`ELSE`), parseElse},
		{"assignment", nil, parseAssignment},
		{"assert", kw(`ASSERT`), parseAssert},
		{"case", kw(`CASE`), parseCase},
		{"drop", kw(`DROP`), identStatement(ast.KindDropStatement, `DROP`)},
		{"goto", kw(`GOTO`), parseGoto},
		{"rscan", kw(`RSCAN`), scanStatement(ast.KindRscanStatement, `RSCAN`)},
		{"scan", kw(`SCAN`), scanStatement(ast.KindScanStatement, `SCAN`)},
		{"store", kw(`STORE`), parseStore},
		{"use", kw(`USE`), identStatement(ast.KindUseStatement, `USE`)},
		{"if", kw(`IF`), parseIf},
		{"while", kw(`WHILE`), parseWhile},
		{"procedure", kw(`PROC|SUBPROC`), parseProcedure},
		{"struct", kw(`STRUCT`), parseStruct},
		{"block", kw(`BLOCK`), nameStatement(ast.KindBlockDeclaration, `BLOCK`)},
		{"name", kw(`NAME`), nameStatement(ast.KindNameDeclaration, `NAME`)},
	}
}

// kw matches a leading keyword, ignoring case. The keyword must not run on
// into an identifier, and '^' counts as an identifier character.
func kw(alts string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^(?:` + alts + `)(?:$|[^A-Za-z0-9_^])`)
}

// Recognizer names the recognizer that owns code, or "" when none does.
func Recognizer(code string) string {
	for _, r := range table {
		if r.owns(code) {
			return r.name
		}
	}
	return ""
}

func (r recognizer) owns(code string) bool {
	if r.start == nil {
		return IndexOutsideStrings(code, ":=") >= 0
	}
	return r.start.MatchString(code)
}

// Parse recognizes one source line. It returns nil for blank lines,
// comment-only lines, lines whose recognizer rejects them and lines that
// cannot start a statement. It never panics on malformed input.
func Parse(line string, lineNo int) *ast.Node {
	code := StripComment(line)
	if code == "" {
		return nil
	}
	for _, r := range table {
		if r.owns(code) {
			return r.parse(code, lineNo)
		}
	}
	if !canStartStatement(code[0]) {
		return nil
	}
	return ast.New(ast.KindStatement, ident.NormalizeOutsideStrings(code), lineNo)
}

func canStartStatement(c byte) bool {
	if ident.IsContinue(c) {
		return true
	}
	switch c {
	case '$', '@', '.', '(', '"':
		return true
	}
	return false
}

var (
	reCall      = regexp.MustCompile(`(?i)^CALL\s+(\$?` + IdentPattern + `)\s*(?:\((.*)\))?\s*;?$`)
	reDirective = regexp.MustCompile(`^\?\s*([A-Za-z].*)$`)
	reReturn    = regexp.MustCompile(`(?i)^RETURN\b\s*(.*?)\s*;?$`)
	reEnd       = regexp.MustCompile(`(?i)^(END(?:IF|WHILE|FOR|CASE|STRUCT|BLOCK)?)\s*;?$`)
	reIf        = regexp.MustCompile(`(?i)^IF\s+(.+?)\s+THEN\b`)
	reWhile     = regexp.MustCompile(`(?i)^WHILE\s+(.+?)\s+DO\b`)
	reAssert    = regexp.MustCompile(`(?i)^ASSERT\s+(.+?)\s*;?$`)
	reCase      = regexp.MustCompile(`(?i)^CASE\s+(.+?)\s+OF\b`)
	reGoto      = regexp.MustCompile(`(?i)^GOTO\s+(` + IdentPattern + `)\s*;?$`)
	reStore     = regexp.MustCompile(`(?i)^STORE\s+(.+?)\s*;?$`)
	reProc      = regexp.MustCompile(`(?i)^(?:(INT|STRING|FIXED|REAL|UNSIGNED)(\s*\([^)]*\))?\s+)?(PROC|SUBPROC)\s+(` + IdentPattern + `)\s*(?:\(([^)]*)\))?\s*(.*?)\s*;?$`)
	reStruct    = regexp.MustCompile(`(?i)^STRUCT\s+` + PointerPattern + `(` + IdentPattern + `)\s*(\(\s*(?:\*|` + IdentPattern + `)\s*\))?`)
)

func parseCall(code string, line int) *ast.Node {
	m := reCall.FindStringSubmatch(code)
	if m == nil {
		return nil
	}
	node := ast.New(ast.KindCallStatement, code, line)
	attrs := ast.CallAttrs{Function: ident.Normalize(m[1]), CallText: code}
	for _, p := range SplitTopLevel(m[2], ',') {
		if p == "" {
			continue
		}
		pn := operand(p, line)
		node.Add(pn)
		attrs.Parameters = append(attrs.Parameters, ast.Param{NodeType: pn.Kind.String(), Text: pn.Text, Line: line})
	}
	return node.With(attrs)
}

var (
	reIdentOnly = regexp.MustCompile(`^` + IdentPattern + `$`)
	reIntOnly   = regexp.MustCompile(`(?i)^(?:[0-9]+D?|%[0-7]+D?|%B[01]+D?|%H[0-9A-F]+)$`)
	reFuncOnly  = regexp.MustCompile(`^\$?` + IdentPattern + `\s*\(`)
)

// operand builds the node a parameter would get from the grammar, as far as
// a regex can tell.
func operand(text string, line int) *ast.Node {
	switch {
	case reIdentOnly.MatchString(text):
		return ast.New(ast.KindIdentifier, text, line).With(ast.IdentAttrs{Identifier: ident.Normalize(text)})
	case reIntOnly.MatchString(text):
		return ast.New(ast.KindIntLiteral, text, line).With(ast.LiteralAttrs{Value: text})
	case len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"':
		value := strings.ReplaceAll(text[1:len(text)-1], `""`, `"`)
		return ast.New(ast.KindStringLiteral, text, line).With(ast.LiteralAttrs{Value: value})
	case text[0] == '@':
		return ast.New(ast.KindAddressOf, text, line).With(ast.OperatorAttrs{Operator: "@"})
	case reFuncOnly.MatchString(text):
		name, _, _ := strings.Cut(text, "(")
		return ast.New(ast.KindFunctionCall, text, line).With(ast.FuncCallAttrs{FunctionName: ident.Normalize(strings.TrimSpace(name))})
	}
	// всё остальное — как в исходном разборе, Identifier с сырым текстом
	return ast.New(ast.KindIdentifier, text, line).With(ast.IdentAttrs{Identifier: ident.NormalizeOutsideStrings(text)})
}

func parseLiteral(code string, line int) *ast.Node {
	items, ok := Literals(code)
	if !ok {
		return nil
	}
	return ast.New(ast.KindLiteralDeclaration, code, line).With(ast.LiteralDeclAttrs{Items: items})
}

func parseDeclaration(code string, line int) *ast.Node {
	if reProc.MatchString(code) {
		return parseProcedure(code, line)
	}
	attrs, ok := Declaration(code)
	if !ok {
		return nil
	}
	return ast.New(ast.KindVariableDeclaration, code, line).With(attrs)
}

func parseDirective(code string, line int) *ast.Node {
	m := reDirective.FindStringSubmatch(code)
	if m == nil {
		return nil
	}
	return ast.New(ast.KindDirectiveLine, code, line).With(ast.DirectiveAttrs{Directives: SplitTopLevel(m[1], ',')})
}

func parseReturn(code string, line int) *ast.Node {
	m := reReturn.FindStringSubmatch(code)
	if m == nil {
		return nil
	}
	var attrs ast.ReturnAttrs
	if parts := SplitTopLevel(m[1], ','); len(parts) > 0 {
		attrs.Value = Clean(parts[0])
		if len(parts) > 1 {
			attrs.Status = Clean(parts[1])
		}
	}
	return ast.New(ast.KindReturnStatement, code, line).With(attrs)
}

func parseBegin(code string, line int) *ast.Node {
	return ast.New(ast.KindBeginBlock, code, line)
}

func parseEnd(code string, line int) *ast.Node {
	m := reEnd.FindStringSubmatch(code)
	if m == nil {
		return nil
	}
	return ast.New(ast.KindEndStatement, code, line).With(ast.EndAttrs{Keyword: strings.ToUpper(m[1])})
}

func parseElse(code string, line int) *ast.Node {
	return ast.New(ast.KindElseStatement, code, line)
}

func parseIf(code string, line int) *ast.Node {
	m := reIf.FindStringSubmatch(code)
	if m == nil {
		return nil
	}
	n := ast.New(ast.KindIfStatement, "IF "+m[1]+" THEN...", line)
	return n.With(ast.CondAttrs{Condition: Clean(m[1])})
}

func parseWhile(code string, line int) *ast.Node {
	m := reWhile.FindStringSubmatch(code)
	if m == nil {
		return nil
	}
	n := ast.New(ast.KindWhileStatement, "WHILE "+m[1]+" DO...", line)
	return n.With(ast.CondAttrs{Condition: Clean(m[1])})
}

func parseAssignment(code string, line int) *ast.Node {
	i := IndexOutsideStrings(code, ":=")
	target, value := strings.TrimSpace(code[:i]), code[i+2:]
	if target == "" {
		return nil
	}
	return ast.New(ast.KindAssignmentStatement, code, line).With(ast.AssignAttrs{
		Target: Clean(target),
		Value:  Clean(value),
	})
}

func parseAssert(code string, line int) *ast.Node {
	m := reAssert.FindStringSubmatch(code)
	if m == nil {
		return nil
	}
	attrs := ast.AssertAttrs{Condition: Clean(m[1])}
	if parts := SplitTopLevel(m[1], ':'); len(parts) == 2 {
		attrs = ast.AssertAttrs{Level: Clean(parts[0]), Condition: Clean(parts[1])}
	}
	return ast.New(ast.KindAssertStatement, code, line).With(attrs)
}

func parseCase(code string, line int) *ast.Node {
	m := reCase.FindStringSubmatch(code)
	if m == nil {
		return nil
	}
	return ast.New(ast.KindCaseStatement, "CASE "+m[1]+" OF...", line).With(ast.CaseAttrs{Selector: Clean(m[1]), Multiline: true})
}

func identStatement(kind ast.Kind, keyword string) func(string, int) *ast.Node {
	re := regexp.MustCompile(`(?i)^` + keyword + `\s+(` + IdentPattern + `)\s*;?$`)
	return func(code string, line int) *ast.Node {
		m := re.FindStringSubmatch(code)
		if m == nil {
			return nil
		}
		return ast.New(kind, code, line).With(ast.IdentAttrs{Identifier: ident.Normalize(m[1])})
	}
}

func parseGoto(code string, line int) *ast.Node {
	m := reGoto.FindStringSubmatch(code)
	if m == nil {
		return nil
	}
	return ast.New(ast.KindGotoStatement, code, line).With(ast.GotoAttrs{Label: ident.Normalize(m[1])})
}

// scanStatement: "SCAN cw[1] WHILE " " -> @begin^ptr;"
func scanStatement(kind ast.Kind, keyword string) func(string, int) *ast.Node {
	re := regexp.MustCompile(`(?i)^` + keyword + `\s+(.+?)\s+(WHILE|UNTIL)\s+(.+?)(?:\s*->\s*(.+?))?\s*;?$`)
	return func(code string, line int) *ast.Node {
		m := re.FindStringSubmatch(code)
		if m == nil {
			return nil
		}
		return ast.New(kind, code, line).With(ast.ScanAttrs{
			Target:    Clean(m[1]),
			Condition: strings.TrimSpace(m[3]),
			Pointer:   Clean(m[4]),
			Until:     strings.EqualFold(m[2], "UNTIL"),
		})
	}
}

func parseStore(code string, line int) *ast.Node {
	m := reStore.FindStringSubmatch(code)
	if m == nil {
		return nil
	}
	parts := SplitTopLevel(m[1], ',')
	attrs := ast.StoreAttrs{Target: Clean(parts[0])}
	for _, p := range parts[1:] {
		attrs.Values = append(attrs.Values, Clean(p))
	}
	return ast.New(ast.KindStoreStatement, code, line).With(attrs)
}

var procAttributes = map[string]bool{
	"MAIN": true, "INTERRUPT": true, "RESIDENT": true, "CALLABLE": true,
	"PRIV": true, "VARIABLE": true, "EXTENSIBLE": true,
}

func parseProcedure(code string, line int) *ast.Node {
	m := reProc.FindStringSubmatch(code)
	if m == nil {
		return nil
	}
	attrs := ast.ProcAttrs{
		Name:           ident.Normalize(m[4]),
		Type:           strings.ToUpper(m[3]),
		ParametersText: strings.TrimSpace(m[5]),
	}
	if m[1] != "" {
		attrs.ReturnType = strings.ToLower(m[1] + strings.Join(strings.Fields(m[2]), ""))
	}
	var params []*ast.Node
	for _, p := range SplitTopLevel(m[5], ',') {
		name, _, _ := strings.Cut(p, ":")
		name = ident.Normalize(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		attrs.Parameters = append(attrs.Parameters, name)
		params = append(params, ast.New(ast.KindFormalParameter, p, line).With(ast.IdentAttrs{Identifier: name}))
	}
	for _, word := range strings.FieldsFunc(strings.ToUpper(m[6]), func(r rune) bool { return r == ',' || r == ';' || r == ' ' || r == '\t' }) {
		switch {
		case word == "FORWARD":
			attrs.Forward = true
		case word == "EXTERNAL":
			attrs.External = true
		case procAttributes[word]:
			attrs.Attributes = append(attrs.Attributes, word)
		}
	}
	node := ast.New(ast.KindProcedureDefinition, attrs.Type+" "+m[4]+"("+attrs.ParametersText+");", line).With(attrs)
	for _, p := range params {
		node.Add(p)
	}
	return node
}

func parseStruct(code string, line int) *ast.Node {
	m := reStruct.FindStringSubmatch(code)
	if m == nil {
		return nil
	}
	return ast.New(ast.KindStructDeclaration, code, line).With(ast.StructAttrs{
		Name:            ident.Normalize(m[3]),
		Indirection:     m[1] == ".",
		IndirectionKind: strings.ToUpper(m[2]),
		Template:        m[4] != "",
	})
}

func nameStatement(kind ast.Kind, keyword string) func(string, int) *ast.Node {
	re := regexp.MustCompile(`(?i)^` + keyword + `\s+(` + IdentPattern + `)\s*;?$`)
	return func(code string, line int) *ast.Node {
		m := re.FindStringSubmatch(code)
		if m == nil {
			return nil
		}
		name := ident.Normalize(m[1])
		if kind == ast.KindBlockDeclaration {
			return ast.New(kind, "BLOCK "+m[1]+";", line).With(ast.BlockAttrs{Name: name})
		}
		return ast.New(kind, code, line).With(ast.NameAttrs{Name: name})
	}
}
