package visit

import (
	"strings"

	"talfront/internal/ast"
	"talfront/internal/cst"
	"talfront/internal/token"
)

func (v *visitor) visitDirectiveLine(n *cst.Node) Result {
	node := v.newNode(ast.KindDirectiveLine, n, n.Text())
	var dirs []string
	for _, el := range n.Rules(cst.RuleDirectiveElement) {
		dirs = append(dirs, el.Text())
	}
	return ok(node.With(ast.DirectiveAttrs{Directives: dirs}))
}

func (v *visitor) visitLiteralDeclaration(n *cst.Node) Result {
	node := v.newNode(ast.KindLiteralDeclaration, n, n.Text())
	var items []ast.LiteralItem
	for _, it := range n.Rules(cst.RuleLiteralItem) {
		name := it.Token(token.Ident)
		if name == nil {
			return v.missing(it, "literal name")
		}
		items = append(items, ast.LiteralItem{
			Name:  identText(name),
			Value: exprText(it.Child(cst.RuleExpression)),
		})
	}
	return ok(node.With(ast.LiteralDeclAttrs{Items: items}))
}

// typeName — "INT (32)" -> "int(32)"
func typeName(ts *cst.Node) string {
	if ts == nil {
		return ""
	}
	return strings.ToLower(strings.Join(strings.Fields(ts.Text()), ""))
}

func (v *visitor) visitVariableDeclaration(n *cst.Node) Result {
	node := v.newNode(ast.KindVariableDeclaration, n, n.Text())
	ts := n.Child(cst.RuleTypeSpecifier)
	if ts == nil {
		return v.missing(n, "type specifier")
	}
	attrs := ast.VarDeclAttrs{Type: typeName(ts)}
	for _, d := range n.Rules(cst.RuleVariableDeclarator) {
		name := d.Token(token.Ident)
		if name == nil {
			return v.missing(d, "variable name")
		}
		ind := d.Child(cst.RuleIndirection)
		variable := ast.Variable{
			Name:            identText(name),
			Indirection:     ind != nil,
			IndirectionKind: pointerKind(ind),
		}
		if as := d.Child(cst.RuleArraySpecifier); as != nil {
			variable.ArraySpec = exprText(as)
		}
		if init := d.Child(cst.RuleInitializer); init != nil {
			variable.InitValue = exprText(init)
		}
		attrs.Variables = append(attrs.Variables, variable)
	}
	return ok(node.With(attrs))
}

func (v *visitor) visitStructDeclaration(n *cst.Node) Result {
	node := v.newNode(ast.KindStructDeclaration, n, n.Text())
	name := n.Token(token.Ident)
	if name == nil {
		return v.missing(n, "struct name")
	}
	ind := n.Child(cst.RuleIndirection)
	return ok(node.With(ast.StructAttrs{
		Name:            identText(name),
		Indirection:     ind != nil,
		IndirectionKind: pointerKind(ind),
		Template:        n.Has(token.LParen),
	}))
}

// pointerKind — "EXT" или "SG" после точки, "" для обычного указателя.
func pointerKind(ind *cst.Node) string {
	if t := ind.Token(token.Ident); t != nil {
		return strings.ToUpper(t.Text())
	}
	return ""
}

func (v *visitor) visitNameDeclaration(n *cst.Node) Result {
	name := n.Token(token.Ident)
	if name == nil {
		return v.missing(n, "module name")
	}
	node := v.newNode(ast.KindNameDeclaration, n, n.Text())
	return ok(node.With(ast.NameAttrs{Name: identText(name)}))
}

func (v *visitor) visitBlockDeclaration(n *cst.Node) Result {
	name := n.Token(token.Ident)
	if name == nil {
		return v.missing(n, "block name")
	}
	node := v.newNode(ast.KindBlockDeclaration, n, "BLOCK "+name.Text()+";")
	return ok(node.With(ast.BlockAttrs{Name: identText(name)}))
}

func (v *visitor) visitProcedureDefinition(n *cst.Node) Result {
	name := n.Token(token.Ident)
	if name == nil {
		return v.missing(n, "procedure name")
	}
	kw := n.Token(token.KwProc)
	if kw == nil {
		kw = n.Token(token.KwSubproc)
	}
	if kw == nil {
		return v.missing(n, "PROC keyword")
	}
	attrs := ast.ProcAttrs{
		Name:       identText(name),
		Type:       strings.ToUpper(kw.Text()),
		ReturnType: typeName(n.Child(cst.RuleTypeSpecifier)),
		Forward:    n.Has(token.KwForward),
		External:   n.Has(token.KwExternal),
	}
	var params []*ast.Node
	if list := n.Child(cst.RuleFormalParameterList); list != nil {
		text := list.Text()
		text = strings.TrimSuffix(strings.TrimPrefix(text, "("), ")")
		attrs.ParametersText = strings.TrimSpace(text)
		for _, fp := range list.Rules(cst.RuleFormalParameter) {
			pn := fp.Token(token.Ident)
			if pn == nil {
				continue
			}
			attrs.Parameters = append(attrs.Parameters, identText(pn))
			p := v.newNode(ast.KindFormalParameter, fp, fp.Text())
			params = append(params, p.With(ast.IdentAttrs{Identifier: identText(pn)}))
		}
	}
	for _, a := range n.Rules(cst.RuleProcedureAttribute) {
		attrs.Attributes = append(attrs.Attributes, strings.ToUpper(strings.Join(strings.Fields(a.Text()), "")))
	}
	text := attrs.Type + " " + name.Text() + "(" + attrs.ParametersText + ");"
	node := v.newNode(ast.KindProcedureDefinition, n, text).With(attrs)
	for _, p := range params {
		node.Add(p)
	}
	return ok(node)
}
