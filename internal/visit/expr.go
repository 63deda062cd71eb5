package visit

import (
	"strings"

	"talfront/internal/ast"
	"talfront/internal/cst"
	"talfront/internal/source"
	"talfront/internal/token"
)

func (v *visitor) visitLogical(n *cst.Node, kw token.Kind, op string) Result {
	operands := n.Nodes()
	if len(operands) == 0 {
		return v.missing(n, "operand")
	}
	if !n.Has(kw) {
		return v.visit(operands[0])
	}
	node := v.newNode(ast.KindLogicalExpression, n, n.Text()).With(ast.OperatorAttrs{Operator: op})
	for _, o := range operands {
		node.Add(v.child(o))
	}
	return ok(node)
}

func (v *visitor) visitNot(n *cst.Node) Result {
	if !n.Has(token.KwNot) {
		return v.visitOnly(n)
	}
	operands := n.Nodes()
	if len(operands) == 0 {
		return v.missing(n, "operand of NOT")
	}
	node := v.newNode(ast.KindNotExpression, n, n.Text()).With(ast.OperatorAttrs{Operator: "NOT"})
	node.Add(v.child(operands[0]))
	return ok(node)
}

func (v *visitor) visitRelational(n *cst.Node) Result {
	operands := n.Nodes()
	switch len(operands) {
	case 0:
		return v.missing(n, "operand")
	case 1:
		return v.visit(operands[0])
	}
	var op string
	for _, c := range n.Children {
		if t, isTerm := c.(*cst.Terminal); isTerm {
			op = t.Text()
			break
		}
	}
	node := v.newNode(ast.KindRelationalExpression, n, n.Text()).With(ast.OperatorAttrs{Operator: op})
	node.Add(v.child(operands[0]))
	node.Add(v.child(operands[1]))
	return ok(node)
}

// visitBinary folds an additive or multiplicative chain to the left:
// a + b - c becomes (a + b) - c.
func (v *visitor) visitBinary(n *cst.Node) Result {
	operands := n.Nodes()
	switch len(operands) {
	case 0:
		return v.missing(n, "operand")
	case 1:
		return v.visit(operands[0])
	}
	var (
		acc  *ast.Node
		span source.Span
		op   string
	)
	for _, c := range n.Children {
		switch c := c.(type) {
		case *cst.Terminal:
			op = strings.ToUpper(c.Text())
		case *cst.Node:
			if acc == nil {
				acc = v.child(c)
				span = c.Span()
				continue
			}
			right := v.child(c)
			span = span.Cover(c.Span())
			b := v.newNode(ast.KindBinaryExpression, n, n.Slice(span)).With(ast.OperatorAttrs{Operator: op})
			b.Add(acc)
			b.Add(right)
			acc = b
		}
	}
	return ok(acc)
}

func (v *visitor) visitUnary(n *cst.Node) Result {
	first, isTerm := firstChild(n).(*cst.Terminal)
	if !isTerm {
		return v.visitOnly(n)
	}
	operands := n.Nodes()
	if len(operands) == 0 {
		return v.missing(n, "operand of "+first.Text())
	}
	node := v.newNode(ast.KindUnaryExpression, n, n.Text()).With(ast.OperatorAttrs{Operator: first.Text()})
	node.Add(v.child(operands[0]))
	return ok(node)
}

func firstChild(n *cst.Node) cst.Tree {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

func (v *visitor) visitPrimary(n *cst.Node) Result {
	switch {
	case n.Child(cst.RuleLiteral) != nil:
		return v.visit(n.Child(cst.RuleLiteral))
	case n.Has(token.LParen):
		if e := n.Child(cst.RuleExpression); e != nil {
			return v.visit(e)
		}
		return v.missing(n, "parenthesized expression")
	case n.Has(token.At):
		inner := n.Child(cst.RulePrimary)
		if inner == nil {
			return v.missing(n, "operand of @")
		}
		node := v.newNode(ast.KindAddressOf, n, n.Text()).With(ast.OperatorAttrs{Operator: "@"})
		node.Add(v.child(inner))
		return ok(node)
	case n.Child(cst.RuleFunctionCall) != nil:
		return v.visit(n.Child(cst.RuleFunctionCall))
	case n.Child(cst.RuleQualifiedName) != nil:
		return v.visit(n.Child(cst.RuleQualifiedName))
	}
	return v.missing(n, "primary expression")
}

// visitQualifiedName — простое имя без квалификаторов даёт Identifier.
func (v *visitor) visitQualifiedName(n *cst.Node) Result {
	idents := n.Tokens(token.Ident)
	if len(idents) == 0 {
		return v.missing(n, "identifier")
	}
	indirect := n.Child(cst.RuleIndirection) != nil
	if len(idents) == 1 && !indirect && len(n.Nodes()) == 0 {
		return ok(v.identifier(idents[0]))
	}
	components := make([]string, 0, len(idents))
	for _, id := range idents {
		components = append(components, identText(id))
	}
	node := v.newNode(ast.KindQualifiedName, n, n.Text()).With(ast.QualifiedAttrs{
		HasIndirection: indirect,
		Components:     components,
	})
	for _, c := range n.Children {
		switch c := c.(type) {
		case *cst.Terminal:
			if c.Tok.Kind == token.Ident {
				node.Add(v.identifier(c))
			}
		case *cst.Node:
			if c.Rule == cst.RuleIndirection {
				continue
			}
			node.Add(v.child(c))
		}
	}
	return ok(node)
}

func (v *visitor) visitBitField(n *cst.Node) Result {
	bounds := n.Rules(cst.RuleAdditive)
	if len(bounds) == 0 {
		return v.missing(n, "bit position")
	}
	attrs := ast.BitFieldAttrs{From: exprText(bounds[0])}
	if len(bounds) > 1 {
		attrs.To = exprText(bounds[1])
	}
	return ok(v.newNode(ast.KindBitField, n, n.Text()).With(attrs))
}

func (v *visitor) visitFunctionCall(n *cst.Node) Result {
	fn := n.Token(token.Ident)
	if fn == nil {
		fn = n.Token(token.Builtin)
	}
	if fn == nil {
		return v.missing(n, "function name")
	}
	nodes, _ := v.params(n.Child(cst.RuleActualParameterList))
	node := v.newNode(ast.KindFunctionCall, n, n.Text()).With(ast.FuncCallAttrs{FunctionName: identText(fn)})
	for _, p := range nodes {
		node.Add(p)
	}
	return ok(node)
}
