package visit

import (
	"strings"

	"talfront/internal/ast"
	"talfront/internal/cst"
	"talfront/internal/token"
)

// statementOrder — порядок проверки альтернатив statement; менять нельзя,
// от него зависит, какой узел получит строка вида "x := f(y)".
var statementOrder = []cst.Rule{
	cst.RuleAssignmentStatement,
	cst.RuleIfStatement,
	cst.RuleWhileStatement,
	cst.RuleForStatement,
	cst.RuleCallStatement,
	cst.RuleReturnStatement,
	cst.RuleBlockStatement,
	cst.RuleDirectiveLine,
	cst.RuleEmptyStatement,
	cst.RuleExpression,
	cst.RuleAssertStatement,
	cst.RuleCaseStatement,
	cst.RuleDropStatement,
	cst.RuleGotoStatement,
	cst.RuleRscanStatement,
	cst.RuleScanStatement,
	cst.RuleStoreStatement,
	cst.RuleUseStatement,
}

// visitStatement never returns an empty result: a statement with no known
// alternative becomes a generic Statement node with its raw text.
func (v *visitor) visitStatement(n *cst.Node) Result {
	for _, rule := range statementOrder {
		c := n.Child(rule)
		if c == nil {
			continue
		}
		if rule == cst.RuleExpression {
			node := v.newNode(ast.KindExpressionStatement, c, c.Text())
			node.Add(v.child(c))
			return ok(node)
		}
		return v.visit(c)
	}
	return ok(v.newNode(ast.KindStatement, n, n.Text()))
}

func trimStmt(s string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ";"))
}

func (v *visitor) visitAssignment(n *cst.Node) Result {
	lv := n.Child(cst.RuleLvalue)
	if lv == nil {
		return v.missing(n, "assignment target")
	}
	var rhs *cst.Node
	if rhs = n.Child(cst.RuleAssignmentStatement); rhs == nil {
		rhs = n.Child(cst.RuleExpression)
	}
	if rhs == nil {
		return v.missing(n, "assigned value")
	}
	node := v.newNode(ast.KindAssignmentStatement, n, n.Text()).With(ast.AssignAttrs{
		Target: exprText(lv),
		Value:  trimStmt(exprText(rhs)),
	})
	node.Add(v.child(lv))
	node.Add(v.child(rhs))
	return ok(node)
}

// splitAt делит дочерние операторы на стоящие до и после терминала kw
func splitAt(n *cst.Node, kw token.Kind) (before, after []*cst.Node) {
	stmts := n.Rules(cst.RuleStatement)
	t := n.Token(kw)
	if t == nil {
		return stmts, nil
	}
	for _, s := range stmts {
		if s.Span().Start < t.Tok.Span.Start {
			before = append(before, s)
		} else {
			after = append(after, s)
		}
	}
	return before, after
}

func (v *visitor) visitIf(n *cst.Node) Result {
	cond := n.Child(cst.RuleExpression)
	if cond == nil {
		return v.missing(n, "condition")
	}
	node := v.newNode(ast.KindIfStatement, n, "IF "+cond.Text()+" THEN...")
	node.With(ast.CondAttrs{Condition: exprText(cond)})
	node.Add(v.child(cond))

	thenStmts, elseStmts := splitAt(n, token.KwElse)
	if then := n.Token(token.KwThen); then != nil {
		body := v.newNode(ast.KindThenBody, then, "")
		for _, s := range thenStmts {
			body.Add(v.child(s))
		}
		node.Add(body)
	}
	if els := n.Token(token.KwElse); els != nil {
		body := v.newNode(ast.KindElseBody, els, "")
		for _, s := range elseStmts {
			body.Add(v.child(s))
		}
		node.Add(body)
	}
	if end := n.Token(token.KwEndIf); end != nil {
		m := v.newNode(ast.KindEndIfMarker, end, end.Text())
		node.Add(m.With(ast.EndAttrs{Keyword: strings.ToUpper(end.Text())}))
	}
	return ok(node)
}

func (v *visitor) visitWhile(n *cst.Node) Result {
	cond := n.Child(cst.RuleExpression)
	if cond == nil {
		return v.missing(n, "condition")
	}
	node := v.newNode(ast.KindWhileStatement, n, "WHILE "+cond.Text()+" DO...")
	node.With(ast.CondAttrs{Condition: exprText(cond)})
	node.Add(v.child(cond))
	for _, s := range n.Rules(cst.RuleStatement) {
		node.Add(v.child(s))
	}
	return ok(node)
}

func (v *visitor) visitFor(n *cst.Node) Result {
	lv := n.Child(cst.RuleLvalue)
	exprs := n.Rules(cst.RuleExpression)
	if lv == nil || len(exprs) < 2 {
		return v.missing(n, "loop bounds")
	}
	attrs := ast.ForAttrs{
		Variable:  exprText(lv),
		Start:     exprText(exprs[0]),
		Limit:     exprText(exprs[1]),
		Direction: "TO",
	}
	if n.Has(token.KwDownto) {
		attrs.Direction = "DOWNTO"
	}
	if len(exprs) > 2 {
		attrs.Step = exprText(exprs[2])
	}
	node := v.newNode(ast.KindForStatement, n, n.Text()).With(attrs)
	node.Add(v.child(lv))
	for _, e := range exprs {
		node.Add(v.child(e))
	}
	for _, s := range n.Rules(cst.RuleStatement) {
		node.Add(v.child(s))
	}
	return ok(node)
}

// params visits the expressions of an actual parameter list. Empty slots
// (f(a,,c)) produce nothing.
func (v *visitor) params(list *cst.Node) ([]*ast.Node, []ast.Param) {
	if list == nil {
		return nil, nil
	}
	var nodes []*ast.Node
	var params []ast.Param
	for _, e := range list.Rules(cst.RuleExpression) {
		pn := v.child(e)
		if pn == nil {
			continue
		}
		nodes = append(nodes, pn)
		params = append(params, ast.Param{NodeType: pn.Kind.String(), Text: pn.Text, Line: pn.Line})
	}
	return nodes, params
}

func (v *visitor) visitCall(n *cst.Node) Result {
	fn := n.Token(token.Ident)
	if fn == nil {
		fn = n.Token(token.Builtin)
	}
	if fn == nil {
		return v.missing(n, "procedure name")
	}
	nodes, params := v.params(n.Child(cst.RuleActualParameterList))
	node := v.newNode(ast.KindCallStatement, n, n.Text()).With(ast.CallAttrs{
		Function:   identText(fn),
		CallText:   n.Text(),
		Parameters: params,
	})
	for _, p := range nodes {
		node.Add(p)
	}
	return ok(node)
}

func (v *visitor) visitReturn(n *cst.Node) Result {
	exprs := n.Rules(cst.RuleExpression)
	var attrs ast.ReturnAttrs
	if len(exprs) > 0 {
		attrs.Value = exprText(exprs[0])
	}
	if len(exprs) > 1 {
		attrs.Status = exprText(exprs[1])
	}
	node := v.newNode(ast.KindReturnStatement, n, n.Text()).With(attrs)
	for _, e := range exprs {
		node.Add(v.child(e))
	}
	return ok(node)
}

func (v *visitor) visitBlock(n *cst.Node) Result {
	node := v.newNode(ast.KindBlockStatement, n, n.Text())
	for _, s := range n.Rules(cst.RuleStatement) {
		node.Add(v.child(s))
	}
	return ok(node)
}

func (v *visitor) visitAssert(n *cst.Node) Result {
	exprs := n.Rules(cst.RuleExpression)
	if len(exprs) == 0 {
		return v.missing(n, "condition")
	}
	attrs := ast.AssertAttrs{Condition: exprText(exprs[0])}
	cond := exprs[0]
	if len(exprs) > 1 {
		// ASSERT level : condition
		attrs = ast.AssertAttrs{Level: exprText(exprs[0]), Condition: exprText(exprs[1])}
		cond = exprs[1]
	}
	node := v.newNode(ast.KindAssertStatement, n, n.Text()).With(attrs)
	node.Add(v.child(cond))
	return ok(node)
}

func (v *visitor) visitCase(n *cst.Node) Result {
	sel := n.Child(cst.RuleExpression)
	if sel == nil {
		return v.missing(n, "selector")
	}
	node := v.newNode(ast.KindCaseStatement, n, "CASE "+sel.Text()+" OF...")
	node.With(ast.CaseAttrs{Selector: exprText(sel)})
	node.Add(v.child(sel))
	for _, lbl := range n.Rules(cst.RuleCaseLabel) {
		ln := v.newNode(ast.KindCaseLabel, lbl, lbl.Text())
		var values []string
		for _, e := range lbl.Rules(cst.RuleExpression) {
			values = append(values, exprText(e))
			ln.Add(v.child(e))
		}
		for _, s := range lbl.Rules(cst.RuleStatement) {
			ln.Add(v.child(s))
		}
		ln.With(ast.CaseLabelAttrs{Value: strings.Join(values, ", "), Otherwise: lbl.Has(token.KwOtherwise)})
		node.Add(ln)
	}
	if end := n.Token(token.KwEnd); end != nil {
		m := v.newNode(ast.KindEndCaseMarker, end, end.Text())
		node.Add(m.With(ast.EndAttrs{Keyword: strings.ToUpper(end.Text())}))
	}
	return ok(node)
}

func (v *visitor) visitIdentStatement(n *cst.Node, kind ast.Kind) Result {
	id := n.Token(token.Ident)
	if id == nil {
		return v.missing(n, "identifier")
	}
	return ok(v.newNode(kind, n, n.Text()).With(ast.IdentAttrs{Identifier: identText(id)}))
}

func (v *visitor) visitGoto(n *cst.Node) Result {
	id := n.Token(token.Ident)
	if id == nil {
		return v.missing(n, "label")
	}
	return ok(v.newNode(ast.KindGotoStatement, n, n.Text()).With(ast.GotoAttrs{Label: identText(id)}))
}

func (v *visitor) visitScan(n *cst.Node, kind ast.Kind) Result {
	exprs := n.Rules(cst.RuleExpression)
	if len(exprs) < 2 {
		return v.missing(n, "scan target or condition")
	}
	attrs := ast.ScanAttrs{
		Target:    exprText(exprs[0]),
		Condition: exprText(exprs[1]),
		Until:     n.Has(token.KwUntil),
	}
	if len(exprs) > 2 {
		attrs.Pointer = exprText(exprs[2])
	}
	node := v.newNode(kind, n, n.Text()).With(attrs)
	node.Add(v.child(exprs[0]))
	node.Add(v.child(exprs[1]))
	return ok(node)
}

func (v *visitor) visitStore(n *cst.Node) Result {
	lv := n.Child(cst.RuleLvalue)
	if lv == nil {
		return v.missing(n, "store target")
	}
	attrs := ast.StoreAttrs{Target: exprText(lv)}
	for _, e := range n.Rules(cst.RuleExpression) {
		attrs.Values = append(attrs.Values, exprText(e))
	}
	node := v.newNode(ast.KindStoreStatement, n, n.Text()).With(attrs)
	node.Add(v.child(lv))
	return ok(node)
}
