// Package visit converts concrete parse trees into ast nodes.
//
// Every production maps to one conversion function. Conversions return a
// Result instead of panicking; a failed subtree is replaced in its parent by
// a VisitorError node (OrError), so siblings and ancestors still complete.
// Single-operand expression levels collapse to their operand.
package visit

import (
	"fmt"

	"talfront/internal/ast"
	"talfront/internal/cst"
	"talfront/internal/ident"
	"talfront/internal/source"
	"talfront/internal/token"
)

type visitor struct {
	unit *source.File
	base int // исходная строка первой строки юнита
}

// Visit converts tree, parsed from unit, into an ast node. base is the
// original line number of the first line of unit. A panic inside a
// conversion is recovered into a fault.
func Visit(unit *source.File, tree cst.Tree, base int) Result {
	v := &visitor{unit: unit, base: base}
	return v.visit(tree)
}

func (v *visitor) visit(t cst.Tree) (res Result) {
	if t == nil {
		return Result{}
	}
	defer func() {
		if r := recover(); r != nil {
			res = fail(FaultInternal, fmt.Sprint(r), t.Text(), v.lineOf(t))
		}
	}()
	switch t := t.(type) {
	case *cst.Node:
		if t == nil {
			return Result{}
		}
		return v.visitNode(t)
	case *cst.Terminal:
		return v.visitTerminal(t)
	case *cst.ErrorTerm:
		n := ast.New(ast.KindErrorNode, t.Text(), v.lineOf(t))
		return ok(n.With(ast.ParseErrorAttrs{Message: "Parse error encountered"}))
	}
	return fail(FaultUnexpectedShape, fmt.Sprintf("unknown tree %T", t), "", v.base)
}

// child visits t and substitutes a VisitorError on fault.
func (v *visitor) child(t cst.Tree) *ast.Node {
	if t == nil {
		return nil
	}
	if n, isNode := t.(*cst.Node); isNode && n == nil {
		return nil
	}
	return OrError(v.visit(t), t.Text(), v.lineOf(t))
}

// lineOf maps the start of t to an original-source line.
func (v *visitor) lineOf(t cst.Tree) int {
	if t == nil || v.unit == nil {
		return v.base
	}
	if n, isNode := t.(*cst.Node); isNode && (n == nil || len(n.Children) == 0) {
		return v.base
	}
	pos := v.unit.Position(t.Span().Start)
	return v.base + int(pos.Line) - 1
}

func (v *visitor) newNode(kind ast.Kind, t cst.Tree, text string) *ast.Node {
	return ast.New(kind, text, v.lineOf(t))
}

func (v *visitor) missing(n *cst.Node, what string) Result {
	return fail(FaultMissingPart, fmt.Sprintf("%s: missing %s", n.Rule, what), n.Text(), v.lineOf(n))
}

func (v *visitor) visitNode(n *cst.Node) Result {
	switch n.Rule {
	case cst.RuleProgramElement, cst.RuleTopLevelDeclaration:
		nodes := n.Nodes()
		if len(nodes) == 0 {
			return Result{}
		}
		return v.visit(nodes[0])
	case cst.RuleDirectiveLine:
		return v.visitDirectiveLine(n)
	case cst.RuleLiteralDeclaration:
		return v.visitLiteralDeclaration(n)
	case cst.RuleVariableDeclaration:
		return v.visitVariableDeclaration(n)
	case cst.RuleStructDeclaration:
		return v.visitStructDeclaration(n)
	case cst.RuleNameDeclaration:
		return v.visitNameDeclaration(n)
	case cst.RuleBlockDeclaration:
		return v.visitBlockDeclaration(n)
	case cst.RuleProcedureDefinition:
		return v.visitProcedureDefinition(n)
	case cst.RuleStatement:
		return v.visitStatement(n)
	case cst.RuleAssignmentStatement:
		return v.visitAssignment(n)
	case cst.RuleIfStatement:
		return v.visitIf(n)
	case cst.RuleWhileStatement:
		return v.visitWhile(n)
	case cst.RuleForStatement:
		return v.visitFor(n)
	case cst.RuleCallStatement:
		return v.visitCall(n)
	case cst.RuleReturnStatement:
		return v.visitReturn(n)
	case cst.RuleBlockStatement:
		return v.visitBlock(n)
	case cst.RuleEmptyStatement:
		return ok(v.newNode(ast.KindEmptyStatement, n, ";"))
	case cst.RuleAssertStatement:
		return v.visitAssert(n)
	case cst.RuleCaseStatement:
		return v.visitCase(n)
	case cst.RuleDropStatement:
		return v.visitIdentStatement(n, ast.KindDropStatement)
	case cst.RuleUseStatement:
		return v.visitIdentStatement(n, ast.KindUseStatement)
	case cst.RuleGotoStatement:
		return v.visitGoto(n)
	case cst.RuleScanStatement:
		return v.visitScan(n, ast.KindScanStatement)
	case cst.RuleRscanStatement:
		return v.visitScan(n, ast.KindRscanStatement)
	case cst.RuleStoreStatement:
		return v.visitStore(n)
	case cst.RuleLvalue, cst.RuleExpression, cst.RuleIndex, cst.RuleInitializer:
		return v.visitOnly(n)
	case cst.RuleLogicalOr:
		return v.visitLogical(n, token.KwOr, "OR")
	case cst.RuleLogicalAnd:
		return v.visitLogical(n, token.KwAnd, "AND")
	case cst.RuleLogicalNot:
		return v.visitNot(n)
	case cst.RuleRelational:
		return v.visitRelational(n)
	case cst.RuleAdditive, cst.RuleMultiplicative:
		return v.visitBinary(n)
	case cst.RuleUnary:
		return v.visitUnary(n)
	case cst.RulePrimary:
		return v.visitPrimary(n)
	case cst.RuleQualifiedName:
		return v.visitQualifiedName(n)
	case cst.RuleBitField:
		return v.visitBitField(n)
	case cst.RuleFunctionCall:
		return v.visitFunctionCall(n)
	case cst.RuleLiteral:
		return v.visitLiteral(n)
	case cst.RuleDirectiveElement, cst.RuleLiteralItem, cst.RuleTypeSpecifier,
		cst.RuleVariableDeclarator, cst.RuleIndirection, cst.RuleArraySpecifier,
		cst.RuleFormalParameterList, cst.RuleFormalParameter, cst.RuleProcedureAttribute,
		cst.RuleActualParameterList, cst.RuleCaseLabel, cst.RuleInvalid:
		return fail(FaultUnexpectedShape, fmt.Sprintf("%s is not visited directly", n.Rule), n.Text(), v.lineOf(n))
	}
	return fail(FaultUnexpectedShape, fmt.Sprintf("unknown rule %d", n.Rule), n.Text(), v.lineOf(n))
}

// visitOnly — обёртка вокруг единственной дочерней продукции
func (v *visitor) visitOnly(n *cst.Node) Result {
	nodes := n.Nodes()
	if len(nodes) == 0 {
		return v.missing(n, "operand")
	}
	return v.visit(nodes[0])
}

func (v *visitor) visitTerminal(t *cst.Terminal) Result {
	if t.Tok.Kind == token.Ident {
		return ok(v.identifier(t))
	}
	return fail(FaultUnexpectedShape, fmt.Sprintf("unexpected terminal %s", t.Tok.Kind), t.Text(), v.lineOf(t))
}

func (v *visitor) identifier(t *cst.Terminal) *ast.Node {
	n := v.newNode(ast.KindIdentifier, t, t.Text())
	return n.With(ast.IdentAttrs{Identifier: ident.Normalize(t.Text())})
}

// exprText — текст выражения для атрибутов: '^' заменяется вне строк
func exprText(t cst.Tree) string {
	if t == nil {
		return ""
	}
	if n, isNode := t.(*cst.Node); isNode && n == nil {
		return ""
	}
	return ident.NormalizeOutsideStrings(t.Text())
}

func identText(t *cst.Terminal) string {
	if t == nil {
		return ""
	}
	return ident.Normalize(t.Text())
}
