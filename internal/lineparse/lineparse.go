// Package lineparse runs the TAL grammar over one unit at a time.
//
// Each call builds a fresh lexer and parser scoped to the unit, collects
// syntax errors privately and reports them in original-source coordinates.
// Faults inside the grammar or the visitor never escape a call.
package lineparse

import (
	"fmt"

	"talfront/internal/ast"
	"talfront/internal/cst"
	"talfront/internal/diag"
	"talfront/internal/parser"
	"talfront/internal/source"
	"talfront/internal/visit"
)

// Grammar parses one unit into a concrete tree and reports syntax errors
// to r. Implementations must not keep state between calls.
type Grammar interface {
	ParseUnit(unit *source.File, r diag.Reporter) cst.Tree
}

// TAL is the built-in line grammar.
type TAL struct{}

func (TAL) ParseUnit(unit *source.File, r diag.Reporter) cst.Tree {
	return parser.ParseUnit(unit, parser.Options{Reporter: r})
}

// GrammarFunc adapts a function to Grammar.
type GrammarFunc func(unit *source.File, r diag.Reporter) cst.Tree

func (f GrammarFunc) ParseUnit(unit *source.File, r diag.Reporter) cst.Tree {
	return f(unit, r)
}

// Error is a syntax problem in original-source coordinates. Column is a
// 0-based byte offset within the line.
type Error struct {
	Line    int
	Column  int
	Message string
	Code    diag.Code
}

// Outcome is the result of parsing one unit: a node, or errors, or both
// empty when the unit produced nothing.
type Outcome struct {
	Node   *ast.Node
	Errors []Error
}

// OK reports whether the grammar produced a node without errors.
func (o Outcome) OK() bool { return o.Node != nil && len(o.Errors) == 0 }

// collector — приватный приёмник ошибок одного вызова
type collector struct {
	unit  *source.File
	start int
	errs  []Error
}

func (c *collector) Report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if sev < diag.SevError {
		return
	}
	pos := c.unit.Position(sp.Start)
	c.errs = append(c.errs, Error{
		Line:    c.start + int(pos.Line) - 1,
		Column:  int(pos.Col) - 1,
		Message: msg,
		Code:    code,
	})
}

// Parse parses text, whose first line is startLine in the original source.
// On any syntax error the node is dropped and only the errors are returned.
// A nil grammar means TAL.
func Parse(text string, startLine int, g Grammar) (out Outcome) {
	if g == nil {
		g = TAL{}
	}
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Errors: []Error{{
				Line:    startLine,
				Column:  0,
				Message: fmt.Sprintf("grammar/visitor processing error: %v", r),
				Code:    diag.SynInternalFault,
			}}}
		}
	}()

	unit := source.NewUnit(text)
	col := &collector{unit: unit, start: startLine}
	tree := g.ParseUnit(unit, col)
	if len(col.errs) > 0 {
		return Outcome{Errors: col.errs}
	}
	if tree == nil {
		return Outcome{}
	}

	res := visit.Visit(unit, tree, startLine)
	if res.Fault != nil {
		return Outcome{Errors: []Error{{
			Line:    res.Fault.Line,
			Column:  0,
			Message: "grammar/visitor processing error: " + res.Fault.Error(),
			Code:    diag.SynInternalFault,
		}}}
	}
	return Outcome{Node: res.Node}
}
