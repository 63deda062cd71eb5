// Package testkit holds structural checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"talfront/internal/ast"
	"talfront/internal/hybrid"
)

// CheckDocument runs the invariants every generated document must hold
// for a source of lines lines:
// 1) coverage is within [0, 100] and success means no errors
// 2) every error points at a real line
// 3) top-level nodes follow source order and no node lies past the end
// 4) the serialized AST mirrors the live tree, when one is present
func CheckDocument(doc *hybrid.Document, lines int) error {
	if doc == nil {
		return fmt.Errorf("nil document")
	}

	// 1) coverage and success
	if doc.Coverage < 0 || doc.Coverage > 100 {
		return fmt.Errorf("coverage out of range: %v", doc.Coverage)
	}
	if doc.Success != (len(doc.Errors) == 0) {
		return fmt.Errorf("success=%v with %d errors", doc.Success, len(doc.Errors))
	}
	if doc.Stats.Lines != lines {
		return fmt.Errorf("stats count %d lines, source has %d", doc.Stats.Lines, lines)
	}

	// 2) errors
	for _, e := range doc.Errors {
		if e.Line < 1 || e.Line > lines {
			return fmt.Errorf("error on line %d outside 1..%d: %s", e.Line, lines, e.Message)
		}
	}

	// 3) node lines
	if doc.AST.Type != ast.KindProgram.String() {
		return fmt.Errorf("root is %q", doc.AST.Type)
	}
	prev := 0
	for i, child := range doc.AST.Children {
		if child.Line < prev {
			return fmt.Errorf("child %d (%s) on line %d precedes line %d", i, child.Type, child.Line, prev)
		}
		prev = child.Line
	}
	var bad error
	var walk func(n ast.NodeJSON)
	walk = func(n ast.NodeJSON) {
		if bad != nil {
			return
		}
		if n.Line < 0 || n.Line > lines {
			bad = fmt.Errorf("%s node on line %d outside 0..%d", n.Type, n.Line, lines)
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(doc.AST)
	if bad != nil {
		return bad
	}

	// 4) tree and serialized form agree
	if doc.Root != nil {
		if got, want := doc.AST.Count(), ast.Count(doc.Root); got != want {
			return fmt.Errorf("serialized tree has %d nodes, live tree %d", got, want)
		}
	}
	return nil
}
