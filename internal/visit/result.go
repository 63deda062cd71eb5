package visit

import (
	"fmt"

	"talfront/internal/ast"
)

// Fault types.
const (
	FaultMissingPart     = "MissingPart"
	FaultUnexpectedShape = "UnexpectedShape"
	FaultInternal        = "InternalFault"
)

// ErrorTextLimit bounds the text kept on a VisitorError node.
const ErrorTextLimit = 50

// Fault describes why a subtree could not be converted.
type Fault struct {
	Type    string
	Message string
	Text    string // исходный текст поддерева
	Line    int
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s", f.Type, f.Message)
}

// Result is the outcome of visiting one subtree. Exactly one of Node and
// Fault is set, or neither when the subtree produces no node.
type Result struct {
	Node  *ast.Node
	Fault *Fault
}

func ok(n *ast.Node) Result { return Result{Node: n} }

func fail(typ, msg, text string, line int) Result {
	return Result{Fault: &Fault{Type: typ, Message: msg, Text: text, Line: line}}
}

// Failed reports whether r carries a fault.
func (r Result) Failed() bool { return r.Fault != nil }

// OrError returns the node of r, or a VisitorError placeholder carrying the
// fault when r failed. text and line are used when the fault has none.
func OrError(r Result, text string, line int) *ast.Node {
	if r.Fault == nil {
		return r.Node
	}
	f := r.Fault
	if f.Text != "" {
		text = f.Text
	}
	if f.Line > 0 {
		line = f.Line
	}
	n := ast.New(ast.KindVisitorError, ast.Truncate(ast.FirstLine(text), ErrorTextLimit), line)
	return n.With(ast.FaultAttrs{Message: f.Message, Type: f.Type})
}
