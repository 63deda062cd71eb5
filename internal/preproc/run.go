package preproc

import (
	"fmt"
	"strings"

	"talfront/internal/ast"
	"talfront/internal/diag"
	"talfront/internal/fallback"
)

// ExtraLinesConsumed is the overflow attribute carrying a span's length.
const ExtraLinesConsumed = "lines_consumed"

// InnerParser turns one statement of a span into a node, or returns nil.
// text may join several original lines; line is where it starts.
type InnerParser func(text string, line int) *ast.Node

// Unit is either a synthesized node covering Consumed lines or one raw line.
type Unit struct {
	Node     *ast.Node
	Text     string
	Start    int // 1-based
	Consumed int
}

// Preprocessed reports whether u came from a pattern.
func (u Unit) Preprocessed() bool { return u.Node != nil }

// Context is what a handler sees of the file.
type Context struct {
	Lines   []string
	Index   int // 0-based start of the span
	Pattern Pattern
	Inner   InnerParser
}

// LineNo converts a 0-based index to a 1-based line number.
func (c *Context) LineNo(i int) int { return i + 1 }

// Code returns line i without comments, trimmed.
func (c *Context) Code(i int) string {
	if i < 0 || i >= len(c.Lines) {
		return ""
	}
	return fallback.StripComment(c.Lines[i])
}

func (c *Context) parse(text string, line int) *ast.Node {
	if c.Inner == nil {
		return nil
	}
	return c.Inner(text, line)
}

// Handler synthesizes a node for the span starting at c.Index and reports
// how many lines it consumed. A nil node means the pattern does not apply.
type Handler func(c *Context) (*ast.Node, int)

// Run splits lines into units. Every original line belongs to exactly one
// unit and units are returned in source order.
func (t *Table) Run(lines []string, inner InnerParser) []Unit {
	units := make([]Unit, 0, len(lines))
	for i := 0; i < len(lines); {
		node, n, id := t.match(lines, i, inner)
		if node == nil {
			units = append(units, Unit{Text: lines[i], Start: i + 1, Consumed: 1})
			i++
			continue
		}
		node.MarkPreprocessed(id)
		node.SetExtra(ExtraLinesConsumed, n)
		units = append(units, Unit{Node: node, Start: i + 1, Consumed: n})
		i += n
	}
	return units
}

func (t *Table) match(lines []string, i int, inner InnerParser) (*ast.Node, int, string) {
	if t == nil || len(t.entries) == 0 {
		return nil, 0, ""
	}
	trimmed := strings.TrimSpace(lines[i])
	if trimmed == "" {
		return nil, 0, ""
	}
	for _, e := range t.entries {
		if !e.start.MatchString(trimmed) {
			continue
		}
		c := &Context{Lines: lines, Index: i, Pattern: e.pattern, Inner: inner}
		node, n, err := t.call(e.handler, c)
		if err != nil {
			t.logger.Warn("preprocessor handler failed", "pattern", e.pattern.ID, "handler", e.pattern.Handler,
				"line", i+1, "code", diag.CfgHandlerFault.ID(), "err", err)
			continue
		}
		if node == nil {
			continue
		}
		n = max(n, 1)
		n = min(n, len(lines)-i)
		return node, n, e.pattern.ID
	}
	return nil, 0, ""
}

func (t *Table) call(h Handler, c *Context) (node *ast.Node, n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			node, n, err = nil, 0, fmt.Errorf("panic: %v", r)
		}
	}()
	node, n = h(c)
	return node, n, nil
}
