// Package cst holds the concrete parse tree produced by the line grammar.
//
// A tree mirrors the productions the parser went through: every production
// becomes a Node, every consumed token a Terminal. Tokens skipped during
// error recovery are kept as ErrorTerm leaves, so a tree always covers the
// whole unit. Text accessors slice the unit content, which keeps the
// original spacing.
package cst

import (
	"strings"

	"talfront/internal/source"
	"talfront/internal/token"
)

// Tree is a Node, a Terminal or an ErrorTerm.
type Tree interface {
	Span() source.Span
	Text() string
	isTree()
}

// Node is an interior production.
type Node struct {
	Rule     Rule
	Children []Tree
	span     source.Span
	src      []byte
	spanSet  bool
}

// Terminal is a token consumed by a production.
type Terminal struct {
	Tok token.Token
}

// ErrorTerm is a token consumed while recovering from a syntax error.
type ErrorTerm struct {
	Tok token.Token
}

// NewNode starts a node over the given unit content.
func NewNode(rule Rule, src []byte) *Node {
	return &Node{Rule: rule, src: src}
}

// Add appends a child and widens the node span.
func (n *Node) Add(child Tree) {
	if child == nil {
		return
	}
	if c, ok := child.(*Node); ok {
		if c == nil {
			return
		}
		n.Children = append(n.Children, c)
		if !c.spanSet {
			return
		}
	} else {
		n.Children = append(n.Children, child)
	}
	if !n.spanSet {
		n.span = child.Span()
		n.spanSet = true
		return
	}
	n.span = n.span.Cover(child.Span())
}

func (n *Node) Span() source.Span { return n.span }

// Text returns the trimmed source text covered by the node.
func (n *Node) Text() string {
	if n == nil || !n.spanSet || int(n.span.End) > len(n.src) {
		return ""
	}
	return strings.TrimSpace(string(n.src[n.span.Start:n.span.End]))
}

func (n *Node) isTree() {}

// Child returns the first direct child production of the given rule, or nil.
func (n *Node) Child(rule Rule) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if cn, ok := c.(*Node); ok && cn.Rule == rule {
			return cn
		}
	}
	return nil
}

// Rules returns every direct child production of the given rule.
func (n *Node) Rules(rule Rule) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if cn, ok := c.(*Node); ok && cn.Rule == rule {
			out = append(out, cn)
		}
	}
	return out
}

// Nodes returns every direct child production.
func (n *Node) Nodes() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if cn, ok := c.(*Node); ok {
			out = append(out, cn)
		}
	}
	return out
}

// Token returns the first direct terminal of kind k, or nil.
func (n *Node) Token(k token.Kind) *Terminal {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if t, ok := c.(*Terminal); ok && t.Tok.Kind == k {
			return t
		}
	}
	return nil
}

// Tokens returns every direct terminal of kind k.
func (n *Node) Tokens(k token.Kind) []*Terminal {
	if n == nil {
		return nil
	}
	var out []*Terminal
	for _, c := range n.Children {
		if t, ok := c.(*Terminal); ok && t.Tok.Kind == k {
			out = append(out, t)
		}
	}
	return out
}

// Has reports whether n has a direct terminal of kind k.
func (n *Node) Has(k token.Kind) bool {
	return n.Token(k) != nil
}

// FirstTerminal returns the leftmost terminal in the subtree, or nil.
func (n *Node) FirstTerminal() *Terminal {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		switch c := c.(type) {
		case *Terminal:
			return c
		case *Node:
			if t := c.FirstTerminal(); t != nil {
				return t
			}
		}
	}
	return nil
}

// Errors returns the error leaves of the subtree in source order.
func (n *Node) Errors() []*ErrorTerm {
	if n == nil {
		return nil
	}
	var out []*ErrorTerm
	for _, c := range n.Children {
		switch c := c.(type) {
		case *ErrorTerm:
			out = append(out, c)
		case *Node:
			out = append(out, c.Errors()...)
		}
	}
	return out
}

func (t *Terminal) Span() source.Span { return t.Tok.Span }
func (t *Terminal) Text() string      { return t.Tok.Text }
func (t *Terminal) isTree()           {}

func (e *ErrorTerm) Span() source.Span { return e.Tok.Span }
func (e *ErrorTerm) Text() string      { return e.Tok.Text }
func (e *ErrorTerm) isTree()           {}

// Slice returns the trimmed unit text for sp.
func (n *Node) Slice(sp source.Span) string {
	if n == nil || sp.Start > sp.End || int(sp.End) > len(n.src) {
		return ""
	}
	return strings.TrimSpace(string(n.src[sp.Start:sp.End]))
}
