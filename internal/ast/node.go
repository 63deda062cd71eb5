package ast

import (
	"strings"
	"unicode/utf8"
)

// Meta records the origin of a node. It is serialized as the reserved
// _preprocessed and _preprocessor_pattern_id attributes.
type Meta struct {
	Preprocessed bool
	PatternID    string // пусто -> null
}

// Node is one element of the tree. A node is owned by exactly one parent;
// the Program root has none.
type Node struct {
	Kind     Kind
	Text     string
	Line     int
	Attrs    Attrs
	Meta     Meta
	Extra    map[string]any // редкие ключи, которых нет в типизированных Attrs
	Children []*Node
}

// New creates a node whose text is the first line of text, trimmed.
func New(kind Kind, text string, line int) *Node {
	return &Node{Kind: kind, Text: FirstLine(text), Line: line}
}

// With sets the attribute payload and returns n.
func (n *Node) With(a Attrs) *Node {
	n.Attrs = a
	return n
}

// Add appends child; nil children are ignored.
func (n *Node) Add(child *Node) {
	if child == nil {
		return
	}
	n.Children = append(n.Children, child)
}

// SetExtra stores an overflow attribute.
func (n *Node) SetExtra(key string, value any) {
	if n.Extra == nil {
		n.Extra = make(map[string]any, 1)
	}
	n.Extra[key] = value
}

// MarkPreprocessed tags n as produced by the preprocessor pattern id.
func (n *Node) MarkPreprocessed(id string) {
	n.Meta = Meta{Preprocessed: true, PatternID: id}
}

// FirstLine returns the first line of s, trimmed.
func FirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n < 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
