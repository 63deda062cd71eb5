package diagfmt

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"talfront/internal/ast"
)

type treeNode struct {
	label    string
	children []*treeNode
}

// TreeOpts configures the AST tree view.
type TreeOpts struct {
	MaxDepth  int  // 0 - без ограничения
	ShowAttrs bool // печатать типизированные атрибуты
	Width     int  // обрезка подписи, 0 - без ограничения
}

// FormatTree prints the AST as an indented tree:
//
//	Program "TAL_Program"
//	├── variableDeclaration @2 "INT a;"
//	└── callStatement @3 "CALL foo;"
func FormatTree(w io.Writer, root *ast.Node, opts TreeOpts) error {
	if root == nil {
		_, err := fmt.Fprintln(w, "<nil>")
		return err
	}
	tn := buildTreeNode(root, opts, 0)
	var b strings.Builder
	b.WriteString(tn.label)
	b.WriteByte('\n')
	renderChildren(&b, tn.children, "")
	_, err := io.WriteString(w, b.String())
	return err
}

func buildTreeNode(n *ast.Node, opts TreeOpts, depth int) *treeNode {
	label := n.Kind.String()
	if n.Line > 0 {
		label += fmt.Sprintf(" @%d", n.Line)
	}
	if n.Text != "" {
		label += fmt.Sprintf(" %q", n.Text)
	}
	if n.Meta.Preprocessed {
		label += " [" + n.Meta.PatternID + "]"
	}
	if opts.ShowAttrs {
		if attrs := formatAttrs(ast.Attributes(n)); attrs != "" {
			label += " " + attrs
		}
	}
	if opts.Width > 0 {
		label = runewidth.Truncate(label, opts.Width, "…")
	}
	tn := &treeNode{label: label}
	if opts.MaxDepth > 0 && depth+1 >= opts.MaxDepth {
		if len(n.Children) > 0 {
			tn.children = append(tn.children, &treeNode{label: fmt.Sprintf("… %d more", len(n.Children))})
		}
		return tn
	}
	for _, c := range n.Children {
		tn.children = append(tn.children, buildTreeNode(c, opts, depth+1))
	}
	return tn
}

func renderChildren(b *strings.Builder, children []*treeNode, prefix string) {
	for i, c := range children {
		last := i == len(children)-1
		branch, next := "├── ", "│   "
		if last {
			branch, next = "└── ", "    "
		}
		b.WriteString(prefix + branch + c.label + "\n")
		renderChildren(b, c.children, prefix+next)
	}
}

// formatAttrs renders non-reserved attributes as {k=v ...}, sorted by key.
func formatAttrs(attrs map[string]any) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if strings.HasPrefix(k, "_") {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, attrs[k])
	}
	return "{" + strings.Join(parts, " ") + "}"
}
