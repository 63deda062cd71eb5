package ast

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the current node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func Count(n *Node) int {
	total := 0
	Walk(n, func(*Node) bool {
		total++
		return true
	})
	return total
}

// Lines returns line numbers of the subtree in pre-order.
func Lines(n *Node) []int {
	var out []int
	Walk(n, func(x *Node) bool {
		out = append(out, x.Line)
		return true
	})
	return out
}

// Find returns every node of kind k in pre-order.
func Find(n *Node, k Kind) []*Node {
	var out []*Node
	Walk(n, func(x *Node) bool {
		if x.Kind == k {
			out = append(out, x)
		}
		return true
	})
	return out
}
