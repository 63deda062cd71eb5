package ast

// Reserved attribute keys present on every serialized node.
const (
	AttrPreprocessed = "_preprocessed"
	AttrPatternID    = "_preprocessor_pattern_id"
)

// NodeJSON is the nested-dict form of a node.
type NodeJSON struct {
	Type       string         `json:"type" msgpack:"type"`
	Text       string         `json:"text" msgpack:"text"`
	Line       int            `json:"line" msgpack:"line"`
	Attributes map[string]any `json:"attributes" msgpack:"attributes"`
	Children   []NodeJSON     `json:"children" msgpack:"children"`
}

// Serialize converts a live tree into its nested-dict form.
func Serialize(n *Node) NodeJSON {
	out := NodeJSON{
		Type:       n.Kind.String(),
		Text:       n.Text,
		Line:       n.Line,
		Attributes: Attributes(n),
		Children:   make([]NodeJSON, 0, len(n.Children)),
	}
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		out.Children = append(out.Children, Serialize(c))
	}
	return out
}

// Attributes flattens the typed payload, the overflow map and the origin
// metadata into one map. Typed keys win over Extra; reserved keys win over both.
func Attributes(n *Node) map[string]any {
	m := make(map[string]any, len(n.Extra)+4)
	for k, v := range n.Extra {
		m[k] = v
	}
	if n.Attrs != nil {
		n.Attrs.encode(m)
	}
	m[AttrPreprocessed] = n.Meta.Preprocessed
	if n.Meta.PatternID == "" {
		m[AttrPatternID] = nil
	} else {
		m[AttrPatternID] = n.Meta.PatternID
	}
	return m
}

// Count returns the number of nodes in the serialized subtree.
func (j NodeJSON) Count() int {
	total := 1
	for _, c := range j.Children {
		total += c.Count()
	}
	return total
}

// Lines returns line numbers of the serialized subtree in pre-order.
func (j NodeJSON) Lines() []int {
	out := []int{j.Line}
	for _, c := range j.Children {
		out = append(out, c.Lines()...)
	}
	return out
}
