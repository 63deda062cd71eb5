package ast_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"talfront/internal/ast"
)

func sampleTree() *ast.Node {
	root := ast.New(ast.KindProgram, "TAL_Program", 0)
	root.Add(ast.New(ast.KindComment, " header", 1).With(ast.CommentAttrs{Marker: "!"}))
	call := ast.New(ast.KindCallStatement, "CALL foo(x, y);", 2).With(ast.CallAttrs{
		Function: "foo",
		CallText: "CALL foo(x, y);",
		Parameters: []ast.Param{
			{NodeType: "Identifier", Text: "x", Line: 2},
			{NodeType: "Identifier", Text: "y", Line: 2},
		},
	})
	call.Add(ast.New(ast.KindIdentifier, "x", 2).With(ast.IdentAttrs{Identifier: "x"}))
	call.Add(ast.New(ast.KindIdentifier, "y", 2).With(ast.IdentAttrs{Identifier: "y"}))
	root.Add(call)
	blk := ast.New(ast.KindCaseStatement, "CASE k OF\n  BEGIN", 3).With(ast.CaseAttrs{Selector: "k", Multiline: true})
	blk.MarkPreprocessed("case_block")
	blk.SetExtra("lines_consumed", 4)
	root.Add(blk)
	root.Add(nil)
	return root
}

func TestSerializeReservedKeys(t *testing.T) {
	j := ast.Serialize(sampleTree())
	var check func(n ast.NodeJSON)
	check = func(n ast.NodeJSON) {
		if _, ok := n.Attributes[ast.AttrPreprocessed]; !ok {
			t.Errorf("%s: missing %s", n.Type, ast.AttrPreprocessed)
		}
		if _, ok := n.Attributes[ast.AttrPatternID]; !ok {
			t.Errorf("%s: missing %s", n.Type, ast.AttrPatternID)
		}
		if n.Children == nil {
			t.Errorf("%s: children must be an empty array, not null", n.Type)
		}
		for _, c := range n.Children {
			check(c)
		}
	}
	check(j)

	cs := j.Children[2]
	want := map[string]any{
		"selector":           "k",
		"multiline":          true,
		"lines_consumed":     4,
		ast.AttrPreprocessed: true,
		ast.AttrPatternID:    "case_block",
	}
	if diff := cmp.Diff(want, cs.Attributes); diff != "" {
		t.Fatalf("case attributes mismatch (-want +got):\n%s", diff)
	}
	if cs.Text != "CASE k OF" {
		t.Fatalf("multi-line text should keep only the first line, got %q", cs.Text)
	}
}

func TestCallAttributes(t *testing.T) {
	j := ast.Serialize(sampleTree())
	call := j.Children[1]
	if call.Type != "callStatement" {
		t.Fatalf("type = %q", call.Type)
	}
	want := map[string]any{
		"function":  "foo",
		"call_text": "CALL foo(x, y);",
		"parameters": []any{
			map[string]any{"node_type": "Identifier", "text": "x", "line": 2},
			map[string]any{"node_type": "Identifier", "text": "y", "line": 2},
		},
		ast.AttrPreprocessed: false,
		ast.AttrPatternID:    nil,
	}
	if diff := cmp.Diff(want, call.Attributes); diff != "" {
		t.Fatalf("call attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripCountsAndLines(t *testing.T) {
	tree := sampleTree()
	data, err := json.Marshal(ast.Serialize(tree))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back ast.NodeJSON
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got, want := back.Count(), ast.Count(tree); got != want {
		t.Fatalf("count = %d, want %d", got, want)
	}
	if diff := cmp.Diff(ast.Lines(tree), back.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-live +decoded):\n%s", diff)
	}
}

func TestKindNames(t *testing.T) {
	for _, k := range []ast.Kind{ast.KindProgram, ast.KindCallStatement, ast.KindUnparsedLine, ast.KindVisitorError} {
		back, ok := ast.KindByName(k.String())
		if !ok || back != k {
			t.Errorf("KindByName(%q) = %v, %v", k.String(), back, ok)
		}
	}
	if _, ok := ast.KindByName("nope"); ok {
		t.Error("unknown name should not resolve")
	}
	if !ast.KindUnparsedLine.IsFailure() || ast.KindStatement.IsFailure() {
		t.Error("IsFailure classification is wrong")
	}
}

func TestFindAndTruncate(t *testing.T) {
	ids := ast.Find(sampleTree(), ast.KindIdentifier)
	if len(ids) != 2 {
		t.Fatalf("identifiers = %d, want 2", len(ids))
	}
	if got := ast.Truncate("ÄÖÜabc", 4); got != "ÄÖÜa" {
		t.Fatalf("Truncate = %q", got)
	}
	if got := ast.Truncate("abc", 10); got != "abc" {
		t.Fatalf("Truncate short = %q", got)
	}
}
