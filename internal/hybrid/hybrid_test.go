package hybrid_test

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"talfront/internal/ast"
	"talfront/internal/cst"
	"talfront/internal/diag"
	"talfront/internal/hybrid"
	"talfront/internal/lineparse"
	"talfront/internal/preproc"
	"talfront/internal/source"
)

func generate(t *testing.T, opts hybrid.Options, lines ...string) *hybrid.Document {
	t.Helper()
	src := strings.Join(lines, "\n") + "\n"
	return hybrid.New(opts).Generate(context.Background(), []byte(src))
}

// brokenGrammar rejects every unit, forcing the fallback path.
var brokenGrammar = lineparse.GrammarFunc(func(unit *source.File, r diag.Reporter) cst.Tree {
	r.Report(diag.SynUnexpectedToken, diag.SevError, source.Span{}, "grammar unavailable")
	return nil
})

func TestNothingMeaningful(t *testing.T) {
	cases := [][]string{
		{""},
		{"! header comment", "", "   ", "-- another"},
	}
	for _, lines := range cases {
		doc := generate(t, hybrid.Options{}, lines...)
		if doc.Coverage != 0 || !doc.Success || len(doc.Errors) != 0 {
			t.Fatalf("%q: coverage=%v success=%v errors=%v", lines, doc.Coverage, doc.Success, doc.Errors)
		}
	}
}

func TestFallbackCall(t *testing.T) {
	doc := generate(t, hybrid.Options{Grammar: brokenGrammar}, "CALL foo(x, y);")
	if !doc.Success || len(doc.AST.Children) != 1 {
		t.Fatalf("doc = %+v", doc)
	}
	call := doc.AST.Children[0]
	if call.Type != "callStatement" || call.Attributes["function"] != "foo" {
		t.Fatalf("node = %s %v", call.Type, call.Attributes)
	}
	want := []any{
		map[string]any{"node_type": "Identifier", "text": "x", "line": 1},
		map[string]any{"node_type": "Identifier", "text": "y", "line": 1},
	}
	if diff := cmp.Diff(want, call.Attributes["parameters"]); diff != "" {
		t.Fatalf("parameters mismatch (-want +got):\n%s", diff)
	}
	if doc.Stats.Fallback != 1 || doc.Coverage != 100 {
		t.Fatalf("stats = %+v coverage = %v", doc.Stats, doc.Coverage)
	}
}

func TestGrammarDeclaration(t *testing.T) {
	doc := generate(t, hybrid.Options{}, "! vars", "INT a, b := 5;")
	if len(doc.AST.Children) != 2 {
		t.Fatalf("children = %d", len(doc.AST.Children))
	}
	decl := doc.AST.Children[1]
	if decl.Type != "variableDeclaration" || decl.Line != 2 || decl.Attributes["type"] != "int" {
		t.Fatalf("node = %s line %d %v", decl.Type, decl.Line, decl.Attributes)
	}
	if decl.Attributes[ast.AttrPreprocessed] != false || decl.Attributes[ast.AttrPatternID] != nil {
		t.Fatalf("grammar node marked as preprocessed: %v", decl.Attributes)
	}
	vars := decl.Attributes["variables"].([]any)
	if len(vars) != 2 || vars[1].(map[string]any)["init_value"] != "5" {
		t.Fatalf("variables = %v", vars)
	}
	if doc.Stats.Grammar != 1 {
		t.Fatalf("stats = %+v", doc.Stats)
	}
}

func TestExtendedPointerDeclarations(t *testing.T) {
	grammars := map[string]lineparse.Grammar{"grammar": nil, "fallback": brokenGrammar}
	for name, g := range grammars {
		t.Run(name, func(t *testing.T) {
			doc := generate(t, hybrid.Options{Grammar: g}, "INT .EXT ptr;", "INT .SG p;", "STRUCT .EXT rec(*);")
			if !doc.Success || doc.Stats.Unparsed != 0 || doc.Stats.Processed != 3 {
				t.Fatalf("success=%v stats=%+v errors=%v", doc.Success, doc.Stats, doc.Errors)
			}
			got := kindsOf(doc.AST.Children)
			want := []string{"variableDeclaration", "variableDeclaration", "structDeclaration"}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
			}
			for i, kind := range []string{"EXT", "SG"} {
				v := doc.AST.Children[i].Attributes["variables"].([]any)[0].(map[string]any)
				if v["indirection"] != true || v["indirection_kind"] != kind {
					t.Fatalf("variable %d = %v", i, v)
				}
			}
			st := doc.AST.Children[2].Attributes
			if st["name"] != "rec" || st["indirection_kind"] != "EXT" || st["template"] != true {
				t.Fatalf("struct = %v", st)
			}
		})
	}
}

func kindsOf(nodes []ast.NodeJSON) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Type)
	}
	return out
}

func TestUnparsedLine(t *testing.T) {
	doc := generate(t, hybrid.Options{}, "x := 1;", "### ???", "y := 2;")
	if doc.Success || len(doc.Errors) != 1 || doc.Errors[0].Line != 2 {
		t.Fatalf("errors = %+v", doc.Errors)
	}
	var unparsed []ast.NodeJSON
	for _, c := range doc.AST.Children {
		if c.Type == "UnparsedLine" {
			unparsed = append(unparsed, c)
		}
	}
	if len(unparsed) != 1 || unparsed[0].Text != "### ???" || unparsed[0].Line != 2 {
		t.Fatalf("unparsed = %+v", unparsed)
	}
}

func TestUnparsedMessageWithoutGrammarErrors(t *testing.T) {
	silent := lineparse.GrammarFunc(func(*source.File, diag.Reporter) cst.Tree { return nil })
	doc := generate(t, hybrid.Options{Grammar: silent}, "### this line is longer than thirty characters")
	want := []hybrid.Error{{Line: 1, Column: 0, Message: "Line unparsed: ### this line is longer than t", Code: diag.AsmUnparsedLine}}
	if diff := cmp.Diff(want, doc.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestCoverage(t *testing.T) {
	doc := generate(t, hybrid.Options{},
		"! comment",
		"x := 1;",
		"",
		"### bad",
		"CALL foo;",
		"y := x + 1;",
		"#### also bad",
		"RETURN;",
	)
	// 6 meaningful lines, 4 parsed
	want := math.Round(4.0/6.0*100*10) / 10
	if math.Abs(math.Round(doc.Coverage*10)/10-want) > 1e-9 {
		t.Fatalf("coverage = %v, want %v", doc.Coverage, want)
	}
	if doc.CoverageText() != "66.7%" {
		t.Fatalf("coverage text = %q", doc.CoverageText())
	}
	if len(doc.Errors) != 2 {
		t.Fatalf("errors = %+v", doc.Errors)
	}
}

func TestPreprocessedSpanIsOneUnit(t *testing.T) {
	doc := generate(t, hybrid.Options{Patterns: preproc.Builtin()},
		"STRUCT rec(*);",
		"BEGIN",
		"  ! members",
		"  INT a;",
		"  ### not parsed on its own",
		"END;",
		"x := 1;",
	)
	if !doc.Success {
		t.Fatalf("errors = %+v", doc.Errors)
	}
	if len(doc.AST.Children) != 2 {
		t.Fatalf("children = %d", len(doc.AST.Children))
	}
	st := doc.AST.Children[0]
	if st.Type != "structDeclaration" || st.Attributes[ast.AttrPreprocessed] != true ||
		st.Attributes[ast.AttrPatternID] != "builtin_struct_block" || st.Attributes[preproc.ExtraLinesConsumed] != 6 {
		t.Fatalf("struct node = %+v", st.Attributes)
	}
	if doc.AST.Children[1].Line != 7 {
		t.Fatalf("statement after span at line %d", doc.AST.Children[1].Line)
	}
	// 6 meaningful lines: the span counts once, the assignment once
	if want := hybrid.Coverage(2, 6); doc.Coverage != want {
		t.Fatalf("coverage = %v, want %v", doc.Coverage, want)
	}
}

func TestCommentsKeepSourceOrder(t *testing.T) {
	doc := generate(t, hybrid.Options{}, "x := 1;", "! note", "-- other", "y := 2;")
	var got []string
	for _, c := range doc.AST.Children {
		got = append(got, c.Type)
	}
	want := []string{"assignmentStatement", "Comment", "Comment", "assignmentStatement"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if c := doc.AST.Children[1]; c.Text != "note" || c.Attributes["marker"] != "!" {
		t.Fatalf("comment = %+v", c)
	}
}

func TestGrammarPanicDoesNotEscape(t *testing.T) {
	boom := lineparse.GrammarFunc(func(*source.File, diag.Reporter) cst.Tree { panic("boom") })
	doc := generate(t, hybrid.Options{Grammar: boom}, "CALL foo;", "### bad")
	if doc.Stats.Fallback != 1 || len(doc.Errors) != 1 {
		t.Fatalf("stats = %+v errors = %+v", doc.Stats, doc.Errors)
	}
	if !strings.Contains(doc.Errors[0].Message, "boom") {
		t.Fatalf("message = %q", doc.Errors[0].Message)
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	doc := hybrid.New(hybrid.Options{}).Generate(ctx, []byte("x := 1;\n"))
	if !doc.Incomplete || len(doc.AST.Children) != 0 {
		t.Fatalf("doc = %+v", doc)
	}
}

func TestDocumentJSON(t *testing.T) {
	doc := generate(t, hybrid.Options{}, "x := 1;")
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	var keys []string
	for k := range m {
		keys = append(keys, k)
	}
	want := []string{"ast", "coverage", "errors", "source", "success"}
	if diff := cmp.Diff(want, keys, cmpSorted); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if m["source"] != hybrid.SourceTag || string(mustJSON(t, m["errors"])) != "[]" {
		t.Fatalf("document = %s", data)
	}
	if doc.AST.Count() != ast.Count(doc.Root) {
		t.Fatalf("serialized count %d != live count %d", doc.AST.Count(), ast.Count(doc.Root))
	}
}

func TestWarnings(t *testing.T) {
	doc := generate(t, hybrid.Options{}, "x := 1;")
	doc.AddWarnings([]diag.Diagnostic{
		{Severity: diag.SevWarning, Code: diag.CfgUnknownHandler, Message: "handler missing"},
		{Severity: diag.SevInfo, Code: diag.CfgInfo, Message: "ignored"},
	})
	if len(doc.Warnings) != 1 || doc.Warnings[0].Code != "CFG4002" {
		t.Fatalf("warnings = %+v", doc.Warnings)
	}
}
