package preproc_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"talfront/internal/ast"
	"talfront/internal/diag"
	"talfront/internal/fallback"
	"talfront/internal/preproc"
)

var inner preproc.InnerParser = fallback.Parse

func run(t *testing.T, lines ...string) []preproc.Unit {
	t.Helper()
	return preproc.Builtin().Run(lines, inner)
}

func TestStructBlock(t *testing.T) {
	units := run(t,
		"STRUCT rec(*);",
		"BEGIN",
		"  INT(32) id;",
		"  ! comment",
		"  STRING name[0:9];",
		"  INT a, b;",
		"END;",
		"CALL done;",
	)
	if len(units) != 2 {
		t.Fatalf("units = %d, want 2", len(units))
	}
	u := units[0]
	if !u.Preprocessed() || u.Start != 1 || u.Consumed != 7 {
		t.Fatalf("unit = %+v", u)
	}
	if u.Node.Meta != (ast.Meta{Preprocessed: true, PatternID: "builtin_struct_block"}) {
		t.Fatalf("meta = %+v", u.Node.Meta)
	}
	if got := u.Node.Extra[preproc.ExtraLinesConsumed]; got != 7 {
		t.Fatalf("lines_consumed = %v", got)
	}
	want := ast.StructAttrs{
		Name:     "rec",
		Template: true,
		Members: []ast.StructMember{
			{Type: "int(32)", Name: "id"},
			{Type: "string", Name: "name"},
			{Type: "int", Name: "a"},
			{Type: "int", Name: "b"},
		},
	}
	if diff := cmp.Diff(want, u.Node.Attrs); diff != "" {
		t.Fatalf("struct attrs mismatch (-want +got):\n%s", diff)
	}
	if units[1].Preprocessed() || units[1].Text != "CALL done;" || units[1].Start != 8 {
		t.Fatalf("trailing unit = %+v", units[1])
	}
}

func TestCaseBlock(t *testing.T) {
	units := run(t,
		"CASE op OF",
		"BEGIN",
		"  1 -> x := 1;",
		"  2, 3 -> CALL foo(x);",
		"  OTHERWISE -> y := 0;",
		"END;",
	)
	if len(units) != 1 || units[0].Consumed != 6 {
		t.Fatalf("units = %+v", units)
	}
	n := units[0].Node
	if n.Kind != ast.KindCaseStatement || n.Text != "CASE op OF..." {
		t.Fatalf("node = %s %q", n.Kind, n.Text)
	}
	var labels []ast.Attrs
	var bodies []ast.Kind
	for _, c := range n.Children {
		if c.Kind != ast.KindCaseLabel {
			continue
		}
		labels = append(labels, c.Attrs)
		bodies = append(bodies, c.Children[0].Kind)
	}
	wantLabels := []ast.Attrs{
		ast.CaseLabelAttrs{Value: "1"},
		ast.CaseLabelAttrs{Value: "2, 3"},
		ast.CaseLabelAttrs{Otherwise: true},
	}
	if diff := cmp.Diff(wantLabels, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	wantBodies := []ast.Kind{ast.KindAssignmentStatement, ast.KindCallStatement, ast.KindAssignmentStatement}
	if diff := cmp.Diff(wantBodies, bodies); diff != "" {
		t.Fatalf("bodies mismatch (-want +got):\n%s", diff)
	}
	last := n.Children[len(n.Children)-1]
	if last.Kind != ast.KindEndCaseMarker || last.Line != 6 {
		t.Fatalf("last child = %s line %d", last.Kind, last.Line)
	}
}

func TestIfBlockWithElse(t *testing.T) {
	units := run(t,
		"IF a > 0 THEN",
		"BEGIN",
		"  x := 1;",
		"END",
		"ELSE",
		"BEGIN",
		"  x := 2;",
		"END;",
		"y := 3;",
	)
	if len(units) != 2 || units[0].Consumed != 8 || units[1].Start != 9 {
		t.Fatalf("units = %+v", units)
	}
	n := units[0].Node
	var kinds []ast.Kind
	for _, c := range n.Children {
		kinds = append(kinds, c.Kind)
	}
	want := []ast.Kind{ast.KindThenBody, ast.KindElseBody, ast.KindEndIfMarker}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}
	if n.Attrs != (ast.CondAttrs{Condition: "a > 0"}) {
		t.Fatalf("attrs = %+v", n.Attrs)
	}
	if got := n.Children[1].Children[0].Line; got != 7 {
		t.Fatalf("else statement line = %d, want 7", got)
	}
}

func TestHeaderWithoutBlockIsLeftAlone(t *testing.T) {
	lines := []string{"IF x > 0 THEN", "CALL foo();", "END;"}
	units := run(t, lines...)
	if len(units) != 3 {
		t.Fatalf("units = %d, want 3", len(units))
	}
	for i, u := range units {
		if u.Preprocessed() || u.Text != lines[i] || u.Start != i+1 || u.Consumed != 1 {
			t.Errorf("unit %d = %+v", i, u)
		}
	}
}

func TestJoinStatement(t *testing.T) {
	units := run(t,
		"CALL foo(a,",
		"         b);",
		"x := 1;",
	)
	if len(units) != 2 || units[0].Consumed != 2 {
		t.Fatalf("units = %+v", units)
	}
	n := units[0].Node
	if n.Kind != ast.KindCallStatement || n.Line != 1 {
		t.Fatalf("node = %s line %d", n.Kind, n.Line)
	}
	if got := len(n.Attrs.(ast.CallAttrs).Parameters); got != 2 {
		t.Fatalf("parameters = %d", got)
	}
}

func TestInnerPanicIsNotAMatch(t *testing.T) {
	boom := func(string, int) *ast.Node { panic("inner parser failed") }
	units := preproc.Builtin().Run([]string{"CALL foo(a,", "b);"}, boom)
	if len(units) != 2 || units[0].Preprocessed() {
		t.Fatalf("units = %+v", units)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadReportsBadPatterns(t *testing.T) {
	path := writeFile(t, "tal_codepairs.json", `[
  {"id": "good", "type": "multi_line_construct", "match_pattern_start": "STRUCT\\s", "handler": "handle_struct_block"},
  {"id": "nohandler", "type": "multi_line_construct", "match_pattern_start": "FOO", "handler": "handle_foo"},
  {"id": "badregex", "type": "multi_line_construct", "match_pattern_start": "(", "handler": "handle_case_block"},
  {"id": "single", "type": "single_line", "match_pattern_start": "X", "handler": "handle_case_block"}
]`)
	table, diags := preproc.Load(path, nil)
	if table.Len() != 1 || table.Patterns()[0].ID != "good" {
		t.Fatalf("patterns = %+v", table.Patterns())
	}
	var codes []diag.Code
	for _, d := range diags {
		codes = append(codes, d.Code)
		if d.Severity != diag.SevWarning {
			t.Errorf("%s: severity %s", d.Code.ID(), d.Severity)
		}
	}
	if diff := cmp.Diff([]diag.Code{diag.CfgUnknownHandler, diag.CfgBadRegex}, codes); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	table, diags := preproc.Load(filepath.Join(t.TempDir(), "absent.json"), nil)
	if table.Len() != 0 || len(diags) != 0 {
		t.Fatalf("len = %d, diags = %v", table.Len(), diags)
	}
}

func TestLoadUndecodable(t *testing.T) {
	table, diags := preproc.Load(writeFile(t, "p.json", "{not json"), nil)
	if table.Len() != 0 || len(diags) != 1 || diags[0].Code != diag.CfgPatternDecode {
		t.Fatalf("len = %d, diags = %v", table.Len(), diags)
	}
}

func TestDecodeFormats(t *testing.T) {
	want := []preproc.Pattern{{ID: "c", Type: preproc.TypeMultiLine, StartRegex: `CASE\s`, Handler: preproc.HandlerCaseBlock}}
	cases := []struct {
		name   string
		format preproc.Format
		data   string
	}{
		{"json object", preproc.FormatJSON, `{"patterns":[{"id":"c","type":"multi_line_construct","match_pattern_start":"CASE\\s","handler":"handle_case_block"}]}`},
		{"yaml list", preproc.FormatYAML, "- id: c\n  type: multi_line_construct\n  match_pattern_start: 'CASE\\s'\n  handler: handle_case_block\n"},
		{"yaml object", preproc.FormatYAML, "patterns:\n  - id: c\n    type: multi_line_construct\n    match_pattern_start: 'CASE\\s'\n    handler: handle_case_block\n"},
		{"toml", preproc.FormatTOML, "[[patterns]]\nid = \"c\"\ntype = \"multi_line_construct\"\nmatch_pattern_start = 'CASE\\s'\nhandler = \"handle_case_block\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := preproc.Decode([]byte(tc.data), tc.format)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("patterns mismatch (-want +got):\n%s", diff)
			}
		})
	}
	if preproc.FormatOf("x.YML") != preproc.FormatYAML || preproc.FormatOf("x.toml") != preproc.FormatTOML {
		t.Fatal("FormatOf picked the wrong format")
	}
}

func TestComposeOrderAndFingerprint(t *testing.T) {
	custom, _ := preproc.Compile([]preproc.Pattern{
		{ID: "mine", Type: preproc.TypeMultiLine, StartRegex: `STRUCT\s`, Handler: preproc.HandlerStructBlock},
	}, nil)
	table := preproc.Compose(custom, preproc.Builtin())
	if table.Patterns()[0].ID != "mine" || table.Len() != preproc.Builtin().Len()+1 {
		t.Fatalf("patterns = %+v", table.Patterns())
	}
	units := table.Run([]string{"STRUCT s;", "BEGIN", "INT a;", "END;"}, inner)
	if units[0].Node.Meta.PatternID != "mine" {
		t.Fatalf("pattern id = %q", units[0].Node.Meta.PatternID)
	}
	if preproc.Builtin().Fingerprint() != preproc.Compose(nil, preproc.Builtin()).Fingerprint() {
		t.Fatal("fingerprint must depend on patterns only")
	}
	if table.Fingerprint() == preproc.Builtin().Fingerprint() {
		t.Fatal("fingerprint must change with the pattern set")
	}
}
