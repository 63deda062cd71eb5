package fallback_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"talfront/internal/ast"
	"talfront/internal/fallback"
)

func TestCallWithIdentifierParameters(t *testing.T) {
	n := fallback.Parse("CALL foo(x, y);", 7)
	if n == nil || n.Kind != ast.KindCallStatement {
		t.Fatalf("got %v", n)
	}
	want := ast.CallAttrs{
		Function: "foo",
		CallText: "CALL foo(x, y);",
		Parameters: []ast.Param{
			{NodeType: "Identifier", Text: "x", Line: 7},
			{NodeType: "Identifier", Text: "y", Line: 7},
		},
	}
	if diff := cmp.Diff(want, n.Attrs); diff != "" {
		t.Fatalf("call attrs mismatch (-want +got):\n%s", diff)
	}
	if len(n.Children) != 2 || n.Children[1].Kind != ast.KindIdentifier {
		t.Fatalf("children = %d", len(n.Children))
	}
}

func TestRecognizedKinds(t *testing.T) {
	cases := []struct {
		line string
		kind ast.Kind
	}{
		{"LITERAL max^len = 80;", ast.KindLiteralDeclaration},
		{"INT a, b := 5;", ast.KindVariableDeclaration},
		{"?NOLIST, SOURCE $SYSTEM.SYSTEM.EXTDECS", ast.KindDirectiveLine},
		{"RETURN x, 1;", ast.KindReturnStatement},
		{"BEGIN", ast.KindBeginBlock},
		{"END;", ast.KindEndStatement},
		{"ENDIF", ast.KindEndStatement},
		{"ELSE", ast.KindElseStatement},
		{"IF x > 0 THEN", ast.KindIfStatement},
		{"WHILE i < 10 DO", ast.KindWhileStatement},
		{"FOR i := 1 TO 10 DO", ast.KindAssignmentStatement},
		{"INT .EXT ptr;", ast.KindVariableDeclaration},
		{"STRUCT .SG rec(*);", ast.KindStructDeclaration},
		{"a^b := c + 1;", ast.KindAssignmentStatement},
		{"ASSERT 1 : x > 0;", ast.KindAssertStatement},
		{"CASE op OF", ast.KindCaseStatement},
		{"DROP tmp;", ast.KindDropStatement},
		{"GOTO done;", ast.KindGotoStatement},
		{"RSCAN buf WHILE \" \" -> p;", ast.KindRscanStatement},
		{"SCAN buf UNTIL 0;", ast.KindScanStatement},
		{"STORE a, b;", ast.KindStoreStatement},
		{"USE idx;", ast.KindUseStatement},
		{"INT PROC get^len(buf) EXTERNAL;", ast.KindProcedureDefinition},
		{"SUBPROC helper;", ast.KindProcedureDefinition},
		{"STRUCT rec(*);", ast.KindStructDeclaration},
		{"BLOCK globals;", ast.KindBlockDeclaration},
		{"NAME mod;", ast.KindNameDeclaration},
		{"x + 1 ! trailing comment", ast.KindStatement},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			n := fallback.Parse(tc.line, 1)
			if n == nil {
				t.Fatal("line not recognized")
			}
			if n.Kind != tc.kind {
				t.Fatalf("kind = %s, want %s", n.Kind, tc.kind)
			}
		})
	}
}

func TestUnrecognized(t *testing.T) {
	lines := []string{
		"",
		"   ",
		"! only a comment",
		"-- also a comment",
		"CALL 123;",
		"GOTO;",
		"%%% garbage",
		"IF missing keyword",
		":= 5",
	}
	for _, line := range lines {
		if n := fallback.Parse(line, 1); n != nil {
			t.Errorf("Parse(%q) = %s, want nil", line, n.Kind)
		}
	}
}

func TestAttributes(t *testing.T) {
	cases := []struct {
		line string
		want ast.Attrs
	}{
		{"INT a, b := 5;", ast.VarDeclAttrs{Type: "int", Variables: []ast.Variable{{Name: "a"}, {Name: "b", InitValue: "5"}}}},
		{"INT(32) .p^q[0:9];", ast.VarDeclAttrs{Type: "int(32)", Variables: []ast.Variable{{Name: "p_q", Indirection: true, ArraySpec: "[0:9]"}}}},
		{"a^b := c^d;", ast.AssignAttrs{Target: "a_b", Value: "c_d"}},
		{"s := \"a^b\";", ast.AssignAttrs{Target: "s", Value: "\"a^b\""}},
		{"INT .EXT ptr, .SG g, .ext;", ast.VarDeclAttrs{Type: "int", Variables: []ast.Variable{
			{Name: "ptr", Indirection: true, IndirectionKind: "EXT"},
			{Name: "g", Indirection: true, IndirectionKind: "SG"},
			{Name: "ext", Indirection: true},
		}}},
		{"STRUCT .EXT rec(*);", ast.StructAttrs{Name: "rec", Indirection: true, IndirectionKind: "EXT", Template: true}},
		{"STRUCT .ext;", ast.StructAttrs{Name: "ext", Indirection: true}},
		{"ASSERT 1 : x > 0;", ast.AssertAttrs{Level: "1", Condition: "x > 0"}},
		{"RETURN x, 1;", ast.ReturnAttrs{Value: "x", Status: "1"}},
		{"endwhile;", ast.EndAttrs{Keyword: "ENDWHILE"}},
		{"CASE op OF", ast.CaseAttrs{Selector: "op", Multiline: true}},
		{"RSCAN buf WHILE \" \" -> p;", ast.ScanAttrs{Target: "buf", Condition: "\" \"", Pointer: "p"}},
		{"STORE a, b, c;", ast.StoreAttrs{Target: "a", Values: []string{"b", "c"}}},
		{"LITERAL x = 1, y = 2;", ast.LiteralDeclAttrs{Items: []ast.LiteralItem{{Name: "x", Value: "1"}, {Name: "y", Value: "2"}}}},
		{"?SOURCE a(b, c), NOLIST", ast.DirectiveAttrs{Directives: []string{"SOURCE a(b, c)", "NOLIST"}}},
		{"INT PROC get^len(buf, n) MAIN, EXTERNAL;", ast.ProcAttrs{
			Name: "get_len", Type: "PROC", ReturnType: "int", ParametersText: "buf, n",
			Parameters: []string{"buf", "n"}, Attributes: []string{"MAIN"}, External: true,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			n := fallback.Parse(tc.line, 1)
			if n == nil {
				t.Fatal("line not recognized")
			}
			if diff := cmp.Diff(tc.want, n.Attrs); diff != "" {
				t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFirstKeywordOwnsLine(t *testing.T) {
	// CALL owns the line even though it also contains ':='.
	if n := fallback.Parse("CALL := 1;", 1); n != nil {
		t.Fatalf("got %s", n.Kind)
	}
	// a keyword prefix of an identifier does not claim the line
	n := fallback.Parse("if^x := 1;", 1)
	if n == nil || n.Kind != ast.KindAssignmentStatement {
		t.Fatalf("got %v", n)
	}
	if got := fallback.Recognizer("SCAN x WHILE 1;"); got != "scan" {
		t.Fatalf("Recognizer = %q", got)
	}
}

func TestAssignmentBeforeControlKeywords(t *testing.T) {
	cases := []struct {
		line string
		want ast.AssignAttrs
	}{
		{"IF x > THEN y := 1;", ast.AssignAttrs{Target: "IF x > THEN y", Value: "1"}},
		{"WHILE DO k := k + 1;", ast.AssignAttrs{Target: "WHILE DO k", Value: "k + 1"}},
		{"FOR i := 1 TO 10 DO", ast.AssignAttrs{Target: "FOR i", Value: "1 TO 10 DO"}},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			if got := fallback.Recognizer(tc.line); got != "assignment" {
				t.Fatalf("Recognizer = %q, want assignment", got)
			}
			n := fallback.Parse(tc.line, 3)
			if n == nil || n.Kind != ast.KindAssignmentStatement {
				t.Fatalf("got %v", n)
			}
			if diff := cmp.Diff(tc.want, n.Attrs); diff != "" {
				t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
			}
		})
	}
	// без ':=' управляющие ключевые слова по-прежнему распознаются
	if n := fallback.Parse("IF x > 0 THEN", 1); n == nil || n.Kind != ast.KindIfStatement {
		t.Fatalf("IF header: got %v", n)
	}
}

func TestStripComment(t *testing.T) {
	cases := map[string]string{
		"x := 1; ! set x":       "x := 1;",
		"x := !inline! 1;":      "x :=  1;",
		"s := \"a!b\"; -- note": "s := \"a!b\";",
		"a := b--c":             "a := b",
		"   ":                   "",
	}
	for in, want := range cases {
		if got := fallback.StripComment(in); got != want {
			t.Errorf("StripComment(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitTopLevel(t *testing.T) {
	got := fallback.SplitTopLevel(`a, f(b, c), "x,y", , d[1,2]`, ',')
	want := []string{"a", "f(b, c)", `"x,y"`, "", "d[1,2]"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("split mismatch (-want +got):\n%s", diff)
	}
	if fallback.SplitTopLevel("  ", ',') != nil {
		t.Fatal("blank input must split to nil")
	}
}

func TestProcedureTextMatchesGrammarNode(t *testing.T) {
	n := fallback.Parse("INT(32) PROC compute^sum(a, b) MAIN, RESIDENT;", 5)
	if n == nil || n.Kind != ast.KindProcedureDefinition {
		t.Fatalf("got %v", n)
	}
	if n.Text != "PROC compute^sum(a, b);" {
		t.Fatalf("text = %q", n.Text)
	}
}
