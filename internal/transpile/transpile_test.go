package transpile_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"talfront/internal/transpile"
)

func body(t *testing.T, src string, target transpile.Target) []transpile.Line {
	t.Helper()
	out, err := transpile.Transpile([]byte(src), target)
	if err != nil {
		t.Fatalf("Transpile: %v", err)
	}
	return out.Body
}

func TestIfClosedByEnd(t *testing.T) {
	got := body(t, "IF x > 0 THEN\nCALL foo();\nEND;\n", transpile.Pseudocode)
	want := []transpile.Line{
		{Indent: 0, Text: "IF x > 0 THEN:"},
		{Indent: 1, Text: "CALL foo()"},
		{Indent: 0, Text: "END IF"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderProgram(t *testing.T) {
	src := strings.Join([]string{
		"! Sample",
		"?SOURCE $system",
		"LITERAL max^len = 10, b = 2;",
		"INT a^b := 5;",
		"STRING .buf[0:9];",
		"PROC main^proc MAIN;",
		"BEGIN",
		"  a^b := a^b + 1;",
		"  WHILE a^b < 10 DO",
		"  BEGIN",
		"    CALL inc(a^b, 1);",
		"  END;",
		"  RETURN;",
		"END;",
	}, "\n")
	out, err := transpile.Transpile([]byte(src), transpile.Pseudocode)
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"// Manually Transpiled from TAL to pseudocode",
		"PROGRAM GeneratedProgram",
		"",
		"// Sample",
		"// Directive: SOURCE $system",
		"CONST max_len = 10",
		"CONST b = 2",
		"DECLARE a_b: INT := 5",
		"DECLARE buf: POINTER TO STRING ARRAY[0:9]",
		"PROCEDURE main_proc():",
		"  a_b = a_b + 1",
		"  WHILE a_b < 10 DO:",
		"    CALL inc(a_b, 1)",
		"  END WHILE",
		"  RETURN",
		"END PROC",
		"",
		"END PROGRAM",
	}, "\n")
	if diff := cmp.Diff(want, out.Render()); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestBlocks(t *testing.T) {
	tests := []struct {
		name string
		src  []string
		want []transpile.Line
	}{
		{
			name: "if else with begin blocks",
			src:  []string{"IF a THEN", "BEGIN", "  x := 1;", "END", "ELSE", "BEGIN", "  x := 2;", "END;"},
			want: []transpile.Line{
				{0, "IF a THEN:"}, {1, "x = 1"}, {0, "ELSE:"}, {1, "x = 2"}, {0, "END IF"},
			},
		},
		{
			name: "inline if else",
			src:  []string{"IF a THEN x := 1 ELSE x := 2;"},
			want: []transpile.Line{
				{0, "IF a THEN:"}, {1, "x = 1"}, {0, "ELSE:"}, {1, "x = 2"}, {0, "END IF"},
			},
		},
		{
			name: "end without open block",
			src:  []string{"END; ! done"},
			want: []transpile.Line{{0, "END // done"}},
		},
		{
			name: "unclosed block closed at eof",
			src:  []string{"BLOCK globals;", "INT x;"},
			want: []transpile.Line{{0, "BLOCK globals:"}, {1, "DECLARE x: INT"}, {0, "END BLOCK"}},
		},
		{
			name: "for loop",
			src:  []string{"FOR i := 1 TO 10 BY 2 DO", "  sum := sum + i;", "END;"},
			want: []transpile.Line{{0, "FOR i = 1 TO 10 BY 2 DO:"}, {1, "sum = sum + i"}, {0, "END FOR"}},
		},
		{
			name: "single line case",
			src:  []string{"CASE n OF BEGIN a; b; END;"},
			want: []transpile.Line{{0, "CASE n OF:"}, {1, "// Case labels: a; b;"}, {0, "END CASE"}},
		},
		{
			name: "case arms",
			src:  []string{"CASE n OF", "BEGIN", "  1 -> x := 1;", "  OTHERWISE -> x := 0;", "END;"},
			want: []transpile.Line{
				{0, "CASE n OF:"}, {1, "WHEN 1:"}, {2, "x = 1"}, {1, "OTHERWISE:"}, {2, "x = 0"}, {0, "END CASE"},
			},
		},
		{
			name: "forward procedure opens nothing",
			src:  []string{"PROC helper(a, b) FORWARD;", "x := 1;"},
			want: []transpile.Line{{0, "DECLARE PROCEDURE helper(a, b) // FORWARD"}, {0, "x = 1"}},
		},
		{
			name: "struct with and without body",
			src:  []string{"STRUCT rec(*);", "BEGIN", "  INT x;", "END;", "STRUCT .ptr(rec);"},
			want: []transpile.Line{
				{0, "STRUCT rec:"}, {1, "DECLARE x: INT"}, {0, "END STRUCT"}, {0, "POINTER TO STRUCT ptr"},
			},
		},
		{
			name: "extended pointers",
			src:  []string{"INT .EXT ptr, .SG g;", "STRUCT .EXT rec(*);"},
			want: []transpile.Line{
				{0, "DECLARE ptr: EXT POINTER TO INT"}, {0, "DECLARE g: SG POINTER TO INT"}, {0, "EXT POINTER TO STRUCT rec"},
			},
		},
		{
			name: "plain begin block",
			src:  []string{"BEGIN", "  x := 1;", "END;"},
			want: []transpile.Line{{0, "BEGIN"}, {1, "x = 1"}, {0, "END"}},
		},
		{
			name: "statements",
			src: []string{
				"ASSERT 1 : x > 0;",
				"DROP tmp;",
				"GOTO done;",
				"RETURN x, 1;",
				"%%% noise",
			},
			want: []transpile.Line{
				{0, "ASSERT 1: x > 0"},
				{0, "DROP tmp"},
				{0, "GOTO done"},
				{0, "RETURN x, 1"},
				{0, "// Statement: %%% noise"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := body(t, strings.Join(tt.src, "\n"), transpile.Pseudocode)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJava(t *testing.T) {
	out, err := transpile.Transpile([]byte("IF x = 1 AND y <> 2 THEN\nCALL foo(x);\nEND;"), transpile.Java)
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"// Manually Transpiled from TAL to java",
		"public class GeneratedProgram {",
		"",
		"    if (x == 1 && y != 2) {",
		"        foo(x);",
		"    }",
		"",
		"}",
	}, "\n")
	if diff := cmp.Diff(want, out.Render()); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestJavaDeclarations(t *testing.T) {
	got := body(t, "INT(64) big;\nSTRING buf[0:9];\nLITERAL limit = 10;", transpile.Java)
	want := []transpile.Line{
		{1, "long big;"},
		{1, "char[] buf = new char[10];"},
		{1, "static final long limit = 10;"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTarget(t *testing.T) {
	for in, want := range map[string]transpile.Target{"": transpile.Pseudocode, "Java": transpile.Java, "pseudocode": transpile.Pseudocode} {
		got, err := transpile.ParseTarget(in)
		if err != nil || got != want {
			t.Errorf("ParseTarget(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := transpile.Transpile([]byte("x := 1;"), "cobol"); err == nil {
		t.Fatal("expected error for unknown target")
	}
}

func TestEmptyInput(t *testing.T) {
	out, err := transpile.Transpile(nil, transpile.Pseudocode)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Body) != 0 {
		t.Fatalf("body = %v, want empty", out.Body)
	}
	if got := out.Render(); got != "// Manually Transpiled from TAL to pseudocode\nPROGRAM GeneratedProgram\n\n\nEND PROGRAM" {
		t.Fatalf("render = %q", got)
	}
}
