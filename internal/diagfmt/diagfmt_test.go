package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"talfront/internal/ast"
	"talfront/internal/diag"
	"talfront/internal/diagfmt"
	"talfront/internal/hybrid"
	"talfront/internal/lexer"
	"talfront/internal/source"
)

func sampleDoc() *hybrid.Document {
	return &hybrid.Document{
		Source:   hybrid.SourceTag,
		Errors:   []hybrid.Error{{Line: 2, Column: 9, Message: "unexpected token", Code: diag.SynUnexpectedToken}},
		Coverage: 50,
		Warnings: []hybrid.Warning{{Code: "CFG4002", Message: `handler "x" not found`}},
		Stats:    hybrid.Stats{Processed: 1, Meaningful: 2},
	}
}

func TestPretty(t *testing.T) {
	var buf bytes.Buffer
	n := diagfmt.Pretty(&buf, "dir/a.tal", sampleDoc(), []string{"INT a;", "CALL foo bar;"}, diagfmt.PrettyOpts{
		Context:      true,
		PathMode:     diagfmt.PathModeBasename,
		ShowWarnings: true,
	})
	want := strings.Join([]string{
		"a.tal:2:10: ERROR SYN2001: unexpected token",
		"  CALL foo bar;",
		"           ^~~",
		`a.tal: WARNING CFG4002: handler "x" not found`,
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("pretty mismatch (-want +got):\n%s", diff)
	}
	if n != 2 {
		t.Fatalf("printed %d diagnostics, want 2", n)
	}
}

func TestPrettyMax(t *testing.T) {
	var buf bytes.Buffer
	n := diagfmt.Pretty(&buf, "a.tal", sampleDoc(), nil, diagfmt.PrettyOpts{Max: 1, ShowWarnings: true, PathMode: diagfmt.PathModeBasename})
	if n != 1 || strings.Count(buf.String(), "\n") != 1 {
		t.Fatalf("n=%d output=%q", n, buf.String())
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	diagfmt.Summary(&buf, "a.tal", sampleDoc(), diagfmt.PrettyOpts{PathMode: diagfmt.PathModeBasename})
	if got, want := buf.String(), "a.tal: coverage 50.0% (1/2 lines), 1 error, 1 warning\n"; got != want {
		t.Fatalf("summary = %q, want %q", got, want)
	}
}

func TestWriteDocumentKeepsOperators(t *testing.T) {
	doc := sampleDoc()
	doc.Errors[0].Message = "expected a < b"
	var buf bytes.Buffer
	if err := diagfmt.WriteDocument(&buf, doc, diagfmt.JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "expected a < b") {
		t.Fatalf("operator escaped: %s", buf.String())
	}
}

func TestWritePayload(t *testing.T) {
	var buf bytes.Buffer
	if err := diagfmt.WritePayload(&buf, diagfmt.NewLLMPayload(sampleDoc())); err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["instruction"] != "Convert TAL AST to pseudocode" || got["output_format"] != "structured_pseudocode" {
		t.Fatalf("unexpected payload header: %v", got)
	}
	if reqs, _ := got["requirements"].([]any); len(reqs) != 6 {
		t.Fatalf("requirements = %v", got["requirements"])
	}
	if _, ok := got["tal_ast"].(map[string]any); !ok {
		t.Fatalf("tal_ast is not an object: %T", got["tal_ast"])
	}
	if !strings.Contains(buf.String(), "\n    \"instruction\"") {
		t.Fatalf("payload not indented by four spaces:\n%s", buf.String())
	}
}

func TestFormatTree(t *testing.T) {
	root := ast.New(ast.KindProgram, "TAL_Program", 0)
	root.Add(ast.New(ast.KindVariableDeclaration, "INT a;", 2))
	call := ast.New(ast.KindCallStatement, "CALL foo;", 3)
	call.Add(ast.New(ast.KindIdentifier, "foo", 3))
	root.Add(call)

	var buf bytes.Buffer
	if err := diagfmt.FormatTree(&buf, root, diagfmt.TreeOpts{}); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		`Program "TAL_Program"`,
		`├── variableDeclaration @2 "INT a;"`,
		`└── callStatement @3 "CALL foo;"`,
		`    └── Identifier @3 "foo"`,
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := diagfmt.FormatTree(&buf, root, diagfmt.TreeOpts{MaxDepth: 2}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "… 1 more") {
		t.Fatalf("depth limit not applied:\n%s", buf.String())
	}
}

func TestFormatTokensJSON(t *testing.T) {
	file := source.NewUnit("INT a;")
	toks := lexer.New(file, lexer.Options{}).All()
	var buf bytes.Buffer
	if err := diagfmt.FormatTokensJSON(&buf, toks, file); err != nil {
		t.Fatal(err)
	}
	var got []diagfmt.TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) == 0 || got[len(got)-1].Kind != "EOF" {
		t.Fatalf("tokens = %+v", got)
	}
	if got[0].Line != 1 || got[0].Col != 1 {
		t.Fatalf("first token at %d:%d", got[0].Line, got[0].Col)
	}
}

func TestFormatPath(t *testing.T) {
	if got := diagfmt.FormatPath("", diagfmt.PathModeAuto, ""); got != "<stdin>" {
		t.Fatalf("empty path = %q", got)
	}
	if _, err := diagfmt.ParsePathMode("weird"); err == nil {
		t.Fatal("expected error")
	}
}
