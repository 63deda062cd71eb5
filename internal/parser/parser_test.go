package parser_test

import (
	"testing"

	"talfront/internal/cst"
	"talfront/internal/diag"
	"talfront/internal/parser"
	"talfront/internal/source"
	"talfront/internal/token"
)

func parseLine(t *testing.T, src string) (*cst.Node, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(0)
	tree := parser.ParseUnit(source.NewUnit(src), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if tree == nil {
		t.Fatalf("ParseUnit(%q) returned nil", src)
	}
	return tree, bag
}

// findRule — обход в глубину, первый узел с правилом rule
func findRule(n *cst.Node, rule cst.Rule) *cst.Node {
	if n == nil {
		return nil
	}
	if n.Rule == rule {
		return n
	}
	for _, c := range n.Nodes() {
		if f := findRule(c, rule); f != nil {
			return f
		}
	}
	return nil
}

func TestAcceptedLines(t *testing.T) {
	cases := []struct {
		src  string
		rule cst.Rule
	}{
		{"INT x;", cst.RuleVariableDeclaration},
		{"INT(32) x := 5, .y[0:9];", cst.RuleVariableDeclaration},
		{"STRING .buf[0:79] := [\"a\", \"b\"];", cst.RuleVariableDeclaration},
		{"LITERAL a = 1, b = %H1F;", cst.RuleLiteralDeclaration},
		{"STRUCT .EXT rec(*);", cst.RuleStructDeclaration},
		{"INT .SG p, .EXT q := 0, .ext;", cst.RuleVariableDeclaration},
		{"NAME mymod;", cst.RuleNameDeclaration},
		{"BLOCK globals;", cst.RuleBlockDeclaration},
		{"PROC main MAIN;", cst.RuleProcedureDefinition},
		{"SUBPROC resident(priv) VARIABLE;", cst.RuleProcedureDefinition},
		{"main := resident + rec.callable;", cst.RuleAssignmentStatement},
		{"CALL interrupt(main);", cst.RuleCallStatement},
		{"INT PROC f(a, b:2) CALLABLE, RESIDENT; FORWARD;", cst.RuleProcedureDefinition},
		{"?SOURCE $SYSTEM.SYSTEM.EXTDECS (INITIALIZER, PROCESS_GETINFO_)", cst.RuleDirectiveLine},
		{"?NOLIST, SYMBOLS", cst.RuleDirectiveLine},
		{"x := y + 1;", cst.RuleAssignmentStatement},
		{"x := y := 0;", cst.RuleAssignmentStatement},
		{"a[i].f := b '+' c;", cst.RuleAssignmentStatement},
		{"x.<0:3> := 1;", cst.RuleBitField},
		{"my^var := @other^var;", cst.RuleAssignmentStatement},
		{"IF a '<' b AND NOT c THEN CALL p(x,,z); ELSE RETURN; ENDIF;", cst.RuleIfStatement},
		{"IF x THEN", cst.RuleIfStatement},
		{"WHILE i < 10 DO i := i + 1;", cst.RuleWhileStatement},
		{"FOR i := 0 TO n - 1 BY 2 DO x[i] := 0;", cst.RuleForStatement},
		{"CALL $LEN(s);", cst.RuleCallStatement},
		{"RETURN a, b;", cst.RuleReturnStatement},
		{"BEGIN x := 1; y := 2; END;", cst.RuleBlockStatement},
		{";", cst.RuleEmptyStatement},
		{"ASSERT 10 : x > 0;", cst.RuleAssertStatement},
		{"CASE k OF BEGIN 1, 2 -> y := 1; OTHERWISE -> y := 0; END;", cst.RuleCaseStatement},
		{"DROP lbl;", cst.RuleDropStatement},
		{"GOTO done;", cst.RuleGotoStatement},
		{"USE r;", cst.RuleUseStatement},
		{"SCAN buf WHILE \" \" -> @p;", cst.RuleScanStatement},
		{"RSCAN buf[9] UNTIL \",\";", cst.RuleRscanStatement},
		{"STORE x, y;", cst.RuleStoreStatement},
		{"f(1, 2);", cst.RuleFunctionCall},
		{"int x; ! trailing comment", cst.RuleVariableDeclaration},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			tree, bag := parseLine(t, tc.src)
			if bag.HasErrors() {
				t.Fatalf("unexpected diagnostics: %v", bag.Items())
			}
			if findRule(tree, tc.rule) == nil {
				t.Fatalf("expected a %s node", tc.rule)
			}
			if len(tree.Errors()) != 0 {
				t.Fatalf("unexpected error leaves: %d", len(tree.Errors()))
			}
		})
	}
}

func TestRejectedLines(t *testing.T) {
	cases := []struct {
		src  string
		code diag.Code
		msg  string
	}{
		{"BEGIN", diag.SynUnexpectedToken, "mismatched input '<EOF>' expecting 'END'"},
		{"END;", diag.SynUnexpectedToken, "no viable alternative at input 'END'"},
		{"ELSE x := 1;", diag.SynUnexpectedToken, "no viable alternative at input 'ELSE'"},
		{"x := ;", diag.SynExpectExpression, "mismatched input ';' expecting expression"},
		{"x := 1 y", diag.SynExtraInput, "extraneous input 'y' expecting '<EOF>'"},
		{"CALL ;", diag.SynExpectIdentifier, "mismatched input ';' expecting IDENTIFIER"},
		{"FOR i := 1 DO x;", diag.SynUnexpectedToken, "mismatched input 'DO' expecting {'TO', 'DOWNTO'}"},
		{"", diag.SynUnexpectedToken, "mismatched input '<EOF>' expecting programElement"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			_, bag := parseLine(t, tc.src)
			items := bag.Items()
			if len(items) != 1 {
				t.Fatalf("expected exactly one diagnostic, got %v", items)
			}
			if items[0].Code != tc.code {
				t.Errorf("code = %v, want %v", items[0].Code, tc.code)
			}
			if items[0].Message != tc.msg {
				t.Errorf("message = %q, want %q", items[0].Message, tc.msg)
			}
		})
	}
}

func TestExtraInputBecomesErrorLeaves(t *testing.T) {
	tree, _ := parseLine(t, "x := 1 y z")
	errs := tree.Errors()
	if len(errs) != 2 {
		t.Fatalf("expected 2 error leaves, got %d", len(errs))
	}
	if errs[0].Text() != "y" || errs[1].Text() != "z" {
		t.Fatalf("unexpected error leaves %q %q", errs[0].Text(), errs[1].Text())
	}
}

func TestAssignmentShape(t *testing.T) {
	tree, bag := parseLine(t, "total := total + item[i];")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	asg := findRule(tree, cst.RuleAssignmentStatement)
	lv := asg.Child(cst.RuleLvalue)
	if lv == nil || lv.Text() != "total" {
		t.Fatalf("lvalue = %v", lv)
	}
	rhs := asg.Child(cst.RuleExpression)
	if rhs == nil || rhs.Text() != "total + item[i]" {
		t.Fatalf("rhs text = %q", rhs.Text())
	}
	add := findRule(rhs, cst.RuleAdditive)
	if add == nil || !add.Has(token.Plus) {
		t.Fatal("expected an additive node with '+'")
	}
	if !asg.Has(token.Semicolon) {
		t.Fatal("expected the trailing ';' on the assignment")
	}
}

func TestProcedureParts(t *testing.T) {
	tree, bag := parseLine(t, "INT(32) PROC compute(a, b) MAIN;")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	proc := findRule(tree, cst.RuleProcedureDefinition)
	if ts := proc.Child(cst.RuleTypeSpecifier); ts == nil || ts.Text() != "INT(32)" {
		t.Fatalf("type specifier = %v", ts)
	}
	if id := proc.Token(token.Ident); id == nil || id.Text() != "compute" {
		t.Fatalf("name = %v", id)
	}
	params := proc.Child(cst.RuleFormalParameterList)
	if got := len(params.Rules(cst.RuleFormalParameter)); got != 2 {
		t.Fatalf("params = %d, want 2", got)
	}
	if attrs := proc.Rules(cst.RuleProcedureAttribute); len(attrs) != 1 || attrs[0].Text() != "MAIN" {
		t.Fatalf("attributes = %v", attrs)
	}
}

func TestCaseArms(t *testing.T) {
	tree, bag := parseLine(t, "CASE k OF BEGIN 1 -> a := 1; 2, 3 -> a := 2; OTHERWISE a := 0; END;")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	cs := findRule(tree, cst.RuleCaseStatement)
	labels := cs.Rules(cst.RuleCaseLabel)
	if len(labels) != 3 {
		t.Fatalf("labels = %d, want 3", len(labels))
	}
	if !labels[2].Has(token.KwOtherwise) {
		t.Fatal("last arm should be OTHERWISE")
	}
	if got := len(labels[1].Rules(cst.RuleExpression)); got != 2 {
		t.Fatalf("second arm label count = %d, want 2", got)
	}
}

func TestTextKeepsSpacing(t *testing.T) {
	tree, _ := parseLine(t, "  CALL   proc^a ( x ,  y ) ;  ")
	call := findRule(tree, cst.RuleCallStatement)
	if got := call.Text(); got != "CALL   proc^a ( x ,  y ) ;" {
		t.Fatalf("text = %q", got)
	}
	if call.Text() != tree.Text() {
		t.Fatalf("call text %q differs from root %q", call.Text(), tree.Text())
	}
}

func TestPointerMarkers(t *testing.T) {
	cases := []struct {
		src   string
		terms int
	}{
		{"INT .EXT ptr;", 2},
		{"INT .sg ptr;", 2},
		{"INT .ext;", 1},
		{"INT .p;", 1},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			tree, bag := parseLine(t, tc.src)
			if bag.HasErrors() {
				t.Fatalf("unexpected diagnostics: %v", bag.Items())
			}
			ind := findRule(tree, cst.RuleIndirection)
			if ind == nil {
				t.Fatal("no indirection node")
			}
			if len(ind.Children) != tc.terms {
				t.Fatalf("indirection terminals = %d, want %d", len(ind.Children), tc.terms)
			}
		})
	}
}
