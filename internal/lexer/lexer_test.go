package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"talfront/internal/diag"
	"talfront/internal/lexer"
	"talfront/internal/source"
	"talfront/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	bag := diag.NewBag(0)
	lx := lexer.New(source.NewUnit(input), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// expectTokens проверяет последовательность токенов (без EOF)
func expectTokens(t *testing.T, input string, expected ...token.Kind) {
	t.Helper()
	lx, bag := makeTestLexer(input)
	tokens := lx.All()
	tokens = tokens[:len(tokens)-1]

	if len(tokens) != len(expected) {
		t.Fatalf("input %q: expected %d tokens, got %d: %s (diags: %v)",
			input, len(expected), len(tokens), tokensToString(tokens), bag.Items())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("input %q token %d: expected %v, got %v (%q)", input, i, expected[i], tok.Kind, tok.Text)
		}
	}
}

func TestStatements(t *testing.T) {
	expectTokens(t, "CALL foo(x, y);",
		token.KwCall, token.Ident, token.LParen, token.Ident, token.Comma, token.Ident, token.RParen, token.Semicolon)
	expectTokens(t, "INT a, b := 5;",
		token.KwInt, token.Ident, token.Comma, token.Ident, token.Assign, token.IntLit, token.Semicolon)
	expectTokens(t, "int .ptr[0:9];",
		token.KwInt, token.Dot, token.Ident, token.LBracket, token.IntLit, token.Colon, token.IntLit, token.RBracket, token.Semicolon)
	expectTokens(t, "scan cw[1] while \" \" -> @begin^ptr;",
		token.KwScan, token.Ident, token.LBracket, token.IntLit, token.RBracket, token.KwWhile,
		token.StringLit, token.Arrow, token.At, token.Ident, token.Semicolon)
	expectTokens(t, "?SOURCE $SYSTEM",
		token.Question, token.Ident, token.Builtin)
	expectTokens(t, "IF a <> b AND c >= 1 THEN",
		token.KwIf, token.Ident, token.NotEq, token.Ident, token.KwAnd, token.Ident, token.GtEq, token.IntLit, token.KwThen)
}

func TestIdentifiersKeepCircumflex(t *testing.T) {
	lx, _ := makeTestLexer("send^message")
	tok := lx.Next()
	if tok.Kind != token.Ident || tok.Text != "send^message" {
		t.Fatalf("got %v %q", tok.Kind, tok.Text)
	}
}

func TestKeywordsAnyCase(t *testing.T) {
	expectTokens(t, "Begin end EndIf", token.KwBegin, token.KwEnd, token.KwEndIf)
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		in   string
		kind token.Kind
	}{
		{"42", token.IntLit},
		{"42D", token.IntLit},
		{"%17", token.IntLit},
		{"%B1011", token.IntLit},
		{"%H1F", token.IntLit},
		{"12.5F", token.FixedLit},
		{"3F", token.FixedLit},
		{"1.5", token.RealLit},
		{"1.5E2", token.RealLit},
		{"2E-3", token.RealLit},
	}
	for _, tt := range tests {
		lx, bag := makeTestLexer(tt.in)
		tok := lx.Next()
		if tok.Kind != tt.kind || tok.Text != tt.in {
			t.Errorf("%q: got %v %q, want %v", tt.in, tok.Kind, tok.Text, tt.kind)
		}
		if bag.Len() != 0 {
			t.Errorf("%q: unexpected diagnostics %v", tt.in, bag.Items())
		}
	}
}

func TestMalformedNumber(t *testing.T) {
	lx, bag := makeTestLexer("12AB")
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", tok.Kind)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexBadNumber {
		t.Errorf("expected LexBadNumber, got %v", bag.Items())
	}
}

func TestStrings(t *testing.T) {
	lx, bag := makeTestLexer(`"say ""hi"""`)
	tok := lx.Next()
	if tok.Kind != token.StringLit || tok.Text != `"say ""hi"""` {
		t.Fatalf("got %v %q", tok.Kind, tok.Text)
	}
	if bag.Len() != 0 {
		t.Errorf("unexpected diagnostics %v", bag.Items())
	}

	lx, bag = makeTestLexer(`"open`)
	if tok := lx.Next(); tok.Kind != token.Invalid {
		t.Errorf("expected Invalid for unterminated string, got %v", tok.Kind)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Errorf("expected LexUnterminatedString, got %v", bag.Items())
	}
}

func TestUnsignedOperators(t *testing.T) {
	expectTokens(t, "a '<' b '>>' 2 '<>' c",
		token.Ident, token.ULt, token.Ident, token.UShr, token.IntLit, token.UNotEq, token.Ident)
}

func TestCommentsAreTrivia(t *testing.T) {
	lx, _ := makeTestLexer("a := 1; ! trailing\n! whole ! b -- dash")
	tokens := lx.All()
	kinds := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{token.Ident, token.Assign, token.IntLit, token.Semicolon, token.Ident, token.EOF}
	if len(kinds) != len(want) {
		t.Fatalf("got %s", tokensToString(tokens))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("token %d = %v, want %v (%s)", i, kinds[i], want[i], tokensToString(tokens))
		}
	}
	// "b" несёт перед собой перевод строки и закрытый комментарий
	var sawComment bool
	for _, tr := range tokens[4].Leading {
		if tr.Kind == token.TriviaComment && tr.Text == "! whole !" {
			sawComment = true
		}
	}
	if !sawComment {
		t.Errorf("closed comment not attached to next token: %+v", tokens[4].Leading)
	}
	last := tokens[len(tokens)-1]
	if len(last.Leading) == 0 || last.Leading[len(last.Leading)-1].Kind != token.TriviaDashComment {
		t.Errorf("dash comment not attached to EOF: %+v", last.Leading)
	}
}

func TestUnknownCharacter(t *testing.T) {
	lx, bag := makeTestLexer("a # b")
	tokens := lx.All()
	if tokens[1].Kind != token.Invalid || tokens[2].Kind != token.Ident {
		t.Fatalf("got %s", tokensToString(tokens))
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnknownChar {
		t.Errorf("expected one LexUnknownChar, got %v", bag.Items())
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("x y")
	if p := lx.Peek(); p.Text != "x" {
		t.Fatalf("Peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "x" {
		t.Fatalf("Next after Peek = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "y" {
		t.Fatalf("second Next = %q", n.Text)
	}
	for range 3 {
		if lx.Next().Kind != token.EOF {
			t.Fatal("expected sticky EOF")
		}
	}
}

func TestSpansMatchText(t *testing.T) {
	input := "CALL  send^msg ( \"x\" , 10D ) ;"
	lx, _ := makeTestLexer(input)
	for _, tok := range lx.All() {
		if got := input[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Errorf("span %v covers %q, text %q", tok.Span, got, tok.Text)
		}
	}
}
