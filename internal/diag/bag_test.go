package diag_test

import (
	"testing"

	"talfront/internal/diag"
	"talfront/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := diag.NewBag(2)
	for i := 0; i < 3; i++ {
		b.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.AsmUnparsedLine, Line: i + 1})
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
	unbounded := diag.NewBag(0)
	for i := 0; i < 100; i++ {
		unbounded.Add(diag.Diagnostic{})
	}
	if unbounded.Len() != 100 {
		t.Errorf("unbounded bag dropped items: %d", unbounded.Len())
	}
}

func TestBagSortDedup(t *testing.T) {
	b := diag.NewBag(0)
	b.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.CfgUnknownHandler, Line: 3, Message: "w"})
	b.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.SynUnexpectedToken, Line: 1, Column: 4, Message: "a"})
	b.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.SynUnexpectedToken, Line: 1, Column: 4, Message: "a"})
	b.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.AsmUnparsedLine, Line: 1, Column: 0, Message: "b"})

	b.Dedup()
	if b.Len() != 3 {
		t.Fatalf("after Dedup Len = %d, want 3", b.Len())
	}
	b.Sort()
	items := b.Items()
	if items[0].Column != 0 || items[1].Column != 4 || items[2].Line != 3 {
		t.Errorf("unexpected order: %+v", items)
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Error("expected errors and warnings")
	}
	if got := len(b.Filter(diag.SevWarning)); got != 1 {
		t.Errorf("Filter(warning) = %d, want 1", got)
	}
}

func TestBagReporter(t *testing.T) {
	b := diag.NewBag(10)
	var r diag.Reporter = diag.BagReporter{Bag: b}
	r.Report(diag.LexUnknownChar, diag.SevError, source.Span{Start: 1, End: 2}, "unknown character")
	if b.Len() != 1 || b.Items()[0].Primary.Start != 1 {
		t.Fatalf("reporter did not store diagnostic: %+v", b.Items())
	}
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code diag.Code
		id   string
	}{
		{diag.LexBadNumber, "LEX1003"},
		{diag.SynExtraInput, "SYN2004"},
		{diag.AsmUnparsedLine, "ASM3001"},
		{diag.CfgUnknownHandler, "CFG4002"},
		{diag.UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.id {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.id)
		}
	}
	if diag.Code(9999).Title() != "Unknown error" {
		t.Error("unknown code should fall back to generic title")
	}
}
