package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"talfront/internal/source"
)

func TestFileSetVersioning(t *testing.T) {
	fs := source.NewFileSet()

	id1 := fs.Add("test.tal", []byte("INT a;"), 0)
	id2 := fs.Add("test.tal", []byte("INT b;"), 0)
	if id1 != 0 || id2 != 1 {
		t.Fatalf("unexpected ids %d, %d", id1, id2)
	}
	latest, ok := fs.GetLatest("test.tal")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d, %v; want %d, true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "INT a;" {
		t.Errorf("old version content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.tal")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("INT a;\r\nCALL b;\r\n")...)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "INT a;\nCALL b;\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&source.FileHadBOM == 0 || f.Flags&source.FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF bits", f.Flags)
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := source.NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "absent.tal")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNormalizeLatin1(t *testing.T) {
	// 0xE9 is 'é' in ISO-8859-1 and invalid as a lone UTF-8 byte.
	content, flags := source.Normalize([]byte{'"', 0xE9, '"'})
	if flags&source.FileDecodedLatin1 == 0 {
		t.Fatalf("expected latin-1 flag, got %b", flags)
	}
	if string(content) != "\"é\"" {
		t.Errorf("decoded = %q", content)
	}

	valid, flags := source.Normalize([]byte("\"é\""))
	if flags != 0 || string(valid) != "\"é\"" {
		t.Errorf("valid UTF-8 changed: %q flags=%b", valid, flags)
	}
}

func TestGetLineAndPosition(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("v.tal", []byte("first\nsecond\n\nfourth"))
	f := fs.Get(id)

	tests := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "first"},
		{2, "second"},
		{3, ""},
		{4, "fourth"},
		{5, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}

	pos := f.Position(7) // 'e' in "second"
	if pos.Line != 2 || pos.Col != 2 {
		t.Errorf("Position(7) = %+v, want 2:2", pos)
	}
	pos = f.Position(5) // '\n' after "first"
	if pos.Line != 1 || pos.Col != 6 {
		t.Errorf("Position(5) = %+v, want 1:6", pos)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"a\n", 1},
		{"a\n\n", 2},
		{"a\nb", 2},
	}
	for _, tt := range tests {
		if got := len(source.SplitLines(tt.in)); got != tt.want {
			t.Errorf("SplitLines(%q) has %d lines, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSpanCover(t *testing.T) {
	a := source.Span{Start: 4, End: 8}
	b := source.Span{Start: 2, End: 6}
	got := a.Cover(b)
	if got.Start != 2 || got.End != 8 {
		t.Errorf("Cover = %v", got)
	}
	if !(source.Span{Start: 3, End: 3}).Empty() {
		t.Error("expected empty span")
	}
}
