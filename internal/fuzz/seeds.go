package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addSnippetSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.tal файлы
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".tal") {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

// addSnippetSeeds добавляет короткие фрагменты на случай пустого testdata.
func addSnippetSeeds(f *testing.F) {
	for _, snippet := range []string{
		"",
		"INT a := 1;\n",
		"PROC p MAIN;\nBEGIN\n  CALL q(a, b);\nEND;\n",
		"IF a THEN\nBEGIN\n  a := 0;\nEND\nELSE\n  a := 1;\n",
		"CASE x OF BEGIN 1 -> a := 1; OTHERWISE -> a := 2; END;\n",
		"STRUCT s (*);\nBEGIN\n  INT f;\nEND;\n",
		"STRING .s[0:9] := \"a;b\";  ! comment\n",
		"END\nEND\nBEGIN\n",
		"\xef\xbb\xbfINT a;\r\n\xe9;\r\n",
	} {
		f.Add([]byte(snippet))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
