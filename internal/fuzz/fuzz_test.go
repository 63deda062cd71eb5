package fuzztests

import (
	"context"
	"testing"
	"time"

	"talfront/internal/diag"
	"talfront/internal/hybrid"
	"talfront/internal/lexer"
	"talfront/internal/source"
	"talfront/internal/testkit"
	"talfront/internal/token"
	"talfront/internal/transpile"
)

const maxFuzzInput = 1 << 16 // 64 KiB

// runTimeout is the maximum time allowed for a single input. If a pass
// takes longer, it indicates a potential infinite loop.
const runTimeout = 5 * time.Second

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.tal", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		toks := lx.All()
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("token stream does not end with EOF: %v", toks)
		}
	})
}

func FuzzHybridDocument(f *testing.F) {
	addCorpusSeeds(f)
	gen := hybrid.New(hybrid.Options{})
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		content, _ := source.Normalize(input)
		lines := len(source.SplitLines(string(content)))

		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		done := make(chan *hybrid.Document, 1)
		go func() { done <- gen.Generate(context.Background(), input) }()

		select {
		case doc := <-done:
			if err := testkit.CheckDocument(doc, lines); err != nil {
				t.Fatalf("invariant violated: %v\ninput: %q", err, truncateForLog(input, 200))
			}
		case <-ctx.Done():
			t.Fatalf("assembler hang detected: took longer than %v\ninput (%d bytes): %q",
				runTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func FuzzTranspileNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			for _, target := range []transpile.Target{transpile.Pseudocode, transpile.Java} {
				out, err := transpile.Transpile(input, target)
				if err != nil {
					t.Errorf("transpile %s: %v", target, err)
					return
				}
				_ = out.Render()
			}
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("transpiler hang detected: took longer than %v\ninput (%d bytes): %q",
				runTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
