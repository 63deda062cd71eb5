package driver

import (
	"talfront/internal/diag"
	"talfront/internal/lexer"
	"talfront/internal/source"
	"talfront/internal/token"
)

// TokenizeResult holds the token stream of one file.
type TokenizeResult struct {
	File   *source.File
	Tokens []token.Token
	Bag    *diag.Bag
}

// Tokenize lexes path, collecting up to maxDiagnostics lexical errors.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return TokenizeFile(fs.Get(fileID), maxDiagnostics), nil
}

// TokenizeFile lexes an already loaded file.
func TokenizeFile(file *source.File, maxDiagnostics int) *TokenizeResult {
	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return &TokenizeResult{
		File:   file,
		Tokens: lx.All(),
		Bag:    bag,
	}
}
