package diagfmt

import (
	"encoding/json"
	"io"

	"talfront/internal/hybrid"
)

// LLMPayload wraps a document for the downstream documentation pipeline.
type LLMPayload struct {
	Instruction  string           `json:"instruction"`
	TalAST       *hybrid.Document `json:"tal_ast"`
	OutputFormat string           `json:"output_format"`
	Requirements []string         `json:"requirements"`
}

// NewLLMPayload builds the payload around doc.
func NewLLMPayload(doc *hybrid.Document) LLMPayload {
	return LLMPayload{
		Instruction:  "Convert TAL AST to pseudocode",
		TalAST:       doc,
		OutputFormat: "structured_pseudocode",
		Requirements: []string{
			"Convert TAL identifiers (^ to _)",
			"Use standard control flow (IF/THEN/ELSE/END IF)",
			"PROC as PROCEDURE, SUBPROC as SUBPROCEDURE",
			"CALL statements to function calls",
			"Preserve nesting",
			"Add comments for unclear sections",
		},
	}
}

// WriteDocument пишет документ как JSON. HTML-символы не экранируются,
// чтобы сравнения вроде "a < b" оставались читаемыми.
func WriteDocument(w io.Writer, doc *hybrid.Document, opts JSONOpts) error {
	return encode(w, doc, opts.Indent, "  ")
}

// WritePayload пишет LLM payload с отступом в четыре пробела.
func WritePayload(w io.Writer, p LLMPayload) error {
	return encode(w, p, true, "    ")
}

func encode(w io.Writer, v any, indent bool, unit string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", unit)
	}
	return enc.Encode(v)
}
