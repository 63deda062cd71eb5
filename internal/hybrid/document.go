package hybrid

import (
	"fmt"

	"talfront/internal/ast"
	"talfront/internal/diag"
)

// SourceTag names the strategy in the document's "source" field.
const SourceTag = "HybridWithPreProcessorAndVisitor"

// Error is one entry of the document's "errors" array.
type Error struct {
	Line    int       `json:"line" msgpack:"line"`
	Column  int       `json:"column" msgpack:"column"`
	Message string    `json:"message" msgpack:"message"`
	Code    diag.Code `json:"-" msgpack:"code"`
}

// Warning is a configuration problem that did not stop the run.
type Warning struct {
	Code    string `json:"code" msgpack:"code"`
	Message string `json:"message" msgpack:"message"`
	Line    int    `json:"line,omitempty" msgpack:"line,omitempty"`
}

// Stats counts how the lines of a file were handled.
type Stats struct {
	Lines        int `msgpack:"lines"`
	Meaningful   int `msgpack:"meaningful"`
	Comments     int `msgpack:"comments"`
	Processed    int `msgpack:"processed"`
	Grammar      int `msgpack:"grammar"`
	Fallback     int `msgpack:"fallback"`
	Preprocessed int `msgpack:"preprocessed"`
	Unparsed     int `msgpack:"unparsed"`
}

// Document is the serialized result of one file.
type Document struct {
	Source     string       `json:"source" msgpack:"source"`
	Success    bool         `json:"success" msgpack:"success"`
	Errors     []Error      `json:"errors" msgpack:"errors"`
	AST        ast.NodeJSON `json:"ast" msgpack:"ast"`
	Coverage   float64      `json:"coverage" msgpack:"coverage"`
	Warnings   []Warning    `json:"warnings,omitempty" msgpack:"warnings,omitempty"`
	Incomplete bool         `json:"incomplete,omitempty" msgpack:"incomplete,omitempty"`

	Stats Stats     `json:"-" msgpack:"stats"`
	Root  *ast.Node `json:"-" msgpack:"-"` // нет после чтения из кэша
}

// AddWarnings attaches configuration diagnostics. Only warnings are kept.
func (d *Document) AddWarnings(ds []diag.Diagnostic) {
	for _, x := range ds {
		if x.Severity != diag.SevWarning {
			continue
		}
		d.Warnings = append(d.Warnings, Warning{Code: x.Code.ID(), Message: x.Message, Line: x.Line})
	}
}

// CoverageText renders coverage with one decimal.
func (d *Document) CoverageText() string {
	return fmt.Sprintf("%.1f%%", d.Coverage)
}

// Coverage is processed/meaningful as a percentage in [0, 100]; no
// meaningful lines gives 0.
func Coverage(processed, meaningful int) float64 {
	if meaningful <= 0 {
		return 0
	}
	c := float64(processed) / float64(meaningful) * 100
	return min(max(c, 0), 100)
}
