package driver

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"talfront/internal/diagfmt"
)

// BaseName strips the source extension: ".tal" in any case, otherwise
// the last extension of the file name.
func BaseName(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".tal") {
		return path[:len(path)-len(".tal")]
	}
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// WriteOptions controls WriteOutputs.
type WriteOptions struct {
	Mode       Mode
	OutDir     string // "": next to the input
	LLMPayload bool   // wrap the AST document for the documentation pipeline
}

// Outputs names the files written for one input.
type Outputs struct {
	AST  string
	Code string
}

func outputBase(path, outDir string) string {
	base := BaseName(path)
	if outDir != "" {
		base = filepath.Join(outDir, filepath.Base(base))
	}
	return base
}

// WriteOutputs writes the AST document and the transpiled code of res.
// In hybrid mode the code file starts with a note pointing at the AST file.
func WriteOutputs(res *FileResult, opts WriteOptions) (Outputs, error) {
	var out Outputs
	if opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
			return out, err
		}
	}
	base := outputBase(res.Path, opts.OutDir)

	if res.Doc != nil {
		var buf bytes.Buffer
		var err error
		if opts.LLMPayload {
			err = diagfmt.WritePayload(&buf, diagfmt.NewLLMPayload(res.Doc))
		} else {
			err = diagfmt.WriteDocument(&buf, res.Doc, diagfmt.JSONOpts{Indent: true})
		}
		if err != nil {
			return out, fmt.Errorf("encode %s: %w", res.Path, err)
		}
		path := base + "_ast.json"
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return out, err
		}
		out.AST = path
	}

	if res.Transpiled != nil {
		var buf bytes.Buffer
		if opts.Mode == ModeHybrid && out.AST != "" {
			fmt.Fprintf(&buf, "// Hybrid Mode: AST in %s\n", out.AST)
			buf.WriteString("// Manual Transpile from source:\n\n")
		}
		buf.WriteString(res.Transpiled.Render())
		path := base + res.Transpiled.Target.Ext()
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return out, err
		}
		out.Code = path
	}
	return out, nil
}
