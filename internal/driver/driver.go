// Package driver runs the front end over files and directories: it loads
// sources, consults the disk cache, runs the hybrid assembler and the
// manual transpiler, reports progress and writes output files.
package driver

import (
	"fmt"
	"log/slog"
	"strings"

	"talfront/internal/diag"
	"talfront/internal/hybrid"
	"talfront/internal/lineparse"
	"talfront/internal/logging"
	"talfront/internal/observ"
	"talfront/internal/pipeline"
	"talfront/internal/preproc"
	"talfront/internal/project"
	"talfront/internal/source"
	"talfront/internal/transpile"
)

// Mode selects what a run produces.
type Mode string

const (
	// ModeAST produces the hybrid AST document.
	ModeAST Mode = "ast"
	// ModeTranspile produces transpiled text only.
	ModeTranspile Mode = "transpile"
	// ModeHybrid produces both.
	ModeHybrid Mode = "hybrid"
)

// ParseMode validates a mode name; "" means ModeAST.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeAST, ModeTranspile, ModeHybrid:
		return m, nil
	case "":
		return ModeAST, nil
	}
	return "", fmt.Errorf("unknown mode %q (expected: ast|transpile|hybrid)", s)
}

func (m Mode) wantsDocument() bool  { return m != ModeTranspile }
func (m Mode) wantsTranspile() bool { return m != ModeAST }

// Options configures a run.
type Options struct {
	Mode      Mode
	Target    transpile.Target
	Generator *hybrid.Generator
	Cache     *DiskCache
	Sink      pipeline.Sink
	Timings   bool
	Jobs      int
	Logger    *slog.Logger
}

func (o Options) normalized() Options {
	if o.Mode == "" {
		o.Mode = ModeAST
	}
	if o.Target == "" {
		o.Target = transpile.Pseudocode
	}
	if o.Generator == nil {
		o.Generator = hybrid.New(hybrid.Options{Logger: o.Logger})
	}
	o.Logger = logging.OrDiscard(o.Logger)
	return o
}

// FileResult is the outcome for one input.
type FileResult struct {
	Path       string
	File       *source.File
	Doc        *hybrid.Document  // nil in ModeTranspile
	Transpiled *transpile.Output // nil in ModeAST
	Cached     bool
	Timer      *observ.Timer // nil unless Options.Timings
	Err        error         // per-file failure in batch runs
}

// Lines returns the normalized source lines, for diagnostics context.
func (r *FileResult) Lines() []string {
	if r == nil || r.File == nil {
		return nil
	}
	return r.File.Lines()
}

// GeneratorFromManifest builds the generator a project asks for: the
// manifest's pattern file, then the built-in patterns when enabled.
// Problems with the pattern file come back as warnings.
func GeneratorFromManifest(m *project.Manifest, logger *slog.Logger) (*hybrid.Generator, []diag.Diagnostic) {
	cfg := project.Default()
	if m != nil {
		cfg = m.Config
	}
	var tables []*preproc.Table
	var warnings []diag.Diagnostic
	if path := m.PatternsPath(); path != "" {
		t, ds := preproc.Load(path, logger)
		tables = append(tables, t)
		warnings = append(warnings, ds...)
	}
	if cfg.Patterns.Builtin {
		tables = append(tables, preproc.Builtin())
	}
	gen := hybrid.New(hybrid.Options{
		Patterns:       preproc.Compose(tables...),
		Grammar:        lineparse.TAL{},
		CommentMarkers: cfg.Parse.CommentMarkers,
		Logger:         logger,
	})
	return gen, warnings
}
