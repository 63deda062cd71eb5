// Package hybrid assembles a file's AST from preprocessed spans, grammar
// parses and fallback recognition, and measures how much of the file was
// understood.
package hybrid

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"talfront/internal/ast"
	"talfront/internal/diag"
	"talfront/internal/fallback"
	"talfront/internal/lineparse"
	"talfront/internal/logging"
	"talfront/internal/preproc"
	"talfront/internal/source"
	"talfront/internal/trace"
)

// DefaultCommentMarkers start comment lines.
var DefaultCommentMarkers = []string{"!", "--"}

const unparsedPrefixLen = 30

// Options configure a Generator. Zero values pick the defaults.
type Options struct {
	Patterns       *preproc.Table    // nil: no multi-line patterns
	Grammar        lineparse.Grammar // nil: the TAL grammar
	CommentMarkers []string          // nil: DefaultCommentMarkers
	Logger         *slog.Logger
}

// Generator turns TAL source into a Document. It holds no per-file state
// and may be used from several goroutines.
type Generator struct {
	patterns *preproc.Table
	grammar  lineparse.Grammar
	markers  []string
	logger   *slog.Logger
}

// New creates a Generator.
func New(opts Options) *Generator {
	g := &Generator{
		patterns: opts.Patterns,
		grammar:  opts.Grammar,
		markers:  opts.CommentMarkers,
		logger:   opts.Logger,
	}
	if g.patterns == nil {
		g.patterns = preproc.Empty(opts.Logger)
	}
	if g.grammar == nil {
		g.grammar = lineparse.TAL{}
	}
	if g.markers == nil {
		g.markers = DefaultCommentMarkers
	}
	g.logger = logging.OrDiscard(g.logger)
	return g
}

// Fingerprint identifies the configuration that shapes the output.
func (g *Generator) Fingerprint() string {
	return g.patterns.Fingerprint() + ":" + strings.Join(g.markers, ",")
}

// isComment returns the marker trimmed starts with, if any.
func (g *Generator) isComment(trimmed string) (string, bool) {
	for _, m := range g.markers {
		if m != "" && strings.HasPrefix(trimmed, m) {
			return m, true
		}
	}
	return "", false
}

// parseInner is the statement parser handed to preprocessor handlers.
func (g *Generator) parseInner(text string, line int) *ast.Node {
	if out := lineparse.Parse(text, line, g.grammar); out.OK() {
		return out.Node
	}
	return fallback.Parse(text, line)
}

type assembly struct {
	g      *Generator
	tracer trace.Tracer
	parent uint64
	root   *ast.Node
	errors []Error
	stats  Stats
}

// Generate parses src. It never fails: problems end up in the document's
// errors and as UnparsedLine nodes. A cancelled ctx stops at the next unit
// and marks the document incomplete.
func (g *Generator) Generate(ctx context.Context, src []byte) *Document {
	content, _ := source.Normalize(src)
	lines := source.SplitLines(string(content))
	tracer := trace.FromContext(ctx)

	pre, _ := trace.Start(ctx, trace.ScopePhase, "preprocess")
	units := g.patterns.Run(lines, g.parseInner)
	pre.WithExtra("units", strconv.Itoa(len(units))).End("")

	span, _ := trace.Start(ctx, trace.ScopePhase, "assemble")
	a := &assembly{
		g:      g,
		tracer: tracer,
		parent: span.ID(),
		root:   ast.New(ast.KindProgram, "TAL_Program", 0),
		errors: []Error{},
	}
	a.stats.Lines = len(lines)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if _, comment := g.isComment(trimmed); trimmed != "" && !comment {
			a.stats.Meaningful++
		}
	}

	incomplete := false
	for _, u := range units {
		if ctx.Err() != nil {
			incomplete = true
			break
		}
		a.unit(u)
	}

	doc := &Document{
		Source:     SourceTag,
		Success:    len(a.errors) == 0,
		Errors:     a.errors,
		AST:        ast.Serialize(a.root),
		Coverage:   Coverage(a.stats.Processed, a.stats.Meaningful),
		Incomplete: incomplete,
		Stats:      a.stats,
		Root:       a.root,
	}
	span.WithExtra("coverage", fmt.Sprintf("%.1f", doc.Coverage)).
		WithExtra("errors", strconv.Itoa(len(doc.Errors))).
		End("")
	g.logger.Debug("assembled", "lines", a.stats.Lines, "processed", a.stats.Processed,
		"meaningful", a.stats.Meaningful, "coverage", doc.Coverage)
	return doc
}

func (a *assembly) point(u preproc.Unit, detail string) {
	trace.Point(a.tracer, trace.ScopeUnit, "unit:"+strconv.Itoa(u.Start), detail, a.parent)
}

// unit advances the state machine by one unit.
func (a *assembly) unit(u preproc.Unit) {
	if u.Preprocessed() {
		if u.Node.Kind == ast.KindComment {
			return
		}
		a.root.Add(u.Node)
		a.stats.Processed++
		a.stats.Preprocessed++
		a.point(u, "preprocessed:"+u.Node.Meta.PatternID)
		return
	}

	trimmed := strings.TrimSpace(u.Text)
	if trimmed == "" {
		return
	}
	if marker, ok := a.g.isComment(trimmed); ok {
		text := strings.TrimPrefix(trimmed, marker)
		a.root.Add(ast.New(ast.KindComment, text, u.Start).With(ast.CommentAttrs{Marker: marker}))
		a.stats.Comments++
		a.point(u, "comment")
		return
	}

	out := lineparse.Parse(u.Text, u.Start, a.g.grammar)
	if out.OK() {
		a.root.Add(out.Node)
		a.stats.Processed++
		a.stats.Grammar++
		a.point(u, "grammar")
		return
	}

	if node := fallback.Parse(u.Text, u.Start); node != nil {
		a.root.Add(node)
		a.stats.Processed++
		a.stats.Fallback++
		a.point(u, "fallback")
		if len(out.Errors) > 0 {
			trace.Point(a.tracer, trace.ScopeFile, "recovered", fmt.Sprintf("line %d: %s", u.Start, out.Errors[0].Message), a.parent)
		}
		return
	}

	a.errors = append(a.errors, unparsedError(u, out.Errors))
	a.root.Add(ast.New(ast.KindUnparsedLine, trimmed, u.Start))
	a.stats.Unparsed++
	a.point(u, "unparsed")
}

// unparsedError keeps the first grammar error, or describes the line when
// the grammar had nothing to say.
func unparsedError(u preproc.Unit, errs []lineparse.Error) Error {
	if len(errs) > 0 {
		e := errs[0]
		return Error{Line: e.Line, Column: e.Column, Message: e.Message, Code: e.Code}
	}
	return Error{
		Line:    u.Start,
		Column:  0,
		Message: "Line unparsed: " + ast.Truncate(u.Text, unparsedPrefixLen),
		Code:    diag.AsmUnparsedLine,
	}
}
