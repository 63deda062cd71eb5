// Package preproc recognizes multi-line TAL constructs before line parsing.
//
// A Table holds compiled patterns in registration order. Run walks the
// source lines; the first pattern whose start regex matches a trimmed line
// hands the span to its handler, which returns a synthesized node and the
// number of original lines it consumed. Lines no pattern claims pass
// through unchanged.
//
// A Table is read-only after construction and may be shared between
// goroutines.
package preproc

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"regexp"

	"talfront/internal/diag"
	"talfront/internal/logging"
)

type entry struct {
	pattern Pattern
	start   *regexp.Regexp
	handler Handler
}

// Table is an ordered set of compiled patterns.
type Table struct {
	entries []entry
	logger  *slog.Logger
}

// Empty returns a table without patterns.
func Empty(logger *slog.Logger) *Table {
	return &Table{logger: logging.OrDiscard(logger)}
}

// Load reads a pattern file. A missing file is not a problem: the table is
// simply empty. Unreadable files, decode failures, bad regexes and unknown
// handlers become warnings; the affected patterns are left out.
func Load(path string, logger *slog.Logger) (*Table, []diag.Diagnostic) {
	t := Empty(logger)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		t.logger.Info("preprocessor patterns file not found, using built-in patterns only", "path", path)
		return t, nil
	}
	if err != nil {
		t.logger.Warn("could not load preprocessor patterns", "path", path, "err", err)
		return t, []diag.Diagnostic{warning(diag.CfgPatternDecode, fmt.Sprintf("%s: %v", path, err))}
	}
	patterns, err := Decode(data, FormatOf(path))
	if err != nil {
		t.logger.Warn("could not decode preprocessor patterns", "path", path, "err", err)
		return t, []diag.Diagnostic{warning(diag.CfgPatternDecode, fmt.Sprintf("%s: %v", path, err))}
	}
	return Compile(patterns, t.logger)
}

// Compile builds a table from pattern records, keeping their order.
func Compile(patterns []Pattern, logger *slog.Logger) (*Table, []diag.Diagnostic) {
	t := Empty(logger)
	var diags []diag.Diagnostic
	for _, p := range patterns {
		if p.ID == "" {
			p.ID = "unknown_pattern"
		}
		if p.Type != TypeMultiLine || p.StartRegex == "" {
			t.logger.Debug("preprocessor pattern ignored", "pattern", p.ID, "type", p.Type)
			continue
		}
		re, err := regexp.Compile(`(?i)^(?:` + p.StartRegex + `)`)
		if err != nil {
			t.logger.Warn("invalid preprocessor start regex", "pattern", p.ID, "err", err)
			diags = append(diags, warning(diag.CfgBadRegex, fmt.Sprintf("pattern %q: %v", p.ID, err)))
			continue
		}
		h, ok := handlers[p.Handler]
		if !ok {
			t.logger.Warn("preprocessor handler not found", "pattern", p.ID, "handler", p.Handler)
			diags = append(diags, warning(diag.CfgUnknownHandler, fmt.Sprintf("handler %q not found for pattern %q", p.Handler, p.ID)))
			continue
		}
		t.entries = append(t.entries, entry{pattern: p, start: re, handler: h})
	}
	return t, diags
}

// Compose concatenates tables; earlier tables win on overlapping starts.
func Compose(tables ...*Table) *Table {
	out := &Table{}
	for _, t := range tables {
		if t == nil {
			continue
		}
		if out.logger == nil {
			out.logger = t.logger
		}
		out.entries = append(out.entries, t.entries...)
	}
	out.logger = logging.OrDiscard(out.logger)
	return out
}

// Len returns the number of active patterns.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Patterns returns the active pattern records in order.
func (t *Table) Patterns() []Pattern {
	if t == nil {
		return nil
	}
	out := make([]Pattern, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.pattern
	}
	return out
}

// Fingerprint identifies the active patterns; it changes whenever a
// pattern is added, removed, reordered or edited.
func (t *Table) Fingerprint() string {
	h := sha256.New()
	for _, p := range t.Patterns() {
		fmt.Fprintf(h, "%s\x00%s\x00%s\x00%s\n", p.ID, p.Type, p.StartRegex, p.Handler)
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func warning(code diag.Code, msg string) diag.Diagnostic {
	return diag.Diagnostic{Severity: diag.SevWarning, Code: code, Message: msg}
}
