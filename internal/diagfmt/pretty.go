package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"talfront/internal/diag"
	"talfront/internal/hybrid"
)

type palette struct {
	err, warn, caret, path, good, fair, poor *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow, color.Bold),
		caret: color.New(color.FgCyan, color.Bold),
		path:  color.New(color.Bold),
		good:  color.New(color.FgGreen),
		fair:  color.New(color.FgYellow),
		poor:  color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.caret, p.path, p.good, p.fair, p.poor} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует ошибки документа в человекочитаемый вид.
// Для каждой ошибки печатает:
// <path>:<line>:<col>: ERROR <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ от колонки до конца слова.
// lines - строки исходного файла, нужны только для контекста.
// Возвращает число напечатанных диагностик.
func Pretty(w io.Writer, path string, doc *hybrid.Document, lines []string, opts PrettyOpts) int {
	if doc == nil {
		return 0
	}
	p := newPalette(opts.Color)
	shown := FormatPath(path, opts.PathMode, opts.BaseDir)
	n := 0
	for _, e := range doc.Errors {
		if opts.Max > 0 && n >= opts.Max {
			break
		}
		code := e.Code
		if code == diag.UnknownCode {
			code = diag.AsmUnparsedLine
		}
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			p.path.Sprint(shown), e.Line, e.Column+1, p.err.Sprint("ERROR"), code.ID(), e.Message)
		if opts.Context && e.Line >= 1 && e.Line <= len(lines) {
			writeContext(w, lines[e.Line-1], e.Column, opts.Width, p)
		}
		n++
	}
	if !opts.ShowWarnings {
		return n
	}
	for _, wr := range doc.Warnings {
		if opts.Max > 0 && n >= opts.Max {
			break
		}
		loc := p.path.Sprint(shown)
		if wr.Line > 0 {
			loc = fmt.Sprintf("%s:%d", loc, wr.Line)
		}
		fmt.Fprintf(w, "%s: %s %s: %s\n", loc, p.warn.Sprint("WARNING"), wr.Code, wr.Message)
		n++
	}
	return n
}

func writeContext(w io.Writer, line string, col int, width uint8, p palette) {
	line = strings.ReplaceAll(line, "\t", " ")
	if col < 0 || col > len(line) {
		col = 0
	}
	shown := line
	if width > 0 {
		shown = runewidth.Truncate(line, int(width), "…")
	}
	fmt.Fprintf(w, "  %s\n", shown)

	pad := runewidth.StringWidth(line[:col])
	word := line[col:]
	if i := strings.IndexAny(word, " ;,()"); i > 0 {
		word = word[:i]
	}
	tildes := runewidth.StringWidth(word) - 1
	if tildes < 0 {
		tildes = 0
	}
	if width > 0 && pad+1+tildes > int(width) {
		return
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), p.caret.Sprint("^"+strings.Repeat("~", tildes)))
}

// Summary prints one line with coverage and counts, colored by coverage:
// green from 90%, yellow from 50%, red below.
func Summary(w io.Writer, path string, doc *hybrid.Document, opts PrettyOpts) {
	if doc == nil {
		return
	}
	p := newPalette(opts.Color)
	c := p.poor
	switch {
	case doc.Coverage >= 90:
		c = p.good
	case doc.Coverage >= 50:
		c = p.fair
	}
	fmt.Fprintf(w, "%s: coverage %s (%d/%d lines), %d %s",
		p.path.Sprint(FormatPath(path, opts.PathMode, opts.BaseDir)),
		c.Sprint(doc.CoverageText()),
		doc.Stats.Processed, doc.Stats.Meaningful,
		len(doc.Errors), plural(len(doc.Errors), "error", "errors"))
	if len(doc.Warnings) > 0 {
		fmt.Fprintf(w, ", %d %s", len(doc.Warnings), plural(len(doc.Warnings), "warning", "warnings"))
	}
	if doc.Incomplete {
		fmt.Fprint(w, " (incomplete)")
	}
	fmt.Fprintln(w)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
