// Package transpile rewrites TAL source into pseudocode or Java text line
// by line. It does not build a tree: each line is classified with the
// fallback recognizers plus a few block-header patterns, and a stack of
// open blocks decides indentation and how END is rendered.
package transpile

import (
	"regexp"
	"strings"

	"talfront/internal/ast"
	"talfront/internal/fallback"
	"talfront/internal/source"
)

type blockKind uint8

const (
	blockNone blockKind = iota
	blockBlock
	blockProc
	blockSubproc
	blockStruct
	blockBegin
	blockIf
	blockWhile
	blockFor
	blockCase
)

type frame struct {
	kind blockKind
	// header seen, BEGIN not yet; the next BEGIN is folded into the header
	awaitingBegin bool
}

var (
	reEnd     = regexp.MustCompile(`(?i)^END(?:IF|WHILE|FOR|CASE|STRUCT|BLOCK)?(?:$|[^A-Za-z0-9_^])`)
	reBegin   = regexp.MustCompile(`(?i)^BEGIN(?:$|[^A-Za-z0-9_^])`)
	reElseIf  = regexp.MustCompile(`(?i)^ELSE\s+IF\s+(.+?)\s+THEN\b\s*(.*)$`)
	reElse    = regexp.MustCompile(`(?i)^ELSE(?:$|[^A-Za-z0-9_^])\s*(.*)$`)
	reIf      = regexp.MustCompile(`(?i)^IF\s+(.+?)\s+THEN\b\s*(.*)$`)
	reWhile   = regexp.MustCompile(`(?i)^WHILE\s+(.+?)\s+DO\b\s*(.*)$`)
	reFor     = regexp.MustCompile(`(?i)^FOR\s+(.+?)\s*:=\s*(.+?)\s+(TO|DOWNTO)\s+(.+?)(?:\s+BY\s+(.+?))?\s+DO\b\s*(.*)$`)
	reCase    = regexp.MustCompile(`(?i)^CASE\s+(.+?)\s+OF\b\s*(.*)$`)
	reCaseEnd = regexp.MustCompile(`(?i)^(.*?)\s*\bEND\s*;?$`)
	reOther   = regexp.MustCompile(`(?i)^OTHERWISE\b\s*(?:->)?\s*(.*)$`)
	reElseKw  = regexp.MustCompile(`(?i)^ELSE\b`)
)

// Transpile rewrites src for target. The only error is an unknown target.
func Transpile(src []byte, target Target) (*Output, error) {
	target, err := ParseTarget(string(target))
	if err != nil {
		return nil, err
	}
	d := dialectFor(target)
	content, _ := source.Normalize(src)
	text := strings.TrimSpace(string(content))
	var lines []string
	if text != "" {
		lines = strings.Split(text, "\n")
	}
	w := &writer{d: d, lines: lines}
	for i := range lines {
		w.line(i)
	}
	w.closeAll()
	out := &Output{Target: target, Body: w.body}
	for _, h := range d.header(target) {
		out.Header = append(out.Header, Line{Text: h})
	}
	for _, f := range d.footer() {
		out.Footer = append(out.Footer, Line{Text: f})
	}
	return out, nil
}

type writer struct {
	d     dialect
	lines []string
	stack []frame
	body  []Line
}

func (w *writer) depth() int { return len(w.stack) }

func (w *writer) emit(indent int, text string) {
	if indent < 0 {
		indent = 0
	}
	if text == "" {
		w.body = append(w.body, Line{})
		return
	}
	w.body = append(w.body, Line{Indent: indent + w.d.base(), Text: text})
}

func (w *writer) top() *frame {
	if len(w.stack) == 0 {
		return nil
	}
	return &w.stack[len(w.stack)-1]
}

func (w *writer) push(kind blockKind, awaiting bool) {
	w.stack = append(w.stack, frame{kind: kind, awaitingBegin: awaiting})
}

func (w *writer) line(i int) {
	raw := strings.TrimSpace(w.lines[i])
	if raw == "" {
		w.emit(0, "")
		return
	}
	if strings.HasPrefix(raw, "?") {
		w.emit(w.depth(), w.d.directive(strings.TrimSpace(raw[1:])))
		return
	}
	code := fallback.StripComment(raw)
	if code == "" {
		w.emit(w.depth(), w.d.comment(commentText(raw)))
		return
	}
	w.code(i, code, commentText(raw))
}

func (w *writer) code(i int, code, note string) {
	switch {
	case reEnd.MatchString(code):
		w.end(i, note)
	case reBegin.MatchString(code):
		w.begin()
	case reElseIf.MatchString(code):
		m := reElseIf.FindStringSubmatch(code)
		w.elseBranch(w.d.elseIf(fallback.Clean(m[1])), m[2])
	case reElse.MatchString(code):
		m := reElse.FindStringSubmatch(code)
		w.elseBranch(w.d.elseLine(), m[1])
	case reIf.MatchString(code):
		m := reIf.FindStringSubmatch(code)
		w.conditional(blockIf, w.d.ifOpen(fallback.Clean(m[1])), m[2])
	case reWhile.MatchString(code):
		m := reWhile.FindStringSubmatch(code)
		w.conditional(blockWhile, w.d.whileOpen(fallback.Clean(m[1])), m[2])
	case reFor.MatchString(code):
		m := reFor.FindStringSubmatch(code)
		loop := ast.ForAttrs{
			Variable:  fallback.Clean(m[1]),
			Start:     fallback.Clean(m[2]),
			Direction: strings.ToUpper(m[3]),
			Limit:     fallback.Clean(m[4]),
			Step:      fallback.Clean(m[5]),
		}
		w.conditional(blockFor, w.d.forOpen(loop), m[6])
	case reCase.MatchString(code):
		m := reCase.FindStringSubmatch(code)
		w.caseStatement(fallback.Clean(m[1]), m[2])
	default:
		if t := w.top(); t != nil && t.kind == blockCase && w.caseArm(code) {
			return
		}
		w.statement(i, code, w.depth())
	}
}

func (w *writer) end(i int, note string) {
	t := w.top()
	if t == nil {
		w.emit(0, w.d.close(blockNone, note))
		return
	}
	// END ELSE: ветка IF продолжается
	if t.kind == blockIf && w.nextIsElse(i) {
		t.awaitingBegin = false
		return
	}
	kind := t.kind
	w.stack = w.stack[:len(w.stack)-1]
	w.emit(w.depth(), w.d.close(kind, note))
}

func (w *writer) begin() {
	if t := w.top(); t != nil && t.awaitingBegin {
		t.awaitingBegin = false
		return
	}
	w.emit(w.depth(), w.d.begin())
	w.push(blockBegin, false)
}

func (w *writer) elseBranch(header, tail string) {
	t := w.top()
	if t == nil || t.kind != blockIf {
		w.emit(w.depth()-1, header)
		if tail != "" {
			w.statement(-1, tail, w.depth())
		}
		return
	}
	w.emit(w.depth()-1, header)
	t.awaitingBegin = true
	w.tail(tail)
}

// conditional opens IF, WHILE and FOR. A header with a statement on the
// same line is closed right after that statement.
func (w *writer) conditional(kind blockKind, header, tail string) {
	if tail == "" || reBegin.MatchString(tail) {
		w.emit(w.depth(), header)
		w.push(kind, tail == "")
		return
	}
	at := w.depth()
	w.emit(at, header)
	if kind == blockIf {
		if k := indexWordOutsideStrings(tail, reElseKw); k >= 0 {
			w.statement(-1, tail[:k], at+1)
			w.emit(at, w.d.elseLine())
			tail = tail[k+len("ELSE"):]
		}
	}
	w.statement(-1, tail, at+1)
	w.emit(at, w.d.close(kind, ""))
}

func (w *writer) tail(tail string) {
	tail = strings.TrimSpace(tail)
	if tail == "" {
		return
	}
	if reBegin.MatchString(tail) {
		w.top().awaitingBegin = false
		return
	}
	w.statement(-1, tail, w.depth())
}

func (w *writer) caseStatement(selector, tail string) {
	if m := reCaseEnd.FindStringSubmatch(tail); m != nil {
		labels := strings.TrimSpace(m[1])
		if reBegin.MatchString(labels) {
			labels = strings.TrimSpace(labels[len("BEGIN"):])
		}
		at := w.depth()
		w.emit(at, w.d.caseOpen(selector))
		w.emit(at+1, w.d.comment("Case labels: "+labels))
		w.emit(at, w.d.close(blockCase, ""))
		return
	}
	w.emit(w.depth(), w.d.caseOpen(selector))
	w.push(blockCase, !reBegin.MatchString(tail))
}

// caseArm handles "1, 2 -> stmt" and "OTHERWISE -> stmt" inside CASE.
func (w *writer) caseArm(code string) bool {
	var labels []string
	var body string
	if m := reOther.FindStringSubmatch(code); m != nil {
		body = m[1]
	} else {
		k := fallback.IndexOutsideStrings(code, "->")
		if k < 0 {
			return false
		}
		for _, l := range fallback.SplitTopLevel(code[:k], ',') {
			if l != "" {
				labels = append(labels, fallback.Clean(l))
			}
		}
		body = code[k+2:]
	}
	at := w.depth()
	w.emit(at, w.d.caseArm(labels))
	if strings.TrimSpace(body) != "" {
		w.statement(-1, body, at+1)
	}
	if s := w.d.armEnd(); s != "" {
		w.emit(at+1, s)
	}
	return true
}

// statement renders a line that is not a block boundary. i is the source
// index or -1 for a tail embedded in a header.
func (w *writer) statement(i int, code string, at int) {
	code = strings.TrimSpace(code)
	if code == "" {
		return
	}
	if t := w.top(); t != nil && t.awaitingBegin {
		switch t.kind {
		case blockIf, blockWhile, blockFor:
			t.awaitingBegin = false
		}
	}
	n := fallback.Parse(code, 0)
	if n == nil {
		w.emit(at, w.d.other(fallback.Clean(code)))
		return
	}
	switch n.Kind {
	case ast.KindProcedureDefinition:
		p := n.Attrs.(ast.ProcAttrs)
		if p.Forward || p.External {
			w.emit(at, w.d.procDecl(p))
			return
		}
		w.emit(at, w.d.proc(p))
		kind := blockProc
		if p.Type == "SUBPROC" {
			kind = blockSubproc
		}
		w.push(kind, true)
	case ast.KindStructDeclaration:
		s := n.Attrs.(ast.StructAttrs)
		if i < 0 || !w.nextIsBegin(i) {
			w.emit(at, w.d.structRef(s))
			return
		}
		w.emit(at, w.d.structOpen(s))
		w.push(blockStruct, true)
	case ast.KindBlockDeclaration:
		w.emit(at, w.d.block(n.Attrs.(ast.BlockAttrs).Name))
		w.push(blockBlock, false)
	default:
		for _, s := range w.d.statement(n) {
			w.emit(at, s)
		}
	}
}

func (w *writer) closeAll() {
	for len(w.stack) > 0 {
		kind := w.stack[len(w.stack)-1].kind
		w.stack = w.stack[:len(w.stack)-1]
		w.emit(w.depth(), w.d.close(kind, ""))
	}
}

func (w *writer) nextCode(i int) string {
	for j := i + 1; j < len(w.lines); j++ {
		raw := strings.TrimSpace(w.lines[j])
		if raw == "" || strings.HasPrefix(raw, "?") {
			continue
		}
		if code := fallback.StripComment(raw); code != "" {
			return code
		}
	}
	return ""
}

func (w *writer) nextIsElse(i int) bool  { return reElse.MatchString(w.nextCode(i)) }
func (w *writer) nextIsBegin(i int) bool { return reBegin.MatchString(w.nextCode(i)) }

// commentText returns the comment carried by a line, without markers.
func commentText(raw string) string {
	k := fallback.IndexOutsideStrings(raw, "!")
	d := fallback.IndexOutsideStrings(raw, "--")
	switch {
	case k >= 0 && (d < 0 || k < d):
		text := raw[k+1:]
		if end := strings.IndexByte(text, '!'); end >= 0 {
			text = text[:end]
		}
		return strings.TrimSpace(text)
	case d >= 0:
		return strings.TrimSpace(raw[d+2:])
	}
	return ""
}

func indexWordOutsideStrings(s string, re *regexp.Regexp) int {
	inString := false
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			inString = !inString
			continue
		}
		if inString || (i > 0 && isWord(s[i-1])) {
			continue
		}
		if re.MatchString(s[i:]) {
			return i
		}
	}
	return -1
}

func isWord(c byte) bool {
	return c == '_' || c == '^' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
