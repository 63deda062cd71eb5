package transpile

import (
	"fmt"
	"strings"
)

// Target is an output dialect.
type Target string

const (
	Pseudocode Target = "pseudocode"
	Java       Target = "java"
)

// ParseTarget validates a target name.
func ParseTarget(s string) (Target, error) {
	switch t := Target(strings.ToLower(strings.TrimSpace(s))); t {
	case Pseudocode, Java:
		return t, nil
	case "":
		return Pseudocode, nil
	}
	return "", fmt.Errorf("unknown transpile target %q (expected: pseudocode|java)", s)
}

// Ext is the file suffix used when the output is written next to the input.
func (t Target) Ext() string {
	if t == Java {
		return ".java"
	}
	return "_pseudocode.txt"
}

// Line is one output line at an indent level.
type Line struct {
	Indent int
	Text   string
}

// Output is a transpiled file. Body holds the translated source; Header and
// Footer are the fixed program frame.
type Output struct {
	Target Target
	Header []Line
	Body   []Line
	Footer []Line
}

// Lines returns header, body and footer in order.
func (o *Output) Lines() []Line {
	out := make([]Line, 0, len(o.Header)+len(o.Body)+len(o.Footer))
	out = append(out, o.Header...)
	out = append(out, o.Body...)
	return append(out, o.Footer...)
}

// Render joins the lines. Blank lines carry no indentation and there is no
// trailing newline.
func (o *Output) Render() string {
	unit := "  "
	if o.Target == Java {
		unit = "    "
	}
	lines := o.Lines()
	parts := make([]string, len(lines))
	for i, l := range lines {
		if strings.TrimSpace(l.Text) == "" {
			continue
		}
		parts[i] = strings.Repeat(unit, l.Indent) + l.Text
	}
	return strings.Join(parts, "\n")
}
