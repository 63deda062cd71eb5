package transpile

import (
	"regexp"
	"strconv"
	"strings"

	"talfront/internal/ast"
	"talfront/internal/fallback"
)

// java emits a class skeleton. Declarations map onto primitive types and
// statements without a Java counterpart are kept as comments.
type java struct{}

func (java) header(t Target) []string {
	return []string{"// Manually Transpiled from TAL to " + string(t), "public class GeneratedProgram {", ""}
}

func (java) footer() []string { return []string{"", "}"} }
func (java) base() int        { return 1 }

func (java) comment(text string) string   { return "// " + text }
func (java) directive(text string) string { return "// Directive: " + text }
func (java) other(code string) string     { return "// Statement: " + code }

func (java) block(name string) string { return "static class " + name + " {" }

func (java) proc(p ast.ProcAttrs) string {
	return withNote(javaSignature(p)+" {", strings.Join(p.Attributes, " "))
}

func (java) procDecl(p ast.ProcAttrs) string {
	return "// " + javaSignature(p) + ";" + procNote(p)
}

func javaSignature(p ast.ProcAttrs) string {
	ret := "void"
	if p.ReturnType != "" {
		ret = javaType(p.ReturnType)
	}
	params := make([]string, 0, len(p.Parameters))
	for _, name := range p.Parameters {
		params = append(params, "long "+name)
	}
	vis := "static "
	if p.Type == "SUBPROC" {
		vis = "private static "
	}
	return vis + ret + " " + p.Name + "(" + strings.Join(params, ", ") + ")"
}

func (java) structOpen(s ast.StructAttrs) string {
	return withNote("static class "+s.Name+" {", pointerNote(s.Indirection))
}

func (java) structRef(s ast.StructAttrs) string {
	return "// STRUCT " + s.Name + pointerSuffix(s.Indirection)
}

func (java) begin() string { return "{" }

func (java) close(_ blockKind, note string) string { return withNote("}", note) }

func (java) ifOpen(cond string) string    { return "if (" + javaExpr(cond) + ") {" }
func (java) elseIf(cond string) string    { return "} else if (" + javaExpr(cond) + ") {" }
func (java) elseLine() string             { return "} else {" }
func (java) whileOpen(cond string) string { return "while (" + javaExpr(cond) + ") {" }

func (java) forOpen(f ast.ForAttrs) string {
	cmp, step := " <= ", " += "
	if f.Direction == "DOWNTO" {
		cmp, step = " >= ", " -= "
	}
	by := f.Step
	if by == "" {
		by = "1"
	}
	return "for (" + f.Variable + " = " + javaExpr(f.Start) + "; " + f.Variable + cmp + javaExpr(f.Limit) + "; " +
		f.Variable + step + javaExpr(by) + ") {"
}

func (java) caseOpen(selector string) string { return "switch (" + javaExpr(selector) + ") {" }

func (java) caseArm(labels []string) string {
	if len(labels) == 0 {
		return "default:"
	}
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = "case " + l + ":"
	}
	return strings.Join(parts, " ")
}

func (java) armEnd() string { return "break;" }

func (d java) statement(n *ast.Node) []string {
	switch a := n.Attrs.(type) {
	case ast.LiteralDeclAttrs:
		out := make([]string, 0, len(a.Items))
		for _, it := range a.Items {
			out = append(out, javaConst(it))
		}
		return out
	case ast.VarDeclAttrs:
		out := make([]string, 0, len(a.Variables))
		for _, v := range a.Variables {
			out = append(out, javaDecl(a.Type, v))
		}
		return out
	case ast.CallAttrs:
		return []string{a.Function + "(" + strings.Join(callParams(a, func(s string) string { return javaExpr(fallback.Clean(s)) }), ", ") + ");"}
	case ast.ReturnAttrs:
		if a.Value == "" {
			return []string{"return;"}
		}
		return []string{withNote("return "+javaExpr(a.Value)+";", statusNote(a.Status))}
	case ast.AssignAttrs:
		return []string{a.Target + " = " + javaExpr(a.Value) + ";"}
	case ast.AssertAttrs:
		return []string{"assert " + javaExpr(a.Condition) + ";"}
	case ast.IdentAttrs:
		return []string{"// " + keyword(n.Kind) + " " + a.Identifier}
	case ast.GotoAttrs:
		return []string{"// GOTO " + a.Label}
	case ast.ScanAttrs:
		return []string{"// " + scanText(n.Kind, a)}
	case ast.StoreAttrs:
		return []string{"// STORE " + strings.Join(append([]string{a.Target}, a.Values...), ", ")}
	case ast.NameAttrs:
		return []string{"// NAME " + a.Name}
	case ast.DirectiveAttrs:
		return []string{d.directive(strings.Join(a.Directives, ", "))}
	}
	return []string{d.other(fallback.Clean(n.Text))}
}

func statusNote(status string) string {
	if status == "" {
		return ""
	}
	return "status: " + status
}

func pointerNote(on bool) string {
	if on {
		return "pointer"
	}
	return ""
}

func pointerSuffix(on bool) string {
	if on {
		return " // pointer"
	}
	return ""
}

// javaType maps a lowercased TAL type such as "int(32)" to a primitive.
func javaType(t string) string {
	switch {
	case t == "int(64)" || strings.HasPrefix(t, "fixed"):
		return "long"
	case strings.HasPrefix(t, "int") || strings.HasPrefix(t, "unsigned"):
		return "int"
	case t == "real(64)":
		return "double"
	case strings.HasPrefix(t, "real"):
		return "float"
	case strings.HasPrefix(t, "string"):
		return "char"
	}
	return "long"
}

var reBounds = regexp.MustCompile(`^\[\s*(-?\d+)\s*:\s*(-?\d+)\s*\]$`)

func javaDecl(t string, v ast.Variable) string {
	jt := javaType(t)
	note := pointerNote(v.Indirection)
	if v.ArraySpec != "" {
		if m := reBounds.FindStringSubmatch(v.ArraySpec); m != nil {
			lo, _ := strconv.Atoi(m[1])
			hi, _ := strconv.Atoi(m[2])
			return withNote(jt+"[] "+v.Name+" = new "+jt+"["+strconv.Itoa(hi-lo+1)+"];", note)
		}
		return withNote(jt+"[] "+v.Name+";", strings.TrimSpace(v.ArraySpec+" "+note))
	}
	if v.InitValue != "" {
		return withNote(jt+" "+v.Name+" = "+javaExpr(fallback.Clean(v.InitValue))+";", note)
	}
	return withNote(jt+" "+v.Name+";", note)
}

func javaConst(it ast.LiteralItem) string {
	if _, err := strconv.ParseInt(it.Value, 10, 64); err == nil {
		return "static final long " + it.Name + " = " + it.Value + ";"
	}
	if strings.HasPrefix(it.Value, `"`) {
		return "static final String " + it.Name + " = " + it.Value + ";"
	}
	return "// CONST " + it.Name + " = " + it.Value
}

var (
	reQuotedOp = regexp.MustCompile(`'(<=|>=|<>|<|>|=|\+|-|\*|/)'`)
	reRelEq    = regexp.MustCompile(`([^:<>=!])=([^=])`)
	reLogical  = regexp.MustCompile(`(?i)\b(AND|OR|NOT|LAND|LOR|XOR)\b`)
)

var logicalOps = map[string]string{"AND": "&&", "OR": "||", "NOT": "!", "LAND": "&", "LOR": "|", "XOR": "^"}

// javaExpr rewrites TAL operators outside string literals.
func javaExpr(expr string) string {
	parts := strings.Split(expr, `"`)
	for i := 0; i < len(parts); i += 2 {
		s := reQuotedOp.ReplaceAllString(parts[i], "$1")
		s = strings.ReplaceAll(s, "<>", "!=")
		s = reRelEq.ReplaceAllString(s, "$1==$2")
		s = reLogical.ReplaceAllStringFunc(s, func(w string) string { return logicalOps[strings.ToUpper(w)] })
		s = strings.ReplaceAll(s, "! ", "!")
		parts[i] = s
	}
	return strings.Join(parts, `"`)
}
