package transpile

import (
	"strings"

	"talfront/internal/ast"
	"talfront/internal/fallback"
)

// dialect renders classified lines. Every method returns a single line
// without indentation, except statement which may expand to several.
type dialect interface {
	header(target Target) []string
	footer() []string
	base() int

	comment(text string) string
	directive(text string) string
	other(code string) string

	block(name string) string
	proc(p ast.ProcAttrs) string
	procDecl(p ast.ProcAttrs) string
	structOpen(s ast.StructAttrs) string
	structRef(s ast.StructAttrs) string
	begin() string
	close(kind blockKind, note string) string

	ifOpen(cond string) string
	elseIf(cond string) string
	elseLine() string
	whileOpen(cond string) string
	forOpen(f ast.ForAttrs) string
	caseOpen(selector string) string
	caseArm(labels []string) string
	armEnd() string

	statement(n *ast.Node) []string
}

func dialectFor(t Target) dialect {
	if t == Java {
		return java{}
	}
	return pseudo{}
}

type pseudo struct{}

func (pseudo) header(t Target) []string {
	return []string{"// Manually Transpiled from TAL to " + string(t), "PROGRAM GeneratedProgram", ""}
}

func (pseudo) footer() []string { return []string{"", "END PROGRAM"} }
func (pseudo) base() int        { return 0 }

func (pseudo) comment(text string) string   { return "// " + text }
func (pseudo) directive(text string) string { return "// Directive: " + text }
func (pseudo) other(code string) string     { return "// Statement: " + code }

func (pseudo) block(name string) string { return "BLOCK " + name + ":" }

func (pseudo) proc(p ast.ProcAttrs) string {
	return procedureWord(p) + " " + p.Name + "(" + strings.Join(p.Parameters, ", ") + "):"
}

func (pseudo) procDecl(p ast.ProcAttrs) string {
	return "DECLARE " + procedureWord(p) + " " + p.Name + "(" + strings.Join(p.Parameters, ", ") + ")" + procNote(p)
}

func (pseudo) structOpen(s ast.StructAttrs) string {
	return pointer(s.Indirection, s.IndirectionKind) + "STRUCT " + s.Name + ":"
}

func (pseudo) structRef(s ast.StructAttrs) string {
	return pointer(s.Indirection, s.IndirectionKind) + "STRUCT " + s.Name
}

func (pseudo) begin() string { return "BEGIN" }

func (pseudo) close(kind blockKind, note string) string {
	s := "END"
	switch kind {
	case blockBlock:
		s = "END BLOCK"
	case blockStruct:
		s = "END STRUCT"
	case blockProc:
		s = "END PROC"
	case blockSubproc:
		s = "END SUBPROC"
	case blockIf:
		s = "END IF"
	case blockWhile:
		s = "END WHILE"
	case blockFor:
		s = "END FOR"
	case blockCase:
		s = "END CASE"
	}
	return withNote(s, note)
}

func (pseudo) ifOpen(cond string) string    { return "IF " + cond + " THEN:" }
func (pseudo) elseIf(cond string) string    { return "ELSE IF " + cond + " THEN:" }
func (pseudo) elseLine() string             { return "ELSE:" }
func (pseudo) whileOpen(cond string) string { return "WHILE " + cond + " DO:" }

func (pseudo) forOpen(f ast.ForAttrs) string {
	s := "FOR " + f.Variable + " = " + f.Start + " " + f.Direction + " " + f.Limit
	if f.Step != "" {
		s += " BY " + f.Step
	}
	return s + " DO:"
}

func (pseudo) caseOpen(selector string) string { return "CASE " + selector + " OF:" }

func (pseudo) caseArm(labels []string) string {
	if len(labels) == 0 {
		return "OTHERWISE:"
	}
	return "WHEN " + strings.Join(labels, ", ") + ":"
}

func (pseudo) armEnd() string { return "" }

func (d pseudo) statement(n *ast.Node) []string {
	switch a := n.Attrs.(type) {
	case ast.LiteralDeclAttrs:
		out := make([]string, 0, len(a.Items))
		for _, it := range a.Items {
			out = append(out, "CONST "+it.Name+" = "+it.Value)
		}
		return out
	case ast.VarDeclAttrs:
		out := make([]string, 0, len(a.Variables))
		for _, v := range a.Variables {
			s := "DECLARE " + v.Name + ": " + pointer(v.Indirection, v.IndirectionKind) + strings.ToUpper(a.Type)
			if v.ArraySpec != "" {
				s += " ARRAY" + v.ArraySpec
			}
			if v.InitValue != "" {
				s += " := " + fallback.Clean(v.InitValue)
			}
			out = append(out, s)
		}
		return out
	case ast.CallAttrs:
		return []string{"CALL " + a.Function + "(" + strings.Join(callParams(a, fallback.Clean), ", ") + ")"}
	case ast.ReturnAttrs:
		s := "RETURN"
		if a.Value != "" {
			s += " " + a.Value
		}
		if a.Status != "" {
			s += ", " + a.Status
		}
		return []string{s}
	case ast.AssignAttrs:
		return []string{a.Target + " = " + a.Value}
	case ast.AssertAttrs:
		if a.Level != "" {
			return []string{"ASSERT " + a.Level + ": " + a.Condition}
		}
		return []string{"ASSERT " + a.Condition}
	case ast.IdentAttrs:
		return []string{keyword(n.Kind) + " " + a.Identifier}
	case ast.GotoAttrs:
		return []string{"GOTO " + a.Label}
	case ast.ScanAttrs:
		return []string{scanText(n.Kind, a)}
	case ast.StoreAttrs:
		return []string{"STORE " + strings.Join(append([]string{a.Target}, a.Values...), ", ")}
	case ast.NameAttrs:
		return []string{"// NAME " + a.Name}
	case ast.DirectiveAttrs:
		return []string{d.directive(strings.Join(a.Directives, ", "))}
	}
	return []string{d.other(fallback.Clean(n.Text))}
}

func procedureWord(p ast.ProcAttrs) string {
	if p.Type == "SUBPROC" {
		return "SUBPROCEDURE"
	}
	return "PROCEDURE"
}

func procNote(p ast.ProcAttrs) string {
	switch {
	case p.Forward:
		return " // FORWARD"
	case p.External:
		return " // EXTERNAL"
	}
	return ""
}

// pointer: "EXT POINTER TO " для .EXT, "SG POINTER TO " для .SG
func pointer(on bool, kind string) string {
	switch {
	case !on:
		return ""
	case kind != "":
		return kind + " POINTER TO "
	}
	return "POINTER TO "
}

func withNote(s, note string) string {
	if note == "" {
		return s
	}
	return s + " // " + note
}

func keyword(k ast.Kind) string {
	switch k {
	case ast.KindDropStatement:
		return "DROP"
	case ast.KindUseStatement:
		return "USE"
	}
	return strings.ToUpper(k.String())
}

func scanText(k ast.Kind, a ast.ScanAttrs) string {
	s := "SCAN "
	if k == ast.KindRscanStatement {
		s = "RSCAN "
	}
	mode := " WHILE "
	if a.Until {
		mode = " UNTIL "
	}
	s += a.Target + mode + a.Condition
	if a.Pointer != "" {
		s += " -> " + a.Pointer
	}
	return s
}

func callParams(a ast.CallAttrs, conv func(string) string) []string {
	out := make([]string, 0, len(a.Parameters))
	for _, p := range a.Parameters {
		out = append(out, conv(p.Text))
	}
	return out
}
