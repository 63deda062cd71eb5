package ast

// Attrs is a node-specific attribute payload. Each payload writes its own
// serialized keys; the set of payloads is closed to this package.
type Attrs interface {
	encode(m map[string]any)
}

type DirectiveAttrs struct {
	Directives []string
}

type LiteralItem struct {
	Name  string
	Value string
}

type LiteralDeclAttrs struct {
	Items []LiteralItem
}

// IndirectionKind is "EXT" or "SG" for extended and system-global
// pointers, empty for a plain '.' pointer.
type Variable struct {
	Name            string
	Indirection     bool
	IndirectionKind string
	ArraySpec       string
	InitValue       string
}

// VarDeclAttrs — Type в нижнем регистре, например "int" или "int(32)".
type VarDeclAttrs struct {
	Type      string
	Variables []Variable
}

type StructMember struct {
	Type string
	Name string
}

type StructAttrs struct {
	Name            string
	Indirection     bool
	IndirectionKind string
	Template        bool
	Members         []StructMember
}

type NameAttrs struct {
	Name string
}

type BlockAttrs struct {
	Name string
}

type ProcAttrs struct {
	Name           string
	Type           string // PROC | SUBPROC
	ReturnType     string
	ParametersText string
	Parameters     []string
	Attributes     []string
	Forward        bool
	External       bool
}

// CondAttrs serves IF and WHILE.
type CondAttrs struct {
	Condition string
}

type ForAttrs struct {
	Variable  string
	Start     string
	Limit     string
	Direction string // TO | DOWNTO
	Step      string
}

// Param describes one actual parameter of a call.
type Param struct {
	NodeType string
	Text     string
	Line     int
}

type CallAttrs struct {
	Function   string
	CallText   string
	Parameters []Param
}

type ReturnAttrs struct {
	Value  string
	Status string
}

type AssignAttrs struct {
	Target string
	Value  string
}

type AssertAttrs struct {
	Level     string
	Condition string
}

type CaseAttrs struct {
	Selector  string
	Multiline bool
}

type CaseLabelAttrs struct {
	Value     string
	Otherwise bool
}

// IdentAttrs serves Identifier, DROP and USE nodes.
type IdentAttrs struct {
	Identifier string
}

type GotoAttrs struct {
	Label string
}

type ScanAttrs struct {
	Target    string
	Condition string
	Pointer   string
	Until     bool
}

type StoreAttrs struct {
	Target string
	Values []string
}

type OperatorAttrs struct {
	Operator string
}

type QualifiedAttrs struct {
	HasIndirection bool
	Components     []string
}

type BitFieldAttrs struct {
	From string
	To   string
}

type FuncCallAttrs struct {
	FunctionName string
}

// LiteralAttrs.Value — int64 для разобранных целых, иначе строка.
type LiteralAttrs struct {
	Value any
}

// FaultAttrs describes a visitor fault.
type FaultAttrs struct {
	Message string
	Type    string
}

// ParseErrorAttrs marks an error leaf of the parse tree.
type ParseErrorAttrs struct {
	Message string
}

type EndAttrs struct {
	Keyword string
}

type CommentAttrs struct {
	Marker string
}

func (a DirectiveAttrs) encode(m map[string]any) {
	m["directives"] = strList(a.Directives)
}

func (a LiteralDeclAttrs) encode(m map[string]any) {
	items := make([]any, 0, len(a.Items))
	for _, it := range a.Items {
		items = append(items, map[string]any{"name": it.Name, "value": it.Value})
	}
	m["items"] = items
}

func (a VarDeclAttrs) encode(m map[string]any) {
	m["type"] = a.Type
	vars := make([]any, 0, len(a.Variables))
	for _, v := range a.Variables {
		e := map[string]any{"name": v.Name, "indirection": v.Indirection}
		if v.IndirectionKind != "" {
			e["indirection_kind"] = v.IndirectionKind
		}
		if v.ArraySpec != "" {
			e["array_spec"] = v.ArraySpec
		}
		if v.InitValue != "" {
			e["init_value"] = v.InitValue
		}
		vars = append(vars, e)
	}
	m["variables"] = vars
}

func (a StructAttrs) encode(m map[string]any) {
	m["name"] = a.Name
	m["indirection"] = a.Indirection
	if a.IndirectionKind != "" {
		m["indirection_kind"] = a.IndirectionKind
	}
	if a.Template {
		m["template"] = true
	}
	members := make([]any, 0, len(a.Members))
	for _, mem := range a.Members {
		members = append(members, map[string]any{"type": mem.Type, "name": mem.Name})
	}
	m["members"] = members
}

func (a NameAttrs) encode(m map[string]any)  { m["name_declared"] = a.Name }
func (a BlockAttrs) encode(m map[string]any) { m["name"] = a.Name }

func (a ProcAttrs) encode(m map[string]any) {
	m["name"] = a.Name
	m["type"] = a.Type
	m["parameters_text"] = a.ParametersText
	m["parameters"] = strList(a.Parameters)
	m["attributes"] = strList(a.Attributes)
	if a.ReturnType != "" {
		m["return_type"] = a.ReturnType
	}
	if a.Forward {
		m["forward"] = true
	}
	if a.External {
		m["external"] = true
	}
}

func (a CondAttrs) encode(m map[string]any) { m["condition"] = a.Condition }

func (a ForAttrs) encode(m map[string]any) {
	m["variable"] = a.Variable
	m["start"] = a.Start
	m["limit"] = a.Limit
	m["direction"] = a.Direction
	if a.Step != "" {
		m["step"] = a.Step
	}
}

func (a CallAttrs) encode(m map[string]any) {
	m["function"] = a.Function
	m["call_text"] = a.CallText
	params := make([]any, 0, len(a.Parameters))
	for _, p := range a.Parameters {
		params = append(params, map[string]any{"node_type": p.NodeType, "text": p.Text, "line": p.Line})
	}
	m["parameters"] = params
}

func (a ReturnAttrs) encode(m map[string]any) {
	if a.Value != "" {
		m["value"] = a.Value
	}
	if a.Status != "" {
		m["status"] = a.Status
	}
}

func (a AssignAttrs) encode(m map[string]any) {
	m["target"] = a.Target
	m["value"] = a.Value
}

func (a AssertAttrs) encode(m map[string]any) {
	m["condition"] = a.Condition
	if a.Level != "" {
		m["level"] = a.Level
	}
}

func (a CaseAttrs) encode(m map[string]any) {
	m["selector"] = a.Selector
	if a.Multiline {
		m["multiline"] = true
	}
}

func (a CaseLabelAttrs) encode(m map[string]any) {
	if a.Value != "" {
		m["value"] = a.Value
	}
	if a.Otherwise {
		m["otherwise"] = true
	}
}

func (a IdentAttrs) encode(m map[string]any) { m["identifier"] = a.Identifier }
func (a GotoAttrs) encode(m map[string]any)  { m["label"] = a.Label }

func (a ScanAttrs) encode(m map[string]any) {
	m["target"] = a.Target
	m["condition"] = a.Condition
	if a.Pointer != "" {
		m["pointer"] = a.Pointer
	}
	if a.Until {
		m["until"] = true
	}
}

func (a StoreAttrs) encode(m map[string]any) {
	m["target"] = a.Target
	if len(a.Values) > 0 {
		m["values"] = strList(a.Values)
	}
}

func (a OperatorAttrs) encode(m map[string]any) { m["operator"] = a.Operator }

func (a QualifiedAttrs) encode(m map[string]any) {
	m["has_indirection"] = a.HasIndirection
	m["components"] = strList(a.Components)
}

func (a BitFieldAttrs) encode(m map[string]any) {
	m["from"] = a.From
	if a.To != "" {
		m["to"] = a.To
	}
}

func (a FuncCallAttrs) encode(m map[string]any) { m["function_name"] = a.FunctionName }
func (a LiteralAttrs) encode(m map[string]any)  { m["value"] = a.Value }

func (a FaultAttrs) encode(m map[string]any) {
	m["error_message"] = a.Message
	m["error_type"] = a.Type
}

func (a ParseErrorAttrs) encode(m map[string]any) { m["error"] = a.Message }
func (a EndAttrs) encode(m map[string]any)        { m["keyword"] = a.Keyword }
func (a CommentAttrs) encode(m map[string]any)    { m["marker"] = a.Marker }

// strList возвращает []any, чтобы форма совпадала с декодированным JSON.
func strList(ss []string) []any {
	out := make([]any, 0, len(ss))
	for _, s := range ss {
		out = append(out, s)
	}
	return out
}
