package ast

// Kind is the syntactic category of a node. The set is closed: every
// producer (visitor, fallback recognizers, preprocessor handlers, assembler)
// picks one of these, and the serialized node_type is Kind.String().
type Kind uint8

const (
	KindInvalid Kind = iota
	KindProgram
	KindComment

	// declarations
	KindDirectiveLine
	KindLiteralDeclaration
	KindVariableDeclaration
	KindStructDeclaration
	KindStructMember
	KindNameDeclaration
	KindBlockDeclaration
	KindEndBlockStatement
	KindProcedureDefinition
	KindFormalParameter

	// statements
	KindAssignmentStatement
	KindIfStatement
	KindThenBody
	KindElseBody
	KindEndIfMarker
	KindWhileStatement
	KindForStatement
	KindCallStatement
	KindReturnStatement
	KindBlockStatement
	KindBeginBlock
	KindEndStatement
	KindElseStatement
	KindEmptyStatement
	KindExpressionStatement
	KindAssertStatement
	KindCaseStatement
	KindCaseLabel
	KindEndCaseMarker
	KindDropStatement
	KindGotoStatement
	KindScanStatement
	KindRscanStatement
	KindStoreStatement
	KindUseStatement
	KindStatement

	// expressions
	KindLogicalExpression
	KindNotExpression
	KindRelationalExpression
	KindBinaryExpression
	KindUnaryExpression
	KindAddressOf
	KindIdentifier
	KindQualifiedName
	KindBitField
	KindFunctionCall
	KindIntLiteral
	KindFixedLiteral
	KindRealLiteral
	KindStringLiteral

	// failures
	KindVisitorError
	KindErrorNode
	KindUnparsedLine

	kindCount
)

var kindNames = [...]string{
	KindInvalid:              "Invalid",
	KindProgram:              "Program",
	KindComment:              "Comment",
	KindDirectiveLine:        "directiveLine",
	KindLiteralDeclaration:   "literalDeclaration",
	KindVariableDeclaration:  "variableDeclaration",
	KindStructDeclaration:    "structDeclaration",
	KindStructMember:         "structMember",
	KindNameDeclaration:      "nameDeclaration",
	KindBlockDeclaration:     "blockDeclaration",
	KindEndBlockStatement:    "EndBlockStatement",
	KindProcedureDefinition:  "procedureDefinition",
	KindFormalParameter:      "formalParameter",
	KindAssignmentStatement:  "assignmentStatement",
	KindIfStatement:          "ifStatement",
	KindThenBody:             "thenBody",
	KindElseBody:             "elseBody",
	KindEndIfMarker:          "EndIfMarker",
	KindWhileStatement:       "whileStatement",
	KindForStatement:         "forStatement",
	KindCallStatement:        "callStatement",
	KindReturnStatement:      "returnStatement",
	KindBlockStatement:       "blockStatement",
	KindBeginBlock:           "beginBlock",
	KindEndStatement:         "endStatement",
	KindElseStatement:        "elseStatement",
	KindEmptyStatement:       "emptyStatement",
	KindExpressionStatement:  "expressionStatement",
	KindAssertStatement:      "assertStatement",
	KindCaseStatement:        "caseStatement",
	KindCaseLabel:            "caseLabel",
	KindEndCaseMarker:        "EndCaseMarker",
	KindDropStatement:        "dropStatement",
	KindGotoStatement:        "gotoStatement",
	KindScanStatement:        "scanStatement",
	KindRscanStatement:       "rscanStatement",
	KindStoreStatement:       "storeStatement",
	KindUseStatement:         "useStatement",
	KindStatement:            "Statement",
	KindLogicalExpression:    "logicalExpression",
	KindNotExpression:        "notExpression",
	KindRelationalExpression: "relationalExpression",
	KindBinaryExpression:     "binaryExpression",
	KindUnaryExpression:      "unaryExpression",
	KindAddressOf:            "addressOf",
	KindIdentifier:           "Identifier",
	KindQualifiedName:        "qualifiedName",
	KindBitField:             "bitField",
	KindFunctionCall:         "functionCall",
	KindIntLiteral:           "intLiteral",
	KindFixedLiteral:         "fixedLiteral",
	KindRealLiteral:          "realLiteral",
	KindStringLiteral:        "stringLiteral",
	KindVisitorError:         "VisitorError",
	KindErrorNode:            "ErrorNode",
	KindUnparsedLine:         "UnparsedLine",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Invalid"
}

// IsFailure reports whether k marks a node that does not count toward coverage.
func (k Kind) IsFailure() bool {
	return k == KindVisitorError || k == KindErrorNode || k == KindUnparsedLine
}

// KindByName maps a serialized node_type back to its Kind.
func KindByName(name string) (Kind, bool) {
	for k := KindInvalid + 1; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return KindInvalid, false
}
