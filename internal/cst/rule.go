package cst

// Rule names a grammar production.
type Rule uint8

const (
	RuleInvalid Rule = iota
	RuleProgramElement
	RuleDirectiveLine
	RuleDirectiveElement
	RuleTopLevelDeclaration
	RuleLiteralDeclaration
	RuleLiteralItem
	RuleVariableDeclaration
	RuleTypeSpecifier
	RuleVariableDeclarator
	RuleIndirection
	RuleArraySpecifier
	RuleInitializer
	RuleStructDeclaration
	RuleNameDeclaration
	RuleBlockDeclaration
	RuleProcedureDefinition
	RuleFormalParameterList
	RuleFormalParameter
	RuleProcedureAttribute
	RuleStatement
	RuleAssignmentStatement
	RuleLvalue
	RuleIfStatement
	RuleWhileStatement
	RuleForStatement
	RuleCallStatement
	RuleActualParameterList
	RuleReturnStatement
	RuleBlockStatement
	RuleEmptyStatement
	RuleAssertStatement
	RuleCaseStatement
	RuleCaseLabel
	RuleDropStatement
	RuleGotoStatement
	RuleScanStatement
	RuleRscanStatement
	RuleStoreStatement
	RuleUseStatement
	RuleExpression
	RuleLogicalOr
	RuleLogicalAnd
	RuleLogicalNot
	RuleRelational
	RuleAdditive
	RuleMultiplicative
	RuleUnary
	RulePrimary
	RuleQualifiedName
	RuleIndex
	RuleBitField
	RuleFunctionCall
	RuleLiteral

	ruleCount
)

var ruleNames = [...]string{
	RuleInvalid:             "invalid",
	RuleProgramElement:      "programElement",
	RuleDirectiveLine:       "directiveLine",
	RuleDirectiveElement:    "directiveElement",
	RuleTopLevelDeclaration: "topLevelDeclaration",
	RuleLiteralDeclaration:  "literalDeclaration",
	RuleLiteralItem:         "literalItem",
	RuleVariableDeclaration: "variableDeclaration",
	RuleTypeSpecifier:       "typeSpecifier",
	RuleVariableDeclarator:  "variableDeclarator",
	RuleIndirection:         "indirectionSpecifier",
	RuleArraySpecifier:      "arraySpecifier",
	RuleInitializer:         "initializer",
	RuleStructDeclaration:   "structDeclaration",
	RuleNameDeclaration:     "nameDeclaration",
	RuleBlockDeclaration:    "blockDeclaration",
	RuleProcedureDefinition: "procedureDefinition",
	RuleFormalParameterList: "formalParameterList",
	RuleFormalParameter:     "formalParameter",
	RuleProcedureAttribute:  "procedureAttribute",
	RuleStatement:           "statement",
	RuleAssignmentStatement: "assignmentStatement",
	RuleLvalue:              "lvalue",
	RuleIfStatement:         "ifStatement",
	RuleWhileStatement:      "whileStatement",
	RuleForStatement:        "forStatement",
	RuleCallStatement:       "callStatement",
	RuleActualParameterList: "actualParameterList",
	RuleReturnStatement:     "returnStatement",
	RuleBlockStatement:      "blockStatement",
	RuleEmptyStatement:      "emptyStatement",
	RuleAssertStatement:     "assertStatement",
	RuleCaseStatement:       "caseStatement",
	RuleCaseLabel:           "caseLabel",
	RuleDropStatement:       "dropStatement",
	RuleGotoStatement:       "gotoStatement",
	RuleScanStatement:       "scanStatement",
	RuleRscanStatement:      "rscanStatement",
	RuleStoreStatement:      "storeStatement",
	RuleUseStatement:        "useStatement",
	RuleExpression:          "expression",
	RuleLogicalOr:           "logicalOrExpression",
	RuleLogicalAnd:          "logicalAndExpression",
	RuleLogicalNot:          "logicalNotExpression",
	RuleRelational:          "relationalExpression",
	RuleAdditive:            "additiveExpression",
	RuleMultiplicative:      "multiplicativeExpression",
	RuleUnary:               "unaryExpression",
	RulePrimary:             "primaryExpression",
	RuleQualifiedName:       "qualifiedName",
	RuleIndex:               "index",
	RuleBitField:            "bitField",
	RuleFunctionCall:        "functionCall",
	RuleLiteral:             "literal",
}

func (r Rule) String() string {
	if int(r) < len(ruleNames) && ruleNames[r] != "" {
		return ruleNames[r]
	}
	return "rule(?)"
}
