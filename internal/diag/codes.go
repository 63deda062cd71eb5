package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003

	// Грамматика строки
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectIdentifier Code = 2002
	SynExpectExpression Code = 2003
	SynExtraInput       Code = 2004
	SynInternalFault    Code = 2005

	// Сборка AST
	AsmInfo         Code = 3000
	AsmUnparsedLine Code = 3001

	// Конфигурация шаблонов препроцессора
	CfgInfo           Code = 4000
	CfgPatternDecode  Code = 4001
	CfgUnknownHandler Code = 4002
	CfgBadRegex       Code = 4003
	CfgHandlerFault   Code = 4004
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string literal",
	LexBadNumber:          "Malformed number",
	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynExpectIdentifier:   "Expected identifier",
	SynExpectExpression:   "Expected expression",
	SynExtraInput:         "Extraneous input",
	SynInternalFault:      "Internal grammar fault",
	AsmInfo:               "Assembly information",
	AsmUnparsedLine:       "Line unparsed",
	CfgInfo:               "Configuration information",
	CfgPatternDecode:      "Pattern file could not be decoded",
	CfgUnknownHandler:     "Unknown preprocessor handler",
	CfgBadRegex:           "Invalid pattern start regex",
	CfgHandlerFault:       "Preprocessor handler fault",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("ASM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
