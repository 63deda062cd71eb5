package token

// Kind represents the category of a TAL token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the unit.
	EOF

	// Ident represents an identifier (may contain '^').
	Ident
	// Builtin represents a standard function name such as $LEN or $OCCURS.
	Builtin

	// IntLit is a decimal, %octal, %B binary or %H hex integer, optionally with a D suffix.
	IntLit
	// FixedLit is a number with an F suffix (12.34F).
	FixedLit
	// RealLit is a number with a fraction or exponent (1.5E2, 2.0L3).
	RealLit
	// StringLit is a double-quoted string; "" escapes a quote.
	StringLit

	KwAnd
	KwOr
	KwNot
	KwLor
	KwLand
	KwXor
	KwIf
	KwThen
	KwElse
	KwEndIf
	KwWhile
	KwDo
	KwEndWhile
	KwFor
	KwTo
	KwDownto
	KwBy
	KwCall
	KwReturn
	KwBegin
	KwEnd
	KwInt
	KwString
	KwFixed
	KwReal
	KwUnsigned
	KwLiteral
	KwDefine
	KwStruct
	KwEndStruct
	KwBlock
	KwEndBlock
	KwName
	KwProc
	KwSubproc
	KwForward
	KwExternal
	KwMain
	KwInterrupt
	KwResident
	KwCallable
	KwPriv
	KwVariable
	KwExtensible
	KwAssert
	KwCase
	KwOf
	KwOtherwise
	KwDrop
	KwGoto
	KwScan
	KwRscan
	KwUntil
	KwStore
	KwUse

	// Assign is ':='.
	Assign
	Colon
	Semicolon
	Comma
	Dot
	LParen
	RParen
	LBracket
	RBracket
	Plus
	Minus
	Star
	Slash
	Eq
	NotEq
	Lt
	Gt
	LtEq
	GtEq
	Shl
	Shr
	// Arrow is '->' used by SCAN/RSCAN.
	Arrow
	// At is the address-of prefix '@'.
	At
	// Question is the directive marker '?'.
	Question

	// Unsigned operators are written in single quotes: '<', '+', '<<' ...
	UEq
	UNotEq
	ULt
	UGt
	ULtEq
	UGtEq
	UPlus
	UMinus
	UStar
	USlash
	UShl
	UShr

	kindCount
)

var kindNames = [...]string{
	Invalid:      "Invalid",
	EOF:          "EOF",
	Ident:        "Ident",
	Builtin:      "Builtin",
	IntLit:       "IntLit",
	FixedLit:     "FixedLit",
	RealLit:      "RealLit",
	StringLit:    "StringLit",
	KwAnd:        "AND",
	KwOr:         "OR",
	KwNot:        "NOT",
	KwLor:        "LOR",
	KwLand:       "LAND",
	KwXor:        "XOR",
	KwIf:         "IF",
	KwThen:       "THEN",
	KwElse:       "ELSE",
	KwEndIf:      "ENDIF",
	KwWhile:      "WHILE",
	KwDo:         "DO",
	KwEndWhile:   "ENDWHILE",
	KwFor:        "FOR",
	KwTo:         "TO",
	KwDownto:     "DOWNTO",
	KwBy:         "BY",
	KwCall:       "CALL",
	KwReturn:     "RETURN",
	KwBegin:      "BEGIN",
	KwEnd:        "END",
	KwInt:        "INT",
	KwString:     "STRING",
	KwFixed:      "FIXED",
	KwReal:       "REAL",
	KwUnsigned:   "UNSIGNED",
	KwLiteral:    "LITERAL",
	KwDefine:     "DEFINE",
	KwStruct:     "STRUCT",
	KwEndStruct:  "ENDSTRUCT",
	KwBlock:      "BLOCK",
	KwEndBlock:   "ENDBLOCK",
	KwName:       "NAME",
	KwProc:       "PROC",
	KwSubproc:    "SUBPROC",
	KwForward:    "FORWARD",
	KwExternal:   "EXTERNAL",
	KwMain:       "MAIN",
	KwInterrupt:  "INTERRUPT",
	KwResident:   "RESIDENT",
	KwCallable:   "CALLABLE",
	KwPriv:       "PRIV",
	KwVariable:   "VARIABLE",
	KwExtensible: "EXTENSIBLE",
	KwAssert:     "ASSERT",
	KwCase:       "CASE",
	KwOf:         "OF",
	KwOtherwise:  "OTHERWISE",
	KwDrop:       "DROP",
	KwGoto:       "GOTO",
	KwScan:       "SCAN",
	KwRscan:      "RSCAN",
	KwUntil:      "UNTIL",
	KwStore:      "STORE",
	KwUse:        "USE",
	Assign:       ":=",
	Colon:        ":",
	Semicolon:    ";",
	Comma:        ",",
	Dot:          ".",
	LParen:       "(",
	RParen:       ")",
	LBracket:     "[",
	RBracket:     "]",
	Plus:         "+",
	Minus:        "-",
	Star:         "*",
	Slash:        "/",
	Eq:           "=",
	NotEq:        "<>",
	Lt:           "<",
	Gt:           ">",
	LtEq:         "<=",
	GtEq:         ">=",
	Shl:          "<<",
	Shr:          ">>",
	Arrow:        "->",
	At:           "@",
	Question:     "?",
	UEq:          "'='",
	UNotEq:       "'<>'",
	ULt:          "'<'",
	UGt:          "'>'",
	ULtEq:        "'<='",
	UGtEq:        "'>='",
	UPlus:        "'+'",
	UMinus:       "'-'",
	UStar:        "'*'",
	USlash:       "'/'",
	UShl:         "'<<'",
	UShr:         "'>>'",
}

// String returns the keyword or operator spelling, or the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwAnd && k <= KwUse
}

// IsContextual reports whether k is a procedure attribute word. These are
// keywords only after a procedure header and plain names elsewhere.
func (k Kind) IsContextual() bool {
	switch k {
	case KwMain, KwInterrupt, KwResident, KwCallable, KwPriv, KwVariable, KwExtensible:
		return true
	default:
		return false
	}
}

// IsTypeKeyword reports whether k starts a data declaration.
func (k Kind) IsTypeKeyword() bool {
	switch k {
	case KwInt, KwString, KwFixed, KwReal, KwUnsigned:
		return true
	default:
		return false
	}
}

// IsRelational reports whether k is a signed or unsigned comparison.
func (k Kind) IsRelational() bool {
	switch k {
	case Eq, NotEq, Lt, Gt, LtEq, GtEq, UEq, UNotEq, ULt, UGt, ULtEq, UGtEq:
		return true
	default:
		return false
	}
}
