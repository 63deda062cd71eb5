package token

import "strings"

var keywords = map[string]Kind{
	"and":        KwAnd,
	"or":         KwOr,
	"not":        KwNot,
	"lor":        KwLor,
	"land":       KwLand,
	"xor":        KwXor,
	"if":         KwIf,
	"then":       KwThen,
	"else":       KwElse,
	"endif":      KwEndIf,
	"while":      KwWhile,
	"do":         KwDo,
	"endwhile":   KwEndWhile,
	"for":        KwFor,
	"to":         KwTo,
	"downto":     KwDownto,
	"by":         KwBy,
	"call":       KwCall,
	"return":     KwReturn,
	"begin":      KwBegin,
	"end":        KwEnd,
	"int":        KwInt,
	"string":     KwString,
	"fixed":      KwFixed,
	"real":       KwReal,
	"unsigned":   KwUnsigned,
	"literal":    KwLiteral,
	"define":     KwDefine,
	"struct":     KwStruct,
	"endstruct":  KwEndStruct,
	"block":      KwBlock,
	"endblock":   KwEndBlock,
	"name":       KwName,
	"proc":       KwProc,
	"subproc":    KwSubproc,
	"forward":    KwForward,
	"external":   KwExternal,
	"main":       KwMain,
	"interrupt":  KwInterrupt,
	"resident":   KwResident,
	"callable":   KwCallable,
	"priv":       KwPriv,
	"variable":   KwVariable,
	"extensible": KwExtensible,
	"assert":     KwAssert,
	"case":       KwCase,
	"of":         KwOf,
	"otherwise":  KwOtherwise,
	"drop":       KwDrop,
	"goto":       KwGoto,
	"scan":       KwScan,
	"rscan":      KwRscan,
	"until":      KwUntil,
	"store":      KwStore,
	"use":        KwUse,
}

// LookupKeyword returns the keyword kind for ident, ignoring case.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[strings.ToLower(ident)]
	return k, ok
}
