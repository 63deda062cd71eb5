// Package fuzztests houses Go fuzz harnesses for the TAL front end
// (source -> lexer, hybrid assembler, manual transpiler). They guard
// against panics and hangs on arbitrary input.
//
// Назначение: прогонять произвольные байты через лексер, сборщик
// документа и транспилятор и проверять инварианты документа.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/hybrid,
// internal/transpile, internal/testkit.
package fuzztests
