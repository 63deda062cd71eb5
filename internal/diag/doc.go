// Package diag defines the diagnostic model shared by the lexer, the line
// grammar, the hybrid assembler and the pattern loader.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Code: compact numeric identifier with a stable string form (codes.go).
//   - Message: short, human oriented text.
//   - Primary: byte span inside the unit that produced it (may be empty).
//   - Line/Column: position in original-source coordinates. Line is 1-based,
//     Column is a 0-based byte offset inside that line.
//
// Producers that only know spans (lexer, parser) report through a Reporter;
// the caller translating unit coordinates fills Line/Column. Producers that
// work on whole lines (assembler, pattern loader) set Line/Column directly.
//
// Package diag performs no formatting and no IO. Rendering lives in
// internal/diagfmt.
package diag
