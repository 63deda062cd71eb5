// Package token defines lexical token kinds and trivia for TAL.
// Invariants:
//   - Token.Text is a slice of the unit text (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Keywords are case-insensitive; Token.Text keeps the original spelling.
//   - Comments (! ... ! and -- to end of line) are leading Trivia and
//     never appear in the main token stream.
//   - The directive marker '?' is an ordinary token (Question); the parser
//     decides whether it opens a directive line.
//   - Identifiers keep '^' as written. Normalization happens later.
package token
