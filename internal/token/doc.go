// Package token defines lexical token kinds and trivia for the Lime front-end.
// Invariants:
//   - Token.Text is exactly the source text covered by Token.Span.
//   - Whitespace and comments are leading Trivia and never appear in the
//     main token stream.
//   - Built-in type names (unit, bool, int) are identifiers; they are bound
//     by the prelude scope, not recognised by the lexer.
package token
