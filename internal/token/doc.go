// Package token defines the lexical entities found in a schematic grid.
// Invariants:
//   - A Number token is one maximal run of ASCII digits inside one row.
//   - Start < End <= grid width; End is exclusive. Columns count runes.
//   - Token.Text is exactly the digit run; Value is its base-10 value.
//   - A Symbol is never a digit and never the blank placeholder.
package token
