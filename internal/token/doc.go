// Package token defines the lexical tokens produced by the HTML lexer.
// Invariants:
//   - Token is a tagged variant: Kind selects which fields carry meaning
//     (see the field comments on Token). Fields of other variants stay zero.
//   - Tag names and attribute keys are already lowercased.
//   - Text and attribute values are already entity-decoded; Span still
//     points at the raw bytes in the source document.
//   - Adjacent text never produces two Text tokens in a row.
//   - Tokens are ephemeral: the tree builder copies what it keeps.
package token
