// Package treebuilder turns the lexer's token stream into a dom.Tree.
//
// The builder keeps an explicit stack of open elements, starting with the
// synthetic root. An end tag closes the nearest open element with the same
// name and everything above it; an end tag with no match is ignored. Void
// elements and explicit "/>" never get pushed. Whatever is still open at EOF
// is closed silently (with an info diagnostic).
//
// Build fails only for empty input and for exceeded limits.
package treebuilder
