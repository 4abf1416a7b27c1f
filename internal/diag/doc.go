// Package diag defines the diagnostic model shared by the lexer, the tree
// builder, the fetch layer and the driver.
//
// # Purpose
//
// Malformed markup is never a parse failure. Every recovery the lexer or the
// tree builder performs (degrading a stray '<' to text, ignoring a stray end
// tag, implicitly closing an element) is reported here as a Diagnostic so
// callers can inspect what was repaired without the parse ever failing.
//
// # Data model
//
//   - Severity – Info, Warning, Error (severity.go).
//   - Code – compact numeric identifier with a stable string form (codes.go).
//   - Message – short human text.
//   - Primary – the source.Span the finding points at.
//   - Notes – optional secondary spans (e.g. "element opened here").
//
// # Emitting
//
// Producers talk to a Reporter. BagReporter collects into a bounded Bag,
// DedupReporter drops exact repeats and caps warning floods per code,
// NopReporter drops everything. ReportBuilder lets a producer chain WithNote
// before Emit.
//
// Package diag performs no IO and no formatting beyond the single-line form
// in golden.go; colour rendering lives in internal/diagfmt.
package diag
