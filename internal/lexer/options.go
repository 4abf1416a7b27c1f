package lexer

import (
	"ewb/internal/diag"
)

// DefaultMaxTokenLength caps a single tag, comment or doctype.
// Text runs are bounded by the input size limit instead.
const DefaultMaxTokenLength = 1 << 20

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда диагностики теряются, но лексинг продолжается

	// MaxTokenLength in bytes; 0 means DefaultMaxTokenLength.
	// A markup token longer than this degrades to text.
	MaxTokenLength uint32
}

func (o Options) maxTokenLength() uint32 {
	if o.MaxTokenLength == 0 {
		return DefaultMaxTokenLength
	}
	return o.MaxTokenLength
}
