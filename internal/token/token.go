package token

import (
	"ewb/internal/source"
)

// Attr is a single attribute as written on a start tag.
type Attr struct {
	Key  string // lowercased
	Val  string // entity-decoded; "" for bare attributes
	Span source.Span
}

// Token represents a single markup token with its location.
type Token struct {
	Kind Kind
	Span source.Span

	// Name is the lowercased tag name. StartTag, EndTag.
	Name string
	// Attrs keeps source order and may hold duplicate keys; the tree
	// builder applies first-wins. StartTag only.
	Attrs []Attr
	// SelfClosing records an explicit "/>". StartTag only.
	SelfClosing bool
	// Data is the decoded text, comment body or doctype body.
	// Text, Comment, Doctype.
	Data string
}

// NewStartTag builds a StartTag token.
func NewStartTag(sp source.Span, name string, attrs []Attr, selfClosing bool) Token {
	return Token{Kind: StartTag, Span: sp, Name: name, Attrs: attrs, SelfClosing: selfClosing}
}

// NewEndTag builds an EndTag token.
func NewEndTag(sp source.Span, name string) Token {
	return Token{Kind: EndTag, Span: sp, Name: name}
}

// NewText builds a Text token.
func NewText(sp source.Span, data string) Token {
	return Token{Kind: Text, Span: sp, Data: data}
}

// NewComment builds a Comment token.
func NewComment(sp source.Span, data string) Token {
	return Token{Kind: Comment, Span: sp, Data: data}
}

// NewDoctype builds a Doctype token.
func NewDoctype(sp source.Span, data string) Token {
	return Token{Kind: Doctype, Span: sp, Data: data}
}

// IsTag reports whether the token is a start or end tag.
func (t Token) IsTag() bool { return t.Kind.IsTag() }

// Attr returns the first value recorded for key.
func (t Token) Attr(key string) (string, bool) {
	for _, a := range t.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
