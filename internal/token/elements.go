package token

import (
	"golang.org/x/net/html/atom"
)

// ElementClass groups tag names by how the lexer and tree builder treat them.
type ElementClass uint8

const (
	// ClassNormal elements nest and close through end tags.
	ClassNormal ElementClass = iota
	// ClassVoid elements never have children and never get pushed.
	ClassVoid
	// ClassRawText elements (script, style) swallow everything up to their end tag.
	ClassRawText
	// ClassEscapableRawText elements (textarea, title) are raw text with entity decoding.
	ClassEscapableRawText
)

var elementClasses = map[atom.Atom]ElementClass{
	atom.Area:     ClassVoid,
	atom.Base:     ClassVoid,
	atom.Br:       ClassVoid,
	atom.Col:      ClassVoid,
	atom.Embed:    ClassVoid,
	atom.Hr:       ClassVoid,
	atom.Image:    ClassVoid,
	atom.Img:      ClassVoid,
	atom.Input:    ClassVoid,
	atom.Keygen:   ClassVoid,
	atom.Link:     ClassVoid,
	atom.Meta:     ClassVoid,
	atom.Param:    ClassVoid,
	atom.Source:   ClassVoid,
	atom.Track:    ClassVoid,
	atom.Wbr:      ClassVoid,
	atom.Script:   ClassRawText,
	atom.Style:    ClassRawText,
	atom.Xmp:      ClassRawText,
	atom.Textarea: ClassEscapableRawText,
	atom.Title:    ClassEscapableRawText,
}

// LookupElement классифицирует имя тега. Имя должно быть уже в нижнем регистре.
func LookupElement(name string) ElementClass {
	a := atom.Lookup([]byte(name))
	if a == 0 {
		return ClassNormal
	}
	return elementClasses[a]
}

// IsVoid reports whether name is a void element.
func IsVoid(name string) bool { return LookupElement(name) == ClassVoid }

// IsRawText reports whether the element's content is lexed as raw text.
func IsRawText(name string) bool {
	switch LookupElement(name) {
	case ClassRawText, ClassEscapableRawText:
		return true
	default:
		return false
	}
}

// CanonicalName returns the interned atom string for well-known tags so
// trees share one backing string per tag name; unknown names pass through.
func CanonicalName(name string) string {
	if a := atom.Lookup([]byte(name)); a != 0 {
		return a.String()
	}
	return name
}
