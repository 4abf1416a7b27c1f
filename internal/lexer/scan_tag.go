package lexer

import (
	"ewb/internal/diag"
	"ewb/internal/token"
)

// scanStartTag: "<name attr attr=v attr='v' attr=\"v\" /?>".
func (lx *Lexer) scanStartTag() (token.Token, bool, uint32) {
	start := lx.cursor.Off
	if int(start) > lx.lastGT {
		return lx.unterminated(start, "start tag")
	}
	lx.cursor.Bump() // '<'
	name := lx.scanName()

	var attrs []token.Attr
	for {
		lx.skipSpace()
		if lx.cursor.EOF() {
			return lx.unterminated(start, "<"+name+"> tag")
		}
		switch lx.cursor.Peek() {
		case '>':
			lx.cursor.Bump()
			return token.NewStartTag(lx.span(start, lx.cursor.Off), name, attrs, false), true, 0
		case '/':
			lx.cursor.Bump()
			if lx.cursor.Eat('>') {
				return token.NewStartTag(lx.span(start, lx.cursor.Off), name, attrs, true), true, 0
			}
			// одиночный '/' внутри тега игнорируется
			continue
		}
		attr, quoteAt, ok := lx.scanAttr()
		if !ok {
			return lx.unterminatedQuote(start, quoteAt)
		}
		attrs = append(attrs, attr)
	}
}

// scanEndTag: "</name ...>". Всё после имени до '>' игнорируется.
func (lx *Lexer) scanEndTag() (token.Token, bool, uint32) {
	start := lx.cursor.Off
	if int(start) > lx.lastGT {
		return lx.unterminated(start, "end tag")
	}
	lx.cursor.Advance(2) // "</"
	name := lx.scanName()
	gt := lx.cursor.IndexByte('>')
	if gt < 0 {
		return lx.unterminated(start, "</"+name+"> tag")
	}
	lx.cursor.Off = uint32(gt) + 1 // #nosec G115 -- gt < Limit
	return token.NewEndTag(lx.span(start, lx.cursor.Off), name), true, 0
}

func (lx *Lexer) scanName() string {
	nameStart := lx.cursor.Off
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isSpace(b) || b == '/' || b == '>' {
			break
		}
		lx.cursor.Bump()
	}
	return lowerASCII(lx.file.Content[nameStart:lx.cursor.Off])
}

// scanAttr читает одно имя атрибута и необязательное значение.
// ok=false означает незакрытую кавычку, открытую в quoteAt.
func (lx *Lexer) scanAttr() (attr token.Attr, quoteAt uint32, ok bool) {
	attrStart := lx.cursor.Mark()
	if lx.cursor.Peek() == '=' {
		lx.cursor.Bump()
		lx.warn(diag.LexMissingAttributeName, lx.cursor.SpanFrom(attrStart), "attribute name starts with '='").Emit()
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isSpace(b) || b == '/' || b == '>' || b == '=' {
			break
		}
		lx.cursor.Bump()
	}
	attr.Key = lowerASCII(lx.file.Content[uint32(attrStart):lx.cursor.Off])

	afterName := lx.cursor.Mark()
	lx.skipSpace()
	if !lx.cursor.Eat('=') {
		// голый атрибут: пробелы после имени не принадлежат ему
		lx.cursor.Reset(afterName)
		attr.Span = lx.cursor.SpanFrom(attrStart)
		return attr, 0, true
	}
	lx.skipSpace()

	switch q := lx.cursor.Peek(); q {
	case '"', '\'':
		quoteAt = lx.cursor.Off
		lx.cursor.Bump()
		valStart := lx.cursor.Off
		end := lx.cursor.IndexByte(q)
		if end < 0 {
			return attr, quoteAt, false
		}
		lx.cursor.Off = uint32(end) // #nosec G115 -- end < Limit
		attr.Val = lx.decodeValue(valStart, lx.cursor.Off)
		lx.cursor.Bump()
	case '>':
		// "a=>" — пустое значение
	default:
		valStart := lx.cursor.Off
		for !lx.cursor.EOF() {
			b := lx.cursor.Peek()
			if isSpace(b) || b == '>' {
				break
			}
			lx.cursor.Bump()
		}
		attr.Val = lx.decodeValue(valStart, lx.cursor.Off)
	}
	attr.Span = lx.cursor.SpanFrom(attrStart)
	return attr, 0, true
}

// unterminatedQuote: тег от '<' до ближайшего '>' после кавычки становится текстом.
func (lx *Lexer) unterminatedQuote(start, quoteAt uint32) (token.Token, bool, uint32) {
	lx.cursor.Off = quoteAt
	resume := start + 1
	if gt := lx.cursor.IndexByte('>'); gt >= 0 {
		resume = uint32(gt) + 1 // #nosec G115 -- gt < Limit
	}
	lx.warn(diag.LexUnterminatedQuote, lx.span(start, resume), "unterminated attribute quote, tag kept as text").
		WithNote(lx.span(quoteAt, quoteAt+1), "quote opened here").
		Emit()
	return token.Token{}, false, resume
}
