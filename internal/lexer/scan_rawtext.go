package lexer

import (
	"ewb/internal/diag"
	"ewb/internal/token"
)

// scanRawText забирает содержимое script/style/textarea/title до закрывающего тега.
// ok=false, если содержимое пустое: тогда следующим будет сам закрывающий тег.
func (lx *Lexer) scanRawText() (token.Token, bool) {
	name, escapable := lx.rawTag, lx.rawEscapable
	lx.rawTag, lx.rawEscapable = "", false

	start := lx.cursor.Off
	end := lx.findRawEnd(name)
	if end < 0 {
		end = int(lx.cursor.Limit)
		if end > int(start) {
			lx.warn(diag.LexUnterminatedRawText, lx.span(start, lx.cursor.Limit),
				"<"+name+"> content runs to end of document").Emit()
		}
	}
	if end == int(start) {
		return token.Token{}, false
	}
	lx.cursor.Off = uint32(end) // #nosec G115 -- end <= Limit
	return lx.makeText(start, lx.cursor.Off, escapable), true
}

// findRawEnd ищет "</name" (без учёта регистра), за которым идёт пробел, '/', '>' или конец.
func (lx *Lexer) findRawEnd(name string) int {
	content := lx.file.Content
	limit := int(lx.cursor.Limit)
	for off := int(lx.cursor.Off); off < limit; {
		rest := content[off:limit]
		i := indexLTSlash(rest)
		if i < 0 {
			return -1
		}
		at := off + i
		nameEnd := at + 2 + len(name)
		if nameEnd <= limit && equalFoldASCII(content[at+2:nameEnd], name) {
			if nameEnd == limit || isSpace(content[nameEnd]) || content[nameEnd] == '/' || content[nameEnd] == '>' {
				return at
			}
		}
		off = at + 2
	}
	return -1
}

func indexLTSlash(b []byte) int {
	for i := 0; i+1 < len(b); i++ {
		if b[i] == '<' && b[i+1] == '/' {
			return i
		}
	}
	return -1
}

func equalFoldASCII(b []byte, lower string) bool {
	if len(b) != len(lower) {
		return false
	}
	for i := range b {
		if lowerByte(b[i]) != lower[i] {
			return false
		}
	}
	return true
}
