package lexer

import (
	"bytes"

	"ewb/internal/diag"
	"ewb/internal/token"

	"golang.org/x/net/html"
)

// makeText строит Text из [start, end). decode=false для script/style.
func (lx *Lexer) makeText(start, end uint32, decode bool) token.Token {
	raw := lx.file.Content[start:end]
	sp := lx.span(start, end)
	if !decode || bytes.IndexByte(raw, '&') < 0 {
		return token.NewText(sp, string(raw))
	}
	lx.checkEntities(raw, start)
	return token.NewText(sp, html.UnescapeString(string(raw)))
}

// decodeValue decodes character references in an attribute value.
func (lx *Lexer) decodeValue(start, end uint32) string {
	raw := lx.file.Content[start:end]
	if bytes.IndexByte(raw, '&') < 0 {
		return string(raw)
	}
	lx.checkEntities(raw, start)
	return html.UnescapeString(string(raw))
}

// checkEntities reports "&name;" and "&#...;" references that decode to themselves.
// They stay in the text literally; a bare '&' is never reported.
func (lx *Lexer) checkEntities(raw []byte, base uint32) {
	if lx.opts.Reporter == nil {
		return
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] != '&' {
			continue
		}
		j := i + 1
		if j < len(raw) && raw[j] == '#' {
			j++
			if j < len(raw) && (raw[j] == 'x' || raw[j] == 'X') {
				j++
			}
		}
		for j < len(raw) && isASCIIAlnum(raw[j]) {
			j++
		}
		if j == i+1 || j >= len(raw) || raw[j] != ';' {
			continue
		}
		ref := string(raw[i : j+1])
		if html.UnescapeString(ref) == ref {
			sp := lx.span(base+uint32(i), base+uint32(j+1)) // #nosec G115 -- offsets are within the file
			lx.warn(diag.LexBadEntity, sp, "unknown character reference "+ref+" kept literally").Emit()
		}
		i = j
	}
}
