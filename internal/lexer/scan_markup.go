package lexer

import (
	"bytes"
	"fmt"

	"ewb/internal/diag"
	"ewb/internal/token"
)

// scanMarkup разбирает конструкцию, начинающуюся с '<'.
// При ok=false курсор не определён, а [start, resume) нужно считать текстом.
func (lx *Lexer) scanMarkup() (tok token.Token, ok bool, resume uint32) {
	start := lx.cursor.Off
	next := lx.cursor.PeekAt(1)

	switch {
	case isASCIIAlpha(next):
		tok, ok, resume = lx.scanStartTag()
	case next == '/' && isASCIIAlpha(lx.cursor.PeekAt(2)):
		tok, ok, resume = lx.scanEndTag()
	case next == '!' && lx.cursor.HasPrefixFold("<!--"):
		tok, ok, resume = lx.scanComment()
	case next == '!' && lx.cursor.HasPrefixFold("<!doctype"):
		tok, ok, resume = lx.scanDoctype()
	case next == '!' || next == '?':
		tok, ok, resume = lx.scanBogus()
	default:
		lx.warn(diag.LexStrayLessThan, lx.span(start, start+1), "stray '<' treated as text").Emit()
		return token.Token{}, false, start + 1
	}
	if !ok {
		return tok, ok, resume
	}
	if n := tok.Span.Len(); n > lx.opts.maxTokenLength() {
		lx.warn(diag.LexTokenTooLong, tok.Span,
			fmt.Sprintf("%s of %d bytes exceeds the %d byte limit, kept as text", tok.Kind, n, lx.opts.maxTokenLength())).Emit()
		return token.Token{}, false, tok.Span.End
	}
	return tok, true, 0
}

// unterminated — '<' без '>' до конца документа: только сам '<' становится текстом.
func (lx *Lexer) unterminated(start uint32, what string) (token.Token, bool, uint32) {
	lx.warn(diag.LexUnterminatedTag, lx.span(start, lx.cursor.Limit), "unterminated "+what+" treated as text").Emit()
	return token.Token{}, false, start + 1
}

func (lx *Lexer) scanComment() (token.Token, bool, uint32) {
	start := lx.cursor.Off
	lx.cursor.Advance(4) // "<!--"
	bodyStart := lx.cursor.Off

	// "<!-->" и "<!--->" — пустые комментарии
	if lx.cursor.Peek() == '>' || (lx.cursor.Peek() == '-' && lx.cursor.PeekAt(1) == '>') {
		lx.cursor.Advance(uint32(bytes.IndexByte(lx.cursor.Rest(), '>') + 1)) // #nosec G115 -- small
		return token.NewComment(lx.span(start, lx.cursor.Off), ""), true, 0
	}

	end := -1
	if lx.commentMiss < 0 || int(bodyStart) < lx.commentMiss {
		end = lx.cursor.Index("-->")
		if end < 0 {
			lx.commentMiss = int(bodyStart)
		}
	}
	if end < 0 {
		lx.warn(diag.LexUnterminatedComment, lx.span(start, bodyStart), "unterminated comment, \"<!--\" kept as text").Emit()
		return token.Token{}, false, bodyStart
	}
	lx.cursor.Off = uint32(end) + 3 // #nosec G115 -- end < Limit
	body := lx.file.Content[bodyStart:end]
	return token.NewComment(lx.span(start, lx.cursor.Off), string(body)), true, 0
}

func (lx *Lexer) scanDoctype() (token.Token, bool, uint32) {
	start := lx.cursor.Off
	if int(start) > lx.lastGT {
		return lx.unterminated(start, "doctype")
	}
	lx.cursor.Advance(uint32(len("<!doctype")))
	bodyStart := lx.cursor.Off
	gt := lx.cursor.IndexByte('>')
	if gt < 0 {
		return lx.unterminated(start, "doctype")
	}
	body := bytes.TrimSpace(lx.file.Content[bodyStart:gt])
	lx.cursor.Off = uint32(gt) + 1 // #nosec G115 -- gt < Limit
	return token.NewDoctype(lx.span(start, lx.cursor.Off), string(body)), true, 0
}

// scanBogus: "<!...>" и "<?...>" становятся комментарием, как в браузерах.
func (lx *Lexer) scanBogus() (token.Token, bool, uint32) {
	start := lx.cursor.Off
	if int(start) > lx.lastGT {
		return lx.unterminated(start, "markup declaration")
	}
	lx.cursor.Advance(2)
	bodyStart := lx.cursor.Off
	gt := lx.cursor.IndexByte('>')
	if gt < 0 {
		return lx.unterminated(start, "markup declaration")
	}
	body := lx.file.Content[bodyStart:gt]
	lx.cursor.Off = uint32(gt) + 1 // #nosec G115 -- gt < Limit
	sp := lx.span(start, lx.cursor.Off)
	lx.info(diag.LexBogusDeclaration, sp, "markup declaration treated as a comment")
	return token.NewComment(sp, string(body)), true, 0
}
