package lexer

import (
	"bytes"
	"iter"

	"ewb/internal/source"
	"ewb/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена

	// rawTag != "" пока лексер внутри script/style/textarea/title.
	rawTag       string
	rawEscapable bool

	// lastGT is the offset of the last '>' in the document, -1 if none.
	// A tag cannot start at or after it.
	lastGT int
	// commentMiss is the smallest offset a "-->" search failed from, -1 if none.
	commentMiss int
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		opts:        opts,
		lastGT:      bytes.LastIndexByte(file.Content, '>'),
		commentMiss: -1,
	}
}

// Next возвращает следующий токен. Соседние текстовые фрагменты
// (включая разметку, деградировавшую в текст) сливаются в один Text.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	if lx.rawTag != "" {
		if tok, ok := lx.scanRawText(); ok {
			return tok
		}
	}

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	start := lx.cursor.Off
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() != '<' {
			lx.skipToLessThan()
			continue
		}
		at := lx.cursor.Off
		tok, ok, resume := lx.scanMarkup()
		if !ok {
			// разметка деградировала в текст: [at, resume) становится частью текущего run
			lx.cursor.Off = resume
			continue
		}
		lx.enterRawText(tok)
		if at > start {
			lx.look = &tok
			return lx.makeText(start, at, true)
		}
		return tok
	}
	return lx.makeText(start, lx.cursor.Off, true)
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// All yields tokens up to, not including, EOF.
func (lx *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok := lx.Next()
			if tok.Kind == token.EOF || !yield(tok) {
				return
			}
		}
	}
}

// File returns the document being scanned.
func (lx *Lexer) File() *source.File { return lx.file }

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) skipToLessThan() {
	if i := lx.cursor.IndexByte('<'); i >= 0 {
		lx.cursor.Off = uint32(i) // #nosec G115 -- i is bounded by Limit
		return
	}
	lx.cursor.Off = lx.cursor.Limit
}

func (lx *Lexer) enterRawText(tok token.Token) {
	if tok.Kind != token.StartTag || tok.SelfClosing {
		return
	}
	switch token.LookupElement(tok.Name) {
	case token.ClassRawText:
		lx.rawTag, lx.rawEscapable = tok.Name, false
	case token.ClassEscapableRawText:
		lx.rawTag, lx.rawEscapable = tok.Name, true
	}
}
