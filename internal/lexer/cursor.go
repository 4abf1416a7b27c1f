package lexer

import (
	"bytes"
	"fmt"

	"ewb/internal/source"

	"fortio.org/safecast"
)

// Cursor представляет собой позицию в документе
type Cursor struct {
	File *source.File
	Off  uint32
	// Limit is the exclusive upper bound for Off; defaults to len(File.Content).
	Limit uint32
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{
		File:  f,
		Off:   0,
		Limit: limit,
	}
}

// EOF проверяет, достигнут ли конец документа
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// PeekAt returns the byte n positions ahead of Off, or 0 past the limit.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// Advance moves the cursor n bytes forward, clamped to the limit.
func (c *Cursor) Advance(n uint32) {
	if c.Limit-c.Off < n {
		c.Off = c.Limit
		return
	}
	c.Off += n
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		File:  c.File.ID,
		Start: uint32(m),
		End:   c.Off,
	}
}

// Reset возвращает курсор к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.File.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// Rest returns the unread part of the content.
func (c *Cursor) Rest() []byte {
	if c.EOF() {
		return nil
	}
	return c.File.Content[c.Off:c.Limit]
}

// HasPrefixFold reports whether the unread content starts with prefix,
// ASCII case-insensitively. prefix must be lower case.
func (c *Cursor) HasPrefixFold(prefix string) bool {
	rest := c.Rest()
	if len(rest) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if lowerByte(rest[i]) != prefix[i] {
			return false
		}
	}
	return true
}

// IndexByte returns the absolute offset of the next b at or after Off, or -1.
func (c *Cursor) IndexByte(b byte) int {
	i := bytes.IndexByte(c.Rest(), b)
	if i < 0 {
		return -1
	}
	return int(c.Off) + i
}

// Index returns the absolute offset of the next sep at or after Off, or -1.
func (c *Cursor) Index(sep string) int {
	i := bytes.Index(c.Rest(), []byte(sep))
	if i < 0 {
		return -1
	}
	return int(c.Off) + i
}
