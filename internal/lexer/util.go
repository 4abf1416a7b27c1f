package lexer

func isASCIIAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isASCIIAlnum(b byte) bool {
	return isASCIIAlpha(b) || (b >= '0' && b <= '9')
}

// isSpace — пробельные символы HTML (без \r: CRLF уже нормализован в source).
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	default:
		return false
	}
}

func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// lowerASCII lowercases ASCII letters only; non-ASCII bytes are kept as is.
func lowerASCII(b []byte) string {
	upper := false
	for _, c := range b {
		if c >= 'A' && c <= 'Z' {
			upper = true
			break
		}
	}
	if !upper {
		return string(b)
	}
	out := make([]byte, len(b))
	for i, c := range b {
		out[i] = lowerByte(c)
	}
	return string(out)
}

func (lx *Lexer) skipSpace() {
	for !lx.cursor.EOF() && isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}
