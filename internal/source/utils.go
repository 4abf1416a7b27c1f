package source

import (
	"bytes"
	"path/filepath"
	"slices"
)

var (
	crlf    = []byte("\r\n")
	lf      = []byte("\n")
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
)

// normalizeCRLF folds "\r\n" into "\n"; a lone '\r' stays, HTML treats it as
// text. The second result reports whether anything changed.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, crlf) {
		return content, false
	}
	return bytes.ReplaceAll(content, crlf, lf), true
}

func removeBOM(content []byte) ([]byte, bool) {
	if rest, ok := bytes.CutPrefix(content, utf8BOM); ok {
		return rest, true
	}
	return content, false
}

// buildLineIndex records the offset of every '\n'.
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, lf))
	for off := 0; ; {
		i := bytes.IndexByte(content[off:], '\n')
		if i < 0 {
			return out
		}
		out = append(out, uint32(off+i)) // #nosec G115 -- FileSet caps content at MaxUint32
		off += i + 1
	}
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// число переводов строки строго до off = номер строки - 1
	n, _ := slices.BinarySearch(lineIdx, off)
	if n == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	lineStart := lineIdx[n-1] + 1
	return LineCol{Line: uint32(n) + 1, Col: off - lineStart + 1} // #nosec G115 -- n <= len(lineIdx)
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
