package diagfmt

import (
	"fmt"
	"path/filepath"

	"ewb/internal/source"
)

// fileOf returns the document span points into, or nil for location-less
// spans (the zero Span) and unknown files.
func fileOf(fs *source.FileSet, span source.Span) *source.File {
	if fs == nil || span == (source.Span{}) || int(span.File) >= fs.Len() {
		return nil
	}
	return fs.Get(span.File)
}

func formatPath(f *source.File, mode PathMode, base string) string {
	switch mode {
	case PathModeAbsolute:
		if f.Flags&source.FileVirtual != 0 {
			return f.Path
		}
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if base != "" {
			if rel, err := filepath.Rel(base, f.Path); err == nil {
				return filepath.ToSlash(rel)
			}
		}
	case PathModeBasename:
		return filepath.Base(f.Path)
	}
	return f.Path
}

// formatSpan renders "line:col-line:col" when fs knows the file,
// "span(start-end)" otherwise.
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fileOf(fs, span) != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
