package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"ewb/internal/source"
)

// GoldenOpts tunes FormatGolden.
type GoldenOpts struct {
	Notes bool
	// Excerpt appends the markup under the primary span, e.g. "[</span>]".
	Excerpt bool
}

type goldenLine struct {
	sev     string
	code    string
	path    string
	line    uint32
	col     uint32
	msg     string
	excerpt string
}

// excerptWidth ограничивает длину фрагмента разметки в golden-строке.
const excerptWidth = 24

// FormatGolden renders diagnostics one per line, sorted by position, as
// "severity CODE path:line:col message". Location-less diagnostics (the zero
// Span, e.g. fetch failures) print "-" as their location; spans into unknown
// files are skipped.
func FormatGolden(diags []Diagnostic, fs *source.FileSet, opts GoldenOpts) string {
	if len(diags) == 0 {
		return ""
	}
	lines := make([]goldenLine, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		if l, ok := goldenAt(fs, d.Primary, opts.Excerpt); ok {
			l.sev, l.code, l.msg = strings.ToLower(d.Severity.String()), d.Code.ID(), oneLine(d.Message)
			lines = append(lines, l)
		}
		if !opts.Notes {
			continue
		}
		for _, note := range d.Notes {
			if l, ok := goldenAt(fs, note.Span, false); ok {
				l.sev, l.code, l.msg = "note", d.Code.ID(), oneLine(note.Msg)
				lines = append(lines, l)
			}
		}
	}

	slices.SortStableFunc(lines, func(a, b goldenLine) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.line, b.line),
			cmp.Compare(a.col, b.col),
			cmp.Compare(a.sev, b.sev),
			cmp.Compare(a.code, b.code),
			cmp.Compare(a.msg, b.msg),
		)
	})

	out := make([]string, 0, len(lines))
	for _, l := range lines {
		loc := "-"
		if l.path != "" {
			loc = fmt.Sprintf("%s:%d:%d", l.path, l.line, l.col)
		}
		s := fmt.Sprintf("%s %s %s %s", l.sev, l.code, loc, l.msg)
		if l.excerpt != "" {
			s += " [" + l.excerpt + "]"
		}
		out = append(out, s)
	}
	return strings.Join(out, "\n")
}

func goldenAt(fs *source.FileSet, span source.Span, withExcerpt bool) (goldenLine, bool) {
	if span == (source.Span{}) {
		return goldenLine{}, true
	}
	if fs == nil || int(span.File) >= fs.Len() {
		return goldenLine{}, false
	}
	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	l := goldenLine{path: file.Path, line: start.Line, col: start.Col}
	if withExcerpt && int(span.End) <= len(file.Content) && span.Start < span.End {
		ex := oneLine(string(file.Content[span.Start:span.End]))
		if r := []rune(ex); len(r) > excerptWidth {
			ex = string(r[:excerptWidth-1]) + "…"
		}
		l.excerpt = ex
	}
	return l, true
}

// oneLine сворачивает переводы строк, чтобы одна диагностика занимала одну строку.
func oneLine(msg string) string {
	return strings.TrimSpace(strings.Join(strings.FieldsFunc(msg, func(r rune) bool {
		return r == '\n' || r == '\r'
	}), " "))
}
