package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ewb/internal/diag"
	"ewb/internal/source"
)

type palette struct {
	sev   map[diag.Severity]*color.Color
	code  *color.Color
	path  *color.Color
	caret *color.Color
	note  *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevInfo:    mk(color.FgCyan, color.Bold),
			diag.SevWarning: mk(color.FgYellow, color.Bold),
			diag.SevError:   mk(color.FgRed, color.Bold),
		},
		code:  mk(color.Faint),
		path:  mk(color.Bold),
		caret: mk(color.FgGreen, color.Bold),
		note:  mk(color.FgBlue),
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее). Для каждой печатает
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку документа с подчёркиванием ^~~~ по Span и, при ShowNotes, заметки.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if err := prettyOne(w, d, fs, opts, pal); err != nil {
			return err
		}
	}
	if n := bag.Dropped(); n > 0 {
		_, err := fmt.Fprintf(w, "... %d more diagnostics not shown\n", n)
		return err
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) error {
	var sb strings.Builder
	f := fileOf(fs, d.Primary)
	if f != nil {
		start, _ := fs.Resolve(d.Primary)
		sb.WriteString(pal.path.Sprintf("%s:%d:%d", formatPath(f, opts.PathMode, opts.BaseDir), start.Line, start.Col))
		sb.WriteString(": ")
	}
	sevColor := pal.sev[d.Severity]
	if sevColor == nil {
		sevColor = pal.code
	}
	sb.WriteString(sevColor.Sprint(d.Severity.String()))
	sb.WriteString(" ")
	sb.WriteString(pal.code.Sprint(d.Code.ID()))
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	sb.WriteString("\n")
	if f != nil {
		writeSnippet(&sb, f, fs, d.Primary, pal)
	}
	if opts.ShowNotes {
		for _, n := range d.Notes {
			sb.WriteString("  ")
			sb.WriteString(pal.note.Sprint("note"))
			if nf := fileOf(fs, n.Span); nf != nil {
				start, _ := fs.Resolve(n.Span)
				fmt.Fprintf(&sb, " (%d:%d)", start.Line, start.Col)
			}
			sb.WriteString(": ")
			sb.WriteString(n.Msg)
			sb.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// writeSnippet prints the first line of span with a caret underline.
// Widths are measured in terminal columns so wide runes line up.
func writeSnippet(sb *strings.Builder, f *source.File, fs *source.FileSet, span source.Span, pal palette) {
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)
	col := min(int(start.Col)-1, len(line))
	stop := len(line)
	if end.Line == start.Line {
		stop = min(int(end.Col)-1, len(line))
	}
	stop = max(stop, col)

	display := expandTabs(line)
	pad := runewidth.StringWidth(expandTabs(line[:col]))
	width := max(runewidth.StringWidth(expandTabs(line[col:stop])), 1)

	gutter := fmt.Sprintf("%4d | ", start.Line)
	sb.WriteString(gutter)
	sb.WriteString(display)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", len(gutter)-2) + "| ")
	sb.WriteString(strings.Repeat(" ", pad))
	sb.WriteString(pal.caret.Sprint("^" + strings.Repeat("~", width-1)))
	sb.WriteString("\n")
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
