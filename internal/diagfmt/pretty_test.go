package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"ewb/internal/diag"
	"ewb/internal/source"
)

func TestPrettyCaretUnderline(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("page.html", []byte("<p>\n  a < b\n</p>"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewWarning(diag.LexStrayLessThan, source.Span{File: fileID, Start: 8, End: 9}, "stray '<' treated as text"))

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	want := "page.html:2:5: WARNING LEX1001: stray '<' treated as text\n" +
		"   2 |   a < b\n" +
		"     |     ^\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("wide.html", []byte("日本 <x"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewWarning(diag.LexUnterminatedTag, source.Span{File: fileID, Start: 7, End: 9}, "unterminated"))

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 || lines[2] != "     |      ^~" {
		t.Errorf("caret line = %q", lines[2])
	}
}

func TestPrettyLocationless(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.FetchFailed, source.Span{}, "fetch http://x: timeout"))

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, source.NewFileSet(), PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "ERROR NET5001: fetch http://x: timeout\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrettyNotesAndDropped(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("q.html", []byte(`<a href="x>`))

	bag := diag.NewBag(1)
	d := diag.NewWarning(diag.LexUnterminatedQuote, source.Span{File: fileID, Start: 0, End: 11}, "unterminated attribute quote").
		WithNote(source.Span{File: fileID, Start: 8, End: 9}, "quote opened here")
	bag.Add(d)
	bag.Add(diag.NewWarning(diag.LexBadEntity, source.Span{File: fileID, Start: 1, End: 2}, "dropped"))

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"note (1:9): quote opened here", "... 1 more diagnostics not shown"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.html", []byte("a < b"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewWarning(diag.LexStrayLessThan, source.Span{File: fileID, Start: 2, End: 3}, "stray"))

	var plain, colored bytes.Buffer
	if err := Pretty(&plain, bag, fs, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	if err := Pretty(&colored, bag, fs, PrettyOpts{Color: true}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("plain output contains escape codes")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("colored output has no escape codes")
	}
}

func TestFormatPathModes(t *testing.T) {
	f := &source.File{Path: "/home/user/site/pages/index.html"}
	tests := []struct {
		mode PathMode
		base string
		want string
	}{
		{PathModeAuto, "", "/home/user/site/pages/index.html"},
		{PathModeRelative, "/home/user/site", "pages/index.html"},
		{PathModeBasename, "", "index.html"},
	}
	for _, tt := range tests {
		if got := formatPath(f, tt.mode, tt.base); got != tt.want {
			t.Errorf("mode %d: got %q, want %q", tt.mode, got, tt.want)
		}
	}
}
