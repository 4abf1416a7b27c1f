package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"ewb/internal/diag"
	"ewb/internal/source"
)

func TestJSONOutput(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("page.html", []byte("<p>\n</span>"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewWarning(diag.TreeStrayEndTag, source.Span{File: fileID, Start: 4, End: 11}, "stray </span>"))
	bag.Add(diag.NewError(diag.FetchBadStatus, source.Span{}, "fetch http://x: bad status 404"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 {
		t.Fatalf("count = %d, want 2", out.Count)
	}
	first := out.Diagnostics[0]
	if first.Code != "TRE2001" || first.Severity != "WARNING" || first.Location == nil {
		t.Fatalf("unexpected first diagnostic %+v", first)
	}
	if first.Location.StartLine != 2 || first.Location.StartCol != 1 || first.Location.File != "page.html" {
		t.Errorf("unexpected location %+v", *first.Location)
	}
	if out.Diagnostics[1].Location != nil {
		t.Errorf("location-less diagnostic must omit location")
	}
}

func TestJSONMaxAndTimingNotes(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, "timings").WithNote(source.Span{}, `{"kind":"parse"}`))
	bag.Add(diag.NewWarning(diag.LexBadEntity, source.Span{}, "x"))

	out := BuildDiagnosticsOutput(bag, nil, JSONOpts{Max: 1})
	if out.Count != 1 || out.Dropped != 1 {
		t.Fatalf("count=%d dropped=%d", out.Count, out.Dropped)
	}
	if len(out.Diagnostics[0].Notes) != 1 {
		t.Errorf("timing notes must always be included")
	}
}

func TestJSONNilBag(t *testing.T) {
	out := BuildDiagnosticsOutput(nil, nil, JSONOpts{})
	if out.Diagnostics == nil || out.Count != 0 {
		t.Errorf("nil bag must produce an empty list, got %+v", out)
	}
}
