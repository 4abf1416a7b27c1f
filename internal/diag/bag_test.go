package diag

import (
	"testing"

	"ewb/internal/source"
)

func TestBagLimitAndDropped(t *testing.T) {
	bag := NewBag(2)
	sp := source.Span{}
	for i := 0; i < 4; i++ {
		bag.Add(NewWarning(TreeStrayEndTag, sp, "stray"))
	}
	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
	if bag.Dropped() != 2 {
		t.Fatalf("Dropped = %d, want 2", bag.Dropped())
	}
	if bag.HasErrors() {
		t.Error("warnings must not count as errors")
	}
	if !bag.HasWarnings() {
		t.Error("expected warnings")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewWarning(TreeImplicitClose, source.Span{Start: 9, End: 10}, "b"))
	bag.Add(NewError(LimitDepthExceeded, source.Span{Start: 1, End: 2}, "a"))
	bag.Add(NewWarning(TreeStrayEndTag, source.Span{Start: 1, End: 2}, "a2"))
	bag.Add(NewWarning(TreeImplicitClose, source.Span{Start: 9, End: 10}, "b-dup"))

	bag.Sort()
	items := bag.Items()
	if items[0].Code != LimitDepthExceeded || items[1].Code != TreeStrayEndTag {
		t.Fatalf("unexpected order: %v, %v", items[0].Code, items[1].Code)
	}

	bag.Dedup()
	if bag.Len() != 3 {
		t.Fatalf("Dedup kept %d, want 3", bag.Len())
	}
	if bag.Count(TreeImplicitClose) != 1 {
		t.Errorf("Count(TreeImplicitClose) = %d", bag.Count(TreeImplicitClose))
	}
}

func TestBagMerge(t *testing.T) {
	a := NewBag(1)
	a.Add(NewWarning(LexStrayLessThan, source.Span{}, "x"))
	b := NewBag(3)
	b.Add(NewWarning(LexBadEntity, source.Span{}, "y"))
	b.Add(NewWarning(LexBadEntity, source.Span{}, "z"))

	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("Merge Len = %d, want 3", a.Len())
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexStrayLessThan:   "LEX1001",
		TreeStrayEndTag:    "TRE2001",
		LimitDepthExceeded: "LIM3002",
		IOLoadFileError:    "IO4001",
		FetchBadStatus:     "NET5002",
		UnknownCode:        "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if Code(1999).Title() != "Unknown error" {
		t.Error("unknown code must fall back to UnknownCode title")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(4)
	rb := ReportWarning(BagReporter{Bag: bag}, TreeImplicitClose, source.Span{Start: 3, End: 4}, "closed <p>").
		WithNote(source.Span{Start: 0, End: 3}, "opened here")
	rb.Emit()
	rb.Emit()
	if bag.Len() != 1 {
		t.Fatalf("Emit twice produced %d diagnostics", bag.Len())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Error("note lost")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(4)
	r := NewDedupReporter(BagReporter{Bag: bag}, 0)
	sp := source.Span{Start: 1, End: 2}
	r.Report(LexBadEntity, SevWarning, sp, "&bogus;", nil)
	r.Report(LexBadEntity, SevWarning, sp, "&bogus;", nil)
	r.Report(LexBadEntity, SevWarning, sp, "&other;", nil)
	if bag.Len() != 2 {
		t.Fatalf("DedupReporter forwarded %d, want 2", bag.Len())
	}
}

func TestDedupReporterPerCodeCap(t *testing.T) {
	bag := NewBag(16)
	r := NewDedupReporter(BagReporter{Bag: bag}, 2)
	for i := uint32(0); i < 5; i++ {
		r.Report(LexStrayLessThan, SevWarning, source.Span{Start: i, End: i + 1}, "stray", nil)
	}
	r.Report(TreeStrayEndTag, SevWarning, source.Span{Start: 9, End: 10}, "stray end", nil)
	r.Report(LimitDepthExceeded, SevError, source.Span{Start: 11, End: 12}, "deep", nil)
	r.Report(LimitDepthExceeded, SevError, source.Span{Start: 12, End: 13}, "deep", nil)
	r.Report(LimitDepthExceeded, SevError, source.Span{Start: 13, End: 14}, "deep", nil)

	if got := r.Suppressed(LexStrayLessThan); got != 3 {
		t.Fatalf("Suppressed = %d, want 3", got)
	}
	if got := bag.Count(LimitDepthExceeded); got != 3 {
		t.Errorf("errors must not be capped, got %d", got)
	}
	r.Flush()
	items := bag.Items()
	last := items[len(items)-1]
	if last.Code != LexStrayLessThan || last.Severity != SevInfo || last.Primary.Start != 4 {
		t.Errorf("unexpected summary %+v", last)
	}
	if got := bag.Count(LexStrayLessThan); got != 3 {
		t.Errorf("expected 2 warnings and 1 summary, got %d", got)
	}
	r.Flush()
	if bag.Len() != len(items) {
		t.Error("second Flush must not repeat the summary")
	}
}

func TestDedupReporterCapKeepsMemoryBounded(t *testing.T) {
	bag := NewBag(8)
	r := NewDedupReporter(BagReporter{Bag: bag}, 3)
	for i := uint32(0); i < 10000; i++ {
		r.Report(LexStrayLessThan, SevWarning, source.Span{Start: i, End: i + 1}, "stray", nil)
	}
	if got := len(r.seen); got != 3 {
		t.Errorf("seen holds %d keys, want only the 3 forwarded", got)
	}
	if got := r.Suppressed(LexStrayLessThan); got != 9997 {
		t.Errorf("Suppressed = %d, want 9997", got)
	}
	// повтор пропущенного отчёта по-прежнему отбрасывается
	r.Report(LexStrayLessThan, SevWarning, source.Span{Start: 0, End: 1}, "stray", nil)
	if got := r.Suppressed(LexStrayLessThan); got != 9997 {
		t.Errorf("repeat of a forwarded report must be dropped, Suppressed = %d", got)
	}
}
