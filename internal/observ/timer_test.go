package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("lex+build")
	time.Sleep(time.Millisecond)
	tm.EndBytes(idx, 1<<20, "3 nodes")
	tm.End(tm.Begin("query"), "")

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	first := report.Phases[0]
	if first.Name != "lex+build" || first.Bytes != 1<<20 || first.MBPerSec <= 0 {
		t.Errorf("unexpected first phase %+v", first)
	}
	if report.Phases[1].MBPerSec != 0 {
		t.Errorf("phase without bytes must not report throughput")
	}
	if report.TotalMS < first.DurationMS {
		t.Errorf("total %.3f < phase %.3f", report.TotalMS, first.DurationMS)
	}
}

func TestTimerSummary(t *testing.T) {
	tm := NewTimer()
	tm.End(tm.Begin("fetch"), "200 OK")
	out := tm.Summary()
	for _, want := range []string{"timings:", "fetch", "// 200 OK", "total"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestTimerIgnoresBadIndex(t *testing.T) {
	tm := NewTimer()
	tm.End(5, "x")
	tm.End(-1, "x")
	if got := tm.Report(); len(got.Phases) != 0 || got.TotalMS != 0 {
		t.Errorf("expected empty report, got %+v", got)
	}
}
