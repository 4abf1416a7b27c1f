package diag

import (
	"fmt"
	"slices"

	"ewb/internal/source"
)

type dedupKey struct {
	code Code
	span source.Span
	msg  string
}

// DedupReporter forwards to next, dropping exact repeats (same code, span
// and message) and, when PerCode > 0, every report of a code past its
// first PerCode. Call Flush once the document is done to emit one summary
// per capped code. Only forwarded reports are remembered, so a repeat of a
// suppressed report counts as suppressed again. Not safe for concurrent use.
type DedupReporter struct {
	next       Reporter
	PerCode    int
	seen       map[dedupKey]struct{}
	perCode    map[Code]int
	suppressed map[Code]int
	lastSpan   map[Code]source.Span
}

func NewDedupReporter(next Reporter, perCode int) *DedupReporter {
	return &DedupReporter{
		next:       next,
		PerCode:    perCode,
		seen:       make(map[dedupKey]struct{}),
		perCode:    make(map[Code]int),
		suppressed: make(map[Code]int),
		lastSpan:   make(map[Code]source.Span),
	}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil || r.next == nil {
		return
	}
	key := dedupKey{code: code, span: primary, msg: msg}
	if _, ok := r.seen[key]; ok {
		return
	}
	// ошибки не ограничиваются: они объясняют, почему разбор остановился
	if r.PerCode > 0 && sev < SevError {
		if r.perCode[code] >= r.PerCode {
			// подавленные не запоминаются, иначе seen растёт с числом предупреждений
			r.suppressed[code]++
			r.lastSpan[code] = primary
			return
		}
		r.perCode[code]++
	}
	r.seen[key] = struct{}{}
	r.next.Report(code, sev, primary, msg, notes)
}

// Suppressed returns how many reports of code were dropped by the cap.
func (r *DedupReporter) Suppressed(code Code) int {
	if r == nil {
		return 0
	}
	return r.suppressed[code]
}

// Flush reports one Info diagnostic per capped code, in code order,
// pointing at the last suppressed occurrence.
func (r *DedupReporter) Flush() {
	if r == nil || r.next == nil || len(r.suppressed) == 0 {
		return
	}
	codes := make([]Code, 0, len(r.suppressed))
	for code := range r.suppressed {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	for _, code := range codes {
		n := r.suppressed[code]
		r.next.Report(code, SevInfo, r.lastSpan[code],
			fmt.Sprintf("%d more %s (%s) not reported", n, code.ID(), code.Title()), nil)
	}
	clear(r.suppressed)
}
