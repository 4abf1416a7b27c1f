package lexer

import (
	"ewb/internal/diag"
	"ewb/internal/source"
)

// ReporterAdapter адаптирует diag.Bag для использования в лексере
type ReporterAdapter struct {
	Bag *diag.Bag
}

// Reporter returns a diag.Reporter that forwards diagnostics to the adapter's bag.
func (r *ReporterAdapter) Reporter() diag.Reporter {
	return diag.BagReporter{Bag: r.Bag}
}

// Все аномалии разметки восстанавливаемы, поэтому лексер пишет только предупреждения.
func (lx *Lexer) warn(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	if lx.opts.Reporter == nil {
		return nil
	}
	return diag.ReportWarning(lx.opts.Reporter, code, sp, msg)
}

func (lx *Lexer) info(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	diag.ReportInfo(lx.opts.Reporter, code, sp, msg).Emit()
}

func (lx *Lexer) span(start, end uint32) source.Span {
	return source.Span{File: lx.file.ID, Start: start, End: end}
}
