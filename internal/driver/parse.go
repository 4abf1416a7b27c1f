package driver

import (
	"context"
	"fmt"

	"ewb/internal/config"
	"ewb/internal/diag"
	"ewb/internal/dom"
	"ewb/internal/observ"
	"ewb/internal/source"
	"ewb/internal/trace"
	"ewb/internal/treebuilder"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *dom.Tree // nil, если построение не удалось
	Stats   treebuilder.Stats
	Bag     *diag.Bag
	Timer   *observ.Timer
}

// Root returns the document node, or the zero Node when there is no tree.
func (r *ParseResult) Root() dom.Node {
	if r == nil || r.Tree == nil {
		return dom.Node{}
	}
	return r.Tree.Root()
}

// ParseFile loads and parses one HTML document from disk.
// A load failure is returned as a plain error. Build failures
// (htmlerr.InvalidInput, htmlerr.ResourceExhausted) come back together
// with the result so its diagnostics can still be printed.
func ParseFile(ctx context.Context, path string, cfg config.ParseConfig) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return parseFile(ctx, fs, fs.Get(fileID), cfg, observ.NewTimer())
}

// ParseBytes parses an in-memory document registered under name.
func ParseBytes(ctx context.Context, name string, content []byte, cfg config.ParseConfig) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID := fs.AddNormalized(name, content, source.FileVirtual)
	return parseFile(ctx, fs, fs.Get(fileID), cfg, observ.NewTimer())
}

func parseFile(ctx context.Context, fs *source.FileSet, file *source.File, cfg config.ParseConfig, timer *observ.Timer) (*ParseResult, error) {
	bag := diag.NewBag(cfg.MaxDiagnostics)
	res := &ParseResult{FileSet: fs, File: file, Bag: bag, Timer: timer}

	_, span := trace.Start(ctx, trace.ScopePass, "lex+build")
	idx := timer.Begin("lex+build")
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag}, cfg.MaxPerCode)
	built, err := treebuilder.BuildFile(file, BuilderOptions(cfg, rep))
	rep.Flush()
	size := int64(len(file.Content))
	if err != nil {
		timer.EndBytes(idx, size, "failed")
		span.WithInt("bytes", size).EndErr(err)
		return res, err
	}
	res.Tree, res.Stats = built.Tree, built.Stats
	timer.EndBytes(idx, size, fmt.Sprintf("%d nodes", built.Stats.Nodes))
	span.WithInt("bytes", size).
		WithInt("tokens", int64(built.Stats.Tokens)).
		WithInt("nodes", int64(built.Stats.Nodes)).
		End("")
	return res, nil
}
