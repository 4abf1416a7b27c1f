package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"ewb/internal/config"
	"ewb/internal/diag"
	"ewb/internal/observ"
	"ewb/internal/source"
	"ewb/internal/trace"
)

// ParseDirResult содержит результат разбора одного файла
type ParseDirResult struct {
	Path   string       // путь относительно каталога
	Result *ParseResult // nil, если файл не загрузился
	Err    error        // ошибка загрузки или построения
}

// ParseDirOptions tunes ParseDir.
type ParseDirOptions struct {
	Parse    config.ParseConfig
	Jobs     int         // <= 0 means GOMAXPROCS
	Observer DocObserver // optional
}

// listHTMLFiles возвращает отсортированный список *.html и *.htm файлов
func listHTMLFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".html", ".htm":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// детерминированный порядок
	sort.Strings(files)
	return files, nil
}

// ParseDir parses every HTML file under dir in parallel. Results come back
// in sorted path order regardless of scheduling. Per-file failures are
// kept in ParseDirResult.Err; only cancellation fails the whole call.
func ParseDir(ctx context.Context, dir string, opts ParseDirOptions) (*source.FileSet, []ParseDirResult, error) {
	files, err := listHTMLFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	ctx, span := trace.Start(ctx, trace.ScopeDriver, "parse-dir")
	defer span.WithInt("files", int64(len(files))).End(dir)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]ParseDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rel, relErr := filepath.Rel(dir, path)
			if relErr != nil {
				rel = path
			}
			results[i] = parseOne(gctx, fileSet, path, rel, i, len(files), opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func parseOne(ctx context.Context, fileSet *source.FileSet, path, rel string, i, total int, opts ParseDirOptions) ParseDirResult {
	notify := func(ev DocEvent) {
		if opts.Observer != nil {
			ev.Index, ev.Total, ev.Path = i, total, rel
			opts.Observer(ev)
		}
	}
	started := time.Now()
	notify(DocEvent{Status: DocStarted})

	ctx, span := trace.Start(ctx, trace.ScopeDocument, "doc:"+rel)
	fileID, err := fileSet.Load(path)
	if err != nil {
		err = fmt.Errorf("load %s: %w", rel, err)
		span.EndErr(err)
		notify(DocEvent{Status: DocFailed, Elapsed: time.Since(started), Err: err})
		return ParseDirResult{Path: rel, Err: err}
	}

	res, err := parseFile(ctx, fileSet, fileSet.Get(fileID), opts.Parse, observ.NewTimer())
	if err != nil {
		span.EndErr(err)
		notify(DocEvent{Status: DocFailed, Elapsed: time.Since(started), Err: err})
		return ParseDirResult{Path: rel, Result: res, Err: err}
	}
	span.End("")
	notify(DocEvent{Status: DocDone, Nodes: res.Stats.Nodes, Elapsed: time.Since(started)})
	return ParseDirResult{Path: rel, Result: res}
}

// MergeBags собирает диагностики всех файлов в один Bag.
func MergeBags(results []ParseDirResult, maxDiagnostics int) *diag.Bag {
	out := diag.NewBag(maxDiagnostics)
	for _, r := range results {
		if r.Result != nil {
			out.Merge(r.Result.Bag)
		}
	}
	return out
}

// FirstError returns the first per-file error, in path order.
func FirstError(results []ParseDirResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

