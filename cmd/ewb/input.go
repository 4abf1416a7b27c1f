package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"ewb/internal/config"
	"ewb/internal/driver"
	"ewb/internal/fetch"
)

// isURL reports whether arg names a remote document rather than a path.
func isURL(arg string) bool {
	lower := strings.ToLower(arg)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// openCache открывает дисковый кэш, если он включён в конфиге.
func openCache(cfg config.FetchConfig) (*driver.DiskCache, error) {
	if !cfg.Cache {
		return nil, nil
	}
	if cfg.CacheDir != "" {
		return driver.OpenDiskCacheAt(cfg.CacheDir)
	}
	return driver.OpenDiskCache("ewb")
}

func newFetcher(cfg config.FetchConfig) (*fetch.HTTPFetcher, error) {
	return fetch.NewHTTPFetcher(driver.FetchOptions(cfg))
}

// loadDocument parses arg as a URL, "-" for stdin, or a file path.
// Like driver.ParseFile it may return a result together with an error.
func loadDocument(ctx context.Context, a *app, stdin io.Reader, arg string) (*driver.ParseResult, error) {
	switch {
	case arg == "-":
		content, err := io.ReadAll(io.LimitReader(stdin, a.cfg.Parse.MaxInputBytes+1))
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return driver.ParseBytes(ctx, "<stdin>", content, a.cfg.Parse)
	case isURL(arg):
		f, err := newFetcher(a.cfg.Fetch)
		if err != nil {
			return nil, err
		}
		cache, err := openCache(a.cfg.Fetch)
		if err != nil {
			// без кэша тоже можно работать
			fmt.Fprintf(os.Stderr, "warning: page cache disabled: %v\n", err)
			cache = nil
		}
		return driver.FetchAndParse(ctx, f, cache, arg, a.cfg.Parse)
	default:
		return driver.ParseFile(ctx, arg, a.cfg.Parse)
	}
}

// reportLoad prints what loadDocument produced and converts fetch errors
// into diagnostics. It returns the error the command should fail with.
func (a *app) reportLoad(w io.Writer, res *driver.ParseResult, err error) error {
	if res != nil {
		a.printDiagnostics(w, res.Bag, res.FileSet)
	}
	if err == nil {
		return nil
	}
	if d, ok := driver.FetchDiagnostic(err); ok && res == nil {
		a.printDiagnostics(w, bagOf(d), nil)
		return errAlreadyReported
	}
	return err
}
