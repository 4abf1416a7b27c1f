package driver

import (
	"context"
	"errors"
	"strconv"

	"ewb/internal/config"
	"ewb/internal/diag"
	"ewb/internal/fetch"
	"ewb/internal/observ"
	"ewb/internal/source"
	"ewb/internal/trace"
)

// FetchResult is a downloaded page and where it came from.
type FetchResult struct {
	Response *fetch.Response
	Cached   bool
}

// Fetch downloads rawURL through f, consulting cache first when non-nil.
// Cache read and write failures are ignored; the network result wins.
func Fetch(ctx context.Context, f fetch.Fetcher, cache *DiskCache, rawURL string, timer *observ.Timer) (*FetchResult, error) {
	_, span := trace.Start(ctx, trace.ScopePass, "fetch")
	var idx int
	if timer != nil {
		idx = timer.Begin("fetch")
	}
	end := func(res *FetchResult, err error) (*FetchResult, error) {
		var size int64
		note := "error"
		if res != nil {
			size = int64(len(res.Response.Body))
			note = strconv.Itoa(res.Response.Status)
			if res.Cached {
				note += " cached"
			}
		}
		if timer != nil {
			timer.EndBytes(idx, size, note)
		}
		span.WithExtra("url", rawURL).WithInt("bytes", size)
		if err != nil {
			span.EndErr(err)
		} else {
			span.End(note)
		}
		return res, err
	}

	if resp, ok, err := cache.Get(rawURL); err == nil && ok {
		return end(&FetchResult{Response: resp, Cached: true}, nil)
	}
	resp, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return end(nil, err)
	}
	_ = cache.Put(rawURL, resp)
	return end(&FetchResult{Response: resp}, nil)
}

// FetchAndParse downloads rawURL and parses the body. Fetch failures are
// returned as *fetch.FetchError with a nil result.
func FetchAndParse(ctx context.Context, f fetch.Fetcher, cache *DiskCache, rawURL string, cfg config.ParseConfig) (*ParseResult, error) {
	timer := observ.NewTimer()
	fetched, err := Fetch(ctx, f, cache, rawURL, timer)
	if err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	fileID := fs.AddNormalized(rawURL, fetched.Response.Body, source.FileVirtual|source.FileFetched)
	return parseFile(ctx, fs, fs.Get(fileID), cfg, timer)
}

// FetchDiagnostic converts a fetch failure into a diagnostic for the CLI.
func FetchDiagnostic(err error) (diag.Diagnostic, bool) {
	var fe *fetch.FetchError
	if !errors.As(err, &fe) {
		return diag.Diagnostic{}, false
	}
	return diag.NewError(fetchCode(fe.Kind), source.Span{}, fe.Error()), true
}

func fetchCode(kind fetch.Kind) diag.Code {
	switch kind {
	case fetch.KindStatus:
		return diag.FetchBadStatus
	case fetch.KindUnsupportedScheme, fetch.KindUnsupportedEncoding, fetch.KindInvalidURL:
		return diag.FetchUnsupported
	case fetch.KindTooLarge:
		return diag.FetchBodyTruncated
	case fetch.KindCharset:
		return diag.FetchCharsetUnknown
	default:
		return diag.FetchFailed
	}
}
