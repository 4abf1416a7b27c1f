// Package ewb is the public face of the toolkit: load HTML into a tree,
// fetch a page over HTTP, and pull text nodes or elements out of the tree.
//
//	root, err := ewb.Load(`<p>Hello <b>world</b></p>`)
//	for _, n := range ewb.FindTextNodes(root) {
//		fmt.Println(n.Data())
//	}
package ewb

import (
	"context"
	"errors"
	"time"

	"ewb/internal/config"
	"ewb/internal/diag"
	"ewb/internal/dom"
	"ewb/internal/driver"
	"ewb/internal/fetch"
	"ewb/internal/htmlerr"
	"ewb/internal/source"
)

// Node is a read-only handle to an element, text, comment or doctype node.
type Node = dom.Node

// FetchError describes why Request could not return a body.
type FetchError = fetch.FetchError

var (
	// ErrInvalidInput matches parse failures caused by absent or empty input.
	ErrInvalidInput = htmlerr.ErrInvalidInput
	// ErrResourceExhausted matches parse failures caused by a size, depth or node limit.
	ErrResourceExhausted = htmlerr.ErrResourceExhausted
)

// Warning is a recovered anomaly in the markup, reported through OnWarning.
type Warning struct {
	Code    string // e.g. "TRE2001"
	Message string
	Line    uint32 // 1-based, 0 when unknown
	Col     uint32
}

type options struct {
	parse     config.ParseConfig
	fetch     config.FetchConfig
	onWarning func(Warning)
}

// Option tunes Load and Request.
type Option func(*options)

func defaults() options {
	cfg := config.Default()
	return options{parse: cfg.Parse, fetch: cfg.Fetch}
}

// KeepComments retains comments as comment nodes.
func KeepComments() Option { return func(o *options) { o.parse.KeepComments = true } }

// KeepDoctype retains the doctype as a node under the root.
func KeepDoctype() Option { return func(o *options) { o.parse.KeepDoctype = true } }

// NormalizeNFC folds text and attribute values to Unicode NFC.
func NormalizeNFC() Option { return func(o *options) { o.parse.NormalizeNFC = true } }

// MaxDepth limits element nesting.
func MaxDepth(n uint) Option { return func(o *options) { o.parse.MaxDepth = n } }

// MaxNodes limits the number of nodes in the tree.
func MaxNodes(n uint) Option { return func(o *options) { o.parse.MaxNodes = n } }

// MaxInputBytes limits the document size.
func MaxInputBytes(n int64) Option { return func(o *options) { o.parse.MaxInputBytes = n } }

// UserAgent sets the User-Agent header used by Request.
func UserAgent(ua string) Option { return func(o *options) { o.fetch.UserAgent = ua } }

// Timeout bounds a Request; 0 leaves only the context deadline.
func Timeout(d time.Duration) Option { return func(o *options) { o.fetch.Timeout = config.Duration{Duration: d} } }

// OnWarning receives every recovered anomaly after the parse finishes.
func OnWarning(fn func(Warning)) Option { return func(o *options) { o.onWarning = fn } }

func build(opts []Option) options {
	o := defaults()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Load parses body and returns the document root.
// It fails only with ErrInvalidInput or ErrResourceExhausted; malformed
// markup is recovered from.
func Load(body string, opts ...Option) (Node, error) {
	return LoadBytes([]byte(body), opts...)
}

// LoadBytes is Load for a byte slice.
func LoadBytes(body []byte, opts ...Option) (Node, error) {
	o := build(opts)
	if o.onWarning != nil {
		// предупреждения не должны теряться из-за лимитов Bag
		o.parse.MaxDiagnostics = 1 << 16
		o.parse.MaxPerCode = 0
	}
	res, err := driver.ParseBytes(context.Background(), "<input>", body, o.parse)
	if res != nil && o.onWarning != nil {
		for _, d := range res.Bag.Items() {
			if d.Severity >= diag.SevError {
				continue
			}
			w := Warning{Code: d.Code.ID(), Message: d.Message}
			if d.Primary != (source.Span{}) {
				start, _ := res.FileSet.Resolve(d.Primary)
				w.Line, w.Col = start.Line, start.Col
			}
			o.onWarning(w)
		}
	}
	if err != nil {
		return Node{}, err
	}
	return res.Root(), nil
}

// Request fetches rawURL and returns the body decoded to UTF-8.
// Failures are *FetchError.
func Request(ctx context.Context, rawURL string, opts ...Option) (string, error) {
	o := build(opts)
	f, err := fetch.NewHTTPFetcher(driver.FetchOptions(o.fetch))
	if err != nil {
		return "", err
	}
	resp, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}
	return string(resp.Body), nil
}

// FindTextNodes returns every text node below node in document order.
func FindTextNodes(node Node) []Node {
	return node.GetTextNodes()
}

// FindNodes returns every element below node whose tag matches tag,
// ignoring case.
func FindNodes(node Node, tag string) []Node {
	return node.GetNodes(tag)
}

// IsFetchError reports whether err came from Request.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
