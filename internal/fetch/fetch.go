// Package fetch downloads documents over HTTP for the parser. It hands back
// UTF-8 bytes or a *FetchError and knows nothing about HTML structure.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
)

// Fetcher is the collaborator the driver depends on; tests substitute it.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Response, error)
}

type Response struct {
	URL         string // после редиректов
	Status      int
	ContentType string
	Charset     string // исходная кодировка тела
	Body        []byte // всегда UTF-8
}

type Options struct {
	UserAgent    string
	Timeout      time.Duration // 0 — без таймаута помимо ctx
	MaxBodyBytes int64         // 0 — DefaultMaxBodyBytes
	// Transport overrides http.DefaultTransport; nil keeps the default.
	Transport http.RoundTripper
}

const (
	DefaultUserAgent    = "Mozilla/5.0"
	DefaultMaxBodyBytes = 32 << 20
)

// HTTPFetcher fetches with net/http and keeps cookies between calls.
// It is safe for concurrent use.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
	maxBody   int64
}

func NewHTTPFetcher(opts Options) (*HTTPFetcher, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	f := &HTTPFetcher{
		client:    &http.Client{Jar: jar, Transport: opts.Transport},
		userAgent: opts.UserAgent,
		timeout:   opts.Timeout,
		maxBody:   opts.MaxBodyBytes,
	}
	if f.userAgent == "" {
		f.userAgent = DefaultUserAgent
	}
	if f.maxBody <= 0 {
		f.maxBody = DefaultMaxBodyBytes
	}
	return f, nil
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	u, err := checkURL(rawURL)
	if err != nil {
		return nil, err
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, newError(KindInvalidURL, rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classify(ctx, rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &FetchError{Kind: KindStatus, URL: rawURL, Status: resp.StatusCode}
	}
	// gzip, запрошенный самим транспортом, уже распакован и заголовок снят
	if enc := resp.Header.Get("Content-Encoding"); enc != "" && !strings.EqualFold(enc, "identity") {
		return nil, newError(KindUnsupportedEncoding, rawURL, fmt.Errorf("content-encoding %q", enc))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, classify(ctx, rawURL, err)
	}
	if int64(len(raw)) > f.maxBody {
		return nil, newError(KindTooLarge, rawURL, fmt.Errorf("body exceeds %d bytes", f.maxBody))
	}

	contentType := resp.Header.Get("Content-Type")
	body, name, err := toUTF8(raw, contentType)
	if err != nil {
		return nil, newError(KindCharset, rawURL, err)
	}
	return &Response{
		URL:         resp.Request.URL.String(),
		Status:      resp.StatusCode,
		ContentType: contentType,
		Charset:     name,
		Body:        body,
	}, nil
}

func checkURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, newError(KindInvalidURL, rawURL, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	case "":
		return nil, newError(KindInvalidURL, rawURL, errors.New("missing scheme"))
	default:
		return nil, newError(KindUnsupportedScheme, rawURL, fmt.Errorf("scheme %q", u.Scheme))
	}
	if u.Host == "" {
		return nil, newError(KindInvalidURL, rawURL, errors.New("missing host"))
	}
	return u, nil
}

func classify(ctx context.Context, rawURL string, err error) *FetchError {
	var dnsErr *net.DNSError
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return newError(KindTimeout, rawURL, err)
	case errors.Is(err, context.Canceled):
		return newError(KindCanceled, rawURL, err)
	case errors.As(err, &dnsErr):
		return newError(KindDNS, rawURL, err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return newError(KindTimeout, rawURL, err)
	default:
		return newError(KindTransport, rawURL, err)
	}
}

// toUTF8 transcodes by Content-Type, <meta charset> or content sniffing.
func toUTF8(raw []byte, contentType string) ([]byte, string, error) {
	enc, name, _ := charset.DetermineEncoding(raw, contentType)
	if name == "utf-8" {
		return bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf")), name, nil
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, name, fmt.Errorf("decode %s: %w", name, err)
	}
	return out, name, nil
}
