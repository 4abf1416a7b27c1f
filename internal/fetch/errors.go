package fetch

import (
	"fmt"
)

// Kind classifies a failed fetch.
type Kind uint8

const (
	KindInvalidURL Kind = iota + 1
	KindUnsupportedScheme
	KindTimeout
	KindCanceled
	KindDNS
	KindTransport
	KindStatus
	KindUnsupportedEncoding
	KindTooLarge
	KindCharset
)

func (k Kind) String() string {
	switch k {
	case KindInvalidURL:
		return "invalid url"
	case KindUnsupportedScheme:
		return "unsupported scheme"
	case KindTimeout:
		return "timeout"
	case KindCanceled:
		return "canceled"
	case KindDNS:
		return "dns"
	case KindTransport:
		return "transport"
	case KindStatus:
		return "bad status"
	case KindUnsupportedEncoding:
		return "unsupported encoding"
	case KindTooLarge:
		return "body too large"
	case KindCharset:
		return "charset"
	default:
		return "unknown"
	}
}

// FetchError is the only error type Fetch returns.
type FetchError struct {
	Kind   Kind
	URL    string
	Status int // HTTP status for KindStatus, иначе 0
	Err    error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" %d", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.Err }

func newError(kind Kind, url string, err error) *FetchError {
	return &FetchError{Kind: kind, URL: url, Err: err}
}
