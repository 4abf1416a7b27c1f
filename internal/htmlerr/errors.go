// Package htmlerr defines the hard failures of a parse. Malformed markup is
// never one of them; it is recovered from and reported as diagnostics.
package htmlerr

import (
	"errors"
	"fmt"
)

// Kind distinguishes the two ways a parse can fail.
type Kind uint8

const (
	// InvalidInput: the document is absent or empty.
	InvalidInput Kind = iota + 1
	// ResourceExhausted: a configured size, depth or node limit was hit.
	ResourceExhausted
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case ResourceExhausted:
		return "resource exhausted"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrResourceExhausted = errors.New("resource exhausted")
)

// Error is returned by parse entry points. errors.Is matches it against
// ErrInvalidInput and ErrResourceExhausted by Kind.
type Error struct {
	Kind  Kind
	Op    string // "parse", "load", ...
	Limit string // имя сработавшего лимита, только для ResourceExhausted
	Max   int64
	Err   error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.String()
	if e.Limit != "" {
		msg += fmt.Sprintf(": %s limit %d exceeded", e.Limit, e.Max)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidInput:
		return e.Kind == InvalidInput
	case ErrResourceExhausted:
		return e.Kind == ResourceExhausted
	default:
		return false
	}
}

// Invalid builds an InvalidInput error.
func Invalid(op string, err error) *Error {
	return &Error{Kind: InvalidInput, Op: op, Err: err}
}

// Exhausted builds a ResourceExhausted error for the named limit.
func Exhausted(op, limit string, max int64) *Error {
	return &Error{Kind: ResourceExhausted, Op: op, Limit: limit, Max: max}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
