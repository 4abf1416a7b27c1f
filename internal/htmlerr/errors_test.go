package htmlerr

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestErrorsIsByKind(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		invalid   bool
		exhausted bool
	}{
		{"invalid", Invalid("parse", nil), true, false},
		{"exhausted", Exhausted("parse", "max_depth", 512), false, true},
		{"wrapped invalid", fmt.Errorf("load page: %w", Invalid("parse", io.EOF)), true, false},
		{"plain", io.EOF, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, ErrInvalidInput); got != tt.invalid {
				t.Errorf("errors.Is(ErrInvalidInput) = %v, want %v", got, tt.invalid)
			}
			if got := errors.Is(tt.err, ErrResourceExhausted); got != tt.exhausted {
				t.Errorf("errors.Is(ErrResourceExhausted) = %v, want %v", got, tt.exhausted)
			}
		})
	}
}

func TestErrorUnwrapsCause(t *testing.T) {
	err := fmt.Errorf("outer: %w", Invalid("load", io.ErrUnexpectedEOF))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("cause must stay reachable through errors.Is")
	}
	if KindOf(err) != InvalidInput {
		t.Errorf("KindOf = %v", KindOf(err))
	}
	if KindOf(io.EOF) != 0 {
		t.Errorf("KindOf(non-htmlerr) must be 0")
	}
}

func TestErrorMessage(t *testing.T) {
	got := Exhausted("parse", "max_depth", 4).Error()
	want := "parse: resource exhausted: max_depth limit 4 exceeded"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
