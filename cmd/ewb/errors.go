package main

import (
	"errors"

	"ewb/internal/diag"
)

// errAlreadyReported means diagnostics were printed; main only sets the exit code.
var errAlreadyReported = errors.New("failed")

func bagOf(ds ...diag.Diagnostic) *diag.Bag {
	bag := diag.NewBag(len(ds))
	for _, d := range ds {
		bag.Add(d)
	}
	return bag
}
