package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// progressMode — значение --ui для parse DIR
type progressMode uint8

const (
	progressAuto progressMode = iota
	progressOn
	progressOff
)

func parseProgressMode(value string) (progressMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return progressAuto, nil
	case "on":
		return progressOn, nil
	case "off":
		return progressOff, nil
	}
	return progressAuto, fmt.Errorf("--ui %q: parse DIR progress must be auto, on or off", value)
}

// show: живой прогресс только поверх pretty-сводки и не в quiet-режиме.
// auto дополнительно требует, чтобы out был терминалом.
func (m progressMode) show(out io.Writer, format string, quiet bool) bool {
	if format != "pretty" || quiet {
		return false
	}
	switch m {
	case progressOn:
		return true
	case progressOff:
		return false
	}
	f, ok := out.(*os.File)
	return ok && isTerminal(f)
}
