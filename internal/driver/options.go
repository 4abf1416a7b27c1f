package driver

import (
	"ewb/internal/config"
	"ewb/internal/diag"
	"ewb/internal/fetch"
	"ewb/internal/treebuilder"
)

// BuilderOptions maps the [parse] section onto tree builder options.
func BuilderOptions(cfg config.ParseConfig, r diag.Reporter) treebuilder.Options {
	return treebuilder.Options{
		Reporter:       r,
		MaxInputBytes:  cfg.MaxInputBytes,
		MaxDepth:       cfg.MaxDepth,
		MaxNodes:       cfg.MaxNodes,
		MaxTokenLength: cfg.MaxTokenLength,
		KeepComments:   cfg.KeepComments,
		KeepDoctype:    cfg.KeepDoctype,
		NormalizeNFC:   cfg.NormalizeNFC,
	}
}

// FetchOptions maps the [fetch] section onto HTTP fetcher options.
func FetchOptions(cfg config.FetchConfig) fetch.Options {
	return fetch.Options{
		UserAgent:    cfg.UserAgent,
		Timeout:      cfg.Timeout.Duration,
		MaxBodyBytes: cfg.MaxBodyBytes,
	}
}
