package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ewb/internal/driver"
	"ewb/internal/observ"
)

func newFetchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch [flags] URL",
		Short: "Download a page and print its body decoded to UTF-8",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, a, args)
		},
	}
	cmd.Flags().Bool("no-cache", false, "bypass the page cache")
	cmd.Flags().Bool("drop-cache", false, "remove every cached page before fetching")
	cmd.Flags().Bool("head", false, "print status and headers summary instead of the body")
	return cmd
}

func runFetch(cmd *cobra.Command, a *app, args []string) error {
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	dropCache, err := cmd.Flags().GetBool("drop-cache")
	if err != nil {
		return fmt.Errorf("failed to get drop-cache flag: %w", err)
	}
	head, err := cmd.Flags().GetBool("head")
	if err != nil {
		return fmt.Errorf("failed to get head flag: %w", err)
	}
	if noCache {
		a.cfg.Fetch.Cache = false
	}

	if dropCache {
		cfg := a.cfg.Fetch
		cfg.Cache = true
		cache, err := openCache(cfg)
		if err != nil {
			return err
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("drop cache: %w", err)
		}
		if len(args) == 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "cache cleared: %s\n", cache.Dir())
			return nil
		}
	}
	if len(args) == 0 {
		return fmt.Errorf("fetch requires a URL")
	}
	rawURL := args[0]
	if !isURL(rawURL) {
		return fmt.Errorf("not an http(s) URL: %s", rawURL)
	}

	f, err := newFetcher(a.cfg.Fetch)
	if err != nil {
		return err
	}
	cache, err := openCache(a.cfg.Fetch)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: page cache disabled: %v\n", err)
		cache = nil
	}

	timer := observ.NewTimer()
	res, err := driver.Fetch(cmd.Context(), f, cache, rawURL, timer)
	if err != nil {
		if d, ok := driver.FetchDiagnostic(err); ok {
			a.printDiagnostics(cmd.ErrOrStderr(), bagOf(d), nil)
			return errAlreadyReported
		}
		return err
	}
	a.printTimings(cmd.ErrOrStderr(), timer, "fetch", rawURL, false)

	out := cmd.OutOrStdout()
	if head {
		var sb strings.Builder
		fmt.Fprintf(&sb, "url:          %s\n", res.Response.URL)
		fmt.Fprintf(&sb, "status:       %d\n", res.Response.Status)
		fmt.Fprintf(&sb, "content-type: %s\n", res.Response.ContentType)
		fmt.Fprintf(&sb, "charset:      %s\n", res.Response.Charset)
		fmt.Fprintf(&sb, "bytes:        %d\n", len(res.Response.Body))
		fmt.Fprintf(&sb, "cached:       %t\n", res.Cached)
		_, err := fmt.Fprint(out, sb.String())
		return err
	}
	_, err = out.Write(res.Response.Body)
	return err
}
