package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"ewb/internal/dom"
	"ewb/internal/trace"
)

func newTextCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "text [flags] FILE|URL|-",
		Short: "Print every text node in document order, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runText(cmd, a, args[0])
		},
	}
	cmd.Flags().Bool("skip-whitespace", false, "drop whitespace-only text nodes (default from config)")
	cmd.Flags().Bool("quote", false, "print each text as a Go-quoted string")
	return cmd
}

func runText(cmd *cobra.Command, a *app, arg string) error {
	skip := a.cfg.Query.SkipWhitespaceText
	if cmd.Flags().Changed("skip-whitespace") {
		v, err := cmd.Flags().GetBool("skip-whitespace")
		if err != nil {
			return fmt.Errorf("failed to get skip-whitespace flag: %w", err)
		}
		skip = v
	}
	quote, err := cmd.Flags().GetBool("quote")
	if err != nil {
		return fmt.Errorf("failed to get quote flag: %w", err)
	}

	res, err := loadDocument(cmd.Context(), a, cmd.InOrStdin(), arg)
	if err := a.reportLoad(cmd.ErrOrStderr(), res, err); err != nil {
		return err
	}

	_, span := trace.Start(cmd.Context(), trace.ScopePass, "query")
	idx := res.Timer.Begin("query")
	nodes := res.Root().TextNodesWith(dom.TextOptions{SkipWhitespace: skip})
	res.Timer.End(idx, fmt.Sprintf("%d text nodes", len(nodes)))
	span.WithInt("matches", int64(len(nodes))).End("")
	a.printTimings(cmd.ErrOrStderr(), res.Timer, "text", arg, false)

	w := bufio.NewWriter(cmd.OutOrStdout())
	for _, n := range nodes {
		if quote {
			fmt.Fprintf(w, "%q\n", n.Data())
		} else {
			fmt.Fprintln(w, n.Data())
		}
	}
	return w.Flush()
}
