package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ewb/internal/diagfmt"
	"ewb/internal/dom"
	"ewb/internal/trace"
)

func newNodesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nodes [flags] TAG FILE|URL|-",
		Short: "Print every element with the given tag name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNodes(cmd, a, args[0], args[1])
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|text|json)")
	cmd.Flags().Bool("prune", false, "do not report matches nested inside another match")
	cmd.Flags().String("attr", "", "print only this attribute of each match")
	return cmd
}

func runNodes(cmd *cobra.Command, a *app, tag, arg string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "pretty", "text", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	prune, err := cmd.Flags().GetBool("prune")
	if err != nil {
		return fmt.Errorf("failed to get prune flag: %w", err)
	}
	attr, err := cmd.Flags().GetString("attr")
	if err != nil {
		return fmt.Errorf("failed to get attr flag: %w", err)
	}

	res, err := loadDocument(cmd.Context(), a, cmd.InOrStdin(), arg)
	if err := a.reportLoad(cmd.ErrOrStderr(), res, err); err != nil {
		return err
	}

	_, span := trace.Start(cmd.Context(), trace.ScopePass, "query")
	idx := res.Timer.Begin("query")
	matches := res.Root().NodesWith(tag, dom.NodesOptions{Prune: prune})
	res.Timer.End(idx, fmt.Sprintf("%d <%s>", len(matches), strings.ToLower(tag)))
	span.WithExtra("tag", tag).WithInt("matches", int64(len(matches))).End("")
	a.printTimings(cmd.ErrOrStderr(), res.Timer, "nodes", arg, format == "json")

	out := cmd.OutOrStdout()
	if attr != "" {
		w := bufio.NewWriter(out)
		for _, n := range matches {
			if v, ok := n.Attr(attr); ok {
				fmt.Fprintln(w, v)
			}
		}
		return w.Flush()
	}
	switch format {
	case "json":
		outputs := make([]diagfmt.NodeOutput, 0, len(matches))
		for _, n := range matches {
			outputs = append(outputs, diagfmt.BuildNodeOutput(n))
		}
		return writeJSON(out, outputs)
	case "text":
		w := bufio.NewWriter(out)
		for _, n := range matches {
			fmt.Fprintln(w, n.Text())
		}
		return w.Flush()
	default:
		for _, n := range matches {
			if err := diagfmt.FormatTreePretty(out, n, res.FileSet, diagfmt.TreeOpts{}); err != nil {
				return err
			}
		}
		return nil
	}
}
