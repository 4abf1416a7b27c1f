package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ewb/internal/diagfmt"
	"ewb/internal/driver"
)

func newParseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] FILE|DIR|URL|-",
		Short: "Build the document tree and print it",
		Long: `Parse builds the document tree, recovering from malformed markup, and prints it.
Given a directory, every *.html and *.htm file below it is parsed in parallel
and only the diagnostics and a per-file summary are printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, a, args[0])
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("spans", false, "show source positions of nodes")
	cmd.Flags().Bool("keep-comments", false, "keep comment nodes in the tree")
	cmd.Flags().Bool("keep-doctype", false, "keep the doctype node in the tree")
	cmd.Flags().Int("jobs", 0, "max parallel files for directories (0=auto)")
	cmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	return cmd
}

func runParse(cmd *cobra.Command, a *app, arg string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	showSpans, err := cmd.Flags().GetBool("spans")
	if err != nil {
		return fmt.Errorf("failed to get spans flag: %w", err)
	}
	if err := a.applyParseFlags(cmd); err != nil {
		return err
	}

	if arg != "-" && !isURL(arg) {
		if st, statErr := os.Stat(arg); statErr == nil && st.IsDir() {
			return runParseDir(cmd, a, arg, format)
		}
	}

	res, err := loadDocument(cmd.Context(), a, cmd.InOrStdin(), arg)
	if err := a.reportLoad(cmd.ErrOrStderr(), res, err); err != nil {
		return err
	}
	a.printTimings(cmd.ErrOrStderr(), res.Timer, "parse", arg, format == "json")

	out := cmd.OutOrStdout()
	if format == "json" {
		return diagfmt.FormatTreeJSON(out, res.Root())
	}
	return diagfmt.FormatTreePretty(out, res.Root(), res.FileSet, diagfmt.TreeOpts{
		Color:     a.useColor && isTerminal(os.Stdout),
		ShowSpans: showSpans,
	})
}

// applyParseFlags переносит флаги --keep-* поверх конфигурации.
func (a *app) applyParseFlags(cmd *cobra.Command) error {
	for _, f := range []struct {
		name string
		dst  *bool
	}{
		{"keep-comments", &a.cfg.Parse.KeepComments},
		{"keep-doctype", &a.cfg.Parse.KeepDoctype},
	} {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		v, err := cmd.Flags().GetBool(f.name)
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", f.name, err)
		}
		*f.dst = v
	}
	return nil
}

type dirSummary struct {
	Path  string `json:"path"`
	Nodes int    `json:"nodes"`
	Depth int    `json:"max_depth"`
	Error string `json:"error,omitempty"`
}

func runParseDir(cmd *cobra.Command, a *app, dir, format string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := parseProgressMode(uiValue)
	if err != nil {
		return err
	}

	opts := driver.ParseDirOptions{Parse: a.cfg.Parse, Jobs: jobs}
	var outcome parseDirOutcome
	if mode.show(cmd.OutOrStdout(), format, a.quiet) {
		outcome = runParseDirWithUI(cmd.Context(), "parsing "+dir, dir, opts)
	} else {
		fs, results, err := driver.ParseDir(cmd.Context(), dir, opts)
		outcome = parseDirOutcome{fileSet: fs, results: results, err: err}
	}
	if outcome.err != nil {
		return outcome.err
	}

	bag := driver.MergeBags(outcome.results, a.cfg.Parse.MaxDiagnostics)
	a.printDiagnostics(cmd.ErrOrStderr(), bag, outcome.fileSet)

	summaries := make([]dirSummary, 0, len(outcome.results))
	for _, r := range outcome.results {
		s := dirSummary{Path: r.Path}
		if r.Result != nil {
			s.Nodes, s.Depth = r.Result.Stats.Nodes, r.Result.Stats.MaxDepth
			a.printTimings(cmd.ErrOrStderr(), r.Result.Timer, "parse", r.Path, format == "json")
		}
		if r.Err != nil {
			s.Error = r.Err.Error()
		}
		summaries = append(summaries, s)
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		if err := writeJSON(out, summaries); err != nil {
			return err
		}
	} else {
		for _, s := range summaries {
			if s.Error != "" {
				fmt.Fprintf(out, "%s: error: %s\n", s.Path, s.Error)
				continue
			}
			fmt.Fprintf(out, "%s: %d nodes, depth %d\n", s.Path, s.Nodes, s.Depth)
		}
	}
	if driver.FirstError(outcome.results) != nil {
		return errAlreadyReported
	}
	return nil
}
