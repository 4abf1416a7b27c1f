package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ewb/internal/version"
)

// newRootCmd wires every subcommand and the persistent flags onto a fresh
// command tree so tests can run it in isolation. The returned cleanup stops
// tracing and profiling; cobra skips PersistentPostRun when a command fails.
func newRootCmd() (*cobra.Command, func()) {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "ewb",
		Short:         "Fetch, parse and query HTML documents",
		Long:          `ewb tokenizes and parses HTML into a tree, recovering from malformed markup, and extracts text nodes or elements by tag`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.cleanup()
		},
	}

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "print errors only")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 0, "maximum number of diagnostics to keep (0 uses config)")
	pf.String("config", "", "path to ewb.toml (default: search upward from the working directory)")
	pf.String("trace", "", "write trace events to file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept in ring mode")
	pf.String("cpuprofile", "", "write CPU profile to file")
	pf.String("memprofile", "", "write heap profile to file")
	pf.String("runtime-trace", "", "write Go runtime trace to file")

	rootCmd.AddCommand(
		newTokenizeCmd(a),
		newParseCmd(a),
		newTextCmd(a),
		newNodesCmd(a),
		newFetchCmd(a),
		newVersionCmd(),
	)
	return rootCmd, a.cleanup
}

func main() {
	rootCmd, cleanup := newRootCmd()
	err := rootCmd.ExecuteContext(context.Background())
	cleanup()
	if err != nil {
		if !errors.Is(err, errAlreadyReported) {
			rootCmd.PrintErrln("error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
