package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ewb/internal/diagfmt"
	"ewb/internal/driver"
)

func newTokenizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] FILE|-",
		Short: "Print the token stream of an HTML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenize(cmd, a, args[0])
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, a *app, arg string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	var res *driver.TokenizeResult
	if arg == "-" {
		content, readErr := io.ReadAll(io.LimitReader(cmd.InOrStdin(), a.cfg.Parse.MaxInputBytes+1))
		if readErr != nil {
			return fmt.Errorf("read stdin: %w", readErr)
		}
		res = driver.TokenizeBytes("<stdin>", content, a.cfg.Parse)
	} else {
		res, err = driver.Tokenize(arg, a.cfg.Parse)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
	}

	// Диагностики лексера идут в stderr, токены в stdout
	a.printDiagnostics(cmd.ErrOrStderr(), res.Bag, res.FileSet)

	switch format {
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), res.Tokens)
	default:
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), res.Tokens, res.FileSet)
	}
}
