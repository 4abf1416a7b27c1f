package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ewb/internal/config"
	"ewb/internal/diag"
	"ewb/internal/diagfmt"
	"ewb/internal/driver"
	"ewb/internal/observ"
	"ewb/internal/source"
)

// app holds the state every subcommand shares once flags are parsed.
type app struct {
	cfg      config.Config
	useColor bool
	quiet    bool
	timings  bool
	cleanups []func()
}

func (a *app) setup(cmd *cobra.Command) error {
	root := cmd.Root().PersistentFlags()

	configPath, err := root.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	a.cfg, err = config.Resolve(configPath, ".")
	if err != nil {
		return err
	}
	if root.Changed("max-diagnostics") {
		n, err := root.GetInt("max-diagnostics")
		if err != nil {
			return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		if n < 0 {
			return fmt.Errorf("--max-diagnostics must not be negative")
		}
		if n > 0 {
			a.cfg.Parse.MaxDiagnostics = n
		}
	}

	colorFlag, err := root.GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		a.useColor = true
	case "off":
		a.useColor = false
	case "auto":
		a.useColor = isTerminal(os.Stderr)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
	if a.quiet, err = root.GetBool("quiet"); err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if a.timings, err = root.GetBool("timings"); err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	stopProf, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	a.cleanups = append(a.cleanups, stopProf)
	stopTrace, err := setupTracing(cmd)
	if err != nil {
		a.cleanup()
		return err
	}
	a.cleanups = append(a.cleanups, stopTrace)
	return nil
}

// cleanup runs registered cleanups in reverse order, once.
func (a *app) cleanup() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	a.cleanups = nil
}

// printDiagnostics пишет диагностики в stderr; в режиме --quiet только ошибки.
func (a *app) printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	if a.quiet && !bag.HasErrors() {
		return
	}
	bag.Sort()
	out := bag
	if a.quiet {
		out = diag.NewBag(bag.Len())
		for _, d := range bag.Items() {
			if d.Severity >= diag.SevError {
				out.Add(d)
			}
		}
	}
	if err := diagfmt.Pretty(w, out, fs, diagfmt.PrettyOpts{Color: a.useColor, ShowNotes: true}); err != nil {
		fmt.Fprintf(w, "failed to print diagnostics: %v\n", err)
	}
}

// printTimings печатает таблицу фаз, если задан --timings.
// При asJSON фазы уходят как OBS6001 диагностика в JSON-виде.
func (a *app) printTimings(w io.Writer, timer *observ.Timer, kind, path string, asJSON bool) {
	if !a.timings || timer == nil {
		return
	}
	if !asJSON {
		fmt.Fprint(w, timer.Summary())
		return
	}
	bag := diag.NewBag(1)
	driver.AppendTimings(bag, kind, path, timer)
	if err := diagfmt.JSON(w, bag, nil, diagfmt.JSONOpts{}); err != nil {
		fmt.Fprintf(w, "failed to print timings: %v\n", err)
	}
}
