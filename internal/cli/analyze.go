package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/pkgdeps/pkg/config"
	pkgerrors "github.com/matzehuels/pkgdeps/pkg/errors"
	"github.com/matzehuels/pkgdeps/pkg/lockfile"
	"github.com/matzehuels/pkgdeps/pkg/lockfile/formats"
	"github.com/matzehuels/pkgdeps/pkg/match"
	"github.com/matzehuels/pkgdeps/pkg/observability"
	"github.com/matzehuels/pkgdeps/pkg/render"
)

// analyzeOpts holds the analysis settings after flags and config are merged.
type analyzeOpts struct {
	file           string
	format         string
	output         string
	trace          bool
	traceInstances bool
	legacyMatch    bool
	noCache        bool
	interactive    bool
}

// merge fills every option not set on the command line from cfg.
func (o *analyzeOpts) merge(flags *pflag.FlagSet, cfg config.Config) {
	if !flags.Changed("file") {
		o.file = cfg.File
	}
	if !flags.Changed("format") {
		o.format = cfg.Format
	}
	if !flags.Changed("trace") {
		o.trace = cfg.Trace
	}
	if !flags.Changed("trace-instances") {
		o.traceInstances = cfg.TraceInstances
	}
	if !flags.Changed("legacy-match") {
		o.legacyMatch = cfg.LegacyMatch
	}
}

// needsTrace reports whether chains must be computed.
func (o analyzeOpts) needsTrace() bool {
	return o.trace || o.interactive || o.format == config.FormatDOT || o.format == config.FormatSVG
}

// analyzeCommand creates the root analysis command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "pkgdeps <packages...>",
		Short: "Analyze package dependencies and dependents",
		Long: `Analyze what a package depends on and which packages depend on it,
using the resolved dependency data in a pnpm lockfile.

Package arguments may be glob patterns; quote them so the shell does not
expand them. "*" stays within a scope and "**" crosses it.`,
		Example: `  # What does react-dom need, and who uses it?
  pkgdeps react-dom

  # Every package in the @types scope, with full dependent chains
  pkgdeps '@types/*' --trace

  # Diagram of everything that pulls in lodash
  pkgdeps lodash --format svg -o lodash.svg`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			hooks := debugHooks{logger: c.Logger}
			observability.SetDecodeHooks(hooks)
			observability.SetCacheHooks(hooks)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts.merge(cmd.Flags(), cfg)
			if !slices.Contains(config.Formats, opts.format) {
				return pkgerrors.New(pkgerrors.ErrCodeInvalidFormat, "unknown format %q (valid: text, json, dot, svg)", opts.format)
			}
			return c.runAnalyze(cmd.Context(), args, opts, cfg.Cache)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "./pnpm-lock.yaml", "lockfile path")
	cmd.Flags().BoolVarP(&opts.trace, "trace", "t", false, "show complete dependency chains")
	cmd.Flags().StringVar(&opts.format, "format", config.FormatText, "output format: text, json, dot, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write output to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.traceInstances, "trace-instances", false, "expand each resolved version separately when tracing")
	cmd.Flags().BoolVar(&opts.legacyMatch, "legacy-match", false, "skip every entry whose key contains the package name when finding dependents")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the decoded lockfile cache")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse dependency chains interactively")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return config.Formats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// runAnalyze loads the lockfile, expands patterns and writes one report per
// matched package.
func (c *CLI) runAnalyze(ctx context.Context, patterns []string, opts analyzeOpts, cacheCfg config.Cache) error {
	logger := loggerFromContext(ctx)

	path, err := filepath.Abs(opts.file)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidInput, err, "resolve lockfile path")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return pkgerrors.New(pkgerrors.ErrCodeFileNotFound, "Lockfile not found: %s", path)
	}

	store, keyer := c.newCache(ctx, cacheCfg, opts.noCache)
	defer store.Close()

	analyzer, err := formats.New(path, lockfile.Options{
		ExactSelfMatch:  !opts.legacyMatch,
		TraceByInstance: opts.traceInstances,
		Cache:           store,
		Keyer:           keyer,
		CacheTTL:        cacheCfg.TTL.Duration,
		Logger:          logger.Debugf,
	})
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	if err := analyzer.Init(ctx); err != nil {
		return err
	}

	names, err := analyzer.PackageNames()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %s with %d packages", filepath.Base(path), len(names)))

	matched, err := match.Packages(names, patterns)
	if err != nil {
		return err
	}
	if len(matched) == 0 {
		return pkgerrors.New(pkgerrors.ErrCodePackageNotFound, "No matching packages found")
	}
	logger.Debug("matched packages", "count", len(matched))

	reports := make([]render.Report, 0, len(matched))
	var traces []*lockfile.Trace
	for _, name := range matched {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := analyzer.Analyze(name)
		if err != nil {
			return err
		}
		var tr *lockfile.Trace
		if opts.needsTrace() {
			if tr, err = analyzer.TraceDependencyChain(name); err != nil {
				return err
			}
			traces = append(traces, tr)
		}
		if opts.trace {
			reports = append(reports, render.NewReport(res, tr))
		} else {
			reports = append(reports, render.NewReport(res, nil))
		}
	}

	if err := c.writeOutput(ctx, opts, reports, traces); err != nil {
		return err
	}

	if opts.interactive {
		return browseChains(traces)
	}
	return nil
}

// writeOutput renders reports in the selected format to stdout or --output.
func (c *CLI) writeOutput(ctx context.Context, opts analyzeOpts, reports []render.Report, traces []*lockfile.Trace) error {
	w := c.Out
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := writeFormat(ctx, w, opts, reports, traces); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Wrote %s report", opts.format)
		printFile(opts.output)
	}
	return nil
}

func writeFormat(ctx context.Context, w io.Writer, opts analyzeOpts, reports []render.Report, traces []*lockfile.Trace) error {
	switch opts.format {
	case config.FormatJSON:
		return render.JSON(w, reports)
	case config.FormatDOT:
		_, err := io.WriteString(w, render.DOT(traces...))
		return err
	case config.FormatSVG:
		svg, err := render.SVG(ctx, render.DOT(traces...))
		if err != nil {
			return err
		}
		_, err = w.Write(svg)
		return err
	default:
		for i, r := range reports {
			if err := render.Text(w, r.Result); err != nil {
				return err
			}
			if opts.trace {
				if err := render.Chains(w, traces[i]); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

// browseChains opens the interactive chain browser and prints the chain
// selected on exit, if any.
func browseChains(traces []*lockfile.Trace) error {
	model := NewChainListModel(traces)
	if len(model.Rows) == 0 {
		printInfo("No dependency chains to browse")
		return nil
	}

	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("run browser: %w", err)
	}

	if m, ok := final.(ChainListModel); ok && m.Selected != nil {
		printNewline()
		printKeyValue("Target", m.Selected.Target)
		printKeyValue("Chain", render.ChainString(m.Selected.Chain))
		printKeyValue("Depth", fmt.Sprint(len(m.Selected.Chain)))
	}
	return nil
}
