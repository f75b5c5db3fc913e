package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"serde-generator/internal/analyze"
	"serde-generator/internal/config"
	"serde-generator/internal/diagnostic"
	"serde-generator/internal/plan"
)

// commonFlags are shared by the commands that load packages.
type commonFlags struct {
	dir        string
	configPath string
	verbose    bool
	workers    int
	suffix     string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.dir, "C", "", "Run as if started in this directory")
	fs.StringVar(&c.configPath, "config", config.FileName, "Path to configuration file (optional)")
	fs.BoolVar(&c.verbose, "v", false, "Verbose output")
	fs.IntVar(&c.workers, "workers", 0, "Override the number of resolver workers")
	fs.StringVar(&c.suffix, "suffix", "", "Override the generated file suffix")
}

// path resolves p against -C.
func (c *commonFlags) path(p string) string {
	if c.dir == "" || filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(c.dir, p)
}

// newLogger builds a development logger for -v and a production logger
// otherwise.
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}

	log, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(w, "logger unavailable: %v\n", err)
		return zap.NewNop()
	}

	return log
}

// session is one load-and-resolve run.
type session struct {
	cfg   *config.File
	graph *analyze.TypeGraph
	plan  *plan.GenerationPlan
	log   *zap.Logger
}

// load reads the configuration, loads the packages and resolves every
// annotated type. Configuration problems are merged into the plan's
// diagnostics.
func load(ctx context.Context, flags *commonFlags, patterns []string, log *zap.Logger) (*session, error) {
	cfg, err := config.LoadOptional(flags.path(flags.configPath))
	if err != nil {
		return nil, err
	}

	if len(patterns) > 0 {
		cfg.Packages = patterns
	}

	if flags.workers > 0 {
		cfg.Generation.Workers = flags.workers
	}

	if flags.suffix != "" {
		cfg.Generation.OutputSuffix = flags.suffix
	}

	analyzer := analyze.NewAnalyzer()
	analyzer.Dir = flags.dir
	analyzer.GeneratedSuffix = cfg.Generation.OutputSuffix

	log.Debug("loading packages", zap.Strings("patterns", cfg.Packages))

	graph, err := analyzer.LoadPackages(cfg.Packages...)
	if err != nil {
		return nil, errors.Wrap(err, "loading packages")
	}

	cfgDiags := config.Validate(cfg, graph)

	r := plan.NewResolver(graph, plan.OptionsFromConfig(cfg, graph, log))

	p, err := r.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	p.Diagnostics.Merge(*cfgDiags)
	p.Diagnostics.Sort()

	log.Debug("resolved",
		zap.Int("units", len(p.Units)),
		zap.Int("errors", len(p.Diagnostics.Errors)),
		zap.Int("warnings", len(p.Diagnostics.Warnings)))

	return &session{cfg: cfg, graph: graph, plan: p, log: log}, nil
}

// printDiagnostics writes errors and warnings, and infos when verbose.
func printDiagnostics(w io.Writer, d *diagnostic.Diagnostics, verbose bool) {
	for _, diag := range d.All() {
		if diag.Severity == diagnostic.DiagnosticInfo && !verbose {
			continue
		}

		fmt.Fprintf(w, "%s: %s\n", diag.Severity, diag)
	}
}
