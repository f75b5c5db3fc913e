package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"serde-generator/internal/config"
	"serde-generator/internal/gen"
	"serde-generator/internal/plan"
)

type cli struct {
	stdout io.Writer
	stderr io.Writer
}

func (c *cli) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)

	return fs
}

// fail prints err and returns the exit code for failed runs.
func (c *cli) fail(msg string, err error) int {
	fmt.Fprintf(c.stderr, "%s: %v\n", msg, err)
	return 1
}

func (c *cli) genCmd(args []string) int {
	var flags commonFlags

	fs := c.flagSet("gen")
	flags.register(fs)
	dryRun := fs.Bool("dry-run", false, "Print generated code instead of writing files")
	keep := fs.Bool("keep-unformatted", false, "Keep template output that fails to format")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	log := newLogger(flags.verbose, c.stderr)
	defer func() { _ = log.Sync() }()

	s, err := load(context.Background(), &flags, fs.Args(), log)
	if err != nil {
		return c.fail("Generation failed", err)
	}

	printDiagnostics(c.stderr, &s.plan.Diagnostics, flags.verbose)

	g := gen.NewGenerator(gen.Config{
		OutputSuffix:    s.cfg.Generation.OutputSuffix,
		KeepUnformatted: *keep,
	}, s.graph, log)

	files, err := g.Generate(s.plan)
	if err != nil {
		return c.fail("Generation failed", err)
	}

	if *dryRun {
		for _, f := range files {
			fmt.Fprintf(c.stdout, "// %s\n%s\n", f.Path(), f.Content)
		}
	} else {
		if err := gen.WriteFiles(files); err != nil {
			return c.fail("Writing files failed", err)
		}

		for _, f := range files {
			log.Info("wrote", zap.String("file", f.Path()))
			fmt.Fprintf(c.stdout, "wrote %s\n", f.Path())
		}
	}

	if s.plan.Diagnostics.HasErrors() {
		fmt.Fprintf(c.stderr, "%d error(s); packages with errors were not generated\n",
			len(s.plan.Diagnostics.Errors))

		return 1
	}

	return 0
}

func (c *cli) checkCmd(args []string) int {
	var flags commonFlags

	fs := c.flagSet("check")
	flags.register(fs)

	if err := fs.Parse(args); err != nil {
		return 2
	}

	log := newLogger(flags.verbose, c.stderr)
	defer func() { _ = log.Sync() }()

	s, err := load(context.Background(), &flags, fs.Args(), log)
	if err != nil {
		return c.fail("Check failed", err)
	}

	printDiagnostics(c.stderr, &s.plan.Diagnostics, flags.verbose)

	files, err := gen.NewGenerator(gen.Config{OutputSuffix: s.cfg.Generation.OutputSuffix}, s.graph, log).
		Generate(s.plan)
	if err != nil {
		return c.fail("Check failed", err)
	}

	stale, err := gen.Stale(files)
	if err != nil {
		return c.fail("Check failed", err)
	}

	for _, path := range stale {
		fmt.Fprintf(c.stderr, "stale: %s\n", path)
	}

	if s.plan.Diagnostics.HasErrors() || len(stale) > 0 {
		return 1
	}

	fmt.Fprintln(c.stdout, "ok")

	return 0
}

func (c *cli) planCmd(args []string) int {
	var flags commonFlags

	fs := c.flagSet("plan")
	flags.register(fs)
	format := fs.String("format", "yaml", "Output format: yaml or spew")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	log := newLogger(flags.verbose, c.stderr)
	defer func() { _ = log.Sync() }()

	s, err := load(context.Background(), &flags, fs.Args(), log)
	if err != nil {
		return c.fail("Planning failed", err)
	}

	switch *format {
	case "yaml":
		out, err := plan.ExportYAML(s.plan)
		if err != nil {
			return c.fail("Planning failed", err)
		}

		_, _ = c.stdout.Write(out)
	case "spew":
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
		cfg.Fdump(c.stdout, plan.Export(s.plan))
	default:
		fmt.Fprintf(c.stderr, "unknown format %q\n", *format)
		return 2
	}

	if s.plan.Diagnostics.HasErrors() {
		return 1
	}

	return 0
}

func (c *cli) initCmd(args []string) int {
	fs := c.flagSet("init")
	path := fs.String("config", config.FileName, "Path of the configuration file to write")
	force := fs.Bool("force", false, "Overwrite existing configuration file")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if !*force {
		if _, err := os.Stat(*path); err == nil {
			fmt.Fprintf(c.stderr, "Configuration file %s already exists. Use -force to overwrite.\n", *path)
			return 1
		}
	}

	if err := config.WriteFile(config.Default(), *path); err != nil {
		return c.fail("Failed to create config file", err)
	}

	fmt.Fprintf(c.stdout, "wrote %s\n", *path)

	return 0
}
