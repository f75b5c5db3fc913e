package gen

import (
	"bytes"
	"go/format"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"serde-generator/internal/analyze"
	"serde-generator/internal/common"
	"serde-generator/internal/config"
	"serde-generator/internal/plan"
)

// ErrIncompleteUnit is returned when a unit with unresolved codecs is
// rendered.
var ErrIncompleteUnit = errors.New("unit has unresolved codecs")

// Config holds configuration for code generation.
type Config struct {
	// OutputSuffix is appended to the package name to form the file name,
	// e.g. "basic_serde.go".
	OutputSuffix string
	// KeepUnformatted writes the raw template output next to the intended
	// file when it does not parse, for debugging the templates.
	KeepUnformatted bool
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{OutputSuffix: config.DefaultOutputSuffix}
}

// Generator renders a generation plan as Go source.
type Generator struct {
	config Config
	graph  *analyze.TypeGraph
	log    *zap.Logger
}

// NewGenerator creates a Generator. graph supplies declared package names
// and may be nil, in which case the last import path element is used.
func NewGenerator(cfg Config, graph *analyze.TypeGraph, log *zap.Logger) *Generator {
	if cfg.OutputSuffix == "" {
		cfg.OutputSuffix = config.DefaultOutputSuffix
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &Generator{config: cfg, graph: graph, log: log}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// PkgPath is the import path of the package the file belongs to.
	PkgPath string
	// Dir is the directory of that package.
	Dir string
	// Filename is the name of the file, e.g. "basic_serde.go".
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the file's location on disk.
func (f GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Generate renders every complete unit of p. Incomplete units are skipped;
// their errors are in p.Diagnostics.
func (g *Generator) Generate(p *plan.GenerationPlan) ([]GeneratedFile, error) {
	var files []GeneratedFile

	for _, u := range p.Units {
		if !u.Complete() {
			g.log.Warn("skipping package with unresolved types", zap.String("package", u.PkgPath))
			continue
		}

		file, err := g.GenerateUnit(u)
		if err != nil {
			return nil, errors.Wrapf(err, "generating %s", u.PkgPath)
		}

		g.log.Debug("generated",
			zap.String("package", u.PkgPath),
			zap.String("file", file.Filename),
			zap.Int("types", len(u.Types)),
			zap.Int("wrappers", len(u.Wrappers)))

		files = append(files, *file)
	}

	return files, nil
}

// GenerateUnit renders one unit.
func (g *Generator) GenerateUnit(u *plan.Unit) (*GeneratedFile, error) {
	if !u.Complete() {
		return nil, ErrIncompleteUnit
	}

	f := newTypeFormatter(u.PkgPath, g.pkgName)
	data := g.buildFileData(u, f)

	var buf bytes.Buffer
	if err := unitTemplate.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "executing template")
	}

	filename := u.PkgName + g.config.OutputSuffix + ".go"

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.KeepUnformatted {
			if werr := writeDebugUnformatted(u.Dir, filename, buf.Bytes()); werr != nil {
				g.log.Warn("writing unformatted source", zap.Error(werr))
			}
		}

		return nil, errors.Wrap(err, "formatting generated code")
	}

	return &GeneratedFile{
		PkgPath:  u.PkgPath,
		Dir:      u.Dir,
		Filename: filename,
		Content:  formatted,
	}, nil
}

// pkgName returns the declared name of a package.
func (g *Generator) pkgName(pkgPath string) string {
	if g.graph != nil {
		return g.graph.PackageName(pkgPath)
	}

	return common.PkgAlias(pkgPath)
}
