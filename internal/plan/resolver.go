package plan

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"serde-generator/internal/analyze"
	"serde-generator/internal/common"
	"serde-generator/internal/config"
	"serde-generator/internal/diagnostic"
	"serde-generator/internal/naming"
)

// Options configures a Resolver.
type Options struct {
	// Workers bounds how many annotated types resolve at once.
	Workers int
	// DefaultNaming applies to types that choose no policy.
	DefaultNaming naming.Policy
	// DenyUnknown makes every type reject unknown wire fields.
	DenyUnknown bool
	// Overrides are the per-type records of serdegen.yaml.
	Overrides config.Overrides
	Logger    *zap.Logger
}

// OptionsFromConfig builds resolver options from a configuration file.
func OptionsFromConfig(f *config.File, graph *analyze.TypeGraph, log *zap.Logger) Options {
	return Options{
		Workers:       f.Generation.Workers,
		DefaultNaming: f.Generation.DefaultNaming,
		DenyUnknown:   f.Generation.DenyUnknown,
		Overrides:     f.Overrides(graph),
		Logger:        log,
	}
}

// Resolver performs the resolution pipeline. A Resolver holds the registries
// of one generation run and is used for a single Resolve call.
type Resolver struct {
	graph *analyze.TypeGraph
	opts  Options
	log   *zap.Logger
	infos *InfoRegistry
	synth *SynthesisRegistry

	mu    sync.Mutex
	units map[string]*Unit
	diags diagnostic.Diagnostics
}

// NewResolver creates a new Resolver.
func NewResolver(graph *analyze.TypeGraph, opts Options) *Resolver {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if opts.Workers <= 0 {
		opts.Workers = config.DefaultWorkers
	}

	return &Resolver{
		graph: graph,
		opts:  opts,
		log:   log,
		infos: NewInfoRegistry(),
		synth: NewSynthesisRegistry(),
		units: make(map[string]*Unit),
	}
}

// Synthesis returns the wrapper registry of the run.
func (r *Resolver) Synthesis() *SynthesisRegistry {
	return r.synth
}

// Resolve plans every annotated type of the graph. User type problems are
// reported in the plan's diagnostics; the error is only set when the run
// itself fails, e.g. because ctx was cancelled.
func (r *Resolver) Resolve(ctx context.Context) (*GenerationPlan, error) {
	if r.graph == nil {
		return nil, errors.New("type graph is required")
	}

	annotated := r.graph.Annotated()

	// Wrapper names must not shadow the helpers of annotated types.
	for _, t := range annotated {
		r.synth.Reserve(t.ID.PkgPath, r.funcName(t.ID.PkgPath, t)+"Wrap")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	for _, t := range annotated {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			r.resolveAnnotated(t)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "resolving types")
	}

	return r.buildPlan(), nil
}

// resolveAnnotated plans one annotated type.
func (r *Resolver) resolveAnnotated(t *analyze.TypeInfo) {
	var diags diagnostic.Diagnostics

	typ := t.ID.String()
	unit := t.ID.PkgPath

	for _, p := range t.Directives.Problems {
		diags.AddError(diagnostic.CodeBadDirective, p, typ, "")
	}

	var codec *Codec

	if t.IsGeneric() {
		diags.AddError(diagnostic.CodeGenericType,
			"generic types cannot be annotated; give each instantiation a wrapper with wrap=", typ, "")

		codec = &Codec{Target: t, Directions: t.Directives.Capability(), FuncName: r.funcName(unit, t), Incomplete: true}
	} else {
		codec = r.buildCodec(unit, t, t.Directives.Capability(), r.funcName(unit, t), &diags)
	}

	codec.Incomplete = codec.Incomplete || diags.HasErrors()

	r.mu.Lock()
	u := r.unit(unit)
	u.Types = append(u.Types, &TypePlan{
		Name:        t.ID.Name,
		Serialize:   t.Directives.Serialize,
		Deserialize: t.Directives.Deserialize,
		Codec:       codec,
	})
	r.diags.Merge(diags)
	r.mu.Unlock()

	r.log.Debug("resolved type",
		zap.Stringer("type", t.ID),
		zap.Stringer("codec", codec.Kind),
		zap.Int("members", len(codec.Members)),
		zap.Bool("complete", !codec.Incomplete))
}

// buildCodec runs the member, naming and adapter stages for t.
func (r *Resolver) buildCodec(
	unit string,
	t *analyze.TypeInfo,
	dirs analyze.Capability,
	funcName string,
	diags *diagnostic.Diagnostics,
) *Codec {
	policy, deny := r.typeSettings(t)

	codec := &Codec{
		Target:      t,
		Directions:  dirs,
		FuncName:    funcName,
		Naming:      policy,
		DenyUnknown: deny,
	}

	switch t.Kind {
	case analyze.TypeKindStruct:
		codec.Kind = CodecStruct
		r.planStruct(unit, codec, dirs, diags)
	case analyze.TypeKindEnum:
		codec.Kind = CodecEnum
		r.planEnum(unit, codec, diags)
	case analyze.TypeKindAlias:
		codec.Kind = CodecConvert
		r.planConvert(unit, codec, dirs, diags)
	default:
		diags.AddError(diagnostic.CodeUnsupportedType,
			fmt.Sprintf("%s types have no generated codec", t.Kind), t.ID.String(), "")
	}

	codec.Incomplete = diags.HasErrors()

	return codec
}

// typeSettings returns the naming policy and unknown member handling of t:
// configuration over directives over run defaults.
func (r *Resolver) typeSettings(t *analyze.TypeInfo) (naming.Policy, bool) {
	policy, deny := r.opts.DefaultNaming, r.opts.DenyUnknown

	d := r.directives(t)
	if d.NamingSet {
		policy = d.Naming
	}

	if d.DenyUnknown {
		deny = true
	}

	if tc := r.opts.Overrides.For(t.ID); tc != nil {
		if tc.Naming != nil {
			policy = *tc.Naming
		}

		if tc.DenyUnknown != nil {
			deny = *tc.DenyUnknown
		}
	}

	return policy, deny
}

// directives returns the directives of t as declared in its loaded package.
func (r *Resolver) directives(t *analyze.TypeInfo) analyze.Directives {
	if gt := r.graph.GetType(t.ID); gt != nil {
		return gt.Directives
	}

	return t.Directives
}

// capability returns the serde methods *T has or will have after this run.
func (r *Resolver) capability(t *analyze.TypeInfo) analyze.Capability {
	c := t.Capability
	if gt := r.graph.GetType(t.ID); gt != nil && !t.IsGeneric() {
		c |= gt.Capability | gt.Directives.Capability()
	}

	return c
}

// funcName is the identifier fragment the helpers of t are named after in
// unit: "Order" for local types, "GeoPoint" for geo.Point.
func (r *Resolver) funcName(unit string, t *analyze.TypeInfo) string {
	if t.ID.PkgPath == unit {
		return common.UpperFirst(t.ID.Name)
	}

	return common.ExportedIdent(r.graph.PackageName(t.ID.PkgPath)) + common.UpperFirst(t.ID.Name)
}

// unit returns the plan of an output package. r.mu must be held.
func (r *Resolver) unit(pkgPath string) *Unit {
	if u, ok := r.units[pkgPath]; ok {
		return u
	}

	u := &Unit{PkgPath: pkgPath, PkgName: r.graph.PackageName(pkgPath)}
	if p, ok := r.graph.Packages[pkgPath]; ok {
		u.Dir = p.Dir
	}

	r.units[pkgPath] = u

	return u
}

// buildPlan sorts the collected units so the plan does not depend on the
// order workers finished in.
func (r *Resolver) buildPlan() *GenerationPlan {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan := &GenerationPlan{Infos: r.infos}

	for _, u := range r.units {
		sort.Slice(u.Types, func(i, j int) bool { return u.Types[i].Name < u.Types[j].Name })
		sort.Slice(u.Wrappers, func(i, j int) bool { return u.Wrappers[i].Name < u.Wrappers[j].Name })
		plan.Units = append(plan.Units, u)
	}

	sort.Slice(plan.Units, func(i, j int) bool { return plan.Units[i].PkgPath < plan.Units[j].PkgPath })

	plan.Diagnostics = r.diags
	plan.Diagnostics.Sort()

	return plan
}
