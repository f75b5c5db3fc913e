package plan

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"serde-generator/internal/analyze"
	"serde-generator/internal/diagnostic"
)

// synthesize returns an adapter backed by a wrapper generated into the
// output package, or nil when t cannot be wrapped: unnamed and generic
// types, foreign unexported types, kinds without a codec, and local
// annotated types that lack the requested direction.
//
// Each direction in need is planned by the first caller to claim it,
// synchronously and with the whole pipeline; every other caller, including
// recursive ones from cyclic types, gets the registered name and returns at
// once.
func (r *Resolver) synthesize(rq request, t *analyze.TypeInfo, need analyze.Capability) *Adapter {
	if !t.IsNamed() || t.ID.PkgPath == "" || t.IsGeneric() {
		return nil
	}

	switch t.Kind {
	case analyze.TypeKindStruct, analyze.TypeKindEnum, analyze.TypeKindAlias:
	default:
		return nil
	}

	foreign := t.ID.PkgPath != rq.unit
	if foreign && !token.IsExported(t.ID.Name) {
		return nil
	}

	if !foreign && r.directives(t).Annotated() {
		return nil
	}

	key := SynthesisKey{Unit: rq.unit, Target: t.ID}

	var name string

	for _, dir := range []analyze.Capability{analyze.CanSerialize, analyze.CanDeserialize} {
		if !need.Has(dir) {
			continue
		}

		var won bool
		if name, won = r.synth.Claim(key, dir, r.funcName(rq.unit, t)+"Wrap"); won {
			r.buildWrapper(key, name, t, dir)
		}
	}

	return &Adapter{
		Kind:    AdapterSynthesized,
		Target:  t,
		Wrapper: analyze.TypeID{PkgPath: rq.unit, Name: name},
		PkgName: r.graph.PackageName(rq.unit),
	}
}

// buildWrapper plans direction dir of a wrapper claimed by the caller.
func (r *Resolver) buildWrapper(key SynthesisKey, name string, t *analyze.TypeInfo, dir analyze.Capability) {
	var diags diagnostic.Diagnostics

	codec := r.buildCodec(key.Unit, t, dir, wrapperFuncName(name), &diags)

	r.mu.Lock()
	u := r.unit(key.Unit)

	w, ok := lo.Find(u.Wrappers, func(w *WrapperPlan) bool { return w.Name == name })
	if !ok {
		w = &WrapperPlan{Name: name}
		u.Wrappers = append(u.Wrappers, w)
		diags.AddInfo(diagnostic.CodeSynthesized,
			fmt.Sprintf("synthesized %s into %s", name, key.Unit), t.ID.String(), "")
	}

	if dir == analyze.CanSerialize {
		w.Serialize = codec
	} else {
		w.Deserialize = codec
	}

	r.diags.Merge(diags)
	r.mu.Unlock()

	r.log.Debug("synthesized wrapper",
		zap.String("wrapper", name),
		zap.Stringer("target", t.ID),
		zap.String("unit", key.Unit),
		zap.String("direction", capabilityNames(dir)),
		zap.Bool("complete", !codec.Incomplete))
}

// wrapperFuncName derives the helper name fragment from a wrapper name.
// Suffixed names keep the suffix so that they stay distinct.
func wrapperFuncName(name string) string {
	if base, ok := strings.CutSuffix(name, "Wrap"); ok {
		return base
	}

	return name
}
