package plan

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"serde-generator/internal/analyze"
	"serde-generator/internal/diagnostic"
	"serde-generator/internal/match"
)

// request locates the member an adapter is resolved for.
type request struct {
	// unit is the output package; synthesized wrappers are placed there.
	unit string
	// ctxPkg is the package the member is declared in. Bare wrapper names
	// resolve there.
	ctxPkg string
	owner  string
	member string
	path   *analyze.TypePath
}

// resolveAdapter picks the adapter for values of t. The steps run in a fixed
// order and the first that applies wins:
//
//  0. native: *T has the serde methods needed; when it has only one of
//     them, that direction is native and the other resolves alone
//  1. explicit: the member names a wrapper with wrap=
//  2. primitive: t is a basic type with a runtime adapter
//  3. compound: pointer, slice and map adapters over resolved elements
//  4. synthesize: a wrapper generated into the output package
//
// When nothing applies a missing_capability error is recorded and nil is
// returned.
func (r *Resolver) resolveAdapter(
	rq request,
	t *analyze.TypeInfo,
	wrap string,
	need analyze.Capability,
	diags *diagnostic.Diagnostics,
) *Adapter {
	if t == nil {
		diags.AddError(diagnostic.CodeMissingCapability, rq.path.String()+": type information unavailable",
			rq.owner, rq.member)

		return nil
	}

	// Priority 0: native
	if t.IsNamed() && t.ID.PkgPath != "" {
		switch has := r.capability(t) & need; {
		case has == need:
			if wrap != "" {
				diags.AddWarning(diagnostic.CodeIgnoredWrapper,
					fmt.Sprintf("%s implements the serde methods; wrap=%s is ignored", analyze.TypeString(t), wrap),
					rq.owner, rq.member)
			}

			return &Adapter{Kind: AdapterNative, Target: t}
		case has != 0:
			// The missing direction goes through the remaining steps alone.
			native := &Adapter{Kind: AdapterNative, Target: t}
			rest := r.resolveAdapter(rq, t, wrap, need&^has, diags)

			if has == analyze.CanSerialize {
				return compound(AdapterSplit, t, native, rest)
			}

			return compound(AdapterSplit, t, rest, native)
		}
	}

	// Priority 1: explicit override
	if wrap != "" {
		if a := r.explicitAdapter(rq, t, wrap, diags); a != nil {
			return a
		}
	}

	// Priority 2: primitive
	if t.Kind == analyze.TypeKindBasic {
		if w, ok := PrimitiveWrapper(t.ID.Name); ok {
			return &Adapter{
				Kind:    AdapterPrimitive,
				Target:  t,
				Wrapper: analyze.TypeID{PkgPath: analyze.RuntimePkgPath, Name: w},
				PkgName: "serde",
			}
		}
	}

	// Priority 3: compound
	switch t.Kind {
	case analyze.TypeKindPointer:
		return compound(AdapterNullable, t,
			r.resolveAdapter(rq.at(rq.path.Pointer()), t.ElemType, "", need, diags))
	case analyze.TypeKindSlice:
		return compound(AdapterSlice, t,
			r.resolveAdapter(rq.at(rq.path.Slice()), t.ElemType, "", need, diags))
	case analyze.TypeKindMap:
		return compound(AdapterMap, t,
			r.resolveAdapter(rq.at(rq.path.Key()), t.KeyType, "", need, diags),
			r.resolveAdapter(rq.at(rq.path.Slice()), t.ElemType, "", need, diags))
	}

	// Go generics cannot range over array lengths, so arrays only take the
	// explicit step.
	if t.Kind == analyze.TypeKindArray {
		diags.AddError(diagnostic.CodeUnsupportedType,
			fmt.Sprintf("%s: %s has no generic adapter; name one with wrap=", rq.path, analyze.TypeString(t)),
			rq.owner, rq.member)

		return nil
	}

	// Priority 4: synthesize
	if a := r.synthesize(rq, t, need); a != nil {
		return a
	}

	diags.AddError(diagnostic.CodeMissingCapability,
		fmt.Sprintf("%s: %s does not implement %s and no adapter exists",
			rq.path, analyze.TypeString(t), capabilityNames(need)),
		rq.owner, rq.member)

	return nil
}

func (rq request) at(path *analyze.TypePath) request {
	rq.path = path
	return rq
}

// compound builds a compound adapter. It fails when any element failed;
// the element has already reported why.
func compound(kind AdapterKind, t *analyze.TypeInfo, args ...*Adapter) *Adapter {
	if lo.SomeBy(args, func(a *Adapter) bool { return a == nil }) {
		return nil
	}

	return &Adapter{Kind: kind, Target: t, Args: args}
}

// explicitAdapter resolves a wrap= name. Names that do not resolve, and
// generic wrappers whose parameters t cannot supply, are reported and fall
// through to the next step.
func (r *Resolver) explicitAdapter(rq request, t *analyze.TypeInfo, wrap string, diags *diagnostic.Diagnostics) *Adapter {
	ref, ok := r.graph.LookupWrapper(wrap, rq.ctxPkg)
	if !ok {
		diags.AddWarning(diagnostic.CodeUnresolvedWrapper,
			fmt.Sprintf("wrapper %q not found; using default resolution", wrap),
			rq.owner, rq.member, match.Suggest(wrap, runtimeWrapperNames(), maxSuggestions)...)

		return nil
	}

	a := &Adapter{
		Kind:    AdapterExplicit,
		Target:  t,
		Wrapper: ref.ID,
		PkgName: ref.PkgName,
	}

	if ref.TypeParams > 0 {
		args := typeArgs(t)
		if len(args) != ref.TypeParams {
			diags.AddWarning(diagnostic.CodeUnresolvedWrapper,
				fmt.Sprintf("wrapper %s takes %d type arguments but %s supplies %d; using default resolution",
					wrap, ref.TypeParams, analyze.TypeString(t), len(args)),
				rq.owner, rq.member)

			return nil
		}

		a.TypeArgs = args
	}

	return a
}

// typeArgs returns the type arguments a generic wrapper is instantiated with
// for t.
func typeArgs(t *analyze.TypeInfo) []*analyze.TypeInfo {
	switch {
	case len(t.TypeArgs) > 0:
		return t.TypeArgs
	case t.Kind == analyze.TypeKindPointer, t.Kind == analyze.TypeKindSlice, t.Kind == analyze.TypeKindArray:
		return []*analyze.TypeInfo{t.ElemType}
	case t.Kind == analyze.TypeKindMap:
		return []*analyze.TypeInfo{t.KeyType, t.ElemType}
	default:
		return nil
	}
}

const maxSuggestions = 3

func runtimeWrapperNames() []string {
	names := lo.Uniq(lo.Map(lo.Values(primitiveWrappers), func(w string, _ int) string {
		return "serde." + w
	}))
	sort.Strings(names)

	return names
}

func capabilityNames(c analyze.Capability) string {
	switch c {
	case analyze.CanSerialize:
		return analyze.SerializeMethod
	case analyze.CanDeserialize:
		return analyze.DeserializeMethod
	default:
		return analyze.SerializeMethod + "/" + analyze.DeserializeMethod
	}
}
