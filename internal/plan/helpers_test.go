package plan

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"serde-generator/internal/analyze"
	"serde-generator/internal/config"
	"serde-generator/internal/diagnostic"
)

const (
	appPkg = "example.com/app"
	geoPkg = "example.com/geo"
)

func basic(name string) *analyze.TypeInfo {
	return &analyze.TypeInfo{ID: analyze.TypeID{Name: name}, Kind: analyze.TypeKindBasic}
}

func ptr(t *analyze.TypeInfo) *analyze.TypeInfo {
	return &analyze.TypeInfo{Kind: analyze.TypeKindPointer, ElemType: t}
}

func slice(t *analyze.TypeInfo) *analyze.TypeInfo {
	return &analyze.TypeInfo{Kind: analyze.TypeKindSlice, ElemType: t}
}

func mapOf(k, v *analyze.TypeInfo) *analyze.TypeInfo {
	return &analyze.TypeInfo{Kind: analyze.TypeKindMap, KeyType: k, ElemType: v}
}

func field(name string, t *analyze.TypeInfo, tag string) analyze.FieldInfo {
	return analyze.FieldInfo{
		Name:     name,
		Exported: true,
		Type:     t,
		Tag:      reflect.StructTag(tag),
		Options:  analyze.ParseTag(reflect.StructTag(tag)),
	}
}

func structType(pkg, name string, fields ...analyze.FieldInfo) *analyze.TypeInfo {
	for i := range fields {
		fields[i].Index = i
	}

	return &analyze.TypeInfo{
		ID:     analyze.TypeID{PkgPath: pkg, Name: name},
		Kind:   analyze.TypeKindStruct,
		Fields: fields,
	}
}

func enumType(pkg, name string, members ...analyze.EnumMember) *analyze.TypeInfo {
	return &analyze.TypeInfo{
		ID:          analyze.TypeID{PkgPath: pkg, Name: name},
		Kind:        analyze.TypeKindEnum,
		Underlying:  basic("int"),
		EnumMembers: members,
	}
}

// testGraph registers types in a graph. Types in appPkg count as loaded.
type testGraph struct {
	*analyze.TypeGraph
}

func newTestGraph() *testGraph {
	g := &testGraph{TypeGraph: analyze.NewTypeGraph()}
	g.Packages[appPkg] = &analyze.PackageInfo{Path: appPkg, Name: "app", Dir: "/src/app"}

	return g
}

// annotate adds t as a //serde:generate type.
func (g *testGraph) annotate(t *analyze.TypeInfo) *analyze.TypeInfo {
	t.Directives.Serialize, t.Directives.Deserialize = true, true

	return g.add(t)
}

func (g *testGraph) add(t *analyze.TypeInfo) *analyze.TypeInfo {
	g.Types[t.ID] = t
	return t
}

func resolve(t *testing.T, g *testGraph, overrides ...config.TypeConfig) *GenerationPlan {
	t.Helper()

	f := config.Default()
	f.Types = overrides

	r := NewResolver(g.TypeGraph, OptionsFromConfig(f, g.TypeGraph, nil))

	plan, err := r.Resolve(context.Background())
	require.NoError(t, err)

	return plan
}

func findType(t *testing.T, plan *GenerationPlan, name string) *TypePlan {
	t.Helper()

	for _, u := range plan.Units {
		for _, tp := range u.Types {
			if tp.Name == name {
				return tp
			}
		}
	}

	require.Failf(t, "type not planned", "%s", name)

	return nil
}

func member(t *testing.T, c *Codec, name string) ResolvedMember {
	t.Helper()

	for _, m := range c.Members {
		if m.Name == name {
			return m
		}
	}

	require.Failf(t, "member not planned", "%s", name)

	return ResolvedMember{}
}

func codesOf(diags []diagnostic.Diagnostic) map[string]int {
	out := map[string]int{}
	for _, d := range diags {
		out[d.Code]++
	}

	return out
}
