package gen

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"serde-generator/internal/analyze"
	"serde-generator/internal/config"
	"serde-generator/internal/plan"
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

func newGraph(dir string) *analyze.TypeGraph {
	g := analyze.NewTypeGraph()
	g.Packages[appPkg] = &analyze.PackageInfo{Path: appPkg, Name: "app", Dir: dir}

	return g
}

func annotate(g *analyze.TypeGraph, t *analyze.TypeInfo) *analyze.TypeInfo {
	t.Directives.Serialize, t.Directives.Deserialize = true, true
	g.Types[t.ID] = t

	return t
}

func resolvePlan(t *testing.T, g *analyze.TypeGraph) *plan.GenerationPlan {
	t.Helper()

	r := plan.NewResolver(g, plan.OptionsFromConfig(config.Default(), g, nil))

	p, err := r.Resolve(context.Background())
	require.NoError(t, err)

	return p
}

// render resolves g and returns the source generated for appPkg.
func render(t *testing.T, g *analyze.TypeGraph) string {
	t.Helper()

	p := resolvePlan(t, g)
	require.True(t, p.Diagnostics.IsValid(), p.Diagnostics.Error())

	files, err := NewGenerator(DefaultConfig(), g, nil).Generate(p)
	require.NoError(t, err)
	require.Len(t, files, 1)

	return string(files[0].Content)
}
