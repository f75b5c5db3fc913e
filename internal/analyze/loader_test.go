package analyze

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serde-generator/internal/naming"
)

const (
	basicPkg = "serde-generator/examples/basic"
	geoPkg   = "serde-generator/examples/basic/geo"
)

func loadAnalyzer(t *testing.T) *Analyzer {
	t.Helper()

	analyzer := NewAnalyzer()
	analyzer.Dir = filepath.Join("..", "..")

	graph, err := analyzer.LoadPackages("./examples/basic")
	require.NoError(t, err)
	require.NotNil(t, graph)

	return analyzer
}

func loadBasic(t *testing.T) *TypeGraph {
	t.Helper()

	return loadAnalyzer(t).Graph()
}

func fieldByName(t *testing.T, info *TypeInfo, name string) *FieldInfo {
	t.Helper()

	for i := range info.Fields {
		if info.Fields[i].Name == name {
			return &info.Fields[i]
		}
	}

	require.Failf(t, "field not found", "%s has no field %s", info.ID, name)

	return nil
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	graph := loadBasic(t)

	require.Contains(t, graph.Packages, basicPkg)
	pkg := graph.Packages[basicPkg]
	assert.Equal(t, "basic", pkg.Name)
	assert.Equal(t, "basic", filepath.Base(pkg.Dir))

	assert.Contains(t, graph.Types, TypeID{PkgPath: basicPkg, Name: "Order"})
	assert.Contains(t, graph.Types, TypeID{PkgPath: basicPkg, Name: "OrderStatus"})

	// Imported packages are visible to wrapper lookup but not analyzed as
	// roots.
	assert.NotContains(t, graph.Packages, geoPkg)
	assert.Equal(t, "geo", graph.PackageName(geoPkg))
}

func TestAnalyzer_Annotated(t *testing.T) {
	graph := loadBasic(t)

	var names []string
	for _, info := range graph.Annotated() {
		names = append(names, info.ID.Name)
	}

	assert.Equal(t, []string{"Customer", "Legacy", "Order", "OrderItem", "OrderStatus", "S", "Sensor"}, names)
}

func TestAnalyzer_OrderFields(t *testing.T) {
	order, err := loadAnalyzer(t).GetStruct(basicPkg, "Order")
	require.NoError(t, err)
	assert.Equal(t, TypeKindStruct, order.Kind)
	// The methods in basic_serde.go are regenerated from the directives and
	// do not count as hand-written capability.
	assert.Equal(t, Capability(0), order.Capability)
	assert.True(t, order.Directives.Capability().Has(CanBoth))
	assert.True(t, order.Directives.Serialize)
	assert.True(t, order.Directives.Deserialize)

	sensor, err := loadAnalyzer(t).GetStruct(basicPkg, "Sensor")
	require.NoError(t, err)
	assert.True(t, sensor.Directives.NamingSet)
	assert.Equal(t, "identity", sensor.Directives.Naming.String())

	status := fieldByName(t, order, "Status").Type
	assert.Equal(t, TypeKindEnum, status.Kind)
	assert.Equal(t, []EnumMember{
		{Name: "StatusPending", Value: "0"},
		{Name: "StatusPaid", Value: "1"},
		{Name: "StatusShipped", Value: "2"},
		{Name: "StatusCancelled", Value: "3"},
	}, status.EnumMembers)

	note := fieldByName(t, order, "Note").Type
	assert.Equal(t, TypeKindPointer, note.Kind)
	assert.Equal(t, TypeKindBasic, note.ElemType.Kind)

	tags := fieldByName(t, order, "Tags")
	assert.Equal(t, TypeKindMap, tags.Type.Kind)
	assert.True(t, tags.Options.Optional)

	items := fieldByName(t, order, "Items").Type
	assert.Equal(t, TypeKindSlice, items.Kind)
	assert.Equal(t, TypeID{PkgPath: basicPkg, Name: "OrderItem"}, items.ElemType.ID)

	shipTo := fieldByName(t, order, "ShipTo").Type
	assert.Equal(t, TypeID{PkgPath: geoPkg, Name: "Address"}, shipTo.ID)
	assert.Equal(t, TypeKindStruct, shipTo.Kind)
	assert.Equal(t, Capability(0), shipTo.Capability)

	weight := fieldByName(t, order, "Weight").Type
	assert.Equal(t, TypeKindAlias, weight.Kind)
	assert.Equal(t, "float64", weight.Underlying.ID.Name)

	assert.True(t, fieldByName(t, order, "Audit").Options.Skip)
}

func TestAnalyzer_CustomerDirectives(t *testing.T) {
	graph := loadBasic(t)

	customer := graph.GetType(TypeID{PkgPath: basicPkg, Name: "Customer"})
	require.NotNil(t, customer)

	d := customer.Directives
	assert.True(t, d.NamingSet)
	assert.Equal(t, naming.KebabCase, d.Naming)
	assert.True(t, d.DenyUnknown)
	assert.Empty(t, d.Problems)

	initial := fieldByName(t, customer, "Initial")
	assert.Equal(t, "serde.CharWrap", initial.Options.Wrap)

	units := fieldByName(t, customer, "Units").Type
	assert.Equal(t, TypeKindEnum, units.Kind)
	assert.Equal(t, []EnumMember{{Name: "Metric", Value: "0"}, {Name: "Imperial", Value: "1"}}, units.EnumMembers)
}

func TestAnalyzer_GeneratedSuffixOff(t *testing.T) {
	analyzer := NewAnalyzer()
	analyzer.Dir = filepath.Join("..", "..")
	analyzer.GeneratedSuffix = ""

	_, err := analyzer.LoadPackages("./examples/basic")
	require.NoError(t, err)

	order, err := analyzer.GetStruct(basicPkg, "Order")
	require.NoError(t, err)
	assert.Equal(t, CanBoth, order.Capability)
}

func TestErrorFile(t *testing.T) {
	assert.Equal(t, "/src/app/app_serde.go", errorFile("/src/app/app_serde.go:12:3"))
	assert.Equal(t, "C:/src/app.go", errorFile("C:/src/app.go:1:1"))
	assert.Equal(t, "-", errorFile("-"))

	a := NewAnalyzer()
	assert.True(t, a.isGenerated("/src/app/app_serde.go"))
	assert.False(t, a.isGenerated("/src/app/app.go"))

	a.GeneratedSuffix = ""
	assert.False(t, a.isGenerated("/src/app/app_serde.go"))
}

func TestAnalyzer_GetStructErrors(t *testing.T) {
	a := loadAnalyzer(t)

	_, err := a.GetStruct(basicPkg, "Missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = a.GetStruct(basicPkg, "OrderStatus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a struct")
}

func TestDataMembers_Order(t *testing.T) {
	graph := loadBasic(t)

	members := DataMembers(graph.GetType(TypeID{PkgPath: basicPkg, Name: "Order"}))
	require.Len(t, members, 8)

	var names []string
	for i, m := range members {
		assert.Equal(t, i, m.Index)
		names = append(names, m.Name)
	}

	assert.Equal(t, []string{"Number", "Status", "TotalCents", "Items", "Note", "Tags", "ShipTo", "Weight"}, names)

	assert.True(t, members[0].Required())
	assert.True(t, members[4].Nullable)
	assert.False(t, members[4].Required())
	assert.False(t, members[5].Required())
	assert.False(t, members[7].Required())
}

func TestDataMembers_NotAStruct(t *testing.T) {
	graph := loadBasic(t)

	assert.Nil(t, DataMembers(graph.GetType(TypeID{PkgPath: basicPkg, Name: "OrderStatus"})))
	assert.Nil(t, DataMembers(nil))
}

func TestDataMember_WithOverrides(t *testing.T) {
	m := DataMember{Name: "Weight", Options: MemberOptions{Rename: "w"}}

	out := m.WithOverrides(MemberOptions{Wrap: "GramsWrap", Optional: true})
	assert.Equal(t, "w", out.Options.Rename)
	assert.Equal(t, "GramsWrap", out.Wrap)
	assert.True(t, out.Options.Optional)
	assert.False(t, m.Options.Optional)

	out = out.WithOverrides(MemberOptions{Rename: "grams", SkipSerialize: true})
	assert.Equal(t, "grams", out.Options.Rename)
	assert.True(t, out.Options.SkipSerialize)
	assert.False(t, out.Required())
}

func TestTypeGraph_LookupWrapper(t *testing.T) {
	graph := loadBasic(t)

	ref, ok := graph.LookupWrapper("serde.CharWrap", basicPkg)
	require.True(t, ok)
	assert.Equal(t, TypeID{PkgPath: RuntimePkgPath, Name: "CharWrap"}, ref.ID)
	assert.Equal(t, "serde", ref.PkgName)

	ref, ok = graph.LookupWrapper("serde.NullableSer", basicPkg)
	require.True(t, ok)
	assert.Equal(t, 2, ref.TypeParams)

	ref, ok = graph.LookupWrapper("GeoUnitWrap", basicPkg)
	require.True(t, ok)
	assert.Equal(t, TypeID{PkgPath: basicPkg, Name: "GeoUnitWrap"}, ref.ID)

	ref, ok = graph.LookupWrapper(geoPkg+".Address", basicPkg)
	require.True(t, ok)
	assert.Equal(t, "geo", ref.PkgName)

	_, ok = graph.LookupWrapper("geo.Address", basicPkg)
	assert.False(t, ok, "short package names other than serde are not resolved")

	_, ok = graph.LookupWrapper("NoSuchWrap", basicPkg)
	assert.False(t, ok)
}

func TestTypeGraph_LookupWrapper_RuntimeNotLoaded(t *testing.T) {
	graph := NewTypeGraph()

	ref, ok := graph.LookupWrapper("serde.Int32Wrap", "example.com/app")
	require.True(t, ok)
	assert.Equal(t, RuntimePkgPath, ref.ID.PkgPath)

	_, ok = graph.LookupWrapper("serde.NullableSer", "example.com/app")
	assert.False(t, ok)
}

func TestSplitQualified(t *testing.T) {
	tests := []struct {
		in, pkg, name string
	}{
		{"Name", "", "Name"},
		{"serde.CharWrap", "serde", "CharWrap"},
		{"example.com/x/geo.Grams", "example.com/x/geo", "Grams"},
	}

	for _, tt := range tests {
		pkg, name := SplitQualified(tt.in)
		assert.Equal(t, tt.pkg, pkg, tt.in)
		assert.Equal(t, tt.name, name, tt.in)
	}
}

func TestTypeID_String(t *testing.T) {
	id := TypeID{PkgPath: basicPkg, Name: "Order"}
	assert.Equal(t, basicPkg+".Order", id.String())

	basic := TypeID{Name: "int"}
	assert.Equal(t, "int", basic.String())
}

func TestTypeKind_String(t *testing.T) {
	assert.Equal(t, "basic", TypeKindBasic.String())
	assert.Equal(t, "struct", TypeKindStruct.String())
	assert.Equal(t, "enum", TypeKindEnum.String())
	assert.Equal(t, "func", TypeKindFunc.String())
	assert.Equal(t, "unknown", TypeKindUnknown.String())
}

func TestTypeInfo_HasRepresentation(t *testing.T) {
	fn := &TypeInfo{Kind: TypeKindFunc}
	handler := &TypeInfo{ID: TypeID{PkgPath: "x", Name: "Handler"}, Kind: TypeKindAlias, Underlying: fn}
	count := &TypeInfo{ID: TypeID{PkgPath: "x", Name: "Count"}, Kind: TypeKindAlias, Underlying: &TypeInfo{Kind: TypeKindBasic}}

	assert.False(t, fn.HasRepresentation())
	assert.False(t, handler.HasRepresentation())
	assert.True(t, count.HasRepresentation())
	assert.True(t, (&TypeInfo{Kind: TypeKindStruct}).HasRepresentation())
}
