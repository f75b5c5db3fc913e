package gen

import (
	"sort"
	"strconv"
	"strings"

	"serde-generator/internal/analyze"
	"serde-generator/internal/plan"
)

// runtimeAlias is the name the runtime package is imported under.
const runtimeAlias = "serde"

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// Named reports whether the import needs an explicit alias.
func (s importSpec) Named() bool {
	return s.Alias != s.Path[strings.LastIndex(s.Path, "/")+1:]
}

// typeFormatter renders Go type expressions relative to one output package
// and records the imports they need.
type typeFormatter struct {
	pkgPath string
	names   func(pkgPath string) string
	// byPath maps import paths to their alias, taken maps aliases back.
	byPath map[string]string
	taken  map[string]string
}

func newTypeFormatter(pkgPath string, names func(string) string) *typeFormatter {
	f := &typeFormatter{
		pkgPath: pkgPath,
		names:   names,
		byPath:  make(map[string]string),
		taken:   make(map[string]string),
	}

	return f
}

// qualifier returns the prefix for identifiers of pkgPath, importing it if
// needed. Identifiers of the output package are not qualified.
func (f *typeFormatter) qualifier(pkgPath, pkgName string) string {
	if pkgPath == "" || pkgPath == f.pkgPath {
		return ""
	}

	if alias, ok := f.byPath[pkgPath]; ok {
		return alias + "."
	}

	if pkgName == "" {
		pkgName = f.names(pkgPath)
	}

	alias := pkgName
	for n := 2; ; n++ {
		if owner, used := f.taken[alias]; !used || owner == pkgPath {
			break
		}

		alias = pkgName + strconv.Itoa(n)
	}

	f.byPath[pkgPath] = alias
	f.taken[alias] = pkgPath

	return alias + "."
}

// runtime returns the qualified name of an identifier of the serde package.
func (f *typeFormatter) runtime(name string) string {
	return f.qualifier(analyze.RuntimePkgPath, runtimeAlias) + name
}

// imports returns the recorded imports sorted by path.
func (f *typeFormatter) imports() []importSpec {
	out := make([]importSpec, 0, len(f.byPath))
	for path, alias := range f.byPath {
		out = append(out, importSpec{Alias: alias, Path: path})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})

	return out
}

// typeString returns the Go source text of t.
func (f *typeFormatter) typeString(t *analyze.TypeInfo) string {
	if t == nil {
		return "any"
	}

	if t.IsNamed() {
		if t.Kind == analyze.TypeKindBasic {
			return t.ID.Name
		}

		s := f.qualifier(t.ID.PkgPath, "") + t.ID.Name
		if len(t.TypeArgs) > 0 {
			s += "[" + f.typeList(t.TypeArgs) + "]"
		}

		return s
	}

	switch t.Kind {
	case analyze.TypeKindPointer:
		return "*" + f.typeString(t.ElemType)
	case analyze.TypeKindSlice:
		return "[]" + f.typeString(t.ElemType)
	case analyze.TypeKindArray:
		return "[" + strconv.FormatInt(t.ArrayLen, 10) + "]" + f.typeString(t.ElemType)
	case analyze.TypeKindMap:
		return "map[" + f.typeString(t.KeyType) + "]" + f.typeString(t.ElemType)
	default:
		// Anonymous structs and interfaces never get a complete codec.
		if t.GoType != nil {
			return t.GoType.String()
		}

		return "any"
	}
}

// conversionType is typeString made safe for use as a conversion target.
func (f *typeFormatter) conversionType(t *analyze.TypeInfo) string {
	s := f.typeString(t)
	if strings.HasPrefix(s, "*") {
		return "(" + s + ")"
	}

	return s
}

func (f *typeFormatter) typeList(ts []*analyze.TypeInfo) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = f.typeString(t)
	}

	return strings.Join(parts, ", ")
}

// Adapter directions.
const (
	dirSerialize   = "Ser"
	dirDeserialize = "De"
)

// adapterType returns the type of the adapter value used in direction dir.
// Primitive, explicit and synthesized wrappers serve both directions; the
// runtime's generic adapters come in Ser/De pairs.
func (f *typeFormatter) adapterType(a *plan.Adapter, dir string) string {
	switch a.Kind {
	case plan.AdapterNative:
		t := f.typeString(a.Target)
		return f.runtime("Native"+dir) + "[" + t + ", *" + t + "]"

	case plan.AdapterNullable, plan.AdapterSlice:
		name := "Nullable"
		if a.Kind == plan.AdapterSlice {
			name = "Slice"
		}

		elem := a.Args[0]

		return f.runtime(name+dir) + "[" + f.typeString(elem.Target) + ", " + f.adapterType(elem, dir) + "]"

	case plan.AdapterSplit:
		if dir == dirSerialize {
			return f.adapterType(a.Args[0], dir)
		}

		return f.adapterType(a.Args[1], dir)

	case plan.AdapterMap:
		key, val := a.Args[0], a.Args[1]

		return f.runtime("Map"+dir) + "[" +
			f.typeString(key.Target) + ", " + f.typeString(val.Target) + ", " +
			f.adapterType(key, dir) + ", " + f.adapterType(val, dir) + "]"

	default:
		s := f.qualifier(a.Wrapper.PkgPath, a.PkgName) + a.Wrapper.Name
		if len(a.TypeArgs) > 0 {
			s += "[" + f.typeList(a.TypeArgs) + "]"
		}

		return s
	}
}

// adapterValue returns a composite literal of the adapter type.
func (f *typeFormatter) adapterValue(a *plan.Adapter, dir string) string {
	return f.adapterType(a, dir) + "{}"
}
