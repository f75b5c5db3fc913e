package analyze

import (
	"go/types"
	"strings"
)

// RuntimePkgPath is the import path of the serde runtime package. The alias
// "serde." in wrapper names resolves to it.
const RuntimePkgPath = "serde-generator/serde"

// WrapperRef identifies a type named as an explicit wrapper.
type WrapperRef struct {
	ID         TypeID
	PkgName    string
	TypeParams int
}

// SplitQualified splits "path/to/pkg.Name" into its package path and name.
// A bare name has an empty path.
func SplitQualified(s string) (pkgPath, name string) {
	i := strings.LastIndex(s, ".")
	if i < 0 {
		return "", s
	}

	return s[:i], s[i+1:]
}

// LookupWrapper resolves a wrapper name written in a tag or config file.
// Bare names resolve in ctxPkg, "serde.Name" in the runtime package and
// anything else as "import/path.Name". Only packages loaded with the graph,
// and their imports, are searched.
func (g *TypeGraph) LookupWrapper(ref, ctxPkg string) (WrapperRef, bool) {
	pkgPath, name := SplitQualified(ref)

	switch pkgPath {
	case "":
		pkgPath = ctxPkg
	case "serde":
		pkgPath = RuntimePkgPath
	}

	pkg, ok := g.scopes[pkgPath]
	if !ok {
		if pkgPath == RuntimePkgPath {
			return runtimeWrapper(name)
		}

		return WrapperRef{}, false
	}

	tn, ok := pkg.Scope().Lookup(name).(*types.TypeName)
	if !ok {
		return WrapperRef{}, false
	}

	out := WrapperRef{
		ID:      TypeID{PkgPath: pkgPath, Name: name},
		PkgName: pkg.Name(),
	}

	if named, ok := tn.Type().(*types.Named); ok && named.TypeParams() != nil {
		out.TypeParams = named.TypeParams().Len()
	}

	return out, true
}

// AddScope makes pkg visible to LookupWrapper. The loader registers every
// loaded package; tests building graphs by hand use this directly.
func (g *TypeGraph) AddScope(pkg *types.Package) {
	g.scopes[pkg.Path()] = pkg
}

// PackageName returns the declared name of a loaded package, falling back to
// the last path element.
func (g *TypeGraph) PackageName(pkgPath string) string {
	if p, ok := g.Packages[pkgPath]; ok && p.Name != "" {
		return p.Name
	}

	if p, ok := g.scopes[pkgPath]; ok {
		return p.Name()
	}

	return pkgPath[strings.LastIndex(pkgPath, "/")+1:]
}

// runtimeWrappers lists the adapters of the runtime package with their number
// of type parameters, for packages that do not import it yet.
var runtimeWrappers = map[string]int{
	"BoolWrap": 0, "CharWrap": 0, "StringWrap": 0,
	"IntWrap": 0, "Int8Wrap": 0, "Int16Wrap": 0, "Int32Wrap": 0, "Int64Wrap": 0,
	"UintWrap": 0, "Uint8Wrap": 0, "Uint16Wrap": 0, "Uint32Wrap": 0, "Uint64Wrap": 0,
	"Float32Wrap": 0, "Float64Wrap": 0,
}

func runtimeWrapper(name string) (WrapperRef, bool) {
	n, ok := runtimeWrappers[name]
	if !ok {
		return WrapperRef{}, false
	}

	return WrapperRef{
		ID:         TypeID{PkgPath: RuntimePkgPath, Name: name},
		PkgName:    "serde",
		TypeParams: n,
	}, true
}
