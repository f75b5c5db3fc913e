package analyze

import (
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Method names that make a type natively capable.
const (
	SerializeMethod   = "SerializeSerde"
	DeserializeMethod = "DeserializeSerde"
)

// DefaultGeneratedSuffix is the file name suffix of generated code.
const DefaultGeneratedSuffix = "_serde"

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph     *TypeGraph
	typeCache map[types.Type]*TypeInfo // Cache to handle recursive types
	fset      *token.FileSet
	// Dir is the working directory packages are resolved from. Empty means
	// the process working directory.
	Dir string
	// GeneratedSuffix marks the files this tool writes, e.g. "_serde" for
	// basic_serde.go. They are about to be replaced, so their errors are
	// tolerated and their methods do not count towards a type's capability.
	GeneratedSuffix string
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph:           NewTypeGraph(),
		typeCache:       make(map[types.Type]*TypeInfo),
		GeneratedSuffix: DefaultGeneratedSuffix,
	}
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./examples/basic").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "loading packages")
	}

	var errs []error
	for _, pkg := range pkgs {
		if a.fset == nil {
			a.fset = pkg.Fset
		}

		for _, e := range pkg.Errors {
			// A stale generated file fails to type-check after its
			// types change; it is rewritten from this load.
			if a.isGenerated(errorFile(e.Pos)) {
				continue
			}

			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Newf("package errors: %v", errs)
	}

	// Register every package first so that cross-package references are not
	// mistaken for foreign ones.
	for _, pkg := range pkgs {
		a.graph.Packages[pkg.PkgPath] = &PackageInfo{
			Path: pkg.PkgPath,
			Name: pkg.Name,
			Dir:  packageDir(pkg),
		}
		a.registerScopes(pkg)
	}

	for _, pkg := range pkgs {
		if err := a.processPackage(pkg); err != nil {
			return nil, errors.Wrapf(err, "processing package %s", pkg.PkgPath)
		}
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// isGenerated reports whether filename was written by this tool.
func (a *Analyzer) isGenerated(filename string) bool {
	return a.GeneratedSuffix != "" && strings.HasSuffix(filename, a.GeneratedSuffix+".go")
}

// errorFile returns the file name of a "file:line:col" error position.
func errorFile(pos string) string {
	if i := strings.Index(pos, ".go:"); i >= 0 {
		return pos[:i+len(".go")]
	}

	return pos
}

func packageDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) == 0 {
		return ""
	}

	return filepath.Dir(pkg.GoFiles[0])
}

func (a *Analyzer) registerScopes(pkg *packages.Package) {
	if pkg.Types == nil {
		return
	}

	if _, seen := a.graph.scopes[pkg.PkgPath]; seen {
		return
	}

	a.graph.scopes[pkg.PkgPath] = pkg.Types

	for _, imp := range pkg.Imports {
		a.registerScopes(imp)
	}
}

// processPackage extracts types from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) error {
	pkgInfo := a.graph.Packages[pkg.PkgPath]
	directives := collectDirectives(pkg.Syntax)

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		d, annotated := directives[name]
		if !typeName.Exported() && !annotated {
			continue
		}

		typeInfo := a.analyzeType(typeName.Type())
		typeInfo.ID = TypeID{PkgPath: pkg.PkgPath, Name: name}
		typeInfo.Directives = d

		a.graph.Types[typeInfo.ID] = typeInfo
		pkgInfo.Types = append(pkgInfo.Types, typeInfo.ID)
	}

	return nil
}

// collectDirectives maps type names to the directives in their doc comments.
func collectDirectives(files []*ast.File) map[string]Directives {
	out := make(map[string]Directives)

	for _, file := range files {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)

				doc := ts.Doc
				if doc == nil && len(gen.Specs) == 1 {
					doc = gen.Doc
				}

				if d := ParseDirectives(doc); d.Annotated() || d.NamingSet || d.DenyUnknown || len(d.Problems) > 0 {
					out[ts.Name.Name] = d
				}
			}
		}
	}

	return out
}

// analyzeType recursively analyzes a go/types.Type and returns a TypeInfo.
func (a *Analyzer) analyzeType(t types.Type) *TypeInfo {
	if cached, ok := a.typeCache[t]; ok {
		return cached
	}

	if alias, ok := t.(*types.Alias); ok {
		return a.analyzeType(types.Unalias(alias))
	}

	info := &TypeInfo{
		GoType: t,
	}

	// Pre-cache to handle recursive types (we'll fill in details)
	a.typeCache[t] = info

	switch tt := t.(type) {
	case *types.Named:
		a.analyzeNamedType(tt, info)

	case *types.Basic:
		info.ID = TypeID{Name: tt.Name()}
		info.Kind = TypeKindBasic

		if tt.Kind() == types.UnsafePointer {
			info.Kind = TypeKindFunc
		}

	case *types.Pointer:
		info.Kind = TypeKindPointer
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Slice:
		info.Kind = TypeKindSlice
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Array:
		info.Kind = TypeKindArray
		info.ArrayLen = tt.Len()
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Map:
		info.Kind = TypeKindMap
		info.KeyType = a.analyzeType(tt.Key())
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(tt, info)

	case *types.Interface:
		info.Kind = TypeKindInterface

	case *types.Signature, *types.Chan:
		info.Kind = TypeKindFunc

	default:
		info.Kind = TypeKindUnknown
	}

	return info
}

// analyzeNamedType analyzes a named type.
func (a *Analyzer) analyzeNamedType(named *types.Named, info *TypeInfo) {
	obj := named.Obj()

	info.ID = TypeID{Name: obj.Name()}
	if obj.Pkg() != nil {
		info.ID.PkgPath = obj.Pkg().Path()
	}

	info.Capability = a.methodCapability(named)

	if params := named.TypeParams(); params != nil {
		info.TypeParams = params.Len()
	}

	if args := named.TypeArgs(); args != nil {
		info.TypeParams = 0
		for i := range args.Len() {
			info.TypeArgs = append(info.TypeArgs, a.analyzeType(args.At(i)))
		}
	}

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(ut, info)

	case *types.Interface:
		info.Kind = TypeKindInterface

	case *types.Basic:
		info.Underlying = a.analyzeType(ut)
		info.Kind = TypeKindAlias

		if ut.Info()&types.IsInteger != 0 {
			if members := enumMembers(named); len(members) > 0 {
				info.Kind = TypeKindEnum
				info.EnumMembers = members
			}
		}

	default:
		info.Kind = TypeKindAlias
		info.Underlying = a.analyzeType(ut)
	}
}

// methodCapability reports the serde methods declared on *T. Methods that
// live in the generated file of a package being loaded are left out: they
// are regenerated from the type's directives.
func (a *Analyzer) methodCapability(named *types.Named) Capability {
	var c Capability

	mset := types.NewMethodSet(types.NewPointer(named))
	if a.declared(mset.Lookup(named.Obj().Pkg(), SerializeMethod)) {
		c |= CanSerialize
	}

	if a.declared(mset.Lookup(named.Obj().Pkg(), DeserializeMethod)) {
		c |= CanDeserialize
	}

	return c
}

func (a *Analyzer) declared(sel *types.Selection) bool {
	if sel == nil {
		return false
	}

	obj := sel.Obj()
	if a.fset == nil || obj.Pkg() == nil {
		return true
	}

	if _, root := a.graph.Packages[obj.Pkg().Path()]; !root {
		return true
	}

	return !a.isGenerated(a.fset.Position(obj.Pos()).Filename)
}

// enumMembers returns the package-level constants of type named, in
// declaration order.
func enumMembers(named *types.Named) []EnumMember {
	pkg := named.Obj().Pkg()
	if pkg == nil {
		return nil
	}

	var consts []*types.Const

	scope := pkg.Scope()
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok || !types.Identical(c.Type(), named) {
			continue
		}

		consts = append(consts, c)
	}

	sort.SliceStable(consts, func(i, j int) bool {
		return consts[i].Pos() < consts[j].Pos()
	})

	members := make([]EnumMember, 0, len(consts))
	for _, c := range consts {
		members = append(members, EnumMember{
			Name:  c.Name(),
			Value: c.Val().ExactString(),
		})
	}

	return members
}

// analyzeStructFields extracts fields from a struct type.
func (a *Analyzer) analyzeStructFields(st *types.Struct, info *TypeInfo) {
	for i := range st.NumFields() {
		field := st.Field(i)

		// Unexported fields never reach the wire.
		if !field.Exported() {
			continue
		}

		tag := reflect.StructTag(st.Tag(i))

		info.Fields = append(info.Fields, FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     a.analyzeType(field.Type()),
			Tag:      tag,
			Embedded: field.Embedded(),
			Index:    i,
			Options:  ParseTag(tag),
		})
	}
}

// GetStruct returns the TypeInfo for a named struct.
func (a *Analyzer) GetStruct(pkgPath, typeName string) (*TypeInfo, error) {
	id := TypeID{PkgPath: pkgPath, Name: typeName}

	info := a.graph.GetType(id)
	if info == nil {
		return nil, errors.Newf("type %s not found", id)
	}

	if info.Kind != TypeKindStruct {
		return nil, errors.Newf("type %s is not a struct (kind: %s)", id, info.Kind)
	}

	return info, nil
}
