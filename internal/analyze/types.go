package analyze

import (
	"go/types"
	"reflect"
	"sort"

	"serde-generator/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "serde-generator/examples/basic"
	Name    string // e.g., "Order"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // struct type
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice of another type
	TypeKindArray              // array of another type
	TypeKindMap                // map from KeyType to ElemType
	TypeKindAlias              // named type wrapping a non-struct type
	TypeKindEnum               // named integer type with declared constants
	TypeKindInterface          // interface type
	TypeKindFunc               // func, chan, unsafe.Pointer: no data representation
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindAlias:
		return "alias"
	case TypeKindEnum:
		return "enum"
	case TypeKindInterface:
		return "interface"
	case TypeKindFunc:
		return "func"
	default:
		return common.UnknownStr
	}
}

// Capability records which serde methods a type's pointer already has.
type Capability uint8

const (
	CanSerialize Capability = 1 << iota
	CanDeserialize

	CanBoth = CanSerialize | CanDeserialize
)

// Has reports whether every bit of want is present.
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID          TypeID       // Unique identifier (empty for unnamed types like *T or []T)
	Kind        TypeKind     // Kind of type
	Underlying  *TypeInfo    // For aliases and enums, the underlying type
	ElemType    *TypeInfo    // For pointers, slices, arrays and maps, the element type
	KeyType     *TypeInfo    // For maps, the key type
	ArrayLen    int64        // For arrays, the length
	Fields      []FieldInfo  // For structs, the list of fields
	EnumMembers []EnumMember // For enums, the declared constants in declaration order
	TypeArgs    []*TypeInfo  // For instantiated generic types
	TypeParams  int          // For generic declarations, the number of type parameters
	Capability  Capability   // serde methods present on *T
	Directives  Directives   // serde directives from the type's doc comment
	GoType      types.Type   // The original go/types.Type
	IsGenerated bool         // True if the type was synthesized by the resolver
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// IsGeneric reports whether the type is a generic declaration or an
// instantiation of one.
func (t *TypeInfo) IsGeneric() bool {
	return t.TypeParams > 0 || len(t.TypeArgs) > 0
}

// HasRepresentation reports whether values of the type carry data that can
// be written to a wire format.
func (t *TypeInfo) HasRepresentation() bool {
	for cur := t; cur != nil; cur = cur.Underlying {
		if cur.Kind == TypeKindFunc {
			return false
		}

		if cur.Kind != TypeKindAlias {
			break
		}
	}

	return true
}

// EnumMember is one declared constant of an enum type.
type EnumMember struct {
	Name  string // constant identifier
	Value string // exact constant value, e.g. "2"
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     *TypeInfo         // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
	Options  MemberOptions     // Parsed serde tag
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo

	// scopes holds every loaded package and its imports, for looking up
	// wrapper types named in tags.
	scopes map[string]*types.Package
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
		scopes:   make(map[string]*types.Package),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// Annotated returns the types carrying a serde directive, sorted by ID.
func (g *TypeGraph) Annotated() []*TypeInfo {
	var out []*TypeInfo

	for _, t := range g.Types {
		if t.Directives.Annotated() {
			out = append(out, t)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID.String() < out[j].ID.String()
	})

	return out
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory holding the package sources
	Types []TypeID // Named types defined in this package, sorted by name
}
