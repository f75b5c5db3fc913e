package plan

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"serde-generator/internal/analyze"
	"serde-generator/internal/common"
	"serde-generator/internal/diagnostic"
	"serde-generator/internal/naming"
)

// GenerationPlan is the output of resolution. It contains everything needed
// for rendering and nothing specific to the rendered language.
type GenerationPlan struct {
	// Units holds one entry per output package, sorted by package path.
	Units []*Unit
	// Infos is the field table of every planned codec.
	Infos *InfoRegistry
	// Diagnostics contains all warnings and errors from resolution.
	Diagnostics diagnostic.Diagnostics
}

// Unit is the generated code of one package.
type Unit struct {
	PkgPath string
	PkgName string
	Dir     string
	// Types are the annotated types of the package, sorted by name.
	Types []*TypePlan
	// Wrappers are the adapters synthesized into the package, sorted by name.
	Wrappers []*WrapperPlan
}

// Complete reports whether every codec of the unit resolved without errors.
func (u *Unit) Complete() bool {
	for _, t := range u.Types {
		if t.Codec.Incomplete {
			return false
		}
	}

	for _, w := range u.Wrappers {
		if w.Incomplete() {
			return false
		}
	}

	return true
}

// TypePlan is an annotated type. It receives SerializeSerde and/or
// DeserializeSerde methods.
type TypePlan struct {
	Name        string
	Serialize   bool
	Deserialize bool
	Codec       *Codec
}

// WrapperPlan is a synthesized stateless adapter for a type that lacks serde
// methods. Each direction is planned on first use, so a wrapper only has the
// directions its users need.
type WrapperPlan struct {
	Name        string
	Serialize   *Codec
	Deserialize *Codec
}

// Codec returns the codec of the serialize direction, or of the deserialize
// direction when the wrapper only reads.
func (w *WrapperPlan) Codec() *Codec {
	if w.Serialize != nil {
		return w.Serialize
	}

	return w.Deserialize
}

// Codecs returns the planned directions, serialize first.
func (w *WrapperPlan) Codecs() []*Codec {
	return lo.Compact([]*Codec{w.Serialize, w.Deserialize})
}

// Incomplete reports whether either direction failed to resolve.
func (w *WrapperPlan) Incomplete() bool {
	return lo.SomeBy(w.Codecs(), func(c *Codec) bool { return c.Incomplete })
}

// CodecKind selects the shape of the code emitted for a type.
type CodecKind int

const (
	// CodecStruct reads and writes a struct field by field.
	CodecStruct CodecKind = iota
	// CodecEnum maps the constants of an integer type to names.
	CodecEnum
	// CodecConvert converts to the underlying type and uses its adapter.
	CodecConvert
)

func (k CodecKind) String() string {
	switch k {
	case CodecStruct:
		return "struct"
	case CodecEnum:
		return "enum"
	case CodecConvert:
		return "convert"
	default:
		return common.UnknownStr
	}
}

// Codec is the resolved serialization of one type, shared by the annotated
// type's methods and by wrappers.
type Codec struct {
	Kind   CodecKind
	Target *analyze.TypeInfo
	// Directions are the directions the codec was planned for.
	Directions analyze.Capability
	// FuncName is the suffix of the generated helper functions and of the
	// field table variable, e.g. "Order" or "GeoPoint".
	FuncName    string
	Naming      naming.Policy
	DenyUnknown bool
	Info        *SerdeInfo

	Members     []ResolvedMember
	Serialize   *SerializePlan
	Deserialize *DeserializePlan
	Enum        *EnumPlan
	Convert     *Adapter

	// Incomplete is set when any member failed to resolve. Incomplete codecs
	// are never rendered.
	Incomplete bool
}

// ResolvedMember is a data member with its wire name and adapter.
type ResolvedMember struct {
	Name     string
	WireName string
	// Index is the member's position in the field table. It is the same in
	// both directions.
	Index    int
	Type     *analyze.TypeInfo
	Adapter  *Adapter
	Nullable bool
	Required bool
	KeepNull bool
	// Serialize and Deserialize report whether the member takes part in each
	// direction.
	Serialize   bool
	Deserialize bool
}

// AdapterKind is the resolution step that produced an adapter.
type AdapterKind int

const (
	AdapterNative AdapterKind = iota
	AdapterExplicit
	AdapterPrimitive
	AdapterNullable
	AdapterSlice
	AdapterMap
	AdapterSynthesized
	// AdapterSplit pairs a writer (Args[0]) and a reader (Args[1]) resolved
	// by different steps, e.g. a type that only implements SerializeSerde.
	AdapterSplit
)

func (k AdapterKind) String() string {
	switch k {
	case AdapterNative:
		return "native"
	case AdapterExplicit:
		return "explicit"
	case AdapterPrimitive:
		return "primitive"
	case AdapterNullable:
		return "nullable"
	case AdapterSlice:
		return "slice"
	case AdapterMap:
		return "map"
	case AdapterSynthesized:
		return "synthesized"
	case AdapterSplit:
		return "split"
	default:
		return common.UnknownStr
	}
}

// Adapter describes how values of Target are written and read.
type Adapter struct {
	Kind   AdapterKind
	Target *analyze.TypeInfo
	// Wrapper names the adapter type for explicit, primitive and synthesized
	// adapters. Synthesized wrappers live in the output package.
	Wrapper analyze.TypeID
	// PkgName is the declared name of Wrapper's package.
	PkgName string
	// TypeArgs instantiate a generic explicit wrapper.
	TypeArgs []*analyze.TypeInfo
	// Args are the element adapters of compound adapters: one for nullable
	// and slice, key and value for map, writer and reader for split.
	Args []*Adapter
}

// String returns a compact description, e.g. "slice<primitive:Int32Wrap>".
func (a *Adapter) String() string {
	if a == nil {
		return "<unresolved>"
	}

	switch a.Kind {
	case AdapterNative:
		return "native"
	case AdapterNullable, AdapterSlice, AdapterMap, AdapterSplit:
		args := make([]string, len(a.Args))
		for i, arg := range a.Args {
			args[i] = arg.String()
		}

		return fmt.Sprintf("%s<%s>", a.Kind, strings.Join(args, ", "))
	default:
		name := a.Wrapper.Name
		if a.PkgName != "" && a.Kind != AdapterSynthesized {
			name = a.PkgName + "." + name
		}

		return a.Kind.String() + ":" + name
	}
}

// SerializePlan is the write sequence of a struct codec: open the type, write
// the fields in index order, close.
type SerializePlan struct {
	Fields []SerializeStep
}

// SerializeStep writes one field.
type SerializeStep struct {
	Index   int
	Member  string
	Adapter *Adapter
	// SkipNil emits SkipField instead of a null for nil pointers.
	SkipNil bool
}

// DeserializePlan is the indexed read loop of a struct codec.
type DeserializePlan struct {
	Slots []Slot
	// Skipped lists indices whose values are read past.
	Skipped    []int
	FieldCount int
	// Mask is the width in bits of the completeness mask, or 0 when the
	// field count needs a serde.Bits.
	Mask        int
	Required    []int
	DenyUnknown bool
}

// RequiredMask returns the required bits as an integer. It is only
// meaningful when Mask is not 0.
func (p *DeserializePlan) RequiredMask() uint64 {
	var m uint64
	for _, i := range p.Required {
		m |= 1 << uint(i)
	}

	return m
}

// Slot is the local variable a field is read into.
type Slot struct {
	Index    int
	Member   string
	Var      string
	Adapter  *Adapter
	Required bool
}

// EnumPlan maps the constants of an enum to wire names.
type EnumPlan struct {
	// Underlying is the basic type the enum is declared on.
	Underlying string
	// Wrapper is the primitive adapter of Underlying.
	Wrapper string
	// Encode lists one constant per distinct value; the first declared wins.
	Encode []EnumValue
	// Decode lists every constant.
	Decode []EnumValue
}

// EnumValue is one enum constant.
type EnumValue struct {
	Const    string
	WireName string
	Value    string
}
