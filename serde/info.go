package serde

// Kind classifies a TypeInfo.
type Kind int

const (
	KindCustom Kind = iota
	KindEnum
	KindPrimitive
	KindList
	KindDictionary
	KindNullable
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindCustom:
		return "custom"
	case KindEnum:
		return "enum"
	case KindPrimitive:
		return "primitive"
	case KindList:
		return "list"
	case KindDictionary:
		return "dictionary"
	case KindNullable:
		return "nullable"
	default:
		return "unknown"
	}
}

// FieldInfo describes one field of a custom type.
type FieldInfo struct {
	Name   string // wire name
	Member string // declared Go member name
	Type   string // primitive kind or qualified type name of the member
}

// Field is shorthand used by generated code.
func Field(name, member, typ string) FieldInfo {
	return FieldInfo{Name: name, Member: member, Type: typ}
}

// TypeInfo is the frozen field table of one serializable type. Field order is
// the order fields are declared and serialized in; a field's position is its
// index on the wire protocol. A TypeInfo is never modified after NewTypeInfo
// returns and may be shared freely between goroutines.
type TypeInfo struct {
	name   string
	kind   Kind
	fields []FieldInfo
	index  map[string]int
}

// NewTypeInfo builds a TypeInfo. Generated code calls it once per type from a
// package-level variable initializer.
func NewTypeInfo(kind Kind, name string, fields ...FieldInfo) *TypeInfo {
	info := &TypeInfo{
		name:   name,
		kind:   kind,
		fields: fields,
		index:  make(map[string]int, len(fields)),
	}

	for i, f := range fields {
		if _, dup := info.index[f.Name]; !dup {
			info.index[f.Name] = i
		}
	}

	return info
}

// Name returns the type name.
func (t *TypeInfo) Name() string {
	return t.name
}

// Kind returns the type kind.
func (t *TypeInfo) Kind() Kind {
	return t.kind
}

// FieldCount returns the number of declared fields.
func (t *TypeInfo) FieldCount() int {
	return len(t.fields)
}

// Field returns the descriptor of field i.
func (t *TypeInfo) Field(i int) FieldInfo {
	return t.fields[i]
}

// FieldName returns the wire name of field i.
func (t *TypeInfo) FieldName(i int) string {
	return t.fields[i].Name
}

// Fields returns a copy of the field table.
func (t *TypeInfo) Fields() []FieldInfo {
	out := make([]FieldInfo, len(t.fields))
	copy(out, t.fields)

	return out
}

// IndexOf returns the index of the field with the given wire name, or
// IndexNotFound.
func (t *TypeInfo) IndexOf(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}

	return IndexNotFound
}

// IndexOfUTF8 is IndexOf for a raw byte span. It does not allocate.
func (t *TypeInfo) IndexOfUTF8(name []byte) int {
	if i, ok := t.index[string(name)]; ok {
		return i
	}

	return IndexNotFound
}

// Shared descriptors used by the built-in adapters.
var (
	listInfo       = NewTypeInfo(KindList, "list")
	dictionaryInfo = NewTypeInfo(KindDictionary, "dictionary")
)
