package analyze

import (
	"strconv"
	"strings"
)

// TypePath builds a readable path to a member, used to point diagnostics at
// the part of a member type that could not be adapted.
// Examples:
//   - "Order.Items" for a member
//   - "Order.Items[]" for the element of a slice member
//   - "Order.Lookup[key]" for the key of a map member
//   - "Order.*Billing" for the target of a pointer member
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) *TypePath {
	return &TypePath{
		parts: []string{root},
	}
}

// Field appends a member name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// Slice appends an element indicator "[]" to the last part.
func (p *TypePath) Slice() *TypePath {
	return p.suffix("[]")
}

// Key appends a map key indicator "[key]" to the last part.
func (p *TypePath) Key() *TypePath {
	return p.suffix("[key]")
}

// Pointer prefixes the last part with "*".
func (p *TypePath) Pointer() *TypePath {
	if len(p.parts) == 0 {
		return &TypePath{parts: []string{"*"}}
	}

	newParts := make([]string, len(p.parts))
	copy(newParts, p.parts)
	newParts[len(newParts)-1] = "*" + newParts[len(newParts)-1]

	return &TypePath{parts: newParts}
}

func (p *TypePath) suffix(s string) *TypePath {
	if len(p.parts) == 0 {
		return &TypePath{parts: []string{s}}
	}

	newParts := make([]string, len(p.parts))
	copy(newParts, p.parts)
	newParts[len(newParts)-1] += s

	return &TypePath{parts: newParts}
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}

// TypeString returns Go-like source text for t, qualifying named types by
// package path. It is meant for diagnostics, not for generated code.
func TypeString(t *TypeInfo) string {
	if t == nil {
		return "<nil>"
	}

	var sb strings.Builder
	writeType(&sb, t)

	return sb.String()
}

func writeType(sb *strings.Builder, t *TypeInfo) {
	if t.IsNamed() {
		sb.WriteString(t.ID.String())

		if len(t.TypeArgs) > 0 {
			sb.WriteString("[")

			for i, arg := range t.TypeArgs {
				if i > 0 {
					sb.WriteString(", ")
				}

				writeType(sb, arg)
			}

			sb.WriteString("]")
		}

		return
	}

	switch t.Kind {
	case TypeKindPointer:
		sb.WriteString("*")
		writeElem(sb, t.ElemType)
	case TypeKindSlice:
		sb.WriteString("[]")
		writeElem(sb, t.ElemType)
	case TypeKindArray:
		sb.WriteString("[")
		sb.WriteString(strconv.FormatInt(t.ArrayLen, 10))
		sb.WriteString("]")
		writeElem(sb, t.ElemType)
	case TypeKindMap:
		sb.WriteString("map[")
		writeElem(sb, t.KeyType)
		sb.WriteString("]")
		writeElem(sb, t.ElemType)
	case TypeKindStruct:
		sb.WriteString("struct{...}")
	case TypeKindInterface:
		sb.WriteString("interface{...}")
	case TypeKindFunc:
		sb.WriteString("func(...)")
	default:
		if t.GoType != nil {
			sb.WriteString(t.GoType.String())
		} else {
			sb.WriteString("<unknown>")
		}
	}
}

func writeElem(sb *strings.Builder, t *TypeInfo) {
	if t == nil {
		sb.WriteString("<unknown>")
		return
	}

	writeType(sb, t)
}
