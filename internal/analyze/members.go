package analyze

// DataMember is one serializable member of a type. Its identity is the owning
// type plus Name; it is not modified after DataMembers returns it.
type DataMember struct {
	Owner    TypeID
	Name     string
	Type     *TypeInfo
	Wrap     string // explicit wrapper override, empty when absent
	Nullable bool   // pointer typed: absent values are nil
	Options  MemberOptions
	Index    int // position among the owner's data members
	Field    int // index of the struct field
}

// Required reports whether deserialization fails when the member is absent.
func (m DataMember) Required() bool {
	return !m.Options.Optional && !m.Nullable && !m.Options.SkipDeserialize
}

// DataMembers lists the members of t that take part in serialization, in
// declaration order. Unexported fields, fields tagged `serde:"-"` and fields
// whose type has no data representation are left out; every other field is
// returned, including ones whose type cannot be adapted, so that the wrapper
// stage can report them.
func DataMembers(t *TypeInfo) []DataMember {
	if t == nil || t.Kind != TypeKindStruct {
		return nil
	}

	var members []DataMember

	for i := range t.Fields {
		f := &t.Fields[i]

		if !f.Exported || f.Options.Skip || f.Type == nil || !f.Type.HasRepresentation() {
			continue
		}

		members = append(members, DataMember{
			Owner:    t.ID,
			Name:     f.Name,
			Type:     f.Type,
			Wrap:     f.Options.Wrap,
			Nullable: f.Type.Kind == TypeKindPointer,
			Options:  f.Options,
			Index:    len(members),
			Field:    f.Index,
		})
	}

	return members
}

// WithOverrides returns m with non-zero fields of o applied over its options.
func (m DataMember) WithOverrides(o MemberOptions) DataMember {
	if o.Rename != "" {
		m.Options.Rename = o.Rename
	}

	if o.Wrap != "" {
		m.Options.Wrap = o.Wrap
		m.Wrap = o.Wrap
	}

	m.Options.Optional = m.Options.Optional || o.Optional
	m.Options.SkipSerialize = m.Options.SkipSerialize || o.SkipSerialize
	m.Options.SkipDeserialize = m.Options.SkipDeserialize || o.SkipDeserialize
	m.Options.KeepNull = m.Options.KeepNull || o.KeepNull

	return m
}
