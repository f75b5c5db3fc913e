package plan

import (
	"fmt"
	"go/token"

	"github.com/samber/lo"

	"serde-generator/internal/analyze"
	"serde-generator/internal/diagnostic"
	"serde-generator/internal/naming"
)

// planStruct resolves the members of a struct codec and derives both
// directions from the same member list.
func (r *Resolver) planStruct(unit string, codec *Codec, dirs analyze.Capability, diags *diagnostic.Diagnostics) {
	t := codec.Target
	typ := t.ID.String()

	members := r.dataMembers(t)
	if len(members) == 0 {
		diags.AddWarning(diagnostic.CodeEmptyType, "type has no data members", typ, "")
	}

	wireOwners := make(map[string]string, len(members))

	for _, m := range members {
		rm := ResolvedMember{
			Name:        m.Name,
			WireName:    m.Options.Rename,
			Index:       m.Index,
			Type:        m.Type,
			Nullable:    m.Nullable,
			Required:    m.Required(),
			KeepNull:    m.Options.KeepNull,
			Serialize:   dirs.Has(analyze.CanSerialize) && !m.Options.SkipSerialize,
			Deserialize: dirs.Has(analyze.CanDeserialize) && !m.Options.SkipDeserialize,
		}

		if rm.WireName == "" {
			rm.WireName = naming.Apply(codec.Naming, m.Name)
		}

		if prev, dup := wireOwners[rm.WireName]; dup {
			diags.AddError(diagnostic.CodeDuplicateWireName,
				fmt.Sprintf("wire name %q is also used by %s", rm.WireName, prev), typ, m.Name)
		}

		wireOwners[rm.WireName] = m.Name

		for _, opt := range m.Options.Unknown {
			diags.AddWarning(diagnostic.CodeBadTag, fmt.Sprintf("unknown tag option %q", opt), typ, m.Name)
		}

		var need analyze.Capability
		if rm.Serialize {
			need |= analyze.CanSerialize
		}

		if rm.Deserialize {
			need |= analyze.CanDeserialize
		}

		if need != 0 {
			rq := request{
				unit:   unit,
				ctxPkg: t.ID.PkgPath,
				owner:  typ,
				member: m.Name,
				path:   analyze.NewTypePath(t.ID.Name).Field(m.Name),
			}
			rm.Adapter = r.resolveAdapter(rq, m.Type, m.Wrap, need, diags)
		}

		codec.Members = append(codec.Members, rm)
	}

	codec.Info = r.infos.LookupOrCreate(SynthesisKey{Unit: unit, Target: t.ID}, func() *SerdeInfo {
		return &SerdeInfo{
			Name: t.ID.Name,
			Kind: InfoCustom,
			Fields: lo.Map(codec.Members, func(m ResolvedMember, _ int) FieldDescriptor {
				return FieldDescriptor{WireName: m.WireName, Member: m.Name, Type: r.descriptor(m.Type)}
			}),
		}
	})

	if dirs.Has(analyze.CanSerialize) {
		codec.Serialize = serializePlan(codec)
	}

	if dirs.Has(analyze.CanDeserialize) {
		codec.Deserialize = deserializePlan(codec)
	}
}

// dataMembers lists the members of t with configuration overrides merged
// over the struct tags. Members skipped by configuration are dropped and the
// remaining ones renumbered.
func (r *Resolver) dataMembers(t *analyze.TypeInfo) []analyze.DataMember {
	members := analyze.DataMembers(t)

	tc := r.opts.Overrides.For(t.ID)
	if tc == nil {
		return members
	}

	out := make([]analyze.DataMember, 0, len(members))

	for _, m := range members {
		if mc := tc.Member(m.Name); mc != nil {
			if mc.Skip {
				continue
			}

			m = m.WithOverrides(mc.Options())
		}

		m.Index = len(out)
		out = append(out, m)
	}

	return out
}

// serializePlan lists the fields written, in index order.
func serializePlan(codec *Codec) *SerializePlan {
	p := &SerializePlan{}

	for _, m := range codec.Members {
		if !m.Serialize {
			continue
		}

		p.Fields = append(p.Fields, SerializeStep{
			Index:   m.Index,
			Member:  m.Name,
			Adapter: m.Adapter,
			SkipNil: m.Nullable && !m.KeepNull,
		})
	}

	return p
}

// deserializePlan assigns slots and completeness bits. Bit i stands for the
// field at index i.
func deserializePlan(codec *Codec) *DeserializePlan {
	p := &DeserializePlan{
		FieldCount:  len(codec.Members),
		Mask:        MaskWidth(len(codec.Members)),
		DenyUnknown: codec.DenyUnknown,
	}

	for _, m := range codec.Members {
		if !m.Deserialize {
			p.Skipped = append(p.Skipped, m.Index)
			continue
		}

		p.Slots = append(p.Slots, Slot{
			Index:    m.Index,
			Member:   m.Name,
			Var:      "m" + m.Name,
			Adapter:  m.Adapter,
			Required: m.Required,
		})

		if m.Required {
			p.Required = append(p.Required, m.Index)
		}
	}

	return p
}

// MaskWidth returns the smallest unsigned integer width holding one bit per
// field, or 0 above 64 fields.
func MaskWidth(fields int) int {
	for _, w := range []int{8, 16, 32, 64} {
		if fields <= w {
			return w
		}
	}

	return 0
}

// planEnum maps enum constants to wire names. Foreign enums only see their
// exported constants.
func (r *Resolver) planEnum(unit string, codec *Codec, diags *diagnostic.Diagnostics) {
	t := codec.Target
	typ := t.ID.String()

	if t.Underlying == nil {
		diags.AddError(diagnostic.CodeUnsupportedType, "enum has no underlying type", typ, "")
		return
	}

	wrapper, ok := PrimitiveWrapper(t.Underlying.ID.Name)
	if !ok {
		diags.AddError(diagnostic.CodeUnsupportedType,
			fmt.Sprintf("enums over %s are not supported", t.Underlying.ID.Name), typ, "")

		return
	}

	foreign := t.ID.PkgPath != unit
	consts := lo.Filter(t.EnumMembers, func(c analyze.EnumMember, _ int) bool {
		return !foreign || token.IsExported(c.Name)
	})

	if len(consts) == 0 {
		diags.AddError(diagnostic.CodeUnsupportedType, "enum has no constants visible to "+unit, typ, "")
		return
	}

	p := &EnumPlan{Underlying: t.Underlying.ID.Name, Wrapper: wrapper}
	byValue := map[string]string{}
	byWire := map[string]string{}

	for _, c := range consts {
		ev := EnumValue{Const: c.Name, WireName: naming.Apply(codec.Naming, c.Name), Value: c.Value}

		if prev, dup := byWire[ev.WireName]; dup {
			diags.AddError(diagnostic.CodeDuplicateWireName,
				fmt.Sprintf("wire name %q is also used by %s", ev.WireName, prev), typ, c.Name)

			continue
		}

		byWire[ev.WireName] = c.Name
		p.Decode = append(p.Decode, ev)

		if prev, dup := byValue[c.Value]; dup {
			diags.AddWarning(diagnostic.CodeDuplicateEnumValue,
				fmt.Sprintf("%s has the value of %s; %s is written", c.Name, prev, prev), typ, c.Name)

			continue
		}

		byValue[c.Value] = c.Name
		p.Encode = append(p.Encode, ev)
	}

	codec.Enum = p
	codec.Info = r.infos.LookupOrCreate(SynthesisKey{Unit: unit, Target: t.ID}, func() *SerdeInfo {
		return &SerdeInfo{
			Name: t.ID.Name,
			Kind: InfoEnum,
			Fields: lo.Map(p.Decode, func(ev EnumValue, _ int) FieldDescriptor {
				return FieldDescriptor{WireName: ev.WireName, Member: ev.Const, Type: p.Underlying}
			}),
		}
	})
}

// planConvert adapts a named non-struct type through its underlying type.
func (r *Resolver) planConvert(unit string, codec *Codec, dirs analyze.Capability, diags *diagnostic.Diagnostics) {
	t := codec.Target

	rq := request{
		unit:   unit,
		ctxPkg: t.ID.PkgPath,
		owner:  t.ID.String(),
		path:   analyze.NewTypePath(t.ID.Name),
	}

	codec.Convert = r.resolveAdapter(rq, t.Underlying, "", dirs, diags)
}

// descriptor names a member type in a field table: the basic type name for
// primitives and "pkg.Name" for named types.
func (r *Resolver) descriptor(t *analyze.TypeInfo) string {
	if t == nil {
		return ""
	}

	if t.IsNamed() {
		if t.ID.PkgPath == "" {
			return t.ID.Name
		}

		return r.graph.PackageName(t.ID.PkgPath) + "." + t.ID.Name
	}

	switch t.Kind {
	case analyze.TypeKindPointer:
		return "*" + r.descriptor(t.ElemType)
	case analyze.TypeKindSlice:
		return "[]" + r.descriptor(t.ElemType)
	case analyze.TypeKindMap:
		return "map[" + r.descriptor(t.KeyType) + "]" + r.descriptor(t.ElemType)
	default:
		return analyze.TypeString(t)
	}
}
