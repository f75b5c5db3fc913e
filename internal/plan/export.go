package plan

import (
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"serde-generator/internal/analyze"
	"serde-generator/internal/diagnostic"
)

// PlanDocument is the YAML form of a GenerationPlan, printed by
// `serde-generator plan` for review.
type PlanDocument struct {
	Units       []UnitDocument       `yaml:"units"`
	Diagnostics []DiagnosticDocument `yaml:"diagnostics,omitempty"`
}

// UnitDocument is one output package.
type UnitDocument struct {
	Package  string          `yaml:"package"`
	Complete bool            `yaml:"complete"`
	Types    []CodecDocument `yaml:"types,omitempty"`
	Wrappers []CodecDocument `yaml:"wrappers,omitempty"`
}

// CodecDocument is one annotated type or wrapper.
type CodecDocument struct {
	Name        string          `yaml:"name"`
	Target      string          `yaml:"target"`
	Codec       string          `yaml:"codec"`
	Naming      string          `yaml:"naming,omitempty"`
	Directions  []string        `yaml:"directions,flow"`
	DenyUnknown bool            `yaml:"deny_unknown,omitempty"`
	Mask        string          `yaml:"mask,omitempty"`
	Fields      []FieldDocument `yaml:"fields,omitempty"`
	Enum        []EnumDocument  `yaml:"enum,omitempty"`
	Convert     string          `yaml:"convert,omitempty"`
	Incomplete  bool            `yaml:"incomplete,omitempty"`
}

// FieldDocument is one member of a struct codec.
type FieldDocument struct {
	Index    int      `yaml:"index"`
	Member   string   `yaml:"member"`
	Wire     string   `yaml:"wire"`
	Adapter  string   `yaml:"adapter"`
	Required bool     `yaml:"required,omitempty"`
	Flags    []string `yaml:"flags,flow,omitempty"`
}

// EnumDocument is one enum constant.
type EnumDocument struct {
	Const string `yaml:"const"`
	Wire  string `yaml:"wire"`
	Value string `yaml:"value"`
	// Alias is set on constants that share the value of an earlier one.
	Alias bool `yaml:"alias,omitempty"`
}

// DiagnosticDocument is one diagnostic.
type DiagnosticDocument struct {
	Severity    string   `yaml:"severity"`
	Code        string   `yaml:"code"`
	Type        string   `yaml:"type,omitempty"`
	Member      string   `yaml:"member,omitempty"`
	Message     string   `yaml:"message"`
	Suggestions []string `yaml:"suggestions,flow,omitempty"`
}

// Export converts a plan to its document form.
func Export(plan *GenerationPlan) *PlanDocument {
	doc := &PlanDocument{}

	for _, u := range plan.Units {
		ud := UnitDocument{Package: u.PkgPath, Complete: u.Complete()}

		for _, t := range u.Types {
			cd := exportCodec(t.Name, t.Codec)
			cd.Directions = directions(t.Serialize, t.Deserialize)
			ud.Types = append(ud.Types, cd)
		}

		for _, w := range u.Wrappers {
			ud.Wrappers = append(ud.Wrappers, exportWrapper(w))
		}

		doc.Units = append(doc.Units, ud)
	}

	doc.Diagnostics = lo.Map(plan.Diagnostics.All(), func(d diagnostic.Diagnostic, _ int) DiagnosticDocument {
		return DiagnosticDocument{
			Severity:    d.Severity.String(),
			Code:        d.Code,
			Type:        d.Type,
			Member:      d.Member,
			Message:     d.Message,
			Suggestions: d.Suggestions,
		}
	})

	return doc
}

// ExportYAML renders a plan as YAML.
func ExportYAML(plan *GenerationPlan) ([]byte, error) {
	return yaml.Marshal(Export(plan))
}

func exportCodec(name string, c *Codec) CodecDocument {
	cd := CodecDocument{
		Name:        name,
		Target:      analyze.TypeString(c.Target),
		Codec:       c.Kind.String(),
		DenyUnknown: c.DenyUnknown,
		Incomplete:  c.Incomplete,
	}

	if c.Kind != CodecConvert {
		cd.Naming = c.Naming.String()
	}

	if c.Deserialize != nil {
		cd.Mask = MaskType(c.Deserialize.Mask)
	}

	for _, m := range c.Members {
		cd.Fields = append(cd.Fields, FieldDocument{
			Index:    m.Index,
			Member:   m.Name,
			Wire:     m.WireName,
			Adapter:  adapterString(m),
			Required: m.Required,
			Flags:    memberFlags(m, c.Directions),
		})
	}

	if c.Enum != nil {
		encoded := lo.SliceToMap(c.Enum.Encode, func(ev EnumValue) (string, bool) { return ev.Const, true })

		for _, ev := range c.Enum.Decode {
			cd.Enum = append(cd.Enum, EnumDocument{
				Const: ev.Const,
				Wire:  ev.WireName,
				Value: ev.Value,
				Alias: !encoded[ev.Const],
			})
		}
	}

	if c.Convert != nil {
		cd.Convert = c.Convert.String()
	}

	return cd
}

// exportWrapper folds the directions of a wrapper into one document. Both
// codecs list the same members in the same order.
func exportWrapper(w *WrapperPlan) CodecDocument {
	cd := exportCodec(w.Name, w.Codec())
	cd.Directions = directions(w.Serialize != nil, w.Deserialize != nil)
	cd.Incomplete = w.Incomplete()

	if w.Serialize == nil || w.Deserialize == nil {
		return cd
	}

	de := exportCodec(w.Name, w.Deserialize)
	cd.Mask = de.Mask

	for i := range cd.Fields {
		if i >= len(de.Fields) {
			break
		}

		if ser, read := cd.Fields[i].Adapter, de.Fields[i].Adapter; ser != read {
			cd.Fields[i].Adapter = "ser=" + ser + " de=" + read
		}

		m := w.Serialize.Members[i]
		m.Deserialize = w.Deserialize.Members[i].Deserialize
		cd.Fields[i].Flags = memberFlags(m, analyze.CanBoth)
	}

	if cd.Convert != de.Convert {
		cd.Convert = "ser=" + cd.Convert + " de=" + de.Convert
	}

	return cd
}

func adapterString(m ResolvedMember) string {
	if m.Adapter == nil && !m.Serialize && !m.Deserialize {
		return "-"
	}

	return m.Adapter.String()
}

// memberFlags lists the options of m. Skips are only reported for the
// directions the codec was planned for.
func memberFlags(m ResolvedMember, dirs analyze.Capability) []string {
	var flags []string
	if dirs.Has(analyze.CanSerialize) && !m.Serialize {
		flags = append(flags, "skip_serialize")
	}

	if dirs.Has(analyze.CanDeserialize) && !m.Deserialize {
		flags = append(flags, "skip_deserialize")
	}

	if m.Nullable {
		flags = append(flags, "nullable")
	}

	if m.KeepNull {
		flags = append(flags, "keep_null")
	}

	return flags
}

func directions(ser, de bool) []string {
	var out []string
	if ser {
		out = append(out, "serialize")
	}

	if de {
		out = append(out, "deserialize")
	}

	return out
}

// MaskType returns the Go type of a completeness mask of the given width.
func MaskType(width int) string {
	switch width {
	case 8:
		return "uint8"
	case 16:
		return "uint16"
	case 32:
		return "uint32"
	case 64:
		return "uint64"
	default:
		return "serde.Bits"
	}
}
