package gen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"serde-generator/internal/analyze"
	"serde-generator/internal/plan"
)

// fileData holds everything the unit template renders.
type fileData struct {
	PkgName  string
	Imports  []importSpec
	Infos    []infoData
	Types    []typeData
	Wrappers []wrapperData
	Codecs   []codecData
}

// infoData is one package-level field table variable.
type infoData struct {
	Var    string
	Kind   string
	Name   string
	Fields []string
}

// typeData are the methods of an annotated type.
type typeData struct {
	Name        string
	FuncName    string
	InfoVar     string
	Serialize   bool
	Deserialize bool
}

// wrapperData is a synthesized adapter type.
type wrapperData struct {
	Name        string
	FuncName    string
	Type        string
	Serialize   bool
	Deserialize bool
}

// codecData are the helper functions shared by an annotated type and its
// wrappers.
type codecData struct {
	Kind        string
	FuncName    string
	Type        string
	InfoVar     string
	Serialize   bool
	Deserialize bool

	// struct
	Fields       []serializeField
	Slots        []slotData
	Skipped      []int
	DenyUnknown  bool
	MaskType     string
	Bits         bool
	FieldCount   int
	RequiredMask string
	Required     string
	Literal      []literalField

	// enum
	Encode      []enumCase
	Decode      []enumCase
	Underlying  string
	EnumWrapper string
	Visitor     string

	// convert
	Conversion string
	ConvertSer string
	ConvertDe  string
}

// HasRequired reports whether the read loop tracks assigned fields.
func (c codecData) HasRequired() bool {
	return c.Required != ""
}

type serializeField struct {
	Index   int
	Expr    string
	Adapter string
	SkipNil bool
}

type slotData struct {
	Index   int
	Var     string
	Type    string
	Adapter string
}

type literalField struct {
	Member string
	Var    string
}

type enumCase struct {
	Const string
	Wire  string
}

// buildFileData renders the names and type expressions of one unit. Types
// and wrappers arrive sorted, so the output is deterministic.
func (g *Generator) buildFileData(u *plan.Unit, f *typeFormatter) *fileData {
	data := &fileData{PkgName: u.PkgName}

	// The runtime import comes first so that user packages named serde get
	// a suffixed alias.
	f.qualifier(analyze.RuntimePkgPath, runtimeAlias)

	for _, t := range u.Types {
		data.Types = append(data.Types, typeData{
			Name:        t.Name,
			FuncName:    t.Codec.FuncName,
			InfoVar:     infoVar(t.Codec),
			Serialize:   t.Serialize,
			Deserialize: t.Deserialize,
		})

		g.addCodec(data, t.Codec, t.Serialize, t.Deserialize, f)
	}

	for _, w := range u.Wrappers {
		c := w.Codec()
		data.Wrappers = append(data.Wrappers, wrapperData{
			Name:        w.Name,
			FuncName:    c.FuncName,
			Type:        f.typeString(c.Target),
			Serialize:   w.Serialize != nil,
			Deserialize: w.Deserialize != nil,
		})

		if w.Serialize != nil {
			g.addCodec(data, w.Serialize, true, false, f)
		}

		if w.Deserialize != nil {
			g.addCodec(data, w.Deserialize, false, true, f)
		}
	}

	data.Imports = f.imports()

	return data
}

func infoVar(c *plan.Codec) string {
	if c.Info == nil {
		return ""
	}

	return "serdeInfo" + c.FuncName
}

func (g *Generator) addCodec(data *fileData, c *plan.Codec, ser, de bool, f *typeFormatter) {
	cd := codecData{
		Kind:        c.Kind.String(),
		FuncName:    c.FuncName,
		Type:        f.typeString(c.Target),
		InfoVar:     infoVar(c),
		Serialize:   ser,
		Deserialize: de,
	}

	// The directions of a wrapper share one field table.
	if c.Info != nil && !lo.ContainsBy(data.Infos, func(i infoData) bool { return i.Var == cd.InfoVar }) {
		data.Infos = append(data.Infos, buildInfo(cd.InfoVar, c.Info, f))
	}

	switch c.Kind {
	case plan.CodecStruct:
		buildStruct(&cd, c, f)
	case plan.CodecEnum:
		buildEnum(&cd, c, f)
	case plan.CodecConvert:
		cd.Conversion = f.conversionType(c.Target)
		cd.Underlying = f.conversionType(c.Convert.Target)

		if ser {
			cd.ConvertSer = f.adapterValue(c.Convert, dirSerialize)
		}

		if de {
			cd.ConvertDe = f.adapterValue(c.Convert, dirDeserialize)
		}
	}

	data.Codecs = append(data.Codecs, cd)
}

func buildInfo(varName string, info *plan.SerdeInfo, f *typeFormatter) infoData {
	kind := "KindCustom"
	if info.Kind == plan.InfoEnum {
		kind = "KindEnum"
	}

	return infoData{
		Var:  varName,
		Kind: f.runtime(kind),
		Name: strconv.Quote(info.Name),
		Fields: lo.Map(info.Fields, func(fd plan.FieldDescriptor, _ int) string {
			return fmt.Sprintf("%s(%s, %s, %s)", f.runtime("Field"),
				strconv.Quote(fd.WireName), strconv.Quote(fd.Member), strconv.Quote(fd.Type))
		}),
	}
}

func buildStruct(cd *codecData, c *plan.Codec, f *typeFormatter) {
	if c.Serialize != nil {
		for _, step := range c.Serialize.Fields {
			cd.Fields = append(cd.Fields, serializeField{
				Index:   step.Index,
				Expr:    "v." + step.Member,
				Adapter: f.adapterValue(step.Adapter, dirSerialize),
				SkipNil: step.SkipNil,
			})
		}
	}

	p := c.Deserialize
	if p == nil {
		return
	}

	members := lo.KeyBy(c.Members, func(m plan.ResolvedMember) string { return m.Name })

	for _, s := range p.Slots {
		cd.Slots = append(cd.Slots, slotData{
			Index:   s.Index,
			Var:     s.Var,
			Type:    f.typeString(members[s.Member].Type),
			Adapter: f.adapterValue(s.Adapter, dirDeserialize),
		})
		cd.Literal = append(cd.Literal, literalField{Member: s.Member, Var: s.Var})
	}

	cd.Skipped = p.Skipped
	cd.DenyUnknown = p.DenyUnknown
	cd.FieldCount = p.FieldCount

	if len(p.Required) == 0 {
		return
	}

	cd.Required = strings.Join(lo.Map(p.Required, func(i, _ int) string { return strconv.Itoa(i) }), ", ")

	if p.Mask == 0 {
		cd.Bits = true
		cd.MaskType = f.runtime("Bits")

		return
	}

	cd.MaskType = plan.MaskType(p.Mask)
	cd.RequiredMask = fmt.Sprintf("%#x", p.RequiredMask())
}

func buildEnum(cd *codecData, c *plan.Codec, f *typeFormatter) {
	e := c.Enum
	q := f.qualifier(c.Target.ID.PkgPath, "")

	toCase := func(ev plan.EnumValue, _ int) enumCase {
		return enumCase{Const: q + ev.Const, Wire: strconv.Quote(ev.WireName)}
	}

	cd.Encode = lo.Map(e.Encode, toCase)
	cd.Decode = lo.Map(e.Decode, toCase)
	cd.Underlying = e.Underlying
	cd.EnumWrapper = f.runtime(e.Wrapper) + "{}"
	cd.Visitor = "serde" + c.FuncName + "Visitor"
}
