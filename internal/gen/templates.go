package gen

import "text/template"

var unitTemplate = template.Must(template.New("unit").Parse(`// Code generated by serde-generator. DO NOT EDIT.

package {{.PkgName}}

import (
{{range .Imports}}	{{if .Named}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{if .Infos}}
var (
{{range .Infos}}	{{.Var}} = serde.NewTypeInfo({{.Kind}}, {{.Name}},
{{range .Fields}}		{{.}},
{{end}}	)
{{end}})
{{end}}
{{range .Types}}{{template "methods" .}}{{end}}
{{range .Wrappers}}{{template "wrapper" .}}{{end}}
{{range .Codecs}}{{if eq .Kind "struct"}}{{template "struct" .}}{{else if eq .Kind "enum"}}{{template "enum" .}}{{else}}{{template "convert" .}}{{end}}{{end}}
`))

func init() {
	template.Must(unitTemplate.New("methods").Parse(`{{if .Serialize}}
// SerializeSerde implements serde.Serializable.
func (v *{{.Name}}) SerializeSerde(s serde.Serializer) error {
	return serialize{{.FuncName}}(v, s)
}
{{end}}{{if .Deserialize}}
// DeserializeSerde implements serde.Deserializable.
func (v *{{.Name}}) DeserializeSerde(d serde.Deserializer) error {
	return deserialize{{.FuncName}}(v, d)
}
{{end}}{{if .InfoVar}}
// SerdeInfo returns the field table of {{.Name}}.
func (*{{.Name}}) SerdeInfo() *serde.TypeInfo {
	return {{.InfoVar}}
}
{{end}}`))

	template.Must(unitTemplate.New("wrapper").Parse(`
// {{.Name}} adapts {{.Type}} to serde.
type {{.Name}} struct{}
{{if .Serialize}}
func ({{.Name}}) Serialize(v {{.Type}}, s serde.Serializer) error {
	return serialize{{.FuncName}}(&v, s)
}
{{end}}{{if .Deserialize}}
func ({{.Name}}) Deserialize(d serde.Deserializer) ({{.Type}}, error) {
	var v {{.Type}}
	err := deserialize{{.FuncName}}(&v, d)

	return v, err
}
{{end}}`))

	template.Must(unitTemplate.New("struct").Parse(`{{if .Serialize}}
func serialize{{.FuncName}}(v *{{.Type}}, s serde.Serializer) error {
	info := {{.InfoVar}}

	ts, err := s.SerializeType(info)
	if err != nil {
		return err
	}
{{range .Fields}}
{{if .SkipNil}}	if {{.Expr}} == nil {
		if err := ts.SkipField(info, {{.Index}}); err != nil {
			return err
		}
	} else if err := serde.SerializeField(ts, info, {{.Index}}, {{.Expr}}, {{.Adapter}}); err != nil {
		return err
	}
{{else}}	if err := serde.SerializeField(ts, info, {{.Index}}, {{.Expr}}, {{.Adapter}}); err != nil {
		return err
	}
{{end}}{{end}}
	return ts.End()
}
{{end}}{{if .Deserialize}}
func deserialize{{.FuncName}}(v *{{.Type}}, d serde.Deserializer) error {
	info := {{.InfoVar}}

	td, err := d.ReadType(info)
	if err != nil {
		return err
	}
{{if .Slots}}
	var (
{{range .Slots}}		{{.Var}} {{.Type}}
{{end}}	)
{{end}}{{if .HasRequired}}{{if .Bits}}
	assigned := serde.NewBits({{.FieldCount}})
{{else}}
	var assigned {{.MaskType}}
{{end}}{{end}}
	for {
		index, err := td.TryReadIndex(info)
		if err != nil {
			return err
		}

		if index == serde.EndOfType {
			break
		}

		switch index {
{{- $c := .}}
{{- range .Slots}}
		case {{.Index}}:
			{{.Var}}, err = serde.ReadValue[{{.Type}}](td, index, {{.Adapter}})
{{- if $c.HasRequired}}{{if $c.Bits}}
			assigned.Set({{.Index}})
{{- else}}
			assigned |= 1 << {{.Index}}
{{- end}}{{end}}
{{- end}}
{{- range .Skipped}}
		case {{.}}:
			err = td.SkipValue()
{{- end}}
		case serde.IndexNotFound:
{{- if .DenyUnknown}}
			return serde.UnknownMember(info)
{{- else}}
			err = td.SkipValue()
{{- end}}
		default:
			return serde.UnexpectedIndex(info, index)
		}

		if err != nil {
			return err
		}
	}
{{if .HasRequired}}{{if .Bits}}
	if required := serde.BitsOf({{.FieldCount}}, {{.Required}}); !assigned.Covers(required) {
		return serde.MissingMembersBits(info, assigned, required)
	}
{{else}}
	if assigned&{{.RequiredMask}} != {{.RequiredMask}} {
		return serde.MissingMembers(info, uint64(assigned), {{.RequiredMask}})
	}
{{end}}{{end}}
	*v = {{.Type}}{
{{range .Literal}}		{{.Member}}: {{.Var}},
{{end}}	}

	return nil
}
{{end}}`))

	template.Must(unitTemplate.New("enum").Parse(`{{if .Serialize}}
func serialize{{.FuncName}}(v *{{.Type}}, s serde.Serializer) error {
	var name string

	switch *v {
{{range .Encode}}	case {{.Const}}:
		name = {{.Wire}}
{{end}}	}

	return s.SerializeEnumValue({{.InfoVar}}, name, serde.Bind({{.Underlying}}(*v), {{.EnumWrapper}}))
}
{{end}}{{if .Deserialize}}
func deserialize{{.FuncName}}(v *{{.Type}}, d serde.Deserializer) error {
	return d.DeserializeStringVisit({{.Visitor}}{v: v})
}

type {{.Visitor}} struct {
	v *{{.Type}}
}

func (x {{.Visitor}}) VisitString(s string) error {
	switch s {
{{range .Decode}}	case {{.Wire}}:
		*x.v = {{.Const}}
{{end}}	default:
		return serde.InvalidEnum({{.InfoVar}}, s)
	}

	return nil
}

func (x {{.Visitor}}) VisitUTF8(b []byte) error {
	switch string(b) {
{{range .Decode}}	case {{.Wire}}:
		*x.v = {{.Const}}
{{end}}	default:
		return serde.InvalidEnum({{.InfoVar}}, string(b))
	}

	return nil
}
{{end}}`))

	template.Must(unitTemplate.New("convert").Parse(`{{if .Serialize}}
func serialize{{.FuncName}}(v *{{.Type}}, s serde.Serializer) error {
	return {{.ConvertSer}}.Serialize({{.Underlying}}(*v), s)
}
{{end}}{{if .Deserialize}}
func deserialize{{.FuncName}}(v *{{.Type}}, d serde.Deserializer) error {
	x, err := {{.ConvertDe}}.Deserialize(d)
	if err != nil {
		return err
	}

	*v = {{.Conversion}}(x)

	return nil
}
{{end}}`))
}
