// Package serdetest provides protocol-level test doubles: a Serializer that
// records the calls made against it and a Deserializer that replays a scripted
// value tree.
package serdetest

import (
	"fmt"

	"serde-generator/serde"
)

// Recorder is a serde.Serializer logging one line per protocol event.
type Recorder struct {
	Events []string
}

func (r *Recorder) add(format string, args ...any) error {
	r.Events = append(r.Events, fmt.Sprintf(format, args...))
	return nil
}

func (r *Recorder) SerializeBool(v bool) error     { return r.add("bool %t", v) }
func (r *Recorder) SerializeChar(v rune) error     { return r.add("char %q", v) }
func (r *Recorder) SerializeU8(v uint8) error      { return r.add("u8 %d", v) }
func (r *Recorder) SerializeU16(v uint16) error    { return r.add("u16 %d", v) }
func (r *Recorder) SerializeU32(v uint32) error    { return r.add("u32 %d", v) }
func (r *Recorder) SerializeU64(v uint64) error    { return r.add("u64 %d", v) }
func (r *Recorder) SerializeI8(v int8) error       { return r.add("i8 %d", v) }
func (r *Recorder) SerializeI16(v int16) error     { return r.add("i16 %d", v) }
func (r *Recorder) SerializeI32(v int32) error     { return r.add("i32 %d", v) }
func (r *Recorder) SerializeI64(v int64) error     { return r.add("i64 %d", v) }
func (r *Recorder) SerializeF32(v float32) error   { return r.add("f32 %g", v) }
func (r *Recorder) SerializeF64(v float64) error   { return r.add("f64 %g", v) }
func (r *Recorder) SerializeString(v string) error { return r.add("string %q", v) }
func (r *Recorder) SerializeNull() error           { return r.add("null") }

func (r *Recorder) SerializeEnumValue(info *serde.TypeInfo, name string, value serde.Serializable) error {
	_ = r.add("enum %s %q", info.Name(), name)
	return value.SerializeSerde(r)
}

func (r *Recorder) SerializeType(info *serde.TypeInfo) (serde.TypeSerializer, error) {
	_ = r.add("type %s %d", info.Name(), info.FieldCount())
	return &recorderScope{r: r}, nil
}

func (r *Recorder) SerializeCollection(_ *serde.TypeInfo, length int) (serde.CollectionSerializer, error) {
	_ = r.add("collection %d", length)
	return &recorderScope{r: r}, nil
}

func (r *Recorder) SerializeDictionary(_ *serde.TypeInfo, length int) (serde.DictionarySerializer, error) {
	_ = r.add("dictionary %d", length)
	return &recorderScope{r: r}, nil
}

type recorderScope struct {
	r *Recorder
}

func (s *recorderScope) SerializeField(info *serde.TypeInfo, index int, value serde.Serializable) error {
	_ = s.r.add("field %d %s", index, info.FieldName(index))
	return value.SerializeSerde(s.r)
}

func (s *recorderScope) SkipField(info *serde.TypeInfo, index int) error {
	return s.r.add("skip %d %s", index, info.FieldName(index))
}

func (s *recorderScope) SerializeElement(value serde.Serializable) error {
	return value.SerializeSerde(s.r)
}

func (s *recorderScope) SerializeKey(key serde.Serializable) error {
	_ = s.r.add("key")
	return key.SerializeSerde(s.r)
}

func (s *recorderScope) SerializeValue(value serde.Serializable) error {
	return value.SerializeSerde(s.r)
}

func (s *recorderScope) End() error {
	return s.r.add("end")
}

// FieldNames returns the wire names of the "field" events in order.
func (r *Recorder) FieldNames() []string {
	var names []string

	for _, e := range r.Events {
		var (
			index int
			name  string
		)

		if _, err := fmt.Sscanf(e, "field %d %s", &index, &name); err == nil {
			names = append(names, name)
		}
	}

	return names
}
