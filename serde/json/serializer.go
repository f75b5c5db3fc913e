// Package json implements the serde protocol over JSON using the streaming
// API of json-iterator.
//
// Custom types are written as objects keyed by wire name, collections as
// arrays, dictionaries as objects whose keys are rendered as strings, and
// enums by member name (or by number when the value has no name).
package json

import (
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"serde-generator/serde"
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary

// Marshal writes v as JSON.
func Marshal(v serde.Serializable) ([]byte, error) {
	stream := api.BorrowStream(nil)
	defer api.ReturnStream(stream)

	if err := v.SerializeSerde(NewSerializer(stream)); err != nil {
		return nil, err
	}

	if stream.Error != nil {
		return nil, stream.Error
	}

	out := make([]byte, stream.Buffered())
	copy(out, stream.Buffer())

	return out, nil
}

// MarshalWith writes v as JSON through the adapter w.
func MarshalWith[T any](v T, w serde.Serialize[T]) ([]byte, error) {
	return Marshal(serde.Bind(v, w))
}

// Serializer writes serde events to a jsoniter stream.
type Serializer struct {
	stream *jsoniter.Stream
}

// NewSerializer returns a Serializer writing to stream.
func NewSerializer(stream *jsoniter.Stream) *Serializer {
	return &Serializer{stream: stream}
}

func (s *Serializer) SerializeBool(v bool) error {
	s.stream.WriteBool(v)
	return s.stream.Error
}

func (s *Serializer) SerializeChar(v rune) error {
	s.stream.WriteString(string(v))
	return s.stream.Error
}

func (s *Serializer) SerializeU8(v uint8) error {
	s.stream.WriteUint8(v)
	return s.stream.Error
}

func (s *Serializer) SerializeU16(v uint16) error {
	s.stream.WriteUint16(v)
	return s.stream.Error
}

func (s *Serializer) SerializeU32(v uint32) error {
	s.stream.WriteUint32(v)
	return s.stream.Error
}

func (s *Serializer) SerializeU64(v uint64) error {
	s.stream.WriteUint64(v)
	return s.stream.Error
}

func (s *Serializer) SerializeI8(v int8) error {
	s.stream.WriteInt8(v)
	return s.stream.Error
}

func (s *Serializer) SerializeI16(v int16) error {
	s.stream.WriteInt16(v)
	return s.stream.Error
}

func (s *Serializer) SerializeI32(v int32) error {
	s.stream.WriteInt32(v)
	return s.stream.Error
}

func (s *Serializer) SerializeI64(v int64) error {
	s.stream.WriteInt64(v)
	return s.stream.Error
}

func (s *Serializer) SerializeF32(v float32) error {
	s.stream.WriteFloat32(v)
	return s.stream.Error
}

func (s *Serializer) SerializeF64(v float64) error {
	s.stream.WriteFloat64(v)
	return s.stream.Error
}

func (s *Serializer) SerializeString(v string) error {
	s.stream.WriteString(v)
	return s.stream.Error
}

func (s *Serializer) SerializeNull() error {
	s.stream.WriteNil()
	return s.stream.Error
}

func (s *Serializer) SerializeEnumValue(_ *serde.TypeInfo, name string, value serde.Serializable) error {
	if name == "" {
		return value.SerializeSerde(s)
	}

	return s.SerializeString(name)
}

func (s *Serializer) SerializeType(_ *serde.TypeInfo) (serde.TypeSerializer, error) {
	s.stream.WriteObjectStart()
	return &typeSerializer{s: s, first: true}, s.stream.Error
}

func (s *Serializer) SerializeCollection(_ *serde.TypeInfo, _ int) (serde.CollectionSerializer, error) {
	s.stream.WriteArrayStart()
	return &collectionSerializer{s: s, first: true}, s.stream.Error
}

func (s *Serializer) SerializeDictionary(_ *serde.TypeInfo, _ int) (serde.DictionarySerializer, error) {
	s.stream.WriteObjectStart()
	return &dictionarySerializer{s: s, first: true}, s.stream.Error
}

type typeSerializer struct {
	s     *Serializer
	first bool
}

func (t *typeSerializer) SerializeField(info *serde.TypeInfo, index int, value serde.Serializable) error {
	if !t.first {
		t.s.stream.WriteMore()
	}

	t.first = false
	t.s.stream.WriteObjectField(info.FieldName(index))

	return value.SerializeSerde(t.s)
}

func (t *typeSerializer) SkipField(*serde.TypeInfo, int) error {
	return nil
}

func (t *typeSerializer) End() error {
	t.s.stream.WriteObjectEnd()
	return t.s.stream.Error
}

type collectionSerializer struct {
	s     *Serializer
	first bool
}

func (c *collectionSerializer) SerializeElement(value serde.Serializable) error {
	if !c.first {
		c.s.stream.WriteMore()
	}

	c.first = false

	return value.SerializeSerde(c.s)
}

func (c *collectionSerializer) End() error {
	c.s.stream.WriteArrayEnd()
	return c.s.stream.Error
}

type dictionarySerializer struct {
	s     *Serializer
	first bool
}

func (d *dictionarySerializer) SerializeKey(key serde.Serializable) error {
	if !d.first {
		d.s.stream.WriteMore()
	}

	d.first = false

	if err := key.SerializeSerde(&keySerializer{Serializer: d.s}); err != nil {
		return err
	}

	d.s.stream.WriteRaw(":")

	return d.s.stream.Error
}

func (d *dictionarySerializer) SerializeValue(value serde.Serializable) error {
	return value.SerializeSerde(d.s)
}

func (d *dictionarySerializer) End() error {
	d.s.stream.WriteObjectEnd()
	return d.s.stream.Error
}

// keySerializer renders scalar dictionary keys as JSON strings.
type keySerializer struct {
	*Serializer
}

func (k *keySerializer) SerializeBool(v bool) error {
	return k.SerializeString(strconv.FormatBool(v))
}

func (k *keySerializer) SerializeU8(v uint8) error   { return k.SerializeU64(uint64(v)) }
func (k *keySerializer) SerializeU16(v uint16) error { return k.SerializeU64(uint64(v)) }
func (k *keySerializer) SerializeU32(v uint32) error { return k.SerializeU64(uint64(v)) }
func (k *keySerializer) SerializeU64(v uint64) error {
	return k.SerializeString(strconv.FormatUint(v, 10))
}

func (k *keySerializer) SerializeI8(v int8) error   { return k.SerializeI64(int64(v)) }
func (k *keySerializer) SerializeI16(v int16) error { return k.SerializeI64(int64(v)) }
func (k *keySerializer) SerializeI32(v int32) error { return k.SerializeI64(int64(v)) }
func (k *keySerializer) SerializeI64(v int64) error {
	return k.SerializeString(strconv.FormatInt(v, 10))
}

func (k *keySerializer) SerializeF32(v float32) error {
	return k.SerializeString(strconv.FormatFloat(float64(v), 'g', -1, 32))
}

func (k *keySerializer) SerializeF64(v float64) error {
	return k.SerializeString(strconv.FormatFloat(v, 'g', -1, 64))
}

func (k *keySerializer) SerializeEnumValue(_ *serde.TypeInfo, name string, value serde.Serializable) error {
	if name == "" {
		return value.SerializeSerde(k)
	}

	return k.SerializeString(name)
}

func (k *keySerializer) SerializeType(*serde.TypeInfo) (serde.TypeSerializer, error) {
	return nil, serde.InvalidValue("scalar dictionary key", "object")
}

func (k *keySerializer) SerializeCollection(*serde.TypeInfo, int) (serde.CollectionSerializer, error) {
	return nil, serde.InvalidValue("scalar dictionary key", "array")
}

func (k *keySerializer) SerializeDictionary(*serde.TypeInfo, int) (serde.DictionarySerializer, error) {
	return nil, serde.InvalidValue("scalar dictionary key", "object")
}
