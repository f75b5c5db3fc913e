package json

import (
	"bytes"
	"io"
	"strconv"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"

	"serde-generator/serde"
)

// Unmarshal reads JSON data into v. Anything but whitespace after the value
// is an error.
func Unmarshal(data []byte, v serde.Deserializable) error {
	iter := api.BorrowIterator(data)
	defer api.ReturnIterator(iter)

	if err := NewDeserializer(iter).decode(v); err != nil {
		return err
	}

	if next := iter.WhatIsNext(); next != jsoniter.InvalidValue || iter.Error != io.EOF {
		return serde.InvalidValue("end of input", "trailing data")
	}

	return nil
}

// decodeMember reads one buffered object member into v.
func decodeMember(raw []byte, v serde.Deserializable) error {
	iter := api.BorrowIterator(raw)
	defer api.ReturnIterator(iter)

	return NewDeserializer(iter).decode(v)
}

// UnmarshalWith reads JSON data through the adapter w.
func UnmarshalWith[T any](data []byte, w serde.Deserialize[T]) (T, error) {
	var v T
	err := Unmarshal(data, serde.Slot(&v, w))

	return v, err
}

// Deserializer reads serde events from a jsoniter iterator.
type Deserializer struct {
	iter *jsoniter.Iterator
}

// NewDeserializer returns a Deserializer reading from iter.
func NewDeserializer(iter *jsoniter.Iterator) *Deserializer {
	return &Deserializer{iter: iter}
}

// err returns the iterator's error. Reaching the end of the input, as a
// number at the end of a document does, is not one.
func (d *Deserializer) err() error {
	if d.iter.Error == io.EOF {
		return nil
	}

	return d.iter.Error
}

// decode reads one value into v.
func (d *Deserializer) decode(v serde.Deserializable) error {
	if err := v.DeserializeSerde(d); err != nil {
		return err
	}

	return d.err()
}

func (d *Deserializer) expect(want jsoniter.ValueType) error {
	if err := d.err(); err != nil {
		return err
	}

	if got := d.iter.WhatIsNext(); got != want {
		return serde.InvalidValue(valueTypeName(want), valueTypeName(got))
	}

	return nil
}

func (d *Deserializer) DeserializeBool() (bool, error) {
	if err := d.expect(jsoniter.BoolValue); err != nil {
		return false, err
	}

	v := d.iter.ReadBool()

	return v, d.err()
}

func (d *Deserializer) DeserializeChar() (rune, error) {
	s, err := d.DeserializeString()
	if err != nil {
		return 0, err
	}

	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) {
		return 0, serde.InvalidValue("single character", strconv.Quote(s))
	}

	return r, nil
}

func (d *Deserializer) DeserializeU8() (uint8, error) {
	if err := d.expect(jsoniter.NumberValue); err != nil {
		return 0, err
	}

	v := d.iter.ReadUint8()

	return v, d.err()
}

func (d *Deserializer) DeserializeU16() (uint16, error) {
	if err := d.expect(jsoniter.NumberValue); err != nil {
		return 0, err
	}

	v := d.iter.ReadUint16()

	return v, d.err()
}

func (d *Deserializer) DeserializeU32() (uint32, error) {
	if err := d.expect(jsoniter.NumberValue); err != nil {
		return 0, err
	}

	v := d.iter.ReadUint32()

	return v, d.err()
}

func (d *Deserializer) DeserializeU64() (uint64, error) {
	if err := d.expect(jsoniter.NumberValue); err != nil {
		return 0, err
	}

	v := d.iter.ReadUint64()

	return v, d.err()
}

func (d *Deserializer) DeserializeI8() (int8, error) {
	if err := d.expect(jsoniter.NumberValue); err != nil {
		return 0, err
	}

	v := d.iter.ReadInt8()

	return v, d.err()
}

func (d *Deserializer) DeserializeI16() (int16, error) {
	if err := d.expect(jsoniter.NumberValue); err != nil {
		return 0, err
	}

	v := d.iter.ReadInt16()

	return v, d.err()
}

func (d *Deserializer) DeserializeI32() (int32, error) {
	if err := d.expect(jsoniter.NumberValue); err != nil {
		return 0, err
	}

	v := d.iter.ReadInt32()

	return v, d.err()
}

func (d *Deserializer) DeserializeI64() (int64, error) {
	if err := d.expect(jsoniter.NumberValue); err != nil {
		return 0, err
	}

	v := d.iter.ReadInt64()

	return v, d.err()
}

func (d *Deserializer) DeserializeF32() (float32, error) {
	if err := d.expect(jsoniter.NumberValue); err != nil {
		return 0, err
	}

	v := d.iter.ReadFloat32()

	return v, d.err()
}

func (d *Deserializer) DeserializeF64() (float64, error) {
	if err := d.expect(jsoniter.NumberValue); err != nil {
		return 0, err
	}

	v := d.iter.ReadFloat64()

	return v, d.err()
}

func (d *Deserializer) DeserializeString() (string, error) {
	if err := d.expect(jsoniter.StringValue); err != nil {
		return "", err
	}

	v := d.iter.ReadString()

	return v, d.err()
}

// DeserializeStringVisit passes unescaped strings to VisitUTF8 straight from
// the iterator buffer. Strings containing escapes are decoded first and go to
// VisitString.
func (d *Deserializer) DeserializeStringVisit(v serde.StringVisitor) error {
	if err := d.expect(jsoniter.StringValue); err != nil {
		return err
	}

	raw := d.iter.ReadStringAsSlice()
	if err := d.err(); err != nil {
		return err
	}

	if bytes.IndexByte(raw, '\\') < 0 {
		return v.VisitUTF8(raw)
	}

	var s string
	if err := api.Unmarshal(append(append([]byte{'"'}, raw...), '"'), &s); err != nil {
		return err
	}

	return v.VisitString(s)
}

func (d *Deserializer) TryDeserializeNull() (bool, error) {
	if err := d.err(); err != nil {
		return false, err
	}

	if d.iter.WhatIsNext() != jsoniter.NilValue {
		return false, nil
	}

	d.iter.ReadNil()

	return true, d.err()
}

func (d *Deserializer) ReadType(_ *serde.TypeInfo) (serde.TypeDeserializer, error) {
	members, err := d.readObject()
	if err != nil {
		return nil, err
	}

	return &typeDeserializer{members: members}, nil
}

func (d *Deserializer) ReadCollection(_ *serde.TypeInfo) (serde.CollectionDeserializer, error) {
	if err := d.expect(jsoniter.ArrayValue); err != nil {
		return nil, err
	}

	return &collectionDeserializer{d: d}, nil
}

func (d *Deserializer) ReadDictionary(_ *serde.TypeInfo) (serde.DictionaryDeserializer, error) {
	members, err := d.readObject()
	if err != nil {
		return nil, err
	}

	return &dictionaryDeserializer{members: members}, nil
}

// member is an object key with the raw bytes of its value.
type member struct {
	key string
	raw []byte
}

// readObject buffers the members of the next object. The pull-style
// ReadObject reports both the end of an object and the key "" as an empty
// string, so members are collected with the callback reader instead.
func (d *Deserializer) readObject() ([]member, error) {
	if err := d.expect(jsoniter.ObjectValue); err != nil {
		return nil, err
	}

	var members []member

	ok := d.iter.ReadMapCB(func(iter *jsoniter.Iterator, key string) bool {
		raw := iter.SkipAndReturnBytes()
		members = append(members, member{key: key, raw: raw})

		return iter.Error == nil
	})
	if !ok {
		if err := d.err(); err != nil {
			return nil, err
		}

		return nil, io.ErrUnexpectedEOF
	}

	return members, nil
}

type typeDeserializer struct {
	members []member
	next    int
	current []byte
}

func (t *typeDeserializer) TryReadIndex(info *serde.TypeInfo) (int, error) {
	if t.next == len(t.members) {
		return serde.EndOfType, nil
	}

	m := t.members[t.next]
	t.next++
	t.current = m.raw

	return info.IndexOf(m.key), nil
}

func (t *typeDeserializer) ReadValue(_ int, into serde.Deserializable) error {
	return decodeMember(t.current, into)
}

// SkipValue has nothing to do: the value was skipped when it was buffered.
func (t *typeDeserializer) SkipValue() error {
	return nil
}

type collectionDeserializer struct {
	d *Deserializer
}

func (c *collectionDeserializer) SizeHint() int {
	return -1
}

func (c *collectionDeserializer) TryReadElement(into serde.Deserializable) (bool, error) {
	if !c.d.iter.ReadArray() {
		return false, c.d.err()
	}

	return true, into.DeserializeSerde(c.d)
}

type dictionaryDeserializer struct {
	members []member
	next    int
	current []byte
}

func (m *dictionaryDeserializer) SizeHint() int {
	return len(m.members)
}

func (m *dictionaryDeserializer) TryReadKey(into serde.Deserializable) (bool, error) {
	if m.next == len(m.members) {
		return false, nil
	}

	e := m.members[m.next]
	m.next++
	m.current = e.raw

	return true, into.DeserializeSerde(keyDeserializer(e.key))
}

func (m *dictionaryDeserializer) ReadValue(into serde.Deserializable) error {
	return decodeMember(m.current, into)
}

func valueTypeName(t jsoniter.ValueType) string {
	switch t {
	case jsoniter.StringValue:
		return "string"
	case jsoniter.NumberValue:
		return "number"
	case jsoniter.NilValue:
		return "null"
	case jsoniter.BoolValue:
		return "bool"
	case jsoniter.ArrayValue:
		return "array"
	case jsoniter.ObjectValue:
		return "object"
	default:
		return "invalid"
	}
}
