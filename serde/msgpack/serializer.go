// Package msgpack implements the serde protocol over MessagePack using
// vmihailenco/msgpack.
//
// Custom types are written as maps keyed by wire name so that field order,
// unknown fields and skipped fields behave exactly as in the JSON format.
// Dictionary keys keep their native MessagePack type.
package msgpack

import (
	"bytes"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"serde-generator/serde"
)

// Marshal writes v as MessagePack.
func Marshal(v serde.Serializable) ([]byte, error) {
	var buf bytes.Buffer

	enc := msgpack.GetEncoder()
	defer msgpack.PutEncoder(enc)

	enc.Reset(&buf)

	if err := v.SerializeSerde(NewSerializer(enc, &buf)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// MarshalWith writes v as MessagePack through the adapter w.
func MarshalWith[T any](v T, w serde.Serialize[T]) ([]byte, error) {
	return Marshal(serde.Bind(v, w))
}

// Serializer writes serde events to a msgpack encoder.
type Serializer struct {
	enc *msgpack.Encoder
	w   io.Writer
}

// NewSerializer returns a Serializer writing to enc. w must be the writer enc
// was reset to; buffered scopes copy their bytes to it directly.
func NewSerializer(enc *msgpack.Encoder, w io.Writer) *Serializer {
	return &Serializer{enc: enc, w: w}
}

func (s *Serializer) SerializeBool(v bool) error     { return s.enc.EncodeBool(v) }
func (s *Serializer) SerializeChar(v rune) error     { return s.enc.EncodeInt(int64(v)) }
func (s *Serializer) SerializeU8(v uint8) error      { return s.enc.EncodeUint(uint64(v)) }
func (s *Serializer) SerializeU16(v uint16) error    { return s.enc.EncodeUint(uint64(v)) }
func (s *Serializer) SerializeU32(v uint32) error    { return s.enc.EncodeUint(uint64(v)) }
func (s *Serializer) SerializeU64(v uint64) error    { return s.enc.EncodeUint(v) }
func (s *Serializer) SerializeI8(v int8) error       { return s.enc.EncodeInt(int64(v)) }
func (s *Serializer) SerializeI16(v int16) error     { return s.enc.EncodeInt(int64(v)) }
func (s *Serializer) SerializeI32(v int32) error     { return s.enc.EncodeInt(int64(v)) }
func (s *Serializer) SerializeI64(v int64) error     { return s.enc.EncodeInt(v) }
func (s *Serializer) SerializeF32(v float32) error   { return s.enc.EncodeFloat32(v) }
func (s *Serializer) SerializeF64(v float64) error   { return s.enc.EncodeFloat64(v) }
func (s *Serializer) SerializeString(v string) error { return s.enc.EncodeString(v) }
func (s *Serializer) SerializeNull() error           { return s.enc.EncodeNil() }

func (s *Serializer) SerializeEnumValue(_ *serde.TypeInfo, name string, value serde.Serializable) error {
	if name == "" {
		return value.SerializeSerde(s)
	}

	return s.enc.EncodeString(name)
}

// SerializeType buffers the fields: skipped fields are only known once the
// type is closed, and the map header carries the final count.
func (s *Serializer) SerializeType(_ *serde.TypeInfo) (serde.TypeSerializer, error) {
	return newBuffered(s), nil
}

func (s *Serializer) SerializeCollection(_ *serde.TypeInfo, length int) (serde.CollectionSerializer, error) {
	if length < 0 {
		return &bufferedCollection{b: newBuffered(s)}, nil
	}

	if err := s.enc.EncodeArrayLen(length); err != nil {
		return nil, err
	}

	return &collectionSerializer{s: s}, nil
}

func (s *Serializer) SerializeDictionary(_ *serde.TypeInfo, length int) (serde.DictionarySerializer, error) {
	if length < 0 {
		return &bufferedDictionary{b: newBuffered(s)}, nil
	}

	if err := s.enc.EncodeMapLen(length); err != nil {
		return nil, err
	}

	return &dictionarySerializer{s: s}, nil
}

// buffered collects entries in a scratch encoder and writes them after a
// header once the entry count is known.
type buffered struct {
	parent *Serializer
	buf    bytes.Buffer
	enc    *msgpack.Encoder
	s      *Serializer
	count  int
}

func newBuffered(parent *Serializer) *buffered {
	b := &buffered{parent: parent}
	b.enc = msgpack.GetEncoder()
	b.enc.Reset(&b.buf)
	b.s = NewSerializer(b.enc, &b.buf)

	return b
}

func (b *buffered) flush(header func(*msgpack.Encoder, int) error) error {
	defer msgpack.PutEncoder(b.enc)

	if err := header(b.parent.enc, b.count); err != nil {
		return err
	}

	_, err := b.parent.w.Write(b.buf.Bytes())

	return err
}

func (b *buffered) SerializeField(info *serde.TypeInfo, index int, value serde.Serializable) error {
	if err := b.enc.EncodeString(info.FieldName(index)); err != nil {
		return err
	}

	b.count++

	return value.SerializeSerde(b.s)
}

func (b *buffered) SkipField(*serde.TypeInfo, int) error {
	return nil
}

func (b *buffered) End() error {
	return b.flush((*msgpack.Encoder).EncodeMapLen)
}

type bufferedCollection struct {
	b *buffered
}

func (c *bufferedCollection) SerializeElement(value serde.Serializable) error {
	c.b.count++
	return value.SerializeSerde(c.b.s)
}

func (c *bufferedCollection) End() error {
	return c.b.flush((*msgpack.Encoder).EncodeArrayLen)
}

type bufferedDictionary struct {
	b *buffered
}

func (d *bufferedDictionary) SerializeKey(key serde.Serializable) error {
	d.b.count++
	return key.SerializeSerde(d.b.s)
}

func (d *bufferedDictionary) SerializeValue(value serde.Serializable) error {
	return value.SerializeSerde(d.b.s)
}

func (d *bufferedDictionary) End() error {
	return d.b.flush((*msgpack.Encoder).EncodeMapLen)
}

type collectionSerializer struct {
	s *Serializer
}

func (c *collectionSerializer) SerializeElement(value serde.Serializable) error {
	return value.SerializeSerde(c.s)
}

func (c *collectionSerializer) End() error {
	return nil
}

type dictionarySerializer struct {
	s *Serializer
}

func (d *dictionarySerializer) SerializeKey(key serde.Serializable) error {
	return key.SerializeSerde(d.s)
}

func (d *dictionarySerializer) SerializeValue(value serde.Serializable) error {
	return value.SerializeSerde(d.s)
}

func (d *dictionarySerializer) End() error {
	return nil
}
