package msgpack

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"serde-generator/serde"
)

// Unmarshal reads MessagePack data into v.
func Unmarshal(data []byte, v serde.Deserializable) error {
	dec := msgpack.GetDecoder()
	defer msgpack.PutDecoder(dec)

	dec.Reset(bytes.NewReader(data))

	return v.DeserializeSerde(NewDeserializer(dec))
}

// UnmarshalWith reads MessagePack data through the adapter w.
func UnmarshalWith[T any](data []byte, w serde.Deserialize[T]) (T, error) {
	var v T
	err := Unmarshal(data, serde.Slot(&v, w))

	return v, err
}

// Deserializer reads serde events from a msgpack decoder.
type Deserializer struct {
	dec *msgpack.Decoder
}

// NewDeserializer returns a Deserializer reading from dec.
func NewDeserializer(dec *msgpack.Decoder) *Deserializer {
	return &Deserializer{dec: dec}
}

func (d *Deserializer) DeserializeBool() (bool, error)       { return d.dec.DecodeBool() }
func (d *Deserializer) DeserializeChar() (rune, error)       { return d.dec.DecodeInt32() }
func (d *Deserializer) DeserializeU8() (uint8, error)        { return d.dec.DecodeUint8() }
func (d *Deserializer) DeserializeU16() (uint16, error)      { return d.dec.DecodeUint16() }
func (d *Deserializer) DeserializeU32() (uint32, error)      { return d.dec.DecodeUint32() }
func (d *Deserializer) DeserializeU64() (uint64, error)      { return d.dec.DecodeUint64() }
func (d *Deserializer) DeserializeI8() (int8, error)         { return d.dec.DecodeInt8() }
func (d *Deserializer) DeserializeI16() (int16, error)       { return d.dec.DecodeInt16() }
func (d *Deserializer) DeserializeI32() (int32, error)       { return d.dec.DecodeInt32() }
func (d *Deserializer) DeserializeI64() (int64, error)       { return d.dec.DecodeInt64() }
func (d *Deserializer) DeserializeF32() (float32, error)     { return d.dec.DecodeFloat32() }
func (d *Deserializer) DeserializeF64() (float64, error)     { return d.dec.DecodeFloat64() }
func (d *Deserializer) DeserializeString() (string, error)   { return d.dec.DecodeString() }

// DeserializeStringVisit always takes the string path; the decoder does not
// expose its read buffer.
func (d *Deserializer) DeserializeStringVisit(v serde.StringVisitor) error {
	s, err := d.dec.DecodeString()
	if err != nil {
		return err
	}

	return v.VisitString(s)
}

func (d *Deserializer) TryDeserializeNull() (bool, error) {
	c, err := d.dec.PeekCode()
	if err != nil {
		return false, err
	}

	if c != msgpcode.Nil {
		return false, nil
	}

	return true, d.dec.DecodeNil()
}

func (d *Deserializer) ReadType(_ *serde.TypeInfo) (serde.TypeDeserializer, error) {
	n, err := d.dec.DecodeMapLen()
	if err != nil {
		return nil, err
	}

	if n < 0 {
		return nil, serde.InvalidValue("map", "nil")
	}

	return &typeDeserializer{d: d, remaining: n}, nil
}

func (d *Deserializer) ReadCollection(_ *serde.TypeInfo) (serde.CollectionDeserializer, error) {
	n, err := d.dec.DecodeArrayLen()
	if err != nil {
		return nil, err
	}

	return &collectionDeserializer{d: d, remaining: max(n, 0)}, nil
}

func (d *Deserializer) ReadDictionary(_ *serde.TypeInfo) (serde.DictionaryDeserializer, error) {
	n, err := d.dec.DecodeMapLen()
	if err != nil {
		return nil, err
	}

	return &dictionaryDeserializer{d: d, remaining: max(n, 0)}, nil
}

type typeDeserializer struct {
	d         *Deserializer
	remaining int
}

func (t *typeDeserializer) TryReadIndex(info *serde.TypeInfo) (int, error) {
	if t.remaining == 0 {
		return serde.EndOfType, nil
	}

	t.remaining--

	name, err := t.d.dec.DecodeString()
	if err != nil {
		return 0, err
	}

	return info.IndexOf(name), nil
}

func (t *typeDeserializer) ReadValue(_ int, into serde.Deserializable) error {
	return into.DeserializeSerde(t.d)
}

func (t *typeDeserializer) SkipValue() error {
	return t.d.dec.Skip()
}

type collectionDeserializer struct {
	d         *Deserializer
	remaining int
}

func (c *collectionDeserializer) SizeHint() int {
	return c.remaining
}

func (c *collectionDeserializer) TryReadElement(into serde.Deserializable) (bool, error) {
	if c.remaining == 0 {
		return false, nil
	}

	c.remaining--

	return true, into.DeserializeSerde(c.d)
}

type dictionaryDeserializer struct {
	d         *Deserializer
	remaining int
}

func (m *dictionaryDeserializer) SizeHint() int {
	return m.remaining
}

func (m *dictionaryDeserializer) TryReadKey(into serde.Deserializable) (bool, error) {
	if m.remaining == 0 {
		return false, nil
	}

	m.remaining--

	return true, into.DeserializeSerde(m.d)
}

func (m *dictionaryDeserializer) ReadValue(into serde.Deserializable) error {
	return into.DeserializeSerde(m.d)
}
