package serdetest

import (
	"fmt"
	"unicode/utf8"

	"serde-generator/serde"
)

// Object is a scripted custom type: its entries are offered to TryReadIndex
// in order, so tests control field order and unknown fields directly.
type Object []Entry

// Entry is one field of an Object.
type Entry struct {
	Name  string
	Value any

	forced bool
	index  int
}

// F is shorthand for an Entry.
func F(name string, value any) Entry {
	return Entry{Name: name, Value: value}
}

// AtIndex returns an Entry reported to the reader as index, bypassing the
// name lookup. It lets tests feed protocol violations.
func AtIndex(index int, value any) Entry {
	return Entry{Value: value, forced: true, index: index}
}

// List is a scripted collection.
type List []any

// Map is a scripted dictionary in entry order.
type Map [][2]any

// Deserializer replays a value tree. Scalars may be bool, any integer type,
// float32/float64, string or nil.
type Deserializer struct {
	cur any
}

// New returns a Deserializer positioned on v.
func New(v any) *Deserializer {
	return &Deserializer{cur: v}
}

func mismatch(want string, got any) error {
	return serde.InvalidValue(want, fmt.Sprintf("%T", got))
}

func (d *Deserializer) int(bits uint) (int64, error) {
	var v int64

	switch n := d.cur.(type) {
	case int:
		v = int64(n)
	case int8:
		v = int64(n)
	case int16:
		v = int64(n)
	case int32:
		v = int64(n)
	case int64:
		v = n
	case uint8:
		v = int64(n)
	case uint16:
		v = int64(n)
	case uint32:
		v = int64(n)
	case uint:
		v = int64(n)
	case uint64:
		v = int64(n)
	default:
		return 0, mismatch("integer", d.cur)
	}

	if bits < 64 {
		lim := int64(1) << (bits - 1)
		if v < -lim || v >= lim {
			return 0, serde.InvalidValue(fmt.Sprintf("int%d", bits), fmt.Sprint(v))
		}
	}

	return v, nil
}

func (d *Deserializer) uint(bits uint) (uint64, error) {
	if u, ok := d.cur.(uint64); ok && bits == 64 {
		return u, nil
	}

	v, err := d.int(64)
	if err != nil {
		return 0, err
	}

	if v < 0 || (bits < 64 && uint64(v) >= uint64(1)<<bits) {
		return 0, serde.InvalidValue(fmt.Sprintf("uint%d", bits), fmt.Sprint(v))
	}

	return uint64(v), nil
}

func (d *Deserializer) DeserializeBool() (bool, error) {
	v, ok := d.cur.(bool)
	if !ok {
		return false, mismatch("bool", d.cur)
	}

	return v, nil
}

func (d *Deserializer) DeserializeChar() (rune, error) {
	if s, ok := d.cur.(string); ok && utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	}

	v, err := d.int(32)

	return rune(v), err
}

func (d *Deserializer) DeserializeU8() (uint8, error) {
	v, err := d.uint(8)
	return uint8(v), err
}

func (d *Deserializer) DeserializeU16() (uint16, error) {
	v, err := d.uint(16)
	return uint16(v), err
}

func (d *Deserializer) DeserializeU32() (uint32, error) {
	v, err := d.uint(32)
	return uint32(v), err
}

func (d *Deserializer) DeserializeU64() (uint64, error) {
	return d.uint(64)
}

func (d *Deserializer) DeserializeI8() (int8, error) {
	v, err := d.int(8)
	return int8(v), err
}

func (d *Deserializer) DeserializeI16() (int16, error) {
	v, err := d.int(16)
	return int16(v), err
}

func (d *Deserializer) DeserializeI32() (int32, error) {
	v, err := d.int(32)
	return int32(v), err
}

func (d *Deserializer) DeserializeI64() (int64, error) {
	return d.int(64)
}

func (d *Deserializer) DeserializeF32() (float32, error) {
	v, err := d.DeserializeF64()
	return float32(v), err
}

func (d *Deserializer) DeserializeF64() (float64, error) {
	switch n := d.cur.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	}

	v, err := d.int(64)

	return float64(v), err
}

func (d *Deserializer) DeserializeString() (string, error) {
	s, ok := d.cur.(string)
	if !ok {
		return "", mismatch("string", d.cur)
	}

	return s, nil
}

// DeserializeStringVisit uses the byte path so that generated visitors are
// exercised on both representations across the test suite.
func (d *Deserializer) DeserializeStringVisit(v serde.StringVisitor) error {
	s, err := d.DeserializeString()
	if err != nil {
		return err
	}

	return v.VisitUTF8([]byte(s))
}

func (d *Deserializer) TryDeserializeNull() (bool, error) {
	return d.cur == nil, nil
}

func (d *Deserializer) ReadType(_ *serde.TypeInfo) (serde.TypeDeserializer, error) {
	obj, ok := d.cur.(Object)
	if !ok {
		return nil, mismatch("serdetest.Object", d.cur)
	}

	return &objectReader{entries: obj}, nil
}

func (d *Deserializer) ReadCollection(_ *serde.TypeInfo) (serde.CollectionDeserializer, error) {
	list, ok := d.cur.(List)
	if !ok {
		return nil, mismatch("serdetest.List", d.cur)
	}

	return &listReader{items: list}, nil
}

func (d *Deserializer) ReadDictionary(_ *serde.TypeInfo) (serde.DictionaryDeserializer, error) {
	m, ok := d.cur.(Map)
	if !ok {
		return nil, mismatch("serdetest.Map", d.cur)
	}

	return &mapReader{entries: m}, nil
}

type objectReader struct {
	entries Object
	pos     int
}

func (o *objectReader) TryReadIndex(info *serde.TypeInfo) (int, error) {
	if o.pos >= len(o.entries) {
		return serde.EndOfType, nil
	}

	e := o.entries[o.pos]
	if e.forced {
		return e.index, nil
	}

	return info.IndexOfUTF8([]byte(e.Name)), nil
}

func (o *objectReader) ReadValue(_ int, into serde.Deserializable) error {
	v := o.entries[o.pos].Value
	o.pos++

	return into.DeserializeSerde(New(v))
}

func (o *objectReader) SkipValue() error {
	o.pos++
	return nil
}

type listReader struct {
	items List
	pos   int
}

func (l *listReader) SizeHint() int {
	return len(l.items)
}

func (l *listReader) TryReadElement(into serde.Deserializable) (bool, error) {
	if l.pos >= len(l.items) {
		return false, nil
	}

	v := l.items[l.pos]
	l.pos++

	return true, into.DeserializeSerde(New(v))
}

type mapReader struct {
	entries Map
	pos     int
}

func (m *mapReader) SizeHint() int {
	return len(m.entries)
}

func (m *mapReader) TryReadKey(into serde.Deserializable) (bool, error) {
	if m.pos >= len(m.entries) {
		return false, nil
	}

	return true, into.DeserializeSerde(New(m.entries[m.pos][0]))
}

func (m *mapReader) ReadValue(into serde.Deserializable) error {
	v := m.entries[m.pos][1]
	m.pos++

	return into.DeserializeSerde(New(v))
}
