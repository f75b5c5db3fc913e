package json

import (
	"strconv"
	"unicode/utf8"

	"serde-generator/serde"
)

// keyDeserializer parses a dictionary key that JSON forced into a string.
type keyDeserializer string

func (k keyDeserializer) DeserializeBool() (bool, error) {
	v, err := strconv.ParseBool(string(k))
	if err != nil {
		return false, serde.InvalidValue("bool key", strconv.Quote(string(k)))
	}

	return v, nil
}

func (k keyDeserializer) DeserializeChar() (rune, error) {
	r, size := utf8.DecodeRuneInString(string(k))
	if size == 0 || size != len(k) {
		return 0, serde.InvalidValue("single character key", strconv.Quote(string(k)))
	}

	return r, nil
}

func (k keyDeserializer) uint(bits int) (uint64, error) {
	v, err := strconv.ParseUint(string(k), 10, bits)
	if err != nil {
		return 0, serde.InvalidValue("unsigned integer key", strconv.Quote(string(k)))
	}

	return v, nil
}

func (k keyDeserializer) int(bits int) (int64, error) {
	v, err := strconv.ParseInt(string(k), 10, bits)
	if err != nil {
		return 0, serde.InvalidValue("integer key", strconv.Quote(string(k)))
	}

	return v, nil
}

func (k keyDeserializer) float(bits int) (float64, error) {
	v, err := strconv.ParseFloat(string(k), bits)
	if err != nil {
		return 0, serde.InvalidValue("number key", strconv.Quote(string(k)))
	}

	return v, nil
}

func (k keyDeserializer) DeserializeU8() (uint8, error) {
	v, err := k.uint(8)
	return uint8(v), err
}

func (k keyDeserializer) DeserializeU16() (uint16, error) {
	v, err := k.uint(16)
	return uint16(v), err
}

func (k keyDeserializer) DeserializeU32() (uint32, error) {
	v, err := k.uint(32)
	return uint32(v), err
}

func (k keyDeserializer) DeserializeU64() (uint64, error) {
	return k.uint(64)
}

func (k keyDeserializer) DeserializeI8() (int8, error) {
	v, err := k.int(8)
	return int8(v), err
}

func (k keyDeserializer) DeserializeI16() (int16, error) {
	v, err := k.int(16)
	return int16(v), err
}

func (k keyDeserializer) DeserializeI32() (int32, error) {
	v, err := k.int(32)
	return int32(v), err
}

func (k keyDeserializer) DeserializeI64() (int64, error) {
	return k.int(64)
}

func (k keyDeserializer) DeserializeF32() (float32, error) {
	v, err := k.float(32)
	return float32(v), err
}

func (k keyDeserializer) DeserializeF64() (float64, error) {
	return k.float(64)
}

func (k keyDeserializer) DeserializeString() (string, error) {
	return string(k), nil
}

func (k keyDeserializer) DeserializeStringVisit(v serde.StringVisitor) error {
	return v.VisitString(string(k))
}

func (k keyDeserializer) TryDeserializeNull() (bool, error) {
	return false, nil
}

func (k keyDeserializer) ReadType(*serde.TypeInfo) (serde.TypeDeserializer, error) {
	return nil, serde.InvalidValue("object", "dictionary key")
}

func (k keyDeserializer) ReadCollection(*serde.TypeInfo) (serde.CollectionDeserializer, error) {
	return nil, serde.InvalidValue("array", "dictionary key")
}

func (k keyDeserializer) ReadDictionary(*serde.TypeInfo) (serde.DictionaryDeserializer, error) {
	return nil, serde.InvalidValue("object", "dictionary key")
}
