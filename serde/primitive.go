package serde

// Zero-size adapters for the built-in scalar kinds.
type (
	BoolWrap    struct{}
	CharWrap    struct{}
	IntWrap     struct{}
	Int8Wrap    struct{}
	Int16Wrap   struct{}
	Int32Wrap   struct{}
	Int64Wrap   struct{}
	UintWrap    struct{}
	Uint8Wrap   struct{}
	Uint16Wrap  struct{}
	Uint32Wrap  struct{}
	Uint64Wrap  struct{}
	Float32Wrap struct{}
	Float64Wrap struct{}
	StringWrap  struct{}
)

func (BoolWrap) Serialize(v bool, s Serializer) error { return s.SerializeBool(v) }
func (BoolWrap) Deserialize(d Deserializer) (bool, error) { return d.DeserializeBool() }

// CharWrap writes a rune as a character rather than as an int32. rune is an
// alias of int32, so members only get it through an explicit wrap.
func (CharWrap) Serialize(v rune, s Serializer) error { return s.SerializeChar(v) }
func (CharWrap) Deserialize(d Deserializer) (rune, error) { return d.DeserializeChar() }

func (IntWrap) Serialize(v int, s Serializer) error { return s.SerializeI64(int64(v)) }

func (IntWrap) Deserialize(d Deserializer) (int, error) {
	v, err := d.DeserializeI64()

	return int(v), err
}

func (Int8Wrap) Serialize(v int8, s Serializer) error { return s.SerializeI8(v) }
func (Int8Wrap) Deserialize(d Deserializer) (int8, error) { return d.DeserializeI8() }

func (Int16Wrap) Serialize(v int16, s Serializer) error { return s.SerializeI16(v) }
func (Int16Wrap) Deserialize(d Deserializer) (int16, error) { return d.DeserializeI16() }

func (Int32Wrap) Serialize(v int32, s Serializer) error { return s.SerializeI32(v) }
func (Int32Wrap) Deserialize(d Deserializer) (int32, error) { return d.DeserializeI32() }

func (Int64Wrap) Serialize(v int64, s Serializer) error { return s.SerializeI64(v) }
func (Int64Wrap) Deserialize(d Deserializer) (int64, error) { return d.DeserializeI64() }

func (UintWrap) Serialize(v uint, s Serializer) error { return s.SerializeU64(uint64(v)) }

func (UintWrap) Deserialize(d Deserializer) (uint, error) {
	v, err := d.DeserializeU64()

	return uint(v), err
}

func (Uint8Wrap) Serialize(v uint8, s Serializer) error { return s.SerializeU8(v) }
func (Uint8Wrap) Deserialize(d Deserializer) (uint8, error) { return d.DeserializeU8() }

func (Uint16Wrap) Serialize(v uint16, s Serializer) error { return s.SerializeU16(v) }
func (Uint16Wrap) Deserialize(d Deserializer) (uint16, error) { return d.DeserializeU16() }

func (Uint32Wrap) Serialize(v uint32, s Serializer) error { return s.SerializeU32(v) }
func (Uint32Wrap) Deserialize(d Deserializer) (uint32, error) { return d.DeserializeU32() }

func (Uint64Wrap) Serialize(v uint64, s Serializer) error { return s.SerializeU64(v) }
func (Uint64Wrap) Deserialize(d Deserializer) (uint64, error) { return d.DeserializeU64() }

func (Float32Wrap) Serialize(v float32, s Serializer) error { return s.SerializeF32(v) }
func (Float32Wrap) Deserialize(d Deserializer) (float32, error) { return d.DeserializeF32() }

func (Float64Wrap) Serialize(v float64, s Serializer) error { return s.SerializeF64(v) }
func (Float64Wrap) Deserialize(d Deserializer) (float64, error) { return d.DeserializeF64() }

func (StringWrap) Serialize(v string, s Serializer) error { return s.SerializeString(v) }
func (StringWrap) Deserialize(d Deserializer) (string, error) { return d.DeserializeString() }
