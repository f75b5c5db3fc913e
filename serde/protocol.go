// Package serde is the runtime half of serde-generator.
//
// Generated code is written against the interfaces in this package and never
// inspects values through reflection. Wire formats (see serde/json and
// serde/msgpack) implement Serializer and Deserializer; user types implement
// Serializable and Deserializable, either by hand or through generated code;
// types that do not implement them are adapted by stateless wrapper types
// implementing Serialize[T] and Deserialize[T].
package serde

// Reserved indices returned by TypeDeserializer.TryReadIndex.
const (
	// IndexNotFound marks a field name the type does not declare.
	IndexNotFound = -1
	// EndOfType marks the end of the current type scope.
	EndOfType = -2
)

// Serializer is implemented by wire formats.
type Serializer interface {
	SerializeBool(v bool) error
	SerializeChar(v rune) error
	SerializeU8(v uint8) error
	SerializeU16(v uint16) error
	SerializeU32(v uint32) error
	SerializeU64(v uint64) error
	SerializeI8(v int8) error
	SerializeI16(v int16) error
	SerializeI32(v int32) error
	SerializeI64(v int64) error
	SerializeF32(v float32) error
	SerializeF64(v float64) error
	SerializeString(v string) error
	SerializeNull() error

	// SerializeEnumValue writes an enum member. name is empty when the value
	// matches no declared member; value always carries the underlying integer.
	SerializeEnumValue(info *TypeInfo, name string, value Serializable) error

	SerializeType(info *TypeInfo) (TypeSerializer, error)
	// SerializeCollection opens a sequence. length is -1 when unknown.
	SerializeCollection(info *TypeInfo, length int) (CollectionSerializer, error)
	// SerializeDictionary opens a key/value sequence. length is -1 when unknown.
	SerializeDictionary(info *TypeInfo, length int) (DictionarySerializer, error)
}

// TypeSerializer writes the fields of one custom type.
type TypeSerializer interface {
	SerializeField(info *TypeInfo, index int, value Serializable) error
	// SkipField records that field index is intentionally absent.
	SkipField(info *TypeInfo, index int) error
	End() error
}

// CollectionSerializer writes the elements of one sequence.
type CollectionSerializer interface {
	SerializeElement(value Serializable) error
	End() error
}

// DictionarySerializer writes the entries of one key/value sequence.
type DictionarySerializer interface {
	SerializeKey(key Serializable) error
	SerializeValue(value Serializable) error
	End() error
}

// Deserializer is implemented by wire formats.
type Deserializer interface {
	DeserializeBool() (bool, error)
	DeserializeChar() (rune, error)
	DeserializeU8() (uint8, error)
	DeserializeU16() (uint16, error)
	DeserializeU32() (uint32, error)
	DeserializeU64() (uint64, error)
	DeserializeI8() (int8, error)
	DeserializeI16() (int16, error)
	DeserializeI32() (int32, error)
	DeserializeI64() (int64, error)
	DeserializeF32() (float32, error)
	DeserializeF64() (float64, error)
	DeserializeString() (string, error)

	// DeserializeStringVisit hands the next string to v, using VisitUTF8 when
	// the format can expose its buffer without copying.
	DeserializeStringVisit(v StringVisitor) error

	// TryDeserializeNull consumes a null and reports true, or leaves the
	// input untouched and reports false.
	TryDeserializeNull() (bool, error)

	ReadType(info *TypeInfo) (TypeDeserializer, error)
	ReadCollection(info *TypeInfo) (CollectionDeserializer, error)
	ReadDictionary(info *TypeInfo) (DictionaryDeserializer, error)
}

// TypeDeserializer reads the fields of one custom type.
type TypeDeserializer interface {
	// TryReadIndex returns the index of the next field, IndexNotFound for a
	// field the type does not declare, or EndOfType.
	TryReadIndex(info *TypeInfo) (int, error)
	ReadValue(index int, into Deserializable) error
	SkipValue() error
}

// CollectionDeserializer reads the elements of one sequence.
type CollectionDeserializer interface {
	// SizeHint returns the number of elements, or -1 when unknown.
	SizeHint() int
	// TryReadElement reads the next element into into and reports false at
	// the end of the sequence.
	TryReadElement(into Deserializable) (bool, error)
}

// DictionaryDeserializer reads the entries of one key/value sequence.
type DictionaryDeserializer interface {
	SizeHint() int
	// TryReadKey reads the next key and reports false at the end.
	TryReadKey(into Deserializable) (bool, error)
	ReadValue(into Deserializable) error
}

// StringVisitor receives a decoded string in whichever representation the
// format has at hand. The byte slice passed to VisitUTF8 is only valid for
// the duration of the call.
type StringVisitor interface {
	VisitString(s string) error
	VisitUTF8(b []byte) error
}

// Serializable is implemented by types that can write themselves.
type Serializable interface {
	SerializeSerde(s Serializer) error
}

// Deserializable is implemented by types that can read themselves in place.
type Deserializable interface {
	DeserializeSerde(d Deserializer) error
}

// Serialize adapts values of T that do not implement Serializable.
type Serialize[T any] interface {
	Serialize(v T, s Serializer) error
}

// Deserialize adapts values of T that do not implement Deserializable.
type Deserialize[T any] interface {
	Deserialize(d Deserializer) (T, error)
}
