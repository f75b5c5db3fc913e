package serde

// bound pairs a value with the adapter that writes it.
type bound[T any] struct {
	v T
	w Serialize[T]
}

func (b bound[T]) SerializeSerde(s Serializer) error {
	return b.w.Serialize(b.v, s)
}

// Bind returns a Serializable writing v through w.
func Bind[T any](v T, w Serialize[T]) Serializable {
	return bound[T]{v: v, w: w}
}

// slot receives one value read through an adapter.
type slot[T any] struct {
	v T
	w Deserialize[T]
}

func (s *slot[T]) DeserializeSerde(d Deserializer) error {
	v, err := s.w.Deserialize(d)
	if err != nil {
		return err
	}

	s.v = v

	return nil
}

// Slot returns a Deserializable that stores what w reads in *dst.
func Slot[T any](dst *T, w Deserialize[T]) Deserializable {
	return slotRef[T]{dst: dst, w: w}
}

type slotRef[T any] struct {
	dst *T
	w   Deserialize[T]
}

func (s slotRef[T]) DeserializeSerde(d Deserializer) error {
	v, err := s.w.Deserialize(d)
	if err != nil {
		return err
	}

	*s.dst = v

	return nil
}

// SerializeField writes field index of a custom type through w.
func SerializeField[T any](ts TypeSerializer, info *TypeInfo, index int, v T, w Serialize[T]) error {
	return ts.SerializeField(info, index, bound[T]{v: v, w: w})
}

// ReadValue reads the value of field index through w.
func ReadValue[T any](td TypeDeserializer, index int, w Deserialize[T]) (T, error) {
	s := slot[T]{w: w}
	if err := td.ReadValue(index, &s); err != nil {
		var zero T
		return zero, err
	}

	return s.v, nil
}

// NativeSer adapts a type whose pointer implements Serializable.
type NativeSer[T any, PT interface {
	*T
	Serializable
}] struct{}

func (NativeSer[T, PT]) Serialize(v T, s Serializer) error {
	return PT(&v).SerializeSerde(s)
}

// NativeDe adapts a type whose pointer implements Deserializable.
type NativeDe[T any, PT interface {
	*T
	Deserializable
}] struct{}

func (NativeDe[T, PT]) Deserialize(d Deserializer) (T, error) {
	var v T
	err := PT(&v).DeserializeSerde(d)

	return v, err
}
