package serde

// NullableSer writes a *T through W, or null when the pointer is nil.
type NullableSer[T any, W Serialize[T]] struct{ W W }

func (n NullableSer[T, W]) Serialize(v *T, s Serializer) error {
	if v == nil {
		return s.SerializeNull()
	}

	return n.W.Serialize(*v, s)
}

// NullableDe reads a *T through W, yielding nil for null.
type NullableDe[T any, W Deserialize[T]] struct{ W W }

func (n NullableDe[T, W]) Deserialize(d Deserializer) (*T, error) {
	isNull, err := d.TryDeserializeNull()
	if err != nil || isNull {
		return nil, err
	}

	v, err := n.W.Deserialize(d)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

// SliceSer writes a []T as a collection of elements written through W.
type SliceSer[T any, W Serialize[T]] struct{ W W }

func (a SliceSer[T, W]) Serialize(v []T, s Serializer) error {
	if v == nil {
		return s.SerializeNull()
	}

	cs, err := s.SerializeCollection(listInfo, len(v))
	if err != nil {
		return err
	}

	for _, e := range v {
		if err := cs.SerializeElement(bound[T]{v: e, w: a.W}); err != nil {
			return err
		}
	}

	return cs.End()
}

// SliceDe reads a collection into a []T. A null collection yields nil.
type SliceDe[T any, W Deserialize[T]] struct{ W W }

func (a SliceDe[T, W]) Deserialize(d Deserializer) ([]T, error) {
	isNull, err := d.TryDeserializeNull()
	if err != nil || isNull {
		return nil, err
	}

	cd, err := d.ReadCollection(listInfo)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, max(cd.SizeHint(), 0))
	el := slot[T]{w: a.W}

	for {
		ok, err := cd.TryReadElement(&el)
		if err != nil {
			return nil, err
		}

		if !ok {
			return out, nil
		}

		out = append(out, el.v)
	}
}

// MapSer writes a map[K]V as a dictionary. Entry order follows map iteration
// order.
type MapSer[K comparable, V any, KW Serialize[K], VW Serialize[V]] struct {
	K KW
	V VW
}

func (m MapSer[K, V, KW, VW]) Serialize(v map[K]V, s Serializer) error {
	if v == nil {
		return s.SerializeNull()
	}

	ds, err := s.SerializeDictionary(dictionaryInfo, len(v))
	if err != nil {
		return err
	}

	for k, e := range v {
		if err := ds.SerializeKey(bound[K]{v: k, w: m.K}); err != nil {
			return err
		}

		if err := ds.SerializeValue(bound[V]{v: e, w: m.V}); err != nil {
			return err
		}
	}

	return ds.End()
}

// MapDe reads a dictionary into a map[K]V. A null dictionary yields nil.
type MapDe[K comparable, V any, KW Deserialize[K], VW Deserialize[V]] struct {
	K KW
	V VW
}

func (m MapDe[K, V, KW, VW]) Deserialize(d Deserializer) (map[K]V, error) {
	isNull, err := d.TryDeserializeNull()
	if err != nil || isNull {
		return nil, err
	}

	dd, err := d.ReadDictionary(dictionaryInfo)
	if err != nil {
		return nil, err
	}

	out := make(map[K]V, max(dd.SizeHint(), 0))
	key := slot[K]{w: m.K}
	val := slot[V]{w: m.V}

	for {
		ok, err := dd.TryReadKey(&key)
		if err != nil {
			return nil, err
		}

		if !ok {
			return out, nil
		}

		if err := dd.ReadValue(&val); err != nil {
			return nil, err
		}

		out[key.v] = val.v
	}
}
