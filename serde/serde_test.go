package serde_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serde-generator/serde"
	"serde-generator/serde/serdetest"
)

var pointInfo = serde.NewTypeInfo(serde.KindCustom, "Point",
	serde.Field("x", "X", "int32"),
	serde.Field("y", "Y", "int32"),
	serde.Field("x", "Dup", "int32"),
)

func TestTypeInfo(t *testing.T) {
	assert.Equal(t, "Point", pointInfo.Name())
	assert.Equal(t, serde.KindCustom, pointInfo.Kind())
	assert.Equal(t, 3, pointInfo.FieldCount())
	assert.Equal(t, "y", pointInfo.FieldName(1))
	assert.Equal(t, "Y", pointInfo.Field(1).Member)

	assert.Equal(t, 1, pointInfo.IndexOf("y"))
	assert.Equal(t, 0, pointInfo.IndexOf("x"), "first declaration wins")
	assert.Equal(t, serde.IndexNotFound, pointInfo.IndexOf("z"))
	assert.Equal(t, 1, pointInfo.IndexOfUTF8([]byte("y")))
	assert.Equal(t, serde.IndexNotFound, pointInfo.IndexOfUTF8(nil))

	fields := pointInfo.Fields()
	fields[0].Name = "changed"
	assert.Equal(t, "x", pointInfo.FieldName(0))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "custom", serde.KindCustom.String())
	assert.Equal(t, "enum", serde.KindEnum.String())
	assert.Equal(t, "dictionary", serde.KindDictionary.String())
	assert.Equal(t, "unknown", serde.Kind(42).String())
}

func TestBits(t *testing.T) {
	b := serde.NewBits(130)
	require.Len(t, b, 3)

	b.Set(0)
	b.Set(64)
	b.Set(129)

	assert.True(t, b.Has(64))
	assert.False(t, b.Has(65))
	assert.False(t, b.Has(500))

	assert.True(t, b.Covers(serde.BitsOf(130, 0, 129)))
	assert.False(t, b.Covers(serde.BitsOf(130, 0, 1)))
	assert.True(t, b.Covers(serde.NewBits(130)))
	assert.False(t, serde.NewBits(10).Covers(serde.BitsOf(130, 100)))
}

func TestMissingMembers(t *testing.T) {
	err := serde.MissingMembers(pointInfo, 0b001, 0b011)
	require.ErrorIs(t, err, serde.ErrMissingMember)

	var missing *serde.MissingMemberError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"Y"}, missing.Members)
	assert.Equal(t, "serde: Point: missing required member(s): Y", err.Error())

	err = serde.MissingMembersBits(pointInfo, serde.BitsOf(3, 1), serde.BitsOf(3, 0, 1, 2))
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"X", "Dup"}, missing.Members)
}

func TestErrorSentinels(t *testing.T) {
	assert.ErrorIs(t, serde.InvalidEnum(pointInfo, "z"), serde.ErrInvalidEnum)
	assert.ErrorIs(t, serde.UnexpectedIndex(pointInfo, 9), serde.ErrUnexpectedIndex)
	assert.ErrorIs(t, serde.UnknownMember(pointInfo), serde.ErrUnknownMember)
	assert.ErrorIs(t, serde.InvalidValue("int32", "string"), serde.ErrInvalidValue)

	assert.Contains(t, serde.UnexpectedIndex(pointInfo, 9).Error(), "unexpected index 9")
	assert.Contains(t, serde.InvalidEnum(pointInfo, "z").Error(), `"z"`)
}

func TestBindAndSlot(t *testing.T) {
	var rec serdetest.Recorder
	require.NoError(t, serde.Bind(int16(-3), serde.Int16Wrap{}).SerializeSerde(&rec))
	assert.Equal(t, []string{"i16 -3"}, rec.Events)

	var got uint16
	require.NoError(t, serde.Slot(&got, serde.Uint16Wrap{}).DeserializeSerde(serdetest.New(512)))
	assert.Equal(t, uint16(512), got)

	require.ErrorIs(t, serde.Slot(&got, serde.Uint16Wrap{}).DeserializeSerde(serdetest.New(-1)), serde.ErrInvalidValue)
	assert.Equal(t, uint16(512), got, "failed reads leave the destination untouched")
}

func TestCompoundAdapters_Serialize(t *testing.T) {
	var rec serdetest.Recorder

	w := serde.NullableSer[string, serde.StringWrap]{}
	require.NoError(t, w.Serialize(nil, &rec))

	s := "hi"
	require.NoError(t, w.Serialize(&s, &rec))

	list := serde.SliceSer[int32, serde.Int32Wrap]{}
	require.NoError(t, list.Serialize([]int32{1, 2}, &rec))
	require.NoError(t, list.Serialize(nil, &rec))

	m := serde.MapSer[string, bool, serde.StringWrap, serde.BoolWrap]{}
	require.NoError(t, m.Serialize(map[string]bool{"a": true}, &rec))

	assert.Equal(t, []string{
		"null",
		`string "hi"`,
		"collection 2", "i32 1", "i32 2", "end",
		"null",
		"dictionary 1", "key", `string "a"`, "bool true", "end",
	}, rec.Events)
}

func TestCompoundAdapters_Deserialize(t *testing.T) {
	p, err := serde.NullableDe[string, serde.StringWrap]{}.Deserialize(serdetest.New(nil))
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = serde.NullableDe[string, serde.StringWrap]{}.Deserialize(serdetest.New("x"))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "x", *p)

	list, err := serde.SliceDe[int64, serde.Int64Wrap]{}.Deserialize(serdetest.New(serdetest.List{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, list)

	list, err = serde.SliceDe[int64, serde.Int64Wrap]{}.Deserialize(serdetest.New(nil))
	require.NoError(t, err)
	assert.Nil(t, list)

	nested, err := serde.SliceDe[[]string, serde.SliceDe[string, serde.StringWrap]]{}.
		Deserialize(serdetest.New(serdetest.List{serdetest.List{"a"}, serdetest.List{}}))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a"}, {}}, nested)

	m, err := serde.MapDe[string, float64, serde.StringWrap, serde.Float64Wrap]{}.
		Deserialize(serdetest.New(serdetest.Map{{"a", 1.5}, {"b", 2}}))
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"a": 1.5, "b": 2}, m)

	_, err = serde.SliceDe[int8, serde.Int8Wrap]{}.Deserialize(serdetest.New(serdetest.List{1, 300}))
	require.ErrorIs(t, err, serde.ErrInvalidValue)
}

type celsius float64

// celsiusWrap is a hand-written adapter.
type celsiusWrap struct{}

func (celsiusWrap) Serialize(v celsius, s serde.Serializer) error {
	return s.SerializeF64(float64(v))
}

func (celsiusWrap) Deserialize(d serde.Deserializer) (celsius, error) {
	v, err := d.DeserializeF64()
	return celsius(v), err
}

func TestUserAdapterInCompound(t *testing.T) {
	var rec serdetest.Recorder
	require.NoError(t, serde.SliceSer[celsius, celsiusWrap]{}.Serialize([]celsius{21.5}, &rec))
	assert.Equal(t, []string{"collection 1", "f64 21.5", "end"}, rec.Events)

	got, err := serde.SliceDe[celsius, celsiusWrap]{}.Deserialize(serdetest.New(serdetest.List{float32(4)}))
	require.NoError(t, err)
	assert.Equal(t, []celsius{4}, got)
}

func TestPrimitiveWraps(t *testing.T) {
	var rec serdetest.Recorder

	require.NoError(t, serde.IntWrap{}.Serialize(-7, &rec))
	require.NoError(t, serde.UintWrap{}.Serialize(7, &rec))
	require.NoError(t, serde.CharWrap{}.Serialize('é', &rec))
	require.NoError(t, serde.Float32Wrap{}.Serialize(0.5, &rec))
	assert.Equal(t, []string{"i64 -7", "u64 7", "char 'é'", "f32 0.5"}, rec.Events)

	i, err := serde.IntWrap{}.Deserialize(serdetest.New(-7))
	require.NoError(t, err)
	assert.Equal(t, -7, i)

	u, err := serde.UintWrap{}.Deserialize(serdetest.New(uint64(1 << 40)))
	require.NoError(t, err)
	assert.Equal(t, uint(1<<40), u)

	r, err := serde.CharWrap{}.Deserialize(serdetest.New("é"))
	require.NoError(t, err)
	assert.Equal(t, 'é', r)

	_, err = serde.BoolWrap{}.Deserialize(serdetest.New("true"))
	require.ErrorIs(t, err, serde.ErrInvalidValue)
}
