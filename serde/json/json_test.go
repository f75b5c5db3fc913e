package json_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"serde-generator/serde"
	"serde-generator/serde/json"
)

var pointInfo = serde.NewTypeInfo(serde.KindCustom, "Point",
	serde.Field("x", "X", "int32"),
	serde.Field("label", "Label", "*string"),
)

// point is written by hand the way generated code is.
type point struct {
	X     int32
	Label *string
}

func (p *point) SerializeSerde(s serde.Serializer) error {
	ts, err := s.SerializeType(pointInfo)
	if err != nil {
		return err
	}

	if err := serde.SerializeField(ts, pointInfo, 0, p.X, serde.Int32Wrap{}); err != nil {
		return err
	}

	if p.Label == nil {
		if err := ts.SkipField(pointInfo, 1); err != nil {
			return err
		}
	} else if err := serde.SerializeField(ts, pointInfo, 1, p.Label, serde.NullableSer[string, serde.StringWrap]{}); err != nil {
		return err
	}

	return ts.End()
}

func (p *point) DeserializeSerde(d serde.Deserializer) error {
	td, err := d.ReadType(pointInfo)
	if err != nil {
		return err
	}

	var out point

	for {
		index, err := td.TryReadIndex(pointInfo)
		if err != nil {
			return err
		}

		switch index {
		case serde.EndOfType:
			*p = out
			return nil
		case 0:
			out.X, err = serde.ReadValue[int32](td, index, serde.Int32Wrap{})
		case 1:
			out.Label, err = serde.ReadValue[*string](td, index, serde.NullableDe[string, serde.StringWrap]{})
		default:
			err = td.SkipValue()
		}

		if err != nil {
			return err
		}
	}
}

type visitRecorder struct {
	utf8, str []string
}

func (v *visitRecorder) VisitString(s string) error {
	v.str = append(v.str, s)
	return nil
}

func (v *visitRecorder) VisitUTF8(b []byte) error {
	v.utf8 = append(v.utf8, string(b))
	return nil
}

type visitTarget struct {
	v *visitRecorder
}

func (t visitTarget) DeserializeSerde(d serde.Deserializer) error {
	return d.DeserializeStringVisit(t.v)
}

type JSONSuite struct {
	suite.Suite
}

func TestJSONSuite(t *testing.T) {
	suite.Run(t, new(JSONSuite))
}

func (s *JSONSuite) TestScalars() {
	cases := []struct {
		name string
		data func() ([]byte, error)
		want string
	}{
		{"bool", func() ([]byte, error) { return json.MarshalWith(true, serde.BoolWrap{}) }, "true"},
		{"int8", func() ([]byte, error) { return json.MarshalWith(int8(-8), serde.Int8Wrap{}) }, "-8"},
		{"uint64", func() ([]byte, error) { return json.MarshalWith(uint64(1<<63), serde.Uint64Wrap{}) }, "9223372036854775808"},
		{"float", func() ([]byte, error) { return json.MarshalWith(2.25, serde.Float64Wrap{}) }, "2.25"},
		{"char", func() ([]byte, error) { return json.MarshalWith('ß', serde.CharWrap{}) }, `"ß"`},
		{"string", func() ([]byte, error) { return json.MarshalWith("a\"b", serde.StringWrap{}) }, `"a\"b"`},
	}

	for _, c := range cases {
		data, err := c.data()
		s.Require().NoError(err, c.name)
		s.Equal(c.want, string(data), c.name)
	}

	u, err := json.UnmarshalWith[uint64]([]byte("9223372036854775808"), serde.Uint64Wrap{})
	s.Require().NoError(err)
	s.Equal(uint64(1<<63), u)

	r, err := json.UnmarshalWith[rune]([]byte(`"ß"`), serde.CharWrap{})
	s.Require().NoError(err)
	s.Equal('ß', r)

	_, err = json.UnmarshalWith[rune]([]byte(`"ab"`), serde.CharWrap{})
	s.ErrorIs(err, serde.ErrInvalidValue)

	_, err = json.UnmarshalWith[bool]([]byte(`1`), serde.BoolWrap{})
	s.ErrorIs(err, serde.ErrInvalidValue)
}

func (s *JSONSuite) TestCustomType() {
	label := "origin"

	data, err := json.Marshal(&point{X: 3, Label: &label})
	s.Require().NoError(err)
	s.Equal(`{"x":3,"label":"origin"}`, string(data))

	data, err = json.Marshal(&point{X: 3})
	s.Require().NoError(err)
	s.Equal(`{"x":3}`, string(data))

	var got point
	s.Require().NoError(json.Unmarshal([]byte(`{"extra":{"a":[1,2,{"b":null}]},"label":null,"x":-1}`), &got))
	s.Equal(int32(-1), got.X)
	s.Nil(got.Label)

	s.Require().NoError(json.Unmarshal([]byte(`{}`), &got))
	s.Equal(point{}, got)

	s.Error(json.Unmarshal([]byte(`[1]`), &got))
	s.Error(json.Unmarshal([]byte(`{"x":`), &got))
}

func (s *JSONSuite) TestCollections() {
	data, err := json.MarshalWith([]point{{X: 1}, {X: 2}}, serde.SliceSer[point, serde.NativeSer[point, *point]]{})
	s.Require().NoError(err)
	s.Equal(`[{"x":1},{"x":2}]`, string(data))

	points, err := json.UnmarshalWith[[]point](data, serde.SliceDe[point, serde.NativeDe[point, *point]]{})
	s.Require().NoError(err)
	s.Equal([]point{{X: 1}, {X: 2}}, points)

	empty, err := json.UnmarshalWith[[]int32]([]byte(`[]`), serde.SliceDe[int32, serde.Int32Wrap]{})
	s.Require().NoError(err)
	s.NotNil(empty)
	s.Empty(empty)

	null, err := json.UnmarshalWith[[]int32]([]byte(`null`), serde.SliceDe[int32, serde.Int32Wrap]{})
	s.Require().NoError(err)
	s.Nil(null)
}

func (s *JSONSuite) TestDictionaryKeys() {
	data, err := json.MarshalWith(map[int64]bool{-4: true}, serde.MapSer[int64, bool, serde.Int64Wrap, serde.BoolWrap]{})
	s.Require().NoError(err)
	s.Equal(`{"-4":true}`, string(data))

	m, err := json.UnmarshalWith[map[int64]bool](data, serde.MapDe[int64, bool, serde.Int64Wrap, serde.BoolWrap]{})
	s.Require().NoError(err)
	s.Equal(map[int64]bool{-4: true}, m)

	_, err = json.UnmarshalWith[map[uint8]bool]([]byte(`{"300":true}`), serde.MapDe[uint8, bool, serde.Uint8Wrap, serde.BoolWrap]{})
	s.Error(err)

	_, err = json.MarshalWith(map[point]bool{{X: 1}: true}, serde.MapSer[point, bool, serde.NativeSer[point, *point], serde.BoolWrap]{})
	s.ErrorIs(err, serde.ErrInvalidValue)
}

func (s *JSONSuite) TestStringVisit() {
	var v visitRecorder

	s.Require().NoError(json.Unmarshal([]byte(`"plain"`), visitTarget{v: &v}))
	s.Require().NoError(json.Unmarshal([]byte(`"tab\tbed"`), visitTarget{v: &v}))

	s.Equal([]string{"plain"}, v.utf8)
	s.Equal([]string{"tab\tbed"}, v.str)

	s.ErrorIs(json.Unmarshal([]byte(`12`), visitTarget{v: &v}), serde.ErrInvalidValue)
}

func (s *JSONSuite) TestEmptyKey() {
	var got point
	s.Require().NoError(json.Unmarshal([]byte(`{"":1,"x":3,"":{"y":[]}}`), &got))
	s.Equal(point{X: 3}, got)

	in := map[string]string{"": "x", "a": ""}

	data, err := json.MarshalWith(in, serde.MapSer[string, string, serde.StringWrap, serde.StringWrap]{})
	s.Require().NoError(err)

	out, err := json.UnmarshalWith[map[string]string](data, serde.MapDe[string, string, serde.StringWrap, serde.StringWrap]{})
	s.Require().NoError(err)
	s.Equal(in, out)
}

func (s *JSONSuite) TestTrailingInput() {
	var got point
	s.Require().NoError(json.Unmarshal([]byte(" {\"x\":1} \n"), &got))

	s.ErrorIs(json.Unmarshal([]byte(`{"x":1}xyz`), &got), serde.ErrInvalidValue)
	s.ErrorIs(json.Unmarshal([]byte(`{"x":1} {}`), &got), serde.ErrInvalidValue)

	_, err := json.UnmarshalWith[int32]([]byte("7 8"), serde.Int32Wrap{})
	s.ErrorIs(err, serde.ErrInvalidValue)

	n, err := json.UnmarshalWith[int32]([]byte("7"), serde.Int32Wrap{})
	s.Require().NoError(err)
	s.Equal(int32(7), n)
}

func (s *JSONSuite) TestTruncatedObject() {
	var got point
	s.Error(json.Unmarshal([]byte(`{"x":1`), &got))
	s.Error(json.Unmarshal([]byte(`{"x":1,`), &got))
}
