package streamtree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkruse/streamjson/streamtree"
)

func TestParseString_FlatObject(t *testing.T) {
	v, err := streamtree.ParseString(`{"a":1,"b":"two","c":true,"d":false,"e":null}`)
	require.NoError(t, err)
	require.Equal(t, streamtree.Object, v.Type())

	n, err := v.Key("a").AsInt()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	s, err := v.Key("b").AsString()
	require.NoError(t, err)
	assert.Equal(t, "two", s)

	b, err := v.Key("c").AsBool()
	require.NoError(t, err)
	assert.True(t, b)

	b, err = v.Key("d").AsBool()
	require.NoError(t, err)
	assert.False(t, b)

	assert.NoError(t, v.Key("e").AsNull())
}

func TestParseString_NestedArray(t *testing.T) {
	v, err := streamtree.ParseString(`[{"x":1},{"x":2},{"x":3}]`)
	require.NoError(t, err)
	require.Equal(t, streamtree.Array, v.Type())

	arr, err := v.AsArray()
	require.NoError(t, err)
	require.Len(t, arr, 3)

	for i, want := range []int64{1, 2, 3} {
		n, err := v.Index(i).Key("x").AsInt()
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
}

func TestValue_IndexAndKeyOutOfRangeReturnNull(t *testing.T) {
	v, err := streamtree.ParseString(`{"a":[1,2]}`)
	require.NoError(t, err)

	assert.Equal(t, streamtree.Null, v.Key("missing").Type())
	assert.Equal(t, streamtree.Null, v.Key("a").Index(99).Type())
	assert.Equal(t, streamtree.Null, v.Index(0).Type()) // not an array
}

func TestValue_AsNumberWidensIntAndFloat(t *testing.T) {
	v, err := streamtree.ParseString(`[1, 2.5]`)
	require.NoError(t, err)

	arr, err := v.AsArray()
	require.NoError(t, err)

	f0, err := arr[0].AsNumber()
	require.NoError(t, err)
	assert.Equal(t, 1.0, f0)

	f1, err := arr[1].AsNumber()
	require.NoError(t, err)
	assert.Equal(t, 2.5, f1)
}

func TestValue_TypeMismatchIsErrType(t *testing.T) {
	v, err := streamtree.ParseString(`"hello"`)
	require.NoError(t, err)

	_, err = v.AsInt()
	assert.ErrorIs(t, err, streamtree.ErrType)
}

func TestBuild_SyntaxErrorPropagates(t *testing.T) {
	_, err := streamtree.ParseString(`{"a":}`)
	assert.Error(t, err)
}

func TestBuild_ObjectKeepsEveryField(t *testing.T) {
	v, err := streamtree.ParseString(`{"z":1,"a":2,"m":3}`)
	require.NoError(t, err)

	obj, err := v.AsObject()
	require.NoError(t, err)
	assert.Len(t, obj, 3)
	assert.Contains(t, obj, "z")
	assert.Contains(t, obj, "a")
	assert.Contains(t, obj, "m")
}
