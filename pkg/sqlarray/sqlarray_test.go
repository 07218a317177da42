package sqlarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genc-murat/pgarray/pkg/array"
	"github.com/genc-murat/pgarray/pkg/pgtype"
)

func TestValue(t *testing.T) {
	a := array.FromSlice([]pgtype.Nullable[int32]{
		pgtype.Of(int32(1)),
		pgtype.Null[int32](),
	}, 1)

	v, err := New(pgtype.Int4, a).Value()
	require.NoError(t, err)
	assert.Equal(t, "{1,NULL}", v)
}

func TestValueNil(t *testing.T) {
	v, err := New[int32](pgtype.Int4, nil).Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestScan(t *testing.T) {
	v := New(pgtype.Text, nil)

	require.NoError(t, v.Scan([]byte(`{hello,"two words",NULL}`)))
	require.NotNil(t, v.Array)
	assert.Equal(t, []pgtype.Nullable[string]{
		pgtype.Of("hello"),
		pgtype.Of("two words"),
		pgtype.Null[string](),
	}, v.Array.Values())

	require.NoError(t, v.Scan("{a,b}"))
	assert.Equal(t, 2, v.Array.Len())

	require.NoError(t, v.Scan(nil))
	assert.Nil(t, v.Array)
}

func TestScanErrors(t *testing.T) {
	v := New(pgtype.Int4, nil)

	assert.Error(t, v.Scan(42))
	assert.Error(t, v.Scan("{1,2"))
	assert.Error(t, v.Scan("{1,abc}"))
}

func TestScanWithBounds(t *testing.T) {
	v := New(pgtype.Int4, nil)

	require.NoError(t, v.Scan("[-1:0][0:1]={{1,2},{NULL,3}}"))
	assert.Equal(t, []array.Dimension{
		{Len: 2, LowerBound: -1},
		{Len: 2, LowerBound: 0},
	}, v.Array.Dimensions())
	assert.Equal(t, pgtype.Of(int32(3)), v.Array.At(0, 1))
}
