package array

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromSlice(t *testing.T) {
	a := FromSlice([]int32{0, 1, 2}, -1)

	assert.Equal(t, []Dimension{{Len: 3, LowerBound: -1}}, a.Dimensions())
	assert.Equal(t, int32(0), a.At(-1))
	assert.Equal(t, int32(1), a.At(0))
	assert.Equal(t, int32(2), a.At(1))
}

func TestValues(t *testing.T) {
	a := FromSlice([]int32{0, 1, 2}, -1)

	assert.Equal(t, []int32{0, 1, 2}, a.Values())
	assert.Equal(t, 3, a.Len())
}

func TestFromPartsSizeMismatch(t *testing.T) {
	assert.PanicsWithValue(t, "size mismatch", func() {
		FromParts([]int32{1, 2, 3}, []Dimension{{Len: 2, LowerBound: 1}})
	})
}

func TestTwoDimensionalAt(t *testing.T) {
	a := FromSlice([]int32{0, 1, 2}, -1)
	a.Wrap(1)

	assert.Equal(t, int32(0), a.At(1, -1))
	assert.Equal(t, int32(1), a.At(1, 0))
	assert.Equal(t, int32(2), a.At(1, 1))
}

func TestPushWrongLowerBound(t *testing.T) {
	a := FromSlice([]int32{1}, -1)

	assert.Panics(t, func() {
		a.Push(FromSlice([]int32{2}, 0))
	})
}

func TestPushWrongDims(t *testing.T) {
	a := FromSlice([]int32{1}, -1)
	a.Wrap(1)

	assert.Panics(t, func() {
		a.Push(FromSlice([]int32{1, 2}, -1))
	})
}

func TestPushWrongDimCount(t *testing.T) {
	a := FromSlice([]int32{1}, -1)
	a.Wrap(1)
	b := FromSlice([]int32{2}, -1)
	b.Wrap(1)

	assert.Panics(t, func() {
		a.Push(b)
	})
}

func TestPush(t *testing.T) {
	a := FromSlice([]int32{1, 2}, 0)
	a.Wrap(0)
	a.Push(FromSlice([]int32{3, 4}, 0))

	assert.Equal(t, int32(1), a.At(0, 0))
	assert.Equal(t, int32(2), a.At(0, 1))
	assert.Equal(t, int32(3), a.At(1, 0))
	assert.Equal(t, int32(4), a.At(1, 1))
}

func TestThreeDimensional(t *testing.T) {
	a := FromSlice([]int32{0, 1}, 0)
	a.Wrap(0)
	a.Push(FromSlice([]int32{2, 3}, 0))
	a.Wrap(0)
	b := FromSlice([]int32{4, 5}, 0)
	b.Wrap(0)
	b.Push(FromSlice([]int32{6, 7}, 0))
	a.Push(b)

	want := []struct {
		idx []int
		v   int32
	}{
		{[]int{0, 0, 0}, 0},
		{[]int{0, 0, 1}, 1},
		{[]int{0, 1, 0}, 2},
		{[]int{0, 1, 1}, 3},
		{[]int{1, 0, 0}, 4},
		{[]int{1, 0, 1}, 5},
		{[]int{1, 1, 0}, 6},
		{[]int{1, 1, 1}, 7},
	}
	for _, w := range want {
		assert.Equal(t, w.v, a.At(w.idx...))
	}
}

func TestSet(t *testing.T) {
	a := FromSlice([]int32{1, 2}, 0)
	a.Wrap(0)

	a.Set(3, 0, 0)

	assert.Equal(t, int32(3), a.At(0, 0))
}

func TestAtOutOfBounds(t *testing.T) {
	a := FromSlice([]int32{0, 1, 2}, 1)

	assert.PanicsWithValue(t, "out of bounds array access", func() { a.At(0) })
	assert.PanicsWithValue(t, "out of bounds array access", func() { a.At(4) })
}

func TestString(t *testing.T) {
	a := FromSlice([]int32{0, 1, 2, 3, 4}, 1)
	assert.Equal(t, "{0,1,2,3,4}", a.String())

	a = FromSlice([]int32{0, 1, 2, 3, 4}, -3)
	assert.Equal(t, "[-3:1]={0,1,2,3,4}", a.String())

	a = FromSlice([]int32{1, 2, 3}, 3)
	a.Wrap(-2)
	a.Push(FromSlice([]int32{4, 5, 6}, 3))
	a.Wrap(1)
	assert.Equal(t, "[1:1][-2:-1][3:5]={{{1,2,3},{4,5,6}}}", a.String())

	empty := FromParts([]string(nil), nil)
	assert.Equal(t, "{}", empty.String())
}

func TestEqual(t *testing.T) {
	eq := func(x, y int32) bool { return x == y }

	a := FromSlice([]int32{1, 2}, 0)
	b := FromSlice([]int32{1, 2}, 0)
	assert.True(t, a.Equal(b, eq))

	c := FromSlice([]int32{1, 2}, 1)
	assert.False(t, a.Equal(c, eq))

	d := FromSlice([]int32{1, 3}, 0)
	assert.False(t, a.Equal(d, eq))
}
