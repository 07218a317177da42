package array

import (
	"fmt"
	"strings"
)

// Dimension describes one dimension of an Array: its length and the index of
// its first element. PostgreSQL arrays start at 1 by default, but any lower
// bound is allowed, including negative ones.
type Dimension struct {
	Len        int
	LowerBound int
}

func (d Dimension) shift(idx int) int {
	if idx < d.LowerBound || idx >= d.LowerBound+d.Len {
		panic("out of bounds array access")
	}
	return idx - d.LowerBound
}

// Array is a multi-dimensional array with per-dimension lower bounds. The
// backing data is stored in the higher-dimensional equivalent of row-major
// order.
type Array[T any] struct {
	dims []Dimension
	data []T
}

// FromParts creates an Array from its underlying components. The data slice
// must be in row-major order.
//
// Panics if the number of elements provided does not match the number of
// elements specified by the dimensions.
func FromParts[T any](data []T, dims []Dimension) *Array[T] {
	if len(data) == 0 && len(dims) == 0 {
		return &Array[T]{}
	}
	n := 1
	for _, d := range dims {
		n *= d.Len
	}
	if len(data) != n {
		panic("size mismatch")
	}
	return &Array[T]{dims: dims, data: data}
}

// FromSlice creates a new one-dimensional array.
func FromSlice[T any](data []T, lowerBound int) *Array[T] {
	return &Array[T]{
		dims: []Dimension{{Len: len(data), LowerBound: lowerBound}},
		data: data,
	}
}

// Wrap adds a new outermost dimension of length 1. For example, the
// one-dimensional array [1, 2] turns into the two-dimensional array [[1, 2]].
func (a *Array[T]) Wrap(lowerBound int) {
	a.dims = append([]Dimension{{Len: 1, LowerBound: lowerBound}}, a.dims...)
}

// Push appends another array along the first dimension of this array. The
// other array's dimensions must equal this array's dimensions with the first
// one removed, lower bounds included. For example, pushing [3, 4] onto
// [[1, 2]] yields [[1, 2], [3, 4]].
//
// Panics if the dimensions of the two arrays do not match.
func (a *Array[T]) Push(other *Array[T]) {
	if len(a.dims)-1 != len(other.dims) {
		panic("cannot append differently shaped arrays")
	}
	for i, d := range other.dims {
		if a.dims[i+1] != d {
			panic("cannot append differently shaped arrays")
		}
	}
	a.dims[0].Len++
	a.data = append(a.data, other.data...)
}

// Dimensions returns a copy of this array's dimensions.
func (a *Array[T]) Dimensions() []Dimension {
	dims := make([]Dimension, len(a.dims))
	copy(dims, a.dims)
	return dims
}

// Values returns the backing slice in row-major order. Mutating it mutates
// the array.
func (a *Array[T]) Values() []T {
	return a.data
}

// Len returns the total number of elements.
func (a *Array[T]) Len() int {
	return len(a.data)
}

func (a *Array[T]) offset(indices []int) int {
	if len(indices) != len(a.dims) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(a.dims), len(indices)))
	}
	off := 0
	stride := 1
	for i := len(a.dims) - 1; i >= 0; i-- {
		off += a.dims[i].shift(indices[i]) * stride
		stride *= a.dims[i].Len
	}
	return off
}

// At returns the element at the given indices, one per dimension, each
// interpreted relative to its dimension's lower bound.
//
// Panics if the indices do not name an in-bounds element.
func (a *Array[T]) At(indices ...int) T {
	return a.data[a.offset(indices)]
}

// Set replaces the element at the given indices.
//
// Panics if the indices do not name an in-bounds element.
func (a *Array[T]) Set(v T, indices ...int) {
	a.data[a.offset(indices)] = v
}

// Equal reports whether the two arrays have identical dimensions and
// pairwise-equal elements under eq.
func (a *Array[T]) Equal(other *Array[T], eq func(x, y T) bool) bool {
	if len(a.dims) != len(other.dims) || len(a.data) != len(other.data) {
		return false
	}
	for i, d := range a.dims {
		if other.dims[i] != d {
			return false
		}
	}
	for i, v := range a.data {
		if !eq(v, other.data[i]) {
			return false
		}
	}
	return true
}

// String renders the array the way PostgreSQL displays it: nested braces with
// comma-separated elements, preceded by explicit [lower:upper] bounds when
// any lower bound differs from 1. Elements are rendered with fmt.Sprint and
// are not quoted; use the literal package for a parseable literal.
func (a *Array[T]) String() string {
	var sb strings.Builder
	for _, d := range a.dims {
		if d.LowerBound != 1 {
			for _, d := range a.dims {
				fmt.Fprintf(&sb, "[%d:%d]", d.LowerBound, d.LowerBound+d.Len-1)
			}
			sb.WriteByte('=')
			break
		}
	}
	next := 0
	a.formatLevel(&sb, 0, &next)
	return sb.String()
}

func (a *Array[T]) formatLevel(sb *strings.Builder, depth int, next *int) {
	if len(a.dims) == 0 {
		sb.WriteString("{}")
		return
	}
	if depth == len(a.dims) {
		fmt.Fprint(sb, a.data[*next])
		*next++
		return
	}
	sb.WriteByte('{')
	for i := 0; i < a.dims[depth].Len; i++ {
		if i != 0 {
			sb.WriteByte(',')
		}
		a.formatLevel(sb, depth+1, next)
	}
	sb.WriteByte('}')
}
