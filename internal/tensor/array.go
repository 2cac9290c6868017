// Package tensor defines the dense float64 array that flows through the autodiff
// graph, its Shape, and the Backend contract numeric libraries implement.
package tensor

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Array is an immutable, row-major, n-dimensional array of float64 values.
//
// Arrays are never modified after construction: every backend operation returns a
// new Array. Use Data to obtain a private copy of the values.
type Array struct {
	shape Shape
	data  []float64
}

// New creates an Array from a copy of data laid out in row-major order.
func New(shape Shape, data []float64) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, errors.Wrapf(ErrShapeMismatch, "shape %v requires %d elements, but got %d",
			shape, shape.NumElements(), len(data))
	}
	owned := make([]float64, len(data))
	copy(owned, data)
	return &Array{shape: shape.Clone(), data: owned}, nil
}

// Wrap creates an Array that takes ownership of data without copying it.
// Backends use it for freshly allocated results; data must not be modified afterwards.
// It panics if len(data) does not match the shape.
func Wrap(shape Shape, data []float64) *Array {
	if shape.NumElements() != len(data) {
		panic(fmt.Sprintf("tensor.Wrap: shape %v requires %d elements, got %d", shape, shape.NumElements(), len(data)))
	}
	return &Array{shape: shape.Clone(), data: data}
}

// Full returns an Array of the given shape filled with value.
func Full(shape Shape, value float64) *Array {
	data := make([]float64, shape.NumElements())
	if value != 0 {
		for i := range data {
			data[i] = value
		}
	}
	return Wrap(shape, data)
}

// Zeros returns an Array of the given shape filled with zeros.
func Zeros(shape Shape) *Array {
	return Full(shape, 0)
}

// Ones returns an Array of the given shape filled with ones.
func Ones(shape Shape) *Array {
	return Full(shape, 1)
}

// Scalar returns a rank-0 Array holding v.
func Scalar(v float64) *Array {
	return Wrap(Shape{}, []float64{v})
}

// Shape returns a copy of the array's shape.
func (a *Array) Shape() Shape {
	return a.shape.Clone()
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int {
	return len(a.shape)
}

// Size returns the number of elements.
func (a *Array) Size() int {
	return len(a.data)
}

// Data returns a copy of the values in row-major order.
func (a *Array) Data() []float64 {
	out := make([]float64, len(a.data))
	copy(out, a.data)
	return out
}

// Raw returns the backing slice without copying.
// Backends read it in their kernels; it must be treated as read-only.
func (a *Array) Raw() []float64 {
	return a.data
}

// At returns the element at the given coordinates.
func (a *Array) At(indices ...int) (float64, error) {
	if len(indices) != len(a.shape) {
		return 0, errors.Wrapf(ErrShapeMismatch, "At: got %d indices for shape %v", len(indices), a.shape)
	}
	strides := a.shape.ComputeStrides()
	flat := 0
	for d, idx := range indices {
		if idx < 0 || idx >= a.shape[d] {
			return 0, errors.Errorf("At: index %d out of range for dimension %d of shape %v", idx, d, a.shape)
		}
		flat += idx * strides[d]
	}
	return a.data[flat], nil
}

// Item returns the only element of a single-element array.
func (a *Array) Item() (float64, error) {
	if len(a.data) != 1 {
		return 0, errors.Wrapf(ErrShapeMismatch, "Item: array of shape %v has %d elements", a.shape, len(a.data))
	}
	return a.data[0], nil
}

// Reshape returns a copy of the array with a new shape holding the same number of elements.
func (a *Array) Reshape(shape Shape) (*Array, error) {
	return New(shape, a.data)
}

// Equal reports whether both arrays have the same shape and identical values.
// NaN values never compare equal.
func (a *Array) Equal(other *Array) bool {
	if other == nil || !a.shape.Equal(other.shape) {
		return false
	}
	for i, v := range a.data {
		if v != other.data[i] {
			return false
		}
	}
	return true
}

// IsFinite reports whether no element is NaN or ±Inf.
func (a *Array) IsFinite() bool {
	for _, v := range a.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// String renders the array in nested-bracket form, e.g. [[1 2] [3 4]].
func (a *Array) String() string {
	if len(a.shape) == 0 {
		return fmt.Sprint(a.data[0])
	}
	var sb strings.Builder
	a.format(&sb, 0, 0)
	return sb.String()
}

func (a *Array) format(sb *strings.Builder, dim, offset int) {
	stride := 1
	for _, d := range a.shape[dim+1:] {
		stride *= d
	}
	sb.WriteByte('[')
	for i := 0; i < a.shape[dim]; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if dim == len(a.shape)-1 {
			fmt.Fprint(sb, a.data[offset+i])
		} else {
			a.format(sb, dim+1, offset+i*stride)
		}
	}
	sb.WriteByte(']')
}
