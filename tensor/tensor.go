// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/gradflow/internal/tensor"
)

// Array is an immutable n-dimensional array of float64 values.
type Array = tensor.Array

// Shape represents the dimensions of an array.
type Shape = tensor.Shape

// Backend is the numeric contract the autodiff engine computes with.
type Backend = tensor.Backend

// Errors returned by array construction and backend operations.
// Use errors.Is to test for them.
var (
	// ErrShapeMismatch reports incompatible or invalid shapes.
	ErrShapeMismatch = tensor.ErrShapeMismatch

	// ErrDomain reports a mathematically invalid operation such as 0^-1.
	ErrDomain = tensor.ErrDomain
)

// New creates an array from a copy of data in row-major order.
//
// Example:
//
//	x, err := tensor.New(tensor.Shape{2, 2}, []float64{1, 2, 3, 4})
func New(shape Shape, data []float64) (*Array, error) {
	return tensor.New(shape, data)
}

// FromValue converts a scalar, a (nested) slice or array of numbers, or an
// existing *Array into a new Array. Ragged input fails with ErrShapeMismatch.
func FromValue(value any) (*Array, error) {
	return tensor.FromValue(value)
}

// Full creates an array filled with value.
func Full(shape Shape, value float64) *Array {
	return tensor.Full(shape, value)
}

// Zeros creates an array filled with zeros.
func Zeros(shape Shape) *Array {
	return tensor.Zeros(shape)
}

// Ones creates an array filled with ones.
func Ones(shape Shape) *Array {
	return tensor.Ones(shape)
}

// Scalar creates a rank-0 array.
func Scalar(v float64) *Array {
	return tensor.Scalar(v)
}

// BroadcastShapes returns the shape two operands broadcast to.
func BroadcastShapes(a, b Shape) (Shape, error) {
	out, _, err := tensor.BroadcastShapes(a, b)
	return out, err
}
