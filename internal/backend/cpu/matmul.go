package cpu

import (
	"github.com/born-ml/gradflow/internal/tensor"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// MatMul performs matrix multiplication.
// For 2D arrays: (M, K) @ (K, N) -> (M, N), computed by gonum/mat (BLAS).
func (cpu *CPUBackend) MatMul(a, b *tensor.Array) (*tensor.Array, error) {
	aShape, bShape := a.Shape(), b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch,
			"matmul: only 2D arrays supported, got %dD %v and %dD %v", len(aShape), aShape, len(bShape), bShape)
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]
	if k != kAlt {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "matmul: inner dimensions differ %v @ %v", aShape, bShape)
	}

	// gonum rejects zero-length matrices; the product is all zeros (or empty) anyway.
	if m == 0 || k == 0 || n == 0 {
		return tensor.Zeros(tensor.Shape{m, n}), nil
	}

	var c mat.Dense
	c.Mul(mat.NewDense(m, k, a.Raw()), mat.NewDense(k, n, b.Raw()))
	return tensor.Wrap(tensor.Shape{m, n}, denseData(&c)), nil
}

// Transpose swaps the two axes of a 2D array.
func (cpu *CPUBackend) Transpose(x *tensor.Array) (*tensor.Array, error) {
	shape := x.Shape()
	if len(shape) != 2 {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "transpose: only 2D arrays supported, got %v", shape)
	}

	rows, cols := shape[0], shape[1]
	if rows == 0 || cols == 0 {
		return tensor.Zeros(tensor.Shape{cols, rows}), nil
	}

	t := mat.DenseCopyOf(mat.NewDense(rows, cols, x.Raw()).T())
	return tensor.Wrap(tensor.Shape{cols, rows}, denseData(t)), nil
}

// denseData returns the row-major values of d in a fresh slice.
func denseData(d *mat.Dense) []float64 {
	r, c := d.Dims()
	raw := d.RawMatrix()
	if raw.Stride == c {
		out := make([]float64, r*c)
		copy(out, raw.Data[:r*c])
		return out
	}
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		out = append(out, raw.Data[i*raw.Stride:i*raw.Stride+c]...)
	}
	return out
}
