package cpu

import (
	"github.com/born-ml/gradflow/internal/parallel"
	"github.com/born-ml/gradflow/internal/tensor"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// SumLeading sums x over its leading axis, producing an array of rank-1 lower.
//
// Example:
//
//	x: (3, 2) -> (2,)   column sums
//	x: (4,)   -> ()     scalar total
func (cpu *CPUBackend) SumLeading(x *tensor.Array) (*tensor.Array, error) {
	shape := x.Shape()
	if len(shape) == 0 {
		return nil, errors.Wrap(tensor.ErrShapeMismatch, "sum: cannot reduce the leading axis of a scalar")
	}

	outShape := shape[1:].Clone()
	inner := outShape.NumElements()
	out := make([]float64, inner)
	src := x.Raw()
	for i := 0; i < shape[0]; i++ {
		floats.Add(out, src[i*inner:(i+1)*inner])
	}
	return tensor.Wrap(outShape, out), nil
}

// BroadcastTo expands x to shape following NumPy broadcasting rules.
func (cpu *CPUBackend) BroadcastTo(x *tensor.Array, shape tensor.Shape) (*tensor.Array, error) {
	src := x.Shape()
	if err := checkBroadcastable(src, shape); err != nil {
		return nil, errors.WithMessage(err, "broadcast")
	}
	if src.Equal(shape) {
		return tensor.New(shape, x.Raw())
	}

	out := make([]float64, shape.NumElements())
	data := x.Raw()
	dstStrides := shape.ComputeStrides()
	srcStrides := src.ComputeStrides()
	parallel.For(len(out), func(i int) {
		out[i] = data[tensor.BroadcastIndex(i, shape, dstStrides, src, srcStrides)]
	}, cpu.parallel)

	return tensor.Wrap(shape, out), nil
}

// ReduceTo is the adjoint of BroadcastTo: it sums x over every axis along which an
// array of the given shape would have been broadcast to produce x's shape.
//
// Example:
//
//	Forward: a(3, 1) + b(3, 4) -> c(3, 4)  (a was broadcast along axis 1)
//	Backward: ReduceTo(grad_c(3, 4), (3, 1)) -> grad_a(3, 1)
func (cpu *CPUBackend) ReduceTo(x *tensor.Array, shape tensor.Shape) (*tensor.Array, error) {
	src := x.Shape()
	if err := checkBroadcastable(shape, src); err != nil {
		return nil, errors.WithMessage(err, "reduce")
	}
	if src.Equal(shape) {
		return tensor.New(shape, x.Raw())
	}

	// Accumulation targets collide, so this loop stays sequential.
	out := make([]float64, shape.NumElements())
	data := x.Raw()
	srcStrides := src.ComputeStrides()
	dstStrides := shape.ComputeStrides()
	for i, v := range data {
		out[tensor.BroadcastIndex(i, src, srcStrides, shape, dstStrides)] += v
	}
	return tensor.Wrap(shape, out), nil
}

// checkBroadcastable verifies that from broadcasts exactly to to.
func checkBroadcastable(from, to tensor.Shape) error {
	result, _, err := tensor.BroadcastShapes(from, to)
	if err != nil {
		return err
	}
	if !result.Equal(to) {
		return errors.Wrapf(tensor.ErrShapeMismatch, "shape %v does not broadcast to %v", from, to)
	}
	return nil
}
