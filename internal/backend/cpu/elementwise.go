package cpu

import (
	"math"

	"github.com/born-ml/gradflow/internal/parallel"
	"github.com/born-ml/gradflow/internal/tensor"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.Array) (*tensor.Array, error) {
	return cpu.binary("add", a, b, floats.AddTo, func(x, y float64) float64 { return x + y })
}

// Mul performs element-wise multiplication with NumPy-style broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.Array) (*tensor.Array, error) {
	return cpu.binary("mul", a, b, floats.MulTo, func(x, y float64) float64 { return x * y })
}

// Pow raises a to the power b element-wise with NumPy-style broadcasting.
// Results follow math.Pow, so invalid domains yield NaN or ±Inf.
func (cpu *CPUBackend) Pow(a, b *tensor.Array) (*tensor.Array, error) {
	return cpu.binary("pow", a, b, nil, math.Pow)
}

// Greater returns 1 where a > b and 0 elsewhere, with NumPy-style broadcasting.
func (cpu *CPUBackend) Greater(a, b *tensor.Array) (*tensor.Array, error) {
	return cpu.binary("greater", a, b, nil, func(x, y float64) float64 {
		if x > y {
			return 1
		}
		return 0
	})
}

// Neg returns -x.
func (cpu *CPUBackend) Neg(x *tensor.Array) *tensor.Array {
	out := make([]float64, x.Size())
	floats.ScaleTo(out, -1, x.Raw())
	return tensor.Wrap(x.Shape(), out)
}

// Log returns the element-wise natural logarithm of x.
func (cpu *CPUBackend) Log(x *tensor.Array) *tensor.Array {
	src := x.Raw()
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = math.Log(v)
	}
	return tensor.Wrap(x.Shape(), out)
}

// binary dispatches a broadcasting element-wise kernel.
// vectorized, when not nil, handles the same-shape fast path.
func (cpu *CPUBackend) binary(
	name string,
	a, b *tensor.Array,
	vectorized func(dst, s, t []float64) []float64,
	fn func(x, y float64) float64,
) (*tensor.Array, error) {
	aShape, bShape := a.Shape(), b.Shape()
	outShape, needsBroadcast, err := tensor.BroadcastShapes(aShape, bShape)
	if err != nil {
		return nil, errors.WithMessage(err, name)
	}

	out := make([]float64, outShape.NumElements())
	aData, bData := a.Raw(), b.Raw()

	if !needsBroadcast {
		// Fast path: same shape
		if vectorized != nil {
			vectorized(out, aData, bData)
		} else {
			for i := range out {
				out[i] = fn(aData[i], bData[i])
			}
		}
		return tensor.Wrap(outShape, out), nil
	}

	// Slow path: broadcasting required
	outStrides := outShape.ComputeStrides()
	aStrides := aShape.ComputeStrides()
	bStrides := bShape.ComputeStrides()
	parallel.For(len(out), func(i int) {
		ai := tensor.BroadcastIndex(i, outShape, outStrides, aShape, aStrides)
		bi := tensor.BroadcastIndex(i, outShape, outStrides, bShape, bStrides)
		out[i] = fn(aData[ai], bData[bi])
	}, cpu.parallel)

	return tensor.Wrap(outShape, out), nil
}
