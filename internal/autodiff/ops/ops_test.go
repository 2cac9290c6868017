package ops

import (
	"math"
	"testing"

	"github.com/born-ml/gradflow/internal/backend/cpu"
	"github.com/born-ml/gradflow/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilonGrad = 1e-6

var both = []bool{true, true}

func arr(t *testing.T, shape tensor.Shape, data ...float64) *tensor.Array {
	t.Helper()
	a, err := tensor.New(shape, data)
	require.NoError(t, err)
	return a
}

// numericalGradient computes d(sum(fn(x)))/dx with centered finite differences.
// This assumes the loss is sum of all elements in the output (matching grad_output of all ones).
func numericalGradient(t *testing.T, fn func(*tensor.Array) *tensor.Array, x *tensor.Array) []float64 {
	t.Helper()
	data := x.Data()
	grad := make([]float64, len(data))
	for i := range data {
		original := data[i]

		data[i] = original + epsilonGrad
		plus := sumElements(fn(arr(t, x.Shape(), data...)))

		data[i] = original - epsilonGrad
		minus := sumElements(fn(arr(t, x.Shape(), data...)))

		grad[i] = (plus - minus) / (2 * epsilonGrad)
		data[i] = original
	}
	return grad
}

func sumElements(a *tensor.Array) float64 {
	var sum float64
	for _, v := range a.Raw() {
		sum += v
	}
	return sum
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Leaf", Leaf.String())
	assert.Equal(t, "Dot", Dot.String())
	assert.Equal(t, "Kind(?)", Kind(42).String())
}

func TestAddOp(t *testing.T) {
	backend := cpu.New()
	a := arr(t, tensor.Shape{2, 2}, 1, 2, 3, 4)
	b := arr(t, tensor.Shape{2}, 10, 20)

	op, err := NewAddOp(a, b, backend)
	require.NoError(t, err)
	assert.Equal(t, Add, op.Kind())
	assert.Equal(t, []float64{11, 22, 13, 24}, op.Output().Data())
	assert.Len(t, op.Inputs(), 2)

	grads, err := op.Backward(tensor.Ones(tensor.Shape{2, 2}), both, backend)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1, 1}, grads[0].Data())
	// b was broadcast over the leading axis: its gradient is summed back.
	assert.Equal(t, tensor.Shape{2}, grads[1].Shape())
	assert.Equal(t, []float64{2, 2}, grads[1].Data())
}

func TestAddOp_ShapeMismatch(t *testing.T) {
	backend := cpu.New()
	_, err := NewAddOp(arr(t, tensor.Shape{3}, 1, 2, 3), arr(t, tensor.Shape{2}, 1, 2), backend)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestNegOp(t *testing.T) {
	backend := cpu.New()
	op := NewNegOp(arr(t, tensor.Shape{2}, 1, -2), backend)
	assert.Equal(t, []float64{-1, 2}, op.Output().Data())

	grads, err := op.Backward(arr(t, tensor.Shape{2}, 3, 4), []bool{true}, backend)
	require.NoError(t, err)
	assert.Equal(t, []float64{-3, -4}, grads[0].Data())

	grads, err = op.Backward(arr(t, tensor.Shape{2}, 3, 4), []bool{false}, backend)
	require.NoError(t, err)
	assert.Nil(t, grads[0])
}

func TestMulOp(t *testing.T) {
	backend := cpu.New()
	a := arr(t, tensor.Shape{3}, 1, 2, 3)
	b := arr(t, tensor.Shape{3}, 4, 5, 6)

	op, err := NewMulOp(a, b, backend)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 10, 18}, op.Output().Data())

	grads, err := op.Backward(arr(t, tensor.Shape{3}, 1, 1, 2), both, backend)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 12}, grads[0].Data())
	assert.Equal(t, []float64{1, 2, 6}, grads[1].Data())

	grads, err = op.Backward(tensor.Ones(tensor.Shape{3}), []bool{false, true}, backend)
	require.NoError(t, err)
	assert.Nil(t, grads[0])
	assert.NotNil(t, grads[1])
}

func TestMulOp_NumericalGradient(t *testing.T) {
	backend := cpu.New()
	a := arr(t, tensor.Shape{2, 3}, 0.5, -1.5, 2, 3, -0.25, 1)
	b := arr(t, tensor.Shape{3}, 2, -1, 0.5)

	op, err := NewMulOp(a, b, backend)
	require.NoError(t, err)
	grads, err := op.Backward(tensor.Ones(op.Output().Shape()), both, backend)
	require.NoError(t, err)

	numA := numericalGradient(t, func(x *tensor.Array) *tensor.Array {
		out, err := backend.Mul(x, b)
		require.NoError(t, err)
		return out
	}, a)
	numB := numericalGradient(t, func(x *tensor.Array) *tensor.Array {
		out, err := backend.Mul(a, x)
		require.NoError(t, err)
		return out
	}, b)

	assert.InDeltaSlice(t, numA, grads[0].Data(), 1e-6)
	assert.InDeltaSlice(t, numB, grads[1].Data(), 1e-6)
}

func TestPowOp(t *testing.T) {
	backend := cpu.New()
	a := arr(t, tensor.Shape{2}, 2, 3)
	b := arr(t, tensor.Shape{2}, 3, 2)

	op, err := NewPowOp(a, b, backend, true)
	require.NoError(t, err)
	assert.Equal(t, []float64{8, 9}, op.Output().Data())

	grads, err := op.Backward(tensor.Ones(tensor.Shape{2}), both, backend)
	require.NoError(t, err)
	// d/da = b * a^(b-1)
	assert.InDeltaSlice(t, []float64{12, 6}, grads[0].Data(), 1e-12)
	// d/db = ln(a) * a^b
	assert.InDeltaSlice(t, []float64{math.Log(2) * 8, math.Log(3) * 9}, grads[1].Data(), 1e-12)
}

func TestPowOp_ScalarExponent(t *testing.T) {
	backend := cpu.New()
	a := arr(t, tensor.Shape{3}, -2, 0.5, 4)

	// Reciprocal of a negative base is fine when the exponent is constant.
	op, err := NewPowOp(a, tensor.Scalar(-1), backend, true)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-0.5, 2, 0.25}, op.Output().Data(), 1e-12)

	grads, err := op.Backward(tensor.Ones(tensor.Shape{3}), []bool{true, false}, backend)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-0.25, -4, -0.0625}, grads[0].Data(), 1e-12)
	assert.Nil(t, grads[1])
}

func TestPowOp_Domain(t *testing.T) {
	backend := cpu.New()

	t.Run("DivisionByZero", func(t *testing.T) {
		_, err := NewPowOp(arr(t, tensor.Shape{2}, 1, 0), tensor.Scalar(-1), backend, true)
		require.ErrorIs(t, err, tensor.ErrDomain)
	})

	t.Run("FractionalPowerOfNegative", func(t *testing.T) {
		_, err := NewPowOp(arr(t, tensor.Shape{1}, -4), tensor.Scalar(0.5), backend, true)
		require.ErrorIs(t, err, tensor.ErrDomain)
	})

	t.Run("LogOfNonPositiveBase", func(t *testing.T) {
		op, err := NewPowOp(arr(t, tensor.Shape{1}, -2), arr(t, tensor.Shape{1}, 2), backend, true)
		require.NoError(t, err)

		_, err = op.Backward(tensor.Ones(tensor.Shape{1}), both, backend)
		require.ErrorIs(t, err, tensor.ErrDomain)

		// Without an exponent gradient no logarithm is evaluated.
		grads, err := op.Backward(tensor.Ones(tensor.Shape{1}), []bool{true, false}, backend)
		require.NoError(t, err)
		assert.Equal(t, []float64{-4}, grads[0].Data())
	})

	t.Run("IEEESemantics", func(t *testing.T) {
		op, err := NewPowOp(arr(t, tensor.Shape{1}, 0), tensor.Scalar(-1), backend, false)
		require.NoError(t, err)
		assert.True(t, math.IsInf(op.Output().Data()[0], 1))

		neg, err := NewPowOp(arr(t, tensor.Shape{1}, -2), arr(t, tensor.Shape{1}, 2), backend, false)
		require.NoError(t, err)
		grads, err := neg.Backward(tensor.Ones(tensor.Shape{1}), both, backend)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(grads[1].Data()[0]))
	})
}

func TestDotOp(t *testing.T) {
	backend := cpu.New()
	a := arr(t, tensor.Shape{2, 3}, 1, 2, 3, 4, 5, 6)
	b := arr(t, tensor.Shape{3, 1}, 1, 0, -1)

	op, err := NewDotOp(a, b, backend)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 1}, op.Output().Shape())
	assert.Equal(t, []float64{-2, -2}, op.Output().Data())

	grads, err := op.Backward(arr(t, tensor.Shape{2, 1}, 1, 2), both, backend)
	require.NoError(t, err)
	// g @ b^T
	assert.Equal(t, tensor.Shape{2, 3}, grads[0].Shape())
	assert.Equal(t, []float64{1, 0, -1, 2, 0, -2}, grads[0].Data())
	// a^T @ g
	assert.Equal(t, tensor.Shape{3, 1}, grads[1].Shape())
	assert.Equal(t, []float64{9, 12, 15}, grads[1].Data())
}

func TestDotOp_NonConformable(t *testing.T) {
	backend := cpu.New()
	_, err := NewDotOp(tensor.Zeros(tensor.Shape{2, 3}), tensor.Zeros(tensor.Shape{2, 3}), backend)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestSumOp(t *testing.T) {
	backend := cpu.New()
	x := arr(t, tensor.Shape{3, 2}, 1, 2, 3, 4, 5, 6)

	op, err := NewSumOp(x, backend)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2}, op.Output().Shape())
	assert.Equal(t, []float64{9, 12}, op.Output().Data())

	grads, err := op.Backward(arr(t, tensor.Shape{2}, 1, 10), []bool{true}, backend)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2}, grads[0].Shape())
	assert.Equal(t, []float64{1, 10, 1, 10, 1, 10}, grads[0].Data())

	_, err = NewSumOp(tensor.Scalar(3), backend)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestBackward_GradientShapeChecked(t *testing.T) {
	backend := cpu.New()
	op, err := NewMulOp(tensor.Ones(tensor.Shape{2}), tensor.Ones(tensor.Shape{2}), backend)
	require.NoError(t, err)

	_, err = op.Backward(tensor.Ones(tensor.Shape{3}), both, backend)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}
