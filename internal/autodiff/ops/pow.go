package ops

import (
	"github.com/born-ml/gradflow/internal/tensor"
	"github.com/pkg/errors"
)

// PowOp represents an element-wise power operation: output = a ^ b.
//
// Backward pass:
//   - d(a^b)/da = b * a^(b-1), so grad_a = outputGrad * b * a^(b-1)
//   - d(a^b)/db = ln(a) * a^b,  so grad_b = outputGrad * ln(a) * a^b
//
// In strict mode a rule that turns finite inputs into NaN or ±Inf fails with
// tensor.ErrDomain: a negative base with a fractional exponent, zero raised to a
// negative power (division by zero), or ln(a) for a <= 0 when b needs a gradient.
type PowOp struct {
	inputs []*tensor.Array // [a, b]
	output *tensor.Array   // a ^ b
	strict bool
}

// NewPowOp computes a ^ b and records the operation.
func NewPowOp(a, b *tensor.Array, backend tensor.Backend, strict bool) (*PowOp, error) {
	output, err := backend.Pow(a, b)
	if err != nil {
		return nil, err
	}
	if strict {
		if err := checkDomain(output, "pow", a, b); err != nil {
			return nil, err
		}
	}
	return &PowOp{
		inputs: []*tensor.Array{a, b},
		output: output,
		strict: strict,
	}, nil
}

// Kind returns Pow.
func (op *PowOp) Kind() Kind { return Pow }

// Backward computes input gradients for the power operation.
// The logarithm is only evaluated when the exponent needs a gradient.
func (op *PowOp) Backward(outputGrad *tensor.Array, needs []bool, backend tensor.Backend) ([]*tensor.Array, error) {
	if err := checkGradShape(Pow, outputGrad, op.output); err != nil {
		return nil, err
	}

	grads := make([]*tensor.Array, 2)
	if need(needs, 0) {
		local, err := op.baseDerivative(backend)
		if err != nil {
			return nil, err
		}
		if grads[0], err = op.chain(local, outputGrad, 0, backend); err != nil {
			return nil, err
		}
	}
	if need(needs, 1) {
		local, err := op.exponentDerivative(backend)
		if err != nil {
			return nil, err
		}
		if grads[1], err = op.chain(local, outputGrad, 1, backend); err != nil {
			return nil, err
		}
	}
	return grads, nil
}

// baseDerivative returns b * a^(b-1).
func (op *PowOp) baseDerivative(backend tensor.Backend) (*tensor.Array, error) {
	a, b := op.inputs[0], op.inputs[1]
	bMinusOne, err := backend.Add(b, tensor.Scalar(-1))
	if err != nil {
		return nil, err
	}
	p, err := backend.Pow(a, bMinusOne)
	if err != nil {
		return nil, err
	}
	local, err := backend.Mul(b, p)
	if err != nil {
		return nil, err
	}
	if op.strict {
		if err := checkDomain(local, "pow backward (base)", a, b); err != nil {
			return nil, err
		}
	}
	return local, nil
}

// exponentDerivative returns ln(a) * a^b.
func (op *PowOp) exponentDerivative(backend tensor.Backend) (*tensor.Array, error) {
	a := op.inputs[0]
	if op.strict {
		for _, v := range a.Raw() {
			if v <= 0 {
				return nil, errors.Wrapf(tensor.ErrDomain, "pow backward (exponent): logarithm of non-positive base %v", v)
			}
		}
	}
	return backend.Mul(backend.Log(a), op.output)
}

// chain multiplies a local derivative by the output gradient and reduces the
// result to the shape of input i.
func (op *PowOp) chain(local, outputGrad *tensor.Array, i int, backend tensor.Backend) (*tensor.Array, error) {
	g, err := backend.Mul(local, outputGrad)
	if err != nil {
		return nil, err
	}
	return reduceBroadcast(g, op.inputs[i], backend)
}

// Inputs returns the input values [a, b].
func (op *PowOp) Inputs() []*tensor.Array {
	return op.inputs
}

// Output returns the output value a ^ b.
func (op *PowOp) Output() *tensor.Array {
	return op.output
}
