package ops

import "github.com/born-ml/gradflow/internal/tensor"

// MulOp represents an element-wise multiplication operation: output = a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
type MulOp struct {
	inputs []*tensor.Array // [a, b]
	output *tensor.Array   // a * b
}

// NewMulOp computes a * b and records the operation.
func NewMulOp(a, b *tensor.Array, backend tensor.Backend) (*MulOp, error) {
	output, err := backend.Mul(a, b)
	if err != nil {
		return nil, err
	}
	return &MulOp{
		inputs: []*tensor.Array{a, b},
		output: output,
	}, nil
}

// Kind returns Mul.
func (op *MulOp) Kind() Kind { return Mul }

// Backward computes input gradients for multiplication.
func (op *MulOp) Backward(outputGrad *tensor.Array, needs []bool, backend tensor.Backend) ([]*tensor.Array, error) {
	if err := checkGradShape(Mul, outputGrad, op.output); err != nil {
		return nil, err
	}

	a, b := op.inputs[0], op.inputs[1]
	grads := make([]*tensor.Array, 2)

	// grad_a = outputGrad * b, grad_b = outputGrad * a
	for i, other := range []*tensor.Array{b, a} {
		if !need(needs, i) {
			continue
		}
		g, err := backend.Mul(outputGrad, other)
		if err != nil {
			return nil, err
		}
		if g, err = reduceBroadcast(g, op.inputs[i], backend); err != nil {
			return nil, err
		}
		grads[i] = g
	}
	return grads, nil
}

// Inputs returns the input values [a, b].
func (op *MulOp) Inputs() []*tensor.Array {
	return op.inputs
}

// Output returns the output value a * b.
func (op *MulOp) Output() *tensor.Array {
	return op.output
}
