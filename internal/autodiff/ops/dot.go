package ops

import "github.com/born-ml/gradflow/internal/tensor"

// DotOp represents a matrix multiplication operation: output = a @ b.
//
// Backward pass:
//   - d(A@B)/dA = outputGrad @ B^T
//   - d(A@B)/dB = A^T @ outputGrad
//
// Where @ denotes matrix multiplication and ^T denotes transpose.
// Both inputs must be 2D with conformable inner dimensions.
type DotOp struct {
	inputs []*tensor.Array // [a, b]
	output *tensor.Array   // a @ b
}

// NewDotOp computes a @ b and records the operation.
func NewDotOp(a, b *tensor.Array, backend tensor.Backend) (*DotOp, error) {
	output, err := backend.MatMul(a, b)
	if err != nil {
		return nil, err
	}
	return &DotOp{
		inputs: []*tensor.Array{a, b},
		output: output,
	}, nil
}

// Kind returns Dot.
func (op *DotOp) Kind() Kind { return Dot }

// Backward computes input gradients for matrix multiplication.
func (op *DotOp) Backward(outputGrad *tensor.Array, needs []bool, backend tensor.Backend) ([]*tensor.Array, error) {
	if err := checkGradShape(Dot, outputGrad, op.output); err != nil {
		return nil, err
	}

	a, b := op.inputs[0], op.inputs[1]
	grads := make([]*tensor.Array, 2)

	if need(needs, 0) {
		// grad_a = outputGrad @ b^T
		bT, err := backend.Transpose(b)
		if err != nil {
			return nil, err
		}
		if grads[0], err = backend.MatMul(outputGrad, bT); err != nil {
			return nil, err
		}
	}

	if need(needs, 1) {
		// grad_b = a^T @ outputGrad
		aT, err := backend.Transpose(a)
		if err != nil {
			return nil, err
		}
		if grads[1], err = backend.MatMul(aT, outputGrad); err != nil {
			return nil, err
		}
	}

	return grads, nil
}

// Inputs returns the input values [a, b].
func (op *DotOp) Inputs() []*tensor.Array {
	return op.inputs
}

// Output returns the output value a @ b.
func (op *DotOp) Output() *tensor.Array {
	return op.output
}
