package ops

import "github.com/born-ml/gradflow/internal/tensor"

// SumOp represents a reduction over the leading axis: output = sum(x, axis=0).
// The output has one dimension less than x; summing a vector gives a scalar.
//
// Backward:
//
//	grad_x = ones_like(x) * grad_y
//
// Every input element contributes 1.0 to its output element, so the gradient is
// simply broadcast back over the reduced axis.
type SumOp struct {
	inputs []*tensor.Array // [x]
	output *tensor.Array   // sum(x, 0)
}

// NewSumOp sums x over its leading axis and records the operation.
func NewSumOp(x *tensor.Array, backend tensor.Backend) (*SumOp, error) {
	output, err := backend.SumLeading(x)
	if err != nil {
		return nil, err
	}
	return &SumOp{
		inputs: []*tensor.Array{x},
		output: output,
	}, nil
}

// Kind returns Sum.
func (op *SumOp) Kind() Kind { return Sum }

// Backward broadcasts the output gradient back to the input shape.
func (op *SumOp) Backward(outputGrad *tensor.Array, needs []bool, backend tensor.Backend) ([]*tensor.Array, error) {
	if err := checkGradShape(Sum, outputGrad, op.output); err != nil {
		return nil, err
	}
	if !need(needs, 0) {
		return []*tensor.Array{nil}, nil
	}

	// The output shape is the input shape without its leading axis, which is
	// exactly the right-aligned broadcast NumPy performs for ones_like(x) * g.
	gradX, err := backend.BroadcastTo(outputGrad, op.inputs[0].Shape())
	if err != nil {
		return nil, err
	}
	return []*tensor.Array{gradX}, nil
}

// Inputs returns the input values [x].
func (op *SumOp) Inputs() []*tensor.Array {
	return op.inputs
}

// Output returns the output value sum(x, 0).
func (op *SumOp) Output() *tensor.Array {
	return op.output
}
