package ops

import "github.com/born-ml/gradflow/internal/tensor"

// NegOp represents negation: output = -a.
//
// Backward pass:
//   - d(-a)/da = -1, so grad_a = -outputGrad
type NegOp struct {
	inputs []*tensor.Array // [a]
	output *tensor.Array   // -a
}

// NewNegOp computes -a and records the operation.
func NewNegOp(a *tensor.Array, backend tensor.Backend) *NegOp {
	return &NegOp{
		inputs: []*tensor.Array{a},
		output: backend.Neg(a),
	}
}

// Kind returns Neg.
func (op *NegOp) Kind() Kind { return Neg }

// Backward computes the input gradient for negation.
func (op *NegOp) Backward(outputGrad *tensor.Array, needs []bool, backend tensor.Backend) ([]*tensor.Array, error) {
	if err := checkGradShape(Neg, outputGrad, op.output); err != nil {
		return nil, err
	}
	if !need(needs, 0) {
		return []*tensor.Array{nil}, nil
	}
	return []*tensor.Array{backend.Neg(outputGrad)}, nil
}

// Inputs returns the input values [a].
func (op *NegOp) Inputs() []*tensor.Array {
	return op.inputs
}

// Output returns the output value -a.
func (op *NegOp) Output() *tensor.Array {
	return op.output
}
