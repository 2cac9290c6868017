package ops

import "github.com/born-ml/gradflow/internal/tensor"

// AddOp represents an element-wise addition operation: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = outputGrad
//   - d(a+b)/db = 1, so grad_b = outputGrad
//
// If broadcasting was used in the forward pass, gradients are reduced (summed)
// along the broadcast dimensions to match input shapes.
type AddOp struct {
	inputs []*tensor.Array // [a, b]
	output *tensor.Array   // a + b
}

// NewAddOp computes a + b and records the operation.
func NewAddOp(a, b *tensor.Array, backend tensor.Backend) (*AddOp, error) {
	output, err := backend.Add(a, b)
	if err != nil {
		return nil, err
	}
	return &AddOp{
		inputs: []*tensor.Array{a, b},
		output: output,
	}, nil
}

// Kind returns Add.
func (op *AddOp) Kind() Kind { return Add }

// Backward computes input gradients for addition.
// Since d(a+b)/da = d(a+b)/db = 1, the gradient flows equally to both inputs.
func (op *AddOp) Backward(outputGrad *tensor.Array, needs []bool, backend tensor.Backend) ([]*tensor.Array, error) {
	if err := checkGradShape(Add, outputGrad, op.output); err != nil {
		return nil, err
	}

	grads := make([]*tensor.Array, 2)
	for i, in := range op.inputs {
		if !need(needs, i) {
			continue
		}
		g, err := reduceBroadcast(outputGrad, in, backend)
		if err != nil {
			return nil, err
		}
		grads[i] = g
	}
	return grads, nil
}

// Inputs returns the input values [a, b].
func (op *AddOp) Inputs() []*tensor.Array {
	return op.inputs
}

// Output returns the output value a + b.
func (op *AddOp) Output() *tensor.Array {
	return op.output
}
