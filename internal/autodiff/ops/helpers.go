package ops

import (
	"github.com/born-ml/gradflow/internal/tensor"
	"github.com/pkg/errors"
)

// reduceBroadcast reduces a gradient to match the shape of the input it flows to.
// This is necessary when broadcasting was used in the forward pass.
//
// Example:
//
//	Forward: a[3,1] + b[3,4] -> c[3,4]  (a was broadcast along dim 1)
//	Backward: grad_c[3,4] -> grad_a[3,1] (sum along dim 1)
func reduceBroadcast(grad *tensor.Array, target *tensor.Array, backend tensor.Backend) (*tensor.Array, error) {
	targetShape := target.Shape()
	if grad.Shape().Equal(targetShape) {
		return grad, nil
	}
	return backend.ReduceTo(grad, targetShape)
}

// checkGradShape verifies that an incoming gradient matches the operation's output.
func checkGradShape(kind Kind, outputGrad, output *tensor.Array) error {
	if !outputGrad.Shape().Equal(output.Shape()) {
		return errors.Wrapf(tensor.ErrShapeMismatch, "%s backward: gradient shape %v, output shape %v",
			kind, outputGrad.Shape(), output.Shape())
	}
	return nil
}

// checkDomain fails with ErrDomain when a rule evaluated on finite inputs produced
// NaN or ±Inf.
func checkDomain(result *tensor.Array, what string, inputs ...*tensor.Array) error {
	if result.IsFinite() {
		return nil
	}
	for _, in := range inputs {
		if !in.IsFinite() {
			// Non-finite values were already present: nothing new to report.
			return nil
		}
	}
	return errors.Wrapf(tensor.ErrDomain, "%s produced a non-finite value", what)
}
