// Package ops defines the closed set of differentiable operations of the autodiff graph.
//
// Each operation computes its forward value eagerly when constructed and keeps it,
// together with its input values, so the backward pass recomputes nothing.
//
// Supported operations:
//   - AddOp: element-wise addition (d(a+b)/da = 1, d(a+b)/db = 1)
//   - NegOp: negation (d(-a)/da = -1)
//   - MulOp: element-wise multiplication (d(a*b)/da = b, d(a*b)/db = a)
//   - PowOp: element-wise power (d(a^b)/da = b*a^(b-1), d(a^b)/db = ln(a)*a^b)
//   - DotOp: matrix multiplication (d(A@B)/dA = grad@B^T, d(A@B)/dB = A^T@grad)
//   - SumOp: reduction over the leading axis (gradient broadcast back)
//
// Element-wise operations broadcast their inputs; gradients are reduced back to
// each input's shape before they are returned.
package ops

import "github.com/born-ml/gradflow/internal/tensor"

// Kind tags the variant of a graph node.
type Kind int

// Node kinds. Leaf marks values created directly by the caller.
const (
	Leaf Kind = iota
	Add
	Neg
	Mul
	Pow
	Dot
	Sum
)

// String returns the operation name.
func (k Kind) String() string {
	switch k {
	case Leaf:
		return "Leaf"
	case Add:
		return "Add"
	case Neg:
		return "Neg"
	case Mul:
		return "Mul"
	case Pow:
		return "Pow"
	case Dot:
		return "Dot"
	case Sum:
		return "Sum"
	default:
		return "Kind(?)"
	}
}

// Operation represents a differentiable operation in the computation graph.
// The forward value is computed by the constructor (NewAddOp, NewMulOp, ...).
type Operation interface {
	// Kind identifies the operation.
	Kind() Kind

	// Backward computes gradients for inputs given the output gradient.
	// needs[i] reports whether input i requires a gradient; entries for inputs that
	// do not are left nil and their local derivative is never evaluated.
	//
	// Example for AddOp:
	//   inputs: [a, b]
	//   outputGrad: dL/d(a+b)
	//   returns: [dL/d(a+b), dL/d(a+b)] (gradient flows equally to both inputs)
	Backward(outputGrad *tensor.Array, needs []bool, backend tensor.Backend) ([]*tensor.Array, error)

	// Inputs returns the input values of this operation.
	Inputs() []*tensor.Array

	// Output returns the forward value produced by this operation.
	Output() *tensor.Array
}

// need reports whether input i requires a gradient.
func need(needs []bool, i int) bool {
	return i < len(needs) && needs[i]
}
