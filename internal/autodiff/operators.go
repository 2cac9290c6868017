package autodiff

import (
	"github.com/born-ml/gradflow/internal/autodiff/ops"
	"github.com/born-ml/gradflow/internal/tensor"
	"github.com/pkg/errors"
)

// Add returns v + other (element-wise, broadcasting).
func (v *Value) Add(other *Value) (*Value, error) {
	if err := checkOperands("add", v, other); err != nil {
		return nil, err
	}
	op, err := ops.NewAddOp(v.data, other.data, v.engine.backend)
	if err != nil {
		return nil, errors.WithMessage(err, "add")
	}
	return v.engine.record(op, v, other), nil
}

// Neg returns -v.
func (v *Value) Neg() (*Value, error) {
	if err := checkOperands("neg", v); err != nil {
		return nil, err
	}
	return v.engine.record(ops.NewNegOp(v.data, v.engine.backend), v), nil
}

// Sub returns v - other, recorded as v + (-other).
func (v *Value) Sub(other *Value) (*Value, error) {
	if err := checkOperands("sub", v, other); err != nil {
		return nil, err
	}
	neg, err := other.Neg()
	if err != nil {
		return nil, err
	}
	return v.Add(neg)
}

// Mul returns v * other (element-wise, broadcasting).
func (v *Value) Mul(other *Value) (*Value, error) {
	if err := checkOperands("mul", v, other); err != nil {
		return nil, err
	}
	op, err := ops.NewMulOp(v.data, other.data, v.engine.backend)
	if err != nil {
		return nil, errors.WithMessage(err, "mul")
	}
	return v.engine.record(op, v, other), nil
}

// Div returns v / other, recorded as v * other^(-1) with a constant exponent.
func (v *Value) Div(other *Value) (*Value, error) {
	if err := checkOperands("div", v, other); err != nil {
		return nil, err
	}
	reciprocal, err := other.Pow(v.engine.FromArray(tensor.Scalar(-1), false))
	if err != nil {
		return nil, errors.WithMessage(err, "div")
	}
	return v.Mul(reciprocal)
}

// Pow returns v ^ exponent (element-wise, broadcasting).
func (v *Value) Pow(exponent *Value) (*Value, error) {
	if err := checkOperands("pow", v, exponent); err != nil {
		return nil, err
	}
	op, err := ops.NewPowOp(v.data, exponent.data, v.engine.backend, v.engine.StrictDomain())
	if err != nil {
		return nil, errors.WithMessage(err, "pow")
	}
	return v.engine.record(op, v, exponent), nil
}

// Dot returns the matrix product v @ other. Both values must be 2D with
// conformable inner dimensions.
func (v *Value) Dot(other *Value) (*Value, error) {
	if err := checkOperands("dot", v, other); err != nil {
		return nil, err
	}
	op, err := ops.NewDotOp(v.data, other.data, v.engine.backend)
	if err != nil {
		return nil, errors.WithMessage(err, "dot")
	}
	return v.engine.record(op, v, other), nil
}

// Sum reduces v over its leading axis; a vector sums to a scalar.
func (v *Value) Sum() (*Value, error) {
	if err := checkOperands("sum", v); err != nil {
		return nil, err
	}
	op, err := ops.NewSumOp(v.data, v.engine.backend)
	if err != nil {
		return nil, errors.WithMessage(err, "sum")
	}
	return v.engine.record(op, v), nil
}

// Greater returns a constant holding 1 where v > other and 0 elsewhere.
// The result never takes part in backward.
func (v *Value) Greater(other *Value) (*Value, error) {
	if err := checkOperands("greater", v, other); err != nil {
		return nil, err
	}
	mask, err := v.engine.backend.Greater(v.data, other.data)
	if err != nil {
		return nil, errors.WithMessage(err, "greater")
	}
	return v.engine.FromArray(mask, false), nil
}

// record wraps a computed operation into a new graph node.
func (e *Engine) record(op ops.Operation, operands ...*Value) *Value {
	requiresGrad := false
	for _, operand := range operands {
		requiresGrad = requiresGrad || operand.requiresGrad
	}
	return newValue(e, op.Output(), requiresGrad, op, operands)
}

func checkOperands(name string, operands ...*Value) error {
	for i, operand := range operands {
		if operand == nil {
			return errors.Errorf("%s: operand %d is nil", name, i)
		}
	}
	return nil
}
