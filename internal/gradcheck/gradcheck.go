// Package gradcheck compares analytic gradients from the autodiff graph with
// centered finite differences.
//
// The checked objective is the sum of all output elements, i.e. backward is seeded
// with ones. For every input element x_i the numeric gradient is
//
//	(f(x + h·e_i) - f(x - h·e_i)) / 2h
//
// and it must match the analytic gradient within Config.Tolerance, absolute or
// relative (gonum floats.EqualWithinAbsOrRel).
package gradcheck

import (
	"fmt"
	"math"

	"github.com/born-ml/gradflow/internal/autodiff"
	"github.com/born-ml/gradflow/internal/tensor"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// Func builds an expression from its inputs.
type Func func(inputs []*autodiff.Value) (*autodiff.Value, error)

// Config controls the finite-difference check.
type Config struct {
	Epsilon   float64 // Step h of the centered difference.
	Tolerance float64 // Allowed absolute or relative deviation.
}

// DefaultConfig returns a step and tolerance suited to float64 arithmetic.
func DefaultConfig() Config {
	return Config{
		Epsilon:   1e-6,
		Tolerance: 1e-4,
	}
}

// Result reports the comparison for one input.
type Result struct {
	Input    int
	Analytic *tensor.Array
	Numeric  *tensor.Array
	MaxError float64 // Largest absolute deviation between both gradients.
	OK       bool
}

// String summarises the result on one line.
func (r Result) String() string {
	status := "ok"
	if !r.OK {
		status = "FAIL"
	}
	return fmt.Sprintf("input %d: %s (max abs error %.3g)", r.Input, status, r.MaxError)
}

// Passed reports whether every result is within tolerance.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.OK {
			return false
		}
	}
	return true
}

// Check evaluates fn at inputs, runs one backward pass and compares the gradient
// of every input with its finite-difference estimate. All inputs are treated as
// differentiable.
func Check(engine *autodiff.Engine, fn Func, inputs []*tensor.Array, cfg Config) ([]Result, error) {
	leaves := make([]*autodiff.Value, len(inputs))
	for i, in := range inputs {
		leaves[i] = engine.FromArray(in, true)
	}

	out, err := fn(leaves)
	if err != nil {
		return nil, errors.WithMessage(err, "gradcheck: forward")
	}
	if err := out.Backward(nil); err != nil {
		return nil, errors.WithMessage(err, "gradcheck: backward")
	}

	results := make([]Result, len(inputs))
	for i := range inputs {
		analytic, err := leaves[i].Grad()
		if err != nil {
			return nil, err
		}
		numeric, err := numericGradient(engine, fn, inputs, i, cfg.Epsilon)
		if err != nil {
			return nil, err
		}
		results[i] = compare(i, analytic, numeric, cfg.Tolerance)
	}
	return results, nil
}

// numericGradient estimates d(sum(fn))/d(inputs[which]) with centered differences.
func numericGradient(engine *autodiff.Engine, fn Func, inputs []*tensor.Array, which int, h float64) (*tensor.Array, error) {
	target := inputs[which]
	data := target.Data()
	grad := make([]float64, len(data))

	eval := func() (float64, error) {
		perturbed, err := tensor.New(target.Shape(), data)
		if err != nil {
			return 0, err
		}
		leaves := make([]*autodiff.Value, len(inputs))
		for i, in := range inputs {
			if i == which {
				in = perturbed
			}
			leaves[i] = engine.FromArray(in, false)
		}
		out, err := fn(leaves)
		if err != nil {
			return 0, errors.WithMessage(err, "gradcheck: perturbed forward")
		}
		return floats.Sum(out.Data().Raw()), nil
	}

	for j := range data {
		original := data[j]

		data[j] = original + h
		plus, err := eval()
		if err != nil {
			return nil, err
		}

		data[j] = original - h
		minus, err := eval()
		if err != nil {
			return nil, err
		}

		data[j] = original
		grad[j] = (plus - minus) / (2 * h)
	}
	return tensor.Wrap(target.Shape(), grad), nil
}

func compare(input int, analytic, numeric *tensor.Array, tol float64) Result {
	r := Result{Input: input, Analytic: analytic, Numeric: numeric, OK: true}
	a, n := analytic.Raw(), numeric.Raw()
	for j := range a {
		r.MaxError = math.Max(r.MaxError, math.Abs(a[j]-n[j]))
		if !scalar.EqualWithinAbsOrRel(a[j], n[j], tol, tol) {
			r.OK = false
		}
	}
	return r
}
