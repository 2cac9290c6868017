// Package autodiff implements reverse-mode automatic differentiation over an
// eagerly evaluated expression graph.
//
// Architecture:
//   - Engine: holds the injected numeric backend (CPU, ...) and graph options
//   - Value: a graph node, either a leaf created by the caller or the result of an operation
//   - ops.Operation: each op (Add, Neg, Mul, Pow, Dot, Sum) computes its forward
//     value on construction and implements its backward rule
//   - Backward: one DFS builds a topological order, then gradients flow in reverse
//     order so each node forwards only the complete sum of its incoming gradients
//
// Usage:
//
//	engine := autodiff.New(cpu.New())
//
//	a, _ := engine.NewTensor([]float64{2}, true)
//	b, _ := engine.NewTensor([]float64{3}, true)
//	ab, _ := a.Mul(b)
//	y, _ := ab.Add(a) // y = a*b + a
//
//	_ = y.Backward(nil)  // seed with ones
//	grad, _ := a.Grad()  // dy/da = b + 1 = 4
package autodiff

import (
	"github.com/born-ml/gradflow/internal/tensor"
	"github.com/pkg/errors"
)

// ErrUninitializedGradient is returned when a gradient is requested from, or
// backward is started at, a value that does not require gradients.
var ErrUninitializedGradient = errors.New("value does not require gradients")

// Engine builds expression graphs on top of a numeric backend.
// An Engine is immutable after New and can be shared between goroutines.
type Engine struct {
	backend tensor.Backend
	name    string
	ieee    bool // let NaN/Inf propagate instead of failing with tensor.ErrDomain
}

// Option configures an Engine.
type Option func(*Engine)

// WithIEEESemantics disables domain checks: invalid powers and logarithms produce
// NaN or ±Inf under standard floating-point rules instead of tensor.ErrDomain.
func WithIEEESemantics() Option {
	return func(e *Engine) {
		e.ieee = true
	}
}

// WithName sets the name reported by Engine.Name and used in log messages.
func WithName(name string) Option {
	return func(e *Engine) {
		e.name = name
	}
}

// New creates an Engine computing with the given backend.
func New(backend tensor.Backend, opts ...Option) *Engine {
	e := &Engine{
		backend: backend,
		name:    "Autodiff(" + backend.Name() + ")",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Backend returns the wrapped backend for direct access.
func (e *Engine) Backend() tensor.Backend {
	return e.backend
}

// Name returns the engine name.
func (e *Engine) Name() string {
	return e.name
}

// StrictDomain reports whether numeric domain errors fail fast.
func (e *Engine) StrictDomain() bool {
	return !e.ieee
}

// NewTensor creates a leaf from an array-like value (see tensor.FromValue),
// cast to float64. A differentiable leaf starts with a zero gradient.
func (e *Engine) NewTensor(value any, requiresGrad bool) (*Value, error) {
	data, err := tensor.FromValue(value)
	if err != nil {
		return nil, errors.WithMessage(err, "new tensor")
	}
	return e.FromArray(data, requiresGrad), nil
}

// Constant creates a leaf that never receives gradients.
func (e *Engine) Constant(value any) (*Value, error) {
	return e.NewTensor(value, false)
}

// FromArray creates a leaf holding data.
func (e *Engine) FromArray(data *tensor.Array, requiresGrad bool) *Value {
	return newValue(e, data, requiresGrad, nil, nil)
}
