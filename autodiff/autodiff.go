// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// Expressions are built from Values and evaluated eagerly. Calling Backward on
// a result propagates gradients to every Value it depends on that was created
// with requiresGrad; gradients accumulate until ZeroGrad.
//
// Example:
//
//	import (
//	    "github.com/born-ml/gradflow/autodiff"
//	    "github.com/born-ml/gradflow/backend/cpu"
//	)
//
//	func main() {
//	    engine := autodiff.New(cpu.New())
//
//	    a, _ := engine.NewTensor(2.0, true)
//	    b, _ := engine.NewTensor(3.0, true)
//	    ab, _ := a.Mul(b)
//	    y, _ := ab.Add(a) // y = a*b + a = 8
//
//	    _ = y.Backward(nil)
//	    ga, _ := a.Grad() // 4
//	    gb, _ := b.Grad() // 2
//	}
package autodiff

import (
	"github.com/born-ml/gradflow/internal/autodiff"
	"github.com/born-ml/gradflow/internal/autodiff/ops"
	"github.com/born-ml/gradflow/tensor"
)

// Engine builds expression graphs on a numeric backend.
type Engine = autodiff.Engine

// Value is a node of the expression graph.
type Value = autodiff.Value

// Kind identifies the operation that produced a Value.
type Kind = ops.Kind

// Operation kinds reported by Value.Kind.
const (
	KindLeaf = ops.Leaf
	KindAdd  = ops.Add
	KindNeg  = ops.Neg
	KindMul  = ops.Mul
	KindPow  = ops.Pow
	KindDot  = ops.Dot
	KindSum  = ops.Sum
)

// Option configures an Engine.
type Option = autodiff.Option

// Errors returned by graph construction and backward.
var (
	// ErrUninitializedGradient reports a gradient request on a value that does
	// not require gradients.
	ErrUninitializedGradient = autodiff.ErrUninitializedGradient

	// ErrShapeMismatch reports incompatible operand shapes.
	ErrShapeMismatch = tensor.ErrShapeMismatch

	// ErrDomain reports a mathematically invalid operation.
	ErrDomain = tensor.ErrDomain
)

// New creates an engine computing with the given backend.
//
// Example:
//
//	engine := autodiff.New(cpu.New())
func New(backend tensor.Backend, opts ...Option) *Engine {
	return autodiff.New(backend, opts...)
}

// WithIEEESemantics lets NaN and ±Inf propagate instead of returning ErrDomain.
func WithIEEESemantics() Option {
	return autodiff.WithIEEESemantics()
}

// WithName sets the engine name used in log messages.
func WithName(name string) Option {
	return autodiff.WithName(name)
}
