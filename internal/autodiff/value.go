package autodiff

import (
	"fmt"
	"sync"

	"github.com/born-ml/gradflow/internal/autodiff/ops"
	"github.com/born-ml/gradflow/internal/tensor"
	"github.com/pkg/errors"
)

// Value is a node of the expression graph: a leaf created by the caller or the
// result of an operation on other values.
//
// The forward data is computed when the value is created and never changes.
// A value requires gradients when it is a leaf created with requiresGrad, or an
// operation with at least one operand that requires gradients. Only such values
// carry a gradient accumulator.
type Value struct {
	engine       *Engine
	data         *tensor.Array
	requiresGrad bool

	op       ops.Operation // nil for leaves
	operands []*Value

	mu   sync.Mutex // guards grad
	grad *tensor.Array
}

func newValue(e *Engine, data *tensor.Array, requiresGrad bool, op ops.Operation, operands []*Value) *Value {
	v := &Value{
		engine:       e,
		data:         data,
		requiresGrad: requiresGrad,
		op:           op,
		operands:     operands,
	}
	if requiresGrad {
		v.grad = tensor.Zeros(data.Shape())
	}
	return v
}

// Data returns the forward value.
func (v *Value) Data() *tensor.Array {
	return v.data
}

// Shape returns the shape of the forward value.
func (v *Value) Shape() tensor.Shape {
	return v.data.Shape()
}

// RequiresGrad reports whether the value accumulates gradients.
func (v *Value) RequiresGrad() bool {
	return v.requiresGrad
}

// Kind returns the operation that produced the value, or ops.Leaf.
func (v *Value) Kind() ops.Kind {
	if v.op == nil {
		return ops.Leaf
	}
	return v.op.Kind()
}

// Operands returns the values this value was computed from (nil for leaves).
func (v *Value) Operands() []*Value {
	return v.operands
}

// Engine returns the engine the value was created with.
func (v *Value) Engine() *Engine {
	return v.engine
}

// Grad returns a snapshot of the accumulated gradient.
// It fails with ErrUninitializedGradient if the value does not require gradients.
func (v *Value) Grad() (*tensor.Array, error) {
	if !v.requiresGrad {
		return nil, errors.Wrapf(ErrUninitializedGradient, "grad of %s", v)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.grad, nil
}

// ZeroGrad resets the accumulators of v and every differentiable value it depends on.
// Accumulators are never reset automatically: call ZeroGrad between independent
// backward passes.
func (v *Value) ZeroGrad() {
	for _, node := range v.topoOrder() {
		node.mu.Lock()
		node.grad = tensor.Zeros(node.data.Shape())
		node.mu.Unlock()
	}
}

// accumulate adds g into the gradient accumulator.
func (v *Value) accumulate(g *tensor.Array, backend tensor.Backend) error {
	if !g.Shape().Equal(v.data.Shape()) {
		return errors.Wrapf(tensor.ErrShapeMismatch, "gradient of shape %v for %s", g.Shape(), v)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	sum, err := backend.Add(v.grad, g)
	if err != nil {
		return err
	}
	v.grad = sum
	return nil
}

// String describes the node, e.g. "Mul(2, 3) requires_grad=true".
func (v *Value) String() string {
	return fmt.Sprintf("%s%v requires_grad=%t", v.Kind(), v.data.Shape(), v.requiresGrad)
}
