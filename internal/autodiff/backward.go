package autodiff

import (
	"github.com/born-ml/gradflow/internal/tensor"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Backward propagates seed from v to every differentiable value v depends on and
// adds the result to their gradient accumulators.
//
// A nil seed means ones with v's shape (the gradient of sum(v)). Otherwise the seed
// must have exactly v's shape.
//
// Algorithm:
//  1. One DFS from v records the differentiable nodes in topological order
//  2. Walk that order in reverse, starting from the seed at v
//  3. Each operation splits its complete incoming gradient between its operands
//  4. Contributions reaching the same node along different paths are summed
//  5. Once the walk succeeded, every visited node's accumulator receives its total
//
// Backward is atomic: on error no accumulator has been modified. Repeated calls
// accumulate; use ZeroGrad to start over.
func (v *Value) Backward(seed *tensor.Array) error {
	if !v.requiresGrad {
		return errors.Wrapf(ErrUninitializedGradient, "backward from %s", v)
	}
	if seed == nil {
		seed = tensor.Ones(v.data.Shape())
	} else if !seed.Shape().Equal(v.data.Shape()) {
		return errors.Wrapf(tensor.ErrShapeMismatch, "backward: seed shape %v, value shape %v", seed.Shape(), v.data.Shape())
	}

	backend := v.engine.backend
	order := v.topoOrder()
	klog.V(1).Infof("%s: backward from %s through %d nodes", v.engine.name, v, len(order))

	pending := make(map[*Value]*tensor.Array, len(order))
	pending[v] = seed

	// Consumers come after their operands in order: walking it backwards every node
	// has received all of its contributions before it is expanded.
	for i := len(order) - 1; i >= 0; i-- {
		node := order[i]
		grad, ok := pending[node]
		if !ok || node.op == nil {
			continue
		}

		needs := make([]bool, len(node.operands))
		for j, operand := range node.operands {
			needs[j] = operand.requiresGrad
		}

		klog.V(2).Infof("backward: %s", node)
		operandGrads, err := node.op.Backward(grad, needs, backend)
		if err != nil {
			return errors.WithMessagef(err, "backward through %s", node)
		}

		for j, operand := range node.operands {
			if !needs[j] || operandGrads[j] == nil {
				continue
			}
			if existing, ok := pending[operand]; ok {
				sum, err := backend.Add(existing, operandGrads[j])
				if err != nil {
					return errors.WithMessagef(err, "backward: accumulating into %s", operand)
				}
				pending[operand] = sum
			} else {
				pending[operand] = operandGrads[j]
			}
		}
	}

	for node, grad := range pending {
		if !grad.Shape().Equal(node.data.Shape()) {
			return errors.Wrapf(tensor.ErrShapeMismatch, "backward: gradient of shape %v for %s", grad.Shape(), node)
		}
	}
	for _, node := range order {
		if grad, ok := pending[node]; ok {
			if err := node.accumulate(grad, backend); err != nil {
				return err
			}
		}
	}
	return nil
}

// topoOrder returns v and the differentiable values it depends on, each operand
// listed before the values computed from it.
func (v *Value) topoOrder() []*Value {
	var order []*Value
	if !v.requiresGrad {
		return order
	}

	visited := make(map[*Value]bool)
	var visit func(*Value)
	visit = func(node *Value) {
		if visited[node] {
			return
		}
		visited[node] = true
		for _, operand := range node.operands {
			if operand.requiresGrad {
				visit(operand)
			}
		}
		order = append(order, node)
	}
	visit(v)
	return order
}
