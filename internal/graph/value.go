package graph

import (
	"fmt"

	"github.com/gomlx/exceptions"

	"github.com/born-ml/micrograd/internal/graph/ops"
)

// Value is a handle to a node of a Graph.
//
// Values are cheap to copy; all copies refer to the same node. The zero Value
// is not attached to any graph and panics on use.
type Value struct {
	graph *Graph
	id    NodeID
}

func (v Value) n() *node {
	if v.graph == nil {
		exceptions.Panicf("graph: use of a Value not attached to any Graph (zero Value?)")
	}
	return v.graph.node(v.id)
}

// Graph returns the graph owning the node.
func (v Value) Graph() *Graph {
	return v.graph
}

// ID returns the node's index in its graph.
func (v Value) ID() NodeID {
	return v.id
}

// Data returns the forward-computed value.
func (v Value) Data() float64 {
	return v.n().data
}

// SetData overwrites the node value.
// Call Graph.Forward afterwards to refresh the nodes computed from it.
func (v Value) SetData(data float64) {
	v.n().data = data
}

// Grad returns the gradient written by the last backward pass.
func (v Value) Grad() float64 {
	return v.n().grad
}

// SetGrad sets the gradient, typically to seed an output with 1.0 before Graph.Backward.
func (v Value) SetGrad(grad float64) {
	v.n().grad = grad
}

// Label returns the display name of the node.
func (v Value) Label() string {
	return v.n().label
}

// WithLabel sets the display name and returns v for chaining.
func (v Value) WithLabel(label string) Value {
	v.n().label = label
	return v
}

// Op returns the operation that produced the node, OpNone for leaves.
func (v Value) Op() ops.OpType {
	return v.n().op
}

// Operands returns the nodes v was computed from, in operand order.
func (v Value) Operands() []Value {
	n := v.n()
	operands := make([]Value, len(n.operands))
	for i, id := range n.operands {
		operands[i] = Value{graph: v.graph, id: id}
	}
	return operands
}

// IsLeaf reports whether the node has no operands.
func (v Value) IsLeaf() bool {
	return len(v.n().operands) == 0
}

// Frozen reports whether the node is a constant leaf.
func (v Value) Frozen() bool {
	return v.n().frozen
}

// String implements fmt.Stringer.
func (v Value) String() string {
	if v.graph == nil {
		return "Value(<nil>)"
	}
	n := v.n()
	return fmt.Sprintf("Value(label=%s data=%g grad=%g)", n.label, n.data, n.grad)
}
