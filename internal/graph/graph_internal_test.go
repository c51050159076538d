package graph

import (
	"testing"

	"github.com/gomlx/exceptions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/micrograd/internal/graph/ops"
)

// TestBackward_ArityMismatch tests that a malformed node aborts the backward pass.
func TestBackward_ArityMismatch(t *testing.T) {
	g := NewGraph()
	a := g.New(2)
	broken := g.addNode(node{data: 2, op: ops.OpMul, operands: []NodeID{a.id}})
	broken.SetGrad(1)

	err := exceptions.TryCatch[error](func() { g.Backward(broken) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has 1 operands, operation \"*\" requires 2")

	require.Panics(t, func() { g.Forward(broken) })
}

// TestBackward_LeafWithOperands tests that OpNone nodes must not carry operands.
func TestBackward_LeafWithOperands(t *testing.T) {
	g := NewGraph()
	a := g.New(2)
	broken := g.addNode(node{data: 2, operands: []NodeID{a.id}})
	broken.SetGrad(1)

	require.Panics(t, func() { g.Backward(broken) })
}

const opShortGrads = ops.OpType(2001)

// shortGradsRule returns one gradient for a binary operation.
type shortGradsRule struct{}

func (shortGradsRule) Forward(in []float64) float64 { return in[0] + in[1] }

func (shortGradsRule) Backward(_, outGrad float64, _ []float64) []float64 {
	return []float64{outGrad}
}

func init() {
	ops.Register(opShortGrads, "shortgrads", 2, shortGradsRule{})
}

// TestBackward_GradientCount tests that a rule returning the wrong number of
// gradients aborts the backward pass with a descriptive message.
func TestBackward_GradientCount(t *testing.T) {
	g := NewGraph()
	a := g.New(2)
	b := g.New(3)
	sum := g.Apply(opShortGrads, a, b)
	require.Equal(t, 5.0, sum.Data())

	err := exceptions.TryCatch[error](func() { sum.Backward() })
	require.Error(t, err)
	assert.Contains(t, err.Error(), `operation "shortgrads" of node #2`)
	assert.Contains(t, err.Error(), "returned 1 gradients for 2 operands")
}

// TestTopoOrder_Operands tests that every operand precedes its consumers.
func TestTopoOrder_Operands(t *testing.T) {
	g := NewGraph()
	x := g.New(1)
	y := g.New(2)
	z := x.Mul(y).Add(x).Tanh()

	order := g.TopoOrder(z)
	position := make(map[NodeID]int, len(order))
	for i, id := range order {
		position[id] = i
	}
	for _, id := range order {
		for _, operand := range g.nodes[id].operands {
			assert.Less(t, position[operand], position[id])
		}
	}
	assert.Equal(t, z.id, order[len(order)-1])
	assert.Len(t, order, 5)
}
