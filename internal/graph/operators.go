package graph

import (
	"github.com/gomlx/exceptions"

	"github.com/born-ml/micrograd/internal/graph/ops"
)

// Add returns a new node computing v + other.
func (v Value) Add(other Value) Value {
	return v.owner("Value.Add").Apply(ops.OpAdd, v, other)
}

// Sub returns a new node computing v - other.
func (v Value) Sub(other Value) Value {
	return v.owner("Value.Sub").Apply(ops.OpSub, v, other)
}

// Mul returns a new node computing v * other.
func (v Value) Mul(other Value) Value {
	return v.owner("Value.Mul").Apply(ops.OpMul, v, other)
}

// Tanh returns a new node computing tanh(v).
func (v Value) Tanh() Value {
	return v.owner("Value.Tanh").Apply(ops.OpTanh, v)
}

// Exp returns a new node computing e^v.
func (v Value) Exp() Value {
	return v.owner("Value.Exp").Apply(ops.OpExp, v)
}

// ReLU returns a new node computing max(0, v).
func (v Value) ReLU() Value {
	return v.owner("Value.ReLU").Apply(ops.OpReLU, v)
}

// Sum adds all values with a left-leaning chain of OpAdd nodes.
// It panics if values is empty.
func (g *Graph) Sum(values ...Value) Value {
	if len(values) == 0 {
		exceptions.Panicf("Graph.Sum: no values given")
	}
	total := values[0]
	g.checkOwned(total, "Graph.Sum")
	for _, v := range values[1:] {
		total = g.Apply(ops.OpAdd, total, v)
	}
	return total
}

func (v Value) owner(caller string) *Graph {
	if v.graph == nil {
		exceptions.Panicf("%s: Value is not attached to any Graph (zero Value?)", caller)
	}
	return v.graph
}
