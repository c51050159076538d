// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation over scalar values.
//
// Arithmetic on Values builds a computation graph; Backward walks it once from
// an output and leaves on every upstream node the gradient of the output with
// respect to that node.
//
// Example:
//
//	import "github.com/born-ml/micrograd/autodiff"
//
//	func main() {
//	    g := autodiff.NewGraph()
//	    a := g.New(2.0).WithLabel("a")
//	    b := g.New(-3.0).WithLabel("b")
//	    out := a.Mul(b).Tanh().WithLabel("out")
//
//	    out.Backward()            // d(out)/d(out) = 1
//	    fmt.Println(a.Grad())     // d(out)/da
//	    g.ApplyGradient(out, 0.1) // one gradient-descent step on a and b
//	}
package autodiff

import (
	"github.com/born-ml/micrograd/internal/graph"
	"github.com/born-ml/micrograd/internal/graph/ops"
)

// Graph owns the nodes of a computation graph.
type Graph = graph.Graph

// Value is a handle to one node of a Graph.
type Value = graph.Value

// NodeID is the stable index of a node in its Graph.
type NodeID = graph.NodeID

// NewGraph creates an empty computation graph.
func NewGraph() *Graph {
	return graph.NewGraph()
}

// Operations

// OpType identifies the operation that produced a node.
type OpType = ops.OpType

// Rule implements the forward value and local derivative of an operation.
type Rule = ops.Rule

// Built-in operations.
const (
	OpNone = ops.OpNone
	OpAdd  = ops.OpAdd
	OpMul  = ops.OpMul
	OpTanh = ops.OpTanh
	OpSub  = ops.OpSub
	OpExp  = ops.OpExp
	OpReLU = ops.OpReLU
)

// RegisterOp adds a new operation usable with Graph.Apply.
//
// Example:
//
//	const OpSquare autodiff.OpType = 100
//	autodiff.RegisterOp(OpSquare, "square", 1, squareRule{})
//	y := g.Apply(OpSquare, x)
func RegisterOp(op OpType, tag string, arity int, rule Rule, aliases ...string) {
	ops.Register(op, tag, arity, rule, aliases...)
}

// Export

// Snapshot is a read-only node and edge list of a subgraph.
type Snapshot = graph.Snapshot

// NodeInfo describes one node of a Snapshot.
type NodeInfo = graph.NodeInfo

// Edge links an operand to the node consuming it.
type Edge = graph.Edge
