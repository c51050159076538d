// Package graph implements reverse-mode automatic differentiation over scalar values.
//
// A Graph is an arena of nodes addressed by stable integer NodeIDs. Values are
// small handles into the arena, so a node may be the operand of any number of
// downstream expressions:
//
//	g := graph.NewGraph()
//	a := g.New(2.0).WithLabel("a")
//	b := g.New(-3.0).WithLabel("b")
//	out := a.Mul(b).Add(a).Tanh().WithLabel("out")
//
//	out.Backward()            // seeds out's gradient with 1.0
//	fmt.Println(a.Grad())     // d(out)/da, summed over both uses of a
//	g.ApplyGradient(out, 0.1) // one gradient-descent step on the leaves
//
// Nodes are appended in creation order and every operand is created before the
// node that consumes it, so increasing NodeID is always a topological order.
//
// Graph is not safe for concurrent use.
package graph

import (
	"github.com/gomlx/exceptions"

	"github.com/born-ml/micrograd/internal/graph/ops"
)

// NodeID is the stable index of a node in its Graph.
type NodeID int

// node is one vertex of the computation graph.
type node struct {
	data     float64
	grad     float64
	op       ops.OpType
	operands []NodeID
	label    string
	frozen   bool // leaf excluded from gradient updates
}

// Graph owns every node created through it.
type Graph struct {
	nodes []node
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make([]node, 0, 32), // Pre-allocate for common case
	}
}

// NumNodes returns the number of nodes created so far.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// New creates a leaf holding data, with gradient 0 and an empty label.
// The leaf is a parameter: ApplyGradient and optimizers update it.
func (g *Graph) New(data float64) Value {
	return g.addNode(node{data: data})
}

// Constant creates a leaf that gradient updates never modify.
// Its gradient is still computed by Backward.
func (g *Graph) Constant(data float64) Value {
	return g.addNode(node{data: data, frozen: true})
}

// Node returns the handle of the node with the given id.
func (g *Graph) Node(id NodeID) Value {
	g.node(id)
	return Value{graph: g, id: id}
}

// Apply creates a node computing op over the given operands.
//
// It panics if op has no registered rule, if the number of operands doesn't
// match the operation's arity, or if an operand belongs to another Graph.
func (g *Graph) Apply(op ops.OpType, operands ...Value) Value {
	rule, found := ops.Lookup(op)
	if !found {
		exceptions.Panicf("Graph.Apply: no rule registered for operation %s", op)
	}
	if len(operands) != op.Arity() {
		exceptions.Panicf("Graph.Apply(%s): operation takes %d operands, %d given", op, op.Arity(), len(operands))
	}

	ids := make([]NodeID, len(operands))
	in := make([]float64, len(operands))
	for i, operand := range operands {
		g.checkOwned(operand, "Graph.Apply")
		ids[i] = operand.id
		in[i] = g.nodes[operand.id].data
	}
	return g.addNode(node{
		data:     rule.Forward(in),
		op:       op,
		operands: ids,
	})
}

func (g *Graph) addNode(n node) Value {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, n)
	return Value{graph: g, id: id}
}

func (g *Graph) node(id NodeID) *node {
	if id < 0 || int(id) >= len(g.nodes) {
		exceptions.Panicf("graph: node id %d out of range, graph has %d nodes", id, len(g.nodes))
	}
	return &g.nodes[id]
}

// checkOwned panics if v is not a handle into g.
func (g *Graph) checkOwned(v Value, caller string) {
	if v.graph == nil {
		exceptions.Panicf("%s: Value is not attached to any Graph (zero Value?)", caller)
	}
	if v.graph != g {
		exceptions.Panicf("%s: node #%d belongs to a different Graph", caller, v.id)
	}
}

// operandValues returns the current values of n's operands.
func (g *Graph) operandValues(n *node) []float64 {
	in := make([]float64, len(n.operands))
	for i, id := range n.operands {
		in[i] = g.nodes[id].data
	}
	return in
}

// ruleFor returns the rule of composite node id, panicking if the node's
// operation is inconsistent with its operands.
func (g *Graph) ruleFor(id NodeID, caller string) ops.Rule {
	n := &g.nodes[id]
	if n.op == ops.OpNone {
		if len(n.operands) != 0 {
			exceptions.Panicf("%s: leaf node #%d (%q) has %d operands", caller, id, n.label, len(n.operands))
		}
		return nil
	}
	rule, found := ops.Lookup(n.op)
	if !found {
		exceptions.Panicf("%s: node #%d (%q) has operation %s with no registered rule", caller, id, n.label, n.op)
	}
	if len(n.operands) != n.op.Arity() {
		exceptions.Panicf("%s: node #%d (%q) has %d operands, operation %q requires %d",
			caller, id, n.label, len(n.operands), n.op, n.op.Arity())
	}
	return rule
}
