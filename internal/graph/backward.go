package graph

import (
	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"
)

// TopoOrder returns the ids of every node reachable from root, operands before
// the nodes consuming them. Each node appears exactly once and root is last.
func (g *Graph) TopoOrder(root Value) []NodeID {
	g.checkOwned(root, "Graph.TopoOrder")
	g.node(root.id)

	// Operands always have smaller ids than their consumers, so a single scan
	// from root down to 0 marks everything reachable.
	reachable := make([]bool, root.id+1)
	reachable[root.id] = true
	count := 0
	for id := root.id; id >= 0; id-- {
		if !reachable[id] {
			continue
		}
		count++
		for _, operand := range g.nodes[id].operands {
			reachable[operand] = true
		}
	}

	order := make([]NodeID, 0, count)
	for id, ok := range reachable {
		if ok {
			order = append(order, NodeID(id))
		}
	}
	return order
}

// Backward propagates root's gradient to every node reachable from it.
//
// The caller seeds root's gradient first, canonically with 1.0 (see
// Value.Backward). The gradients of all other reachable nodes are reset to 0 and
// then accumulated in reverse topological order, so a node used by several
// consumers receives the sum over all of them, and calling Backward again with
// the same seed yields the same gradients.
//
// It panics if a node's operation is inconsistent with its operand count.
func (g *Graph) Backward(root Value) {
	order := g.TopoOrder(root)
	for _, id := range order[:len(order)-1] {
		g.nodes[id].grad = 0
	}

	for i := len(order) - 1; i >= 0; i-- {
		g.propagate(order[i])
	}
	klog.V(2).Infof("graph: backward from node #%d (%q) visited %d nodes", root.id, g.nodes[root.id].label, len(order))
}

// propagate adds node id's contribution to its operands' gradients.
func (g *Graph) propagate(id NodeID) {
	rule := g.ruleFor(id, "Graph.Backward")
	if rule == nil {
		return // Leaf: nothing to propagate.
	}
	n := &g.nodes[id]
	grads := rule.Backward(n.data, n.grad, g.operandValues(n))
	if len(grads) != len(n.operands) {
		exceptions.Panicf("Graph.Backward: operation %q of node #%d (%q) returned %d gradients for %d operands",
			n.op, id, n.label, len(grads), len(n.operands))
	}
	for i, operand := range n.operands {
		g.nodes[operand].grad += grads[i]
	}
	if klog.V(3).Enabled() {
		klog.Infof("graph: #%d %q (%s) grad=%g -> operands %v += %v", id, n.label, n.op, n.grad, n.operands, grads)
	}
}

// Backward seeds v's gradient with 1.0 and propagates it through v's graph.
func (v Value) Backward() {
	v.SetGrad(1)
	v.graph.Backward(v)
}

// ZeroGrad resets the gradient of root and every node reachable from it.
func (g *Graph) ZeroGrad(root Value) {
	for _, id := range g.TopoOrder(root) {
		g.nodes[id].grad = 0
	}
}
