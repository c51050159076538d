package graph

import (
	"k8s.io/klog/v2"
)

// updatable reports whether gradient descent may change the node: only
// non-constant leaves are parameters, intermediate nodes are recomputed.
func (n *node) updatable() bool {
	return len(n.operands) == 0 && !n.frozen
}

// ApplyGradient performs one gradient-descent step on every parameter reachable
// from root: value -= gradient * learningRate.
//
// Constants and intermediate nodes keep their values; call Forward to
// recompute the intermediate nodes from the updated parameters.
func (g *Graph) ApplyGradient(root Value, learningRate float64) {
	updated := 0
	for _, id := range g.TopoOrder(root) {
		n := &g.nodes[id]
		if !n.updatable() {
			continue
		}
		n.data -= n.grad * learningRate
		updated++
	}
	klog.V(2).Infof("graph: applied gradient to %d parameters (learning rate %g)", updated, learningRate)
}

// Parameters returns the non-constant leaves reachable from root, in topological order.
func (g *Graph) Parameters(root Value) []Value {
	var params []Value
	for _, id := range g.TopoOrder(root) {
		if g.nodes[id].updatable() {
			params = append(params, Value{graph: g, id: id})
		}
	}
	return params
}

// Forward recomputes the value of every composite node reachable from root,
// in topological order, from the current values of its operands.
func (g *Graph) Forward(root Value) {
	for _, id := range g.TopoOrder(root) {
		rule := g.ruleFor(id, "Graph.Forward")
		if rule == nil {
			continue
		}
		n := &g.nodes[id]
		n.data = rule.Forward(g.operandValues(n))
	}
}
