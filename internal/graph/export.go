package graph

// NodeInfo is a read-only copy of one node, as handed to renderers.
type NodeInfo struct {
	ID    NodeID
	Label string
	Data  float64
	Grad  float64
	Op    string // Operation tag, empty for leaves.
}

// Edge links an operand (From) to the node consuming it (To).
type Edge struct {
	From NodeID
	To   NodeID
}

// Snapshot is the node and edge list of everything reachable from Root.
// Nodes are in topological order; edges are grouped by consumer, in operand order.
type Snapshot struct {
	Root  NodeID
	Nodes []NodeInfo
	Edges []Edge
}

// Snapshot copies the subgraph reachable from root. The graph is not modified.
func (g *Graph) Snapshot(root Value) Snapshot {
	order := g.TopoOrder(root)
	snap := Snapshot{
		Root:  root.id,
		Nodes: make([]NodeInfo, 0, len(order)),
	}
	for _, id := range order {
		n := &g.nodes[id]
		snap.Nodes = append(snap.Nodes, NodeInfo{
			ID:    id,
			Label: n.label,
			Data:  n.data,
			Grad:  n.grad,
			Op:    n.op.String(),
		})
		for _, operand := range n.operands {
			snap.Edges = append(snap.Edges, Edge{From: operand, To: id})
		}
	}
	return snap
}

// Node returns the info of the node with the given id, if present.
func (s Snapshot) Node(id NodeID) (NodeInfo, bool) {
	for _, info := range s.Nodes {
		if info.ID == id {
			return info, true
		}
	}
	return NodeInfo{}, false
}
