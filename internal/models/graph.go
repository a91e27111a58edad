package models

import "fmt"

// Graph is the static topology: nodes indexed by id plus undirected edges.
// It is built once and never mutated, so it is safe for concurrent reads.
type Graph struct {
	nodes     []Node
	edges     []Edge
	index     map[string]int
	edgeIndex map[EdgeKey]int
}

// NewGraph validates nodes and edges and builds the lookup indexes.
func NewGraph(nodes []Node, edges []Edge) (*Graph, error) {
	if len(nodes) < 2 {
		return nil, ErrTooFewNodes
	}

	if len(edges) < 1 {
		return nil, ErrTooFewEdges
	}

	g := &Graph{
		nodes:     make([]Node, len(nodes)),
		edges:     make([]Edge, len(edges)),
		index:     make(map[string]int, len(nodes)),
		edgeIndex: make(map[EdgeKey]int, len(edges)),
	}
	copy(g.nodes, nodes)
	copy(g.edges, edges)

	for i := range g.nodes {
		n := &g.nodes[i]
		if err := n.Validate(); err != nil {
			return nil, err
		}

		if _, dup := g.index[n.ID]; dup {
			return nil, fmt.Errorf("%w %q", ErrDuplicateNodeID, n.ID)
		}

		g.index[n.ID] = i
	}

	for i := range g.edges {
		e := &g.edges[i]
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("edge %s-%s: %w", e.Source, e.Target, err)
		}

		for _, id := range []string{e.Source, e.Target} {
			if !g.HasNode(id) {
				return nil, fmt.Errorf("edge %s-%s: %w", e.Source, e.Target, &LookupError{ID: id})
			}
		}

		key := e.Key()
		if _, dup := g.edgeIndex[key]; dup {
			return nil, fmt.Errorf("%w %s", ErrDuplicateEdge, key)
		}

		g.edgeIndex[key] = i
	}

	return g, nil
}

// Nodes returns a copy of the nodes in load order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)

	return out
}

// Edges returns a copy of the edges in load order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)

	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// HasNode reports whether id exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]

	return ok
}

// Node looks up a node by id.
func (g *Graph) Node(id string) (Node, error) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, &LookupError{ID: id}
	}

	return g.nodes[i], nil
}

// EdgeBetween returns the edge joining a and b regardless of stored direction.
func (g *Graph) EdgeBetween(a, b string) (Edge, bool) {
	i, ok := g.edgeIndex[NewEdgeKey(a, b)]
	if !ok {
		return Edge{}, false
	}

	return g.edges[i], true
}

// ValidatePath checks that every id in path exists and that every
// consecutive pair is joined by an edge.
func (g *Graph) ValidatePath(path []string) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}

	for i, id := range path {
		if !g.HasNode(id) {
			return &ReferenceError{Index: i, ID: id}
		}
	}

	for i := 0; i+1 < len(path); i++ {
		if _, ok := g.EdgeBetween(path[i], path[i+1]); !ok {
			return &ReferenceError{Index: i, ID: path[i], Next: path[i+1]}
		}
	}

	return nil
}
