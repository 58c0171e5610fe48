package pipeline

import "github.com/specialistvlad/dagcheck/internal/dag"

// Node is an opaque, open-ended record. Its fields are never inspected; nodes
// are only counted.
type Node map[string]any

// Edge is a directed connection between two node identifiers.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is a validated pipeline submission.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Report is the result of parsing a pipeline.
type Report struct {
	Nodes int  `json:"nodes"`
	Edges int  `json:"edges"`
	IsDAG bool `json:"is_dag"`
}

// DAGEdges converts the graph's edges into the form the checker works on.
func (g *Graph) DAGEdges() []dag.Edge {
	out := make([]dag.Edge, len(g.Edges))
	for i, e := range g.Edges {
		out[i] = dag.Edge{Source: e.Source, Target: e.Target}
	}
	return out
}
