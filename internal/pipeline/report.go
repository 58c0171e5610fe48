package pipeline

import "github.com/specialistvlad/dagcheck/internal/dag"

// Assemble packages the submitted sizes and the verdict into a Report. The
// counts are passed through as given.
func Assemble(nodeCount, edgeCount int, isDAG bool) Report {
	return Report{
		Nodes: nodeCount,
		Edges: edgeCount,
		IsDAG: isDAG,
	}
}

// Parse evaluates g and returns its report. The node count reflects the
// submitted node list, including nodes no edge refers to.
func Parse(g *Graph) Report {
	return Assemble(len(g.Nodes), len(g.Edges), dag.IsDAG(g.DAGEdges()))
}
