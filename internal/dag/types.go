package dag

// Edge is a directed connection from Source to Target. Identifiers are opaque
// tokens compared by exact string equality.
type Edge struct {
	Source string
	Target string
}

// Topology is the adjacency representation of an edge list.
type Topology struct {
	// adjacency maps a node to its direct successors in edge submission order.
	// Duplicate edges produce duplicate successors.
	adjacency map[string][]string
	// inDegree holds the number of incoming edges for every node that appears
	// as an endpoint of at least one edge.
	inDegree map[string]int
	// order records when each node entered the in-degree table (per edge,
	// target before source), giving the table a stable iteration order.
	order []string
}

// Successors returns the direct successors of id in edge submission order.
func (t *Topology) Successors(id string) []string {
	return t.adjacency[id]
}

// InDegree returns the number of edges pointing into id and whether id
// appears in the topology at all.
func (t *Topology) InDegree(id string) (int, bool) {
	d, ok := t.inDegree[id]
	return d, ok
}

// Nodes returns every node of the topology in in-degree table order.
func (t *Topology) Nodes() []string {
	nodes := make([]string, len(t.order))
	copy(nodes, t.order)
	return nodes
}

// Len returns the number of entries in the in-degree table.
func (t *Topology) Len() int {
	return len(t.order)
}

// EdgeCount returns the total number of adjacency entries, which always
// equals the number of edges the topology was built from.
func (t *Topology) EdgeCount() int {
	n := 0
	for _, succ := range t.adjacency {
		n += len(succ)
	}
	return n
}
