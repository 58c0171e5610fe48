package dag

// Resolve runs Kahn's algorithm over t and returns the nodes in the order they
// were released. The worklist is FIFO and seeded in in-degree table order, so
// the result is deterministic for a given edge list.
//
// Nodes that sit on a cycle, or downstream of one, never reach in-degree zero
// and are therefore missing from the result. The topology itself is not
// modified.
func Resolve(t *Topology) []string {
	remaining := make(map[string]int, len(t.inDegree))
	queue := make([]string, 0, len(t.order))
	for _, id := range t.order {
		d := t.inDegree[id]
		remaining[id] = d
		if d == 0 {
			queue = append(queue, id)
		}
	}

	resolved := make([]string, 0, len(t.order))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		resolved = append(resolved, current)

		for _, next := range t.adjacency[current] {
			remaining[next]--
			if remaining[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	return resolved
}

// IsAcyclic reports whether every node of t could be resolved.
func IsAcyclic(t *Topology) bool {
	return len(Resolve(t)) == t.Len()
}

// IsDAG builds a topology from edges and reports whether it is acyclic. An
// empty edge list is vacuously acyclic.
func IsDAG(edges []Edge) bool {
	return IsAcyclic(Build(edges))
}
