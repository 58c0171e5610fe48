package dag

// Build converts an ordered edge list into a Topology. Every identifier that
// appears as a source or target receives exactly one in-degree entry, with
// sources that are never targeted recorded explicitly at zero.
//
// Any edge list is valid input, including an empty one, self-loops and
// repeated edges.
func Build(edges []Edge) *Topology {
	t := &Topology{
		adjacency: make(map[string][]string),
		inDegree:  make(map[string]int),
	}

	for _, e := range edges {
		t.adjacency[e.Source] = append(t.adjacency[e.Source], e.Target)

		// Target first, then source: this fixes the table's iteration order.
		t.touch(e.Target)
		t.inDegree[e.Target]++
		t.touch(e.Source)
	}

	return t
}

// touch creates a zero in-degree entry for id if none exists yet.
func (t *Topology) touch(id string) {
	if _, ok := t.inDegree[id]; ok {
		return
	}
	t.inDegree[id] = 0
	t.order = append(t.order, id)
}
