package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssemble_PassesCountsThrough(t *testing.T) {
	assert.Equal(t, Report{Nodes: 7, Edges: 0, IsDAG: false}, Assemble(7, 0, false))
}

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		graph Graph
		want  Report
	}{
		{
			name:  "empty graph",
			graph: Graph{},
			want:  Report{Nodes: 0, Edges: 0, IsDAG: true},
		},
		{
			name: "single edge",
			graph: Graph{
				Nodes: []Node{{"id": "A"}, {"id": "B"}},
				Edges: []Edge{{Source: "A", Target: "B"}},
			},
			want: Report{Nodes: 2, Edges: 1, IsDAG: true},
		},
		{
			name: "duplicate edges change the count only",
			graph: Graph{
				Nodes: []Node{{"id": "A"}, {"id": "B"}},
				Edges: []Edge{{Source: "A", Target: "B"}, {Source: "A", Target: "B"}},
			},
			want: Report{Nodes: 2, Edges: 2, IsDAG: true},
		},
		{
			name: "self loop",
			graph: Graph{
				Nodes: []Node{{"id": "A"}},
				Edges: []Edge{{Source: "A", Target: "A"}},
			},
			want: Report{Nodes: 1, Edges: 1, IsDAG: false},
		},
		{
			name: "isolated nodes still count",
			graph: Graph{
				Nodes: []Node{{"id": "A"}, {"id": "B"}, {"id": "lonely"}, {}},
				Edges: []Edge{{Source: "A", Target: "B"}},
			},
			want: Report{Nodes: 4, Edges: 1, IsDAG: true},
		},
		{
			name: "node list disagrees with edges",
			graph: Graph{
				Edges: []Edge{{Source: "A", Target: "B"}, {Source: "B", Target: "C"}, {Source: "C", Target: "A"}},
			},
			want: Report{Nodes: 0, Edges: 3, IsDAG: false},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Parse(&tc.graph))
		})
	}
}
