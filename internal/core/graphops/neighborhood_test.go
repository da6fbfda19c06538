package graphops

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/kgraph/internal/core/domain"
)

func TestNeighborhood(t *testing.T) {
	g := fragment([]string{"A", "B", "C", "D"}, [][3]string{
		{"ab", "A", "B"},
		{"bc", "B", "C"},
	})

	tests := []struct {
		name      string
		node      string
		wantNodes []string
		wantEdges []string
	}{
		{"middle node", "B", []string{"A", "B", "C"}, []string{"ab", "bc"}},
		{"source end", "A", []string{"A", "B"}, []string{"ab"}},
		{"target end", "C", []string{"B", "C"}, []string{"bc"}},
		{"isolated", "D", []string{"D"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Neighborhood(g, tt.node)
			assert.Equal(t, tt.wantNodes, h.NodeIDs())
			assert.Equal(t, tt.wantEdges, h.EdgeIDs())
			assert.True(t, h.HasNode(tt.node))
		})
	}
}

func TestNeighborhood_UnknownNode(t *testing.T) {
	g := fragment([]string{"A"}, nil)

	h := Neighborhood(g, "nope")

	assert.True(t, h.Empty())
	assert.False(t, h.HasNode("A"))
}

func TestTypes(t *testing.T) {
	g := filterFixture()

	nodes, edges := Types(g)

	assert.Equal(t, []TypeCount{
		{Type: "PERSON", Count: 2},
		{Type: domain.NodeTypeInferred, Count: 1},
		{Type: "LOC", Count: 1},
		{Type: "ORG", Count: 1},
	}, nodes)
	assert.Equal(t, TypeCount{Type: "KNOWS", Count: 2}, edges[0])
	assert.Equal(t, TypeCount{Type: "WORKS_AT", Count: 2}, edges[1])
}
