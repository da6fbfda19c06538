package graphops

import (
	"sort"

	"github.com/custodia-labs/kgraph/internal/core/domain"
)

// Highlight is a set of node ids and edge ids.
type Highlight struct {
	Nodes map[string]struct{}
	Edges map[string]struct{}
}

// HasNode reports whether the node id is in the set.
func (h Highlight) HasNode(id string) bool {
	_, ok := h.Nodes[id]
	return ok
}

// HasEdge reports whether the edge id is in the set.
func (h Highlight) HasEdge(id string) bool {
	_, ok := h.Edges[id]
	return ok
}

// Empty reports whether nothing is highlighted.
func (h Highlight) Empty() bool {
	return len(h.Nodes) == 0 && len(h.Edges) == 0
}

// NodeIDs returns the node ids in sorted order.
func (h Highlight) NodeIDs() []string {
	ids := make([]string, 0, len(h.Nodes))
	for id := range h.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EdgeIDs returns the edge ids in sorted order.
func (h Highlight) EdgeIDs() []string {
	ids := make([]string, 0, len(h.Edges))
	for id := range h.Edges {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Neighborhood returns the 1-hop neighbourhood of nodeID: the node, every
// node joined to it by one edge in either direction, and those edges.
// An unknown id yields an empty highlight.
func Neighborhood(g domain.KnowledgeGraph, nodeID string) Highlight {
	h := Highlight{
		Nodes: make(map[string]struct{}),
		Edges: make(map[string]struct{}),
	}
	if _, ok := g.Node(nodeID); !ok {
		return h
	}

	h.Nodes[nodeID] = struct{}{}
	for i := range g.Edges {
		e := &g.Edges[i]
		if !e.Touches(nodeID) {
			continue
		}
		h.Edges[e.ID] = struct{}{}
		h.Nodes[e.Source] = struct{}{}
		h.Nodes[e.Target] = struct{}{}
	}
	return h
}
