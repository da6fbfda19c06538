package graphops

import (
	"sort"

	"github.com/custodia-labs/kgraph/internal/core/domain"
)

// TypeCount is a type tag and the number of elements carrying it.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// NodeTypes lists node type tags by descending count, then name.
func NodeTypes(g domain.KnowledgeGraph) []TypeCount {
	counts := make(map[string]int)
	for i := range g.Nodes {
		counts[g.Nodes[i].Type]++
	}
	return sortCounts(counts)
}

// EdgeTypes lists edge type tags by descending count, then name.
func EdgeTypes(g domain.KnowledgeGraph) []TypeCount {
	counts := make(map[string]int)
	for i := range g.Edges {
		counts[g.Edges[i].Type]++
	}
	return sortCounts(counts)
}

func sortCounts(counts map[string]int) []TypeCount {
	out := make([]TypeCount, 0, len(counts))
	for t, c := range counts {
		out = append(out, TypeCount{Type: t, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// Types returns the node and edge type tags of g with their counts.
func Types(g domain.KnowledgeGraph) (nodes, edges []TypeCount) {
	return NodeTypes(g), EdgeTypes(g)
}
