package graphops

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/custodia-labs/kgraph/internal/core/domain"
)

// Filter returns the sub-graph selected by opts.
//
// The steps run in a fixed order: nodes by search query, nodes by type,
// nodes by confidence, then edges whose endpoints both survived, edges
// by type and edges by confidence. Edges never dangle in the result.
func Filter(g domain.KnowledgeGraph, opts domain.FilterOptions) domain.KnowledgeGraph {
	nodes := g.Nodes

	if q := strings.ToLower(strings.TrimSpace(opts.SearchQuery)); q != "" {
		nodes = keep(nodes, func(n *domain.GraphNode) bool { return nodeMatches(n, q) })
	}
	if len(opts.NodeTypes) > 0 {
		nodes = keep(nodes, func(n *domain.GraphNode) bool { return slices.Contains(opts.NodeTypes, n.Type) })
	}
	if opts.MinConfidence > 0 {
		nodes = keep(nodes, func(n *domain.GraphNode) bool { return n.Weight >= opts.MinConfidence })
	}

	alive := make(map[string]struct{}, len(nodes))
	for i := range nodes {
		alive[nodes[i].ID] = struct{}{}
	}

	edges := keep(g.Edges, func(e *domain.GraphEdge) bool {
		_, src := alive[e.Source]
		_, dst := alive[e.Target]
		return src && dst
	})
	if len(opts.EdgeTypes) > 0 {
		edges = keep(edges, func(e *domain.GraphEdge) bool { return slices.Contains(opts.EdgeTypes, e.Type) })
	}
	if opts.MinConfidence > 0 {
		edges = keep(edges, func(e *domain.GraphEdge) bool { return e.Weight >= opts.MinConfidence })
	}

	out := domain.KnowledgeGraph{
		Nodes:    nodes,
		Edges:    edges,
		Metadata: g.Metadata,
	}
	out.Metadata.Source = domain.ProvenanceFiltered
	out.RefreshMetadata(time.Now())
	return out
}

// keep returns a new slice holding the elements for which pred is true.
func keep[T any](in []T, pred func(*T) bool) []T {
	out := make([]T, 0, len(in))
	for i := range in {
		if pred(&in[i]) {
			out = append(out, in[i])
		}
	}
	return out
}

func nodeMatches(n *domain.GraphNode, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(n.Label), lowerQuery) ||
		strings.Contains(strings.ToLower(n.Type), lowerQuery) {
		return true
	}
	if len(n.Properties) == 0 {
		return false
	}
	raw, err := json.Marshal(n.Properties)
	if err != nil {
		raw = []byte(fmt.Sprint(n.Properties))
	}
	return strings.Contains(strings.ToLower(string(raw)), lowerQuery)
}
