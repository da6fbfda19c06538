package graphops

import (
	"time"

	"github.com/custodia-labs/kgraph/internal/core/domain"
)

// Merge combines fragments in order. A node or edge whose id was already
// taken by an earlier fragment is skipped, so the first occurrence wins.
func Merge(fragments ...domain.KnowledgeGraph) domain.KnowledgeGraph {
	return MergeAt(time.Now(), fragments...)
}

// MergeAt is Merge with an explicit metadata timestamp.
func MergeAt(now time.Time, fragments ...domain.KnowledgeGraph) domain.KnowledgeGraph {
	var out domain.KnowledgeGraph
	seenNodes := make(map[string]struct{})
	seenEdges := make(map[string]struct{})

	for f := range fragments {
		for _, n := range fragments[f].Nodes {
			if _, ok := seenNodes[n.ID]; ok {
				continue
			}
			seenNodes[n.ID] = struct{}{}
			out.Nodes = append(out.Nodes, n)
		}
		for _, e := range fragments[f].Edges {
			if _, ok := seenEdges[e.ID]; ok {
				continue
			}
			seenEdges[e.ID] = struct{}{}
			out.Edges = append(out.Edges, e)
		}
	}

	if out.Nodes == nil {
		out.Nodes = []domain.GraphNode{}
	}
	if out.Edges == nil {
		out.Edges = []domain.GraphEdge{}
	}
	out.Metadata.Source = domain.ProvenanceMerged
	out.RefreshMetadata(now)
	return out
}
