package domain

import "time"

// NodeTypeInferred tags placeholder nodes synthesised for relation
// endpoints that the extractor did not tag as entities.
const NodeTypeInferred = "INFERRED"

// InferredNodeWeight is the weight given to inferred nodes.
const InferredNodeWeight = 0.5

// DefaultWeight is used when the extractor reports no confidence.
const DefaultWeight = 1.0

// Provenance tags recorded in GraphMetadata.Source.
const (
	ProvenanceExtraction = "extraction"
	ProvenanceMerged     = "merged"
	ProvenanceFiltered   = "filtered"
)

// GraphNode is a vertex of a knowledge graph.
type GraphNode struct {
	ID         string         `json:"id"`
	Label      string         `json:"label"`
	Type       string         `json:"type"`
	Weight     float64        `json:"weight"`
	Properties map[string]any `json:"properties,omitempty"`

	// Layout state. X and Y are simulation-derived; FX and FY pin the
	// node while it is being dragged and are nil otherwise.
	X  float64  `json:"x,omitempty"`
	Y  float64  `json:"y,omitempty"`
	FX *float64 `json:"fx,omitempty"`
	FY *float64 `json:"fy,omitempty"`
}

// Pinned reports whether the node position is externally fixed.
func (n *GraphNode) Pinned() bool {
	return n.FX != nil && n.FY != nil
}

// Pin fixes the node at (x, y).
func (n *GraphNode) Pin(x, y float64) {
	n.FX = &x
	n.FY = &y
}

// Unpin releases a pinned node back to the simulation.
func (n *GraphNode) Unpin() {
	n.FX = nil
	n.FY = nil
}

// GraphEdge is a directed, typed link between two nodes, referenced by id.
type GraphEdge struct {
	ID         string         `json:"id"`
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Label      string         `json:"label,omitempty"`
	Type       string         `json:"type"`
	Weight     float64        `json:"weight"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Touches reports whether the edge has nodeID as one of its endpoints.
func (e *GraphEdge) Touches(nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}

// GraphMetadata is a cached view over a graph. Counts are always
// recomputed from the node and edge slices.
type GraphMetadata struct {
	NodeCount int       `json:"node_count"`
	EdgeCount int       `json:"edge_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Source    string    `json:"source,omitempty"`
}

// KnowledgeGraph is one graph fragment.
//
// Node ids are unique within a graph and every edge endpoint names a
// node of the same graph.
type KnowledgeGraph struct {
	Nodes    []GraphNode   `json:"nodes"`
	Edges    []GraphEdge   `json:"edges"`
	Metadata GraphMetadata `json:"metadata"`
}

// RefreshMetadata recomputes the counts and stamps the graph with now.
// CreatedAt is only set when it is still zero.
func (g *KnowledgeGraph) RefreshMetadata(now time.Time) {
	g.Metadata.NodeCount = len(g.Nodes)
	g.Metadata.EdgeCount = len(g.Edges)
	if g.Metadata.CreatedAt.IsZero() {
		g.Metadata.CreatedAt = now
	}
	g.Metadata.UpdatedAt = now
}

// IsEmpty reports whether the graph has no nodes.
func (g *KnowledgeGraph) IsEmpty() bool {
	return len(g.Nodes) == 0
}

// NodeIndex maps node ids to their position in Nodes.
func (g *KnowledgeGraph) NodeIndex() map[string]int {
	idx := make(map[string]int, len(g.Nodes))
	for i := range g.Nodes {
		idx[g.Nodes[i].ID] = i
	}
	return idx
}

// Node returns the node with the given id.
func (g *KnowledgeGraph) Node(id string) (*GraphNode, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the node and edge slices. Property maps
// are copied one level deep.
func (g *KnowledgeGraph) Clone() KnowledgeGraph {
	out := KnowledgeGraph{
		Nodes:    make([]GraphNode, len(g.Nodes)),
		Edges:    make([]GraphEdge, len(g.Edges)),
		Metadata: g.Metadata,
	}
	for i, n := range g.Nodes {
		n.Properties = copyProperties(n.Properties)
		if n.FX != nil {
			fx := *n.FX
			n.FX = &fx
		}
		if n.FY != nil {
			fy := *n.FY
			n.FY = &fy
		}
		out.Nodes[i] = n
	}
	for i, e := range g.Edges {
		e.Properties = copyProperties(e.Properties)
		out.Edges[i] = e
	}
	return out
}

func copyProperties(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
