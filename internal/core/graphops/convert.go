package graphops

import (
	"fmt"
	"time"

	"github.com/custodia-labs/kgraph/internal/core/domain"
)

// Converter turns extraction results into graph fragments.
// Now stamps the metadata; it defaults to time.Now.
type Converter struct {
	Now func() time.Time
}

// Convert converts an extraction result using the wall clock.
func Convert(result domain.ExtractionResult) domain.KnowledgeGraph {
	return Converter{}.Convert(result)
}

// Convert builds a fragment from result.
//
// Entities are indexed by their surface text. Within one call the first
// entity seen for a text owns it: a later entity with identical text
// still becomes a node, but relations naming that text resolve to the
// first one. Edge ids carry their endpoints and type, so merging
// fragments only collapses relations that are identical. Relation endpoints that match no entity get an INFERRED
// placeholder node so no relation is dropped.
func (c Converter) Convert(result domain.ExtractionResult) domain.KnowledgeGraph {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	g := domain.KnowledgeGraph{
		Nodes: make([]domain.GraphNode, 0, len(result.Entities)),
		Edges: make([]domain.GraphEdge, 0, len(result.Relations)),
	}
	byText := make(map[string]string, len(result.Entities))

	for i := range result.Entities {
		ent := &result.Entities[i]
		if !ent.Valid() {
			continue
		}

		props := map[string]any{
			"start":      ent.Start,
			"end":        ent.End,
			"confidence": ent.Confidence,
		}
		for k, v := range ent.Properties {
			props[k] = v
		}

		id := fmt.Sprintf("entity_%d_%s", i, ent.Text)
		g.Nodes = append(g.Nodes, domain.GraphNode{
			ID:         id,
			Label:      ent.Text,
			Type:       ent.Type,
			Weight:     domain.WeightFromConfidence(ent.Confidence),
			Properties: props,
		})
		if _, seen := byText[ent.Text]; !seen {
			byText[ent.Text] = id
		}
	}

	resolve := func(text string) string {
		if id, ok := byText[text]; ok {
			return id
		}
		id := fmt.Sprintf("inferred_%d_%s", len(g.Nodes), text)
		g.Nodes = append(g.Nodes, domain.GraphNode{
			ID:         id,
			Label:      text,
			Type:       domain.NodeTypeInferred,
			Weight:     domain.InferredNodeWeight,
			Properties: map[string]any{"inferred": true},
		})
		byText[text] = id
		return id
	}

	for i := range result.Relations {
		rel := &result.Relations[i]
		if !rel.Valid() {
			continue
		}

		props := map[string]any{"confidence": rel.Confidence}
		for k, v := range rel.Properties {
			props[k] = v
		}

		src, dst := resolve(rel.SourceText), resolve(rel.TargetText)
		g.Edges = append(g.Edges, domain.GraphEdge{
			ID:         edgeID(i, src, rel.Type, dst),
			Source:     src,
			Target:     dst,
			Label:      domain.RelationLabel(rel.Type),
			Type:       rel.Type,
			Weight:     domain.WeightFromConfidence(rel.Confidence),
			Properties: props,
		})
	}

	g.Metadata.Source = domain.ProvenanceExtraction
	g.RefreshMetadata(now())
	return g
}

// edgeID names relation i between the resolved node ids src and dst.
func edgeID(i int, src, typ, dst string) string {
	return fmt.Sprintf("relation_%d_%s_%s_%s", i, src, typ, dst)
}
