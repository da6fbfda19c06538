// Package domain defines the core data contract for kgraph.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ExtractionResult: Entities and relations emitted by an external extractor
//   - KnowledgeGraph: A graph fragment of nodes and edges with derived metadata
//   - StoredGraphItem: A persisted fragment together with its extraction input
//   - FilterOptions: Predicates applied to a graph before rendering
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
