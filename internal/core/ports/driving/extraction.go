package driving

import (
	"context"

	"github.com/custodia-labs/kgraph/internal/core/domain"
)

// ExtractionService turns raw extractor output into graph fragments.
type ExtractionService interface {
	// Decode parses raw extractor output.
	Decode(ctx context.Context, data []byte) (*domain.ExtractionResult, error)

	// Convert parses raw extractor output and converts it to a fragment.
	Convert(ctx context.Context, data []byte) (*domain.ExtractionResult, *domain.KnowledgeGraph, error)

	// Schema returns the JSON schema of the accepted input.
	Schema() ([]byte, error)
}
