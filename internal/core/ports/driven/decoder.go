package driven

import (
	"context"

	"github.com/custodia-labs/kgraph/internal/core/domain"
)

// ExtractionDecoder adapts raw extractor output to the ExtractionResult
// contract the converter understands.
type ExtractionDecoder interface {
	// Decode parses data. It returns an error wrapping
	// domain.ErrInvalidInput when data cannot be read as an extraction.
	Decode(ctx context.Context, data []byte) (*domain.ExtractionResult, error)

	// Schema returns the JSON schema of the accepted input.
	Schema() ([]byte, error)
}
