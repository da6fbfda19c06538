package services

import (
	"context"
	"time"

	"github.com/custodia-labs/kgraph/internal/core/domain"
	"github.com/custodia-labs/kgraph/internal/core/graphops"
	"github.com/custodia-labs/kgraph/internal/core/ports/driven"
	"github.com/custodia-labs/kgraph/internal/core/ports/driving"
)

// Ensure ExtractionService implements the interface.
var _ driving.ExtractionService = (*ExtractionService)(nil)

// ExtractionService decodes extractor output and converts it to graphs.
type ExtractionService struct {
	decoder driven.ExtractionDecoder
	now     func() time.Time
}

// NewExtractionService creates a new extraction service.
func NewExtractionService(decoder driven.ExtractionDecoder) *ExtractionService {
	return &ExtractionService{
		decoder: decoder,
		now:     time.Now,
	}
}

// Decode parses raw extractor output.
func (s *ExtractionService) Decode(ctx context.Context, data []byte) (*domain.ExtractionResult, error) {
	if s.decoder == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.decoder.Decode(ctx, data)
}

// Convert parses raw extractor output and converts it to a fragment.
func (s *ExtractionService) Convert(ctx context.Context, data []byte) (*domain.ExtractionResult, *domain.KnowledgeGraph, error) {
	result, err := s.Decode(ctx, data)
	if err != nil {
		return nil, nil, err
	}
	g := graphops.Converter{Now: s.now}.Convert(*result)
	return result, &g, nil
}

// Schema returns the JSON schema of the accepted input.
func (s *ExtractionService) Schema() ([]byte, error) {
	if s.decoder == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.decoder.Schema()
}
