package mcp

import (
	"github.com/custodia-labs/kgraph/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server uses.
type Ports struct {
	// Extraction decodes and converts extractor output.
	Extraction driving.ExtractionService

	// Store holds the saved graph fragments.
	Store driving.GraphStore

	// Settings supplies the default merge limit. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Store == nil {
		return ErrMissingGraphStore
	}
	if p.Extraction == nil {
		return ErrMissingExtractionService
	}
	return nil
}
