// Package tui provides the interactive terminal interface for kgraph.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/kgraph/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI uses.
type Ports struct {
	// Store holds the saved graph fragments.
	Store driving.GraphStore

	// Settings supplies layout and display settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a Ports aggregate.
func NewPorts(store driving.GraphStore, settings driving.SettingsService) *Ports {
	return &Ports{
		Store:    store,
		Settings: settings,
	}
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p.Store == nil {
		return ErrMissingGraphStore
	}
	return nil
}
