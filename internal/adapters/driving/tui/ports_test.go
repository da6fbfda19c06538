package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/kgraph/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/kgraph/internal/core/services"
)

func TestNewPorts(t *testing.T) {
	store := newTestStore(t)
	settings := services.NewSettingsService(memory.NewConfigStore())

	ports := NewPorts(store, settings)

	assert.Same(t, store, ports.Store)
	assert.Same(t, settings, ports.Settings)
}

func TestPorts_Validate(t *testing.T) {
	assert.NoError(t, NewPorts(newTestStore(t), nil).Validate())
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingGraphStore)
}
