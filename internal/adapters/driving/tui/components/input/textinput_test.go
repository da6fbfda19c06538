package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgraph/internal/adapters/driving/tui/styles"
)

func TestNewQueryInput(t *testing.T) {
	in := NewQueryInput(styles.DefaultStyles(), "Search:")

	require.NotNil(t, in)
	assert.Equal(t, "", in.Value())
	assert.False(t, in.Focused())
	assert.NotNil(t, in.Init())
}

func TestNewQueryInput_NilStyles(t *testing.T) {
	in := NewQueryInput(nil, "Search:")

	require.NotNil(t, in)
	assert.NotNil(t, in.styles)
}

func TestQueryInput_TypingRequiresFocus(t *testing.T) {
	in := NewQueryInput(nil, "Search:")
	key := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}

	in.Update(key)
	assert.Equal(t, "", in.Value())

	in.Focus()
	in.Update(key)
	assert.Equal(t, "a", in.Value())
	assert.True(t, in.Focused())

	in.Blur()
	assert.False(t, in.Focused())
}

func TestQueryInput_SetValueAndReset(t *testing.T) {
	in := NewQueryInput(nil, "Search:")

	in.SetValue("alice")
	assert.Equal(t, "alice", in.Value())

	in.Reset()
	assert.Equal(t, "", in.Value())
}

func TestQueryInput_View(t *testing.T) {
	in := NewQueryInput(nil, "Search:")

	assert.Contains(t, in.View(), "Search:")
}

func TestQueryInput_SetWidth(t *testing.T) {
	in := NewQueryInput(nil, "Search:")

	in.SetWidth(100)
	assert.Equal(t, 100, in.Width())
	assert.Equal(t, 89, in.textinput.Width)

	in.SetWidth(5)
	assert.Equal(t, 20, in.textinput.Width)
}
