// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/kgraph/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kgraph/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady      State = "ready"
	StateSimulating State = "simulating"
	StateError      State = "error"
	StateHelp       State = "help"
)

// Hints selects which keybinding hints are shown.
type Hints int

const (
	HintsShort Hints = iota
	HintsList
	HintsGraph
)

// Bar displays application status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	hints   Hints
	message string
	nodes   int
	edges   int
	zoom    float64
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	// Hints give way to status when the bar is too narrow for both.
	room := s.width - 2
	if lipgloss.Width(left)+lipgloss.Width(right)+1 > room {
		right = ""
	}
	padding := max(room-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateHelp:
		return s.styles.Normal.Render("Help")
	case StateReady, StateSimulating:
	}

	parts := make([]string, 0, 4)
	if s.hints == HintsGraph {
		parts = append(parts, fmt.Sprintf("%d nodes  %d edges", s.nodes, s.edges))
		if s.zoom > 0 {
			parts = append(parts, fmt.Sprintf("%.0f%%", s.zoom*100))
		}
	}
	if s.state == StateSimulating {
		parts = append(parts, "layout...")
	}
	if s.message != "" {
		parts = append(parts, s.message)
	}
	if len(parts) == 0 {
		return s.styles.Muted.Render("Ready")
	}
	return s.styles.Normal.Render(strings.Join(parts, "  ·  "))
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch s.hints {
	case HintsList:
		bindings = s.keymap.ListHelp()
	case HintsGraph:
		bindings = s.keymap.GraphHelp()
	default:
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetHints selects the keybinding hints.
func (s *Bar) SetHints(h Hints) {
	s.hints = h
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetCounts sets the visible node and edge counts.
func (s *Bar) SetCounts(nodes, edges int) {
	s.nodes = nodes
	s.edges = edges
}

// SetZoom sets the zoom factor shown in graph mode.
func (s *Bar) SetZoom(scale float64) {
	s.zoom = scale
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.nodes = 0
	s.edges = 0
	s.zoom = 0
}
