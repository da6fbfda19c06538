// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/kgraph/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewGraphs lists the stored graphs.
	ViewGraphs ViewType = iota
	// ViewGraph is the interactive graph surface.
	ViewGraph
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewGraphs:
		return "graphs"
	case ViewGraph:
		return "graph"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// GraphsLoaded carries the stored collection.
type GraphsLoaded struct {
	Items []domain.StoredGraphItem
}

// GraphOpened asks the app to show a graph on the surface.
type GraphOpened struct {
	Title string
	Graph domain.KnowledgeGraph
}

// GraphDeleted signals a stored graph was removed.
type GraphDeleted struct {
	ID  string
	Err error
}

// Tick advances the layout of the given surface generation. Ticks whose
// generation is no longer current are dropped.
type Tick struct {
	Generation uint64
}
