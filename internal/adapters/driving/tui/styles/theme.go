// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"hash/fnv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/kgraph/internal/core/domain"
)

// Theme defines the colour palette and styling for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text and dimmed graph elements.
	Muted lipgloss.Color

	Warning lipgloss.Color
	Error   lipgloss.Color

	// Edge is the colour of links that are neither highlighted nor dimmed.
	Edge lipgloss.Color

	// Highlight marks the selected or hovered neighbourhood.
	Highlight lipgloss.Color

	// NodeTypes maps well-known entity types to colours. Other types are
	// assigned a colour from Palette by hashing the type name.
	NodeTypes map[string]lipgloss.Color
	Palette   []lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"),
		Secondary:  lipgloss.Color("#06B6D4"),
		Foreground: lipgloss.Color("#CDD6F4"),
		Muted:      lipgloss.Color("#6C7086"),
		Warning:    lipgloss.Color("#F9E2AF"),
		Error:      lipgloss.Color("#F38BA8"),
		Edge:       lipgloss.Color("#7F849C"),
		Highlight:  lipgloss.Color("#F5C2E7"),
		NodeTypes: map[string]lipgloss.Color{
			"PERSON":                lipgloss.Color("#89B4FA"),
			"ORGANIZATION":          lipgloss.Color("#A6E3A1"),
			"LOCATION":              lipgloss.Color("#FAB387"),
			"PRODUCT":               lipgloss.Color("#CBA6F7"),
			"EVENT":                 lipgloss.Color("#F9E2AF"),
			"DATE":                  lipgloss.Color("#94E2D5"),
			domain.NodeTypeInferred: lipgloss.Color("#9399B2"),
		},
		Palette: []lipgloss.Color{
			lipgloss.Color("#F38BA8"),
			lipgloss.Color("#74C7EC"),
			lipgloss.Color("#EBA0AC"),
			lipgloss.Color("#B4BEFE"),
			lipgloss.Color("#F2CDCD"),
			lipgloss.Color("#89DCEB"),
		},
	}
}

// NodeColor returns the colour used for nodes of type t.
func (t *Theme) NodeColor(typ string) lipgloss.Color {
	if c, ok := t.NodeTypes[strings.ToUpper(typ)]; ok {
		return c
	}
	if len(t.Palette) == 0 {
		return t.Foreground
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(typ))
	return t.Palette[h.Sum32()%uint32(len(t.Palette))]
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style

	// Selected style for highlighted list items.
	Selected lipgloss.Style

	Error   lipgloss.Style
	Warning lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	Help lipgloss.Style

	// Graph canvas styles.
	Edge        lipgloss.Style
	EdgeLit     lipgloss.Style
	Dimmed      lipgloss.Style
	Label       lipgloss.Style
	LabelLit    lipgloss.Style
	SelectedDot lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Edge: lipgloss.NewStyle().
			Foreground(theme.Edge),

		EdgeLit: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Highlight),

		Dimmed: lipgloss.NewStyle().
			Faint(true).
			Foreground(theme.Muted),

		Label: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		LabelLit: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Highlight),

		SelectedDot: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Highlight),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Node returns the style for a node of the given type.
func (s *Styles) Node(typ string) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(s.theme.NodeColor(typ))
}
