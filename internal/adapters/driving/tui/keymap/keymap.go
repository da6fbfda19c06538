// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help toggles the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	// Merged opens the merge of the most recent stored graphs.
	Merged key.Binding

	// Delete removes the highlighted stored graph.
	Delete key.Binding

	// Reload re-reads the store.
	Reload key.Binding

	// Graph view.
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	PanLeft    key.Binding
	PanRight   key.Binding
	PanUp      key.Binding
	PanDown    key.Binding
	NextNode   key.Binding
	PrevNode   key.Binding
	Clear      key.Binding
	Labels     key.Binding
	Arrows     key.Binding
	Search     key.Binding
	CycleType  key.Binding
	ConfDown   key.Binding
	ConfUp     key.Binding
	Reset      key.Binding
	Fit        key.Binding
	Reheat     key.Binding
	ShowDetail key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Merged: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "merged"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "zoom out"),
		),
		PanLeft: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "pan"),
		),
		PanRight: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "pan"),
		),
		PanUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "pan"),
		),
		PanDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "pan"),
		),
		NextNode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next node"),
		),
		PrevNode: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev node"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear"),
		),
		Labels: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "labels"),
		),
		Arrows: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "arrows"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		CycleType: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "type"),
		),
		ConfDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "conf -"),
		),
		ConfUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "conf +"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset filter"),
		),
		Fit: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fit"),
		),
		Reheat: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "reheat"),
		),
		ShowDetail: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "details"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// ListHelp returns keybindings for the stored graphs list.
func (k *KeyMap) ListHelp() []key.Binding {
	return []key.Binding{k.Select, k.Merged, k.Delete, k.Quit}
}

// GraphHelp returns keybindings for the graph view.
func (k *KeyMap) GraphHelp() []key.Binding {
	return []key.Binding{k.NextNode, k.Search, k.CycleType, k.Fit, k.Help, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Merged, k.Delete, k.Reload},
		{k.ZoomIn, k.ZoomOut, k.PanLeft, k.PanRight, k.PanUp, k.PanDown, k.Fit},
		{k.NextNode, k.PrevNode, k.Clear, k.Reheat, k.ShowDetail},
		{k.Search, k.CycleType, k.ConfDown, k.ConfUp, k.Reset, k.Labels, k.Arrows},
		{k.Back, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
