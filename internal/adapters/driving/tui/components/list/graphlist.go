// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/kgraph/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kgraph/internal/core/domain"
)

// linesPerItem is the height of one rendered item.
const linesPerItem = 2

// GraphList displays stored graphs in a navigable list, most recent first.
type GraphList struct {
	items    []domain.StoredGraphItem
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewGraphList creates a new stored graph list component.
func NewGraphList(s *styles.Styles) *GraphList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &GraphList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (l *GraphList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *GraphList) Update(msg tea.Msg) (*GraphList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if len(l.items) > 0 {
				l.selected = len(l.items) - 1
			}
		}
	}
	return l, nil
}

// View renders the list.
func (l *GraphList) View() string {
	if len(l.items) == 0 {
		return l.styles.Muted.Render("No stored graphs. Save one with `kgraph save <file>`.")
	}

	lines := make([]string, 0, len(l.items)*linesPerItem+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Stored graphs (%d)", len(l.items))), "")

	visible := (l.height - 2) / linesPerItem
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.items))

	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i, &l.items[i]))
	}

	return strings.Join(lines, "\n")
}

func (l *GraphList) renderItem(index int, item *domain.StoredGraphItem) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	name := item.Name
	if name == "" {
		name = "(unnamed)"
	}
	counts := fmt.Sprintf("%d nodes  %d edges", len(item.Graph.Nodes), len(item.Graph.Edges))

	maxName := max(l.width-lipgloss.Width(counts)-6, 10)
	name = truncate(name, maxName)

	var title string
	if index == l.selected {
		title = l.styles.Selected.Render(indicator + pad(name, maxName) + "  " + counts)
	} else {
		title = l.styles.Normal.Render(indicator+pad(name, maxName)+"  ") +
			l.styles.Muted.Render(counts)
	}

	meta := fmt.Sprintf("    %s  %s  %s", item.CreatedAt.Format("2006-01-02 15:04"), item.Source, item.ID)
	return title + "\n" + l.styles.Muted.Render(truncate(meta, max(l.width-2, 20)))
}

// truncate shortens s to at most n terminal cells. Wide runes such as
// CJK count as two.
func truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	tail := "..."
	if n <= len(tail) {
		tail = ""
	}
	limit := n - len(tail)

	var b strings.Builder
	w := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if w+rw > limit {
			break
		}
		b.WriteRune(r)
		w += rw
	}
	return b.String() + tail
}

// pad right-fills s with spaces to n terminal cells.
func pad(s string, n int) string {
	return s + strings.Repeat(" ", max(n-lipgloss.Width(s), 0))
}

// SetItems replaces the items, keeping the selection in range.
func (l *GraphList) SetItems(items []domain.StoredGraphItem) {
	l.items = items
	if l.selected >= len(items) {
		l.selected = max(len(items)-1, 0)
	}
}

// Items returns the current items.
func (l *GraphList) Items() []domain.StoredGraphItem {
	return l.items
}

// Selected returns the index of the selected item.
func (l *GraphList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *GraphList) SetSelected(index int) {
	if index >= 0 && index < len(l.items) {
		l.selected = index
	}
}

// SelectedItem returns the currently selected item, or nil if none.
func (l *GraphList) SelectedItem() *domain.StoredGraphItem {
	if len(l.items) == 0 || l.selected < 0 || l.selected >= len(l.items) {
		return nil
	}
	return &l.items[l.selected]
}

// MoveUp moves selection up.
func (l *GraphList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *GraphList) MoveDown() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *GraphList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of items.
func (l *GraphList) Count() int {
	return len(l.items)
}

// IsEmpty returns whether the list is empty.
func (l *GraphList) IsEmpty() bool {
	return len(l.items) == 0
}
