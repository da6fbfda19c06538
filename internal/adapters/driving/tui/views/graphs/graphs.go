// Package graphs provides the stored graphs list view for the TUI.
package graphs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/kgraph/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/kgraph/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/kgraph/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kgraph/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kgraph/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kgraph/internal/core/domain"
	"github.com/custodia-labs/kgraph/internal/core/ports/driving"
)

// ErrNothingStored is reported when a merged view is requested from an empty store.
var ErrNothingStored = errors.New("no stored graphs")

// View lists stored graphs and opens them on the graph surface.
type View struct {
	ctx        context.Context
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	store      driving.GraphStore
	list       *list.GraphList
	bar        *status.Bar
	mergeLimit int

	confirmDelete string
	err           error
	width         int
	height        int
}

// NewView creates a stored graphs view. mergeLimit is the number of
// recent graphs combined by the merged view.
func NewView(s *styles.Styles, km *keymap.KeyMap, store driving.GraphStore, mergeLimit int) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if mergeLimit <= 0 {
		mergeLimit = domain.DefaultMergeLimit
	}
	bar := status.NewBar(s, km)
	bar.SetHints(status.HintsList)

	return &View{
		ctx:        context.Background(),
		styles:     s,
		keymap:     km,
		store:      store,
		list:       list.NewGraphList(s),
		bar:        bar,
		mergeLimit: mergeLimit,
		width:      80,
		height:     24,
	}
}

// WithContext sets the context used for store calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the stored graphs.
func (v *View) Init() tea.Cmd {
	return v.load()
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		return messages.GraphsLoaded{Items: v.store.GetAll(v.ctx)}
	}
}

// SetDimensions sets the view size in cells.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, max(height-4, 1))
	v.bar.SetWidth(width)
}

// Items returns the listed graphs.
func (v *View) Items() []domain.StoredGraphItem {
	return v.list.Items()
}

// Selected returns the highlighted graph, or nil.
func (v *View) Selected() *domain.StoredGraphItem {
	return v.list.SelectedItem()
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Update handles messages for the list view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.GraphsLoaded:
		v.list.SetItems(msg.Items)
		return v, nil

	case messages.GraphDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		return v, v.load()

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()

	if v.confirmDelete != "" {
		id := v.confirmDelete
		v.confirmDelete = ""
		if k == "y" || k == "Y" {
			return v.remove(id)
		}
		return nil
	}

	switch {
	case keymap.Matches(k, v.keymap.Quit):
		return tea.Quit
	case keymap.Matches(k, v.keymap.Help):
		return func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }
	case keymap.Matches(k, v.keymap.Select):
		item := v.list.SelectedItem()
		if item == nil {
			return nil
		}
		title, g := item.Name, item.Graph
		return func() tea.Msg { return messages.GraphOpened{Title: title, Graph: g} }
	case keymap.Matches(k, v.keymap.Merged):
		return v.merged()
	case keymap.Matches(k, v.keymap.Delete):
		if item := v.list.SelectedItem(); item != nil {
			v.confirmDelete = item.ID
		}
		return nil
	case keymap.Matches(k, v.keymap.Reload):
		return v.load()
	}

	v.list.Update(msg)
	return nil
}

func (v *View) merged() tea.Cmd {
	limit := v.mergeLimit
	return func() tea.Msg {
		g := v.store.MergedGraph(v.ctx, limit)
		if g == nil {
			return messages.ErrorOccurred{Err: ErrNothingStored}
		}
		return messages.GraphOpened{
			Title: fmt.Sprintf("Merged (latest %d)", limit),
			Graph: *g,
		}
	}
}

func (v *View) remove(id string) tea.Cmd {
	return func() tea.Msg {
		ok, err := v.store.Delete(v.ctx, id)
		if err == nil && !ok {
			err = fmt.Errorf("%w: %s", domain.ErrNotFound, id)
		}
		return messages.GraphDeleted{ID: id, Err: err}
	}
}

// View renders the list view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("kgraph"))
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  capacity %d", v.store.Capacity())))
	b.WriteString("\n\n")
	b.WriteString(v.list.View())
	b.WriteString("\n")

	switch {
	case v.confirmDelete != "":
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Delete %s? (y/N)", v.confirmDelete)))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(v.err.Error()))
	}
	b.WriteString("\n")

	b.WriteString(v.bar.View())
	return b.String()
}
