package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/kgraph/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kgraph/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kgraph/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kgraph/internal/adapters/driving/tui/views/graphs"
	"github.com/custodia-labs/kgraph/internal/adapters/driving/tui/views/graphview"
	"github.com/custodia-labs/kgraph/internal/core/domain"
	"github.com/custodia-labs/kgraph/internal/core/surface"
	"github.com/custodia-labs/kgraph/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	// graphsView lists stored graphs. Nil without a store.
	graphsView *graphs.View

	// graphView is the force-directed surface.
	graphView *graphview.View

	currentView  messages.ViewType
	previousView messages.ViewType

	// initial is shown on start instead of the stored graphs list.
	initial      *domain.KnowledgeGraph
	initialTitle string
	filter       domain.FilterOptions

	err    error
	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// Option configures an App.
type Option func(*App)

// WithGraph starts the app on g instead of the stored graphs list.
func WithGraph(title string, g domain.KnowledgeGraph) Option {
	return func(a *App) {
		clone := g.Clone()
		a.initial = &clone
		a.initialTitle = title
	}
}

// WithFilter applies f to every graph opened on the surface.
func WithFilter(f domain.FilterOptions) Option {
	return func(a *App) {
		a.filter = f
	}
}

// NewApp creates a TUI application. A store is required unless a graph
// is supplied with WithGraph.
func NewApp(ports *Ports, opts ...Option) (*App, error) {
	if ports == nil {
		return nil, ErrInvalidPorts
	}

	a := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      styles.DefaultStyles(),
		keymap:      keymap.DefaultKeyMap(),
		currentView: messages.ViewGraphs,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.initial == nil {
		if err := ports.Validate(); err != nil {
			return nil, fmt.Errorf("creating app: %w", err)
		}
	} else {
		a.currentView = messages.ViewGraph
	}

	settings := a.settings()
	interval := time.Duration(settings.Layout.TickMillis) * time.Millisecond
	a.graphView = graphview.NewView(a.styles, a.keymap, surface.OptionsFromSettings(settings), interval)
	if ports.Store != nil {
		a.graphsView = graphs.NewView(a.styles, a.keymap, ports.Store, settings.Store.MergeLimit)
	}
	a.previousView = a.currentView

	return a, nil
}

// settings returns the configured settings, falling back to defaults.
func (a *App) settings() domain.AppSettings {
	if a.ports.Settings == nil {
		return domain.DefaultAppSettings()
	}
	s, err := a.ports.Settings.Get()
	if err != nil || s == nil {
		logger.Warn("using default settings: %v", err)
		return domain.DefaultAppSettings()
	}
	return *s
}

// WithContext sets the context for store calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	if a.graphsView != nil {
		a.graphsView.WithContext(ctx)
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("kgraph")}

	if !a.filter.IsZero() {
		cmds = append(cmds, a.graphView.SetFilter(a.filter))
	}
	if a.initial != nil {
		cmds = append(cmds, a.graphView.SetGraph(a.initialTitle, *a.initial))
	} else {
		cmds = append(cmds, a.graphsView.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.handleKey(msg)

	case tea.MouseMsg:
		if a.currentView == messages.ViewGraph {
			a.graphView, cmd = a.graphView.Update(msg)
		}
		return a, cmd

	case messages.Tick:
		a.graphView, cmd = a.graphView.Update(msg)
		return a, cmd

	case messages.GraphOpened:
		a.err = nil
		a.currentView = messages.ViewGraph
		return a, a.graphView.SetGraph(msg.Title, msg.Graph)

	case messages.ViewChanged:
		return a, a.changeView(msg.View)

	case messages.GraphsLoaded, messages.GraphDeleted:
		if a.graphsView != nil {
			a.graphsView, cmd = a.graphsView.Update(msg)
		}
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		logger.Debug("tui error: %v", msg.Err)
		if a.graphsView != nil {
			a.graphsView, cmd = a.graphsView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewHelp:
		k := msg.String()
		switch {
		case keymap.Matches(k, a.keymap.Quit):
			return tea.Quit
		case keymap.Matches(k, a.keymap.Back), keymap.Matches(k, a.keymap.Help):
			a.currentView = a.previousView
		}
		return nil

	case messages.ViewGraph:
		a.graphView, cmd = a.graphView.Update(msg)
		return cmd

	case messages.ViewGraphs:
		if a.graphsView != nil {
			a.graphsView, cmd = a.graphsView.Update(msg)
		}
		return cmd
	}
	return nil
}

func (a *App) changeView(view messages.ViewType) tea.Cmd {
	switch view {
	case messages.ViewHelp:
		if a.currentView != messages.ViewHelp {
			a.previousView = a.currentView
		}
		a.currentView = messages.ViewHelp
	case messages.ViewGraphs:
		// Started on a single graph with nothing to go back to.
		if a.graphsView == nil {
			return tea.Quit
		}
		a.currentView = messages.ViewGraphs
		return a.graphsView.Init()
	case messages.ViewGraph:
		a.currentView = messages.ViewGraph
		return a.graphView.Init()
	}
	return nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewGraph:
		return a.graphView.View()
	default:
		if a.graphsView == nil {
			return a.graphView.View()
		}
		return a.graphsView.View()
	}
}

// viewHelp renders every key binding, one group per block.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")

	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s%s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}

	b.WriteString(a.styles.Muted.Render("[esc] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(a.ctx),
	)
	_, err := p.Run()
	return err
}

// CurrentView returns the active view.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// GraphView returns the graph surface view.
func (a *App) GraphView() *graphview.View {
	return a.graphView
}

// GraphsView returns the stored graphs view, or nil without a store.
func (a *App) GraphsView() *graphs.View {
	return a.graphsView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its first window size.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.graphView.SetDimensions(width, height)
	if a.graphsView != nil {
		a.graphsView.SetDimensions(width, height)
	}
}
