// Package graphview provides the interactive force-directed graph view.
package graphview

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/kgraph/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/kgraph/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/kgraph/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kgraph/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kgraph/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kgraph/internal/core/domain"
	"github.com/custodia-labs/kgraph/internal/core/graphops"
	"github.com/custodia-labs/kgraph/internal/core/surface"
)

const (
	zoomStep       = 1.25
	panStep        = 4.0
	confidenceStep = 0.1
	maxDetailLines = 6

	// chromeLines are the title, the prompt line and the status bar.
	chromeLines = 3
)

// View renders a surface.Surface on a terminal canvas and maps keys and
// mouse events onto it.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	surface *surface.Surface
	bar     *status.Bar
	query   *input.QueryInput

	title    string
	filter   domain.FilterOptions
	typeIdx  int
	interval time.Duration

	// A tick chain is pending for tickGen while ticking is set.
	ticking bool
	tickGen uint64

	// autoFit keeps the graph framed until the user pans or zooms.
	autoFit    bool
	showDetail bool
	savedQuery string

	pressed bool
	panning bool
	moved   bool
	lastX   int
	lastY   int

	width  int
	height int
}

// NewView creates a graph view. interval is the delay between layout ticks.
func NewView(s *styles.Styles, km *keymap.KeyMap, opts surface.Options, interval time.Duration) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if interval <= 0 {
		interval = time.Duration(domain.DefaultTickMillis) * time.Millisecond
	}
	bar := status.NewBar(s, km)
	bar.SetHints(status.HintsGraph)

	return &View{
		styles:   s,
		keymap:   km,
		surface:  surface.New(opts),
		bar:      bar,
		query:    input.NewQueryInput(s, "Search:"),
		typeIdx:  -1,
		interval: interval,
		autoFit:  true,
		width:    80,
		height:   24,
	}
}

// SetGraph shows g and starts laying it out. The current filter is kept.
func (v *View) SetGraph(title string, g domain.KnowledgeGraph) tea.Cmd {
	v.title = title
	v.typeIdx = -1
	v.autoFit = true
	v.showDetail = false
	v.surface.SetGraph(g)
	v.fit()
	return v.scheduleTick()
}

// SetFilter replaces the filter.
func (v *View) SetFilter(f domain.FilterOptions) tea.Cmd {
	v.filter = f
	v.query.SetValue(f.SearchQuery)
	v.typeIdx = -1
	return v.applyFilter()
}

// Filter returns the filter in effect.
func (v *View) Filter() domain.FilterOptions {
	return v.filter
}

// Surface exposes the underlying surface.
func (v *View) Surface() *surface.Surface {
	return v.surface
}

// Title returns the title of the graph on display.
func (v *View) Title() string {
	return v.title
}

// Ticking reports whether a layout tick is pending.
func (v *View) Ticking() bool {
	return v.ticking
}

// Searching reports whether the search prompt has focus.
func (v *View) Searching() bool {
	return v.query.Focused()
}

// SetDimensions sets the view size in cells.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.bar.SetWidth(width)
	v.query.SetWidth(width)
	if v.autoFit {
		v.fit()
	}
}

// Init implements the view lifecycle.
func (v *View) Init() tea.Cmd {
	return v.scheduleTick()
}

// Update handles messages for the graph view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.Tick:
		return v, v.handleTick(msg)

	case tea.KeyMsg:
		if v.query.Focused() {
			return v, v.handleQueryKey(msg)
		}
		return v, v.handleKey(msg)

	case tea.MouseMsg:
		return v, v.handleMouse(msg)
	}

	return v, nil
}

func (v *View) handleTick(msg messages.Tick) tea.Cmd {
	if !v.ticking || msg.Generation != v.tickGen {
		// A newer chain superseded this one.
		return nil
	}
	v.ticking = false
	if !v.surface.Tick(msg.Generation) {
		return nil
	}
	if v.autoFit {
		v.fit()
	}
	return v.scheduleTick()
}

// scheduleTick starts a tick chain for the current generation unless one
// is already pending or the layout is at rest.
func (v *View) scheduleTick() tea.Cmd {
	gen := v.surface.Generation()
	if !v.surface.Active() || (v.ticking && v.tickGen == gen) {
		return nil
	}
	v.ticking = true
	v.tickGen = gen
	return tea.Tick(v.interval, func(time.Time) tea.Msg {
		return messages.Tick{Generation: gen}
	})
}

//nolint:gocyclo // key dispatch
func (v *View) handleKey(msg tea.KeyMsg) tea.Cmd {
	km := v.keymap
	k := msg.String()
	cx, cy := v.canvasCentre()

	switch {
	case keymap.Matches(k, km.Quit):
		return tea.Quit
	case keymap.Matches(k, km.Back):
		switch {
		case v.showDetail:
			v.showDetail = false
		case v.surface.Selection() != "":
			v.surface.ClearHighlight()
		default:
			return func() tea.Msg { return messages.ViewChanged{View: messages.ViewGraphs} }
		}
	case keymap.Matches(k, km.Help):
		return func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }
	case keymap.Matches(k, km.ZoomIn):
		v.autoFit = false
		v.surface.Zoom(zoomStep, cx, cy)
	case keymap.Matches(k, km.ZoomOut):
		v.autoFit = false
		v.surface.Zoom(1/zoomStep, cx, cy)
	case keymap.Matches(k, km.PanLeft):
		v.autoFit = false
		v.surface.Pan(panStep, 0)
	case keymap.Matches(k, km.PanRight):
		v.autoFit = false
		v.surface.Pan(-panStep, 0)
	case keymap.Matches(k, km.PanUp):
		v.autoFit = false
		v.surface.Pan(0, panStep)
	case keymap.Matches(k, km.PanDown):
		v.autoFit = false
		v.surface.Pan(0, -panStep)
	case keymap.Matches(k, km.NextNode):
		v.cycleSelection(1)
	case keymap.Matches(k, km.PrevNode):
		v.cycleSelection(-1)
	case keymap.Matches(k, km.Clear):
		v.surface.ClearHighlight()
		v.showDetail = false
	case keymap.Matches(k, km.Labels):
		v.surface.ToggleLabels()
	case keymap.Matches(k, km.Arrows):
		v.surface.ToggleArrows()
	case keymap.Matches(k, km.Search):
		v.savedQuery = v.filter.SearchQuery
		return v.query.Focus()
	case keymap.Matches(k, km.CycleType):
		return v.cycleType()
	case keymap.Matches(k, km.ConfDown):
		return v.stepConfidence(-confidenceStep)
	case keymap.Matches(k, km.ConfUp):
		return v.stepConfidence(confidenceStep)
	case keymap.Matches(k, km.Reset):
		v.filter = domain.FilterOptions{}
		v.typeIdx = -1
		v.query.Reset()
		return v.applyFilter()
	case keymap.Matches(k, km.Fit):
		v.autoFit = true
		v.fit()
	case keymap.Matches(k, km.Reheat):
		v.surface.Restart()
		return v.scheduleTick()
	case keymap.Matches(k, km.ShowDetail):
		if v.surface.Selection() != "" {
			v.showDetail = !v.showDetail
		}
	}
	return nil
}

func (v *View) handleQueryKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		v.query.Blur()
		return nil
	case tea.KeyEsc:
		v.query.Blur()
		v.query.SetValue(v.savedQuery)
		v.filter.SearchQuery = v.savedQuery
		return v.applyFilter()
	}

	_, cmd := v.query.Update(msg)
	if q := v.query.Value(); q != v.filter.SearchQuery {
		v.filter.SearchQuery = q
		return tea.Batch(cmd, v.applyFilter())
	}
	return cmd
}

func (v *View) handleMouse(msg tea.MouseMsg) tea.Cmd {
	row := msg.Y - 1
	sx := float64(msg.X)
	sy := float64(row * rowScale)
	inside := row >= 0 && row < v.canvasHeight()

	switch msg.Action {
	case tea.MouseActionPress:
		if !inside {
			return nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			v.autoFit = false
			v.surface.Zoom(zoomStep, sx, sy)
		case tea.MouseButtonWheelDown:
			v.autoFit = false
			v.surface.Zoom(1/zoomStep, sx, sy)
		case tea.MouseButtonLeft:
			v.pressed = true
			v.moved = false
			v.lastX, v.lastY = msg.X, msg.Y
			if id, ok := v.surface.NodeAt(sx, sy); ok {
				v.surface.Select(id)
				v.surface.DragStart(id)
				return v.scheduleTick()
			}
			v.panning = true
		}

	case tea.MouseActionMotion:
		if !v.pressed {
			v.hover(sx, sy, inside)
			return nil
		}
		dx, dy := msg.X-v.lastX, msg.Y-v.lastY
		if dx != 0 || dy != 0 {
			v.moved = true
		}
		v.lastX, v.lastY = msg.X, msg.Y
		if v.surface.Dragging() != "" {
			wx, wy := v.surface.ScreenToWorld(sx, sy)
			v.surface.DragMove(wx, wy)
			return v.scheduleTick()
		}
		if v.panning {
			v.autoFit = false
			v.surface.Pan(float64(dx), float64(dy*rowScale))
		}

	case tea.MouseActionRelease:
		if !v.pressed {
			return nil
		}
		if v.surface.Dragging() != "" {
			v.surface.DragEnd()
		} else if v.panning && !v.moved {
			// A click on the background clears the highlight.
			v.surface.ClearHighlight()
			v.showDetail = false
		}
		v.pressed = false
		v.panning = false
		return v.scheduleTick()
	}
	return nil
}

func (v *View) hover(sx, sy float64, inside bool) {
	id, ok := "", false
	if inside {
		id, ok = v.surface.NodeAt(sx, sy)
	}
	switch {
	case ok && id != v.surface.Hovered():
		v.surface.HoverStart(id)
	case !ok && v.surface.Hovered() != "":
		v.surface.HoverEnd()
	}
}

func (v *View) cycleSelection(step int) {
	nodes := v.surface.Graph().Nodes
	if len(nodes) == 0 {
		return
	}
	i := slices.IndexFunc(nodes, func(n domain.GraphNode) bool { return n.ID == v.surface.Selection() })
	switch {
	case i < 0 && step > 0:
		i = 0
	case i < 0:
		i = len(nodes) - 1
	default:
		i = (i + step + len(nodes)) % len(nodes)
	}
	v.surface.Select(nodes[i].ID)
}

func (v *View) cycleType() tea.Cmd {
	types := graphops.NodeTypes(v.surface.Original())
	if len(types) == 0 {
		return nil
	}
	v.typeIdx = (v.typeIdx+2)%(len(types)+1) - 1
	if v.typeIdx < 0 {
		v.filter.NodeTypes = nil
	} else {
		v.filter.NodeTypes = []string{types[v.typeIdx].Type}
	}
	return v.applyFilter()
}

func (v *View) stepConfidence(delta float64) tea.Cmd {
	c := math.Round((v.filter.MinConfidence+delta)*10) / 10
	c = math.Min(math.Max(c, 0), 1)
	if c == v.filter.MinConfidence {
		return nil
	}
	v.filter.MinConfidence = c
	return v.applyFilter()
}

func (v *View) applyFilter() tea.Cmd {
	if v.filter.IsZero() {
		v.surface.ResetFilter()
	} else {
		v.surface.SetFilter(v.filter)
	}
	if v.surface.Selection() == "" {
		v.showDetail = false
	}
	if v.autoFit {
		v.fit()
	}
	return v.scheduleTick()
}

func (v *View) fit() {
	v.surface.Fit(float64(v.width), float64(v.canvasHeight()*rowScale))
}

func (v *View) canvasCentre() (float64, float64) {
	return float64(v.width) / 2, float64(v.canvasHeight()*rowScale) / 2
}

func (v *View) canvasHeight() int {
	h := v.height - chromeLines
	if v.showDetail {
		h -= len(v.detailLines())
	}
	return max(h, 1)
}

// View renders the graph view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.renderTitle())
	b.WriteByte('\n')
	b.WriteString(v.renderCanvas())
	b.WriteByte('\n')
	if v.showDetail {
		for _, l := range v.detailLines() {
			b.WriteString(l)
			b.WriteByte('\n')
		}
	}
	b.WriteString(v.renderPrompt())
	b.WriteByte('\n')
	b.WriteString(v.renderStatus())

	return b.String()
}

func (v *View) renderTitle() string {
	title := v.title
	if title == "" {
		title = "Graph"
	}
	out := v.styles.Title.Render(title)
	if summary := filterSummary(v.filter); summary != "" {
		out += "  " + v.styles.Warning.Render(summary)
	}
	return out
}

func (v *View) renderCanvas() string {
	w, h := v.width, v.canvasHeight()
	sc := v.surface.Scene()
	if sc.Empty {
		msg := "No nodes to display"
		if !v.filter.IsZero() {
			msg = "No nodes match the current filter (r to reset)"
		}
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, v.styles.Muted.Render(msg))
	}
	return rasterise(sc, v.styles, w, h).String()
}

func (v *View) renderPrompt() string {
	if v.query.Focused() {
		return v.query.View()
	}
	id := v.surface.Selection()
	if id == "" {
		id = v.surface.Hovered()
	}
	if id == "" {
		return v.styles.Muted.Render("Select a node with tab or the mouse")
	}
	g := v.surface.Graph()
	n, ok := g.Node(id)
	if !ok {
		return ""
	}
	neighbours := len(graphops.Neighborhood(g, id).Nodes) - 1
	return v.styles.Node(n.Type).Render(n.Label) +
		v.styles.Muted.Render(fmt.Sprintf("  %s  weight %.2f  %d neighbours", n.Type, n.Weight, neighbours))
}

func (v *View) detailLines() []string {
	g := v.surface.Graph()
	n, ok := g.Node(v.surface.Selection())
	if !ok {
		return nil
	}
	keys := slices.Sorted(maps.Keys(n.Properties))
	lines := make([]string, 0, min(len(keys), maxDetailLines))
	for _, k := range keys {
		if len(lines) == maxDetailLines {
			break
		}
		lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("  %s: %v", k, n.Properties[k])))
	}
	if len(lines) == 0 {
		lines = append(lines, v.styles.Muted.Render("  (no properties)"))
	}
	return lines
}

func (v *View) renderStatus() string {
	g := v.surface.Graph()
	v.bar.SetCounts(len(g.Nodes), len(g.Edges))
	v.bar.SetZoom(v.surface.Transform().Scale)
	if v.surface.Active() {
		v.bar.SetState(status.StateSimulating)
	} else {
		v.bar.SetState(status.StateReady)
	}
	return v.bar.View()
}

func filterSummary(f domain.FilterOptions) string {
	var parts []string
	if len(f.NodeTypes) > 0 {
		parts = append(parts, "type="+strings.Join(f.NodeTypes, ","))
	}
	if len(f.EdgeTypes) > 0 {
		parts = append(parts, "edge="+strings.Join(f.EdgeTypes, ","))
	}
	if f.MinConfidence > 0 {
		parts = append(parts, fmt.Sprintf("conf≥%.1f", f.MinConfidence))
	}
	if f.SearchQuery != "" {
		parts = append(parts, fmt.Sprintf("search=%q", f.SearchQuery))
	}
	return strings.Join(parts, " ")
}
