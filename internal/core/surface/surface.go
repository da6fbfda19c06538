package surface

import (
	"math"

	"github.com/custodia-labs/kgraph/internal/core/domain"
	"github.com/custodia-labs/kgraph/internal/core/graphops"
	"github.com/custodia-labs/kgraph/internal/core/layout"
)

// minHitRadius is the smallest on-screen radius that still counts as a
// hit, so nodes stay clickable when zoomed far out.
const minHitRadius = 1.5

// Options are the layout parameters and display toggles of a surface.
type Options struct {
	NodeRadius     float64
	LinkDistance   float64
	ChargeStrength float64
	ShowLabels     bool
	ShowArrows     bool
}

// OptionsFromSettings builds surface options from application settings.
func OptionsFromSettings(s domain.AppSettings) Options {
	return Options{
		NodeRadius:     s.Layout.NodeRadius,
		LinkDistance:   s.Layout.LinkDistance,
		ChargeStrength: s.Layout.ChargeStrength,
		ShowLabels:     s.Display.ShowLabels,
		ShowArrows:     s.Display.ShowArrows,
	}
}

// Surface is the state of one interactive graph view.
type Surface struct {
	opts Options

	original domain.KnowledgeGraph
	current  domain.KnowledgeGraph
	filter   domain.FilterOptions

	sim        *layout.Simulation
	generation uint64
	transform  Transform

	selection string
	selected  graphops.Highlight
	hover     string
	highlight graphops.Highlight

	dragging string
}

// New creates an empty surface.
func New(opts Options) *Surface {
	if opts.NodeRadius <= 0 {
		opts.NodeRadius = domain.DefaultNodeRadius
	}
	return &Surface{
		opts:      opts,
		transform: Identity(),
	}
}

// SetGraph replaces the graph. The current filter is re-applied and the
// simulation is rebuilt. It returns the new generation.
func (s *Surface) SetGraph(g domain.KnowledgeGraph) uint64 {
	s.original = g.Clone()
	return s.rebuild()
}

// SetFilter replaces the filter, recomputes the visible graph from the
// unfiltered one and rebuilds the simulation. It returns the new
// generation.
func (s *Surface) SetFilter(f domain.FilterOptions) uint64 {
	s.filter = f
	return s.rebuild()
}

// ResetFilter clears the filter. It returns the new generation.
func (s *Surface) ResetFilter() uint64 {
	return s.SetFilter(domain.FilterOptions{})
}

// Filter returns the filter in effect.
func (s *Surface) Filter() domain.FilterOptions {
	return s.filter
}

// Graph returns the visible graph. Node positions are live.
func (s *Surface) Graph() domain.KnowledgeGraph {
	return s.current
}

// Original returns the unfiltered graph.
func (s *Surface) Original() domain.KnowledgeGraph {
	return s.original
}

// Options returns the surface options.
func (s *Surface) Options() Options {
	return s.opts
}

func (s *Surface) rebuild() uint64 {
	s.generation++
	s.dragging = ""
	s.hover = ""

	if s.filter.IsZero() {
		s.current = s.original.Clone()
	} else {
		filtered := graphops.Filter(s.original, s.filter)
		s.current = filtered.Clone()
	}

	if s.current.IsEmpty() {
		s.sim = nil
	} else {
		s.sim = layout.New(s.current.Nodes, s.current.Edges, layout.Config{
			LinkDistance:   s.opts.LinkDistance,
			ChargeStrength: s.opts.ChargeStrength,
		})
	}

	if _, ok := s.current.Node(s.selection); ok {
		s.selected = graphops.Neighborhood(s.current, s.selection)
	} else {
		s.selection = ""
		s.selected = graphops.Highlight{}
	}
	s.highlight = s.selected
	return s.generation
}

// Empty reports whether the visible graph has no nodes.
func (s *Surface) Empty() bool {
	return s.sim == nil
}

// Generation identifies the current simulation.
func (s *Surface) Generation() uint64 {
	return s.generation
}

// Active reports whether the simulation still needs ticks.
func (s *Surface) Active() bool {
	return s.sim != nil && s.sim.Active()
}

// Tick advances the simulation if gen is current, and reports whether
// another tick should be scheduled. Ticks from an older generation are
// dropped.
func (s *Surface) Tick(gen uint64) bool {
	if gen != s.generation || s.sim == nil {
		return false
	}
	return s.sim.Tick()
}

// Select makes the 1-hop neighbourhood of id the persistent highlight.
// It returns false and changes nothing if id is not visible.
func (s *Surface) Select(id string) bool {
	if _, ok := s.current.Node(id); !ok {
		return false
	}
	s.selection = id
	s.selected = graphops.Neighborhood(s.current, id)
	s.highlight = s.selected
	return true
}

// Selection returns the selected node id, or "".
func (s *Surface) Selection() string {
	return s.selection
}

// HoverStart overlays the neighbourhood of id as a transient highlight.
func (s *Surface) HoverStart(id string) bool {
	if _, ok := s.current.Node(id); !ok {
		return false
	}
	s.hover = id
	s.highlight = graphops.Neighborhood(s.current, id)
	return true
}

// HoverEnd drops the transient highlight and falls back to the
// selection, or to nothing if there is no selection.
func (s *Surface) HoverEnd() {
	s.hover = ""
	s.highlight = s.selected
}

// Hovered returns the hovered node id, or "".
func (s *Surface) Hovered() string {
	return s.hover
}

// ClearHighlight drops both the selection and the hover.
func (s *Surface) ClearHighlight() {
	s.selection = ""
	s.hover = ""
	s.selected = graphops.Highlight{}
	s.highlight = graphops.Highlight{}
}

// Highlight returns the highlight in effect.
func (s *Surface) Highlight() graphops.Highlight {
	return s.highlight
}

// DragStart pins id at its current position and reheats the simulation.
func (s *Surface) DragStart(id string) bool {
	n, ok := s.current.Node(id)
	if !ok || s.sim == nil {
		return false
	}
	n.Pin(n.X, n.Y)
	s.dragging = id
	s.sim.Reheat(layout.DragAlphaTarget)
	return true
}

// DragMove moves the pin of the dragged node to a world position.
func (s *Surface) DragMove(wx, wy float64) {
	if s.dragging == "" {
		return
	}
	if n, ok := s.current.Node(s.dragging); ok {
		n.Pin(wx, wy)
	}
}

// DragEnd releases the dragged node and lets the simulation cool down.
func (s *Surface) DragEnd() {
	if s.dragging == "" {
		return
	}
	if n, ok := s.current.Node(s.dragging); ok {
		n.Unpin()
	}
	s.dragging = ""
	if s.sim != nil {
		s.sim.Reheat(0)
	}
}

// Dragging returns the dragged node id, or "".
func (s *Surface) Dragging() string {
	return s.dragging
}

// Transform returns the view transform.
func (s *Surface) Transform() Transform {
	return s.transform
}

// SetTransform replaces the view transform. The scale is clamped.
func (s *Surface) SetTransform(t Transform) {
	t.Scale = clampScale(t.Scale)
	s.transform = t
}

// Zoom scales the view by factor around the screen point (cx, cy).
func (s *Surface) Zoom(factor, cx, cy float64) {
	s.transform = s.transform.ZoomAt(factor, cx, cy)
}

// Pan moves the view by a screen-space offset.
func (s *Surface) Pan(dx, dy float64) {
	s.transform.X += dx
	s.transform.Y += dy
}

// Fit sets the transform so the visible graph fills a screen of the
// given size, keeping a margin of one node radius.
func (s *Surface) Fit(width, height float64) {
	if s.current.IsEmpty() || width <= 0 || height <= 0 {
		s.transform = Transform{Scale: 1, X: width / 2, Y: height / 2}
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range s.current.Nodes {
		minX, maxX = math.Min(minX, n.X), math.Max(maxX, n.X)
		minY, maxY = math.Min(minY, n.Y), math.Max(maxY, n.Y)
	}
	pad := 2 * s.opts.NodeRadius
	w := maxX - minX + pad
	h := maxY - minY + pad

	scale := clampScale(math.Min(width/w, height/h))
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	s.transform = Transform{
		Scale: scale,
		X:     width/2 - cx*scale,
		Y:     height/2 - cy*scale,
	}
}

// ScreenToWorld maps a screen point into the world.
func (s *Surface) ScreenToWorld(sx, sy float64) (float64, float64) {
	return s.transform.Invert(sx, sy)
}

// NodeAt returns the visible node closest to a screen point, if the
// point lies within its on-screen radius.
func (s *Surface) NodeAt(sx, sy float64) (string, bool) {
	r := math.Max(s.opts.NodeRadius*s.transform.Scale, minHitRadius)
	best, bestD := "", math.Inf(1)
	for _, n := range s.current.Nodes {
		nx, ny := s.transform.Apply(n.X, n.Y)
		d := math.Hypot(nx-sx, ny-sy)
		if d <= r && d < bestD {
			best, bestD = n.ID, d
		}
	}
	return best, best != ""
}

// ToggleLabels flips label display and returns the new state.
func (s *Surface) ToggleLabels() bool {
	s.opts.ShowLabels = !s.opts.ShowLabels
	return s.opts.ShowLabels
}

// ToggleArrows flips arrowhead display and returns the new state.
func (s *Surface) ToggleArrows() bool {
	s.opts.ShowArrows = !s.opts.ShowArrows
	return s.opts.ShowArrows
}

// Scene returns a render-ready snapshot in screen coordinates.
func (s *Surface) Scene() Scene {
	sc := Scene{
		Empty:      s.Empty(),
		ShowLabels: s.opts.ShowLabels,
		ShowArrows: s.opts.ShowArrows,
		Scale:      s.transform.Scale,
		Generation: s.generation,
		Active:     s.Active(),
	}
	if sc.Empty {
		return sc
	}

	lit := !s.highlight.Empty()
	radius := s.opts.NodeRadius * s.transform.Scale
	pos := make(map[string][2]float64, len(s.current.Nodes))

	sc.Nodes = make([]SceneNode, 0, len(s.current.Nodes))
	for i := range s.current.Nodes {
		n := &s.current.Nodes[i]
		x, y := s.transform.Apply(n.X, n.Y)
		pos[n.ID] = [2]float64{x, y}
		on := s.highlight.HasNode(n.ID)
		sc.Nodes = append(sc.Nodes, SceneNode{
			ID:          n.ID,
			Label:       n.Label,
			Type:        n.Type,
			Weight:      n.Weight,
			X:           x,
			Y:           y,
			Radius:      radius,
			Highlighted: on,
			Dimmed:      lit && !on,
			Selected:    n.ID == s.selection,
			Hovered:     n.ID == s.hover,
			Pinned:      n.Pinned(),
		})
	}

	sc.Edges = make([]SceneEdge, 0, len(s.current.Edges))
	for i := range s.current.Edges {
		e := &s.current.Edges[i]
		a, ok1 := pos[e.Source]
		b, ok2 := pos[e.Target]
		if !ok1 || !ok2 {
			continue
		}
		on := s.highlight.HasEdge(e.ID)
		sc.Edges = append(sc.Edges, SceneEdge{
			ID:           e.ID,
			Label:        e.Label,
			Type:         e.Type,
			Weight:       e.Weight,
			X1:           a[0],
			Y1:           a[1],
			X2:           b[0],
			Y2:           b[1],
			TargetRadius: radius,
			Highlighted:  on,
			Dimmed:       lit && !on,
		})
	}
	return sc
}

// Restart brings the simulation back to full energy without moving
// any node. It returns false when there is nothing to lay out.
func (s *Surface) Restart() bool {
	if s.sim == nil {
		return false
	}
	s.sim.Restart()
	return true
}
