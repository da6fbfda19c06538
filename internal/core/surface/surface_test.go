package surface

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgraph/internal/core/domain"
)

func chain() domain.KnowledgeGraph {
	g := domain.KnowledgeGraph{
		Nodes: []domain.GraphNode{
			{ID: "A", Label: "A", Type: "PERSON", Weight: 0.9},
			{ID: "B", Label: "B", Type: "ORG", Weight: 0.8},
			{ID: "C", Label: "C", Type: "LOC", Weight: 0.3},
		},
		Edges: []domain.GraphEdge{
			{ID: "ab", Source: "A", Target: "B", Type: "WORKS_AT", Weight: 0.9},
			{ID: "bc", Source: "B", Target: "C", Type: "LOCATED_IN", Weight: 0.7},
		},
	}
	g.RefreshMetadata(time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC))
	return g
}

func newSurface(t *testing.T) *Surface {
	t.Helper()
	s := New(OptionsFromSettings(domain.DefaultAppSettings()))
	s.SetGraph(chain())
	return s
}

func TestSurface_SelectNeighbourhood(t *testing.T) {
	s := newSurface(t)

	require.True(t, s.Select("B"))
	assert.Equal(t, []string{"A", "B", "C"}, s.Highlight().NodeIDs())
	assert.Equal(t, []string{"ab", "bc"}, s.Highlight().EdgeIDs())

	require.True(t, s.Select("A"))
	assert.Equal(t, []string{"A", "B"}, s.Highlight().NodeIDs())
	assert.Equal(t, []string{"ab"}, s.Highlight().EdgeIDs())
	assert.Equal(t, "A", s.Selection())
}

func TestSurface_SelectUnknown(t *testing.T) {
	s := newSurface(t)
	s.Select("A")

	assert.False(t, s.Select("nope"))
	assert.Equal(t, "A", s.Selection())
}

func TestSurface_HoverRevertsToSelection(t *testing.T) {
	s := newSurface(t)
	s.Select("A")

	require.True(t, s.HoverStart("C"))
	assert.Equal(t, []string{"B", "C"}, s.Highlight().NodeIDs())
	assert.Equal(t, "C", s.Hovered())

	s.HoverEnd()
	assert.Equal(t, []string{"A", "B"}, s.Highlight().NodeIDs())
	assert.Empty(t, s.Hovered())
}

func TestSurface_HoverWithoutSelectionClears(t *testing.T) {
	s := newSurface(t)

	s.HoverStart("B")
	assert.False(t, s.Highlight().Empty())

	s.HoverEnd()
	assert.True(t, s.Highlight().Empty())
}

func TestSurface_ClearHighlight(t *testing.T) {
	s := newSurface(t)
	s.Select("B")
	s.HoverStart("A")

	s.ClearHighlight()

	assert.True(t, s.Highlight().Empty())
	assert.Empty(t, s.Selection())
	for _, n := range s.Scene().Nodes {
		assert.False(t, n.Dimmed)
		assert.False(t, n.Highlighted)
	}
}

func TestSurface_SceneDimsOutsideHighlight(t *testing.T) {
	s := newSurface(t)
	s.Select("A")

	sc := s.Scene()

	byID := map[string]SceneNode{}
	for _, n := range sc.Nodes {
		byID[n.ID] = n
	}
	assert.True(t, byID["A"].Selected)
	assert.True(t, byID["B"].Highlighted)
	assert.True(t, byID["C"].Dimmed)
	require.Len(t, sc.Edges, 2)
	assert.True(t, sc.Edges[0].Highlighted)
	assert.True(t, sc.Edges[1].Dimmed)
}

func TestSurface_Drag(t *testing.T) {
	s := newSurface(t)
	for s.Tick(s.Generation()) {
	}
	require.False(t, s.Active())

	require.True(t, s.DragStart("B"))
	assert.True(t, s.Active(), "drag reheats")
	assert.Equal(t, "B", s.Dragging())

	s.DragMove(400, -200)
	s.Tick(s.Generation())
	b := graphNode(t, s, "B")
	assert.Equal(t, 400.0, b.X)
	assert.Equal(t, -200.0, b.Y)
	assert.True(t, b.Pinned())

	s.DragEnd()
	b = graphNode(t, s, "B")
	assert.False(t, b.Pinned())
	assert.Empty(t, s.Dragging())

	for i := 0; i < 5000 && s.Tick(s.Generation()); i++ {
	}
	assert.False(t, s.Active(), "energy decays after release")
}

func TestSurface_DragUnknown(t *testing.T) {
	s := newSurface(t)

	assert.False(t, s.DragStart("nope"))
	assert.NotPanics(t, func() {
		s.DragMove(1, 1)
		s.DragEnd()
	})
}

func TestSurface_StaleTickIgnored(t *testing.T) {
	s := newSurface(t)
	old := s.Generation()
	before := graphNode(t, s, "A")
	x := before.X

	next := s.SetGraph(chain())
	require.NotEqual(t, old, next)

	assert.False(t, s.Tick(old))
	after := graphNode(t, s, "A")
	assert.Equal(t, x, after.X, "stale tick moves nothing")
	assert.True(t, s.Tick(next))
}

func TestSurface_FilterRebuilds(t *testing.T) {
	s := newSurface(t)
	s.Select("B")
	gen := s.Generation()

	next := s.SetFilter(domain.FilterOptions{MinConfidence: 0.5})

	assert.Greater(t, next, gen)
	assert.Len(t, s.Graph().Nodes, 2)
	assert.Len(t, s.Graph().Edges, 1)
	assert.Len(t, s.Original().Nodes, 3, "original is retained")
	assert.Equal(t, []string{"A", "B"}, s.Highlight().NodeIDs(), "selection is recomputed")

	s.ResetFilter()
	assert.Len(t, s.Graph().Nodes, 3)
	assert.True(t, s.Filter().IsZero())
}

func TestSurface_FilterDropsSelection(t *testing.T) {
	s := newSurface(t)
	s.Select("C")

	s.SetFilter(domain.FilterOptions{NodeTypes: []string{"PERSON", "ORG"}})

	assert.Empty(t, s.Selection())
	assert.True(t, s.Highlight().Empty())
}

func TestSurface_Empty(t *testing.T) {
	s := New(Options{})
	assert.True(t, s.Empty())
	assert.True(t, s.Scene().Empty)

	s.SetGraph(chain())
	assert.False(t, s.Empty())

	gen := s.SetFilter(domain.FilterOptions{SearchQuery: "zzz"})
	assert.True(t, s.Empty())
	assert.False(t, s.Active())
	assert.False(t, s.Tick(gen))
	assert.True(t, s.Scene().Empty)
}

func TestSurface_ZoomBounds(t *testing.T) {
	s := newSurface(t)

	for range 50 {
		s.Zoom(2, 0, 0)
	}
	assert.Equal(t, MaxScale, s.Transform().Scale)

	for range 50 {
		s.Zoom(0.5, 0, 0)
	}
	assert.Equal(t, MinScale, s.Transform().Scale)
}

func TestSurface_ZoomKeepsAnchor(t *testing.T) {
	s := newSurface(t)
	s.SetTransform(Transform{Scale: 1, X: 10, Y: 20})
	wx, wy := s.ScreenToWorld(50, 60)

	s.Zoom(2, 50, 60)

	gx, gy := s.ScreenToWorld(50, 60)
	assert.InDelta(t, wx, gx, 1e-9)
	assert.InDelta(t, wy, gy, 1e-9)
	assert.Equal(t, 2.0, s.Transform().Scale)
}

func TestSurface_Pan(t *testing.T) {
	s := newSurface(t)

	s.Pan(5, -3)

	assert.Equal(t, Transform{Scale: 1, X: 5, Y: -3}, s.Transform())
}

func TestSurface_NodeAt(t *testing.T) {
	s := newSurface(t)
	s.SetTransform(Transform{Scale: 2, X: 100, Y: 50})
	b := graphNode(t, s, "B")
	sx, sy := s.Transform().Apply(b.X, b.Y)

	id, ok := s.NodeAt(sx+1, sy-1)
	require.True(t, ok)
	assert.Equal(t, "B", id)

	_, ok = s.NodeAt(sx+10000, sy)
	assert.False(t, ok)
}

func TestSurface_Fit(t *testing.T) {
	s := newSurface(t)
	for s.Tick(s.Generation()) {
	}

	s.Fit(80, 48)

	for _, n := range s.Scene().Nodes {
		assert.GreaterOrEqual(t, n.X, 0.0)
		assert.LessOrEqual(t, n.X, 80.0)
		assert.GreaterOrEqual(t, n.Y, 0.0)
		assert.LessOrEqual(t, n.Y, 48.0)
	}
}

func TestSurface_Toggles(t *testing.T) {
	s := newSurface(t)
	require.True(t, s.Options().ShowLabels)

	assert.False(t, s.ToggleLabels())
	assert.False(t, s.Scene().ShowLabels)
	assert.False(t, s.ToggleArrows())
	assert.True(t, s.ToggleArrows())
}

func TestTransform_RoundTrip(t *testing.T) {
	tr := Transform{Scale: 0.5, X: 12, Y: -7}
	x, y := tr.Apply(30, 40)
	wx, wy := tr.Invert(x, y)

	assert.InDelta(t, 30, wx, 1e-9)
	assert.InDelta(t, 40, wy, 1e-9)
	assert.Equal(t, tr, tr.ZoomAt(0, 1, 1), "invalid factor is ignored")
}

func TestSurface_Restart(t *testing.T) {
	s := newSurface(t)
	for s.Tick(s.Generation()) {
	}
	require.False(t, s.Active())

	require.True(t, s.Restart())
	assert.True(t, s.Active())

	empty := New(Options{})
	assert.False(t, empty.Restart())
}

// graphNode returns a copy of the current node with id.
func graphNode(t *testing.T, s *Surface, id string) domain.GraphNode {
	t.Helper()
	g := s.Graph()
	n, ok := g.Node(id)
	require.True(t, ok, "node %s", id)
	return *n
}

func TestSurface_FilterKeepsOriginalIntact(t *testing.T) {
	s := newSurface(t)
	total := len(s.Graph().Nodes)

	s.SetFilter(domain.FilterOptions{SearchQuery: "A"})
	filtered := graphNode(t, s, "A")
	assert.Equal(t, "A", filtered.ID)
	assert.Less(t, len(s.Graph().Nodes), total)

	s.ResetFilter()
	assert.Len(t, s.Graph().Nodes, total)
}
