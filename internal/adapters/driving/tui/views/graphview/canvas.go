package graphview

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/kgraph/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kgraph/internal/core/domain"
	"github.com/custodia-labs/kgraph/internal/core/surface"
)

// Screen units map to terminal cells as x = column and y = 2 * row,
// which keeps the layout roughly isotropic on cells twice as tall as wide.
const rowScale = 2

// Layers decide which glyph wins when two writes land on the same cell.
const (
	layerEdge = iota + 1
	layerArrow
	layerLabel
	layerNode
)

type cell struct {
	r     rune
	style int
	layer int
}

// canvas is a fixed-size grid of styled runes.
type canvas struct {
	w, h   int
	cells  []cell
	styles []lipgloss.Style
	index  map[string]int
}

func newCanvas(w, h int) *canvas {
	w, h = max(w, 0), max(h, 0)
	return &canvas{
		w:      w,
		h:      h,
		cells:  make([]cell, w*h),
		styles: []lipgloss.Style{lipgloss.NewStyle()},
		index:  map[string]int{"": 0},
	}
}

// style interns a style under key and returns its index.
func (c *canvas) style(key string, st lipgloss.Style) int {
	if i, ok := c.index[key]; ok {
		return i
	}
	c.styles = append(c.styles, st)
	c.index[key] = len(c.styles) - 1
	return len(c.styles) - 1
}

func (c *canvas) set(col, row int, r rune, style, layer int) {
	if col < 0 || row < 0 || col >= c.w || row >= c.h {
		return
	}
	p := &c.cells[row*c.w+col]
	if layer < p.layer {
		return
	}
	*p = cell{r: r, style: style, layer: layer}
}

// line draws a Bresenham line between two cells.
func (c *canvas) line(c0, r0, c1, r1 int, glyph rune, style, layer int) {
	dc := abs(c1 - c0)
	dr := -abs(r1 - r0)
	sc, sr := sign(c1-c0), sign(r1-r0)
	e := dc + dr
	for {
		c.set(c0, r0, glyph, style, layer)
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

// text writes s starting at (col, row), clipped to the canvas.
func (c *canvas) text(col, row int, s string, style, layer int) {
	for _, r := range s {
		c.set(col, row, r, style, layer)
		col++
	}
}

// String renders the canvas, merging runs of equally styled cells.
func (c *canvas) String() string {
	var b strings.Builder
	var run strings.Builder
	for row := 0; row < c.h; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		cur := -1
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur <= 0 {
				b.WriteString(run.String())
			} else {
				b.WriteString(c.styles[cur].Render(run.String()))
			}
			run.Reset()
		}
		for col := 0; col < c.w; col++ {
			p := c.cells[row*c.w+col]
			r := p.r
			if r == 0 {
				r = ' '
			}
			if p.style != cur {
				flush()
				cur = p.style
			}
			run.WriteRune(r)
		}
		flush()
	}
	return b.String()
}

// rasterise draws a scene onto a canvas of the given cell size.
func rasterise(sc surface.Scene, st *styles.Styles, w, h int) *canvas {
	c := newCanvas(w, h)
	if sc.Empty {
		return c
	}

	edge := c.style("edge", st.Edge)
	edgeLit := c.style("edge-lit", st.EdgeLit)
	dim := c.style("dim", st.Dimmed)
	label := c.style("label", st.Label)
	labelLit := c.style("label-lit", st.LabelLit)
	selected := c.style("selected", st.SelectedDot)

	for i := range sc.Edges {
		e := &sc.Edges[i]
		style := edge
		switch {
		case e.Highlighted:
			style = edgeLit
		case e.Dimmed:
			style = dim
		}
		c0, r0 := toCell(e.X1, e.Y1)
		c1, r1 := toCell(e.X2, e.Y2)
		c.line(c0, r0, c1, r1, lineGlyph(e.X2-e.X1, e.Y2-e.Y1), style, layerEdge)

		if sc.ShowArrows {
			if ac, ar, ok := arrowCell(e); ok {
				c.set(ac, ar, arrowGlyph(e.X2-e.X1, e.Y2-e.Y1), style, layerArrow)
			}
		}
	}

	for i := range sc.Nodes {
		n := &sc.Nodes[i]
		col, row := toCell(n.X, n.Y)

		var style int
		switch {
		case n.Selected:
			style = selected
		case n.Dimmed:
			style = dim
		default:
			style = c.style("node:"+n.Type, st.Node(n.Type))
		}
		c.set(col, row, nodeGlyph(n), style, layerNode)

		if sc.ShowLabels && n.Label != "" && !n.Dimmed {
			ls := label
			if n.Highlighted || n.Hovered {
				ls = labelLit
			}
			c.text(col+2, row, n.Label, ls, layerLabel)
		}
	}
	return c
}

func toCell(x, y float64) (int, int) {
	return int(math.Round(x)), int(math.Round(y / rowScale))
}

// arrowCell places the arrowhead just outside the target node's rim.
func arrowCell(e *surface.SceneEdge) (int, int, bool) {
	dx, dy := e.X2-e.X1, e.Y2-e.Y1
	d := math.Hypot(dx, dy)
	back := math.Max(e.TargetRadius, rowScale) + 1
	if d <= back {
		return 0, 0, false
	}
	x := e.X2 - dx/d*back
	y := e.Y2 - dy/d*back
	col, row := toCell(x, y)
	return col, row, true
}

func lineGlyph(dx, dy float64) rune {
	dy /= rowScale
	switch {
	case math.Abs(dy) < math.Abs(dx)*0.4:
		return '─'
	case math.Abs(dx) < math.Abs(dy)*0.4:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func arrowGlyph(dx, dy float64) rune {
	// Screen y grows downwards; flip it so the angle reads counter-clockwise.
	a := math.Atan2(-dy, dx)
	octant := int(math.Round(a/(math.Pi/4))+8) % 8
	return []rune("→↗↑↖←↙↓↘")[octant]
}

func nodeGlyph(n *surface.SceneNode) rune {
	switch {
	case n.Selected:
		return '◉'
	case n.Pinned:
		return '◆'
	case n.Type == domain.NodeTypeInferred:
		return '○'
	default:
		return '●'
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
