package layout

import (
	"math"

	"github.com/custodia-labs/kgraph/internal/core/domain"
)

// Defaults for a new simulation.
const (
	DefaultAlphaMin      = 0.001
	DefaultVelocityDecay = 0.4
	DefaultLinkDistance  = 100.0
	DefaultCharge        = -300.0
	DefaultDistanceMin   = 1.0

	// DragAlphaTarget is the energy target held while a node is dragged.
	DragAlphaTarget = 0.3

	initialRadius = 10.0
)

var initialAngle = math.Pi * (3 - math.Sqrt(5))

// Config holds the force parameters.
type Config struct {
	// LinkDistance is the rest length of every link.
	LinkDistance float64

	// ChargeStrength is the many-body strength. Negative values repel.
	ChargeStrength float64

	// CenterX and CenterY is the point the layout is centred on.
	CenterX float64
	CenterY float64
}

// DefaultConfig returns the d3 defaults with a repulsive charge.
func DefaultConfig() Config {
	return Config{
		LinkDistance:   DefaultLinkDistance,
		ChargeStrength: DefaultCharge,
	}
}

type link struct {
	source, target int
	strength       float64
	bias           float64
}

// Simulation moves the nodes of a graph in place.
//
// Edges are resolved to node indices once, when the simulation is built.
// Edges whose endpoints are not in the node slice are ignored.
type Simulation struct {
	nodes  []domain.GraphNode
	vx, vy []float64
	links  []link
	cfg    Config

	alpha         float64
	alphaMin      float64
	alphaDecay    float64
	alphaTarget   float64
	velocityDecay float64

	rng lcg
}

// New builds a simulation over nodes. Every unpinned node is placed on a
// phyllotaxis spiral around the centre; previous positions are not kept.
// The slice is retained and written to on every tick.
func New(nodes []domain.GraphNode, edges []domain.GraphEdge, cfg Config) *Simulation {
	s := &Simulation{
		nodes:         nodes,
		vx:            make([]float64, len(nodes)),
		vy:            make([]float64, len(nodes)),
		cfg:           cfg,
		alpha:         1,
		alphaMin:      DefaultAlphaMin,
		alphaDecay:    1 - math.Pow(DefaultAlphaMin, 1.0/300),
		velocityDecay: DefaultVelocityDecay,
		rng:           lcg(1),
	}
	if s.cfg.LinkDistance <= 0 {
		s.cfg.LinkDistance = DefaultLinkDistance
	}

	for i := range s.nodes {
		n := &s.nodes[i]
		if n.Pinned() {
			n.X, n.Y = *n.FX, *n.FY
			continue
		}
		r := initialRadius * math.Sqrt(0.5+float64(i))
		a := float64(i) * initialAngle
		n.X = cfg.CenterX + r*math.Cos(a)
		n.Y = cfg.CenterY + r*math.Sin(a)
	}

	s.links = resolveLinks(nodes, edges)
	return s
}

func resolveLinks(nodes []domain.GraphNode, edges []domain.GraphEdge) []link {
	idx := make(map[string]int, len(nodes))
	for i := range nodes {
		idx[nodes[i].ID] = i
	}

	links := make([]link, 0, len(edges))
	count := make([]int, len(nodes))
	for i := range edges {
		src, ok1 := idx[edges[i].Source]
		dst, ok2 := idx[edges[i].Target]
		if !ok1 || !ok2 {
			continue
		}
		links = append(links, link{source: src, target: dst})
		count[src]++
		count[dst]++
	}

	for i := range links {
		l := &links[i]
		cs, ct := count[l.source], count[l.target]
		l.strength = 1 / float64(min(cs, ct))
		l.bias = float64(cs) / float64(cs+ct)
	}
	return links
}

// Nodes returns the node slice the simulation writes to.
func (s *Simulation) Nodes() []domain.GraphNode {
	return s.nodes
}

// Alpha returns the current energy.
func (s *Simulation) Alpha() float64 {
	return s.alpha
}

// AlphaTarget returns the energy the simulation decays toward.
func (s *Simulation) AlphaTarget() float64 {
	return s.alphaTarget
}

// Active reports whether the simulation still has energy above AlphaMin.
func (s *Simulation) Active() bool {
	return s.alpha >= s.alphaMin
}

// Reheat sets the energy target. A positive target keeps the simulation
// moving; zero lets it decay back to rest.
func (s *Simulation) Reheat(target float64) {
	s.alphaTarget = target
	if target > 0 && s.alpha < s.alphaMin {
		s.alpha = s.alphaMin
	}
}

// Restart resets the energy to 1 without moving any node.
func (s *Simulation) Restart() {
	s.alpha = 1
}

// Tick advances the simulation one step and reports whether it is still
// active afterwards. It returns false without moving anything once the
// simulation has come to rest.
func (s *Simulation) Tick() bool {
	if !s.Active() {
		return false
	}

	s.alpha += (s.alphaTarget - s.alpha) * s.alphaDecay

	s.applyLinks()
	s.applyCharge()
	s.applyCenter()

	for i := range s.nodes {
		n := &s.nodes[i]
		if n.FX != nil {
			n.X = *n.FX
			s.vx[i] = 0
		} else {
			s.vx[i] *= 1 - s.velocityDecay
			n.X += s.vx[i]
		}
		if n.FY != nil {
			n.Y = *n.FY
			s.vy[i] = 0
		} else {
			s.vy[i] *= 1 - s.velocityDecay
			n.Y += s.vy[i]
		}
	}
	return s.Active()
}

// Settle ticks until the simulation comes to rest or limit ticks have run,
// and returns the number of ticks taken.
func (s *Simulation) Settle(limit int) int {
	ticks := 0
	for ticks < limit && s.Active() {
		s.Tick()
		ticks++
	}
	return ticks
}

func (s *Simulation) applyLinks() {
	for _, l := range s.links {
		src, dst := &s.nodes[l.source], &s.nodes[l.target]
		x := dst.X + s.vx[l.target] - src.X - s.vx[l.source]
		y := dst.Y + s.vy[l.target] - src.Y - s.vy[l.source]
		if x == 0 {
			x = s.rng.jiggle()
		}
		if y == 0 {
			y = s.rng.jiggle()
		}
		d := math.Sqrt(x*x + y*y)
		k := (d - s.cfg.LinkDistance) / d * s.alpha * l.strength
		x *= k
		y *= k

		s.vx[l.target] -= x * l.bias
		s.vy[l.target] -= y * l.bias
		s.vx[l.source] += x * (1 - l.bias)
		s.vy[l.source] += y * (1 - l.bias)
	}
}

// applyCharge is the exact pairwise form of the many-body force.
func (s *Simulation) applyCharge() {
	if s.cfg.ChargeStrength == 0 {
		return
	}
	minSq := DefaultDistanceMin * DefaultDistanceMin

	for i := range s.nodes {
		for j := range s.nodes {
			if i == j {
				continue
			}
			x := s.nodes[j].X - s.nodes[i].X
			y := s.nodes[j].Y - s.nodes[i].Y
			if x == 0 {
				x = s.rng.jiggle()
			}
			if y == 0 {
				y = s.rng.jiggle()
			}
			l := x*x + y*y
			if l < minSq {
				l = math.Sqrt(minSq * l)
			}
			w := s.cfg.ChargeStrength * s.alpha / l
			s.vx[i] += x * w
			s.vy[i] += y * w
		}
	}
}

func (s *Simulation) applyCenter() {
	if len(s.nodes) == 0 {
		return
	}
	var sx, sy float64
	for i := range s.nodes {
		sx += s.nodes[i].X
		sy += s.nodes[i].Y
	}
	n := float64(len(s.nodes))
	dx := sx/n - s.cfg.CenterX
	dy := sy/n - s.cfg.CenterY
	for i := range s.nodes {
		s.nodes[i].X -= dx
		s.nodes[i].Y -= dy
	}
}

// lcg is the linear congruential generator d3 uses for jiggle, so runs
// are reproducible.
type lcg uint32

func (g *lcg) next() float64 {
	*g = lcg(1664525*uint32(*g) + 1013904223)
	return float64(*g) / 4294967296
}

func (g *lcg) jiggle() float64 {
	return (g.next() - 0.5) * 1e-6
}
