package surface

// SceneNode is a node in screen coordinates.
type SceneNode struct {
	ID     string
	Label  string
	Type   string
	Weight float64
	X, Y   float64
	Radius float64

	Highlighted bool
	Dimmed      bool
	Selected    bool
	Hovered     bool
	Pinned      bool
}

// SceneEdge is an edge in screen coordinates.
type SceneEdge struct {
	ID     string
	Label  string
	Type   string
	Weight float64

	X1, Y1 float64
	X2, Y2 float64

	// TargetRadius is the on-screen radius of the target node, used to
	// stop arrowheads at the node's rim.
	TargetRadius float64

	Highlighted bool
	Dimmed      bool
}

// Scene is a render-ready snapshot of the surface.
type Scene struct {
	// Empty is set when there is nothing to lay out. Renderers show a
	// placeholder instead of the graph.
	Empty bool

	Nodes []SceneNode
	Edges []SceneEdge

	ShowLabels bool
	ShowArrows bool
	Scale      float64
	Generation uint64
	Active     bool
}
