package perspgrid

// PanelKind classifies a panel surface.
type PanelKind int

const (
	KindFloor PanelKind = iota
	KindWall
	KindCeiling
)

func (k PanelKind) String() string {
	switch k {
	case KindFloor:
		return "floor"
	case KindWall:
		return "wall"
	case KindCeiling:
		return "ceiling"
	}
	return "unknown"
}

// Panel is one planar convex quadrilateral surface of the room.
// Corners are ordered consistently across all panels (the cross product
// of the corner[0]->corner[1] and corner[0]->corner[3] edges points out
// of the room), so boundary clipping can treat the projected polygon as
// convex without re-sorting. Panels are immutable once built; the grid
// generator only reads them.
type Panel struct {
	Label   string
	Corners [4]Vector3
	Normal  Vector3 // unit normal pointing into the room
	Kind    PanelKind
	Density float64 // grid density override; 0 inherits the global default
}

// Center returns the centroid of the four corners.
func (p Panel) Center() Vector3 {
	return p.Corners[0].
		Add(p.Corners[1]).
		Add(p.Corners[2]).
		Add(p.Corners[3]).
		Scale(0.25)
}

// edgeFrame returns the panel's two local edge directions and lengths:
// u runs corner[0]->corner[1], v runs corner[0]->corner[3].
func (p Panel) edgeFrame() (u, v Vector3, uLen, vLen float64) {
	ue := p.Corners[1].Sub(p.Corners[0])
	ve := p.Corners[3].Sub(p.Corners[0])
	return ue.Normalize(), ve.Normalize(), ue.Length(), ve.Length()
}

// Bounds3 is an axis-aligned box in world space.
type Bounds3 struct {
	Min Vector3 `json:"min"`
	Max Vector3 `json:"max"`
}

// Union expands the box to cover o.
func (b Bounds3) Union(o Bounds3) Bounds3 {
	return Bounds3{
		Min: Vector3{minFloat(b.Min.X, o.Min.X), minFloat(b.Min.Y, o.Min.Y), minFloat(b.Min.Z, o.Min.Z)},
		Max: Vector3{maxFloat(b.Max.X, o.Max.X), maxFloat(b.Max.Y, o.Max.Y), maxFloat(b.Max.Z, o.Max.Z)},
	}
}

// Center returns the box centroid.
func (b Bounds3) Center() Vector3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Bounds returns the axis-aligned bounding box of the corners.
func (p Panel) Bounds() Bounds3 {
	b := Bounds3{Min: p.Corners[0], Max: p.Corners[0]}
	for _, c := range p.Corners[1:] {
		b = b.Union(Bounds3{Min: c, Max: c})
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
