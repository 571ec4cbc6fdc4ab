package perspgrid

import (
	"encoding/json"
	"fmt"
)

// LayoutKind is the closed set of room variants. There is no layout
// hierarchy: each kind maps deterministically to a fixed panel set, and
// the larger builders reuse the smaller ones by composition.
type LayoutKind int

const (
	ThreePanel LayoutKind = iota
	FourPanel
	FivePanel
)

func (k LayoutKind) String() string {
	switch k {
	case ThreePanel:
		return "three_panel"
	case FourPanel:
		return "four_panel"
	case FivePanel:
		return "five_panel"
	}
	return fmt.Sprintf("LayoutKind(%d)", int(k))
}

func (k LayoutKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *LayoutKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "three_panel":
		*k = ThreePanel
	case "four_panel":
		*k = FourPanel
	case "five_panel":
		*k = FivePanel
	default:
		return fmt.Errorf("unknown layout kind %q", s)
	}
	return nil
}

// Panel labels emitted by the builders.
const (
	LabelFloor     = "Floor"
	LabelWallLeft  = "Wall-Left"
	LabelWallRight = "Wall-Right"
	LabelCeiling   = "Ceiling"
	LabelWallBack  = "Wall-Back"
)

// RoomScale optionally stretches the room box spanned by the panels.
// Width scales X, Height scales Y, Depth scales Z; all three must be
// positive when supplied.
type RoomScale struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// BuildLayout produces the panel set for the given room variant. The
// world origin is the floor corner where the two walls meet; the room
// box is panelWidth wide, panelHeight tall and panelWidth deep unless a
// RoomScale stretches it. Non-positive dimensions report
// ErrInvalidLayoutDimensions naming the parameter.
func BuildLayout(kind LayoutKind, panelWidth, panelHeight float64, scale *RoomScale) ([]Panel, error) {
	if panelWidth <= 0 {
		return nil, fmt.Errorf("%w: panel width %.3f", ErrInvalidLayoutDimensions, panelWidth)
	}
	if panelHeight <= 0 {
		return nil, fmt.Errorf("%w: panel height %.3f", ErrInvalidLayoutDimensions, panelHeight)
	}
	w, h, d := panelWidth, panelHeight, panelWidth
	if scale != nil {
		w *= scale.Width
		h *= scale.Height
		d *= scale.Depth
		if w <= 0 {
			return nil, fmt.Errorf("%w: room width %.3f", ErrInvalidLayoutDimensions, w)
		}
		if h <= 0 {
			return nil, fmt.Errorf("%w: room height %.3f", ErrInvalidLayoutDimensions, h)
		}
		if d <= 0 {
			return nil, fmt.Errorf("%w: room depth %.3f", ErrInvalidLayoutDimensions, d)
		}
	}

	switch kind {
	case ThreePanel:
		return threePanels(w, h, d), nil
	case FourPanel:
		return fourPanels(w, h, d), nil
	case FivePanel:
		return fivePanels(w, h, d), nil
	}
	return nil, fmt.Errorf("%w: unrecognized layout kind %d", ErrInvalidLayoutDimensions, kind)
}

// threePanels is the corner room: floor plus the two walls meeting at
// the shared vertical edge above the origin. Normals point into the
// room.
func threePanels(w, h, d float64) []Panel {
	floor := Panel{
		Label: LabelFloor,
		Corners: [4]Vector3{
			{0, 0, 0},
			{w, 0, 0},
			{w, 0, d},
			{0, 0, d},
		},
		Normal: Vector3{0, 1, 0},
		Kind:   KindFloor,
	}
	left := Panel{
		Label: LabelWallLeft,
		Corners: [4]Vector3{
			{0, 0, 0},
			{0, 0, d},
			{0, h, d},
			{0, h, 0},
		},
		Normal: Vector3{1, 0, 0},
		Kind:   KindWall,
	}
	right := Panel{
		Label: LabelWallRight,
		Corners: [4]Vector3{
			{w, 0, 0},
			{0, 0, 0},
			{0, h, 0},
			{w, h, 0},
		},
		Normal: Vector3{0, 0, 1},
		Kind:   KindWall,
	}
	return []Panel{floor, left, right}
}

// fourPanels reuses the three-panel builder and appends the ceiling.
func fourPanels(w, h, d float64) []Panel {
	ceiling := Panel{
		Label: LabelCeiling,
		Corners: [4]Vector3{
			{0, h, d},
			{w, h, d},
			{w, h, 0},
			{0, h, 0},
		},
		Normal: Vector3{0, -1, 0},
		Kind:   KindCeiling,
	}
	return append(threePanels(w, h, d), ceiling)
}

// fivePanels reuses the four-panel builder and appends the back wall at
// the far depth coordinate.
func fivePanels(w, h, d float64) []Panel {
	back := Panel{
		Label: LabelWallBack,
		Corners: [4]Vector3{
			{0, 0, d},
			{w, 0, d},
			{w, h, d},
			{0, h, d},
		},
		Normal: Vector3{0, 0, -1},
		Kind:   KindWall,
	}
	return append(fourPanels(w, h, d), back)
}

// LayoutBounds returns the axis-aligned box containing every panel.
func LayoutBounds(panels []Panel) Bounds3 {
	if len(panels) == 0 {
		return Bounds3{}
	}
	b := panels[0].Bounds()
	for _, p := range panels[1:] {
		b = b.Union(p.Bounds())
	}
	return b
}

// LayoutCenter returns the centroid of the full panel set's bounding
// box.
func LayoutCenter(panels []Panel) Vector3 {
	return LayoutBounds(panels).Center()
}

// OptimalCameraPosition suggests a viewpoint backed away from the
// corner at eye height, as if standing in the room looking at it.
func OptimalCameraPosition(panels []Panel) Vector3 {
	b := LayoutBounds(panels)
	return Vector3{
		X: b.Max.X * -0.5,
		Y: b.Max.Y * 0.4,
		Z: b.Max.Z * -0.5,
	}
}

// OptimalCameraTarget aims at the back corner where the walls meet.
func OptimalCameraTarget(panels []Panel) Vector3 {
	b := LayoutBounds(panels)
	return Vector3{
		X: b.Max.X * 0.8,
		Y: b.Max.Y * 0.3,
		Z: b.Max.Z * 0.8,
	}
}
