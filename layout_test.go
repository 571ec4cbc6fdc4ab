package perspgrid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildLayoutVariants(t *testing.T) {
	testCases := []struct {
		name   string
		kind   LayoutKind
		labels []string
	}{
		{"three panel", ThreePanel, []string{LabelFloor, LabelWallLeft, LabelWallRight}},
		{"four panel", FourPanel, []string{LabelFloor, LabelWallLeft, LabelWallRight, LabelCeiling}},
		{"five panel", FivePanel, []string{LabelFloor, LabelWallLeft, LabelWallRight, LabelCeiling, LabelWallBack}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			panels, err := BuildLayout(tc.kind, 6, 6, nil)
			require.NoError(t, err)
			require.Len(t, panels, len(tc.labels))
			for i, p := range panels {
				require.Equal(t, tc.labels[i], p.Label)
			}
		})
	}
}

// Larger variants extend the smaller ones rather than rebuilding: the
// five-panel room starts with the four-panel room's panels, which start
// with the three-panel room's.
func TestBuildLayoutComposition(t *testing.T) {
	three, err := BuildLayout(ThreePanel, 6, 6, nil)
	require.NoError(t, err)
	four, err := BuildLayout(FourPanel, 6, 6, nil)
	require.NoError(t, err)
	five, err := BuildLayout(FivePanel, 6, 6, nil)
	require.NoError(t, err)

	require.Equal(t, three, four[:3])
	require.Equal(t, four, five[:4])
}

func TestBuildLayoutInvalidDimensions(t *testing.T) {
	testCases := []struct {
		name   string
		width  float64
		height float64
		scale  *RoomScale
	}{
		{"negative width", -1, 6, nil},
		{"zero height", 6, 0, nil},
		{"zero depth scale", 6, 6, &RoomScale{Width: 1, Height: 1, Depth: 0}},
		{"negative width scale", 6, 6, &RoomScale{Width: -2, Height: 1, Depth: 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildLayout(ThreePanel, tc.width, tc.height, tc.scale)
			require.ErrorIs(t, err, ErrInvalidLayoutDimensions)
		})
	}
}

// Every panel must be a planar convex quad with a consistent corner
// winding, or downstream boundary clipping breaks silently.
func TestPanelGeometryInvariants(t *testing.T) {
	for _, kind := range []LayoutKind{ThreePanel, FourPanel, FivePanel} {
		panels, err := BuildLayout(kind, 6, 4, &RoomScale{Width: 1, Height: 1, Depth: 1.5})
		require.NoError(t, err)

		for _, p := range panels {
			t.Run(kind.String()+"/"+p.Label, func(t *testing.T) {
				if !almostEqual(p.Normal.Length(), 1) {
					t.Errorf("normal %v is not unit length", p.Normal)
				}

				u := p.Corners[1].Sub(p.Corners[0])
				v := p.Corners[3].Sub(p.Corners[0])
				cross := u.Cross(v)

				// Coplanar: the diagonal corner lies in the plane spanned
				// by the first three.
				diag := p.Corners[2].Sub(p.Corners[0])
				if d := diag.Dot(cross.Normalize()); !almostEqual(d, 0) {
					t.Errorf("corner 2 is %f off the panel plane", d)
				}

				// Corner order is chosen so u x v points out of the room,
				// opposite the inward normal.
				if cross.Dot(p.Normal) >= 0 {
					t.Errorf("winding: cross %v does not oppose normal %v", cross, p.Normal)
				}

				// Convex: consecutive edge cross products all share the
				// plane normal's direction.
				ref := cross.Normalize()
				for i := 0; i < 4; i++ {
					e1 := p.Corners[(i+1)%4].Sub(p.Corners[i])
					e2 := p.Corners[(i+2)%4].Sub(p.Corners[(i+1)%4])
					if e1.Cross(e2).Dot(ref) <= 0 {
						t.Errorf("corner %d breaks convexity", (i+1)%4)
					}
				}
			})
		}
	}
}

func TestLayoutBoundsAndCenter(t *testing.T) {
	panels, err := BuildLayout(ThreePanel, 6, 6, nil)
	require.NoError(t, err)

	b := LayoutBounds(panels)
	require.True(t, almostEqualVec(b.Min, Vector3{}), "min = %v", b.Min)
	require.True(t, almostEqualVec(b.Max, Vector3{6, 6, 6}), "max = %v", b.Max)
	require.True(t, almostEqualVec(LayoutCenter(panels), Vector3{3, 3, 3}))
}

func TestRoomScaleStretchesBox(t *testing.T) {
	panels, err := BuildLayout(FivePanel, 6, 6, &RoomScale{Width: 2, Height: 1, Depth: 0.5})
	require.NoError(t, err)
	b := LayoutBounds(panels)
	require.True(t, almostEqualVec(b.Max, Vector3{12, 6, 3}), "max = %v", b.Max)
}

// The suggested viewpoint must see the whole room: standing outside the
// corner, looking toward where the walls meet.
func TestOptimalCameraSuggestion(t *testing.T) {
	panels, err := BuildLayout(ThreePanel, 6, 6, nil)
	require.NoError(t, err)

	pos := OptimalCameraPosition(panels)
	target := OptimalCameraTarget(panels)
	require.True(t, almostEqualVec(pos, Vector3{-3, 2.4, -3}), "position = %v", pos)
	require.True(t, almostEqualVec(target, Vector3{4.8, 1.8, 4.8}), "target = %v", target)

	cam, err := NewCamera(pos, target, Vector3{}, 50, 0.1, 100, Perspective)
	require.NoError(t, err)
	_, err = cam.ViewMatrix()
	require.NoError(t, err)
}

func TestLayoutKindJSON(t *testing.T) {
	for _, kind := range []LayoutKind{ThreePanel, FourPanel, FivePanel} {
		data, err := kind.MarshalJSON()
		require.NoError(t, err)
		var back LayoutKind
		require.NoError(t, back.UnmarshalJSON(data))
		require.Equal(t, kind, back)
	}
	var k LayoutKind
	require.Error(t, k.UnmarshalJSON([]byte(`"six_panel"`)))
}
