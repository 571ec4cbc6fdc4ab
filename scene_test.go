package perspgrid

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestGenerateSceneGridStandardPreset(t *testing.T) {
	scene, err := GenerateSceneGrid(DefaultConfig())
	require.NoError(t, err)

	require.Equal(t, []string{LabelFloor, LabelWallLeft, LabelWallRight}, scene.Order)
	require.Len(t, scene.Panels, 3)

	// The floor and right wall face the default camera squarely; the
	// left wall is viewed edge-on and may legitimately be empty.
	require.NotEmpty(t, scene.Panels[LabelFloor].Lines)
	require.NotEmpty(t, scene.Panels[LabelWallRight].Lines)

	for _, label := range scene.Order {
		for _, ln := range scene.Panels[label].Lines {
			for _, pt := range []Point2{ln.Start, ln.End} {
				require.GreaterOrEqual(t, pt.X, -float64EqualityThreshold, "panel %s", label)
				require.LessOrEqual(t, pt.X, 1920+float64EqualityThreshold, "panel %s", label)
				require.GreaterOrEqual(t, pt.Y, -float64EqualityThreshold, "panel %s", label)
				require.LessOrEqual(t, pt.Y, 1080+float64EqualityThreshold, "panel %s", label)
			}
			require.Equal(t, label, ln.Panel)
		}
	}

	require.GreaterOrEqual(t, scene.Bounds.MinX, -float64EqualityThreshold)
	require.LessOrEqual(t, scene.Bounds.MaxX, 1920+float64EqualityThreshold)
	require.GreaterOrEqual(t, scene.Bounds.MinY, -float64EqualityThreshold)
	require.LessOrEqual(t, scene.Bounds.MaxY, 1080+float64EqualityThreshold)
}

// Generation is a pure function of the config, including across the
// parallel per-panel projection.
func TestGenerateSceneGridDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LayoutKind = FivePanel
	cfg.GridDensity = 1

	first, err := GenerateSceneGrid(cfg)
	require.NoError(t, err)
	second, err := GenerateSceneGrid(cfg)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("scene grids differ between runs (-first +second):\n%s", diff)
	}
}

func TestGenerateSceneGridErrorPropagation(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "camera at target",
			mutate:  func(c *Config) { c.CameraTarget = c.CameraPosition },
			wantErr: ErrInvalidCameraConfig,
		},
		{
			name:    "zero canvas width",
			mutate:  func(c *Config) { c.CanvasWidth = 0 },
			wantErr: ErrInvalidCameraConfig,
		},
		{
			name:    "negative panel width",
			mutate:  func(c *Config) { c.PanelWidth = -1 },
			wantErr: ErrInvalidLayoutDimensions,
		},
		{
			name:    "zero density",
			mutate:  func(c *Config) { c.GridDensity = 0 },
			wantErr: ErrInvalidDensity,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			_, err := GenerateSceneGrid(cfg)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

// A shared room edge belongs to the first panel that owns it in layout
// order; later panels drop their copy.
func TestDedupeBoundaryEdges(t *testing.T) {
	panels, err := BuildLayout(ThreePanel, 6, 6, nil)
	require.NoError(t, err)

	countBoundary := func(lines []GridLine3) int {
		n := 0
		for _, ln := range lines {
			if ln.Boundary {
				n++
			}
		}
		return n
	}

	seen := make(map[edgeKey]struct{})

	floorLines, err := SamplePanel(panels[0], 0.5)
	require.NoError(t, err)
	floorLines = dedupeBoundaryEdges(floorLines, seen)
	require.Equal(t, 4, countBoundary(floorLines))

	// The left wall shares its bottom edge with the floor.
	leftLines, err := SamplePanel(panels[1], 0.5)
	require.NoError(t, err)
	leftLines = dedupeBoundaryEdges(leftLines, seen)
	require.Equal(t, 3, countBoundary(leftLines))
}

// The five-panel box has 12 distinct edges; 8 of the 20 per-panel edges
// are shared with an earlier panel.
func TestDedupeBoundaryEdgesFullRoom(t *testing.T) {
	panels, err := BuildLayout(FivePanel, 6, 6, nil)
	require.NoError(t, err)

	seen := make(map[edgeKey]struct{})
	total := 0
	for _, p := range panels {
		lines, err := SamplePanel(p, 0.5)
		require.NoError(t, err)
		for _, ln := range dedupeBoundaryEdges(lines, seen) {
			if ln.Boundary {
				total++
			}
		}
	}
	require.Equal(t, 12, total)
}

func TestEdgeKeyIgnoresDirection(t *testing.T) {
	a := Vector3{0, 0, 0}
	b := Vector3{6, 0, 0}
	require.Equal(t, newEdgeKey(a, b), newEdgeKey(b, a))
	require.NotEqual(t, newEdgeKey(a, b), newEdgeKey(a, Vector3{6, 0, 1e-3}))
}

func TestPanelDensityOverride(t *testing.T) {
	base := DefaultConfig()
	plain, err := GenerateSceneGrid(base)
	require.NoError(t, err)

	dense := base
	dense.PanelDensities = map[string]float64{LabelFloor: 1}
	overridden, err := GenerateSceneGrid(dense)
	require.NoError(t, err)

	require.Greater(t,
		len(overridden.Panels[LabelFloor].Lines),
		len(plain.Panels[LabelFloor].Lines),
		"denser floor should project more lines")

	// Other panels are untouched by the override.
	for _, label := range []string{LabelWallLeft, LabelWallRight} {
		require.Equal(t,
			len(plain.Panels[label].Lines),
			len(overridden.Panels[label].Lines),
			"panel %s changed without an override", label)
	}
}

func TestSceneGridStats(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LayoutKind = FourPanel
	scene, err := GenerateSceneGrid(cfg)
	require.NoError(t, err)

	s := scene.Stats()
	sum := 0
	for _, label := range scene.Order {
		require.Equal(t, len(scene.Panels[label].Lines), s.PerPanel[label])
		sum += s.PerPanel[label]
	}
	require.Equal(t, sum, s.TotalLines)
	require.Equal(t, s.TotalLines, s.Horizontal+s.Vertical+s.Boundary)
}

func TestConfigJSONRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LayoutKind = FivePanel
	cfg.ProjectionMode = Orthographic
	cfg.RoomScale = &RoomScale{Width: 2, Height: 1, Depth: 0.5}
	cfg.PanelDensities = map[string]float64{LabelFloor: 1.5}

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	var back Config
	require.NoError(t, json.Unmarshal(data, &back))
	if diff := cmp.Diff(cfg, back); diff != "" {
		t.Errorf("config changed across JSON round trip (-in +out):\n%s", diff)
	}
}

func TestSceneGridJSONRoundTrip(t *testing.T) {
	scene, err := GenerateSceneGrid(DefaultConfig())
	require.NoError(t, err)

	data, err := json.Marshal(scene)
	require.NoError(t, err)

	var back SceneGrid
	require.NoError(t, json.Unmarshal(data, &back))
	if diff := cmp.Diff(*scene, back); diff != "" {
		t.Errorf("scene grid changed across JSON round trip (-in +out):\n%s", diff)
	}
}
