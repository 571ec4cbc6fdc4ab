package perspgrid

import (
	"math"

	"golang.org/x/sync/errgroup"
)

// Config is the one record a front-end hands to the engine. Numeric
// fields are validated by the component constructors; the core never
// fills in partial input, so defaulting (for example from a preset)
// is the caller's job.
type Config struct {
	LayoutKind     LayoutKind         `json:"layout_kind"`
	PanelWidth     float64            `json:"panel_width"`
	PanelHeight    float64            `json:"panel_height"`
	RoomScale      *RoomScale         `json:"room_scale,omitempty"`
	CameraPosition Vector3            `json:"camera_position"`
	CameraTarget   Vector3            `json:"camera_target"`
	CameraUp       Vector3            `json:"camera_up,omitempty"` // zero means world up
	FOVDegrees     float64            `json:"fov_degrees"`
	ProjectionMode ProjectionMode     `json:"projection_mode"`
	Near           float64            `json:"near"`
	Far            float64            `json:"far"`
	GridDensity    float64            `json:"grid_density"`
	PanelDensities map[string]float64 `json:"panel_densities,omitempty"` // per-panel override by label
	CanvasWidth    int                `json:"canvas_width"`
	CanvasHeight   int                `json:"canvas_height"`
	MinLineLength  float64            `json:"min_line_length,omitempty"` // pixels; 0 keeps everything
}

// DefaultConfig is the standard corner-room preset: a 6x6 three-panel
// room viewed from slightly above and back.
func DefaultConfig() Config {
	return Config{
		LayoutKind:     ThreePanel,
		PanelWidth:     6,
		PanelHeight:    6,
		CameraPosition: Vector3{X: 0, Y: 4, Z: 8},
		CameraTarget:   Vector3{},
		FOVDegrees:     50,
		ProjectionMode: Perspective,
		Near:           0.1,
		Far:            100,
		GridDensity:    0.5,
		CanvasWidth:    1920,
		CanvasHeight:   1080,
	}
}

// PanelGrid is one panel's projected output: its clipped lines and its
// own boundary polygon in canvas space, for renderers that need to fill
// or clip further.
type PanelGrid struct {
	Label    string       `json:"label"`
	Lines    []GridLine2D `json:"lines"`
	Boundary []Point2     `json:"boundary"`
}

// Rect is an axis-aligned canvas-space box.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// SceneGrid is the final output handed to renderer collaborators:
// geometrically final, already clipped, canvas-space coordinates. No
// further geometric computation is needed downstream.
type SceneGrid struct {
	Panels       map[string]PanelGrid `json:"panels"`
	Order        []string             `json:"order"`  // deterministic panel ordering
	Bounds       Rect                 `json:"bounds"` // canvas area actually used
	CanvasWidth  int                  `json:"canvas_width"`
	CanvasHeight int                  `json:"canvas_height"`
}

// edgeKey identifies a 3D boundary edge independent of direction, with
// endpoints quantized at the degeneracy tolerance.
type edgeKey struct {
	ax, ay, az int64
	bx, by, bz int64
}

func quantize(f float64) int64 {
	return int64(math.Round(f / epsilon))
}

func newEdgeKey(a, b Vector3) edgeKey {
	qa := [3]int64{quantize(a.X), quantize(a.Y), quantize(a.Z)}
	qb := [3]int64{quantize(b.X), quantize(b.Y), quantize(b.Z)}
	for i := range qa {
		if qa[i] != qb[i] {
			if qa[i] > qb[i] {
				qa, qb = qb, qa
			}
			break
		}
	}
	return edgeKey{qa[0], qa[1], qa[2], qb[0], qb[1], qb[2]}
}

// dedupeBoundaryEdges drops boundary lines whose 3D edge was already
// emitted by an earlier panel, so a shared edge appears exactly once in
// the scene. Interior lines pass through untouched.
func dedupeBoundaryEdges(lines []GridLine3, seen map[edgeKey]struct{}) []GridLine3 {
	out := make([]GridLine3, 0, len(lines))
	for _, ln := range lines {
		if ln.Boundary {
			k := newEdgeKey(ln.Start, ln.End)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
		}
		out = append(out, ln)
	}
	return out
}

// GenerateSceneGrid runs the full pipeline: layout build, per-panel
// sampling, projection, clipping. The pipeline is a pure function of
// the config — identical input always yields an identical SceneGrid.
func GenerateSceneGrid(cfg Config) (*SceneGrid, error) {
	panels, err := BuildLayout(cfg.LayoutKind, cfg.PanelWidth, cfg.PanelHeight, cfg.RoomScale)
	if err != nil {
		return nil, err
	}
	cam, err := NewCamera(cfg.CameraPosition, cfg.CameraTarget, cfg.CameraUp,
		cfg.FOVDegrees, cfg.Near, cfg.Far, cfg.ProjectionMode)
	if err != nil {
		return nil, err
	}
	pr, err := newProjector(cam, cfg.CanvasWidth, cfg.CanvasHeight)
	if err != nil {
		return nil, err
	}

	// Sample serially in layout order so shared boundary edges dedupe
	// deterministically: the first panel that owns an edge keeps it.
	sampled := make([][]GridLine3, len(panels))
	seen := make(map[edgeKey]struct{})
	for i := range panels {
		density := cfg.GridDensity
		if d, ok := cfg.PanelDensities[panels[i].Label]; ok {
			panels[i].Density = d
		}
		if panels[i].Density > 0 {
			density = panels[i].Density
		}
		lines, err := SamplePanel(panels[i], density)
		if err != nil {
			return nil, err
		}
		sampled[i] = dedupeBoundaryEdges(lines, seen)
	}

	// Panels are independent past sampling; project them in parallel
	// and assemble in layout order.
	grids := make([]PanelGrid, len(panels))
	var g errgroup.Group
	for i := range panels {
		i := i
		g.Go(func() error {
			boundary := pr.projectBoundary(panels[i])
			grids[i] = PanelGrid{
				Label:    panels[i].Label,
				Lines:    pr.projectLines(panels[i], sampled[i], boundary, cfg.MinLineLength),
				Boundary: boundary,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sg := &SceneGrid{
		Panels:       make(map[string]PanelGrid, len(grids)),
		Order:        make([]string, 0, len(grids)),
		CanvasWidth:  cfg.CanvasWidth,
		CanvasHeight: cfg.CanvasHeight,
	}
	bounds := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	used := false
	for _, pg := range grids {
		sg.Order = append(sg.Order, pg.Label)
		sg.Panels[pg.Label] = pg
		for _, ln := range pg.Lines {
			for _, pt := range []Point2{ln.Start, ln.End} {
				bounds.MinX = minFloat(bounds.MinX, pt.X)
				bounds.MinY = minFloat(bounds.MinY, pt.Y)
				bounds.MaxX = maxFloat(bounds.MaxX, pt.X)
				bounds.MaxY = maxFloat(bounds.MaxY, pt.Y)
			}
			used = true
		}
	}
	if used {
		sg.Bounds = bounds
	}
	return sg, nil
}

// Stats summarizes a generated grid for front-ends that report line
// counts.
type Stats struct {
	TotalLines int
	PerPanel   map[string]int
	Horizontal int
	Vertical   int
	Boundary   int
}

func (sg *SceneGrid) Stats() Stats {
	s := Stats{PerPanel: make(map[string]int, len(sg.Panels))}
	for _, label := range sg.Order {
		pg := sg.Panels[label]
		s.PerPanel[label] = len(pg.Lines)
		s.TotalLines += len(pg.Lines)
		for _, ln := range pg.Lines {
			if ln.Boundary {
				s.Boundary++
				continue
			}
			if ln.Axis == AxisVertical {
				s.Vertical++
			} else {
				s.Horizontal++
			}
		}
	}
	return s
}
