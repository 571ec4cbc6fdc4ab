package perspgrid

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis tags a grid line's direction on the owning panel's local grid.
type Axis int

const (
	// AxisHorizontal lines run parallel to the corner[0]->corner[1]
	// edge; AxisVertical lines run parallel to corner[0]->corner[3].
	AxisHorizontal Axis = iota
	AxisVertical
)

func (a Axis) String() string {
	if a == AxisVertical {
		return "vertical"
	}
	return "horizontal"
}

func (a Axis) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Axis) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "horizontal":
		*a = AxisHorizontal
	case "vertical":
		*a = AxisVertical
	default:
		return fmt.Errorf("unknown axis %q", s)
	}
	return nil
}

// baseGridSpacing is the world-unit spacing at density 1.0. Effective
// spacing is baseGridSpacing / density, so higher density packs more
// lines per unit area rather than fewer.
const baseGridSpacing = 1.0

// GridLine3 is a sampled line on a panel surface in world space.
type GridLine3 struct {
	Start    Vector3
	End      Vector3
	Axis     Axis
	Boundary bool
}

// GridLine2D is a projected, clipped line segment in canvas space,
// tagged with the owning panel.
type GridLine2D struct {
	Start    Point2 `json:"start"`
	End      Point2 `json:"end"`
	Panel    string `json:"panel"`
	Axis     Axis   `json:"axis"`
	Boundary bool   `json:"boundary"`
}

// SamplePanel lays a regular grid over the panel surface. Lines run
// parallel to the panel's two local edge directions, stepped evenly
// between the opposite bounding edges; the four boundary edges are
// included and tagged Boundary. Density must be positive.
func SamplePanel(p Panel, density float64) ([]GridLine3, error) {
	if density <= 0 {
		return nil, fmt.Errorf("%w: density %.3f must be positive", ErrInvalidDensity, density)
	}
	spacing := baseGridSpacing / density
	c0, c1, c2, c3 := p.Corners[0], p.Corners[1], p.Corners[2], p.Corners[3]
	_, _, uLen, vLen := p.edgeFrame()

	lines := []GridLine3{
		{Start: c0, End: c1, Axis: AxisHorizontal, Boundary: true},
		{Start: c3, End: c2, Axis: AxisHorizontal, Boundary: true},
		{Start: c0, End: c3, Axis: AxisVertical, Boundary: true},
		{Start: c1, End: c2, Axis: AxisVertical, Boundary: true},
	}

	// Interior u-parallel lines stepped along v, interpolated between
	// the two bounding edges.
	for off := spacing; off < vLen-epsilon; off += spacing {
		t := off / vLen
		lines = append(lines, GridLine3{
			Start: lerpVec(c0, c3, t),
			End:   lerpVec(c1, c2, t),
			Axis:  AxisHorizontal,
		})
	}
	// Interior v-parallel lines stepped along u.
	for off := spacing; off < uLen-epsilon; off += spacing {
		t := off / uLen
		lines = append(lines, GridLine3{
			Start: lerpVec(c0, c1, t),
			End:   lerpVec(c3, c2, t),
			Axis:  AxisVertical,
		})
	}
	return lines, nil
}

// projector bundles the transform state for one generation pass. The
// camera looks down -Z in view space; a point is in front of the near
// plane when its view-space z <= -near.
type projector struct {
	view   mgl64.Mat4
	proj   mgl64.Mat4
	width  float64
	height float64
	near   float64
}

func newProjector(cam *Camera, canvasWidth, canvasHeight int) (*projector, error) {
	if canvasWidth <= 0 || canvasHeight <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d yields no valid aspect ratio", ErrInvalidCameraConfig, canvasWidth, canvasHeight)
	}
	view, err := cam.ViewMatrix()
	if err != nil {
		return nil, err
	}
	aspect := float64(canvasWidth) / float64(canvasHeight)
	return &projector{
		view:   view,
		proj:   cam.ProjectionMatrix(aspect),
		width:  float64(canvasWidth),
		height: float64(canvasHeight),
		near:   cam.Near(),
	}, nil
}

func (pr *projector) toView(p Vector3) Vector3 {
	return TransformPoint(pr.view, p)
}

// toCanvas projects a view-space point, performs the perspective
// divide, and maps NDC [-1,1] to canvas pixels with Y flipped (screen Y
// grows downward).
func (pr *projector) toCanvas(viewP Vector3) Point2 {
	ndc := TransformPoint(pr.proj, viewP)
	return Point2{
		X: (ndc.X + 1) * 0.5 * pr.width,
		Y: (1 - ndc.Y) * 0.5 * pr.height,
	}
}

// clipSegmentNear clips a view-space segment to the near plane. A
// segment entirely behind the camera is dropped; one straddling the
// plane is cut at the intersection. A raw behind-camera endpoint is
// never allowed through to the divide.
func (pr *projector) clipSegmentNear(a, b Vector3) (Vector3, Vector3, bool) {
	planeZ := -pr.near
	aIn := a.Z <= planeZ
	bIn := b.Z <= planeZ
	switch {
	case aIn && bIn:
		return a, b, true
	case !aIn && !bIn:
		return Vector3{}, Vector3{}, false
	}
	t := (planeZ - a.Z) / (b.Z - a.Z)
	cut := lerpVec(a, b, t)
	if aIn {
		return a, cut, true
	}
	return cut, b, true
}

// clipPolygonNear clips a view-space polygon against the near plane,
// keeping the in-front side. Vertices on the plane count as inside.
func clipPolygonNear(pts []Vector3, near float64) []Vector3 {
	planeZ := -near
	out := make([]Vector3, 0, len(pts)+2)
	for i := range pts {
		cur := pts[i]
		next := pts[(i+1)%len(pts)]
		curIn := cur.Z <= planeZ
		nextIn := next.Z <= planeZ
		if curIn {
			out = append(out, cur)
		}
		if curIn != nextIn {
			t := (planeZ - cur.Z) / (next.Z - cur.Z)
			out = append(out, lerpVec(cur, next, t))
		}
	}
	return out
}

// projectBoundary returns the panel's boundary polygon in canvas space.
// The polygon is near-clipped in view space first so a behind-camera
// corner cannot poison the projection; nil means the panel is entirely
// behind the camera.
func (pr *projector) projectBoundary(p Panel) []Point2 {
	viewPts := make([]Vector3, 0, 4)
	for _, c := range p.Corners {
		viewPts = append(viewPts, pr.toView(c))
	}
	clipped := clipPolygonNear(viewPts, pr.near)
	if len(clipped) < 3 {
		return nil
	}
	poly := make([]Point2, len(clipped))
	for i, vp := range clipped {
		poly[i] = pr.toCanvas(vp)
	}
	return poly
}

// polygonArea returns the signed shoelace area; the sign carries the
// winding in canvas coordinates.
func polygonArea(poly []Point2) float64 {
	var sum float64
	for i := range poly {
		p := poly[i]
		q := poly[(i+1)%len(poly)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// clipEps absorbs projection round-off when testing against boundary
// half-planes, so lines lying exactly on a panel edge survive.
const clipEps = 1e-7

// clipSegmentToPolygon clips segment a->b to a convex polygon by
// intersecting the parametric range [0,1] with each edge half-plane.
// Winding is taken from the polygon's signed area, so either
// orientation is accepted.
func clipSegmentToPolygon(a, b Point2, poly []Point2) (Point2, Point2, bool) {
	if len(poly) < 3 {
		return Point2{}, Point2{}, false
	}
	sign := 1.0
	if polygonArea(poly) < 0 {
		sign = -1
	}

	t0, t1 := 0.0, 1.0
	for i := range poly {
		p := poly[i]
		q := poly[(i+1)%len(poly)]
		ex, ey := q.X-p.X, q.Y-p.Y
		// Signed side of each endpoint relative to edge pq; >= 0 is
		// inside for the polygon's winding.
		fa := sign * (ex*(a.Y-p.Y) - ey*(a.X-p.X))
		fb := sign * (ex*(b.Y-p.Y) - ey*(b.X-p.X))

		switch {
		case fa >= -clipEps && fb >= -clipEps:
			continue
		case fa < -clipEps && fb < -clipEps:
			return Point2{}, Point2{}, false
		}
		t := fa / (fa - fb)
		if fb < -clipEps {
			// Segment leaves the half-plane at t.
			if t < t1 {
				t1 = t
			}
		} else {
			// Segment enters the half-plane at t.
			if t > t0 {
				t0 = t
			}
		}
		if t0 > t1 {
			return Point2{}, Point2{}, false
		}
	}

	ca := Point2{X: a.X + (b.X-a.X)*t0, Y: a.Y + (b.Y-a.Y)*t0}
	cb := Point2{X: a.X + (b.X-a.X)*t1, Y: a.Y + (b.Y-a.Y)*t1}
	return ca, cb, true
}

// Cohen-Sutherland region codes for canvas clipping.
const (
	regionLeft = 1 << iota
	regionRight
	regionAbove // y < 0
	regionBelow // y > height
)

func (pr *projector) regionCode(p Point2) int {
	code := 0
	if p.X < 0 {
		code |= regionLeft
	} else if p.X > pr.width {
		code |= regionRight
	}
	if p.Y < 0 {
		code |= regionAbove
	} else if p.Y > pr.height {
		code |= regionBelow
	}
	return code
}

// clipToCanvas clips a segment to the canvas rectangle with the
// Cohen-Sutherland walk, dropping segments fully outside.
func (pr *projector) clipToCanvas(a, b Point2) (Point2, Point2, bool) {
	codeA := pr.regionCode(a)
	codeB := pr.regionCode(b)
	for {
		if codeA == 0 && codeB == 0 {
			return a, b, true
		}
		if codeA&codeB != 0 {
			return Point2{}, Point2{}, false
		}

		code := codeA
		if code == 0 {
			code = codeB
		}
		var p Point2
		switch {
		case code&regionBelow != 0:
			p = Point2{X: a.X + (b.X-a.X)*(pr.height-a.Y)/(b.Y-a.Y), Y: pr.height}
		case code&regionAbove != 0:
			p = Point2{X: a.X + (b.X-a.X)*(0-a.Y)/(b.Y-a.Y), Y: 0}
		case code&regionRight != 0:
			p = Point2{X: pr.width, Y: a.Y + (b.Y-a.Y)*(pr.width-a.X)/(b.X-a.X)}
		default:
			p = Point2{X: 0, Y: a.Y + (b.Y-a.Y)*(0-a.X)/(b.X-a.X)}
		}
		if code == codeA {
			a = p
			codeA = pr.regionCode(a)
		} else {
			b = p
			codeB = pr.regionCode(b)
		}
	}
}

// projectLines runs one panel's sampled lines through the full chain:
// view transform, near-plane segment clip, perspective divide, clip to
// the panel's own projected boundary, clip to the canvas.
func (pr *projector) projectLines(p Panel, lines []GridLine3, boundary []Point2, minLineLength float64) []GridLine2D {
	out := make([]GridLine2D, 0, len(lines))
	if boundary == nil {
		return out
	}
	for _, ln := range lines {
		va, vb, ok := pr.clipSegmentNear(pr.toView(ln.Start), pr.toView(ln.End))
		if !ok {
			continue
		}
		a, b := pr.toCanvas(va), pr.toCanvas(vb)
		a, b, ok = clipSegmentToPolygon(a, b, boundary)
		if !ok {
			continue
		}
		a, b, ok = pr.clipToCanvas(a, b)
		if !ok {
			continue
		}
		if a.DistanceTo(b) < math.Max(minLineLength, epsilon) {
			continue
		}
		out = append(out, GridLine2D{
			Start:    a,
			End:      b,
			Panel:    p.Label,
			Axis:     ln.Axis,
			Boundary: ln.Boundary,
		})
	}
	return out
}

// ProjectPanel projects a panel's sampled 3D lines to canvas space and
// applies the full clipping chain, returning the clipped lines and the
// panel's projected boundary polygon. minLineLength (pixels, 0 to keep
// everything) discards segments too short to draw.
func ProjectPanel(p Panel, lines []GridLine3, cam *Camera, canvasWidth, canvasHeight int, minLineLength float64) ([]GridLine2D, []Point2, error) {
	pr, err := newProjector(cam, canvasWidth, canvasHeight)
	if err != nil {
		return nil, nil, err
	}
	boundary := pr.projectBoundary(p)
	return pr.projectLines(p, lines, boundary, minLineLength), boundary, nil
}
