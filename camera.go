package perspgrid

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ProjectionMode selects how view-space geometry is flattened to
// normalized device coordinates.
type ProjectionMode int

const (
	Perspective ProjectionMode = iota
	Orthographic
)

func (m ProjectionMode) String() string {
	switch m {
	case Perspective:
		return "perspective"
	case Orthographic:
		return "orthographic"
	}
	return fmt.Sprintf("ProjectionMode(%d)", int(m))
}

func (m ProjectionMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *ProjectionMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "perspective":
		*m = Perspective
	case "orthographic":
		*m = Orthographic
	default:
		return fmt.Errorf("unknown projection mode %q", s)
	}
	return nil
}

// WorldUp is the default camera up hint.
var WorldUp = Vector3{X: 0, Y: 1, Z: 0}

// elevationLimitDeg keeps orbits just short of the poles so the next
// view-matrix build keeps a usable basis.
const elevationLimitDeg = 89.9

// Camera holds an immutable viewpoint. Repositioning operations such as
// Orbit return a new Camera rather than mutating shared state, so a
// Camera can be handed to concurrent generation passes freely.
type Camera struct {
	position Vector3
	target   Vector3
	up       Vector3
	fov      float64 // vertical field of view, degrees
	near     float64
	far      float64
	mode     ProjectionMode
}

// NewCamera validates the configuration and builds a camera. A zero up
// hint means world up. Validation failures wrap ErrInvalidCameraConfig
// and name the offending parameter.
func NewCamera(position, target, up Vector3, fovDegrees, near, far float64, mode ProjectionMode) (*Camera, error) {
	if up.IsZero() {
		up = WorldUp
	}
	if position.DistanceTo(target) < epsilon {
		return nil, fmt.Errorf("%w: position %v equals target", ErrInvalidCameraConfig, position)
	}
	if fovDegrees <= 0 || fovDegrees >= 180 {
		return nil, fmt.Errorf("%w: fov %.3f outside (0,180)", ErrInvalidCameraConfig, fovDegrees)
	}
	if near <= 0 {
		return nil, fmt.Errorf("%w: near %.6f must be positive", ErrInvalidCameraConfig, near)
	}
	if near >= far {
		return nil, fmt.Errorf("%w: near %.6f not less than far %.6f", ErrInvalidCameraConfig, near, far)
	}
	return &Camera{
		position: position,
		target:   target,
		up:       up,
		fov:      fovDegrees,
		near:     near,
		far:      far,
		mode:     mode,
	}, nil
}

func (c *Camera) Position() Vector3    { return c.position }
func (c *Camera) Target() Vector3      { return c.target }
func (c *Camera) Up() Vector3          { return c.up }
func (c *Camera) FOVDegrees() float64  { return c.fov }
func (c *Camera) Near() float64        { return c.near }
func (c *Camera) Far() float64         { return c.far }
func (c *Camera) Mode() ProjectionMode { return c.mode }

// ViewMatrix builds the world-to-camera transform from the look-at
// basis. Reports ErrDegenerateBasis when the viewing direction is
// parallel to the up hint.
func (c *Camera) ViewMatrix() (mgl64.Mat4, error) {
	return LookAtMatrix(c.position, c.target, c.up)
}

// ProjectionMatrix returns the projection for the given aspect ratio
// (canvas width / height). Orthographic mode sizes its view volume to
// the perspective frustum cross-section through the target, so
// switching modes at the same distance keeps the output comparably
// scaled.
func (c *Camera) ProjectionMatrix(aspect float64) mgl64.Mat4 {
	fovRad := degreesToRadians(c.fov)
	if c.mode == Orthographic {
		halfH := c.DistanceToTarget() * math.Tan(fovRad/2)
		halfW := halfH * aspect
		return mgl64.Ortho(-halfW, halfW, -halfH, halfH, c.near, c.far)
	}
	return mgl64.Perspective(fovRad, aspect, c.near, c.far)
}

func (c *Camera) DistanceToTarget() float64 {
	return c.position.DistanceTo(c.target)
}

// FocalLength returns the pinhole focal length in pixels for a canvas
// of the given width: halfWidth / tan(fov/2). FOV couples to canvas
// size only here, so one Camera serves any output resolution.
func (c *Camera) FocalLength(canvasWidth float64) float64 {
	return (canvasWidth / 2) / math.Tan(degreesToRadians(c.fov)/2)
}

// Orbit returns a new Camera rotated about the target by the given
// azimuth and elevation deltas in degrees, at constant distance.
// Elevation is clamped just short of the poles.
func (c *Camera) Orbit(azimuthDelta, elevationDelta float64) *Camera {
	offset := c.position.Sub(c.target)
	r := offset.Length()
	elev := math.Asin(clampFloat(offset.Y/r, -1, 1))
	azim := math.Atan2(offset.Z, offset.X)

	azim += degreesToRadians(azimuthDelta)
	limit := degreesToRadians(elevationLimitDeg)
	elev = clampFloat(elev+degreesToRadians(elevationDelta), -limit, limit)

	next := *c
	next.position = Vector3{
		X: c.target.X + r*math.Cos(elev)*math.Cos(azim),
		Y: c.target.Y + r*math.Sin(elev),
		Z: c.target.Z + r*math.Cos(elev)*math.Sin(azim),
	}
	return &next
}
