package perspgrid

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// epsilon is the tolerance below which values are treated as zero in
// degeneracy checks: near-parallel vectors, zero-length normals,
// singular pivots.
const epsilon = 1e-9

// Vector3 is a point or direction in world space.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v x o.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector in v's direction. A vector shorter
// than epsilon normalizes to the zero vector.
func (v Vector3) Normalize() Vector3 {
	l := v.Length()
	if l < epsilon {
		return Vector3{}
	}
	return Vector3{v.X / l, v.Y / l, v.Z / l}
}

func (v Vector3) DistanceTo(o Vector3) float64 {
	return o.Sub(v).Length()
}

// IsZero reports whether v is within epsilon of the zero vector.
func (v Vector3) IsZero() bool {
	return v.Length() < epsilon
}

// Vec3 bridges to the mgl64 matrix layer.
func (v Vector3) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// lerpVec interpolates a -> b at parameter t.
func lerpVec(a, b Vector3, t float64) Vector3 {
	return a.Add(b.Sub(a).Scale(t))
}

// Point2 is a point in canvas space. Y grows downward, matching screen
// coordinates.
type Point2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point2) DistanceTo(o Point2) float64 {
	return math.Hypot(o.X-p.X, o.Y-p.Y)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func degreesToRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
