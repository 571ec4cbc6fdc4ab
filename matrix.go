package perspgrid

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// 4x4 transforms are mgl64.Mat4 throughout: column-major storage,
// column-vector convention (transformed = M * v). Composition is
// Mat4.Mul4.

// InvertMatrix returns the inverse of m via Gauss-Jordan elimination
// with partial pivoting. mgl64's Inv silently hands back a zero matrix
// for singular input, so the elimination is done here and a pivot
// smaller than the tolerance reports ErrSingularMatrix instead.
func InvertMatrix(m mgl64.Mat4) (mgl64.Mat4, error) {
	// Augmented [m | I], row indexed.
	var a [4][8]float64
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			a[r][c] = m.At(r, c)
		}
		a[r][4+r] = 1
	}

	for col := 0; col < 4; col++ {
		pivot := col
		for r := col + 1; r < 4; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < epsilon {
			return mgl64.Mat4{}, fmt.Errorf("%w: pivot column %d below tolerance", ErrSingularMatrix, col)
		}
		a[col], a[pivot] = a[pivot], a[col]

		p := a[col][col]
		for c := 0; c < 8; c++ {
			a[col][c] /= p
		}
		for r := 0; r < 4; r++ {
			if r == col {
				continue
			}
			f := a[r][col]
			if f == 0 {
				continue
			}
			for c := 0; c < 8; c++ {
				a[r][c] -= f * a[col][c]
			}
		}
	}

	var inv mgl64.Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			inv.Set(r, c, a[r][4+c])
		}
	}
	return inv, nil
}

// TransformPoint applies m to p as a homogeneous point and divides by
// the resulting w.
func TransformPoint(m mgl64.Mat4, p Vector3) Vector3 {
	h := m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	w := h.W()
	if math.Abs(w) > epsilon {
		return Vector3{h.X() / w, h.Y() / w, h.Z() / w}
	}
	return Vector3{h.X(), h.Y(), h.Z()}
}

// TransformDirection applies only the rotation part of m, deliberately
// ignoring translation, so direction vectors keep their meaning.
func TransformDirection(m mgl64.Mat4, d Vector3) Vector3 {
	h := m.Mul4x1(mgl64.Vec4{d.X, d.Y, d.Z, 0})
	return Vector3{h.X(), h.Y(), h.Z()}
}

// LookAtMatrix builds a world-to-camera transform from an orthonormal
// basis: forward toward the target, right = forward x up, camera up
// recomputed from those two. Right-handed; the camera looks down -Z.
// A forward direction parallel to the up hint leaves no usable right
// vector and reports ErrDegenerateBasis.
func LookAtMatrix(eye, target, up Vector3) (mgl64.Mat4, error) {
	forward := target.Sub(eye).Normalize()
	rightRaw := forward.Cross(up)
	if rightRaw.Length() < epsilon {
		return mgl64.Mat4{}, fmt.Errorf("%w: forward %v parallel to up hint %v", ErrDegenerateBasis, forward, up)
	}
	right := rightRaw.Normalize()
	camUp := right.Cross(forward)

	// Basis vectors as rows, eye translated to the origin.
	return mgl64.Mat4{
		right.X, camUp.X, -forward.X, 0,
		right.Y, camUp.Y, -forward.Y, 0,
		right.Z, camUp.Z, -forward.Z, 0,
		-right.Dot(eye), -camUp.Dot(eye), forward.Dot(eye), 1,
	}, nil
}
