// Package viewmatrix builds the model, view and projection matrices a host
// feeds into the rasterizer each frame.
package viewmatrix

import (
	"math"

	"wireframe-rasterizer/internal/mathutil"
)

// View translates the world so the eye sits at the origin. There is no
// rotation component: the camera always looks down -Z.
func View(eye mathutil.Vec3) mathutil.Mat4 {
	t := eye.Neg()
	return mathutil.Mat4{
		1, 0, 0, t[0],
		0, 1, 0, t[1],
		0, 0, 1, t[2],
		0, 0, 0, 1,
	}
}

// Model rotates about the vertical axis by angleDeg degrees. The rotation
// lives in the XY plane; Z and translation are untouched.
func Model(angleDeg float64) mathutil.Mat4 {
	s, c := math.Sincos(mathutil.Deg2Rad(angleDeg))
	return mathutil.Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Projection builds the perspective matrix as squeeze × scale/translate.
//
// The squeeze matrix maps the frustum onto a box (w = -z), then the
// transposed scale/translate matrix maps that box to the canonical cube.
// The order of operations is fixed so regression output stays bit-exact.
func Projection(fovDeg, aspect, zNear, zFar float64) mathutil.Mat4 {
	squeeze := mathutil.Mat4{
		zNear, 0, 0, 0,
		0, zNear, 0, 0,
		0, 0, 1, 0,
		0, 0, -1, 0,
	}

	deltaX := zNear * math.Tan(fovDeg*math.Pi/2.0/180.0)
	deltaY := deltaX * aspect
	deltaZ := (zNear - zFar) / 2.0
	centerZ := (zNear + deltaZ) / 2.0

	ortho := mathutil.Mat4{
		1.0 / deltaX, 0, 0, 0,
		0, 1.0 / deltaY, 0, 0,
		0, 0, 1.0 / deltaZ, 0,
		0, 0, centerZ / deltaZ, 1,
	}.Transpose()

	return mathutil.Mat4Mul(ortho, squeeze)
}

// Camera bundles the eye position and projection parameters a host keeps
// fixed across frames.
type Camera struct {
	Eye    mathutil.Vec3
	FOV    float64 // degrees
	Aspect float64
	ZNear  float64
	ZFar   float64
}

// DefaultCamera is the eye at (0,0,5) with a 45°, aspect 1, 0.1–50 frustum.
func DefaultCamera() Camera {
	return Camera{
		Eye:    mathutil.Vec3{0, 0, 5},
		FOV:    45,
		Aspect: 1,
		ZNear:  0.1,
		ZFar:   50,
	}
}

func (c Camera) View() mathutil.Mat4 {
	return View(c.Eye)
}

func (c Camera) Projection() mathutil.Mat4 {
	return Projection(c.FOV, c.Aspect, c.ZNear, c.ZFar)
}
