// Package camera holds the orbit camera and its perspective projection.
//
// Projections are left-handed: view space looks down +Z.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Orbit circles the origin at Distance, driven by mouse drags.
type Orbit struct {
	Pitch    float32
	Yaw      float32
	RotScale float32 // radians per pixel
	Distance float32
}

// NewOrbit returns a camera 5 units from the origin rotating 0.01 rad per pixel.
func NewOrbit() *Orbit {
	return &Orbit{RotScale: 0.01, Distance: 5}
}

// Drag applies a mouse delta in pixels. Angles accumulate without clamping
// or wraparound.
func (o *Orbit) Drag(dx, dy int) {
	o.Yaw += float32(-dx) * o.RotScale
	o.Pitch += float32(-dy) * o.RotScale
}

// Transform is the camera's world transform: translate to (0, 0, -Distance),
// then rotate about the origin by pitch (X) and yaw (Y).
func (o *Orbit) Transform() mgl32.Mat4 {
	rotation := mgl32.HomogRotate3DY(o.Yaw).Mul4(mgl32.HomogRotate3DX(o.Pitch))
	return rotation.Mul4(mgl32.Translate3D(0, 0, -o.Distance))
}

// View is the inverse of Transform.
func (o *Orbit) View() mgl32.Mat4 {
	return o.Transform().Inv()
}

// Eye is the camera position in world space.
func (o *Orbit) Eye() mgl32.Vec3 {
	return o.Transform().Col(3).Vec3()
}

// Projection holds the perspective parameters.
type Projection struct {
	AspectRatio float32
	FOV         float32 // vertical, degrees
	NearPlane   float32
	FarPlane    float32
}

// NewProjection returns a 60° projection with near 0.1 and far 100.
func NewProjection(width, height int) *Projection {
	p := &Projection{
		AspectRatio: 1,
		FOV:         60.0,
		NearPlane:   0.1,
		FarPlane:    100.0,
	}
	p.SetViewport(width, height)
	return p
}

// SetViewport updates the aspect ratio. A zero-height viewport (minimized
// window) keeps the previous ratio.
func (p *Projection) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.AspectRatio = float32(width) / float32(height)
}

// Matrix builds the projection. homogeneousDepth selects clip depth [-1, 1]
// (OpenGL) over [0, 1].
func (p *Projection) Matrix(homogeneousDepth bool) mgl32.Mat4 {
	return PerspectiveLH(p.FOV, p.AspectRatio, p.NearPlane, p.FarPlane, homogeneousDepth)
}

// PerspectiveLH is a left-handed perspective projection with fovY in degrees.
func PerspectiveLH(fovY, aspect, near, far float32, homogeneousDepth bool) mgl32.Mat4 {
	h := float32(1 / math.Tan(float64(mgl32.DegToRad(fovY))*0.5))
	w := h / aspect
	diff := far - near

	var a, b float32
	if homogeneousDepth {
		a = (far + near) / diff
		b = -2 * far * near / diff
	} else {
		a = far / diff
		b = -near * far / diff
	}

	var m mgl32.Mat4
	m[0] = w
	m[5] = h
	m[10] = a
	m[11] = 1
	m[14] = b
	return m
}
