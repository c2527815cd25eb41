package spatial

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a scene graph node with a projection matrix. The projection is
// set explicitly; the view side comes from the node's world transform.
type Camera struct {
	*Node

	Projection mgl32.Mat4
}

// NewCamera returns a detached camera with an identity projection.
func NewCamera(name string) *Camera {
	return &Camera{
		Node:       NewNode(name),
		Projection: mgl32.Ident4(),
	}
}

// SetPerspective sets a perspective projection. fovDeg is the vertical field
// of view in degrees.
func (c *Camera) SetPerspective(fovDeg, aspect, near, far float32) {
	c.Projection = mgl32.Perspective(mgl32.DegToRad(fovDeg), aspect, near, far)
}

// SetOrthographic sets an orthographic projection.
func (c *Camera) SetOrthographic(left, right, bottom, top, near, far float32) {
	c.Projection = mgl32.Ortho(left, right, bottom, top, near, far)
}

// ViewMatrix returns the inverse of the camera's world transform.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return SafeInvert4(c.WorldMatrix())
}

// PickRay builds a world-space ray through a point given in normalized device
// coordinates (x and y in [-1,1], y up). The NDC point is unprojected through
// the inverse projection onto the near plane, the resulting view-space
// direction is rotated by the camera's world rotation, and the ray starts at
// the camera's world position.
func (c *Camera) PickRay(ndcX, ndcY float32) Ray {
	invProj := SafeInvert4(c.Projection)
	p := invProj.Mul4x1(mgl32.Vec4{ndcX, ndcY, -1, 1})

	dir := p.Vec3()
	if w := p.W(); mgl32.Abs(w) > Epsilon {
		dir = dir.Mul(1 / w)
	}
	dir = c.WorldRotation().Rotate(dir.Normalize())

	return Ray{
		Origin:    c.WorldPosition(),
		Direction: dir,
	}
}
