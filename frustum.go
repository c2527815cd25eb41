package spatial

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Frustum is six inward-facing planes, used for visibility culling.
// Order: left, right, bottom, top, near, far.
type Frustum struct {
	Planes [6]Plane
}

// FrustumFromMatrix extracts the six planes from a view-projection matrix
// (Gribb/Hartmann row combinations) and normalizes them.
func FrustumFromMatrix(vp mgl32.Mat4) Frustum {
	row := func(i int) mgl32.Vec4 {
		return mgl32.Vec4{vp.At(i, 0), vp.At(i, 1), vp.At(i, 2), vp.At(i, 3)}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	planeOf := func(v mgl32.Vec4) Plane {
		return Plane{Normal: v.Vec3(), D: v.W()}.Normalized()
	}

	var f Frustum
	f.Planes[0] = planeOf(r3.Add(r0)) // left
	f.Planes[1] = planeOf(r3.Sub(r0)) // right
	f.Planes[2] = planeOf(r3.Add(r1)) // bottom
	f.Planes[3] = planeOf(r3.Sub(r1)) // top
	f.Planes[4] = planeOf(r3.Add(r2)) // near
	f.Planes[5] = planeOf(r3.Sub(r2)) // far
	return f
}

// ContainsSphere reports whether any part of the sphere is inside the
// frustum.
func (f Frustum) ContainsSphere(s Sphere) bool {
	for _, p := range f.Planes {
		if p.DistanceToPoint(s.Center) < -s.Radius {
			return false
		}
	}
	return true
}

// ContainsBox reports whether any part of the box is inside the frustum.
// Tests the positive vertex of each plane; conservative, like the AABB
// itself.
func (f Frustum) ContainsBox(b Box3) bool {
	if b.IsEmpty() {
		return false
	}
	for _, p := range f.Planes {
		// Pick the corner farthest along the plane normal.
		v := mgl32.Vec3{b.Min.X(), b.Min.Y(), b.Min.Z()}
		if p.Normal.X() >= 0 {
			v[0] = b.Max.X()
		}
		if p.Normal.Y() >= 0 {
			v[1] = b.Max.Y()
		}
		if p.Normal.Z() >= 0 {
			v[2] = b.Max.Z()
		}
		if p.DistanceToPoint(v) < 0 {
			return false
		}
	}
	return true
}
