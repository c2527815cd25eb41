package spatial

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Plane is the set of points p with Normal·p + D = 0.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// PlaneFromPointNormal builds the plane through point with the given normal.
func PlaneFromPointNormal(point, normal mgl32.Vec3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, D: -n.Dot(point)}
}

// Normalized rescales the plane so its normal has unit length.
func (p Plane) Normalized() Plane {
	l := p.Normal.Len()
	if l < Epsilon {
		return p
	}
	inv := 1 / l
	return Plane{Normal: p.Normal.Mul(inv), D: p.D * inv}
}

// DistanceToPoint returns the signed distance from pt to the plane.
// Positive on the side the normal points into. Assumes a unit normal.
func (p Plane) DistanceToPoint(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}
