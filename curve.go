package spatial

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Curve3 is a piecewise-linear 3D curve through a list of points.
type Curve3 struct {
	Points []mgl32.Vec3
}

// SegmentCount returns the number of linear segments.
func (c Curve3) SegmentCount() int {
	if len(c.Points) < 2 {
		return 0
	}
	return len(c.Points) - 1
}

// PointAt returns the point at parameter alpha in [0,1] along the given
// segment. ok=false when the segment index is out of range.
func (c Curve3) PointAt(segment int, alpha float32) (mgl32.Vec3, bool) {
	if segment < 0 || segment >= c.SegmentCount() {
		return mgl32.Vec3{}, false
	}
	return Lerp3(c.Points[segment], c.Points[segment+1], mgl32.Clamp(alpha, 0, 1)), true
}

// Length returns the total arc length of the curve.
func (c Curve3) Length() float32 {
	var total float32
	for i := 0; i < c.SegmentCount(); i++ {
		total += c.Points[i+1].Sub(c.Points[i]).Len()
	}
	return total
}

// ClosestPoint returns the point on the curve nearest to p and the segment it
// lies on. ok=false when the curve has no segments.
func (c Curve3) ClosestPoint(p mgl32.Vec3) (point mgl32.Vec3, segment int, ok bool) {
	bestDist := boundsInf
	for i := 0; i < c.SegmentCount(); i++ {
		a := c.Points[i]
		b := c.Points[i+1]
		ab := b.Sub(a)
		denom := ab.Dot(ab)
		t := float32(0)
		if denom > Epsilon {
			t = mgl32.Clamp(p.Sub(a).Dot(ab)/denom, 0, 1)
		}
		cand := a.Add(ab.Mul(t))
		if d := p.Sub(cand).Len(); d < bestDist {
			bestDist = d
			point = cand
			segment = i
			ok = true
		}
	}
	return point, segment, ok
}
