package spatial

import (
	"github.com/go-gl/mathgl/mgl32"
)

const boundsInf = float32(1e30)

// Box3 is an axis-aligned bounding box. A freshly constructed box is
// degenerate (Min > Max on every axis) and stays that way until the first
// point expands it.
type Box3 struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewBox3 returns a degenerate box that contains nothing.
func NewBox3() Box3 {
	return Box3{
		Min: mgl32.Vec3{boundsInf, boundsInf, boundsInf},
		Max: mgl32.Vec3{-boundsInf, -boundsInf, -boundsInf},
	}
}

// Box3FromPoints computes the tight bounds of a point list in one pass.
func Box3FromPoints(points []mgl32.Vec3) Box3 {
	b := NewBox3()
	for _, p := range points {
		b.ExpandByPoint(p)
	}
	return b
}

// Box3FromBuffer computes the tight bounds of a flat xyz buffer in one pass.
// Yields the same box as Box3FromPoints over the equivalent point list.
func Box3FromBuffer(buf []float32) Box3 {
	b := NewBox3()
	for i := 0; i+2 < len(buf); i += 3 {
		b.ExpandByPoint(mgl32.Vec3{buf[i], buf[i+1], buf[i+2]})
	}
	return b
}

// ExpandByPoint grows the box to include p.
func (b *Box3) ExpandByPoint(p mgl32.Vec3) {
	b.Min = mgl32.Vec3{min(b.Min.X(), p.X()), min(b.Min.Y(), p.Y()), min(b.Min.Z(), p.Z())}
	b.Max = mgl32.Vec3{max(b.Max.X(), p.X()), max(b.Max.Y(), p.Y()), max(b.Max.Z(), p.Z())}
}

// IsEmpty reports whether the box is degenerate (contains no volume).
func (b Box3) IsEmpty() bool {
	return b.Max.X() < b.Min.X() || b.Max.Y() < b.Min.Y() || b.Max.Z() < b.Min.Z()
}

// Center returns the midpoint of the box.
func (b Box3) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extents from Min to Max.
func (b Box3) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// ContainsPoint reports whether p lies inside the box, boundary included.
func (b Box3) ContainsPoint(p mgl32.Vec3) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y() &&
		p.Z() >= b.Min.Z() && p.Z() <= b.Max.Z()
}

// Intersects performs a per-axis separating test. Symmetric; boxes touching
// only at a face, edge or corner do not count as intersecting.
func (b Box3) Intersects(o Box3) bool {
	return b.Min.X() < o.Max.X() && b.Max.X() > o.Min.X() &&
		b.Min.Y() < o.Max.Y() && b.Max.Y() > o.Min.Y() &&
		b.Min.Z() < o.Max.Z() && b.Max.Z() > o.Min.Z()
}

// Corners returns the eight corners of the box.
func (b Box3) Corners() [8]mgl32.Vec3 {
	return [8]mgl32.Vec3{
		{b.Min.X(), b.Min.Y(), b.Min.Z()},
		{b.Max.X(), b.Min.Y(), b.Min.Z()},
		{b.Min.X(), b.Max.Y(), b.Min.Z()},
		{b.Max.X(), b.Max.Y(), b.Min.Z()},
		{b.Min.X(), b.Min.Y(), b.Max.Z()},
		{b.Max.X(), b.Min.Y(), b.Max.Z()},
		{b.Min.X(), b.Max.Y(), b.Max.Z()},
		{b.Max.X(), b.Max.Y(), b.Max.Z()},
	}
}

// Transform maps the box through an affine transform and re-derives an
// axis-aligned box enclosing all eight transformed corners. Deliberately
// conservative: under rotation the result is larger than the tight bound.
func (b Box3) Transform(m mgl32.Mat4) Box3 {
	if b.IsEmpty() {
		return b
	}
	out := NewBox3()
	for _, c := range b.Corners() {
		out.ExpandByPoint(m.Mul4x1(c.Vec4(1)).Vec3())
	}
	return out
}

// Sphere is a bounding sphere: center plus non-negative radius.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

// SphereFromPoints computes a bounding sphere in one pass over the extents
// plus one pass for the radius: the center is the midpoint of the axis
// aligned extents, the radius the distance to the farthest point.
func SphereFromPoints(points []mgl32.Vec3) Sphere {
	box := Box3FromPoints(points)
	s := Sphere{Center: box.Center()}
	if box.IsEmpty() {
		s.Center = mgl32.Vec3{}
		return s
	}
	for _, p := range points {
		if d := p.Sub(s.Center).Len(); d > s.Radius {
			s.Radius = d
		}
	}
	return s
}

// SphereFromBuffer is SphereFromPoints over a flat xyz buffer.
// Yields the same sphere as the point-list form.
func SphereFromBuffer(buf []float32) Sphere {
	box := Box3FromBuffer(buf)
	s := Sphere{Center: box.Center()}
	if box.IsEmpty() {
		s.Center = mgl32.Vec3{}
		return s
	}
	for i := 0; i+2 < len(buf); i += 3 {
		p := mgl32.Vec3{buf[i], buf[i+1], buf[i+2]}
		if d := p.Sub(s.Center).Len(); d > s.Radius {
			s.Radius = d
		}
	}
	return s
}

// ContainsPoint reports whether p lies inside the sphere, boundary included.
func (s Sphere) ContainsPoint(p mgl32.Vec3) bool {
	return p.Sub(s.Center).Len() <= s.Radius
}

// Intersects compares center distance against the radius sum. Symmetric;
// spheres touching at exactly one point do not count as intersecting.
func (s Sphere) Intersects(o Sphere) bool {
	return s.Center.Sub(o.Center).Len() < s.Radius+o.Radius
}

// Transform maps the sphere through an affine transform. The center is
// transformed exactly; the radius is scaled by the largest per-axis scale of
// the matrix, which is conservative under non-uniform scale.
func (s Sphere) Transform(m mgl32.Mat4) Sphere {
	center := m.Mul4x1(s.Center.Vec4(1)).Vec3()
	sx := m.Col(0).Vec3().Len()
	sy := m.Col(1).Vec3().Len()
	sz := m.Col(2).Vec3().Len()
	return Sphere{Center: center, Radius: s.Radius * max(sx, max(sy, sz))}
}

func min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
