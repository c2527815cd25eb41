package spatial

import (
	"github.com/go-gl/mathgl/mgl32"
)

// 2D bounding volumes. Independent of their 3D twins on purpose: the math is
// not substitutable across dimensions, so nothing is shared beyond the shape
// of the API.

// Box2 is a 2D axis-aligned bounding box, degenerate until expanded.
type Box2 struct {
	Min mgl32.Vec2
	Max mgl32.Vec2
}

// NewBox2 returns a degenerate box that contains nothing.
func NewBox2() Box2 {
	return Box2{
		Min: mgl32.Vec2{boundsInf, boundsInf},
		Max: mgl32.Vec2{-boundsInf, -boundsInf},
	}
}

// Box2FromPoints computes the tight bounds of a point list in one pass.
func Box2FromPoints(points []mgl32.Vec2) Box2 {
	b := NewBox2()
	for _, p := range points {
		b.ExpandByPoint(p)
	}
	return b
}

// Box2FromBuffer computes the tight bounds of a flat xy buffer in one pass.
func Box2FromBuffer(buf []float32) Box2 {
	b := NewBox2()
	for i := 0; i+1 < len(buf); i += 2 {
		b.ExpandByPoint(mgl32.Vec2{buf[i], buf[i+1]})
	}
	return b
}

// ExpandByPoint grows the box to include p.
func (b *Box2) ExpandByPoint(p mgl32.Vec2) {
	b.Min = mgl32.Vec2{min(b.Min.X(), p.X()), min(b.Min.Y(), p.Y())}
	b.Max = mgl32.Vec2{max(b.Max.X(), p.X()), max(b.Max.Y(), p.Y())}
}

// IsEmpty reports whether the box is degenerate.
func (b Box2) IsEmpty() bool {
	return b.Max.X() < b.Min.X() || b.Max.Y() < b.Min.Y()
}

// Center returns the midpoint of the box.
func (b Box2) Center() mgl32.Vec2 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// ContainsPoint reports whether p lies inside the box, boundary included.
func (b Box2) ContainsPoint(p mgl32.Vec2) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y()
}

// Intersects performs a per-axis separating test. Symmetric; boxes touching
// only at an edge or corner do not count as intersecting.
func (b Box2) Intersects(o Box2) bool {
	return b.Min.X() < o.Max.X() && b.Max.X() > o.Min.X() &&
		b.Min.Y() < o.Max.Y() && b.Max.Y() > o.Min.Y()
}

// Transform maps the box through a 2D affine transform (a 3x3 matrix acting
// on homogeneous 2D points) and re-derives an enclosing axis-aligned box.
func (b Box2) Transform(m mgl32.Mat3) Box2 {
	if b.IsEmpty() {
		return b
	}
	corners := [4]mgl32.Vec2{
		{b.Min.X(), b.Min.Y()},
		{b.Max.X(), b.Min.Y()},
		{b.Min.X(), b.Max.Y()},
		{b.Max.X(), b.Max.Y()},
	}
	out := NewBox2()
	for _, c := range corners {
		tc := m.Mul3x1(mgl32.Vec3{c.X(), c.Y(), 1})
		out.ExpandByPoint(mgl32.Vec2{tc.X(), tc.Y()})
	}
	return out
}

// Circle is a 2D bounding circle: center plus non-negative radius.
type Circle struct {
	Center mgl32.Vec2
	Radius float32
}

// CircleFromPoints computes a bounding circle: center at the midpoint of the
// axis-aligned extents, radius to the farthest point.
func CircleFromPoints(points []mgl32.Vec2) Circle {
	box := Box2FromPoints(points)
	c := Circle{Center: box.Center()}
	if box.IsEmpty() {
		c.Center = mgl32.Vec2{}
		return c
	}
	for _, p := range points {
		if d := p.Sub(c.Center).Len(); d > c.Radius {
			c.Radius = d
		}
	}
	return c
}

// CircleFromBuffer is CircleFromPoints over a flat xy buffer.
func CircleFromBuffer(buf []float32) Circle {
	box := Box2FromBuffer(buf)
	c := Circle{Center: box.Center()}
	if box.IsEmpty() {
		c.Center = mgl32.Vec2{}
		return c
	}
	for i := 0; i+1 < len(buf); i += 2 {
		p := mgl32.Vec2{buf[i], buf[i+1]}
		if d := p.Sub(c.Center).Len(); d > c.Radius {
			c.Radius = d
		}
	}
	return c
}

// ContainsPoint reports whether p lies inside the circle, boundary included.
func (c Circle) ContainsPoint(p mgl32.Vec2) bool {
	return p.Sub(c.Center).Len() <= c.Radius
}

// Intersects compares center distance against the radius sum. Symmetric;
// circles touching at exactly one point do not count as intersecting.
func (c Circle) Intersects(o Circle) bool {
	return c.Center.Sub(o.Center).Len() < c.Radius+o.Radius
}
