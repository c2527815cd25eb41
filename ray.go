package spatial

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Ray is an origin plus a direction. The direction does not have to be unit
// length; reported T values are in units of the direction's length, so
// At(hit.T) always lands on the hit point.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// RayHit is the result of an intersection query. Hit=false means no
// intersection; the other fields are only meaningful on a hit.
type RayHit struct {
	Hit   bool
	T     float32
	Point mgl32.Vec3
}

// MeshHit is a RayHit that also identifies the mesh and triangle struck.
type MeshHit struct {
	RayHit
	Mesh     *TriangleMesh
	Triangle int
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectPlane solves for the parameter at the plane crossing. Rays nearly
// parallel to the plane, or crossings behind the origin, report no hit.
func (r Ray) IntersectPlane(p Plane) RayHit {
	denom := p.Normal.Dot(r.Direction)
	if mgl32.Abs(denom) < Epsilon {
		return RayHit{}
	}
	t := -(p.Normal.Dot(r.Origin) + p.D) / denom
	if t <= 0 {
		return RayHit{}
	}
	return RayHit{Hit: true, T: t, Point: r.At(t)}
}

// IntersectSphere projects the origin-to-center vector onto the ray, rejects
// when the closest approach is farther than the radius, and otherwise takes
// the smallest strictly positive root of the quadratic.
func (r Ray) IntersectSphere(s Sphere) RayHit {
	dirLen := r.Direction.Len()
	if dirLen < Epsilon {
		return RayHit{}
	}
	d := r.Direction.Mul(1 / dirLen)

	l := s.Center.Sub(r.Origin)
	tca := l.Dot(d)
	distSq := l.Dot(l) - tca*tca
	if distSq > s.Radius*s.Radius {
		return RayHit{}
	}

	thc := sqrt32(s.Radius*s.Radius - distSq)
	t := tca - thc
	if t <= Epsilon {
		t = tca + thc
	}
	if t <= Epsilon {
		return RayHit{}
	}

	// Back into direction-length units.
	t /= dirLen
	return RayHit{Hit: true, T: t, Point: r.At(t)}
}

// IntersectBox3 runs the slab method, narrowing one parametric interval per
// axis and rejecting as soon as the intersection of the intervals is empty.
// A ray starting inside the box hits at the exit point.
func (r Ray) IntersectBox3(b Box3) RayHit {
	tNear := -boundsInf
	tFar := boundsInf

	for i := 0; i < 3; i++ {
		o := r.Origin[i]
		d := r.Direction[i]
		if mgl32.Abs(d) < Epsilon {
			// Parallel to this slab: origin must already be between the faces.
			if o < b.Min[i] || o > b.Max[i] {
				return RayHit{}
			}
			continue
		}
		inv := 1 / d
		t1 := (b.Min[i] - o) * inv
		t2 := (b.Max[i] - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tNear {
			tNear = t1
		}
		if t2 < tFar {
			tFar = t2
		}
		if tNear > tFar {
			return RayHit{}
		}
	}

	if tFar <= 0 {
		return RayHit{}
	}
	t := tNear
	if t <= 0 {
		t = tFar
	}
	return RayHit{Hit: true, T: t, Point: r.At(t)}
}

// IntersectTriangle is Möller-Trumbore in barycentric coordinates. Both
// windings are accepted. Near-parallel rays, barycentric coordinates outside
// the triangle, and hits at or behind the origin all report no hit.
func (r Ray) IntersectTriangle(v0, v1, v2 mgl32.Vec3) RayHit {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)

	h := r.Direction.Cross(e2)
	det := e1.Dot(h)
	if det > -Epsilon && det < Epsilon {
		return RayHit{}
	}
	invDet := 1 / det

	s := r.Origin.Sub(v0)
	u := invDet * s.Dot(h)
	if u < 0 || u > 1 {
		return RayHit{}
	}

	q := s.Cross(e1)
	v := invDet * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return RayHit{}
	}

	t := invDet * e2.Dot(q)
	if t <= Epsilon {
		return RayHit{}
	}
	return RayHit{Hit: true, T: t, Point: r.At(t)}
}

// ToLocal maps a world-space ray into the local space of a transform given by
// its world components: inverse translation, then inverse rotation, then
// inverse non-uniform scale, in that order. The local direction is
// renormalized since non-uniform scale does not preserve length.
func (r Ray) ToLocal(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) Ray {
	invRot := rotation.Conjugate()
	origin := DivElem3(invRot.Rotate(r.Origin.Sub(position)), scale)
	dir := DivElem3(invRot.Rotate(r.Direction), scale)
	if l := dir.Len(); l > Epsilon {
		dir = dir.Mul(1 / l)
	}
	return Ray{Origin: origin, Direction: dir}
}

// IntersectMesh transforms the ray into the mesh's local space, rejects early
// against the local bounding box, then tests every triangle keeping the
// closest hit. The winning local hit is mapped back to world space and T is
// reported along the original world ray. Assumes the mesh's composed world
// transform carries no negative scale, like WorldRotation and WorldScale.
func (r Ray) IntersectMesh(m *TriangleMesh) MeshHit {
	world := m.WorldMatrix()
	position, rotation, scale := Decompose(world, false)
	local := r.ToLocal(position, rotation, scale)

	// Cheap reject before any triangle work.
	if m.LocalBounds.IsEmpty() || !local.IntersectBox3(m.LocalBounds).Hit {
		return MeshHit{}
	}

	best := RayHit{}
	bestTriangle := -1
	count := m.TriangleCount()
	for i := 0; i < count; i++ {
		a, b, c, ok := m.Triangle(i)
		if !ok {
			break
		}
		h := local.IntersectTriangle(a, b, c)
		if h.Hit && (!best.Hit || h.T < best.T) {
			best = h
			bestTriangle = i
		}
	}
	if !best.Hit {
		return MeshHit{}
	}

	worldPoint := world.Mul4x1(best.Point.Vec4(1)).Vec3()
	dirLenSq := r.Direction.Dot(r.Direction)
	t := float32(0)
	if dirLenSq > Epsilon {
		t = worldPoint.Sub(r.Origin).Dot(r.Direction) / dirLenSq
	}

	return MeshHit{
		RayHit:   RayHit{Hit: true, T: t, Point: worldPoint},
		Mesh:     m,
		Triangle: bestTriangle,
	}
}
