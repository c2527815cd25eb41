package spatial

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TriangleMesh is a triangulated surface hanging off a scene graph node.
// It keeps raw vertex and index buffers for the raycaster plus local-space
// bounds that are recomputed whenever the geometry changes.
//
// Positions is a flat xyz buffer. Indices is a triangle list into it; when
// empty, every three consecutive positions form a triangle. Indices must be
// in range for the position buffer, that is on the caller.
type TriangleMesh struct {
	*Node

	Positions []float32
	Indices   []uint32

	LocalBounds Box3
	LocalSphere Sphere
}

// NewTriangleMesh returns an empty mesh on a fresh detached node.
func NewTriangleMesh(name string) *TriangleMesh {
	return &TriangleMesh{
		Node:        NewNode(name),
		LocalBounds: NewBox3(),
	}
}

// SetPositions replaces the vertex buffer and recomputes the local bounds.
func (m *TriangleMesh) SetPositions(buf []float32) {
	m.Positions = buf
	m.ComputeBounds()
}

// SetIndices replaces the triangle index list.
func (m *TriangleMesh) SetIndices(indices []uint32) {
	m.Indices = indices
}

// ComputeBounds rebuilds the local bounding box and sphere from the current
// vertex buffer in a single linear pass each.
func (m *TriangleMesh) ComputeBounds() {
	m.LocalBounds = Box3FromBuffer(m.Positions)
	m.LocalSphere = SphereFromBuffer(m.Positions)
}

// TriangleCount returns the number of triangles in the mesh.
func (m *TriangleMesh) TriangleCount() int {
	if len(m.Indices) > 0 {
		return len(m.Indices) / 3
	}
	return len(m.Positions) / 9
}

// Triangle returns the i-th triangle's corners in local space, ok=false when
// i is out of range.
func (m *TriangleMesh) Triangle(i int) (a, b, c mgl32.Vec3, ok bool) {
	if i < 0 || i >= m.TriangleCount() {
		return a, b, c, false
	}
	if len(m.Indices) > 0 {
		return m.vertex(int(m.Indices[i*3])),
			m.vertex(int(m.Indices[i*3+1])),
			m.vertex(int(m.Indices[i*3+2])),
			true
	}
	return m.vertex(i * 3), m.vertex(i*3 + 1), m.vertex(i*3 + 2), true
}

func (m *TriangleMesh) vertex(i int) mgl32.Vec3 {
	return mgl32.Vec3{m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2]}
}

// WorldBounds returns the mesh's local box mapped into world space.
func (m *TriangleMesh) WorldBounds() Box3 {
	return m.LocalBounds.Transform(m.WorldMatrix())
}
