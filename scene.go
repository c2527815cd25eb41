// Package spatial is the transform and spatial-query core of a realtime 3D
// engine: a scene graph with lazily resolved world matrices, bounding
// volumes, and geometric queries (overlap tests, picking rays, ray casting
// down to the triangle level). Rendering, GPU resources and asset loading
// live elsewhere; this package only needs vertex buffers and transforms.
package spatial

import (
	"github.com/google/uuid"
)

// Scene owns the root of the node tree and a registry of the meshes that
// participate in raycasts and culling.
//
// A scene is single-threaded by design: it is mutated and read within one
// frame-update loop. Resolve transforms once per frame with Update, then
// read world matrices, bounds and query results.
type Scene struct {
	Root *Node

	meshes []*TriangleMesh
	log    Logger
}

// NewScene returns a scene with an empty root node and a silent logger.
func NewScene() *Scene {
	return &Scene{
		Root: NewNode("root"),
		log:  NewNopLogger(),
	}
}

// SetLogger replaces the scene's logger. Passing nil restores the silent one.
func (s *Scene) SetLogger(l Logger) {
	if l == nil {
		l = NewNopLogger()
	}
	s.log = l
}

// AddMesh registers a mesh for raycasts and culling. A detached mesh is
// attached under the scene root; a mesh already parented somewhere in the
// tree keeps its place. Registering the same mesh again is a no-op.
func (s *Scene) AddMesh(m *TriangleMesh) {
	for _, known := range s.meshes {
		if known == m {
			return
		}
	}
	if m.Parent() == nil {
		s.Root.Attach(m.Node)
	}
	s.meshes = append(s.meshes, m)
	s.log.Debugf("scene: added mesh %q (%d triangles)", m.Name, m.TriangleCount())
}

// RemoveMesh unregisters and detaches a mesh. Returns false when the mesh was
// never registered; the tree is left untouched in that case.
func (s *Scene) RemoveMesh(m *TriangleMesh) bool {
	for i, known := range s.meshes {
		if known == m {
			s.meshes = append(s.meshes[:i], s.meshes[i+1:]...)
			m.Detach()
			return true
		}
	}
	return false
}

// Meshes returns the registered meshes.
func (s *Scene) Meshes() []*TriangleMesh {
	return s.meshes
}

// FindNode returns the node with the given ID anywhere in the tree, or nil.
func (s *Scene) FindNode(id uuid.UUID) *Node {
	return s.Root.Find(id)
}

// Update resolves every stale transform in the tree, top-down.
func (s *Scene) Update() {
	s.Root.UpdateTransforms()
}

// Raycast tests the ray against every registered mesh and returns the
// closest world-space hit. Each mesh rejects against its bounding box before
// any triangle is touched.
func (s *Scene) Raycast(r Ray) MeshHit {
	best := MeshHit{}
	for _, m := range s.meshes {
		hit := r.IntersectMesh(m)
		if hit.Hit && (!best.Hit || hit.T < best.T) {
			best = hit
		}
	}
	if s.log.DebugEnabled() {
		if best.Hit {
			s.log.Debugf("scene: raycast hit mesh %q triangle %d at t=%f", best.Mesh.Name, best.Triangle, best.T)
		} else {
			s.log.Debugf("scene: raycast missed %d meshes", len(s.meshes))
		}
	}
	return best
}

// VisibleMeshes returns the registered meshes whose world bounds touch the
// frustum. Call Update first so world matrices are current.
func (s *Scene) VisibleMeshes(f Frustum) []*TriangleMesh {
	var visible []*TriangleMesh
	for _, m := range s.meshes {
		if f.ContainsBox(m.WorldBounds()) {
			visible = append(visible, m)
		}
	}
	return visible
}
