package spatial

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/google/uuid"
)

// Node is a hierarchical transform node. It owns its children (the tree edges
// are the only ownership there is); the parent pointer is a non-owning
// back-reference that attach/detach keep consistent.
//
// Local position, rotation and scale are mutated through explicit setters
// which mark the cached local matrix dirty. The cached world matrix goes
// stale whenever the local matrix does, or whenever any ancestor moves;
// staleness is tracked with two flags and resolved lazily, either for the
// whole subtree (UpdateTransforms) or for a single node (WorldMatrix).
//
// Nodes are not safe for concurrent use. The intended consumer resolves
// transforms once per frame and reads them afterwards, all on one goroutine.
type Node struct {
	ID   uuid.UUID
	Name string

	parent   *Node
	children []*Node

	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3

	localMatrix mgl32.Mat4
	worldMatrix mgl32.Mat4

	localDirty bool
	worldDirty bool
}

// NewNode returns a detached node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		ID:          uuid.New(),
		Name:        name,
		rotation:    mgl32.QuatIdent(),
		scale:       mgl32.Vec3{1, 1, 1},
		localMatrix: mgl32.Ident4(),
		worldMatrix: mgl32.Ident4(),
	}
}

// Position returns the local position.
func (n *Node) Position() mgl32.Vec3 { return n.position }

// Rotation returns the local rotation.
func (n *Node) Rotation() mgl32.Quat { return n.rotation }

// Scale returns the local scale.
func (n *Node) Scale() mgl32.Vec3 { return n.scale }

// SetPosition sets the local position.
func (n *Node) SetPosition(p mgl32.Vec3) {
	n.position = p
	n.markLocalDirty()
}

// Translate offsets the local position.
func (n *Node) Translate(delta mgl32.Vec3) {
	n.position = n.position.Add(delta)
	n.markLocalDirty()
}

// SetRotation sets the local rotation.
func (n *Node) SetRotation(q mgl32.Quat) {
	n.rotation = q
	n.markLocalDirty()
}

// Rotate composes q onto the local rotation (q applied after the current
// rotation, matching the matrix convention).
func (n *Node) Rotate(q mgl32.Quat) {
	n.rotation = q.Mul(n.rotation).Normalize()
	n.markLocalDirty()
}

// SetEuler sets the local rotation from XYZ-order Euler angles (radians).
func (n *Node) SetEuler(x, y, z float32) {
	n.rotation = EulerToQuat(x, y, z)
	n.markLocalDirty()
}

// SetScale sets the local scale.
func (n *Node) SetScale(s mgl32.Vec3) {
	n.scale = s
	n.markLocalDirty()
}

// LookAt rotates the node so its -Z axis points from its local position
// towards target. Same precondition as LookAtQuat: up must not be parallel
// to the view direction.
func (n *Node) LookAt(target, up mgl32.Vec3) {
	n.rotation = LookAtQuat(n.position, target, up)
	n.markLocalDirty()
}

func (n *Node) markLocalDirty() {
	n.localDirty = true
	n.markWorldDirty()
}

// markWorldDirty flags the whole subtree. Propagation is unconditional: we
// never compare recomputed matrices against their previous values to stop
// early, a stale flag on an unchanged subtree only costs a recompute.
func (n *Node) markWorldDirty() {
	n.worldDirty = true
	for _, c := range n.children {
		c.markWorldDirty()
	}
}

// Parent returns the parent node, nil when detached.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children. The returned slice is the node's own
// storage; callers must not grow or reorder it.
func (n *Node) Children() []*Node { return n.children }

// Attach adds child under n, detaching it from any current parent first.
// Attaching invalidates the child's world transform. Attaching a node to
// itself or to one of its own descendants is a caller error and corrupts
// the tree.
func (n *Node) Attach(child *Node) {
	if child.parent == n {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	child.markWorldDirty()
}

// RemoveChild detaches child from n. Returns false and leaves both trees
// untouched when child is not one of n's children. Never leaves a dangling
// parent back-reference behind.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			child.markWorldDirty()
			return true
		}
	}
	return false
}

// Detach removes the node from its parent. Returns false when already
// detached.
func (n *Node) Detach() bool {
	if n.parent == nil {
		return false
	}
	return n.parent.RemoveChild(n)
}

// Traverse visits n and its subtree depth-first, pre-order. Returning false
// from visit skips the node's children. The tree must not be structurally
// mutated (attach/detach) while a traversal is running.
func (n *Node) Traverse(visit func(*Node) bool) {
	if !visit(n) {
		return
	}
	for _, c := range n.children {
		c.Traverse(visit)
	}
}

// Find returns the first node in the subtree with the given ID, or nil.
func (n *Node) Find(id uuid.UUID) *Node {
	var found *Node
	n.Traverse(func(node *Node) bool {
		if found != nil {
			return false
		}
		if node.ID == id {
			found = node
			return false
		}
		return true
	})
	return found
}

// UpdateTransforms resolves the whole subtree top-down: stale local matrices
// are recomposed, then combined with the parent's already-resolved world
// matrix. Call once per frame on the root before reading world state.
func (n *Node) UpdateTransforms() {
	n.resolveLocal()
	if n.worldDirty {
		if n.parent != nil {
			n.worldMatrix = n.parent.worldMatrix.Mul4(n.localMatrix)
		} else {
			n.worldMatrix = n.localMatrix
		}
		n.worldDirty = false
	}
	for _, c := range n.children {
		c.UpdateTransforms()
	}
}

func (n *Node) resolveLocal() {
	if n.localDirty {
		n.localMatrix = Compose(n.position, n.rotation, n.scale)
		n.localDirty = false
	}
}

// LocalMatrix returns the node's local transform, recomposing it if stale.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	n.resolveLocal()
	return n.localMatrix
}

// WorldMatrix returns the node's current world transform without touching
// the rest of the tree: ancestors are resolved first, root to node, then the
// result is read off. Siblings and descendants keep their stale flags.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	n.resolveWorld()
	return n.worldMatrix
}

func (n *Node) resolveWorld() {
	if n.parent != nil {
		n.parent.resolveWorld()
	}
	n.resolveLocal()
	if n.worldDirty {
		if n.parent != nil {
			n.worldMatrix = n.parent.worldMatrix.Mul4(n.localMatrix)
		} else {
			n.worldMatrix = n.localMatrix
		}
		n.worldDirty = false
	}
}

// WorldPosition returns the node's position in world space.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}

// WorldRotation returns the node's rotation in world space. Assumes the
// composed world transform carries no negative scale.
func (n *Node) WorldRotation() mgl32.Quat {
	_, rot, _ := Decompose(n.WorldMatrix(), false)
	return rot
}

// WorldScale returns the node's scale in world space. Same assumption as
// WorldRotation.
func (n *Node) WorldScale() mgl32.Vec3 {
	_, _, scale := Decompose(n.WorldMatrix(), false)
	return scale
}
