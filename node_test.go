package spatial

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainWorldPosition(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	a.Attach(b)
	b.Attach(c)

	a.SetPosition(mgl32.Vec3{10, 0, 0})
	b.SetPosition(mgl32.Vec3{0, 5, 0})
	c.SetPosition(mgl32.Vec3{0, 0, 2})

	a.UpdateTransforms()

	assert.True(t, vecNear(b.WorldPosition(), mgl32.Vec3{10, 5, 0}, 1e-5),
		"b world position: %v", b.WorldPosition())
	assert.True(t, vecNear(c.WorldPosition(), mgl32.Vec3{10, 5, 2}, 1e-5),
		"c world position: %v", c.WorldPosition())

	// Move the root; the whole chain shifts on the next resolve.
	a.Translate(mgl32.Vec3{1, 1, 1})
	a.UpdateTransforms()
	assert.True(t, vecNear(c.WorldPosition(), mgl32.Vec3{11, 6, 3}, 1e-5),
		"c world position after move: %v", c.WorldPosition())
}

func TestRotationAndScalePropagate(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.Attach(child)

	parent.SetScale(mgl32.Vec3{2, 2, 2})
	parent.SetRotation(mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 0, 1}))
	child.SetPosition(mgl32.Vec3{1, 0, 0})

	parent.UpdateTransforms()

	// Scale doubles the offset, the Z rotation swings +X to +Y.
	assert.True(t, vecNear(child.WorldPosition(), mgl32.Vec3{0, 2, 0}, 1e-5),
		"child world position: %v", child.WorldPosition())
}

func TestWorldMatrixResolvesAncestorsOnly(t *testing.T) {
	root := NewNode("root")
	mid := NewNode("mid")
	leaf := NewNode("leaf")
	sibling := NewNode("sibling")
	root.Attach(mid)
	root.Attach(sibling)
	mid.Attach(leaf)

	root.SetPosition(mgl32.Vec3{0, 0, 7})
	mid.SetPosition(mgl32.Vec3{0, 3, 0})
	leaf.SetPosition(mgl32.Vec3{1, 0, 0})

	// No full tree update: reading the leaf's world matrix walks its
	// ancestors and resolves just that path.
	assert.True(t, vecNear(leaf.WorldPosition(), mgl32.Vec3{1, 3, 7}, 1e-5),
		"leaf world position: %v", leaf.WorldPosition())

	// The sibling was never touched; it still resolves correctly on demand.
	assert.True(t, vecNear(sibling.WorldPosition(), mgl32.Vec3{0, 0, 7}, 1e-5),
		"sibling world position: %v", sibling.WorldPosition())
}

func TestAttachDetachesFromPreviousParent(t *testing.T) {
	p1 := NewNode("p1")
	p2 := NewNode("p2")
	child := NewNode("child")

	p1.Attach(child)
	require.Len(t, p1.Children(), 1)
	require.Equal(t, p1, child.Parent())

	p2.Attach(child)
	assert.Empty(t, p1.Children(), "old parent should have released the child")
	assert.Len(t, p2.Children(), 1)
	assert.Equal(t, p2, child.Parent())
}

func TestAttachInvalidatesWorldTransform(t *testing.T) {
	parent := NewNode("parent")
	parent.SetPosition(mgl32.Vec3{5, 0, 0})
	parent.UpdateTransforms()

	orphan := NewNode("orphan")
	orphan.SetPosition(mgl32.Vec3{1, 0, 0})
	orphan.UpdateTransforms()
	require.True(t, vecNear(orphan.WorldPosition(), mgl32.Vec3{1, 0, 0}, 1e-5))

	parent.Attach(orphan)
	assert.True(t, vecNear(orphan.WorldPosition(), mgl32.Vec3{6, 0, 0}, 1e-5),
		"attaching should invalidate the child's world matrix: %v", orphan.WorldPosition())
}

func TestRemoveChildNotFound(t *testing.T) {
	treeA := NewNode("a")
	aChild := NewNode("a-child")
	treeA.Attach(aChild)

	treeB := NewNode("b")
	bChild := NewNode("b-child")
	treeB.Attach(bChild)

	// Detaching a node from a parent it does not belong to reports not
	// found and leaves both trees untouched.
	assert.False(t, treeA.RemoveChild(bChild))
	assert.Len(t, treeA.Children(), 1)
	assert.Len(t, treeB.Children(), 1)
	assert.Equal(t, treeA, aChild.Parent())
	assert.Equal(t, treeB, bChild.Parent())

	// Detach on an orphan is not found either.
	orphan := NewNode("orphan")
	assert.False(t, orphan.Detach())
}

func TestDetachClearsBackReference(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.Attach(child)

	require.True(t, child.Detach())
	assert.Nil(t, child.Parent())
	assert.Empty(t, parent.Children())

	// Detached node resolves against the world origin again.
	child.SetPosition(mgl32.Vec3{1, 2, 3})
	assert.True(t, vecNear(child.WorldPosition(), mgl32.Vec3{1, 2, 3}, 1e-5))
}

func TestTraverse(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	b := NewNode("b")
	aa := NewNode("aa")
	root.Attach(a)
	root.Attach(b)
	a.Attach(aa)

	var order []string
	root.Traverse(func(n *Node) bool {
		order = append(order, n.Name)
		return true
	})
	assert.Equal(t, []string{"root", "a", "aa", "b"}, order, "pre-order traversal")

	// Returning false prunes the subtree.
	order = order[:0]
	root.Traverse(func(n *Node) bool {
		order = append(order, n.Name)
		return n.Name != "a"
	})
	assert.Equal(t, []string{"root", "a", "b"}, order)
}

func TestFindByID(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	b := NewNode("b")
	root.Attach(a)
	a.Attach(b)

	assert.Equal(t, b, root.Find(b.ID))
	assert.Nil(t, root.Find(NewNode("elsewhere").ID))
}

func TestWorldRotationAndScale(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.Attach(child)

	parent.SetScale(mgl32.Vec3{2, 2, 2})
	child.SetScale(mgl32.Vec3{1, 3, 1})
	rot := mgl32.QuatRotate(0.4, mgl32.Vec3{0, 1, 0})
	parent.SetRotation(rot)

	parent.UpdateTransforms()

	assert.True(t, vecNear(child.WorldScale(), mgl32.Vec3{2, 6, 2}, 1e-3),
		"world scale: %v", child.WorldScale())
	assert.True(t, quatNear(child.WorldRotation(), rot, 1e-3),
		"world rotation: %v", child.WorldRotation())
}
