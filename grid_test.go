package spatial

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpatialHashGridQueries(t *testing.T) {
	grid := NewSpatialHashGrid(2.0)

	a := NewNode("a")
	b := NewNode("b")
	farAway := NewNode("far")

	boxA := Box3{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 1, 1}}
	boxB := Box3{Min: mgl32.Vec3{0.5, 0.5, 0.5}, Max: mgl32.Vec3{1.5, 1.5, 1.5}}
	boxFar := Box3{Min: mgl32.Vec3{100, 100, 100}, Max: mgl32.Vec3{101, 101, 101}}

	grid.Insert(a.ID, boxA)
	grid.Insert(b.ID, boxB)
	grid.Insert(farAway.ID, boxFar)

	candidates := grid.QueryBox(boxA)
	assert.Contains(t, candidates, a.ID)
	assert.Contains(t, candidates, b.ID)
	assert.NotContains(t, candidates, farAway.ID)

	// Results are deduplicated even when a box spans several cells.
	wide := Box3{Min: mgl32.Vec3{-5, -5, -5}, Max: mgl32.Vec3{5, 5, 5}}
	grid.Insert(NewNode("wide").ID, wide)
	seen := map[string]int{}
	for _, id := range grid.QueryBox(wide) {
		seen[id.String()]++
	}
	for id, count := range seen {
		require.Equal(t, 1, count, "id %s returned %d times", id, count)
	}
}

func TestSpatialHashGridRadiusAndClear(t *testing.T) {
	grid := NewSpatialHashGrid(1.0)

	id := NewNode("n").ID
	grid.Insert(id, Box3{Min: mgl32.Vec3{3, 0, 0}, Max: mgl32.Vec3{4, 1, 1}})

	assert.Contains(t, grid.QueryRadius(mgl32.Vec3{3.5, 0.5, 0.5}, 1), id)
	assert.Empty(t, grid.QueryRadius(mgl32.Vec3{-10, 0, 0}, 1))

	// Degenerate boxes are ignored rather than hashed at infinity.
	grid.Insert(NewNode("empty").ID, NewBox3())

	grid.Clear()
	assert.Empty(t, grid.QueryRadius(mgl32.Vec3{3.5, 0.5, 0.5}, 1))
}
