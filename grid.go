package spatial

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/google/uuid"
)

// SpatialHashGrid is a broad-phase index over world-space bounding boxes.
// Insert boxes keyed by node ID, then query a region to get candidate IDs;
// exact overlap is still the caller's job (the grid only knows cells).
type SpatialHashGrid struct {
	cellSize float32
	cells    map[uint64][]uuid.UUID
}

// NewSpatialHashGrid returns an empty grid. cellSize should be on the order
// of a typical object's extent.
func NewSpatialHashGrid(cellSize float32) *SpatialHashGrid {
	return &SpatialHashGrid{
		cellSize: cellSize,
		cells:    make(map[uint64][]uuid.UUID),
	}
}

// Clear empties the grid, keeping the allocated buckets for reuse.
func (grid *SpatialHashGrid) Clear() {
	for k := range grid.cells {
		delete(grid.cells, k)
	}
}

// Insert registers a bounding box in every cell it overlaps.
func (grid *SpatialHashGrid) Insert(id uuid.UUID, b Box3) {
	if b.IsEmpty() {
		return
	}
	minX, maxX := grid.cellIndex(b.Min.X()), grid.cellIndex(b.Max.X())
	minY, maxY := grid.cellIndex(b.Min.Y()), grid.cellIndex(b.Max.Y())
	minZ, maxZ := grid.cellIndex(b.Min.Z()), grid.cellIndex(b.Max.Z())

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				key := grid.hashKey(x, y, z)
				grid.cells[key] = append(grid.cells[key], id)
			}
		}
	}
}

// QueryBox returns the IDs of every box whose cells overlap the query box,
// deduplicated. Candidates only; callers confirm with Box3.Intersects.
func (grid *SpatialHashGrid) QueryBox(b Box3) []uuid.UUID {
	if b.IsEmpty() {
		return nil
	}
	minX, maxX := grid.cellIndex(b.Min.X()), grid.cellIndex(b.Max.X())
	minY, maxY := grid.cellIndex(b.Min.Y()), grid.cellIndex(b.Max.Y())
	minZ, maxZ := grid.cellIndex(b.Min.Z()), grid.cellIndex(b.Max.Z())

	seen := make(map[uuid.UUID]struct{})
	var results []uuid.UUID

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				key := grid.hashKey(x, y, z)
				for _, id := range grid.cells[key] {
					if _, ok := seen[id]; !ok {
						seen[id] = struct{}{}
						results = append(results, id)
					}
				}
			}
		}
	}
	return results
}

// QueryRadius returns broad-phase candidates around a sphere, using the
// sphere's enclosing box.
func (grid *SpatialHashGrid) QueryRadius(center mgl32.Vec3, radius float32) []uuid.UUID {
	r := mgl32.Vec3{radius, radius, radius}
	return grid.QueryBox(Box3{Min: center.Sub(r), Max: center.Add(r)})
}

func (grid *SpatialHashGrid) cellIndex(pos float32) int {
	return int(math.Floor(float64(pos / grid.cellSize)))
}

// Simple hash function for 3D cell coordinates.
func (grid *SpatialHashGrid) hashKey(x, y, z int) uint64 {
	// large primes for mixing
	const p1 = 73856093
	const p2 = 19349663
	const p3 = 83492791
	return uint64(x*p1 ^ y*p2 ^ z*p3)
}
