// Package interaction resolves what the player is looking at and routes
// break/place requests against it: a short-step raycast against the block
// grid, placement/break cooldown, and the AABB-overlap guard that stops a
// player from placing a block inside themself.
package interaction

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"voxelcraft/internal/block"
	"voxelcraft/internal/profiling"
	"voxelcraft/internal/world"
)

const (
	stepSize    = 0.02
	maxDistance = 6.0
)

// Hit describes a block the player is looking at: the cell itself, and the
// empty cell immediately before it along the ray (where a placed block
// would go).
type Hit struct {
	Block    [3]int
	Previous [3]int
	Distance float32
	Found    bool
}

// Raycast marches from start along direction (normalized) in stepSize
// increments up to maxDistance, returning the first solid cell hit and the
// empty cell just before it.
func Raycast(store *world.Store, start, direction mgl32.Vec3) Hit {
	defer profiling.Track("interaction.Raycast")()

	steps := int(maxDistance / stepSize)
	prev := [3]int{
		int(math.Floor(float64(start.X()))),
		int(math.Floor(float64(start.Y()))),
		int(math.Floor(float64(start.Z()))),
	}

	for i := 0; i <= steps; i++ {
		dist := float32(i) * stepSize
		pos := start.Add(direction.Mul(dist))
		cell := [3]int{
			int(math.Floor(float64(pos.X()))),
			int(math.Floor(float64(pos.Y()))),
			int(math.Floor(float64(pos.Z()))),
		}

		if cell == prev {
			continue
		}

		if block.IsSolid(store.GetBlock(cell[0], cell[1], cell[2])) {
			return Hit{Block: cell, Previous: prev, Distance: dist, Found: true}
		}
		prev = cell
	}

	return Hit{}
}
