package playerbody

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"voxelcraft/internal/block"
	"voxelcraft/internal/profiling"
	"voxelcraft/internal/world"
)

// collides reports whether an AABB centered on (pos.X, pos.Z) horizontally,
// spanning [pos.Y, pos.Y+height) vertically, and halfWidth wide on each
// horizontal axis overlaps any solid block in store.
func collides(store *world.Store, pos mgl32.Vec3, halfWidth, height float32) bool {
	defer profiling.Track("playerbody.collides")()

	minX := int(math.Floor(float64(pos.X() - halfWidth)))
	maxX := int(math.Floor(float64(pos.X() + halfWidth)))
	minY := int(math.Floor(float64(pos.Y())))
	maxY := int(math.Floor(float64(pos.Y() + height)))
	minZ := int(math.Floor(float64(pos.Z() - halfWidth)))
	maxZ := int(math.Floor(float64(pos.Z() + halfWidth)))

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				if !store.IsSolid(x, y, z) {
					continue
				}
				blockMinX, blockMaxX := float32(x), float32(x)+1.0
				blockMinY, blockMaxY := float32(y), float32(y)+1.0
				blockMinZ, blockMaxZ := float32(z), float32(z)+1.0

				if pos.X()-halfWidth < blockMaxX && pos.X()+halfWidth > blockMinX &&
					pos.Y() < blockMaxY && pos.Y()+height > blockMinY &&
					pos.Z()-halfWidth < blockMaxZ && pos.Z()+halfWidth > blockMinZ {
					return true
				}
			}
		}
	}
	return false
}

// headInWater reports whether the body's eye point at pos+eyeHeight sits
// inside a WATER block (used for breath/vision concerns, not integration).
func headInWater(store *world.Store, pos mgl32.Vec3, eyeHeight float32) bool {
	eyeY := pos.Y() + eyeHeight
	return store.GetBlock(int(math.Floor(float64(pos.X()))), int(math.Floor(float64(eyeY))), int(math.Floor(float64(pos.Z())))) == block.Water
}

// feetInWater reports whether any of the body's four foot corners, at foot
// level or the cell just below it, sit inside a WATER block — the signal
// §4.6 step 3 keys the water/air integration branch on.
func feetInWater(store *world.Store, pos mgl32.Vec3, halfWidth float32) bool {
	footY := int(math.Floor(float64(pos.Y())))
	for _, y := range [2]int{footY, footY - 1} {
		for _, dx := range [2]float32{-halfWidth, halfWidth} {
			for _, dz := range [2]float32{-halfWidth, halfWidth} {
				x := int(math.Floor(float64(pos.X() + dx)))
				z := int(math.Floor(float64(pos.Z() + dz)))
				if store.GetBlock(x, y, z) == block.Water {
					return true
				}
			}
		}
	}
	return false
}

// resolveAxis moves pos along one axis by delta, snapping to the colliding
// block's face (with a small epsilon to avoid re-penetrating it next frame)
// if the destination collides. Returns the resolved coordinate and whether a
// collision stopped the motion.
func resolveAxis(store *world.Store, pos mgl32.Vec3, axis int, delta, halfWidth, height float32) (float32, bool) {
	const epsilon = 0.001

	next := pos
	next[axis] += delta
	if !collides(store, next, halfWidth, height) {
		return next[axis], false
	}

	if delta == 0 {
		return pos[axis], true
	}

	// Binary-search the largest sub-step along this axis that doesn't
	// collide, then snap to the block face with epsilon clearance.
	lo, hi := float32(0), delta
	for i := 0; i < 24; i++ {
		mid := (lo + hi) / 2
		probe := pos
		probe[axis] += mid
		if collides(store, probe, halfWidth, height) {
			hi = mid
		} else {
			lo = mid
		}
	}
	resolved := pos[axis] + lo
	if delta > 0 {
		resolved -= epsilon
	} else {
		resolved += epsilon
	}
	return resolved, true
}

// findStepUpHeight reports whether moving to targetXZ (at the body's current
// Y) is blocked, but would succeed if the body were first lifted by exactly
// one block — the "step up a single block" allowance of §4.6.
func findStepUpHeight(store *world.Store, pos mgl32.Vec3, targetX, targetZ, halfWidth, height float32) (float32, bool) {
	const stepHeight = 1.0

	blocked := pos
	blocked[0], blocked[2] = targetX, targetZ
	if !collides(store, blocked, halfWidth, height) {
		return 0, false
	}

	lifted := blocked
	lifted[1] += stepHeight
	if collides(store, lifted, halfWidth, height) {
		return 0, false
	}
	// Also the vertical sweep from pos.Y to pos.Y+stepHeight must be clear
	// directly above the body's current footprint, otherwise it would clip
	// through a block while rising.
	riseCheck := pos
	riseCheck[1] += stepHeight
	if collides(store, riseCheck, halfWidth, height) {
		return 0, false
	}
	return stepHeight, true
}
