package interaction

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"voxelcraft/internal/block"
	"voxelcraft/internal/profiling"
	"voxelcraft/internal/world"
)

// breakPlaceCooldown is the minimum time between two break-or-place actions
// from the same Controller, regardless of which action each one is.
const breakPlaceCooldown = 250 * time.Millisecond

// Controller tracks the player's current hover target and enforces the
// break/place cooldown. It holds no input-device state: callers decide when
// a break or place was requested (mouse click, gamepad button, whatever)
// and call TryBreak/TryPlace.
type Controller struct {
	store *world.Store

	Hover      Hit
	lastAction time.Time
}

// NewController builds an interaction Controller bound to store.
func NewController(store *world.Store) *Controller {
	return &Controller{store: store}
}

// RefreshHover re-casts the ray from eye position along facing and updates
// Hover. Call once per frame before TryBreak/TryPlace.
func (c *Controller) RefreshHover(eye, facing mgl32.Vec3) {
	c.Hover = Raycast(c.store, eye, facing)
}

func (c *Controller) onCooldown(now time.Time) bool {
	return now.Sub(c.lastAction) < breakPlaceCooldown
}

// TryBreak removes the hovered block, unless nothing is hovered, the
// hovered block is BEDROCK (unbreakable), or the cooldown hasn't elapsed.
// Returns whether a block was broken.
func (c *Controller) TryBreak(now time.Time) bool {
	defer profiling.Track("interaction.TryBreak")()
	if !c.Hover.Found || c.onCooldown(now) {
		return false
	}
	x, y, z := c.Hover.Block[0], c.Hover.Block[1], c.Hover.Block[2]
	if c.store.GetBlock(x, y, z) == block.Bedrock {
		return false
	}
	c.store.SetBlock(x, y, z, block.Air)
	c.lastAction = now
	return true
}

// TryPlace places id into the cell just before the hovered block, unless
// nothing is hovered, the cooldown hasn't elapsed, that cell is already
// occupied, or the placement would overlap the player's own AABB (playerPos
// is the player's feet position; halfWidth/height its collision box).
// Returns whether a block was placed.
func (c *Controller) TryPlace(now time.Time, id block.ID, playerPos mgl32.Vec3, halfWidth, height float32) bool {
	defer profiling.Track("interaction.TryPlace")()
	if !c.Hover.Found || c.onCooldown(now) {
		return false
	}
	x, y, z := c.Hover.Previous[0], c.Hover.Previous[1], c.Hover.Previous[2]
	if c.store.GetBlock(x, y, z) != block.Air {
		return false
	}
	if overlapsPlayer(x, y, z, playerPos, halfWidth, height) {
		return false
	}
	c.store.SetBlock(x, y, z, id)
	c.lastAction = now
	return true
}

// overlapsPlayer reports whether the unit cell at (x,y,z) intersects the
// player's AABB, the guard that stops a player from sealing themself inside
// a wall at their own feet.
func overlapsPlayer(x, y, z int, pos mgl32.Vec3, halfWidth, height float32) bool {
	blockMinX, blockMaxX := float32(x), float32(x)+1.0
	blockMinY, blockMaxY := float32(y), float32(y)+1.0
	blockMinZ, blockMaxZ := float32(z), float32(z)+1.0

	return pos.X()-halfWidth < blockMaxX && pos.X()+halfWidth > blockMinX &&
		pos.Y() < blockMaxY && pos.Y()+height > blockMinY &&
		pos.Z()-halfWidth < blockMaxZ && pos.Z()+halfWidth > blockMinZ
}
