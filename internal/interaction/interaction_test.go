package interaction

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"voxelcraft/internal/block"
	"voxelcraft/internal/world"
)

func TestTryBreakRemovesHoveredBlock(t *testing.T) {
	s := storeWithBlock(5, 0, 0, block.Stone)
	c := NewController(s)
	c.RefreshHover(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0})

	now := time.Unix(0, 0)
	if !c.TryBreak(now) {
		t.Fatal("expected break to succeed")
	}
	if s.GetBlock(5, 0, 0) != block.Air {
		t.Error("block should have been removed")
	}
}

func TestBedrockIsUnbreakable(t *testing.T) {
	s := storeWithBlock(5, 0, 0, block.Bedrock)
	c := NewController(s)
	c.RefreshHover(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0})

	if c.TryBreak(time.Unix(0, 0)) {
		t.Error("bedrock must not be breakable")
	}
}

func TestBreakRespectsCooldown(t *testing.T) {
	s := storeWithBlock(5, 0, 0, block.Stone)
	c := NewController(s)
	c.RefreshHover(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0})

	t0 := time.Unix(0, 0)
	if !c.TryBreak(t0) {
		t.Fatal("first break should succeed")
	}

	s2 := storeWithBlock(5, 0, 0, block.Stone)
	c.store = s2
	c.RefreshHover(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0})
	if c.TryBreak(t0.Add(100 * time.Millisecond)) {
		t.Error("a second break within the cooldown window must be rejected")
	}
	if c.TryBreak(t0.Add(300 * time.Millisecond)) != true {
		t.Error("a break after the cooldown elapses should succeed")
	}
}

func TestTryPlacePlacesAtPreviousCell(t *testing.T) {
	s := storeWithBlock(5, 0, 0, block.Stone)
	c := NewController(s)
	c.RefreshHover(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0})

	placed := c.TryPlace(time.Unix(0, 0), block.Dirt, mgl32.Vec3{50, 50, 50}, 0.3, 1.62)
	if !placed {
		t.Fatal("expected placement to succeed")
	}
	if s.GetBlock(4, 0, 0) != block.Dirt {
		t.Error("block should have been placed at the previous (empty) cell")
	}
}

func TestTryPlaceRejectsOverlapWithPlayer(t *testing.T) {
	s := storeWithBlock(5, 0, 0, block.Stone)
	c := NewController(s)
	c.RefreshHover(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0})

	// Player standing right where the placement (4,0,0) would go.
	placed := c.TryPlace(time.Unix(0, 0), block.Dirt, mgl32.Vec3{4.5, 0, 0.5}, 0.3, 1.62)
	if placed {
		t.Error("placement overlapping the player's own AABB must be rejected")
	}
}
