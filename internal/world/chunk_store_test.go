package world

import (
	"testing"

	"voxelcraft/internal/block"
)

func TestChunkIndexFormula(t *testing.T) {
	// The flat-array index is (x*128 + y)*16 + z; verify GetBlock/SetBlock
	// round-trip at the extremes of the volume.
	c := NewChunk(0, 0)
	pts := [][3]int{{0, 0, 0}, {15, 127, 15}, {1, 64, 7}, {15, 0, 0}, {0, 127, 15}}
	for i, p := range pts {
		id := block.ID((i % 16) + 1)
		c.SetBlock(p[0], p[1], p[2], id)
		if got := c.GetBlock(p[0], p[1], p[2]); got != id {
			t.Errorf("round-trip at %v: got %v want %v", p, got, id)
		}
	}
}

func TestChunkOutOfRangeIsAirAndDropsWrites(t *testing.T) {
	c := NewChunk(0, 0)
	if got := c.GetBlock(0, 200, 0); got != block.Air {
		t.Errorf("y out of range must read AIR, got %v", got)
	}
	c.SetClean() // NewChunk starts dirty; clear it so the check below sees only the writes
	c.SetBlock(0, -1, 0, block.Stone)
	c.SetBlock(0, 200, 0, block.Stone)
	// nothing to assert directly (dropped), but must not panic and chunk
	// stays otherwise untouched
	if c.IsDirty() {
		t.Error("an out-of-range write must not mark the chunk dirty")
	}
}

func TestStoreGetBlockUnloadedIsAir(t *testing.T) {
	s := NewStore()
	if got := s.GetBlock(1000, 50, 1000); got != block.Air {
		t.Errorf("unloaded chunk must read AIR, got %v", got)
	}
	if got := s.GetBlock(0, -1, 0); got != block.Air {
		t.Errorf("out-of-range y must read AIR, got %v", got)
	}
}

func TestStoreSetBlockDropsWhenChunkNotLoaded(t *testing.T) {
	s := NewStore()
	s.SetBlock(5, 10, 5, block.Stone) // chunk (0,0) not loaded: must be a no-op
	if got := s.GetBlock(5, 10, 5); got != block.Air {
		t.Errorf("write to unloaded chunk must be dropped, got %v", got)
	}
}

func TestDirtyPropagationAcrossBoundary(t *testing.T) {
	s := NewStore()
	origin := s.GetChunk(0, 0, true)
	neighbor := s.GetChunk(-1, 0, true)
	origin.SetClean()
	neighbor.SetClean()

	// x=0 is the west boundary of chunk (0,0): local x=0 maps to world x=0.
	s.SetBlock(0, 10, 5, block.Stone)

	if !origin.IsDirty() {
		t.Error("owning chunk must be dirtied by the write")
	}
	if !neighbor.IsDirty() {
		t.Error("neighbor sharing the touched boundary must be dirtied too")
	}
}

func TestDirtyPropagationInteriorDoesNotTouchNeighbors(t *testing.T) {
	s := NewStore()
	origin := s.GetChunk(0, 0, true)
	neighbor := s.GetChunk(1, 0, true)
	origin.SetClean()
	neighbor.SetClean()

	s.SetBlock(8, 10, 8, block.Stone) // interior local coord (8,8)

	if !origin.IsDirty() {
		t.Error("owning chunk must be dirtied")
	}
	if neighbor.IsDirty() {
		t.Error("neighbor chunk must not be dirtied by an interior write")
	}
}

func TestSurfaceHeightSkipsAirWaterLeavesLog(t *testing.T) {
	s := NewStore()
	s.GetChunk(0, 0, true)
	s.SetBlock(3, 0, 3, block.Bedrock)
	s.SetBlock(3, 1, 3, block.Stone)
	s.SetBlock(3, 2, 3, block.OakLog)
	s.SetBlock(3, 3, 3, block.OakLeaves)
	s.SetBlock(3, 4, 3, block.Water)

	if got := s.SurfaceHeight(3, 3); got != 1 {
		t.Errorf("SurfaceHeight = %d, want 1 (topmost non air/water/leaves/log)", got)
	}
}

func TestRoundTripBreakPlaceDirtiesExpectedChunkCount(t *testing.T) {
	cases := []struct {
		name      string
		x, z      int
		wantDirty int
	}{
		{"interior", 8, 8, 1},
		{"x-edge", 0, 8, 2},
		{"z-edge", 8, 0, 2},
		{"corner", 0, 0, 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore()
			for dcx := -1; dcx <= 1; dcx++ {
				for dcz := -1; dcz <= 1; dcz++ {
					s.GetChunk(dcx, dcz, true)
				}
			}
			for dcx := -1; dcx <= 1; dcx++ {
				for dcz := -1; dcz <= 1; dcz++ {
					s.GetChunk(dcx, dcz, false).SetClean()
				}
			}

			s.SetBlock(tc.x, 10, tc.z, block.Air)   // break
			s.SetBlock(tc.x, 10, tc.z, block.Stone) // place
			if got := s.GetBlock(tc.x, 10, tc.z); got != block.Stone {
				t.Fatalf("round-trip: got block %v, want Stone", got)
			}

			dirty := 0
			for dcx := -1; dcx <= 1; dcx++ {
				for dcz := -1; dcz <= 1; dcz++ {
					if s.GetChunk(dcx, dcz, false).IsDirty() {
						dirty++
					}
				}
			}
			if dirty != tc.wantDirty {
				t.Errorf("(%d,%d): %d chunks dirty, want %d", tc.x, tc.z, dirty, tc.wantDirty)
			}
		})
	}
}

func TestAppendChunksInRadiusIsCircular(t *testing.T) {
	s := NewStore()
	for dx := -3; dx <= 3; dx++ {
		for dz := -3; dz <= 3; dz++ {
			s.GetChunk(dx, dz, true)
		}
	}
	got := s.AppendChunksInRadius(0, 0, 2, nil)
	for _, cwc := range got {
		if cwc.Coord.CX*cwc.Coord.CX+cwc.Coord.CZ*cwc.Coord.CZ > 4 {
			t.Errorf("chunk %v outside radius 2 was included", cwc.Coord)
		}
	}
	// (3,0) is outside radius 2 and must not be present
	for _, cwc := range got {
		if cwc.Coord == (Coord{CX: 3, CZ: 0}) {
			t.Error("(3,0) should be excluded from radius-2 query")
		}
	}
}

func TestEvictOutsideRadiusDisposesMeshes(t *testing.T) {
	s := NewStore()
	c := s.GetChunk(10, 10, true)
	c.OpaqueMesh = "fake-mesh"
	removed := s.EvictOutsideRadius(0, 0, 1)
	if removed == 0 {
		t.Fatal("expected at least one chunk evicted")
	}
	if s.HasChunk(10, 10) {
		t.Error("evicted chunk must no longer be present")
	}
}

func TestFloorDivAndModMatchEuclideanConvention(t *testing.T) {
	cases := []struct{ a, b, fd, m int }{
		{5, 16, 0, 5},
		{-1, 16, -1, 15},
		{-16, 16, -1, 0},
		{-17, 16, -2, 15},
		{31, 16, 1, 15},
	}
	for _, c := range cases {
		if got := floorDiv(c.a, c.b); got != c.fd {
			t.Errorf("floorDiv(%d,%d) = %d, want %d", c.a, c.b, got, c.fd)
		}
		if got := mod(c.a, c.b); got != c.m {
			t.Errorf("mod(%d,%d) = %d, want %d", c.a, c.b, got, c.m)
		}
	}
}

func BenchmarkAppendChunksInRadius(b *testing.B) {
	s := NewStore()
	for dx := -10; dx <= 10; dx++ {
		for dz := -10; dz <= 10; dz++ {
			s.GetChunk(dx, dz, true)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.AppendChunksInRadius(0, 0, 8, nil)
	}
}
