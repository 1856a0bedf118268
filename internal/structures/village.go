// Package structures stamps cross-chunk structures — currently villages —
// onto an already-generated world. Placement is grid-based and fully
// deterministic from the world seed, grounded on the same splitmix64-style
// cell-hash/jitter architecture used for village placement in the wider
// voxel-game example pool.
package structures

import (
	"voxelcraft/internal/block"
	"voxelcraft/internal/world"
)

const (
	cellSize       = 256
	villageChance  = 60 // percent of cells that host a village
	jitterRange    = 80 // +/- jitter of a village center within its cell
	footprintRadius = 40 // generous bound on how far a village can write, for neighborhood overlap tests
	neighborhoodR  = 2   // the 5x5 rule: stamp only once this many chunks in every direction are loaded
)

// Generator deterministically places villages on a 256-block grid.
type Generator struct {
	seed int64
}

// New builds a structure Generator for seed.
func New(seed int64) *Generator {
	return &Generator{seed: seed}
}

// splitmix64-style integer hash, stable across runs for identical inputs.
func hash(a, b, salt, seed int64) uint64 {
	v := uint64(a)*0x9E3779B97F4A7C15 ^ uint64(b)*0xC2B2AE3D27D4EB4F ^ uint64(salt)*0x165667B19E3779F9 ^ uint64(seed)
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

// rng is a tiny deterministic PRNG seeded from a cell hash, used to jitter
// centers and pick building layouts without disturbing the noise package's
// permutation state.
type rng struct{ s uint64 }

func newRNG(seed uint64) *rng { return &rng{s: seed ^ 0x2545F4914F6CDD1D} }

func (r *rng) next() uint64 {
	r.s += 0x9E3779B97F4A7C15
	z := r.s
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// intRange returns a deterministic integer in [lo, hi].
func (r *rng) intRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	span := uint64(hi - lo + 1)
	return lo + int(r.next()%span)
}

func floorDiv(a, b int) int {
	if a < 0 {
		return (a - b + 1) / b
	}
	return a / b
}

// cellOf returns the grid cell containing world coordinate (wx, wz).
func cellOf(wx, wz int) (int, int) {
	return floorDiv(wx, cellSize), floorDiv(wz, cellSize)
}

// villageCenter returns the world-space center of the village in cell
// (cellX, cellZ), and whether that cell hosts one at all. The cell
// containing (0,0) always hosts a village, fixed at (40,40) so the player
// spawns next to it.
func (g *Generator) villageCenter(cellX, cellZ int) (wx, wz int, ok bool) {
	if cellX == 0 && cellZ == 0 {
		return 40, 40, true
	}

	roll := hash(int64(cellX), int64(cellZ), 1, g.seed) % 100
	if roll >= villageChance {
		return 0, 0, false
	}

	r := newRNG(hash(int64(cellX), int64(cellZ), 2, g.seed))
	baseX := cellX*cellSize + cellSize/2
	baseZ := cellZ*cellSize + cellSize/2
	wx = baseX + r.intRange(-jitterRange, jitterRange)
	wz = baseZ + r.intRange(-jitterRange, jitterRange)
	return wx, wz, true
}

// CentersNear returns every village center whose footprint could overlap
// the chunk at (cx, cz), provided that chunk's 5x5 neighborhood is fully
// loaded. The world loop calls it every tick for each loaded chunk in range;
// Stamp's anchor set keeps repeated results from being stamped twice.
func (g *Generator) CentersNear(store *world.Store, cx, cz int) [][2]int {
	if !store.NeighborhoodLoaded(cx, cz, neighborhoodR) {
		return nil
	}

	wx := cx * world.ChunkSizeX
	wz := cz * world.ChunkSizeZ
	loCellX, loCellZ := cellOf(wx-footprintRadius, wz-footprintRadius)
	hiCellX, hiCellZ := cellOf(wx+world.ChunkSizeX+footprintRadius, wz+world.ChunkSizeZ+footprintRadius)

	var centers [][2]int
	for ccx := loCellX; ccx <= hiCellX; ccx++ {
		for ccz := loCellZ; ccz <= hiCellZ; ccz++ {
			cwx, cwz, ok := g.villageCenter(ccx, ccz)
			if !ok {
				continue
			}
			dx := cwx - (wx + world.ChunkSizeX/2)
			dz := cwz - (wz + world.ChunkSizeZ/2)
			if dx*dx+dz*dz <= (footprintRadius+world.ChunkSizeX)*(footprintRadius+world.ChunkSizeX) {
				centers = append(centers, [2]int{cwx, cwz})
			}
		}
	}
	return centers
}

// Stamp places a village centered at center onto store, unless that anchor
// has already been stamped this session or the ground there is underwater.
func (g *Generator) Stamp(store *world.Store, center [2]int) {
	anchor := world.Coord{CX: center[0], CZ: center[1]}
	if store.AnchorStamped(anchor) {
		return
	}
	// Mark it stamped immediately: even an aborted (underwater) attempt
	// must never be retried, matching the idempotent placed-set contract.
	store.MarkAnchorStamped(anchor)

	cx, cz := center[0], center[1]
	baseY := store.SurfaceHeight(cx, cz)
	if baseY <= 40 {
		return
	}

	r := newRNG(hash(int64(cx), int64(cz), 3, g.seed))

	clearTrees(store, cx, cz, baseY)
	buildWell(store, cx, cz, baseY)

	buildingCount := r.intRange(4, 7)
	for i := 0; i < buildingCount; i++ {
		angle := r.intRange(0, 359)
		radius := r.intRange(10, 22)
		bx, bz := ringPoint(cx, cz, angle, radius)
		bh := store.SurfaceHeight(bx, bz)
		if bh <= 40 {
			continue
		}
		if diff := bh - baseY; diff > 5 || diff < -5 {
			continue
		}

		kind := r.intRange(0, 2)
		switch kind {
		case 0:
			buildSmallHouse(store, bx, bz, bh, r)
		case 1:
			buildLargeHouse(store, bx, bz, bh, r)
		default:
			buildFarm(store, bx, bz, bh, r)
		}

		stampPath(store, cx, cz, baseY, bx, bz, bh)
	}
}

// clearTrees removes the 15 blocks above the surface across a 61x61 area
// centered on (cx, cz), so trees don't poke through buildings.
func clearTrees(store *world.Store, cx, cz, baseY int) {
	for dx := -30; dx <= 30; dx++ {
		for dz := -30; dz <= 30; dz++ {
			wx, wz := cx+dx, cz+dz
			h := store.SurfaceHeight(wx, wz)
			for y := h + 1; y <= h+15 && y < world.ChunkSizeY; y++ {
				store.SetBlock(wx, y, wz, block.Air)
			}
		}
	}
}

// buildWell stamps the 3x3 cobblestone ring with its water center, log
// pillars, and plank roof at §4.4.3.
func buildWell(store *world.Store, cx, cz, baseY int) {
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			store.SetBlock(cx+dx, baseY, cz+dz, block.Cobblestone)
			if dx == 0 && dz == 0 {
				store.SetBlock(cx, baseY+1, cz, block.Water)
			} else {
				store.SetBlock(cx+dx, baseY+1, cz+dz, block.Cobblestone)
			}
		}
	}
	corners := [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	for _, c := range corners {
		store.SetBlock(cx+c[0], baseY+2, cz+c[1], block.OakLog)
	}
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			store.SetBlock(cx+dx, baseY+3, cz+dz, block.OakPlanks)
		}
	}
}

// ringPoint returns the integer point at the given angle (degrees) and
// radius around (cx, cz), used to scatter building anchors.
func ringPoint(cx, cz, angleDeg, radius int) (int, int) {
	// Avoid importing math/trig tables for a handful of octant directions:
	// approximate the ring with 8 compass directions scaled by radius, which
	// is sufficient jitter for anchor scattering and keeps this pass free of
	// floating point non-determinism across platforms.
	dirs := [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	d := dirs[(angleDeg/45)%8]
	return cx + d[0]*radius, cz + d[1]*radius
}

// buildSmallHouse: 7x5x4 cobble/plank walls, plank roof, doorway, 3 glass
// windows.
func buildSmallHouse(store *world.Store, cx, cz, baseY int, r *rng) {
	width, depth, height := 7, 5, 4
	wallMat := block.Cobblestone
	if r.intRange(0, 1) == 1 {
		wallMat = block.OakPlanks
	}
	x0, z0 := cx-width/2, cz-depth/2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for z := 0; z < depth; z++ {
				onWall := x == 0 || x == width-1 || z == 0 || z == depth-1
				if !onWall {
					continue
				}
				store.SetBlock(x0+x, baseY+1+y, z0+z, wallMat)
			}
		}
	}
	// doorway
	store.SetBlock(x0+width/2, baseY+1, z0, block.Air)
	store.SetBlock(x0+width/2, baseY+2, z0, block.Air)

	// windows
	windows := [3][2]int{{1, 1}, {width - 2, 1}, {width / 2, depth - 1}}
	for _, w := range windows {
		store.SetBlock(x0+w[0], baseY+2, z0+w[1], block.Glass)
	}

	for x := -1; x <= width; x++ {
		for z := -1; z <= depth; z++ {
			store.SetBlock(x0+x, baseY+1+height, z0+z, block.OakPlanks)
		}
	}
}

// buildLargeHouse: 9x11x5 brick walls, plank roof, two-wide doorway, window
// rows.
func buildLargeHouse(store *world.Store, cx, cz, baseY int, r *rng) {
	width, depth, height := 9, 11, 5
	x0, z0 := cx-width/2, cz-depth/2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for z := 0; z < depth; z++ {
				onWall := x == 0 || x == width-1 || z == 0 || z == depth-1
				if !onWall {
					continue
				}
				store.SetBlock(x0+x, baseY+1+y, z0+z, block.Brick)
			}
		}
	}
	// two-wide doorway
	store.SetBlock(x0+width/2, baseY+1, z0, block.Air)
	store.SetBlock(x0+width/2+1, baseY+1, z0, block.Air)
	store.SetBlock(x0+width/2, baseY+2, z0, block.Air)
	store.SetBlock(x0+width/2+1, baseY+2, z0, block.Air)

	for z := 2; z < depth-2; z += 2 {
		store.SetBlock(x0, baseY+2, z0+z, block.Glass)
		store.SetBlock(x0+width-1, baseY+2, z0+z, block.Glass)
	}

	_ = r // reserved for future roof-style variation
	for x := -1; x <= width; x++ {
		for z := -1; z <= depth; z++ {
			store.SetBlock(x0+x, baseY+1+height, z0+z, block.OakPlanks)
		}
	}
}

// buildFarm: 3x3 fenced plot of oak logs around a moisture row of WATER
// flanked by DIRT.
func buildFarm(store *world.Store, cx, cz, baseY int, r *rng) {
	_ = r
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			if dx == 0 && dz == 0 {
				continue
			}
			store.SetBlock(cx+dx, baseY+1, cz+dz, block.OakLog)
		}
	}
	store.SetBlock(cx, baseY, cz, block.Water)
	store.SetBlock(cx-1, baseY, cz, block.Dirt)
	store.SetBlock(cx+1, baseY, cz, block.Dirt)
}

// stampPath draws a Bresenham line from (cx,cz) to (bx,bz), writing a
// 3-wide strip of GRAVEL at each column's own surface height so the path
// follows terrain, and places a lamp post at the path's midpoint. The
// 3-wide strip is oriented across the line's dominant axis, so it stays
// three-wide rather than thinning out along diagonals.
func stampPath(store *world.Store, cx, cz, baseY, bx, bz, destY int) {
	pts := bresenham(cx, cz, bx, bz)
	dxTotal := bx - cx
	dzTotal := bz - cz
	horizontal := abs(dxTotal) >= abs(dzTotal)

	for _, p := range pts {
		h := store.SurfaceHeight(p[0], p[1])
		if horizontal {
			for w := -1; w <= 1; w++ {
				store.SetBlock(p[0], h, p[1]+w, block.Gravel)
			}
		} else {
			for w := -1; w <= 1; w++ {
				store.SetBlock(p[0]+w, h, p[1], block.Gravel)
			}
		}
	}

	if len(pts) > 0 {
		mid := pts[len(pts)/2]
		h := store.SurfaceHeight(mid[0], mid[1])
		for y := 1; y <= 3; y++ {
			store.SetBlock(mid[0], h+y, mid[1], block.OakLog)
		}
		store.SetBlock(mid[0], h+4, mid[1], block.Glass)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// bresenham returns every integer point on the line from (x0,z0) to
// (x1,z1), inclusive.
func bresenham(x0, z0, x1, z1 int) [][2]int {
	dx := abs(x1 - x0)
	dz := -abs(z1 - z0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sz := 1
	if z0 > z1 {
		sz = -1
	}
	err := dx + dz

	var pts [][2]int
	x, z := x0, z0
	for {
		pts = append(pts, [2]int{x, z})
		if x == x1 && z == z1 {
			break
		}
		e2 := 2 * err
		if e2 >= dz {
			err += dz
			x += sx
		}
		if e2 <= dx {
			err += dx
			z += sz
		}
	}
	return pts
}
