// Package terrain turns a chunk coordinate into a fully populated Chunk:
// height field, biome flags, strata, caves, ores, and trees. A Generator's
// output depends only on its seed, the requested (cx, cz), and the global
// cave toggle (config.GetCaves) — it never reads neighbor chunks and never
// writes across chunks, which keeps generation a per-chunk function safe to
// run on any worker goroutine.
package terrain

import (
	"math"

	"voxelcraft/internal/block"
	"voxelcraft/internal/config"
	"voxelcraft/internal/noise"
	"voxelcraft/internal/world"
)

const (
	baseHeight  = 40
	seaLevel    = 40
	minHeight   = 1
	maxHeight   = 126
	octaves     = 4
	lacunarity  = 2.0
	persistence = 0.5
)

// Generator is a TerrainGenerator: given a seed, it deterministically fills
// any requested chunk. Each noise layer gets its own seeded instance so the
// layers are decorrelated from one another.
type Generator struct {
	seed int64

	continental *noise.Generator
	hills       *noise.Generator
	roughness   *noise.Generator

	biomeA *noise.Generator
	biomeB *noise.Generator

	cave1 *noise.Generator
	cave2 *noise.Generator

	oreIron   *noise.Generator
	oreCoal   *noise.Generator
	oreGravel *noise.Generator

	treePlacement *noise.Generator
	treeHeight    *noise.Generator
}

// New builds a terrain Generator for seed.
func New(seed int64) *Generator {
	return &Generator{
		seed:          seed,
		continental:   noise.New(seed + 1),
		hills:         noise.New(seed + 2),
		roughness:     noise.New(seed + 3),
		biomeA:        noise.New(seed + 4),
		biomeB:        noise.New(seed + 5),
		cave1:         noise.New(seed + 6),
		cave2:         noise.New(seed + 7),
		oreIron:       noise.New(seed + 8),
		oreCoal:       noise.New(seed + 9),
		oreGravel:     noise.New(seed + 10),
		treePlacement: noise.New(seed + 11),
		treeHeight:    noise.New(seed + 12),
	}
}

// HeightAt computes the terrain surface height (the `height` field of
// §4.3.1) at world (x, z).
func (g *Generator) HeightAt(wx, wz int) int {
	x := float64(wx)
	z := float64(wz)
	cont := g.continental.Fbm2D(x*0.001, z*0.001, octaves, lacunarity, persistence)
	hills := g.hills.Fbm2D(x*0.004, z*0.004, octaves, lacunarity, persistence)
	rough := g.roughness.Fbm2D(x*0.02, z*0.02, octaves, lacunarity, persistence)

	h := float64(baseHeight) + cont*12 + hills*6 + rough*3
	if h < minHeight {
		h = minHeight
	}
	if h > maxHeight {
		h = maxHeight
	}
	return int(math.Floor(h))
}

// biomeFlags returns (desert, snowy, beach) for column (wx, wz) given its
// already-computed height.
func (g *Generator) biomeFlags(wx, wz, height int) (desert, snowy, beach bool) {
	x := float64(wx) * 0.002
	z := float64(wz) * 0.002
	a := g.biomeA.Noise2D(x, z)
	b := g.biomeB.Noise2D(x, z)
	desert = a > 0.3 && b < -0.1
	snowy = a < -0.4
	beach = height >= seaLevel-2 && height <= seaLevel+2
	return
}

// PopulateChunk fills c's block array in place. c must already be at the
// coordinate the generator is expected to fill (c.CX, c.CZ).
func (g *Generator) PopulateChunk(c *world.Chunk) {
	heights := [world.ChunkSizeX][world.ChunkSizeZ]int{}
	desertFlags := [world.ChunkSizeX][world.ChunkSizeZ]bool{}
	snowyFlags := [world.ChunkSizeX][world.ChunkSizeZ]bool{}
	beachFlags := [world.ChunkSizeX][world.ChunkSizeZ]bool{}

	for lx := 0; lx < world.ChunkSizeX; lx++ {
		for lz := 0; lz < world.ChunkSizeZ; lz++ {
			wx := c.CX*world.ChunkSizeX + lx
			wz := c.CZ*world.ChunkSizeZ + lz
			h := g.HeightAt(wx, wz)
			heights[lx][lz] = h
			desertFlags[lx][lz], snowyFlags[lx][lz], beachFlags[lx][lz] = g.biomeFlags(wx, wz, h)
			g.fillColumn(c, lx, lz, wx, wz, h, desertFlags[lx][lz], snowyFlags[lx][lz], beachFlags[lx][lz])
		}
	}

	for lx := 3; lx < world.ChunkSizeX-3; lx++ {
		for lz := 3; lz < world.ChunkSizeZ-3; lz++ {
			h := heights[lx][lz]
			if h <= 41 || desertFlags[lx][lz] || beachFlags[lx][lz] || snowyFlags[lx][lz] {
				continue
			}
			wx := c.CX*world.ChunkSizeX + lx
			wz := c.CZ*world.ChunkSizeZ + lz
			if g.treePlacement.Noise2D(float64(wx)*0.5, float64(wz)*0.5) <= 0.6 {
				continue
			}
			g.placeTree(c, lx, lz, h, wx, wz)
		}
	}

	c.MarkDirty()
}

func (g *Generator) fillColumn(c *world.Chunk, lx, lz, wx, wz, height int, desert, snowy, beach bool) {
	for y := 0; y < world.ChunkSizeY; y++ {
		switch {
		case y == 0:
			c.SetBlock(lx, y, lz, block.Bedrock)

		case y < height-4:
			if g.isCave(wx, y, wz) && y > 5 && y < height-8 {
				c.SetBlock(lx, y, lz, block.Air)
				continue
			}
			c.SetBlock(lx, y, lz, g.orePass(wx, y, wz))

		case y < height:
			if desert || beach {
				c.SetBlock(lx, y, lz, block.Sand)
			} else {
				c.SetBlock(lx, y, lz, block.Dirt)
			}

		case y == height:
			switch {
			case desert:
				c.SetBlock(lx, y, lz, block.Sand)
			case beach && height <= 41:
				c.SetBlock(lx, y, lz, block.Sand)
			case snowy:
				c.SetBlock(lx, y, lz, block.Snow)
			default:
				c.SetBlock(lx, y, lz, block.Grass)
			}

		case y <= seaLevel:
			c.SetBlock(lx, y, lz, block.Water)
		}
	}
}

// isCave reports whether (wx,y,wz) is carved by the dual 3D-noise cave
// threshold of §4.3.3. Disabled entirely when config.GetCaves() is false.
func (g *Generator) isCave(wx, y, wz int) bool {
	if !config.GetCaves() {
		return false
	}
	n1 := g.cave1.Noise3D(float64(wx)*0.03, float64(y)*0.03, float64(wz)*0.03)
	if math.Abs(n1) >= 0.08 {
		return false
	}
	n2 := g.cave2.Noise3D(float64(wx)*0.04, float64(y)*0.04, float64(wz)*0.04)
	return math.Abs(n2) < 0.08
}

// orePass returns STONE, or an ore/gravel id if the corresponding 3D-noise
// threshold fires at this cell, per §4.3.3's depth-bound ore pass. Note the
// spec only carves a cave and "skips the ore pass" when the cave check
// fires; otherwise stone cells are always eligible for an ore roll.
func (g *Generator) orePass(wx, y, wz int) block.ID {
	if y < 20 {
		if g.oreIron.Noise3D(float64(wx)*0.1, float64(y)*0.1, float64(wz)*0.1) > 0.6 {
			return block.IronOre
		}
	}
	if y < 50 {
		if g.oreCoal.Noise3D(float64(wx)*0.08, float64(y)*0.08, float64(wz)*0.08) > 0.55 {
			return block.CoalOre
		}
	}
	if y < 40 {
		if g.oreGravel.Noise3D(float64(wx)*0.12, float64(y)*0.12, float64(wz)*0.12) > 0.65 {
			return block.Gravel
		}
	}
	return block.Stone
}

// placeTree stamps a 4-6 block oak log topped by two 5x5 leaf bands and two
// 3x3 leaf bands (corners skipped), leaves only overwriting AIR. lx, lz are
// guaranteed at least 3 cells from every chunk edge by the caller, so the
// ±2 leaf spread never crosses a chunk boundary.
func (g *Generator) placeTree(c *world.Chunk, lx, lz, surfaceY, wx, wz int) {
	hv := g.treeHeight.Noise2D(float64(wx)*0.37, float64(wz)*0.37)
	logHeight := 4 + int(((hv+1)/2)*3)
	if logHeight > 6 {
		logHeight = 6
	}
	if logHeight < 4 {
		logHeight = 4
	}

	trunkTop := surfaceY + logHeight
	for y := surfaceY + 1; y <= trunkTop && y < world.ChunkSizeY; y++ {
		c.SetBlock(lx, y, lz, block.OakLog)
	}

	placeLeafBand := func(y, radius int) {
		if y < 0 || y >= world.ChunkSizeY {
			return
		}
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				if dx == -radius && dz == -radius ||
					dx == -radius && dz == radius ||
					dx == radius && dz == -radius ||
					dx == radius && dz == radius {
					continue // skip the four corners of the band
				}
				x := lx + dx
				z := lz + dz
				if x < 0 || x >= world.ChunkSizeX || z < 0 || z >= world.ChunkSizeZ {
					continue
				}
				if c.IsAir(x, y, z) {
					c.SetBlock(x, y, z, block.OakLeaves)
				}
			}
		}
	}

	placeLeafBand(trunkTop-1, 2)
	placeLeafBand(trunkTop, 2)
	placeLeafBand(trunkTop+1, 1)
	placeLeafBand(trunkTop+2, 1)
}
