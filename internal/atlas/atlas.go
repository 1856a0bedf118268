// Package atlas assembles the block palette's per-face tiles into a single
// texture atlas image. The engine core only ever needs the resulting image
// plus the UV lookup already provided by the block package; how each tile's
// pixels are sourced (procedural fill here, file-loaded textures in a full
// game) is deliberately kept out of the simulation's hot path.
package atlas

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"voxelcraft/internal/block"
)

// TileSize is the pixel width/height of one atlas cell.
const TileSize = 16

// GridSize is the number of tile columns/rows the atlas reserves, large
// enough to hold every registered tile coordinate in the block palette.
const GridSize = 16

// Build renders a GridSize*TileSize square RGBA atlas. Each palette id's
// three face tiles are filled with a distinct flat shade derived from the id
// so neighboring tiles are visually distinguishable without real art
// assets; a production build would instead decode tile images from disk
// into the same tile grid.
func Build() *image.RGBA {
	size := GridSize * TileSize
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	for id := block.ID(0); block.Valid(id) && int(id) < block.Count(); id++ {
		for face := 0; face < 6; face++ {
			tile := block.TileFor(id, face)
			fillTile(img, tile, shadeFor(id, face))
		}
	}
	return img
}

func fillTile(img *image.RGBA, tile block.Tile, c color.RGBA) {
	x0 := tile.Col * TileSize
	y0 := tile.Row * TileSize
	rect := image.Rect(x0, y0, x0+TileSize, y0+TileSize)
	draw.Draw(img, rect, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// shadeFor derives a stable flat color from an id/face pair so every tile in
// the atlas is both deterministic and visually distinct during development.
func shadeFor(id block.ID, face int) color.RGBA {
	h := uint32(id)*2654435761 + uint32(face)*40503
	return color.RGBA{
		R: byte(h >> 16),
		G: byte(h >> 8),
		B: byte(h),
		A: 255,
	}
}

// UVRect returns the (u0,v0,u1,v1) texture-coordinate rectangle for tile,
// normalized to [0,1] over the full atlas.
func UVRect(tile block.Tile) (u0, v0, u1, v1 float32) {
	const inv = 1.0 / float32(GridSize)
	u0 = float32(tile.Col) * inv
	v0 = float32(tile.Row) * inv
	return u0, v0, u0 + inv, v0 + inv
}
