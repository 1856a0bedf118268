// Package block holds the closed block-id palette and the dense lookup
// table of per-id static properties (solid/transparent flags, atlas UV by
// face). This replaces dynamic dispatch by block id with a fixed-size array
// indexed by the numeric id.
package block

// ID is a small unsigned integer identifying a block type; it fits in one
// byte, matching the chunk's flat-byte-array storage.
type ID uint8

// The palette is closed: these are the only ids that will ever appear in a
// chunk. Numeric values are load-bearing only within the process (they are
// the byte stored in the chunk array), not across sessions.
const (
	Air ID = iota
	Grass
	Dirt
	Stone
	Sand
	Water
	OakLog
	OakLeaves
	Bedrock
	Gravel
	CoalOre
	IronOre
	Cobblestone
	OakPlanks
	Snow
	Glass
	Brick

	count // sentinel, not a real block id
)

// Face indices, fixed by the world-coordinate convention: 0=+Y, 1=-Y,
// 2=+Z, 3=-Z, 4=+X, 5=-X.
const (
	FacePosY = 0
	FaceNegY = 1
	FacePosZ = 2
	FaceNegZ = 3
	FacePosX = 4
	FaceNegX = 5
)

// Tile identifies one 16x16 cell of the texture atlas by grid column/row.
type Tile struct {
	Col, Row int
}

// definition is the dense record backing the numeric-id lookup table.
type definition struct {
	name        string
	solid       bool
	transparent bool
	faceTiles   [6]Tile
}

var defs [count]definition

func register(id ID, name string, solid, transparent bool, tile Tile) {
	registerFaces(id, name, solid, transparent, tile, tile, tile)
}

func registerFaces(id ID, name string, solid, transparent bool, top, side, bottom Tile) {
	defs[id] = definition{
		name:        name,
		solid:       solid,
		transparent: transparent,
		faceTiles: [6]Tile{
			FacePosY: top,
			FaceNegY: bottom,
			FacePosZ: side,
			FaceNegZ: side,
			FacePosX: side,
			FaceNegX: side,
		},
	}
}

func init() {
	// Tiles are laid out across the 16x16 atlas grid in registration order;
	// tile (0,0) is reserved for air and never sampled.
	register(Air, "air", false, true, Tile{0, 0})
	registerFaces(Grass, "grass", true, false, Tile{1, 0}, Tile{2, 0}, Tile{3, 0})
	register(Dirt, "dirt", true, false, Tile{3, 0})
	register(Stone, "stone", true, false, Tile{4, 0})
	register(Sand, "sand", true, false, Tile{5, 0})
	register(Water, "water", false, true, Tile{6, 0})
	registerFaces(OakLog, "oak_log", true, false, Tile{7, 0}, Tile{8, 0}, Tile{7, 0})
	register(OakLeaves, "oak_leaves", true, true, Tile{9, 0})
	register(Bedrock, "bedrock", true, false, Tile{10, 0})
	register(Gravel, "gravel", true, false, Tile{11, 0})
	register(CoalOre, "coal_ore", true, false, Tile{12, 0})
	register(IronOre, "iron_ore", true, false, Tile{13, 0})
	register(Cobblestone, "cobblestone", true, false, Tile{14, 0})
	register(OakPlanks, "oak_planks", true, false, Tile{15, 0})
	register(Snow, "snow", true, false, Tile{0, 1})
	register(Glass, "glass", true, true, Tile{1, 1})
	register(Brick, "brick", true, false, Tile{2, 1})
}

// IsSolid reports whether id participates in collision and opaque occlusion.
// Out-of-range ids (including an unloaded chunk's implicit AIR) are not solid.
func IsSolid(id ID) bool {
	if int(id) >= len(defs) {
		return false
	}
	return defs[id].solid
}

// IsTransparent reports whether id's faces fail to occlude same-id
// neighbors and whether it belongs to a transparent mesh stream.
// Out-of-range ids are treated as AIR, which is transparent.
func IsTransparent(id ID) bool {
	if int(id) >= len(defs) {
		return true
	}
	return defs[id].transparent
}

// Name returns the registered name of id, or "" if out of range.
func Name(id ID) string {
	if int(id) >= len(defs) {
		return ""
	}
	return defs[id].name
}

// TileFor returns the atlas tile for id's given face (0-5, per the Face*
// constants).
func TileFor(id ID, face int) Tile {
	if int(id) >= len(defs) || face < 0 || face > 5 {
		return Tile{0, 0}
	}
	return defs[id].faceTiles[face]
}

// Valid reports whether id is inside the closed palette.
func Valid(id ID) bool {
	return int(id) < len(defs)
}

// Count is the number of registered ids in the palette.
func Count() int {
	return int(count)
}
