package world

import (
	"sync"

	"voxelcraft/internal/block"
	"voxelcraft/internal/profiling"
)

// Coord identifies a chunk by its 2D chunk coordinate.
type Coord struct {
	CX, CZ int
}

// ChunkWithCoord pairs a chunk with its coordinate.
type ChunkWithCoord struct {
	Chunk *Chunk
	Coord Coord
}

// Store is the single source of truth for block data: a mapping from
// (cx, cz) to chunk, plus the set of structure anchors already stamped in
// this session (so stamping stays idempotent even if a chunk is dropped and
// regenerated later).
type Store struct {
	mu       sync.RWMutex
	chunks   map[Coord]*Chunk
	modCount uint64

	anchorsMu sync.Mutex
	anchors   map[Coord]struct{}
}

// NewStore creates an empty chunk store.
func NewStore() *Store {
	return &Store{
		chunks:  make(map[Coord]*Chunk),
		anchors: make(map[Coord]struct{}),
	}
}

// floorDiv performs integer division that rounds toward negative infinity.
func floorDiv(a, b int) int {
	if a < 0 {
		return (a - b + 1) / b
	}
	return a / b
}

// mod returns the Euclidean (always non-negative) remainder of a/b.
func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

// ChunkCoordOf converts a world block coordinate to its owning chunk
// coordinate.
func ChunkCoordOf(x, z int) Coord {
	return Coord{CX: floorDiv(x, ChunkSizeX), CZ: floorDiv(z, ChunkSizeZ)}
}

// GetChunk returns the chunk at (cx, cz). If it doesn't exist and create is
// true, an empty (all-AIR) chunk is created and stored — generation itself
// is triggered by the world loop, not lazily by reads.
func (s *Store) GetChunk(cx, cz int, create bool) *Chunk {
	coord := Coord{CX: cx, CZ: cz}
	s.mu.RLock()
	c, ok := s.chunks[coord]
	s.mu.RUnlock()
	if ok || !create {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.chunks[coord]; ok {
		return existing
	}
	c = NewChunk(cx, cz)
	s.chunks[coord] = c
	s.modCount++
	return c
}

// AddChunk inserts a pre-generated chunk (e.g. from a worker) if no chunk is
// already present at its coordinate. Returns false if one already existed.
func (s *Store) AddChunk(c *Chunk) bool {
	coord := Coord{CX: c.CX, CZ: c.CZ}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.chunks[coord]; ok {
		return false
	}
	s.chunks[coord] = c
	s.modCount++
	return true
}

// HasChunk reports whether a chunk is loaded at (cx, cz) without creating it.
func (s *Store) HasChunk(cx, cz int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.chunks[Coord{CX: cx, CZ: cz}]
	return ok
}

// GetBlock returns the block at world coordinates (x, y, z). Out-of-range y
// and unloaded chunks both resolve to AIR — never an error.
func (s *Store) GetBlock(x, y, z int) block.ID {
	if y < 0 || y >= ChunkSizeY {
		return block.Air
	}
	coord := ChunkCoordOf(x, z)
	s.mu.RLock()
	c, ok := s.chunks[coord]
	s.mu.RUnlock()
	if !ok {
		return block.Air
	}
	return c.GetBlock(mod(x, ChunkSizeX), y, mod(z, ChunkSizeZ))
}

// IsSolid reports whether the block at (x, y, z) is solid.
func (s *Store) IsSolid(x, y, z int) bool {
	return block.IsSolid(s.GetBlock(x, y, z))
}

// IsTransparent reports whether the block at (x, y, z) is transparent.
func (s *Store) IsTransparent(x, y, z int) bool {
	return block.IsTransparent(s.GetBlock(x, y, z))
}

// SetBlock writes id at world coordinates (x, y, z). A no-op if y is out of
// range or the owning chunk isn't loaded. Marks the owning chunk dirty when
// the stored value changes, and if the local coordinate lies on a chunk
// boundary, also dirties the adjacent neighbor chunk (its boundary faces
// depend on this block), whether or not the value changed.
func (s *Store) SetBlock(x, y, z int, id block.ID) {
	if y < 0 || y >= ChunkSizeY {
		return
	}
	coord := ChunkCoordOf(x, z)
	s.mu.RLock()
	c, ok := s.chunks[coord]
	s.mu.RUnlock()
	if !ok {
		return
	}

	lx := mod(x, ChunkSizeX)
	lz := mod(z, ChunkSizeZ)
	c.SetBlock(lx, y, lz, id)

	dx, dz := 0, 0
	switch lx {
	case 0:
		dx = -1
	case ChunkSizeX - 1:
		dx = 1
	}
	switch lz {
	case 0:
		dz = -1
	case ChunkSizeZ - 1:
		dz = 1
	}
	if dx != 0 {
		s.markDirtyAt(coord.CX+dx, coord.CZ)
	}
	if dz != 0 {
		s.markDirtyAt(coord.CX, coord.CZ+dz)
	}
	if dx != 0 && dz != 0 {
		// A corner write also touches the mesher's diagonal AO sample in
		// the chunk sharing only that corner, not a full edge.
		s.markDirtyAt(coord.CX+dx, coord.CZ+dz)
	}
}

func (s *Store) markDirtyAt(cx, cz int) {
	s.mu.RLock()
	c, ok := s.chunks[Coord{CX: cx, CZ: cz}]
	s.mu.RUnlock()
	if ok {
		c.MarkDirty()
	}
}

// SurfaceHeight returns the topmost y at (x, z) whose block is not
// air/water/leaves/log. Used by structure placement to find ground level.
func (s *Store) SurfaceHeight(x, z int) int {
	for y := ChunkSizeY - 1; y >= 0; y-- {
		id := s.GetBlock(x, y, z)
		switch id {
		case block.Air, block.Water, block.OakLeaves, block.OakLog:
			continue
		}
		return y
	}
	return 0
}

// AllChunks returns every loaded chunk with its coordinate.
func (s *Store) AllChunks() []ChunkWithCoord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ChunkWithCoord, 0, len(s.chunks))
	for coord, c := range s.chunks {
		out = append(out, ChunkWithCoord{Chunk: c, Coord: coord})
	}
	return out
}

// AppendChunksInRadius appends every loaded chunk within radius chunks
// (inclusive, circular: dx^2+dz^2 <= radius^2) of (cx, cz) into dst.
func (s *Store) AppendChunksInRadius(cx, cz, radius int, dst []ChunkWithCoord) []ChunkWithCoord {
	defer profiling.Track("world.AppendChunksInRadius")()
	s.mu.RLock()
	defer s.mu.RUnlock()
	r2 := radius * radius
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			if dx*dx+dz*dz > r2 {
				continue
			}
			coord := Coord{CX: cx + dx, CZ: cz + dz}
			if c, ok := s.chunks[coord]; ok {
				dst = append(dst, ChunkWithCoord{Chunk: c, Coord: coord})
			}
		}
	}
	return dst
}

// EvictOutsideRadius drops every loaded chunk farther than radius chunks
// from (cx, cz) (circular test) and disposes its meshes. Returns the number
// of chunks removed.
func (s *Store) EvictOutsideRadius(cx, cz, radius int) int {
	defer profiling.Track("world.EvictOutsideRadius")()
	r2 := radius * radius
	removed := 0
	s.mu.Lock()
	for coord, c := range s.chunks {
		dx := coord.CX - cx
		dz := coord.CZ - cz
		if dx*dx+dz*dz > r2 {
			c.OpaqueMesh, c.WaterMesh, c.GlassMesh = nil, nil, nil
			delete(s.chunks, coord)
			s.modCount++
			removed++
		}
	}
	s.mu.Unlock()
	return removed
}

// ModCount returns the current modification counter, bumped on every chunk
// add/remove; cheap way to detect "did the chunk set change" without
// walking the map.
func (s *Store) ModCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modCount
}

// NeighborhoodLoaded reports whether every chunk in the (2r+1)x(2r+1)
// neighborhood centered on (cx, cz) is present. Used by structure placement
// to gate stamping on the 5x5 rule (r=2).
func (s *Store) NeighborhoodLoaded(cx, cz, r int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			if _, ok := s.chunks[Coord{CX: cx + dx, CZ: cz + dz}]; !ok {
				return false
			}
		}
	}
	return true
}

// AnchorStamped reports whether a structure anchor has already been
// stamped in this session.
func (s *Store) AnchorStamped(anchor Coord) bool {
	s.anchorsMu.Lock()
	defer s.anchorsMu.Unlock()
	_, ok := s.anchors[anchor]
	return ok
}

// MarkAnchorStamped records an anchor as stamped, making future stamping at
// that anchor a no-op for the rest of the session.
func (s *Store) MarkAnchorStamped(anchor Coord) {
	s.anchorsMu.Lock()
	defer s.anchorsMu.Unlock()
	s.anchors[anchor] = struct{}{}
}
