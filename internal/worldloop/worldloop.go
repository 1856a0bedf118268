// Package worldloop drives the per-frame chunk lifecycle: decide which
// chunks should be loaded around the player, generate the missing ones,
// stamp structures once their neighborhood is ready, evict chunks that
// fell out of range, and remesh anything left dirty. Generation and
// meshing both run on background worker pools; Tick only dispatches work
// and applies whatever finished since the last call.
package worldloop

import (
	"runtime"
	"sync"

	"voxelcraft/internal/config"
	"voxelcraft/internal/meshing"
	"voxelcraft/internal/profiling"
	"voxelcraft/internal/structures"
	"voxelcraft/internal/terrain"
	"voxelcraft/internal/world"
)

// Loop owns the chunk store and the worker pools that fill it.
type Loop struct {
	Store *world.Store

	terrainGen *terrain.Generator
	villageGen *structures.Generator

	genJobs    chan world.Coord
	genPending map[world.Coord]struct{}
	genMu      sync.Mutex
	genResults chan generatedChunk

	meshPool    *meshing.WorkerPool
	meshPending map[world.Coord]struct{}
	meshMu      sync.Mutex
	meshResults chan meshing.Result
}

type generatedChunk struct {
	coord world.Coord
	chunk *world.Chunk
}

// New builds a Loop seeded from seed, operating on store.
func New(seed int64, store *world.Store) *Loop {
	l := &Loop{
		Store:       store,
		terrainGen:  terrain.New(seed),
		villageGen:  structures.New(seed),
		genJobs:     make(chan world.Coord, 4096),
		genPending:  make(map[world.Coord]struct{}),
		genResults:  make(chan generatedChunk, 4096),
		meshPool:    meshing.NewWorkerPool(max(runtime.NumCPU()/2, 1), 4096),
		meshPending: make(map[world.Coord]struct{}),
		meshResults: make(chan meshing.Result, 4096),
	}

	workers := max(runtime.NumCPU(), 1)
	for i := 0; i < workers; i++ {
		go l.generationWorker()
	}
	return l
}

func (l *Loop) generationWorker() {
	for coord := range l.genJobs {
		c := world.NewChunk(coord.CX, coord.CZ)
		l.terrainGen.PopulateChunk(c)
		l.genMu.Lock()
		delete(l.genPending, coord)
		l.genMu.Unlock()
		l.genResults <- generatedChunk{coord: coord, chunk: c}
	}
}

// Tick runs one iteration of the world loop: generate -> stamp -> drop ->
// remesh, centered on the chunk containing (worldX, worldZ). radius is
// read from config.GetLoadRadius() each call, so changing it takes effect
// on the next tick without restarting the loop.
func (l *Loop) Tick(worldX, worldZ float64) {
	defer profiling.Track("worldloop.Tick")()
	radius := config.GetLoadRadius()
	centerCoord := world.ChunkCoordOf(int(worldX), int(worldZ))

	l.drainGeneratedChunks()
	l.requestMissingChunks(centerCoord, radius)
	l.stampReadyNeighborhoods(centerCoord, radius)
	l.Store.EvictOutsideRadius(centerCoord.CX, centerCoord.CZ, radius+1)
	l.drainMeshResults()
	l.submitDirtyChunks(centerCoord, radius)
}

// requestMissingChunks enqueues a generation job for every coordinate in
// the circular radius around center that isn't loaded and isn't already
// pending.
func (l *Loop) requestMissingChunks(center world.Coord, radius int) {
	r2 := radius * radius
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			if dx*dx+dz*dz > r2 {
				continue
			}
			coord := world.Coord{CX: center.CX + dx, CZ: center.CZ + dz}
			if l.Store.HasChunk(coord.CX, coord.CZ) {
				continue
			}
			l.genMu.Lock()
			_, pending := l.genPending[coord]
			if !pending {
				l.genPending[coord] = struct{}{}
			}
			l.genMu.Unlock()
			if pending {
				continue
			}
			select {
			case l.genJobs <- coord:
			default:
				l.genMu.Lock()
				delete(l.genPending, coord)
				l.genMu.Unlock()
			}
		}
	}
}

// drainGeneratedChunks installs every chunk a generation worker has
// finished since the last tick.
func (l *Loop) drainGeneratedChunks() {
	for {
		select {
		case gc := <-l.genResults:
			l.Store.AddChunk(gc.chunk)
		default:
			return
		}
	}
}

// stampReadyNeighborhoods stamps villages near every loaded chunk in range
// whose 5x5 chunk neighborhood is fully loaded. It runs every tick; anchors
// already stamped are skipped by Stamp.
func (l *Loop) stampReadyNeighborhoods(center world.Coord, radius int) {
	r2 := radius * radius
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			if dx*dx+dz*dz > r2 {
				continue
			}
			cx, cz := center.CX+dx, center.CZ+dz
			if !l.Store.HasChunk(cx, cz) {
				continue
			}
			for _, c := range l.villageGen.CentersNear(l.Store, cx, cz) {
				l.villageGen.Stamp(l.Store, c)
			}
		}
	}
}

// submitDirtyChunks enqueues a mesh job for every dirty, loaded chunk in
// range that isn't already being meshed.
func (l *Loop) submitDirtyChunks(center world.Coord, radius int) {
	var buf []world.ChunkWithCoord
	buf = l.Store.AppendChunksInRadius(center.CX, center.CZ, radius, buf)
	for _, cwc := range buf {
		if !cwc.Chunk.IsDirty() {
			continue
		}
		l.meshMu.Lock()
		_, inFlight := l.meshPending[cwc.Coord]
		if !inFlight {
			l.meshPending[cwc.Coord] = struct{}{}
		}
		l.meshMu.Unlock()
		if inFlight {
			continue
		}
		cwc.Chunk.SetClean()
		job := meshing.Job{Store: l.Store, Chunk: cwc.Chunk, Coord: cwc.Coord, Result: l.meshResults}
		if !l.meshPool.SubmitJob(job) {
			cwc.Chunk.MarkDirty()
			l.meshMu.Lock()
			delete(l.meshPending, cwc.Coord)
			l.meshMu.Unlock()
		}
	}
}

// drainMeshResults applies every mesh result produced since the last tick,
// discarding results for chunks that have since been evicted.
func (l *Loop) drainMeshResults() {
	for {
		select {
		case res := <-l.meshResults:
			l.meshMu.Lock()
			delete(l.meshPending, res.Coord)
			l.meshMu.Unlock()

			c := l.Store.GetChunk(res.Coord.CX, res.Coord.CZ, false)
			if c == nil {
				continue // chunk was evicted while meshing was in flight
			}
			c.OpaqueMesh = res.Mesh.Opaque
			c.WaterMesh = res.Mesh.Water
			c.GlassMesh = res.Mesh.Glass
		default:
			return
		}
	}
}

// Shutdown stops the generation and meshing worker pools.
func (l *Loop) Shutdown() {
	close(l.genJobs)
	l.meshPool.Shutdown()
}
