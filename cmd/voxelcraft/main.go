// Command voxelcraft boots the world simulation: load config, build the
// chunk store, and drive the world loop until interrupted. It owns no
// window or GL context — rendering and input are external collaborators
// that would sit on top of internal/world and internal/worldloop.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voxelcraft/internal/config"
	"voxelcraft/internal/profiling"
	"voxelcraft/internal/world"
	"voxelcraft/internal/worldloop"
)

var logger = log.New(os.Stderr, "[voxelcraft] ", log.LstdFlags)

func main() {
	configPath := flag.String("config", "", "path to a world config JSON file (defaults built in if omitted)")
	seedOverride := flag.Int64("seed", 0, "override the config seed (0 means use the config's seed)")
	tickRate := flag.Duration("tick", 50*time.Millisecond, "world loop tick interval")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if *seedOverride != 0 {
		cfg.Seed = *seedOverride
	}
	config.SetSeaLevel(cfg.SeaLevel)
	config.SetCaves(cfg.Caves)
	config.SetLoadRadius(cfg.LoadRadius)
	logger.Printf("config: seed=%d seaLevel=%d caves=%v loadRadius=%d", cfg.Seed, cfg.SeaLevel, cfg.Caves, cfg.LoadRadius)

	store := world.NewStore()
	wl := worldloop.New(cfg.Seed, store)
	defer wl.Shutdown()

	const spawnX, spawnZ = 40.0, 40.0

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(*tickRate)
	defer ticker.Stop()
	statusEvery := time.NewTicker(5 * time.Second)
	defer statusEvery.Stop()

	logger.Printf("world loop starting around spawn (%.0f, %.0f)", spawnX, spawnZ)
	frames := 0

runLoop:
	for {
		select {
		case <-ctx.Done():
			break runLoop
		case <-ticker.C:
			wl.Tick(spawnX, spawnZ)
			frames++
		case <-statusEvery.C:
			logger.Printf("loaded chunks=%d frames=%d tickTotal=%s", len(store.AllChunks()), frames, profiling.Total())
			profiling.ResetFrame()
		}
	}

	logger.Printf("shutting down after %d ticks", frames)
}
