// Package config holds the engine's tunable settings: a JSON-loadable file
// config for bootstrapping a world, and RWMutex-guarded in-memory singletons
// (world_gen.go) that the running engine reads every frame.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// FileConfig is the on-disk shape of a world's bootstrap settings. The only
// runtime parameter the engine itself needs is the seed; Caves and
// LoadRadius tune generation and loading behavior. SeaLevel is copied into
// the config singleton but terrain generation uses its own fixed sea level.
type FileConfig struct {
	Seed       int64 `json:"seed"`
	SeaLevel   int   `json:"seaLevel"`
	Caves      bool  `json:"caves"`
	LoadRadius int   `json:"loadRadius"`
}

// Default returns the built-in defaults.
func Default() *FileConfig {
	return &FileConfig{
		Seed:       1337,
		SeaLevel:   40,
		Caves:      true,
		LoadRadius: 8,
	}
}

// Load reads a FileConfig from a JSON file. An empty path returns defaults.
func Load(path string) (*FileConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings that would break the engine's invariants.
func (c *FileConfig) Validate() error {
	if c.SeaLevel < 0 || c.SeaLevel > 127 {
		return errors.New("seaLevel must be within [0, 127]")
	}
	if c.LoadRadius < 1 {
		return errors.New("loadRadius must be positive")
	}
	return nil
}
