// Package config loads the renderer settings from an optional YAML file and
// clamps them to workable ranges.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration.
type Config struct {
	Window Window `yaml:"window"`
	World  World  `yaml:"world"`
}

// Window holds windowing and projection settings.
type Window struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	FOV    float32 `yaml:"fov"`
	VSync  bool    `yaml:"vsync"`
}

// World holds terrain and chunk settings.
type World struct {
	RenderDistance int   `yaml:"render_distance"` // in chunks, ring half-width
	ChunkLength    int   `yaml:"chunk_length"`
	ChunkHeight    int   `yaml:"chunk_height"`
	Seed           int64 `yaml:"seed"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Window: Window{
			Width:  1280,
			Height: 720,
			FOV:    70.0,
			VSync:  true,
		},
		World: World{
			RenderDistance: 8,
			ChunkLength:    16,
			ChunkHeight:    16,
			Seed:           1,
		},
	}
}

// Load reads path and overlays it onto the defaults. A missing file is not
// an error; the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.clamp()
	return cfg, nil
}

// clamp forces every setting into a range the renderer can handle.
func (c *Config) clamp() {
	if c.Window.Width < 320 {
		c.Window.Width = 320
	}
	if c.Window.Height < 240 {
		c.Window.Height = 240
	}
	if c.Window.FOV < 30 {
		c.Window.FOV = 30
	}
	if c.Window.FOV > 120 {
		c.Window.FOV = 120
	}
	if c.World.RenderDistance < 1 {
		c.World.RenderDistance = 1
	}
	if c.World.RenderDistance > 32 {
		c.World.RenderDistance = 32
	}
	if c.World.ChunkLength < 1 {
		c.World.ChunkLength = 1
	}
	if c.World.ChunkHeight < 1 {
		c.World.ChunkHeight = 1
	}
}
