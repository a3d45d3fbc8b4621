// Package worldgen fills chunks with terrain. Generation is deterministic
// per seed so a chunk populated twice holds the same blocks.
package worldgen

import (
	"github.com/aquilax/go-perlin"

	"voxelproto/internal/world"
)

const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3
	noiseScale   = 64.0 // world units per noise unit
)

// Generator produces terrain for chunks of a fixed size.
type Generator struct {
	noise *perlin.Perlin
	dims  world.Dims
}

// NewGenerator creates a generator seeded for reproducible terrain.
func NewGenerator(seed int64, dims world.Dims) *Generator {
	return &Generator{
		noise: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed),
		dims:  dims,
	}
}

// Populate fills c with a perlin heightmap. Columns are dirt up to the
// surface, with an accent block on top of the taller columns.
func (g *Generator) Populate(c *world.Chunk) {
	dims := c.Dims()
	origin := c.Pos()
	baseX := origin.X * dims.L
	baseZ := origin.Z * dims.L

	for z := 0; z < dims.L; z++ {
		for x := 0; x < dims.L; x++ {
			h := g.heightAt(baseX+x, baseZ+z)
			for y := 0; y < h && y < dims.H; y++ {
				_ = c.PlaceBlock(world.BlockPos{X: x, Y: y, Z: z}, world.Dirt)
			}
			if h >= dims.H*3/4 && h <= dims.H {
				_ = c.PlaceBlock(world.BlockPos{X: x, Y: h - 1, Z: z}, world.ID(uint8(h)))
			}
		}
	}
}

// heightAt maps noise in [-1,1] to a column height in [1, dims.H].
func (g *Generator) heightAt(x, z int) int {
	n := g.noise.Noise2D(float64(x)/noiseScale, float64(z)/noiseScale)
	h := int((n + 1.0) / 2.0 * float64(g.dims.H))
	if h < 1 {
		h = 1
	}
	if h > g.dims.H {
		h = g.dims.H
	}
	return h
}

// PopulateWedge fills c with a diagonal dirt wedge, solid where y < x.
// Useful as a fixed pattern for eyeballing face culling.
func PopulateWedge(c *world.Chunk) {
	dims := c.Dims()
	for x := 0; x < dims.L; x++ {
		for y := 0; y < x && y < dims.H; y++ {
			for z := 0; z < dims.L; z++ {
				_ = c.PlaceBlock(world.BlockPos{X: x, Y: y, Z: z}, world.Dirt)
			}
		}
	}
}

// ScheduleAround creates and schedules the square ring of chunks within
// radius of the origin, populating each before it is handed to the world.
func (g *Generator) ScheduleAround(w *world.World, radius int) error {
	for x := -radius; x < radius; x++ {
		for z := -radius; z < radius; z++ {
			c := world.NewChunkWithDims(world.ChunkPos{X: x, Z: z}, g.dims)
			g.Populate(c)
			if err := w.Schedule(c); err != nil {
				return err
			}
		}
	}
	return nil
}
