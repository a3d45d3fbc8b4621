package world

import (
	"errors"
	"fmt"
	"iter"

	"github.com/go-gl/mathgl/mgl32"
)

// Default chunk dimensions: L x L footprint, H height.
const (
	DefaultLength = 16
	DefaultHeight = 16
)

// ErrOutOfBounds reports a block placement outside the chunk's grid. The
// chunk is left unchanged.
var ErrOutOfBounds = errors.New("block position out of chunk bounds")

// BlockPos addresses a cell local to a chunk. Components outside [0, bound)
// mean "outside this chunk" (absence), which is a valid query result and
// never an error.
type BlockPos struct {
	X, Y, Z int
}

// ChunkPos locates a chunk on the world grid, at chunk granularity.
type ChunkPos struct {
	X, Z int
}

// Dims are the grid dimensions of a chunk, fixed for its lifetime.
type Dims struct {
	L int // footprint side
	H int // height
}

// DefaultDims is the 16x16x16 grid the prototype runs with.
var DefaultDims = Dims{L: DefaultLength, H: DefaultHeight}

// Volume returns the cell count of the grid.
func (d Dims) Volume() int {
	return d.L * d.L * d.H
}

// Chunk is a dense L x L x H voxel grid. Every cell is always populated;
// absence is represented by Air. A chunk knows its own position so that
// face-adjacency math can translate into world space.
type Chunk struct {
	pos    ChunkPos
	dims   Dims
	blocks []Block // flat, indexed (y, z, x)
}

// NewChunk creates an Air-filled chunk with the default dimensions.
func NewChunk(pos ChunkPos) *Chunk {
	return NewChunkWithDims(pos, DefaultDims)
}

// NewChunkWithDims creates an Air-filled chunk with the given dimensions.
// Dimensions must be positive and are invariant for the chunk's lifetime.
func NewChunkWithDims(pos ChunkPos, dims Dims) *Chunk {
	if dims.L <= 0 || dims.H <= 0 {
		panic(fmt.Sprintf("world: invalid chunk dims %dx%d", dims.L, dims.H))
	}
	return &Chunk{
		pos:    pos,
		dims:   dims,
		blocks: make([]Block, dims.Volume()),
	}
}

// Pos returns the chunk's position on the world grid.
func (c *Chunk) Pos() ChunkPos {
	return c.pos
}

// Dims returns the chunk's grid dimensions.
func (c *Chunk) Dims() Dims {
	return c.dims
}

// Origin returns the chunk's world-space translation, used as the model
// transform when drawing.
func (c *Chunk) Origin() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(c.pos.X * c.dims.L),
		0,
		float32(c.pos.Z * c.dims.L),
	}
}

func (c *Chunk) contains(p BlockPos) bool {
	return p.X >= 0 && p.X < c.dims.L &&
		p.Y >= 0 && p.Y < c.dims.H &&
		p.Z >= 0 && p.Z < c.dims.L
}

// index converts local coordinates to the flat (y, z, x) index.
func (c *Chunk) index(p BlockPos) int {
	return (p.Y*c.dims.L+p.Z)*c.dims.L + p.X
}

// PlaceBlock overwrites the cell at p. Out-of-range placements are a no-op
// reported as ErrOutOfBounds.
func (c *Chunk) PlaceBlock(p BlockPos, b Block) error {
	if !c.contains(p) {
		return fmt.Errorf("place %v at (%d,%d,%d) in %dx%dx%d chunk: %w",
			b, p.X, p.Y, p.Z, c.dims.L, c.dims.H, c.dims.L, ErrOutOfBounds)
	}
	c.blocks[c.index(p)] = b
	return nil
}

// BlockAt returns the block at p, or false if p lies outside the chunk.
func (c *Chunk) BlockAt(p BlockPos) (Block, bool) {
	if !c.contains(p) {
		return Air, false
	}
	return c.blocks[c.index(p)], true
}

// At returns a neighbor-aware reference to the cell at p, or false if p lies
// outside the chunk.
func (c *Chunk) At(p BlockPos) (BlockRef, bool) {
	b, ok := c.BlockAt(p)
	if !ok {
		return BlockRef{}, false
	}
	return BlockRef{chunk: c, pos: p, block: b}, true
}

// All iterates every cell in row-major (y, then z, then x) order, pairing
// each block with its position. The sequence is finite, read-only, and a
// fresh pass starts on every range.
func (c *Chunk) All() iter.Seq[BlockRef] {
	return func(yield func(BlockRef) bool) {
		for y := 0; y < c.dims.H; y++ {
			for z := 0; z < c.dims.L; z++ {
				for x := 0; x < c.dims.L; x++ {
					p := BlockPos{X: x, Y: y, Z: z}
					ref := BlockRef{chunk: c, pos: p, block: c.blocks[c.index(p)]}
					if !yield(ref) {
						return
					}
				}
			}
		}
	}
}

// BlockRef is a read-only view of one cell that also knows its position and
// parent chunk, so neighbor queries can be chained across cells.
type BlockRef struct {
	chunk *Chunk
	pos   BlockPos
	block Block
}

// Block returns the referenced cell's value.
func (r BlockRef) Block() Block {
	return r.block
}

// Pos returns the referenced cell's local position.
func (r BlockRef) Pos() BlockPos {
	return r.pos
}

// Neighbor returns the cell one step along the face's offset. The second
// result is false when the neighbor lies outside this chunk; cross-chunk
// neighbors are never resolved, so boundary cells always read as absent.
func (r BlockRef) Neighbor(f Face) (BlockRef, bool) {
	dx, dy, dz := f.Offset()
	return r.chunk.At(BlockPos{X: r.pos.X + dx, Y: r.pos.Y + dy, Z: r.pos.Z + dz})
}
