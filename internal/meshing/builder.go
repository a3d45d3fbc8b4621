package meshing

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"voxelproto/internal/world"
)

var (
	// ErrIndexOverflow reports a mesh that no longer fits 16-bit indices.
	ErrIndexOverflow = errors.New("mesh exceeds 16-bit index range")
	// ErrBuilderConsumed reports reuse of a builder after Build.
	ErrBuilderConsumed = errors.New("mesh builder already consumed")
)

// MeshBuilder flattens a sequence of quad pushes into one indexed mesh.
// Push order determines draw order; no reordering or culling happens here.
// A builder is single use: Build finalizes and consumes it.
type MeshBuilder struct {
	vertices []Vertex
	indices  []uint16
	maxIndex int // running maximum index, -1 before the first push
	consumed bool
}

// NewMeshBuilder returns an empty builder.
func NewMeshBuilder() *MeshBuilder {
	return &MeshBuilder{maxIndex: -1}
}

// Push appends one face quad at the given block position: the quad's 4
// vertices translated by the integer position (colors untouched), and its 6
// indices offset by the running maximum index + 1 so index ranges of
// successive pushes never collide.
func (b *MeshBuilder) Push(q Quad, pos world.BlockPos) error {
	if b.consumed {
		return ErrBuilderConsumed
	}
	base := b.maxIndex + 1
	if base+3 > math.MaxUint16 {
		return fmt.Errorf("push at (%d,%d,%d): %w", pos.X, pos.Y, pos.Z, ErrIndexOverflow)
	}

	offset := mgl32.Vec3{float32(pos.X), float32(pos.Y), float32(pos.Z)}
	for _, v := range q.Vertices {
		v.Position = v.Position.Add(offset)
		b.vertices = append(b.vertices, v)
	}
	for _, i := range quadIndices {
		idx := base + int(i)
		b.indices = append(b.indices, uint16(idx))
		if idx > b.maxIndex {
			b.maxIndex = idx
		}
	}
	return nil
}

// Build finalizes the mesh and consumes the builder.
func (b *MeshBuilder) Build() (*Mesh, error) {
	if b.consumed {
		return nil, ErrBuilderConsumed
	}
	b.consumed = true
	m := &Mesh{vertices: b.vertices, indices: b.indices}
	b.vertices = nil
	b.indices = nil
	return m, nil
}
