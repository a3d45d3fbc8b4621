package meshing

import (
	"voxelproto/internal/profiling"
	"voxelproto/internal/world"
)

// VoxelMesh is the intermediate result of visibility testing: the exposed
// faces of a chunk with their originating positions and blocks, three
// index-aligned sequences. It is regenerated wholesale on each meshing pass;
// there is no incremental update.
type VoxelMesh struct {
	faces     []world.Face
	positions []world.BlockPos
	blocks    []world.Block
}

// NewVoxelMesh returns an empty mesher.
func NewVoxelMesh() *VoxelMesh {
	return &VoxelMesh{}
}

// SerializeChunk rebuilds the face list from scratch for the given chunk.
// For every solid cell, each of the 6 faces is emitted, in face-enumeration
// order, when its neighbor is Air or lies outside the chunk. Blocks on a
// chunk boundary are always treated as exposed on the outward side, even if
// an adjacent loaded chunk has a solid block there.
//
// This is the hot loop: O(L*L*H) cell visits with 6 bounds-checked lookups
// per solid block and no spatial acceleration.
func (vm *VoxelMesh) SerializeChunk(c *world.Chunk) {
	defer profiling.Track("meshing.SerializeChunk")()

	vm.faces = vm.faces[:0]
	vm.positions = vm.positions[:0]
	vm.blocks = vm.blocks[:0]

	for ref := range c.All() {
		if !ref.Block().Solid() {
			continue
		}
		for _, face := range world.AllFaces {
			neighbor, ok := ref.Neighbor(face)
			if ok && neighbor.Block() != world.Air {
				continue
			}
			vm.faces = append(vm.faces, face)
			vm.positions = append(vm.positions, ref.Pos())
			vm.blocks = append(vm.blocks, ref.Block())
		}
	}
}

// Faces returns the exposed faces in emission order.
func (vm *VoxelMesh) Faces() []world.Face {
	return vm.faces
}

// Positions returns the originating block position per exposed face.
func (vm *VoxelMesh) Positions() []world.BlockPos {
	return vm.positions
}

// Len returns the number of exposed faces.
func (vm *VoxelMesh) Len() int {
	return len(vm.faces)
}

// Mesh expands the face list into an indexed triangle mesh: one quad per
// face, tinted by its block's color and translated to the block's position.
func (vm *VoxelMesh) Mesh() (*Mesh, error) {
	builder := NewMeshBuilder()
	for i, face := range vm.faces {
		quad := FaceQuad(face).Tinted(vm.blocks[i].Color())
		if err := builder.Push(quad, vm.positions[i]); err != nil {
			return nil, err
		}
	}
	return builder.Build()
}
