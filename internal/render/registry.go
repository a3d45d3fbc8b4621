// Package render owns the per-chunk GPU resource lifecycle: one renderer
// entry per loaded chunk position, re-meshed and re-uploaded when the chunk
// dirties, released when it unloads. The GPU itself is reached through the
// narrow Device/ChunkMesh capabilities so the registry stays free of any
// graphics API.
package render

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"voxelproto/internal/meshing"
	"voxelproto/internal/profiling"
	"voxelproto/internal/world"
)

var (
	// ErrAlreadyLoaded reports a load for a position that has an entry.
	ErrAlreadyLoaded = errors.New("chunk already loaded")
	// ErrNotFound reports an operation on a position without an entry.
	ErrNotFound = errors.New("chunk renderer not found")
)

// Device allocates GPU-side chunk meshes. Supplied by the graphics layer.
type Device interface {
	// CreateChunkMesh creates a vertex/index buffer set holding the given
	// mesh. A returned error must leave no dangling GPU resources.
	CreateChunkMesh(m *meshing.Mesh) (ChunkMesh, error)
}

// ChunkMesh is one chunk's exclusively-owned GPU buffer set.
type ChunkMesh interface {
	// Upload replaces the buffer contents with a new mesh.
	Upload(m *meshing.Mesh) error
	// Draw writes the model and view-projection uniforms, binds the buffers
	// and issues one indexed draw. The uniform write happens before the draw
	// within the same submission.
	Draw(model, viewProj mgl32.Mat4)
	// Release frees the GPU resources. The mesh must not be used afterwards.
	Release()
}

// Camera supplies the current view-projection transform.
type Camera interface {
	ViewProjection() mgl32.Mat4
}

// ChunkState tracks where a chunk is in its GPU lifecycle.
type ChunkState uint8

const (
	StateUnloaded ChunkState = iota
	StateScheduled
	StateLoaded
	StateDirty
)

func (s ChunkState) String() string {
	switch s {
	case StateUnloaded:
		return "Unloaded"
	case StateScheduled:
		return "Scheduled"
	case StateLoaded:
		return "Loaded"
	case StateDirty:
		return "Dirty"
	}
	return "ChunkState(?)"
}

// chunkRenderer owns the mesh and GPU buffers for exactly one chunk
// position. Created on load, destroyed on unload.
type chunkRenderer struct {
	pos    world.ChunkPos
	origin mgl32.Vec3
	mesh   ChunkMesh // nil until the first successful upload
	state  ChunkState
}

// Registry maps chunk positions to their renderers and drives the
// Scheduled -> Loaded -> Dirty -> Loaded lifecycle. Mutated only by the
// single thread that owns the frame loop.
type Registry struct {
	device Device
	byPos  map[world.ChunkPos]*chunkRenderer
	order  []world.ChunkPos // insertion order; draw order is stable per run

	scratch  meshing.VoxelMesh // reused between meshing passes
	viewProj mgl32.Mat4        // captured by PrepareFrame for this frame
}

// NewRegistry creates an empty registry drawing through the given device.
func NewRegistry(device Device) *Registry {
	return &Registry{
		device:   device,
		byPos:    make(map[world.ChunkPos]*chunkRenderer),
		viewProj: mgl32.Ident4(),
	}
}

// Load registers a fresh renderer entry for pos in the Scheduled state.
// Fails with ErrAlreadyLoaded if an entry exists; the existing entry is left
// untouched.
func (r *Registry) Load(pos world.ChunkPos) error {
	if _, ok := r.byPos[pos]; ok {
		return fmt.Errorf("load chunk (%d,%d): %w", pos.X, pos.Z, ErrAlreadyLoaded)
	}
	r.byPos[pos] = &chunkRenderer{pos: pos, state: StateScheduled}
	r.order = append(r.order, pos)
	return nil
}

// Unload releases the entry's GPU resources immediately and removes it.
// Fails with ErrNotFound if pos has no entry.
func (r *Registry) Unload(pos world.ChunkPos) error {
	entry, ok := r.byPos[pos]
	if !ok {
		return fmt.Errorf("unload chunk (%d,%d): %w", pos.X, pos.Z, ErrNotFound)
	}
	if entry.mesh != nil {
		entry.mesh.Release()
	}
	entry.state = StateUnloaded
	delete(r.byPos, pos)
	for i, p := range r.order {
		if p == pos {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// UpdateModel re-runs meshing and upload for an already-registered chunk.
// Fails with ErrNotFound if the chunk's position has no entry. Upload
// failures propagate; the entry is left without a drawable mesh rather than
// half-initialized, so the chunk renders as absent.
func (r *Registry) UpdateModel(c *world.Chunk) error {
	pos := c.Pos()
	entry, ok := r.byPos[pos]
	if !ok {
		return fmt.Errorf("update chunk (%d,%d): %w", pos.X, pos.Z, ErrNotFound)
	}

	r.scratch.SerializeChunk(c)
	mesh, err := r.scratch.Mesh()
	if err != nil {
		return fmt.Errorf("mesh chunk (%d,%d): %w", pos.X, pos.Z, err)
	}

	if entry.mesh == nil {
		gpu, err := r.device.CreateChunkMesh(mesh)
		if err != nil {
			return fmt.Errorf("create buffers for chunk (%d,%d): %w", pos.X, pos.Z, err)
		}
		entry.mesh = gpu
	} else if err := entry.mesh.Upload(mesh); err != nil {
		return fmt.Errorf("upload chunk (%d,%d): %w", pos.X, pos.Z, err)
	}

	entry.origin = c.Origin()
	entry.state = StateLoaded
	return nil
}

// PrepareFrame runs all meshing work of the frame, before any draw call:
// scheduled chunks first (fresh entry + first mesh), then dirty chunks
// (re-mesh), each exactly once, in caller-supplied order. It also captures
// the camera's view-projection for the subsequent Render.
//
// A chunk that fails keeps the frame going; its error is reported joined
// with the rest and the chunk renders as absent.
func (r *Registry) PrepareFrame(camera Camera, dirty, scheduled []*world.Chunk) error {
	defer profiling.Track("render.PrepareFrame")()

	r.viewProj = camera.ViewProjection()

	var errs []error
	for _, c := range scheduled {
		if err := r.Load(c.Pos()); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := r.UpdateModel(c); err != nil {
			errs = append(errs, err)
		}
	}
	for _, c := range dirty {
		if err := r.UpdateModel(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Render issues one draw call per loaded chunk, in registry insertion
// order. Each chunk's uniforms (world translation + view-projection) are
// written immediately before its draw. Depth testing, not ordering, resolves
// occlusion.
func (r *Registry) Render() {
	defer profiling.Track("render.Render")()

	for _, pos := range r.order {
		entry := r.byPos[pos]
		if entry.state != StateLoaded && entry.state != StateDirty {
			continue
		}
		if entry.mesh == nil {
			continue
		}
		model := mgl32.Translate3D(entry.origin[0], entry.origin[1], entry.origin[2])
		entry.mesh.Draw(model, r.viewProj)
	}
}

// MarkDirty flags an entry whose chunk data changed since its last mesh.
// The world feeds the chunk back through PrepareFrame's dirty list.
func (r *Registry) MarkDirty(pos world.ChunkPos) error {
	entry, ok := r.byPos[pos]
	if !ok {
		return fmt.Errorf("mark chunk (%d,%d): %w", pos.X, pos.Z, ErrNotFound)
	}
	if entry.state == StateLoaded {
		entry.state = StateDirty
	}
	return nil
}

// StateOf returns the lifecycle state of pos, StateUnloaded if absent.
func (r *Registry) StateOf(pos world.ChunkPos) ChunkState {
	if entry, ok := r.byPos[pos]; ok {
		return entry.state
	}
	return StateUnloaded
}

// Len returns the number of registered chunk renderers.
func (r *Registry) Len() int {
	return len(r.byPos)
}
