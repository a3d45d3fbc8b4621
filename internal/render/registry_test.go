package render

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"voxelproto/internal/meshing"
	"voxelproto/internal/world"
)

// fakeDevice records mesh allocations so tests can observe the GPU
// lifecycle without a graphics context.
type fakeDevice struct {
	created    []*fakeMesh
	failCreate error
}

func (d *fakeDevice) CreateChunkMesh(m *meshing.Mesh) (ChunkMesh, error) {
	if d.failCreate != nil {
		return nil, d.failCreate
	}
	fm := &fakeMesh{lastMesh: m}
	d.created = append(d.created, fm)
	return fm, nil
}

type fakeMesh struct {
	lastMesh *meshing.Mesh
	uploads  int
	released bool
	draws    []drawCall
}

type drawCall struct {
	model    mgl32.Mat4
	viewProj mgl32.Mat4
}

func (m *fakeMesh) Upload(mesh *meshing.Mesh) error {
	m.uploads++
	m.lastMesh = mesh
	return nil
}

func (m *fakeMesh) Draw(model, viewProj mgl32.Mat4) {
	m.draws = append(m.draws, drawCall{model: model, viewProj: viewProj})
}

func (m *fakeMesh) Release() {
	m.released = true
}

type fakeCamera struct {
	vp mgl32.Mat4
}

func (c fakeCamera) ViewProjection() mgl32.Mat4 {
	return c.vp
}

// solidChunk builds a chunk with one block, enough for a non-empty mesh.
func solidChunk(pos world.ChunkPos) *world.Chunk {
	c := world.NewChunk(pos)
	_ = c.PlaceBlock(world.BlockPos{X: 1, Y: 1, Z: 1}, world.Dirt)
	return c
}

func TestLoadDuplicate(t *testing.T) {
	r := NewRegistry(&fakeDevice{})
	pos := world.ChunkPos{X: 1, Z: 2}

	if err := r.Load(pos); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := r.StateOf(pos); got != StateScheduled {
		t.Errorf("Expected StateScheduled, got %v", got)
	}

	err := r.Load(pos)
	if !errors.Is(err, ErrAlreadyLoaded) {
		t.Errorf("Expected ErrAlreadyLoaded, got %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Expected 1 entry after duplicate load, got %d", r.Len())
	}
}

func TestUnloadReleasesResources(t *testing.T) {
	dev := &fakeDevice{}
	r := NewRegistry(dev)
	c := solidChunk(world.ChunkPos{})

	if err := r.Load(c.Pos()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := r.UpdateModel(c); err != nil {
		t.Fatalf("UpdateModel: %v", err)
	}
	if len(dev.created) != 1 {
		t.Fatalf("Expected 1 GPU mesh, got %d", len(dev.created))
	}

	if err := r.Unload(c.Pos()); err != nil {
		t.Fatalf("Unload: %v", err)
	}
	if !dev.created[0].released {
		t.Error("Expected GPU mesh released on unload")
	}
	if got := r.StateOf(c.Pos()); got != StateUnloaded {
		t.Errorf("Expected StateUnloaded, got %v", got)
	}

	err := r.Unload(c.Pos())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second unload, got %v", err)
	}
}

func TestUpdateModelWithoutLoad(t *testing.T) {
	r := NewRegistry(&fakeDevice{})
	err := r.UpdateModel(solidChunk(world.ChunkPos{X: 3, Z: 3}))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUpdateModelReusesBuffers(t *testing.T) {
	dev := &fakeDevice{}
	r := NewRegistry(dev)
	c := solidChunk(world.ChunkPos{})

	if err := r.Load(c.Pos()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := r.UpdateModel(c); err != nil {
		t.Fatalf("First UpdateModel: %v", err)
	}
	if err := r.UpdateModel(c); err != nil {
		t.Fatalf("Second UpdateModel: %v", err)
	}

	// One allocation, then in-place re-uploads
	if len(dev.created) != 1 {
		t.Errorf("Expected 1 GPU mesh allocation, got %d", len(dev.created))
	}
	if dev.created[0].uploads != 1 {
		t.Errorf("Expected 1 re-upload, got %d", dev.created[0].uploads)
	}
	if got := r.StateOf(c.Pos()); got != StateLoaded {
		t.Errorf("Expected StateLoaded, got %v", got)
	}
}

func TestPrepareFrameLifecycle(t *testing.T) {
	dev := &fakeDevice{}
	r := NewRegistry(dev)
	cam := fakeCamera{vp: mgl32.Translate3D(0, 0, -5)}

	scheduled := solidChunk(world.ChunkPos{X: 0, Z: 0})
	if err := r.PrepareFrame(cam, nil, []*world.Chunk{scheduled}); err != nil {
		t.Fatalf("PrepareFrame (scheduled): %v", err)
	}
	if got := r.StateOf(scheduled.Pos()); got != StateLoaded {
		t.Errorf("Expected StateLoaded after first frame, got %v", got)
	}
	if len(dev.created) != 1 {
		t.Fatalf("Expected 1 GPU mesh, got %d", len(dev.created))
	}

	// A dirty pass re-uploads into the existing buffers
	if err := r.MarkDirty(scheduled.Pos()); err != nil {
		t.Fatalf("MarkDirty: %v", err)
	}
	if got := r.StateOf(scheduled.Pos()); got != StateDirty {
		t.Errorf("Expected StateDirty, got %v", got)
	}
	if err := r.PrepareFrame(cam, []*world.Chunk{scheduled}, nil); err != nil {
		t.Fatalf("PrepareFrame (dirty): %v", err)
	}
	if got := r.StateOf(scheduled.Pos()); got != StateLoaded {
		t.Errorf("Expected StateLoaded after dirty pass, got %v", got)
	}
	if dev.created[0].uploads != 1 {
		t.Errorf("Expected exactly 1 re-upload, got %d", dev.created[0].uploads)
	}
	if len(dev.created) != 1 {
		t.Errorf("Expected no new allocations for a dirty chunk, got %d", len(dev.created))
	}
}

func TestPrepareFrameCollectsErrors(t *testing.T) {
	dev := &fakeDevice{failCreate: errors.New("device lost")}
	r := NewRegistry(dev)
	cam := fakeCamera{vp: mgl32.Ident4()}

	a := solidChunk(world.ChunkPos{X: 0, Z: 0})
	b := solidChunk(world.ChunkPos{X: 1, Z: 0})

	err := r.PrepareFrame(cam, nil, []*world.Chunk{a, b})
	if err == nil {
		t.Fatal("Expected joined errors from failing uploads")
	}
	// Both entries exist, neither has a drawable mesh, the frame goes on
	if r.Len() != 2 {
		t.Errorf("Expected 2 entries despite failures, got %d", r.Len())
	}
	r.Render() // must not panic or draw
}

func TestRenderDrawOrderAndUniforms(t *testing.T) {
	dev := &fakeDevice{}
	r := NewRegistry(dev)
	vp := mgl32.Perspective(1.0, 1.5, 0.1, 100)
	cam := fakeCamera{vp: vp}

	a := solidChunk(world.ChunkPos{X: 0, Z: 0})
	b := solidChunk(world.ChunkPos{X: 2, Z: -1})
	if err := r.PrepareFrame(cam, nil, []*world.Chunk{a, b}); err != nil {
		t.Fatalf("PrepareFrame: %v", err)
	}

	r.Render()

	if len(dev.created) != 2 {
		t.Fatalf("Expected 2 GPU meshes, got %d", len(dev.created))
	}
	for i, fm := range dev.created {
		if len(fm.draws) != 1 {
			t.Fatalf("Mesh %d: expected 1 draw, got %d", i, len(fm.draws))
		}
		if fm.draws[0].viewProj != vp {
			t.Errorf("Mesh %d: expected the frame's view-projection in its draw", i)
		}
	}

	// Model transform carries the chunk's world origin
	wantB := mgl32.Translate3D(32, 0, -16)
	if dev.created[1].draws[0].model != wantB {
		t.Errorf("Expected model translation to (32,0,-16), got %v", dev.created[1].draws[0].model)
	}
}

func TestRenderSkipsScheduledEntries(t *testing.T) {
	dev := &fakeDevice{}
	r := NewRegistry(dev)

	// Loaded but never meshed: nothing to draw yet
	if err := r.Load(world.ChunkPos{X: 5, Z: 5}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	r.Render()

	if len(dev.created) != 0 {
		t.Errorf("Expected no GPU meshes, got %d", len(dev.created))
	}
}

func TestMarkDirtyUnknown(t *testing.T) {
	r := NewRegistry(&fakeDevice{})
	err := r.MarkDirty(world.ChunkPos{X: 7, Z: 7})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
