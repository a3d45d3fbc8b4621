package world

import (
	"errors"
	"testing"
)

func TestScheduleAndTake(t *testing.T) {
	w := NewWorld()
	a := NewChunk(ChunkPos{X: 0, Z: 0})
	b := NewChunk(ChunkPos{X: 1, Z: 0})

	if err := w.Schedule(a); err != nil {
		t.Fatalf("Schedule(a): %v", err)
	}
	if err := w.Schedule(b); err != nil {
		t.Fatalf("Schedule(b): %v", err)
	}
	if w.Len() != 2 {
		t.Fatalf("Expected 2 chunks, got %d", w.Len())
	}

	got := w.TakeScheduled()
	if len(got) != 2 {
		t.Fatalf("Expected 2 scheduled chunks, got %d", len(got))
	}
	if got[0] != a || got[1] != b {
		t.Error("Expected scheduled chunks in scheduling order")
	}

	// The drain is one-shot; taken chunks are active now
	if again := w.TakeScheduled(); len(again) != 0 {
		t.Errorf("Expected empty second drain, got %d chunks", len(again))
	}
	if w.Len() != 2 {
		t.Errorf("Expected chunks to stay loaded after drain, got %d", w.Len())
	}
}

func TestScheduleDuplicate(t *testing.T) {
	w := NewWorld()
	pos := ChunkPos{X: 3, Z: 4}

	if err := w.Schedule(NewChunk(pos)); err != nil {
		t.Fatalf("First Schedule: %v", err)
	}
	err := w.Schedule(NewChunk(pos))
	if !errors.Is(err, ErrChunkExists) {
		t.Errorf("Expected ErrChunkExists, got %v", err)
	}
}

func TestPlaceBlockDirtiesActiveChunk(t *testing.T) {
	w := NewWorld()
	c := NewChunk(ChunkPos{})
	if err := w.Schedule(c); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	w.TakeScheduled() // activate

	if err := w.PlaceBlock(ChunkPos{}, BlockPos{X: 1, Y: 2, Z: 3}, Dirt); err != nil {
		t.Fatalf("PlaceBlock: %v", err)
	}

	dirty := w.TakeDirty()
	if len(dirty) != 1 || dirty[0] != c {
		t.Fatalf("Expected the edited chunk in the dirty drain, got %d chunks", len(dirty))
	}
	if b, _ := c.BlockAt(BlockPos{X: 1, Y: 2, Z: 3}); b != Dirt {
		t.Errorf("Expected Dirt written through, got %v", b)
	}

	// Drained once; a second edit dirties it again
	if again := w.TakeDirty(); len(again) != 0 {
		t.Errorf("Expected empty second drain, got %d chunks", len(again))
	}
	if err := w.PlaceBlock(ChunkPos{}, BlockPos{X: 0, Y: 0, Z: 0}, Dirt); err != nil {
		t.Fatalf("Second PlaceBlock: %v", err)
	}
	if dirty := w.TakeDirty(); len(dirty) != 1 {
		t.Errorf("Expected chunk to dirty again, got %d chunks", len(dirty))
	}
}

func TestPlaceBlockOnScheduledChunk(t *testing.T) {
	w := NewWorld()
	c := NewChunk(ChunkPos{})
	if err := w.Schedule(c); err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	// A not-yet-activated chunk takes the edit but stays scheduled; its
	// first meshing pass will already see the block.
	if err := w.PlaceBlock(ChunkPos{}, BlockPos{}, Dirt); err != nil {
		t.Fatalf("PlaceBlock: %v", err)
	}
	if dirty := w.TakeDirty(); len(dirty) != 0 {
		t.Errorf("Expected no dirty chunks, got %d", len(dirty))
	}
	if scheduled := w.TakeScheduled(); len(scheduled) != 1 {
		t.Errorf("Expected chunk still scheduled, got %d", len(scheduled))
	}
}

func TestPlaceBlockUnknownChunk(t *testing.T) {
	w := NewWorld()
	err := w.PlaceBlock(ChunkPos{X: 9, Z: 9}, BlockPos{}, Dirt)
	if !errors.Is(err, ErrChunkNotFound) {
		t.Errorf("Expected ErrChunkNotFound, got %v", err)
	}
}

func TestUnload(t *testing.T) {
	w := NewWorld()
	c := NewChunk(ChunkPos{X: 1, Z: 1})
	if err := w.Schedule(c); err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	got, err := w.Unload(ChunkPos{X: 1, Z: 1})
	if err != nil {
		t.Fatalf("Unload: %v", err)
	}
	if got != c {
		t.Error("Expected Unload to return the loaded chunk")
	}
	if w.Len() != 0 {
		t.Errorf("Expected empty world, got %d chunks", w.Len())
	}
	if scheduled := w.TakeScheduled(); len(scheduled) != 0 {
		t.Errorf("Expected no scheduled leftovers, got %d", len(scheduled))
	}

	_, err = w.Unload(ChunkPos{X: 1, Z: 1})
	if !errors.Is(err, ErrChunkNotFound) {
		t.Errorf("Expected ErrChunkNotFound, got %v", err)
	}
}
