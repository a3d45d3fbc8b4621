package world

import (
	"errors"
	"fmt"
)

var (
	// ErrChunkExists reports a schedule for an already-known chunk position.
	ErrChunkExists = errors.New("chunk already present")
	// ErrChunkNotFound reports an operation on an unknown chunk position.
	ErrChunkNotFound = errors.New("chunk not found")
)

// group tags which partition a chunk currently belongs to. A chunk is in
// exactly one group at a time; transfers are moves, never copies.
type group uint8

const (
	groupActive    group = iota // meshed and drawable
	groupScheduled              // needs first-time meshing and GPU resources
	groupDirty                  // block data changed since last meshing
)

// World owns all loaded chunks and partitions them into active, newly
// scheduled, and dirty groups. The renderer drains the scheduled and dirty
// groups once per frame. Single-threaded by design: one logical thread owns
// the world and the frame loop.
type World struct {
	byPos  map[ChunkPos]*Chunk
	groups map[ChunkPos]group
	order  []ChunkPos // insertion order, for stable iteration

	scheduled []ChunkPos
	dirty     []ChunkPos
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		byPos:  make(map[ChunkPos]*Chunk),
		groups: make(map[ChunkPos]group),
	}
}

// Schedule adds a chunk to the world in the scheduled group. The chunk will
// receive GPU resources on the next prepare pass. Scheduling a position twice
// fails with ErrChunkExists and leaves the existing chunk untouched.
func (w *World) Schedule(c *Chunk) error {
	pos := c.Pos()
	if _, ok := w.byPos[pos]; ok {
		return fmt.Errorf("schedule chunk (%d,%d): %w", pos.X, pos.Z, ErrChunkExists)
	}
	w.byPos[pos] = c
	w.groups[pos] = groupScheduled
	w.order = append(w.order, pos)
	w.scheduled = append(w.scheduled, pos)
	return nil
}

// Unload removes a chunk from the world entirely and returns it. The caller
// is responsible for releasing any renderer entry for the same position.
func (w *World) Unload(pos ChunkPos) (*Chunk, error) {
	c, ok := w.byPos[pos]
	if !ok {
		return nil, fmt.Errorf("unload chunk (%d,%d): %w", pos.X, pos.Z, ErrChunkNotFound)
	}
	switch w.groups[pos] {
	case groupScheduled:
		w.scheduled = removePos(w.scheduled, pos)
	case groupDirty:
		w.dirty = removePos(w.dirty, pos)
	}
	delete(w.byPos, pos)
	delete(w.groups, pos)
	w.order = removePos(w.order, pos)
	return c, nil
}

// ChunkAt returns the chunk at pos, if loaded.
func (w *World) ChunkAt(pos ChunkPos) (*Chunk, bool) {
	c, ok := w.byPos[pos]
	return c, ok
}

// Len returns the number of loaded chunks across all groups.
func (w *World) Len() int {
	return len(w.byPos)
}

// PlaceBlock mutates one block of a loaded chunk. An active chunk moves to
// the dirty group so it is re-meshed on the next prepare pass; scheduled and
// already-dirty chunks stay where they are, since their pending pass will
// pick the change up. A failed placement leaves world state unchanged.
func (w *World) PlaceBlock(pos ChunkPos, p BlockPos, b Block) error {
	c, ok := w.byPos[pos]
	if !ok {
		return fmt.Errorf("place block in chunk (%d,%d): %w", pos.X, pos.Z, ErrChunkNotFound)
	}
	if err := c.PlaceBlock(p, b); err != nil {
		return err
	}
	if w.groups[pos] == groupActive {
		w.groups[pos] = groupDirty
		w.dirty = append(w.dirty, pos)
	}
	return nil
}

// TakeScheduled moves every scheduled chunk to the active group and returns
// them in scheduling order.
func (w *World) TakeScheduled() []*Chunk {
	return w.take(&w.scheduled)
}

// TakeDirty moves every dirty chunk back to the active group and returns
// them in dirtying order.
func (w *World) TakeDirty() []*Chunk {
	return w.take(&w.dirty)
}

func (w *World) take(pending *[]ChunkPos) []*Chunk {
	if len(*pending) == 0 {
		return nil
	}
	out := make([]*Chunk, 0, len(*pending))
	for _, pos := range *pending {
		out = append(out, w.byPos[pos])
		w.groups[pos] = groupActive
	}
	*pending = (*pending)[:0]
	return out
}

// Chunks returns every loaded chunk in insertion order.
func (w *World) Chunks() []*Chunk {
	out := make([]*Chunk, 0, len(w.order))
	for _, pos := range w.order {
		out = append(out, w.byPos[pos])
	}
	return out
}

func removePos(s []ChunkPos, pos ChunkPos) []ChunkPos {
	for i, p := range s {
		if p == pos {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
