// Package memory stores drawings in memory and exports them to JSON
// files on close. It is the zero-dependency backend used when no
// database is available.
package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/draftline/outline/internal/config"
	"github.com/draftline/outline/pkg/core"
)

// DrawingRecord groups a drawing's metadata with its outline snapshot.
type DrawingRecord struct {
	Meta    core.DrawingMeta     `json:"meta"`
	Outline core.OutlineSnapshot `json:"outline"`
}

// Backend stores drawing records in memory.
type Backend struct {
	cfg config.MemoryConfig

	records   map[uint]*DrawingRecord
	idCounter uint
	mu        sync.RWMutex
}

// New creates a new memory backend.
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{
		cfg:     cfg,
		records: make(map[uint]*DrawingRecord),
	}
}

// Init initializes the backend.
func (b *Backend) Init() error {
	return nil
}

// Close exports all stored drawings to JSON files.
func (b *Backend) Close() error {
	return b.exportJSON()
}

// SaveDrawing stores the drawing and assigns it an ID.
func (b *Backend) SaveDrawing(meta *core.DrawingMeta, outline core.OutlineSnapshot) (uint, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idCounter++
	meta.ID = b.idCounter
	b.records[b.idCounter] = &DrawingRecord{
		Meta:    *meta,
		Outline: outline,
	}
	return b.idCounter, nil
}

// LoadOutline returns the outline snapshot for a drawing.
func (b *Backend) LoadOutline(drawingID uint) (core.OutlineSnapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	rec, ok := b.records[drawingID]
	if !ok {
		return core.OutlineSnapshot{}, fmt.Errorf("drawing %d not found", drawingID)
	}
	return rec.Outline, nil
}

// ListDrawings returns metadata for every stored drawing in ID order.
func (b *Backend) ListDrawings() ([]core.DrawingMeta, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	metas := make([]core.DrawingMeta, 0, len(b.records))
	for _, rec := range b.records {
		metas = append(metas, rec.Meta)
	}
	sort.Slice(metas, func(i, j int) bool { return metas[i].ID < metas[j].ID })
	return metas, nil
}
