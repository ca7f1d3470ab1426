// Package gormstore implements the storage.Backend interface over a
// GORM database connection (Postgres or local SQLite; the connection
// manager decides which and dumps in-memory SQLite to disk on close).
package gormstore

import (
	"fmt"

	"github.com/draftline/outline/internal/database"
	"github.com/draftline/outline/internal/model"
	"github.com/draftline/outline/pkg/core"
)

// Backend persists drawings and outlines through GORM.
type Backend struct {
	db *database.Manager
}

// New creates a new GORM storage backend.
func New(db *database.Manager) *Backend {
	return &Backend{db: db}
}

// Init migrates the schema.
func (b *Backend) Init() error {
	return b.db.Setup()
}

// Close dumps the in-memory SQLite database to disk when that is the
// active connection, then closes the underlying connection.
func (b *Backend) Close() error {
	if b.db.ShouldSaveLocal {
		if err := b.db.DumpMemoryToDisk(); err != nil {
			return err
		}
	}
	if b.db.SqlDB != nil {
		return b.db.SqlDB.Close()
	}
	return nil
}

// SaveDrawing stores the drawing metadata and its outline snapshot in
// one transaction and assigns the drawing ID to the passed meta.
func (b *Backend) SaveDrawing(meta *core.DrawingMeta, outline core.OutlineSnapshot) (uint, error) {
	drawing := model.DrawingFromMeta(*meta)

	if err := b.db.DB.Create(&drawing).Error; err != nil {
		return 0, fmt.Errorf("failed to create drawing: %w", err)
	}

	var perimeter float64
	for _, seg := range outline.Segments {
		perimeter += seg.Length
	}

	row, err := model.OutlineFromSnapshot(drawing.ID, outline, perimeter)
	if err != nil {
		return 0, err
	}
	if err := b.db.DB.Create(&row).Error; err != nil {
		return 0, fmt.Errorf("failed to create outline: %w", err)
	}

	meta.ID = drawing.ID
	return drawing.ID, nil
}

// LoadOutline returns the most recent outline snapshot for a drawing.
func (b *Backend) LoadOutline(drawingID uint) (core.OutlineSnapshot, error) {
	var row model.Outline
	err := b.db.DB.
		Where("drawing_id = ?", drawingID).
		Order("created_at DESC").
		First(&row).Error
	if err != nil {
		return core.OutlineSnapshot{}, fmt.Errorf("failed to load outline for drawing %d: %w", drawingID, err)
	}
	return model.SnapshotFromOutline(row)
}

// ListDrawings returns metadata for every stored drawing.
func (b *Backend) ListDrawings() ([]core.DrawingMeta, error) {
	var rows []model.Drawing
	if err := b.db.DB.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list drawings: %w", err)
	}

	metas := make([]core.DrawingMeta, len(rows))
	for i, row := range rows {
		metas[i] = model.MetaFromDrawing(row)
	}
	return metas, nil
}
