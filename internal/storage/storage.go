// Package storage defines the persistence boundary for drawings and
// their outline snapshots.
package storage

import "github.com/draftline/outline/pkg/core"

// Backend is the interface all storage implementations must satisfy.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// SaveDrawing stores a drawing's metadata together with its outline
	// snapshot and returns the drawing's assigned ID.
	SaveDrawing(meta *core.DrawingMeta, outline core.OutlineSnapshot) (uint, error)

	// LoadOutline returns the most recent outline snapshot for a drawing.
	LoadOutline(drawingID uint) (core.OutlineSnapshot, error)

	// ListDrawings returns metadata for every stored drawing.
	ListDrawings() ([]core.DrawingMeta, error)
}
