package model

import (
	"encoding/json"
	"fmt"

	"github.com/draftline/outline/internal/geo"
	"github.com/draftline/outline/pkg/core"
)

// OutlineFromSnapshot converts a perimeter snapshot into its database
// row. The WKB ring column is only populated for closed outlines; open
// paths persist through the JSON columns alone.
func OutlineFromSnapshot(drawingID uint, snap core.OutlineSnapshot, perimeter float64) (Outline, error) {
	points, err := json.Marshal(snap.Points)
	if err != nil {
		return Outline{}, fmt.Errorf("failed to marshal points: %w", err)
	}
	segments, err := json.Marshal(snap.Segments)
	if err != nil {
		return Outline{}, fmt.Errorf("failed to marshal segments: %w", err)
	}

	out := Outline{
		DrawingID: drawingID,
		IsClosed:  snap.IsClosed,
		Perimeter: perimeter,
		Points:    points,
		Segments:  segments,
	}

	if snap.IsClosed && len(snap.Points) >= 3 {
		wkb, err := geo.RingWKB(snap.Points)
		if err != nil {
			return Outline{}, fmt.Errorf("failed to encode ring WKB: %w", err)
		}
		out.RingWKB = wkb
	}

	return out, nil
}

// SnapshotFromOutline decodes a database row back into the snapshot
// value form the perimeter model restores from.
func SnapshotFromOutline(o Outline) (core.OutlineSnapshot, error) {
	var snap core.OutlineSnapshot
	snap.IsClosed = o.IsClosed

	if len(o.Points) > 0 {
		if err := json.Unmarshal(o.Points, &snap.Points); err != nil {
			return core.OutlineSnapshot{}, fmt.Errorf("failed to unmarshal points: %w", err)
		}
	}
	if len(o.Segments) > 0 {
		if err := json.Unmarshal(o.Segments, &snap.Segments); err != nil {
			return core.OutlineSnapshot{}, fmt.Errorf("failed to unmarshal segments: %w", err)
		}
	}

	return snap, nil
}

// DrawingFromMeta converts extraction metadata into its database row.
func DrawingFromMeta(meta core.DrawingMeta) Drawing {
	return Drawing{
		FileName:           meta.FileName,
		UnitsPerMillimeter: meta.UnitsPerMillimeter,
		LineCount:          meta.LineCount,
		PolylineCount:      meta.PolylineCount,
		VertexCount:        meta.VertexCount,
	}
}

// MetaFromDrawing converts a database row back into drawing metadata.
func MetaFromDrawing(d Drawing) core.DrawingMeta {
	return core.DrawingMeta{
		ID:                 d.ID,
		FileName:           d.FileName,
		UnitsPerMillimeter: d.UnitsPerMillimeter,
		LineCount:          d.LineCount,
		PolylineCount:      d.PolylineCount,
		VertexCount:        d.VertexCount,
	}
}
