package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftline/outline/pkg/core"
)

func sampleSnapshot() core.OutlineSnapshot {
	return core.OutlineSnapshot{
		Points: []core.Position2D{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 3}},
		Segments: []core.SegmentSnapshot{
			{StartIndex: 0, EndIndex: 1, Length: 4, Angle: 0},
			{StartIndex: 1, EndIndex: 2, Length: 3, Angle: 90},
			{StartIndex: 2, EndIndex: 0, Length: 99, Angle: 216.87, ManualLengthOverride: true},
		},
		IsClosed: true,
	}
}

func TestOutlineFromSnapshot_RoundTrip(t *testing.T) {
	snap := sampleSnapshot()

	row, err := OutlineFromSnapshot(7, snap, 106)
	require.NoError(t, err)

	assert.Equal(t, uint(7), row.DrawingID)
	assert.True(t, row.IsClosed)
	assert.Equal(t, 106.0, row.Perimeter)
	assert.NotEmpty(t, row.RingWKB, "closed outline should carry WKB ring")

	got, err := SnapshotFromOutline(row)
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestOutlineFromSnapshot_OpenPathSkipsWKB(t *testing.T) {
	snap := sampleSnapshot()
	snap.IsClosed = false
	snap.Segments = snap.Segments[:2]

	row, err := OutlineFromSnapshot(1, snap, 7)
	require.NoError(t, err)
	assert.Empty(t, row.RingWKB)
}

func TestSnapshotFromOutline_EmptyRow(t *testing.T) {
	snap, err := SnapshotFromOutline(Outline{})
	require.NoError(t, err)
	assert.Empty(t, snap.Points)
	assert.Empty(t, snap.Segments)
	assert.False(t, snap.IsClosed)
}

func TestDrawingMeta_RoundTrip(t *testing.T) {
	meta := core.DrawingMeta{
		FileName:           "plan.dxf",
		UnitsPerMillimeter: 0.5,
		LineCount:          4,
		PolylineCount:      1,
		VertexCount:        6,
	}

	row := DrawingFromMeta(meta)
	row.ID = 12

	got := MetaFromDrawing(row)
	meta.ID = 12
	assert.Equal(t, meta, got)
}
