package gormstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/draftline/outline/internal/database"
	"github.com/draftline/outline/internal/model"
	"github.com/draftline/outline/pkg/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestBackend creates an initialized Backend over a throwaway
// SQLite file, so each test gets an isolated database.
func newTestBackend(t *testing.T) *Backend {
	t.Helper()

	m := &database.Manager{Logger: zerolog.Nop()}
	db, err := m.GetSqliteDB(filepath.Join(t.TempDir(), "outline_test.db"))
	require.NoError(t, err)
	m.DB = db
	m.SqlDB, err = db.DB()
	require.NoError(t, err)
	m.IsValid = true

	b := New(m)
	require.NoError(t, b.Init())
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func testSnapshot() core.OutlineSnapshot {
	return core.OutlineSnapshot{
		Points: []core.Position2D{
			{X: 0, Y: 0},
			{X: 10, Y: 0},
			{X: 10, Y: 5},
			{X: 0, Y: 5},
		},
		Segments: []core.SegmentSnapshot{
			{StartIndex: 0, EndIndex: 1, Length: 10, Angle: 0},
			{StartIndex: 1, EndIndex: 2, Length: 5, Angle: 90},
			{StartIndex: 2, EndIndex: 3, Length: 10, Angle: 180},
			{StartIndex: 3, EndIndex: 0, Length: 5, Angle: 270},
		},
		IsClosed: true,
	}
}

func TestSaveDrawing(t *testing.T) {
	b := newTestBackend(t)

	meta := &core.DrawingMeta{
		FileName:           "plan.dxf",
		UnitsPerMillimeter: 1,
		LineCount:          4,
		VertexCount:        8,
	}
	id, err := b.SaveDrawing(meta, testSnapshot())
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Equal(t, id, meta.ID)
}

func TestSaveAndLoadOutline(t *testing.T) {
	b := newTestBackend(t)

	id, err := b.SaveDrawing(&core.DrawingMeta{FileName: "plan.dxf"}, testSnapshot())
	require.NoError(t, err)

	snap, err := b.LoadOutline(id)
	require.NoError(t, err)
	assert.Len(t, snap.Points, 4)
	assert.Len(t, snap.Segments, 4)
	assert.True(t, snap.IsClosed)
	assert.Equal(t, core.Position2D{X: 10, Y: 5}, snap.Points[2])
	assert.Equal(t, 10.0, snap.Segments[0].Length)
}

func TestLoadOutlineUnknownDrawing(t *testing.T) {
	b := newTestBackend(t)

	_, err := b.LoadOutline(999)
	assert.Error(t, err)
}

func TestLoadOutlineReturnsLatest(t *testing.T) {
	b := newTestBackend(t)

	id, err := b.SaveDrawing(&core.DrawingMeta{FileName: "plan.dxf"}, testSnapshot())
	require.NoError(t, err)

	// A newer outline row for the same drawing wins on load.
	second := testSnapshot()
	second.IsClosed = false
	second.Segments = second.Segments[:3]
	row, err := model.OutlineFromSnapshot(id, second, 25)
	require.NoError(t, err)
	row.CreatedAt = time.Now().Add(time.Minute)
	require.NoError(t, b.db.DB.Create(&row).Error)

	snap, err := b.LoadOutline(id)
	require.NoError(t, err)
	assert.False(t, snap.IsClosed)
	assert.Len(t, snap.Segments, 3)
}

func TestListDrawings(t *testing.T) {
	b := newTestBackend(t)

	for _, name := range []string{"first.dxf", "second.dxf"} {
		_, err := b.SaveDrawing(&core.DrawingMeta{FileName: name, UnitsPerMillimeter: 25.4}, testSnapshot())
		require.NoError(t, err)
	}

	metas, err := b.ListDrawings()
	require.NoError(t, err)
	require.Len(t, metas, 2)
	assert.Equal(t, "first.dxf", metas[0].FileName)
	assert.Equal(t, "second.dxf", metas[1].FileName)
	assert.Equal(t, 25.4, metas[0].UnitsPerMillimeter)
}

func TestListDrawingsEmpty(t *testing.T) {
	b := newTestBackend(t)

	metas, err := b.ListDrawings()
	require.NoError(t, err)
	assert.Empty(t, metas)
}
