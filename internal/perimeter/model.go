// Package perimeter holds the mutable source of truth for a building's
// outer wall outline: an arena of points plus the segments connecting
// them by index. Segments never hold point references directly, so
// moving a point automatically reaches every segment that touches it.
package perimeter

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/draftline/outline/internal/geo"
	"github.com/draftline/outline/pkg/core"
)

var (
	// ErrInvalidIndex is returned when a point or segment index is out
	// of range. This indicates a caller bug, not recoverable input.
	ErrInvalidIndex = errors.New("invalid index")

	// ErrInvalidGeometricState is returned when an operation would
	// violate the outline's shape invariants. The model is left
	// unchanged.
	ErrInvalidGeometricState = errors.New("invalid geometric state")
)

// Segment connects two points of the outline by index. Length is the
// authoritative value consumed by quantity calculators: it tracks the
// geometric distance between its endpoints unless ManualLengthOverride
// is set, in which case it holds a user-supplied value that may diverge
// from the geometry until explicitly reset.
type Segment struct {
	StartIndex           int
	EndIndex             int
	Length               float64
	Angle                float64
	ManualLengthOverride bool
}

// Model is the perimeter under edit. It is single-writer: one drawing
// session owns one instance, and each mutation completes (including
// listener notification) before the next begins. Listeners must not
// re-enter mutating operations on the same instance.
type Model struct {
	logger *slog.Logger

	points   []core.Position2D
	segments []Segment
	closed   bool

	listeners  map[int]func()
	listenerID int
}

// New creates an empty perimeter model. A nil logger falls back to
// slog.Default.
func New(logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	return &Model{
		logger:    logger,
		listeners: make(map[int]func()),
	}
}

// AddPoint appends a point to the outline. Every point after the first
// also creates a segment from the previous point, with length and angle
// computed from the current coordinates. Fails when the outline is
// already closed.
func (m *Model) AddPoint(x, y float64) (int, error) {
	if m.closed {
		return 0, fmt.Errorf("%w: cannot add point to a closed outline", ErrInvalidGeometricState)
	}

	m.points = append(m.points, core.Position2D{X: x, Y: y})
	index := len(m.points) - 1
	if index > 0 {
		m.segments = append(m.segments, m.newSegment(index-1, index))
	}

	m.notify()
	return index, nil
}

// MovePoint relocates a point. Every touching segment's angle is
// recomputed; length too, unless the segment carries a manual override,
// in which case geometric drift from the override is intentional.
func (m *Model) MovePoint(index int, x, y float64) error {
	if index < 0 || index >= len(m.points) {
		return fmt.Errorf("%w: point %d of %d", ErrInvalidIndex, index, len(m.points))
	}

	m.points[index] = core.Position2D{X: x, Y: y}
	for i := range m.segments {
		seg := &m.segments[i]
		if seg.StartIndex != index && seg.EndIndex != index {
			continue
		}
		start, end := m.points[seg.StartIndex], m.points[seg.EndIndex]
		seg.Angle = geo.Angle(start, end)
		if !seg.ManualLengthOverride {
			seg.Length = geo.Distance(start, end)
		}
	}

	m.notify()
	return nil
}

// ClosePolygon adds the closing segment from the last point back to the
// first and marks the outline closed. A no-op when already closed;
// fails with fewer than 3 points.
func (m *Model) ClosePolygon() error {
	if m.closed {
		return nil
	}
	if len(m.points) < 3 {
		return fmt.Errorf("%w: need at least 3 points to close, have %d", ErrInvalidGeometricState, len(m.points))
	}

	m.segments = append(m.segments, m.newSegment(len(m.points)-1, 0))
	m.closed = true

	m.notify()
	return nil
}

// Reopen drops the closing segment so points can be added again. A
// no-op on an open outline.
func (m *Model) Reopen() {
	if !m.closed {
		return
	}
	m.segments = m.segments[:len(m.segments)-1]
	m.closed = false
	m.notify()
}

// UpdateSegmentLength sets a segment's length directly and marks it
// manually overridden. It does not move any point, and a later
// MovePoint will not clobber the value. Fails on out-of-range index or
// non-positive length.
func (m *Model) UpdateSegmentLength(index int, newLength float64) error {
	if index < 0 || index >= len(m.segments) {
		return fmt.Errorf("%w: segment %d of %d", ErrInvalidIndex, index, len(m.segments))
	}
	if newLength <= 0 {
		return fmt.Errorf("%w: segment length must be positive, got %f", ErrInvalidGeometricState, newLength)
	}

	m.segments[index].Length = newLength
	m.segments[index].ManualLengthOverride = true

	m.notify()
	return nil
}

// ResetSegmentLength clears the manual override and recomputes length
// and angle from the segment's current endpoints.
func (m *Model) ResetSegmentLength(index int) error {
	if index < 0 || index >= len(m.segments) {
		return fmt.Errorf("%w: segment %d of %d", ErrInvalidIndex, index, len(m.segments))
	}

	seg := &m.segments[index]
	seg.ManualLengthOverride = false
	start, end := m.points[seg.StartIndex], m.points[seg.EndIndex]
	seg.Length = geo.Distance(start, end)
	seg.Angle = geo.Angle(start, end)

	m.notify()
	return nil
}

// RemoveLastPoint is the undo primitive. On a closed outline it drops
// only the closing segment and reopens; otherwise it drops the last
// segment (if any) together with the last point.
func (m *Model) RemoveLastPoint() {
	if m.closed {
		m.segments = m.segments[:len(m.segments)-1]
		m.closed = false
		m.notify()
		return
	}

	if len(m.segments) > 0 {
		m.segments = m.segments[:len(m.segments)-1]
	}
	if len(m.points) > 0 {
		m.points = m.points[:len(m.points)-1]
	}
	m.notify()
}

// Clear resets the model to the empty state. Registered listeners
// survive.
func (m *Model) Clear() {
	m.points = nil
	m.segments = nil
	m.closed = false
	m.notify()
}

// LoadFromCADData bulk-replaces the model from extraction output. The
// segments are assumed to trace the outline in order, so each
// segment's start point becomes an outline point and the ring is
// closed from the last point back to the first.
func (m *Model) LoadFromCADData(wallSegments []core.RawSegment) {
	points := make([]core.Position2D, 0, len(wallSegments))
	for _, seg := range wallSegments {
		points = append(points, seg.Start)
	}
	m.LoadFromPoints(points)
}

// LoadFromPoints bulk-replaces the model from a raw ring of points,
// always producing a closed ring that wraps the last point back to the
// first. Fewer than 3 points leaves the model empty rather than
// failing.
func (m *Model) LoadFromPoints(points []core.Position2D) {
	m.points = nil
	m.segments = nil
	m.closed = false

	if len(points) < 3 {
		m.notify()
		return
	}

	m.points = make([]core.Position2D, len(points))
	copy(m.points, points)
	for i := 0; i < len(points)-1; i++ {
		m.segments = append(m.segments, m.newSegment(i, i+1))
	}
	m.segments = append(m.segments, m.newSegment(len(points)-1, 0))
	m.closed = true

	m.notify()
}

// Perimeter sums all segment lengths, manual overrides included.
func (m *Model) Perimeter() float64 {
	var total float64
	for _, seg := range m.segments {
		total += seg.Length
	}
	return total
}

// PerimeterIn returns the perimeter converted to real-world units with
// the given scale.
func (m *Model) PerimeterIn(unitsPerInternal float64) float64 {
	return geo.FromInternal(m.Perimeter(), unitsPerInternal)
}

// BoundingBox returns the min and max corners over the current points.
// An empty model yields two zero points.
func (m *Model) BoundingBox() (min, max core.Position2D) {
	if len(m.points) == 0 {
		return core.Position2D{}, core.Position2D{}
	}
	min, max = m.points[0], m.points[0]
	for _, p := range m.points[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Center returns the center of the bounding box.
func (m *Model) Center() core.Position2D {
	min, max := m.BoundingBox()
	return core.Position2D{X: (min.X + max.X) / 2, Y: (min.Y + max.Y) / 2}
}

// Points returns a copy of the outline's points.
func (m *Model) Points() []core.Position2D {
	out := make([]core.Position2D, len(m.points))
	copy(out, m.points)
	return out
}

// Segments returns a copy of the outline's segments.
func (m *Model) Segments() []Segment {
	out := make([]Segment, len(m.segments))
	copy(out, m.segments)
	return out
}

// PointCount returns the number of points in the outline.
func (m *Model) PointCount() int { return len(m.points) }

// SegmentCount returns the number of segments in the outline.
func (m *Model) SegmentCount() int { return len(m.segments) }

// IsClosed reports whether the outline forms a closed ring.
func (m *Model) IsClosed() bool { return m.closed }

// Snapshot returns the model's durable value form for persistence.
func (m *Model) Snapshot() core.OutlineSnapshot {
	snap := core.OutlineSnapshot{
		Points:   make([]core.Position2D, len(m.points)),
		Segments: make([]core.SegmentSnapshot, len(m.segments)),
		IsClosed: m.closed,
	}
	copy(snap.Points, m.points)
	for i, seg := range m.segments {
		snap.Segments[i] = core.SegmentSnapshot{
			StartIndex:           seg.StartIndex,
			EndIndex:             seg.EndIndex,
			Length:               seg.Length,
			Angle:                seg.Angle,
			ManualLengthOverride: seg.ManualLengthOverride,
		}
	}
	return snap
}

// Restore replaces the model's state from a snapshot. The snapshot is
// trusted to come from a previously valid model; no invariants are
// checked.
func (m *Model) Restore(snap core.OutlineSnapshot) {
	m.points = make([]core.Position2D, len(snap.Points))
	copy(m.points, snap.Points)
	m.segments = make([]Segment, len(snap.Segments))
	for i, seg := range snap.Segments {
		m.segments[i] = Segment{
			StartIndex:           seg.StartIndex,
			EndIndex:             seg.EndIndex,
			Length:               seg.Length,
			Angle:                seg.Angle,
			ManualLengthOverride: seg.ManualLengthOverride,
		}
	}
	m.closed = snap.IsClosed
	m.notify()
}

// OnChange registers a listener invoked synchronously after every
// completed mutation. The returned function unsubscribes it.
func (m *Model) OnChange(listener func()) func() {
	m.listenerID++
	id := m.listenerID
	m.listeners[id] = listener
	return func() {
		delete(m.listeners, id)
	}
}

func (m *Model) newSegment(startIndex, endIndex int) Segment {
	start, end := m.points[startIndex], m.points[endIndex]
	return Segment{
		StartIndex: startIndex,
		EndIndex:   endIndex,
		Length:     geo.Distance(start, end),
		Angle:      geo.Angle(start, end),
	}
}

// notify runs all listeners. A panicking listener is isolated: it is
// logged and the remaining listeners still run.
func (m *Model) notify() {
	for _, listener := range m.listeners {
		m.runListener(listener)
	}
}

func (m *Model) runListener(listener func()) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("outline change listener panicked", "panic", r)
		}
	}()
	listener()
}
