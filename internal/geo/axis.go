// Package geo provides the axis-aligned (Manhattan) geometry helpers
// the extraction pipeline and the perimeter model are built on.
package geo

import (
	"math"

	"github.com/draftline/outline/pkg/core"
)

// Axis is the dominant direction of a wall segment.
type Axis string

const (
	AxisHorizontal Axis = "horizontal"
	AxisVertical   Axis = "vertical"
)

// Classify returns the dominant axis of the segment from start to end.
// A tie (|dx| == |dy|) resolves to vertical. Callers depend on that
// tie-break; do not change it to >=.
func Classify(start, end core.Position2D) Axis {
	if math.Abs(end.X-start.X) > math.Abs(end.Y-start.Y) {
		return AxisHorizontal
	}
	return AxisVertical
}

// SnapToAxis forces target onto the horizontal or vertical line through
// reference, whichever is closer to the segment's dominant direction.
// Used by interactive drawing tools to keep walls axis-aligned.
func SnapToAxis(reference, target core.Position2D) core.Position2D {
	if Classify(reference, target) == AxisHorizontal {
		return core.Position2D{X: target.X, Y: reference.Y}
	}
	return core.Position2D{X: reference.X, Y: target.Y}
}
