package geo

import (
	"math"

	"github.com/draftline/outline/pkg/core"
)

// Endpoint computes the point reached by travelling signedLength along
// the given axis from start. The sign encodes direction: positive moves
// right (horizontal) or up (vertical) in drawing coordinates, where Y
// grows upward as in DXF.
func Endpoint(start core.Position2D, axis Axis, signedLength float64) core.Position2D {
	if axis == AxisHorizontal {
		return core.Position2D{X: start.X + signedLength, Y: start.Y}
	}
	return core.Position2D{X: start.X, Y: start.Y + signedLength}
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b core.Position2D) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Angle returns the direction from a to b in degrees, normalized to
// [0, 360).
func Angle(a, b core.Position2D) float64 {
	deg := math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// ToInternal converts a real-world length into the drawing's internal
// unit. unitsPerInternal is the number of real-world units represented
// by one internal unit.
func ToInternal(value, unitsPerInternal float64) float64 {
	return value / unitsPerInternal
}

// FromInternal converts an internal-unit length back into real-world
// units using the same scale factor.
func FromInternal(value, unitsPerInternal float64) float64 {
	return value * unitsPerInternal
}
