// Package core holds the plain value types shared between the drawing
// pipeline, the perimeter model and the storage backends. It has no
// dependencies so every layer can exchange these types freely.
package core

// Position2D is a 2D coordinate in the drawing's internal linear unit
// (millimeters unless the caller configured a different scale).
type Position2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RawSegment is a wall segment lifted straight out of a CAD drawing.
// It is not yet part of any outline: extraction order follows entity
// traversal order and is not guaranteed to trace a walkable path.
type RawSegment struct {
	Start Position2D `json:"start"`
	End   Position2D `json:"end"`
}
