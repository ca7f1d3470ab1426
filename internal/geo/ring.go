package geo

import (
	"fmt"

	"github.com/draftline/outline/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// LineString builds a simplefeatures LineString from an ordered list of
// outline points. Geometry data is persisted in WKB, which SQLite can
// store as a plain blob without any spatial extension.
func LineString(points []core.Position2D) (geom.LineString, error) {
	if len(points) < 2 {
		return geom.LineString{}, fmt.Errorf("line string must have at least 2 points, got %d", len(points))
	}

	flatCoords := make([]float64, 0, len(points)*2)
	for _, p := range points {
		flatCoords = append(flatCoords, p.X, p.Y)
	}

	seq := geom.NewSequence(flatCoords, geom.DimXY)
	return geom.NewLineString(seq), nil
}

// Ring builds a closed LineString from outline points, repeating the
// first point at the end as WKB ring encoding requires.
func Ring(points []core.Position2D) (geom.LineString, error) {
	if len(points) < 3 {
		return geom.LineString{}, fmt.Errorf("ring must have at least 3 points, got %d", len(points))
	}

	flatCoords := make([]float64, 0, (len(points)+1)*2)
	for _, p := range points {
		flatCoords = append(flatCoords, p.X, p.Y)
	}
	flatCoords = append(flatCoords, points[0].X, points[0].Y)

	seq := geom.NewSequence(flatCoords, geom.DimXY)
	return geom.NewLineString(seq), nil
}

// RingWKB returns the WKB encoding of the closed outline ring.
func RingWKB(points []core.Position2D) ([]byte, error) {
	ring, err := Ring(points)
	if err != nil {
		return nil, err
	}
	return ring.AsBinary(), nil
}
