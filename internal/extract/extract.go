// Package extract walks a parsed DXF entity tree and emits the flat
// bag of wall segments the perimeter model is assembled from.
package extract

import (
	"github.com/draftline/outline/internal/dxf"
	"github.com/draftline/outline/pkg/core"
)

// Result is the extraction output handed to the perimeter model's bulk
// loaders and to quantity estimation. Segments follow entity traversal
// order but must be treated as an unordered bag until assembled.
type Result struct {
	Segments      []core.RawSegment `json:"segments"`
	LineCount     int               `json:"lineCount"`
	PolylineCount int               `json:"polylineCount"`
	VertexCount   int               `json:"vertexCount"`
}

// Extract emits one segment per LINE and one segment per consecutive
// vertex pair of each LWPOLYLINE / legacy POLYLINE, plus a closing
// segment for closed polylines with at least 3 vertices. Every other
// entity type is ignored: arcs, text, dimensions and the rest are
// expected, normal drawing content, not errors. A nil document yields
// an empty zero-count result.
func Extract(doc *dxf.Document) Result {
	var res Result
	if doc == nil {
		return res
	}

	for _, e := range doc.Entities {
		switch e.Type {
		case dxf.TypeLine:
			if len(e.Vertices) < 2 {
				continue
			}
			res.Segments = append(res.Segments, core.RawSegment{
				Start: e.Vertices[0],
				End:   e.Vertices[1],
			})
			res.LineCount++

		case dxf.TypeLWPolyline, dxf.TypePolyline:
			if len(e.Vertices) < 2 {
				continue
			}
			for i := 0; i < len(e.Vertices)-1; i++ {
				res.Segments = append(res.Segments, core.RawSegment{
					Start: e.Vertices[i],
					End:   e.Vertices[i+1],
				})
			}
			if e.Closed && len(e.Vertices) >= 3 {
				res.Segments = append(res.Segments, core.RawSegment{
					Start: e.Vertices[len(e.Vertices)-1],
					End:   e.Vertices[0],
				})
			}
			res.PolylineCount++
			res.VertexCount += len(e.Vertices)
		}
	}
	return res
}
