package core

// SegmentSnapshot is the persisted form of one outline segment.
// StartIndex and EndIndex refer into the snapshot's point list.
// Length is the authoritative length consumed by quantity calculators;
// when ManualLengthOverride is set it may diverge from the geometric
// distance between the endpoints.
type SegmentSnapshot struct {
	StartIndex           int     `json:"startIndex"`
	EndIndex             int     `json:"endIndex"`
	Length               float64 `json:"length"`
	Angle                float64 `json:"angle"`
	ManualLengthOverride bool    `json:"manualLengthOverride"`
}

// OutlineSnapshot is the only externally durable representation of a
// perimeter model. Restoring a snapshot trusts its contents: it is
// assumed to have been produced from a previously valid model.
type OutlineSnapshot struct {
	Points   []Position2D      `json:"points"`
	Segments []SegmentSnapshot `json:"segments"`
	IsClosed bool              `json:"isClosed"`
}

// DrawingMeta describes an ingested drawing file together with the
// statistics its extraction produced.
type DrawingMeta struct {
	ID                 uint    `json:"id"`
	FileName           string  `json:"fileName"`
	UnitsPerMillimeter float64 `json:"unitsPerMillimeter"`
	LineCount          int     `json:"lineCount"`
	PolylineCount      int     `json:"polylineCount"`
	VertexCount        int     `json:"vertexCount"`
}
