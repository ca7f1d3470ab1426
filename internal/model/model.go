// Package model defines the database schema for persisted drawings and
// their outline snapshots.
package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DatabaseModels lists every struct migrated into the database schema.
var DatabaseModels = []interface{}{
	&ProjectInfo{},
	&Drawing{},
	&Outline{},
}

// ProjectInfo holds the installation-level settings row.
type ProjectInfo struct {
	gorm.Model
	Name        string `json:"name" gorm:"size:127"`
	Description string `json:"description" gorm:"size:255"`
	Website     string `json:"website" gorm:"size:255"`
}

// Drawing is one ingested CAD file together with its extraction
// statistics.
type Drawing struct {
	gorm.Model
	FileName           string  `json:"fileName" gorm:"size:255;index:idx_drawing_file_name"`
	UnitsPerMillimeter float64 `json:"unitsPerMillimeter"`
	LineCount          int     `json:"lineCount"`
	PolylineCount      int     `json:"polylineCount"`
	VertexCount        int     `json:"vertexCount"`
}

// Outline is a persisted perimeter snapshot. Points and Segments hold
// the snapshot's JSON value form; RingWKB additionally stores the
// closed ring as WKB so spatially-aware consumers can read the geometry
// without decoding the JSON.
type Outline struct {
	gorm.Model
	DrawingID uint    `json:"drawingId" gorm:"index:idx_outline_drawing_id"`
	Drawing   Drawing `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:DrawingID"`

	IsClosed  bool           `json:"isClosed"`
	Perimeter float64        `json:"perimeter"`
	Points    datatypes.JSON `json:"points"`
	Segments  datatypes.JSON `json:"segments"`
	RingWKB   []byte         `json:"-"`
}
