// Package dxf parses DXF drawing-interchange text into a structured
// entity tree. It is a pure text transform: byte acquisition (file
// upload, drag-drop) is the caller's responsibility, and the parser
// never touches the filesystem or network.
package dxf

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/draftline/outline/pkg/core"
)

// ErrMalformedInput is returned when the text cannot be tokenized into
// a valid entity tree. No partial result is produced.
var ErrMalformedInput = errors.New("malformed DXF input")

// Entity types the extractor recognizes. Every other type stays in the
// tree untouched so callers can inspect it, but the wall extraction
// pipeline ignores it.
const (
	TypeLine       = "LINE"
	TypeLWPolyline = "LWPOLYLINE"
	TypePolyline   = "POLYLINE"
)

// Entity is one drawing entity. Type discriminates the payload: for
// LINE, Vertices holds start and end; for polylines it holds the vertex
// run in drawing order, with Closed set when the entity's closed flag
// (group 70, bit 1) is present.
type Entity struct {
	Type     string
	Handle   string
	Layer    string
	Vertices []core.Position2D
	Closed   bool
}

// Document is the parsed entity tree of one drawing.
type Document struct {
	Entities []Entity
}

// Parse converts raw DXF text into a Document. It fails with an error
// wrapping ErrMalformedInput on empty input, truncated tag pairs,
// unknown section structure, or a missing ENTITIES section.
func Parse(text string) (*Document, error) {
	tags, err := scanTags(text)
	if err != nil {
		return nil, err
	}

	doc := &Document{}
	foundEntities := false

	i := 0
	for i < len(tags) {
		t := tags[i]
		if t.code != 0 {
			return nil, fmt.Errorf("%w: unexpected tag (%d, %q) between sections", ErrMalformedInput, t.code, t.value)
		}

		switch t.value {
		case "SECTION":
			if i+1 >= len(tags) || tags[i+1].code != 2 {
				return nil, fmt.Errorf("%w: SECTION without a name tag", ErrMalformedInput)
			}
			name := tags[i+1].value
			end := sectionEnd(tags, i+2)
			if end < 0 {
				return nil, fmt.Errorf("%w: section %s is not terminated by ENDSEC", ErrMalformedInput, name)
			}
			if name == "ENTITIES" {
				entities, err := parseEntities(tags[i+2 : end])
				if err != nil {
					return nil, err
				}
				doc.Entities = entities
				foundEntities = true
			}
			i = end + 1
		case "EOF":
			i = len(tags)
		default:
			return nil, fmt.Errorf("%w: unexpected %q at top level", ErrMalformedInput, t.value)
		}
	}

	if !foundEntities {
		return nil, fmt.Errorf("%w: no ENTITIES section", ErrMalformedInput)
	}
	return doc, nil
}

// sectionEnd returns the index of the (0, ENDSEC) tag closing the
// section that starts at from, or -1 when the section is truncated.
func sectionEnd(tags []tag, from int) int {
	for i := from; i < len(tags); i++ {
		if tags[i].code == 0 && tags[i].value == "ENDSEC" {
			return i
		}
	}
	return -1
}

// parseEntities walks the tags of an ENTITIES section. Entities begin
// at each (0, <type>) tag. Legacy POLYLINE entities carry their points
// in VERTEX sub-entities terminated by SEQEND; those fold into the
// owning polyline instead of appearing as entities of their own.
func parseEntities(tags []tag) ([]Entity, error) {
	var (
		entities  []Entity
		cur       *Entity
		inVertex  bool
		pendingX  float64
		hasX      bool
		pendingX2 float64
		hasX2     bool
	)

	flush := func() {
		if cur != nil {
			entities = append(entities, *cur)
			cur = nil
		}
		inVertex = false
		hasX = false
		hasX2 = false
	}

	for _, t := range tags {
		if t.code == 0 {
			switch {
			case t.value == "VERTEX" && cur != nil && cur.Type == TypePolyline:
				inVertex = true
				hasX = false
			case t.value == "SEQEND":
				flush()
			default:
				flush()
				cur = &Entity{Type: t.value}
			}
			continue
		}

		if cur == nil {
			continue
		}

		switch t.code {
		case 5:
			if !inVertex && cur.Handle == "" {
				cur.Handle = t.value
			}
		case 8:
			if !inVertex && cur.Layer == "" {
				cur.Layer = t.value
			}
		case 10:
			x, err := parseCoord(t)
			if err != nil {
				return nil, err
			}
			pendingX = x
			hasX = true
		case 20:
			y, err := parseCoord(t)
			if err != nil {
				return nil, err
			}
			if hasX {
				cur.Vertices = append(cur.Vertices, core.Position2D{X: pendingX, Y: y})
				hasX = false
			}
		case 11:
			x, err := parseCoord(t)
			if err != nil {
				return nil, err
			}
			pendingX2 = x
			hasX2 = true
		case 21:
			y, err := parseCoord(t)
			if err != nil {
				return nil, err
			}
			if hasX2 {
				cur.Vertices = append(cur.Vertices, core.Position2D{X: pendingX2, Y: y})
				hasX2 = false
			}
		case 70:
			// Group 70 on a VERTEX holds vertex flags, not the closed
			// flag; only the owning entity's flags count.
			if !inVertex {
				flags, err := strconv.Atoi(t.value)
				if err != nil {
					return nil, fmt.Errorf("%w: invalid flags value %q", ErrMalformedInput, t.value)
				}
				cur.Closed = flags&1 != 0
			}
		}
	}
	flush()

	return entities, nil
}

func parseCoord(t tag) (float64, error) {
	v, err := strconv.ParseFloat(t.value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid coordinate %q for group %d", ErrMalformedInput, t.value, t.code)
	}
	return v, nil
}
