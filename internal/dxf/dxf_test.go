package dxf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// docText builds DXF text with the given tag lines wrapped in an
// ENTITIES section and EOF marker.
func docText(entityLines ...string) string {
	lines := []string{"0", "SECTION", "2", "ENTITIES"}
	lines = append(lines, entityLines...)
	lines = append(lines, "0", "ENDSEC", "0", "EOF")
	return strings.Join(lines, "\n") + "\n"
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse("")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestParse_WhitespaceOnly(t *testing.T) {
	_, err := Parse("\n\n  \n")
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestParse_TruncatedTagPair(t *testing.T) {
	_, err := Parse("0\nSECTION\n2\nENTITIES\n0\nENDSEC\n0\nEOF\n0\n")
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestParse_InvalidGroupCode(t *testing.T) {
	_, err := Parse("ZERO\nSECTION\n")
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestParse_MissingEntitiesSection(t *testing.T) {
	text := strings.Join([]string{"0", "SECTION", "2", "HEADER", "0", "ENDSEC", "0", "EOF"}, "\n")
	_, err := Parse(text)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestParse_UnterminatedSection(t *testing.T) {
	text := strings.Join([]string{"0", "SECTION", "2", "ENTITIES", "0", "LINE"}, "\n")
	_, err := Parse(text)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestParse_Line(t *testing.T) {
	doc, err := Parse(docText(
		"0", "LINE",
		"5", "A1",
		"8", "Walls",
		"10", "0.0",
		"20", "0.0",
		"11", "5.0",
		"21", "0.0",
	))
	require.NoError(t, err)
	require.Len(t, doc.Entities, 1)

	e := doc.Entities[0]
	assert.Equal(t, TypeLine, e.Type)
	assert.Equal(t, "A1", e.Handle)
	assert.Equal(t, "Walls", e.Layer)
	require.Len(t, e.Vertices, 2)
	assert.Equal(t, 5.0, e.Vertices[1].X)
	assert.Equal(t, 0.0, e.Vertices[1].Y)
	assert.False(t, e.Closed)
}

func TestParse_LWPolylineClosed(t *testing.T) {
	doc, err := Parse(docText(
		"0", "LWPOLYLINE",
		"8", "Walls",
		"90", "3",
		"70", "1",
		"10", "0", "20", "0",
		"10", "4", "20", "0",
		"10", "4", "20", "3",
	))
	require.NoError(t, err)
	require.Len(t, doc.Entities, 1)

	e := doc.Entities[0]
	assert.Equal(t, TypeLWPolyline, e.Type)
	assert.True(t, e.Closed)
	require.Len(t, e.Vertices, 3)
	assert.Equal(t, 4.0, e.Vertices[2].X)
	assert.Equal(t, 3.0, e.Vertices[2].Y)
}

func TestParse_LegacyPolylineFoldsVertices(t *testing.T) {
	doc, err := Parse(docText(
		"0", "POLYLINE",
		"8", "Outline",
		"70", "1",
		"0", "VERTEX",
		"8", "Outline",
		"70", "32",
		"10", "0", "20", "0",
		"0", "VERTEX",
		"10", "10", "20", "0",
		"0", "VERTEX",
		"10", "10", "20", "8",
		"0", "SEQEND",
	))
	require.NoError(t, err)
	require.Len(t, doc.Entities, 1)

	e := doc.Entities[0]
	assert.Equal(t, TypePolyline, e.Type)
	assert.Equal(t, "Outline", e.Layer)
	// Vertex flags (group 70 on VERTEX) must not clobber the closed flag.
	assert.True(t, e.Closed)
	require.Len(t, e.Vertices, 3)
	assert.Equal(t, 8.0, e.Vertices[2].Y)
}

func TestParse_UnrecognizedEntitiesStayInTree(t *testing.T) {
	doc, err := Parse(docText(
		"0", "CIRCLE",
		"10", "1", "20", "1",
		"0", "TEXT",
		"1", "Kitchen",
		"0", "LINE",
		"10", "0", "20", "0",
		"11", "2", "21", "0",
	))
	require.NoError(t, err)
	require.Len(t, doc.Entities, 3)
	assert.Equal(t, "CIRCLE", doc.Entities[0].Type)
	assert.Equal(t, "TEXT", doc.Entities[1].Type)
	assert.Equal(t, TypeLine, doc.Entities[2].Type)
}

func TestParse_SkipsForeignSections(t *testing.T) {
	lines := []string{
		"0", "SECTION", "2", "HEADER",
		"9", "$ACADVER", "1", "AC1015",
		"0", "ENDSEC",
		"0", "SECTION", "2", "ENTITIES",
		"0", "LINE",
		"10", "0", "20", "0",
		"11", "1", "21", "1",
		"0", "ENDSEC",
		"0", "EOF",
	}
	doc, err := Parse(strings.Join(lines, "\n"))
	require.NoError(t, err)
	assert.Len(t, doc.Entities, 1)
}

func TestParse_CRLFInput(t *testing.T) {
	text := strings.ReplaceAll(docText("0", "LINE", "10", "0", "20", "0", "11", "3", "21", "4"), "\n", "\r\n")
	doc, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, doc.Entities, 1)
	assert.Len(t, doc.Entities[0].Vertices, 2)
}

func TestParse_InvalidCoordinate(t *testing.T) {
	_, err := Parse(docText("0", "LINE", "10", "abc", "20", "0"))
	assert.ErrorIs(t, err, ErrMalformedInput)
}
