package perimeter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftline/outline/pkg/core"
)

func TestRecalculateChain_EmptyInput(t *testing.T) {
	res := RecalculateChain(nil, 0, 10, 1)
	assert.Empty(t, res.Segments)
	assert.Empty(t, res.Points)
}

func TestRecalculateChain_ModifyFirstSegment(t *testing.T) {
	// Right 10, up 5, right 3 at scale 1.
	chain := []ChainSegment{
		{Start: core.Position2D{X: 0, Y: 0}, End: core.Position2D{X: 10, Y: 0}, Length: 10},
		{Start: core.Position2D{X: 10, Y: 0}, End: core.Position2D{X: 10, Y: 5}, Length: 5},
		{Start: core.Position2D{X: 10, Y: 5}, End: core.Position2D{X: 13, Y: 5}, Length: 3},
	}

	res := RecalculateChain(chain, 0, 20, 1)
	require.Len(t, res.Segments, 3)

	// The lengthened first wall shifts every downstream endpoint.
	assert.Equal(t, core.Position2D{X: 20, Y: 0}, res.Segments[0].End)
	assert.Equal(t, core.Position2D{X: 20, Y: 5}, res.Segments[1].End)
	assert.Equal(t, core.Position2D{X: 23, Y: 5}, res.Segments[2].End)

	// Unmodified walls keep their lengths.
	assert.InDelta(t, 5, res.Segments[1].Length, 1e-9)
	assert.InDelta(t, 3, res.Segments[2].Length, 1e-9)

	require.Len(t, res.Points, 4)
	assert.Equal(t, core.Position2D{X: 0, Y: 0}, res.Points[0])
	assert.Equal(t, core.Position2D{X: 23, Y: 5}, res.Points[3])
}

func TestRecalculateChain_PreservesNegativeDirection(t *testing.T) {
	// Right 10, then back left 4: the leftward wall must stay leftward
	// even after the chain shifts.
	chain := []ChainSegment{
		{Start: core.Position2D{X: 0, Y: 0}, End: core.Position2D{X: 10, Y: 0}, Length: 10},
		{Start: core.Position2D{X: 10, Y: 0}, End: core.Position2D{X: 6, Y: 0}, Length: 4},
	}

	res := RecalculateChain(chain, 0, 2, 1)

	assert.Equal(t, core.Position2D{X: 2, Y: 0}, res.Segments[0].End)
	// Start shifted to x=2; direction sign still comes from the
	// original endpoints (6 < 10), so the wall runs left to x=-2.
	assert.Equal(t, core.Position2D{X: -2, Y: 0}, res.Segments[1].End)
}

func TestRecalculateChain_DownwardWall(t *testing.T) {
	chain := []ChainSegment{
		{Start: core.Position2D{X: 0, Y: 10}, End: core.Position2D{X: 0, Y: 2}, Length: 8},
		{Start: core.Position2D{X: 0, Y: 2}, End: core.Position2D{X: 5, Y: 2}, Length: 5},
	}

	res := RecalculateChain(chain, 0, 4, 1)

	assert.Equal(t, core.Position2D{X: 0, Y: 6}, res.Segments[0].End)
	assert.Equal(t, core.Position2D{X: 5, Y: 6}, res.Segments[1].End)
}

func TestRecalculateChain_Scale(t *testing.T) {
	// 2 real-world units per internal unit: a 20-unit wall spans 10
	// internal units.
	chain := []ChainSegment{
		{Start: core.Position2D{X: 0, Y: 0}, End: core.Position2D{X: 5, Y: 0}, Length: 10},
	}

	res := RecalculateChain(chain, 0, 20, 2)
	assert.Equal(t, core.Position2D{X: 10, Y: 0}, res.Segments[0].End)
	assert.InDelta(t, 20, res.Segments[0].Length, 1e-9)
}

func TestRecalculateChain_ModifiedIndexOutOfRangeKeepsLengths(t *testing.T) {
	chain := []ChainSegment{
		{Start: core.Position2D{X: 0, Y: 0}, End: core.Position2D{X: 10, Y: 0}, Length: 10},
	}

	res := RecalculateChain(chain, 5, 99, 1)
	assert.Equal(t, core.Position2D{X: 10, Y: 0}, res.Segments[0].End)
}
