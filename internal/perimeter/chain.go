package perimeter

import (
	"github.com/draftline/outline/internal/geo"
	"github.com/draftline/outline/pkg/core"
)

// ChainSegment is one link of an ordered wall chain as edited by the
// user: original endpoints in internal units plus the wall length in
// real-world units.
type ChainSegment struct {
	Start  core.Position2D
	End    core.Position2D
	Length float64
}

// ChainResult holds the recalculated chain and its rebuilt point list.
type ChainResult struct {
	Segments []ChainSegment
	Points   []core.Position2D
}

// RecalculateChain propagates a single segment's length change through
// the rest of the chain so every downstream endpoint stays connected.
//
// Each segment keeps its original direction: the axis and the sign of
// the directional delta are derived from the segment's original
// endpoints, not from the already-shifted chain. That derivation is
// contractual; recomputing direction from the live chain would flip
// walls whose start drifted past their original end.
//
// unitsPerInternal converts the real-world lengths into internal
// drawing units. The transform is standalone: it neither reads nor
// mutates a perimeter model, so callers can apply the result however
// they want. Empty input yields an empty result.
func RecalculateChain(segments []ChainSegment, modifiedIndex int, newLength float64, unitsPerInternal float64) ChainResult {
	if len(segments) == 0 {
		return ChainResult{}
	}

	out := make([]ChainSegment, len(segments))
	var prevEnd core.Position2D
	for i, seg := range segments {
		start := seg.Start
		if i > 0 {
			start = prevEnd
		}

		length := seg.Length
		if i == modifiedIndex {
			length = newLength
		}

		axis := geo.Classify(seg.Start, seg.End)
		sign := 1.0
		if axis == geo.AxisHorizontal {
			if seg.End.X < seg.Start.X {
				sign = -1
			}
		} else {
			if seg.End.Y < seg.Start.Y {
				sign = -1
			}
		}

		end := geo.Endpoint(start, axis, sign*geo.ToInternal(length, unitsPerInternal))
		out[i] = ChainSegment{Start: start, End: end, Length: length}
		prevEnd = end
	}

	points := make([]core.Position2D, 0, len(out)+1)
	points = append(points, out[0].Start)
	for _, seg := range out {
		points = append(points, seg.End)
	}

	return ChainResult{Segments: out, Points: points}
}
