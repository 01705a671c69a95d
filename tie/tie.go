// Package tie implements the tie-in/tie-off reinforcement and
// small-stitch cleanup passes of spec §4.6.
package tie

import (
	"github.com/gmsr99/bordadosdosrlucasV2/geometry"
	"github.com/gmsr99/bordadosdosrlucasV2/stitch"
)

// backtrackMM is the lateral distance of the tie-in/tie-off backtrack.
const backtrackMM = 0.5

// In prepends a 0.5mm lateral backtrack tie-in. Skipped if the sequence
// is empty or starts with a jump/end.
func In(stitches []stitch.Stitch) []stitch.Stitch {
	if len(stitches) == 0 {
		return stitches
	}
	first := stitches[0]
	if first.Kind == stitch.KindJump || first.Kind == stitch.KindEnd {
		return stitches
	}

	backtrack := stitch.NewStructure(geometry.Point{X: first.X + backtrackMM, Y: first.Y}, stitch.KindStitch, first.ColorIndex, first.ColorHex)
	anchor := stitch.NewStructure(geometry.Point{X: first.X, Y: first.Y}, stitch.KindStitch, first.ColorIndex, first.ColorHex)

	out := make([]stitch.Stitch, 0, len(stitches)+2)
	out = append(out, backtrack, anchor)
	out = append(out, stitches...)
	return out
}

// Off appends a 0.5mm lateral backtrack tie-off followed by a trim.
// Skipped if the sequence is empty or ends with a jump/end.
func Off(stitches []stitch.Stitch) []stitch.Stitch {
	if len(stitches) == 0 {
		return stitches
	}
	last := stitches[len(stitches)-1]
	if last.Kind == stitch.KindJump || last.Kind == stitch.KindEnd {
		return stitches
	}

	backtrack := stitch.NewStructure(geometry.Point{X: last.X - backtrackMM, Y: last.Y}, stitch.KindStitch, last.ColorIndex, last.ColorHex)
	anchor := stitch.NewStructure(geometry.Point{X: last.X, Y: last.Y}, stitch.KindStitch, last.ColorIndex, last.ColorHex)
	trim := stitch.NewStructure(geometry.Point{X: last.X, Y: last.Y}, stitch.KindTrim, last.ColorIndex, last.ColorHex)

	out := make([]stitch.Stitch, len(stitches), len(stitches)+3)
	copy(out, stitches)
	out = append(out, backtrack, anchor, trim)
	return out
}

// RemoveShortStitches walks the final sequence; a stitch record whose
// distance to the previous kept record is > 0.01mm and < minLenMM is
// dropped. Non-stitch records and the first record are always kept.
func RemoveShortStitches(stitches []stitch.Stitch, minLenMM float64) []stitch.Stitch {
	if len(stitches) == 0 {
		return stitches
	}

	out := make([]stitch.Stitch, 0, len(stitches))
	out = append(out, stitches[0])

	for i := 1; i < len(stitches); i++ {
		s := stitches[i]
		if s.Kind != stitch.KindStitch {
			out = append(out, s)
			continue
		}

		prev := out[len(out)-1]
		d := s.Point().Dist(prev.Point())
		if d > 0.01 && d < minLenMM {
			continue
		}
		out = append(out, s)
	}

	return out
}
