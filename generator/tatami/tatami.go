// Package tatami implements the parallel-row fill generator (spec §4.4):
// a boustrophedon scanline sweep over one or more closed polygons,
// treated as a single even-odd-fill region, with brick-offset rows.
package tatami

import (
	"math"

	"github.com/gmsr99/bordadosdosrlucasV2/config"
	"github.com/gmsr99/bordadosdosrlucasV2/geometry"
	"github.com/gmsr99/bordadosdosrlucasV2/stitch"
)

// rowJumpMM and rowStitchMM are the hard-coded row-to-row transition
// thresholds. Spec §9 explicitly keeps these independent of
// trim_jump_distance_mm; do not wire them to the global config.
const (
	rowJumpMM   = 2.0
	rowStitchMM = 0.1
)

// run is one inside-segment's penetrations, already oriented for the row
// sweep direction they were produced in.
type run struct {
	points []geometry.Point
}

// Generate produces the tatami fill sequence for polygons, treating the
// whole set as one even-odd-fill region (spec §4.4): the edge-table
// sweep below counts crossings across all contours together, so a
// fully-contained inner contour is read as a hole rather than filled
// solid. Returns nil (InvalidInput, recovered locally) if no polygon has
// at least 3 vertices once its closing vertex is stripped.
func Generate(polygons []geometry.Polygon, cfg config.ResolvedConfig, colorIndex int, colorHex string) []stitch.Stitch {
	if !hasFillableVertices(polygons) {
		return nil
	}

	offset := make([]geometry.Polygon, len(polygons))
	for i, p := range polygons {
		offset[i] = geometry.Offset(p, cfg.PullCompensationMM)
	}

	angleRad := cfg.TatamiAngleDeg * math.Pi / 180
	rotated := make([]geometry.Polygon, len(offset))
	for i, p := range offset {
		rotated[i] = geometry.RotatePolygon(p, -angleRad)
	}

	edges := buildEdgeTable(rotated)
	minY, maxY := polygonYRange(rotated)

	maxStitch := cfg.MaxStitchLengthMM
	if maxStitch <= 0 {
		maxStitch = config.DefaultTatamiMaxStitchLengthMM
	}

	runs := sweepRows(edges, minY, maxY, cfg.DensityMM, maxStitch)
	return assemble(runs, angleRad, colorIndex, colorHex)
}

func hasFillableVertices(polygons []geometry.Polygon) bool {
	for _, p := range polygons {
		if len(p.Open()) >= 3 {
			return true
		}
	}
	return false
}

// sweepRows walks y from minY+density to maxY in density steps, building
// one run per inside-segment per row, oriented for that row's
// boustrophedon direction.
func sweepRows(edges []edge, minY, maxY, density, maxStitch float64) []run {
	var runs []run

	for y := minY + density; y <= maxY; y += density {
		segs := insideSegments(rowIntersections(edges, y))
		if len(segs) == 0 {
			continue
		}

		rowIdx := math.Round(y / density)
		reversed := math.Mod(rowIdx, 2) == 0

		rowRuns := make([]run, len(segs))
		for i, s := range segs {
			xs := segmentPenetrations(s[0], s[1], y, maxStitch)
			pts := make([]geometry.Point, len(xs))
			for j, x := range xs {
				pts[j] = geometry.Point{X: x, Y: y}
			}
			if reversed {
				reversePoints(pts)
			}
			rowRuns[i] = run{points: pts}
		}

		if reversed {
			reverseRuns(rowRuns)
		}
		runs = append(runs, rowRuns...)
	}

	return runs
}

func reversePoints(pts []geometry.Point) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

func reverseRuns(runs []run) {
	for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
		runs[i], runs[j] = runs[j], runs[i]
	}
}

// assemble turns the ordered runs into the final stitch sequence: every
// point internal to a run is a plain face stitch; the boundary between
// runs (row-to-row or segment-to-segment) goes through the jump/stitch/
// drop connector rule; the very first penetration overall is always a
// jump.
func assemble(runs []run, angleRad float64, colorIndex int, colorHex string) []stitch.Stitch {
	var out []stitch.Stitch
	var prev geometry.Point
	first := true

	for _, r := range runs {
		for idx, p := range r.points {
			rp := p.Rotate(angleRad)

			if first {
				out = append(out, stitch.NewStructure(rp, stitch.KindJump, colorIndex, colorHex))
				prev = rp
				first = false
				continue
			}

			if idx == 0 {
				d := prev.Dist(rp)
				switch {
				case d > rowJumpMM:
					out = append(out, stitch.NewStructure(rp, stitch.KindJump, colorIndex, colorHex))
					prev = rp
				case d > rowStitchMM:
					out = append(out, stitch.New(rp, colorIndex, colorHex))
					prev = rp
				default:
					// drop the duplicate; head stays at prev
				}
				continue
			}

			out = append(out, stitch.New(rp, colorIndex, colorHex))
			prev = rp
		}
	}

	return out
}
