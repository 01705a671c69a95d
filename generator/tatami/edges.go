package tatami

import (
	"math"
	"sort"

	"github.com/gmsr99/bordadosdosrlucasV2/geometry"
)

// edge is a polygon edge normalised so pLo.Y < pHi.Y, for the scanline
// edge table of spec §4.4.
type edge struct {
	pLo, pHi geometry.Point
}

const horizontalEpsilonMM = 0.001

// buildEdgeTable collects every edge with non-zero Δy across all
// polygons, skipping near-horizontal edges.
func buildEdgeTable(polygons []geometry.Polygon) []edge {
	var edges []edge
	for _, poly := range polygons {
		open := poly.Open()
		n := len(open)
		for i := 0; i < n; i++ {
			a := open[i]
			b := open[(i+1)%n]
			if math.Abs(a.Y-b.Y) < horizontalEpsilonMM {
				continue
			}
			if a.Y < b.Y {
				edges = append(edges, edge{pLo: a, pHi: b})
			} else {
				edges = append(edges, edge{pLo: b, pHi: a})
			}
		}
	}
	return edges
}

// rowIntersections returns the sorted x-coordinates where row y crosses
// the edge table, using the half-open [pLo.Y, pHi.Y) rule to avoid
// double-counting a vertex a row passes exactly through.
func rowIntersections(edges []edge, y float64) []float64 {
	var xs []float64
	for _, e := range edges {
		if y < e.pLo.Y || y >= e.pHi.Y {
			continue
		}
		t := (y - e.pLo.Y) / (e.pHi.Y - e.pLo.Y)
		xs = append(xs, e.pLo.X+t*(e.pHi.X-e.pLo.X))
	}
	sort.Float64s(xs)
	return xs
}

// insideSegments walks sorted intersections in pairs to produce
// inside-region [xStart, xEnd] segments, dropping any shorter than
// minSegmentMM.
const minSegmentMM = 0.5

func insideSegments(xs []float64) [][2]float64 {
	var segs [][2]float64
	for i := 0; i+1 < len(xs); i += 2 {
		start, end := xs[i], xs[i+1]
		if end-start < minSegmentMM {
			continue
		}
		segs = append(segs, [2]float64{start, end})
	}
	return segs
}

func polygonYRange(polygons []geometry.Polygon) (minY, maxY float64) {
	first := true
	for _, poly := range polygons {
		for _, p := range poly {
			if first {
				minY, maxY = p.Y, p.Y
				first = false
				continue
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}
	return
}
