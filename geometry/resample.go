package geometry

import "gonum.org/v1/gonum/floats"

// Resample walks the polyline accumulating arc length and emits a point
// every spacing units along the path. The first original vertex is
// preserved; the last is appended even if it doesn't land on a spacing
// boundary.
func Resample(points []Point, spacing float64) []Point {
	if len(points) < 2 || spacing <= 0 {
		return points
	}

	segLens := make([]float64, len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		segLens[i] = points[i].Dist(points[i+1])
	}

	cum := make([]float64, len(segLens))
	floats.CumSum(cum, segLens)
	total := 0.0
	if len(cum) > 0 {
		total = cum[len(cum)-1]
	}

	out := []Point{points[0]}
	if total < 1e-12 {
		return out
	}

	nextTarget := spacing
	for nextTarget < total {
		out = append(out, pointAtArcLength(points, cum, nextTarget))
		nextTarget += spacing
	}

	last := points[len(points)-1]
	if out[len(out)-1].DistSq(last) > 1e-12 {
		out = append(out, last)
	}
	return out
}

// pointAtArcLength finds the point at arc length target along points,
// given cum (cumulative segment lengths, cum[i] = distance to points[i+1]).
func pointAtArcLength(points []Point, cum []float64, target float64) Point {
	segIdx := 0
	prevCum := 0.0
	for i, c := range cum {
		if target <= c {
			segIdx = i
			break
		}
		prevCum = c
		segIdx = i
	}
	segStart := points[segIdx]
	segEnd := points[segIdx+1]
	segLen := cum[segIdx] - prevCum
	if segLen < 1e-12 {
		return segStart
	}
	t := (target - prevCum) / segLen
	return segStart.Add(segEnd.Sub(segStart).Scale(t))
}
