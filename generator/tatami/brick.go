package tatami

import "math"

// stitchLenMM is the horizontal step used inside an over-long bricked
// segment.
const stitchLenMM = 4.0

// rowOffset computes the deterministic per-row brick shift. It is a pure
// function of y with no other contract than "same input, same output,
// distributed well enough to break visual row-aligned ladders" (spec §9
// "Deterministic noise"): fract(sin(y*123.45)*10000) serves that role
// without being a cryptographic RNG.
func rowOffset(y float64) float64 {
	bucket := mod3(int64(math.Round(y * 10)))
	noise := fract(math.Sin(y*123.45)*10000) * 0.4
	return (float64(bucket)/3.0 + noise) * stitchLenMM
}

func fract(x float64) float64 {
	return x - math.Floor(x)
}

func mod3(n int64) int64 {
	m := n % 3
	if m < 0 {
		m += 3
	}
	return m
}

// segmentPenetrations returns the x-coordinates of penetrations across a
// single inside-segment [xStart, xEnd] at row y, either the plain two
// endpoints or a bricked run of regular stitches, per spec §4.4.
func segmentPenetrations(xStart, xEnd, y, maxStitchLenMM float64) []float64 {
	if xEnd-xStart <= maxStitchLenMM {
		return []float64{xStart, xEnd}
	}

	xs := []float64{xStart}
	offset := rowOffset(y)
	x := xStart + offset
	for x < xEnd {
		xs = append(xs, x)
		x += stitchLenMM
	}
	xs = append(xs, xEnd)
	return xs
}
