// Package satin implements the twin-rail mitered satin-stitch generator
// (spec §4.3): a back-and-forth fill between two rails following a
// spine polyline.
package satin

import (
	"math"

	"github.com/gmsr99/bordadosdosrlucasV2/config"
	"github.com/gmsr99/bordadosdosrlucasV2/geometry"
	"github.com/gmsr99/bordadosdosrlucasV2/stitch"
)

// shortStitchThresholdMM and shortStitchRatio govern the short-stitch
// shortening pass (step 5).
const (
	shortStitchThresholdMM = 0.4
	shortStitchRatio       = 0.6
	shortStitchPull        = 0.3
)

// Generate produces the twin-rail stitch sequence for spine. Returns nil
// (EmptyPath, recovered locally) if spine has fewer than 2 points.
func Generate(spine []geometry.Point, cfg config.ResolvedConfig, colorIndex int, colorHex string) []stitch.Stitch {
	if len(spine) < 2 {
		return nil
	}

	resampled := geometry.Resample(spine, cfg.DensityMM)
	if len(resampled) < 2 {
		return nil
	}

	h := cfg.SatinColumnWidthMM/2 + cfg.PullCompensationMM/2

	left := make([]geometry.Point, len(resampled))
	right := make([]geometry.Point, len(resampled))

	for i, p := range resampled {
		prev := mirroredNeighbor(resampled, i, -1)
		next := mirroredNeighbor(resampled, i, +1)

		t1 := p.Sub(prev).Normalize()
		t2 := next.Sub(p).Normalize()
		n1 := t1.LeftNormal()

		sum := t1.Add(t2)
		var miterVec geometry.Point
		var miterLen float64

		if sum.Length() < 0.001 {
			miterVec = n1
			miterLen = h
		} else {
			bisector := sum.Normalize().LeftNormal()
			denom := math.Max(math.Abs(bisector.Dot(n1)), 0.1)
			miterLen = h / denom
			// dist(left,right) = 2*miterLen; clamp to half the 3h miter
			// limit on total rail separation (spec §8 invariant 5).
			if miterLen > 1.5*h {
				miterLen = 1.5 * h
			}
			miterVec = bisector
		}

		left[i] = p.Add(miterVec.Scale(miterLen))
		right[i] = p.Sub(miterVec.Scale(miterLen))
	}

	shortenSharpCorners(left, right)

	return emitCrossings(resampled, left, right, cfg, colorIndex, colorHex)
}

// mirroredNeighbor returns resampled[i+dir], or a virtual end-neighbour
// obtained by mirroring the adjacent point through resampled[i] when i+dir
// falls outside the slice.
func mirroredNeighbor(points []geometry.Point, i, dir int) geometry.Point {
	j := i + dir
	if j >= 0 && j < len(points) {
		return points[j]
	}
	// mirror: p[i] + (p[i] - p[i-dir])
	return points[i].Add(points[i].Sub(points[i-dir]))
}

// shortenSharpCorners applies step 5: every odd-indexed penetration
// checks the incoming rail-edge length on each side against the other
// and pulls the short side toward the long side to avoid thread pile-up
// on the inner curve of a sharp bend.
func shortenSharpCorners(left, right []geometry.Point) {
	for i := 1; i < len(left); i += 2 {
		dLeft := left[i].Dist(left[i-1])
		dRight := right[i].Dist(right[i-1])

		if dLeft < shortStitchRatio*dRight && dLeft < shortStitchThresholdMM {
			left[i] = left[i].Add(right[i].Sub(left[i]).Scale(shortStitchPull))
		}
		if dRight < shortStitchRatio*dLeft && dRight < shortStitchThresholdMM {
			right[i] = right[i].Add(left[i].Sub(right[i]).Scale(shortStitchPull))
		}
	}
}

// emitCrossings implements step 6: for each penetration, emit left then
// right (the generator never flips which rail comes first — see
// spec §9 "satin rail alternation" open question), splitting oversize
// crossings and applying the anti-railroading shift to intermediate
// points.
func emitCrossings(spine, left, right []geometry.Point, cfg config.ResolvedConfig, colorIndex int, colorHex string) []stitch.Stitch {
	maxLen := cfg.MaxStitchLengthMM
	if maxLen <= 0 {
		maxLen = config.DefaultSatinMaxStitchLengthMM
	}

	shiftFractions := [3]float64{0, 0.5, -0.5}

	out := make([]stitch.Stitch, 0, len(left)*2)

	for i := range left {
		l, r := left[i], right[i]
		L := l.Dist(r)

		if L <= maxLen {
			out = append(out, stitch.New(l, colorIndex, colorHex))
			out = append(out, stitch.New(r, colorIndex, colorHex))
			continue
		}

		k := int(math.Ceil(L / maxLen))
		shiftMM := shiftFractions[i%3] * math.Min(maxLen-L/float64(k)-0.1, 2.0)

		out = append(out, stitch.New(l, colorIndex, colorHex))
		for m := 1; m < k; m++ {
			t := float64(m)/float64(k) + shiftMM/L
			p := l.Add(r.Sub(l).Scale(t))
			out = append(out, stitch.New(p, colorIndex, colorHex))
		}
		out = append(out, stitch.New(r, colorIndex, colorHex))
	}

	return out
}
