// Package running implements the running-stitch generator (spec §4.2): a
// single row of stitches tracing a polyline in mm.
package running

import (
	"math"

	"github.com/gmsr99/bordadosdosrlucasV2/config"
	"github.com/gmsr99/bordadosdosrlucasV2/geometry"
	"github.com/gmsr99/bordadosdosrlucasV2/stitch"
)

// dedupeEpsilonMM is the distance below which adjacent path points are
// treated as duplicates.
const dedupeEpsilonMM = 0.01

// Generate produces a running-stitch sequence along path. All records
// are face stitches (is_structure = false). Returns an empty slice if
// path has fewer than 2 distinct points after de-duplication (spec §7
// InvalidInput, recovered locally).
func Generate(path []geometry.Point, cfg config.ResolvedConfig, colorIndex int, colorHex string) []stitch.Stitch {
	cleaned := dedupe(path)
	if len(cleaned) < 2 {
		return nil
	}

	maxLen := cfg.MaxStitchLengthMM
	if maxLen <= 0 {
		maxLen = config.DefaultRunningMaxStitchLengthMM
	}

	out := make([]stitch.Stitch, 0, len(cleaned)*2)
	out = append(out, stitch.New(cleaned[0], colorIndex, colorHex))

	for i := 1; i < len(cleaned); i++ {
		prev := cleaned[i-1]
		cur := cleaned[i]
		d := prev.Dist(cur)

		if d <= maxLen {
			out = append(out, stitch.New(cur, colorIndex, colorHex))
			continue
		}

		n := int(math.Ceil(d / maxLen))
		for k := 1; k <= n; k++ {
			t := float64(k) / float64(n)
			p := prev.Add(cur.Sub(prev).Scale(t))
			out = append(out, stitch.New(p, colorIndex, colorHex))
		}
	}

	return out
}

func dedupe(path []geometry.Point) []geometry.Point {
	if len(path) == 0 {
		return nil
	}
	out := make([]geometry.Point, 0, len(path))
	out = append(out, path[0])
	for _, p := range path[1:] {
		if out[len(out)-1].Dist(p) >= dedupeEpsilonMM {
			out = append(out, p)
		}
	}
	return out
}
