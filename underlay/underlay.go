// Package underlay implements the structural underlay generator (spec
// §4.5). All stitches it produces are tagged IsStructure = true.
package underlay

import (
	"github.com/gmsr99/bordadosdosrlucasV2/config"
	"github.com/gmsr99/bordadosdosrlucasV2/generator/running"
	"github.com/gmsr99/bordadosdosrlucasV2/generator/satin"
	"github.com/gmsr99/bordadosdosrlucasV2/geometry"
	"github.com/gmsr99/bordadosdosrlucasV2/stitch"
)

// tatamiInsetMM is the inward offset applied before the edge-walk
// run-stitch underlay for a tatami fill.
const tatamiInsetMM = 0.6

// zigzagUnderlayDensityMM is the fixed density used for the satin
// zig-zag underlay pass, independent of the main pass's density.
const zigzagUnderlayDensityMM = 2.0

// narrowColumnThresholdMM is the satin column width below which the
// underlay degenerates to a plain center-line running stitch.
const narrowColumnThresholdMM = 2.0

// ForSatin computes underlay for a satin path (spine). Returns nil if
// underlay is disabled.
func ForSatin(spine []geometry.Point, cfg config.ResolvedConfig, colorIndex int, colorHex string) []stitch.Stitch {
	if !cfg.EnableUnderlay {
		return nil
	}

	var out []stitch.Stitch
	if cfg.SatinColumnWidthMM < narrowColumnThresholdMM {
		out = running.Generate(spine, cfg, colorIndex, colorHex)
	} else {
		h := cfg.SatinColumnWidthMM/2 + cfg.PullCompensationMM/2
		underlayCfg := cfg
		underlayCfg.SatinColumnWidthMM = 2 * (h - 0.4)
		underlayCfg.DensityMM = zigzagUnderlayDensityMM
		underlayCfg.PullCompensationMM = 0
		out = satin.Generate(spine, underlayCfg, colorIndex, colorHex)
	}

	return markStructure(out)
}

// ForRunning always returns nil: running stitch has no underlay (§4.5).
func ForRunning(config.ResolvedConfig) []stitch.Stitch { return nil }

// ForTatami computes the edge-walk run-stitch underlay along polygon,
// inset by tatamiInsetMM. Returns nil if underlay is disabled.
func ForTatami(polygon geometry.Polygon, cfg config.ResolvedConfig, colorIndex int, colorHex string) []stitch.Stitch {
	if !cfg.EnableUnderlay {
		return nil
	}

	inset := geometry.Offset(polygon, -tatamiInsetMM)
	out := running.Generate(inset, cfg, colorIndex, colorHex)
	return markStructure(out)
}

// ForTatamiRegion computes the edge-walk underlay for every contour of a
// multi-polygon tatami region (e.g. a fill with a hole), concatenating
// each contour's walk with a connecting jump.
func ForTatamiRegion(polygons []geometry.Polygon, cfg config.ResolvedConfig, colorIndex int, colorHex string) []stitch.Stitch {
	if !cfg.EnableUnderlay {
		return nil
	}

	var out []stitch.Stitch
	for _, poly := range polygons {
		walk := ForTatami(poly, cfg, colorIndex, colorHex)
		if len(walk) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, stitch.NewStructure(walk[0].Point(), stitch.KindJump, colorIndex, colorHex))
		}
		out = append(out, walk...)
	}
	return out
}

func markStructure(stitches []stitch.Stitch) []stitch.Stitch {
	for i := range stitches {
		stitches[i].IsStructure = true
	}
	return stitches
}
