// Package digitizer implements the layer composer (spec §4.7): it
// iterates colored layers in order, wraps each path's generator output
// with underlay and tie reinforcement, joins paths with jumps or
// trim+jump, joins layers with color changes, and appends the final
// end-of-design marker.
package digitizer

import (
	"github.com/gmsr99/bordadosdosrlucasV2/config"
	"github.com/gmsr99/bordadosdosrlucasV2/errs"
	"github.com/gmsr99/bordadosdosrlucasV2/generator/running"
	"github.com/gmsr99/bordadosdosrlucasV2/generator/satin"
	"github.com/gmsr99/bordadosdosrlucasV2/generator/tatami"
	"github.com/gmsr99/bordadosdosrlucasV2/geometry"
	"github.com/gmsr99/bordadosdosrlucasV2/observability"
	"github.com/gmsr99/bordadosdosrlucasV2/stitch"
	"github.com/gmsr99/bordadosdosrlucasV2/tie"
	"github.com/gmsr99/bordadosdosrlucasV2/underlay"
)

// Pipeline owns the layers+config -> Stitch[] orchestration. It is
// stateless across calls to Run; the injected Logger is the only field,
// mirroring ir.Pipeline's injected observability.Logger.
type Pipeline struct {
	Logger observability.Logger
}

// New constructs a Pipeline with a no-op logger.
func New() *Pipeline {
	return &Pipeline{Logger: observability.NopLogger{}}
}

// WithLogger returns a copy of p with logger installed.
func (p Pipeline) WithLogger(logger observability.Logger) *Pipeline {
	p.Logger = logger
	return &p
}

// path is one unit of work the composer ties, trims, and joins as a
// whole: a single polygon for running/satin, or the layer's entire
// polygon set for tatami (spec §4.4 treats multiple polygons as one
// even-odd region, which only makes sense generated in a single pass —
// see DESIGN.md for this resolved ambiguity between §4.4 and §4.7).
type path struct {
	polygons []geometry.Polygon
}

// pathsForLayer orders the layer's polygons by nearest-neighbour travel
// (spec §4.1's NearestJoin, the geometry-kernel operation the generators
// depend on for path sequencing) before splitting them into the units
// the composer ties, trims, and joins.
func pathsForLayer(layer stitch.VectorLayer, stitchType stitch.StitchType) []path {
	ordered := geometry.NearestJoin(layer.Polygons)

	if stitchType == stitch.TypeTatami {
		if len(ordered) == 0 {
			return nil
		}
		return []path{{polygons: ordered}}
	}

	paths := make([]path, 0, len(ordered))
	for _, poly := range ordered {
		paths = append(paths, path{polygons: []geometry.Polygon{poly}})
	}
	return paths
}

// Run executes the full layer composer and returns the final, cleaned
// Stitch sequence ending in exactly one End record.
func (p *Pipeline) Run(layers []stitch.VectorLayer, cfg config.ResolvedConfig) ([]stitch.Stitch, error) {
	logger := p.logger()

	var design []stitch.Stitch

	for layerIdx, layer := range layers {
		layerStitches := p.buildLayer(layer, layerIdx, cfg, logger)
		if len(layerStitches) == 0 {
			continue
		}

		if len(design) > 0 {
			design = append(design, colorChangeAt(lastOf(design)))
			design = append(design, jumpTo(layerStitches[0]))
		}
		design = append(design, layerStitches...)
	}

	design = tie.RemoveShortStitches(design, cfg.MinStitchLengthMM)
	design = append(design, endAt(lastPoint(design)))

	if !hasFaceStitch(design) {
		return design, errs.New(errs.EmptyDesign, "digitizer.Run", nil)
	}
	return design, nil
}

func hasFaceStitch(design []stitch.Stitch) bool {
	for _, s := range design {
		if s.Kind == stitch.KindStitch && !s.IsStructure {
			return true
		}
	}
	return false
}

func (p *Pipeline) logger() observability.Logger {
	if p.Logger == nil {
		return observability.NopLogger{}
	}
	return p.Logger
}

func (p *Pipeline) buildLayer(layer stitch.VectorLayer, layerIdx int, cfg config.ResolvedConfig, logger observability.Logger) []stitch.Stitch {
	var layerStitches []stitch.Stitch

	for _, pth := range pathsForLayer(layer, cfg.StitchType) {
		pathStitches := p.buildPath(pth, layer, layerIdx, cfg, logger)
		if len(pathStitches) == 0 {
			continue
		}

		if len(layerStitches) > 0 {
			d := lastPoint(layerStitches).Dist(pathStitches[0].Point())
			if d > cfg.TrimJumpDistanceMM && lastOf(layerStitches).Kind != stitch.KindTrim {
				layerStitches = append(layerStitches, trimAt(lastOf(layerStitches)))
			}
			layerStitches = append(layerStitches, jumpTo(pathStitches[0]))
		}

		layerStitches = append(layerStitches, pathStitches...)
	}

	logger.Debug("layer built",
		observability.Int(observability.FieldLayerIndex, layerIdx),
		observability.String(observability.FieldColorHex, layer.ColorHex),
		observability.Int(observability.FieldStitchCount, len(layerStitches)),
	)

	return layerStitches
}

func (p *Pipeline) buildPath(pth path, layer stitch.VectorLayer, colorIndex int, cfg config.ResolvedConfig, logger observability.Logger) []stitch.Stitch {
	colorHex := layer.ColorHex

	underlayStitches := generateUnderlay(pth, cfg, colorIndex, colorHex)
	mainStitches := generateMain(pth, cfg, colorIndex, colorHex)

	if len(underlayStitches) > 0 {
		underlayStitches = tie.In(underlayStitches)
	} else {
		mainStitches = tie.In(mainStitches)
	}
	mainStitches = tie.Off(mainStitches)

	out := make([]stitch.Stitch, 0, len(underlayStitches)+len(mainStitches))
	out = append(out, underlayStitches...)
	out = append(out, mainStitches...)

	if len(out) == 0 {
		logger.Warn("degenerate path produced no stitches",
			observability.String(observability.FieldStitchType, cfg.StitchType.String()),
		)
	}

	return out
}

func generateUnderlay(pth path, cfg config.ResolvedConfig, colorIndex int, colorHex string) []stitch.Stitch {
	switch cfg.StitchType {
	case stitch.TypeRunning:
		return underlay.ForRunning(cfg)
	case stitch.TypeSatin:
		if len(pth.polygons) == 0 {
			return nil
		}
		return underlay.ForSatin(pth.polygons[0].Open(), cfg, colorIndex, colorHex)
	case stitch.TypeTatami:
		return underlay.ForTatamiRegion(pth.polygons, cfg, colorIndex, colorHex)
	default:
		return nil
	}
}

func generateMain(pth path, cfg config.ResolvedConfig, colorIndex int, colorHex string) []stitch.Stitch {
	switch cfg.StitchType {
	case stitch.TypeRunning:
		if len(pth.polygons) == 0 {
			return nil
		}
		return running.Generate(pth.polygons[0], cfg, colorIndex, colorHex)
	case stitch.TypeSatin:
		if len(pth.polygons) == 0 {
			return nil
		}
		return satin.Generate(pth.polygons[0].Open(), cfg, colorIndex, colorHex)
	case stitch.TypeTatami:
		return tatami.Generate(pth.polygons, cfg, colorIndex, colorHex)
	default:
		return nil
	}
}

func lastOf(s []stitch.Stitch) stitch.Stitch { return s[len(s)-1] }

func lastPoint(s []stitch.Stitch) geometry.Point {
	if len(s) == 0 {
		return geometry.Point{}
	}
	return lastOf(s).Point()
}

func jumpTo(target stitch.Stitch) stitch.Stitch {
	return stitch.NewStructure(target.Point(), stitch.KindJump, target.ColorIndex, target.ColorHex)
}

func trimAt(current stitch.Stitch) stitch.Stitch {
	return stitch.NewStructure(current.Point(), stitch.KindTrim, current.ColorIndex, current.ColorHex)
}

func colorChangeAt(current stitch.Stitch) stitch.Stitch {
	return stitch.NewStructure(current.Point(), stitch.KindColorChange, current.ColorIndex, current.ColorHex)
}

func endAt(p geometry.Point) stitch.Stitch {
	return stitch.NewStructure(p, stitch.KindEnd, 0, "")
}
