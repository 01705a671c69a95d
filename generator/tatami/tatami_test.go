package tatami

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gmsr99/bordadosdosrlucasV2/config"
	"github.com/gmsr99/bordadosdosrlucasV2/geometry"
	"github.com/gmsr99/bordadosdosrlucasV2/stitch"
)

func resolve(t *testing.T, pc stitch.ProcessingConfig) config.ResolvedConfig {
	t.Helper()
	rc, err := config.Resolve(pc)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return rc
}

func square() geometry.Polygon {
	return geometry.Polygon{
		{X: -5, Y: -5}, {X: 5, Y: -5}, {X: 5, Y: 5}, {X: -5, Y: 5}, {X: -5, Y: -5},
	}
}

// S3 — tatami square: 10mm square, angle 0, density 0.4, max_stitch 7.0:
// 24 horizontal rows from y=-4.6 to y=+4.6, each bricked (segment start,
// 4mm steps from a per-row offset, segment end) since the 10mm row
// exceeds the 7mm cap.
func TestGenerateSquareRowCount(t *testing.T) {
	cfg := resolve(t, stitch.ProcessingConfig{
		StitchType:         stitch.TypeTatami,
		DensityMM:          0.4,
		TatamiAngleDeg:     0,
		MaxStitchLengthMM:  7.0,
		PullCompensationMM: 0,
	})

	out := Generate([]geometry.Polygon{square()}, cfg, 0, "#000000")
	if len(out) == 0 {
		t.Fatalf("expected non-empty fill")
	}

	rows := map[int]bool{}
	for _, s := range out {
		rows[int(math.Round(s.Y*10))] = true // round to the nearest 0.1mm row
	}
	if len(rows) != 24 {
		t.Errorf("got %d distinct rows, want 24", len(rows))
	}

	for _, s := range out {
		if s.X < -5.01 || s.X > 5.01 {
			t.Errorf("stitch x=%v outside polygon bounds [-5,5]", s.X)
		}
		if s.Y < -4.61 || s.Y > 4.61 {
			t.Errorf("stitch y=%v outside expected row range", s.Y)
		}
	}
}

// A square with a fully-contained inner square must be read as an
// even-odd region with a hole, not filled solid: no stitch should land
// inside the inner square.
func TestGenerateHollowsOutNestedContour(t *testing.T) {
	cfg := resolve(t, stitch.ProcessingConfig{
		StitchType:        stitch.TypeTatami,
		DensityMM:         0.4,
		TatamiAngleDeg:    0,
		MaxStitchLengthMM: 7.0,
	})

	outer := square()
	hole := geometry.Polygon{
		{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1},
	}

	out := Generate([]geometry.Polygon{outer, hole}, cfg, 0, "#000000")
	if len(out) == 0 {
		t.Fatalf("expected non-empty fill")
	}

	for _, s := range out {
		if s.X > -1 && s.X < 1 && s.Y > -1 && s.Y < 1 {
			t.Errorf("stitch (%v,%v) landed inside the hole, even-odd fill should skip it", s.X, s.Y)
		}
	}
}

// Invariant 6 (spec §8): every tatami penetration lies inside the
// pull-compensation-offset polygon, within a small epsilon, over
// randomized axis-aligned rectangles and densities. Angle is held at 0
// so the offset rectangle (itself axis-aligned after Offset) can be
// checked with a plain bounding-box test rather than a general
// point-in-polygon routine.
func TestGenerateStaysInsideOffsetPolygon(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	for trial := 0; trial < 30; trial++ {
		hw := 3 + r.Float64()*10
		hh := 3 + r.Float64()*10
		pull := r.Float64() * 0.8
		density := 0.3 + r.Float64()*0.5

		cfg := resolve(t, stitch.ProcessingConfig{
			StitchType:         stitch.TypeTatami,
			DensityMM:          density,
			TatamiAngleDeg:     0,
			MaxStitchLengthMM:  1000,
			PullCompensationMM: pull,
		})

		rect := geometry.Polygon{
			{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}, {X: -hw, Y: -hh},
		}
		out := Generate([]geometry.Polygon{rect}, cfg, 0, "#000000")
		if len(out) == 0 {
			continue
		}

		// Offset moves each 90-degree corner by 2*pull along its diagonal
		// (the miter clamp), so the offset rectangle's bounds are read off
		// the offset polygon rather than taken as hw+pull.
		const eps = 1e-6
		maxX, maxY := 0.0, 0.0
		for _, v := range geometry.Offset(rect, pull) {
			maxX = math.Max(maxX, math.Abs(v.X))
			maxY = math.Max(maxY, math.Abs(v.Y))
		}
		maxX, maxY = maxX+eps, maxY+eps
		for _, s := range out {
			if s.X < -maxX || s.X > maxX || s.Y < -maxY || s.Y > maxY {
				t.Errorf("trial %d: stitch (%v,%v) outside offset rectangle bounds ±(%v,%v)", trial, s.X, s.Y, maxX, maxY)
			}
		}
	}
}

func TestGenerateReturnsNilForTooFewVertices(t *testing.T) {
	cfg := resolve(t, stitch.ProcessingConfig{StitchType: stitch.TypeTatami, DensityMM: 0.4, MaxStitchLengthMM: 7.0})
	degenerate := geometry.Polygon{{X: 0, Y: 0}, {X: 1, Y: 1}}
	out := Generate([]geometry.Polygon{degenerate}, cfg, 0, "#000000")
	if out != nil {
		t.Errorf("expected nil for a polygon with fewer than 3 vertices, got %v", out)
	}
}

func TestSegmentPenetrationsBricksLongRuns(t *testing.T) {
	xs := segmentPenetrations(-5, 5, 0, 7.0)
	if len(xs) < 3 {
		t.Fatalf("a 10mm run over a 7mm cap should brick into at least 3 penetrations, got %v", xs)
	}
	if xs[0] != -5 || xs[len(xs)-1] != 5 {
		t.Errorf("bricked run must start/end exactly at segment bounds, got %v", xs)
	}
}

func TestSegmentPenetrationsPassesThroughShortRuns(t *testing.T) {
	xs := segmentPenetrations(0, 3, 0, 7.0)
	if len(xs) != 2 {
		t.Fatalf("a run shorter than the cap should be just its two endpoints, got %v", xs)
	}
}
