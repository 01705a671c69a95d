package underlay

import (
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

func TestForSatinDisabled(t *testing.T) {
	cfg := resolve(t, stitch.ProcessingConfig{StitchType: stitch.TypeSatin, DensityMM: 0.4, SatinColumnWidthMM: 3.0, EnableUnderlay: false})
	spine := []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	if out := ForSatin(spine, cfg, 0, "#000000"); out != nil {
		t.Errorf("underlay disabled should produce nil, got %v", out)
	}
}

func TestForSatinNarrowColumnUsesCenterLine(t *testing.T) {
	cfg := resolve(t, stitch.ProcessingConfig{StitchType: stitch.TypeSatin, DensityMM: 0.4, SatinColumnWidthMM: 1.0, EnableUnderlay: true})
	spine := []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	out := ForSatin(spine, cfg, 0, "#000000")
	if len(out) == 0 {
		t.Fatalf("expected non-empty underlay")
	}
	for _, s := range out {
		if !s.IsStructure {
			t.Errorf("underlay stitches must be tagged IsStructure")
		}
		if s.Y != 0 {
			t.Errorf("narrow-column underlay should be a center-line run, got y=%v", s.Y)
		}
	}
}

func TestForSatinWideColumnUsesZigzag(t *testing.T) {
	cfg := resolve(t, stitch.ProcessingConfig{StitchType: stitch.TypeSatin, DensityMM: 0.4, SatinColumnWidthMM: 4.0, EnableUnderlay: true})
	spine := []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	out := ForSatin(spine, cfg, 0, "#000000")
	if len(out) == 0 {
		t.Fatalf("expected non-empty underlay")
	}
	allZero := true
	for _, s := range out {
		if !s.IsStructure {
			t.Errorf("underlay stitches must be tagged IsStructure")
		}
		if s.Y != 0 {
			allZero = false
		}
	}
	if allZero {
		t.Errorf("wide-column underlay should zig-zag off the center line")
	}
}

func TestForRunningAlwaysNil(t *testing.T) {
	cfg := resolve(t, stitch.ProcessingConfig{StitchType: stitch.TypeRunning, DensityMM: 1, EnableUnderlay: true})
	if out := ForRunning(cfg); out != nil {
		t.Errorf("ForRunning must always return nil, got %v", out)
	}
}

func TestForTatamiInsetsPolygon(t *testing.T) {
	cfg := resolve(t, stitch.ProcessingConfig{StitchType: stitch.TypeTatami, DensityMM: 0.4, MaxStitchLengthMM: 7.0, EnableUnderlay: true})
	square := geometry.Polygon{{X: -5, Y: -5}, {X: 5, Y: -5}, {X: 5, Y: 5}, {X: -5, Y: 5}, {X: -5, Y: -5}}
	out := ForTatami(square, cfg, 0, "#000000")
	if len(out) == 0 {
		t.Fatalf("expected non-empty underlay")
	}
	for _, s := range out {
		if s.X < -5 || s.X > 5 || s.Y < -5 || s.Y > 5 {
			t.Errorf("inset underlay stitch (%v,%v) should stay within the original polygon bounds", s.X, s.Y)
		}
	}
}
