package config

import (
	"errors"
	"testing"

	"github.com/gmsr99/bordadosdosrlucasV2/errs"
	"github.com/gmsr99/bordadosdosrlucasV2/stitch"
)

func TestResolveFillsStitchTypeDefaults(t *testing.T) {
	cases := []struct {
		name string
		st   stitch.StitchType
		want float64
	}{
		{"running", stitch.TypeRunning, DefaultRunningMaxStitchLengthMM},
		{"satin", stitch.TypeSatin, DefaultSatinMaxStitchLengthMM},
		{"tatami", stitch.TypeTatami, DefaultTatamiMaxStitchLengthMM},
	}
	for _, c := range cases {
		pc := stitch.ProcessingConfig{StitchType: c.st, DensityMM: 0.4, SatinColumnWidthMM: 2.0}
		rc, err := Resolve(pc)
		if err != nil {
			t.Fatalf("%s: Resolve: %v", c.name, err)
		}
		if rc.MaxStitchLengthMM != c.want {
			t.Errorf("%s: MaxStitchLengthMM = %v, want %v", c.name, rc.MaxStitchLengthMM, c.want)
		}
	}
}

func TestResolveDoesNotOverrideExplicitMaxStitchLength(t *testing.T) {
	pc := stitch.ProcessingConfig{StitchType: stitch.TypeRunning, DensityMM: 1, MaxStitchLengthMM: 9.5}
	rc, err := Resolve(pc)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rc.MaxStitchLengthMM != 9.5 {
		t.Errorf("MaxStitchLengthMM = %v, want 9.5 (caller-supplied)", rc.MaxStitchLengthMM)
	}
}

func TestResolveFloorsNegativeMinStitchLength(t *testing.T) {
	pc := stitch.ProcessingConfig{StitchType: stitch.TypeRunning, DensityMM: 1, MinStitchLengthMM: -5}
	rc, err := Resolve(pc)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rc.MinStitchLengthMM != 0 {
		t.Errorf("MinStitchLengthMM = %v, want 0", rc.MinStitchLengthMM)
	}
}

func TestResolveDefaultsUnsetTatamiAngle(t *testing.T) {
	pc := stitch.ProcessingConfig{StitchType: stitch.TypeTatami, DensityMM: 0.4, TatamiAngleDeg: UnsetTatamiAngleDeg}
	rc, err := Resolve(pc)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rc.TatamiAngleDeg != DefaultTatamiAngleDeg {
		t.Errorf("TatamiAngleDeg = %v, want default %v", rc.TatamiAngleDeg, DefaultTatamiAngleDeg)
	}
}

func TestResolveKeepsExplicitZeroTatamiAngle(t *testing.T) {
	pc := stitch.ProcessingConfig{StitchType: stitch.TypeTatami, DensityMM: 0.4, TatamiAngleDeg: 0}
	rc, err := Resolve(pc)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rc.TatamiAngleDeg != 0 {
		t.Errorf("TatamiAngleDeg = %v, want 0 (explicit horizontal angle, not defaulted)", rc.TatamiAngleDeg)
	}
}

func TestResolveRejectsNonPositiveDensity(t *testing.T) {
	pc := stitch.ProcessingConfig{StitchType: stitch.TypeRunning, DensityMM: 0}
	_, err := Resolve(pc)
	assertConfigOutOfRange(t, err)
}

func TestResolveRejectsMissingSatinColumnWidth(t *testing.T) {
	pc := stitch.ProcessingConfig{StitchType: stitch.TypeSatin, DensityMM: 0.4, SatinColumnWidthMM: 0}
	_, err := Resolve(pc)
	assertConfigOutOfRange(t, err)
}

func TestResolveAllowsZeroSatinColumnWidthForNonSatin(t *testing.T) {
	pc := stitch.ProcessingConfig{StitchType: stitch.TypeRunning, DensityMM: 0.4, SatinColumnWidthMM: 0}
	if _, err := Resolve(pc); err != nil {
		t.Errorf("running stitch should not require satin_column_width_mm, got %v", err)
	}
}

func assertConfigOutOfRange(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a ConfigOutOfRange error, got nil")
	}
	var e *errs.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *errs.Error, got %T: %v", err, err)
	}
	if e.Kind != errs.ConfigOutOfRange {
		t.Errorf("got Kind %v, want ConfigOutOfRange", e.Kind)
	}
}
