// Package config resolves a stitch.ProcessingConfig into a
// ResolvedConfig, filling in documented defaults once up front and
// running the ConfigOutOfRange checks exactly once per pipeline run,
// the way writer.Config is defaulted and validated once per Write call
// rather than scattered through every helper.
package config

import (
	"fmt"

	"github.com/gmsr99/bordadosdosrlucasV2/errs"
	"github.com/gmsr99/bordadosdosrlucasV2/stitch"
)

// Defaults per spec §3/§4.
const (
	DefaultRunningMaxStitchLengthMM = 2.5
	DefaultSatinMaxStitchLengthMM   = 7.0
	DefaultTatamiMaxStitchLengthMM  = 7.0
	DefaultTatamiAngleDeg           = 45.0
	DefaultSimplifyEpsilonMM        = 0.05
	DefaultTatamiRowJumpMM          = 2.0
	DefaultTatamiRowStitchMM        = 0.1
)

// UnsetTatamiAngleDeg is the sentinel a caller passes for TatamiAngleDeg
// to mean "not provided", since 0° is itself a valid explicit angle.
const UnsetTatamiAngleDeg = -1.0

// ResolvedConfig is a ProcessingConfig with every default filled in. All
// downstream packages consume this, never the raw ProcessingConfig.
type ResolvedConfig struct {
	stitch.ProcessingConfig
}

// Resolve fills in defaults and validates the result. Returns a
// *errs.Error of Kind ConfigOutOfRange if validation fails.
func Resolve(c stitch.ProcessingConfig) (ResolvedConfig, error) {
	rc := ResolvedConfig{ProcessingConfig: c}

	if rc.MaxStitchLengthMM <= 0 {
		switch rc.StitchType {
		case stitch.TypeRunning:
			rc.MaxStitchLengthMM = DefaultRunningMaxStitchLengthMM
		case stitch.TypeSatin, stitch.TypeTatami:
			rc.MaxStitchLengthMM = DefaultSatinMaxStitchLengthMM
		}
	}
	if rc.MinStitchLengthMM < 0 {
		rc.MinStitchLengthMM = 0
	}
	// 0° is a legitimate explicit row angle (S3's worked example uses it),
	// so it can't double as "not provided" the way MaxStitchLengthMM's
	// <=0 does. Negative is the unset sentinel instead; UnsetTatamiAngleDeg
	// names it for callers translating an optional external field.
	if rc.TatamiAngleDeg < 0 {
		rc.TatamiAngleDeg = DefaultTatamiAngleDeg
	}

	if err := validate(rc); err != nil {
		return ResolvedConfig{}, err
	}
	return rc, nil
}

func validate(rc ResolvedConfig) error {
	if rc.DensityMM <= 0 {
		return errs.New(errs.ConfigOutOfRange, "config.Resolve", fmt.Errorf("density_mm must be > 0, got %v", rc.DensityMM))
	}
	if rc.StitchType == stitch.TypeSatin && rc.SatinColumnWidthMM <= 0 {
		return errs.New(errs.ConfigOutOfRange, "config.Resolve", fmt.Errorf("satin_column_width_mm must be > 0 when stitch_type=satin, got %v", rc.SatinColumnWidthMM))
	}
	// max_stitch_length_mm <= 0 is never fatal here: Resolve has already
	// filled it in above (decision 7 in DESIGN.md), so by this point it
	// is always positive.
	return nil
}
