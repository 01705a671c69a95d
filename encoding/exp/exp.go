// Package exp implements the Melco EXP binary encoder (spec §4.9): a
// body-only stream of relative 2-byte stitch records and 4-byte control
// sequences. Encoding idiom grounded on the same writer/object_builder.go
// stateful per-record encoder pattern as the DST encoder, simplified to
// match EXP's much smaller record set.
package exp

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/gmsr99/bordadosdosrlucasV2/errs"
	"github.com/gmsr99/bordadosdosrlucasV2/stitch"
)

// maxStepUnits is the per-record cap, in 0.1mm units, for both stitch
// and jump records.
const maxStepUnits = 120

type encoder struct {
	x, y int // current pen position, 0.1mm units
	body bytes.Buffer
}

// Encode writes stitches as an EXP body (no header) to w.
func Encode(stitches []stitch.Stitch, w io.Writer) error {
	const op = "exp.Encode"

	e := &encoder{}
	for _, s := range stitches {
		if err := e.encodeStitch(s); err != nil {
			return errs.New(errs.CoordinateOverflow, op, err)
		}
	}

	if _, err := w.Write(e.body.Bytes()); err != nil {
		return fmt.Errorf("%s: writing body: %w", op, err)
	}
	return nil
}

func (e *encoder) encodeStitch(s stitch.Stitch) error {
	switch s.Kind {
	case stitch.KindJump:
		return e.moveTo(s, true)
	case stitch.KindTrim:
		for i := 0; i < 3; i++ {
			e.writeJumpRecord(0, 0)
		}
		return nil
	case stitch.KindColorChange, stitch.KindEnd:
		e.body.Write([]byte{0x80, 0x01, 0x00, 0x00})
		return nil
	default: // stitch.KindStitch
		return e.moveTo(s, false)
	}
}

func (e *encoder) moveTo(s stitch.Stitch, isJump bool) error {
	targetX := int(math.Round(s.X * 10))
	targetY := int(math.Round(s.Y * 10))

	for {
		dx := targetX - e.x
		dy := targetY - e.y

		if withinCap(dx) && withinCap(dy) {
			if isJump {
				e.writeJumpRecord(dx, dy)
			} else {
				e.writeStitchRecord(dx, dy)
			}
			e.x, e.y = targetX, targetY
			return nil
		}

		stepX := clampStep(dx)
		stepY := clampStep(dy)
		if isJump {
			e.writeJumpRecord(stepX, stepY)
		} else {
			e.writeStitchRecord(stepX, stepY)
		}
		e.x += stepX
		e.y += stepY
	}
}

func withinCap(d int) bool { return d >= -maxStepUnits && d <= maxStepUnits }

func clampStep(d int) int {
	if d > maxStepUnits {
		return maxStepUnits
	}
	if d < -maxStepUnits {
		return -maxStepUnits
	}
	return d
}

func (e *encoder) writeStitchRecord(dx, dy int) {
	e.body.Write([]byte{int8ToByte(dx), int8ToByte(dy)})
}

func (e *encoder) writeJumpRecord(dx, dy int) {
	e.body.Write([]byte{0x80, 0x04, int8ToByte(dx), int8ToByte(dy)})
}

// int8ToByte converts a value in [-120, 120] to its two's-complement
// byte representation.
func int8ToByte(v int) byte { return byte(int8(v)) }
