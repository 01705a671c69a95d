// Package dst implements the Tajima DST binary encoder (spec §4.8): a
// 512-byte ASCII header followed by 3-byte interleaved stitch records.
// Encoding idiom grounded on the teacher's writer/helpers.go fixed-width
// ASCII field builder and writer/object_builder.go's small stateful
// per-record encoder.
package dst

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/gmsr99/bordadosdosrlucasV2/errs"
	"github.com/gmsr99/bordadosdosrlucasV2/stitch"
)

const headerSize = 512

// maxHeaderCoordMM is the largest absolute coordinate the 5-digit,
// 0.1mm header fields can represent.
const maxHeaderCoordMM = 3276.7

// encoder tracks the running integer pen position (0.1mm units) and the
// bounding box / counters needed for the header.
type encoder struct {
	x, y int // current pen position, 0.1mm units

	body bytes.Buffer

	recordCount int // total body records written, including the terminator
	colorCount  int

	maxX, minX int // minX is the most negative seen, kept negative
	maxY, minY int
}

// Encode writes stitches as a complete DST file (header + body) to w.
func Encode(stitches []stitch.Stitch, label string, w io.Writer) error {
	const op = "dst.Encode"

	e := &encoder{}

	for _, s := range stitches {
		if err := e.encodeStitch(s); err != nil {
			return errs.New(errs.CoordinateOverflow, op, err)
		}
	}
	e.writeTerminator()

	header, err := e.buildHeader(label)
	if err != nil {
		return errs.New(errs.CoordinateOverflow, op, err)
	}

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%s: writing header: %w", op, err)
	}
	if _, err := w.Write(e.body.Bytes()); err != nil {
		return fmt.Errorf("%s: writing body: %w", op, err)
	}
	return nil
}

func (e *encoder) encodeStitch(s stitch.Stitch) error {
	switch s.Kind {
	case stitch.KindColorChange:
		e.colorCount++
		return e.moveTo(s, true, false)
	case stitch.KindJump, stitch.KindTrim:
		return e.moveTo(s, true, false)
	case stitch.KindEnd:
		// the stream's end record is replaced by the synthetic
		// terminator written after the loop; it contributes no body
		// record of its own.
		return nil
	default: // stitch.KindStitch
		return e.moveTo(s, false, false)
	}
}

// moveTo steps the pen from its current position to s's target,
// splitting the step into oversize jump records (per spec §4.8) until
// the residual fits within ±121, then emitting one final record tagged
// jumpFlag/stopFlag as requested.
func (e *encoder) moveTo(s stitch.Stitch, jumpFlag, stopFlag bool) error {
	targetX := int(math.Round(s.X * 10))
	targetY := int(math.Round(s.Y * 10))

	if err := checkOverflow(targetX, targetY); err != nil {
		return err
	}

	for {
		dx := targetX - e.x
		dy := targetY - e.y

		if withinCap(dx) && withinCap(dy) {
			e.writeRecord(dx, dy, jumpFlag, stopFlag)
			e.x, e.y = targetX, targetY
			e.trackBounds(targetX, targetY)
			return nil
		}

		stepX := clampStep(dx)
		stepY := clampStep(dy)
		e.writeRecord(stepX, stepY, true, false)
		e.x += stepX
		e.y += stepY
		e.trackBounds(e.x, e.y)
	}
}

func withinCap(d int) bool { return d >= -121 && d <= 121 }

func clampStep(d int) int {
	if d > 121 {
		return 121
	}
	if d < -121 {
		return -121
	}
	return d
}

func (e *encoder) trackBounds(x, y int) {
	if x > e.maxX {
		e.maxX = x
	}
	if x < e.minX {
		e.minX = x
	}
	if y > e.maxY {
		e.maxY = y
	}
	if y < e.minY {
		e.minY = y
	}
}

func (e *encoder) writeRecord(dx, dy int, jumpFlag, stopFlag bool) {
	var b [3]byte
	for _, d := range decompose(dx) {
		sign := d.sign
		setBit(&b, dxBits[d.weight][sign])
	}
	for _, d := range decompose(dy) {
		sign := d.sign
		setBit(&b, dyBits[d.weight][sign])
	}
	if jumpFlag {
		b[2] |= 1 << 7
	}
	if stopFlag {
		b[2] |= 1 << 6
	}
	e.body.Write(b[:])
	e.recordCount++
}

// writeTerminator appends the trailing synthetic end record: zero
// delta, both control bits set. Counted in recordCount, per the stitch
// count invariant (spec §8 invariant 8).
func (e *encoder) writeTerminator() {
	e.body.WriteByte(0)
	e.body.WriteByte(0)
	e.body.WriteByte(1<<7 | 1<<6)
	e.recordCount++
}

func checkOverflow(x, y int) error {
	const maxUnits = int(maxHeaderCoordMM * 10)
	if x > maxUnits || x < -maxUnits || y > maxUnits || y < -maxUnits {
		return fmt.Errorf("stitch position (%d, %d) in 0.1mm units exceeds ±%v mm", x, y, maxHeaderCoordMM)
	}
	return nil
}

func (e *encoder) buildHeader(label string) ([]byte, error) {
	if err := checkOverflow(e.maxX, e.minY); err != nil {
		return nil, err
	}

	buf := make([]byte, headerSize)
	for i := range buf {
		buf[i] = ' '
	}

	put := func(offset int, s string) {
		copy(buf[offset:], []byte(s))
	}

	put(0, fmt.Sprintf("LA:%-16s", truncateLabel(label, 16)))
	put(23, fmt.Sprintf("ST:%07d", e.recordCount))
	put(39, fmt.Sprintf("CO:%03d", e.colorCount))
	put(54, fmt.Sprintf("+X:%05d", e.maxX))
	put(69, fmt.Sprintf("-X:%05d", absInt(e.minX)))
	put(84, fmt.Sprintf("+Y:%05d", e.maxY))
	put(99, fmt.Sprintf("-Y:%05d", absInt(e.minY)))
	put(114, "AX:+00000")
	put(129, "AY:+00000")
	put(144, "MX:+00000")
	put(159, "MY:+00000")
	put(174, "PD:******")

	return buf, nil
}

func truncateLabel(label string, n int) string {
	if len(label) <= n {
		return label
	}
	return label[:n]
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
