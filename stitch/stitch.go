// Package stitch defines the data model shared by every stage of the
// digitization pipeline: the Stitch record, the VectorLayer input
// contract, and the ProcessingConfig parameter bundle.
package stitch

import "github.com/gmsr99/bordadosdosrlucasV2/geometry"

// Kind tags what a Stitch record represents.
type Kind int

const (
	KindStitch Kind = iota
	KindJump
	KindColorChange
	KindTrim
	KindEnd
)

func (k Kind) String() string {
	switch k {
	case KindStitch:
		return "stitch"
	case KindJump:
		return "jump"
	case KindColorChange:
		return "color_change"
	case KindTrim:
		return "trim"
	case KindEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Stitch is a single record in the machine sequence. Coordinates are
// millimetres in the same space as the input VectorLayer polygons.
type Stitch struct {
	X, Y        float64
	Kind        Kind
	ColorIndex  int
	ColorHex    string
	IsStructure bool
}

// Point returns the record's position.
func (s Stitch) Point() geometry.Point { return geometry.Point{X: s.X, Y: s.Y} }

// New constructs a face (non-structural) stitch at p.
func New(p geometry.Point, colorIndex int, colorHex string) Stitch {
	return Stitch{X: p.X, Y: p.Y, Kind: KindStitch, ColorIndex: colorIndex, ColorHex: colorHex}
}

// NewStructure constructs a structural (underlay/tie/jump/etc) record.
func NewStructure(p geometry.Point, kind Kind, colorIndex int, colorHex string) Stitch {
	return Stitch{X: p.X, Y: p.Y, Kind: kind, ColorIndex: colorIndex, ColorHex: colorHex, IsStructure: true}
}

// VectorLayer is a (color, polygons) pair: an ordered sequence of closed
// polygons in millimetres, all sharing one color.
type VectorLayer struct {
	ColorHex string
	Polygons []geometry.Polygon
}
