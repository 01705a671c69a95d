package stitch

import (
	"testing"

	"github.com/gmsr99/bordadosdosrlucasV2/geometry"
)

func TestNewProducesFaceStitch(t *testing.T) {
	s := New(geometry.Point{X: 1, Y: 2}, 3, "#ff0000")
	if s.Kind != KindStitch {
		t.Errorf("Kind = %v, want KindStitch", s.Kind)
	}
	if s.IsStructure {
		t.Errorf("IsStructure = true, want false for a face stitch")
	}
	if s.Point() != (geometry.Point{X: 1, Y: 2}) {
		t.Errorf("Point() = %v, want (1,2)", s.Point())
	}
}

func TestNewStructureProducesStructuralRecord(t *testing.T) {
	s := NewStructure(geometry.Point{X: 0, Y: 0}, KindJump, 0, "#000000")
	if !s.IsStructure {
		t.Errorf("IsStructure = false, want true for a structural record")
	}
	if s.Kind != KindJump {
		t.Errorf("Kind = %v, want KindJump", s.Kind)
	}
}

func TestKindStringsAreDistinct(t *testing.T) {
	kinds := []Kind{KindStitch, KindJump, KindColorChange, KindTrim, KindEnd}
	seen := map[string]bool{}
	for _, k := range kinds {
		s := k.String()
		if s == "" || s == "unknown" {
			t.Errorf("Kind(%d).String() = %q, want a distinct non-empty name", k, s)
		}
		if seen[s] {
			t.Errorf("duplicate Kind string %q", s)
		}
		seen[s] = true
	}
}
