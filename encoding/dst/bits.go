package dst

// weightOrder lists the five magnitude classes used by the Tajima
// interleaving table, largest first (spec §4.8). The encoder does not
// iterate it: decompose derives the same digits bottom-up with % 3.
var weightOrder = [5]int{81, 27, 9, 3, 1}

// digit is one balanced-ternary digit: +1, -1, or 0 (absent) for a given
// weight.
type digit struct {
	weight int
	sign   int // +1 or -1; entries with sign 0 are omitted by decompose
}

// decompose breaks a delta in [-121, 121] into its weighted ±1/±3/±9/
// ±27/±81 digits. Every delta in that range has a unique representation
// because {1, 3, 9, 27, 81} are the first five powers of 3 and
// (81+27+9+3+1) == 121: this is exactly a 5-digit balanced ternary
// number.
func decompose(delta int) []digit {
	var digits [5]int // index i -> digit for weight 3^i
	n := delta
	for i := 0; i < 5; i++ {
		r := n % 3
		n /= 3
		switch r {
		case 2:
			r = -1
			n++
		case -2:
			r = 1
			n--
		}
		digits[i] = r
	}

	out := make([]digit, 0, 5)
	weight := 1
	for i := 0; i < 5; i++ {
		if digits[i] != 0 {
			out = append(out, digit{weight: weight, sign: digits[i]})
		}
		weight *= 3
	}
	return out
}

// bitPos identifies a single bit: which of the three body bytes, and
// which bit within it.
type bitPos struct {
	byteIdx int
	bit     uint8
}

// dyBits and dxBits are the Tajima interleaving table of spec §4.8,
// keyed by weight and sign.
var dyBits = map[int]map[int]bitPos{
	1:  {+1: {0, 0}, -1: {0, 1}},
	9:  {+1: {0, 2}, -1: {0, 3}},
	3:  {+1: {1, 7}, -1: {1, 6}},
	27: {+1: {1, 5}, -1: {1, 4}},
	81: {+1: {2, 2}, -1: {2, 3}},
}

var dxBits = map[int]map[int]bitPos{
	1:  {+1: {0, 7}, -1: {0, 6}},
	9:  {+1: {0, 5}, -1: {0, 4}},
	3:  {+1: {1, 3}, -1: {1, 2}},
	27: {+1: {1, 1}, -1: {1, 0}},
	81: {+1: {2, 4}, -1: {2, 5}},
}

func setBit(b *[3]byte, p bitPos) {
	b[p.byteIdx] |= 1 << p.bit
}
