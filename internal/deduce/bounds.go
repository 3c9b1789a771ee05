// internal/deduce/bounds.go
//
// Letter-count bounds: for every letter A–Z, the [Min, Max] range of how many
// times it can occur in the hidden answer given the evidence so far.
//
// Bounds are fixed 26-entry arrays indexed by letter so they copy by value,
// compare with ==, and serialize without any map bookkeeping.

package deduce

// WordLen is the length of every guess and answer.
const WordLen = 4

// Bounds holds the feasible occurrence range per letter. Index 0 is 'A'.
type Bounds struct {
	Min [26]int
	Max [26]int
}

// NewBounds returns bounds with every letter in [0, WordLen].
func NewBounds() Bounds {
	var b Bounds
	for i := range b.Max {
		b.Max[i] = WordLen
	}
	return b
}

// Present reports whether letter l is proven to occur in the answer.
func (b Bounds) Present(l byte) bool {
	i := Index(l)
	return i >= 0 && b.Min[i] > 0
}

// Absent reports whether letter l is proven not to occur in the answer.
func (b Bounds) Absent(l byte) bool {
	i := Index(l)
	return i >= 0 && b.Max[i] == 0
}

// Index maps 'A'..'Z' to 0..25 and anything else to -1.
func Index(l byte) int {
	if l < 'A' || l > 'Z' {
		return -1
	}
	return int(l - 'A')
}

// Letter is the inverse of Index.
func Letter(i int) byte { return byte('A' + i) }

// raiseMin tightens Min[i] to v. It never lets Min pass Max.
func (b *Bounds) raiseMin(i, v int) bool {
	if v <= b.Min[i] || v > b.Max[i] {
		return false
	}
	b.Min[i] = v
	return true
}

// lowerMax tightens Max[i] to v. It never lets Max drop below Min.
func (b *Bounds) lowerMax(i, v int) bool {
	if v >= b.Max[i] || v < b.Min[i] {
		return false
	}
	b.Max[i] = v
	return true
}
