package wordgraph

import werrors "github.com/matzehuels/wordladder/pkg/errors"

// HammingDistance returns the number of positions at which a and b differ,
// comparing characters (runes), not bytes. HammingDistance("pack", "pick")
// is 1 and HammingDistance("mate", "meta") is 2.
//
// Equal length is a precondition: HammingDistance panics with a
// PRECONDITION_FAILED *errors.Error when the lengths differ.
func HammingDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) != len(rb) {
		panic(werrors.Precondition("hamming distance of %q (%d) and %q (%d): lengths differ",
			a, len(ra), b, len(rb)))
	}
	return mismatches(ra, rb, len(ra))
}

// mismatches counts differing positions of two equal-length words, giving up
// once the count exceeds limit.
func mismatches(a, b []rune, limit int) int {
	n := 0
	for i := range a {
		if a[i] != b[i] {
			n++
			if n > limit {
				return n
			}
		}
	}
	return n
}

// adjacent reports whether two equal-length words differ in exactly one
// position.
func adjacent(a, b []rune) bool {
	return mismatches(a, b, 1) == 1
}
