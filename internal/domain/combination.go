package domain

import "slices"

// CombinationSize is the number of words in a full answer.
const CombinationSize = 5

// Combination is five mutually disjoint masks in ascending order. Two
// combinations are equal iff their sorted tuples are equal, whatever path
// produced them, so Combination is usable directly as a map key.
type Combination [CombinationSize]LetterMask

// NewCombination returns the canonical (sorted) form of masks.
func NewCombination(masks [CombinationSize]LetterMask) Combination {
	c := Combination(masks)
	slices.Sort(c[:])
	return c
}

// Union returns the combined letter mask of all five words.
func (c Combination) Union() LetterMask {
	var u LetterMask
	for _, m := range c {
		u |= m
	}
	return u
}

// Valid reports whether the five masks are pairwise disjoint and non-empty.
func (c Combination) Valid() bool {
	var seen LetterMask
	for _, m := range c {
		if m == 0 || !m.Disjoint(seen) {
			return false
		}
		seen |= m
	}
	return true
}

// Compare orders combinations element by element.
func (c Combination) Compare(o Combination) int {
	return slices.Compare(c[:], o[:])
}
