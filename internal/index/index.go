// Package index turns raw word-list lines into anagram classes keyed by
// letter mask.
package index

import (
	"cmp"
	"slices"

	"github.com/heartmarshall/fivewords/internal/domain"
)

// Options controls word eligibility.
type Options struct {
	// AllowDuplicateLetters admits words with a repeated letter. Their masks
	// have fewer than five bits set.
	AllowDuplicateLetters bool
}

// Stats counts how lines were classified.
type Stats struct {
	Lines           int
	WrongLength     int
	RepeatedLetters int
	InvalidChars    int
	Eligible        int
	Classes         int
}

// Index is the immutable set of mask classes built from a word list.
type Index struct {
	classes []domain.MaskClass
	byMask  map[domain.LetterMask]int
	stats   Stats
}

// Build indexes lines. Ineligible lines are dropped and counted, never
// reported as errors. Classes come out in ascending mask order with their
// words sorted.
func Build(lines []string, opts Options) *Index {
	idx := &Index{byMask: make(map[domain.LetterMask]int)}
	idx.stats.Lines = len(lines)

	for _, line := range lines {
		if len(line) != domain.WordLength {
			idx.stats.WrongLength++
			continue
		}
		if !opts.AllowDuplicateLetters && distinctBytes(line) != domain.WordLength {
			idx.stats.RepeatedLetters++
			continue
		}
		mask, err := domain.MaskOf(line)
		if err != nil {
			idx.stats.InvalidChars++
			continue
		}

		idx.stats.Eligible++
		i, ok := idx.byMask[mask]
		if !ok {
			i = len(idx.classes)
			idx.byMask[mask] = i
			idx.classes = append(idx.classes, domain.MaskClass{Mask: mask})
		}
		idx.classes[i].Words = append(idx.classes[i].Words, line)
	}

	slices.SortFunc(idx.classes, func(a, b domain.MaskClass) int {
		return cmp.Compare(a.Mask, b.Mask)
	})
	for i := range idx.classes {
		slices.Sort(idx.classes[i].Words)
		idx.classes[i].Words = slices.Compact(idx.classes[i].Words)
		idx.byMask[idx.classes[i].Mask] = i
	}
	idx.stats.Classes = len(idx.classes)

	return idx
}

// distinctBytes counts distinct characters of s, case-sensitively.
func distinctBytes(s string) int {
	var seen [256]bool
	n := 0
	for i := 0; i < len(s); i++ {
		if !seen[s[i]] {
			seen[s[i]] = true
			n++
		}
	}
	return n
}

// Classes returns the mask classes. Callers must not modify the result.
func (x *Index) Classes() []domain.MaskClass {
	return x.classes
}

// Masks returns the distinct masks in ascending order.
func (x *Index) Masks() []domain.LetterMask {
	out := make([]domain.LetterMask, len(x.classes))
	for i, c := range x.classes {
		out[i] = c.Mask
	}
	return out
}

// Words returns the anagram group for mask, or nil when mask is unknown.
func (x *Index) Words(mask domain.LetterMask) []string {
	i, ok := x.byMask[mask]
	if !ok {
		return nil
	}
	return x.classes[i].Words
}

// WordGroups resolves every mask of c to its anagram group.
func (x *Index) WordGroups(c domain.Combination) [][]string {
	groups := make([][]string, len(c))
	for i, m := range c {
		groups[i] = x.Words(m)
	}
	return groups
}

// Expansions returns how many concrete word tuples c stands for: the product
// of its anagram group sizes.
func (x *Index) Expansions(c domain.Combination) int {
	n := 1
	for _, m := range c {
		n *= len(x.Words(m))
	}
	return n
}

// Len returns the number of classes.
func (x *Index) Len() int {
	return len(x.classes)
}

// Stats returns the classification counters.
func (x *Index) Stats() Stats {
	return x.stats
}
