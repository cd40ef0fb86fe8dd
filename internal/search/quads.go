package search

import "github.com/heartmarshall/fivewords/internal/domain"

// Quad is two pairs whose unions share no letter.
type Quad struct {
	P, Q Pair
}

// Mask returns the letters of all four words.
func (q Quad) Mask() domain.LetterMask {
	return q.P.Union() | q.Q.Union()
}

// ComposeQuads calls fn for every j in i..len(pairs) with pairs[i] and
// pairs[j] disjoint. Starting at i keeps (A, B) and (B, A) from both being
// produced; j == i can never match since a non-empty union overlaps itself.
// It stops at the first error from fn.
func ComposeQuads(pairs []Pair, i int, fn func(Quad) error) error {
	p := pairs[i]
	pu := p.Union()
	for j := i; j < len(pairs); j++ {
		if !pu.Disjoint(pairs[j].Union()) {
			continue
		}
		if err := fn(Quad{P: p, Q: pairs[j]}); err != nil {
			return err
		}
	}
	return nil
}

// FindQuintets calls fn with the canonical combination for every mask in
// masks disjoint from the quad. A quad with no such mask yields nothing.
func FindQuintets(q Quad, masks []domain.LetterMask, fn func(domain.Combination) error) error {
	qm := q.Mask()
	for _, m5 := range masks {
		if !m5.Disjoint(qm) {
			continue
		}
		c := domain.NewCombination([domain.CombinationSize]domain.LetterMask{
			q.P.A, q.P.B, q.Q.A, q.Q.B, m5,
		})
		if err := fn(c); err != nil {
			return err
		}
	}
	return nil
}
