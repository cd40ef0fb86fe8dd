package search

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/fivewords/internal/domain"
)

// Pair is two letter-disjoint masks with A < B.
type Pair struct {
	A, B domain.LetterMask
}

// Union is the canonical key of the pair.
func (p Pair) Union() domain.LetterMask {
	return p.A | p.B
}

func newPair(m1, m2 domain.LetterMask) Pair {
	if m2 < m1 {
		m1, m2 = m2, m1
	}
	return Pair{A: m1, B: m2}
}

// less picks the representative among pairs sharing a union: the smallest
// (A, B) tuple.
func (p Pair) less(o Pair) bool {
	if p.A != o.A {
		return p.A < o.A
	}
	return p.B < o.B
}

// GeneratePairs returns one pair per distinct union of two disjoint masks,
// sorted ascending by union. Every m1 is compared against every m2 in masks;
// the outer index is split across workers, each scanning the shared slice
// read-only.
func GeneratePairs(ctx context.Context, masks []domain.LetterMask, workers int) ([]Pair, error) {
	if workers <= 0 {
		workers = 1
	}

	var (
		mu     sync.Mutex
		merged = make(map[domain.LetterMask]Pair)
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, r := range splitRange(len(masks), workers) {
		g.Go(func() error {
			local := make(map[domain.LetterMask]Pair)
			for i := r.lo; i < r.hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				m1 := masks[i]
				for _, m2 := range masks {
					if !m1.Disjoint(m2) {
						continue
					}
					keep(local, newPair(m1, m2))
				}
			}

			mu.Lock()
			for _, p := range local {
				keep(merged, p)
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pairs := slices.Collect(maps.Values(merged))
	slices.SortFunc(pairs, func(a, b Pair) int {
		return cmp.Compare(a.Union(), b.Union())
	})
	return pairs, nil
}

func keep(set map[domain.LetterMask]Pair, p Pair) {
	u := p.Union()
	if cur, ok := set[u]; !ok || p.less(cur) {
		set[u] = p
	}
}

type span struct{ lo, hi int }

// splitRange cuts [0, n) into at most parts contiguous spans.
func splitRange(n, parts int) []span {
	if n == 0 {
		return nil
	}
	if parts > n {
		parts = n
	}
	size := (n + parts - 1) / parts
	out := make([]span, 0, parts)
	for lo := 0; lo < n; lo += size {
		out = append(out, span{lo: lo, hi: min(lo+size, n)})
	}
	return out
}
