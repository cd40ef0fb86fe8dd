package search

import (
	"slices"
	"sync"

	"github.com/heartmarshall/fivewords/internal/domain"
)

// Reporter receives each unique combination exactly once.
type Reporter interface {
	Report(c domain.Combination) error
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(domain.Combination) error

// Report calls f(c).
func (f ReporterFunc) Report(c domain.Combination) error { return f(c) }

// Seen is the run-scoped set of combinations already found. Membership
// check, insertion and the reporter call happen under one lock, so a
// combination is reported by exactly one producer and reporter writes never
// interleave.
type Seen struct {
	mu  sync.Mutex
	set map[domain.Combination]struct{}
	rep Reporter
}

// NewSeen creates an empty set. rep may be nil.
func NewSeen(rep Reporter) *Seen {
	return &Seen{
		set: make(map[domain.Combination]struct{}),
		rep: rep,
	}
}

// Offer inserts c in canonical order. It returns true if c was new, in which
// case it has been handed to the reporter.
func (s *Seen) Offer(c domain.Combination) (bool, error) {
	c = domain.NewCombination(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.set[c]; ok {
		return false, nil
	}
	s.set[c] = struct{}{}

	if s.rep == nil {
		return true, nil
	}
	return true, s.rep.Report(c)
}

// Len returns the number of unique combinations.
func (s *Seen) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.set)
}

// Drain returns all combinations sorted by mask tuple.
func (s *Seen) Drain() []domain.Combination {
	s.mu.Lock()
	out := make([]domain.Combination, 0, len(s.set))
	for c := range s.set {
		out = append(out, c)
	}
	s.mu.Unlock()

	slices.SortFunc(out, domain.Combination.Compare)
	return out
}
