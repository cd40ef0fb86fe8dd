// Package report renders search results. Batch collects everything and
// writes once at the end, Stream writes each combination as it is found,
// Store persists the run to PostgreSQL. Tee combines several.
package report

import (
	"context"
	"time"

	"github.com/heartmarshall/fivewords/internal/domain"
	"github.com/heartmarshall/fivewords/internal/search"
)

// Reporter is a search.Reporter with a run lifecycle. Start is called once
// before the search, Report once per unique combination (serialized by the
// caller) and Finish once after a successful search.
type Reporter interface {
	search.Reporter
	Start(ctx context.Context, run domain.Run) error
	Finish(ctx context.Context, sum Summary) error
}

// Summary is the outcome handed to Finish.
type Summary struct {
	Run          domain.Run
	Combinations int
	// Expanded counts concrete word tuples, anagrams multiplied out.
	Expanded int
	Duration time.Duration
}

// Groups resolves a combination to its anagram word groups.
type Groups interface {
	WordGroups(c domain.Combination) [][]string
}

// Tee fans every call out to each reporter in order, stopping at the first
// error.
type Tee []Reporter

func (t Tee) Start(ctx context.Context, run domain.Run) error {
	for _, r := range t {
		if err := r.Start(ctx, run); err != nil {
			return err
		}
	}
	return nil
}

func (t Tee) Report(c domain.Combination) error {
	for _, r := range t {
		if err := r.Report(c); err != nil {
			return err
		}
	}
	return nil
}

func (t Tee) Finish(ctx context.Context, sum Summary) error {
	for _, r := range t {
		if err := r.Finish(ctx, sum); err != nil {
			return err
		}
	}
	return nil
}
