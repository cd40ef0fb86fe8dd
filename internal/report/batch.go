package report

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/heartmarshall/fivewords/internal/domain"
)

// Batch accumulates combinations and writes them all in Finish, sorted by
// mask tuple.
type Batch struct {
	mu     sync.Mutex
	w      io.Writer
	groups Groups
	format Format
	found  []domain.Combination
}

// NewBatch creates a Batch writing to w.
func NewBatch(w io.Writer, groups Groups, format Format) *Batch {
	return &Batch{w: w, groups: groups, format: format}
}

func (b *Batch) Start(context.Context, domain.Run) error {
	return nil
}

func (b *Batch) Report(c domain.Combination) error {
	b.mu.Lock()
	b.found = append(b.found, c)
	b.mu.Unlock()
	return nil
}

// Combinations returns what has been collected so far, sorted.
func (b *Batch) Combinations() []domain.Combination {
	b.mu.Lock()
	out := slices.Clone(b.found)
	b.mu.Unlock()
	slices.SortFunc(out, domain.Combination.Compare)
	return out
}

func (b *Batch) Finish(context.Context, Summary) error {
	enc := &encoder{w: b.w, format: b.format}
	if err := enc.open(); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	for _, c := range b.Combinations() {
		if err := enc.write(b.groups.WordGroups(c)); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
	}
	if err := enc.close(); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
