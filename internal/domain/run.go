package domain

import (
	"time"

	"github.com/google/uuid"
)

// Run describes one search over one word list.
type Run struct {
	ID                    uuid.UUID
	WordFile              string
	AllowDuplicateLetters bool
	Incremental           bool
	StartedAt             time.Time
	FinishedAt            *time.Time
	Counts                RunCounts
}

// RunCounts are the per-stage totals recorded when a run finishes.
type RunCounts struct {
	Words        int
	Classes      int
	Pairs        int
	Quads        int64
	Combinations int
	Expanded     int
}

// StoredCombination is a persisted result row.
type StoredCombination struct {
	RunID        uuid.UUID
	Masks        Combination
	WordGroups   [][]string
	DiscoveredAt time.Time
}
