package report

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/fivewords/internal/domain"
)

// RunStore persists runs and their combinations.
type RunStore interface {
	CreateRun(ctx context.Context, run domain.Run) error
	BulkInsertCombinations(ctx context.Context, rows []domain.StoredCombination) (int, error)
	FinishRun(ctx context.Context, id uuid.UUID, finishedAt time.Time, counts domain.RunCounts) error
}

// TxRunner runs fn inside one transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store records the run row in Start, buffers combinations in memory while
// the search runs and writes them in batches in Finish, inside a single
// transaction together with the final counts.
type Store struct {
	log       *slog.Logger
	repo      RunStore
	tx        TxRunner
	groups    Groups
	batchSize int

	mu    sync.Mutex
	runID uuid.UUID
	rows  []domain.StoredCombination
}

// NewStore creates a Store. batchSize <= 0 uses 500.
func NewStore(log *slog.Logger, repo RunStore, tx TxRunner, groups Groups, batchSize int) *Store {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &Store{log: log, repo: repo, tx: tx, groups: groups, batchSize: batchSize}
}

func (s *Store) Start(ctx context.Context, run domain.Run) error {
	if err := s.repo.CreateRun(ctx, run); err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	s.mu.Lock()
	s.runID = run.ID
	s.mu.Unlock()
	return nil
}

func (s *Store) Report(c domain.Combination) error {
	row := domain.StoredCombination{
		Masks:        c,
		WordGroups:   s.groups.WordGroups(c),
		DiscoveredAt: time.Now().UTC(),
	}
	s.mu.Lock()
	row.RunID = s.runID
	s.rows = append(s.rows, row)
	s.mu.Unlock()
	return nil
}

func (s *Store) Finish(ctx context.Context, sum Summary) error {
	s.mu.Lock()
	rows := s.rows
	s.rows = nil
	s.mu.Unlock()

	var inserted int
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		n, err := batchProcess(rows, s.batchSize, func(batch []domain.StoredCombination) (int, error) {
			return s.repo.BulkInsertCombinations(ctx, batch)
		})
		if err != nil {
			return fmt.Errorf("insert combinations: %w", err)
		}
		inserted = n

		finishedAt := sum.Run.StartedAt.Add(sum.Duration)
		if sum.Run.FinishedAt != nil {
			finishedAt = *sum.Run.FinishedAt
		}
		if err := s.repo.FinishRun(ctx, sum.Run.ID, finishedAt, sum.Run.Counts); err != nil {
			return fmt.Errorf("finish run: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("results stored",
		slog.String("run_id", sum.Run.ID.String()),
		slog.Int("combinations", inserted),
	)
	return nil
}

func batchProcess[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
