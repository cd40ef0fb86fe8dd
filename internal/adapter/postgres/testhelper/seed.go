package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/fivewords/internal/domain"
)

// SeedRun inserts an unfinished search run and returns it.
func SeedRun(t *testing.T, pool *pgxpool.Pool) domain.Run {
	t.Helper()

	run := domain.Run{
		ID:        uuid.New(),
		WordFile:  "seed-" + uuid.NewString()[:8] + ".txt",
		StartedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO search_runs (id, word_file, allow_duplicate_letters, incremental, started_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		run.ID, run.WordFile, run.AllowDuplicateLetters, run.Incremental, run.StartedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed run: %v", err)
	}

	return run
}
