// Package result persists search runs and the combinations they found.
package result

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/fivewords/internal/adapter/postgres"
	"github.com/heartmarshall/fivewords/internal/domain"
)

const (
	runsTable         = "search_runs"
	combinationsTable = "run_combinations"
)

var runColumns = []string{
	"id", "word_file", "allow_duplicate_letters", "incremental", "started_at", "finished_at",
	"words", "classes", "pairs", "quads", "combinations", "expanded",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides result storage operations.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new result repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// CreateRun inserts an unfinished run row.
func (r *Repo) CreateRun(ctx context.Context, run domain.Run) error {
	query, args, err := psql.Insert(runsTable).
		Columns("id", "word_file", "allow_duplicate_letters", "incremental", "started_at").
		Values(run.ID, run.WordFile, run.AllowDuplicateLetters, run.Incremental, run.StartedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert run: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "search_run", run.ID)
	}
	return nil
}

// FinishRun records the final counts of a run.
func (r *Repo) FinishRun(ctx context.Context, id uuid.UUID, finishedAt time.Time, counts domain.RunCounts) error {
	query, args, err := psql.Update(runsTable).
		Set("finished_at", finishedAt).
		Set("words", counts.Words).
		Set("classes", counts.Classes).
		Set("pairs", counts.Pairs).
		Set("quads", counts.Quads).
		Set("combinations", counts.Combinations).
		Set("expanded", counts.Expanded).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build finish run: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "search_run", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "search_run", id)
	}
	return nil
}

// GetRun returns a run by ID.
func (r *Repo) GetRun(ctx context.Context, id uuid.UUID) (domain.Run, error) {
	query, args, err := psql.Select(runColumns...).
		From(runsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Run{}, fmt.Errorf("build get run: %w", err)
	}

	var run domain.Run
	q := postgres.QuerierFromCtx(ctx, r.pool)
	err = q.QueryRow(ctx, query, args...).Scan(
		&run.ID, &run.WordFile, &run.AllowDuplicateLetters, &run.Incremental,
		&run.StartedAt, &run.FinishedAt,
		&run.Counts.Words, &run.Counts.Classes, &run.Counts.Pairs, &run.Counts.Quads,
		&run.Counts.Combinations, &run.Counts.Expanded,
	)
	if err != nil {
		return domain.Run{}, postgres.MapError(err, "search_run", id)
	}
	return run, nil
}

// BulkInsertCombinations inserts result rows using pgx.Batch. A combination
// already stored for the run is skipped via ON CONFLICT DO NOTHING.
// Returns the number of actually inserted rows.
func (r *Repo) BulkInsertCombinations(ctx context.Context, rows []domain.StoredCombination) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, row := range rows {
		groups, err := json.Marshal(row.WordGroups)
		if err != nil {
			return 0, fmt.Errorf("marshal word groups: %w", err)
		}
		m := row.Masks
		batch.Queue(
			`INSERT INTO run_combinations (run_id, mask1, mask2, mask3, mask4, mask5, word_groups, discovered_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT DO NOTHING`,
			row.RunID, int32(m[0]), int32(m[1]), int32(m[2]), int32(m[3]), int32(m[4]), groups, row.DiscoveredAt,
		)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("batch exec: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// ListCombinations returns the combinations of a run ordered by mask tuple.
func (r *Repo) ListCombinations(ctx context.Context, runID uuid.UUID) ([]domain.StoredCombination, error) {
	query, args, err := psql.Select("mask1", "mask2", "mask3", "mask4", "mask5", "word_groups", "discovered_at").
		From(combinationsTable).
		Where(sq.Eq{"run_id": runID}).
		OrderBy("mask1", "mask2", "mask3", "mask4", "mask5").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list combinations: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "search_run", runID)
	}
	defer rows.Close()

	var out []domain.StoredCombination
	for rows.Next() {
		var (
			m      [domain.CombinationSize]int32
			groups []byte
			row    = domain.StoredCombination{RunID: runID}
		)
		if err := rows.Scan(&m[0], &m[1], &m[2], &m[3], &m[4], &groups, &row.DiscoveredAt); err != nil {
			return nil, fmt.Errorf("scan combination: %w", err)
		}
		for i, v := range m {
			row.Masks[i] = domain.LetterMask(v)
		}
		if err := json.Unmarshal(groups, &row.WordGroups); err != nil {
			return nil, fmt.Errorf("unmarshal word groups: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate combinations: %w", err)
	}

	return out, nil
}
