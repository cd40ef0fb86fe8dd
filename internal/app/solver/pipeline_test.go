package solver

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/fivewords/internal/config"
	"github.com/heartmarshall/fivewords/internal/domain"
	"github.com/heartmarshall/fivewords/internal/metrics"
	"github.com/heartmarshall/fivewords/internal/report"
	"github.com/heartmarshall/fivewords/internal/search"
	"github.com/heartmarshall/fivewords/pkg/ctxutil"
)

// Five disjoint words covering 25 letters, an anagram of vibex, and one line
// for each rejection reason.
const wordFile = `fjord
gucks
nymph
vibex
xebiv
waltz

aabcd
toolong
ab-cd
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeWords(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testOptions() Options {
	return Options{
		Search: search.Config{Workers: 2},
		Format: report.FormatList,
	}
}

// mockStore records calls to verify pipeline behavior.
type mockStore struct {
	mu sync.Mutex

	created    []domain.Run
	rows       []domain.StoredCombination
	finishedID uuid.UUID
	counts     domain.RunCounts

	createErr error
}

func (m *mockStore) CreateRun(_ context.Context, run domain.Run) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, run)
	return nil
}

func (m *mockStore) BulkInsertCombinations(_ context.Context, rows []domain.StoredCombination) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, rows...)
	return len(rows), nil
}

func (m *mockStore) FinishRun(_ context.Context, id uuid.UUID, _ time.Time, counts domain.RunCounts) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finishedID = id
	m.counts = counts
	return nil
}

type mockTx struct{ calls int }

func (m *mockTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func TestPipeline_Batch(t *testing.T) {
	path := writeWords(t, wordFile)
	var out bytes.Buffer

	sum, err := NewPipeline(discardLogger(), testOptions(), &out).Run(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, `[
  [["fjord"],["gucks"],["vibex","xebiv"],["nymph"],["waltz"]]
]
`, out.String())

	assert.NotEqual(t, uuid.Nil, sum.RunID)
	assert.Equal(t, 9, sum.Lines)
	assert.Equal(t, 9, sum.Index.Lines)
	assert.Equal(t, 1, sum.Index.WrongLength)
	assert.Equal(t, 1, sum.Index.RepeatedLetters)
	assert.Equal(t, 1, sum.Index.InvalidChars)
	assert.Equal(t, 6, sum.Index.Eligible)
	assert.Equal(t, 5, sum.Index.Classes)

	assert.Equal(t, 10, sum.Search.Pairs)
	assert.Equal(t, int64(15), sum.Search.Quads)
	assert.Equal(t, int64(14), sum.Search.Duplicates)
	assert.Equal(t, 1, sum.Combinations)
	assert.Equal(t, 2, sum.Expanded)

	for _, phase := range []string{PhaseRead, PhaseIndex, PhaseSearch, PhaseReport} {
		assert.Contains(t, sum.Phases, phase)
	}
	assert.Positive(t, sum.Duration)
}

func TestPipeline_IncrementalCSV(t *testing.T) {
	path := writeWords(t, wordFile)
	var out bytes.Buffer

	opts := testOptions()
	opts.Incremental = true
	opts.Format = report.FormatCSV

	_, err := NewPipeline(discardLogger(), opts, &out).Run(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "fjord,gucks,vibex|xebiv,nymph,waltz\n", out.String())
}

func TestPipeline_IncrementalList(t *testing.T) {
	path := writeWords(t, "fjord\ngucks\nnymph\nvibex\nwaltz\n")
	var out bytes.Buffer

	opts := testOptions()
	opts.Incremental = true

	_, err := NewPipeline(discardLogger(), opts, &out).Run(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "[\n  [[\"fjord\"],[\"gucks\"],[\"vibex\"],[\"nymph\"],[\"waltz\"]]\n]\n", out.String())
}

func TestPipeline_NoResults(t *testing.T) {
	path := writeWords(t, "south\nnorth\nrealm\nbitch\njunky\n")
	var out bytes.Buffer

	sum, err := NewPipeline(discardLogger(), testOptions(), &out).Run(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "[]\n", out.String())
	assert.Equal(t, 0, sum.Combinations)
	assert.Equal(t, 0, sum.Expanded)
}

func TestPipeline_EmptyFile(t *testing.T) {
	path := writeWords(t, "")
	var out bytes.Buffer

	sum, err := NewPipeline(discardLogger(), testOptions(), &out).Run(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "[]\n", out.String())
	assert.Zero(t, sum.Search.Pairs)
	assert.Zero(t, sum.Search.Quads)
	assert.Zero(t, sum.Combinations)
}

func TestPipeline_DefaultFormatIsList(t *testing.T) {
	path := writeWords(t, "")
	var out bytes.Buffer

	opts := testOptions()
	opts.Format = ""

	_, err := NewPipeline(discardLogger(), opts, &out).Run(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out.String())
}

func TestPipeline_ListWords(t *testing.T) {
	path := writeWords(t, wordFile)
	var out bytes.Buffer

	opts := testOptions()
	opts.ListWords = true

	sum, err := NewPipeline(discardLogger(), opts, &out).Run(context.Background(), path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "fjord\tdfjor\t148008", lines[0])
	assert.Equal(t, "vibex\tbeivx", lines[2][:len("vibex\tbeivx")])
	assert.Equal(t, "xebiv\tbeivx", lines[3][:len("xebiv\tbeivx")])
	assert.True(t, strings.HasPrefix(lines[5], "waltz\t"))

	assert.Zero(t, sum.Search.Pairs)
	assert.NotContains(t, sum.Phases, PhaseSearch)
}

func TestPipeline_AllowDuplicateLetters(t *testing.T) {
	path := writeWords(t, "aabcd\nfjord\n")
	var out bytes.Buffer

	opts := testOptions()
	opts.Index.AllowDuplicateLetters = true
	opts.ListWords = true

	sum, err := NewPipeline(discardLogger(), opts, &out).Run(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Index.Eligible)
	assert.Zero(t, sum.Index.RepeatedLetters)
	assert.Contains(t, out.String(), "aabcd\tabcd\t15\n")
}

func TestPipeline_RunIDFromContext(t *testing.T) {
	path := writeWords(t, wordFile)
	id := uuid.New()
	ctx := ctxutil.WithRunID(context.Background(), id)

	sum, err := NewPipeline(discardLogger(), testOptions(), io.Discard).Run(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, id, sum.RunID)
}

func TestPipeline_MissingFile(t *testing.T) {
	_, err := NewPipeline(discardLogger(), testOptions(), io.Discard).
		Run(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "read words")
}

func TestPipeline_Cancelled(t *testing.T) {
	path := writeWords(t, wordFile)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := NewPipeline(discardLogger(), testOptions(), &out).Run(ctx, path)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestPipeline_WithStore(t *testing.T) {
	path := writeWords(t, wordFile)
	store := &mockStore{}
	tx := &mockTx{}

	opts := testOptions()
	opts.BatchSize = 10

	sum, err := NewPipeline(discardLogger(), opts, io.Discard).
		WithStore(store, tx).
		Run(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, store.created, 1)
	assert.Equal(t, sum.RunID, store.created[0].ID)
	assert.Equal(t, path, store.created[0].WordFile)

	require.Len(t, store.rows, 1)
	assert.Equal(t, sum.RunID, store.rows[0].RunID)
	assert.Equal(t, [][]string{{"fjord"}, {"gucks"}, {"vibex", "xebiv"}, {"nymph"}, {"waltz"}}, store.rows[0].WordGroups)

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, sum.RunID, store.finishedID)
	assert.Equal(t, domain.RunCounts{
		Words:        6,
		Classes:      5,
		Pairs:        10,
		Quads:        15,
		Combinations: 1,
		Expanded:     2,
	}, store.counts)
}

func TestPipeline_StoreStartError(t *testing.T) {
	path := writeWords(t, wordFile)
	errDB := errors.New("connection refused")
	store := &mockStore{createErr: errDB}

	_, err := NewPipeline(discardLogger(), testOptions(), io.Discard).
		WithStore(store, &mockTx{}).
		Run(context.Background(), path)

	assert.ErrorIs(t, err, errDB)
	assert.Contains(t, err.Error(), "start report")
}

func TestPipeline_WithMetrics(t *testing.T) {
	path := writeWords(t, wordFile)
	reg := prometheus.NewRegistry()

	_, err := NewPipeline(discardLogger(), testOptions(), io.Discard).
		WithMetrics(metrics.New(reg)).
		Run(context.Background(), path)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "run.prom")
	require.NoError(t, metrics.WriteTextfile(out, reg))
	data, err := os.ReadFile(out)
	require.NoError(t, err)

	assert.Contains(t, string(data), "fivewords_combinations 1")
	assert.Contains(t, string(data), "fivewords_combinations_expanded 2")
	assert.Contains(t, string(data), `fivewords_phase_duration_seconds{phase="index"}`)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{
		Search: config.SearchConfig{
			AllowDuplicateLetters: true,
			Incremental:           true,
			Workers:               3,
			ProgressInterval:      time.Second,
		},
		Output: config.OutputConfig{Format: "CSV"},
		Store:  config.StoreConfig{BatchSize: 42},
	}

	opts, err := OptionsFromConfig(cfg)
	require.NoError(t, err)

	assert.True(t, opts.Index.AllowDuplicateLetters)
	assert.True(t, opts.Incremental)
	assert.Equal(t, 3, opts.Search.Workers)
	assert.Equal(t, time.Second, opts.Search.ProgressInterval)
	assert.Equal(t, report.FormatCSV, opts.Format)
	assert.Equal(t, 42, opts.BatchSize)
}

func TestOptionsFromConfig_BadFormat(t *testing.T) {
	_, err := OptionsFromConfig(&config.Config{Output: config.OutputConfig{Format: "xml"}})
	assert.Error(t, err)
}
