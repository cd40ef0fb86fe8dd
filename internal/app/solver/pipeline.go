// Package solver runs one search end to end: read the word list, index it,
// search, render and optionally persist the results.
package solver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/heartmarshall/fivewords/internal/domain"
	"github.com/heartmarshall/fivewords/internal/index"
	"github.com/heartmarshall/fivewords/internal/metrics"
	"github.com/heartmarshall/fivewords/internal/report"
	"github.com/heartmarshall/fivewords/internal/search"
	"github.com/heartmarshall/fivewords/internal/wordlist"
	"github.com/heartmarshall/fivewords/pkg/ctxutil"
)

// Phase names, in execution order.
const (
	PhaseRead   = "read"
	PhaseIndex  = "index"
	PhaseSearch = "search"
	PhaseReport = "report"
)

// Summary is the outcome of a pipeline run.
type Summary struct {
	RunID        uuid.UUID
	Lines        int
	Index        index.Stats
	Search       search.Stats
	Combinations int
	// Expanded counts concrete word tuples, anagrams multiplied out.
	Expanded int
	Phases   map[string]time.Duration
	Duration time.Duration
}

// Pipeline orchestrates a search run.
type Pipeline struct {
	log     *slog.Logger
	opts    Options
	out     io.Writer
	store   report.RunStore
	tx      report.TxRunner
	metrics *metrics.Metrics
}

// NewPipeline creates a Pipeline writing results to out.
func NewPipeline(log *slog.Logger, opts Options, out io.Writer) *Pipeline {
	if opts.Format == "" {
		opts.Format = report.FormatList
	}
	return &Pipeline{log: log, opts: opts, out: out}
}

// WithStore persists every run through store, inside transactions from tx.
func (p *Pipeline) WithStore(store report.RunStore, tx report.TxRunner) *Pipeline {
	p.store = store
	p.tx = tx
	return p
}

// WithMetrics records run counters into m.
func (p *Pipeline) WithMetrics(m *metrics.Metrics) *Pipeline {
	p.metrics = m
	return p
}

// Run executes the pipeline on the word file at path. The run ID is taken
// from ctx when present.
func (p *Pipeline) Run(ctx context.Context, path string) (Summary, error) {
	start := time.Now()

	runID, ok := ctxutil.RunIDFromCtx(ctx)
	if !ok {
		runID = uuid.New()
		ctx = ctxutil.WithRunID(ctx, runID)
	}
	log := p.log.With(slog.String("run_id", runID.String()))
	sum := Summary{RunID: runID, Phases: make(map[string]time.Duration, 4)}

	// Step 1: Read the word list.
	t := time.Now()
	res, err := wordlist.ReadFile(path)
	if err != nil {
		return sum, fmt.Errorf("read words: %w", err)
	}
	sum.Lines = len(res.Lines)
	p.phaseDone(&sum, PhaseRead, t)
	log.Info("words read",
		slog.String("file", path),
		slog.Int("lines", res.Stats.TotalLines),
		slog.Int("empty", res.Stats.EmptyLines),
	)

	// Step 2: Index eligible words by letter mask.
	t = time.Now()
	idx := index.Build(res.Lines, p.opts.Index)
	sum.Index = idx.Stats()
	p.phaseDone(&sum, PhaseIndex, t)
	log.Info("words indexed",
		slog.Int("eligible", sum.Index.Eligible),
		slog.Int("classes", sum.Index.Classes),
		slog.Bool("allow_duplicate_letters", p.opts.Index.AllowDuplicateLetters),
	)
	log.Debug("words rejected",
		slog.Int("wrong_length", sum.Index.WrongLength),
		slog.Int("repeated_letters", sum.Index.RepeatedLetters),
		slog.Int("invalid_chars", sum.Index.InvalidChars),
	)
	if p.metrics != nil {
		p.metrics.ObserveIndex(sum.Index)
	}

	if p.opts.ListWords {
		if err := WriteWordList(p.out, idx); err != nil {
			return sum, fmt.Errorf("list words: %w", err)
		}
		sum.Duration = time.Since(start)
		return sum, nil
	}

	// Step 3: Search.
	run := domain.Run{
		ID:                    runID,
		WordFile:              path,
		AllowDuplicateLetters: p.opts.Index.AllowDuplicateLetters,
		Incremental:           p.opts.Incremental,
		StartedAt:             start.UTC(),
	}
	rep := p.reporter(log, idx)
	if err := rep.Start(ctx, run); err != nil {
		return sum, fmt.Errorf("start report: %w", err)
	}

	t = time.Now()
	engine := search.NewEngine(log, p.opts.Search)
	st, seen, err := engine.Run(ctx, idx.Masks(), rep)
	sum.Search = st
	if err != nil {
		return sum, fmt.Errorf("search: %w", err)
	}
	p.phaseDone(&sum, PhaseSearch, t)

	sum.Combinations = seen.Len()
	for _, c := range seen.Drain() {
		sum.Expanded += idx.Expansions(c)
	}

	// Step 4: Report.
	t = time.Now()
	finished := time.Now().UTC()
	run.FinishedAt = &finished
	run.Counts = domain.RunCounts{
		Words:        sum.Index.Eligible,
		Classes:      sum.Index.Classes,
		Pairs:        st.Pairs,
		Quads:        st.Quads,
		Combinations: sum.Combinations,
		Expanded:     sum.Expanded,
	}
	err = rep.Finish(ctx, report.Summary{
		Run:          run,
		Combinations: sum.Combinations,
		Expanded:     sum.Expanded,
		Duration:     time.Since(start),
	})
	if err != nil {
		return sum, fmt.Errorf("finish report: %w", err)
	}
	p.phaseDone(&sum, PhaseReport, t)
	sum.Duration = time.Since(start)

	if p.metrics != nil {
		p.metrics.ObserveSearch(st, sum.Expanded)
		p.metrics.MarkFinished(finished)
	}

	log.Info("search completed",
		slog.Int("combinations", sum.Combinations),
		slog.Int("expanded", sum.Expanded),
		slog.String("quads", humanize.Comma(st.Quads)),
		slog.String("candidates", humanize.Comma(st.Candidates)),
		slog.String("duplicates", humanize.Comma(st.Duplicates)),
		slog.Duration("duration", sum.Duration),
	)
	return sum, nil
}

// reporter picks the renderer and tees in the store when one is attached.
func (p *Pipeline) reporter(log *slog.Logger, idx *index.Index) report.Reporter {
	var out report.Reporter
	if p.opts.Incremental {
		out = report.NewStream(p.out, idx, p.opts.Format)
	} else {
		out = report.NewBatch(p.out, idx, p.opts.Format)
	}
	if p.store == nil {
		return out
	}
	return report.Tee{out, report.NewStore(log, p.store, p.tx, idx, p.opts.BatchSize)}
}

func (p *Pipeline) phaseDone(sum *Summary, name string, start time.Time) {
	d := time.Since(start)
	sum.Phases[name] = d
	if p.metrics != nil {
		p.metrics.ObservePhase(name, d)
	}
}

// WriteWordList prints every eligible word with its letters and mask value,
// one per line, grouped by mask in ascending order.
func WriteWordList(w io.Writer, idx *index.Index) error {
	for _, c := range idx.Classes() {
		for _, word := range c.Words {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%d\n", word, c.Mask.Letters(), uint32(c.Mask)); err != nil {
				return err
			}
		}
	}
	return nil
}
