// Package search finds five-word letter covers: disjoint pairs, composed
// into disjoint quads, extended by a disjoint fifth mask, deduplicated.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/fivewords/internal/domain"
)

// Config holds engine settings.
type Config struct {
	// Workers is the number of goroutines per parallel stage; 0 means NumCPU.
	Workers int
	// ProgressInterval is how often progress is logged at debug level;
	// 0 disables progress logging.
	ProgressInterval time.Duration
}

// Stats describes a finished search.
type Stats struct {
	Masks      int
	Pairs      int
	Quads      int64
	Candidates int64
	Duplicates int64
	Unique     int
	PairsTime  time.Duration
	SearchTime time.Duration
}

// Engine runs the search. An Engine may be reused but not concurrently.
type Engine struct {
	log *slog.Logger
	cfg Config

	done       atomic.Int64
	quads      atomic.Int64
	candidates atomic.Int64
	duplicates atomic.Int64
}

// NewEngine creates an Engine.
func NewEngine(log *slog.Logger, cfg Config) *Engine {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Engine{log: log, cfg: cfg}
}

// Workers returns the effective worker count.
func (e *Engine) Workers() int {
	return e.cfg.Workers
}

// Run searches masks and hands every unique combination to rep as soon as it
// wins the dedup race. masks must be distinct. The returned Seen holds the
// full result set.
func (e *Engine) Run(ctx context.Context, masks []domain.LetterMask, rep Reporter) (Stats, *Seen, error) {
	e.done.Store(0)
	e.quads.Store(0)
	e.candidates.Store(0)
	e.duplicates.Store(0)

	stats := Stats{Masks: len(masks)}

	start := time.Now()
	pairs, err := GeneratePairs(ctx, masks, e.cfg.Workers)
	if err != nil {
		return stats, nil, fmt.Errorf("generate pairs: %w", err)
	}
	stats.Pairs = len(pairs)
	stats.PairsTime = time.Since(start)
	e.log.Info("pairs generated",
		slog.Int("masks", len(masks)),
		slog.Int("pairs", len(pairs)),
		slog.Duration("duration", stats.PairsTime),
	)

	seen := NewSeen(rep)

	start = time.Now()
	stop := e.logProgress(len(pairs))
	err = e.forEachPair(ctx, len(pairs), func(i int) error {
		defer e.done.Add(1)
		return ComposeQuads(pairs, i, func(q Quad) error {
			e.quads.Add(1)
			return FindQuintets(q, masks, func(c domain.Combination) error {
				e.candidates.Add(1)
				fresh, err := seen.Offer(c)
				if err != nil {
					return fmt.Errorf("report combination: %w", err)
				}
				if !fresh {
					e.duplicates.Add(1)
				}
				return nil
			})
		})
	})
	stop()
	stats.SearchTime = time.Since(start)

	stats.Quads = e.quads.Load()
	stats.Candidates = e.candidates.Load()
	stats.Duplicates = e.duplicates.Load()
	stats.Unique = seen.Len()

	if err != nil {
		return stats, nil, err
	}
	return stats, seen, nil
}

// forEachPair runs fn for every index in [0, n) on a fixed set of workers.
// The run breaks on the first error or when ctx is cancelled.
func (e *Engine) forEachPair(ctx context.Context, n int, fn func(i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	ch := make(chan int)

	for range min(e.cfg.Workers, max(n, 1)) {
		g.Go(func() error {
			for i := range ch {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}

sendLoop:
	for i := range n {
		select {
		case ch <- i:
		case <-gctx.Done():
			break sendLoop
		}
	}
	close(ch)

	if err := g.Wait(); err != nil {
		return err
	}
	// Workers may all have exited cleanly before noticing a cancellation that
	// stopped the send loop.
	return ctx.Err()
}

// logProgress logs completed outer indices until the returned func is called.
func (e *Engine) logProgress(total int) (stop func()) {
	if e.cfg.ProgressInterval <= 0 || total == 0 {
		return func() {}
	}

	ticker := time.NewTicker(e.cfg.ProgressInterval)
	quit := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for {
			select {
			case <-ticker.C:
				done := e.done.Load()
				e.log.Debug("search progress",
					slog.Int64("done", done),
					slog.Int("total", total),
					slog.Int64("quads", e.quads.Load()),
					slog.Int64("candidates", e.candidates.Load()),
				)
			case <-quit:
				return
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(quit)
		<-finished
	}
}
