package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/heartmarshall/fivewords/internal/adapter/postgres"
	"github.com/heartmarshall/fivewords/internal/adapter/postgres/result"
	"github.com/heartmarshall/fivewords/internal/app/solver"
	"github.com/heartmarshall/fivewords/internal/config"
	"github.com/heartmarshall/fivewords/internal/metrics"
	"github.com/heartmarshall/fivewords/internal/report"
	"github.com/heartmarshall/fivewords/pkg/ctxutil"
)

// Compile-time interface assertions.
var (
	_ report.RunStore = (*result.Repo)(nil)
	_ report.TxRunner = (*postgres.TxManager)(nil)
)

// Options carries per-invocation switches that are not part of the config.
type Options struct {
	// ListWords prints the eligible words and exits without searching.
	ListWords bool
	// Out receives the results.
	Out io.Writer
}

// Run executes one search with cfg. It connects to PostgreSQL only when the
// store is enabled and writes the metrics textfile only when a path is set.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (solver.Summary, error) {
	runID := uuid.New()
	ctx = ctxutil.WithRunID(ctx, runID)

	logger.Info("starting search",
		slog.String("version", BuildVersion()),
		slog.String("run_id", runID.String()),
		slog.String("word_file", cfg.WordFile),
	)

	popts, err := solver.OptionsFromConfig(cfg)
	if err != nil {
		return solver.Summary{}, err
	}
	popts.ListWords = opts.ListWords

	pipeline := solver.NewPipeline(logger, popts, opts.Out)

	var reg *prometheus.Registry
	if cfg.Metrics.TextfilePath != "" {
		reg = prometheus.NewRegistry()
		pipeline.WithMetrics(metrics.New(reg))
	}

	if cfg.Store.Enabled && !opts.ListWords {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return solver.Summary{}, fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()

		if cfg.Store.Migrate {
			if err := postgres.Migrate(ctx, logger, cfg.Database.DSN); err != nil {
				return solver.Summary{}, err
			}
		}

		pipeline.WithStore(result.New(pool), postgres.NewTxManager(pool))
	}

	sum, err := pipeline.Run(ctx, cfg.WordFile)
	if err != nil {
		return sum, err
	}

	if reg != nil {
		if err := metrics.WriteTextfile(cfg.Metrics.TextfilePath, reg); err != nil {
			return sum, err
		}
		logger.Debug("metrics written", slog.String("path", cfg.Metrics.TextfilePath))
	}

	return sum, nil
}
