package solver

import (
	"fmt"

	"github.com/heartmarshall/fivewords/internal/config"
	"github.com/heartmarshall/fivewords/internal/index"
	"github.com/heartmarshall/fivewords/internal/report"
	"github.com/heartmarshall/fivewords/internal/search"
)

// Options holds per-run pipeline settings.
type Options struct {
	Index       index.Options
	Search      search.Config
	Format      report.Format
	Incremental bool
	// ListWords prints the eligible words with their masks and stops
	// before the search.
	ListWords bool
	// BatchSize is the insert batch size used when a store is attached.
	BatchSize int
}

// OptionsFromConfig maps the application config onto pipeline options.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return Options{}, fmt.Errorf("output format: %w", err)
	}
	return Options{
		Index: index.Options{AllowDuplicateLetters: cfg.Search.AllowDuplicateLetters},
		Search: search.Config{
			Workers:          cfg.Search.Workers,
			ProgressInterval: cfg.Search.ProgressInterval,
		},
		Format:      format,
		Incremental: cfg.Search.Incremental,
		BatchSize:   cfg.Store.BatchSize,
	}, nil
}
