package config

import (
	"slices"
	"strings"

	"github.com/heartmarshall/fivewords/internal/domain"
)

var (
	logLevels     = []string{"debug", "info", "warn", "error"}
	logFormats    = []string{"json", "text"}
	outputFormats = []string{"list", "csv"}
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically; callers that change fields afterwards (CLI
// overrides) must call it again.
func (c *Config) Validate() error {
	var errs []domain.FieldError

	if c.Search.Workers < 0 {
		errs = append(errs, domain.FieldError{Field: "search.workers", Message: "must be >= 0"})
	}
	if c.Search.ProgressInterval < 0 {
		errs = append(errs, domain.FieldError{Field: "search.progress_interval", Message: "must be >= 0"})
	}
	if !oneOf(c.Output.Format, outputFormats) {
		errs = append(errs, domain.FieldError{Field: "output.format", Message: "must be one of " + strings.Join(outputFormats, ", ")})
	}
	if !oneOf(c.Log.Level, logLevels) {
		errs = append(errs, domain.FieldError{Field: "log.level", Message: "must be one of " + strings.Join(logLevels, ", ")})
	}
	if !oneOf(c.Log.Format, logFormats) {
		errs = append(errs, domain.FieldError{Field: "log.format", Message: "must be one of " + strings.Join(logFormats, ", ")})
	}

	if c.Store.Enabled {
		if c.Database.DSN == "" {
			errs = append(errs, domain.FieldError{Field: "database.dsn", Message: "required when store is enabled"})
		}
		if c.Store.BatchSize <= 0 {
			errs = append(errs, domain.FieldError{Field: "store.batch_size", Message: "must be > 0"})
		}
		if c.Database.MaxConns <= 0 {
			errs = append(errs, domain.FieldError{Field: "database.max_conns", Message: "must be > 0"})
		}
		if c.Database.ConnectTimeout <= 0 {
			errs = append(errs, domain.FieldError{Field: "database.connect_timeout", Message: "must be > 0"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	return slices.Contains(allowed, strings.ToLower(strings.TrimSpace(v)))
}
