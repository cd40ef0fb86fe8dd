//go:build integration

package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	run := SeedRun(t, pool)

	// Verify the run exists in DB via SELECT.
	var wordFile string
	err := pool.QueryRow(
		context.Background(),
		`SELECT word_file FROM search_runs WHERE id = $1`,
		run.ID,
	).Scan(&wordFile)
	if err != nil {
		t.Fatalf("expected run in DB, got error: %v", err)
	}

	if wordFile != run.WordFile {
		t.Fatalf("expected word_file %q, got %q", run.WordFile, wordFile)
	}
}
