// Package wordlist reads newline-delimited word files.
// Pure function: file path in, normalized lines out. No search logic.
package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/heartmarshall/fivewords/internal/domain"
)

// maxLineSize bounds a single scanned line; longer lines fail the read.
const maxLineSize = 1024 * 1024

// Result holds the lines read from a word list.
type Result struct {
	Lines []string
	Stats Stats
}

// Stats holds reader statistics for logging.
type Stats struct {
	TotalLines int
	EmptyLines int
}

// ReadFile opens path and reads it with Read.
func ReadFile(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open word file: %w", err)
	}
	defer f.Close()

	res, err := Read(f)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	return res, nil
}

// Read returns every non-empty line of r, normalized with domain.NormalizeWord.
// Validation of the words themselves is left to the index.
func Read(r io.Reader) (Result, error) {
	var res Result

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		res.Stats.TotalLines++
		line := domain.NormalizeWord(scanner.Text())
		if line == "" {
			res.Stats.EmptyLines++
			continue
		}
		res.Lines = append(res.Lines, line)
	}

	if err := scanner.Err(); err != nil {
		return Result{}, fmt.Errorf("scanner error: %w", err)
	}

	return res, nil
}
