package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Format selects how a combination is rendered.
type Format string

const (
	// FormatList renders each combination as a JSON array of word groups,
	// the whole result wrapped in one outer array.
	FormatList Format = "list"
	// FormatCSV renders one combination per line, groups comma-separated,
	// anagrams joined with '|'.
	FormatCSV Format = "csv"
)

// ParseFormat validates a format name. Empty means FormatList.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatList:
		return FormatList, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// encoder writes combinations in one format. It tracks whether an element
// has been written so list separators come out right.
type encoder struct {
	w      io.Writer
	format Format
	n      int
}

func (e *encoder) open() error {
	if e.format != FormatList {
		return nil
	}
	_, err := io.WriteString(e.w, "[")
	return err
}

func (e *encoder) write(groups [][]string) error {
	switch e.format {
	case FormatCSV:
		parts := make([]string, len(groups))
		for i, g := range groups {
			parts[i] = strings.Join(g, "|")
		}
		e.n++
		_, err := fmt.Fprintln(e.w, strings.Join(parts, ","))
		return err
	default:
		b, err := json.Marshal(groups)
		if err != nil {
			return fmt.Errorf("marshal combination: %w", err)
		}
		sep := ",\n  "
		if e.n == 0 {
			sep = "\n  "
		}
		e.n++
		_, err = fmt.Fprintf(e.w, "%s%s", sep, b)
		return err
	}
}

func (e *encoder) close() error {
	if e.format != FormatList {
		return nil
	}
	end := "]\n"
	if e.n > 0 {
		end = "\n]\n"
	}
	_, err := io.WriteString(e.w, end)
	return err
}
