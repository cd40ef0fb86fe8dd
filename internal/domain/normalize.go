package domain

import (
	"strings"
)

// NormalizeWord prepares a raw word-list line for indexing:
//   - trims leading/trailing whitespace (including a trailing '\r')
//   - converts to lowercase
//
// Inner characters are left alone; MaskOf rejects anything that is not a letter.
func NormalizeWord(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}
	return strings.ToLower(line)
}
