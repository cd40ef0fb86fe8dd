package wordlist

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	res, err := ReadFile(testdataPath(t, "small.txt"))
	require.NoError(t, err)

	assert.Equal(t, 13, res.Stats.TotalLines)
	assert.Equal(t, 1, res.Stats.EmptyLines)
	assert.Len(t, res.Lines, 12)
	assert.Equal(t, "fjord", res.Lines[0])
	assert.Contains(t, res.Lines, "stare", "lines are lowercased")
}

func TestReadFile_CRLF(t *testing.T) {
	t.Parallel()

	res, err := ReadFile(testdataPath(t, "crlf.txt"))
	require.NoError(t, err)
	assert.Equal(t, []string{"fjord", "gucks"}, res.Lines)
}

func TestReadFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := ReadFile(testdataPath(t, "does-not-exist.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open word file")
}

func TestRead_Empty(t *testing.T) {
	t.Parallel()

	res, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, res.Lines)
	assert.Zero(t, res.Stats.TotalLines)
}

func TestRead_NoTrailingNewline(t *testing.T) {
	t.Parallel()

	res, err := Read(strings.NewReader("waltz\n  nymph  "))
	require.NoError(t, err)
	assert.Equal(t, []string{"waltz", "nymph"}, res.Lines)
}
