package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/fivewords/internal/domain"
)

func mask(t *testing.T, word string) domain.LetterMask {
	t.Helper()
	m, err := domain.MaskOf(word)
	require.NoError(t, err)
	return m
}

func TestBuild_RejectsRepeatedLetters(t *testing.T) {
	t.Parallel()

	idx := Build([]string{"aabcd"}, Options{})

	assert.Zero(t, idx.Len())
	assert.Equal(t, 1, idx.Stats().RepeatedLetters)
	assert.Empty(t, idx.Classes())
}

func TestBuild_AllowDuplicateLetters(t *testing.T) {
	t.Parallel()

	idx := Build([]string{"aabcd"}, Options{AllowDuplicateLetters: true})

	require.Equal(t, 1, idx.Len())
	c := idx.Classes()[0]
	assert.Equal(t, 4, c.Mask.Len())
	assert.Equal(t, []string{"aabcd"}, c.Words)
}

func TestBuild_DropsIneligibleLines(t *testing.T) {
	t.Parallel()

	lines := []string{"fjord", "toolong", "abc", "", "don't", "ab1cd", "apple", "waltz"}
	idx := Build(lines, Options{})

	stats := idx.Stats()
	assert.Equal(t, len(lines), stats.Lines)
	assert.Equal(t, 3, stats.WrongLength)
	assert.Equal(t, 1, stats.RepeatedLetters)
	assert.Equal(t, 2, stats.InvalidChars)
	assert.Equal(t, 2, stats.Eligible)
	assert.Equal(t, 2, stats.Classes)
}

func TestBuild_AnagramGrouping(t *testing.T) {
	t.Parallel()

	idx := Build([]string{"stare", "rates", "waltz", "aster", "rates"}, Options{})

	require.Equal(t, 2, idx.Len())
	assert.Equal(t, []string{"aster", "rates", "stare"}, idx.Words(mask(t, "tears")))
	assert.Equal(t, []string{"waltz"}, idx.Words(mask(t, "waltz")))
	assert.Nil(t, idx.Words(mask(t, "fjord")))
}

func TestBuild_SortedByMask(t *testing.T) {
	t.Parallel()

	idx := Build([]string{"waltz", "fjord", "vibex", "nymph", "gucks"}, Options{})

	masks := idx.Masks()
	require.Len(t, masks, 5)
	for i := 1; i < len(masks); i++ {
		assert.Less(t, masks[i-1], masks[i])
	}
}

func TestBuild_Empty(t *testing.T) {
	t.Parallel()

	idx := Build(nil, Options{})
	assert.Zero(t, idx.Len())
	assert.Equal(t, Stats{}, idx.Stats())
}

func TestIndex_WordGroupsAndExpansions(t *testing.T) {
	t.Parallel()

	idx := Build([]string{"fjord", "gucks", "nymph", "vibex", "waltz", "vibes"}, Options{})
	c := domain.NewCombination([5]domain.LetterMask{
		mask(t, "fjord"), mask(t, "gucks"), mask(t, "nymph"), mask(t, "vibex"), mask(t, "waltz"),
	})

	groups := idx.WordGroups(c)
	require.Len(t, groups, 5)
	for _, g := range groups {
		assert.Len(t, g, 1)
	}
	assert.Equal(t, 1, idx.Expansions(c))

	withAnagrams := Build([]string{"fjord", "gucks", "nymph", "vibex", "waltz", "zwalt"}, Options{})
	assert.Equal(t, 2, withAnagrams.Expansions(c))
}
