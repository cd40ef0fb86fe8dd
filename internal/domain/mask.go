package domain

import (
	"fmt"
	"math/bits"
	"strings"
)

// WordLength is the number of characters every eligible word has.
const WordLength = 5

// LetterMask is a letter-presence bitmask: bit i is set iff the letter 'a'+i
// occurs in the source word. Only the low 26 bits are significant.
type LetterMask uint32

// MaskOf computes the letter mask of word. Characters are ASCII-lowercased
// first; anything outside 'a'..'z' fails with ErrInvalidLetter. A repeated
// letter leaves its bit set, so Len may be smaller than len(word).
func MaskOf(word string) (LetterMask, error) {
	var m LetterMask
	for i := 0; i < len(word); i++ {
		c := word[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c < 'a' || c > 'z' {
			return 0, fmt.Errorf("%w: %q in %q", ErrInvalidLetter, c, word)
		}
		m |= 1 << (c - 'a')
	}
	return m, nil
}

// Disjoint reports whether m and o share no letter.
func (m LetterMask) Disjoint(o LetterMask) bool {
	return m&o == 0
}

// Len returns the number of distinct letters in m.
func (m LetterMask) Len() int {
	return bits.OnesCount32(uint32(m))
}

// Letters returns the letters of m in alphabetical order.
func (m LetterMask) Letters() string {
	var b strings.Builder
	b.Grow(m.Len())
	for i := 0; i < 26; i++ {
		if m&(1<<i) != 0 {
			b.WriteByte(byte('a' + i))
		}
	}
	return b.String()
}

func (m LetterMask) String() string {
	return m.Letters()
}

// MaskClass is an anagram group: a distinct mask and every eligible word
// producing it. Words are kept sorted.
type MaskClass struct {
	Mask  LetterMask
	Words []string
}
