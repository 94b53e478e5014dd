// Copyright (c) 2012-2016 The go-diff authors. All rights reserved.
// https://github.com/sergi/go-diff
// See the included LICENSE file for license details.
//
// go-diff is a Go implementation of Google's Diff, Match, and Patch library
// Original library is Copyright (c) 2006 Google Inc.
// http://code.google.com/p/google-diff-match-patch/

package diffmatchpatch

import (
	"fmt"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestIndexConversion(t *testing.T) {
	n := runeMax - (runeSkipEnd - runeSkipStart)
	indexes := make([]index, n)
	for i := 0; i < n; i++ {
		indexes[i] = index(i)
	}
	s := indexesToString(indexes)
	assert.True(t, utf8.ValidString(s))

	indexes2 := stringToIndex(s)
	assert.EqualValues(t, indexes, indexes2)
}

func TestIndexSkipsSurrogates(t *testing.T) {
	assert.Equal(t, rune(runeSkipStart-1), index(runeSkipStart-1).rune())
	assert.Equal(t, rune(runeSkipEnd), index(runeSkipStart).rune())
	assert.Equal(t, index(runeSkipStart), runeToIndex(runeSkipEnd))
	assert.Equal(t, rune(utf8.MaxRune), index(indexCapacity-1).rune())
}

func TestLineCoalescerLimit(t *testing.T) {
	type TestCase struct {
		Name  string
		Text  string
		Limit int

		ExpectedIndexes []index
		ExpectedLines   []string
	}

	for i, tc := range []TestCase{
		{
			Name:            "Under the limit",
			Text:            "a\nb\na\n",
			Limit:           10,
			ExpectedIndexes: []index{1, 2, 1},
			ExpectedLines:   []string{"", "a\n", "b\n"},
		},
		{
			Name:            "Remainder becomes one line",
			Text:            "a\nb\nc\nd\n",
			Limit:           4,
			ExpectedIndexes: []index{1, 2, 3},
			ExpectedLines:   []string{"", "a\n", "b\n", "c\nd\n"},
		},
		{
			Name:            "No trailing newline",
			Text:            "a\nb",
			Limit:           10,
			ExpectedIndexes: []index{1, 2},
			ExpectedLines:   []string{"", "a\n", "b"},
		},
	} {
		c := newLineCoalescer()
		actual := c.encode(tc.Text, tc.Limit)
		assert.Equal(t, tc.ExpectedIndexes, actual, fmt.Sprintf("Test case #%d, %s", i, tc.Name))
		assert.Equal(t, tc.ExpectedLines, c.lines, fmt.Sprintf("Test case #%d, %s", i, tc.Name))
	}
}

func TestLineCoalescerSharedAcrossTexts(t *testing.T) {
	c := newLineCoalescer()

	// The second text reuses the indexes of lines seen in the first.
	assert.Equal(t, []index{1, 2}, c.encode("x\ny\n", indexCapacity))
	assert.Equal(t, []index{2, 3, 1}, c.encode("y\nz\nx\n", indexCapacity))
	assert.Equal(t, []string{"", "x\n", "y\n", "z\n"}, c.lines)
}
