// Copyright (c) 2012-2016 The go-diff authors. All rights reserved.
// https://github.com/sergi/go-diff
// See the included LICENSE file for license details.
//
// go-diff is a Go implementation of Google's Diff, Match, and Patch library
// Original library is Copyright (c) 2006 Google Inc.
// http://code.google.com/p/google-diff-match-patch/

package diffmatchpatch

import (
	"strings"
	"unicode/utf8"
)

// index is the number a distinct line is coalesced to. Indexes are carried
// through the diff engine as runes, so the surrogate block is skipped.
type index uint32

const (
	runeSkipStart = 0xd800
	runeSkipEnd   = 0xe000   // exclusive
	runeMax       = 0x110000 // exclusive
)

// indexCapacity is the number of distinct indexes that map to valid runes.
const indexCapacity = runeMax - (runeSkipEnd - runeSkipStart)

func (i index) rune() rune {
	if i >= runeSkipStart {
		return rune(i) + (runeSkipEnd - runeSkipStart)
	}
	return rune(i)
}

func runeToIndex(r rune) index {
	if r >= runeSkipEnd {
		return index(r - (runeSkipEnd - runeSkipStart))
	}
	return index(r)
}

func indexesToString(indexes []index) string {
	var b strings.Builder
	b.Grow(len(indexes))
	for _, i := range indexes {
		b.WriteRune(i.rune())
	}
	return b.String()
}

func stringToIndex(text string) []index {
	indexes := make([]index, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		indexes = append(indexes, runeToIndex(r))
	}
	return indexes
}

// lineCoalescer assigns each distinct line an index, shared across the two
// texts being compared.
type lineCoalescer struct {
	// lines[i] is the line encoded as index i. Index 0 is never handed out.
	lines []string
	seen  map[string]index
}

func newLineCoalescer() *lineCoalescer {
	return &lineCoalescer{
		lines: []string{""},
		seen:  make(map[string]index),
	}
}

// encode splits text into lines, each keeping its trailing '\n', and returns
// their indexes. Once limit distinct lines exist, the remainder of text is
// treated as a single final line.
func (c *lineCoalescer) encode(text string, limit int) []index {
	var indexes []index
	lineStart := 0
	for lineStart < len(text) {
		lineEnd := len(text)
		if len(c.lines) < limit-1 {
			if i := strings.IndexByte(text[lineStart:], '\n'); i != -1 {
				lineEnd = lineStart + i + 1
			}
		}
		line := text[lineStart:lineEnd]
		lineStart = lineEnd

		i, ok := c.seen[line]
		if !ok {
			c.lines = append(c.lines, line)
			i = index(len(c.lines) - 1)
			c.seen[line] = i
		}
		indexes = append(indexes, i)
	}
	return indexes
}

// DiffLinesToChars splits two texts into a list of strings, and reduces the texts to a string of hashes where each Unicode character represents one line.
// It's slightly faster to call DiffLinesToRunes first, followed by DiffMainRunes.
func (dmp *DiffMatchPatch) DiffLinesToChars(text1, text2 string) (string, string, []string) {
	indexes1, indexes2, lines := dmp.diffLinesToIndexes(text1, text2)
	return indexesToString(indexes1), indexesToString(indexes2), lines
}

// DiffLinesToRunes splits two texts into a list of runes.
func (dmp *DiffMatchPatch) DiffLinesToRunes(text1, text2 string) ([]rune, []rune, []string) {
	indexes1, indexes2, lines := dmp.diffLinesToIndexes(text1, text2)
	return indexesToRunes(indexes1), indexesToRunes(indexes2), lines
}

func (dmp *DiffMatchPatch) diffLinesToIndexes(text1, text2 string) ([]index, []index, []string) {
	c := newLineCoalescer()
	// text1 leaves a third of the index space to text2.
	indexes1 := c.encode(text1, indexCapacity*2/3)
	indexes2 := c.encode(text2, indexCapacity)
	return indexes1, indexes2, c.lines
}

func indexesToRunes(indexes []index) []rune {
	runes := make([]rune, len(indexes))
	for n, i := range indexes {
		runes[n] = i.rune()
	}
	return runes
}

// DiffCharsToLines rehydrates the text in a diff from a string of line hashes to real lines of text.
func (dmp *DiffMatchPatch) DiffCharsToLines(diffs []Diff, lineArray []string) []Diff {
	for n, aDiff := range diffs {
		var text strings.Builder
		for _, i := range stringToIndex(aDiff.Text) {
			text.WriteString(lineArray[i])
		}
		diffs[n].Text = text.String()
	}
	return diffs
}
