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
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func pretty(diffs []Diff) string {
	var w strings.Builder

	for i, diff := range diffs {
		_, _ = w.WriteString(fmt.Sprintf("%v. %v: %v\n", i, diff.Type, diff.Text))
	}

	return w.String()
}

func diffRebuildTexts(diffs []Diff) []string {
	texts := []string{"", ""}

	for _, d := range diffs {
		if d.Type != DiffInsert {
			texts[0] += d.Text
		}
		if d.Type != DiffDelete {
			texts[1] += d.Text
		}
	}

	return texts
}

// speedtestTexts returns two long, related texts: the second is the first
// with every seventh line shouted and every eleventh line dropped.
func speedtestTexts() (s1 string, s2 string) {
	var b1, b2 strings.Builder

	for i := 0; i < 2000; i++ {
		line := fmt.Sprintf("%d. The quick brown fox jumps over the lazy dog %d times.\n", i, i*i%97)
		b1.WriteString(line)
		switch {
		case i%11 == 0:
		case i%7 == 0:
			b2.WriteString(strings.ToUpper(line))
		default:
			b2.WriteString(line)
		}
	}

	return b1.String(), b2.String()
}

// randomText returns up to n runes drawn from alphabet.
func randomText(r *rand.Rand, alphabet []rune, n int) string {
	runes := make([]rune, r.Intn(n+1))
	for i := range runes {
		runes[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(runes)
}

// mutate applies a few random insertions and deletions to text.
func mutate(r *rand.Rand, alphabet []rune, text string) string {
	runes := []rune(text)
	for edits := 1 + r.Intn(3); edits > 0; edits-- {
		at := r.Intn(len(runes) + 1)
		if r.Intn(2) == 0 || at == len(runes) {
			insert := []rune(randomText(r, alphabet, 5))
			runes = append(runes[:at], append(insert, runes[at:]...)...)
		} else {
			end := min(len(runes), at+1+r.Intn(5))
			runes = append(runes[:at], runes[end:]...)
		}
	}
	return string(runes)
}

func TestNew(t *testing.T) {
	dmp := New()

	assert.Equal(t, time.Second, dmp.DiffTimeout)
	assert.Equal(t, 4, dmp.DiffEditCost)
	assert.Equal(t, 0.5, dmp.MatchThreshold)
	assert.Equal(t, 1000, dmp.MatchDistance)
	assert.Equal(t, 0.5, dmp.PatchDeleteThreshold)
	assert.Equal(t, 4, dmp.PatchMargin)
	assert.Equal(t, 32, dmp.MatchMaxBits)
}

func TestDeadline(t *testing.T) {
	dmp := New()

	dmp.DiffTimeout = 0
	assert.True(t, dmp.deadline().IsZero())

	dmp.DiffTimeout = -time.Second
	assert.True(t, dmp.deadline().IsZero())

	dmp.DiffTimeout = time.Hour
	assert.True(t, dmp.deadline().After(time.Now()))
}

func TestPretty(t *testing.T) {
	assert.Equal(t, "0. Equal: a\n1. Delete: b\n2. Insert: c\n", pretty([]Diff{{DiffEqual, "a"}, {DiffDelete, "b"}, {DiffInsert, "c"}}))
}
