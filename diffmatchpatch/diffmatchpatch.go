// Copyright (c) 2012-2016 The go-diff authors. All rights reserved.
// https://github.com/sergi/go-diff
// See the included LICENSE file for license details.
//
// go-diff is a Go implementation of Google's Diff, Match, and Patch library
// Original library is Copyright (c) 2006 Google Inc.
// http://code.google.com/p/google-diff-match-patch/

// Package diffmatchpatch offers robust algorithms to perform the
// operations required for synchronizing plain text: computing an edit
// script between two texts, locating a pattern near an expected position,
// and applying hunks of edits to a text that may have drifted.
package diffmatchpatch

import (
	"time"
)

// DiffMatchPatch holds the configuration for diff-match-patch operations.
// The zero value is not useful; start from New and adjust fields.
// A DiffMatchPatch is safe for concurrent use as long as its fields are
// not modified.
type DiffMatchPatch struct {
	// Time budget for a single diff computation (0 or less for unlimited).
	DiffTimeout time.Duration
	// Cost of an empty edit operation in terms of edit characters.
	DiffEditCost int
	// How far to search for a match (0 = exact location, 1000+ = broad match).
	// A match this many characters away from the expected location will add
	// 1.0 to the score (0.0 is a perfect match).
	MatchDistance int
	// When deleting a large block of text (over ~64 characters), how close do
	// the contents have to be to match the expected contents. (0.0 = perfection,
	// 1.0 = very loose).  Note that MatchThreshold controls how closely the
	// end points of a delete need to match.
	PatchDeleteThreshold float64
	// Chunk size for context length.
	PatchMargin int
	// The longest pattern the fuzzy matcher accepts.
	MatchMaxBits int
	// At what point is no match declared (0.0 = perfection, 1.0 = very loose).
	MatchThreshold float64
}

// Default configuration values used by New.
const (
	DefaultDiffTimeout          = time.Second
	DefaultDiffEditCost         = 4
	DefaultMatchThreshold       = 0.5
	DefaultMatchDistance        = 1000
	DefaultPatchDeleteThreshold = 0.5
	DefaultPatchMargin          = 4
	DefaultMatchMaxBits         = 32
)

// New creates a new DiffMatchPatch object with default parameters.
func New() *DiffMatchPatch {
	return &DiffMatchPatch{
		DiffTimeout:          DefaultDiffTimeout,
		DiffEditCost:         DefaultDiffEditCost,
		MatchThreshold:       DefaultMatchThreshold,
		MatchDistance:        DefaultMatchDistance,
		PatchDeleteThreshold: DefaultPatchDeleteThreshold,
		PatchMargin:          DefaultPatchMargin,
		MatchMaxBits:         DefaultMatchMaxBits,
	}
}

// deadline converts DiffTimeout into an absolute point in time. The zero
// time means the diff may run for as long as it needs.
func (dmp *DiffMatchPatch) deadline() time.Time {
	if dmp.DiffTimeout <= 0 {
		return time.Time{}
	}
	return time.Now().Add(dmp.DiffTimeout)
}
