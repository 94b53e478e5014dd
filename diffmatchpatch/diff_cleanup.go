// Copyright (c) 2012-2016 The go-diff authors. All rights reserved.
// https://github.com/sergi/go-diff
// See the included LICENSE file for license details.
//
// go-diff is a Go implementation of Google's Diff, Match, and Patch library
// Original library is Copyright (c) 2006 Google Inc.
// http://code.google.com/p/google-diff-match-patch/

package diffmatchpatch

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// equalityStack holds the positions of equalities that may still be
// eliminated during a cleanup pass.
type equalityStack []int

func (s *equalityStack) push(i int) { *s = append(*s, i) }

func (s *equalityStack) pop() {
	if len(*s) > 0 {
		*s = (*s)[:len(*s)-1]
	}
}

// top returns the most recent equality, or -1 if there is none.
func (s equalityStack) top() int {
	if len(s) == 0 {
		return -1
	}
	return s[len(s)-1]
}

func (s *equalityStack) reset() { *s = (*s)[:0] }

// editVolume counts the characters inserted and deleted on either side of
// the last equality seen by DiffCleanupSemantic.
type editVolume struct {
	insertionsBefore, deletionsBefore int
	insertionsAfter, deletionsAfter   int
}

// advance makes the edits after the last equality the edits before the
// new one.
func (v *editVolume) advance() {
	v.insertionsBefore, v.deletionsBefore = v.insertionsAfter, v.deletionsAfter
	v.insertionsAfter, v.deletionsAfter = 0, 0
}

func (v *editVolume) add(d Diff) {
	if d.Type == DiffInsert {
		v.insertionsAfter += utf8.RuneCountInString(d.Text)
	} else {
		v.deletionsAfter += utf8.RuneCountInString(d.Text)
	}
}

// dominates reports whether an equality of n characters is no longer than
// the edits on both of its sides.
func (v *editVolume) dominates(n int) bool {
	return n <= max(v.insertionsBefore, v.deletionsBefore) &&
		n <= max(v.insertionsAfter, v.deletionsAfter)
}

// DiffCleanupSemantic reduces the number of edits by eliminating semantically trivial equalities.
func (dmp *DiffMatchPatch) DiffCleanupSemantic(diffs []Diff) []Diff {
	changes := false
	equalities := make(equalityStack, 0, len(diffs))
	// Always equal to diffs[equalities.top()].Text
	var lastequality string
	var volume editVolume

	for pointer := 0; pointer < len(diffs); pointer++ {
		if diffs[pointer].Type == DiffEqual {
			// Equality found.
			equalities.push(pointer)
			volume.advance()
			lastequality = diffs[pointer].Text
			continue
		}

		// An insertion or deletion.
		volume.add(diffs[pointer])
		// Eliminate an equality that is smaller or equal to the edits on both sides of it.
		if n := utf8.RuneCountInString(lastequality); n > 0 && volume.dominates(n) {
			// Duplicate record.
			insPoint := equalities.top()
			diffs = splice(diffs, insPoint, 0, Diff{DiffDelete, lastequality})
			// Change second copy to insert.
			diffs[insPoint+1].Type = DiffInsert
			// Throw away the equality we just deleted.
			equalities.pop()
			// Throw away the previous equality (it needs to be reevaluated).
			equalities.pop()
			pointer = equalities.top()

			volume = editVolume{}
			lastequality = ""
			changes = true
		}
	}

	// Normalize the diff.
	if changes {
		diffs = dmp.DiffCleanupMerge(diffs)
	}
	diffs = dmp.DiffCleanupSemanticLossless(diffs)
	return dmp.diffExtractOverlaps(diffs)
}

// diffExtractOverlaps finds overlaps between deletions and insertions.
// e.g: <del>abcxxx</del><ins>xxxdef</ins>
//
//	-> <del>abc</del>xxx<ins>def</ins>
//
// e.g: <del>xxxabc</del><ins>defxxx</ins>
//
//	-> <ins>def</ins>xxx<del>abc</del>
//
// Only extract an overlap if it is as big as the edit ahead or behind it.
func (dmp *DiffMatchPatch) diffExtractOverlaps(diffs []Diff) []Diff {
	for pointer := 1; pointer < len(diffs); pointer++ {
		if diffs[pointer-1].Type != DiffDelete || diffs[pointer].Type != DiffInsert {
			continue
		}
		deletion := diffs[pointer-1].Text
		insertion := diffs[pointer].Text
		overlapLength1 := dmp.DiffCommonOverlap(deletion, insertion)
		overlapLength2 := dmp.DiffCommonOverlap(insertion, deletion)
		if overlapLength1 >= overlapLength2 {
			if halfOf(overlapLength1, deletion, insertion) {
				// Overlap found. Insert an equality and trim the surrounding edits.
				diffs = splice(diffs, pointer, 0, Diff{DiffEqual, insertion[:overlapLength1]})
				diffs[pointer-1].Text = deletion[:len(deletion)-overlapLength1]
				diffs[pointer+1].Text = insertion[overlapLength1:]
				pointer++
			}
		} else if halfOf(overlapLength2, deletion, insertion) {
			// Reverse overlap found. Insert an equality and swap and trim the surrounding edits.
			diffs = splice(diffs, pointer, 0, Diff{DiffEqual, deletion[:overlapLength2]})
			diffs[pointer-1] = Diff{DiffInsert, insertion[:len(insertion)-overlapLength2]}
			diffs[pointer+1] = Diff{DiffDelete, deletion[overlapLength2:]}
			pointer++
		}
		pointer++
	}
	return diffs
}

// halfOf reports whether an overlap of n bytes covers at least half of
// either edit.
func halfOf(n int, deletion, insertion string) bool {
	return n > 0 && (float64(n) >= float64(len(deletion))/2 || float64(n) >= float64(len(insertion))/2)
}

// Define some regex patterns for matching boundaries.
var (
	nonAlphaNumericRegex = regexp.MustCompile(`[^a-zA-Z0-9]`)
	whitespaceRegex      = regexp.MustCompile(`\s`)
	linebreakRegex       = regexp.MustCompile(`[\r\n]`)
	blanklineEndRegex    = regexp.MustCompile(`\n\r?\n$`)
	blanklineStartRegex  = regexp.MustCompile(`^\r?\n\r?\n`)
)

// diffCleanupSemanticScore computes a score representing whether the internal boundary falls on logical boundaries.
// Scores range from 6 (best) to 0 (worst).
func diffCleanupSemanticScore(one, two []rune) int {
	if len(one) == 0 || len(two) == 0 {
		// Edges are the best.
		return 6
	}

	// Each port of this function behaves slightly differently due to subtle differences in each language's definition of things like 'whitespace'.  Since this function's purpose is largely cosmetic, the choice has been made to use each language's native features rather than force total conformity.
	char1 := string(one[len(one)-1])
	char2 := string(two[0])

	nonAlphaNumeric1 := nonAlphaNumericRegex.MatchString(char1)
	nonAlphaNumeric2 := nonAlphaNumericRegex.MatchString(char2)
	whitespace1 := nonAlphaNumeric1 && whitespaceRegex.MatchString(char1)
	whitespace2 := nonAlphaNumeric2 && whitespaceRegex.MatchString(char2)
	lineBreak1 := whitespace1 && linebreakRegex.MatchString(char1)
	lineBreak2 := whitespace2 && linebreakRegex.MatchString(char2)
	// Only the last three runes of one and the first four of two can form a blank line.
	blankLine1 := lineBreak1 && blanklineEndRegex.MatchString(string(one[max(0, len(one)-3):]))
	blankLine2 := lineBreak2 && blanklineStartRegex.MatchString(string(two[:min(len(two), 4)]))

	if blankLine1 || blankLine2 {
		// Five points for blank lines.
		return 5
	} else if lineBreak1 || lineBreak2 {
		// Four points for line breaks.
		return 4
	} else if nonAlphaNumeric1 && !whitespace1 && whitespace2 {
		// Three points for end of sentences.
		return 3
	} else if whitespace1 || whitespace2 {
		// Two points for whitespace.
		return 2
	} else if nonAlphaNumeric1 || nonAlphaNumeric2 {
		// One point for non-alphanumeric.
		return 1
	}
	return 0
}

// DiffCleanupSemanticLossless looks for single edits surrounded on both sides by equalities which can be shifted sideways to align the edit to a word boundary.
// E.g: The c<ins>at c</ins>ame. -> The <ins>cat </ins>came.
func (dmp *DiffMatchPatch) DiffCleanupSemanticLossless(diffs []Diff) []Diff {
	// Intentionally ignore the first and last element (don't need checking).
	for pointer := 1; pointer < len(diffs)-1; pointer++ {
		if diffs[pointer-1].Type != DiffEqual || diffs[pointer+1].Type != DiffEqual {
			continue
		}
		// This is a single edit surrounded by equalities.
		equality1 := []rune(diffs[pointer-1].Text)
		edit := []rune(diffs[pointer].Text)
		equality2 := []rune(diffs[pointer+1].Text)

		// Sliding the edit never changes the concatenation of the three
		// texts, only where it is cut: text[:a] | text[a:b] | text[b:].
		text := make([]rune, 0, len(equality1)+len(edit)+len(equality2))
		text = append(append(append(text, equality1...), edit...), equality2...)
		a := len(equality1)
		b := a + len(edit)

		// First, shift the edit as far left as possible.
		commonOffset := commonSuffixLength(equality1, edit)
		a -= commonOffset
		b -= commonOffset

		// Second, step character by character right, looking for the best fit.
		bestA, bestB := a, b
		bestScore := diffCleanupSemanticScore(text[:a], text[a:b]) + diffCleanupSemanticScore(text[a:b], text[b:])
		for a < b && b < len(text) && text[a] == text[b] {
			a++
			b++
			score := diffCleanupSemanticScore(text[:a], text[a:b]) + diffCleanupSemanticScore(text[a:b], text[b:])
			// The >= encourages trailing rather than leading whitespace on edits.
			if score >= bestScore {
				bestScore = score
				bestA, bestB = a, b
			}
		}

		if bestA == len(equality1) {
			continue
		}
		// We have an improvement, save it back to the diff.
		if bestA != 0 {
			diffs[pointer-1].Text = string(text[:bestA])
		} else {
			diffs = splice(diffs, pointer-1, 1)
			pointer--
		}
		diffs[pointer].Text = string(text[bestA:bestB])
		if bestB != len(text) {
			diffs[pointer+1].Text = string(text[bestB:])
		} else {
			diffs = splice(diffs, pointer+1, 1)
			pointer--
		}
	}

	return diffs
}

// DiffCleanupEfficiency reduces the number of edits by eliminating operationally trivial equalities.
func (dmp *DiffMatchPatch) DiffCleanupEfficiency(diffs []Diff) []Diff {
	changes := false
	equalities := make(equalityStack, 0, len(diffs))
	// Always equal to diffs[equalities.top()].Text
	lastequality := ""
	// Is there an insertion or a deletion operation before the last equality.
	preIns, preDel := false, false
	// Is there an insertion or a deletion operation after the last equality.
	postIns, postDel := false, false

	for pointer := 0; pointer < len(diffs); pointer++ {
		if diffs[pointer].Type == DiffEqual {
			// Equality found.
			if utf8.RuneCountInString(diffs[pointer].Text) < dmp.DiffEditCost && (postIns || postDel) {
				// Candidate found.
				equalities.push(pointer)
				preIns = postIns
				preDel = postDel
				lastequality = diffs[pointer].Text
			} else {
				// Not a candidate, and can never become one.
				equalities.reset()
				lastequality = ""
			}
			postIns = false
			postDel = false
			continue
		}

		// An insertion or deletion.
		if diffs[pointer].Type == DiffDelete {
			postDel = true
		} else {
			postIns = true
		}

		// Five types to be split:
		// <ins>A</ins><del>B</del>XY<ins>C</ins><del>D</del>
		// <ins>A</ins>X<ins>C</ins><del>D</del>
		// <ins>A</ins><del>B</del>X<ins>C</ins>
		// <ins>A</del>X<ins>C</ins><del>D</del>
		// <ins>A</ins><del>B</del>X<del>C</del>
		sides := 0
		for _, b := range []bool{preIns, preDel, postIns, postDel} {
			if b {
				sides++
			}
		}
		if len(lastequality) == 0 {
			continue
		}
		if !(sides == 4 || (utf8.RuneCountInString(lastequality) < dmp.DiffEditCost/2 && sides == 3)) {
			continue
		}

		insPoint := equalities.top()
		// Duplicate record.
		diffs = splice(diffs, insPoint, 0, Diff{DiffDelete, lastequality})
		// Change second copy to insert.
		diffs[insPoint+1].Type = DiffInsert
		// Throw away the equality we just deleted.
		equalities.pop()
		lastequality = ""

		if preIns && preDel {
			// No changes made which could affect previous entry, keep going.
			postIns = true
			postDel = true
			equalities.reset()
		} else {
			// Throw away the previous equality.
			equalities.pop()
			pointer = equalities.top()
			postIns = false
			postDel = false
		}
		changes = true
	}

	if changes {
		diffs = dmp.DiffCleanupMerge(diffs)
	}

	return diffs
}

// DiffCleanupMerge reorders and merges like edit sections. Merge equalities.
// Any edit section can move as long as it doesn't cross an equality.
func (dmp *DiffMatchPatch) DiffCleanupMerge(diffs []Diff) []Diff {
	// Add a dummy entry at the end.
	diffs = append(diffs, Diff{DiffEqual, ""})
	pointer := 0
	countDelete := 0
	countInsert := 0
	var textDelete, textInsert []rune

	for pointer < len(diffs) {
		switch diffs[pointer].Type {
		case DiffInsert:
			countInsert++
			textInsert = append(textInsert, []rune(diffs[pointer].Text)...)
			pointer++
			continue
		case DiffDelete:
			countDelete++
			textDelete = append(textDelete, []rune(diffs[pointer].Text)...)
			pointer++
			continue
		}

		// Empty equalities vanish so the edits around them can be merged.
		if diffs[pointer].Text == "" && pointer != len(diffs)-1 {
			diffs = splice(diffs, pointer, 1)
			continue
		}

		// Upon reaching an equality, check for prior redundancies.
		count := countDelete + countInsert
		if count > 1 || (count == 1 && len(textDelete)+len(textInsert) == 0) {
			start := pointer - count
			if len(textDelete) != 0 && len(textInsert) != 0 {
				// Factor out any common prefixes.
				if n := commonPrefixLength(textInsert, textDelete); n != 0 {
					if start > 0 && diffs[start-1].Type == DiffEqual {
						diffs[start-1].Text += string(textInsert[:n])
					} else {
						diffs = splice(diffs, 0, 0, Diff{DiffEqual, string(textInsert[:n])})
						start++
						pointer++
					}
					textInsert = textInsert[n:]
					textDelete = textDelete[n:]
				}
				// Factor out any common suffixes.
				if n := commonSuffixLength(textInsert, textDelete); n != 0 {
					diffs[pointer].Text = string(textInsert[len(textInsert)-n:]) + diffs[pointer].Text
					textInsert = textInsert[:len(textInsert)-n]
					textDelete = textDelete[:len(textDelete)-n]
				}
			}
			// Delete the offending records and add the merged ones.
			merged := make([]Diff, 0, 2)
			if len(textDelete) != 0 {
				merged = append(merged, Diff{DiffDelete, string(textDelete)})
			}
			if len(textInsert) != 0 {
				merged = append(merged, Diff{DiffInsert, string(textInsert)})
			}
			diffs = splice(diffs, start, count, merged...)
			pointer = start + len(merged)
		}

		if pointer != 0 && diffs[pointer-1].Type == DiffEqual {
			// Merge this equality with the previous one.
			diffs[pointer-1].Text += diffs[pointer].Text
			diffs = splice(diffs, pointer, 1)
		} else {
			pointer++
		}
		countInsert = 0
		countDelete = 0
		textDelete = nil
		textInsert = nil
	}

	if last := len(diffs) - 1; last >= 0 && diffs[last].Type == DiffEqual && diffs[last].Text == "" {
		diffs = diffs[:last] // Remove the dummy entry at the end.
	}

	// Second pass: look for single edits surrounded on both sides by equalities which can be shifted sideways to eliminate an equality. E.g: A<ins>BA</ins>C -> <ins>AB</ins>AC
	changes := false
	// Intentionally ignore the first and last element (don't need checking).
	for pointer = 1; pointer < len(diffs)-1; pointer++ {
		if diffs[pointer-1].Type != DiffEqual || diffs[pointer+1].Type != DiffEqual {
			continue
		}
		// This is a single edit surrounded by equalities.
		prev, edit, next := diffs[pointer-1].Text, diffs[pointer].Text, diffs[pointer+1].Text
		if strings.HasSuffix(edit, prev) {
			// Shift the edit over the previous equality.
			diffs[pointer].Text = prev + edit[:len(edit)-len(prev)]
			diffs[pointer+1].Text = prev + next
			diffs = splice(diffs, pointer-1, 1)
			changes = true
		} else if strings.HasPrefix(edit, next) {
			// Shift the edit over the next equality.
			diffs[pointer-1].Text += next
			diffs[pointer].Text = edit[len(next):] + next
			diffs = splice(diffs, pointer+1, 1)
			changes = true
		}
	}

	// If shifts were made, the diff needs reordering and another shift sweep.
	if changes {
		diffs = dmp.DiffCleanupMerge(diffs)
	}

	return diffs
}
