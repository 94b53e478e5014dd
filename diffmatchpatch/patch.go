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
	"strconv"
	"strings"
)

// Patch represents one patch operation.
// Start and length fields are byte offsets into the source (1) and
// destination (2) texts.
type Patch struct {
	diffs   []Diff
	Start1  int
	Start2  int
	Length1 int
	Length2 int
}

// Diffs returns the edit script carried by the patch, context included.
func (p *Patch) Diffs() []Diff {
	return p.diffs
}

// String emulates GNU diff's format.
// Header: @@ -382,8 +481,9 @@
// Indices are printed as 1-based, not 0-based.
func (p *Patch) String() string {
	var text strings.Builder
	_, _ = text.WriteString("@@ -" + patchCoords(p.Start1, p.Length1) + " +" + patchCoords(p.Start2, p.Length2) + " @@\n")

	// Escape the body of the patch with %xx notation.
	for _, aDiff := range p.diffs {
		switch aDiff.Type {
		case DiffInsert:
			_ = text.WriteByte('+')
		case DiffDelete:
			_ = text.WriteByte('-')
		case DiffEqual:
			_ = text.WriteByte(' ')
		}

		_, _ = text.WriteString(escapeText(aDiff.Text))
		_ = text.WriteByte('\n')
	}

	return text.String()
}

func patchCoords(start, length int) string {
	switch length {
	case 0:
		return strconv.Itoa(start) + ",0"
	case 1:
		return strconv.Itoa(start + 1)
	default:
		return strconv.Itoa(start+1) + "," + strconv.Itoa(length)
	}
}

// PatchAddContext increases the context until it is unique, but doesn't let the pattern expand beyond MatchMaxBits.
func (dmp *DiffMatchPatch) PatchAddContext(patch Patch, text string) Patch {
	if len(text) == 0 {
		return patch
	}

	pattern := text[patch.Start2 : patch.Start2+patch.Length1]
	padding := 0

	// Look for the first and last matches of pattern in text.  If two different matches are found, increase the pattern length.
	for strings.Index(text, pattern) != strings.LastIndex(text, pattern) &&
		len(pattern) < dmp.MatchMaxBits-2*dmp.PatchMargin {
		padding += dmp.PatchMargin
		maxStart := runeStart(text, max(0, patch.Start2-padding))
		minEnd := runeEnd(text, min(len(text), patch.Start2+patch.Length1+padding))
		pattern = text[maxStart:minEnd]
	}
	// Add one chunk for good luck.
	padding += dmp.PatchMargin

	// Add the prefix.
	prefix := text[runeStart(text, max(0, patch.Start2-padding)):patch.Start2]
	if len(prefix) != 0 {
		patch.diffs = append([]Diff{{DiffEqual, prefix}}, patch.diffs...)
	}
	// Add the suffix.
	suffixStart := patch.Start2 + patch.Length1
	suffix := text[suffixStart:runeEnd(text, min(len(text), suffixStart+padding))]
	if len(suffix) != 0 {
		patch.diffs = append(patch.diffs, Diff{DiffEqual, suffix})
	}

	// Roll back the start points.
	patch.Start1 -= len(prefix)
	patch.Start2 -= len(prefix)
	// Extend the lengths.
	patch.Length1 += len(prefix) + len(suffix)
	patch.Length2 += len(prefix) + len(suffix)

	return patch
}

// PatchMake computes a list of patches.
// It accepts (text1, text2 string), (diffs []Diff) or (text1 string, diffs []Diff).
// The deprecated (text1, text2 string, diffs []Diff) form is accepted as well.
// Unrecognised arguments yield an empty list.
func (dmp *DiffMatchPatch) PatchMake(opt ...interface{}) []Patch {
	switch len(opt) {
	case 1:
		diffs, _ := opt[0].([]Diff)
		return dmp.PatchMakeDiffs(diffs)
	case 2:
		text1, ok := opt[0].(string)
		if !ok {
			break
		}
		switch t := opt[1].(type) {
		case string:
			return dmp.PatchMakeText(text1, t)
		case []Diff:
			return dmp.patchMake2(text1, t)
		}
	case 3:
		return dmp.PatchMake(opt[0], opt[2])
	}
	return []Patch{}
}

// PatchMakeText computes the patches that turn text1 into text2.
func (dmp *DiffMatchPatch) PatchMakeText(text1, text2 string) []Patch {
	diffs := dmp.DiffMain(text1, text2, true)
	if len(diffs) > 2 {
		diffs = dmp.DiffCleanupSemantic(diffs)
		diffs = dmp.DiffCleanupEfficiency(diffs)
	}
	return dmp.patchMake2(text1, diffs)
}

// PatchMakeDiffs computes patches from an edit script alone; the source
// text is rebuilt from it.
func (dmp *DiffMatchPatch) PatchMakeDiffs(diffs []Diff) []Patch {
	return dmp.patchMake2(dmp.DiffText1(diffs), diffs)
}

func (dmp *DiffMatchPatch) patchMake2(text1 string, diffs []Diff) []Patch {
	patches := []Patch{}
	if len(diffs) == 0 {
		return patches // Get rid of the null case.
	}

	patch := Patch{}
	charCount1 := 0 // Number of bytes into the text1 string.
	charCount2 := 0 // Number of bytes into the text2 string.
	// Start with text1 (prepatchText) and apply the diffs until we arrive at text2 (postpatchText). We recreate the patches one by one to determine context info.
	prepatchText := text1
	postpatchText := text1

	for i, aDiff := range diffs {
		if len(patch.diffs) == 0 && aDiff.Type != DiffEqual {
			// A new patch starts here.
			patch.Start1 = charCount1
			patch.Start2 = charCount2
		}

		switch aDiff.Type {
		case DiffInsert:
			patch.diffs = append(patch.diffs, aDiff)
			patch.Length2 += len(aDiff.Text)
			postpatchText = postpatchText[:charCount2] + aDiff.Text + postpatchText[charCount2:]
		case DiffDelete:
			patch.Length1 += len(aDiff.Text)
			patch.diffs = append(patch.diffs, aDiff)
			postpatchText = postpatchText[:charCount2] + postpatchText[charCount2+len(aDiff.Text):]
		case DiffEqual:
			if len(aDiff.Text) <= 2*dmp.PatchMargin && len(patch.diffs) != 0 && i != len(diffs)-1 {
				// Small equality inside a patch.
				patch.diffs = append(patch.diffs, aDiff)
				patch.Length1 += len(aDiff.Text)
				patch.Length2 += len(aDiff.Text)
			}
			if len(aDiff.Text) >= 2*dmp.PatchMargin && len(patch.diffs) != 0 {
				// Time for a new patch.
				patch = dmp.PatchAddContext(patch, prepatchText)
				patches = append(patches, patch)
				patch = Patch{}
				// Unlike Unidiff, our patch lists have a rolling context. http://code.google.com/p/google-diff-match-patch/wiki/Unidiff Update prepatch text & pos to reflect the application of the just completed patch.
				prepatchText = postpatchText
				charCount1 = charCount2
			}
		}

		// Update the current character count.
		if aDiff.Type != DiffInsert {
			charCount1 += len(aDiff.Text)
		}
		if aDiff.Type != DiffDelete {
			charCount2 += len(aDiff.Text)
		}
	}

	// Pick up the leftover patch if not empty.
	if len(patch.diffs) != 0 {
		patch = dmp.PatchAddContext(patch, prepatchText)
		patches = append(patches, patch)
	}

	return patches
}

// PatchDeepCopy returns an array that is identical to a given an array of patches.
func (dmp *DiffMatchPatch) PatchDeepCopy(patches []Patch) []Patch {
	patchesCopy := make([]Patch, 0, len(patches))
	for _, aPatch := range patches {
		patchCopy := aPatch
		patchCopy.diffs = append([]Diff(nil), aPatch.diffs...)
		patchesCopy = append(patchesCopy, patchCopy)
	}
	return patchesCopy
}

// PatchApply merges a set of patches onto the text.  Returns a patched text, as well as an array of true/false values indicating which patches were applied.
// The patches are not modified.
func (dmp *DiffMatchPatch) PatchApply(patches []Patch, text string) (string, []bool) {
	if len(patches) == 0 {
		return text, []bool{}
	}

	// Deep copy the patches so that no changes are made to originals.
	patches = dmp.PatchDeepCopy(patches)

	nullPadding := dmp.PatchAddPadding(patches)
	text = nullPadding + text + nullPadding
	patches = dmp.PatchSplitMax(patches)

	// delta keeps track of the offset between the expected and actual location of the previous patch.  If there are patches expected at positions 10 and 20, but the first patch was found at 12, delta is 2 and the second patch has an effective expected position of 22.
	delta := 0
	results := make([]bool, len(patches))
	for x, aPatch := range patches {
		expectedLoc := aPatch.Start2 + delta
		text1 := dmp.DiffText1(aPatch.diffs)
		var startLoc int
		endLoc := -1
		tailLen := 0
		if len(text1) > dmp.MatchMaxBits {
			// PatchSplitMax will only provide an oversized pattern in the case of a monster delete.
			head := text1[:runeCut(text1, dmp.MatchMaxBits)]
			tail := text1[runeEnd(text1, len(text1)-dmp.MatchMaxBits):]
			tailLen = len(tail)
			startLoc = dmp.MatchMain(text, head, expectedLoc)
			if startLoc != -1 {
				endLoc = dmp.MatchMain(text, tail, expectedLoc+len(text1)-tailLen)
				if endLoc != -1 {
					endLoc = runeStart(text, endLoc)
				}
				if endLoc == -1 || startLoc >= endLoc {
					// Can't find valid trailing context.  Drop this patch.
					startLoc = -1
				}
			}
		} else {
			startLoc = dmp.MatchMain(text, text1, expectedLoc)
		}
		if startLoc != -1 {
			// Bitap scores bytes, so a fuzzy match may start inside a rune.
			startLoc = runeStart(text, startLoc)
		}
		if startLoc == -1 {
			// No match found.  :(
			results[x] = false
			// Subtract the delta for this failed patch from subsequent patches.
			delta -= aPatch.Length2 - aPatch.Length1
			continue
		}

		// Found a match.  :)
		results[x] = true
		delta = startLoc - expectedLoc
		var text2 string
		if endLoc == -1 {
			text2 = text[startLoc:runeEnd(text, min(startLoc+len(text1), len(text)))]
		} else {
			text2 = text[startLoc:runeEnd(text, min(endLoc+tailLen, len(text)))]
		}
		if text1 == text2 {
			// Perfect match, just shove the Replacement text in.
			text = text[:startLoc] + dmp.DiffText2(aPatch.diffs) + text[startLoc+len(text1):]
			continue
		}

		// Imperfect match.  Run a diff to get a framework of equivalent indices.
		diffs := dmp.DiffMain(text1, text2, false)
		if len(text1) > dmp.MatchMaxBits && float64(dmp.DiffLevenshtein(diffs))/float64(len([]rune(text1))) > dmp.PatchDeleteThreshold {
			// The end points match, but the content is unacceptably bad.
			results[x] = false
			continue
		}
		diffs = dmp.DiffCleanupSemanticLossless(diffs)
		// Translated offsets are approximate once earlier edits of this
		// patch have shifted the text, so every cut is moved to a rune start.
		cut := func(i int) int { return runeStart(text, min(i, len(text))) }
		index1 := 0
		for _, aDiff := range aPatch.diffs {
			if aDiff.Type != DiffEqual {
				startIndex := cut(startLoc + dmp.DiffXIndex(diffs, index1))
				if aDiff.Type == DiffInsert {
					// Insertion
					text = text[:startIndex] + aDiff.Text + text[startIndex:]
				} else {
					// Deletion
					endIndex := max(startIndex, cut(startLoc+dmp.DiffXIndex(diffs, index1+len(aDiff.Text))))
					text = text[:startIndex] + text[endIndex:]
				}
			}
			if aDiff.Type != DiffDelete {
				index1 += len(aDiff.Text)
			}
		}
	}
	// Strip the padding off.
	text = text[len(nullPadding) : len(text)-len(nullPadding)]
	return text, results
}

// PatchAddPadding adds some padding on text start and end so that edges can match something.
// Intended to be called only from within patchApply.
func (dmp *DiffMatchPatch) PatchAddPadding(patches []Patch) string {
	paddingLength := dmp.PatchMargin
	padding := make([]byte, paddingLength)
	for x := range padding {
		padding[x] = byte(x + 1)
	}
	nullPadding := string(padding)

	// Bump all the patches forward.
	for i := range patches {
		patches[i].Start1 += paddingLength
		patches[i].Start2 += paddingLength
	}

	// Add some padding on start of first diff.
	first := &patches[0]
	if len(first.diffs) == 0 || first.diffs[0].Type != DiffEqual {
		// Add nullPadding equality.
		first.diffs = append([]Diff{{DiffEqual, nullPadding}}, first.diffs...)
		first.Start1 -= paddingLength // Should be 0.
		first.Start2 -= paddingLength // Should be 0.
		first.Length1 += paddingLength
		first.Length2 += paddingLength
	} else if paddingLength > len(first.diffs[0].Text) {
		// Grow first equality.
		extraLength := paddingLength - len(first.diffs[0].Text)
		first.diffs[0].Text = nullPadding[len(first.diffs[0].Text):] + first.diffs[0].Text
		first.Start1 -= extraLength
		first.Start2 -= extraLength
		first.Length1 += extraLength
		first.Length2 += extraLength
	}

	// Add some padding on end of last diff.
	last := &patches[len(patches)-1]
	if len(last.diffs) == 0 || last.diffs[len(last.diffs)-1].Type != DiffEqual {
		// Add nullPadding equality.
		last.diffs = append(last.diffs, Diff{DiffEqual, nullPadding})
		last.Length1 += paddingLength
		last.Length2 += paddingLength
	} else if lastDiff := &last.diffs[len(last.diffs)-1]; paddingLength > len(lastDiff.Text) {
		// Grow last equality.
		extraLength := paddingLength - len(lastDiff.Text)
		lastDiff.Text += nullPadding[:extraLength]
		last.Length1 += extraLength
		last.Length2 += extraLength
	}

	return nullPadding
}

// PatchSplitMax looks through the patches and breaks up any which are longer than the maximum limit of the match algorithm.
// Intended to be called only from within patchApply.
func (dmp *DiffMatchPatch) PatchSplitMax(patches []Patch) []Patch {
	patchSize := dmp.MatchMaxBits
	for x := 0; x < len(patches); x++ {
		if patches[x].Length1 <= patchSize {
			continue
		}
		bigpatch := patches[x]
		// Remove the big old patch.
		patches = append(patches[:x], patches[x+1:]...)
		x--

		start1 := bigpatch.Start1
		start2 := bigpatch.Start2
		precontext := ""
		for len(bigpatch.diffs) != 0 {
			// Create one of several smaller patches.
			patch := Patch{}
			empty := true
			patch.Start1 = start1 - len(precontext)
			patch.Start2 = start2 - len(precontext)
			if len(precontext) != 0 {
				patch.Length1 = len(precontext)
				patch.Length2 = len(precontext)
				patch.diffs = append(patch.diffs, Diff{DiffEqual, precontext})
			}
			// The first step always runs: a precontext as long as the budget
			// would otherwise leave bigpatch untouched.
			for first := true; len(bigpatch.diffs) != 0 && (first || patch.Length1 < patchSize-dmp.PatchMargin); first = false {
				diffType := bigpatch.diffs[0].Type
				diffText := bigpatch.diffs[0].Text
				if diffType == DiffInsert {
					// Insertions are harmless.
					patch.Length2 += len(diffText)
					start2 += len(diffText)
					patch.diffs = append(patch.diffs, bigpatch.diffs[0])
					bigpatch.diffs = bigpatch.diffs[1:]
					empty = false
				} else if diffType == DiffDelete && len(patch.diffs) == 1 && patch.diffs[0].Type == DiffEqual && len(diffText) > 2*patchSize {
					// This is a large deletion.  Let it pass in one chunk.
					patch.Length1 += len(diffText)
					start1 += len(diffText)
					empty = false
					patch.diffs = append(patch.diffs, Diff{diffType, diffText})
					bigpatch.diffs = bigpatch.diffs[1:]
				} else {
					// Deletion or equality.  Only take as much as we can stomach.
					diffText = diffText[:runeCut(diffText, patchSize-patch.Length1-dmp.PatchMargin)]

					patch.Length1 += len(diffText)
					start1 += len(diffText)
					if diffType == DiffEqual {
						patch.Length2 += len(diffText)
						start2 += len(diffText)
					} else {
						empty = false
					}
					patch.diffs = append(patch.diffs, Diff{diffType, diffText})
					if diffText == bigpatch.diffs[0].Text {
						bigpatch.diffs = bigpatch.diffs[1:]
					} else {
						bigpatch.diffs[0].Text = bigpatch.diffs[0].Text[len(diffText):]
					}
				}
			}
			// Compute the head context for the next patch.
			precontext = dmp.DiffText2(patch.diffs)
			precontext = precontext[runeStart(precontext, max(0, len(precontext)-dmp.PatchMargin)):]

			// Append the end context for this patch.
			postcontext := dmp.DiffText1(bigpatch.diffs)
			postcontext = postcontext[:runeEnd(postcontext, min(len(postcontext), dmp.PatchMargin))]

			if len(postcontext) != 0 {
				patch.Length1 += len(postcontext)
				patch.Length2 += len(postcontext)
				if len(patch.diffs) != 0 && patch.diffs[len(patch.diffs)-1].Type == DiffEqual {
					patch.diffs[len(patch.diffs)-1].Text += postcontext
				} else {
					patch.diffs = append(patch.diffs, Diff{DiffEqual, postcontext})
				}
			}
			if !empty {
				x++
				patches = append(patches[:x], append([]Patch{patch}, patches[x:]...)...)
			}
		}
	}
	return patches
}

// runeCut returns the length of the longest prefix of text that is at most
// n bytes and ends on a rune boundary. At least one rune is kept so that
// callers always make progress.
func runeCut(text string, n int) int {
	if n >= len(text) {
		return len(text)
	}
	cut := runeStart(text, max(n, 0))
	if cut == 0 {
		cut = runeEnd(text, 1)
	}
	return cut
}

// PatchToText takes a list of patches and returns a textual representation.
func (dmp *DiffMatchPatch) PatchToText(patches []Patch) string {
	var text strings.Builder
	for _, aPatch := range patches {
		_, _ = text.WriteString(aPatch.String())
	}
	return text.String()
}

var patchHeader = regexp.MustCompile(`^@@ -(\d+),?(\d*) \+(\d+),?(\d*) @@$`)

// PatchFromText parses a textual representation of patches and returns a List of Patch objects.
// Blank lines are skipped. A malformed header or body line yields a
// *FormatError and an undecodable body line a *DecodingError.
func (dmp *DiffMatchPatch) PatchFromText(textline string) ([]Patch, error) {
	patches := []Patch{}
	if len(textline) == 0 {
		return patches, nil
	}
	text := strings.Split(textline, "\n")
	textPointer := 0

	for textPointer < len(text) {
		if len(text[textPointer]) == 0 {
			textPointer++
			continue
		}
		m := patchHeader.FindStringSubmatch(text[textPointer])
		if m == nil {
			return nil, &FormatError{Msg: "invalid patch string: " + text[textPointer]}
		}

		patch := Patch{}
		var err error
		if patch.Start1, patch.Length1, err = parsePatchCoords(m[1], m[2]); err != nil {
			return nil, &FormatError{Msg: "invalid patch header: " + text[textPointer], Err: err}
		}
		if patch.Start2, patch.Length2, err = parsePatchCoords(m[3], m[4]); err != nil {
			return nil, &FormatError{Msg: "invalid patch header: " + text[textPointer], Err: err}
		}
		textPointer++

		for textPointer < len(text) {
			if len(text[textPointer]) == 0 {
				// Blank line?  Whatever.
				textPointer++
				continue
			}
			sign := text[textPointer][0]
			if sign == '@' {
				// Start of next patch.
				break
			}

			var op Operation
			switch sign {
			case '-':
				// Deletion.
				op = DiffDelete
			case '+':
				// Insertion.
				op = DiffInsert
			case ' ':
				// Minor equality.
				op = DiffEqual
			default:
				return nil, &FormatError{Msg: "invalid patch mode '" + string(sign) + "' in: " + text[textPointer][1:]}
			}
			line, err := unescapeText(text[textPointer][1:])
			if err != nil {
				return nil, err
			}
			patch.diffs = append(patch.diffs, Diff{op, line})
			textPointer++
		}

		patches = append(patches, patch)
	}
	return patches, nil
}

// parsePatchCoords turns the 1-based "start,length" pair of a patch header
// into a 0-based start and a length.
func parsePatchCoords(start, length string) (int, int, error) {
	s, err := strconv.Atoi(start)
	if err != nil {
		return 0, 0, err
	}
	switch length {
	case "":
		return s - 1, 1, nil
	case "0":
		return s, 0, nil
	}
	l, err := strconv.Atoi(length)
	if err != nil {
		return 0, 0, err
	}
	return s - 1, l, nil
}
