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
	"strings"
)

// DefaultContextLines is the number of unchanged lines of surrounding
// context displayed by Unified.
const DefaultContextLines = 3

// UnifiedOption is an option for Unified and DiffUnified.
type UnifiedOption func(*unifiedOptions)

type unifiedOptions struct {
	contextLines int
	text1Label   string
	text2Label   string
}

func newUnifiedOptions(opts []UnifiedOption) unifiedOptions {
	o := unifiedOptions{
		contextLines: DefaultContextLines,
		text1Label:   "text1",
		text2Label:   "text2",
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// UnifiedContextLines sets the number of unchanged lines of surrounding context
// printed. Non-positive values select DefaultContextLines.
func UnifiedContextLines(lines int) UnifiedOption {
	if lines <= 0 {
		lines = DefaultContextLines
	}
	return func(o *unifiedOptions) {
		o.contextLines = lines
	}
}

// UnifiedLabels sets the labels for the old and new files. Defaults to "text1" and "text2".
func UnifiedLabels(oldLabel, newLabel string) UnifiedOption {
	return func(o *unifiedOptions) {
		o.text1Label = oldLabel
		o.text2Label = newLabel
	}
}

// Unified computes the line differences between text1 and text2 and formats
// them in the "unified diff" format. An empty string means the texts are equal.
func (dmp *DiffMatchPatch) Unified(text1, text2 string, opts ...UnifiedOption) string {
	runes1, runes2, lines := dmp.DiffLinesToRunes(text1, text2)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(runes1, runes2, false), lines)
	return dmp.DiffUnified(diffs, opts...)
}

// DiffUnified formats an edit script in the "unified diff" format. The
// script does not need to be line aligned.
func (dmp *DiffMatchPatch) DiffUnified(diffs []Diff, opts ...UnifiedOption) string {
	o := newUnifiedOptions(opts)
	hunks := buildHunks(splitLines(diffs), o.contextLines)
	if len(hunks) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n+++ %s\n", o.text1Label, o.text2Label)
	for _, h := range hunks {
		h.writeTo(&b)
	}
	return b.String()
}

// hunk is a run of line edits together with their surrounding context.
type hunk struct {
	// 1-based line numbers of the first line of the hunk in each text.
	from1, from2 int
	// One Diff per line, each line keeping its trailing newline if any.
	lines []Diff
}

// buildHunks groups the changed lines of a line-per-Diff script into hunks.
// Changes separated by at most 2*context equal lines share a hunk.
func buildHunks(lines []Diff, context int) []hunk {
	var hunks []hunk
	// Line numbers, 1-based, of lines[i] in each text.
	line1, line2 := make([]int, len(lines)), make([]int, len(lines))
	n1, n2 := 1, 1
	for i, l := range lines {
		line1[i], line2[i] = n1, n2
		if l.Type != DiffInsert {
			n1++
		}
		if l.Type != DiffDelete {
			n2++
		}
	}

	for i := 0; i < len(lines); {
		if lines[i].Type == DiffEqual {
			i++
			continue
		}
		start := max(0, i-context)
		// Extend the hunk while the next change is close enough.
		end := i
		for j := i + 1; j < len(lines); j++ {
			if lines[j].Type == DiffEqual {
				continue
			}
			if j-end-1 > 2*context {
				break
			}
			end = j
		}
		stop := min(len(lines), end+context+1)
		hunks = append(hunks, hunk{
			from1: line1[start],
			from2: line2[start],
			lines: lines[start:stop],
		})
		i = stop
	}
	return hunks
}

func (h hunk) writeTo(b *strings.Builder) {
	count1, count2 := 0, 0
	for _, l := range h.lines {
		if l.Type != DiffInsert {
			count1++
		}
		if l.Type != DiffDelete {
			count2++
		}
	}
	fmt.Fprintf(b, "@@ -%s +%s @@\n", hunkRange(h.from1, count1), hunkRange(h.from2, count2))

	for _, l := range h.lines {
		switch l.Type {
		case DiffDelete:
			b.WriteByte('-')
		case DiffInsert:
			b.WriteByte('+')
		default:
			b.WriteByte(' ')
		}
		b.WriteString(l.Text)
		if !strings.HasSuffix(l.Text, "\n") {
			b.WriteString("\n\\ No newline at end of file\n")
		}
	}
}

// hunkRange formats one side of a hunk header the way GNU diff -u does.
func hunkRange(from, count int) string {
	switch count {
	case 0:
		return fmt.Sprintf("%d,0", from-1)
	case 1:
		return fmt.Sprint(from)
	default:
		return fmt.Sprintf("%d,%d", from, count)
	}
}

// splitLines rewrites an edit script so that each Diff holds exactly one
// line. A line changed anywhere becomes a deletion of its old form and an
// insertion of its new form; deletions precede insertions between equal lines.
func splitLines(diffs []Diff) []Diff {
	var s lineSplitter
	for _, d := range alignOnNewlines(diffs) {
		for _, segment := range strings.SplitAfter(d.Text, "\n") {
			s.add(d.Type, segment)
		}
	}
	s.finish()
	return s.out
}

// lineSplitter accumulates the old and new versions of the current line.
type lineSplitter struct {
	old, new string
	out      []Diff
	// Pending edits since the last equal line.
	deletions, insertions []Diff
}

func (s *lineSplitter) add(op Operation, segment string) {
	if op != DiffInsert {
		s.old += segment
	}
	if op != DiffDelete {
		s.new += segment
	}

	if strings.HasSuffix(s.old, "\n") && s.old == s.new {
		s.emitEqual()
		return
	}
	if strings.HasSuffix(s.old, "\n") {
		s.deletions = append(s.deletions, Diff{DiffDelete, s.old})
		s.old = ""
	}
	if strings.HasSuffix(s.new, "\n") {
		s.insertions = append(s.insertions, Diff{DiffInsert, s.new})
		s.new = ""
	}
}

func (s *lineSplitter) emitEqual() {
	s.flushEdits()
	s.out = append(s.out, Diff{DiffEqual, s.old})
	s.old, s.new = "", ""
}

func (s *lineSplitter) flushEdits() {
	s.out = append(s.out, s.deletions...)
	s.out = append(s.out, s.insertions...)
	s.deletions, s.insertions = nil, nil
}

// finish handles a last line without a trailing newline.
func (s *lineSplitter) finish() {
	if s.old != "" && s.old == s.new {
		s.emitEqual()
	}
	if s.old != "" {
		s.deletions = append(s.deletions, Diff{DiffDelete, s.old})
	}
	if s.new != "" {
		s.insertions = append(s.insertions, Diff{DiffInsert, s.new})
	}
	s.old, s.new = "", ""
	s.flushEdits()
}

// alignOnNewlines slides single edits surrounded by equalities to the right
// past any newline-terminated text they share with the following equality,
// so that edits start at the beginning of a line.
func alignOnNewlines(diffs []Diff) []Diff {
	out := make([]Diff, 0, len(diffs))
	for i := 0; i < len(diffs); i++ {
		if i+2 < len(diffs) && diffs[i].Type == DiffEqual && diffs[i+1].Type != DiffEqual && diffs[i+2].Type == DiffEqual {
			if shared := sharedLines(diffs[i+1].Text, diffs[i+2].Text); shared != "" {
				// ["=<equal>", "±<shared><change>", "=<shared><equal>"]
				// becomes ["=<equal><shared>", "±<change><shared>", "=<equal>"]
				out = append(out,
					Diff{DiffEqual, diffs[i].Text + shared},
					Diff{diffs[i+1].Type, diffs[i+1].Text[len(shared):] + shared},
					Diff{DiffEqual, diffs[i+2].Text[len(shared):]},
				)
				i += 2
				continue
			}
		}
		out = append(out, diffs[i])
	}
	return out
}

// sharedLines returns the longest common prefix of text1 and text2 that ends
// with a newline, or "" if there is none.
func sharedLines(text1, text2 string) string {
	n := 0
	for n < len(text1) && n < len(text2) && text1[n] == text2[n] {
		n++
	}
	if i := strings.LastIndexByte(text1[:n], '\n'); i != -1 {
		return text1[:i+1]
	}
	return ""
}
