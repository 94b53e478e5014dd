// Copyright (c) 2012-2016 The go-diff authors. All rights reserved.
// https://github.com/sergi/go-diff
// See the included LICENSE file for license details.
//
// go-diff is a Go implementation of Google's Diff, Match, and Patch library
// Original library is Copyright (c) 2006 Google Inc.
// http://code.google.com/p/google-diff-match-patch/

package diffmatchpatch

import (
	"html"
	"strings"
)

// SpanRenderer renders a single span of an edit script. Implementations
// decide the markup placed around the text of each operation.
type SpanRenderer interface {
	RenderSpan(op Operation, text string) string
}

// SpanRendererFunc adapts a plain function to SpanRenderer.
type SpanRendererFunc func(op Operation, text string) string

// RenderSpan calls f(op, text).
func (f SpanRendererFunc) RenderSpan(op Operation, text string) string { return f(op, text) }

// DiffRender concatenates the rendering of every span in diffs.
func (dmp *DiffMatchPatch) DiffRender(diffs []Diff, r SpanRenderer) string {
	var buff strings.Builder
	for _, diff := range diffs {
		_, _ = buff.WriteString(r.RenderSpan(diff.Type, diff.Text))
	}
	return buff.String()
}

// HTMLRenderer renders spans as <ins>, <del> and <span> elements with
// newlines shown as pilcrows.
var HTMLRenderer SpanRenderer = SpanRendererFunc(func(op Operation, text string) string {
	text = strings.ReplaceAll(html.EscapeString(text), "\n", "&para;<br>")
	switch op {
	case DiffInsert:
		return `<ins style="background:#e6ffe6;">` + text + "</ins>"
	case DiffDelete:
		return `<del style="background:#ffe6e6;">` + text + "</del>"
	default:
		return "<span>" + text + "</span>"
	}
})

// ANSIRenderer colors insertions green and deletions red with raw ANSI
// escape sequences.
var ANSIRenderer SpanRenderer = SpanRendererFunc(func(op Operation, text string) string {
	switch op {
	case DiffInsert:
		return "\x1b[32m" + text + "\x1b[0m"
	case DiffDelete:
		return "\x1b[31m" + text + "\x1b[0m"
	default:
		return text
	}
})

// DiffPrettyHtml converts a []Diff into a pretty HTML report.
// It is intended as an example from which to write one's own display functions.
func (dmp *DiffMatchPatch) DiffPrettyHtml(diffs []Diff) string {
	return dmp.DiffRender(diffs, HTMLRenderer)
}

// DiffPrettyText converts a []Diff into a colored text report.
func (dmp *DiffMatchPatch) DiffPrettyText(diffs []Diff) string {
	return dmp.DiffRender(diffs, ANSIRenderer)
}
