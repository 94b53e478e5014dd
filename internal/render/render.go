// Copyright (c) 2012-2016 The go-diff authors. All rights reserved.
// https://github.com/sergi/go-diff
// See the included LICENSE file for license details.
//
// go-diff is a Go implementation of Google's Diff, Match, and Patch library
// Original library is Copyright (c) 2006 Google Inc.
// http://code.google.com/p/google-diff-match-patch/

// Package render styles edit scripts for terminals.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/di-graph/go-dmp/diffmatchpatch"
)

// Terminal renders spans with lipgloss styles. Colors degrade to plain text
// when the renderer's output is not a color terminal.
type Terminal struct {
	Insert lipgloss.Style
	Delete lipgloss.Style
	Equal  lipgloss.Style
}

// NewTerminal returns a Terminal drawing insertions green and deletions red
// and struck through, using r to detect the color profile. A nil r uses the
// default renderer on stdout.
func NewTerminal(r *lipgloss.Renderer) *Terminal {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return &Terminal{
		Insert: base.Foreground(lipgloss.Color("2")),
		Delete: base.Foreground(lipgloss.Color("1")).Strikethrough(true),
		Equal:  base,
	}
}

// RenderSpan implements diffmatchpatch.SpanRenderer.
func (t *Terminal) RenderSpan(op diffmatchpatch.Operation, text string) string {
	style := t.Equal
	switch op {
	case diffmatchpatch.DiffInsert:
		style = t.Insert
	case diffmatchpatch.DiffDelete:
		style = t.Delete
	}

	// lipgloss pads multi-line blocks to a common width, so style line by line.
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
