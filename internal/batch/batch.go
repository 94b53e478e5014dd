// Copyright (c) 2012-2016 The go-diff authors. All rights reserved.
// https://github.com/sergi/go-diff
// See the included LICENSE file for license details.
//
// go-diff is a Go implementation of Google's Diff, Match, and Patch library
// Original library is Copyright (c) 2006 Google Inc.
// http://code.google.com/p/google-diff-match-patch/

// Package batch diffs many pairs of texts concurrently with a shared,
// read-only engine and returns the results in input order.
package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/di-graph/go-dmp/diffmatchpatch"
)

// DefaultWorkers is the number of pairs diffed at once unless WithWorkers is given.
const DefaultWorkers = 4

// Cleanup selects the pass run over each raw edit script.
type Cleanup int

const (
	// CleanupNone keeps the minimal edit script.
	CleanupNone Cleanup = iota
	// CleanupSemantic runs DiffCleanupSemantic, for human readers.
	CleanupSemantic
	// CleanupEfficiency runs DiffCleanupEfficiency, for machine consumption.
	CleanupEfficiency
)

var cleanupNames = map[string]Cleanup{
	"none":       CleanupNone,
	"semantic":   CleanupSemantic,
	"efficiency": CleanupEfficiency,
}

// ParseCleanup maps "none", "semantic" or "efficiency" to a Cleanup.
func ParseCleanup(name string) (Cleanup, error) {
	c, ok := cleanupNames[name]
	if !ok {
		return CleanupNone, fmt.Errorf("unknown cleanup %q, want none, semantic or efficiency", name)
	}
	return c, nil
}

func (c Cleanup) String() string {
	for name, v := range cleanupNames {
		if v == c {
			return name
		}
	}
	return fmt.Sprintf("Cleanup(%d)", int(c))
}

// Apply runs the cleanup pass selected by c over diffs.
func (c Cleanup) Apply(dmp *diffmatchpatch.DiffMatchPatch, diffs []diffmatchpatch.Diff) []diffmatchpatch.Diff {
	switch c {
	case CleanupSemantic:
		return dmp.DiffCleanupSemantic(diffs)
	case CleanupEfficiency:
		return dmp.DiffCleanupEfficiency(diffs)
	default:
		return diffs
	}
}

// Pair is one unit of work.
type Pair struct {
	Text1 string
	Text2 string
}

// Result is the edit script of the pair at Index in the input.
type Result struct {
	Index int
	Diffs []diffmatchpatch.Diff
}

type options struct {
	workers    int
	checklines bool
	cleanup    Cleanup
	logger     *slog.Logger
}

// Option configures Diff.
type Option func(*options)

// WithWorkers bounds the number of pairs diffed at once. Non-positive values
// select DefaultWorkers.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithCheckLines enables the line-level speedup for every pair.
func WithCheckLines(checklines bool) Option {
	return func(o *options) { o.checklines = checklines }
}

// WithCleanup selects the pass run over each edit script.
func WithCleanup(c Cleanup) Option {
	return func(o *options) { o.cleanup = c }
}

// WithLogger sets the logger receiving per-pair timings at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Diff computes the edit script of every pair, at most WithWorkers at a
// time. dmp is only read. The results are ordered like pairs whatever the
// completion order. Once ctx is done no further pair is started and the
// context's error is returned.
func Diff(ctx context.Context, dmp *diffmatchpatch.DiffMatchPatch, pairs []Pair, opts ...Option) ([]Result, error) {
	o := options{
		workers: DefaultWorkers,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}

	results := make([]Result, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for i, pair := range pairs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			diffs := dmp.DiffMain(pair.Text1, pair.Text2, o.checklines)
			diffs = o.cleanup.Apply(dmp, diffs)
			results[i] = Result{Index: i, Diffs: diffs}

			o.logger.Debug("diffed pair",
				"index", i,
				"edits", len(diffs),
				"cleanup", o.cleanup.String(),
				"elapsed", time.Since(start))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Wait succeeds when dispatch stopped early, so report the cancellation.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
