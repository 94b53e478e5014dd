// Copyright (c) 2012-2016 The go-diff authors. All rights reserved.
// https://github.com/sergi/go-diff
// See the included LICENSE file for license details.
//
// go-diff is a Go implementation of Google's Diff, Match, and Patch library
// Original library is Copyright (c) 2006 Google Inc.
// http://code.google.com/p/google-diff-match-patch/

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/di-graph/go-dmp/diffmatchpatch"
	"github.com/di-graph/go-dmp/internal/batch"
	"github.com/di-graph/go-dmp/internal/config"
	"github.com/di-graph/go-dmp/internal/render"
)

// errPatchFailed is returned by patch apply when at least one patch did not apply.
var errPatchFailed = errors.New("some patches failed to apply")

func readFile(filename string) (string, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", filename, err)
	}
	return string(b), nil
}

func readFiles(filenames ...string) ([]string, error) {
	texts := make([]string, len(filenames))
	for i, filename := range filenames {
		text, err := readFile(filename)
		if err != nil {
			return nil, err
		}
		texts[i] = text
	}
	return texts, nil
}

// parseLocation converts a command line location, rejecting values outside [0, max].
func parseLocation(arg string, max int) (int, error) {
	loc, err := cast.ToIntE(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid location %q: %w", arg, err)
	}
	if loc < 0 || loc > max {
		return 0, fmt.Errorf("location %d out of range [0, %d]", loc, max)
	}
	return loc, nil
}

func (a *app) diffCmd() *cobra.Command {
	var (
		lines   bool
		cleanup string
		format  string
		context int
	)

	cmd := &cobra.Command{
		Use:   "diff FILE1 FILE2",
		Short: "Print the differences between two files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := batch.ParseCleanup(cleanup)
			if err != nil {
				return err
			}
			texts, err := readFiles(args[0], args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == "unified" {
				fmt.Fprint(out, a.dmp.Unified(texts[0], texts[1],
					diffmatchpatch.UnifiedLabels(args[0], args[1]),
					diffmatchpatch.UnifiedContextLines(context)))
				return nil
			}

			start := time.Now()
			diffs := c.Apply(a.dmp, a.dmp.DiffMain(texts[0], texts[1], lines))
			a.logger.Debug("diffed files",
				"edits", len(diffs),
				"distance", a.dmp.DiffLevenshtein(diffs),
				"elapsed", time.Since(start))

			switch format {
			case "delta":
				fmt.Fprintln(out, a.dmp.DiffToDelta(diffs))
			case "html":
				fmt.Fprintln(out, a.dmp.DiffPrettyHtml(diffs))
			case "pretty":
				fmt.Fprint(out, a.dmp.DiffRender(diffs, render.NewTerminal(lipgloss.NewRenderer(out))))
			default:
				return fmt.Errorf("unknown format %q, want pretty, delta, html or unified", format)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&lines, "lines", false, "Diff line by line first, then refine")
	cmd.Flags().StringVar(&cleanup, "cleanup", "semantic", "Cleanup pass: none, semantic or efficiency")
	cmd.Flags().StringVarP(&format, "format", "f", "pretty", "Output format: pretty, delta, html or unified")
	cmd.Flags().IntVarP(&context, "context", "U", diffmatchpatch.DefaultContextLines, "Context lines of the unified format")
	return cmd
}

func (a *app) deltaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delta",
		Short: "Work with compact delta encodings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "apply FILE DELTAFILE",
		Short: "Rebuild the new text from FILE and a delta",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			texts, err := readFiles(args[0], args[1])
			if err != nil {
				return err
			}
			delta := strings.TrimRight(texts[1], "\r\n")

			diffs, err := a.dmp.DiffFromDelta(texts[0], delta)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", args[1], err)
			}
			fmt.Fprint(cmd.OutOrStdout(), a.dmp.DiffText2(diffs))
			return nil
		},
	})
	return cmd
}

func (a *app) xindexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "xindex FILE1 FILE2 LOC",
		Short: "Translate a rune location in FILE1 to the equivalent location in FILE2",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			texts, err := readFiles(args[0], args[1])
			if err != nil {
				return err
			}
			runes1, runes2 := []rune(texts[0]), []rune(texts[1])

			oldLoc, err := parseLocation(args[2], len(runes1))
			if err != nil {
				return err
			}

			diffs := a.dmp.DiffMainRunes(runes1, runes2, false)
			newLoc := a.dmp.DiffXRuneIndex(diffs, oldLoc)
			fmt.Fprintf(cmd.OutOrStdout(), "loc_change: %d -> %d\n", oldLoc, newLoc)
			return nil
		},
	}
}

func (a *app) matchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match FILE PATTERN LOC",
		Short: "Print the byte offset of the best match of PATTERN near LOC, or -1",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readFile(args[0])
			if err != nil {
				return err
			}
			// MatchMain clamps the location itself.
			loc, err := cast.ToIntE(args[2])
			if err != nil {
				return fmt.Errorf("invalid location %q: %w", args[2], err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), a.dmp.MatchMain(text, args[1], loc))
			return nil
		},
	}
}

func (a *app) patchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Make and apply patches",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "make FILE1 FILE2",
		Short: "Print the patches turning FILE1 into FILE2",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			texts, err := readFiles(args[0], args[1])
			if err != nil {
				return err
			}
			patches := a.dmp.PatchMake(texts[0], texts[1])
			fmt.Fprint(cmd.OutOrStdout(), a.dmp.PatchToText(patches))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "apply PATCHFILE FILE",
		Short: "Apply patches to FILE and print the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			texts, err := readFiles(args[0], args[1])
			if err != nil {
				return err
			}
			patches, err := a.dmp.PatchFromText(texts[0])
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			text, applied := a.dmp.PatchApply(patches, texts[1])
			fmt.Fprint(cmd.OutOrStdout(), text)

			// Oversized patches are split before applying, so applied may
			// hold more entries than the patch file.
			failed := 0
			for i, ok := range applied {
				if !ok {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "hunk #%d failed\n", i+1)
				}
			}
			a.logger.Debug("applied patches", "hunks", len(applied), "failed", failed)
			if failed > 0 {
				return fmt.Errorf("%d of %d hunks: %w", failed, len(applied), errPatchFailed)
			}
			return nil
		},
	})
	return cmd
}

func (a *app) batchCmd() *cobra.Command {
	var (
		lines   bool
		cleanup string
	)

	cmd := &cobra.Command{
		Use:   "batch FILE1:FILE2...",
		Short: "Diff many pairs of files concurrently and print one delta per pair",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := batch.ParseCleanup(cleanup)
			if err != nil {
				return err
			}

			pairs := make([]batch.Pair, len(args))
			for i, arg := range args {
				file1, file2, ok := strings.Cut(arg, ":")
				if !ok {
					return fmt.Errorf("invalid pair %q, want FILE1:FILE2", arg)
				}
				texts, err := readFiles(file1, file2)
				if err != nil {
					return err
				}
				pairs[i] = batch.Pair{Text1: texts[0], Text2: texts[1]}
			}

			results, err := batch.Diff(cmd.Context(), a.dmp, pairs,
				batch.WithWorkers(a.cfg.Workers),
				batch.WithCheckLines(lines),
				batch.WithCleanup(c),
				batch.WithLogger(a.logger))
			if err != nil {
				return fmt.Errorf("batch diff: %w", err)
			}

			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", args[r.Index], a.dmp.DiffToDelta(r.Diffs))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&lines, "lines", false, "Diff line by line first, then refine")
	cmd.Flags().StringVar(&cleanup, "cleanup", "efficiency", "Cleanup pass: none, semantic or efficiency")
	cmd.Flags().Int("workers", config.Default().Workers, "Number of pairs diffed at once")
	return cmd
}
