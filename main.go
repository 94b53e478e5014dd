// Copyright (c) 2012-2016 The go-diff authors. All rights reserved.
// https://github.com/sergi/go-diff
// See the included LICENSE file for license details.
//
// go-diff is a Go implementation of Google's Diff, Match, and Patch library
// Original library is Copyright (c) 2006 Google Inc.
// http://code.google.com/p/google-diff-match-patch/

// Command dmp diffs, matches and patches plain text files.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/di-graph/go-dmp/diffmatchpatch"
	"github.com/di-graph/go-dmp/internal/config"
)

// app holds the state shared by every subcommand once flags are parsed.
type app struct {
	cfg    *config.Config
	dmp    *diffmatchpatch.DiffMatchPatch
	logger *slog.Logger
}

// configFlags maps config keys to the persistent flags overriding them.
var configFlags = map[string]string{
	"diff_timeout":           "timeout",
	"diff_edit_cost":         "edit-cost",
	"match_threshold":        "match-threshold",
	"match_distance":         "match-distance",
	"patch_delete_threshold": "delete-threshold",
	"patch_margin":           "margin",
	"workers":                "workers",
}

func newRootCmd() *cobra.Command {
	a := &app{}
	d := config.Default()

	rootCmd := &cobra.Command{
		Use:   "dmp",
		Short: "Diff, match and patch plain text",
		Long: `dmp computes character level differences between texts, locates
fuzzy matches and builds or applies patches that tolerate drift.

Engine parameters are read from $HOME/.config/dmp/dmp.yaml or ./dmp.yaml,
then DMP_* environment variables, then flags.

Examples:
  dmp diff old.txt new.txt
  dmp diff --format unified old.txt new.txt
  dmp xindex old.txt new.txt 120
  dmp patch make old.txt new.txt > change.patch
  dmp patch apply change.patch other.txt`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a config file (default: $HOME/.config/dmp/dmp.yaml)")
	flags.BoolP("verbose", "v", false, "Enable debug logging on stderr")
	flags.Duration("timeout", d.DiffTimeout, "Time budget of a diff, 0 for unlimited")
	flags.Int("edit-cost", d.DiffEditCost, "Cost of an empty edit in efficiency cleanup")
	flags.Float64("match-threshold", d.MatchThreshold, "Match score above which a fuzzy match is rejected, in [0, 1]")
	flags.Int("match-distance", d.MatchDistance, "Distance from the expected location at which a match scores 1")
	flags.Float64("delete-threshold", d.PatchDeleteThreshold, "Dissimilarity tolerated when applying a large deletion, in [0, 1]")
	flags.Int("margin", d.PatchMargin, "Context length placed around each patch")

	rootCmd.AddCommand(
		a.diffCmd(),
		a.deltaCmd(),
		a.xindexCmd(),
		a.matchCmd(),
		a.patchCmd(),
		a.batchCmd(),
	)
	return rootCmd
}

// setup builds the logger and the engine from the config file, the
// environment and the flags of cmd.
func (a *app) setup(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	path, _ := cmd.Flags().GetString("config")
	v := config.New(path)
	for key, name := range configFlags {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}

	cfg, err := config.Decode(v)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg
	a.dmp = cfg.NewDiffMatchPatch()

	a.logger.Debug("engine configured",
		"diff_timeout", cfg.DiffTimeout,
		"match_threshold", cfg.MatchThreshold,
		"match_distance", cfg.MatchDistance,
		"patch_margin", cfg.PatchMargin)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		// Cobra already printed the error.
		stop()
		os.Exit(1)
	}
}
